package utils

import "os"

// GetEnvDefault は環境変数を取得し、未設定ならデフォルト値を返します。
func GetEnvDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
