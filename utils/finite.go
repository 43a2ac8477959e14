package utils

import "math"

// FiniteVec2 はクライアントから受信した2次元ベクトルが有限値かを返します。
// NaN/Infを含む入力はシミュレーションに入れない。
func FiniteVec2(x, y float32) bool {
	return isFinite(float64(x)) && isFinite(float64(y))
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
