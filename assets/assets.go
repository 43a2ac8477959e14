// Package assets はビルドに埋め込むASCIIスプライトを提供します。
package assets

import "embed"

//go:embed sprites
var FS embed.FS
