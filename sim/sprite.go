package sim

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// SpriteLoader はスプライトパスを描画可能なスプライトに解決します。
// リソースが存在しない場合のエラーは呼び出し元に伝播します。
type SpriteLoader interface {
	Load(path string) (*Sprite, error)
}

var ErrEmptySprite = errors.New("sprite data is empty")

// Sprite はASCIIスプライトの不変な文字グリッドです。
// 各行はWidthにパディング済み。
type Sprite struct {
	Path   string
	Width  int
	Height int
	Rows   [][]rune
}

// ParseSprite はテキストデータからスプライトを構築します。
// 幅は最長行、高さは行数。短い行は空白で埋められる。
func ParseSprite(path string, data []byte) (*Sprite, error) {
	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return nil, fmt.Errorf("sprite %q: %w", path, ErrEmptySprite)
	}

	lines := strings.Split(text, "\n")
	rows := make([][]rune, len(lines))
	width := 0
	for i, line := range lines {
		r := []rune(strings.TrimRight(line, "\r"))
		rows[i] = r
		if len(r) > width {
			width = len(r)
		}
	}
	if width == 0 {
		return nil, fmt.Errorf("sprite %q: %w", path, ErrEmptySprite)
	}

	for i, r := range rows {
		for len(r) < width {
			r = append(r, ' ')
		}
		rows[i] = r
	}

	return &Sprite{
		Path:   path,
		Width:  width,
		Height: len(rows),
		Rows:   rows,
	}, nil
}

// FSLoader はfs.FSからスプライトを読み込み、パスごとにキャッシュします。
// 読み込みはtickループ内・起動時の単一ゴルーチンで行う前提で、ロックは持たない。
type FSLoader struct {
	fsys  fs.FS
	cache map[string]*Sprite
}

func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{
		fsys:  fsys,
		cache: make(map[string]*Sprite),
	}
}

func (l *FSLoader) Load(path string) (*Sprite, error) {
	if sprite, ok := l.cache[path]; ok {
		return sprite, nil
	}
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read sprite %q: %w", path, err)
	}
	sprite, err := ParseSprite(path, data)
	if err != nil {
		return nil, err
	}
	l.cache[path] = sprite
	return sprite, nil
}
