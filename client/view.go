package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"ashfall/server/application"
	"ashfall/server/domain"
	"ashfall/sim"
)

var kindStyles = map[domain.EntityKind]tcell.Style{
	domain.KindPlayer:  tcell.StyleDefault.Foreground(tcell.ColorGreen),
	domain.KindDrifter: tcell.StyleDefault.Foreground(tcell.ColorRed),
	domain.KindDiver:   tcell.StyleDefault.Foreground(tcell.ColorYellow),
	domain.KindBullet:  tcell.StyleDefault.Foreground(tcell.ColorWhite),
}

// view はサーバーのスナップショットを端末に描画します。
// スプライトはエンティティごとにローカルのsimオブジェクトをミラーとして保持し、
// サーバーから届いた座標だけを書き戻して描画に使う。
type view struct {
	screen tcell.Screen
	loader sim.SpriteLoader
	mirror map[uint32]sim.Object
}

func newView(screen tcell.Screen, loader sim.SpriteLoader) *view {
	return &view{
		screen: screen,
		loader: loader,
		mirror: make(map[uint32]sim.Object),
	}
}

func mirrorKey(r domain.EntityRecord) uint32 {
	return uint32(r.Kind)<<16 | uint32(r.ID)
}

func (v *view) object(r domain.EntityRecord) (sim.Object, error) {
	key := mirrorKey(r)
	if obj, ok := v.mirror[key]; ok {
		return obj, nil
	}

	var (
		obj sim.Object
		err error
	)
	switch r.Kind {
	case domain.KindPlayer:
		obj, err = sim.NewPlayer(float64(r.X), float64(r.Y), v.loader)
	case domain.KindDrifter:
		obj, err = sim.NewDrifter(float64(r.X), float64(r.Y), v.loader)
	case domain.KindDiver:
		obj, err = sim.NewDiver(float64(r.X), float64(r.Y), v.loader)
	case domain.KindBullet:
		obj, err = sim.NewBullet(float64(r.X), float64(r.Y), v.loader)
	default:
		return nil, fmt.Errorf("unknown entity kind: %d", r.Kind)
	}
	if err != nil {
		return nil, err
	}
	v.mirror[key] = obj
	return obj, nil
}

// render はスナップショットを1フレームとして描画します。
func (v *view) render(records []domain.EntityRecord) {
	v.screen.Clear()
	v.drawBorder()

	seen := make(map[uint32]struct{}, len(records))
	for _, r := range records {
		obj, err := v.object(r)
		if err != nil {
			continue
		}
		seen[mirrorKey(r)] = struct{}{}

		body := obj.Body()
		body.X = float64(r.X)
		body.Y = float64(r.Y)
		obj.Draw(&screenRenderer{
			screen: v.screen,
			style:  kindStyles[r.Kind],
			// 枠の内側に描く
			offsetX: 1,
			offsetY: 1,
		})
	}
	// スナップショットから消えたエンティティはミラーからも落とす
	for key := range v.mirror {
		if _, ok := seen[key]; !ok {
			delete(v.mirror, key)
		}
	}

	v.drawStatus(records)
	v.screen.Show()
}

func (v *view) drawBorder() {
	const w, h = int(application.StageWidth) + 1, int(application.StageHeight) + 1
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)

	for x := 1; x < w; x++ {
		v.screen.SetContent(x, 0, tcell.RuneHLine, nil, style)
		v.screen.SetContent(x, h, tcell.RuneHLine, nil, style)
	}
	for y := 1; y < h; y++ {
		v.screen.SetContent(0, y, tcell.RuneVLine, nil, style)
		v.screen.SetContent(w, y, tcell.RuneVLine, nil, style)
	}
	v.screen.SetContent(0, 0, tcell.RuneULCorner, nil, style)
	v.screen.SetContent(w, 0, tcell.RuneURCorner, nil, style)
	v.screen.SetContent(0, h, tcell.RuneLLCorner, nil, style)
	v.screen.SetContent(w, h, tcell.RuneLRCorner, nil, style)
}

func (v *view) drawStatus(records []domain.EntityRecord) {
	players, enemies, hp := 0, 0, 0
	for _, r := range records {
		switch r.Kind {
		case domain.KindPlayer:
			players++
			hp = int(r.HP)
		case domain.KindDrifter, domain.KindDiver:
			enemies++
		}
	}
	status := fmt.Sprintf(" hp:%d players:%d enemies:%d  [←↓↑→/hjkl] move [space] fire [q] quit", hp, players, enemies)
	v.setText(1, int(application.StageHeight)+2, status, tcell.StyleDefault)
}

func (v *view) setText(x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		v.screen.SetContent(x+i, y, ch, nil, style)
	}
}

// screenRenderer はsimのスプライトをtcellスクリーンに描く描画プリミティブです。
type screenRenderer struct {
	screen  tcell.Screen
	style   tcell.Style
	offsetX int
	offsetY int
}

// DrawCentered はスプライトを (x, y) を中心に描画します。空白セルは透過。
func (r *screenRenderer) DrawCentered(sprite *sim.Sprite, x, y int) {
	left := x - sprite.Width/2 + r.offsetX
	top := y - sprite.Height/2 + r.offsetY
	for row, runes := range sprite.Rows {
		for col, ch := range runes {
			if ch == ' ' {
				continue
			}
			r.screen.SetContent(left+col, top+row, ch, nil, r.style)
		}
	}
}
