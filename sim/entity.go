package sim

import (
	"fmt"
	"math"
)

// Tick は1フレーム分の外部コンテキストです。
// 経過時間と現在のビューポート境界を振る舞いフックに渡します。
type Tick struct {
	Delta  float64 // 経過時間（秒）
	Width  float64 // ビューポート幅（セル）
	Height float64 // ビューポート高さ（セル）
}

// Renderer はスプライトを描画する外部プリミティブです。
type Renderer interface {
	// DrawCentered はスプライトを (x, y) を中心に描画します。
	DrawCentered(sprite *Sprite, x, y int)
}

// behaviour はバリアント固有の毎フレーム処理フックです。
// Step の位置積分より前に必ず完了します。
type behaviour interface {
	stepBehaviour(tick Tick)
}

// Object はステージが扱うシミュレーション対象の共通インターフェースです。
// 死亡判定が真になった個体の除去は呼び出し側の責務です。
type Object interface {
	Step(tick Tick)
	Draw(r Renderer)
	IsDead() bool
	Body() *Entity
}

// Entity はフィールド上のオブジェクトの運動状態を持つ共通部です。
// 速度は1tickあたりの変位、加速度は毎tick d²·a/2 として位置に直接加算される。
// 加速度が速度へ蓄積されることはない。
type Entity struct {
	X, Y           float64
	XSpeed, YSpeed float64
	XAccel, YAccel float64
	Radius         float64

	sprite    *Sprite
	behaviour behaviour
}

// init は位置とスプライトを設定し、半径をスプライト寸法から導出します。
// スプライトの解決に失敗した場合はエンティティを生成できない。
func (e *Entity) init(x, y float64, loader SpriteLoader, path string, b behaviour) error {
	sprite, err := loader.Load(path)
	if err != nil {
		return fmt.Errorf("entity sprite %q: %w", path, err)
	}
	e.X = x
	e.Y = y
	e.sprite = sprite
	e.Radius = float64(min(sprite.Width, sprite.Height)) / 2
	e.behaviour = b
	return nil
}

// initWithRadius は半径を明示指定して初期化します。
func (e *Entity) initWithRadius(x, y float64, loader SpriteLoader, path string, b behaviour, radius float64) error {
	if err := e.init(x, y, loader, path, b); err != nil {
		return err
	}
	e.Radius = radius
	return nil
}

// Step はバリアントの振る舞いフックを実行した後、位置を積分します。
func (e *Entity) Step(tick Tick) {
	if e.behaviour != nil {
		e.behaviour.stepBehaviour(tick)
	}
	d := tick.Delta
	e.X += e.XSpeed + d*d*e.XAccel/2
	e.Y += e.YSpeed + d*d*e.YAccel/2
}

// Draw はスプライトを現在位置（整数切り捨て）を中心に描画します。
func (e *Entity) Draw(r Renderer) {
	r.DrawCentered(e.sprite, int(e.X), int(e.Y))
}

// Sprite は保持しているスプライトを返します。
func (e *Entity) Sprite() *Sprite {
	return e.sprite
}

// Body は運動状態へのアクセスを提供します。
func (e *Entity) Body() *Entity {
	return e
}

// DistanceFrom は他エンティティとの中心間距離を返します。
func (e *Entity) DistanceFrom(other *Entity) float64 {
	return math.Hypot(other.X-e.X, other.Y-e.Y)
}

// Overlaps は半径の和が中心間距離以下のときtrueを返します。
// TODO: 比較方向が通常の円衝突判定と逆に見える。衝突解決に使う前に要確認。
func (e *Entity) Overlaps(other *Entity) bool {
	return e.Radius+other.Radius <= e.DistanceFrom(other)
}
