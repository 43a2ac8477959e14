package sim

import (
	"math"
	"math/rand/v2"
)

const (
	drifterSpritePath = "sprites/drifter.txt"
	diverSpritePath   = "sprites/diver.txt"

	DrifterHP = 40
	DiverHP   = 20

	drifterFallSpeed = 0.08 // 1tickあたりの降下量（セル）
	diverFallSpeed   = 0.05
	diveRate         = 220.0 // 急降下中の加速度の増加率（セル/秒³）
)

// EnemyObject は敵機バリアントの共通インターフェースです。
type EnemyObject interface {
	Object
	Damage(n int)
	HP() int
}

// Enemy は敵機の共通状態です。バリアントがスプライトと振る舞いを供給します。
type Enemy struct {
	Entity
	hp      int
	escaped bool // 画面下に抜けた（戻らないラッチ）
}

func (en *Enemy) HP() int { return en.hp }

// Damage は敵機にダメージを与えます。HPは0未満にならない。
func (en *Enemy) Damage(n int) {
	if n >= en.hp {
		en.hp = 0
		return
	}
	en.hp -= n
}

func (en *Enemy) IsDead() bool { return en.hp <= 0 || en.escaped }

func (en *Enemy) checkEscaped(tick Tick) {
	if en.Y > tick.Height {
		en.escaped = true
	}
}

// Drifter は正弦波で左右に揺れながら降下する敵機です。
// 揺れの振幅・周波数・初期位相は個体ごとにランダム。
type Drifter struct {
	Enemy
	amplitude float64
	frequency float64
	phase     float64
}

func NewDrifter(x, y float64, loader SpriteLoader) (*Drifter, error) {
	d := &Drifter{
		amplitude: 0.15 + rand.Float64()*0.25,
		frequency: 1.0 + rand.Float64()*2.0,
		phase:     rand.Float64() * 2 * math.Pi,
	}
	if err := d.init(x, y, loader, d.SpritePath(), d); err != nil {
		return nil, err
	}
	d.hp = DrifterHP
	d.YSpeed = drifterFallSpeed
	return d, nil
}

func (d *Drifter) SpritePath() string { return drifterSpritePath }

func (d *Drifter) stepBehaviour(tick Tick) {
	d.phase += tick.Delta * d.frequency
	d.XSpeed = d.amplitude * math.Sin(d.phase)
	d.checkEscaped(tick)
}

// Diver はゆっくり降下したのち、一定の深さで急降下に移る敵機です。
// 急降下はYAccelを時間に比例して引き上げることで表現する。
type Diver struct {
	Enemy
	diving      bool
	diveTime    float64
	triggerFrac float64 // ビューポート高さに対する急降下開始位置の割合
}

func NewDiver(x, y float64, loader SpriteLoader) (*Diver, error) {
	v := &Diver{
		triggerFrac: 0.2 + rand.Float64()*0.2,
	}
	if err := v.init(x, y, loader, v.SpritePath(), v); err != nil {
		return nil, err
	}
	v.hp = DiverHP
	v.YSpeed = diverFallSpeed
	return v, nil
}

func (v *Diver) SpritePath() string { return diverSpritePath }

func (v *Diver) stepBehaviour(tick Tick) {
	if !v.diving && v.Y >= v.triggerFrac*tick.Height {
		v.diving = true
	}
	if v.diving {
		v.diveTime += tick.Delta
		v.YAccel = diveRate * v.diveTime
	}
	v.checkEscaped(tick)
}

// Diving は急降下中かを返します。
func (v *Diver) Diving() bool { return v.diving }
