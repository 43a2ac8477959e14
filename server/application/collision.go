package application

import (
	"ashfall/server/domain"
	"ashfall/sim"
)

// Hit は1フレーム内で発生した命中です。
type Hit struct {
	X, Y   float64
	Target domain.EntityKind
}

// withinContact は中心間距離が半径の和以下かを返します。
// Entity.Overlapsは比較方向の確認が取れるまで解決パスでは使わない。
func withinContact(a, b *sim.Entity) bool {
	return a.DistanceFrom(b) <= a.Radius+b.Radius
}

// ResolveCollisions は弾丸対敵機、敵機対自機の接触を解決します。
// 弾丸は最初に接触した敵機のみに命中し、体当たりした敵機は消滅する。
func (s *Stage) ResolveCollisions() []Hit {
	var hits []Hit

	for _, shot := range s.bullets {
		if shot.Unit.IsDead() {
			continue
		}
		for _, enemy := range s.enemies {
			if enemy.Unit.IsDead() {
				continue
			}
			if withinContact(shot.Unit.Body(), enemy.Unit.Body()) {
				shot.Unit.MarkHit()
				enemy.Unit.Damage(BulletDamage)
				body := enemy.Unit.Body()
				hits = append(hits, Hit{X: body.X, Y: body.Y, Target: enemy.Kind})
				break
			}
		}
	}

	for _, enemy := range s.enemies {
		if enemy.Unit.IsDead() {
			continue
		}
		for _, ship := range s.players {
			// リスポーン待ちの自機は被弾しない
			if !ship.Unit.Alive() {
				continue
			}
			if withinContact(enemy.Unit.Body(), ship.Unit.Body()) {
				ship.Unit.Damage(ContactDamage)
				enemy.Unit.Damage(enemy.Unit.HP())
				body := ship.Unit.Body()
				hits = append(hits, Hit{X: body.X, Y: body.Y, Target: domain.KindPlayer})
				break
			}
		}
	}

	return hits
}
