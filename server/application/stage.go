package application

import (
	"errors"

	"ashfall/server/domain"
	"ashfall/sim"
)

const (
	StageWidth  = 120.0 // セル
	StageHeight = 40.0
	TickDelta   = 1.0 / 60 // 秒

	BulletSpeed   = 1.2 // 1tickあたりの弾速（セル）
	BulletDamage  = 20
	ContactDamage = 35

	// スプライトは1セルだが、当たり判定は少し広めに取る
	bulletHitRadius = 0.75
)

var ErrUnknownEnemyKind = errors.New("unknown enemy kind")

// PlayerShip はステージ上の自機とそのエンティティIDの対応です。
type PlayerShip struct {
	ID   uint16
	Unit *sim.Player
}

// EnemyUnit はステージ上の敵機です。
type EnemyUnit struct {
	ID   uint16
	Kind domain.EntityKind
	Unit sim.EnemyObject
}

// BulletShot はステージ上の弾丸と発射元セッションの対応です。
type BulletShot struct {
	ID    uint16
	Owner domain.SessionID
	Unit  *sim.Bullet
}

// Stage は1ルーム分のフィールド状態を保持します。
// 全操作はルームのtickループの単一ゴルーチンから呼ばれる前提で、ロックは持たない。
type Stage struct {
	loader  sim.SpriteLoader
	players map[domain.SessionID]*PlayerShip
	enemies map[uint16]*EnemyUnit
	bullets map[uint16]*BulletShot
	nextID  uint16
}

func NewStage(loader sim.SpriteLoader) *Stage {
	return &Stage{
		loader:  loader,
		players: make(map[domain.SessionID]*PlayerShip),
		enemies: make(map[uint16]*EnemyUnit),
		bullets: make(map[uint16]*BulletShot),
	}
}

func (s *Stage) nextEntityID() uint16 {
	s.nextID++
	return s.nextID
}

// Tick は現在のステージ境界を含むフレームコンテキストを返します。
func (s *Stage) Tick() sim.Tick {
	return sim.Tick{Delta: TickDelta, Width: StageWidth, Height: StageHeight}
}

// SpawnPlayer はステージ下部中央に自機を配置します。既に存在する場合は何もしない。
func (s *Stage) SpawnPlayer(sessionID domain.SessionID) (*PlayerShip, error) {
	if ship, ok := s.players[sessionID]; ok {
		return ship, nil
	}
	unit, err := sim.NewPlayer(StageWidth/2, StageHeight-3, s.loader)
	if err != nil {
		return nil, err
	}
	ship := &PlayerShip{ID: s.nextEntityID(), Unit: unit}
	s.players[sessionID] = ship
	return ship, nil
}

func (s *Stage) RemovePlayer(sessionID domain.SessionID) {
	delete(s.players, sessionID)
}

func (s *Stage) Player(sessionID domain.SessionID) (*PlayerShip, bool) {
	ship, ok := s.players[sessionID]
	return ship, ok
}

// SpawnEnemy はステージ上端に敵機を配置します。
func (s *Stage) SpawnEnemy(kind domain.EntityKind, x float64) (*EnemyUnit, error) {
	var (
		unit sim.EnemyObject
		err  error
	)
	switch kind {
	case domain.KindDrifter:
		unit, err = sim.NewDrifter(x, 1, s.loader)
	case domain.KindDiver:
		unit, err = sim.NewDiver(x, 1, s.loader)
	default:
		return nil, ErrUnknownEnemyKind
	}
	if err != nil {
		return nil, err
	}
	enemy := &EnemyUnit{ID: s.nextEntityID(), Kind: kind, Unit: unit}
	s.enemies[enemy.ID] = enemy
	return enemy, nil
}

// FireBullet は指定位置から指定速度で弾丸を発射します。
func (s *Stage) FireBullet(owner domain.SessionID, x, y, vx, vy float64) (*BulletShot, error) {
	unit, err := sim.NewBulletWithRadius(x, y, s.loader, bulletHitRadius)
	if err != nil {
		return nil, err
	}
	unit.XSpeed = vx
	unit.YSpeed = vy
	shot := &BulletShot{ID: s.nextEntityID(), Owner: owner, Unit: unit}
	s.bullets[shot.ID] = shot
	return shot, nil
}

// Step は全オブジェクトを1フレーム進めます。自機はステージ境界に収める。
func (s *Stage) Step() {
	tick := s.Tick()
	for _, ship := range s.players {
		ship.Unit.Step(tick)
		body := ship.Unit.Body()
		body.X = min(max(body.X, 0), StageWidth)
		body.Y = min(max(body.Y, 0), StageHeight)
	}
	for _, enemy := range s.enemies {
		enemy.Unit.Step(tick)
	}
	for _, shot := range s.bullets {
		shot.Unit.Step(tick)
	}
}

// Cull は死亡判定が真のオブジェクトを取り除きます。
func (s *Stage) Cull() {
	for sessionID, ship := range s.players {
		if ship.Unit.IsDead() {
			delete(s.players, sessionID)
		}
	}
	for id, enemy := range s.enemies {
		if enemy.Unit.IsDead() {
			delete(s.enemies, id)
		}
	}
	for id, shot := range s.bullets {
		if shot.Unit.IsDead() {
			delete(s.bullets, id)
		}
	}
}

// Snapshot は現在のステージ状態をワイヤ形式のレコード列に写します。
func (s *Stage) Snapshot() []domain.EntityRecord {
	records := make([]domain.EntityRecord, 0, len(s.players)+len(s.enemies)+len(s.bullets))
	for _, ship := range s.players {
		body := ship.Unit.Body()
		records = append(records, domain.EntityRecord{
			Kind: domain.KindPlayer,
			ID:   ship.ID,
			X:    float32(body.X),
			Y:    float32(body.Y),
			HP:   uint8(ship.Unit.HP()),
		})
	}
	for _, enemy := range s.enemies {
		body := enemy.Unit.Body()
		records = append(records, domain.EntityRecord{
			Kind: enemy.Kind,
			ID:   enemy.ID,
			X:    float32(body.X),
			Y:    float32(body.Y),
			HP:   uint8(enemy.Unit.HP()),
		})
	}
	for _, shot := range s.bullets {
		body := shot.Unit.Body()
		records = append(records, domain.EntityRecord{
			Kind: domain.KindBullet,
			ID:   shot.ID,
			X:    float32(body.X),
			Y:    float32(body.Y),
		})
	}
	return records
}
