package application

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"ashfall/server/domain"
	"ashfall/sim"
	"ashfall/utils"
)

var (
	// ErrUnexpectedMessage はゲームが扱えない種別のメッセージを受けた場合のエラーです。
	ErrUnexpectedMessage = errors.New("unexpected message type")
	// ErrInvalidAim は射撃方向が有限値でない場合のエラーです。
	ErrInvalidAim = errors.New("aim vector must be finite")
)

// Game は1ルーム分のゲーム進行を司るApplication実装です。
// 入力は次のtickで消費される。同一tick内の複数入力は後勝ち。
type Game struct {
	stage   *Stage
	spawner *Spawner
	inputs  map[domain.SessionID]*domain.InputPayload
	seq     uint16
}

func NewGame(loader sim.SpriteLoader) *Game {
	return &Game{
		stage:   NewStage(loader),
		spawner: NewSpawner(),
		inputs:  make(map[domain.SessionID]*domain.InputPayload),
	}
}

func (g *Game) HandleJoin(ctx context.Context, sessionID domain.SessionID) {
	if _, err := g.stage.SpawnPlayer(sessionID); err != nil {
		slog.ErrorContext(ctx, "game: failed to spawn player", "sessionID", sessionID, "err", err)
		return
	}
	slog.InfoContext(ctx, "game: player joined", "sessionID", sessionID)
}

func (g *Game) HandleLeave(ctx context.Context, sessionID domain.SessionID) {
	g.stage.RemovePlayer(sessionID)
	delete(g.inputs, sessionID)
	slog.InfoContext(ctx, "game: player left", "sessionID", sessionID)
}

// HandleMessage は入力メッセージを検証し、次tickの適用対象として保持します。
func (g *Game) HandleMessage(_ context.Context, sessionID domain.SessionID, data []byte) error {
	if len(data) < domain.HeaderSize+domain.PayloadHeaderSize {
		return ErrUnexpectedMessage
	}
	payloadHeader, err := domain.ParsePayloadHeader(data[domain.HeaderSize:])
	if err != nil {
		return err
	}
	if payloadHeader.DataType != domain.DataTypeInput {
		return ErrUnexpectedMessage
	}
	input, err := domain.ParseInputPayload(data[domain.HeaderSize+domain.PayloadHeaderSize:])
	if err != nil {
		return err
	}
	if !utils.FiniteVec2(input.AimX, input.AimY) {
		return ErrInvalidAim
	}
	g.inputs[sessionID] = input
	return nil
}

// Tick は1フレーム進め、配信すべきメッセージ列を返します。
// 先頭はステージスナップショット、続いて命中イベント。
func (g *Game) Tick(ctx context.Context) [][]byte {
	g.applyInputs(ctx)
	g.spawner.Step(ctx, g.stage)
	g.stage.Step()
	hits := g.stage.ResolveCollisions()
	g.stage.Cull()

	g.seq++
	frames := [][]byte{domain.EncodeStateMessage(g.seq, g.stage.Snapshot())}
	for _, hit := range hits {
		frames = append(frames, domain.EncodeHitEventMessage(g.seq, &domain.HitEventPayload{
			X:      float32(hit.X),
			Y:      float32(hit.Y),
			Target: hit.Target,
		}))
	}
	return frames
}

// applyInputs は保持している入力を自機に反映し、消費します。
// 入力のないtickでは速度がゼロに戻る。
func (g *Game) applyInputs(ctx context.Context) {
	for _, ship := range g.stage.players {
		body := ship.Unit.Body()
		body.XSpeed = 0
		body.YSpeed = 0
	}

	for sessionID, input := range g.inputs {
		ship, ok := g.stage.Player(sessionID)
		if !ok {
			continue
		}
		if !ship.Unit.Alive() {
			continue
		}
		body := ship.Unit.Body()
		if input.KeyMask&domain.KeyLeft != 0 {
			body.XSpeed -= sim.PlayerSpeed
		}
		if input.KeyMask&domain.KeyRight != 0 {
			body.XSpeed += sim.PlayerSpeed
		}
		if input.KeyMask&domain.KeyUp != 0 {
			body.YSpeed -= sim.PlayerSpeed
		}
		if input.KeyMask&domain.KeyDown != 0 {
			body.YSpeed += sim.PlayerSpeed
		}
		if input.KeyMask&domain.KeyFire != 0 && ship.Unit.TryFire() {
			aimX, aimY := aimDirection(input.AimX, input.AimY)
			muzzleY := body.Y - 2
			if _, err := g.stage.FireBullet(sessionID, body.X, muzzleY, aimX*BulletSpeed, aimY*BulletSpeed); err != nil {
				slog.ErrorContext(ctx, "game: failed to fire bullet", "sessionID", sessionID, "err", err)
			}
		}
	}
	clear(g.inputs)
}

// aimDirection は射撃方向を正規化します。ゼロベクトルは真上扱い。
func aimDirection(x, y float32) (float64, float64) {
	length := math.Hypot(float64(x), float64(y))
	if length == 0 {
		return 0, -1
	}
	return float64(x) / length, float64(y) / length
}
