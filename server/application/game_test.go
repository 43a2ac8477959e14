package application

import (
	"errors"
	"math"
	"testing"

	"ashfall/assets"
	"ashfall/server/domain"
	"ashfall/sim"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	return NewGame(sim.NewFSLoader(assets.FS))
}

func inputMessage(sessionID domain.SessionID, keyMask uint16) []byte {
	return domain.EncodeInputMessage(sessionID, 1, &domain.InputPayload{KeyMask: keyMask})
}

func parseStateFrame(t *testing.T, frame []byte) (*domain.Header, *domain.StatePayload) {
	t.Helper()
	header, err := domain.ParseHeader(frame)
	if err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}
	ph, err := domain.ParsePayloadHeader(frame[domain.HeaderSize:])
	if err != nil {
		t.Fatalf("ParsePayloadHeader failed: %v", err)
	}
	if ph.DataType != domain.DataTypeState {
		t.Fatalf("DataType = %d, want DataTypeState", ph.DataType)
	}
	state, err := domain.ParseStatePayload(frame[domain.HeaderSize+domain.PayloadHeaderSize:])
	if err != nil {
		t.Fatalf("ParseStatePayload failed: %v", err)
	}
	return header, state
}

func TestGame_JoinAndSnapshot(t *testing.T) {
	game := newTestGame(t)
	sessionID := domain.NewSessionID()
	game.HandleJoin(t.Context(), sessionID)

	frames := game.Tick(t.Context())
	if len(frames) == 0 {
		t.Fatal("Tick should return at least the state frame")
	}
	_, state := parseStateFrame(t, frames[0])
	if len(state.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(state.Records))
	}
	if state.Records[0].Kind != domain.KindPlayer {
		t.Errorf("Kind = %d, want KindPlayer", state.Records[0].Kind)
	}
}

func TestGame_SeqIncrements(t *testing.T) {
	game := newTestGame(t)

	for want := uint16(1); want <= 2; want++ {
		frames := game.Tick(t.Context())
		header, _ := parseStateFrame(t, frames[0])
		if header.Seq != want {
			t.Errorf("Seq = %d, want %d", header.Seq, want)
		}
	}
}

func TestGame_MoveLeft(t *testing.T) {
	game := newTestGame(t)
	sessionID := domain.NewSessionID()
	game.HandleJoin(t.Context(), sessionID)

	ship, ok := game.stage.Player(sessionID)
	if !ok {
		t.Fatal("player not spawned")
	}
	startX := ship.Unit.Body().X

	if err := game.HandleMessage(t.Context(), sessionID, inputMessage(sessionID, domain.KeyLeft)); err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}
	game.Tick(t.Context())
	if got, want := ship.Unit.Body().X, startX-sim.PlayerSpeed; got != want {
		t.Errorf("X = %f, want %f", got, want)
	}

	// 入力は1tickで消費され、次のtickでは動かない
	moved := ship.Unit.Body().X
	game.Tick(t.Context())
	if ship.Unit.Body().X != moved {
		t.Errorf("X = %f, want %f after input consumed", ship.Unit.Body().X, moved)
	}
}

func TestGame_FireCreatesBullet(t *testing.T) {
	game := newTestGame(t)
	sessionID := domain.NewSessionID()
	game.HandleJoin(t.Context(), sessionID)

	if err := game.HandleMessage(t.Context(), sessionID, inputMessage(sessionID, domain.KeyFire)); err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}
	frames := game.Tick(t.Context())
	_, state := parseStateFrame(t, frames[0])

	var bullet *domain.EntityRecord
	for i := range state.Records {
		if state.Records[i].Kind == domain.KindBullet {
			bullet = &state.Records[i]
		}
	}
	if bullet == nil {
		t.Fatal("snapshot should contain the fired bullet")
	}
	// 無指定のaimは真上扱いで、弾丸は上に進む
	if bullet.Y >= StageHeight-3 {
		t.Errorf("bullet Y = %f, want above the ship", bullet.Y)
	}
}

func TestGame_BulletHitEmitsEvent(t *testing.T) {
	game := newTestGame(t)
	sessionID := domain.NewSessionID()
	game.HandleJoin(t.Context(), sessionID)

	ship, _ := game.stage.Player(sessionID)
	enemy, err := game.stage.SpawnEnemy(domain.KindDrifter, 0)
	if err != nil {
		t.Fatalf("SpawnEnemy failed: %v", err)
	}
	// 発射直後の弾丸の位置に敵機を置く
	enemy.Unit.Body().X = ship.Unit.Body().X
	enemy.Unit.Body().Y = ship.Unit.Body().Y - 4

	if err := game.HandleMessage(t.Context(), sessionID, inputMessage(sessionID, domain.KeyFire)); err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}
	frames := game.Tick(t.Context())
	if len(frames) < 2 {
		t.Fatalf("frames = %d, want state + hit event", len(frames))
	}

	event := frames[1]
	ph, err := domain.ParsePayloadHeader(event[domain.HeaderSize:])
	if err != nil {
		t.Fatalf("ParsePayloadHeader failed: %v", err)
	}
	if ph.DataType != domain.DataTypeEvent || domain.EventSubType(ph.SubType) != domain.EventSubTypeHit {
		t.Fatalf("payload header = %+v, want event/hit", ph)
	}
	hit, err := domain.ParseHitEventPayload(event[domain.HeaderSize+domain.PayloadHeaderSize:])
	if err != nil {
		t.Fatalf("ParseHitEventPayload failed: %v", err)
	}
	if hit.Target != domain.KindDrifter {
		t.Errorf("Target = %d, want KindDrifter", hit.Target)
	}
	if got, want := enemy.Unit.HP(), sim.DrifterHP-BulletDamage; got != want {
		t.Errorf("enemy HP = %d, want %d", got, want)
	}
}

func TestGame_RejectsNonInput(t *testing.T) {
	game := newTestGame(t)
	sessionID := domain.NewSessionID()

	err := game.HandleMessage(t.Context(), sessionID, domain.EncodeJoinMessage(sessionID))
	if !errors.Is(err, ErrUnexpectedMessage) {
		t.Errorf("error = %v, want ErrUnexpectedMessage", err)
	}
}

func TestGame_RejectsNonFiniteAim(t *testing.T) {
	game := newTestGame(t)
	sessionID := domain.NewSessionID()

	input := &domain.InputPayload{KeyMask: domain.KeyFire, AimX: float32(math.NaN())}
	err := game.HandleMessage(t.Context(), sessionID, domain.EncodeInputMessage(sessionID, 1, input))
	if !errors.Is(err, ErrInvalidAim) {
		t.Errorf("error = %v, want ErrInvalidAim", err)
	}
}

func TestGame_LeaveRemovesPlayer(t *testing.T) {
	game := newTestGame(t)
	sessionID := domain.NewSessionID()
	game.HandleJoin(t.Context(), sessionID)
	game.Tick(t.Context())

	game.HandleLeave(t.Context(), sessionID)
	frames := game.Tick(t.Context())
	_, state := parseStateFrame(t, frames[0])
	if len(state.Records) != 0 {
		t.Errorf("records = %d, want 0 after leave", len(state.Records))
	}
}
