package application

import (
	"testing"

	"ashfall/server/domain"
	"ashfall/sim"
)

func TestResolveCollisions_BulletHitsEnemy(t *testing.T) {
	stage := newTestStage(t)
	enemy, err := stage.SpawnEnemy(domain.KindDrifter, 50)
	if err != nil {
		t.Fatalf("SpawnEnemy failed: %v", err)
	}
	enemy.Unit.Body().Y = 10

	shot, err := stage.FireBullet(domain.NewSessionID(), 50, 10, 0, 0)
	if err != nil {
		t.Fatalf("FireBullet failed: %v", err)
	}

	hits := stage.ResolveCollisions()
	if len(hits) != 1 {
		t.Fatalf("hits = %d, want 1", len(hits))
	}
	if hits[0].Target != domain.KindDrifter {
		t.Errorf("Target = %d, want KindDrifter", hits[0].Target)
	}
	if got, want := enemy.Unit.HP(), sim.DrifterHP-BulletDamage; got != want {
		t.Errorf("enemy HP = %d, want %d", got, want)
	}
	if !shot.Unit.IsDead() {
		t.Error("bullet should be dead after hit")
	}
}

func TestResolveCollisions_EnemyRamsPlayer(t *testing.T) {
	stage := newTestStage(t)
	sessionID := domain.NewSessionID()
	ship, err := stage.SpawnPlayer(sessionID)
	if err != nil {
		t.Fatalf("SpawnPlayer failed: %v", err)
	}
	enemy, err := stage.SpawnEnemy(domain.KindDiver, 0)
	if err != nil {
		t.Fatalf("SpawnEnemy failed: %v", err)
	}
	enemy.Unit.Body().X = ship.Unit.Body().X
	enemy.Unit.Body().Y = ship.Unit.Body().Y

	hits := stage.ResolveCollisions()
	if len(hits) != 1 {
		t.Fatalf("hits = %d, want 1", len(hits))
	}
	if hits[0].Target != domain.KindPlayer {
		t.Errorf("Target = %d, want KindPlayer", hits[0].Target)
	}
	if got, want := ship.Unit.HP(), sim.PlayerMaxHP-ContactDamage; got != want {
		t.Errorf("player HP = %d, want %d", got, want)
	}
	// 体当たりした敵機は消滅する
	if !enemy.Unit.IsDead() {
		t.Error("ramming enemy should be destroyed")
	}
}

func TestResolveCollisions_RespawningPlayerNotHit(t *testing.T) {
	stage := newTestStage(t)
	ship, err := stage.SpawnPlayer(domain.NewSessionID())
	if err != nil {
		t.Fatalf("SpawnPlayer failed: %v", err)
	}
	enemy, err := stage.SpawnEnemy(domain.KindDrifter, 0)
	if err != nil {
		t.Fatalf("SpawnEnemy failed: %v", err)
	}
	enemy.Unit.Body().X = ship.Unit.Body().X
	enemy.Unit.Body().Y = ship.Unit.Body().Y

	// 残機を1消費させてリスポーン待ちにする
	ship.Unit.Damage(sim.PlayerMaxHP)
	if ship.Unit.Alive() {
		t.Fatal("player should be respawning")
	}

	if hits := stage.ResolveCollisions(); len(hits) != 0 {
		t.Errorf("hits = %d, want 0 while respawning", len(hits))
	}
	if enemy.Unit.IsDead() {
		t.Error("enemy should survive contact with a respawning player")
	}
}

func TestResolveCollisions_NoContact(t *testing.T) {
	stage := newTestStage(t)
	if _, err := stage.SpawnEnemy(domain.KindDrifter, 10); err != nil {
		t.Fatalf("SpawnEnemy failed: %v", err)
	}
	if _, err := stage.FireBullet(domain.NewSessionID(), 100, 30, 0, 0); err != nil {
		t.Fatalf("FireBullet failed: %v", err)
	}

	if hits := stage.ResolveCollisions(); len(hits) != 0 {
		t.Errorf("hits = %d, want 0", len(hits))
	}
}
