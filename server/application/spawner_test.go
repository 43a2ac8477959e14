package application

import (
	"testing"

	"ashfall/server/domain"
)

func TestSpawner_NoPlayersNoSpawn(t *testing.T) {
	stage := newTestStage(t)
	spawner := NewSpawner()

	for range spawnInterval * 3 {
		spawner.Step(t.Context(), stage)
	}
	if len(stage.enemies) != 0 {
		t.Errorf("enemies = %d, want 0 without players", len(stage.enemies))
	}
}

func TestSpawner_SpawnsWithPlayer(t *testing.T) {
	stage := newTestStage(t)
	if _, err := stage.SpawnPlayer(domain.NewSessionID()); err != nil {
		t.Fatalf("SpawnPlayer failed: %v", err)
	}
	spawner := NewSpawner()

	for range spawnInterval {
		spawner.Step(t.Context(), stage)
	}
	if len(stage.enemies) == 0 {
		t.Error("spawner should have spawned enemies after the interval")
	}
	if spawner.Wave() != 1 {
		t.Errorf("wave = %d, want 1", spawner.Wave())
	}
}

func TestSpawner_RespectsEnemyCap(t *testing.T) {
	stage := newTestStage(t)
	if _, err := stage.SpawnPlayer(domain.NewSessionID()); err != nil {
		t.Fatalf("SpawnPlayer failed: %v", err)
	}
	for range maxEnemies {
		if _, err := stage.SpawnEnemy(domain.KindDrifter, 10); err != nil {
			t.Fatalf("SpawnEnemy failed: %v", err)
		}
	}
	spawner := NewSpawner()

	for range spawnInterval {
		spawner.Step(t.Context(), stage)
	}
	if len(stage.enemies) != maxEnemies {
		t.Errorf("enemies = %d, want capped at %d", len(stage.enemies), maxEnemies)
	}
}
