package application

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"ashfall/server/domain"
)

const (
	spawnInterval = 120 // 2秒 @60FPS
	maxEnemies    = 24
	maxWaveSize   = 4
	diverMinWave  = 3 // このwave以降にDiverが混ざる
)

// Spawner は一定間隔で敵機を補充します。
// waveが進むほど1回あたりの数が増え、Diverの混入が始まる。
type Spawner struct {
	countdown int
	wave      int
}

func NewSpawner() *Spawner {
	return &Spawner{countdown: spawnInterval}
}

// Step はカウントダウンを進め、満了したら敵機を湧かせます。
// 自機が1人もいない間はカウントダウンを戻して湧かせない。
func (sp *Spawner) Step(ctx context.Context, stage *Stage) {
	if len(stage.players) == 0 {
		sp.countdown = spawnInterval
		return
	}

	sp.countdown--
	if sp.countdown > 0 {
		return
	}
	sp.countdown = spawnInterval
	sp.wave++

	if len(stage.enemies) >= maxEnemies {
		return
	}

	count := min(1+sp.wave/5, maxWaveSize)
	for range count {
		kind := domain.KindDrifter
		if sp.wave >= diverMinWave && rand.IntN(3) == 0 {
			kind = domain.KindDiver
		}
		x := 2 + rand.Float64()*(StageWidth-4)
		if _, err := stage.SpawnEnemy(kind, x); err != nil {
			slog.ErrorContext(ctx, "spawner: failed to spawn enemy", "kind", kind, "err", err)
		}
	}
}

// Wave は現在のwave番号を返します。
func (sp *Spawner) Wave() int { return sp.wave }
