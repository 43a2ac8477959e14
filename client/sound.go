package main

import (
	"log/slog"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const soundSampleRate = beep.SampleRate(44100)

// soundPlayer は効果音を鳴らします。初期化に失敗しても無音で動き続ける。
type soundPlayer struct {
	initialized bool
}

func newSoundPlayer() *soundPlayer {
	sp := &soundPlayer{}
	if err := speaker.Init(soundSampleRate, soundSampleRate.N(time.Second/10)); err != nil {
		slog.Warn("audio initialization failed, continuing without sound", "err", err)
		return sp
	}
	sp.initialized = true
	return sp
}

func (sp *soundPlayer) playTone(freq float64, duration time.Duration) {
	if !sp.initialized {
		return
	}
	sine, err := generators.SineTone(soundSampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(soundSampleRate.N(duration), sine))
}

func (sp *soundPlayer) fire() {
	sp.playTone(440, 30*time.Millisecond)
}

func (sp *soundPlayer) hit() {
	sp.playTone(880, 50*time.Millisecond)
}
