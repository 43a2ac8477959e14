package domain

import (
	"testing"
	"time"
)

func TestSession_NotIdleInitially(t *testing.T) {
	s := NewSession()
	if idle, _ := s.IsIdle(30 * time.Second); idle {
		t.Error("new session should not be idle")
	}
}

func TestSession_IdleDisabled(t *testing.T) {
	s := NewSession()
	idle, reason := s.IsIdle(0)
	if idle {
		t.Error("idle check should be disabled for timeout <= 0")
	}
	if reason != IdleDisabled {
		t.Errorf("reason = %v, want IdleDisabled", reason)
	}
}

func TestSession_IdleAfterSilence(t *testing.T) {
	s := NewSession()
	time.Sleep(5 * time.Millisecond)

	idle, reason := s.IsIdle(time.Nanosecond)
	if !idle {
		t.Fatal("session should be idle")
	}
	if !reason.Has(IdleRead) || !reason.Has(IdlePong) {
		t.Errorf("reason = %v, want IdleRead|IdlePong", reason)
	}
}

func TestSession_TouchResetsIdle(t *testing.T) {
	s := NewSession()
	time.Sleep(5 * time.Millisecond)

	s.TouchRead()
	s.TouchPong()
	if idle, _ := s.IsIdle(time.Second); idle {
		t.Error("session should not be idle after touch")
	}
}

func TestSession_PongStaleReadFresh(t *testing.T) {
	s := NewSession()
	time.Sleep(5 * time.Millisecond)
	s.TouchRead()

	// pongだけ途絶えていてもアイドルとは判定しない
	if idle, _ := s.IsIdle(time.Millisecond); idle {
		t.Error("session should not be idle while reads are fresh")
	}
}

func TestSession_CloseOnce(t *testing.T) {
	s := NewSession()
	if !s.Close() {
		t.Error("first Close should return true")
	}
	if s.Close() {
		t.Error("second Close should return false")
	}
	if !s.Closed() {
		t.Error("Closed should report true")
	}
}
