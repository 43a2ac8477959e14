package domain

import (
	"sync/atomic"
	"time"
)

// Session は1接続の論理的な状態を表します。
type Session struct {
	id SessionID

	// activity
	lastRead atomic.Int64
	lastPong atomic.Int64

	// lifecycle
	closed atomic.Bool
}

func NewSession() *Session {
	s := &Session{id: NewSessionID()}
	now := time.Now().UnixNano()
	s.lastRead.Store(now)
	s.lastPong.Store(now)
	return s
}

func (s *Session) ID() SessionID { return s.id }

func (s *Session) TouchRead() {
	s.lastRead.Store(time.Now().UnixNano())
}

func (s *Session) TouchPong() {
	s.lastPong.Store(time.Now().UnixNano())
}

// Close はセッションを閉状態に遷移させます。最初の呼び出しのみtrueを返します。
func (s *Session) Close() bool {
	return s.closed.CompareAndSwap(false, true)
}

func (s *Session) Closed() bool { return s.closed.Load() }

// IsIdle は受信とpongの両方がtimeoutを超えて途絶えているかを返します。
// サーバーからの送信は一方的に続くため、書き込み時刻は判定に使わない。
func (s *Session) IsIdle(timeout time.Duration) (bool, IdleReason) {
	if timeout <= 0 {
		return false, IdleDisabled
	}
	now := time.Now().UnixNano()
	limit := timeout.Nanoseconds()

	var reason IdleReason
	if now-s.lastRead.Load() > limit {
		reason |= IdleRead
	}
	if now-s.lastPong.Load() > limit {
		reason |= IdlePong
	}
	if reason.Has(IdleRead) && reason.Has(IdlePong) {
		return true, reason
	}
	return false, IdleNone
}
