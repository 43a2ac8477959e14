package domain

import (
	"context"
	"log/slog"
	"time"
)

// HeartbeatService はセッションの死活確認を行います。
// 一定間隔でpingメッセージをエンキューし、応答（pong）の監視は
// セッションのアイドル判定側に任せる。
type HeartbeatService struct {
	interval time.Duration
	session  *Session
	enqueue  func(data []byte) error
}

// NewHeartbeatService はenqueue経由でpingを送るHeartbeatServiceを生成します。
func NewHeartbeatService(interval time.Duration, session *Session, enqueue func(data []byte) error) *HeartbeatService {
	return &HeartbeatService{
		interval: interval,
		session:  session,
		enqueue:  enqueue,
	}
}

// Run はctxがキャンセルされるまでinterval間隔でpingをエンキューし続けます。
// エンキューに失敗したpingは捨てられ、次の周期で改めて送られる。
func (h *HeartbeatService) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := h.enqueue(EncodePingMessage(h.session.ID())); err != nil {
				slog.WarnContext(ctx, "heartbeat: ping skipped", "sessionID", h.session.ID(), "err", err)
				continue
			}
			slog.DebugContext(ctx, "heartbeat: ping queued", "sessionID", h.session.ID())
		}
	}
}
