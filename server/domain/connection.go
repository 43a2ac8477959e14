package domain

import (
	"context"
	"time"
)

type ConnectionID string

// closeStatusNormal はwebsocketの正常クローズコードに対応します。
const closeStatusNormal = 1000

// Connection はセッションに束ねられた物理接続です。
// 再接続で張り替わり得るため、セッションIDとは独立した接続IDを持つ。
type Connection struct {
	SessionID    SessionID
	ConnectionID ConnectionID
	transport    Transport
	openedAt     time.Time
}

func NewConnection(sessionID SessionID, transport Transport) *Connection {
	return &Connection{
		SessionID:    sessionID,
		ConnectionID: ConnectionID(NewSessionID().String()),
		transport:    transport,
		openedAt:     time.Now(),
	}
}

func (c *Connection) Read(ctx context.Context) ([]byte, error) {
	return c.transport.Read(ctx)
}

func (c *Connection) Write(ctx context.Context, data []byte) error {
	return c.transport.Write(ctx, data)
}

// Close は正常クローズとして接続を畳みます。
func (c *Connection) Close() {
	_ = c.transport.Close(closeStatusNormal, "")
}

// Age は接続が開かれてからの経過時間を返します。
func (c *Connection) Age() time.Duration {
	return time.Since(c.openedAt)
}
