package domain

import "context"

// Application はRoomのtickループに駆動されるゲームロジックです。
// 全メソッドはRoomの単一ゴルーチンから呼ばれる。
type Application interface {
	// HandleJoin はセッションのルーム参加を通知します。
	HandleJoin(ctx context.Context, sessionID SessionID)
	// HandleLeave はセッションのルーム離脱を通知します。
	HandleLeave(ctx context.Context, sessionID SessionID)
	// HandleMessage は受信したデータメッセージを処理します。
	HandleMessage(ctx context.Context, sessionID SessionID, data []byte) error
	// Tick は1フレーム進め、ブロードキャストするフレーム列を返します。
	Tick(ctx context.Context) [][]byte
}
