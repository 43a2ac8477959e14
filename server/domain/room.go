package domain

import (
	"context"
	"log/slog"
	"time"
)

// Room はセッションの集合とゲームのtickループを管理します。
// Applicationの全呼び出しはRunの単一ゴルーチンから行われる。
type Room struct {
	ID       RoomID
	sessions map[SessionID]struct{}

	pubsub      PubSub
	application Application

	tickInterval time.Duration
}

func NewRoom(id RoomID, pubsub PubSub, application Application) *Room {
	return &Room{
		ID:           id,
		sessions:     make(map[SessionID]struct{}),
		pubsub:       pubsub,
		application:  application,
		tickInterval: time.Second / 60,
	}
}

// Broadcast は参加中の全セッションにデータを配送します。
func (r *Room) Broadcast(ctx context.Context, data []byte) {
	for sessionID := range r.sessions {
		topic := Topic("session:" + sessionID.String())
		r.pubsub.Publish(ctx, topic, Message{Data: data})
	}
}

// Run はtickごとに受信メッセージの処理とApplicationの進行を行います。
// ctxがキャンセルされると終了します。
func (r *Room) Run(ctx context.Context) error {
	roomTopic := Topic("room:" + r.ID.String())
	msgCh := r.pubsub.Subscribe(roomTopic)
	defer r.pubsub.Unsubscribe(roomTopic, msgCh)

	ticker := time.NewTicker(r.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			// 受信メッセージを処理
		RECEIVE_LOOP:
			for {
				select {
				case msg := <-msgCh:
					r.dispatch(ctx, msg)
				default:
					break RECEIVE_LOOP
				}
			}
			// 1フレーム進めて結果をブロードキャスト
			for _, frame := range r.application.Tick(ctx) {
				r.Broadcast(ctx, frame)
			}
		}
	}
}

// dispatch はroom宛メッセージを種別ごとに処理します。
// join/leaveはここでセッション集合を更新し、それ以外はApplicationに渡す。
func (r *Room) dispatch(ctx context.Context, msg Message) {
	if len(msg.Data) < HeaderSize+PayloadHeaderSize {
		slog.WarnContext(ctx, "room: message too short", "sessionID", msg.SessionID)
		return
	}
	payloadHeader, err := ParsePayloadHeader(msg.Data[HeaderSize:])
	if err != nil {
		slog.WarnContext(ctx, "room: failed to parse payload header", "err", err)
		return
	}

	if payloadHeader.DataType == DataTypeControl {
		switch ControlSubType(payloadHeader.SubType) {
		case ControlSubTypeJoin:
			r.sessions[msg.SessionID] = struct{}{}
			r.application.HandleJoin(ctx, msg.SessionID)
			slog.DebugContext(ctx, "room: session joined", "roomID", r.ID, "sessionID", msg.SessionID)
		case ControlSubTypeLeave:
			delete(r.sessions, msg.SessionID)
			r.application.HandleLeave(ctx, msg.SessionID)
			slog.DebugContext(ctx, "room: session left", "roomID", r.ID, "sessionID", msg.SessionID)
		default:
			slog.WarnContext(ctx, "room: unexpected control subtype", "subType", payloadHeader.SubType)
		}
		return
	}

	if err := r.application.HandleMessage(ctx, msg.SessionID, msg.Data); err != nil {
		slog.WarnContext(ctx, "room: handle message failed", "err", err)
	}
}
