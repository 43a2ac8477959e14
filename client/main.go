package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"ashfall/assets"
	"ashfall/server/domain"
	"ashfall/sim"
	"ashfall/utils"
)

func main() {
	logFile, err := os.OpenFile("ashfall-client.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	// 画面はtcellが占有するのでログはファイルへ
	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelInfo})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := utils.GetEnvDefault("ADDR", "localhost")
	port := utils.GetEnvDefault("PORT", "9090")
	serverURL := fmt.Sprintf("ws://%s:%s/ws", addr, port)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)
	defer close(quit)

	v := newView(screen, sim.NewFSLoader(assets.FS))
	sound := newSoundPlayer()

	for {
		if ctx.Err() != nil {
			return
		}
		err := runSession(ctx, serverURL, v, sound, events)
		if err != nil && ctx.Err() == nil {
			slog.Warn("session ended, reconnecting", "err", err)
			time.Sleep(2 * time.Second)
			continue
		}
		return
	}
}

// client は1接続分の状態を保持します。
type client struct {
	conn  *websocket.Conn
	view  *view
	sound *soundPlayer

	mu        sync.Mutex
	sessionID domain.SessionID
	seq       uint16
}

func (c *client) write(ctx context.Context, data []byte) error {
	return c.conn.Write(ctx, websocket.MessageBinary, data)
}

func (c *client) session() domain.SessionID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

func (c *client) nextSeq() uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// runSession は接続が切れるかユーザーが終了するまでブロックします。
func runSession(ctx context.Context, serverURL string, v *view, sound *soundPlayer, events <-chan tcell.Event) error {
	conn, _, err := websocket.Dial(ctx, serverURL, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.CloseNow()
	slog.Info("connected", "server", serverURL)

	c := &client{conn: conn, view: v, sound: sound}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return c.readLoop(ctx) })
	eg.Go(func() error { return c.inputLoop(ctx, events) })
	return eg.Wait()
}

// readLoop はサーバーからのメッセージを処理します。
func (c *client) readLoop(ctx context.Context) error {
	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		if len(data) < domain.HeaderSize+domain.PayloadHeaderSize {
			continue
		}
		payloadHeader, err := domain.ParsePayloadHeader(data[domain.HeaderSize:])
		if err != nil {
			continue
		}

		switch payloadHeader.DataType {
		case domain.DataTypeControl:
			switch domain.ControlSubType(payloadHeader.SubType) {
			case domain.ControlSubTypeAssign:
				header, err := domain.ParseHeader(data)
				if err != nil {
					continue
				}
				c.mu.Lock()
				c.sessionID = domain.SessionIDFromBytes(header.SessionID)
				c.mu.Unlock()
				slog.Info("session assigned", "sessionID", c.session())
				if err := c.write(ctx, domain.EncodeJoinMessage(c.session())); err != nil {
					return fmt.Errorf("join: %w", err)
				}
			case domain.ControlSubTypePing:
				if err := c.write(ctx, domain.EncodePongMessage(c.session())); err != nil {
					return fmt.Errorf("pong: %w", err)
				}
			}

		case domain.DataTypeState:
			state, err := domain.ParseStatePayload(data[domain.HeaderSize+domain.PayloadHeaderSize:])
			if err != nil {
				continue
			}
			c.view.render(state.Records)

		case domain.DataTypeEvent:
			if domain.EventSubType(payloadHeader.SubType) == domain.EventSubTypeHit {
				c.sound.hit()
			}
		}
	}
}

// inputLoop はキーイベントを入力メッセージに変換して送信します。
// 端末にはkey upイベントがないため、押しっぱなしはオートリピートで表現される。
func (c *client) inputLoop(ctx context.Context, events <-chan tcell.Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				c.view.screen.Sync()
			case *tcell.EventKey:
				mask, leave := keyMask(ev)
				if leave {
					sessionID := c.session()
					if !sessionID.IsEmpty() {
						if err := c.write(ctx, domain.EncodeLeaveMessage(sessionID)); err != nil {
							slog.Warn("failed to send leave", "err", err)
						}
					}
					_ = c.conn.Close(websocket.StatusNormalClosure, "quit")
					return nil
				}
				if mask == 0 {
					continue
				}
				sessionID := c.session()
				if sessionID.IsEmpty() {
					continue
				}
				if mask&domain.KeyFire != 0 {
					c.sound.fire()
				}
				input := &domain.InputPayload{KeyMask: mask}
				if err := c.write(ctx, domain.EncodeInputMessage(sessionID, c.nextSeq(), input)); err != nil {
					return fmt.Errorf("input: %w", err)
				}
			}
		}
	}
}

// keyMask はキーイベントを入力ビットマスクに変換します。第2戻り値は終了要求。
func keyMask(ev *tcell.EventKey) (uint16, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return domain.KeyLeft, false
	case tcell.KeyRight:
		return domain.KeyRight, false
	case tcell.KeyUp:
		return domain.KeyUp, false
	case tcell.KeyDown:
		return domain.KeyDown, false
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return 0, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'h':
			return domain.KeyLeft, false
		case 'l':
			return domain.KeyRight, false
		case 'k':
			return domain.KeyUp, false
		case 'j':
			return domain.KeyDown, false
		case ' ':
			return domain.KeyFire, false
		case 'q':
			return 0, true
		}
	}
	return 0, false
}
