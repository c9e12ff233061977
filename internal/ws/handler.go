package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/hoops-scoreboard/internal/hub"
	"github.com/DoyleJ11/hoops-scoreboard/internal/session"
	"github.com/DoyleJ11/hoops-scoreboard/internal/types"
	wire "github.com/DoyleJ11/hoops-scoreboard/pkg/types"
)

type Options struct {
	OriginPatterns []string
	OutboxSize     int
	ReadTimeout    time.Duration // zero keeps read-only displays connected indefinitely
	WriteTimeout   time.Duration
}

func (o Options) withDefaults() Options {
	if o.OutboxSize <= 0 {
		o.OutboxSize = 8
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 3 * time.Second
	}
	return o
}

func Handler(h *hub.Hub, opts Options, log *zap.Logger) http.HandlerFunc {
	opts = opts.withDefaults()
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		s := h.Get(r.Context(), code)
		if s == nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: opts.OriginPatterns,
		})
		if err != nil {
			log.Warn("websocket accept failed", zap.String("session", code), zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		clientID := uuid.NewString()
		clog := log.With(zap.String("session", code), zap.String("client_id", clientID))

		out := make(chan session.Snapshot, opts.OutboxSize)
		if err := s.Send(r.Context(), session.Join{ClientID: clientID, Outbox: out}); err != nil {
			return
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = s.Send(ctx, session.Leave{ClientID: clientID})
		}()
		clog.Info("websocket client connected")

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for {
				select {
				case <-writeCtx.Done():
					return
				case snap, ok := <-out:
					if !ok {
						// outbox closed: session ended or we were too slow
						conn.Close(websocket.StatusGoingAway, "session closed")
						return
					}
					msg := types.SnapshotMessage(wire.NewSnapshot(code, snap.Version, snap.State, snap.Events))
					if err := write(writeCtx, conn, opts.WriteTimeout, msg); err != nil {
						clog.Debug("websocket write failed", zap.Error(err))
						writeCancel()
						return
					}
				}
			}
		}()

		// Reader loop
		for {
			ctx, cancel := writeCtx, context.CancelFunc(func() {})
			if opts.ReadTimeout > 0 {
				ctx, cancel = context.WithTimeout(writeCtx, opts.ReadTimeout)
			}
			_, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					clog.Info("websocket client disconnected")
				default:
					clog.Debug("websocket read ended", zap.Error(err))
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				_ = write(writeCtx, conn, opts.WriteTimeout, types.ErrorMessage(errors.New("bad json")))
				continue
			}

			cmd, err := cm.Command()
			if err != nil {
				_ = write(writeCtx, conn, opts.WriteTimeout, types.ErrorMessage(err))
				continue
			}

			// Successful commands come back through the outbox as snapshots;
			// only failures are answered here.
			if _, err := s.Do(writeCtx, clientID, cmd); err != nil {
				if errors.Is(err, session.ErrClosed) {
					return
				}
				_ = write(writeCtx, conn, opts.WriteTimeout, types.ErrorMessage(err))
			}
		}
	}
}

func write(ctx context.Context, conn *websocket.Conn, timeout time.Duration, msg types.ServerMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, payload)
}
