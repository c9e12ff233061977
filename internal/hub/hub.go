package hub

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/DoyleJ11/hoops-scoreboard/internal/engine"
	"github.com/DoyleJ11/hoops-scoreboard/internal/session"
)

var ErrClosed = errors.New("hub closed")

type HubMsg interface{ isHubMsg() }

// CreateSession returns the existing session if the code is taken.
type CreateSession struct {
	Code       string
	Controller *engine.Controller
	Reply      chan *session.Session
}

type GetSession struct {
	Code  string
	Reply chan *session.Session
}

type EnsureSession struct {
	Code       string
	Controller *engine.Controller // only used if creation happens
	Reply      chan *session.Session
}

// ClaimSession creates a session only if code is free. Taken reports a
// collision, in which case Controller is discarded and Session is nil.
type ClaimSession struct {
	Code       string
	Controller *engine.Controller
	Reply      chan Claim
}

type Claim struct {
	Session *session.Session
	Taken   bool
}

type RemoveSession struct {
	Code  string
	Reply chan bool // optional; reports whether the code was live
}

type CountSessions struct {
	Reply chan int
}

type ShutdownHub struct{}

func (CreateSession) isHubMsg() {}
func (GetSession) isHubMsg()    {}
func (EnsureSession) isHubMsg() {}
func (ClaimSession) isHubMsg()  {}
func (RemoveSession) isHubMsg() {}
func (CountSessions) isHubMsg() {}
func (ShutdownHub) isHubMsg()   {}

type Hub struct {
	inbox    chan HubMsg
	sessions map[string]*session.Session
	opts     session.Options
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewHub(parent context.Context, opts session.Options) *Hub {
	ctx, cancel := context.WithCancel(parent)
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		sessions: make(map[string]*session.Session),
		opts:     opts,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

// request sends msg and waits for its reply, giving up when ctx ends or the
// hub stops.
func request[T any](ctx context.Context, h *Hub, msg HubMsg, reply chan T) (T, error) {
	var zero T
	select {
	case h.inbox <- msg:
	case <-h.ctx.Done():
		return zero, ErrClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	}
	select {
	case v := <-reply:
		return v, nil
	case <-h.ctx.Done():
		return zero, ErrClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Get is a blocking convenience around GetSession. It returns nil when the
// code is unknown or the hub has stopped.
func (h *Hub) Get(ctx context.Context, code string) *session.Session {
	reply := make(chan *session.Session, 1)
	s, err := request(ctx, h, GetSession{Code: code, Reply: reply}, reply)
	if err != nil {
		return nil
	}
	return s
}

// Claim creates a session for code unless one is already live.
func (h *Hub) Claim(ctx context.Context, code string, ctl *engine.Controller) (Claim, error) {
	reply := make(chan Claim, 1)
	return request(ctx, h, ClaimSession{Code: code, Controller: ctl, Reply: reply}, reply)
}

// Remove shuts the session down and reports whether code was live.
func (h *Hub) Remove(ctx context.Context, code string) (bool, error) {
	reply := make(chan bool, 1)
	return request(ctx, h, RemoveSession{Code: code, Reply: reply}, reply)
}

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateSession:
				if s := h.live(msg.Code); s != nil {
					msg.Reply <- s
					break
				}
				msg.Reply <- h.create(msg.Code, msg.Controller)

			case GetSession:
				msg.Reply <- h.live(msg.Code) // May be nil

			case EnsureSession:
				if s := h.live(msg.Code); s != nil {
					msg.Reply <- s
					break
				}
				msg.Reply <- h.create(msg.Code, msg.Controller)

			case ClaimSession:
				if h.live(msg.Code) != nil {
					msg.Reply <- Claim{Taken: true}
					break
				}
				msg.Reply <- Claim{Session: h.create(msg.Code, msg.Controller)}

			case RemoveSession:
				s := h.live(msg.Code)
				if s != nil {
					_ = s.Send(h.ctx, session.Shutdown{})
					delete(h.sessions, msg.Code)
					h.log.Info("session removed", zap.String("session", msg.Code))
				}
				if msg.Reply != nil {
					msg.Reply <- s != nil
				}

			case CountSessions:
				msg.Reply <- len(h.sessions)

			case ShutdownHub:
				h.shutdown()
				h.cancel()
				return
			}
		}
	}
}

// live returns the session for code, forgetting it if it already shut down.
func (h *Hub) live(code string) *session.Session {
	s := h.sessions[code]
	if s == nil {
		return nil
	}
	select {
	case <-s.Done():
		delete(h.sessions, code)
		return nil
	default:
		return s
	}
}

func (h *Hub) create(code string, ctl *engine.Controller) *session.Session {
	if ctl == nil {
		ctl = engine.NewController()
	}
	s := session.New(h.ctx, code, ctl, h.opts)
	h.sessions[code] = s
	h.log.Info("session created", zap.String("session", code))
	return s
}

func (h *Hub) shutdown() {
	for code, s := range h.sessions {
		select {
		case s.Inbox() <- session.Shutdown{}:
		default:
			// inbox full; cancelling the hub context still stops it
		}
		delete(h.sessions, code)
	}
}
