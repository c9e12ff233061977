package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/DoyleJ11/hoops-scoreboard/internal/driver"
	"github.com/DoyleJ11/hoops-scoreboard/internal/engine"
)

var ErrClosed = errors.New("session closed")
var ErrClientTick = errors.New("ticks are driven by the server clock")

type Msg interface{ isSessionMsg() }

type FromClient struct {
	ClientID string
	Cmd      engine.Command
	Reply    chan<- Result // optional; buffered by the sender
}

func (FromClient) isSessionMsg() {}

type Result struct {
	Snapshot Snapshot
	Err      error
}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this client wants to receive snapshots
}

func (Join) isSessionMsg() {}

type Leave struct{ ClientID string }

func (Leave) isSessionMsg() {}

// Tick is posted by the driver, never by clients.
type Tick struct {
	Clock engine.ClockKind
	Gen   uint64
}

func (Tick) isSessionMsg() {}

type Shutdown struct{}

func (Shutdown) isSessionMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isSessionMsg() {}

type Snapshot struct {
	Version int
	State   engine.State
	Events  []engine.Event
}

type View struct {
	Version    int
	NumClients int
	State      engine.State
	Tickers    map[engine.ClockKind]bool
}

type Options struct {
	Clock        clockwork.Clock
	TickInterval time.Duration
	Logger       *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	if o.TickInterval <= 0 {
		o.TickInterval = time.Second
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Session is the single owner of one game's Controller. Every command and
// every driver tick is applied from its loop goroutine, one at a time.
type Session struct {
	code    string
	inbox   chan Msg
	ctl     *engine.Controller
	version int
	clients map[string]chan Snapshot
	driver  *driver.Driver
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

func New(parent context.Context, code string, ctl *engine.Controller, opts Options) *Session {
	opts = opts.withDefaults()
	ctx, cancel := context.WithCancel(parent)

	s := &Session{
		code:    code,
		inbox:   make(chan Msg, 64), // Small buffer
		ctl:     ctl,
		version: 0,
		clients: make(map[string]chan Snapshot),
		log:     opts.Logger.With(zap.String("session", code)),
		ctx:     ctx,
		cancel:  cancel,
	}
	s.driver = driver.New(opts.Clock, opts.TickInterval, s.fire, s.log)

	go s.loop()
	return s
}

func (s *Session) Code() string { return s.code }

// Inbox exposes the raw inbox so tests or the ws layer can send messages.
func (s *Session) Inbox() chan<- Msg { return s.inbox }

// Done is closed once the session has shut down.
func (s *Session) Done() <-chan struct{} { return s.ctx.Done() }

// Send delivers a message unless the session or ctx finishes first.
func (s *Session) Send(ctx context.Context, m Msg) error {
	select {
	case s.inbox <- m:
		return nil
	case <-s.ctx.Done():
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do applies one command and waits for the outcome.
func (s *Session) Do(ctx context.Context, clientID string, cmd engine.Command) (Snapshot, error) {
	reply := make(chan Result, 1)
	if err := s.Send(ctx, FromClient{ClientID: clientID, Cmd: cmd, Reply: reply}); err != nil {
		return Snapshot{}, err
	}
	select {
	case res := <-reply:
		return res.Snapshot, res.Err
	case <-s.ctx.Done():
		return Snapshot{}, ErrClosed
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// View returns the session's current view.
func (s *Session) View(ctx context.Context) (View, error) {
	reply := make(chan View, 1)
	if err := s.Send(ctx, GetState{Reply: reply}); err != nil {
		return View{}, err
	}
	select {
	case v := <-reply:
		return v, nil
	case <-s.ctx.Done():
		return View{}, ErrClosed
	case <-ctx.Done():
		return View{}, ctx.Err()
	}
}

func (s *Session) loop() {
	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return

		case m := <-s.inbox:
			switch msg := m.(type) {
			case Join:
				// Register client + send current snapshot immediately
				s.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- s.current()
				s.log.Debug("client joined", zap.String("client_id", msg.ClientID), zap.Int("clients", len(s.clients)))

			case Leave:
				// clients dropped as slow are already gone and closed
				if ch, ok := s.clients[msg.ClientID]; ok {
					close(ch)
					delete(s.clients, msg.ClientID)
				}
				s.log.Debug("client left", zap.String("client_id", msg.ClientID), zap.Int("clients", len(s.clients)))

			case FromClient:
				res := s.handleCommand(msg)
				if msg.Reply != nil {
					msg.Reply <- res
				}

			case Tick:
				if !s.driver.Current(msg.Clock, msg.Gen) {
					// ticker was stopped after this fire was queued
					break
				}
				events, err := s.ctl.Apply(engine.Command{Type: engine.CmdTick, Clock: msg.Clock})
				if err != nil {
					s.log.Error("tick rejected", zap.String("clock", string(msg.Clock)), zap.Error(err))
					break
				}
				if len(events) == 0 {
					break
				}
				s.commit(events)

			case GetState:
				msg.Reply <- View{
					Version:    s.version,
					NumClients: len(s.clients),
					State:      s.ctl.State(),
					Tickers:    s.tickers(),
				}

			case Shutdown:
				s.shutdown()
				return
			}
		}
	}
}

func (s *Session) handleCommand(msg FromClient) Result {
	if msg.Cmd.Type == engine.CmdTick {
		return Result{Snapshot: s.current(), Err: ErrClientTick}
	}

	events, err := s.ctl.Apply(msg.Cmd)
	if err != nil {
		s.log.Warn("command rejected",
			zap.String("client_id", msg.ClientID),
			zap.String("type", string(msg.Cmd.Type)),
			zap.Error(err))
		return Result{Snapshot: s.current(), Err: fmt.Errorf("apply %s: %w", msg.Cmd.Type, err)}
	}
	if len(events) == 0 {
		s.log.Debug("command ignored by rules",
			zap.String("client_id", msg.ClientID),
			zap.String("type", string(msg.Cmd.Type)),
			zap.String("clock", string(msg.Cmd.Clock)))
		return Result{Snapshot: s.current()}
	}

	return Result{Snapshot: s.commit(events)}
}

// commit publishes a state change: bump the version, bring the tickers in
// line with the clocks, and broadcast.
func (s *Session) commit(events []engine.Event) Snapshot {
	s.version++
	state := s.ctl.State()
	s.driver.Sync(s.ctx, engine.RunningClocks(state))

	for _, ev := range events {
		switch ev.Type {
		case engine.EvtClockTicked:
			// too chatty to log
		case engine.EvtClockExpired, engine.EvtGameReset, engine.EvtPeriodAdvanced:
			s.log.Info("game event",
				zap.String("event", string(ev.Type)),
				zap.String("clock", string(ev.Clock)),
				zap.Int("period", state.Period))
		default:
			s.log.Debug("game event",
				zap.String("event", string(ev.Type)),
				zap.String("clock", string(ev.Clock)),
				zap.String("team", string(ev.Team)),
				zap.Int("value", ev.Value))
		}
	}

	snap := Snapshot{Version: s.version, State: state, Events: events}
	s.broadcast(snap)
	return snap
}

func (s *Session) current() Snapshot {
	return Snapshot{Version: s.version, State: s.ctl.State()}
}

func (s *Session) tickers() map[engine.ClockKind]bool {
	out := make(map[engine.ClockKind]bool, len(engine.ClockKinds))
	for _, kind := range engine.ClockKinds {
		out[kind] = s.driver.Active(kind)
	}
	return out
}

func (s *Session) fire(kind engine.ClockKind, gen uint64) {
	select {
	case s.inbox <- Tick{Clock: kind, Gen: gen}:
	case <-s.ctx.Done():
	}
}

func (s *Session) shutdown() {
	s.driver.StopAll()
	for id, ch := range s.clients {
		close(ch) // Tell client no more snapshots
		delete(s.clients, id)
	}
	s.cancel()
	s.log.Info("session closed")
}

func (s *Session) broadcast(snap Snapshot) {
	for id, ch := range s.clients {
		select {
		case ch <- snap:
			//ok
		default:
			// Client is slow/full - drop them.
			close(ch)
			delete(s.clients, id)
			s.log.Warn("dropped slow client", zap.String("client_id", id))
		}
	}
}
