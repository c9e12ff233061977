package driver

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/DoyleJ11/hoops-scoreboard/internal/engine"
)

// FireFunc receives one tick for a clock. gen identifies the ticker that
// produced it so the owner can drop fires from a ticker it already stopped.
type FireFunc func(kind engine.ClockKind, gen uint64)

type handle struct {
	gen    uint64
	ticker clockwork.Ticker
	cancel context.CancelFunc
}

// Driver owns one ticker per running clock. It is meant to be used from a
// single goroutine (the session loop); only the ticker goroutines it spawns
// run concurrently, and they do nothing but call fire.
type Driver struct {
	clk      clockwork.Clock
	interval time.Duration
	fire     FireFunc
	log      *zap.Logger

	handles map[engine.ClockKind]handle
	nextGen uint64
}

func New(clk clockwork.Clock, interval time.Duration, fire FireFunc, log *zap.Logger) *Driver {
	if interval <= 0 {
		interval = time.Second
	}
	return &Driver{
		clk:      clk,
		interval: interval,
		fire:     fire,
		log:      log,
		handles:  make(map[engine.ClockKind]handle),
	}
}

// Sync starts a ticker for every clock marked running that has none, and
// stops the ticker of every clock that is no longer running.
func (d *Driver) Sync(ctx context.Context, running map[engine.ClockKind]bool) {
	for _, kind := range engine.ClockKinds {
		_, active := d.handles[kind]
		switch {
		case running[kind] && !active:
			d.start(ctx, kind)
		case !running[kind] && active:
			d.stop(kind)
		}
	}
}

// Current reports whether gen belongs to the live ticker for kind.
func (d *Driver) Current(kind engine.ClockKind, gen uint64) bool {
	h, ok := d.handles[kind]
	return ok && h.gen == gen
}

func (d *Driver) Active(kind engine.ClockKind) bool {
	_, ok := d.handles[kind]
	return ok
}

func (d *Driver) StopAll() {
	for kind := range d.handles {
		d.stop(kind)
	}
}

func (d *Driver) start(parent context.Context, kind engine.ClockKind) {
	d.nextGen++
	gen := d.nextGen
	ctx, cancel := context.WithCancel(parent)
	ticker := d.clk.NewTicker(d.interval)
	d.handles[kind] = handle{gen: gen, ticker: ticker, cancel: cancel}

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				d.fire(kind, gen)
			}
		}
	}()

	d.log.Debug("ticker started", zap.String("clock", string(kind)), zap.Uint64("gen", gen))
}

func (d *Driver) stop(kind engine.ClockKind) {
	h, ok := d.handles[kind]
	if !ok {
		return
	}
	h.ticker.Stop()
	h.cancel()
	delete(d.handles, kind)
	d.log.Debug("ticker stopped", zap.String("clock", string(kind)), zap.Uint64("gen", h.gen))
}
