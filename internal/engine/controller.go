package engine

import "github.com/DoyleJ11/hoops-scoreboard/internal/clock"

const (
	MaxPeriod             = 4
	GameClockSeconds      = 12 * 60
	ShotClockSeconds      = 24
	ShotClockShortSeconds = 14
	TimeoutSeconds        = 60
	ShotClockWarnSeconds  = 5
)

type ClockKind string

const (
	ClockGame    ClockKind = "game"
	ClockShot    ClockKind = "shot"
	ClockTimeout ClockKind = "timeout"
)

// ClockKinds lists every clock a Controller owns, in display order.
var ClockKinds = []ClockKind{ClockGame, ClockShot, ClockTimeout}

func ParseClockKind(s string) (ClockKind, bool) {
	switch ClockKind(s) {
	case ClockGame, ClockShot, ClockTimeout:
		return ClockKind(s), true
	default:
		return "", false
	}
}

// Controller owns the period, the three clocks and the scoreboard of one
// game. It is not safe for concurrent use; the session actor serializes
// every call.
type Controller struct {
	period  int
	game    *clock.Clock
	shot    *clock.Clock
	timeout *clock.Clock
	board   *ScoreBoard
}

func NewController() *Controller {
	return &Controller{
		period:  1,
		game:    clock.New(GameClockSeconds, clock.Stop),
		shot:    clock.New(ShotClockSeconds, clock.Stop),
		timeout: clock.New(TimeoutSeconds, clock.StopAndAutoReset),
		board:   NewScoreBoard(),
	}
}

func (c *Controller) clockFor(kind ClockKind) *clock.Clock {
	switch kind {
	case ClockGame:
		return c.game
	case ClockShot:
		return c.shot
	case ClockTimeout:
		return c.timeout
	default:
		return nil
	}
}

// StartPauseGameClock toggles the game clock. Once the final period has run
// out there is nothing to resume, so the call is ignored.
func (c *Controller) StartPauseGameClock() {
	if c.game.Remaining() == 0 && c.period >= MaxPeriod {
		return
	}
	c.game.Toggle()
}

func (c *Controller) ResetGameClock() {
	c.game.Reset()
}

// AdvancePeriod moves to the next period, or restarts the whole game when
// called from the final period. Every clock is paused and reset either way.
func (c *Controller) AdvancePeriod() {
	c.game.Pause()
	c.shot.Pause()
	c.timeout.Pause()

	if c.period >= MaxPeriod {
		c.board.ResetScores()
		c.period = 1
	} else {
		c.period++
	}

	c.game.Reset()
	c.shot.Reset()
	c.timeout.Reset()
}

func (c *Controller) StartPauseShotClock() {
	c.shot.Toggle()
}

// ResetShotClock accepts any target; callers normally pass ShotClockSeconds
// or ShotClockShortSeconds.
func (c *Controller) ResetShotClock(target int) {
	c.shot.ResetTo(target)
}

func (c *Controller) StartPauseTimeoutClock() {
	c.timeout.Toggle()
}

func (c *Controller) ResetTimeoutClock() {
	c.timeout.Reset()
}

func (c *Controller) AddPoints(team Team, points int) { c.board.AddPoints(team, points) }
func (c *Controller) SetScores(a, b string)          { c.board.SetScores(a, b) }
func (c *Controller) ResetScores()                   { c.board.ResetScores() }
func (c *Controller) SetName(team Team, name string) { c.board.SetName(team, name) }

// Tick advances one clock by one second and reports whether it expired.
func (c *Controller) Tick(kind ClockKind) bool {
	clk := c.clockFor(kind)
	if clk == nil {
		return false
	}
	return clk.Tick()
}

func (c *Controller) Running(kind ClockKind) bool {
	clk := c.clockFor(kind)
	return clk != nil && clk.Running()
}

func (c *Controller) Remaining(kind ClockKind) int {
	clk := c.clockFor(kind)
	if clk == nil {
		return 0
	}
	return clk.Remaining()
}

func (c *Controller) Period() int { return c.period }

// GameOver reports the terminal state: final period, game clock run out.
func (c *Controller) GameOver() bool {
	return c.period >= MaxPeriod && c.game.Remaining() == 0 && !c.game.Running()
}

// State returns a detached copy of everything a presenter needs to render.
func (c *Controller) State() State {
	return State{
		Period:           c.period,
		MaxPeriod:        MaxPeriod,
		Game:             clockState(c.game),
		Shot:             clockState(c.shot),
		Timeout:          clockState(c.timeout),
		ScoreA:           c.board.Score(TeamA),
		ScoreB:           c.board.Score(TeamB),
		NameA:            c.board.Name(TeamA),
		NameB:            c.board.Name(TeamB),
		FinalPeriod:      c.period >= MaxPeriod,
		GameOver:         c.GameOver(),
		ShotClockWarning: c.shot.Remaining() <= ShotClockWarnSeconds,
	}
}

func clockState(clk *clock.Clock) ClockState {
	return ClockState{
		Remaining: clk.Remaining(),
		Initial:   clk.Initial(),
		Running:   clk.Running(),
	}
}
