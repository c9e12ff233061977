package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertAllClocksAtInitial(t *testing.T, s State) {
	t.Helper()
	assert.Equal(t, ClockState{Remaining: GameClockSeconds, Initial: GameClockSeconds}, s.Game)
	assert.Equal(t, ClockState{Remaining: ShotClockSeconds, Initial: ShotClockSeconds}, s.Shot)
	assert.Equal(t, ClockState{Remaining: TimeoutSeconds, Initial: TimeoutSeconds}, s.Timeout)
}

// runAll starts every clock and burns a few seconds off each.
func runAll(c *Controller, seconds int) {
	c.StartPauseGameClock()
	c.StartPauseShotClock()
	c.StartPauseTimeoutClock()
	for i := 0; i < seconds; i++ {
		for _, kind := range ClockKinds {
			c.Tick(kind)
		}
	}
}

func TestNewController_InitialState(t *testing.T) {
	c := NewController()
	s := c.State()

	assert.Equal(t, 1, s.Period)
	assert.Equal(t, MaxPeriod, s.MaxPeriod)
	assert.Equal(t, 0, s.ScoreA)
	assert.Equal(t, 0, s.ScoreB)
	assert.Equal(t, "HOME", s.NameA)
	assert.Equal(t, "AWAY", s.NameB)
	assert.False(t, s.GameOver)
	assert.False(t, s.FinalPeriod)
	assertAllClocksAtInitial(t, s)
}

func TestAdvancePeriod_OrdinaryKeepsScores(t *testing.T) {
	c := NewController()
	c.AdvancePeriod() // 1 -> 2
	c.AddPoints(TeamA, 3)
	c.AddPoints(TeamB, 2)
	runAll(c, 5)

	c.AdvancePeriod() // 2 -> 3
	s := c.State()

	assert.Equal(t, 3, s.Period)
	assert.Equal(t, 3, s.ScoreA)
	assert.Equal(t, 2, s.ScoreB)
	assertAllClocksAtInitial(t, s)
}

func TestAdvancePeriod_FromFinalPeriodResetsGame(t *testing.T) {
	c := NewController()
	for c.Period() < MaxPeriod {
		c.AdvancePeriod()
	}
	c.SetName(TeamA, "Bulls")
	c.AddPoints(TeamA, 3)
	c.AddPoints(TeamB, 1)
	runAll(c, 3)

	c.AdvancePeriod()
	s := c.State()

	assert.Equal(t, 1, s.Period)
	assert.Equal(t, 0, s.ScoreA)
	assert.Equal(t, 0, s.ScoreB)
	assert.Equal(t, "Bulls", s.NameA, "game reset keeps team names")
	assertAllClocksAtInitial(t, s)
}

func TestAdvancePeriod_PausesRunningClocks(t *testing.T) {
	c := NewController()
	runAll(c, 1)
	require.True(t, c.Running(ClockGame))
	require.True(t, c.Running(ClockShot))
	require.True(t, c.Running(ClockTimeout))

	c.AdvancePeriod()

	for _, kind := range ClockKinds {
		assert.False(t, c.Running(kind), "clock %s still running", kind)
	}
}

func TestStartPauseGameClock_RejectedWhenGameOver(t *testing.T) {
	c := NewController()
	for c.Period() < MaxPeriod {
		c.AdvancePeriod()
	}

	c.StartPauseGameClock()
	for i := 0; i < GameClockSeconds; i++ {
		c.Tick(ClockGame)
	}
	require.Equal(t, 0, c.Remaining(ClockGame))
	require.True(t, c.GameOver())
	require.True(t, c.State().GameOver)

	c.StartPauseGameClock()
	assert.False(t, c.Running(ClockGame))

	c.AdvancePeriod()
	assert.False(t, c.GameOver())
	assert.Equal(t, 1, c.Period())
}

func TestStartPauseGameClock_ExhaustedBeforeFinalPeriod(t *testing.T) {
	c := NewController()
	c.StartPauseGameClock()
	for i := 0; i < GameClockSeconds; i++ {
		c.Tick(ClockGame)
	}
	assert.False(t, c.GameOver())

	// clock guard still refuses; the operator resets or advances
	c.StartPauseGameClock()
	assert.False(t, c.Running(ClockGame))

	c.ResetGameClock()
	c.StartPauseGameClock()
	assert.True(t, c.Running(ClockGame))
}

func TestResetGameClock_TouchesOnlyGameClock(t *testing.T) {
	c := NewController()
	c.AddPoints(TeamB, 2)
	runAll(c, 4)

	c.ResetGameClock()
	s := c.State()

	assert.Equal(t, ClockState{Remaining: GameClockSeconds, Initial: GameClockSeconds}, s.Game)
	assert.Equal(t, ShotClockSeconds-4, s.Shot.Remaining)
	assert.True(t, s.Shot.Running)
	assert.Equal(t, TimeoutSeconds-4, s.Timeout.Remaining)
	assert.True(t, s.Timeout.Running)
	assert.Equal(t, 2, s.ScoreB)
	assert.Equal(t, 1, s.Period)
}

func TestResetShotClock_CallerTarget(t *testing.T) {
	c := NewController()
	c.ResetShotClock(ShotClockShortSeconds)
	s := c.State()
	assert.Equal(t, 14, s.Shot.Remaining)
	assert.False(t, s.Shot.Running)

	c.StartPauseShotClock()
	c.Tick(ClockShot)
	s = c.State()
	assert.Equal(t, 13, s.Shot.Remaining)
	assert.True(t, s.Shot.Running)
}

func TestTimeoutClock_AutoResetsThroughController(t *testing.T) {
	c := NewController()
	c.StartPauseTimeoutClock()
	expired := false
	for i := 0; i < TimeoutSeconds; i++ {
		expired = c.Tick(ClockTimeout)
	}

	assert.True(t, expired)
	assert.False(t, c.Running(ClockTimeout))
	assert.Equal(t, TimeoutSeconds, c.Remaining(ClockTimeout))

	c.StartPauseTimeoutClock()
	c.Tick(ClockTimeout)
	c.ResetTimeoutClock()
	assert.Equal(t, TimeoutSeconds, c.Remaining(ClockTimeout))
	assert.False(t, c.Running(ClockTimeout))
}

func TestClocksAreIndependent(t *testing.T) {
	c := NewController()
	c.StartPauseShotClock()
	c.Tick(ClockShot)
	c.Tick(ClockShot)

	assert.Equal(t, GameClockSeconds, c.Remaining(ClockGame))
	assert.False(t, c.Running(ClockGame))
	assert.Equal(t, ShotClockSeconds-2, c.Remaining(ClockShot))

	// timeout can run alongside the game clock
	c.StartPauseGameClock()
	c.StartPauseTimeoutClock()
	assert.True(t, c.Running(ClockGame))
	assert.True(t, c.Running(ClockTimeout))
}

func TestShotClockWarning(t *testing.T) {
	c := NewController()
	assert.False(t, c.State().ShotClockWarning)

	c.ResetShotClock(ShotClockWarnSeconds)
	assert.True(t, c.State().ShotClockWarning)

	c.ResetShotClock(ShotClockWarnSeconds + 1)
	assert.False(t, c.State().ShotClockWarning)
}

func TestTick_UnknownClockIsNoop(t *testing.T) {
	c := NewController()
	assert.False(t, c.Tick(ClockKind("overtime")))
	assert.False(t, c.Running(ClockKind("overtime")))
	assert.Equal(t, 0, c.Remaining(ClockKind("overtime")))
}

func TestStateIsDetached(t *testing.T) {
	c := NewController()
	s := c.State()
	s.ScoreA = 99
	s.Game.Remaining = 1

	assert.Equal(t, 0, c.State().ScoreA)
	assert.Equal(t, GameClockSeconds, c.State().Game.Remaining)
}
