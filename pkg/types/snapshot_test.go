package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/hoops-scoreboard/internal/engine"
)

func TestNewSnapshot_FreshGame(t *testing.T) {
	ctl := engine.NewController()
	snap := NewSnapshot("ABC123", 0, ctl.State(), nil)

	assert.Equal(t, "ABC123", snap.SessionCode)
	assert.Equal(t, 1, snap.Period)
	assert.Equal(t, 4, snap.MaxPeriod)
	assert.Equal(t, "12:00", snap.GameClock.Display)
	assert.Equal(t, "00:24", snap.ShotClock.Display)
	assert.Equal(t, "01:00", snap.TimeoutClock.Display)
	assert.Equal(t, Team{Name: "HOME", Score: 0}, snap.TeamA)
	assert.Equal(t, Team{Name: "AWAY", Score: 0}, snap.TeamB)
	assert.Equal(t, LabelNextPeriod, snap.AdvanceLabel)
	assert.Empty(t, snap.Events)
}

func TestNewSnapshot_GameOverLabel(t *testing.T) {
	ctl := engine.NewController()
	for ctl.Period() < engine.MaxPeriod {
		ctl.AdvancePeriod()
	}
	ctl.StartPauseGameClock()
	var events []engine.Event
	for i := 0; i < engine.GameClockSeconds; i++ {
		evs, err := ctl.Apply(engine.Command{Type: engine.CmdTick, Clock: engine.ClockGame})
		require.NoError(t, err)
		events = evs
	}

	snap := NewSnapshot("", 720, ctl.State(), events)
	assert.True(t, snap.GameOver)
	assert.Equal(t, LabelEndGame, snap.AdvanceLabel)
	assert.Equal(t, "00:00", snap.GameClock.Display)
	assert.Equal(t, []string{string(engine.EvtClockExpired)}, snap.Events, "tick events are filtered")
}

func TestSnapshot_JSONFieldNames(t *testing.T) {
	snap := NewSnapshot("X", 3, engine.NewController().State(), nil)
	raw, err := json.Marshal(snap)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	for _, key := range []string{"version", "period", "game_clock", "shot_clock", "timeout_clock", "team_a", "team_b", "shot_clock_warning", "advance_label"} {
		assert.Contains(t, m, key)
	}
	assert.NotContains(t, m, "events")
}
