package types

import "github.com/DoyleJ11/hoops-scoreboard/internal/engine"

// Clock is the wire view of one countdown. Display is Remaining rendered
// as MM:SS.
type Clock struct {
	Remaining int    `json:"remaining"`
	Initial   int    `json:"initial"`
	Running   bool   `json:"running"`
	Display   string `json:"display"`
}

type Team struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type Snapshot struct {
	Version      int      `json:"version"`
	SessionCode  string   `json:"session_code,omitempty"`
	Period       int      `json:"period"`
	MaxPeriod    int      `json:"max_period"`
	GameClock    Clock    `json:"game_clock"`
	ShotClock    Clock    `json:"shot_clock"`
	TimeoutClock Clock    `json:"timeout_clock"`
	TeamA        Team     `json:"team_a"`
	TeamB        Team     `json:"team_b"`
	ShotWarning  bool     `json:"shot_clock_warning"`
	GameOver     bool     `json:"game_over"`
	AdvanceLabel string   `json:"advance_label"`
	Events       []string `json:"events,omitempty"`
}

const (
	LabelNextPeriod = "NEXT PERIOD"
	LabelEndGame    = "END GAME / RESET"
)

func NewSnapshot(code string, version int, s engine.State, events []engine.Event) Snapshot {
	label := LabelNextPeriod
	if s.GameOver {
		label = LabelEndGame
	}

	snap := Snapshot{
		Version:      version,
		SessionCode:  code,
		Period:       s.Period,
		MaxPeriod:    s.MaxPeriod,
		GameClock:    newClock(s.Game),
		ShotClock:    newClock(s.Shot),
		TimeoutClock: newClock(s.Timeout),
		TeamA:        Team{Name: s.NameA, Score: s.ScoreA},
		TeamB:        Team{Name: s.NameB, Score: s.ScoreB},
		ShotWarning:  s.ShotClockWarning,
		GameOver:     s.GameOver,
		AdvanceLabel: label,
	}
	for _, ev := range events {
		if ev.Type == engine.EvtClockTicked {
			continue
		}
		snap.Events = append(snap.Events, string(ev.Type))
	}
	return snap
}

func newClock(c engine.ClockState) Clock {
	return Clock{
		Remaining: c.Remaining,
		Initial:   c.Initial,
		Running:   c.Running,
		Display:   FormatClock(c.Remaining),
	}
}
