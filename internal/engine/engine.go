package engine

import (
	"errors"
	"fmt"
)

var ErrUnsupportedCommand = errors.New("unsupported command")
var ErrUnknownClock = errors.New("unknown clock")
var ErrUnknownTeam = errors.New("unknown team")
var ErrInvalidPoints = errors.New("points must be 1, 2 or 3")

type ClockState struct {
	Remaining int
	Initial   int
	Running   bool
}

type State struct {
	Period    int
	MaxPeriod int
	Game      ClockState
	Shot      ClockState
	Timeout   ClockState
	ScoreA    int
	ScoreB    int
	NameA     string
	NameB     string

	FinalPeriod      bool
	GameOver         bool
	ShotClockWarning bool
}

func (s State) Clock(kind ClockKind) ClockState {
	switch kind {
	case ClockShot:
		return s.Shot
	case ClockTimeout:
		return s.Timeout
	default:
		return s.Game
	}
}

type CommandType string

const (
	CmdStartPauseClock CommandType = "StartPauseClock"
	CmdResetClock      CommandType = "ResetClock"
	CmdAdvancePeriod   CommandType = "AdvancePeriod"
	CmdAddPoints       CommandType = "AddPoints"
	CmdSetScores       CommandType = "SetScores"
	CmdResetScores     CommandType = "ResetScores"
	CmdSetName         CommandType = "SetName"
	CmdTick            CommandType = "Tick"
)

/*
	CmdStartPauseClock -> EvtClockStarted | EvtClockPaused | nothing (refused start)
	CmdResetClock      -> EvtClockReset (Seconds only honoured for the shot clock)
	CmdAdvancePeriod   -> EvtPeriodAdvanced, or EvtGameReset from the final period
	CmdAddPoints       -> EvtScoreChanged
	CmdSetScores       -> EvtScoreChanged
	CmdResetScores     -> EvtScoresReset
	CmdSetName         -> EvtNameChanged
	CmdTick            -> EvtClockTicked (+ EvtClockExpired on the last second)
*/

type Command struct {
	Type    CommandType
	Clock   ClockKind
	Team    Team
	Points  int
	Seconds int
	Name    string
	ScoreA  string
	ScoreB  string
}

type EventType string

const (
	EvtClockStarted   EventType = "ClockStarted"
	EvtClockPaused    EventType = "ClockPaused"
	EvtClockReset     EventType = "ClockReset"
	EvtClockTicked    EventType = "ClockTicked"
	EvtClockExpired   EventType = "ClockExpired"
	EvtPeriodAdvanced EventType = "PeriodAdvanced"
	EvtGameReset      EventType = "GameReset"
	EvtScoreChanged   EventType = "ScoreChanged"
	EvtScoresReset    EventType = "ScoresReset"
	EvtNameChanged    EventType = "NameChanged"
)

type Event struct {
	Type   EventType
	Clock  ClockKind
	Team   Team
	Period int
	Value  int
}

// Apply routes a command to the matching Controller operation and reports
// what observably changed. Commands the rules refuse (starting an exhausted
// clock, ticking a paused one) succeed with no events; only malformed
// commands return an error.
func (c *Controller) Apply(cmd Command) ([]Event, error) {
	switch cmd.Type {
	case CmdStartPauseClock:
		if _, ok := ParseClockKind(string(cmd.Clock)); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownClock, cmd.Clock)
		}
		wasRunning := c.Running(cmd.Clock)
		switch cmd.Clock {
		case ClockGame:
			c.StartPauseGameClock()
		case ClockShot:
			c.StartPauseShotClock()
		case ClockTimeout:
			c.StartPauseTimeoutClock()
		}

		switch running := c.Running(cmd.Clock); {
		case running && !wasRunning:
			return []Event{{Type: EvtClockStarted, Clock: cmd.Clock, Value: c.Remaining(cmd.Clock)}}, nil
		case !running && wasRunning:
			return []Event{{Type: EvtClockPaused, Clock: cmd.Clock, Value: c.Remaining(cmd.Clock)}}, nil
		default:
			return nil, nil
		}

	case CmdResetClock:
		switch cmd.Clock {
		case ClockGame:
			c.ResetGameClock()
		case ClockShot:
			target := cmd.Seconds
			if target <= 0 {
				target = ShotClockSeconds
			}
			c.ResetShotClock(target)
		case ClockTimeout:
			c.ResetTimeoutClock()
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownClock, cmd.Clock)
		}
		return []Event{{Type: EvtClockReset, Clock: cmd.Clock, Value: c.Remaining(cmd.Clock)}}, nil

	case CmdAdvancePeriod:
		from := c.period
		c.AdvancePeriod()
		if from >= MaxPeriod {
			return []Event{{Type: EvtGameReset, Period: c.period}}, nil
		}
		return []Event{{Type: EvtPeriodAdvanced, Period: c.period}}, nil

	case CmdAddPoints:
		if cmd.Team != TeamA && cmd.Team != TeamB {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTeam, cmd.Team)
		}
		if cmd.Points < 1 || cmd.Points > 3 {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidPoints, cmd.Points)
		}
		c.AddPoints(cmd.Team, cmd.Points)
		return []Event{{Type: EvtScoreChanged, Team: cmd.Team, Value: c.board.Score(cmd.Team)}}, nil

	case CmdSetScores:
		c.SetScores(cmd.ScoreA, cmd.ScoreB)
		return []Event{
			{Type: EvtScoreChanged, Team: TeamA, Value: c.board.Score(TeamA)},
			{Type: EvtScoreChanged, Team: TeamB, Value: c.board.Score(TeamB)},
		}, nil

	case CmdResetScores:
		c.ResetScores()
		return []Event{{Type: EvtScoresReset}}, nil

	case CmdSetName:
		if cmd.Team != TeamA && cmd.Team != TeamB {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTeam, cmd.Team)
		}
		c.SetName(cmd.Team, cmd.Name)
		return []Event{{Type: EvtNameChanged, Team: cmd.Team}}, nil

	case CmdTick:
		if _, ok := ParseClockKind(string(cmd.Clock)); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownClock, cmd.Clock)
		}
		if !c.Running(cmd.Clock) {
			return nil, nil
		}
		expired := c.Tick(cmd.Clock)
		events := []Event{{Type: EvtClockTicked, Clock: cmd.Clock, Value: c.Remaining(cmd.Clock)}}
		if expired {
			events = append(events, Event{Type: EvtClockExpired, Clock: cmd.Clock, Value: c.Remaining(cmd.Clock)})
		}
		return events, nil

	default:
		return nil, ErrUnsupportedCommand
	}
}
