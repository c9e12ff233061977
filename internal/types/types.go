package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/DoyleJ11/hoops-scoreboard/internal/engine"
	wire "github.com/DoyleJ11/hoops-scoreboard/pkg/types"
)

var ErrUnknownMessage = errors.New("unknown message type")

type ClientMessage struct {
	Type    string     `json:"type"`
	Clock   string     `json:"clock,omitempty"`
	Team    string     `json:"team,omitempty"`
	Points  int        `json:"points,omitempty"`
	Seconds int        `json:"seconds,omitempty"`
	Name    string     `json:"name,omitempty"`
	ScoreA  ScoreInput `json:"score_a,omitempty"`
	ScoreB  ScoreInput `json:"score_b,omitempty"`
}

type ServerMessage struct {
	Type  string         `json:"type"` // "StateSnapshot" | "Error"
	State *wire.Snapshot `json:"state,omitempty"`
	Error string         `json:"error,omitempty"`
}

// ScoreInput is raw operator input for a manual score edit. It accepts a
// JSON string or number and keeps the text; the engine does the coercion.
type ScoreInput string

func (s *ScoreInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = ScoreInput(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("score must be a string or number: %w", err)
	}
	// 12.0 and 1e2 keep their leading digits, which is what the engine reads
	if i, err := num.Int64(); err == nil {
		*s = ScoreInput(strconv.FormatInt(i, 10))
		return nil
	}
	*s = ScoreInput(num.String())
	return nil
}

// Command maps a client intent onto an engine command. Tick is deliberately
// absent: only the server's driver ticks clocks.
func (m ClientMessage) Command() (engine.Command, error) {
	switch engine.CommandType(m.Type) {
	case engine.CmdStartPauseClock, engine.CmdResetClock:
		kind, ok := engine.ParseClockKind(m.Clock)
		if !ok {
			return engine.Command{}, fmt.Errorf("%w: %q", engine.ErrUnknownClock, m.Clock)
		}
		return engine.Command{Type: engine.CommandType(m.Type), Clock: kind, Seconds: m.Seconds}, nil

	case engine.CmdAdvancePeriod, engine.CmdResetScores:
		return engine.Command{Type: engine.CommandType(m.Type)}, nil

	case engine.CmdAddPoints:
		team, ok := engine.ParseTeam(m.Team)
		if !ok {
			return engine.Command{}, fmt.Errorf("%w: %q", engine.ErrUnknownTeam, m.Team)
		}
		return engine.Command{Type: engine.CmdAddPoints, Team: team, Points: m.Points}, nil

	case engine.CmdSetScores:
		return engine.Command{Type: engine.CmdSetScores, ScoreA: string(m.ScoreA), ScoreB: string(m.ScoreB)}, nil

	case engine.CmdSetName:
		team, ok := engine.ParseTeam(m.Team)
		if !ok {
			return engine.Command{}, fmt.Errorf("%w: %q", engine.ErrUnknownTeam, m.Team)
		}
		return engine.Command{Type: engine.CmdSetName, Team: team, Name: m.Name}, nil

	default:
		return engine.Command{}, fmt.Errorf("%w: %q", ErrUnknownMessage, m.Type)
	}
}

func SnapshotMessage(snap wire.Snapshot) ServerMessage {
	return ServerMessage{Type: wire.MessageStateSnapshot, State: &snap}
}

func ErrorMessage(err error) ServerMessage {
	return ServerMessage{Type: wire.MessageError, Error: err.Error()}
}
