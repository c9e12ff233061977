package engine

import (
	"strconv"
	"strings"
)

type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

const (
	DefaultNameA = "HOME"
	DefaultNameB = "AWAY"
)

func ParseTeam(s string) (Team, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A", "HOME":
		return TeamA, true
	case "B", "AWAY":
		return TeamB, true
	default:
		return "", false
	}
}

// ScoreBoard holds both team scores and labels.
type ScoreBoard struct {
	scoreA int
	scoreB int
	nameA  string
	nameB  string
}

func NewScoreBoard() *ScoreBoard {
	return &ScoreBoard{nameA: DefaultNameA, nameB: DefaultNameB}
}

// AddPoints trusts its delta; only the manual edit path clamps.
func (sb *ScoreBoard) AddPoints(team Team, points int) {
	switch team {
	case TeamA:
		sb.scoreA += points
	case TeamB:
		sb.scoreB += points
	}
}

// SetScores commits a manual edit. Unparseable values become 0 and
// negative values are clamped to 0.
func (sb *ScoreBoard) SetScores(a, b string) {
	sb.scoreA = max(0, parseScore(a))
	sb.scoreB = max(0, parseScore(b))
}

func (sb *ScoreBoard) ResetScores() {
	sb.scoreA = 0
	sb.scoreB = 0
}

func (sb *ScoreBoard) SetName(team Team, name string) {
	switch team {
	case TeamA:
		sb.nameA = name
	case TeamB:
		sb.nameB = name
	}
}

func (sb *ScoreBoard) Score(team Team) int {
	if team == TeamB {
		return sb.scoreB
	}
	return sb.scoreA
}

func (sb *ScoreBoard) Name(team Team) string {
	if team == TeamB {
		return sb.nameB
	}
	return sb.nameA
}

// parseScore reads a leading integer the way a score keypad would send it:
// "12", " 7 ", "+3", "15pts" and "3.5" all parse; anything else is 0.
func parseScore(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
