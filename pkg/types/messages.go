package types

// Client -> Server
// StartPauseClock:
//   clock: "game" | "shot" | "timeout"
//
// ResetClock:
//   clock: "game" | "shot" | "timeout"
//   seconds: number // shot clock only: 24 (full) or 14 (offensive rebound)
//
// AdvancePeriod: {}
//
// AddPoints:
//   team: "A" | "B"
//   points: 1 | 2 | 3
//
// SetScores (manual edit, string or number, bad input becomes 0):
//   score_a: string | number
//   score_b: string | number
//
// ResetScores: {}
//
// SetName:
//   team: "A" | "B"
//   name: string

// Server -> Client
// StateSnapshot: see Snapshot
//
// Error:
//   error: string

const (
	MessageStateSnapshot = "StateSnapshot"
	MessageError         = "Error"
)
