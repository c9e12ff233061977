package engine

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}

// RunningClocks reports, per clock, whether it should currently be ticked.
func RunningClocks(s State) map[ClockKind]bool {
	return map[ClockKind]bool{
		ClockGame:    s.Game.Running,
		ClockShot:    s.Shot.Running,
		ClockTimeout: s.Timeout.Running,
	}
}
