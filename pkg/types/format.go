package types

import "fmt"

// FormatClock renders whole seconds as MM:SS. Minutes are not capped, so
// 6000 seconds is "100:00".
func FormatClock(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}
