package tui

import (
	"fmt"
	"math"
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// meters formats a distance with a unit suited to its size.
func meters(d float64) string {
	if math.Abs(d) >= 10000 {
		return fmt.Sprintf("%.1f km", d/1000)
	}
	return fmt.Sprintf("%.0f m", d)
}
