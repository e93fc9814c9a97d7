package resolve

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Mode -linecomment -output=mode_string.go

// Mode selects how the seed line is interpreted and which query runs.
type Mode int

const (
	ModePoints  Mode = iota // points
	ModeRanges              // ranges
	ModeReverse             // reverse
)

// ParseMode returns the Mode named by s.
func ParseMode(s string) (Mode, error) {
	for m := ModePoints; m <= ModeReverse; m++ {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}

	return 0, fmt.Errorf("unknown mode %q (expected points, ranges or reverse)", s)
}
