package stage

import (
	"fmt"

	"range-remapper/internal/rangeset"
)

// Interval remaps [SourceStart, SourceStart+Length) onto
// [DestinationStart, DestinationStart+Length) by a constant offset.
type Interval struct {
	SourceStart      uint64
	DestinationStart uint64
	Length           uint64
}

// Source returns the closed source domain. The interval must be valid.
func (iv Interval) Source() rangeset.ClosedRange {
	return rangeset.ClosedRange{Low: iv.SourceStart, High: iv.SourceStart + (iv.Length - 1)}
}

// Destination returns the closed destination domain. The interval must be valid.
func (iv Interval) Destination() rangeset.ClosedRange {
	return rangeset.ClosedRange{Low: iv.DestinationStart, High: iv.DestinationStart + (iv.Length - 1)}
}

func (iv Interval) String() string {
	return fmt.Sprintf("dest=%d src=%d len=%d", iv.DestinationStart, iv.SourceStart, iv.Length)
}

// piece is one entry of a lookup index: values in [from, from+length) map
// to to+(v-from). index is the declaration position of the owning interval.
type piece struct {
	from   uint64
	to     uint64
	length uint64
	index  int
}

func (p piece) domain() rangeset.ClosedRange {
	return rangeset.ClosedRange{Low: p.from, High: p.from + (p.length - 1)}
}

func (p piece) translate(v uint64) uint64 {
	return p.to + (v - p.from)
}

func lessPiece(a, b piece) bool {
	if a.from != b.from {
		return a.from < b.from
	}

	return a.index < b.index
}
