package rangeset

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"range-remapper/internal/common"
)

// ErrInvalidRange is returned when range bounds cannot form a ClosedRange.
var ErrInvalidRange = errors.New("invalid range")

// ClosedRange is an inclusive interval [Low, High] of uint64 values.
type ClosedRange struct {
	Low  uint64
	High uint64
}

// NewClosedRange returns [low, high] or an error when low > high.
func NewClosedRange(low, high uint64) (ClosedRange, error) {
	if low > high {
		return ClosedRange{}, fmt.Errorf("%w: low %d is greater than high %d", ErrInvalidRange, low, high)
	}

	return ClosedRange{Low: low, High: high}, nil
}

// FromStartLength returns [start, start+length-1].
func FromStartLength(start, length uint64) (ClosedRange, error) {
	if length == 0 {
		return ClosedRange{}, fmt.Errorf("%w: zero length at %d", ErrInvalidRange, start)
	}

	high, ok := common.CheckedAdd(start, length-1)
	if !ok {
		return ClosedRange{}, fmt.Errorf("%w: start %d with length %d overflows uint64", ErrInvalidRange, start, length)
	}

	return ClosedRange{Low: start, High: high}, nil
}

// Full returns the range covering every uint64 value.
func Full() ClosedRange {
	return ClosedRange{Low: 0, High: math.MaxUint64}
}

// Point returns the single-value range [v, v].
func Point(v uint64) ClosedRange {
	return ClosedRange{Low: v, High: v}
}

// Len returns the number of values in r. The second result is false when
// the count does not fit in a uint64, which only happens for Full().
func (r ClosedRange) Len() (uint64, bool) {
	return common.CheckedAdd(r.High-r.Low, 1)
}

// Contains reports whether v lies in r.
func (r ClosedRange) Contains(v uint64) bool {
	return common.IsInRange(r.Low, v, r.High)
}

// Overlaps reports whether r and o share at least one value.
func (r ClosedRange) Overlaps(o ClosedRange) bool {
	return r.Low <= o.High && o.Low <= r.High
}

// Touches reports whether r and o overlap or are directly adjacent.
func (r ClosedRange) Touches(o ClosedRange) bool {
	if r.Overlaps(o) {
		return true
	}

	return (r.High != math.MaxUint64 && r.High+1 == o.Low) ||
		(o.High != math.MaxUint64 && o.High+1 == r.Low)
}

// Intersect returns the common part of r and o, and false if they do not overlap.
func (r ClosedRange) Intersect(o ClosedRange) (ClosedRange, bool) {
	if !r.Overlaps(o) {
		return ClosedRange{}, false
	}

	return ClosedRange{Low: max(r.Low, o.Low), High: min(r.High, o.High)}, true
}

func (r ClosedRange) String() string {
	return fmt.Sprintf("[%d, %d]", r.Low, r.High)
}

// RangeSet is a sorted collection of disjoint, non-adjacent closed ranges.
// The zero value is an empty set. A RangeSet is never mutated after it has
// been built.
type RangeSet struct {
	ranges []ClosedRange
}

// New returns the normalized union of the given ranges.
func New(ranges ...ClosedRange) RangeSet {
	return RangeSet{ranges: normalize(slices.Clone(ranges))}
}

// FromPoints returns the set containing exactly the given values.
func FromPoints(values ...uint64) RangeSet {
	b := NewBuilder(len(values))
	for _, v := range values {
		b.Add(Point(v))
	}

	return b.Build()
}

// Normalize returns s rebuilt through normalization. For any RangeSet
// produced by this package it returns an equal set.
func (s RangeSet) Normalize() RangeSet {
	return New(s.ranges...)
}

// Ranges returns a copy of the ranges in ascending order.
func (s RangeSet) Ranges() []ClosedRange {
	return slices.Clone(s.ranges)
}

// Len returns the number of disjoint ranges in the set.
func (s RangeSet) Len() int {
	return len(s.ranges)
}

// IsEmpty reports whether the set holds no values.
func (s RangeSet) IsEmpty() bool {
	return common.IsEmpty(s.ranges)
}

// Min returns the smallest value in the set, and false if the set is empty.
func (s RangeSet) Min() (uint64, bool) {
	r, ok := common.First(s.ranges)
	return r.Low, ok
}

// Count returns the number of values in the set, and false on overflow.
func (s RangeSet) Count() (uint64, bool) {
	var total uint64

	for _, r := range s.ranges {
		n, ok := r.Len()
		if !ok {
			return 0, false
		}

		total, ok = common.CheckedAdd(total, n)
		if !ok {
			return 0, false
		}
	}

	return total, true
}

// Contains reports whether v is in the set.
func (s RangeSet) Contains(v uint64) bool {
	i, found := slices.BinarySearchFunc(s.ranges, v, func(r ClosedRange, v uint64) int {
		switch {
		case r.High < v:
			return -1
		case r.Low > v:
			return 1
		default:
			return 0
		}
	})

	return found && s.ranges[i].Contains(v)
}

// Union returns the values present in either set.
func (s RangeSet) Union(o RangeSet) RangeSet {
	all := make([]ClosedRange, 0, len(s.ranges)+len(o.ranges))
	all = append(all, s.ranges...)
	all = append(all, o.ranges...)

	return RangeSet{ranges: normalize(all)}
}

// Intersect returns the values present in both sets.
func (s RangeSet) Intersect(o RangeSet) RangeSet {
	var out []ClosedRange

	i, j := 0, 0
	for i < len(s.ranges) && j < len(o.ranges) {
		a, b := s.ranges[i], o.ranges[j]
		if part, ok := a.Intersect(b); ok {
			out = append(out, part)
		}

		if a.High < b.High {
			i++
		} else {
			j++
		}
	}

	// Pieces of disjoint inputs are disjoint but may still be adjacent.
	return RangeSet{ranges: normalize(out)}
}

// Subtract returns the values of s that are not in o.
func (s RangeSet) Subtract(o RangeSet) RangeSet {
	var out []ClosedRange

	j := 0
	for _, r := range s.ranges {
		low := r.Low
		exhausted := false

		for j < len(o.ranges) && o.ranges[j].High < low {
			j++
		}

		for k := j; k < len(o.ranges) && o.ranges[k].Low <= r.High; k++ {
			cut := o.ranges[k]
			if cut.Low > low {
				out = append(out, ClosedRange{Low: low, High: cut.Low - 1})
			}

			if cut.High >= r.High {
				exhausted = true
				break
			}

			low = cut.High + 1
		}

		if !exhausted {
			out = append(out, ClosedRange{Low: low, High: r.High})
		}
	}

	return RangeSet{ranges: out}
}

// Equal reports whether both sets hold the same values.
func (s RangeSet) Equal(o RangeSet) bool {
	return slices.Equal(s.ranges, o.ranges)
}

func (s RangeSet) String() string {
	parts := make([]string, len(s.ranges))
	for i, r := range s.ranges {
		parts[i] = r.String()
	}

	return "{" + strings.Join(parts, " ") + "}"
}

// normalize sorts ranges in place and merges overlapping or adjacent ones.
func normalize(ranges []ClosedRange) []ClosedRange {
	if len(ranges) == 0 {
		return nil
	}

	slices.SortFunc(ranges, func(a, b ClosedRange) int {
		switch {
		case a.Low < b.Low:
			return -1
		case a.Low > b.Low:
			return 1
		default:
			return 0
		}
	})

	out := ranges[:1]
	for _, r := range ranges[1:] {
		last := &out[len(out)-1]
		if last.Touches(r) {
			last.High = max(last.High, r.High)
			continue
		}

		out = append(out, r)
	}

	return slices.Clip(out)
}
