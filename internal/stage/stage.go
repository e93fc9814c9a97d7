package stage

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"range-remapper/internal/diagnostic"
	"range-remapper/internal/rangeset"
)

// ErrInvalidStage is returned when a stage fails validation.
var ErrInvalidStage = errors.New("invalid stage")

// Config holds stage construction options.
type Config struct {
	// StrictDestinations turns overlapping destination domains into an
	// error instead of a warning.
	StrictDestinations bool
}

// Stage is one piecewise-linear remapping table. Values outside every
// interval map to themselves. A Stage is immutable after New.
type Stage struct {
	name      string
	intervals []Interval
	forward   index
	inverse   index
}

// New validates intervals and builds a Stage from them.
func New(name string, intervals []Interval, cfg Config) (*Stage, error) {
	diags := Validate(name, intervals, cfg)
	if err := diags.Error(); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidStage, name, err)
	}

	ivs := slices.Clone(intervals)

	return &Stage{
		name:      name,
		intervals: ivs,
		forward:   newIndex(forwardPieces(ivs)),
		inverse:   newIndex(inversePieces(ivs)),
	}, nil
}

// Identity returns a stage without intervals.
func Identity(name string) *Stage {
	return &Stage{name: name, forward: newIndex(nil), inverse: newIndex(nil)}
}

// Name returns the stage label, e.g. "seed-to-soil".
func (s *Stage) Name() string {
	return s.name
}

// Intervals returns the intervals in declaration order.
func (s *Stage) Intervals() []Interval {
	return slices.Clone(s.intervals)
}

// Len returns the number of intervals.
func (s *Stage) Len() int {
	return len(s.intervals)
}

// ApplyPoint maps v through the interval whose source domain contains it.
func (s *Stage) ApplyPoint(v uint64) uint64 {
	return s.forward.lookup(v)
}

// InvertPoint maps v back through the interval whose destination domain
// contains it. Where destinations overlap, the first declared interval wins.
func (s *Stage) InvertPoint(v uint64) uint64 {
	return s.inverse.lookup(v)
}

// SplitForward cuts r at every source boundary and reports each segment with
// its image under the stage.
func (s *Stage) SplitForward(r rangeset.ClosedRange, emit func(part, image rangeset.ClosedRange)) {
	s.forward.split(r, emit)
}

// SplitInverse is SplitForward over destination domains.
func (s *Stage) SplitInverse(r rangeset.ClosedRange, emit func(part, image rangeset.ClosedRange)) {
	s.inverse.split(r, emit)
}

// ApplyRanges returns the image of in under the stage.
func (s *Stage) ApplyRanges(in rangeset.RangeSet) rangeset.RangeSet {
	return transform(in, s.SplitForward)
}

// InvertRanges returns the structural inverse image of in.
func (s *Stage) InvertRanges(in rangeset.RangeSet) rangeset.RangeSet {
	return transform(in, s.SplitInverse)
}

func transform(in rangeset.RangeSet, split func(rangeset.ClosedRange, func(part, image rangeset.ClosedRange))) rangeset.RangeSet {
	b := rangeset.NewBuilder(in.Len())
	for _, r := range in.Ranges() {
		split(r, func(_, image rangeset.ClosedRange) {
			b.Add(image)
		})
	}

	return b.Build()
}

// Validate checks intervals for zero lengths, overflow and overlaps. The
// overflow check is on the inclusive end: an interval may end exactly at
// math.MaxUint64, so start+length may equal 2^64 but never exceed it.
func Validate(name string, intervals []Interval, cfg Config) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}

	if len(intervals) == 0 {
		res.AddInfo(diagnostic.CodeEmptyStage, "stage has no intervals and maps every value to itself", name)
		return res
	}

	var valid []int

	for i, iv := range intervals {
		if iv.Length == 0 {
			res.AddError(diagnostic.CodeZeroLength, fmt.Sprintf("interval (%s) has zero length", iv), name, i)
			continue
		}

		ok := true
		if iv.SourceStart > math.MaxUint64-(iv.Length-1) {
			res.AddError(diagnostic.CodeSourceOverflow, fmt.Sprintf("source range of (%s) exceeds uint64", iv), name, i)
			ok = false
		}

		if iv.DestinationStart > math.MaxUint64-(iv.Length-1) {
			res.AddError(diagnostic.CodeDestinationOverflow, fmt.Sprintf("destination range of (%s) exceeds uint64", iv), name, i)
			ok = false
		}

		if ok {
			valid = append(valid, i)
		}
	}

	for _, o := range overlaps(intervals, valid, Interval.Source) {
		res.AddOverlap(diagnostic.DiagnosticError, diagnostic.CodeSourceOverlap,
			"source domains overlap", name, o.first, o.second, o.common)
	}

	severity := diagnostic.DiagnosticWarning
	if cfg.StrictDestinations {
		severity = diagnostic.DiagnosticError
	}

	for _, o := range overlaps(intervals, valid, Interval.Destination) {
		res.AddOverlap(severity, diagnostic.CodeDestinationOverlap,
			"destination domains overlap, the first declared interval inverts them", name, o.first, o.second, o.common)
	}

	return res
}

type overlap struct {
	first, second int
	common        rangeset.ClosedRange
}

// overlaps sweeps the selected domains in start order and reports each
// interval that overlaps the widest-reaching interval seen before it.
func overlaps(intervals []Interval, valid []int, domain func(Interval) rangeset.ClosedRange) []overlap {
	order := slices.Clone(valid)
	slices.SortStableFunc(order, func(a, b int) int {
		la, lb := domain(intervals[a]).Low, domain(intervals[b]).Low
		switch {
		case la < lb:
			return -1
		case la > lb:
			return 1
		default:
			return 0
		}
	})

	var found []overlap

	reach := -1
	for _, i := range order {
		d := domain(intervals[i])
		if reach >= 0 {
			widest := domain(intervals[reach])
			if common, ok := widest.Intersect(d); ok {
				found = append(found, overlap{first: min(reach, i), second: max(reach, i), common: common})
			}

			if widest.High >= d.High {
				continue
			}
		}

		reach = i
	}

	return found
}
