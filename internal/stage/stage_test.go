package stage

import (
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"range-remapper/internal/diagnostic"
	"range-remapper/internal/rangeset"
)

func mustStage(t *testing.T, name string, intervals ...Interval) *Stage {
	t.Helper()

	s, err := New(name, intervals, Config{})
	require.NoError(t, err)

	return s
}

func cr(low, high uint64) rangeset.ClosedRange {
	return rangeset.ClosedRange{Low: low, High: high}
}

// seedToSoil is the first stage of the example almanac.
func seedToSoil(t *testing.T) *Stage {
	return mustStage(t, "seed-to-soil",
		Interval{DestinationStart: 50, SourceStart: 98, Length: 2},
		Interval{DestinationStart: 52, SourceStart: 50, Length: 48},
	)
}

func TestApplyPoint(t *testing.T) {
	s := seedToSoil(t)

	tests := []struct {
		in, want uint64
	}{
		{79, 81},
		{14, 14},
		{55, 57},
		{13, 13},
		{98, 50},
		{99, 51},
		{100, 100},
		{49, 49},
		{50, 52},
		{97, 99},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, s.ApplyPoint(tt.in), "ApplyPoint(%d)", tt.in)
	}
}

func TestInvertPoint(t *testing.T) {
	s := seedToSoil(t)

	assert.Equal(t, uint64(79), s.InvertPoint(81))
	assert.Equal(t, uint64(98), s.InvertPoint(50))
	assert.Equal(t, uint64(99), s.InvertPoint(51))
	assert.Equal(t, uint64(50), s.InvertPoint(52))
	assert.Equal(t, uint64(14), s.InvertPoint(14))
	assert.Equal(t, uint64(100), s.InvertPoint(100))
}

func TestRoundTrip(t *testing.T) {
	s := mustStage(t, "mixed",
		Interval{DestinationStart: 0, SourceStart: 15, Length: 37},
		Interval{DestinationStart: 37, SourceStart: 52, Length: 2},
		Interval{DestinationStart: 39, SourceStart: 0, Length: 15},
	)

	for _, iv := range s.Intervals() {
		src := iv.Source()
		for v := src.Low; v <= src.High; v++ {
			require.Equal(t, v, s.InvertPoint(s.ApplyPoint(v)), "round trip of %d", v)
		}
	}

	// Outside every source domain identity trivially round-trips.
	assert.Equal(t, uint64(1000), s.InvertPoint(s.ApplyPoint(1000)))
}

func TestIdentityStage(t *testing.T) {
	s := Identity("empty")

	assert.Equal(t, uint64(79), s.ApplyPoint(79))
	assert.Equal(t, uint64(79), s.InvertPoint(79))
	assert.Equal(t, 0, s.Len())

	in := rangeset.New(cr(79, 79), cr(1, 3))
	assert.True(t, s.ApplyRanges(in).Equal(in))
	assert.True(t, s.InvertRanges(in).Equal(in))
}

func TestApplyRangesSplitsAtBoundaries(t *testing.T) {
	s := seedToSoil(t)

	tests := []struct {
		name string
		in   rangeset.RangeSet
		want []rangeset.ClosedRange
	}{
		{name: "empty", in: rangeset.RangeSet{}, want: nil},
		{name: "single point", in: rangeset.New(cr(79, 79)), want: []rangeset.ClosedRange{cr(81, 81)}},
		{name: "inside one interval", in: rangeset.New(cr(79, 92)), want: []rangeset.ClosedRange{cr(81, 94)}},
		{name: "unmapped", in: rangeset.New(cr(0, 10)), want: []rangeset.ClosedRange{cr(0, 10)}},
		{
			// [40,49] identity, [50,97] -> [52,99], [98,99] -> [50,51], [100,110] identity
			name: "spanning everything",
			in:   rangeset.New(cr(40, 110)),
			want: []rangeset.ClosedRange{cr(40, 110)},
		},
		{
			name: "gap then interval",
			in:   rangeset.New(cr(45, 55)),
			want: []rangeset.ClosedRange{cr(45, 49), cr(52, 57)},
		},
		{
			name: "second interval then gap",
			in:   rangeset.New(cr(99, 105)),
			want: []rangeset.ClosedRange{cr(51, 51), cr(100, 105)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ApplyRanges(tt.in)
			assert.Equal(t, tt.want, got.Ranges(), spew.Sdump(got))
		})
	}
}

func TestSplitStraddlingTwoIntervals(t *testing.T) {
	// Offsets +3 on [10,19] and -5 on [20,29].
	s := mustStage(t, "straddle",
		Interval{DestinationStart: 13, SourceStart: 10, Length: 10},
		Interval{DestinationStart: 15, SourceStart: 20, Length: 10},
	)

	type segment struct{ part, image rangeset.ClosedRange }

	var segments []segment

	s.SplitForward(cr(15, 24), func(part, image rangeset.ClosedRange) {
		segments = append(segments, segment{part, image})
	})

	require.Len(t, segments, 2)
	assert.Equal(t, segment{cr(15, 19), cr(18, 22)}, segments[0])
	assert.Equal(t, segment{cr(20, 24), cr(15, 19)}, segments[1])

	var total uint64
	for _, seg := range segments {
		n, _ := seg.image.Len()
		total += n
	}

	assert.Equal(t, uint64(10), total)
}

func TestInvertRanges(t *testing.T) {
	s := seedToSoil(t)

	got := s.InvertRanges(rangeset.New(cr(50, 53)))
	// [50,51] -> [98,99], [52,53] -> [50,51]
	assert.Equal(t, []rangeset.ClosedRange{cr(50, 51), cr(98, 99)}, got.Ranges())

	got = s.InvertRanges(rangeset.New(cr(0, 10), cr(200, 201)))
	assert.Equal(t, []rangeset.ClosedRange{cr(0, 10), cr(200, 201)}, got.Ranges())
}

func TestApplyRangesAtTopOfDomain(t *testing.T) {
	s := mustStage(t, "top",
		Interval{DestinationStart: 0, SourceStart: math.MaxUint64 - 1, Length: 2},
	)

	assert.Equal(t, uint64(1), s.ApplyPoint(math.MaxUint64))
	assert.Equal(t, uint64(math.MaxUint64), s.InvertPoint(1))

	got := s.ApplyRanges(rangeset.New(rangeset.Full()))
	assert.Equal(t, []rangeset.ClosedRange{cr(0, math.MaxUint64-2)}, got.Ranges())
}

func TestNewRejectsOverlappingSources(t *testing.T) {
	_, err := New("bad", []Interval{
		{DestinationStart: 0, SourceStart: 10, Length: 10},
		{DestinationStart: 100, SourceStart: 50, Length: 5},
		{DestinationStart: 200, SourceStart: 15, Length: 10},
	}, Config{})

	require.ErrorIs(t, err, ErrInvalidStage)
	assert.Contains(t, err.Error(), "source_overlap")
	assert.Contains(t, err.Error(), "[bad] #0 / #2: [source_overlap] source domains overlap on [15, 19]")

	diags := Validate("bad", []Interval{
		{DestinationStart: 0, SourceStart: 10, Length: 10},
		{DestinationStart: 100, SourceStart: 50, Length: 5},
		{DestinationStart: 200, SourceStart: 15, Length: 10},
	}, Config{})
	require.Len(t, diags.Errors, 1, spew.Sdump(diags))

	pair, ok := diags.Errors[0].Pair()
	require.True(t, ok)
	assert.Equal(t, [2]int{0, 2}, pair)
	assert.Equal(t, cr(15, 19), *diags.Errors[0].Conflict)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		intervals []Interval
		cfg       Config
		errors    []string
		warnings  []string
		infos     []string
	}{
		{
			name:  "empty stage",
			infos: []string{diagnostic.CodeEmptyStage},
		},
		{
			name:      "disjoint",
			intervals: []Interval{{SourceStart: 98, DestinationStart: 50, Length: 2}, {SourceStart: 50, DestinationStart: 52, Length: 48}},
		},
		{
			name:      "zero length",
			intervals: []Interval{{SourceStart: 1, DestinationStart: 2}},
			errors:    []string{diagnostic.CodeZeroLength},
		},
		{
			name:      "source overflow",
			intervals: []Interval{{SourceStart: math.MaxUint64, DestinationStart: 0, Length: 2}},
			errors:    []string{diagnostic.CodeSourceOverflow},
		},
		{
			name:      "ends at top of domain",
			intervals: []Interval{{SourceStart: math.MaxUint64 - 1, DestinationStart: math.MaxUint64 - 1, Length: 2}},
		},
		{
			name:      "destination overflow",
			intervals: []Interval{{SourceStart: 0, DestinationStart: math.MaxUint64 - 2, Length: 4}},
			errors:    []string{diagnostic.CodeDestinationOverflow},
		},
		{
			name:      "nested sources",
			intervals: []Interval{{SourceStart: 0, DestinationStart: 100, Length: 50}, {SourceStart: 10, DestinationStart: 300, Length: 5}},
			errors:    []string{diagnostic.CodeSourceOverlap},
		},
		{
			name:      "overlapping destinations warn",
			intervals: []Interval{{SourceStart: 0, DestinationStart: 100, Length: 10}, {SourceStart: 20, DestinationStart: 105, Length: 10}},
			warnings:  []string{diagnostic.CodeDestinationOverlap},
		},
		{
			name:      "overlapping destinations strict",
			intervals: []Interval{{SourceStart: 0, DestinationStart: 100, Length: 10}, {SourceStart: 20, DestinationStart: 105, Length: 10}},
			cfg:       Config{StrictDestinations: true},
			errors:    []string{diagnostic.CodeDestinationOverlap},
		},
	}

	codes := func(ds []diagnostic.Diagnostic) []string {
		var out []string
		for _, d := range ds {
			out = append(out, d.Code)
		}

		return out
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := Validate(tt.name, tt.intervals, tt.cfg)
			assert.Equal(t, tt.errors, codes(diags.Errors))
			assert.Equal(t, tt.warnings, codes(diags.Warnings))
			assert.Equal(t, tt.infos, codes(diags.Infos))
		})
	}
}

func TestInvertWithOverlappingDestinations(t *testing.T) {
	// Both intervals claim destinations [105,109]; the first declared one owns them.
	s := mustStage(t, "ambiguous",
		Interval{SourceStart: 20, DestinationStart: 105, Length: 10},
		Interval{SourceStart: 0, DestinationStart: 100, Length: 10},
	)

	assert.Equal(t, uint64(22), s.InvertPoint(107))
	assert.Equal(t, uint64(25), s.InvertPoint(110))
	assert.Equal(t, uint64(4), s.InvertPoint(104))

	got := s.InvertRanges(rangeset.New(cr(100, 114)))
	assert.Equal(t, []rangeset.ClosedRange{cr(0, 4), cr(20, 29)}, got.Ranges())
}

func TestInvertCarvesAroundEarlierDestinations(t *testing.T) {
	s := mustStage(t, "nested",
		Interval{SourceStart: 500, DestinationStart: 103, Length: 2},
		Interval{SourceStart: 0, DestinationStart: 100, Length: 10},
	)

	tests := map[uint64]uint64{
		99:  99,
		100: 0,
		102: 2,
		103: 500,
		104: 501,
		105: 5,
		109: 9,
		110: 110,
	}

	for v, want := range tests {
		assert.Equal(t, want, s.InvertPoint(v), "InvertPoint(%d)", v)
	}

	var parts []rangeset.ClosedRange
	s.SplitInverse(cr(100, 109), func(part, _ rangeset.ClosedRange) {
		parts = append(parts, part)
	})
	assert.Equal(t, []rangeset.ClosedRange{cr(100, 102), cr(103, 104), cr(105, 109)}, parts)

	for v := uint64(95); v <= 115; v++ {
		got := s.InvertRanges(rangeset.New(rangeset.Point(v)))
		assert.Equal(t, []rangeset.ClosedRange{rangeset.Point(s.InvertPoint(v))}, got.Ranges(), "value %d", v)
	}
}

func TestIntervalsReturnsCopy(t *testing.T) {
	s := seedToSoil(t)

	ivs := s.Intervals()
	ivs[0].Length = 1000

	assert.Equal(t, uint64(2), s.Intervals()[0].Length)
	assert.Equal(t, "seed-to-soil", s.Name())
}
