package pipeline

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"range-remapper/internal/rangeset"
	"range-remapper/internal/stage"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type triple struct{ dest, src, length uint64 }

func buildStage(t *testing.T, name string, rows ...triple) *stage.Stage {
	t.Helper()

	intervals := make([]stage.Interval, len(rows))
	for i, r := range rows {
		intervals[i] = stage.Interval{DestinationStart: r.dest, SourceStart: r.src, Length: r.length}
	}

	s, err := stage.New(name, intervals, stage.Config{})
	require.NoError(t, err)

	return s
}

// examplePipeline is the seven-stage example almanac.
func examplePipeline(t *testing.T) *Pipeline {
	t.Helper()

	return New(
		buildStage(t, "seed-to-soil", triple{50, 98, 2}, triple{52, 50, 48}),
		buildStage(t, "soil-to-fertilizer", triple{0, 15, 37}, triple{37, 52, 2}, triple{39, 0, 15}),
		buildStage(t, "fertilizer-to-water", triple{49, 53, 8}, triple{0, 11, 42}, triple{42, 0, 7}, triple{57, 7, 4}),
		buildStage(t, "water-to-light", triple{88, 18, 7}, triple{18, 25, 70}),
		buildStage(t, "light-to-temperature", triple{45, 77, 23}, triple{81, 45, 19}, triple{68, 64, 13}),
		buildStage(t, "temperature-to-humidity", triple{0, 69, 1}, triple{1, 0, 69}),
		buildStage(t, "humidity-to-location", triple{60, 56, 37}, triple{56, 93, 4}),
	)
}

func exampleSeedRanges() rangeset.RangeSet {
	return rangeset.New(
		rangeset.ClosedRange{Low: 79, High: 92},
		rangeset.ClosedRange{Low: 55, High: 67},
	)
}

func TestForwardPoint(t *testing.T) {
	p := examplePipeline(t)

	tests := map[uint64]uint64{79: 82, 14: 43, 55: 86, 13: 35}
	for seed, want := range tests {
		assert.Equal(t, want, p.ForwardPoint(seed), "seed %d", seed)
	}
}

func TestTrace(t *testing.T) {
	p := examplePipeline(t)

	want := []uint64{79, 81, 81, 81, 74, 78, 78, 82}
	if diff := cmp.Diff(want, p.Trace(79)); diff != "" {
		t.Errorf("Trace(79) mismatch (-want +got):\n%s", diff)
	}
}

func TestReversePointRoundTrip(t *testing.T) {
	p := examplePipeline(t)

	for seed := uint64(0); seed < 120; seed++ {
		require.Equal(t, seed, p.ReversePoint(p.ForwardPoint(seed)), "seed %d", seed)
	}

	assert.Equal(t, uint64(82), p.ReversePoint(46))
}

func TestForwardRangesMinimum(t *testing.T) {
	p := examplePipeline(t)

	got := p.ForwardRanges(exampleSeedRanges())
	m, ok := got.Min()
	require.True(t, ok)
	assert.Equal(t, uint64(46), m)

	n, ok := got.Count()
	require.True(t, ok)
	assert.Equal(t, uint64(27), n)
}

func TestForwardRangesMatchesPointwise(t *testing.T) {
	p := examplePipeline(t)

	sets := []rangeset.RangeSet{
		exampleSeedRanges(),
		rangeset.New(rangeset.ClosedRange{Low: 0, High: 110}),
		rangeset.FromPoints(79, 14, 55, 13),
		rangeset.New(rangeset.ClosedRange{Low: 45, High: 52}, rangeset.ClosedRange{Low: 90, High: 101}),
	}

	for _, seeds := range sets {
		b := rangeset.NewBuilder(0)
		for _, r := range seeds.Ranges() {
			for v := r.Low; v <= r.High; v++ {
				b.Add(rangeset.Point(p.ForwardPoint(v)))
			}
		}

		want := b.Build()
		got := p.ForwardRanges(seeds)
		assert.True(t, want.Equal(got), "seeds %v: want %v, got %v", seeds, want, got)
	}
}

func TestChainedWithIdentityStage(t *testing.T) {
	p := New(
		buildStage(t, "seed-to-soil", triple{50, 98, 2}),
		stage.Identity("soil-to-location"),
	)

	got := p.ForwardRanges(rangeset.New(rangeset.Point(79)))
	m, ok := got.Min()
	require.True(t, ok)
	assert.Equal(t, uint64(79), m)
	assert.Equal(t, uint64(79), p.ForwardPoint(79))
}

func TestReverseRanges(t *testing.T) {
	p := examplePipeline(t)

	seeds := exampleSeedRanges()
	back := p.ReverseRanges(p.ForwardRanges(seeds))
	assert.True(t, back.Equal(seeds), "got %v", back)

	assert.True(t, p.ReverseRanges(rangeset.RangeSet{}).IsEmpty())
}

func TestEmptyPipeline(t *testing.T) {
	p := New()

	seeds := exampleSeedRanges()
	assert.True(t, p.ForwardRanges(seeds).Equal(seeds))
	assert.Equal(t, uint64(7), p.ForwardPoint(7))
	assert.Equal(t, uint64(7), p.ReversePoint(7))
	assert.Equal(t, 0, p.Len())
}

func TestForwardRangesParallel(t *testing.T) {
	p := examplePipeline(t)

	seeds := rangeset.New(
		rangeset.ClosedRange{Low: 0, High: 3},
		rangeset.ClosedRange{Low: 10, High: 20},
		rangeset.ClosedRange{Low: 55, High: 67},
		rangeset.ClosedRange{Low: 79, High: 92},
		rangeset.ClosedRange{Low: 98, High: 1000},
	)

	want := p.ForwardRanges(seeds)

	for _, workers := range []int{0, 1, 2, 3, 16} {
		got, err := p.ForwardRangesParallel(context.Background(), seeds, workers)
		require.NoError(t, err)
		assert.True(t, want.Equal(got), "workers=%d: want %v, got %v", workers, want, got)
	}
}

func TestForwardRangesParallelCancelled(t *testing.T) {
	p := examplePipeline(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.ForwardRangesParallel(ctx, exampleSeedRanges(), 4)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCheckTotalPanics(t *testing.T) {
	s := stage.Identity("broken")
	in := rangeset.New(rangeset.Point(1))

	assert.Panics(t, func() { checkTotal(s, in, rangeset.RangeSet{}) })
	assert.NotPanics(t, func() { checkTotal(s, rangeset.RangeSet{}, rangeset.RangeSet{}) })
}
