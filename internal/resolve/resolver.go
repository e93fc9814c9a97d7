package resolve

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"range-remapper/internal/almanac"
	"range-remapper/internal/pipeline"
	"range-remapper/internal/rangeset"
)

// ErrNoResult is returned when a query has no minimum location.
var ErrNoResult = errors.New("no answer")

var errNoSeeds = fmt.Errorf("%w: seed specification is empty", ErrNoResult)

// Config holds configuration for the resolution process.
type Config struct {
	// Mode selects the query run by Resolve.
	Mode Mode
	// Workers is the number of goroutines used per stage in range mode
	// (values below 2 run sequentially).
	Workers int
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() Config {
	return Config{
		Mode:    ModeRanges,
		Workers: 1,
	}
}

// Result is the answer of one query.
type Result struct {
	// Location is the minimum final value.
	Location uint64
	// Seed is a seed that maps to Location.
	Seed uint64
	// Ranges is the size of the final generation: location ranges in range
	// mode, inverse segments in reverse mode, zero in point mode.
	Ranges int
}

// Resolver runs minimum-location queries against a pipeline.
type Resolver struct {
	pipeline *pipeline.Pipeline
	config   Config
	logger   *zap.Logger
}

// NewResolver creates a new Resolver. A nil logger disables logging.
func NewResolver(p *pipeline.Pipeline, config Config, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Resolver{
		pipeline: p,
		config:   config,
		logger:   logger,
	}
}

// Resolve runs the query selected by the configured mode on a's seeds.
func (r *Resolver) Resolve(ctx context.Context, a *almanac.Almanac) (Result, error) {
	switch r.config.Mode {
	case ModePoints:
		return r.MinPoints(a.SeedPoints())

	case ModeRanges, ModeReverse:
		seeds, err := a.SeedRanges()
		if err != nil {
			return Result{}, err
		}

		if r.config.Mode == ModeReverse {
			return r.ReverseMin(seeds)
		}

		return r.MinRanges(ctx, seeds)

	default:
		return Result{}, fmt.Errorf("unsupported mode %v", r.config.Mode)
	}
}

// MinPoints returns the minimum location over individual seeds.
func (r *Resolver) MinPoints(seeds []uint64) (Result, error) {
	if len(seeds) == 0 {
		return Result{}, errNoSeeds
	}

	best := Result{Seed: seeds[0], Location: r.pipeline.ForwardPoint(seeds[0])}

	for _, s := range seeds[1:] {
		loc := r.pipeline.ForwardPoint(s)
		if loc < best.Location {
			best = Result{Seed: s, Location: loc}
		}
	}

	r.logger.Debug("resolved point seeds",
		zap.Int("seeds", len(seeds)),
		zap.Uint64("location", best.Location),
		zap.Uint64("seed", best.Seed),
	)

	return best, nil
}

// MinRanges returns the minimum location over ranges of seeds by pushing
// the whole set through the pipeline.
func (r *Resolver) MinRanges(ctx context.Context, seeds rangeset.RangeSet) (Result, error) {
	if seeds.IsEmpty() {
		return Result{}, errNoSeeds
	}

	start := time.Now()

	image, err := r.pipeline.ForwardRangesParallel(ctx, seeds, r.config.Workers)
	if err != nil {
		return Result{}, fmt.Errorf("forward propagation: %w", err)
	}

	loc, ok := image.Min()
	if !ok {
		panic("resolve: non-empty seed set produced an empty image")
	}

	seed, ok := r.seedFor(seeds, loc)
	if !ok {
		panic(fmt.Sprintf("resolve: no seed segment reaches location %d", loc))
	}

	r.logger.Debug("resolved seed ranges",
		zap.Int("seed_ranges", seeds.Len()),
		zap.Int("location_ranges", image.Len()),
		zap.Int("workers", r.config.Workers),
		zap.Uint64("location", loc),
		zap.Duration("elapsed", time.Since(start)),
	)

	return Result{Location: loc, Seed: seed, Ranges: image.Len()}, nil
}

// seedFor returns the smallest seed whose location is loc.
func (r *Resolver) seedFor(seeds rangeset.RangeSet, loc uint64) (uint64, bool) {
	var (
		seed  uint64
		found bool
	)

	for _, seg := range r.pipeline.ForwardSegments(seeds) {
		if !seg.ImageRange().Contains(loc) {
			continue
		}

		s := seg.Locate(loc)
		if !found || s < seed {
			seed, found = s, true
		}
	}

	return seed, found
}

// ReverseMin returns the smallest location whose structural preimage lies in
// seeds. The inverse pipeline is composed over the whole location domain and
// its segments are scanned in ascending location order; the first segment
// whose image meets seeds holds the answer.
func (r *Resolver) ReverseMin(seeds rangeset.RangeSet) (Result, error) {
	if seeds.IsEmpty() {
		return Result{}, errNoSeeds
	}

	segs := r.pipeline.ReverseSegments(rangeset.New(rangeset.Full()))

	for _, seg := range segs {
		hit := seeds.Intersect(rangeset.New(seg.ImageRange()))

		seed, ok := hit.Min()
		if !ok {
			continue
		}

		loc := seg.Locate(seed)

		r.logger.Debug("resolved reverse search",
			zap.Int("segments", len(segs)),
			zap.Uint64("location", loc),
			zap.Uint64("seed", seed),
		)

		return Result{Location: loc, Seed: seed, Ranges: len(segs)}, nil
	}

	return Result{}, fmt.Errorf("%w: no location maps back into the seed ranges", ErrNoResult)
}
