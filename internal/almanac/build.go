package almanac

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"range-remapper/internal/diagnostic"
	"range-remapper/internal/pipeline"
	"range-remapper/internal/rangeset"
	"range-remapper/internal/stage"
)

// ErrOddSeedCount is returned when range mode is asked for an odd number of seed values.
var ErrOddSeedCount = errors.New("seed values do not form (start, length) pairs")

// SeedPoints returns the seeds read as individual values.
func (a *Almanac) SeedPoints() []uint64 {
	return slices.Clone(a.Seeds)
}

// SeedRanges returns the seeds read two at a time as (start, length) pairs.
func (a *Almanac) SeedRanges() (rangeset.RangeSet, error) {
	if len(a.Seeds)%2 != 0 {
		return rangeset.RangeSet{}, fmt.Errorf("%w: got %d values", ErrOddSeedCount, len(a.Seeds))
	}

	b := rangeset.NewBuilder(len(a.Seeds) / 2)
	for i := 0; i < len(a.Seeds); i += 2 {
		r, err := rangeset.FromStartLength(a.Seeds[i], a.Seeds[i+1])
		if err != nil {
			return rangeset.RangeSet{}, fmt.Errorf("seed pair %d: %w", i/2+1, err)
		}

		b.Add(r)
	}

	return b.Build(), nil
}

// Validate runs stage validation on every block and checks that block names
// of the form "<from>-to-<to>" chain into each other.
func (a *Almanac) Validate(cfg stage.Config) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}

	for _, m := range a.Maps {
		res.Merge(*stage.Validate(m.Name, m.StageIntervals(), cfg))
	}

	for i := 1; i < len(a.Maps); i++ {
		_, prevTo, ok1 := splitName(a.Maps[i-1].Name)
		from, _, ok2 := splitName(a.Maps[i].Name)

		if ok1 && ok2 && prevTo != from {
			res.AddWarning(diagnostic.CodeChainBreak,
				fmt.Sprintf("previous stage produces %q but this stage consumes %q", prevTo, from),
				a.Maps[i].Name)
		}
	}

	return res
}

// Stages builds one validated stage per block.
func (a *Almanac) Stages(cfg stage.Config) ([]*stage.Stage, error) {
	stages := make([]*stage.Stage, 0, len(a.Maps))

	for _, m := range a.Maps {
		s, err := stage.New(m.Name, m.StageIntervals(), cfg)
		if err != nil {
			if m.Line > 0 {
				return nil, fmt.Errorf("map block at line %d: %w", m.Line, err)
			}

			return nil, err
		}

		stages = append(stages, s)
	}

	return stages, nil
}

// Pipeline builds the stages and composes them in declared order.
func (a *Almanac) Pipeline(cfg stage.Config) (*pipeline.Pipeline, error) {
	stages, err := a.Stages(cfg)
	if err != nil {
		return nil, err
	}

	return pipeline.New(stages...), nil
}

func splitName(name string) (from, to string, ok bool) {
	return strings.Cut(name, "-to-")
}
