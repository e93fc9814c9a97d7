package pipeline

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"range-remapper/internal/common"
	"range-remapper/internal/rangeset"
	"range-remapper/internal/stage"
)

// Pipeline is an ordered composition of stages. Forward evaluation applies
// stage 0 first; reverse evaluation inverts the last stage first.
type Pipeline struct {
	stages []*stage.Stage
}

// New returns a pipeline over stages in declared order.
func New(stages ...*stage.Stage) *Pipeline {
	return &Pipeline{stages: slices.Clone(stages)}
}

// Stages returns the stages in declared order.
func (p *Pipeline) Stages() []*stage.Stage {
	return slices.Clone(p.stages)
}

// Len returns the number of stages.
func (p *Pipeline) Len() int {
	return len(p.stages)
}

// ForwardPoint maps a seed to its final value.
func (p *Pipeline) ForwardPoint(seed uint64) uint64 {
	v := seed
	for _, s := range p.stages {
		v = s.ApplyPoint(v)
	}

	return v
}

// ReversePoint maps a final value back to a seed.
func (p *Pipeline) ReversePoint(location uint64) uint64 {
	v := location
	for _, s := range slices.Backward(p.stages) {
		v = s.InvertPoint(v)
	}

	return v
}

// Trace returns the value after each stage, starting with the seed itself.
func (p *Pipeline) Trace(seed uint64) []uint64 {
	out := make([]uint64, 0, len(p.stages)+1)
	out = append(out, seed)

	v := seed
	for _, s := range p.stages {
		v = s.ApplyPoint(v)
		out = append(out, v)
	}

	return out
}

// ForwardRanges returns the image of seeds under the whole pipeline.
func (p *Pipeline) ForwardRanges(seeds rangeset.RangeSet) rangeset.RangeSet {
	cur := seeds
	for _, s := range p.stages {
		cur = checkTotal(s, cur, s.ApplyRanges(cur))
	}

	return cur
}

// ReverseRanges returns the structural preimage of locations.
func (p *Pipeline) ReverseRanges(locations rangeset.RangeSet) rangeset.RangeSet {
	cur := locations
	for _, s := range slices.Backward(p.stages) {
		cur = checkTotal(s, cur, s.InvertRanges(cur))
	}

	return cur
}

// ForwardRangesParallel is ForwardRanges with each stage's input split
// across up to workers goroutines. The merge after all splits of a stage
// finish is the barrier before the next stage starts.
func (p *Pipeline) ForwardRangesParallel(ctx context.Context, seeds rangeset.RangeSet, workers int) (rangeset.RangeSet, error) {
	if workers <= 1 {
		return p.ForwardRanges(seeds), nil
	}

	cur := seeds
	for _, s := range p.stages {
		if err := ctx.Err(); err != nil {
			return rangeset.RangeSet{}, fmt.Errorf("stage %q: %w", s.Name(), err)
		}

		next, err := applyParallel(ctx, s, cur, workers)
		if err != nil {
			return rangeset.RangeSet{}, fmt.Errorf("stage %q: %w", s.Name(), err)
		}

		cur = checkTotal(s, cur, next)
	}

	return cur, nil
}

func applyParallel(ctx context.Context, s *stage.Stage, in rangeset.RangeSet, workers int) (rangeset.RangeSet, error) {
	chunks := common.Chunk(in.Ranges(), workers)
	results := make([][]rangeset.ClosedRange, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, chunk := range chunks {
		g.Go(func() error {
			var out []rangeset.ClosedRange
			for _, r := range chunk {
				if err := gctx.Err(); err != nil {
					return err
				}

				s.SplitForward(r, func(_, image rangeset.ClosedRange) {
					out = append(out, image)
				})
			}

			results[i] = out

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return rangeset.RangeSet{}, err
	}

	b := rangeset.NewBuilder(len(results))
	for _, out := range results {
		b.AddAll(out)
	}

	return b.Build(), nil
}

// checkTotal panics when a stage loses every value of a non-empty input.
// Stages are total functions, so this can only be a programming error.
func checkTotal(s *stage.Stage, in, out rangeset.RangeSet) rangeset.RangeSet {
	if !in.IsEmpty() && out.IsEmpty() {
		panic(fmt.Sprintf("pipeline: stage %q mapped %v to an empty set", s.Name(), in))
	}

	return out
}
