package pipeline

import (
	"slices"

	"range-remapper/internal/rangeset"
)

// Segment is one linear piece of a composed pipeline function: every value
// v in Domain maps to Image + (v - Domain.Low).
type Segment struct {
	Domain rangeset.ClosedRange
	Image  uint64
}

// ImageRange returns the values Domain maps onto.
func (s Segment) ImageRange() rangeset.ClosedRange {
	return rangeset.ClosedRange{Low: s.Image, High: s.Image + (s.Domain.High - s.Domain.Low)}
}

// At returns the image of v, which must lie in Domain.
func (s Segment) At(v uint64) uint64 {
	return s.Image + (v - s.Domain.Low)
}

// Locate returns the domain value whose image is w, which must lie in
// ImageRange.
func (s Segment) Locate(w uint64) uint64 {
	return s.Domain.Low + (w - s.Image)
}

// ForwardSegments composes the pipeline restricted to seeds. The result is
// sorted by Domain.Low, and the domains partition seeds.
func (p *Pipeline) ForwardSegments(seeds rangeset.RangeSet) []Segment {
	segs := identitySegments(seeds)
	for _, s := range p.stages {
		segs = compose(segs, s.SplitForward)
	}

	return segs
}

// ReverseSegments composes the structural inverse restricted to locations.
// Domains are location values and images are seed values.
func (p *Pipeline) ReverseSegments(locations rangeset.RangeSet) []Segment {
	segs := identitySegments(locations)
	for _, s := range slices.Backward(p.stages) {
		segs = compose(segs, s.SplitInverse)
	}

	return segs
}

func identitySegments(set rangeset.RangeSet) []Segment {
	ranges := set.Ranges()

	segs := make([]Segment, len(ranges))
	for i, r := range ranges {
		segs[i] = Segment{Domain: r, Image: r.Low}
	}

	return segs
}

// compose pushes each segment's image through split. Splitting preserves
// ascending order within a segment, so the output stays sorted by domain.
func compose(segs []Segment, split func(rangeset.ClosedRange, func(part, image rangeset.ClosedRange))) []Segment {
	out := make([]Segment, 0, len(segs))

	for _, seg := range segs {
		split(seg.ImageRange(), func(part, image rangeset.ClosedRange) {
			out = append(out, Segment{
				Domain: rangeset.ClosedRange{Low: seg.Locate(part.Low), High: seg.Locate(part.High)},
				Image:  image.Low,
			})
		})
	}

	return out
}
