package stage

import (
	"math"

	"github.com/google/btree"

	"range-remapper/internal/rangeset"
)

const indexDegree = 16

// index is an ordered set of disjoint pieces keyed by domain start.
type index struct {
	tree *btree.BTreeG[piece]
}

func newIndex(pieces []piece) index {
	tree := btree.NewG(indexDegree, lessPiece)
	for _, p := range pieces {
		tree.ReplaceOrInsert(p)
	}

	return index{tree: tree}
}

// floor returns the piece with the greatest start not above v.
func (x index) floor(v uint64) (piece, bool) {
	var (
		found piece
		ok    bool
	)

	x.tree.DescendLessOrEqual(piece{from: v, index: math.MaxInt}, func(p piece) bool {
		found, ok = p, true
		return false
	})

	return found, ok
}

// lookup translates v through the piece containing it, or returns v.
func (x index) lookup(v uint64) uint64 {
	p, ok := x.floor(v)
	if ok && p.domain().Contains(v) {
		return p.translate(v)
	}

	return v
}

// split walks r in ascending order and calls emit for every maximal segment
// that is either covered by one piece (image translated) or by none (image
// equal to the segment).
func (x index) split(r rangeset.ClosedRange, emit func(part, image rangeset.ClosedRange)) {
	cur := r.Low
	done := false

	pivot, ok := x.floor(cur)
	if !ok {
		pivot = piece{from: cur, index: math.MinInt}
	}

	x.tree.AscendGreaterOrEqual(pivot, func(p piece) bool {
		d := p.domain()
		if d.Low > r.High {
			return false
		}

		if d.High < cur {
			return true
		}

		if d.Low > cur {
			gap := rangeset.ClosedRange{Low: cur, High: d.Low - 1}
			emit(gap, gap)
			cur = d.Low
		}

		end := min(d.High, r.High)
		emit(rangeset.ClosedRange{Low: cur, High: end},
			rangeset.ClosedRange{Low: p.translate(cur), High: p.translate(end)})

		if end == r.High {
			done = true
			return false
		}

		cur = end + 1

		return true
	})

	if !done {
		rest := rangeset.ClosedRange{Low: cur, High: r.High}
		emit(rest, rest)
	}
}

// forwardPieces keys every interval by its source domain. Source domains
// must already be known to be disjoint.
func forwardPieces(intervals []Interval) []piece {
	pieces := make([]piece, len(intervals))
	for i, iv := range intervals {
		pieces[i] = piece{from: iv.SourceStart, to: iv.DestinationStart, length: iv.Length, index: i}
	}

	return pieces
}

// inversePieces keys intervals by destination domain. Overlapping
// destinations are resolved in declaration order: each interval keeps only
// the destination values no earlier interval claimed, so one interval may
// contribute several pieces and the result is disjoint.
func inversePieces(intervals []Interval) []piece {
	var (
		pieces  []piece
		claimed rangeset.RangeSet
	)

	for i, iv := range intervals {
		d := iv.Destination()

		for _, free := range rangeset.New(d).Subtract(claimed).Ranges() {
			skip := free.Low - d.Low
			pieces = append(pieces, piece{
				from:   free.Low,
				to:     iv.SourceStart + skip,
				length: free.High - free.Low + 1,
				index:  i,
			})
		}

		claimed = claimed.Union(rangeset.New(d))
	}

	return pieces
}
