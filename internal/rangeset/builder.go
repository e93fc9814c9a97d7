package rangeset

// Builder accumulates ranges and normalizes them once in Build. Stage
// transforms emit split segments into a Builder so the merge step runs after
// every segment of a generation has been produced.
type Builder struct {
	ranges []ClosedRange
}

// NewBuilder returns a Builder with room for n ranges.
func NewBuilder(n int) *Builder {
	return &Builder{ranges: make([]ClosedRange, 0, n)}
}

// Add appends r to the pending ranges.
func (b *Builder) Add(r ClosedRange) {
	b.ranges = append(b.ranges, r)
}

// AddAll appends every range in rs.
func (b *Builder) AddAll(rs []ClosedRange) {
	b.ranges = append(b.ranges, rs...)
}

// Len returns the number of pending, not yet normalized, ranges.
func (b *Builder) Len() int {
	return len(b.ranges)
}

// Build returns the normalized set and resets the builder.
func (b *Builder) Build() RangeSet {
	set := RangeSet{ranges: normalize(b.ranges)}
	b.ranges = nil

	return set
}
