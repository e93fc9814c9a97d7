// Package stage implements a single translation stage: a set of disjoint
// integer intervals, each shifting a contiguous source range onto a
// contiguous destination range, with identity outside every interval.
//
// Intervals are indexed in B-trees keyed by source start (forward) and by
// destination start (inverse), so both point lookups and range splitting
// run in logarithmic time per boundary instead of scanning every interval.
//
// Overlapping source intervals are rejected by New. Overlapping destination
// intervals are reported as a warning unless Config.StrictDestinations is
// set.
package stage
