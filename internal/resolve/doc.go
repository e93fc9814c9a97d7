// Package resolve answers minimum-location queries over a pipeline.
//
// Queries:
//  1. Points: each seed is mapped forward individually.
//  2. Ranges: the seed ranges are propagated forward as a set, optionally
//     splitting each stage's work across goroutines.
//  3. Reverse: the inverse pipeline is composed over the whole location
//     domain and the lowest location whose preimage is a seed is reported.
//
// An empty seed specification yields ErrNoResult, never a zero location.
package resolve
