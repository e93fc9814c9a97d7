// Package pipeline composes translation stages into the full seed to
// location function.
//
// Evaluation comes in two shapes. Point evaluation folds a single value
// through every stage. Set evaluation pushes a rangeset.RangeSet through the
// stages, each stage consuming the previous generation and producing a fresh
// normalized one, so the cost depends on the number of ranges produced and
// never on how many integers they cover.
//
// ForwardSegments and ReverseSegments additionally keep track of which input
// values produced which output values, which lets callers recover the seed
// behind a minimum location without enumerating anything.
package pipeline
