// Package rangeset provides inclusive uint64 ranges and normalized sets of
// them.
//
// A RangeSet is always sorted, and no two of its ranges overlap or touch.
// Every operation returns a fresh set, so a set handed to a pipeline stage
// is never aliased by the stage's output.
package rangeset
