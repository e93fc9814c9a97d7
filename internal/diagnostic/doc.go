// Package diagnostic provides structured errors, warnings and notes
// produced while validating remapping stages.
//
// Key capabilities:
//   - Zero-length and overflowing interval reports
//   - Overlapping source interval errors naming both intervals
//   - Overlapping destination warnings (ambiguous inversion)
//   - Stage chain consistency warnings
package diagnostic
