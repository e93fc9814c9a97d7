// Package almanac reads stage definitions and the seed specification.
//
// Two formats are supported. The text format is the puzzle input itself:
// a "seeds:" line followed by blank-line separated blocks, each headed by a
// line containing "map:" and holding "destination source length" rows. The
// YAML format carries the same data and is selected by file extension:
//
//	version: "1"
//	seeds: [79, 14, 55, 13]
//	maps:
//	  - name: seed-to-soil
//	    intervals:
//	      - [50, 98, 2]                                 # destination source length
//	      - {destination: 52, source: 50, length: 48}
//
// Parse errors are fatal and name the offending line. Interval validation
// is delegated to package stage; Validate adds a check that
// "<from>-to-<to>" block names chain from one block to the next.
package almanac
