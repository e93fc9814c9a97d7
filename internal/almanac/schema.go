package almanac

import (
	"range-remapper/internal/stage"
)

// Almanac represents a parsed stage definition file: the seed line and the
// stage blocks in the order they are applied.
type Almanac struct {
	// Version of the YAML schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Seeds are the raw numbers of the seeds line. Point mode reads them as
	// individual seeds, range mode as (start, length) pairs.
	Seeds []uint64 `yaml:"seeds,flow"`

	// Maps are the stage blocks in declared order.
	Maps []MapBlock `yaml:"maps"`
}

// MapBlock is one "<name> map:" block.
type MapBlock struct {
	// Name is the block label without the "map:" suffix, e.g. "seed-to-soil".
	Name string `yaml:"name"`

	// Intervals hold one entry per "destination source length" line.
	Intervals []IntervalDef `yaml:"intervals"`

	// Line is the 1-based line of the block header in text input.
	Line int `yaml:"-"`
}

// IntervalDef is one interval as written in the input.
// YAML formats supported:
//   - Mapping: {destination: 50, source: 98, length: 2}
//   - Triple in text order: [50, 98, 2]
type IntervalDef struct {
	Destination uint64 `yaml:"destination"`
	Source      uint64 `yaml:"source"`
	Length      uint64 `yaml:"length"`
}

// Interval converts the definition into a stage interval.
func (d IntervalDef) Interval() stage.Interval {
	return stage.Interval{
		SourceStart:      d.Source,
		DestinationStart: d.Destination,
		Length:           d.Length,
	}
}

// StageIntervals converts every definition of the block.
func (b MapBlock) StageIntervals() []stage.Interval {
	out := make([]stage.Interval, len(b.Intervals))
	for i, d := range b.Intervals {
		out[i] = d.Interval()
	}

	return out
}
