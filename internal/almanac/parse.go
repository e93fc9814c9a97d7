package almanac

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	seedsPrefix  = "seeds:"
	headerSuffix = "map:"
)

// ErrMalformed is wrapped by every parse error.
var ErrMalformed = errors.New("malformed almanac")

// ParseError reports the offending line of a text almanac.
type ParseError struct {
	// Line is 1-based.
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func lineError(line int, text string, format string, args ...any) error {
	return &ParseError{
		Line: line,
		Text: text,
		Err:  fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...)),
	}
}

// Parse parses the text format:
//
//	seeds: 79 14 55 13
//
//	seed-to-soil map:
//	50 98 2
//	52 50 48
//
// Blocks are separated by blank lines; each header contains "map:" and is
// followed by "destination source length" lines.
func Parse(data []byte) (*Almanac, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	a := &Almanac{Version: "1"}

	var (
		lineNo    int
		seenSeeds bool
		current   *MapBlock
	)

	for sc.Scan() {
		lineNo++
		text := strings.TrimRight(sc.Text(), "\r")
		trimmed := strings.TrimSpace(text)

		switch {
		case !seenSeeds:
			if trimmed == "" {
				continue
			}

			seeds, err := parseSeeds(lineNo, text, trimmed)
			if err != nil {
				return nil, err
			}

			a.Seeds = seeds
			seenSeeds = true

		case trimmed == "":
			current = nil

		case strings.Contains(trimmed, headerSuffix):
			if current != nil {
				return nil, lineError(lineNo, text, "map header inside block %q; separate blocks with a blank line", current.Name)
			}

			name := strings.TrimSpace(trimmed[:strings.Index(trimmed, headerSuffix)])
			a.Maps = append(a.Maps, MapBlock{Name: name, Line: lineNo})
			current = &a.Maps[len(a.Maps)-1]

		default:
			if current == nil {
				return nil, lineError(lineNo, text, "interval line outside of a map block")
			}

			def, err := parseInterval(lineNo, text, trimmed)
			if err != nil {
				return nil, err
			}

			current.Intervals = append(current.Intervals, def)
		}
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read almanac: %w", err)
	}

	if !seenSeeds {
		return nil, fmt.Errorf("%w: missing %q line", ErrMalformed, seedsPrefix)
	}

	return a, nil
}

func parseSeeds(lineNo int, text, trimmed string) ([]uint64, error) {
	rest, ok := strings.CutPrefix(trimmed, seedsPrefix)
	if !ok {
		return nil, lineError(lineNo, text, "expected %q prefix", seedsPrefix)
	}

	fields := strings.Fields(rest)
	seeds := make([]uint64, 0, len(fields))

	for _, f := range fields {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, lineError(lineNo, text, "invalid seed %q", f)
		}

		seeds = append(seeds, v)
	}

	return seeds, nil
}

func parseInterval(lineNo int, text, trimmed string) (IntervalDef, error) {
	fields := strings.Fields(trimmed)
	if len(fields) != 3 {
		return IntervalDef{}, lineError(lineNo, text, "expected 3 numbers, got %d", len(fields))
	}

	var values [3]uint64

	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return IntervalDef{}, lineError(lineNo, text, "invalid number %q", f)
		}

		values[i] = v
	}

	return IntervalDef{Destination: values[0], Source: values[1], Length: values[2]}, nil
}
