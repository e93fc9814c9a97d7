package diagnostic

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"range-remapper/internal/common"
	"range-remapper/internal/rangeset"
)

// Diagnostic codes reported by stage and almanac validation.
const (
	CodeZeroLength          = "zero_length"
	CodeSourceOverflow      = "source_overflow"
	CodeDestinationOverflow = "destination_overflow"
	CodeSourceOverlap       = "source_overlap"
	CodeDestinationOverlap  = "destination_overlap"
	CodeChainBreak          = "chain_break"
	CodeEmptyStage          = "empty_stage"
)

// Diagnostics holds all diagnostic information from validation.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Stage names the stage this relates to (if any).
	Stage string
	// Intervals holds the declaration indices of the intervals involved,
	// in ascending order.
	Intervals []int
	// Conflict is the set of values two intervals both claim (overlap
	// diagnostics only).
	Conflict *rangeset.ClosedRange
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Add appends diag to the list matching its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, stage string, intervals ...int) {
	d.Add(Diagnostic{Severity: DiagnosticError, Code: code, Message: message, Stage: stage, Intervals: intervals})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, stage string, intervals ...int) {
	d.Add(Diagnostic{Severity: DiagnosticWarning, Code: code, Message: message, Stage: stage, Intervals: intervals})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, stage string, intervals ...int) {
	d.Add(Diagnostic{Severity: DiagnosticInfo, Code: code, Message: message, Stage: stage, Intervals: intervals})
}

// AddOverlap reports that intervals first and second of stage both claim
// the values in conflict.
func (d *Diagnostics) AddOverlap(severity DiagnosticSeverity, code, message, stage string, first, second int, conflict rangeset.ClosedRange) {
	d.Add(Diagnostic{
		Severity:  severity,
		Code:      code,
		Message:   message,
		Stage:     stage,
		Intervals: []int{min(first, second), max(first, second)},
		Conflict:  &conflict,
	})
}

// Pair returns the two intervals of an overlap diagnostic.
func (d Diagnostic) Pair() ([2]int, bool) {
	if len(d.Intervals) != 2 {
		return [2]int{}, false
	}

	return [2]int{d.Intervals[0], d.Intervals[1]}, true
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// All returns errors, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string, e.g.
// "[seed-to-soil] #0 / #2: [source_overlap] source domains overlap on [15, 19]".
func (d Diagnostic) String() string {
	var prefix []string
	if d.Stage != "" {
		prefix = append(prefix, "["+d.Stage+"]")
	}

	if len(d.Intervals) > 0 {
		labels := make([]string, len(d.Intervals))
		for i, idx := range d.Intervals {
			labels[i] = "#" + strconv.Itoa(idx)
		}

		prefix = append(prefix, strings.Join(labels, " / "))
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if d.Conflict != nil {
		msg += " on " + d.Conflict.String()
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
