// Package errors provides error handling for figma-to-react.
//
// It re-exports github.com/cockroachdb/errors (stack traces, wrapping,
// user hints) and defines the two failure classes the generator reacts to:
// ErrFetch for anything the Figma API collaborator could not deliver, and
// ErrStructuralDecode for node data that is present but unusable.
//
// Per-component failures never abort a batch; they are collected as
// Warnings and reported once the batch finishes.
package errors

import (
	"fmt"
	"strings"

	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New       = crdb.New
	Newf      = crdb.Newf
	Wrap      = crdb.Wrap
	Wrapf     = crdb.Wrapf
	Mark      = crdb.Mark
	WithHint  = crdb.WithHint
	WithHintf = crdb.WithHintf

	CombineErrors = crdb.CombineErrors
)

// Error inspection
var (
	Is           = crdb.Is
	As           = crdb.As
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)

// Failure classes. Wrap them with Mark so callers can test with Is while the
// message keeps the concrete cause.
var (
	// ErrFetch means the file, node or image data could not be retrieved.
	ErrFetch = New("fetch failure")

	// ErrStructuralDecode means node data was present but malformed.
	ErrStructuralDecode = New("structural decode failure")
)

// Fetch marks err as a fetch failure with additional context.
func Fetch(err error, context string) error {
	if err == nil {
		return nil
	}
	return Mark(Wrap(err, context), ErrFetch)
}

// Decodef returns a new structural decode failure.
func Decodef(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrStructuralDecode)
}

// IsFetch reports whether err is or wraps a fetch failure.
func IsFetch(err error) bool {
	return err != nil && Is(err, ErrFetch)
}

// IsStructuralDecode reports whether err is or wraps a structural decode failure.
func IsStructuralDecode(err error) bool {
	return err != nil && Is(err, ErrStructuralDecode)
}

// ── Warnings ──

// Severity indicates how serious a batch diagnostic is.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityHint
)

// Warning is a single non-fatal diagnostic produced while processing a batch.
type Warning struct {
	Message    string   // human-readable description
	Severity   Severity // warning or hint
	Component  string   // component name (empty if file-level)
	Suggestion string   // e.g. "Did you mean 'Button'?" (optional)
	Cause      error    // underlying error (optional)
}

// Format returns a single-line representation of this warning
// suitable for terminal output. Callers add color.
func (w *Warning) Format() string {
	var b strings.Builder

	if w.Component != "" {
		b.WriteString(w.Component)
		b.WriteString(" — ")
	}

	b.WriteString(w.Message)

	if w.Cause != nil {
		b.WriteString(": ")
		b.WriteString(w.Cause.Error())
	}

	return b.String()
}

// Warnings collects diagnostics produced while generating a batch.
type Warnings struct {
	items []*Warning
}

// Add appends a warning to the collection.
func (ws *Warnings) Add(w *Warning) {
	ws.items = append(ws.items, w)
}

// AddWarning is a shorthand for adding a SeverityWarning diagnostic.
func (ws *Warnings) AddWarning(component, message string, cause error) {
	ws.Add(&Warning{
		Component: component,
		Message:   message,
		Severity:  SeverityWarning,
		Cause:     cause,
	})
}

// AddHint adds a hint with an optional suggestion.
func (ws *Warnings) AddHint(component, message, suggestion string) {
	ws.Add(&Warning{
		Component:  component,
		Message:    message,
		Severity:   SeverityHint,
		Suggestion: suggestion,
	})
}

// Len returns the number of diagnostics collected.
func (ws *Warnings) Len() int {
	return len(ws.items)
}

// All returns every diagnostic in insertion order.
func (ws *Warnings) All() []*Warning {
	return ws.items
}

// Format returns a human-friendly multiline string of all diagnostics.
func (ws *Warnings) Format() string {
	var b strings.Builder
	for i, w := range ws.items {
		if i > 0 {
			b.WriteString("\n")
		}

		switch w.Severity {
		case SeverityWarning:
			fmt.Fprintf(&b, "⚠ %s", w.Format())
		case SeverityHint:
			fmt.Fprintf(&b, "· %s", w.Format())
		}

		if w.Suggestion != "" {
			fmt.Fprintf(&b, "\n  suggestion: %s", w.Suggestion)
		}
		for _, hint := range GetAllHints(w.Cause) {
			fmt.Fprintf(&b, "\n  hint: %s", hint)
		}
	}
	return b.String()
}
