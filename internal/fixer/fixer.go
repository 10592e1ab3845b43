// Package fixer applies a user-selected suggestion back into the buffer.
package fixer

import (
	"github.com/vale-lint/valecore/internal/alert"
	"github.com/vale-lint/valecore/internal/document"
	scerrors "github.com/vale-lint/valecore/pkg/shared/errors"
)

// Buffer is the splice surface the fixer mutates. Ranges are half-open
// character ranges.
type Buffer interface {
	Replace(start, end int, text string) error
	Erase(start, end int) error
}

// CancelIndex is the chooser result for a dismissed selection.
const CancelIndex = -1

// Choose resolves the user's pick from the candidate list. A cancelled
// selection (index -1) returns ok=false with no error; an out-of-range index
// is a FixError.
func Choose(candidates []string, index int) (suggestion string, ok bool, err error) {
	if index == CancelIndex {
		return "", false, nil
	}
	if index < 0 || index >= len(candidates) {
		return "", false, scerrors.NewFixError("suggestion index out of range", nil)
	}
	return candidates[index], true, nil
}

// Apply splices the chosen suggestion into the buffer at the alert's range.
//
// A "remove" action erases [Start, End+1): the extra character absorbs the
// trailing delimiter Vale assumes is part of the match but leaves outside the
// reported span. Every other action replaces [Start, End) with the suggestion
// verbatim. The one-character asymmetry mirrors the linter's own convention
// and must not be "corrected" here.
func Apply(buf Buffer, a alert.Alert, r document.Range, suggestion string) error {
	if a.Action.IsRemove() {
		if err := buf.Erase(r.Start, r.End+1); err != nil {
			return scerrors.NewFixError("region no longer exists", err)
		}
		return nil
	}
	if err := buf.Replace(r.Start, r.End, suggestion); err != nil {
		return scerrors.NewFixError("region no longer exists", err)
	}
	return nil
}

// Options builds the quick-panel labels shown for an alert's candidates.
func Options(a alert.Alert, candidates []string) []string {
	options := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if a.Action.IsRemove() {
			options = append(options, "Remove '"+a.Match+"'")
		} else {
			options = append(options, "Replace with '"+candidate+"'")
		}
	}
	return options
}
