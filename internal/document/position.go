package document

import (
	"github.com/vale-lint/valecore/internal/alert"
	scerrors "github.com/vale-lint/valecore/pkg/shared/errors"
)

// Range is a half-open character range [Start, End) in a buffer.
type Range struct {
	Start int
	End   int
}

// Contains reports whether the point lies inside the range. The end bound is
// inclusive so a hover on the last highlighted character still matches.
func (r Range) Contains(point int) bool {
	return r.Start <= point && point <= r.End
}

// Position resolves an alert's 1-based (line, span) against the current line
// table. The lookup reads one consistent snapshot of the buffer.
//
// Vale spans are 1-based and inclusive; buffer ranges are 0-based and
// half-open. The start is adjusted by -1 while the end is taken as-is, which
// lands the end exactly one past the last flagged character. Changing either
// side of this arithmetic shifts every highlight by one character.
func (d *Document) Position(a alert.Alert) (Range, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if a.Line < 1 || a.Line > len(d.lineOffsets) {
		return Range{}, scerrors.NewStaleOffsetError(a.Line, len(d.lineOffsets))
	}
	offset := d.lineOffsets[a.Line-1]

	r := Range{
		Start: offset + a.Span[0] - 1,
		End:   offset + a.Span[1],
	}
	// The line exists but the span may still reach past the buffer when the
	// document shrank between send and receive.
	if r.Start < 0 || r.End > len(d.text) || r.Start > r.End {
		return Range{}, scerrors.NewStaleOffsetError(a.Line, len(d.lineOffsets))
	}
	return r, nil
}
