// Package document models the live text buffer the engine lints: its
// contents, its line-start offset table and the splice primitives fixes use.
// All offsets are zero-based character (rune) offsets.
package document

import (
	"path/filepath"
	"sync"

	scerrors "github.com/vale-lint/valecore/pkg/shared/errors"
)

// Document is an in-memory snapshot of an open buffer. It is safe for
// concurrent use: editor events rewrite the contents while lint workers read
// them.
type Document struct {
	id   string
	path string

	mu          sync.RWMutex
	text        []rune
	lineOffsets []int // offset of the first character of each line
}

// New creates a Document for the buffer identified by id, backed by the file
// at path.
func New(id, path, text string) *Document {
	d := &Document{id: id, path: path}
	d.SetText(text)
	return d
}

func (d *Document) ID() string   { return d.id }
func (d *Document) Path() string { return d.path }

// Ext returns the file extension, used for the linter's format detection.
func (d *Document) Ext() string { return filepath.Ext(d.path) }

// Dir returns the containing directory, the working directory for
// subprocess invocations so project-local configuration resolves.
func (d *Document) Dir() string { return filepath.Dir(d.path) }

func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return string(d.text)
}

// Len returns the buffer length in characters.
func (d *Document) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.text)
}

// LineCount returns the number of lines in the buffer.
func (d *Document) LineCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.lineOffsets)
}

// LineOffset returns the absolute offset of the first character of the
// 1-based line.
func (d *Document) LineOffset(line int) (int, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if line < 1 || line > len(d.lineOffsets) {
		return 0, false
	}
	return d.lineOffsets[line-1], true
}

// SetText replaces the buffer contents and rebuilds the line table. Any
// previously computed positions are stale after this call.
func (d *Document) SetText(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.text = []rune(text)
	d.lineOffsets = lineOffsets(d.text)
}

// Replace splices text into the half-open character range [start, end).
func (d *Document) Replace(start, end int, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if start < 0 || end < start || end > len(d.text) {
		return scerrors.NewFixError("range outside buffer", nil)
	}
	spliced := make([]rune, 0, len(d.text)-(end-start)+len([]rune(text)))
	spliced = append(spliced, d.text[:start]...)
	spliced = append(spliced, []rune(text)...)
	spliced = append(spliced, d.text[end:]...)
	d.text = spliced
	d.lineOffsets = lineOffsets(d.text)
	return nil
}

// Erase deletes the half-open character range [start, end).
func (d *Document) Erase(start, end int) error {
	return d.Replace(start, end, "")
}

// lineOffsets builds the table of first-character offsets, one entry per
// line. The empty buffer still has one line starting at 0.
func lineOffsets(text []rune) []int {
	offsets := []int{0}
	for i, r := range text {
		if r == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}
