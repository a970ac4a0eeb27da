package document

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Buffer is the line-indexed text of a single document. Rows are numbered
// from zero with no gaps and do not include their line terminators.
//
// A Buffer is not safe for concurrent use.
type Buffer struct {
	Version int
	lines   []string
}

// NewBuffer returns an empty buffer at version 1.
func NewBuffer() *Buffer {
	return &Buffer{Version: 1}
}

// New returns a buffer loaded with text.
func New(text string, version int) *Buffer {
	b := &Buffer{}
	b.Load(text, version)
	return b
}

// Load replaces the whole content of the buffer with text and sets the
// version.
func (b *Buffer) Load(text string, version int) {
	b.lines = SplitLines(text)
	b.Version = version
}

func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the text of row i.
func (b *Buffer) Line(i int) (text string, ok bool) {
	if i < 0 || i >= len(b.lines) {
		return "", false
	}
	return b.lines[i], true
}

// Lines returns a copy of the rows in order.
func (b *Buffer) Lines() []string {
	return slices.Clone(b.lines)
}

// Map returns a copy of the rows keyed by row index.
func (b *Buffer) Map() map[int]string {
	m := make(map[int]string, len(b.lines))
	for i, line := range b.lines {
		m[i] = line
	}
	return m
}

// Text joins the rows with sep.
func (b *Buffer) Text(sep string) string {
	return strings.Join(b.lines, sep)
}

func (b *Buffer) Clone() *Buffer {
	return &Buffer{
		Version: b.Version,
		lines:   slices.Clone(b.lines),
	}
}

func (b *Buffer) insertRows(at int, rows ...string) {
	if len(rows) == 0 {
		return
	}
	b.lines = slices.Insert(b.lines, at, rows...)
}
