package document

import "golang.org/x/exp/slices"

// Apply applies events in order. Each event's range is interpreted against
// the buffer as left by the events before it.
//
// Application stops at the first failing event. Events before it stay
// applied; use ApplyAtomic to discard them.
func (b *Buffer) Apply(events []ChangeEvent) (err error) {
	for _, e := range events {
		if err = b.apply(e); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAtomic applies events like Apply, but leaves the buffer untouched
// unless every event succeeds.
func (b *Buffer) ApplyAtomic(events []ChangeEvent) (err error) {
	next := b.Clone()
	if err = next.Apply(events); err != nil {
		return err
	}
	b.lines = next.lines
	return nil
}

func (b *Buffer) apply(e ChangeEvent) error {
	start, end := e.Range.Start, e.Range.End
	if err := b.checkPosition(start); err != nil {
		return err
	}
	if err := b.checkPosition(end); err != nil {
		return err
	}
	if start.Line > len(b.lines) {
		return LineOutOfRange(start.Line, len(b.lines))
	}
	switch {
	case start.Line != end.Line && e.Text == "":
		b.deleteRows(start.Line, end.Line)
		return nil
	case start.Line == end.Line:
		return b.substituteInLine(start.Line, start.Character, end.Character, e.Text)
	default:
		return b.spliceMultipleLines(e.Range, e.Text)
	}
}

func (b *Buffer) checkPosition(p Position) error {
	if p.Line < 0 {
		return LineOutOfRange(p.Line, len(b.lines))
	}
	if p.Character < 0 {
		row, _ := b.Line(p.Line)
		return CharacterOutOfRange(p.Line, p.Character, len(row))
	}
	return nil
}

// deleteRows removes rows [start, end). Out of range bounds are clamped.
func (b *Buffer) deleteRows(start, end int) {
	if end > len(b.lines) {
		end = len(b.lines)
	}
	if start < 0 {
		start = 0
	}
	if start >= end {
		return
	}
	b.lines = slices.Delete(b.lines, start, end)
}

// substituteInLine replaces [startChar, endChar) of row line with text.
func (b *Buffer) substituteInLine(line, startChar, endChar int, text string) error {
	if startChar > endChar {
		return EndBeforeStart()
	}
	if line < 0 || line >= len(b.lines) {
		return LineOutOfRange(line, len(b.lines))
	}
	row := b.lines[line]
	if startChar < 0 {
		return CharacterOutOfRange(line, startChar, len(row))
	}
	if endChar > len(row) {
		return CharacterOutOfRange(line, endChar, len(row))
	}
	b.lines[line] = row[:startChar] + text + row[endChar:]
	return nil
}

// spliceMultipleLines replaces a range that spans rows with text, which may
// itself span rows. Rows strictly inside the range are removed and the
// interior lines of text are inserted in their place, so everything after the
// range shifts by the difference.
func (b *Buffer) spliceMultipleLines(r Range, text string) error {
	segments, err := splitLines(text, true)
	if err != nil {
		return Other("failed to split replacement text into lines: " + err.Error())
	}
	if len(segments) == 0 {
		return Other("replacement text has no lines")
	}
	start, end := r.Start, r.End
	if end.Line < start.Line {
		return EndBeforeStart()
	}
	if start.Line >= len(b.lines) {
		return LineOutOfRange(start.Line, len(b.lines))
	}
	if end.Line >= len(b.lines) {
		return LineOutOfRange(end.Line, len(b.lines))
	}
	if n := len(b.lines[start.Line]); start.Character > n {
		return CharacterOutOfRange(start.Line, start.Character, n)
	}
	if n := len(b.lines[end.Line]); end.Character > n {
		return CharacterOutOfRange(end.Line, end.Character, n)
	}

	// Everything is in bounds, so nothing below can fail part way through.
	if err = b.substituteInLine(start.Line, start.Character, len(b.lines[start.Line]), segments[0]); err != nil {
		return err
	}
	b.deleteRows(start.Line+1, end.Line)
	endRow := start.Line + 1

	last := len(segments) - 1
	if last == 0 {
		if err = b.substituteInLine(endRow, 0, end.Character, ""); err != nil {
			return err
		}
		b.lines[start.Line] += b.lines[endRow]
		b.deleteRows(endRow, endRow+1)
		return nil
	}
	b.insertRows(endRow, segments[1:last]...)
	endRow += last - 1
	return b.substituteInLine(endRow, 0, end.Character, segments[last])
}
