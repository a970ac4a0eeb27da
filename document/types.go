package document

// Position is a zero-based line and character offset. Character is in
// whatever code units the caller uses; the buffer indexes the row string with
// it directly.
type Position struct {
	Line      int
	Character int
}

func NewPosition(line, character int) Position {
	return Position{
		Line:      line,
		Character: character,
	}
}

type Range struct {
	Start Position
	End   Position
}

func NewRange(startLine, startCharacter, endLine, endCharacter int) Range {
	return Range{
		Start: NewPosition(startLine, startCharacter),
		End:   NewPosition(endLine, endCharacter),
	}
}

// ChangeEvent replaces Range with Text. An empty Text over a range spanning
// several lines deletes rows.
type ChangeEvent struct {
	Range Range
	Text  string
}

func NewChangeEvent(r Range, text string) ChangeEvent {
	return ChangeEvent{Range: r, Text: text}
}
