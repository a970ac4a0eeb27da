package messages

func NewPosition(line, character int) Position {
	return Position{
		Line:      line,
		Character: character,
	}
}

type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type TextDocumentIdentifier struct {
	URI string `json:"uri"`
}
