package document

import "fmt"

// Kind identifies the class of an edit failure. The set is closed: switch on
// it exhaustively to handle every failure an edit can produce.
type Kind int

const (
	// KindEndBeforeStart is returned when a single-line edit has a start
	// character after its end character.
	KindEndBeforeStart Kind = iota + 1
	// KindLineOutOfRange is returned when an edit refers to a row that does
	// not exist.
	KindLineOutOfRange
	// KindCharacterOutOfRange is returned when an edit refers to a character
	// offset past the end of a row.
	KindCharacterOutOfRange
	// KindDeprecated is returned for change events that carry no range.
	KindDeprecated
	// KindOther covers internal invariant violations.
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindEndBeforeStart:
		return "EndBeforeStart"
	case KindLineOutOfRange:
		return "LineOutOfRange"
	case KindCharacterOutOfRange:
		return "CharacterOutOfRange"
	case KindDeprecated:
		return "Deprecated"
	case KindOther:
		return "Other"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is returned by all Buffer operations that can fail.
type Error struct {
	Kind Kind
	// Line is the requested row, set for KindLineOutOfRange and
	// KindCharacterOutOfRange.
	Line int
	// Available is the row count for KindLineOutOfRange, or the row length
	// for KindCharacterOutOfRange.
	Available int
	// Character is the requested offset for KindCharacterOutOfRange.
	Character int
	// Reason is set for KindDeprecated and KindOther.
	Reason string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindEndBeforeStart:
		return "start character is after end character"
	case KindLineOutOfRange:
		return fmt.Sprintf("can't edit line row %d, document only has %d rows", e.Line, e.Available)
	case KindCharacterOutOfRange:
		return fmt.Sprintf("can't edit character %d of line row %d, row only has %d characters", e.Character, e.Line, e.Available)
	case KindDeprecated:
		return e.Reason
	case KindOther:
		if e.Reason == "" {
			return "unknown error"
		}
		return e.Reason
	}
	return "unknown error"
}

// Is reports whether target is an *Error of the same Kind, so that
// errors.Is(err, ErrLineOutOfRange) matches any out of range line.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrEndBeforeStart      = &Error{Kind: KindEndBeforeStart}
	ErrLineOutOfRange      = &Error{Kind: KindLineOutOfRange}
	ErrCharacterOutOfRange = &Error{Kind: KindCharacterOutOfRange}
	ErrDeprecated          = &Error{Kind: KindDeprecated}
	ErrOther               = &Error{Kind: KindOther}
)

func EndBeforeStart() *Error {
	return &Error{Kind: KindEndBeforeStart}
}

func LineOutOfRange(line, available int) *Error {
	return &Error{Kind: KindLineOutOfRange, Line: line, Available: available}
}

func CharacterOutOfRange(line, character, available int) *Error {
	return &Error{Kind: KindCharacterOutOfRange, Line: line, Character: character, Available: available}
}

func Deprecated(reason string) *Error {
	return &Error{Kind: KindDeprecated, Reason: reason}
}

func Other(reason string) *Error {
	return &Error{Kind: KindOther, Reason: reason}
}
