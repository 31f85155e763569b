package datemath

import "fmt"

// ParseErrorKind identifies which rule an expression broke.
type ParseErrorKind string

const (
	ErrMultiCharacterCommand ParseErrorKind = "multi_character_command"
	ErrMissingUnit           ParseErrorKind = "missing_unit"
	ErrUnitNotRecognized     ParseErrorKind = "unit_not_recognized"
	ErrNotANumber            ParseErrorKind = "not_a_number"
	ErrMissingValueOrUnit    ParseErrorKind = "missing_value_or_unit"
	ErrUnrecognizedCommand   ParseErrorKind = "unrecognized_command"
)

// ParseError reports the first invalid token in a math expression. Pos is a
// token index in the tokenized stream, not a character offset.
type ParseError struct {
	Kind  ParseErrorKind
	Token string
	Pos   int
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrMultiCharacterCommand:
		return fmt.Sprintf("multi character command found at position %d: %q", e.Pos, e.Token)
	case ErrMissingUnit:
		return fmt.Sprintf("need a unit after command %q", e.Token)
	case ErrUnitNotRecognized:
		return fmt.Sprintf("unit not recognized at position %d: %q", e.Pos, e.Token)
	case ErrNotANumber:
		return fmt.Sprintf("not a number at position %d: %q", e.Pos, e.Token)
	case ErrMissingValueOrUnit:
		return fmt.Sprintf("need a value and unit for command %q", e.Token)
	case ErrUnrecognizedCommand:
		return fmt.Sprintf("unrecognized command at position %d: %q", e.Pos, e.Token)
	default:
		return fmt.Sprintf("invalid token at position %d: %q", e.Pos, e.Token)
	}
}

// BadRequestError is the only failure surfaced by the absolute Parse entry
// point. It carries the raw input and, when evaluation got far enough to
// fail, the underlying cause.
type BadRequestError struct {
	Input string
	Err   error
}

func (e *BadRequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid date math string %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("invalid date string %q", e.Input)
}

func (e *BadRequestError) Unwrap() error { return e.Err }
