package exactcalc

import "strconv"

// SyntaxError is an error indicating malformed input. It implements
// InputError and unwraps to its Kind.
type SyntaxError struct {
	// Col is the position of the token that caused the error.
	Col int
	// Kind is the category of the error.
	Kind MathError
	// Text is the offending token, or the empty string at the end of input.
	Text string
}

func (err *SyntaxError) Error() string {
	if err.Text == "" {
		if err.Col <= 1 {
			return errpos(err.Col, err.Kind.Error())
		}
		return errpos(err.Col, err.Kind.Error()+" at end")
	}
	return errpos(err.Col, err.Kind.Error()+" at "+strconv.Quote(err.Text))
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// Unwrap returns the error's Kind.
func (err *SyntaxError) Unwrap() error {
	return err.Kind
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var _ InputError = (*SyntaxError)(nil)

// syntaxError creates a SyntaxError for a token.
func syntaxError(tok Token, kind MathError) error {
	return &SyntaxError{Col: tok.Pos, Kind: kind, Text: tok.text()}
}
