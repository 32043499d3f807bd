package exactcalc

import (
	"errors"
	"io"
	"strings"
	"unicode"
)

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/^×÷"

var oprunes = map[rune]TokenKind{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenMultiply,
	'×': TokenMultiply,
	'/': TokenDivide,
	'÷': TokenDivide,
	'^': TokenPower,
	'(': TokenLBracket,
	')': TokenRBracket,
}

var funcnames = map[string]TokenKind{
	"sqrt":   TokenSqrt,
	"cbrt":   TokenCbrt,
	"square": TokenSquare,
	"cube":   TokenCube,
}

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	eof  bool
	// wseof is a string containing the whitespace characters that end the
	// input once a complete term has been scanned.
	wseof string
	// term is whether the last token can end an expression.
	term bool
	// depth is the number of unclosed brackets.
	depth int
}

func lex(src io.RuneScanner, wseof string) *lexer {
	return &lexer{
		src:   src,
		rune:  1,
		wseof: wseof,
	}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. The first time EOF is encountered,
// the result is an EOF token with a nil error. Subsequent calls return an
// empty token with io.EOF.
func (l *lexer) next() (Token, error) {
	if l.eof {
		return Token{}, io.EOF
	}
	defer l.buf.Reset()
	tok := Token{Pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.Kind = tokenEOF
				l.eof = true
				return tok, nil
			}
			return tok, err
		}
		switch {
		case unicode.IsSpace(r):
			// Whitespace only ends the input where an expression could end,
			// so that "1 +\n2" and "(1\n)" are each one expression.
			if l.term && l.depth <= 0 && strings.ContainsRune(l.wseof, r) {
				tok.Kind = tokenEOF
				l.eof = true
				return tok, nil
			}
			tok.Pos++
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if kind := l.scanNum(); kind != None {
				return tok, &SyntaxError{Col: tok.Pos, Kind: kind, Text: l.buf.String()}
			}
			tok.src = l.buf.String()
			v, err := literal(tok.src)
			if err != nil {
				kind := Internal
				errors.As(err, &kind)
				return tok, &SyntaxError{Col: tok.Pos, Kind: kind, Text: tok.src}
			}
			tok.Kind = TokenNumber
			tok.Val = v
			l.term = true
			return tok, nil
		case r == '_', unicode.IsLetter(r):
			l.unreadRune()
			if err := l.scanIdent(); err != nil {
				return tok, err
			}
			k, ok := funcnames[l.buf.String()]
			if !ok {
				return tok, &SyntaxError{Col: tok.Pos, Kind: UnknownOperator, Text: l.buf.String()}
			}
			tok.Kind = k
			l.term = false
			return tok, nil
		default:
			k, ok := oprunes[r]
			if !ok {
				return tok, &SyntaxError{Col: tok.Pos, Kind: UnknownOperator, Text: string(r)}
			}
			tok.Kind = k
			l.term = k == TokenRBracket
			switch k {
			case TokenLBracket:
				l.depth++
			case TokenRBracket:
				l.depth--
			}
			return tok, nil
		}
	}
}

// scanNum scans a number into the lexer's buffer. A number is a run of digits
// with at most one decimal point, optionally followed by an exponent: e or E,
// an optional sign, and digits. If the number is malformed, the result is the
// kind of error, and the buffer holds the text up to the offending rune.
func (l *lexer) scanNum() MathError {
	// dig is whether the mantissa has a digit, dot whether it has a point,
	// e whether there is an exponent marker, le whether the last rune was the
	// exponent marker, and ed whether the exponent has a digit.
	var dig, dot, e, le, ed bool
scan:
	for {
		r, err := l.readRune()
		if err != nil {
			// The lexer reports non-EOF read errors on the next token.
			break
		}
		switch {
		case '0' <= r && r <= '9':
			if e {
				ed = true
			} else {
				dig = true
			}
			le = false
		case r == '.':
			if dot || e {
				l.buf.WriteRune(r)
				return InvalidDecimalPoint
			}
			dot = true
		case (r == 'e' || r == 'E') && !e:
			if !dig {
				l.buf.WriteRune(r)
				return InvalidDecimalPoint
			}
			e, le = true, true
		case (r == '+' || r == '-') && le:
			le = false
		case r == '_', unicode.IsLetter(r), unicode.IsDigit(r):
			l.buf.WriteRune(r)
			return UnknownOperator
		default:
			l.unreadRune()
			break scan
		}
		l.buf.WriteRune(r)
	}
	switch {
	case !dig:
		return InvalidDecimalPoint
	case e && !ed:
		return UnknownOperator
	}
	return None
}

func (l *lexer) scanIdent() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unreads the rune that decides ident scanning before
				// calling scanIdent, so we have scanned at least one rune.
				return nil
			}
			return err
		}
		switch {
		case r == '_', unicode.IsLetter(r), unicode.IsDigit(r):
			l.buf.WriteRune(r)
		default:
			l.unreadRune()
			return nil
		}
	}
}

// Tokenize splits an expression into tokens. Unary and binary minus are both
// TokenMinus; ToPostfix distinguishes them.
func Tokenize(s string) ([]Token, error) {
	return tokenize(lex(strings.NewReader(s), ""))
}

// tokenize scans tokens until EOF.
func tokenize(scan *lexer) ([]Token, error) {
	var toks []Token
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == tokenEOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}
