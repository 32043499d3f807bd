package exactcalc

import (
	"strconv"
	"strings"
)

// Token is a lexical unit of an expression: a number, operator, bracket, or
// function name.
type Token struct {
	// Kind is the type of token.
	Kind TokenKind
	// Val is the value of a TokenNumber. It is Empty for other kinds.
	Val Value
	// Pos is the position of the token as the number of runes up to and
	// including its first rune.
	Pos int
	// src is the literal text of a number token.
	src string
}

// TokenKind identifies a type of token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF

	// TokenNumber is a literal number.
	TokenNumber
	// TokenPlus is + as a binary or unary operator.
	TokenPlus
	// TokenMinus is - as a binary or unary operator.
	TokenMinus
	// TokenMultiply is * or ×.
	TokenMultiply
	// TokenDivide is / or ÷.
	TokenDivide
	// TokenPower is ^.
	TokenPower
	// TokenLBracket is (.
	TokenLBracket
	// TokenRBracket is ).
	TokenRBracket
	// TokenSqrt is the sqrt function.
	TokenSqrt
	// TokenCbrt is the cbrt function.
	TokenCbrt
	// TokenSquare is the square function.
	TokenSquare
	// TokenCube is the cube function.
	TokenCube
	// TokenNeg is unary minus. The lexer never produces it; ToPostfix emits
	// it in place of a TokenMinus that has no left operand.
	TokenNeg
)

var tokentext = [...]string{
	tokenNone:     "",
	tokenEOF:      "",
	TokenNumber:   "number",
	TokenPlus:     "+",
	TokenMinus:    "-",
	TokenMultiply: "*",
	TokenDivide:   "/",
	TokenPower:    "^",
	TokenLBracket: "(",
	TokenRBracket: ")",
	TokenSqrt:     "sqrt",
	TokenCbrt:     "cbrt",
	TokenSquare:   "square",
	TokenCube:     "cube",
	TokenNeg:      "neg",
}

func (k TokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	}
	if k < 0 || int(k) >= len(tokentext) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokentext[k]
}

func (t Token) String() string {
	return t.text() + "@" + strconv.Itoa(t.Pos)
}

// text returns the token as it would be written in an expression.
func (t Token) text() string {
	switch t.Kind {
	case TokenNumber:
		if t.src != "" {
			return t.src
		}
		return t.Val.String()
	case tokenNone, tokenEOF:
		return ""
	}
	return t.Kind.String()
}

// function returns the function a token names, if any.
func (t Token) function() (Func, bool) {
	switch t.Kind {
	case TokenSqrt:
		return FuncSqrt, true
	case TokenCbrt:
		return FuncCbrt, true
	case TokenSquare:
		return FuncSquare, true
	case TokenCube:
		return FuncCube, true
	default:
		return 0, false
	}
}

// FormatTokens writes a token sequence separated by spaces.
func FormatTokens(toks []Token) string {
	var b strings.Builder
	for i, tok := range toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok.text())
	}
	return b.String()
}
