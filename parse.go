package exactcalc

import (
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Expr = num | Call | Neg | Plus | Add | Sub | Mul | Div | Pow | '(' Expr ')'
// Call = funcname '(' Expr ')'
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr | Expr '×' Expr
// Div = Expr '/' Expr | Expr '÷' Expr
// Pow = Expr '^' Expr

// Expr is a parsed expression.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type eofopt struct {
	ws string
}

// parsectx holds general data for parsing.
type parsectx struct {
	// wseof is a string containing the whitespace characters that trigger an
	// EOF token from the lexer.
	wseof string
}

// StopOn tells the parser to treat a list of whitespace characters as ending
// the expression. Whitespace does not end an expression where a term is
// expected, e.g. following an operator or open bracket. This allows parsing
// one expression per line from a single reader.
//
// StopOn overrides the effect of any previous StopOn in the parsing options.
// With no arguments, StopOn produces the default termination behavior, which
// is to parse to EOF. StopOn panics if any rune is not whitespace.
func StopOn(chars ...rune) ParseOption {
	var b strings.Builder
	for _, r := range chars {
		if !unicode.IsSpace(r) {
			panic("exactcalc: cannot stop on " + strconv.QuoteRune(r))
		}
		b.WriteRune(r)
	}
	return &eofopt{ws: b.String()}
}

func (o *eofopt) parseOption(p parsectx) parsectx {
	p.wseof = o.ws
	return p
}

// Parse parses an expression. The given options are applied in order.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Expr, error) {
	toks, err := Scan(src, opts...)
	if err != nil {
		return nil, err
	}
	return ParseTokens(toks)
}

// Scan reads the tokens of one expression from src. It is Tokenize for a
// reader, honoring StopOn.
func Scan(src io.RuneScanner, opts ...ParseOption) ([]Token, error) {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	return tokenize(lex(src, p.wseof))
}

// ParseTokens parses an expression from a sequence of tokens in infix order,
// as produced by Tokenize.
func ParseTokens(toks []Token) (*Expr, error) {
	scan := &tokens{toks: toks}
	n, err := parseterm(scan, exprprec)
	if err != nil {
		return nil, err
	}
	switch tok := scan.next(); tok.Kind {
	case tokenEOF:
		return &Expr{n: n}, nil
	case TokenRBracket:
		return nil, syntaxError(tok, UnmatchedBracket)
	default:
		return nil, syntaxError(tok, Internal)
	}
}

// tokens is a token stream with one token of backup.
type tokens struct {
	toks []Token
	k    int
	// depth is the number of open brackets.
	depth int
}

// next returns the next token, or an EOF token after the last one.
func (s *tokens) next() Token {
	s.k++
	if s.k > len(s.toks) {
		return Token{Kind: tokenEOF, Pos: s.end()}
	}
	return s.toks[s.k-1]
}

// backup unreads the last token returned by next.
func (s *tokens) backup() {
	s.k--
}

// end returns the position just after the last token.
func (s *tokens) end() int {
	return endpos(s.toks)
}

// endpos returns the position just after the last of toks.
func endpos(toks []Token) int {
	if len(toks) == 0 {
		return 1
	}
	last := toks[len(toks)-1]
	return last.Pos + utf8.RuneCountInString(last.text())
}

// parseterm parses a single term, consuming binary operators that bind more
// tightly than until. If there is no error, then the token following the term
// remains to be scanned.
func parseterm(scan *tokens, until operator) (*node, error) {
	n, err := parselhs(scan, until)
	if err != nil {
		return nil, err
	}
	for {
		tok := scan.next()
		switch tok.Kind {
		case TokenNumber, TokenLBracket, TokenSqrt, TokenCbrt, TokenSquare, TokenCube, TokenNeg:
			// Something that starts a new term, with no operator before it.
			return nil, syntaxError(tok, MissingOperator)
		case TokenPlus, TokenMinus, TokenMultiply, TokenDivide, TokenPower:
			prec := binop(tok.Kind)
			if !prec.moreBinding(until) {
				scan.backup()
				return n, nil
			}
			rhs, err := parseterm(scan, prec)
			if err != nil {
				return nil, err
			}
			n = &node{kind: prec.op, left: n, right: rhs}
		case TokenRBracket, tokenEOF:
			// End of expression.
			scan.backup()
			return n, nil
		default:
			return nil, syntaxError(tok, Internal)
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary,
// and any encountered token must be valid as the start of a subexpression.
func parselhs(scan *tokens, until operator) (*node, error) {
	tok := scan.next()
	switch tok.Kind {
	case TokenNumber:
		if tok.Val.IsEmpty() {
			return nil, syntaxError(tok, MissingOperand)
		}
		return &node{kind: nodeNum, val: tok.Val}, nil
	case TokenPlus, TokenMinus, TokenNeg:
		prec := unop(tok.Kind)
		if !prec.moreBinding(until) {
			// x^-y -> x^(-y)
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseterm(scan, prec)
		if err != nil {
			return nil, err
		}
		return &node{kind: prec.op, left: rhs}, nil
	case TokenLBracket:
		scan.depth++
		rhs, err := parseterm(scan, exprprec)
		if err != nil {
			return nil, err
		}
		if end := scan.next(); end.Kind != TokenRBracket {
			return nil, syntaxError(tok, UnmatchedBracket)
		}
		scan.depth--
		return rhs, nil
	case TokenSqrt, TokenCbrt, TokenSquare, TokenCube:
		fn, _ := tok.function()
		open := scan.next()
		scan.backup()
		if open.Kind != TokenLBracket {
			return nil, syntaxError(tok, MissingOperand)
		}
		arg, err := parselhs(scan, exprprec)
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeCall, fn: fn, left: arg}, nil
	case TokenRBracket:
		if scan.depth == 0 {
			return nil, syntaxError(tok, UnmatchedBracket)
		}
		return nil, syntaxError(tok, MissingOperand)
	default:
		// EOF or a binary operator with no left operand.
		return nil, syntaxError(tok, MissingOperand)
	}
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b, false)
	return b.String()
}

// Postfix returns the expression's tokens in postfix order. Negation appears
// as TokenNeg. The tokens have no positions.
func (e *Expr) Postfix() []Token {
	return e.n.postfix(nil)
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token kind. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(k TokenKind) operator {
	switch k {
	case TokenPlus:
		return operator{1, false, nodeAdd}
	case TokenMinus:
		return operator{1, false, nodeSub}
	case TokenMultiply:
		return operator{2, false, nodeMul}
	case TokenDivide:
		return operator{2, false, nodeDiv}
	case TokenPower:
		return operator{3, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token kind. Unary operators bind their
// operand more loosely than ^ but more tightly than * and /, so -2^2 is
// -(2^2) and -2*3 is (-2)*3. If there is no such unary operator, then the
// result has an op of nodeNone.
func unop(k TokenKind) operator {
	switch k {
	case TokenPlus:
		return operator{2, true, nodeNop}
	case TokenMinus, TokenNeg:
		return operator{2, true, nodeNeg}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}
