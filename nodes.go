package exactcalc

import (
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	val Value
	fn  Func

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // push val
	nodeCall // evaluate left, apply fn

	nodeNeg // evaluate left, then negate
	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
	nodePow // evaluate left, exp by right
	nodeNop // evaluate left
)

var nodenames = [...]string{
	nodeNone: "None",
	nodeNum:  "Num",
	nodeCall: "Call",
	nodeNeg:  "Neg",
	nodeAdd:  "Add",
	nodeSub:  "Sub",
	nodeMul:  "Mul",
	nodeDiv:  "Div",
	nodePow:  "Pow",
	nodeNop:  "Nop",
}

func (k nodeKind) String() string {
	if k < 0 || int(k) >= len(nodenames) {
		return "nodeKind?"
	}
	return nodenames[k]
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

// fmt writes the node with every subexpression bracketed, alternating round
// and square brackets by depth.
func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.kind {
	case nodeNum:
		b.WriteString(n.val.String())
	case nodeCall:
		b.WriteString(n.fn.String())
		n.left.fmt(b, !square)
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b, !square)
	case nodeAdd:
		n.binary(b, square, " + ")
	case nodeSub:
		n.binary(b, square, " - ")
	case nodeMul:
		n.binary(b, square, " * ")
	case nodeDiv:
		n.binary(b, square, " / ")
	case nodePow:
		n.binary(b, square, " ^ ")
	case nodeNop:
		b.WriteByte('+')
		n.left.fmt(b, !square)
	default:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
	}
}

func (n *node) binary(b *strings.Builder, square bool, op string) {
	n.left.fmt(b, !square)
	b.WriteString(op)
	n.right.fmt(b, !square)
}

// postfix appends the node's postfix token sequence to toks.
func (n *node) postfix(toks []Token) []Token {
	switch n.kind {
	case nodeNum:
		return append(toks, Token{Kind: TokenNumber, Val: n.val})
	case nodeCall:
		toks = n.left.postfix(toks)
		return append(toks, Token{Kind: n.fn.token()})
	case nodeNeg:
		return append(n.left.postfix(toks), Token{Kind: TokenNeg})
	case nodeNop:
		return n.left.postfix(toks)
	}
	toks = n.left.postfix(toks)
	toks = n.right.postfix(toks)
	return append(toks, Token{Kind: binopToken[n.kind]})
}

var binopToken = map[nodeKind]TokenKind{
	nodeAdd: TokenPlus,
	nodeSub: TokenMinus,
	nodeMul: TokenMultiply,
	nodeDiv: TokenDivide,
	nodePow: TokenPower,
}
