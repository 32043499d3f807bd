package exactcalc

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// diff finds the first in-order node of n that differs from m, or nil, nil if
// the two ASTs are equal. If any node is nodeNone, it is returned.
func (n *node) diff(m *node) (*node, *node) {
	if n == nil {
		if m != nil {
			return n, m
		}
		return nil, nil
	}
	if m == nil {
		return n, m
	}
	if n.kind == nodeNone || m.kind == nodeNone {
		return n, m
	}
	if n.kind != m.kind {
		return n, m
	}
	switch n.kind {
	case nodeNum:
		if !n.val.Equal(m.val) {
			return n, m
		}
	case nodeCall:
		if n.fn != m.fn {
			return n, m
		}
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
		if d, e := n.right.diff(m.right); d != nil || e != nil {
			return d, e
		}
	case nodeNeg, nodeNop:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
	default:
		panic(fmt.Errorf("invalid node kind: n=%+v m=%+v", n, m))
	}
	return nil, nil
}

// haskind checks whether a parse tree contains a node of the given type.
func (n *node) haskind(k nodeKind) bool {
	if n == nil {
		return false
	}
	if n.kind == k {
		return true
	}
	if n.left.haskind(k) {
		return true
	}
	return n.right.haskind(k)
}

func TestOpPrecsExist(t *testing.T) {
	for _, r := range Operators {
		k := oprunes[r]
		b := binop(k)
		u := unop(k)
		if b.op == nodeNone && u.op == nodeNone {
			t.Errorf("no operator for %c", r)
		}
	}
}

func TestNegPrecBetweenMulAndPow(t *testing.T) {
	neg := unop(TokenMinus)
	if !neg.moreBinding(binop(TokenMultiply)) {
		t.Errorf("negation does not bind more tightly than *")
	}
	if neg.moreBinding(binop(TokenPower)) {
		t.Errorf("negation binds more tightly than ^")
	}
}

func TestParseTrees(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{"paren", "(1)", "1"},
		{"multi", "((((1))))", "1"},

		{"plus", "+1", "(+(1))"},
		{"neg", "-1", "(-(1))"},
		{"add", "1+2", "((1)+(2))"},
		{"sub", "1-2", "((1)-(2))"},
		{"mul", "1*2", "((1)*(2))"},
		{"div", "1/2", "((1)/(2))"},
		{"pow", "1^2", "((1)^(2))"},
		{"altmul", "1×2", "1*2"},
		{"altdiv", "1÷2", "1/2"},
		{"spaces", " 1 + 2 ", "1+2"},

		{"sqrt", "sqrt(2)", "sqrt((2))"},
		{"sqrt-space", "sqrt (2)", "sqrt(2)"},
		{"cbrt-add", "cbrt(2)+1", "(cbrt(2))+1"},
		{"square-pow", "square(2)^3", "(square(2))^3"},
		{"cube-arg", "cube(1+2*3)", "cube((1+(2*3)))"},
		{"nested", "sqrt(cbrt(4))", "sqrt((cbrt((4))))"},
		{"neg-call", "-sqrt(2)", "-(sqrt(2))"},

		{"add4", "1+2+3+4", "((1+2)+3)+4"},
		{"sub4", "1-2-3-4", "((1-2)-3)-4"},
		{"mul4", "1*2*3*4", "((1*2)*3)*4"},
		{"div4", "1/2/3/4", "((1/2)/3)/4"},
		{"pow4", "1^2^3^4", "1^(2^(3^4))"},

		{"negpow", "-1^2", "-(1^2)"},
		{"negmul", "-1*2", "(-1)*2"},
		{"mulneg", "1*-2*3", "(1*(-2))*3"},
		{"desc", "1^2*3+4", "((1^2)*3)+4"},
		{"asc", "1+2*3^4", "1+(2*(3^4))"},
		{"descasc", "1^2*3+4+5*6^7", "(((1^2)*3)+4)+5*(6^7)"},
		{"ascdesc", "1+2*3^4^5*6+7", "1+((2*(3^(4^5)))*6)+7"},
		{"negneg", "--1", "-(-1)"},
		{"negsub", "-1-1", "(-1)-1"},
		{"subneg", "1--1", "1-(-1)"},
		{"powneg", "2^-1", "2^(-1)"},
		{"pownegpow", "1^-2^-3", "1^(-(2^(-3)))"},
		{"pownegneg", "1^--2", "1^(-(-2))"},
		{"pownegmul", "2^-3*4", "(2^(-3))*4"},
		{"plusneg", "+-1", "+(-1)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(strings.NewReader(c.a))
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.a, err)
			}
			b, err := Parse(strings.NewReader(c.b))
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.b, err)
			}
			d, e := a.n.diff(b.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\t%q parses %v has %v\n\t%q parses %v has %v", c.a, a.n, d, c.b, b.n, e)
			}
		})
	}
}

func TestParseExact(t *testing.T) {
	cases := []struct {
		name string
		src  string
		n    *node
	}{
		{
			name: "fraction",
			src:  "0.25",
			n:    &node{kind: nodeNum, val: ratio(1, 4)},
		},
		{
			name: "sqrt",
			src:  "sqrt(8)",
			n: &node{
				kind: nodeCall,
				fn:   FuncSqrt,
				left: &node{kind: nodeNum, val: NewInt(8)},
			},
		},
		{
			name: "cube-neg",
			src:  "cube(-2)",
			n: &node{
				kind: nodeCall,
				fn:   FuncCube,
				left: &node{
					kind: nodeNeg,
					left: &node{kind: nodeNum, val: NewInt(2)},
				},
			},
		},
		{
			name: "pow-right",
			src:  "2^3^2",
			n: &node{
				kind: nodePow,
				left: &node{kind: nodeNum, val: NewInt(2)},
				right: &node{
					kind:  nodePow,
					left:  &node{kind: nodeNum, val: NewInt(3)},
					right: &node{kind: nodeNum, val: NewInt(2)},
				},
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(strings.NewReader(c.src))
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			d, e := a.n.diff(c.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\twant %v which has %v\n\tgot  %v which has %v from %q", c.n, e, a.n, d, c.src)
			}
		})
	}
}

func TestExprString(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"num", "1", "(1)"},
		{"neg", "-1", "(-[1])"},
		{"add", "1+2", "([1] + [2])"},
		{"nested", "1+2*3", "([1] + [(2) * (3)])"},
		{"call", "sqrt(2)", "(sqrt[2])"},
		{"fraction", "0.5", "(1/2)"},
		{"plus", "+1", "(+[1])"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(strings.NewReader(c.src))
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if s := a.String(); s != c.want {
				t.Errorf("%q formatted wrong: want %q, got %q", c.src, c.want, s)
			}
		})
	}
}

func TestExprStringReparses(t *testing.T) {
	cases := []string{
		"1", "-1", "1+2", "1-2-3", "2^3^2", "-2^2", "2^-1", "1+2*3^4^5*6+7",
		"sqrt(2)*cbrt(3)", "square(cube(2))", "1--1",
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			a, err := Parse(strings.NewReader(src))
			if err != nil {
				t.Fatalf("%q failed to parse: %v", src, err)
			}
			s := a.String()
			// The round brackets are ordinary; the square brackets are not
			// part of the input syntax.
			s = strings.NewReplacer("[", "(", "]", ")").Replace(s)
			b, err := Parse(strings.NewReader(s))
			if err != nil {
				t.Fatalf("%q -> %q failed to parse: %v", src, s, err)
			}
			d, e := a.n.diff(b.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\t%q parses %v has %v\n\t%q parses %v has %v", src, a.n, d, s, b.n, e)
			}
		})
	}
}

// parseErrorCases are inputs which both parsers must reject the same way.
var parseErrorCases = []struct {
	name string
	src  string
	kind MathError
	col  int
	res  []string
}{
	{"empty", "", MissingOperand, 1, []string{`(?i)\bmissing operand\b`}},
	{"emptyparen", "()", MissingOperand, 2, []string{`\)`}},
	{"emptyoperand", "1*", MissingOperand, 3, []string{`(?i)\bend\b`}},
	{"emptyunary", "1*-", MissingOperand, 4, []string{`(?i)\bend\b`}},
	{"left", "(1+2", UnmatchedBracket, 1, []string{`(?i)\bbracket\b`, `\(`}},
	{"right", "1+2)", UnmatchedBracket, 4, []string{`(?i)\bbracket\b`, `\)`}},
	{"rightfirst", ")(", UnmatchedBracket, 1, []string{`\)`}},
	{"rightunary", "-)", UnmatchedBracket, 2, []string{`\)`}},
	{"nested", "((1)", UnmatchedBracket, 1, nil},
	{"nestedinner", "((1", UnmatchedBracket, 2, nil},
	{"nonunary", "*1", MissingOperand, 1, []string{`\*`}},
	{"nonunarypow", "2^^3", MissingOperand, 3, []string{`\^`}},
	{"adjacent", "1 2", MissingOperator, 3, []string{`(?i)\bmissing operator\b`, `"2"`}},
	{"adjacentparen", "2(3)", MissingOperator, 2, []string{`\(`}},
	{"adjacentcall", "2 sqrt(4)", MissingOperator, 3, []string{`sqrt`}},
	{"callcall", "sqrt(4)(2)", MissingOperator, 8, nil},
	{"bare", "sqrt", MissingOperand, 1, []string{`sqrt`}},
	{"barearg", "sqrt 4", MissingOperand, 1, []string{`sqrt`}},
	{"callempty", "cbrt()", MissingOperand, 6, []string{`\)`}},
	{"callopen", "cube(", MissingOperand, 6, []string{`(?i)\bend\b`}},
	{"callunclosed", "cube(2", UnmatchedBracket, 5, nil},
	{"op-paren", "(2*)", MissingOperand, 4, []string{`\)`}},
	{"haskell", "(+)", MissingOperand, 3, []string{`\)`}},
}

func TestParseErrors(t *testing.T) {
	for _, c := range parseErrorCases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(strings.NewReader(c.src))
			if a != nil {
				t.Errorf("%q parsed non-nil to %v", c.src, a.n)
			}
			if !errors.Is(err, c.kind) {
				t.Fatalf("wrong error from %q: want %v, got %v", c.src, c.kind, err)
			}
			var ierr InputError
			if !errors.As(err, &ierr) {
				t.Fatalf("%#v is not an InputError", err)
			}
			if ierr.Pos() != c.col {
				t.Errorf("%q: wrong position: want %d, got %d (%v)", c.src, c.col, ierr.Pos(), err)
			}
			msg := err.Error()
			for _, re := range c.res {
				if !regexp.MustCompile(re).MatchString(msg) {
					t.Errorf("error message %q does not match %s", msg, re)
				}
			}
		})
	}
}

func TestParseLexErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind MathError
	}{
		{"dots", "1.2.3", InvalidDecimalPoint},
		{"dollar", "1$2", UnknownOperator},
		{"name", "2^exp(1)", UnknownOperator},
		{"late", "(1+2)*3.4.5", InvalidDecimalPoint},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(strings.NewReader(c.src))
			if a != nil {
				t.Errorf("%q parsed non-nil to %v", c.src, a.n)
			}
			if !errors.Is(err, c.kind) {
				t.Errorf("wrong error from %q: want %v, got %v", c.src, c.kind, err)
			}
		})
	}
}

// parserAgreementCases are valid inputs for comparing the two parsers.
var parserAgreementCases = []string{
	"1", "-1", "+1", "1+2", "1-2-3", "1*2/3", "2^3^2", "-2^2", "2^-2", "-2*3",
	"2*-3*4", "2^-3*4", "2^-3^2", "--1", "1--1", "(1+2)*3", "2+3*4",
	"((1))", "sqrt(2)*sqrt(2)", "cbrt(16)", "square(1+2)^2", "-cube(-2)",
	"1+2*3^4^5*6+7", "sqrt(8)/sqrt(2)", "1/3+1/3+1/3", "1.5e-3*2",
}

func TestPostfixAgrees(t *testing.T) {
	for _, src := range parserAgreementCases {
		t.Run(src, func(t *testing.T) {
			toks, err := Tokenize(src)
			if err != nil {
				t.Fatalf("%q failed to lex: %v", src, err)
			}
			a, err := ParseTokens(toks)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", src, err)
			}
			p, err := ToPostfix(toks)
			if err != nil {
				t.Fatalf("%q failed to convert: %v", src, err)
			}
			opts := cmp.Options{cmpopts.IgnoreFields(Token{}, "Pos"), cmpopts.IgnoreUnexported(Token{})}
			if diff := cmp.Diff(a.Postfix(), p, opts); diff != "" {
				t.Errorf("%q: postfix differs from parse tree %v (-tree +postfix):\n%s", src, a, diff)
			}
		})
	}
}

func TestPostfixErrorsAgree(t *testing.T) {
	for _, c := range parseErrorCases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := Tokenize(c.src)
			if err != nil {
				t.Fatalf("%q failed to lex: %v", c.src, err)
			}
			p, err := ToPostfix(toks)
			if p != nil {
				t.Errorf("%q converted to %v", c.src, p)
			}
			if !errors.Is(err, c.kind) {
				t.Fatalf("wrong error from %q: want %v, got %v", c.src, c.kind, err)
			}
			var ierr InputError
			if !errors.As(err, &ierr) {
				t.Fatalf("%#v is not an InputError", err)
			}
			if ierr.Pos() != c.col {
				t.Errorf("%q: wrong position: want %d, got %d (%v)", c.src, c.col, ierr.Pos(), err)
			}
		})
	}
}

func TestStopOn(t *testing.T) {
	cases := []struct {
		name string
		src  string
		stop string
		good [][]nodeKind
		bad  [][]nodeKind
		errs []error
	}{
		{"newline", "1\n2", "\n", [][]nodeKind{{nodeNum}, {nodeNum}}, [][]nodeKind{{nodeMul}, {nodeMul}}, nil},
		{"multinl", "1\n\n2", "\n", [][]nodeKind{{nodeNum}, {nodeNum}}, [][]nodeKind{{nodeMul}, {nodeMul}}, nil},
		{"tab", "1+2\t3", "\t", [][]nodeKind{{nodeAdd}, {nodeNum}}, [][]nodeKind{{nodeMul}, {nodeAdd}}, nil},
		{"continue", "1+\n2\n3", "\n", [][]nodeKind{{nodeAdd}, {nodeNum}}, [][]nodeKind{{}, {nodeAdd}}, nil},
		{"call", "sqrt\n(2)", "\n", [][]nodeKind{{nodeCall}}, [][]nodeKind{{}}, nil},
		{"brackets", "(1\n+2)\n3", "\n", [][]nodeKind{{nodeAdd}, {nodeNum}}, [][]nodeKind{{}, {nodeAdd}}, nil},
		{"adjacent", "1 2\n3", "\n", [][]nodeKind{{}, {nodeNum}}, [][]nodeKind{{}, {}}, []error{MissingOperator}},
	}
	for _, c := range cases {
		if len(c.good) != len(c.bad) {
			t.Fatalf("case %q has different sizes of good and bad: %v vs %v", c.name, c.good, c.bad)
		}
		t.Run(c.name, func(t *testing.T) {
			src := strings.NewReader(c.src)
			for i := range c.good {
				a, err := Parse(src, StopOn([]rune(c.stop)...))
				if err != nil {
					switch {
					case i >= len(c.errs), c.errs[i] == nil:
						t.Errorf("%q iter %d didn't parse: %v", c.src, i, err)
					case !errors.Is(err, c.errs[i]):
						t.Errorf("%q iter %d gave wrong error: want %v, got %#v", c.src, i, c.errs[i], err)
					}
					continue
				}
				for _, good := range c.good[i] {
					if !a.n.haskind(good) {
						t.Errorf("%q iter %d didn't have %v", c.src, i, good)
					}
				}
				for _, bad := range c.bad[i] {
					if a.n.haskind(bad) {
						t.Errorf("%q iter %d had %v", c.src, i, bad)
					}
				}
			}
			a, err := Parse(src)
			if !errors.Is(err, MissingOperand) {
				t.Errorf("%q after %d iters parsed with error %#v and parse tree %v", c.src, len(c.good), err, a)
			}
		})
	}
}

func TestStopOnPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("StopOn(',') did not panic")
		}
	}()
	StopOn(',')
}

func BenchmarkParse(b *testing.B) {
	cases := []struct {
		name string
		src  string
	}{
		{"descasc", "1^2*3+4+5*6^7"},
		{"descasc-parens", "(((1^2)*3)+4)+5*(6^7)"},
		{"ascdesc", "1+2*3^4^5*6+7"},
		{"ascdesc-parens", "1+((2*(3^(4^5)))*6)+7"},
		{"nums", "1^1.1*1.1e1+1.1e-1+.1*1e38^.5"},
		{"calls", "sqrt(2)*cbrt(3)+square(4)-cube(5)"},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			var src strings.Reader
			for i := 0; i < b.N; i++ {
				src.Reset(c.src)
				Parse(&src)
			}
		})
	}
}
