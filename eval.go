package exactcalc

import (
	"io"
	"strings"
)

// machine is an operand stack for evaluating expressions. It is not safe to
// use a machine concurrently.
type machine struct {
	stack []Value
}

// push pushes a value onto the stack.
func (m *machine) push(v Value) {
	m.stack = append(m.stack, v)
}

// pop removes the top from the stack and returns it.
func (m *machine) pop() Value {
	r := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return r
}

// result returns the single value left after evaluating an expression.
func (m *machine) result() (Value, error) {
	switch len(m.stack) {
	case 0:
		return Value{}, MissingOperand
	case 1:
		r := m.stack[0]
		if r.IsEmpty() {
			return Value{}, MissingOperand
		}
		return r, nil
	default:
		return Value{}, MissingOperator
	}
}

// binary pops two operands and pushes op applied to them.
func (m *machine) binary(op func(x, y Value) (Value, error)) error {
	y := m.pop()
	x := m.pop()
	r, err := op(x, y)
	if err != nil {
		return err
	}
	m.push(r)
	return nil
}

// unary replaces the top of the stack with op applied to it.
func (m *machine) unary(op func(x Value) (Value, error)) error {
	r, err := op(m.pop())
	if err != nil {
		return err
	}
	m.push(r)
	return nil
}

// Eval evaluates the expression and returns its result.
func (e *Expr) Eval() (Value, error) {
	var m machine
	if err := e.n.eval(&m); err != nil {
		return Value{}, err
	}
	return m.result()
}

// eval pushes the node's value to the machine's stack.
func (n *node) eval(m *machine) error {
	switch n.kind {
	case nodeNum:
		if n.val.IsEmpty() {
			return MissingOperand
		}
		m.push(n.val)
		return nil
	case nodeCall, nodeNeg, nodeNop:
		if err := n.left.eval(m); err != nil {
			return err
		}
		switch n.kind {
		case nodeCall:
			return m.unary(n.fn.Call)
		case nodeNeg:
			return m.unary(Neg)
		}
		return nil
	}
	op := binopFuncs[n.kind]
	if op == nil {
		return Internal
	}
	if err := n.left.eval(m); err != nil {
		return err
	}
	if err := n.right.eval(m); err != nil {
		return err
	}
	return m.binary(op)
}

var binopFuncs = map[nodeKind]func(x, y Value) (Value, error){
	nodeAdd: Add,
	nodeSub: Sub,
	nodeMul: Mul,
	nodeDiv: Div,
	nodePow: Pow,
}

// Eval is a shortcut to parse an expression and return its result.
func Eval(src io.RuneScanner) (Value, error) {
	e, err := Parse(src)
	if err != nil {
		return Value{}, err
	}
	return e.Eval()
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string) (Value, error) {
	return Eval(strings.NewReader(src))
}
