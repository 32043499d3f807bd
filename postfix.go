package exactcalc

// ToPostfix reorders a sequence of infix tokens, as produced by Tokenize, into
// postfix order. A TokenMinus with no left operand becomes TokenNeg, and a
// unary TokenPlus is dropped. Brackets do not appear in the result.
//
// ToPostfix accepts exactly the inputs that ParseTokens accepts, and for each
// the result equals the Postfix of the parsed expression, apart from token
// positions.
func ToPostfix(toks []Token) ([]Token, error) {
	var out, ops []Token
	// expect is whether the next token must begin an operand.
	expect := true
	for i, tok := range toks {
		switch tok.Kind {
		case TokenNumber:
			if !expect {
				return nil, syntaxError(tok, MissingOperator)
			}
			if tok.Val.IsEmpty() {
				return nil, syntaxError(tok, MissingOperand)
			}
			out = append(out, tok)
			expect = false
		case TokenSqrt, TokenCbrt, TokenSquare, TokenCube:
			if !expect {
				return nil, syntaxError(tok, MissingOperator)
			}
			if i+1 >= len(toks) || toks[i+1].Kind != TokenLBracket {
				return nil, syntaxError(tok, MissingOperand)
			}
			ops = append(ops, tok)
		case TokenLBracket:
			if !expect {
				return nil, syntaxError(tok, MissingOperator)
			}
			ops = append(ops, tok)
		case TokenRBracket:
			k := openBracket(ops)
			if k < 0 {
				return nil, syntaxError(tok, UnmatchedBracket)
			}
			if expect {
				return nil, syntaxError(tok, MissingOperand)
			}
			for j := len(ops) - 1; j > k; j-- {
				out = append(out, ops[j])
			}
			ops = ops[:k]
			if len(ops) > 0 {
				if _, ok := ops[len(ops)-1].function(); ok {
					out = append(out, ops[len(ops)-1])
					ops = ops[:len(ops)-1]
				}
			}
		case TokenPlus, TokenMinus, TokenNeg:
			if expect {
				if tok.Kind != TokenPlus {
					ops = append(ops, Token{Kind: TokenNeg, Pos: tok.Pos})
				}
				continue
			}
			if tok.Kind == TokenNeg {
				return nil, syntaxError(tok, MissingOperator)
			}
			fallthrough
		case TokenMultiply, TokenDivide, TokenPower:
			if expect {
				return nil, syntaxError(tok, MissingOperand)
			}
			in := binop(tok.Kind)
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.Kind == TokenLBracket || in.moreBinding(stackprec(top)) {
					break
				}
				out = append(out, top)
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, tok)
			expect = true
		default:
			return nil, syntaxError(tok, UnknownOperator)
		}
	}
	if expect {
		return nil, syntaxError(Token{Kind: tokenEOF, Pos: endpos(toks)}, MissingOperand)
	}
	for j := len(ops) - 1; j >= 0; j-- {
		if ops[j].Kind == TokenLBracket {
			return nil, syntaxError(ops[j], UnmatchedBracket)
		}
		out = append(out, ops[j])
	}
	return out, nil
}

// openBracket returns the index of the innermost open bracket on the operator
// stack, or -1 if there is none.
func openBracket(ops []Token) int {
	for k := len(ops) - 1; k >= 0; k-- {
		if ops[k].Kind == TokenLBracket {
			return k
		}
	}
	return -1
}

// stackprec returns the precedence of an operator on the stack. The stacked
// operator is output before an incoming one unless the incoming one binds
// more tightly.
func stackprec(top Token) operator {
	if top.Kind == TokenNeg {
		return unop(TokenNeg)
	}
	return binop(top.Kind)
}

// EvalPostfix evaluates a sequence of tokens in postfix order, as produced by
// ToPostfix.
func EvalPostfix(toks []Token) (Value, error) {
	var m machine
	for _, tok := range toks {
		switch tok.Kind {
		case TokenNumber:
			if tok.Val.IsEmpty() {
				return Value{}, syntaxError(tok, MissingOperand)
			}
			m.push(tok.Val)
		case TokenNeg:
			if len(m.stack) < 1 {
				return Value{}, syntaxError(tok, MissingOperand)
			}
			if err := m.unary(Neg); err != nil {
				return Value{}, err
			}
		case TokenSqrt, TokenCbrt, TokenSquare, TokenCube:
			if len(m.stack) < 1 {
				return Value{}, syntaxError(tok, MissingOperand)
			}
			fn, _ := tok.function()
			if err := m.unary(fn.Call); err != nil {
				return Value{}, err
			}
		case TokenPlus, TokenMinus, TokenMultiply, TokenDivide, TokenPower:
			if len(m.stack) < 2 {
				return Value{}, syntaxError(tok, MissingOperand)
			}
			if err := m.binary(binopFuncs[binop(tok.Kind).op]); err != nil {
				return Value{}, err
			}
		case TokenLBracket, TokenRBracket:
			return Value{}, syntaxError(tok, UnmatchedBracket)
		default:
			return Value{}, syntaxError(tok, UnknownOperator)
		}
	}
	return m.result()
}
