package mql

// parseCondition parses the token slice belonging to a condition
// clause.
//
// The splitter looks for a top-level AND first and only falls back to
// OR when no AND exists, so a clause mixing both groups around the
// first AND found rather than by conventional precedence. The
// first-found-wins grouping is part of the language contract.
func parseCondition(toks []Token) (Condition, error) {
	if len(toks) == 0 {
		return nil, parseErrorf(-1, "empty condition")
	}

	for _, word := range []string{"AND", "OR"} {
		i := topLevelKeyword(toks, word)
		if i < 0 {
			continue
		}
		if i == 0 || i == len(toks)-1 {
			return nil, parseErrorf(toks[i].Pos, "dangling %s in condition", word)
		}
		left, err := parseCondition(toks[:i])
		if err != nil {
			return nil, err
		}
		right, err := parseCondition(toks[i+1:])
		if err != nil {
			return nil, err
		}
		op := LogicalAnd
		if word == "OR" {
			op = LogicalOr
		}
		return &Logical{Op: op, Left: left, Right: right}, nil
	}

	return parseComparison(toks)
}

// parseComparison parses a single field/operator/value test, or a
// field IN (v, v, ...) membership test.
func parseComparison(toks []Token) (Condition, error) {
	if len(toks) < 3 {
		return nil, parseErrorf(toks[0].Pos, "incomplete comparison: need field, operator and value")
	}

	field := toks[0].Value

	opIdx := -1
	var op CompareOp
	for i := 1; i < len(toks); i++ {
		if o, ok := comparisonOp(toks[i]); ok {
			opIdx, op = i, o
			break
		}
	}
	if opIdx < 0 {
		return nil, parseErrorf(toks[0].Pos, "no operator in comparison %q", joinTokens(toks))
	}

	if op == OpIn {
		return parseInList(field, toks, opIdx)
	}

	if opIdx+1 >= len(toks) {
		return nil, parseErrorf(toks[opIdx].Pos, "missing value after %s", op)
	}
	return &Comparison{Field: field, Op: op, Value: parseValue(toks[opIdx+1])}, nil
}

// parseInList parses the parenthesized comma-separated value list of
// an IN comparison.
func parseInList(field string, toks []Token, opIdx int) (Condition, error) {
	if opIdx+1 >= len(toks) || toks[opIdx+1].Type != TokenLParen {
		return nil, parseErrorf(toks[opIdx].Pos, "IN requires a parenthesized value list")
	}

	var list []Value
	closed := false
	for i := opIdx + 2; i < len(toks); i++ {
		switch toks[i].Type {
		case TokenRParen:
			closed = true
		case TokenComma:
			continue
		default:
			list = append(list, parseValue(toks[i]))
		}
		if closed {
			break
		}
	}
	if !closed {
		return nil, parseErrorf(toks[opIdx+1].Pos, "unterminated IN list: missing ')'")
	}
	return &Comparison{Field: field, Op: OpIn, Value: ListValue(list)}, nil
}

// comparisonOp reports whether a token is a comparison operator.
func comparisonOp(tok Token) (CompareOp, bool) {
	switch tok.Type {
	case TokenOperator:
		switch tok.Value {
		case "=":
			return OpEq, true
		case ">":
			return OpGt, true
		case "<":
			return OpLt, true
		case ">=":
			return OpGte, true
		case "<=":
			return OpLte, true
		}
	case TokenKeyword:
		switch tok.Value {
		case "CONTAINS":
			return OpContains, true
		case "IN":
			return OpIn, true
		}
	}
	return 0, false
}

// topLevelKeyword returns the index of the first occurrence of the
// keyword outside parentheses, or -1.
func topLevelKeyword(toks []Token, word string) int {
	depth := 0
	for i, tok := range toks {
		switch tok.Type {
		case TokenLParen:
			depth++
		case TokenRParen:
			if depth > 0 {
				depth--
			}
		case TokenKeyword:
			if depth == 0 && tok.Value == word {
				return i
			}
		}
	}
	return -1
}

func joinTokens(toks []Token) string {
	s := ""
	for i, tok := range toks {
		if i > 0 {
			s += " "
		}
		s += tok.Value
	}
	return s
}
