package mql

// Parse parses an MQL query string into a Query AST. Positions are
// threaded explicitly over the token slice, so parsing is re-entrant
// and allocates nothing shared.
func Parse(input string) (Query, error) {
	toks := Tokenize(input)
	if len(toks) == 0 {
		return nil, parseErrorf(0, "empty query")
	}

	head := toks[0]
	if head.Type == TokenKeyword {
		switch head.Value {
		case "FIND":
			return parseFind(toks)
		case "WHERE":
			return parseWhere(toks)
		case "CONTEXT":
			return parseContext(toks)
		}
	}
	return nil, parseErrorf(head.Pos, "expected FIND, WHERE or CONTEXT, got %q", head.Value)
}

// parseFind parses: FIND <value> IN <scope> clause*
func parseFind(toks []Token) (Query, error) {
	if len(toks) < 4 {
		return nil, parseErrorf(toks[0].Pos, "FIND requires a value and IN <scope>")
	}
	if !isKeyword(toks[2], "IN") {
		return nil, parseErrorf(toks[2].Pos, "FIND requires IN before the scope, got %q", toks[2].Value)
	}

	q := &FindQuery{
		Value: parseValue(toks[1]),
		Scope: toks[3].Value,
	}
	cs, err := parseClauses(toks[4:])
	if err != nil {
		return nil, err
	}
	q.Condition = cs.condition
	q.ContextSpec = cs.contextSpec
	q.Priority = cs.priority
	return q, nil
}

// parseWhere parses: WHERE <condition> IN <scope> clause*
//
// The scope separator is the first top-level IN that is not followed
// by '('; an IN followed by '(' is the membership operator inside
// the condition.
func parseWhere(toks []Token) (Query, error) {
	sep := -1
	depth := 0
	for i := 1; i < len(toks) && sep < 0; i++ {
		switch toks[i].Type {
		case TokenLParen:
			depth++
		case TokenRParen:
			if depth > 0 {
				depth--
			}
		case TokenKeyword:
			if depth == 0 && toks[i].Value == "IN" {
				if i+1 < len(toks) && toks[i+1].Type == TokenLParen {
					continue
				}
				sep = i
			}
		}
	}
	if sep < 0 {
		return nil, parseErrorf(toks[0].Pos, "WHERE requires IN <scope>")
	}

	cond, err := parseCondition(toks[1:sep])
	if err != nil {
		return nil, err
	}
	if sep+1 >= len(toks) {
		return nil, parseErrorf(toks[sep].Pos, "missing scope after IN")
	}

	q := &WhereQuery{Condition: cond, Scope: toks[sep+1].Value}
	cs, err := parseClauses(toks[sep+2:])
	if err != nil {
		return nil, err
	}
	q.ContextSpec = cs.contextSpec
	q.Priority = cs.priority
	if cs.condition != nil {
		// Re-specifying a clause overwrites: the last WHERE wins.
		q.Condition = cs.condition
	}
	return q, nil
}

// parseContext parses: CONTEXT <scope> clause*
func parseContext(toks []Token) (Query, error) {
	if len(toks) < 2 {
		return nil, parseErrorf(toks[0].Pos, "CONTEXT requires a scope")
	}

	q := &ContextQuery{Scope: toks[1].Value}
	cs, err := parseClauses(toks[2:])
	if err != nil {
		return nil, err
	}
	q.Condition = cs.condition
	q.ContextSpec = cs.contextSpec
	q.Priority = cs.priority
	return q, nil
}

// clauseSet accumulates optional suffix clauses. Re-specifying a
// clause overwrites the previous one; the last occurrence wins.
type clauseSet struct {
	condition   Condition
	contextSpec string
	priority    []string
}

// parseClauses parses zero or more suffix clauses in any order:
// WHERE <condition>, CONTEXT <spec>, PRIORITIZE <d>[,<d>...]
func parseClauses(toks []Token) (clauseSet, error) {
	var cs clauseSet
	i := 0
	for i < len(toks) {
		tok := toks[i]
		if tok.Type != TokenKeyword {
			return cs, parseErrorf(tok.Pos, "expected WHERE, CONTEXT or PRIORITIZE, got %q", tok.Value)
		}
		switch tok.Value {
		case "WHERE":
			end := clauseEnd(toks, i+1)
			cond, err := parseCondition(toks[i+1 : end])
			if err != nil {
				return cs, err
			}
			cs.condition = cond
			i = end
		case "CONTEXT":
			if i+1 >= len(toks) {
				return cs, parseErrorf(tok.Pos, "CONTEXT requires a spec")
			}
			cs.contextSpec = toks[i+1].Value
			i += 2
		case "PRIORITIZE":
			if i+1 >= len(toks) {
				return cs, parseErrorf(tok.Pos, "PRIORITIZE requires at least one directive")
			}
			dirs := []string{toks[i+1].Value}
			i += 2
			for i+1 < len(toks) && toks[i].Type == TokenComma {
				dirs = append(dirs, toks[i+1].Value)
				i += 2
			}
			cs.priority = dirs
		default:
			return cs, parseErrorf(tok.Pos, "expected WHERE, CONTEXT or PRIORITIZE, got %q", tok.Value)
		}
	}
	return cs, nil
}

// clauseEnd returns the index of the next top-level clause keyword at
// or after start, or len(toks) if the clause runs to the end.
func clauseEnd(toks []Token, start int) int {
	depth := 0
	for i := start; i < len(toks); i++ {
		switch toks[i].Type {
		case TokenLParen:
			depth++
		case TokenRParen:
			if depth > 0 {
				depth--
			}
		case TokenKeyword:
			if depth == 0 {
				switch toks[i].Value {
				case "WHERE", "CONTEXT", "PRIORITIZE":
					return i
				}
			}
		}
	}
	return len(toks)
}

func isKeyword(tok Token, word string) bool {
	return tok.Type == TokenKeyword && tok.Value == word
}
