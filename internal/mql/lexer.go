// Package mql implements the MCP Query Language: a small declarative
// language for retrieving and filtering project context, e.g.
//
//	FIND "auth" IN ALL_PROJECTS WHERE STATUS = "active" PRIORITIZE RECENCY
package mql

import (
	"strings"
	"unicode"
)

// TokenType represents the type of a lexer token.
type TokenType int

const (
	TokenKeyword  TokenType = iota // uppercase runs: FIND, WHERE, IN, AND, STATUS, ...
	TokenString                    // quoted string literal (quotes stripped)
	TokenOperator                  // = > >= < <=
	TokenComma                     // ,
	TokenLParen                    // (
	TokenRParen                    // )
	TokenBare                      // anything else: numbers, identifiers, project ids
)

func (t TokenType) String() string {
	switch t {
	case TokenKeyword:
		return "keyword"
	case TokenString:
		return "string"
	case TokenOperator:
		return "operator"
	case TokenComma:
		return "comma"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	default:
		return "token"
	}
}

// Token represents a lexer token.
type Token struct {
	Type    TokenType
	Value   string
	Pos     int
	Literal string // original text, including quotes for strings
}

// Lexer tokenizes an MQL query string.
type Lexer struct {
	input string
	pos   int
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize scans the whole input and returns the token list.
// Lexing never fails: unrecognized characters are absorbed into the
// nearest bare token.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok, ok := l.next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// next returns the next token, or ok=false at end of input.
func (l *Lexer) next() (Token, bool) {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{}, false
	}

	start := l.pos
	ch := l.input[l.pos]

	switch ch {
	case '(':
		l.pos++
		return Token{Type: TokenLParen, Value: "(", Pos: start}, true
	case ')':
		l.pos++
		return Token{Type: TokenRParen, Value: ")", Pos: start}, true
	case ',':
		l.pos++
		return Token{Type: TokenComma, Value: ",", Pos: start}, true
	case '"', '\'':
		return l.scanString(ch), true
	case '=':
		l.pos++
		return Token{Type: TokenOperator, Value: "=", Pos: start}, true
	case '>', '<':
		l.pos++
		if l.pos < len(l.input) && l.input[l.pos] == '=' {
			l.pos++
		}
		return Token{Type: TokenOperator, Value: l.input[start:l.pos], Pos: start}, true
	default:
		return l.scanWord(), true
	}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(rune(l.input[l.pos])) {
		l.pos++
	}
}

// scanString scans a quoted string with backslash escapes. An
// unterminated string runs to the end of input.
func (l *Lexer) scanString(quote byte) Token {
	start := l.pos
	l.pos++ // opening quote

	var sb strings.Builder
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == '\\' && l.pos+1 < len(l.input) {
			sb.WriteByte(l.input[l.pos+1])
			l.pos += 2
			continue
		}
		if ch == quote {
			l.pos++
			break
		}
		sb.WriteByte(ch)
		l.pos++
	}

	return Token{
		Type:    TokenString,
		Value:   sb.String(),
		Pos:     start,
		Literal: l.input[start:l.pos],
	}
}

// scanWord scans a run of characters up to the next delimiter. Runs
// consisting only of uppercase letters, digits and underscores are
// keywords (FIND, ALL_PROJECTS, LAST_5_COMMITS); everything else is a
// bare token (numbers, lowercase identifiers, project ids).
func (l *Lexer) scanWord() Token {
	start := l.pos
	for l.pos < len(l.input) && !isDelimiter(l.input[l.pos]) {
		l.pos++
	}
	value := l.input[start:l.pos]
	if isKeywordRun(value) {
		return Token{Type: TokenKeyword, Value: value, Pos: start}
	}
	return Token{Type: TokenBare, Value: value, Pos: start}
}

func isDelimiter(ch byte) bool {
	switch ch {
	case '(', ')', ',', '"', '\'', '=', '>', '<':
		return true
	}
	return unicode.IsSpace(rune(ch))
}

func isKeywordRun(s string) bool {
	hasLetter := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= 'A' && ch <= 'Z':
			hasLetter = true
		case ch >= '0' && ch <= '9', ch == '_':
		default:
			return false
		}
	}
	return hasLetter
}
