package mql

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		tokens []Token
	}{
		{
			name:  "keywords and quoted string",
			input: `FIND "auth" IN ALL_PROJECTS`,
			tokens: []Token{
				{Type: TokenKeyword, Value: "FIND", Pos: 0},
				{Type: TokenString, Value: "auth", Pos: 5, Literal: `"auth"`},
				{Type: TokenKeyword, Value: "IN", Pos: 12},
				{Type: TokenKeyword, Value: "ALL_PROJECTS", Pos: 15},
			},
		},
		{
			name:  "comparison operators",
			input: `PRIORITY >= 3`,
			tokens: []Token{
				{Type: TokenKeyword, Value: "PRIORITY", Pos: 0},
				{Type: TokenOperator, Value: ">=", Pos: 9},
				{Type: TokenBare, Value: "3", Pos: 12},
			},
		},
		{
			name:  "parenthesized list",
			input: `("high", "critical")`,
			tokens: []Token{
				{Type: TokenLParen, Value: "(", Pos: 0},
				{Type: TokenString, Value: "high", Pos: 1, Literal: `"high"`},
				{Type: TokenComma, Value: ",", Pos: 7},
				{Type: TokenString, Value: "critical", Pos: 9, Literal: `"critical"`},
				{Type: TokenRParen, Value: ")", Pos: 19},
			},
		},
		{
			name:  "single quotes and escapes",
			input: `'it\'s' "a \"b\""`,
			tokens: []Token{
				{Type: TokenString, Value: "it's", Pos: 0, Literal: `'it\'s'`},
				{Type: TokenString, Value: `a "b"`, Pos: 8, Literal: `"a \"b\""`},
			},
		},
		{
			name:  "bare tokens absorb punctuation",
			input: `my-project metadata.team true 3.14`,
			tokens: []Token{
				{Type: TokenBare, Value: "my-project", Pos: 0},
				{Type: TokenBare, Value: "metadata.team", Pos: 11},
				{Type: TokenBare, Value: "true", Pos: 25},
				{Type: TokenBare, Value: "3.14", Pos: 30},
			},
		},
		{
			name:  "numeric context specs stay keywords",
			input: `LAST_5_COMMITS LAST_30_DAYS`,
			tokens: []Token{
				{Type: TokenKeyword, Value: "LAST_5_COMMITS", Pos: 0},
				{Type: TokenKeyword, Value: "LAST_30_DAYS", Pos: 15},
			},
		},
		{
			name:   "whitespace only",
			input:  "   \t  ",
			tokens: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.tokens) {
				t.Errorf("Tokenize(%q)\n got: %#v\nwant: %#v", tt.input, got, tt.tokens)
			}
		})
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	got := Tokenize(`FIND "unterminated`)
	if len(got) != 2 {
		t.Fatalf("expected 2 tokens, got %d: %#v", len(got), got)
	}
	if got[1].Type != TokenString || got[1].Value != "unterminated" {
		t.Errorf("unterminated string not absorbed: %#v", got[1])
	}
}
