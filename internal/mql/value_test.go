package mql

import (
	"reflect"
	"testing"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		name string
		tok  Token
		want Value
	}{
		{"quoted string", Token{Type: TokenString, Value: "active"}, StringValue("active")},
		{"quoted number stays string", Token{Type: TokenString, Value: "42"}, StringValue("42")},
		{"integer", Token{Type: TokenBare, Value: "42"}, IntValue(42)},
		{"negative integer", Token{Type: TokenBare, Value: "-7"}, IntValue(-7)},
		{"float", Token{Type: TokenBare, Value: "3.14"}, FloatValue(3.14)},
		{"bool true", Token{Type: TokenBare, Value: "true"}, BoolValue(true)},
		{"bool mixed case", Token{Type: TokenKeyword, Value: "FALSE"}, BoolValue(false)},
		{"bare fallback", Token{Type: TokenBare, Value: "my-project"}, StringValue("my-project")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseValue(tt.tok)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseValue(%q) = %#v, want %#v", tt.tok.Value, got, tt.want)
			}
		})
	}
}

func TestValueForms(t *testing.T) {
	list := ListValue([]Value{StringValue("high"), IntValue(2)})

	if got := list.String(); got != `("high", 2)` {
		t.Errorf("String() = %q", got)
	}
	if got := StringValue("auth").Text(); got != "auth" {
		t.Errorf("Text() = %q", got)
	}
	if got := StringValue("auth").String(); got != `"auth"` {
		t.Errorf("String() = %q", got)
	}

	native := list.Native()
	want := []interface{}{"high", int64(2)}
	if !reflect.DeepEqual(native, want) {
		t.Errorf("Native() = %#v, want %#v", native, want)
	}
}
