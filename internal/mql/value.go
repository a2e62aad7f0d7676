package mql

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValueKind discriminates the typed literal union.
type ValueKind int

const (
	KindString ValueKind = iota
	KindInt
	KindFloat
	KindBool
	KindList
)

// Value is a typed query literal. It is fully typed at parse time;
// nothing downstream re-interprets raw token text.
type Value struct {
	Kind  ValueKind
	Str   string
	Int   int64
	Float float64
	Bool  bool
	List  []Value
}

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// IntValue returns an integer Value.
func IntValue(i int64) Value { return Value{Kind: KindInt, Int: i} }

// FloatValue returns a float Value.
func FloatValue(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// ListValue returns a list Value.
func ListValue(vals []Value) Value { return Value{Kind: KindList, List: vals} }

// parseValue converts a single token into a typed Value. It never
// fails: quoted tokens are strings, then integer, float and boolean
// parses are attempted in order, and anything left over is a string.
func parseValue(tok Token) Value {
	if tok.Type == TokenString {
		return StringValue(tok.Value)
	}
	if i, err := strconv.ParseInt(tok.Value, 10, 64); err == nil {
		return IntValue(i)
	}
	if f, err := strconv.ParseFloat(tok.Value, 64); err == nil {
		return FloatValue(f)
	}
	if strings.EqualFold(tok.Value, "true") {
		return BoolValue(true)
	}
	if strings.EqualFold(tok.Value, "false") {
		return BoolValue(false)
	}
	return StringValue(tok.Value)
}

// Text returns the plain textual form of the value, without quoting.
// This is the form FIND uses as its search target.
func (v Value) Text() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindList:
		parts := make([]string, len(v.List))
		for i, el := range v.List {
			parts[i] = el.Text()
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// String returns the source-like form of the value, with strings
// quoted and lists parenthesized. Used for condition echoes.
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return strconv.Quote(v.Str)
	case KindList:
		parts := make([]string, len(v.List))
		for i, el := range v.List {
			parts[i] = el.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return v.Text()
	}
}

// Native returns the value as a plain Go value suitable for JSON
// encoding: string, int64, float64, bool or []interface{}.
func (v Value) Native() interface{} {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindBool:
		return v.Bool
	case KindList:
		out := make([]interface{}, len(v.List))
		for i, el := range v.List {
			out[i] = el.Native()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON encodes the value as its native JSON form.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Native())
}

// asFloat returns the numeric form of an int or float value.
func (v Value) asFloat() (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.Int), true
	case KindFloat:
		return v.Float, true
	default:
		return 0, false
	}
}

var _ fmt.Stringer = Value{}
