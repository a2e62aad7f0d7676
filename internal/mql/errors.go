package mql

import "fmt"

// ParseError describes a malformed MQL query. Parse errors never
// escape Execute; the executor renders them as an error envelope.
type ParseError struct {
	Msg string
	Pos int // byte offset in the query string, -1 when unknown
}

func (e *ParseError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("parse error at offset %d: %s", e.Pos, e.Msg)
	}
	return "parse error: " + e.Msg
}

func parseErrorf(pos int, format string, args ...interface{}) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Pos: pos}
}
