package ui

import (
	"os"

	"github.com/charmbracelet/x/term"
)

// DefaultTermWidth is the fallback width when stdout is not a terminal
// or size detection fails.
const DefaultTermWidth = 120

// DisplayContext holds the display parameters renderers need.
type DisplayContext struct {
	TermWidth int
	IsTTY     bool
}

// NewDisplayContext detects whether stdout is a terminal and how wide it is.
func NewDisplayContext() *DisplayContext {
	d := &DisplayContext{TermWidth: DefaultTermWidth}

	fd := os.Stdout.Fd()
	if !term.IsTerminal(fd) {
		return d
	}
	d.IsTTY = true
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		d.TermWidth = w
	}
	return d
}

// NewDisplayContextWithWidth pins the width, for tests.
func NewDisplayContextWithWidth(width int) *DisplayContext {
	return &DisplayContext{TermWidth: width, IsTTY: true}
}

// AvailableWidth returns the usable width after a left margin.
func (d *DisplayContext) AvailableWidth(leftMargin int) int {
	return d.TermWidth - leftMargin
}
