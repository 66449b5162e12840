// Package clipboard copies text to the user's clipboard through the terminal.
package clipboard

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"
)

// Clipboard copies text for the user.
type Clipboard interface {
	Copy(text string) error
}

// OSC52 writes an OSC 52 escape sequence, which most terminal emulators (and
// tmux/screen when passthrough is enabled) turn into a clipboard write. It works
// over SSH and needs no platform clipboard tools.
type OSC52 struct {
	out  io.Writer
	mode mode
}

type mode int

const (
	modeDirect mode = iota
	modeTmux
	modeScreen
)

var _ Clipboard = &OSC52{}

// NewOSC52 creates a clipboard writing to out, wrapping sequences for tmux or
// screen based on the given environment lookup (usually os.Getenv).
func NewOSC52(out io.Writer, getenv func(string) string) *OSC52 {
	m := modeDirect
	switch {
	case getenv("TMUX") != "":
		m = modeTmux
	case strings.HasPrefix(getenv("TERM"), "screen"):
		m = modeScreen
	}
	return &OSC52{out: out, mode: m}
}

// NewDefault creates an OSC52 clipboard writing to stderr, so that copied text
// never mixes into piped stdout.
func NewDefault() *OSC52 {
	return NewOSC52(os.Stderr, os.Getenv)
}

func (c *OSC52) Copy(text string) error {
	seq := osc52.New(text)
	switch c.mode {
	case modeTmux:
		seq = seq.Tmux()
	case modeScreen:
		seq = seq.Screen()
	}

	if _, err := seq.WriteTo(c.out); err != nil {
		return fmt.Errorf("failed to write to clipboard: %w", err)
	}
	return nil
}
