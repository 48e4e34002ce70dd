package codeblock

import (
	"io"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/craftui/craftui/internal/errors"
)

// Clipboard receives copied listings.
type Clipboard interface {
	Copy(text string) error
}

// SystemClipboard writes through the platform clipboard tool (pbcopy,
// xclip, wl-copy, ...).
type SystemClipboard struct{}

func (SystemClipboard) Copy(text string) error {
	if clipboard.Unsupported {
		return errors.NewClipboardError("system", errors.ErrClipboardUnavailable)
	}
	if err := clipboard.WriteAll(text); err != nil {
		return errors.NewClipboardError("system", err)
	}
	return nil
}

// OSC52Clipboard asks the terminal to set the clipboard with an OSC 52
// escape sequence. It works over SSH where no clipboard tool exists.
type OSC52Clipboard struct {
	W io.Writer
	// Tmux wraps the sequence in a tmux passthrough.
	Tmux bool
}

func (c OSC52Clipboard) Copy(text string) error {
	if c.W == nil {
		return errors.NewClipboardError("osc52", errors.ErrClipboardUnavailable)
	}
	seq := osc52.New(text)
	if c.Tmux {
		seq = seq.Tmux()
	}
	if _, err := seq.WriteTo(c.W); err != nil {
		return errors.NewClipboardError("osc52", err)
	}
	return nil
}

// FallbackClipboard tries each clipboard in order until one succeeds.
type FallbackClipboard []Clipboard

func (f FallbackClipboard) Copy(text string) error {
	var errs []error
	for _, c := range f {
		err := c.Copy(text)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return errors.NewClipboardError("none", errors.ErrClipboardUnavailable)
	}
	return errors.Join(errs...)
}

// NewClipboard returns the clipboard for a configured backend: "system",
// "osc52", or "auto" (system first, then OSC 52 on w).
func NewClipboard(backend string, w io.Writer, tmux bool) Clipboard {
	switch backend {
	case "system":
		return SystemClipboard{}
	case "osc52":
		return OSC52Clipboard{W: w, Tmux: tmux}
	default:
		return FallbackClipboard{SystemClipboard{}, OSC52Clipboard{W: w, Tmux: tmux}}
	}
}
