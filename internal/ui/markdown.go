package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
)

// IsStdoutTTY returns true when stdout is connected to a terminal.
func IsStdoutTTY() bool {
	return isTTY(os.Stdout)
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// WriteMarkdown writes md to out, rendered with glamour when out is a
// terminal. raw forces the plain text. Rendering failures fall back to the
// plain text.
func WriteMarkdown(out io.Writer, md string, raw bool) error {
	if raw || !isTTY(out) {
		_, err := io.WriteString(out, md)
		return err
	}
	_, err := io.WriteString(out, RenderMarkdown(md))
	return err
}

// RenderMarkdown renders markdown for the terminal, returning md unchanged
// on any error.
func RenderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(88),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
