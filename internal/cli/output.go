package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const defaultWrapWidth = 100

// render writes value as JSON when --json is set, otherwise the markdown.
// Markdown is styled only when writing to a terminal.
func render(cmd *cobra.Command, value any, markdown func() string) error {
	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, value)
	}

	text := markdown()
	if width, ok := terminalWidth(out); ok {
		styled, err := styleMarkdown(text, width)
		if err == nil {
			text = styled
		}
	}
	_, err := fmt.Fprintln(out, text)
	return err
}

func writeJSON(w io.Writer, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// terminalWidth reports whether w is an interactive terminal and its width.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWrapWidth, true
	}
	return width, true
}

func styleMarkdown(text string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(text)
}
