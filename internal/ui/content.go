package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// Button is one action button of a dialog.
type Button struct {
	ID     string // hit target; defaults to the action or "button-<n>"
	Label  string
	Action string // action token reported when the button closes the dialog
	URL    string // optional link the host may open after the dialog closes
}

// Content is what a dialog displays.
type Content struct {
	Title    string
	Body     string
	Markdown bool // render Body with glamour instead of plain word wrapping
	Buttons  []Button
}

// normalize fills in missing button ids.
func (c Content) normalize() Content {
	buttons := make([]Button, len(c.Buttons))
	for i, b := range c.Buttons {
		if b.ID == "" {
			if b.Action != "" {
				b.ID = b.Action
			} else {
				b.ID = fmt.Sprintf("button-%d", i)
			}
		}
		if b.Label == "" {
			b.Label = b.ID
		}
		buttons[i] = b
	}
	c.Buttons = buttons
	return c
}

// ButtonLabel returns the text of a button including its brackets.
func ButtonLabel(b Button) string {
	return "[ " + b.Label + " ]"
}

// renderButton renders one button, highlighted when focused.
func renderButton(b Button, focused bool) string {
	if focused {
		return ButtonFocusedStyle.Render(ButtonLabel(b))
	}
	return ButtonStyle.Render(ButtonLabel(b))
}

// buttonRowWidth is the width of every button laid out on a single row,
// separated by one space.
func buttonRowWidth(buttons []Button) int {
	if len(buttons) == 0 {
		return 0
	}
	width := len(buttons) - 1
	for _, b := range buttons {
		width += lipgloss.Width(ButtonLabel(b))
	}
	return width
}

// renderBody wraps body to width. Markdown bodies are rendered with glamour
// using style; rendering errors fall back to plain wrapping.
func renderBody(body string, markdown bool, style string, width int) string {
	if width <= 0 {
		return body
	}
	if markdown {
		if out, err := renderMarkdown(body, style, width); err == nil {
			return out
		}
	}
	return strings.TrimRight(wordwrap.String(body, width), "\n")
}

func renderMarkdown(body, style string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(body)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}
