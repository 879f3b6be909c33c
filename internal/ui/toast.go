package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ToastDuration is how long the toast is visible
const ToastDuration = 4 * time.Second

// Toast is a temporary notification message
type Toast struct {
	message string
	visible bool
	seq     int
}

// ToastMsg triggers showing a toast
type ToastMsg struct {
	Message string
}

// ToastHideMsg hides the toast after timeout. Seq identifies the toast it was
// scheduled for, so a newer toast is not hidden early by an older timer.
type ToastHideMsg struct {
	Seq int
}

// NewToast creates a new toast component
func NewToast() *Toast {
	return &Toast{}
}

// Show displays a toast message
func (t *Toast) Show(message string) tea.Cmd {
	t.message = message
	t.visible = true
	t.seq++
	seq := t.seq

	// Return a command to hide the toast after duration
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return ToastHideMsg{Seq: seq}
	})
}

// HandleHide hides the toast if msg belongs to the current one.
func (t *Toast) HandleHide(msg ToastHideMsg) {
	if msg.Seq == t.seq {
		t.Hide()
	}
}

// Hide hides the toast
func (t *Toast) Hide() {
	t.visible = false
	t.message = ""
}

// Visible returns whether the toast is visible
func (t *Toast) Visible() bool {
	return t.visible
}

// Message returns the displayed message
func (t *Toast) Message() string {
	return t.message
}

// View renders the toast
func (t *Toast) View(width int) string {
	if !t.visible || t.message == "" {
		return ""
	}

	style := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("252")).
		Padding(0, 2).
		Bold(true)

	toast := style.Render(truncate(t.message, max(width-4, 0)))

	// Center the toast
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, toast)
}
