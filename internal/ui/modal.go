package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// ModalBase provides the screen geometry shared by modal dialogs
type ModalBase struct {
	width  int
	height int
}

// SetSize sets the screen dimensions used for centering
func (m *ModalBase) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Width returns the screen width
func (m *ModalBase) Width() int {
	return m.width
}

// Height returns the screen height
func (m *ModalBase) Height() int {
	return m.height
}

// Sized reports whether a window size has been received.
func (m *ModalBase) Sized() bool {
	return m.width > 0 && m.height > 0
}

// CenterDialog centers the given dialog content on screen
func (m *ModalBase) CenterDialog(dialog string) string {
	if !m.Sized() {
		return dialog
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		dialog,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(ColorBg),
	)
}

// DialogOrigin returns the top-left cell where CenterDialog places a block of
// the given size.
func (m *ModalBase) DialogOrigin(dialogWidth, dialogHeight int) (x, y int) {
	if !m.Sized() {
		return 0, 0
	}
	return max((m.width-dialogWidth)/2, 0), max((m.height-dialogHeight)/2, 0)
}
