package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/rfhold/dialogctl/internal/ui"
)

const (
	headerHeight = 1
	footerHeight = 1
)

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	mainArea := lipgloss.NewStyle().
		Height(m.background.Height).
		Width(m.width).
		Render(m.background.View())

	fullView := lipgloss.JoinVertical(lipgloss.Left, header, mainArea, footer)

	if m.focus.Current() == ui.FocusHelp {
		fullView = m.renderHelp()
	}

	// A dialog covers the whole screen while it is shown or animating.
	for _, d := range m.dialogs {
		if d.surface.Visible() {
			fullView = d.surface.View()
		}
	}

	if m.toast.Visible() {
		toastY := max(m.height-footerHeight-2, 0)
		fullView = placeOverlay(0, toastY, m.toast.View(m.width), fullView)
	}

	return fullView
}

func (m Model) renderHeader() string {
	source := "built-in dialogs"
	if m.appCtx.ConfigPath != "" {
		source = m.appCtx.ConfigPath
	}
	return ui.LabelStyle.Render("dialogctl") + " " + ui.DimStyle.Render(source)
}

// renderFooter renders the bottom footer with keybind hints
func (m Model) renderFooter() string {
	if m.dialogOpen() {
		return m.help.ShortHelpView(ui.Keys.DialogHelp())
	}
	bindings := make([]key.Binding, 0, len(m.dialogs)+2)
	for _, d := range m.dialogs {
		bindings = append(bindings, d.trigger)
	}
	bindings = append(bindings, ui.Keys.ShortHelp()...)
	return m.help.ShortHelpView(bindings)
}

func (m Model) renderHelp() string {
	box := ui.BoxStyle.Render(m.help.FullHelpView(ui.Keys.FullHelp()))
	if m.width == 0 || m.height == 0 {
		return box
	}
	return ui.RenderCenteredMessage(box, m.width, m.height)
}

// placeOverlay places an overlay string at the specified x,y position on the background
func placeOverlay(x, y int, overlay, background string) string {
	bgLines := strings.Split(background, "\n")
	overlayLines := strings.Split(overlay, "\n")

	for i, overlayLine := range overlayLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}

		// Truncate background line to x visual width and append overlay
		truncatedBg := lipgloss.NewStyle().MaxWidth(x).Render(bgLines[bgIdx])
		if x <= 0 {
			truncatedBg = ""
		}
		if w := lipgloss.Width(truncatedBg); w < x {
			truncatedBg += strings.Repeat(" ", x-w)
		}

		bgLines[bgIdx] = truncatedBg + overlayLine
	}

	return strings.Join(bgLines, "\n")
}
