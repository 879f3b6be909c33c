package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// RenderCenteredMessage renders a message centered on screen
func RenderCenteredMessage(msg string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

// RenderScrollHint renders a text-based scroll hint for dialogs/modals.
// This uses text like "▲▼ more" rather than a scrollbar.
func RenderScrollHint(canScrollUp, canScrollDown bool, padding string) string {
	if canScrollUp && canScrollDown {
		return ScrollIndicatorStyle.Render(padding + "▲▼ more")
	} else if canScrollUp {
		return ScrollIndicatorStyle.Render(padding + "▲ more above")
	} else if canScrollDown {
		return ScrollIndicatorStyle.Render(padding + "▼ more below")
	}
	return ""
}

// truncate shortens s to maxLen cells, marking the cut with an ellipsis.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 || lipgloss.Width(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:min(maxLen, len(runes))])
	}
	return string(runes[:min(maxLen-3, len(runes))]) + "..."
}
