package ui

import "github.com/charmbracelet/lipgloss"

// Color palette (Tokyo Night)
var (
	ColorPrimary   = lipgloss.Color("#7aa2f7")
	ColorSecondary = lipgloss.Color("#bb9af7")
	ColorText      = lipgloss.Color("#c0caf5")
	ColorDim       = lipgloss.Color("#565f89")
	ColorError     = lipgloss.Color("#f7768e")
	ColorBg        = lipgloss.Color("#1a1b26")
	ColorSelection = lipgloss.Color("#283457") // focused button background
	ColorAccent    = lipgloss.Color("#7dcfff") // cyan
	ColorSuccess   = lipgloss.Color("#9ece6a") // green
)

// Styles
var (
	// Text styles
	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorDim)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	// Box styles
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDim).
			Padding(0, 1)

	// Dialog styles
	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2)

	// DialogAnimatingStyle is used while an open or close transition runs.
	DialogAnimatingStyle = DialogStyle.
				BorderForeground(ColorDim).
				Faint(true)

	DialogTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				MarginBottom(1)

	// Button styles
	ButtonStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	ButtonFocusedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				Background(ColorSelection)

	// Scroll indicator styles - bright cyan for high visibility
	ScrollIndicatorStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent)

	// Event log styles
	EventStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)
)

// Layout constants for UI components
const (
	// Modal and dialog dimensions
	DefaultModalMaxHeight  = 20
	DefaultDialogMaxWidth  = 80
	MinContentWidth        = 20
	MinContentHeight       = 3
	DialogPaddingAllowance = 6 // Border + horizontal padding around dialog content
	DialogFrameHeight      = 4 // Border + vertical padding around dialog content
	DialogScreenMargin     = 2 // Columns kept free on each side of the dialog
)
