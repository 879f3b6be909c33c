package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rfhold/dialogctl/internal/dialog"
)

// frame is one rendering of the dialog block together with its placement.
type frame struct {
	view    string
	bounds  Rect
	buttons []Rect
}

// View renders the dialog centered on screen, or nothing when it is neither
// open nor animating.
func (s *Surface) View() string {
	if !s.Visible() {
		return ""
	}
	return s.CenterDialog(s.render().view)
}

// TargetAt returns the hit target under the cell (x, y): a button id,
// TargetSurface, TargetScrim, or "" when the dialog is hidden.
func (s *Surface) TargetAt(x, y int) string {
	if !s.Visible() {
		return ""
	}
	if r := s.HitMap().Test(x, y); r != nil {
		return r.ID
	}
	return ""
}

// HitMap builds the clickable regions of the current rendering.
func (s *Surface) HitMap() *HitMap {
	hm := NewHitMap()
	f := s.render()
	if s.Sized() {
		hm.Add(TargetScrim, Rect{X: 0, Y: 0, W: s.Width(), H: s.Height()})
	}
	hm.Add(TargetSurface, f.bounds)
	for i, r := range f.buttons {
		hm.Add(s.content.Buttons[i].ID, r)
	}
	return hm
}

// dialogWidth is the outer width available to the dialog frame.
func (s *Surface) dialogWidth() int {
	width := s.opts.MaxWidth
	if s.Sized() {
		width = min(width, s.Width()-2*DialogScreenMargin)
	}
	return max(width, MinContentWidth+DialogPaddingAllowance)
}

func (s *Surface) contentWidth() int {
	return s.dialogWidth() - DialogPaddingAllowance
}

func (s *Surface) titleHeight() int {
	if s.content.Title == "" {
		return 0
	}
	return lipgloss.Height(DialogTitleStyle.Render(s.content.Title))
}

// buttonsHeight counts the button rows plus the blank line above them.
func (s *Surface) buttonsHeight() int {
	switch {
	case len(s.content.Buttons) == 0:
		return 0
	case s.classes[dialog.MarkerStacked]:
		return len(s.content.Buttons) + 1
	default:
		return 2
	}
}

// bodyBudget is the number of body lines that fit before the body scrolls.
func (s *Surface) bodyBudget() int {
	budget := s.opts.MaxBodyHeight
	if s.Sized() {
		budget = min(budget, s.Height()-DialogFrameHeight-s.titleHeight()-s.buttonsHeight())
	}
	return max(budget, MinContentHeight)
}

// bodyText returns the wrapped body, re-rendering it when the width changed
// or the cache was invalidated.
func (s *Surface) bodyText() string {
	width := s.contentWidth()
	if !s.bodyValid || s.bodyWidth != width {
		s.bodyCache = renderBody(s.content.Body, s.content.Markdown, s.opts.MarkdownStyle, width)
		s.bodyWidth = width
		s.bodyValid = true
	}
	return s.bodyCache
}

func (s *Surface) bodyLines() []string {
	return strings.Split(s.bodyText(), "\n")
}

// syncViewport sizes the body viewport to the current budget and content.
func (s *Surface) syncViewport() {
	s.body.Width = s.contentWidth()
	s.body.Height = s.bodyBudget()
	s.body.SetContent(s.bodyText())
}

func (s *Surface) render() frame {
	var parts []string

	scrollable := s.classes[dialog.MarkerScrollable]
	body := s.bodyText()
	if scrollable {
		s.syncViewport()
		body = s.body.View()
	}

	if s.content.Title != "" {
		title := s.content.Title
		if scrollable {
			hint := RenderScrollHint(!s.body.AtTop(), !s.body.AtBottom(), "  ")
			title = lipgloss.JoinHorizontal(lipgloss.Top, title, hint)
		}
		parts = append(parts, DialogTitleStyle.Render(title))
	}
	parts = append(parts, body)

	stacked := s.classes[dialog.MarkerStacked]
	buttons := make([]string, len(s.content.Buttons))
	for i, b := range s.content.Buttons {
		buttons[i] = renderButton(b, s.trapped && i == s.focused)
	}
	if len(buttons) > 0 {
		parts = append(parts, "")
		if stacked {
			parts = append(parts, lipgloss.JoinVertical(lipgloss.Left, buttons...))
		} else {
			parts = append(parts, strings.Join(buttons, " "))
		}
	}

	style := DialogStyle
	if s.classes[dialog.MarkerAnimating] {
		style = DialogAnimatingStyle
	}
	view := style.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))

	width, height := lipgloss.Width(view), lipgloss.Height(view)
	x, y := s.DialogOrigin(width, height)
	f := frame{
		view:   view,
		bounds: Rect{X: x, Y: y, W: width, H: height},
	}

	// Buttons start below the title, the body and one blank line.
	bx := x + style.GetBorderLeftSize() + style.GetPaddingLeft()
	by := y + style.GetBorderTopSize() + style.GetPaddingTop() + s.titleHeight() + lipgloss.Height(body) + 1
	for _, b := range s.content.Buttons {
		w := lipgloss.Width(ButtonLabel(b))
		f.buttons = append(f.buttons, Rect{X: bx, Y: by, W: w, H: 1})
		if stacked {
			by++
		} else {
			bx += w + 1
		}
	}
	return f
}
