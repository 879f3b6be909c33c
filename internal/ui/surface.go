package ui

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour/styles"

	"github.com/rfhold/dialogctl/internal/dialog"
)

// Hit targets that are not buttons.
const (
	TargetScrim   = "scrim"   // backdrop around the dialog
	TargetSurface = "surface" // dialog frame outside any button
)

// DefaultScrimAction is reported when the backdrop is clicked.
const DefaultScrimAction = "close"

// DefaultMarkdownStyle is the glamour style used for markdown bodies.
const DefaultMarkdownStyle = styles.TokyoNightStyle

// Lifecycle notifications queued by a Surface and collected with DrainEvents.
type (
	// OpeningMsg is sent when a dialog starts opening.
	OpeningMsg struct{ Dialog string }
	// OpenedMsg is sent when the open transition settled.
	OpenedMsg struct{ Dialog string }
	// ClosingMsg is sent when a dialog starts closing.
	ClosingMsg struct{ Dialog, Action string }
	// ClosedMsg is sent when the close transition settled.
	ClosedMsg struct{ Dialog, Action string }
)

// SurfaceOptions configures a Surface. Zero values select the defaults.
type SurfaceOptions struct {
	MaxWidth      int // outer dialog width, DefaultDialogMaxWidth when 0
	MaxBodyHeight int // body lines before scrolling, DefaultModalMaxHeight when 0
	ScrimAction   string
	DisableScrim  bool   // backdrop clicks resolve to no action
	MarkdownStyle string // glamour standard style name
	Focus         *FocusStack
}

// Surface is the terminal environment of one dialog. It implements
// dialog.Adapter: it keeps the marker sets, dispatches Bubble Tea messages to
// the handlers the controller registered, answers layout queries from the
// rendered content and renders the dialog.
type Surface struct {
	ModalBase

	name    string
	content Content
	opts    SurfaceOptions
	focus   *FocusStack

	classes     map[dialog.Marker]bool
	bodyClasses map[dialog.Marker]bool

	keyHandlers         []*dialog.KeyHandler
	resizeHandlers      []*dialog.ResizeHandler
	interactionHandlers map[string][]*dialog.InteractionHandler

	trapped bool
	focused int // index of the focused button, -1 when none

	events []tea.Msg

	body      viewport.Model
	bodyCache string
	bodyWidth int
	bodyValid bool
}

var _ dialog.Adapter = (*Surface)(nil)

// NewSurface creates the surface of the dialog called name.
func NewSurface(name string, content Content, opts SurfaceOptions) *Surface {
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = DefaultDialogMaxWidth
	}
	if opts.MaxBodyHeight <= 0 {
		opts.MaxBodyHeight = DefaultModalMaxHeight
	}
	if opts.ScrimAction == "" {
		opts.ScrimAction = DefaultScrimAction
	}
	if opts.MarkdownStyle == "" {
		opts.MarkdownStyle = DefaultMarkdownStyle
	}
	focus := opts.Focus
	if focus == nil {
		focus = NewFocusStack()
	}

	return &Surface{
		name:                name,
		content:             content.normalize(),
		opts:                opts,
		focus:               focus,
		classes:             map[dialog.Marker]bool{},
		bodyClasses:         map[dialog.Marker]bool{},
		interactionHandlers: map[string][]*dialog.InteractionHandler{},
		focused:             -1,
		body:                viewport.New(0, 0),
	}
}

// Content returns the displayed content.
func (s *Surface) Content() Content {
	return s.content
}

// Visible reports whether the dialog is shown, either open or animating.
func (s *Surface) Visible() bool {
	return s.classes[dialog.MarkerOpen] || s.classes[dialog.MarkerAnimating]
}

// HasClass reports whether marker m is set on the dialog root.
func (s *Surface) HasClass(m dialog.Marker) bool {
	return s.classes[m]
}

// ScrollLocked reports whether the host should stop scrolling its background.
func (s *Surface) ScrollLocked() bool {
	return s.bodyClasses[dialog.MarkerScrollLock]
}

// Trapped reports whether the dialog holds keyboard focus.
func (s *Surface) Trapped() bool {
	return s.trapped
}

// FocusedButton returns the button that enter activates.
func (s *Surface) FocusedButton() (Button, bool) {
	if s.focused < 0 || s.focused >= len(s.content.Buttons) {
		return Button{}, false
	}
	return s.content.Buttons[s.focused], true
}

// ButtonForAction returns the first button reporting action.
func (s *Surface) ButtonForAction(action string) (Button, bool) {
	for _, b := range s.content.Buttons {
		if b.Action != "" && b.Action == action {
			return b, true
		}
	}
	return Button{}, false
}

// DrainEvents returns and clears the queued notifications.
func (s *Surface) DrainEvents() []tea.Msg {
	events := s.events
	s.events = nil
	return events
}

// Update dispatches msg to the registered handlers and handles in-dialog
// navigation while focus is trapped.
func (s *Surface) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.SetSize(msg.Width, msg.Height)
		s.invalidate()
		var cmds []tea.Cmd
		for _, h := range slices.Clone(s.resizeHandlers) {
			cmds = append(cmds, h.HandleResize(msg))
		}
		return tea.Batch(cmds...)

	case tea.KeyMsg:
		return s.handleKey(msg)

	case tea.MouseMsg:
		return s.handleMouse(msg)
	}
	return nil
}

func (s *Surface) handleKey(msg tea.KeyMsg) tea.Cmd {
	var cmds []tea.Cmd
	for _, h := range slices.Clone(s.keyHandlers) {
		cmds = append(cmds, h.HandleKey(msg))
	}

	// A document handler may have closed the dialog and released focus.
	if !s.trapped {
		return tea.Batch(cmds...)
	}

	switch {
	case key.Matches(msg, Keys.NextButton):
		s.moveFocus(1)
	case key.Matches(msg, Keys.PrevButton):
		s.moveFocus(-1)
	case key.Matches(msg, Keys.Activate):
		if b, ok := s.FocusedButton(); ok {
			cmds = append(cmds, s.dispatch(dialog.Interaction{Type: dialog.EventClick, Target: b.ID}))
		}
	case key.Matches(msg, Keys.Up):
		s.scroll(-1)
	case key.Matches(msg, Keys.Down):
		s.scroll(1)
	case key.Matches(msg, Keys.PageUp):
		s.scroll(-s.body.Height)
	case key.Matches(msg, Keys.PageDown):
		s.scroll(s.body.Height)
	}
	return tea.Batch(cmds...)
}

func (s *Surface) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !s.Visible() {
		return nil
	}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		s.scroll(-1)
	case msg.Button == tea.MouseButtonWheelDown:
		s.scroll(1)
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		target := s.TargetAt(msg.X, msg.Y)
		if target == "" {
			return nil
		}
		if i := s.buttonIndex(target); i >= 0 && s.trapped {
			s.focused = i
		}
		return s.dispatch(dialog.Interaction{
			Type:   dialog.EventClick,
			Target: target,
			X:      msg.X,
			Y:      msg.Y,
		})
	}
	return nil
}

func (s *Surface) dispatch(ev dialog.Interaction) tea.Cmd {
	var cmds []tea.Cmd
	for _, h := range slices.Clone(s.interactionHandlers[ev.Type]) {
		cmds = append(cmds, h.HandleInteraction(ev))
	}
	return tea.Batch(cmds...)
}

func (s *Surface) moveFocus(delta int) {
	n := len(s.content.Buttons)
	if n == 0 {
		return
	}
	s.focused = ((s.focused+delta)%n + n) % n
}

func (s *Surface) buttonIndex(id string) int {
	return slices.IndexFunc(s.content.Buttons, func(b Button) bool { return b.ID == id })
}

// scroll moves the body by lines; it only applies to scrollable content.
func (s *Surface) scroll(lines int) {
	if !s.classes[dialog.MarkerScrollable] || lines == 0 {
		return
	}
	s.syncViewport()
	if lines < 0 {
		s.body.ScrollUp(-lines)
	} else {
		s.body.ScrollDown(lines)
	}
}

// invalidate drops the cached body so the next query re-measures it.
func (s *Surface) invalidate() {
	s.bodyValid = false
}

// AddClass implements dialog.Adapter.
func (s *Surface) AddClass(m dialog.Marker) {
	s.classes[m] = true
	if m == dialog.MarkerFixOverflow {
		s.invalidate()
	}
}

// RemoveClass implements dialog.Adapter.
func (s *Surface) RemoveClass(m dialog.Marker) {
	delete(s.classes, m)
	if m == dialog.MarkerScrollable {
		s.body.SetYOffset(0)
	}
}

// AddBodyClass implements dialog.Adapter.
func (s *Surface) AddBodyClass(m dialog.Marker) {
	s.bodyClasses[m] = true
}

// RemoveBodyClass implements dialog.Adapter.
func (s *Surface) RemoveBodyClass(m dialog.Marker) {
	delete(s.bodyClasses, m)
}

// NotifyOpening implements dialog.Adapter.
func (s *Surface) NotifyOpening() {
	s.events = append(s.events, OpeningMsg{Dialog: s.name})
}

// NotifyOpened implements dialog.Adapter.
func (s *Surface) NotifyOpened() {
	s.events = append(s.events, OpenedMsg{Dialog: s.name})
}

// NotifyClosing implements dialog.Adapter.
func (s *Surface) NotifyClosing(action string) {
	s.events = append(s.events, ClosingMsg{Dialog: s.name, Action: action})
}

// NotifyClosed implements dialog.Adapter.
func (s *Surface) NotifyClosed(action string) {
	s.events = append(s.events, ClosedMsg{Dialog: s.name, Action: action})
}

// RegisterDocumentKeydownHandler implements dialog.Adapter.
func (s *Surface) RegisterDocumentKeydownHandler(h *dialog.KeyHandler) {
	s.keyHandlers = append(s.keyHandlers, h)
}

// DeregisterDocumentKeydownHandler implements dialog.Adapter.
func (s *Surface) DeregisterDocumentKeydownHandler(h *dialog.KeyHandler) {
	s.keyHandlers = slices.DeleteFunc(s.keyHandlers, func(x *dialog.KeyHandler) bool { return x == h })
}

// RegisterWindowResizeHandler implements dialog.Adapter.
func (s *Surface) RegisterWindowResizeHandler(h *dialog.ResizeHandler) {
	s.resizeHandlers = append(s.resizeHandlers, h)
}

// DeregisterWindowResizeHandler implements dialog.Adapter.
func (s *Surface) DeregisterWindowResizeHandler(h *dialog.ResizeHandler) {
	s.resizeHandlers = slices.DeleteFunc(s.resizeHandlers, func(x *dialog.ResizeHandler) bool { return x == h })
}

// RegisterInteractionHandler implements dialog.Adapter.
func (s *Surface) RegisterInteractionHandler(evtType string, h *dialog.InteractionHandler) {
	s.interactionHandlers[evtType] = append(s.interactionHandlers[evtType], h)
}

// DeregisterInteractionHandler implements dialog.Adapter.
func (s *Surface) DeregisterInteractionHandler(evtType string, h *dialog.InteractionHandler) {
	s.interactionHandlers[evtType] = slices.DeleteFunc(s.interactionHandlers[evtType],
		func(x *dialog.InteractionHandler) bool { return x == h })
}

// TrapFocusOnSurface implements dialog.Adapter. The first button receives focus.
func (s *Surface) TrapFocusOnSurface() {
	if !s.trapped {
		s.focus.Push(FocusDialog)
	}
	s.trapped = true
	s.focused = -1
	if len(s.content.Buttons) > 0 {
		s.focused = 0
	}
}

// UntrapFocusOnSurface implements dialog.Adapter.
func (s *Surface) UntrapFocusOnSurface() {
	if s.trapped {
		s.focus.Remove(FocusDialog)
	}
	s.trapped = false
	s.focused = -1
}

// AreButtonsStacked implements dialog.Adapter: the buttons stack when their
// natural row is wider than the dialog content.
func (s *Surface) AreButtonsStacked() bool {
	return buttonRowWidth(s.content.Buttons) > s.contentWidth()
}

// IsContentScrollable implements dialog.Adapter: the body scrolls when its
// wrapped height exceeds the space left on screen.
func (s *Surface) IsContentScrollable() bool {
	return len(s.bodyLines()) > s.bodyBudget()
}

// GetAction implements dialog.Adapter.
func (s *Surface) GetAction(target string) string {
	if target == TargetScrim {
		if s.opts.DisableScrim {
			return ""
		}
		return s.opts.ScrimAction
	}
	if i := s.buttonIndex(target); i >= 0 {
		return s.content.Buttons[i].Action
	}
	return ""
}
