package dialog

import tea "github.com/charmbracelet/bubbletea"

// Interaction is a pointer or activation event on the dialog surface.
type Interaction struct {
	Type   string // e.g. EventClick
	Target string // id of the element the event landed on
	X, Y   int
}

// KeyHandler receives document level key presses.
//
// Handlers are compared by pointer: an adapter must deregister the same
// *KeyHandler it was given on registration. Function values cannot be
// compared in Go, so the wrapper gives them an identity.
type KeyHandler struct {
	fn func(tea.KeyMsg) tea.Cmd
}

// NewKeyHandler wraps fn in a handler with a stable identity.
func NewKeyHandler(fn func(tea.KeyMsg) tea.Cmd) *KeyHandler {
	return &KeyHandler{fn: fn}
}

// HandleKey invokes the handler. A nil handler is a no-op.
func (h *KeyHandler) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if h == nil || h.fn == nil {
		return nil
	}
	return h.fn(msg)
}

// ResizeHandler receives window size changes.
type ResizeHandler struct {
	fn func(tea.WindowSizeMsg) tea.Cmd
}

// NewResizeHandler wraps fn in a handler with a stable identity.
func NewResizeHandler(fn func(tea.WindowSizeMsg) tea.Cmd) *ResizeHandler {
	return &ResizeHandler{fn: fn}
}

// HandleResize invokes the handler. A nil handler is a no-op.
func (h *ResizeHandler) HandleResize(msg tea.WindowSizeMsg) tea.Cmd {
	if h == nil || h.fn == nil {
		return nil
	}
	return h.fn(msg)
}

// InteractionHandler receives surface interactions such as clicks.
type InteractionHandler struct {
	fn func(Interaction) tea.Cmd
}

// NewInteractionHandler wraps fn in a handler with a stable identity.
func NewInteractionHandler(fn func(Interaction) tea.Cmd) *InteractionHandler {
	return &InteractionHandler{fn: fn}
}

// HandleInteraction invokes the handler. A nil handler is a no-op.
func (h *InteractionHandler) HandleInteraction(ev Interaction) tea.Cmd {
	if h == nil || h.fn == nil {
		return nil
	}
	return h.fn(ev)
}
