package dialog

// Marker is a named state flag applied to the dialog root or the body.
// Markers carry no behavior; the adapter decides how they are presented.
type Marker string

// Root markers
const (
	MarkerOpen        Marker = "dialog--open"
	MarkerAnimating   Marker = "dialog--animating"
	MarkerStacked     Marker = "dialog--stacked"
	MarkerScrollable  Marker = "dialog--scrollable"
	MarkerFixOverflow Marker = "dialog--fix-overflow"
)

// MarkerScrollLock is applied to the body while a dialog is open.
const MarkerScrollLock Marker = "dialog-scroll-lock"

// ActionEscape is the action token used when the dialog is dismissed with Escape.
const ActionEscape = "escape"

// EventClick is the interaction type the controller listens for on the surface.
const EventClick = "click"

// Adapter is the environment the controller drives. Every visible effect of
// the controller goes through it. Implementations are expected to be
// synchronous and side-effect only.
type Adapter interface {
	// AddClass adds a marker to the dialog root.
	AddClass(m Marker)
	// RemoveClass removes a marker from the dialog root.
	RemoveClass(m Marker)
	// AddBodyClass adds a marker to the page body.
	AddBodyClass(m Marker)
	// RemoveBodyClass removes a marker from the page body.
	RemoveBodyClass(m Marker)

	// NotifyOpening is called when an open transition begins.
	NotifyOpening()
	// NotifyOpened is called once the open transition has settled.
	NotifyOpened()
	// NotifyClosing is called when a close transition begins.
	// action is empty when the dialog was closed without a reason.
	NotifyClosing(action string)
	// NotifyClosed is called once the close transition has settled.
	NotifyClosed(action string)

	// RegisterDocumentKeydownHandler installs h at the document level.
	RegisterDocumentKeydownHandler(h *KeyHandler)
	// DeregisterDocumentKeydownHandler removes exactly h.
	DeregisterDocumentKeydownHandler(h *KeyHandler)
	// RegisterWindowResizeHandler installs h for window size changes.
	RegisterWindowResizeHandler(h *ResizeHandler)
	// DeregisterWindowResizeHandler removes exactly h.
	DeregisterWindowResizeHandler(h *ResizeHandler)
	// RegisterInteractionHandler installs h for evtType on the dialog surface.
	RegisterInteractionHandler(evtType string, h *InteractionHandler)
	// DeregisterInteractionHandler removes exactly h for evtType.
	DeregisterInteractionHandler(evtType string, h *InteractionHandler)

	// TrapFocusOnSurface confines focus to the dialog surface.
	TrapFocusOnSurface()
	// UntrapFocusOnSurface releases a previous focus trap.
	UntrapFocusOnSurface()

	// AreButtonsStacked reports whether the action buttons overflow their row.
	AreButtonsStacked() bool
	// IsContentScrollable reports whether the dialog body overflows.
	IsContentScrollable() bool

	// GetAction resolves an interaction target to an action token.
	// An empty result means the target does not close the dialog.
	GetAction(target string) string
}
