// Package dialog implements the behavioral controller of a modal dialog.
//
// The controller owns two pieces of state, whether the dialog is logically
// open and the tag of the single pending settle timer, and performs every
// visible effect through an Adapter. It is written for the Bubble Tea update
// loop: operations that wait (the next frame, the transition timer) return a
// tea.Cmd, and the resulting messages must be routed back through Update.
package dialog

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTransitionDuration is how long the open and close animations run
// before the settle routine fires.
const DefaultTransitionDuration = 120 * time.Millisecond

// Overflow fix defaults: number of retries and the spacing between them.
const (
	DefaultOverflowFixRetries  = 5
	DefaultOverflowFixInterval = 100 * time.Millisecond
)

const tracerName = "github.com/rfhold/dialogctl/internal/dialog"

// EscapeKey closes an open dialog with ActionEscape.
var EscapeKey = key.NewBinding(
	key.WithKeys("esc"),
	key.WithHelp("esc", "close"),
)

// State is the derived transition state of a controller.
type State int

const (
	StateClosed State = iota
	StateOpening
	StateOpen
	StateClosing
)

// String returns a human-readable name for the state
func (s State) String() string {
	switch s {
	case StateClosed:
		return "Closed"
	case StateOpening:
		return "Opening"
	case StateOpen:
		return "Open"
	case StateClosing:
		return "Closing"
	default:
		return "Unknown"
	}
}

// Option configures a Controller.
type Option func(*Controller)

// WithTransitionDuration overrides DefaultTransitionDuration.
func WithTransitionDuration(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.transition = d
		}
	}
}

// WithScheduler replaces the tea.Tick based scheduler.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.scheduler = s
		}
	}
}

// WithOverflowFix configures the scrollable resync retries that run after
// every scrollable detection. retries <= 0 disables the pass.
func WithOverflowFix(retries int, interval time.Duration) Option {
	return func(c *Controller) {
		c.fixRetries = max(retries, 0)
		c.fixInterval = max(interval, 0)
	}
}

// WithLogger sets the logger used for lifecycle debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTracer sets the tracer used to record open/close cycles.
func WithTracer(t trace.Tracer) Option {
	return func(c *Controller) {
		if t != nil {
			c.tracer = t
		}
	}
}

// Controller is the dialog state machine. It is not safe for concurrent use;
// all calls are expected from the Bubble Tea update loop.
type Controller struct {
	id      int
	adapter Adapter

	isOpen    bool
	timer     uint64 // tag of the pending settle message, 0 when none
	timerSeq  uint64
	destroyed bool

	transition  time.Duration
	fixRetries  int
	fixInterval time.Duration
	scheduler   Scheduler

	// One handler value per event type for the controller's whole lifetime,
	// so deregistration always removes what registration installed.
	keyHandler    *KeyHandler
	resizeHandler *ResizeHandler
	clickHandler  *InteractionHandler

	logger *slog.Logger
	tracer trace.Tracer
	span   trace.Span
}

// New creates a controller driving adapter.
func New(adapter Adapter, opts ...Option) *Controller {
	c := &Controller{
		id:          nextID(),
		adapter:     adapter,
		transition:  DefaultTransitionDuration,
		fixRetries:  DefaultOverflowFixRetries,
		fixInterval: DefaultOverflowFixInterval,
		scheduler:   TickScheduler{},
		logger:      slog.New(slog.DiscardHandler),
		tracer:      otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.keyHandler = NewKeyHandler(c.handleDocumentKey)
	c.resizeHandler = NewResizeHandler(c.handleWindowResize)
	c.clickHandler = NewInteractionHandler(c.handleInteraction)
	return c
}

// ID returns the process-unique id carried by this controller's messages.
func (c *Controller) ID() int {
	return c.id
}

// IsOpen reports whether the dialog is logically open.
func (c *Controller) IsOpen() bool {
	return c.isOpen
}

// State derives the transition state from the open flag and pending timer.
func (c *Controller) State() State {
	switch {
	case c.isOpen && c.timer != 0:
		return StateOpening
	case c.isOpen:
		return StateOpen
	case c.timer != 0:
		return StateClosing
	default:
		return StateClosed
	}
}

// Open starts the open transition. Calling Open while already open restarts
// the transition timer.
func (c *Controller) Open() tea.Cmd {
	if c.destroyed {
		c.logger.Debug("dialog open ignored after destroy", "dialog", c.id)
		return nil
	}
	c.logger.Debug("dialog opening", "dialog", c.id, "from", c.State().String())
	c.startSpan("dialog.open")

	c.adapter.NotifyOpening()
	c.isOpen = true
	c.disableScroll()
	c.adapter.RegisterDocumentKeydownHandler(c.keyHandler)
	c.adapter.RegisterWindowResizeHandler(c.resizeHandler)
	c.adapter.RegisterInteractionHandler(EventClick, c.clickHandler)
	c.adapter.AddClass(MarkerAnimating)
	c.adapter.AddClass(MarkerOpen)

	layout := c.Layout()
	return tea.Batch(layout, c.scheduleSettle(true, ""))
}

// Close starts the close transition. action is passed through unchanged to
// the closing and closed notifications; empty means no reason.
func (c *Controller) Close(action string) tea.Cmd {
	if c.destroyed {
		c.logger.Debug("dialog close ignored after destroy", "dialog", c.id)
		return nil
	}
	c.logger.Debug("dialog closing", "dialog", c.id, "from", c.State().String(), "action", action)
	c.startSpan("dialog.close", attribute.String("dialog.action", action))

	c.adapter.NotifyClosing(action)
	c.isOpen = false
	c.enableScroll()
	c.adapter.DeregisterDocumentKeydownHandler(c.keyHandler)
	c.adapter.DeregisterWindowResizeHandler(c.resizeHandler)
	c.adapter.DeregisterInteractionHandler(EventClick, c.clickHandler)
	c.adapter.UntrapFocusOnSurface()
	c.adapter.AddClass(MarkerAnimating)
	c.adapter.RemoveClass(MarkerOpen)
	c.adapter.RemoveClass(MarkerStacked)
	c.adapter.RemoveClass(MarkerScrollable)

	return c.scheduleSettle(false, action)
}

// Destroy closes the dialog if it is open and cancels any pending timer.
// It is terminal: later calls, including a second Destroy, do nothing.
func (c *Controller) Destroy() {
	if c.destroyed {
		return
	}
	if c.isOpen {
		// The settle command is dropped; the timer is cancelled below anyway.
		_ = c.Close("")
	}
	// Clean up the animating marker in case the timer never fires.
	c.adapter.RemoveClass(MarkerAnimating)
	c.cancelTimer()
	c.endSpan(attribute.Bool("dialog.destroyed", true))
	c.destroyed = true
	c.logger.Debug("dialog destroyed", "dialog", c.id)
}

// Update consumes the controller's own timer and frame messages. Messages
// addressed to other controllers and unrelated messages are ignored.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case settleMsg:
		if msg.id != c.id {
			return nil
		}
		return c.handleSettle(msg)
	case frameMsg:
		if msg.id != c.id {
			return nil
		}
		switch msg.kind {
		case frameResize:
			return c.Layout()
		default:
			return c.runLayout()
		}
	case overflowFixMsg:
		if msg.id != c.id {
			return nil
		}
		return c.handleOverflowFix(msg)
	}
	return nil
}

func (c *Controller) scheduleSettle(opening bool, action string) tea.Cmd {
	c.cancelTimer()
	c.timerSeq++
	c.timer = c.timerSeq
	return c.scheduler.After(c.transition, settleMsg{
		id:      c.id,
		tag:     c.timer,
		opening: opening,
		action:  action,
	})
}

func (c *Controller) cancelTimer() {
	c.timer = 0
}

func (c *Controller) handleSettle(msg settleMsg) tea.Cmd {
	if msg.tag == 0 || msg.tag != c.timer {
		c.logger.Debug("stale settle dropped", "dialog", c.id, "tag", msg.tag, "pending", c.timer)
		return nil
	}
	c.timer = 0

	cmd := c.settle()
	if msg.opening {
		c.adapter.NotifyOpened()
	} else {
		c.adapter.NotifyClosed(msg.action)
	}
	c.endSpan()
	c.logger.Debug("dialog settled", "dialog", c.id, "state", c.State().String())
	return cmd
}

// settle finishes an animation. A close that happened during the open
// animation leaves isOpen false, so focus is only trapped when still open.
func (c *Controller) settle() tea.Cmd {
	c.adapter.RemoveClass(MarkerAnimating)
	if !c.isOpen {
		return nil
	}
	c.adapter.TrapFocusOnSurface()
	return c.Layout()
}

func (c *Controller) handleDocumentKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, EscapeKey) {
		return c.Close(ActionEscape)
	}
	return nil
}

func (c *Controller) handleWindowResize(tea.WindowSizeMsg) tea.Cmd {
	return c.nextFrame(frameResize)
}

func (c *Controller) handleInteraction(ev Interaction) tea.Cmd {
	action := c.adapter.GetAction(ev.Target)
	if action == "" {
		return nil
	}
	return c.Close(action)
}

func (c *Controller) disableScroll() {
	c.adapter.AddBodyClass(MarkerScrollLock)
}

func (c *Controller) enableScroll() {
	c.adapter.RemoveBodyClass(MarkerScrollLock)
}

func (c *Controller) nextFrame(kind frameKind) tea.Cmd {
	return c.scheduler.After(FrameInterval, frameMsg{id: c.id, kind: kind})
}

func (c *Controller) startSpan(name string, attrs ...attribute.KeyValue) {
	c.endSpan(attribute.Bool("dialog.superseded", true))
	_, c.span = c.tracer.Start(context.Background(), name,
		trace.WithAttributes(append(attrs, attribute.Int("dialog.id", c.id))...),
	)
}

func (c *Controller) endSpan(attrs ...attribute.KeyValue) {
	if c.span == nil {
		return
	}
	c.span.SetAttributes(attrs...)
	c.span.End()
	c.span = nil
}
