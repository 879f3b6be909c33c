package dialog

import (
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
)

// FakeAdapter implements Adapter for testing.
// Configure layout answers via fields, and inspect Calls for the exact
// sequence of adapter invocations.
type FakeAdapter struct {
	// ButtonsStacked is returned by AreButtonsStacked.
	ButtonsStacked bool
	// ContentScrollable is returned by IsContentScrollable.
	ContentScrollable bool
	// Actions maps interaction targets to action tokens for GetAction.
	Actions map[string]string

	// Calls records every adapter call in order, e.g. "AddClass(dialog--open)".
	Calls []string

	// StackedWhileMeasuring records, for each AreButtonsStacked query,
	// whether the stacked marker was present at that moment.
	StackedWhileMeasuring []bool

	Classes      map[Marker]bool
	BodyClasses  map[Marker]bool
	FocusTrapped bool

	KeyHandlers         []*KeyHandler
	ResizeHandlers      []*ResizeHandler
	InteractionHandlers map[string][]*InteractionHandler
}

// NewFakeAdapter creates an empty FakeAdapter.
func NewFakeAdapter() *FakeAdapter {
	return &FakeAdapter{
		Actions:             map[string]string{},
		Classes:             map[Marker]bool{},
		BodyClasses:         map[Marker]bool{},
		InteractionHandlers: map[string][]*InteractionHandler{},
	}
}

func (f *FakeAdapter) record(format string, args ...any) {
	f.Calls = append(f.Calls, fmt.Sprintf(format, args...))
}

// Reset clears the recorded calls while keeping markers and handlers.
func (f *FakeAdapter) Reset() {
	f.Calls = nil
	f.StackedWhileMeasuring = nil
}

func (f *FakeAdapter) AddClass(m Marker) {
	f.record("AddClass(%s)", m)
	f.Classes[m] = true
}

func (f *FakeAdapter) RemoveClass(m Marker) {
	f.record("RemoveClass(%s)", m)
	delete(f.Classes, m)
}

func (f *FakeAdapter) AddBodyClass(m Marker) {
	f.record("AddBodyClass(%s)", m)
	f.BodyClasses[m] = true
}

func (f *FakeAdapter) RemoveBodyClass(m Marker) {
	f.record("RemoveBodyClass(%s)", m)
	delete(f.BodyClasses, m)
}

func (f *FakeAdapter) NotifyOpening() { f.record("NotifyOpening()") }
func (f *FakeAdapter) NotifyOpened() { f.record("NotifyOpened()") }

func (f *FakeAdapter) NotifyClosing(action string) { f.record("NotifyClosing(%s)", action) }
func (f *FakeAdapter) NotifyClosed(action string) { f.record("NotifyClosed(%s)", action) }

func (f *FakeAdapter) RegisterDocumentKeydownHandler(h *KeyHandler) {
	f.record("RegisterDocumentKeydownHandler")
	f.KeyHandlers = append(f.KeyHandlers, h)
}

func (f *FakeAdapter) DeregisterDocumentKeydownHandler(h *KeyHandler) {
	f.record("DeregisterDocumentKeydownHandler")
	f.KeyHandlers = slices.DeleteFunc(f.KeyHandlers, func(x *KeyHandler) bool { return x == h })
}

func (f *FakeAdapter) RegisterWindowResizeHandler(h *ResizeHandler) {
	f.record("RegisterWindowResizeHandler")
	f.ResizeHandlers = append(f.ResizeHandlers, h)
}

func (f *FakeAdapter) DeregisterWindowResizeHandler(h *ResizeHandler) {
	f.record("DeregisterWindowResizeHandler")
	f.ResizeHandlers = slices.DeleteFunc(f.ResizeHandlers, func(x *ResizeHandler) bool { return x == h })
}

func (f *FakeAdapter) RegisterInteractionHandler(evtType string, h *InteractionHandler) {
	f.record("RegisterInteractionHandler(%s)", evtType)
	f.InteractionHandlers[evtType] = append(f.InteractionHandlers[evtType], h)
}

func (f *FakeAdapter) DeregisterInteractionHandler(evtType string, h *InteractionHandler) {
	f.record("DeregisterInteractionHandler(%s)", evtType)
	f.InteractionHandlers[evtType] = slices.DeleteFunc(f.InteractionHandlers[evtType], func(x *InteractionHandler) bool { return x == h })
}

func (f *FakeAdapter) TrapFocusOnSurface() {
	f.record("TrapFocusOnSurface()")
	f.FocusTrapped = true
}

func (f *FakeAdapter) UntrapFocusOnSurface() {
	f.record("UntrapFocusOnSurface()")
	f.FocusTrapped = false
}

func (f *FakeAdapter) AreButtonsStacked() bool {
	f.record("AreButtonsStacked()")
	f.StackedWhileMeasuring = append(f.StackedWhileMeasuring, f.Classes[MarkerStacked])
	return f.ButtonsStacked
}

func (f *FakeAdapter) IsContentScrollable() bool {
	f.record("IsContentScrollable()")
	return f.ContentScrollable
}

func (f *FakeAdapter) GetAction(target string) string {
	f.record("GetAction(%s)", target)
	return f.Actions[target]
}

// PressKey delivers msg to every registered document key handler.
func (f *FakeAdapter) PressKey(msg tea.KeyMsg) tea.Cmd {
	var cmds []tea.Cmd
	for _, h := range slices.Clone(f.KeyHandlers) {
		cmds = append(cmds, h.HandleKey(msg))
	}
	return tea.Batch(cmds...)
}

// Resize delivers msg to every registered resize handler.
func (f *FakeAdapter) Resize(msg tea.WindowSizeMsg) tea.Cmd {
	var cmds []tea.Cmd
	for _, h := range slices.Clone(f.ResizeHandlers) {
		cmds = append(cmds, h.HandleResize(msg))
	}
	return tea.Batch(cmds...)
}

// Click delivers a click on target to every registered click handler.
func (f *FakeAdapter) Click(target string) tea.Cmd {
	var cmds []tea.Cmd
	for _, h := range slices.Clone(f.InteractionHandlers[EventClick]) {
		cmds = append(cmds, h.HandleInteraction(Interaction{Type: EventClick, Target: target}))
	}
	return tea.Batch(cmds...)
}
