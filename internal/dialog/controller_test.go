package dialog

import (
	"slices"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// scheduled is one message handed to the recording scheduler.
type scheduled struct {
	delay time.Duration
	msg   tea.Msg
}

// recordingScheduler delivers messages immediately when the returned command
// runs and remembers what was asked for, so tests decide when timers "fire".
type recordingScheduler struct {
	items []scheduled
}

func (s *recordingScheduler) After(d time.Duration, msg tea.Msg) tea.Cmd {
	s.items = append(s.items, scheduled{delay: d, msg: msg})
	return func() tea.Msg { return msg }
}

// collect runs cmd and flattens batches into the produced messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func findSettle(t *testing.T, msgs []tea.Msg) settleMsg {
	t.Helper()
	for _, m := range msgs {
		if s, ok := m.(settleMsg); ok {
			return s
		}
	}
	t.Fatalf("expected a settle message in %#v", msgs)
	return settleMsg{}
}

func findFrame(t *testing.T, msgs []tea.Msg, kind frameKind) frameMsg {
	t.Helper()
	for _, m := range msgs {
		if f, ok := m.(frameMsg); ok && f.kind == kind {
			return f
		}
	}
	t.Fatalf("expected a frame message of kind %d in %#v", kind, msgs)
	return frameMsg{}
}

// newTestController creates a controller with the overflow fix disabled so
// call sequences stay short.
func newTestController(opts ...Option) (*Controller, *FakeAdapter, *recordingScheduler) {
	fake := NewFakeAdapter()
	sched := &recordingScheduler{}
	base := []Option{WithScheduler(sched), WithOverflowFix(0, 0)}
	c := New(fake, append(base, opts...)...)
	return c, fake, sched
}

func requireCalls(t *testing.T, got, want []string) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Fatalf("unexpected adapter calls\nwant: %q\ngot:  %q", want, got)
	}
}

var escKey = tea.KeyMsg{Type: tea.KeyEsc}

// TestOpenPerformsEffectsInOrder verifies the exact effect order of Open.
func TestOpenPerformsEffectsInOrder(t *testing.T) {
	c, fake, sched := newTestController()

	msgs := collect(c.Open())

	requireCalls(t, fake.Calls, []string{
		"NotifyOpening()",
		"AddBodyClass(dialog-scroll-lock)",
		"RegisterDocumentKeydownHandler",
		"RegisterWindowResizeHandler",
		"RegisterInteractionHandler(click)",
		"AddClass(dialog--animating)",
		"AddClass(dialog--open)",
	})
	if !c.IsOpen() {
		t.Fatal("expected IsOpen after Open")
	}
	if c.State() != StateOpening {
		t.Errorf("expected State=%v, got %v", StateOpening, c.State())
	}
	findFrame(t, msgs, frameLayout)
	settle := findSettle(t, msgs)
	if !settle.opening {
		t.Error("expected an opening settle")
	}

	var sawTransition bool
	for _, item := range sched.items {
		if _, ok := item.msg.(settleMsg); ok {
			sawTransition = item.delay == DefaultTransitionDuration
		}
	}
	if !sawTransition {
		t.Errorf("expected settle scheduled after %v, got %#v", DefaultTransitionDuration, sched.items)
	}
}

// TestOpenSettleTrapsFocusAndNotifies verifies the settle routine after Open.
func TestOpenSettleTrapsFocusAndNotifies(t *testing.T) {
	c, fake, _ := newTestController()
	settle := findSettle(t, collect(c.Open()))
	fake.Reset()

	msgs := collect(c.Update(settle))

	requireCalls(t, fake.Calls, []string{
		"RemoveClass(dialog--animating)",
		"TrapFocusOnSurface()",
		"NotifyOpened()",
	})
	findFrame(t, msgs, frameLayout)
	if c.State() != StateOpen {
		t.Errorf("expected State=%v, got %v", StateOpen, c.State())
	}
}

// TestClosePerformsEffectsInOrder verifies the exact effect order of Close.
func TestClosePerformsEffectsInOrder(t *testing.T) {
	c, fake, _ := newTestController()
	c.Update(findSettle(t, collect(c.Open())))
	fake.Reset()

	msgs := collect(c.Close("accept"))

	requireCalls(t, fake.Calls, []string{
		"NotifyClosing(accept)",
		"RemoveBodyClass(dialog-scroll-lock)",
		"DeregisterDocumentKeydownHandler",
		"DeregisterWindowResizeHandler",
		"DeregisterInteractionHandler(click)",
		"UntrapFocusOnSurface()",
		"AddClass(dialog--animating)",
		"RemoveClass(dialog--open)",
		"RemoveClass(dialog--stacked)",
		"RemoveClass(dialog--scrollable)",
	})
	if c.State() != StateClosing {
		t.Errorf("expected State=%v, got %v", StateClosing, c.State())
	}

	fake.Reset()
	if cmd := c.Update(findSettle(t, msgs)); cmd != nil {
		t.Error("expected no follow-up command when settling closed")
	}
	requireCalls(t, fake.Calls, []string{
		"RemoveClass(dialog--animating)",
		"NotifyClosed(accept)",
	})
	if c.State() != StateClosed {
		t.Errorf("expected State=%v, got %v", StateClosed, c.State())
	}
}

// TestCloseDuringOpenAnimationRunsOnlyLatestSettle verifies that an open
// followed by a close before the timer fires yields exactly one settle, the
// close one, and that it does not trap focus.
func TestCloseDuringOpenAnimationRunsOnlyLatestSettle(t *testing.T) {
	c, fake, _ := newTestController()
	openSettle := findSettle(t, collect(c.Open()))
	closeSettle := findSettle(t, collect(c.Close("")))
	fake.Reset()

	if cmd := c.Update(openSettle); cmd != nil {
		t.Error("expected stale settle to produce no command")
	}
	if len(fake.Calls) != 0 {
		t.Fatalf("expected stale settle to be dropped, got %q", fake.Calls)
	}

	c.Update(closeSettle)
	requireCalls(t, fake.Calls, []string{
		"RemoveClass(dialog--animating)",
		"NotifyClosed()",
	})
	if fake.FocusTrapped {
		t.Error("expected focus not to be trapped after closing")
	}

	fake.Reset()
	c.Update(closeSettle)
	if len(fake.Calls) != 0 {
		t.Fatalf("expected settle to run only once, got %q", fake.Calls)
	}
}

// TestIsOpenFollowsMostRecentCall verifies IsOpen regardless of timers.
func TestIsOpenFollowsMostRecentCall(t *testing.T) {
	tests := []struct {
		name  string
		calls string // o = open, c = close, s = fire every pending settle
		want  bool
	}{
		{"open", "o", true},
		{"close", "c", false},
		{"open close", "oc", false},
		{"close open", "co", true},
		{"open open", "oo", true},
		{"open settle close", "osc", false},
		{"open close open settle", "ocos", true},
		{"close close", "cc", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestController()
			var pending []tea.Msg
			for _, step := range tt.calls {
				switch step {
				case 'o':
					pending = append(pending, collect(c.Open())...)
				case 'c':
					pending = append(pending, collect(c.Close("x"))...)
				case 's':
					for _, msg := range pending {
						c.Update(msg)
					}
					pending = nil
				}
			}
			if got := c.IsOpen(); got != tt.want {
				t.Errorf("IsOpen() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestReopenRestartsTransitionTimer verifies that a second Open cancels the
// first open's settle.
func TestReopenRestartsTransitionTimer(t *testing.T) {
	c, fake, _ := newTestController()
	first := findSettle(t, collect(c.Open()))
	second := findSettle(t, collect(c.Open()))
	if first.tag == second.tag {
		t.Fatal("expected a fresh timer tag for the second open")
	}
	fake.Reset()

	c.Update(first)
	if len(fake.Calls) != 0 {
		t.Fatalf("expected first settle to be cancelled, got %q", fake.Calls)
	}
	c.Update(second)
	requireCalls(t, fake.Calls, []string{
		"RemoveClass(dialog--animating)",
		"TrapFocusOnSurface()",
		"NotifyOpened()",
	})
}

// TestDestroyWhileOpenMatchesClose verifies Destroy performs the close
// effects, removes the animating marker, cancels the timer and is idempotent.
func TestDestroyWhileOpenMatchesClose(t *testing.T) {
	reference, refFake, _ := newTestController()
	reference.Open()
	refFake.Reset()
	reference.Close("")
	closeCalls := slices.Clone(refFake.Calls)

	c, fake, _ := newTestController()
	settle := findSettle(t, collect(c.Open()))
	fake.Reset()

	c.Destroy()

	want := append(closeCalls, "RemoveClass(dialog--animating)")
	requireCalls(t, fake.Calls, want)
	if c.IsOpen() {
		t.Error("expected closed after Destroy")
	}
	if c.State() != StateClosed {
		t.Errorf("expected State=%v, got %v", StateClosed, c.State())
	}

	fake.Reset()
	c.Destroy()
	if len(fake.Calls) != 0 {
		t.Fatalf("expected second Destroy to be a no-op, got %q", fake.Calls)
	}

	c.Update(settle)
	if len(fake.Calls) != 0 {
		t.Fatalf("expected pending settle to be cancelled by Destroy, got %q", fake.Calls)
	}
}

// TestDestroyWhileClosed verifies only the animating cleanup happens.
func TestDestroyWhileClosed(t *testing.T) {
	c, fake, _ := newTestController()

	c.Destroy()
	requireCalls(t, fake.Calls, []string{"RemoveClass(dialog--animating)"})

	fake.Reset()
	c.Destroy()
	if len(fake.Calls) != 0 {
		t.Fatalf("expected second Destroy to be a no-op, got %q", fake.Calls)
	}
}

// TestOperationsAfterDestroyAreIgnored verifies Destroy is terminal.
func TestOperationsAfterDestroyAreIgnored(t *testing.T) {
	c, fake, _ := newTestController()
	c.Destroy()
	fake.Reset()

	if cmd := c.Open(); cmd != nil {
		t.Error("expected Open after Destroy to return nil")
	}
	if cmd := c.Close("x"); cmd != nil {
		t.Error("expected Close after Destroy to return nil")
	}
	if len(fake.Calls) != 0 {
		t.Fatalf("expected no adapter calls after Destroy, got %q", fake.Calls)
	}
	if c.IsOpen() {
		t.Error("expected IsOpen false after Destroy")
	}
}

// TestEscapeClosesOnlyWhileOpen verifies the document key handler.
func TestEscapeClosesOnlyWhileOpen(t *testing.T) {
	c, fake, _ := newTestController()
	c.Open()
	fake.Reset()

	msgs := collect(fake.PressKey(escKey))
	if c.IsOpen() {
		t.Fatal("expected Escape to close the dialog")
	}
	if fake.Calls[0] != "NotifyClosing(escape)" {
		t.Errorf("expected NotifyClosing(escape) first, got %q", fake.Calls)
	}
	settle := findSettle(t, msgs)
	if settle.action != ActionEscape {
		t.Errorf("expected settle action %q, got %q", ActionEscape, settle.action)
	}

	fake.Reset()
	if cmd := fake.PressKey(escKey); cmd != nil {
		t.Error("expected no command from Escape while closed")
	}
	if len(fake.Calls) != 0 {
		t.Fatalf("expected Escape while closed to do nothing, got %q", fake.Calls)
	}
}

// TestOtherKeysDoNotClose verifies non-Escape keys are ignored.
func TestOtherKeysDoNotClose(t *testing.T) {
	c, fake, _ := newTestController()
	c.Open()
	fake.Reset()

	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyEnter},
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyTab},
	} {
		if cmd := fake.PressKey(msg); cmd != nil {
			t.Errorf("expected no command for %q", msg.String())
		}
	}
	if !c.IsOpen() {
		t.Error("expected dialog to stay open")
	}
	if len(fake.Calls) != 0 {
		t.Fatalf("expected no adapter calls, got %q", fake.Calls)
	}
}

// TestClickActionPassesThroughUnchanged verifies a resolved click closes
// the dialog with the exact action token.
func TestClickActionPassesThroughUnchanged(t *testing.T) {
	c, fake, _ := newTestController()
	fake.Actions["btn-cancel"] = "cancel"
	c.Open()
	fake.Reset()

	msgs := collect(fake.Click("btn-cancel"))

	if fake.Calls[0] != "GetAction(btn-cancel)" || fake.Calls[1] != "NotifyClosing(cancel)" {
		t.Fatalf("expected action lookup then closing notification, got %q", fake.Calls)
	}
	fake.Reset()
	c.Update(findSettle(t, msgs))
	requireCalls(t, fake.Calls, []string{
		"RemoveClass(dialog--animating)",
		"NotifyClosed(cancel)",
	})
}

// TestClickWithoutActionKeepsDialogOpen verifies unresolved targets.
func TestClickWithoutActionKeepsDialogOpen(t *testing.T) {
	c, fake, _ := newTestController()
	c.Open()
	fake.Reset()

	if cmd := fake.Click("body-text"); cmd != nil {
		t.Error("expected no command for a target without action")
	}
	requireCalls(t, fake.Calls, []string{"GetAction(body-text)"})
	if !c.IsOpen() {
		t.Error("expected dialog to stay open")
	}
}

// TestHandlersKeepIdentityAcrossCycles verifies the same handler values are
// registered on every open and fully removed on close.
func TestHandlersKeepIdentityAcrossCycles(t *testing.T) {
	c, fake, _ := newTestController()

	c.Open()
	key, resize, click := fake.KeyHandlers[0], fake.ResizeHandlers[0], fake.InteractionHandlers[EventClick][0]
	c.Close("")
	if len(fake.KeyHandlers)+len(fake.ResizeHandlers)+len(fake.InteractionHandlers[EventClick]) != 0 {
		t.Fatal("expected close to deregister every handler")
	}

	c.Open()
	if fake.KeyHandlers[0] != key || fake.ResizeHandlers[0] != resize || fake.InteractionHandlers[EventClick][0] != click {
		t.Error("expected the same handler values on reopen")
	}
}

// TestMessagesForOtherControllersAreIgnored verifies id scoping.
func TestMessagesForOtherControllersAreIgnored(t *testing.T) {
	a, fakeA, _ := newTestController()
	b, fakeB, _ := newTestController()
	if a.ID() == b.ID() {
		t.Fatal("expected distinct controller ids")
	}

	msgs := collect(a.Open())
	fakeB.Reset()
	for _, msg := range msgs {
		b.Update(msg)
	}
	if len(fakeB.Calls) != 0 {
		t.Fatalf("expected controller b to ignore a's messages, got %q", fakeB.Calls)
	}

	fakeA.Reset()
	if cmd := a.Update(tea.WindowSizeMsg{Width: 10, Height: 10}); cmd != nil {
		t.Error("expected unrelated messages to be ignored")
	}
	if len(fakeA.Calls) != 0 {
		t.Fatalf("expected no calls for unrelated message, got %q", fakeA.Calls)
	}
}

// TestStateString verifies state names.
func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateClosed, "Closed"},
		{StateOpening, "Opening"},
		{StateOpen, "Open"},
		{StateClosing, "Closing"},
		{State(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

// TestTransitionDurationOption verifies the settle delay is configurable.
func TestTransitionDurationOption(t *testing.T) {
	c, _, sched := newTestController(WithTransitionDuration(5 * time.Millisecond))
	c.Open()

	for _, item := range sched.items {
		if _, ok := item.msg.(settleMsg); ok && item.delay != 5*time.Millisecond {
			t.Errorf("expected settle delay 5ms, got %v", item.delay)
		}
	}
}
