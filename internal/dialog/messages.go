package dialog

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameInterval approximates one render frame of the Bubble Tea renderer.
const FrameInterval = time.Second / 60

// lastID hands out controller ids so that several dialogs can share a program.
var lastID atomic.Int64

func nextID() int {
	return int(lastID.Add(1))
}

// frameKind identifies which deferred unit of work a frameMsg carries.
type frameKind int

const (
	frameLayout frameKind = iota // run stacked + scrollable detection
	frameResize                  // window resized; schedule a layout
)

// frameMsg is delivered one frame after it was requested.
type frameMsg struct {
	id   int
	kind frameKind
}

// settleMsg finalizes an open or close transition. Only the message whose
// tag matches the controller's pending timer is honoured.
type settleMsg struct {
	id      int
	tag     uint64
	opening bool
	action  string
}

// overflowStep walks one retry of the overflow fix pass.
type overflowStep int

const (
	overflowStart  overflowStep = iota // retry delay elapsed
	overflowApply                      // one frame later: add the fix marker
	overflowResync                     // one frame later: remove it and resync
)

type overflowFixMsg struct {
	id   int
	step overflowStep
}

// Scheduler turns a message into a command that delivers it after d.
type Scheduler interface {
	After(d time.Duration, msg tea.Msg) tea.Cmd
}

// TickScheduler schedules with tea.Tick.
type TickScheduler struct{}

// After implements Scheduler.
func (TickScheduler) After(d time.Duration, msg tea.Msg) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}
