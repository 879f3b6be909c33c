package dialog

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Layout defers stacked-button and scrollable-content detection to the next
// frame. Both detections run together in that frame and always measure the
// adapter's current state, so repeated calls are harmless.
func (c *Controller) Layout() tea.Cmd {
	return c.nextFrame(frameLayout)
}

func (c *Controller) runLayout() tea.Cmd {
	c.detectStackedButtons()
	return c.detectScrollableContent()
}

func (c *Controller) detectStackedButtons() {
	// Measure the buttons' natural positions, without the stacked marker.
	c.adapter.RemoveClass(MarkerStacked)
	if c.adapter.AreButtonsStacked() {
		c.adapter.AddClass(MarkerStacked)
	}
}

func (c *Controller) detectScrollableContent() tea.Cmd {
	c.syncScrollable()
	return c.startOverflowFix()
}

// syncScrollable makes the scrollable marker match the adapter's answer.
func (c *Controller) syncScrollable() {
	if c.adapter.IsContentScrollable() {
		c.adapter.AddClass(MarkerScrollable)
	} else {
		c.adapter.RemoveClass(MarkerScrollable)
	}
}

// startOverflowFix launches the overflow fix retries. Some renderers only
// report the body's overflow correctly after a forced relayout, so each retry
// toggles MarkerFixOverflow across two frames and resyncs the scrollable
// marker. The retries are fire-and-forget: they cannot be cancelled and never
// touch the open state.
func (c *Controller) startOverflowFix() tea.Cmd {
	if c.fixRetries <= 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, c.fixRetries)
	for i := 0; i < c.fixRetries; i++ {
		delay := time.Duration(i) * c.fixInterval
		cmds = append(cmds, c.scheduler.After(delay, overflowFixMsg{id: c.id, step: overflowStart}))
	}
	return tea.Batch(cmds...)
}

func (c *Controller) handleOverflowFix(msg overflowFixMsg) tea.Cmd {
	switch msg.step {
	case overflowStart:
		return c.scheduler.After(FrameInterval, overflowFixMsg{id: c.id, step: overflowApply})
	case overflowApply:
		c.adapter.AddClass(MarkerFixOverflow)
		return c.scheduler.After(FrameInterval, overflowFixMsg{id: c.id, step: overflowResync})
	case overflowResync:
		c.adapter.RemoveClass(MarkerFixOverflow)
		c.syncScrollable()
	}
	return nil
}
