package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rfhold/dialogctl/internal/config"
	"github.com/rfhold/dialogctl/internal/dialog"
	"github.com/rfhold/dialogctl/internal/ui"
)

// maxEvents bounds the event log shown in the background.
const maxEvents = 200

// AppContext holds the startup configuration of the application.
type AppContext struct {
	Config      *config.Config
	ConfigPath  string // empty when the built-in catalog is used
	StartDialog string // dialog opened at startup, if any
}

// dialogEntry is one catalog dialog wired to its controller.
type dialogEntry struct {
	name       string
	trigger    key.Binding
	surface    *ui.Surface
	controller *dialog.Controller
}

// Model is the main application model
type Model struct {
	deps   *Dependencies
	appCtx AppContext

	dialogs []*dialogEntry
	focus   *ui.FocusStack

	background viewport.Model
	events     []string
	toast      *ui.Toast
	help       help.Model

	width    int
	height   int
	quitting bool
}

func initialModel(appCtx AppContext, deps *Dependencies) Model {
	cfg := appCtx.Config
	if cfg == nil {
		cfg = config.Default()
		appCtx.Config = cfg
	}

	m := Model{
		deps:       deps,
		appCtx:     appCtx,
		focus:      ui.NewFocusStack(),
		background: viewport.New(0, 0),
		toast:      ui.NewToast(),
		help:       help.New(),
	}

	for _, name := range cfg.Names() {
		spec := cfg.Dialogs[name]
		surface := ui.NewSurface(name, spec.Content(), cfg.Dialog.SurfaceOptions(m.focus))

		opts := cfg.Dialog.ControllerOptions()
		opts = append(opts,
			dialog.WithLogger(deps.Logger.With("dialog", name)),
			dialog.WithTracer(deps.Tracer),
			dialog.WithScheduler(deps.Scheduler),
		)

		m.dialogs = append(m.dialogs, &dialogEntry{
			name: name,
			trigger: key.NewBinding(
				key.WithKeys(spec.Key),
				key.WithHelp(spec.Key, name),
			),
			surface:    surface,
			controller: dialog.New(surface, opts...),
		})
	}

	m.refreshBackground()
	return m
}

// Init starts the application
func (m Model) Init() tea.Cmd {
	if m.appCtx.StartDialog == "" {
		return nil
	}
	name := m.appCtx.StartDialog
	return func() tea.Msg {
		return openDialogMsg{Name: name}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.MouseMsg:
		return m.handleMouseEvent(msg)
	case openDialogMsg:
		if d := m.dialog(msg.Name); d != nil {
			cmd := m.openDialog(d)
			return m, cmd
		}
		m.deps.Logger.Warn("unknown dialog", "dialog", msg.Name)
		return m, nil
	case urlOpenedMsg:
		return m.handleURLOpened(msg)
	case ui.ToastHideMsg:
		m.toast.HandleHide(msg)
		return m, nil
	default:
		cmd := m.route(msg)
		return m, cmd
	}
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.background.Width = msg.Width
	m.background.Height = max(msg.Height-headerHeight-footerHeight, 1)
	m.refreshBackground()
	cmd := m.route(msg)
	return m, cmd
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While a dialog is open it owns the keyboard.
	active := m.dialogOpen()
	cmd := m.route(msg)
	if active {
		return m, cmd
	}

	if m.focus.Current() == ui.FocusHelp {
		if key.Matches(msg, ui.Keys.Help, ui.Keys.Escape) {
			m.focus.Remove(ui.FocusHelp)
			m.help.ShowAll = false
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, ui.Keys.Quit):
		for _, d := range m.dialogs {
			d.controller.Destroy()
		}
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, ui.Keys.Help):
		m.focus.Push(ui.FocusHelp)
		m.help.ShowAll = true
	case key.Matches(msg, ui.Keys.Up):
		m.scrollBackground(-1)
	case key.Matches(msg, ui.Keys.Down):
		m.scrollBackground(1)
	case key.Matches(msg, ui.Keys.PageUp):
		m.scrollBackground(-m.background.Height)
	case key.Matches(msg, ui.Keys.PageDown):
		m.scrollBackground(m.background.Height)
	default:
		for _, d := range m.dialogs {
			if key.Matches(msg, d.trigger) {
				cmd = tea.Batch(cmd, m.openDialog(d))
				return m, cmd
			}
		}
	}
	return m, cmd
}

func (m Model) handleMouseEvent(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	cmd := m.route(msg)
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollBackground(-1)
	case tea.MouseButtonWheelDown:
		m.scrollBackground(1)
	}
	return m, cmd
}

func (m Model) handleURLOpened(msg urlOpenedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.deps.Logger.Warn("failed to open url", "url", msg.URL, "error", msg.Err)
		m.logEvent(fmt.Sprintf("failed to open %s", msg.URL))
		cmd := m.toast.Show(fmt.Sprintf("Failed to open %s", msg.URL))
		return m, cmd
	}
	m.deps.Logger.Info("opened url", "url", msg.URL)
	m.logEvent(fmt.Sprintf("opened %s", msg.URL))
	return m, nil
}

// route hands msg to every dialog, then processes the notifications the
// surfaces queued while handling it.
func (m *Model) route(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, d := range m.dialogs {
		cmds = append(cmds, d.surface.Update(msg), d.controller.Update(msg))
	}
	cmds = append(cmds, m.drainNotifications())
	return tea.Batch(cmds...)
}

func (m *Model) drainNotifications() tea.Cmd {
	var cmds []tea.Cmd
	for _, d := range m.dialogs {
		for _, ev := range d.surface.DrainEvents() {
			cmds = append(cmds, m.handleNotification(d, ev))
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleNotification(d *dialogEntry, ev tea.Msg) tea.Cmd {
	switch ev := ev.(type) {
	case ui.OpeningMsg:
		m.logEvent(fmt.Sprintf("%s: opening", ev.Dialog))
	case ui.OpenedMsg:
		m.logEvent(fmt.Sprintf("%s: opened", ev.Dialog))
	case ui.ClosingMsg:
		m.logEvent(fmt.Sprintf("%s: closing (%s)", ev.Dialog, actionName(ev.Action)))
	case ui.ClosedMsg:
		m.logEvent(fmt.Sprintf("%s: closed (%s)", ev.Dialog, actionName(ev.Action)))
		cmds := []tea.Cmd{m.toast.Show(fmt.Sprintf("closed %s: %s", ev.Dialog, actionName(ev.Action)))}
		if b, ok := d.surface.ButtonForAction(ev.Action); ok && b.URL != "" {
			cmds = append(cmds, m.openURL(b.URL))
		}
		return tea.Batch(cmds...)
	}
	return nil
}

// openDialog opens d unless another dialog is already open.
func (m *Model) openDialog(d *dialogEntry) tea.Cmd {
	if m.dialogOpen() {
		return nil
	}
	m.deps.Logger.Debug("opening dialog", "dialog", d.name)
	cmd := d.controller.Open()
	return tea.Batch(cmd, m.drainNotifications())
}

func (m *Model) openURL(url string) tea.Cmd {
	open := m.deps.OpenURL
	return func() tea.Msg {
		return urlOpenedMsg{URL: url, Err: open(url)}
	}
}

// dialogOpen reports whether any dialog is logically open.
func (m *Model) dialogOpen() bool {
	for _, d := range m.dialogs {
		if d.controller.IsOpen() {
			return true
		}
	}
	return false
}

// scrollLocked reports whether an open dialog locked the background.
func (m *Model) scrollLocked() bool {
	for _, d := range m.dialogs {
		if d.surface.ScrollLocked() {
			return true
		}
	}
	return false
}

func (m *Model) scrollBackground(lines int) {
	if m.scrollLocked() || lines == 0 {
		return
	}
	if lines < 0 {
		m.background.ScrollUp(-lines)
	} else {
		m.background.ScrollDown(lines)
	}
}

func (m *Model) dialog(name string) *dialogEntry {
	for _, d := range m.dialogs {
		if d.name == name {
			return d
		}
	}
	return nil
}

func (m *Model) logEvent(event string) {
	m.events = append(m.events, event)
	if len(m.events) > maxEvents {
		m.events = m.events[len(m.events)-maxEvents:]
	}
	m.refreshBackground()
}

// refreshBackground rebuilds the catalog and event log behind the dialogs.
func (m *Model) refreshBackground() {
	var b strings.Builder
	b.WriteString(ui.LabelStyle.Render("Dialogs"))
	b.WriteString("\n")
	for _, d := range m.dialogs {
		title := d.surface.Content().Title
		fmt.Fprintf(&b, "  %s  %-10s %s\n",
			ui.ValueStyle.Render(d.trigger.Help().Key),
			d.name,
			ui.DimStyle.Render(title))
	}
	b.WriteString("\n")
	b.WriteString(ui.LabelStyle.Render("Events"))
	if len(m.events) == 0 {
		b.WriteString("\n  ")
		b.WriteString(ui.DimStyle.Render("none yet"))
	}
	for _, ev := range m.events {
		style := ui.EventStyle
		if strings.HasPrefix(ev, "failed") {
			style = ui.ErrorStyle
		}
		b.WriteString("\n  ")
		b.WriteString(style.Render(ev))
	}
	m.background.SetContent(b.String())
}

func actionName(action string) string {
	if action == "" {
		return "none"
	}
	return action
}
