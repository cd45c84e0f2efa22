package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/avitaltamir/swipedeck/internal/components"
	"github.com/avitaltamir/swipedeck/internal/components/terminal"
	"github.com/avitaltamir/swipedeck/internal/components/viewer"
	"github.com/avitaltamir/swipedeck/internal/config"
	"github.com/avitaltamir/swipedeck/internal/drag"
	"github.com/avitaltamir/swipedeck/internal/layout"
	"github.com/avitaltamir/swipedeck/internal/logging"
	"github.com/avitaltamir/swipedeck/internal/state"
	"github.com/avitaltamir/swipedeck/internal/swipe"
	"github.com/avitaltamir/swipedeck/internal/theme"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Version is the application version, set at build time via ldflags
var Version = "dev"

// fileChangeDebounceInterval is the minimum time between reloads of a file
const fileChangeDebounceInterval = 100 * time.Millisecond

// helpLines is the height of the short help line under the status bar.
const helpLines = 1

// slot ties a swipe handle to the content drawn inside it.
type slot struct {
	handle  *swipe.Pane
	content components.Component
	// path is the absolute path of a file pane, empty otherwise
	path string
}

// Model is the root application model: a container hosting exactly two
// swipeable panes.
type Model struct {
	panes      [2]*slot
	controller *swipe.Controller

	layout   layout.Layout
	keys     KeyMap
	help     help.Model
	showHelp bool

	// File watcher
	watcher              *fsnotify.Watcher
	watched              map[string]bool
	pendingFileChanges   map[string]fsnotify.Op
	fileChangeDebouncing bool

	log zerolog.Logger

	// Window dimensions
	width  int
	height int
	ready  bool

	sawRelease bool
	note       string // shown in the status bar until the first input
	err        error
}

// New creates the application model for cfg. cfg must hold exactly two
// panes; config.Load guarantees that.
func New(cfg *config.Config, logger zerolog.Logger) Model {
	saved := state.Load()
	theme.SetThemeIndex(saved.ThemeIndex)

	m := Model{
		keys:               DefaultKeyMap(),
		help:               help.New(),
		watched:            make(map[string]bool),
		pendingFileChanges: make(map[string]fsnotify.Op),
		log:                logging.Component(logger, "app"),
	}

	visibilities, restore := saved.Visibilities()
	if restore && allHidden(visibilities) {
		restore = false
	}

	for i := range m.panes {
		pc := cfg.Panes[i]
		id := fmt.Sprintf("pane%d", i+1)

		s := &slot{
			handle:  swipe.NewPane(id, pc.LeftMargin),
			content: newContent(id, pc),
		}
		vis := pc.Visibility
		if restore {
			vis = visibilities[i]
		}
		s.handle.SetVisibility(swipe.ParseVisibility(vis))

		if pc.Kind == config.KindFile && pc.Path != "" {
			if abs, err := filepath.Abs(pc.Path); err == nil {
				s.path = abs
			}
		}
		m.panes[i] = s
	}

	if restore {
		m.note = "last session ended on " + m.panes[min(max(saved.LastCurrent, 0), 1)].content.Title()
	}

	m.controller = swipe.New(
		swipe.WithLogger(logging.Component(logger, "swipe")),
		swipe.WithFPS(cfg.Animation.FPS),
	)
	dragLog := logging.Component(logger, "drag")
	m.controller.SetPhysics(drag.New(m.controller, drag.Options{
		FPS:             cfg.Animation.FPS,
		Frequency:       cfg.Animation.Frequency,
		Damping:         cfg.Animation.Damping,
		MaxSettleFrames: cfg.Animation.MaxFrames,
		Logger:          &dragLog,
	}))

	m.startWatcher()
	return m
}

func newContent(id string, pc config.PaneConfig) components.Component {
	if pc.Kind == config.KindCommand {
		return terminal.New(id, pc.Title, pc.Command, pc.Args...)
	}
	return viewer.New(id, pc.Title, pc.Path)
}

// startWatcher watches the directories of file panes. Watching the
// directory keeps working when editors replace the file on save.
func (m *Model) startWatcher() {
	dirs := make(map[string]bool)
	for _, s := range m.panes {
		if s.path != "" {
			m.watched[s.path] = true
			dirs[filepath.Dir(s.path)] = true
		}
	}
	if len(dirs) == 0 {
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		m.log.Warn().Err(err).Msg("file watcher unavailable")
		return
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			m.log.Warn().Err(err).Str("dir", dir).Msg("cannot watch directory")
		}
	}
	m.watcher = watcher
}

// Init initializes the application.
func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.panes)+1)
	for _, s := range m.panes {
		cmds = append(cmds, s.content.Init())
	}
	if m.watcher != nil {
		cmds = append(cmds, m.watchFilesCmd())
	}
	return tea.Batch(cmds...)
}

// watchFilesCmd returns a command that waits for a change to a pane's file.
func (m Model) watchFilesCmd() tea.Cmd {
	watcher, watched, log := m.watcher, m.watched, m.log
	return func() tea.Msg {
		if watcher == nil {
			return nil
		}
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !watched[filepath.Clean(event.Name)] {
					continue
				}
				return FileChangeMsg{Path: filepath.Clean(event.Name), Op: event.Op}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				log.Debug().Err(err).Msg("file watcher error")
			}
		}
	}
}

// scheduleFileChangeDebounce schedules processing of pending file changes
func (m *Model) scheduleFileChangeDebounce() tea.Cmd {
	if m.fileChangeDebouncing {
		return nil
	}
	m.fileChangeDebouncing = true
	return tea.Tick(fileChangeDebounceInterval, func(time.Time) tea.Msg {
		return fileChangeDebounceMsg{}
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		if err := m.relayout(); err != nil {
			return m.fail(err)
		}

	case ErrorMsg:
		return m.fail(msg.Err)

	case swipe.FrameMsg:
		cmds = append(cmds, m.controller.HandleFrame(msg))

	case swipe.TransitionMsg:
		m.log.Debug().
			Str("outcome", msg.Outcome.String()).
			Str("current", msg.Current).
			Msg("transition finished")

	case FileChangeMsg:
		// Always continue watching for more events
		cmds = append(cmds, m.watchFilesCmd())
		m.pendingFileChanges[msg.Path] |= msg.Op
		cmds = append(cmds, m.scheduleFileChangeDebounce())

	case fileChangeDebounceMsg:
		m.fileChangeDebouncing = false
		for path, op := range m.pendingFileChanges {
			if op.Has(fsnotify.Write) || op.Has(fsnotify.Create) {
				cmds = append(cmds, m.reload(path))
			}
		}
		m.pendingFileChanges = make(map[string]fsnotify.Op)

	case tea.KeyMsg:
		m.note = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			if err := m.Close(); err != nil {
				m.log.Warn().Err(err).Msg("shutdown")
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		case key.Matches(msg, m.keys.Theme):
			t := theme.NextTheme()
			m.log.Debug().Str("theme", t.Name).Msg("theme changed")
		case key.Matches(msg, m.keys.TogglePane1):
			m.cycleVisibility(0)
		case key.Matches(msg, m.keys.TogglePane2):
			m.cycleVisibility(1)
		default:
			cmds = append(cmds, m.updateCurrent(msg))
		}

	case tea.MouseMsg:
		m.note = ""
		handled, cmd := m.controller.HandleMouse(msg)
		if handled {
			if msg.Action == tea.MouseActionRelease {
				m.sawRelease = true
			}
			cmds = append(cmds, cmd)
		} else {
			cmds = append(cmds, m.routeMouse(msg))
		}

	default:
		// Pane messages carry the pane ID; each component filters its own.
		for _, s := range m.panes {
			var cmd tea.Cmd
			s.content, cmd = s.content.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if err := m.layoutPass(); err != nil {
		return m.fail(err)
	}
	return m, tea.Batch(cmds...)
}

// relayout places both panes at rest, resizes their content and registers
// them with the controller.
func (m *Model) relayout() error {
	m.layout = layout.Calculate(m.width, m.height, helpLines)
	for _, s := range m.panes {
		x, y, w, h := m.layout.PaneBounds(s.handle.LeftMargin())
		s.handle.Place(x, y, w, h)
		s.content = s.content.SetSize(m.layout.ContentWidth(w, 1), m.layout.ContentHeight(h, 1))
	}
	cx, _, cw, _ := m.layout.ContainerBounds()
	return m.controller.Layout(swipe.Bounds{Left: cx, Width: cw}, m.handles())
}

// layoutPass runs after every message: it lets the controller notice
// visibility changes, brings a newly promoted current pane to rest and
// moves focus to the current pane.
func (m *Model) layoutPass() error {
	if !m.ready {
		return nil
	}
	if err := m.controller.OnGlobalLayout(); err != nil {
		return err
	}

	cur := m.controller.Current()
	if cur != nil && m.controller.Phase() == swipe.PhaseIdle {
		x, y, w, h := m.layout.PaneBounds(cur.LeftMargin())
		if cur.Left() != x || cur.Top() != y {
			cur.Place(x, y, w, h)
		}
	}

	for _, s := range m.panes {
		want := s.handle == cur
		switch {
		case want && !s.content.Focused():
			s.content = s.content.Focus()
		case !want && s.content.Focused():
			s.content = s.content.Blur()
		}
	}
	return nil
}

func (m *Model) cycleVisibility(i int) {
	h := m.panes[i].handle
	h.SetVisibility(h.Visibility().Next())
	m.log.Debug().Str("pane", h.ID).Str("visibility", h.Visibility().String()).Msg("visibility cycled")
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.err = err
	m.log.Error().Err(err).Msg("fatal")
	if cerr := m.Close(); cerr != nil {
		m.log.Warn().Err(cerr).Msg("shutdown")
	}
	return m, tea.Quit
}

func (m Model) handles() []*swipe.Pane {
	return []*swipe.Pane{m.panes[0].handle, m.panes[1].handle}
}

func (m Model) currentSlot() *slot {
	cur := m.controller.Current()
	if cur == nil {
		return nil
	}
	for _, s := range m.panes {
		if s.handle == cur {
			return s
		}
	}
	return nil
}

func (m Model) updateCurrent(msg tea.Msg) tea.Cmd {
	s := m.currentSlot()
	if s == nil {
		return nil
	}
	var cmd tea.Cmd
	s.content, cmd = s.content.Update(msg)
	return cmd
}

// routeMouse hands an event the controller passed on to the current pane,
// in coordinates relative to the pane's content.
func (m Model) routeMouse(msg tea.MouseMsg) tea.Cmd {
	s := m.currentSlot()
	if s == nil {
		return nil
	}
	msg.X -= s.handle.Left() + 1
	msg.Y -= s.handle.Top() + 1
	var cmd tea.Cmd
	s.content, cmd = s.content.Update(msg)
	return cmd
}

func (m Model) reload(path string) tea.Cmd {
	var cmds []tea.Cmd
	for _, s := range m.panes {
		if s.path != path {
			continue
		}
		if r, ok := s.content.(interface{ Reload() tea.Cmd }); ok {
			m.log.Debug().Str("pane", s.handle.ID).Str("path", path).Msg("reloading")
			cmds = append(cmds, r.Reload())
		}
	}
	return tea.Batch(cmds...)
}

// View renders the application.
func (m Model) View() string {
	if m.err != nil {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}
	if !m.layout.Usable() {
		return theme.TextMutedStyle.Render("Terminal too small")
	}

	cur := m.controller.Current()
	layers := make([]layout.Layer, 0, len(m.panes)+1)
	for _, s := range m.panes {
		h := s.handle
		if h.Visibility() == swipe.Hidden {
			continue
		}
		l := layout.Layer{Left: h.Left(), Top: h.Top(), Width: h.Width(), Height: h.Height()}
		if h.Visibility() == swipe.Collapsed {
			l.Blank = true
		} else {
			l.Content = theme.RenderPanelWithTitle(s.content.View(), s.content.Frame(), h.Width(), h.Height(), h == cur)
		}
		layers = append(layers, l)
	}
	if m.showHelp {
		layers = append(layers, m.helpOverlay())
	}

	_, _, cw, ch := m.layout.ContainerBounds()
	parts := []string{layout.Compose(cw, ch, layers), m.renderStatusBar()}
	if _, _, hw, hh := m.layout.HelpBounds(); hh > 0 {
		parts = append(parts, ansi.Truncate(theme.HelpStyle.Render(m.help.View(m.keys)), hw, ""))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// helpOverlay centers the full key help over the container.
func (m Model) helpOverlay() layout.Layer {
	h := m.help
	h.ShowAll = true
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorAccent).
		Padding(0, 1).
		Render(h.View(m.keys))

	w, ht := lipgloss.Width(box), lipgloss.Height(box)
	cx, cy, cw, ch := m.layout.ContainerBounds()
	return layout.Layer{
		Left:    cx + max((cw-w)/2, 0),
		Top:     cy + max((ch-ht)/2, 0),
		Width:   w,
		Height:  ht,
		Content: box,
	}
}

func (m Model) renderStatusBar() string {
	_, _, width, _ := m.layout.StatusBarBounds()
	style := theme.StatusBarStyle.Width(width)

	title := "no pane"
	if s := m.currentSlot(); s != nil {
		title = s.content.Title()
	}

	swipeInfo := theme.StatusBarWarn.Render("swipe off")
	if m.controller.IsSwipeEnabled() {
		swipeInfo = theme.StatusBarOK.Render("swipe on")
	}

	left := theme.StatusBarHighlight.Render(title) +
		swipeInfo +
		theme.StatusBarSection.Render(m.controller.Phase().String())
	if m.sawRelease {
		left += theme.StatusBarSection.Render(m.controller.LastOutcome().String())
	}
	left += theme.StatusBarSection.Render(fmt.Sprintf("1:%s 2:%s",
		m.panes[0].handle.Visibility(), m.panes[1].handle.Visibility()))
	if m.note != "" {
		left += theme.StatusBarSection.Render(m.note)
	}

	right := theme.StatusBarSection.Render(theme.CurrentTheme().Name + " │ " + Version)

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return style.Render(ansi.Truncate(left+strings.Repeat(" ", gap)+right, width, ""))
}

// Err returns the error that made the application quit, if any.
func (m Model) Err() error {
	return m.err
}

// Current returns the ID of the pane holding the current role, or "".
func (m Model) Current() string {
	if cur := m.controller.Current(); cur != nil {
		return cur.ID
	}
	return ""
}

// Close persists UI state and releases the panes and the file watcher.
func (m Model) Close() error {
	m.saveState()

	var errs []error
	for _, s := range m.panes {
		if err := s.content.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", s.handle.ID, err))
		}
	}
	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close file watcher: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (m Model) saveState() {
	s := state.State{ThemeIndex: theme.CurrentThemeIndex()}

	vis := []string{m.panes[0].handle.Visibility().String(), m.panes[1].handle.Visibility().String()}
	if !allHidden(vis) {
		s.PaneVisibility = vis
	}
	if m.controller.Current() == m.panes[1].handle {
		s.LastCurrent = 1
	}

	// Best effort: a read-only home must not block quitting.
	if err := state.Save(s); err != nil {
		m.log.Warn().Err(err).Msg("failed to save state")
	}
}

func allHidden(names []string) bool {
	for _, n := range names {
		if swipe.ParseVisibility(n) != swipe.Hidden {
			return false
		}
	}
	return true
}
