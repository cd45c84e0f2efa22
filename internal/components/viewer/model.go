// Package viewer is the file pane: a scrollable, syntax highlighted view of
// one file with regex search.
package viewer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/avitaltamir/swipedeck/internal/components"
	"github.com/avitaltamir/swipedeck/internal/theme"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	tabWidth   = 4
	wheelLines = 3
	gutter     = " │ "
)

// FileLoadedMsg is sent when a file has been read for the pane with ID.
type FileLoadedMsg struct {
	ID      string
	Path    string
	Content string
	Err     error
}

// Model is the file viewer component.
type Model struct {
	components.Base

	viewport viewport.Model
	path     string
	content  string
	loaded   bool
	ready    bool
	err      error

	search search
}

// New creates a viewer for path. An empty path shows a placeholder.
func New(id, title, path string) Model {
	return Model{
		Base:   components.NewBase(id, title),
		path:   path,
		search: newSearch(),
	}
}

// Init starts loading the file.
func (m Model) Init() tea.Cmd {
	if m.path == "" {
		return nil
	}
	return LoadFile(m.ID(), m.path)
}

// Reload reads the file again. The scroll position survives the reload.
func (m Model) Reload() tea.Cmd {
	return m.Init()
}

// LoadFile reads path for the pane with the given id.
func LoadFile(id, path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return FileLoadedMsg{ID: id, Path: path, Err: err}
		}
		return FileLoadedMsg{ID: id, Path: path, Content: string(data)}
	}
}

func (m Model) Update(msg tea.Msg) (components.Component, tea.Cmd) {
	switch msg := msg.(type) {
	case FileLoadedMsg:
		if msg.ID == m.ID() {
			m.applyLoad(msg)
		}
		return m, nil

	case tea.MouseMsg:
		// The wheel works whether or not the pane is focused.
		if !m.ready {
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if !m.Focused() || !m.ready {
			return m, nil
		}
		if m.search.open {
			return m.updatePrompt(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *Model) applyLoad(msg FileLoadedMsg) {
	if msg.Err != nil {
		m.err = msg.Err
		m.content = ""
		m.loaded = false
		m.refresh()
		return
	}

	sameFile := m.loaded && msg.Path == m.path
	offset := m.viewport.YOffset

	m.path = msg.Path
	m.content = strings.ReplaceAll(msg.Content, "\t", strings.Repeat(" ", tabWidth))
	m.loaded = true
	m.err = nil

	if sameFile {
		m.search.run(m.content, m.search.query)
	} else {
		m.search.reset()
	}
	m.refresh()
	if !m.ready {
		return
	}
	if sameFile {
		m.viewport.SetYOffset(offset)
	} else {
		m.viewport.GotoTop()
	}
}

func (m Model) updatePrompt(msg tea.KeyMsg) (components.Component, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		// closes the prompt; highlights stay
		m.search.close()
		return m, nil

	case tea.KeyEnter:
		query := m.search.input.Value()
		if query == m.search.query {
			m.search.step(1)
		} else {
			m.search.run(m.content, query)
		}
		m.search.close()
		m.refresh()
		m.centreOnMatch()
		return m, nil
	}

	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (components.Component, tea.Cmd) {
	key := msg.String()
	switch {
	case key == "/" && m.loaded:
		m.search.open = true
		return m, m.search.input.Focus()

	case key == "esc" && m.search.active():
		m.search.reset()
		m.refresh()
		return m, nil

	case (key == "n" || key == "N") && m.search.active():
		if key == "n" {
			m.search.step(1)
		} else {
			m.search.step(-1)
		}
		m.refresh()
		m.centreOnMatch()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// refresh re-renders the viewport content from the current state.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	switch {
	case m.err != nil:
		m.viewport.SetContent(theme.TextErrorStyle.Bold(true).Render("Error: " + m.err.Error()))
	case m.loaded:
		m.viewport.SetContent(m.render())
	}
}

func (m *Model) centreOnMatch() {
	if ln := m.search.line(); ln >= 0 {
		m.viewport.SetYOffset(max(ln-m.viewport.Height/2, 0))
	}
}

func (m Model) View() string {
	if !m.ready {
		return ""
	}
	if m.path == "" && !m.loaded {
		w, h := m.Size()
		return lipgloss.NewStyle().
			Width(w).
			Height(h).
			Foreground(theme.TextMuted).
			Align(lipgloss.Center, lipgloss.Center).
			Render("Nothing to show.\nPass a file path to view it here.")
	}
	if !m.search.open {
		return m.viewport.View()
	}

	w, _ := m.Size()
	vp := m.viewport
	vp.Height = max(vp.Height-1, 0)
	return vp.View() + "\n" + m.search.bar(w)
}

// Frame shows the scroll position once the content overflows, and the
// match counter while a search is active.
func (m Model) Frame() theme.PanelTitleOptions {
	opts := theme.PanelTitleOptions{
		Title:         m.Title(),
		ScrollPercent: -1,
		BottomHints:   m.search.hint(),
	}
	if m.ready && m.viewport.TotalLineCount() > m.viewport.Height {
		opts.ScrollPercent = m.ScrollPercent()
	}
	return opts
}

func (m Model) Close() error {
	return nil
}

// render numbers every line and paints search matches over the
// highlighted source.
func (m Model) render() string {
	if m.content == "" {
		return theme.TextMutedStyle.Render("(empty file)")
	}

	raw := strings.Split(m.content, "\n")
	coloured := strings.Split(highlight(m.path, m.content), "\n")

	hit := make(map[int]bool, len(m.search.hits))
	for _, ln := range m.search.hits {
		hit[ln] = true
	}
	current := m.search.line()

	plain := lipgloss.NewStyle().Foreground(theme.TextDim)
	matched := lipgloss.NewStyle().Foreground(theme.ColorWarning).Bold(true)
	focused := lipgloss.NewStyle().Foreground(theme.ColorSuccess).Bold(true)

	out := make([]string, len(coloured))
	for i, line := range coloured {
		num := fmt.Sprintf("%4d", i+1)
		switch {
		case i < len(raw) && i == current:
			out[i] = focused.Render(num+gutter) + m.search.mark(raw[i], true)
		case i < len(raw) && hit[i]:
			out[i] = matched.Render(num+gutter) + m.search.mark(raw[i], false)
		default:
			out[i] = plain.Render(num+gutter) + line
		}
	}
	return strings.Join(out, "\n")
}

// highlight runs content through chroma's terminal256 formatter, picking
// the lexer from the file name first and the content second. Any failure
// returns content unchanged.
func highlight(path, content string) string {
	var lexer chroma.Lexer
	if path != "" {
		lexer = lexers.Match(filepath.Base(path))
	}
	if lexer == nil {
		lexer = lexers.Analyse(content)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	it, err := chroma.Coalesce(lexer).Tokenise(nil, content)
	if err != nil {
		return content
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, it); err != nil {
		return content
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func (m Model) Path() string    { return m.path }
func (m Model) Content() string { return m.content }

// Err returns the last load error.
func (m Model) Err() error { return m.err }

func (m Model) Focus() components.Component {
	m.Base.Focus()
	return m
}

// Blur removes focus and closes an open search prompt.
func (m Model) Blur() components.Component {
	m.Base.Blur()
	m.search.close()
	return m
}

func (m Model) SetSize(width, height int) components.Component {
	m.Base.SetSize(width, height)
	w, h := m.Size()

	if m.ready {
		m.viewport.Width = w
		m.viewport.Height = h
	} else {
		m.viewport = viewport.New(w, h)
		m.viewport.MouseWheelEnabled = true
		m.viewport.MouseWheelDelta = wheelLines
		m.ready = true
	}
	m.refresh()
	return m
}

// ScrollPercent is the scroll position in the range 0-100.
func (m Model) ScrollPercent() float64 {
	return m.viewport.ScrollPercent() * 100
}

// IsSearching reports whether the search prompt is open.
func (m Model) IsSearching() bool {
	return m.search.open
}
