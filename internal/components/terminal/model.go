// Package terminal is the command pane: it runs a program inside a pty and
// renders its screen through a virtual terminal.
package terminal

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/avitaltamir/swipedeck/internal/components"
	"github.com/avitaltamir/swipedeck/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/creack/pty"
	"github.com/hinshun/vt10x"
)

const (
	defaultCols   = 80
	defaultRows   = 24
	maxScrollback = 5000
	wheelStep     = 3
	readBufSize   = 32 * 1024
)

// Messages
type (
	// StartMsg asks the pane with ID to start its command.
	StartMsg struct {
		ID string
	}

	// OutputMsg carries bytes read from the pane's pty.
	OutputMsg struct {
		ID   string
		Data []byte
	}

	// ExitMsg is sent once the pane's process has exited.
	ExitMsg struct {
		ID  string
		Err error
	}
)

// session is the process side of a pane. Model values share it.
type session struct {
	mu     sync.Mutex
	vt     vt10x.Terminal
	cmd    *exec.Cmd
	pty    *os.File
	closed bool
}

// Model is the command pane component.
type Model struct {
	components.Base

	command string
	args    []string

	sess    *session
	running bool
	exited  bool
	exitErr error

	scrollback   []string
	scrollOffset int
}

// New creates a pane that runs command with args once started.
func New(id, title, command string, args ...string) Model {
	return Model{
		Base:    components.NewBase(id, title),
		command: command,
		args:    args,
		sess:    &session{},
	}
}

// Init asks for the process to be started.
func (m Model) Init() tea.Cmd {
	return Start(m.ID())
}

// Start returns a command that starts the pane with id.
func Start(id string) tea.Cmd {
	return func() tea.Msg {
		return StartMsg{ID: id}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (components.Component, tea.Cmd) {
	switch msg := msg.(type) {
	case StartMsg:
		if msg.ID != m.ID() || m.running || m.exited {
			return m, nil
		}
		return m.startProcess()

	case OutputMsg:
		if msg.ID != m.ID() {
			return m, nil
		}
		m.write(msg.Data)
		return m, m.ContinueReading()

	case ExitMsg:
		if msg.ID != m.ID() {
			return m, nil
		}
		m.running = false
		m.exited = true
		m.exitErr = msg.Err
		m.sess.release()
		return m, nil

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollOffset = min(m.scrollOffset+wheelStep, len(m.scrollback))
		case tea.MouseButtonWheelDown:
			m.scrollOffset = max(m.scrollOffset-wheelStep, 0)
		}
		return m, nil

	case tea.KeyMsg:
		if !m.Focused() || !m.running {
			return m, nil
		}
		if input := keyBytes(msg); len(input) > 0 {
			m.sess.writeInput(input)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) startProcess() (components.Component, tea.Cmd) {
	cols, rows := m.termSize()
	s := m.sess

	s.mu.Lock()
	s.vt = vt10x.New(vt10x.WithSize(cols, rows))
	cmd := exec.Command(m.command, m.args...)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		s.mu.Unlock()
		m.exited = true
		m.exitErr = err
		m.writeError(cols, "Error starting "+m.command+": "+err.Error())
		return m, nil
	}
	s.cmd = cmd
	s.pty = ptmx
	s.mu.Unlock()

	m.running = true
	return m, m.readOutput()
}

func (m Model) readOutput() tea.Cmd {
	id := m.ID()
	s := m.sess
	return func() tea.Msg {
		s.mu.Lock()
		ptmx, cmd := s.pty, s.cmd
		s.mu.Unlock()
		if ptmx == nil {
			return nil
		}

		buf := make([]byte, readBufSize)
		n, err := ptmx.Read(buf)
		if n > 0 {
			return OutputMsg{ID: id, Data: buf[:n]}
		}
		if err != nil {
			// EOF or EIO once the child closes its side
			return ExitMsg{ID: id, Err: cmd.Wait()}
		}
		return OutputMsg{ID: id}
	}
}

// ContinueReading returns a command to continue reading output.
func (m Model) ContinueReading() tea.Cmd {
	if !m.running {
		return nil
	}
	return m.readOutput()
}

// write feeds data to the screen, moving lines that scroll off the top into
// scrollback.
func (m *Model) write(data []byte) {
	vt := m.sess.vt
	if vt == nil || len(data) == 0 {
		return
	}
	m.scrollOffset = 0

	cols, rows := vt.Size()
	old := make([]string, rows)
	oldRendered := make([]string, rows)
	for row := 0; row < rows; row++ {
		old[row] = plainLine(vt, cols, row)
		oldRendered[row] = renderLine(vt, cols, row, -1)
	}

	_, _ = vt.Write(data)

	top := plainLine(vt, cols, 0)
	scrolled := 0
	if strings.TrimSpace(top) != "" {
		for i := 1; i < rows; i++ {
			if old[i] == top {
				scrolled = i
				break
			}
		}
	}
	for i := 0; i < scrolled; i++ {
		if strings.TrimSpace(old[i]) != "" {
			m.scrollback = append(m.scrollback, oldRendered[i])
		}
	}
	if len(m.scrollback) > maxScrollback {
		m.scrollback = m.scrollback[len(m.scrollback)-maxScrollback:]
	}
}

// writeError prints msg in red, one screen row per write so that rows
// pushed off the top land in scrollback.
func (m *Model) writeError(cols int, msg string) {
	for _, line := range strings.Split(ansi.Hardwrap(msg, cols, true), "\n") {
		m.write([]byte("\x1b[31m" + line + "\x1b[0m\r\n"))
	}
}

// View renders the terminal screen, or scrollback when scrolled up.
func (m Model) View() string {
	w, h := m.Size()
	vt := m.sess.vt
	if vt == nil || w <= 0 || h <= 0 {
		return lipgloss.NewStyle().
			Foreground(theme.TextMuted).
			Italic(true).
			Render("Starting " + m.command + "…")
	}

	vt.Lock()
	defer vt.Unlock()

	cols, rows := vt.Size()
	if m.scrollOffset > 0 && len(m.scrollback) > 0 {
		return m.renderWithScrollback(vt, cols, rows)
	}

	cur := vt.Cursor()
	lines := make([]string, rows)
	for row := 0; row < rows; row++ {
		cursorCol := -1
		if m.Focused() && m.running && vt.CursorVisible() && row == cur.Y {
			cursorCol = cur.X
		}
		lines[row] = renderLine(vt, cols, row, cursorCol)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderWithScrollback(vt vt10x.Terminal, cols, rows int) string {
	start := max(len(m.scrollback)-m.scrollOffset, 0)

	lines := make([]string, 0, rows)
	for i := start; i < len(m.scrollback) && len(lines) < rows; i++ {
		lines = append(lines, m.scrollback[i])
	}
	for row := 0; len(lines) < rows; row++ {
		lines = append(lines, renderLine(vt, cols, row, -1))
	}
	return strings.Join(lines, "\n")
}

// Frame shows whether the process is still running.
func (m Model) Frame() theme.PanelTitleOptions {
	opts := theme.PanelTitleOptions{
		Title:         m.Title(),
		ShowStatus:    true,
		StatusRunning: m.running,
		ScrollPercent: -1,
	}
	switch {
	case m.scrollOffset > 0:
		opts.BottomHints = fmt.Sprintf("scrollback -%d", m.scrollOffset)
	case m.exited && m.exitErr != nil:
		opts.BottomHints = "exited: " + m.exitErr.Error()
	case m.exited:
		opts.BottomHints = "exited"
	}
	return opts
}

// Focus gives focus to this component.
func (m Model) Focus() components.Component {
	m.Base.Focus()
	return m
}

// Blur removes focus from this component.
func (m Model) Blur() components.Component {
	m.Base.Blur()
	return m
}

// SetSize resizes the virtual screen and the pty.
func (m Model) SetSize(width, height int) components.Component {
	m.Base.SetSize(width, height)
	m.scrollOffset = 0

	w, h := m.Size()
	if w <= 0 || h <= 0 {
		return m
	}

	s := m.sess
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.vt != nil {
		s.vt.Resize(w, h)
	}
	if s.pty != nil {
		_ = pty.Setsize(s.pty, &pty.Winsize{Rows: uint16(h), Cols: uint16(w)})
	}
	return m
}

// Running returns whether a process is running.
func (m Model) Running() bool {
	return m.running
}

// ExitErr returns the error the process exited with, if any.
func (m Model) ExitErr() error {
	return m.exitErr
}

// Close kills the process and closes the pty.
func (m Model) Close() error {
	s := m.sess
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	if s.cmd != nil && s.cmd.Process != nil && s.cmd.ProcessState == nil {
		_ = s.cmd.Process.Kill()
	}
	if s.pty != nil {
		err := s.pty.Close()
		s.pty = nil
		return err
	}
	return nil
}

func (m Model) termSize() (cols, rows int) {
	cols, rows = m.Size()
	if cols <= 0 {
		cols = defaultCols
	}
	if rows <= 0 {
		rows = defaultRows
	}
	return cols, rows
}

func (s *session) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pty != nil {
		_ = s.pty.Close()
		s.pty = nil
	}
	s.cmd = nil
}

func (s *session) writeInput(b []byte) {
	s.mu.Lock()
	ptmx := s.pty
	s.mu.Unlock()
	if ptmx != nil {
		_, _ = ptmx.Write(b)
	}
}

// plainLine returns a screen row without styling or trailing blanks.
func plainLine(vt vt10x.Terminal, cols, row int) string {
	var b strings.Builder
	for col := 0; col < cols; col++ {
		ch := vt.Cell(col, row).Char
		if ch == 0 {
			ch = ' '
		}
		b.WriteRune(ch)
	}
	return strings.TrimRight(b.String(), " ")
}

// renderLine renders one screen row, batching cells that share a style.
// cursorCol < 0 draws no cursor.
func renderLine(vt vt10x.Terminal, cols, row, cursorCol int) string {
	var out, batch strings.Builder
	var fg, bg vt10x.Color
	var mode int16
	var cursor bool

	flush := func() {
		if batch.Len() == 0 {
			return
		}
		out.WriteString(buildANSI(fg, bg, mode, cursor))
		out.WriteString(batch.String())
		out.WriteString("\x1b[0m")
		batch.Reset()
	}

	for col := 0; col < cols; col++ {
		g := vt.Cell(col, row)
		ch := g.Char
		if ch == 0 {
			ch = ' '
		}
		isCursor := col == cursorCol
		if col > 0 && (g.FG != fg || g.BG != bg || g.Mode != mode || isCursor != cursor) {
			flush()
		}
		fg, bg, mode, cursor = g.FG, g.BG, g.Mode, isCursor
		batch.WriteRune(ch)
	}
	flush()
	return out.String()
}

// buildANSI builds the SGR sequence for a cell style.
func buildANSI(fg, bg vt10x.Color, mode int16, isCursor bool) string {
	if isCursor {
		return "\x1b[7m"
	}

	var codes []string
	if mode&0x01 != 0 { // Reverse
		codes = append(codes, "7")
	}
	if mode&0x02 != 0 { // Underline
		codes = append(codes, "4")
	}
	if mode&0x04 != 0 { // Bold
		codes = append(codes, "1")
	}
	if mode&0x10 != 0 { // Italic
		codes = append(codes, "3")
	}
	if c := colorToANSI(fg, true); c != "" {
		codes = append(codes, c)
	}
	if c := colorToANSI(bg, false); c != "" {
		codes = append(codes, c)
	}

	if len(codes) == 0 {
		return ""
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

// colorToANSI converts a vt10x color to an SGR parameter.
func colorToANSI(c vt10x.Color, isFG bool) string {
	// Default colors
	if c >= 0x01000000 {
		return ""
	}

	base := 38
	if !isFG {
		base = 48
	}
	if c < 256 {
		return fmt.Sprintf("%d;5;%d", base, c)
	}
	return fmt.Sprintf("%d;2;%d;%d;%d", base, (c>>16)&0xFF, (c>>8)&0xFF, c&0xFF)
}
