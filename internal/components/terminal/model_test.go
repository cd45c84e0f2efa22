package terminal

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/avitaltamir/swipedeck/internal/components"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/hinshun/vt10x"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	c, cmd := m.Update(msg)
	out, ok := c.(Model)
	require.True(t, ok)
	return out, cmd
}

func TestImplementsComponent(t *testing.T) {
	var _ components.Component = New("a", "t", "sh")
}

func TestInitRequestsStart(t *testing.T) {
	cmd := New("b", "shell", "sh").Init()
	require.NotNil(t, cmd)

	assert.Equal(t, StartMsg{ID: "b"}, cmd())
}

func TestMessagesForOtherPanesAreIgnored(t *testing.T) {
	m := New("a", "shell", "sh")

	m, cmd := update(t, m, StartMsg{ID: "b"})
	assert.Nil(t, cmd)
	assert.False(t, m.Running())

	m, _ = update(t, m, ExitMsg{ID: "b", Err: errors.New("boom")})
	assert.NoError(t, m.ExitErr())
	assert.Empty(t, m.Frame().BottomHints)
}

func TestViewBeforeStart(t *testing.T) {
	m := New("a", "shell", "htop")

	assert.Contains(t, ansi.Strip(m.View()), "Starting htop")
}

func TestRunsCommand(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	m := New("a", "shell", "sh", "-c", "printf hello").SetSize(20, 3).(Model)
	t.Cleanup(func() { _ = m.Close() })

	m, cmd := update(t, m, StartMsg{ID: "a"})
	require.NotNil(t, cmd)
	require.True(t, m.Running())
	assert.True(t, m.Frame().StatusRunning)

	for i := 0; i < 100 && cmd != nil; i++ {
		msg := cmd()
		if msg == nil {
			break
		}
		m, cmd = update(t, m, msg)
		if _, done := msg.(ExitMsg); done {
			break
		}
	}

	assert.False(t, m.Running())
	assert.NoError(t, m.ExitErr())
	assert.Contains(t, ansi.Strip(m.View()), "hello")

	opts := m.Frame()
	assert.Equal(t, "shell", opts.Title)
	assert.False(t, opts.StatusRunning)
	assert.Equal(t, "exited", opts.BottomHints)
}

func TestStartFailure(t *testing.T) {
	t.Run("error fits on screen", func(t *testing.T) {
		m := New("a", "shell", "/definitely/not/a/program").SetSize(80, 10).(Model)

		m, cmd := update(t, m, StartMsg{ID: "a"})

		assert.Nil(t, cmd)
		assert.False(t, m.Running())
		require.Error(t, m.ExitErr())
		assert.Contains(t, ansi.Strip(m.View()), "Error starting /definitely/not/a/program")
		assert.Contains(t, m.Frame().BottomHints, "exited: ")
	})

	t.Run("overflow on a short pane goes to scrollback", func(t *testing.T) {
		m := New("a", "shell", "/definitely/not/a/program").SetSize(40, 3).(Model)

		m, _ = update(t, m, StartMsg{ID: "a"})

		require.Error(t, m.ExitErr())
		require.NotEmpty(t, m.scrollback)
		assert.Contains(t, ansi.Strip(m.scrollback[0]), "Error starting")

		m, _ = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
		assert.Contains(t, ansi.Strip(m.View()), "Error starting")
	})
}

func TestCloseIsIdempotent(t *testing.T) {
	m := New("a", "shell", "sh")

	assert.NoError(t, m.Close())
	assert.NoError(t, m.Close())
}

func TestKeysNeedFocusAndProcess(t *testing.T) {
	m := New("a", "shell", "sh")

	// no pty yet, so these must not panic
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	m = m.Focus().(Model)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})

	assert.True(t, m.Focused())
	m = m.Blur().(Model)
	assert.False(t, m.Focused())
}

func TestWheelScrollback(t *testing.T) {
	m := New("a", "shell", "sh")
	m.scrollback = []string{"1", "2", "3", "4", "5"}

	m, _ = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.Equal(t, 3, m.scrollOffset)
	assert.Equal(t, "scrollback -3", m.Frame().BottomHints)

	m, _ = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.Equal(t, 5, m.scrollOffset, "clamped to the scrollback length")

	m, _ = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	m, _ = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.Zero(t, m.scrollOffset)
}

func TestKeyBytes(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []byte
	}{
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []byte{'\r'}},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, []byte{'\t'}},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, []byte{127}},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, []byte{27}},
		{"ctrl+a", tea.KeyMsg{Type: tea.KeyCtrlA}, []byte{1}},
		{"ctrl+d", tea.KeyMsg{Type: tea.KeyCtrlD}, []byte{4}},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, []byte{' '}},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, []byte("\x1b[A")},
		{"page down", tea.KeyMsg{Type: tea.KeyPgDown}, []byte("\x1b[6~")},
		{"delete", tea.KeyMsg{Type: tea.KeyDelete}, []byte("\x1b[3~")},
		{"runes", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hé")}, []byte("hé")},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b"), Alt: true}, []byte("\x1bb")},
		{"alt left", tea.KeyMsg{Type: tea.KeyLeft, Alt: true}, []byte("\x1b\x1b[D")},
		{"mouse fragment", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("65;83;57M")}, nil},
		{"csi fragment", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("[<")}, nil},
		{"unmapped", tea.KeyMsg{Type: tea.KeyF5}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keyBytes(tt.msg))
		})
	}
}

func TestLooksLikeEscapeFragment(t *testing.T) {
	assert.True(t, looksLikeEscapeFragment("["))
	assert.True(t, looksLikeEscapeFragment("[12;3"))
	assert.False(t, looksLikeEscapeFragment("[a"))
	assert.False(t, looksLikeEscapeFragment("x"))
}

func TestLooksLikeMouseSequence(t *testing.T) {
	assert.True(t, looksLikeMouseSequence("0;45;12m"))
	assert.True(t, looksLikeMouseSequence("<0;1;1M"))
	assert.False(t, looksLikeMouseSequence("1M"))
	assert.False(t, looksLikeMouseSequence("helloM"))
}

func TestColorToANSI(t *testing.T) {
	assert.Empty(t, colorToANSI(vt10x.DefaultFG, true))
	assert.Equal(t, "38;5;1", colorToANSI(1, true))
	assert.Equal(t, "48;5;200", colorToANSI(200, false))
	assert.Equal(t, "38;2;18;52;86", colorToANSI(0x123456, true))
}

func TestBuildANSI(t *testing.T) {
	assert.Equal(t, "\x1b[7m", buildANSI(1, 2, 0x04, true))
	assert.Empty(t, buildANSI(vt10x.DefaultFG, vt10x.DefaultBG, 0, false))
	assert.Equal(t, "\x1b[4;1;38;5;2m", buildANSI(2, vt10x.DefaultBG, 0x02|0x04, false))
}
