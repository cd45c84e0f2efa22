package viewer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/avitaltamir/swipedeck/internal/theme"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// search holds the prompt and the matches of the last submitted query.
// Matching is case-insensitive; a pattern that does not compile is matched
// literally.
type search struct {
	input textinput.Model
	open  bool

	query string
	re    *regexp.Regexp
	hits  []int // line indexes, ascending
	cur   int   // index into hits, -1 when there are none
}

func newSearch() search {
	in := textinput.New()
	in.Placeholder = "pattern"
	in.CharLimit = 256
	in.Width = 30
	return search{input: in, cur: -1}
}

func compilePattern(query string) *regexp.Regexp {
	re, err := regexp.Compile("(?i)" + query)
	if err != nil {
		return regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
	}
	return re
}

// run replaces the current matches with those of query over content.
func (s *search) run(content, query string) {
	s.query = query
	s.re = nil
	s.hits = nil
	s.cur = -1
	if query == "" {
		return
	}

	s.re = compilePattern(query)
	for i, line := range strings.Split(content, "\n") {
		if s.re.MatchString(line) {
			s.hits = append(s.hits, i)
		}
	}
	if len(s.hits) > 0 {
		s.cur = 0
	}
}

func (s *search) step(delta int) {
	n := len(s.hits)
	if n == 0 {
		return
	}
	s.cur = ((s.cur+delta)%n + n) % n
}

// line is the line index of the current match, or -1.
func (s search) line() int {
	if s.cur < 0 || s.cur >= len(s.hits) {
		return -1
	}
	return s.hits[s.cur]
}

func (s search) active() bool { return len(s.hits) > 0 }

func (s *search) close() {
	s.open = false
	s.input.Blur()
}

func (s *search) reset() {
	s.close()
	s.input.SetValue("")
	s.run("", "")
}

func (s search) hint() string {
	switch {
	case s.query == "":
		return ""
	case len(s.hits) == 0:
		return "no matches"
	default:
		return fmt.Sprintf("match %d/%d", s.cur+1, len(s.hits))
	}
}

// mark renders line with every match painted; the current match line uses
// the success colour.
func (s search) mark(line string, current bool) string {
	if s.re == nil {
		return line
	}
	spans := s.re.FindAllStringIndex(line, -1)
	if len(spans) == 0 {
		return line
	}

	bg := theme.ColorWarning
	if current {
		bg = theme.ColorSuccess
	}
	hl := lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color("0"))

	var b strings.Builder
	pos := 0
	for _, sp := range spans {
		b.WriteString(line[pos:sp[0]])
		b.WriteString(hl.Render(line[sp[0]:sp[1]]))
		pos = sp[1]
	}
	b.WriteString(line[pos:])
	return b.String()
}

func (s search) bar(width int) string {
	slash := lipgloss.NewStyle().Foreground(theme.ColorAccent).Bold(true).Render("/")
	return lipgloss.NewStyle().
		Background(theme.BgStatusBar).
		Width(width).
		Render(slash + s.input.View())
}
