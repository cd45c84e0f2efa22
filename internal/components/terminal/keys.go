package terminal

import (
	tea "github.com/charmbracelet/bubbletea"
)

var keySequences = map[tea.KeyType]string{
	tea.KeyUp:       "\x1b[A",
	tea.KeyDown:     "\x1b[B",
	tea.KeyRight:    "\x1b[C",
	tea.KeyLeft:     "\x1b[D",
	tea.KeyHome:     "\x1b[H",
	tea.KeyEnd:      "\x1b[F",
	tea.KeyPgUp:     "\x1b[5~",
	tea.KeyPgDown:   "\x1b[6~",
	tea.KeyDelete:   "\x1b[3~",
	tea.KeyInsert:   "\x1b[2~",
	tea.KeyShiftTab: "\x1b[Z",
}

// keyBytes translates a key press into the bytes a terminal would send.
// It returns nil for keys with no mapping and for rune fragments of split
// escape sequences.
func keyBytes(msg tea.KeyMsg) []byte {
	var input []byte

	switch {
	case msg.Type == tea.KeyRunes:
		s := string(msg.Runes)
		if looksLikeMouseSequence(s) || looksLikeEscapeFragment(s) {
			return nil
		}
		if msg.Alt {
			for _, r := range msg.Runes {
				input = append(input, 0x1b)
				input = append(input, string(r)...)
			}
			return input
		}
		return []byte(s)

	case msg.Type == tea.KeySpace:
		input = []byte{' '}

	// control characters, including enter, tab and escape
	case msg.Type >= 0 && msg.Type < 0x20, msg.Type == tea.KeyBackspace:
		input = []byte{byte(msg.Type)}

	default:
		seq, ok := keySequences[msg.Type]
		if !ok {
			return nil
		}
		input = []byte(seq)
	}

	if msg.Alt {
		return append([]byte{0x1b}, input...)
	}
	return input
}

// looksLikeEscapeFragment reports whether s is the tail of an escape
// sequence the input reader split into runes.
func looksLikeEscapeFragment(s string) bool {
	if s == "[" || s == "<" || s == "[<" {
		return true
	}
	if len(s) > 1 && s[0] == '[' {
		for i := 1; i < len(s); i++ {
			c := s[i]
			if c != ';' && c != '<' && (c < '0' || c > '9') {
				return false
			}
		}
		return true
	}
	return false
}

// looksLikeMouseSequence reports whether s is a partial SGR mouse report
// such as "65;83;57M".
func looksLikeMouseSequence(s string) bool {
	if len(s) < 3 {
		return false
	}
	last := s[len(s)-1]
	if last != 'M' && last != 'm' {
		return false
	}
	for i := 0; i < len(s)-1; i++ {
		c := s[i]
		if c != ';' && c != '<' && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
