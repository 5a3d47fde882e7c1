package editor

import (
	"log"

	"yim/internal/terminal"
)

// promptKind is the sub-state reading a line on the message bar. Both kinds
// are entered from Normal mode and return to it.
type promptKind int

const (
	promptNone promptKind = iota
	promptCommand
	promptSearch
)

func (p promptKind) leader() string {
	switch p {
	case promptCommand:
		return ":"
	case promptSearch:
		return "/"
	}
	return ""
}

// Prompting reports whether a command or search line is being typed.
func (s *Session) Prompting() bool { return s.prompt != promptNone }

func (s *Session) promptLine() string {
	if s.prompt == promptNone {
		return ""
	}
	return s.prompt.leader() + string(s.input)
}

func (s *Session) openPrompt(p promptKind) {
	s.prompt = p
	s.input = s.input[:0]
	if p == promptSearch {
		s.lastSearch = s.reg.Query()
	}
}

func (s *Session) closePrompt() string {
	line := string(s.input)
	s.prompt = promptNone
	s.input = s.input[:0]
	return line
}

func (s *Session) handlePrompt(k terminal.Key) {
	kind := s.prompt
	switch k {
	case terminal.KeyEsc:
		s.closePrompt()
		return
	case terminal.KeyEnter:
		line := s.closePrompt()
		if kind == promptCommand {
			s.execute(line)
		} else {
			s.commitSearch(line)
		}
		return
	case terminal.KeyBackspace, terminal.KeyCtrlH, terminal.DelKey:
		if len(s.input) > 0 {
			s.input = s.input[:len(s.input)-1]
		}
	default:
		c, ok := k.Byte()
		if !ok || c < 32 || c == 127 {
			return
		}
		s.input = append(s.input, c)
	}
	if kind == promptSearch {
		s.reg.Search(s.buf, string(s.input))
	}
}

// commitSearch runs query and jumps to the first match at or after the
// cursor. An empty query repeats the previous search.
func (s *Session) commitSearch(query string) {
	if query == "" {
		query = s.lastSearch
	}
	if query == "" {
		s.reg.Clear()
		return
	}
	ranges := s.reg.Search(s.buf, query)
	if len(ranges) == 0 {
		log.Printf("[session] search %q: no match", query)
		s.setStatus("Pattern not found: %s", query)
		return
	}
	s.reg.SelectFrom(s.offset())
	s.focusMatch()
}
