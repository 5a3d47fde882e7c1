package editor

import (
	"yim/internal/cursor"
	"yim/internal/search"
	"yim/internal/terminal"
)

// maxCount caps the repeat-count register. Digits typed past it are
// ignored.
const maxCount = 99999

func isCountKey(k terminal.Key, count int) bool {
	return (k >= '1' && k <= '9') || (k == '0' && count > 0)
}

func (s *Session) addCountDigit(k terminal.Key) {
	if next := s.count*10 + int(k-'0'); next <= maxCount {
		s.count = next
	}
}

func (s *Session) takeCount() (n int, given bool) {
	n, given = s.count, s.count > 0
	s.count = 0
	if n < 1 {
		n = 1
	}
	return n, given
}

func (s *Session) handleNormal(k terminal.Key) {
	if s.pending == 'd' {
		s.pending = 0
		n := s.opCount
		if isCountKey(k, s.count) {
			s.addCountDigit(k)
			s.pending = 'd'
			return
		}
		if c, _ := s.takeCount(); c > 1 {
			n = min(n*c, maxCount)
		}
		s.deleteOperator(k, n)
		return
	}
	if isCountKey(k, s.count) {
		s.addCountDigit(k)
		return
	}
	if k != 'n' && k != 'N' {
		s.reg.Unfocus()
	}
	n, given := s.takeCount()

	switch k {
	case 'h', terminal.ArrowLeft, terminal.KeyBackspace, terminal.KeyCtrlH:
		s.cur.Move(s.buf, cursor.Left, n)
	case 'l', terminal.ArrowRight, ' ':
		s.cur.Move(s.buf, cursor.Right, n)
	case 'j', terminal.ArrowDown:
		s.cur.Move(s.buf, cursor.Down, n)
	case 'k', terminal.ArrowUp:
		s.cur.Move(s.buf, cursor.Up, n)
	case '0', terminal.HomeKey:
		s.cur.Move(s.buf, cursor.LineBegin, 1)
	case '$', terminal.EndKey:
		s.cur.Move(s.buf, cursor.LineEnd, 1)
	case terminal.KeyCtrlD:
		s.cur.Move(s.buf, cursor.Down, s.cfg.ScrollStep*n)
	case terminal.KeyCtrlU:
		s.cur.Move(s.buf, cursor.Up, s.cfg.ScrollStep*n)
	case terminal.PageDown:
		s.cur.Move(s.buf, cursor.Down, s.cur.Rows()*n)
	case terminal.PageUp:
		s.cur.Move(s.buf, cursor.Up, s.cur.Rows()*n)
	case 'G':
		if given {
			s.gotoLine(n)
		} else {
			s.gotoLine(s.buf.RowCount())
		}
	case terminal.KeyEnter:
		if given {
			s.gotoLine(n)
		} else {
			s.cur.Move(s.buf, cursor.Down, 1)
		}
	case 'i':
		s.setMode(Insert)
	case 'a':
		s.setMode(Insert)
		if s.buf.RowLen(s.cur.Row()) > 0 {
			s.cur.Place(s.buf, s.cur.Row(), s.cur.Col()+1)
		}
	case 'A':
		s.setMode(Insert)
		s.cur.Move(s.buf, cursor.LineEnd, 1)
	case 'I':
		s.setMode(Insert)
		s.cur.Move(s.buf, cursor.LineBegin, 1)
	case 'x', terminal.DelKey:
		s.deleteChars(n)
	case 'd':
		s.pending = 'd'
		s.opCount = n
	case ':':
		s.openPrompt(promptCommand)
	case '/':
		s.openPrompt(promptSearch)
	case 'n':
		s.cycleMatch(1, n)
	case 'N':
		s.cycleMatch(-1, n)
	}
}

// gotoLine moves to the 1-based line n, clamped to the document.
func (s *Session) gotoLine(n int) {
	s.cur.Place(s.buf, n-1, 0)
}

func (s *Session) cycleMatch(dir, n int) {
	if s.reg.Len() == 0 {
		if s.reg.Query() != "" {
			s.setStatus("Pattern not found: %s", s.reg.Query())
		}
		return
	}
	for i := 0; i < n; i++ {
		s.reg.Cycle(dir)
	}
	s.focusMatch()
}

// focusMatch puts the edit cursor on the active match and reports its
// index.
func (s *Session) focusMatch() {
	rg, ok := s.reg.Active()
	if !ok {
		return
	}
	row, col := search.Position(s.buf, rg)
	s.cur.Place(s.buf, row, col)
	s.setStatus("/%s [%d/%d]", s.reg.Query(), s.reg.Current()+1, s.reg.Len())
}
