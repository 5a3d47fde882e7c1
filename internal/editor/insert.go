package editor

import (
	"yim/internal/cursor"
	"yim/internal/terminal"
)

func (s *Session) handleInsert(k terminal.Key) {
	switch k {
	case terminal.KeyEsc:
		row, col := s.cur.Row(), s.cur.Col()
		s.setMode(Normal)
		s.cur.Place(s.buf, row, max(0, col-1))
	case terminal.KeyEnter:
		s.insertNewline()
	case terminal.KeyBackspace, terminal.KeyCtrlH:
		s.backspace()
	case terminal.DelKey:
		if s.buf.RemoveAt(s.offset()) {
			s.edited()
			s.cur.Clamp(s.buf)
		}
	case terminal.ArrowLeft:
		s.cur.Move(s.buf, cursor.Left, 1)
	case terminal.ArrowRight:
		s.cur.Move(s.buf, cursor.Right, 1)
	case terminal.ArrowUp:
		s.cur.Move(s.buf, cursor.Up, 1)
	case terminal.ArrowDown:
		s.cur.Move(s.buf, cursor.Down, 1)
	case terminal.HomeKey:
		s.cur.Move(s.buf, cursor.LineBegin, 1)
	case terminal.EndKey:
		s.cur.Move(s.buf, cursor.LineEnd, 1)
	default:
		if c, ok := k.Byte(); ok && k.Printable() {
			s.insertByte(c)
		}
	}
}

func (s *Session) insertByte(c byte) {
	if !s.buf.InsertAt(s.offset(), c) {
		return
	}
	s.edited()
	s.cur.Place(s.buf, s.cur.Row(), s.cur.Col()+1)
}

func (s *Session) insertNewline() {
	if !s.buf.InsertAt(s.offset(), '\n') {
		return
	}
	s.edited()
	s.cur.Place(s.buf, s.cur.Row()+1, 0)
}

// backspace removes the byte before the cursor. At column 0 that is the
// previous row's newline, so the rows merge.
func (s *Session) backspace() {
	off := s.offset()
	if off == 0 {
		return
	}
	row, col := s.cur.Row(), s.cur.Col()
	prevLen := 0
	if col == 0 {
		prevLen = s.buf.RowLen(row - 1)
	}
	if !s.buf.RemoveAt(off - 1) {
		return
	}
	s.edited()
	if col > 0 {
		s.cur.Place(s.buf, row, col-1)
	} else {
		s.cur.Place(s.buf, row-1, prevLen)
	}
}
