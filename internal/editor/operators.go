package editor

import (
	"yim/internal/terminal"
)

// deleteOperator completes a pending d with its motion key. n is the
// repeat count.
func (s *Session) deleteOperator(k terminal.Key, n int) {
	row := s.cur.Row()
	last := s.buf.RowCount() - 1
	switch k {
	case 'd':
		s.deleteRows(row, n)
	case 'j', terminal.ArrowDown:
		if row == last {
			return
		}
		s.deleteRows(row, n+1)
	case 'k', terminal.ArrowUp:
		if row == 0 {
			return
		}
		first := 0
		if n < row {
			first = row - n
		}
		s.deleteRows(first, row-first+1)
	case 'h', terminal.ArrowLeft:
		s.deleteBefore(n)
	case 'l', terminal.ArrowRight:
		s.deleteChars(n)
	case terminal.KeyEsc:
	default:
		if c, ok := k.Byte(); ok && c >= 32 && c < 127 {
			s.setStatus("Not a delete motion: d%c", c)
		}
	}
}

// deleteRows removes count rows starting at first together with one
// separating newline: the one after the block, or before it when the block
// reaches the end of the document.
func (s *Session) deleteRows(first, count int) {
	last := s.buf.RowCount() - 1
	if count < 1 || first < 0 || first > last {
		return
	}
	end := last
	if count-1 < last-first {
		end = first + count - 1
	}
	start, _ := s.buf.RowBounds(first)
	_, stop := s.buf.RowBounds(end)
	if end < last {
		stop++
	} else if first > 0 {
		start--
	}
	if s.buf.RemoveRange(start, stop) == 0 {
		return
	}
	s.edited()
	s.cur.Place(s.buf, first, 0)
}

// deleteChars removes up to n bytes from the cursor to the end of the row.
func (s *Session) deleteChars(n int) {
	if n < 1 {
		return
	}
	off := s.offset()
	_, end := s.buf.RowBounds(s.cur.Row())
	stop := end
	if n < end-off {
		stop = off + n
	}
	if s.buf.RemoveRange(off, stop) == 0 {
		return
	}
	s.edited()
	s.cur.Clamp(s.buf)
}

// deleteBefore removes up to n bytes left of the cursor on the same row.
func (s *Session) deleteBefore(n int) {
	col := s.cur.Col()
	n = min(n, col)
	if n < 1 {
		return
	}
	off := s.offset()
	if s.buf.RemoveRange(off-n, off) == 0 {
		return
	}
	s.edited()
	s.cur.Place(s.buf, s.cur.Row(), col-n)
}
