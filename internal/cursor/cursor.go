// Package cursor maps between document coordinates and the visible
// viewport and implements the editor's movement rules.
package cursor

type Direction int

const (
	LineBegin Direction = iota
	LineEnd
	Left
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case LineBegin:
		return "line-begin"
	case LineEnd:
		return "line-end"
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "unknown"
}

// Lines is the view of the document the cursor needs: row count and the
// byte bounds of each row.
type Lines interface {
	RowCount() int
	RowBounds(row int) (start, end int)
}

// Cursor keeps an absolute document position plus the scroll offsets that
// place it on screen. The viewport row is row-rowOffset.
type Cursor struct {
	col, row   int
	rows, cols int
	rowOffset  int
	colOffset  int
	gutter     int
	// pastEnd lets col sit one past the last byte (Insert mode append).
	pastEnd bool
}

func New(rows, cols int) *Cursor {
	c := &Cursor{}
	c.Resize(rows, cols)
	return c
}

func (c *Cursor) Col() int       { return c.col }
func (c *Cursor) Row() int       { return c.row }
func (c *Cursor) Rows() int      { return c.rows }
func (c *Cursor) Cols() int      { return c.cols }
func (c *Cursor) RowOffset() int { return c.rowOffset }
func (c *Cursor) ColOffset() int { return c.colOffset }
func (c *Cursor) Gutter() int    { return c.gutter }

// TextCols is the number of columns left for row content after the gutter.
func (c *Cursor) TextCols() int { return max(1, c.cols-c.gutter) }

// ScreenRow and ScreenCol are 0-based terminal coordinates of the cursor.
func (c *Cursor) ScreenRow() int { return c.row - c.rowOffset }
func (c *Cursor) ScreenCol() int { return c.col - c.colOffset + c.gutter }

// Resize sets the usable viewport; bars are already subtracted by the caller.
func (c *Cursor) Resize(rows, cols int) {
	c.rows = max(1, rows)
	c.cols = max(1, cols)
}

func (c *Cursor) SetGutter(w int) { c.gutter = max(0, w) }

func (c *Cursor) SetPastEnd(on bool) { c.pastEnd = on }

func (c *Cursor) PastEnd() bool { return c.pastEnd }

func (c *Cursor) Reset() {
	c.col, c.row = 0, 0
	c.rowOffset, c.colOffset = 0, 0
}

func rowLen(lines Lines, row int) int {
	start, end := lines.RowBounds(row)
	return end - start
}

func (c *Cursor) limit(n int) int {
	if c.pastEnd || n == 0 {
		return n
	}
	return n - 1
}

func (c *Cursor) clamp(lines Lines) {
	last := max(0, lines.RowCount()-1)
	if c.row > last {
		c.row = last
	}
	if c.row < 0 {
		c.row = 0
	}
	if lim := c.limit(rowLen(lines, c.row)); c.col > lim {
		c.col = lim
	}
	if c.col < 0 {
		c.col = 0
	}
}

// Move applies one movement of n steps and re-clamps the column to the row
// it lands on.
func (c *Cursor) Move(lines Lines, d Direction, n int) {
	if n < 1 {
		n = 1
	}
	last := max(0, lines.RowCount()-1)
	cur := rowLen(lines, c.row)
	switch d {
	case LineBegin:
		c.col = 0
	case LineEnd:
		c.col = cur
	case Left:
		if c.col != 0 {
			c.col = max(0, c.col-n)
		} else if c.row > 0 {
			c.Move(lines, Up, n)
			prev := rowLen(lines, c.row)
			if n > prev {
				c.col = 0
			} else {
				c.col = prev - n + 1
			}
		}
	case Right:
		if c.col+n <= cur {
			c.col += n
		} else if c.col >= cur && c.row < last {
			c.row = min(c.row+n, last)
			c.col = 0
		}
	case Up:
		if c.row >= n {
			c.row -= n
		} else {
			c.row = 0
		}
	case Down:
		if last-c.row >= n {
			c.row += n
		} else {
			c.row = last
		}
	}
	c.clamp(lines)
}

// Place puts the cursor at (row, col), clamped to the document.
func (c *Cursor) Place(lines Lines, row, col int) {
	c.row, c.col = row, col
	c.clamp(lines)
}

// Clamp re-applies the column rule, e.g. after the document shrank.
func (c *Cursor) Clamp(lines Lines) { c.clamp(lines) }

// Scroll brings the cursor back into the viewport. It runs once per frame
// before drawing.
func (c *Cursor) Scroll() {
	if c.row < c.rowOffset {
		c.rowOffset = c.row
	} else if c.row >= c.rowOffset+c.rows {
		c.rowOffset = c.row - c.rows + 1
	}
	text := c.TextCols()
	if c.col < c.colOffset {
		c.colOffset = c.col
	} else if c.col >= c.colOffset+text {
		c.colOffset = c.col - text + 1
	}
}

// Offset is the absolute byte offset under the cursor.
func (c *Cursor) Offset(lines Lines) int {
	return FileOffset(lines, c.col, c.row)
}

func FileOffset(lines Lines, col, row int) int {
	start, _ := lines.RowBounds(row)
	return start + col
}
