// Package render composes a full editor frame from the session state and
// writes it to the terminal in one write.
package render

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"yim/internal/buffer"
	"yim/internal/cursor"
	"yim/internal/search"
)

const (
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
	homeCursor = "\x1b[H"
	clearLine  = "\x1b[K"
	crlf       = "\r\n"
)

// Frame is everything one frame is drawn from.
type Frame struct {
	Buffer *buffer.Buffer
	Cursor *cursor.Cursor
	Search *search.Registry

	Mode        string
	Normal      bool
	Filename    string
	Dirty       bool
	Message     string
	MessageTime time.Time
	Now         time.Time
	// Prompt is the input line of an active sub-mode, e.g. ":w" or "/foo".
	Prompt      string
	LineNumbers bool
}

type Options struct {
	TimeFormat     string
	MessageTimeout time.Duration
}

type Renderer struct {
	out    io.Writer
	theme  Theme
	opts   Options
	ab     bytes.Buffer
	numBuf [32]byte
}

func New(out io.Writer, theme Theme, opts Options) *Renderer {
	if theme == nil {
		theme = Plain{}
	}
	if opts.TimeFormat == "" {
		opts.TimeFormat = time.TimeOnly
	}
	return &Renderer{out: out, theme: theme, opts: opts}
}

// Render draws f and flushes it. The scratch buffer is reused across frames.
func (r *Renderer) Render(f Frame) error {
	defer r.ab.Reset()
	r.compose(f)
	_, err := r.out.Write(r.ab.Bytes())
	return err
}

func (r *Renderer) compose(f Frame) {
	c := f.Cursor
	c.SetGutter(gutterWidth(f))
	c.Scroll()

	r.ab.WriteString(hideCursor)
	r.ab.WriteString(homeCursor)
	r.drawRows(f)
	r.drawStatusBar(f)
	r.drawMessageBar(f)

	row, col := r.cursorPosition(f)
	r.writeCursorPos(row, col)
	r.ab.WriteString(showCursor)
}

func gutterWidth(f Frame) int {
	if !f.LineNumbers {
		return 0
	}
	return len(strconv.Itoa(f.Buffer.RowCount())) + 1
}

func (r *Renderer) drawRows(f Frame) {
	b, c := f.Buffer, f.Cursor
	gutter := c.Gutter()
	text := c.TextCols()
	for y := 0; y < c.Rows(); y++ {
		fr := y + c.RowOffset()
		if fr >= b.RowCount() {
			r.ab.WriteString(r.theme.Paint(StyleFiller, "~"))
		} else {
			if gutter > 0 {
				num := strconv.AppendInt(r.numBuf[:0], int64(fr+1), 10)
				label := strings.Repeat(" ", max(0, gutter-1-len(num))) + string(num) + " "
				r.ab.WriteString(r.theme.Paint(StyleGutter, label))
			}
			start, end := b.RowBounds(fr)
			from := min(start+c.ColOffset(), end)
			to := min(end, from+text)
			pos := from
			if f.Search != nil {
				for _, m := range f.Search.Within(from, to) {
					r.writeSafe(b.Slice(pos, m.Start))
					r.ab.WriteString(r.theme.Paint(StyleMatch, safeString(b.Slice(m.Start, m.End))))
					pos = m.End
				}
			}
			r.writeSafe(b.Slice(pos, to))
		}
		r.ab.WriteString(clearLine)
		r.ab.WriteString(crlf)
	}
}

func (r *Renderer) drawStatusBar(f Frame) {
	cols := f.Cursor.Cols()
	name := f.Filename
	if name == "" {
		name = "[No Name]"
	}
	left := "[--" + f.Mode + "--] " + safeString([]byte(name))
	if f.Dirty {
		left += " (modified)"
	}
	right := " [" + strconv.Itoa(f.Cursor.Row()+1) + "/" + strconv.Itoa(f.Buffer.RowCount()) + "] " +
		f.MessageTime.Format(r.opts.TimeFormat)

	left = ansi.Truncate(left, cols, "")
	budget := cols - ansi.StringWidth(left)
	var bar strings.Builder
	bar.WriteString(left)
	if budget > 0 {
		if runewidth.StringWidth(right) <= budget {
			bar.WriteString(runewidth.FillLeft(right, budget))
		} else {
			bar.WriteString(strings.Repeat(" ", budget))
		}
	}
	r.ab.WriteString(r.theme.Paint(StyleStatusBar, bar.String()))
	r.ab.WriteString(crlf)
}

func (r *Renderer) drawMessageBar(f Frame) {
	r.ab.WriteString(clearLine)
	cols := f.Cursor.Cols()
	if f.Prompt != "" {
		r.ab.WriteString(runewidth.Truncate(safeString([]byte(f.Prompt)), cols, ""))
		return
	}
	if f.Message == "" {
		return
	}
	if t := r.opts.MessageTimeout; t > 0 && f.Now.Sub(f.MessageTime) >= t {
		return
	}
	r.ab.WriteString(runewidth.Truncate(safeString([]byte(f.Message)), cols, ""))
}

// cursorPosition returns the 1-based terminal position for the cursor.
func (r *Renderer) cursorPosition(f Frame) (int, int) {
	c := f.Cursor
	if f.Prompt != "" {
		w := min(runewidth.StringWidth(f.Prompt), c.Cols()-1)
		return c.Rows() + 2, w + 1
	}
	if f.Normal && f.Search != nil && f.Search.Focused() {
		if m, ok := f.Search.Active(); ok {
			row, col := search.Position(f.Buffer, m)
			sr := clampInt(row-c.RowOffset(), 0, c.Rows()-1)
			sc := clampInt(col-c.ColOffset()+c.Gutter(), 0, c.Cols()-1)
			return sr + 1, sc + 1
		}
	}
	return c.ScreenRow() + 1, c.ScreenCol() + 1
}

func (r *Renderer) writeCursorPos(row, col int) {
	r.ab.WriteString("\x1b[")
	r.ab.Write(strconv.AppendInt(r.numBuf[:0], int64(row), 10))
	r.ab.WriteByte(';')
	r.ab.Write(strconv.AppendInt(r.numBuf[:0], int64(col), 10))
	r.ab.WriteByte('H')
}

func (r *Renderer) writeSafe(p []byte) {
	for _, c := range p {
		r.ab.WriteByte(safeTermByte(c))
	}
}

// safeTermByte keeps one byte per column: tabs become a space, other
// control bytes a '?'.
func safeTermByte(c byte) byte {
	if c == '\t' {
		return ' '
	}
	if c < 0x20 || c == 0x7f {
		return '?'
	}
	return c
}

func safeString(p []byte) string {
	out := make([]byte, len(p))
	for i, c := range p {
		out[i] = safeTermByte(c)
	}
	return string(out)
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
