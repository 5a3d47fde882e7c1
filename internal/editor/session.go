// Package editor is the modal edit session: it owns the document, the
// cursor and the search registry, and turns keys into edits.
package editor

import (
	"fmt"
	"log"
	"time"

	"yim/internal/buffer"
	"yim/internal/config"
	"yim/internal/cursor"
	"yim/internal/render"
	"yim/internal/search"
	"yim/internal/terminal"
)

// barRows is the number of screen rows taken by the status and message bars.
const barRows = 2

type Mode int

const (
	Normal Mode = iota
	Insert
)

func (m Mode) String() string {
	if m == Insert {
		return "INSERT"
	}
	return "NORMAL"
}

// Terminal is what Run needs from the terminal: keys in, geometry.
// Frames go through the renderer.
type Terminal interface {
	ReadKey() (terminal.Key, error)
	Size() (rows, cols int, err error)
}

type Session struct {
	buf *buffer.Buffer
	cur *cursor.Cursor
	reg search.Registry
	cfg config.Config

	mode    Mode
	dirty   bool
	path    string
	msg     string
	msgTime time.Time

	prompt     promptKind
	input      []byte
	lastSearch string

	// Normal mode registers.
	count   int
	pending terminal.Key
	opCount int

	lineNumbers bool
	quit        bool
	sizeErr     bool

	now func() time.Time
}

func New(cfg config.Config) *Session {
	s := &Session{
		buf:         buffer.New(),
		cur:         cursor.New(24-barRows, 80),
		cfg:         cfg,
		lineNumbers: cfg.LineNumbers,
		now:         time.Now,
	}
	s.msgTime = s.now()
	return s
}

func (s *Session) Buffer() *buffer.Buffer   { return s.buf }
func (s *Session) Cursor() *cursor.Cursor   { return s.cur }
func (s *Session) Search() *search.Registry { return &s.reg }
func (s *Session) Mode() Mode               { return s.mode }
func (s *Session) Dirty() bool              { return s.dirty }
func (s *Session) Path() string             { return s.path }
func (s *Session) Message() string          { return s.msg }
func (s *Session) LineNumbers() bool        { return s.lineNumbers }

// SetClock replaces the time source used for message timestamps.
func (s *Session) SetClock(f func() time.Time) { s.now = f }

func (s *Session) setStatus(format string, args ...any) {
	s.msg = fmt.Sprintf(format, args...)
	s.msgTime = s.now()
}

// Resize applies the terminal geometry; the bars are subtracted here.
func (s *Session) Resize(rows, cols int) {
	s.cur.Resize(rows-barRows, cols)
}

// HandleKey runs one keystroke through the current mode and reports
// whether the session asked to quit.
func (s *Session) HandleKey(k terminal.Key) bool {
	switch {
	case s.prompt != promptNone:
		s.handlePrompt(k)
	case s.mode == Insert:
		s.handleInsert(k)
	default:
		s.handleNormal(k)
	}
	return s.quit
}

// Frame snapshots the session for the renderer.
func (s *Session) Frame() render.Frame {
	return render.Frame{
		Buffer:      s.buf,
		Cursor:      s.cur,
		Search:      &s.reg,
		Mode:        s.mode.String(),
		Normal:      s.mode == Normal,
		Filename:    s.path,
		Dirty:       s.dirty,
		Message:     s.msg,
		MessageTime: s.msgTime,
		Now:         s.now(),
		Prompt:      s.promptLine(),
		LineNumbers: s.lineNumbers,
	}
}

// Run is the edit loop: size, draw, read one key, dispatch. It returns nil
// once a quit command ran.
func (s *Session) Run(t Terminal, r *render.Renderer) error {
	for {
		rows, cols, err := t.Size()
		if err != nil && !s.sizeErr {
			log.Printf("[session] window size unavailable, using %dx%d: %v", rows, cols, err)
			s.sizeErr = true
		}
		s.Resize(rows, cols)
		if err := r.Render(s.Frame()); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		k, err := t.ReadKey()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		if s.HandleKey(k) {
			log.Printf("[session] quit")
			return nil
		}
	}
}

func (s *Session) setMode(m Mode) {
	if s.mode == m {
		return
	}
	log.Printf("[session] mode %s -> %s", s.mode, m)
	s.mode = m
	s.cur.SetPastEnd(m == Insert)
	s.cur.Clamp(s.buf)
}

// edited runs after every mutation that changed the content.
func (s *Session) edited() {
	s.buf.Reindex()
	s.dirty = true
	s.reg.Refresh(s.buf)
}

// offset is the byte offset under the cursor.
func (s *Session) offset() int {
	return s.cur.Offset(s.buf)
}
