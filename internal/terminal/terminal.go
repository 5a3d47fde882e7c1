// Package terminal binds the editor to a POSIX terminal: raw mode, key
// input one byte at a time, and window geometry.
package terminal

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const (
	enterSeq = "\x1b[?1049h\x1b[2J\x1b[H"
	leaveSeq = "\x1b[?1049l\x1b[?25h"
	probeSeq = "\x1b[999C\x1b[999B\x1b[6n"
)

var (
	ErrNotTerminal = errors.New("not a terminal")
	ErrInterrupted = errors.New("interrupted")
)

type Terminal struct {
	Reader
	in, out    *os.File
	orig       unix.Termios
	raw        bool
	rows, cols int
	stop       atomic.Bool
}

func New(in, out *os.File) *Terminal {
	t := &Terminal{
		in:   in,
		out:  out,
		rows: 24,
		cols: 80,
	}
	t.Reader = Reader{src: stopSource{src: fdSource{fd: int(in.Fd())}, stop: &t.stop}}
	return t
}

// Interrupt makes the current and every later ReadKey fail with
// ErrInterrupted once buffered keys are consumed. It is the only method
// safe to call from another goroutine.
func (t *Terminal) Interrupt() { t.stop.Store(true) }

type stopSource struct {
	src  source
	stop *atomic.Bool
}

func (s stopSource) poll() (byte, bool, error) {
	if s.stop.Load() {
		return 0, false, ErrInterrupted
	}
	return s.src.poll()
}

func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// EnableRawMode switches the input side to byte-at-a-time reads with a
// 100ms poll and enters the alternate screen. Restore undoes both.
func (t *Terminal) EnableRawMode() error {
	if t.raw {
		return nil
	}
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}
	orig, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return fmt.Errorf("get termios: %w", err)
	}
	t.orig = *orig
	raw := *orig
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1
	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, &raw); err != nil {
		return fmt.Errorf("set termios: %w", err)
	}
	t.raw = true
	_, _ = t.out.WriteString(enterSeq)
	return nil
}

// Restore is safe to call more than once and on every exit path.
func (t *Terminal) Restore() error {
	if !t.raw {
		return nil
	}
	_, _ = t.out.WriteString(leaveSeq)
	t.raw = false
	if err := unix.IoctlSetTermios(int(t.in.Fd()), ioctlWriteTermios, &t.orig); err != nil {
		return fmt.Errorf("restore termios: %w", err)
	}
	return nil
}

func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Size reports the terminal geometry. When neither the size ioctl nor the
// cursor-position probe works it returns the last known size together with
// the error.
func (t *Terminal) Size() (rows, cols int, err error) {
	c, r, err := term.GetSize(int(t.out.Fd()))
	if err == nil && r > 0 && c > 0 {
		t.rows, t.cols = r, c
		return r, c, nil
	}
	if !t.raw {
		return t.rows, t.cols, fmt.Errorf("window size: %w", errors.Join(err, ErrNotTerminal))
	}
	r, c, perr := t.probeSize()
	if perr != nil {
		return t.rows, t.cols, fmt.Errorf("window size: %w", perr)
	}
	t.rows, t.cols = r, c
	return r, c, nil
}

// probeSize moves the cursor to the far corner and asks the terminal where
// it ended up.
func (t *Terminal) probeSize() (int, int, error) {
	if _, err := t.out.WriteString(probeSeq); err != nil {
		return 0, 0, err
	}
	// The report is read from the source directly so keys already queued in
	// pending stay queued.
	var buf []byte
	for len(buf) < 32 {
		c, ok, err := t.src.poll()
		if err != nil {
			return 0, 0, err
		}
		if !ok {
			break
		}
		buf = append(buf, c)
		if c == 'R' {
			break
		}
	}
	return parseCursorReport(buf)
}

// parseCursorReport parses "ESC [ rows ; cols R".
func parseCursorReport(p []byte) (int, int, error) {
	s := string(p)
	if !strings.HasPrefix(s, "\x1b[") || !strings.HasSuffix(s, "R") {
		return 0, 0, fmt.Errorf("malformed cursor report %q", s)
	}
	rs, cs, ok := strings.Cut(s[2:len(s)-1], ";")
	if !ok {
		return 0, 0, fmt.Errorf("malformed cursor report %q", s)
	}
	rows, err := strconv.Atoi(rs)
	if err != nil {
		return 0, 0, fmt.Errorf("cursor report rows: %w", err)
	}
	cols, err := strconv.Atoi(cs)
	if err != nil {
		return 0, 0, fmt.Errorf("cursor report cols: %w", err)
	}
	if rows <= 0 || cols <= 0 {
		return 0, 0, fmt.Errorf("cursor report out of range %q", s)
	}
	return rows, cols, nil
}
