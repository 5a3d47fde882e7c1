package terminal

import (
	"errors"

	"golang.org/x/sys/unix"
)

// source yields input one byte at a time. ok is false when nothing arrived
// within one poll interval (VTIME in raw mode).
type source interface {
	poll() (c byte, ok bool, err error)
}

type fdSource struct{ fd int }

func (s fdSource) poll() (byte, bool, error) {
	var b [1]byte
	n, err := unix.Read(s.fd, b[:])
	if err != nil {
		if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
			return 0, false, nil
		}
		return 0, false, err
	}
	if n == 0 {
		return 0, false, nil
	}
	return b[0], true, nil
}

// Reader decodes keys from a byte source. A byte read while looking for an
// escape sequence that turns out not to belong to one is kept for the next
// call.
type Reader struct {
	src     source
	pending []byte
}

func (r *Reader) next(wait bool) (byte, bool, error) {
	if len(r.pending) > 0 {
		c := r.pending[0]
		r.pending = r.pending[1:]
		return c, true, nil
	}
	for {
		c, ok, err := r.src.poll()
		if err != nil || ok || !wait {
			return c, ok, err
		}
	}
}

func (r *Reader) unread(c byte) {
	r.pending = append(r.pending, c)
}

// ReadKey blocks until one key is available.
func (r *Reader) ReadKey() (Key, error) {
	c, _, err := r.next(true)
	if err != nil {
		return 0, err
	}
	if c != byte(KeyEsc) {
		return Key(c), nil
	}
	// A lone Esc must stay responsive, so only one poll is spent on the rest.
	b, ok, err := r.next(false)
	if err != nil || !ok {
		return KeyEsc, nil
	}
	switch b {
	case '[':
		return r.csi(), nil
	case 'O':
		n, ok, err := r.next(false)
		if err != nil || !ok {
			r.unread(b)
			return KeyEsc, nil
		}
		switch n {
		case 'H':
			return HomeKey, nil
		case 'F':
			return EndKey, nil
		}
		return KeyEsc, nil
	}
	r.unread(b)
	return KeyEsc, nil
}

func (r *Reader) csi() Key {
	var seq [16]byte
	n := 0
	for n < len(seq) {
		c, ok, err := r.next(false)
		if err != nil || !ok {
			break
		}
		seq[n] = c
		n++
		if c == '~' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
			break
		}
	}
	if n == 0 {
		r.unread('[')
		return KeyEsc
	}
	s := seq[:n]
	if s[n-1] == '~' {
		switch s[0] {
		case '1', '7':
			return HomeKey
		case '3':
			return DelKey
		case '4', '8':
			return EndKey
		case '5':
			return PageUp
		case '6':
			return PageDown
		}
		return KeyEsc
	}
	switch s[n-1] {
	case 'A':
		return ArrowUp
	case 'B':
		return ArrowDown
	case 'C':
		return ArrowRight
	case 'D':
		return ArrowLeft
	case 'H':
		return HomeKey
	case 'F':
		return EndKey
	}
	return KeyEsc
}
