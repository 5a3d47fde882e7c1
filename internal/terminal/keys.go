package terminal

// Key is an input byte, or one of the synthetic values above 255 decoded
// from an escape sequence.
type Key int

const (
	KeyCtrlD     Key = 4
	KeyCtrlH     Key = 8
	KeyTab       Key = 9
	KeyEnter     Key = 13
	KeyCtrlU     Key = 21
	KeyEsc       Key = 27
	KeyBackspace Key = 127
)

const (
	ArrowLeft Key = 1000 + iota
	ArrowRight
	ArrowUp
	ArrowDown
	DelKey
	HomeKey
	EndKey
	PageUp
	PageDown
)

// Byte reports the raw byte behind k, if k is one.
func (k Key) Byte() (byte, bool) {
	if k < 0 || k > 255 {
		return 0, false
	}
	return byte(k), true
}

// Printable reports whether k inserts itself in Insert mode.
func (k Key) Printable() bool {
	return k == KeyTab || (k >= 32 && k <= 255 && k != KeyBackspace)
}
