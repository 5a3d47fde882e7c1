package terminal

import (
	"io"
	"testing"
)

// chunkSource delivers each chunk back to back, then reports one empty
// poll before the next chunk, like a raw-mode read timing out.
type chunkSource struct {
	chunks []string
	pos    int
	gap    bool
}

func (s *chunkSource) poll() (byte, bool, error) {
	for len(s.chunks) > 0 {
		if s.gap {
			s.gap = false
			return 0, false, nil
		}
		cur := s.chunks[0]
		if s.pos < len(cur) {
			c := cur[s.pos]
			s.pos++
			return c, true, nil
		}
		s.chunks = s.chunks[1:]
		s.pos = 0
		s.gap = true
	}
	return 0, false, io.EOF
}

func readAll(t *testing.T, chunks ...string) []Key {
	t.Helper()
	r := &Reader{src: &chunkSource{chunks: chunks}}
	var out []Key
	for {
		k, err := r.ReadKey()
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadKey: %v", err)
		}
		out = append(out, k)
	}
}

func keysEqual(a, b []Key) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestReadKeyPlainBytes(t *testing.T) {
	got := readAll(t, "ab\r")
	if !keysEqual(got, []Key{'a', 'b', KeyEnter}) {
		t.Fatalf("got %v", got)
	}
}

func TestReadKeyDecodesSequences(t *testing.T) {
	got := readAll(t, "\x1b[A", "\x1b[B", "\x1b[C", "\x1b[D", "\x1b[3~", "\x1b[5~", "\x1b[6~", "\x1b[H", "\x1bOF", "\x1b[1~")
	want := []Key{ArrowUp, ArrowDown, ArrowRight, ArrowLeft, DelKey, PageUp, PageDown, HomeKey, EndKey, HomeKey}
	if !keysEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestReadKeyLoneEscape(t *testing.T) {
	got := readAll(t, "\x1b", "i")
	if !keysEqual(got, []Key{KeyEsc, 'i'}) {
		t.Fatalf("got %v", got)
	}
}

func TestReadKeyEscapeFollowedByCommandKeepsByte(t *testing.T) {
	got := readAll(t, "\x1b:q")
	if !keysEqual(got, []Key{KeyEsc, ':', 'q'}) {
		t.Fatalf("got %v", got)
	}
}

func TestReadKeyBareCSIKeepsBracket(t *testing.T) {
	got := readAll(t, "\x1b[", "x")
	if !keysEqual(got, []Key{KeyEsc, '[', 'x'}) {
		t.Fatalf("got %v", got)
	}
}

func TestKeyHelpers(t *testing.T) {
	if !Key('a').Printable() || !KeyTab.Printable() || KeyBackspace.Printable() || KeyEsc.Printable() || ArrowUp.Printable() {
		t.Fatalf("Printable classification broken")
	}
	if _, ok := ArrowUp.Byte(); ok {
		t.Fatalf("synthetic keys have no byte")
	}
}

func TestParseCursorReport(t *testing.T) {
	r, c, err := parseCursorReport([]byte("\x1b[42;120R"))
	if err != nil || r != 42 || c != 120 {
		t.Fatalf("got %d,%d,%v", r, c, err)
	}
	for _, bad := range []string{"", "\x1b[42R", "[1;2R", "\x1b[a;2R", "\x1b[0;0R"} {
		if _, _, err := parseCursorReport([]byte(bad)); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
