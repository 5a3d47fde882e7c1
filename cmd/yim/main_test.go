package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/creack/pty"
)

func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
}

func TestParseArgs(t *testing.T) {
	cases := []struct {
		args []string
		want cliArgs
	}{
		{nil, cliArgs{}},
		{[]string{"notes.txt"}, cliArgs{path: "notes.txt"}},
		{[]string{"--", "-odd-name"}, cliArgs{path: "-odd-name"}},
		{[]string{"-V"}, cliArgs{version: true}},
		{[]string{"--help"}, cliArgs{help: true}},
		{[]string{"-"}, cliArgs{path: "-"}},
	}
	for _, tc := range cases {
		got, err := parseArgs(tc.args)
		if err != nil {
			t.Fatalf("parseArgs(%q): %v", tc.args, err)
		}
		if got != tc.want {
			t.Fatalf("parseArgs(%q) = %+v, want %+v", tc.args, got, tc.want)
		}
	}
	for _, bad := range [][]string{{"-x"}, {"a", "b"}, {"a", "--", "b"}, {"--", "a", "b"}} {
		if _, err := parseArgs(bad); !errors.Is(err, errUsage) {
			t.Fatalf("parseArgs(%q) should fail with a usage error, got %v", bad, err)
		}
	}
}

func tempOut(t *testing.T) *os.File {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func readBack(t *testing.T, f *os.File) string {
	t.Helper()
	data, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestRunVersion(t *testing.T) {
	out := tempOut(t)
	if code := run([]string{"--version"}, os.Stdin, out, io.Discard); code != 0 {
		t.Fatalf("exit code %d", code)
	}
	if got := readBack(t, out); got != "yim "+Version+"\n" {
		t.Fatalf("version output %q", got)
	}
}

func TestRunUnknownOption(t *testing.T) {
	var stderr bytes.Buffer
	if code := run([]string{"--frobnicate"}, os.Stdin, tempOut(t), &stderr); code != 2 {
		t.Fatalf("exit code %d, want 2", code)
	}
	if !strings.Contains(stderr.String(), "unknown option --frobnicate") {
		t.Fatalf("stderr %q", stderr.String())
	}
}

func TestRunRequiresTTY(t *testing.T) {
	isolateHome(t)
	in := tempOut(t)
	var stderr bytes.Buffer
	if code := run(nil, in, tempOut(t), &stderr); code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "requires a TTY on stdin") {
		t.Fatalf("stderr %q", stderr.String())
	}
	if _, err := os.Stat(filepath.Join(os.Getenv("XDG_STATE_HOME"), "yim", "debug.log")); err != nil {
		t.Fatalf("debug log not created: %v", err)
	}
}

// sendKeys writes keys to the pty master, expanding <ESC> and <CR>.
func sendKeys(t *testing.T, ptmx *os.File, keys string) {
	t.Helper()
	r := strings.NewReplacer("<ESC>", "\x1b", "<CR>", "\r", "<BS>", "\x7f")
	for _, b := range []byte(r.Replace(keys)) {
		if _, err := ptmx.Write([]byte{b}); err != nil {
			t.Fatalf("write key: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func startInPTY(t *testing.T, args ...string) (*os.File, <-chan int, *bytes.Buffer) {
	t.Helper()
	isolateHome(t)
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty not available: %v", err)
	}
	t.Cleanup(func() {
		ptmx.Close()
		tty.Close()
	})
	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: 12, Cols: 60}); err != nil {
		t.Fatal(err)
	}
	go func() { _, _ = io.Copy(io.Discard, ptmx) }()

	stderr := &bytes.Buffer{}
	done := make(chan int, 1)
	go func() { done <- run(args, tty, tty, stderr) }()
	// Let the first frame go out before typing.
	time.Sleep(100 * time.Millisecond)
	return ptmx, done, stderr
}

func waitExit(t *testing.T, done <-chan int, stderr *bytes.Buffer) int {
	t.Helper()
	select {
	case code := <-done:
		return code
	case <-time.After(5 * time.Second):
		t.Fatalf("editor did not exit; stderr %q", stderr.String())
	}
	return -1
}

func TestEditSaveQuitInPTY(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	ptmx, done, stderr := startInPTY(t, path)
	sendKeys(t, ptmx, "ihello<CR>world<ESC>")
	time.Sleep(200 * time.Millisecond)
	sendKeys(t, ptmx, ":wq<CR>")
	if code := waitExit(t, done, stderr); code != 0 {
		t.Fatalf("exit code %d; stderr %q", code, stderr.String())
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello\nworld" {
		t.Fatalf("file = %q", got)
	}
}

func TestDirtyQuitNeedsBangInPTY(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("foo\nbar\nbaz"), 0o644); err != nil {
		t.Fatal(err)
	}
	ptmx, done, stderr := startInPTY(t, path)
	sendKeys(t, ptmx, "jdd:q<CR>")
	select {
	case code := <-done:
		t.Fatalf(":q on a dirty buffer exited with %d", code)
	case <-time.After(300 * time.Millisecond):
	}
	sendKeys(t, ptmx, ":w<CR>:q<CR>")
	if code := waitExit(t, done, stderr); code != 0 {
		t.Fatalf("exit code %d; stderr %q", code, stderr.String())
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "foo\nbaz" {
		t.Fatalf("file = %q", got)
	}
}

func TestRunHelp(t *testing.T) {
	out := tempOut(t)
	if code := run([]string{"-h"}, os.Stdin, out, io.Discard); code != 0 {
		t.Fatalf("exit code %d", code)
	}
	if got := readBack(t, out); !strings.Contains(got, "creating it if it does not exist") {
		t.Fatalf("help output %q", got)
	}
}

func TestHangupRestoresAndExits(t *testing.T) {
	_, done, stderr := startInPTY(t)
	if err := syscall.Kill(os.Getpid(), syscall.SIGHUP); err != nil {
		t.Fatal(err)
	}
	if code := waitExit(t, done, stderr); code != 1 {
		t.Fatalf("exit code %d, want 1; stderr %q", code, stderr.String())
	}
	data, err := os.ReadFile(filepath.Join(os.Getenv("XDG_STATE_HOME"), "yim", "debug.log"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hangup, shutting down") {
		t.Fatalf("debug log missing shutdown line: %q", data)
	}
}
