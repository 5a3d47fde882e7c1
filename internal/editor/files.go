package editor

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Open associates the session with path and loads its bytes, creating the
// file when it does not exist. On failure the session keeps its state and
// the error is also shown on the message bar.
func (s *Session) Open(path string) error {
	name, err := normalizeFilename(path)
	if err != nil {
		s.setStatus("Can't resolve path: %s", ioErrText(err))
		return err
	}
	data, created, err := readOrCreate(name)
	if err != nil {
		log.Printf("[session] open %s: %v", name, err)
		s.setStatus("Can't open file: %s", ioErrText(err))
		return err
	}
	s.buf.Reset(data)
	s.path = name
	s.dirty = false
	s.cur.Reset()
	s.reg.Refresh(s.buf)
	log.Printf("[session] opened %s (%d bytes, new=%v)", name, len(data), created)
	if created {
		s.setStatus("\"%s\" [New File]", name)
	} else {
		s.setStatus("\"%s\" %dL, %dB", name, lineCount(data), len(data))
	}
	return nil
}

// Save writes the buffer verbatim to path, or to the open path when path
// is empty. A successful save adopts path and clears the dirty flag.
func (s *Session) Save(path string) error {
	if path == "" {
		path = s.path
	}
	if path == "" {
		s.setStatus("No file name")
		return errors.New("no file name")
	}
	name, err := normalizeFilename(path)
	if err != nil {
		s.setStatus("Can't resolve path: %s", ioErrText(err))
		return err
	}
	data := s.buf.Bytes()
	if err := os.WriteFile(name, data, 0o644); err != nil {
		log.Printf("[session] save %s: %v", name, err)
		s.setStatus("Can't save! I/O error: %s", ioErrText(err))
		return fmt.Errorf("save %s: %w", name, err)
	}
	s.path = name
	s.dirty = false
	log.Printf("[session] wrote %s (%d bytes)", name, len(data))
	s.setStatus("\"%s\" %dL, %dB written", name, lineCount(data), len(data))
	return nil
}

func readOrCreate(name string) ([]byte, bool, error) {
	data, err := os.ReadFile(name)
	if err == nil {
		return data, false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, false, err
	}
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, false, err
	}
	return nil, true, f.Close()
}

// lineCount counts lines the way a file listing would: a trailing partial
// line counts, a final newline does not start a new one.
func lineCount(data []byte) int {
	n := bytes.Count(data, []byte{'\n'})
	if len(data) > 0 && data[len(data)-1] != '\n' {
		n++
	}
	return n
}

func normalizeFilename(name string) (string, error) {
	if name == "~" || strings.HasPrefix(name, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if name == "~" {
			return home, nil
		}
		return filepath.Join(home, name[2:]), nil
	}
	return name, nil
}

func ioErrText(err error) string {
	if err == nil {
		return ""
	}
	var pe *os.PathError
	if errors.As(err, &pe) && pe.Err != nil {
		return pe.Err.Error()
	}
	return err.Error()
}
