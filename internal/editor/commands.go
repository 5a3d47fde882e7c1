package editor

import (
	"log"
	"strconv"
	"strings"
)

const errNoWrite = "No write since last change (add ! to override)"

// execute runs one ex command typed after ':'.
func (s *Session) execute(line string) {
	cmd := strings.TrimSpace(line)
	name, arg, _ := strings.Cut(cmd, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "":
	case "w":
		_ = s.Save(arg)
	case "wq", "x":
		if s.Save(arg) == nil {
			s.quit = true
		}
	case "q":
		if s.dirty {
			s.setStatus(errNoWrite)
			return
		}
		s.quit = true
	case "q!":
		s.quit = true
	case "s", "search":
		if arg == "" {
			s.setStatus("Argument required")
			return
		}
		s.commitSearch(arg)
	case "o", "o!":
		if s.dirty && name == "o" {
			s.setStatus(errNoWrite)
			return
		}
		if arg == "" {
			s.setStatus("No file name")
			return
		}
		_ = s.Open(arg)
	case "noh", "nohlsearch":
		s.reg.Clear()
	case "set":
		s.setOption(arg)
	default:
		if cmd == "$" {
			s.gotoLine(s.buf.RowCount())
			return
		}
		if n, err := strconv.Atoi(cmd); err == nil {
			s.gotoLine(n)
			return
		}
		log.Printf("[session] unknown command %q", cmd)
		s.setStatus("Not an editor command: %s", cmd)
	}
}

func (s *Session) setOption(opt string) {
	switch opt {
	case "nu", "number":
		s.lineNumbers = true
	case "nonu", "nonumber":
		s.lineNumbers = false
	case "":
		if s.lineNumbers {
			s.setStatus("  number")
		} else {
			s.setStatus("nonumber")
		}
	default:
		s.setStatus("Unknown option: %s", opt)
	}
}
