package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"yim/internal/config"
	"yim/internal/editor"
	"yim/internal/render"
	"yim/internal/terminal"
)

var Version = "dev"

const usageText = `usage: yim [-V|--version] [-h|--help] [--] [path]

Opens path for editing, creating it if it does not exist.
Without a path yim starts on an empty, unnamed buffer.
`

type cliArgs struct {
	path    string
	version bool
	help    bool
}

var errUsage = errors.New("usage")

func parseArgs(args []string) (cliArgs, error) {
	var a cliArgs
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			rest := args[i+1:]
			if len(rest) > 1 || (len(rest) == 1 && a.path != "") {
				return a, fmt.Errorf("%w: only one path may be given", errUsage)
			}
			if len(rest) == 1 {
				a.path = rest[0]
			}
			return a, nil
		case arg == "-V" || arg == "--version":
			a.version = true
		case arg == "-h" || arg == "--help":
			a.help = true
		case strings.HasPrefix(arg, "-") && arg != "-":
			return a, fmt.Errorf("%w: unknown option %s", errUsage, arg)
		default:
			if a.path != "" {
				return a, fmt.Errorf("%w: only one path may be given", errUsage)
			}
			a.path = arg
		}
	}
	return a, nil
}

// logPath returns ~/.local/state/yim/debug.log, honouring XDG_STATE_HOME.
func logPath() string {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, _ := os.UserHomeDir()
		stateDir = filepath.Join(home, ".local", "state")
	}
	dir := filepath.Join(stateDir, "yim")
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, "debug.log")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, in, out *os.File, stderr io.Writer) (code int) {
	cli, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(stderr, "yim:", err)
		fmt.Fprint(stderr, usageText)
		return 2
	}
	if cli.version {
		fmt.Fprintf(out, "yim %s\n", Version)
		return 0
	}
	if cli.help {
		fmt.Fprint(out, usageText)
		return 0
	}

	f, err := tea.LogToFile(logPath(), "debug")
	if err != nil {
		fmt.Fprintln(stderr, "Could not open debug log:", err)
		return 1
	}
	defer func() { _ = f.Close() }()
	log.Printf("=== yim %s starting (log: %s) ===", Version, logPath())

	cfg, err := config.Load()
	if err != nil {
		log.Printf("[config] %v; using defaults", err)
	}

	if !terminal.IsTerminal(in) {
		fmt.Fprintln(stderr, "yim requires a TTY on stdin")
		return 1
	}
	if !terminal.IsTerminal(out) {
		fmt.Fprintln(stderr, "yim requires a TTY on stdout")
		return 1
	}
	term := terminal.New(in, out)
	if err := term.EnableRawMode(); err != nil {
		fmt.Fprintln(stderr, "yim:", err)
		return 1
	}
	defer func() { _ = term.Restore() }()
	defer func() {
		if r := recover(); r != nil {
			_ = term.Restore()
			log.Printf("[main] panic: %v\n%s", r, debug.Stack())
			fmt.Fprintf(stderr, "yim panic: %v\n", r)
			_, _ = stderr.Write(debug.Stack())
			code = 2
		}
	}()

	// A signal only interrupts the key read; the loop then returns and the
	// deferred restore runs on this goroutine.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGTERM, syscall.SIGHUP)
	done := make(chan struct{})
	defer func() {
		signal.Stop(sig)
		close(done)
	}()
	go func() {
		select {
		case s := <-sig:
			log.Printf("[main] %v, shutting down", s)
			term.Interrupt()
		case <-done:
		}
	}()

	lg := lipgloss.NewRenderer(out)
	if p, ok := render.ParseProfile(cfg.ColorProfile); ok {
		lg.SetColorProfile(p)
	}
	r := render.New(term, render.NewTheme(lg, cfg.HighlightColor), render.Options{
		TimeFormat:     cfg.TimeFormat,
		MessageTimeout: cfg.MessageTimeout(),
	})

	s := editor.New(cfg)
	if cli.path != "" {
		if err := s.Open(cli.path); err != nil {
			log.Printf("[main] open %s: %v", cli.path, err)
		}
	}
	if err := s.Run(term, r); err != nil {
		_ = term.Restore()
		log.Printf("[main] %v", err)
		if errors.Is(err, terminal.ErrInterrupted) {
			return 1
		}
		fmt.Fprintln(stderr, "yim:", err)
		return 1
	}
	return 0
}
