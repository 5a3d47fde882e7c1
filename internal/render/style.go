package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Style names a visual role. The renderer only ever asks a Theme to paint
// text in a role; how that looks on the wire is the Theme's business.
type Style int

const (
	StyleFiller Style = iota
	StyleGutter
	StyleMatch
	StyleStatusBar
)

func (s Style) String() string {
	switch s {
	case StyleFiller:
		return "filler"
	case StyleGutter:
		return "gutter"
	case StyleMatch:
		return "match"
	case StyleStatusBar:
		return "status"
	}
	return "unknown"
}

type Theme interface {
	Paint(s Style, text string) string
}

// Plain paints nothing. Useful where escape sequences are unwanted.
type Plain struct{}

func (Plain) Paint(_ Style, text string) string { return text }

// LipglossTheme maps each Style to a lipgloss style bound to one renderer.
type LipglossTheme struct {
	styles map[Style]lipgloss.Style
}

// NewTheme builds the default look: dim fillers and gutter, an inverse
// status bar and matches on the highlight color.
func NewTheme(r *lipgloss.Renderer, highlight string) *LipglossTheme {
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return &LipglossTheme{styles: map[Style]lipgloss.Style{
		StyleFiller:    base.Faint(true),
		StyleGutter:    base.Faint(true),
		StyleMatch:     base.Foreground(lipgloss.Color("0")).Background(lipgloss.Color(highlight)),
		StyleStatusBar: base.Reverse(true),
	}}
}

func (t *LipglossTheme) Paint(s Style, text string) string {
	st, ok := t.styles[s]
	if !ok || text == "" {
		return text
	}
	return st.Render(text)
}

// ParseProfile maps a config value to a termenv profile. ok is false for
// "auto" and unknown names, meaning detection is left to lipgloss.
func ParseProfile(name string) (p termenv.Profile, ok bool) {
	switch strings.ToLower(name) {
	case "ascii", "none":
		return termenv.Ascii, true
	case "ansi", "16":
		return termenv.ANSI, true
	case "ansi256", "256":
		return termenv.ANSI256, true
	case "truecolor", "24bit":
		return termenv.TrueColor, true
	}
	return termenv.Ascii, false
}
