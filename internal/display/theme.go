package display

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Theme selects the terminal color scheme.
type Theme int

const (
	Light Theme = iota
	Dark
)

// ThemeFor maps the dark mode preference to a theme.
func ThemeFor(darkMode bool) Theme {
	if darkMode {
		return Dark
	}
	return Light
}

func (t Theme) String() string {
	if t == Dark {
		return "dark"
	}
	return "light"
}

type palette struct {
	title  lipgloss.Color
	muted  lipgloss.Color
	link   lipgloss.Color
	accent lipgloss.Color
	badges map[string]lipgloss.Color
}

var palettes = map[Theme]palette{
	Light: {
		title:  lipgloss.Color("235"),
		muted:  lipgloss.Color("243"),
		link:   lipgloss.Color("25"),
		accent: lipgloss.Color("161"),
		badges: map[string]lipgloss.Color{
			"news":   lipgloss.Color("27"),
			"movie":  lipgloss.Color("127"),
			"social": lipgloss.Color("28"),
		},
	},
	Dark: {
		title:  lipgloss.Color("255"),
		muted:  lipgloss.Color("245"),
		link:   lipgloss.Color("75"),
		accent: lipgloss.Color("212"),
		badges: map[string]lipgloss.Color{
			"news":   lipgloss.Color("69"),
			"movie":  lipgloss.Color("171"),
			"social": lipgloss.Color("78"),
		},
	},
}

// styles are bound to the renderer of the output writer, so colors are only
// emitted when that writer is a color terminal.
type styles struct {
	title   lipgloss.Style
	meta    lipgloss.Style
	body    lipgloss.Style
	link    lipgloss.Style
	saved   lipgloss.Style
	message lipgloss.Style
	badges  map[string]lipgloss.Style
}

func newStyles(w io.Writer, theme Theme) styles {
	r := lipgloss.NewRenderer(w)
	r.SetHasDarkBackground(theme == Dark)
	p := palettes[theme]

	s := styles{
		title:   r.NewStyle().Bold(true).Foreground(p.title),
		meta:    r.NewStyle().Foreground(p.muted),
		body:    r.NewStyle().Foreground(p.title),
		link:    r.NewStyle().Foreground(p.link).Underline(true),
		saved:   r.NewStyle().Foreground(p.accent),
		message: r.NewStyle().Italic(true).Foreground(p.muted),
		badges:  make(map[string]lipgloss.Style, len(p.badges)),
	}
	for kind, color := range p.badges {
		s.badges[kind] = r.NewStyle().Bold(true).Foreground(color)
	}
	return s
}
