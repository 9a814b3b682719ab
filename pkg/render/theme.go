package render

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors a theme is built from. Empty colors mean the
// terminal default.
type Palette struct {
	Name    string
	Primary string
	Success string
	Warning string
	Error   string
	Muted   string
	Accent  string // selection background
}

// Theme defines colors and icons for terminal rendering.
type Theme struct {
	Name    string
	Palette Palette
	Primary lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Icons   ThemeIcons
}

// ThemeIcons defines the icon set for a theme.
type ThemeIcons struct {
	Pass string
	Fail string
	Warn string
	Info string
}

var palettes = map[string]Palette{
	"default": {Name: "default", Primary: "39", Success: "34", Warning: "214", Error: "196", Muted: "242", Accent: "#7D56F4"},
	"orca":    {Name: "orca", Primary: "75", Success: "108", Warning: "179", Error: "167", Muted: "245", Accent: "24"},
	"mono":    {Name: "mono"},
}

// PaletteByName returns the named palette, defaulting to "default".
func PaletteByName(name string) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes["default"]
}

// Fg returns a style with the given foreground, or a plain style for "".
func Fg(color string) lipgloss.Style {
	s := lipgloss.NewStyle()
	if color != "" {
		s = s.Foreground(lipgloss.Color(color))
	}
	return s
}

func newTheme(p Palette, icons ThemeIcons) Theme {
	return Theme{
		Name:    p.Name,
		Palette: p,
		Primary: Fg(p.Primary),
		Success: Fg(p.Success),
		Warning: Fg(p.Warning),
		Error:   Fg(p.Error),
		Muted:   Fg(p.Muted),
		Bold:    lipgloss.NewStyle().Bold(true),
		Icons:   icons,
	}
}

// DefaultTheme returns a vibrant color theme.
func DefaultTheme() Theme {
	return newTheme(palettes["default"], ThemeIcons{Pass: "✓", Fail: "✗", Warn: "⚠", Info: "●"})
}

// OrcaTheme returns a muted, professional theme.
func OrcaTheme() Theme {
	return newTheme(palettes["orca"], ThemeIcons{Pass: "✓", Fail: "✗", Warn: "!", Info: "·"})
}

// MonoTheme returns a monochrome theme (no colors).
func MonoTheme() Theme {
	return newTheme(palettes["mono"], ThemeIcons{Pass: "+", Fail: "x", Warn: "!", Info: "*"})
}

// ThemeByName returns a theme by name, defaulting to DefaultTheme.
func ThemeByName(name string) Theme {
	switch name {
	case "orca":
		return OrcaTheme()
	case "mono":
		return MonoTheme()
	default:
		return DefaultTheme()
	}
}
