package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// ThemeName represents a named color theme.
type ThemeName string

// Available theme names.
const (
	ThemeDefault        ThemeName = "default"         // Violet/emerald on near-black
	ThemeNord           ThemeName = "nord"            // Nord - cool blue-gray
	ThemeDracula        ThemeName = "dracula"         // Dracula
	ThemeSolarizedLight ThemeName = "solarized-light" // Solarized Light
	ThemeCatppuccin     ThemeName = "catppuccin"      // Catppuccin Mocha
)

// BuiltinThemes returns all built-in theme names.
func BuiltinThemes() []string {
	return []string{
		string(ThemeDefault),
		string(ThemeNord),
		string(ThemeDracula),
		string(ThemeSolarizedLight),
		string(ThemeCatppuccin),
	}
}

// ValidThemes returns all valid theme names (built-in + custom).
func ValidThemes() []string {
	return append(BuiltinThemes(), CustomThemeNames()...)
}

// IsValidTheme checks if a theme name is valid (built-in or custom).
func IsValidTheme(name string) bool {
	if slices.Contains(BuiltinThemes(), name) {
		return true
	}
	return IsCustomTheme(name)
}

// ColorPalette defines the color scheme for a theme.
type ColorPalette struct {
	// Primary accent (active tabs, titles)
	Primary lipgloss.Color
	// Secondary accent (keys, success, "Available")
	Secondary lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	// Muted text (labels, line numbers)
	Muted lipgloss.Color
	// Surface behind code listings and the status bar
	Surface lipgloss.Color
	// Background is what faded content blends toward.
	Background lipgloss.Color
	Text       lipgloss.Color
	Border     lipgloss.Color
	// Accent marks "New" badges and the tab indicator.
	Accent lipgloss.Color
}

// DefaultPalette returns the default dark palette.
func DefaultPalette() *ColorPalette {
	return &ColorPalette{
		Primary:    lipgloss.Color("#A78BFA"), // violet-400
		Secondary:  lipgloss.Color("#10B981"), // emerald-500
		Warning:    lipgloss.Color("#F59E0B"), // amber-500
		Error:      lipgloss.Color("#F87171"), // red-400
		Muted:      lipgloss.Color("#9CA3AF"), // gray-400
		Surface:    lipgloss.Color("#1F2937"), // gray-800
		Background: lipgloss.Color("#111827"), // gray-900
		Text:       lipgloss.Color("#F9FAFB"), // gray-50
		Border:     lipgloss.Color("#6B7280"), // gray-500
		Accent:     lipgloss.Color("#F472B6"), // pink-400
	}
}

// NordPalette returns the Nord palette.
func NordPalette() *ColorPalette {
	return &ColorPalette{
		Primary:    lipgloss.Color("#88C0D0"),
		Secondary:  lipgloss.Color("#A3BE8C"),
		Warning:    lipgloss.Color("#EBCB8B"),
		Error:      lipgloss.Color("#BF616A"),
		Muted:      lipgloss.Color("#81A1C1"),
		Surface:    lipgloss.Color("#3B4252"),
		Background: lipgloss.Color("#2E3440"),
		Text:       lipgloss.Color("#ECEFF4"),
		Border:     lipgloss.Color("#4C566A"),
		Accent:     lipgloss.Color("#B48EAD"),
	}
}

// DraculaPalette returns the Dracula palette.
func DraculaPalette() *ColorPalette {
	return &ColorPalette{
		Primary:    lipgloss.Color("#BD93F9"),
		Secondary:  lipgloss.Color("#50FA7B"),
		Warning:    lipgloss.Color("#FFB86C"),
		Error:      lipgloss.Color("#FF5555"),
		Muted:      lipgloss.Color("#A3A8C3"),
		Surface:    lipgloss.Color("#44475A"),
		Background: lipgloss.Color("#282A36"),
		Text:       lipgloss.Color("#F8F8F2"),
		Border:     lipgloss.Color("#6272A4"),
		Accent:     lipgloss.Color("#FF79C6"),
	}
}

// SolarizedLightPalette returns the light Solarized variant.
func SolarizedLightPalette() *ColorPalette {
	return &ColorPalette{
		Primary:    lipgloss.Color("#6C71C4"),
		Secondary:  lipgloss.Color("#2AA198"),
		Warning:    lipgloss.Color("#B58900"),
		Error:      lipgloss.Color("#DC322F"),
		Muted:      lipgloss.Color("#657B83"),
		Surface:    lipgloss.Color("#EEE8D5"),
		Background: lipgloss.Color("#FDF6E3"),
		Text:       lipgloss.Color("#073642"),
		Border:     lipgloss.Color("#93A1A1"),
		Accent:     lipgloss.Color("#D33682"),
	}
}

// CatppuccinPalette returns Catppuccin Mocha.
func CatppuccinPalette() *ColorPalette {
	return &ColorPalette{
		Primary:    lipgloss.Color("#CBA6F7"),
		Secondary:  lipgloss.Color("#A6E3A1"),
		Warning:    lipgloss.Color("#F9E2AF"),
		Error:      lipgloss.Color("#F38BA8"),
		Muted:      lipgloss.Color("#A6ADC8"),
		Surface:    lipgloss.Color("#313244"),
		Background: lipgloss.Color("#1E1E2E"),
		Text:       lipgloss.Color("#CDD6F4"),
		Border:     lipgloss.Color("#6C7086"),
		Accent:     lipgloss.Color("#F5C2E7"),
	}
}

// GetPalette returns the palette for a theme name. Unknown names return the
// default palette.
func GetPalette(name ThemeName) *ColorPalette {
	switch name {
	case ThemeNord:
		return NordPalette()
	case ThemeDracula:
		return DraculaPalette()
	case ThemeSolarizedLight:
		return SolarizedLightPalette()
	case ThemeCatppuccin:
		return CatppuccinPalette()
	}
	if custom := GetCustomTheme(name); custom != nil {
		return custom.ToPalette()
	}
	return DefaultPalette()
}
