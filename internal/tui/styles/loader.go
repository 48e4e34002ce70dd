package styles

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// ThemeFile represents a custom theme definition loaded from YAML.
type ThemeFile struct {
	// Name is the theme's display name (e.g., "Paper")
	Name        string `yaml:"name"`
	Author      string `yaml:"author,omitempty"`
	Description string `yaml:"description,omitempty"`
	// Version is the theme file format version (currently "1")
	Version string      `yaml:"version"`
	Colors  ThemeColors `yaml:"colors"`
}

// ThemeColors contains all color definitions for a theme.
// All colors should be hex format (#RRGGBB or #RGB).
type ThemeColors struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Warning   string `yaml:"warning"`
	Error     string `yaml:"error"`
	Muted     string `yaml:"muted"`
	Surface   string `yaml:"surface"`
	Text      string `yaml:"text"`
	Border    string `yaml:"border"`

	// Optional; default to the surface and primary colors.
	Background string `yaml:"background,omitempty"`
	Accent     string `yaml:"accent,omitempty"`
}

// LoadThemeFile reads and validates a theme file.
func LoadThemeFile(path string) (*ThemeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var theme ThemeFile
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if err := theme.Validate(); err != nil {
		return nil, err
	}
	return &theme, nil
}

// namedColor is one palette slot of a theme file.
type namedColor struct {
	name     string
	value    string
	optional bool
}

func (c *ThemeColors) slots() []namedColor {
	return []namedColor{
		{"primary", c.Primary, false},
		{"secondary", c.Secondary, false},
		{"warning", c.Warning, false},
		{"error", c.Error, false},
		{"muted", c.Muted, false},
		{"surface", c.Surface, false},
		{"text", c.Text, false},
		{"border", c.Border, false},
		{"background", c.Background, true},
		{"accent", c.Accent, true},
	}
}

// Validate reports the first problem with the file: a missing name, an
// unknown version, or a color that is absent or not hex.
func (t *ThemeFile) Validate() error {
	switch {
	case t.Name == "":
		return errors.New("theme: name is required")
	case t.Version != "1":
		return fmt.Errorf("theme %s: version %q unsupported, want \"1\"", t.Name, t.Version)
	}
	for _, c := range t.Colors.slots() {
		if c.value == "" {
			if c.optional {
				continue
			}
			return fmt.Errorf("theme %s: colors.%s is required", t.Name, c.name)
		}
		if _, err := colorful.Hex(c.value); err != nil {
			return fmt.Errorf("theme %s: colors.%s: %q is not #RGB or #RRGGBB", t.Name, c.name, c.value)
		}
	}
	return nil
}

// ToPalette converts the file to a palette. Background falls back to
// surface and accent to primary.
func (t *ThemeFile) ToPalette() *ColorPalette {
	c := t.Colors
	return &ColorPalette{
		Primary:    lipgloss.Color(c.Primary),
		Secondary:  lipgloss.Color(c.Secondary),
		Warning:    lipgloss.Color(c.Warning),
		Error:      lipgloss.Color(c.Error),
		Muted:      lipgloss.Color(c.Muted),
		Surface:    lipgloss.Color(c.Surface),
		Text:       lipgloss.Color(c.Text),
		Border:     lipgloss.Color(c.Border),
		Background: lipgloss.Color(cmp.Or(c.Background, c.Surface)),
		Accent:     lipgloss.Color(cmp.Or(c.Accent, c.Primary)),
	}
}

var customThemes = make(map[ThemeName]*ThemeFile)

// RegisterCustomTheme registers a custom theme by name.
func RegisterCustomTheme(name ThemeName, theme *ThemeFile) {
	customThemes[name] = theme
}

// GetCustomTheme returns a custom theme by name, or nil if not found.
func GetCustomTheme(name ThemeName) *ThemeFile {
	return customThemes[name]
}

// CustomThemeNames returns the sorted names of all registered custom themes.
func CustomThemeNames() []string {
	var names []string
	for name := range customThemes {
		names = append(names, string(name))
	}
	slices.Sort(names)
	return names
}

// IsCustomTheme reports whether name is a registered custom theme.
func IsCustomTheme(name string) bool {
	_, ok := customThemes[ThemeName(name)]
	return ok
}

// ClearCustomThemes forgets every registered custom theme, ahead of a
// rescan of the themes directory.
func ClearCustomThemes() {
	customThemes = make(map[ThemeName]*ThemeFile)
}

// DiscoverCustomThemes loads every *.yaml and *.yml file in dir and
// registers it under its file name. A missing directory is not an error.
// Invalid files are skipped and reported.
func DiscoverCustomThemes(dir string) ([]string, []error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, []error{err}
	}

	var loaded []string
	var errs []error
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ext)
		if IsBuiltinTheme(name) {
			errs = append(errs, fmt.Errorf("%s: %q is a built-in theme name", e.Name(), name))
			continue
		}
		theme, err := LoadThemeFile(filepath.Join(dir, e.Name()))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.Name(), err))
			continue
		}
		RegisterCustomTheme(ThemeName(name), theme)
		loaded = append(loaded, name)
	}
	return loaded, errs
}

// IsBuiltinTheme reports whether name ships with CraftUI.
func IsBuiltinTheme(name string) bool {
	return slices.Contains(BuiltinThemes(), name)
}

// ThemeFromPalette builds a version 1 theme file from a palette.
func ThemeFromPalette(name string, p *ColorPalette) *ThemeFile {
	return &ThemeFile{
		Name:    name,
		Version: "1",
		Colors: ThemeColors{
			Primary:    string(p.Primary),
			Secondary:  string(p.Secondary),
			Warning:    string(p.Warning),
			Error:      string(p.Error),
			Muted:      string(p.Muted),
			Surface:    string(p.Surface),
			Text:       string(p.Text),
			Border:     string(p.Border),
			Background: string(p.Background),
			Accent:     string(p.Accent),
		},
	}
}

// ExportTheme encodes a theme as a version 1 theme file, ready to be
// edited and dropped into the themes directory.
func ExportTheme(name ThemeName) ([]byte, error) {
	if t := GetCustomTheme(name); t != nil {
		return yaml.Marshal(t)
	}
	if !IsBuiltinTheme(string(name)) {
		return nil, fmt.Errorf("unknown theme: %s", name)
	}
	return yaml.Marshal(ThemeFromPalette(string(name), GetPalette(name)))
}
