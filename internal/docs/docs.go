package docs

import (
	"fmt"
	"strings"
)

// Status is a component's release state.
type Status string

const (
	StatusAvailable  Status = "Available"
	StatusInProgress Status = "In progress"
	StatusPlanned    Status = "Planned"
)

// Mode selects which registry flavour a page documents.
type Mode string

const (
	ModeBase  Mode = "base"
	ModeRadix Mode = "radix"
)

// Modes returns the documentation modes in display order.
func Modes() []Mode {
	return []Mode{ModeBase, ModeRadix}
}

// Label is the tab label for the mode.
func (m Mode) Label() string {
	if m == ModeRadix {
		return "Radix"
	}
	return "Base"
}

// NormalizeMode maps anything other than "radix" to base.
func NormalizeMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), string(ModeRadix)) {
		return ModeRadix
	}
	return ModeBase
}

// APIProp is one row of a component's API table.
type APIProp struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Default     string `yaml:"default"`
	Description string `yaml:"description"`
}

// Installation holds the registry command for each mode.
type Installation struct {
	Base  string `yaml:"base"`
	Radix string `yaml:"radix"`
}

// Command returns the command for mode, falling back to whichever
// mode has one.
func (i Installation) Command(mode Mode) string {
	if mode == ModeRadix && i.Radix != "" {
		return i.Radix
	}
	if i.Base != "" {
		return i.Base
	}
	return i.Radix
}

// PackageManagerTab is one package manager's form of an install command.
type PackageManagerTab struct {
	ID, Label, Code string
}

// PackageManagers rewrites a bunx command for bun, npm, pnpm and yarn.
func PackageManagers(command string) []PackageManagerTab {
	stripped := strings.TrimPrefix(strings.TrimSpace(command), "bunx ")
	return []PackageManagerTab{
		{ID: "bun", Label: "bun", Code: "bunx " + stripped},
		{ID: "npm", Label: "npm", Code: "npx " + stripped},
		{ID: "pnpm", Label: "pnpm", Code: "pnpm dlx " + stripped},
		{ID: "yarn", Label: "yarn", Code: "yarn dlx " + stripped},
	}
}

// ModeContent overrides page content for one mode. Empty fields keep the
// component's defaults.
type ModeContent struct {
	Summary     string    `yaml:"summary"`
	Description string    `yaml:"description"`
	API         []APIProp `yaml:"api"`
	A11y        []string  `yaml:"a11y"`
}

// ExampleKind tells the browser which live preview to build.
type ExampleKind string

const (
	KindStates       ExampleKind = "states"
	KindTabs         ExampleKind = "tabs"
	KindVerticalTabs ExampleKind = "vertical-tabs"
	KindButtons      ExampleKind = "buttons"
	KindInstallTabs  ExampleKind = "install-tabs"
	KindLongListing  ExampleKind = "long-listing"
)

// ExampleState is one case of a state-driven example.
type ExampleState struct {
	ID          string `yaml:"id"`
	Label       string `yaml:"label"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	// Icon is a glyph, or "spinner" for an animated one.
	Icon string `yaml:"icon"`
}

// Example is a live preview section on a component page.
type Example struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Kind        ExampleKind    `yaml:"kind"`
	Animation   string         `yaml:"animation"`
	DurationMs  int            `yaml:"duration_ms"`
	States      []ExampleState `yaml:"states"`
}

// Code renders the Go usage shown on the example's Code tab.
func (e Example) Code() string {
	switch e.Kind {
	case KindStates:
		return e.switcherCode()
	case KindTabs, KindVerticalTabs:
		return e.tabsCode()
	}
	return ""
}

func (e Example) switcherCode() string {
	first := "state"
	if len(e.States) > 0 {
		first = e.States[0].ID
	}
	var b strings.Builder
	b.WriteString("cfg := matchcase.DefaultConfig()\n")
	fmt.Fprintf(&b, "cfg.Animation = %q\n", e.Animation)
	fmt.Fprintf(&b, "cfg.Duration = %d * time.Millisecond\n", e.DurationMs)
	fmt.Fprintf(&b, "sw := matchcase.New(%q, cfg)\n\n", first)
	b.WriteString("slots := []matchcase.Slot{\n")
	for _, s := range e.States {
		fmt.Fprintf(&b, "\tsw.Render(%q, %q),\n", s.ID, s.Title)
	}
	b.WriteString("}\n")
	b.WriteString("paint := func(s matchcase.Slot) string {\n")
	b.WriteString("\treturn styles.Paint(s.Content, s.Visual, width)\n")
	b.WriteString("}\n")
	b.WriteString("view := matchcase.Stack(paint, slots...)")
	return b.String()
}

func (e Example) tabsCode() string {
	first := ""
	if len(e.States) > 0 {
		first = e.States[0].ID
	}
	orientation := "tabs.Horizontal"
	if e.Kind == KindVerticalTabs {
		orientation = "tabs.Vertical"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "first := %q\n", first)
	b.WriteString("group := tabs.New(tabs.Config[string]{\n")
	b.WriteString("\tDefaultValue: &first,\n")
	fmt.Fprintf(&b, "\tOrientation:  %s,\n", orientation)
	b.WriteString("})\n")
	for _, s := range e.States {
		fmt.Fprintf(&b, "tabs.NewTrigger(group, %q, %q)\n", s.ID, s.Label)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// ComponentDoc is one catalog entry.
type ComponentDoc struct {
	Slug         string               `yaml:"slug"`
	Name         string               `yaml:"name"`
	Status       Status               `yaml:"status"`
	IsNew        bool                 `yaml:"is_new"`
	Category     string               `yaml:"category"`
	Order        int                  `yaml:"order"`
	Summary      string               `yaml:"summary"`
	Description  string               `yaml:"description"`
	Installation Installation         `yaml:"installation"`
	API          []APIProp            `yaml:"api"`
	A11y         []string             `yaml:"a11y"`
	Modes        map[Mode]ModeContent `yaml:"modes"`
	Examples     []Example            `yaml:"examples"`
}

// Published reports whether the component has a page.
func (d *ComponentDoc) Published() bool {
	return d.Status == StatusAvailable
}

// Content resolves the page content for mode.
func (d *ComponentDoc) Content(mode Mode) ModeContent {
	c := ModeContent{
		Summary:     d.Summary,
		Description: d.Description,
		API:         d.API,
		A11y:        d.A11y,
	}
	o, ok := d.Modes[mode]
	if !ok {
		return c
	}
	if o.Summary != "" {
		c.Summary = o.Summary
	}
	if o.Description != "" {
		c.Description = o.Description
	}
	if len(o.API) > 0 {
		c.API = o.API
	}
	if len(o.A11y) > 0 {
		c.A11y = o.A11y
	}
	return c
}

// TOCItem is one entry of a page's table of contents.
type TOCItem struct {
	ID, Label string
}

// TOC lists the page sections in reading order. Examples appear after
// the demo.
func (d *ComponentDoc) TOC() []TOCItem {
	items := []TOCItem{
		{ID: "overview", Label: "Overview"},
		{ID: "demo", Label: "Interactive demo"},
	}
	for _, e := range d.Examples {
		items = append(items, TOCItem{ID: e.ID, Label: e.Title})
	}
	return append(items,
		TOCItem{ID: "installation", Label: "Installation"},
		TOCItem{ID: "api", Label: "API reference"},
		TOCItem{ID: "accessibility", Label: "Accessibility"},
	)
}
