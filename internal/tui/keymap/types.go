// Package keymap maps key presses to browser commands. Bindings are declared
// per focus mode so Update dispatches on commands rather than raw keys.
package keymap

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode is the browser region holding focus.
type Mode string

const (
	ModeSidebar Mode = "sidebar" // component list
	ModePage    Mode = "page"    // component page and its live examples
)

// Command names an action a binding triggers.
type Command string

// Available in every mode.
const (
	CmdQuit                Command = "quit"
	CmdToggleHelp          Command = "toggle_help"
	CmdFocusNext           Command = "focus_next"
	CmdFocusPrev           Command = "focus_prev"
	CmdToggleDocMode       Command = "toggle_doc_mode"
	CmdCycleTheme          Command = "cycle_theme"
	CmdToggleReducedMotion Command = "toggle_reduced_motion"
)

// Sidebar.
const (
	CmdNavUp    Command = "nav_up"
	CmdNavDown  Command = "nav_down"
	CmdOpenPage Command = "open_page"
)

// Page.
const (
	CmdScrollDown     Command = "scroll_down"
	CmdScrollUp       Command = "scroll_up"
	CmdScrollPageDown Command = "scroll_page_down"
	CmdScrollPageUp   Command = "scroll_page_up"
	CmdScrollToTop    Command = "scroll_to_top"
	CmdScrollToBottom Command = "scroll_to_bottom"
	CmdPrevExample    Command = "prev_example"
	CmdNextExample    Command = "next_example"
	CmdPrevState      Command = "prev_state"
	CmdNextState      Command = "next_state"
	CmdActivate       Command = "activate"
	CmdTogglePreview  Command = "toggle_preview"
	CmdToggleExpand   Command = "toggle_expand"
	CmdNextCodeTab    Command = "next_code_tab"
	CmdCopy           Command = "copy"
	CmdBack           Command = "back"
)

// Binding ties one or more keys to a command. Keys are spelled the way
// tea.KeyMsg.String spells them: "j", "ctrl+c", "shift+tab", " ".
type Binding struct {
	Keys        []string
	Command     Command
	Description string
	Category    string
}

func bind(cmd Command, desc, category string, keys ...string) Binding {
	return Binding{Keys: keys, Command: cmd, Description: desc, Category: category}
}

// Matches reports whether msg is one of the binding's keys.
func (b Binding) Matches(msg tea.KeyMsg) bool {
	return slices.Contains(b.Keys, msg.String())
}

// Help renders the keys for the help bar, e.g. "j/↓".
func (b Binding) Help() string {
	labels := make([]string, len(b.Keys))
	for i, k := range b.Keys {
		labels[i] = keyLabel(k)
	}
	return strings.Join(labels, "/")
}

var keyLabels = map[string]string{
	" ":     "space",
	"up":    "↑",
	"down":  "↓",
	"left":  "←",
	"right": "→",
}

func keyLabel(k string) string {
	if l, ok := keyLabels[k]; ok {
		return l
	}
	return k
}

// Keymap holds bindings per mode. Global bindings are consulted after the
// focused mode's own.
type Keymap struct {
	Name   string
	Global []Binding
	Modes  map[Mode][]Binding
}

// Bindings lists the bindings active in mode, mode-specific first.
func (km *Keymap) Bindings(mode Mode) []Binding {
	return slices.Concat(km.Modes[mode], km.Global)
}

// Lookup returns the command msg triggers in mode.
func (km *Keymap) Lookup(msg tea.KeyMsg, mode Mode) (Command, bool) {
	for _, b := range km.Bindings(mode) {
		if b.Matches(msg) {
			return b.Command, true
		}
	}
	return "", false
}

// Categories lists mode's binding categories in declaration order.
func (km *Keymap) Categories(mode Mode) []string {
	var cats []string
	for _, b := range km.Bindings(mode) {
		if b.Category != "" && !slices.Contains(cats, b.Category) {
			cats = append(cats, b.Category)
		}
	}
	return cats
}

// HelpBindings converts mode's bindings for bubbles/help, merging bindings
// that share a command into one entry.
func (km *Keymap) HelpBindings(mode Mode) []key.Binding {
	return helpBindings(km.Bindings(mode))
}

// HelpGroups is HelpBindings split by category, for the full help view.
func (km *Keymap) HelpGroups(mode Mode) [][]key.Binding {
	all := km.Bindings(mode)
	var groups [][]key.Binding
	for _, cat := range km.Categories(mode) {
		var in []Binding
		for _, b := range all {
			if b.Category == cat {
				in = append(in, b)
			}
		}
		groups = append(groups, helpBindings(in))
	}
	return groups
}

func helpBindings(bs []Binding) []key.Binding {
	var merged []Binding
	for _, b := range bs {
		i := slices.IndexFunc(merged, func(m Binding) bool { return m.Command == b.Command })
		if i < 0 {
			merged = append(merged, Binding{Command: b.Command, Description: b.Description, Keys: slices.Clone(b.Keys)})
			continue
		}
		merged[i].Keys = append(merged[i].Keys, b.Keys...)
	}
	out := make([]key.Binding, len(merged))
	for i, b := range merged {
		out[i] = key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Help(), b.Description))
	}
	return out
}
