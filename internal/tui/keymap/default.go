package keymap

// DefaultKeymap returns the browser's key bindings.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name: "default",
		Global: []Binding{
			bind(CmdFocusNext, "Next region", "Navigation", "tab"),
			bind(CmdFocusPrev, "Previous region", "Navigation", "shift+tab"),

			bind(CmdToggleDocMode, "Base/Radix", "View", "m"),
			bind(CmdCycleTheme, "Cycle theme", "View", "T"),
			bind(CmdToggleReducedMotion, "Reduced motion", "View", "R"),

			bind(CmdToggleHelp, "Toggle help", "Application", "?"),
			bind(CmdQuit, "Quit", "Application", "q", "ctrl+c"),
		},
		Modes: map[Mode][]Binding{
			// Arrows, Home, End, Enter and Space fall through to the
			// component list's tab group, which owns roving focus.
			ModeSidebar: {
				bind(CmdNavUp, "Previous component", "Navigation", "k"),
				bind(CmdNavDown, "Next component", "Navigation", "j"),
				bind(CmdOpenPage, "Open page", "Navigation", "l", "right"),
			},
			ModePage: {
				bind(CmdScrollDown, "Scroll down", "Scrolling", "j", "down"),
				bind(CmdScrollUp, "Scroll up", "Scrolling", "k", "up"),
				bind(CmdScrollPageDown, "Page down", "Scrolling", "ctrl+d", "pgdown"),
				bind(CmdScrollPageUp, "Page up", "Scrolling", "ctrl+u", "pgup"),
				bind(CmdScrollToTop, "Top", "Scrolling", "g"),
				bind(CmdScrollToBottom, "Bottom", "Scrolling", "G"),

				bind(CmdPrevExample, "Previous example", "Examples", "["),
				bind(CmdNextExample, "Next example", "Examples", "]"),
				bind(CmdPrevState, "Previous tab", "Examples", "h", "left"),
				bind(CmdNextState, "Next tab", "Examples", "l", "right"),
				bind(CmdActivate, "Select tab", "Examples", "enter", " "),
				bind(CmdTogglePreview, "Preview/Code", "Examples", "v"),

				bind(CmdToggleExpand, "Show more/less", "Code", "e"),
				bind(CmdNextCodeTab, "Next code tab", "Code", "n"),
				bind(CmdCopy, "Copy", "Code", "y"),

				bind(CmdBack, "Back to list", "Navigation", "esc"),
			},
		},
	}
}
