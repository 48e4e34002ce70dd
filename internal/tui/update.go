package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/craftui/craftui/internal/codeblock"
	"github.com/craftui/craftui/internal/config"
	"github.com/craftui/craftui/internal/docs"
	"github.com/craftui/craftui/internal/tabs"
	"github.com/craftui/craftui/internal/tui/keymap"
	"github.com/craftui/craftui/internal/tui/styles"
)

// Init measures the component list and starts the first page.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.navList.Observe(m.navList.Measure(m.navTabs, triggerLabel[string])),
		m.switcher.Init(),
	}
	if p, ok := m.pages[m.Slug()]; ok {
		cmds = append(cmds, p.Init())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width, m.viewport.Height = CalculateContentDimensions(msg.Width, msg.Height, m.env.cfg.TUI.SidebarWidth)
		m.help.Width = msg.Width
		m.ready = true

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		cmd = m.handleMouse(msg)

	case ConfigChangedMsg:
		cmd = m.applyConfig(msg.Config)

	case modeSelectedMsg:
		cmd = m.setMode(msg.mode)

	default:
		cmd = m.broadcast(msg)
	}

	if m.quitting {
		return m, tea.Quit
	}
	m.refresh()
	return m, cmd
}

// broadcast hands a message to every component. Timer and frame messages
// carry their owner's id, so everyone else ignores them.
func (m *Model) broadcast(msg tea.Msg) tea.Cmd {
	cmds := []tea.Cmd{m.switcher.Update(msg), m.navList.Update(msg)}
	for _, p := range m.pages {
		cmds = append(cmds, p.Update(msg))
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	cmd, ok := m.keymap.Lookup(msg, m.focus)
	if ok {
		return m.handleCommand(cmd)
	}
	// Arrows, Home, End and Enter drive the component list directly.
	if m.focus == keymap.ModeSidebar && m.nav.HandleKey(m.navFocus(), msg) {
		return m.syncPage()
	}
	return nil
}

func (m *Model) navFocus() string {
	if v, ok := m.nav.Focused(); ok {
		return v
	}
	v, _ := m.nav.Selected()
	return v
}

func (m *Model) currentPage() *page {
	return m.pages[m.Slug()]
}

func (m *Model) handleCommand(cmd keymap.Command) tea.Cmd {
	switch cmd {
	case keymap.CmdQuit:
		m.quitting = true
		return nil
	case keymap.CmdToggleHelp:
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return nil
	case keymap.CmdFocusNext, keymap.CmdFocusPrev:
		if m.focus == keymap.ModeSidebar {
			m.focus = keymap.ModePage
		} else {
			m.focus = keymap.ModeSidebar
		}
		return nil
	case keymap.CmdBack:
		m.focus = keymap.ModeSidebar
		return nil
	case keymap.CmdToggleDocMode:
		next := docs.ModeRadix
		if m.mode == docs.ModeRadix {
			next = docs.ModeBase
		}
		return m.setMode(next)
	case keymap.CmdCycleTheme:
		m.setTheme(nextTheme(m.theme))
		m.status = "Theme: " + m.theme
		return nil
	case keymap.CmdToggleReducedMotion:
		cmd := m.setReducedMotion(!m.env.reduced)
		m.status = "Reduced motion off"
		if m.env.reduced {
			m.status = "Reduced motion on"
		}
		return cmd

	case keymap.CmdNavUp, keymap.CmdNavDown:
		k := tabs.KeyDown
		if cmd == keymap.CmdNavUp {
			k = tabs.KeyUp
		}
		m.nav.MoveFocus(m.navFocus(), k)
		return m.syncPage()
	case keymap.CmdOpenPage:
		m.nav.Select(m.navFocus())
		m.focus = keymap.ModePage
		return m.syncPage()

	case keymap.CmdScrollDown:
		m.viewport.LineDown(1)
		return nil
	case keymap.CmdScrollUp:
		m.viewport.LineUp(1)
		return nil
	case keymap.CmdScrollPageDown:
		m.viewport.HalfPageDown()
		return nil
	case keymap.CmdScrollPageUp:
		m.viewport.HalfPageUp()
		return nil
	case keymap.CmdScrollToTop:
		m.viewport.GotoTop()
		return nil
	case keymap.CmdScrollToBottom:
		m.viewport.GotoBottom()
		return nil
	}

	p := m.currentPage()
	if p == nil {
		return nil
	}
	out := p.HandleCommand(cmd)
	if cmd == keymap.CmdNextExample || cmd == keymap.CmdPrevExample {
		m.refresh()
		m.viewport.SetYOffset(p.offsets[p.ActiveSection()])
	}
	return out
}

// syncPage opens the page for the list's selection.
func (m *Model) syncPage() tea.Cmd {
	cmds := []tea.Cmd{m.navList.Sync()}
	slug, ok := m.nav.Selected()
	if !ok || slug == m.switcher.Value() {
		return tea.Batch(cmds...)
	}
	p, start := m.pageFor(slug)
	if p == nil {
		return tea.Batch(cmds...)
	}
	cmds = append(cmds, start, m.switcher.SetValue(slug))
	m.viewport.GotoTop()
	m.env.logger.WithSlug(slug).Debug("page opened")
	return tea.Batch(cmds...)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
		for _, t := range m.navTabs {
			if zone.Get(t.ID()).InBounds(msg) {
				t.Click()
				m.focus = keymap.ModeSidebar
				return m.syncPage()
			}
		}
	}
	if tea.MouseEvent(msg).IsWheel() {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	if p := m.currentPage(); p != nil {
		return p.Update(msg)
	}
	return nil
}

func (m *Model) setMode(mode docs.Mode) tea.Cmd {
	if mode == m.mode {
		return nil
	}
	m.mode = mode
	cmds := make([]tea.Cmd, 0, len(m.pages))
	for _, p := range m.pages {
		cmds = append(cmds, p.SetMode(mode))
	}
	m.env.logger.Debug("doc mode changed", "mode", string(mode))
	return tea.Batch(cmds...)
}

func (m *Model) setTheme(name string) {
	if name == m.theme || !styles.IsValidTheme(name) {
		return
	}
	m.theme = name
	styles.SetActiveTheme(styles.ThemeName(name))
}

func (m *Model) setReducedMotion(reduced bool) tea.Cmd {
	m.env.reduced = reduced
	m.navList.SetReducedMotion(reduced)
	cmds := []tea.Cmd{m.switcher.SetConfig(m.env.switcherConfig("", 0))}
	for _, p := range m.pages {
		cmds = append(cmds, p.setReducedMotion(reduced))
	}
	return tea.Batch(cmds...)
}

// applyConfig adopts a reloaded configuration. Cached pages are rebuilt so
// new code block settings take effect.
func (m *Model) applyConfig(cfg *config.Config) tea.Cmd {
	if cfg == nil {
		return nil
	}
	m.env.cfg = cfg
	if !m.customClip {
		m.env.clip = codeblock.NewClipboard(cfg.CodeBlock.Clipboard, os.Stdout, os.Getenv("TMUX") != "")
	}
	m.setTheme(cfg.TUI.Theme)

	for slug, p := range m.pages {
		p.Close()
		delete(m.pages, slug)
	}
	m.mode = docs.NormalizeMode(cfg.TUI.DefaultMode)

	cmds := []tea.Cmd{m.setReducedMotion(cfg.Motion.ReducedMotion)}
	if _, start := m.pageFor(m.Slug()); start != nil {
		cmds = append(cmds, start)
	}
	if m.width > 0 {
		m.viewport.Width, m.viewport.Height = CalculateContentDimensions(m.width, m.height, cfg.TUI.SidebarWidth)
	}
	m.status = "Configuration reloaded"
	m.env.logger.Info("configuration reloaded", "theme", cfg.TUI.Theme, "reduced_motion", cfg.Motion.ReducedMotion)
	return tea.Batch(cmds...)
}
