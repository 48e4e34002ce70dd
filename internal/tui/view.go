package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/craftui/craftui/internal/matchcase"
	"github.com/craftui/craftui/internal/tui/keymap"
	"github.com/craftui/craftui/internal/tui/styles"
	"github.com/craftui/craftui/internal/util"
)

// refresh re-renders the page area into the viewport.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.pageView())
}

// pageView overlays the active page and, mid-transition, the page it
// replaced.
func (m *Model) pageView() string {
	width := m.viewport.Width
	var slots []matchcase.Slot
	for slug, p := range m.pages {
		if m.switcher.KindOf(slug) == matchcase.Hidden {
			continue
		}
		slots = append(slots, m.switcher.Render(slug, p.View(width)))
	}
	paint := func(s matchcase.Slot) string {
		return styles.Paint(s.Content, s.Visual, width)
	}
	return matchcase.Stack(paint, slots...)
}

// View renders the browser.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	header := m.renderHeader()
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderSidebar(m.viewport.Height),
		strings.Repeat(" ", PanelGap),
		m.renderContent(),
	)
	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderHelp()))
}

func (m *Model) renderHeader() string {
	parts := []string{
		styles.Title.UnsetMarginBottom().Render("CraftUI"),
		styles.Muted.Render("components"),
		styles.Text.Render(m.mode.Label()),
		styles.Muted.Render(m.theme),
	}
	if m.env.reduced {
		parts = append(parts, styles.Warning.Render("reduced motion"))
	}
	if m.status != "" {
		parts = append(parts, styles.SuccessMsg.Render(m.status))
	}
	return util.Truncate(strings.Join(parts, styles.Muted.Render(" · ")), m.width)
}

// renderSidebar renders the component list and the upcoming section.
func (m *Model) renderSidebar(height int) string {
	width := sidebarWidth(m.env.cfg.TUI.SidebarWidth, m.width)

	var b strings.Builder
	b.WriteString(styles.SidebarTitle.Render("Components"))
	b.WriteString("\n")
	b.WriteString(m.navList.View(m.navTabs, markTrigger[string], styles.Indicator))

	if len(m.upcoming) > 0 {
		b.WriteString("\n\n")
		b.WriteString(styles.SidebarSectionTitle.Render("Upcoming"))
		for _, d := range m.upcoming {
			b.WriteString("\n")
			b.WriteString(styles.SidebarItem.Render(util.Truncate(d.Name, width-SidebarPadding)))
			b.WriteString("\n   ")
			b.WriteString(styles.StatusBadge(string(d.Status)))
		}
	}

	style := styles.Sidebar
	if m.focus == keymap.ModeSidebar {
		style = style.BorderForeground(styles.PrimaryColor)
	}
	return style.Width(width - 2).Height(height).Render(b.String())
}

func (m *Model) renderContent() string {
	style := styles.ContentBox
	if m.focus == keymap.ModePage {
		style = style.BorderForeground(styles.PrimaryColor)
	}
	return style.Width(m.viewport.Width + 4).Height(m.viewport.Height).Render(m.viewport.View())
}

func (m *Model) renderHelp() string {
	m.help.Styles.ShortKey = styles.HelpKey
	m.help.Styles.FullKey = styles.HelpKey
	if m.showHelp {
		return styles.HelpBar.Render(m.help.FullHelpView(m.keymap.HelpGroups(m.focus)))
	}
	return styles.HelpBar.Render(m.help.ShortHelpView(m.keymap.HelpBindings(m.focus)))
}
