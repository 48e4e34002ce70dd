package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	zone "github.com/lrstanley/bubblezone"

	"github.com/craftui/craftui/internal/codeblock"
	"github.com/craftui/craftui/internal/docs"
	"github.com/craftui/craftui/internal/tabs"
	"github.com/craftui/craftui/internal/tui/keymap"
	"github.com/craftui/craftui/internal/tui/styles"
)

// page is one component's documentation page.
type page struct {
	env *env
	doc docs.ComponentDoc

	mode     docs.Mode
	modes    *tabs.Group[docs.Mode]
	modeList *tabs.List[docs.Mode]
	modeTabs []*tabs.Trigger[docs.Mode]
	// picked holds a mode chosen by click until the model applies it.
	picked *docs.Mode

	examples []*example
	active   int
	install  *codeblock.Model

	// offsets maps section ids to their first line in the last render.
	offsets map[string]int
}

func newPage(e *env, doc docs.ComponentDoc, mode docs.Mode) *page {
	p := &page{env: e, doc: doc, mode: mode, offsets: make(map[string]int)}
	p.modes = tabs.New(tabs.Config[docs.Mode]{
		Value:          &p.mode,
		ActivationMode: tabs.Manual,
		BaseID:         "page-" + doc.Slug + "-mode",
		OnValueChange: func(m docs.Mode) {
			p.picked = &m
		},
	})
	for _, m := range docs.Modes() {
		p.modeTabs = append(p.modeTabs, tabs.NewTrigger(p.modes, m, m.Label()))
	}
	p.modeList = tabs.NewList(p.modes, listOptions[docs.Mode](e)...)

	install := doc.Installation.Command(mode)
	for _, ex := range doc.Examples {
		p.examples = append(p.examples, newExample(e, ex, install))
	}
	p.install = e.newCodeBlock(p.installProps())
	return p
}

func (p *page) installProps() codeblock.Props {
	props := p.env.codeProps()
	props.Language = "bash"
	props.Collapsible = false
	props.ShowLineNumbers = false
	props.Code = p.doc.Installation.Command(p.mode)
	return props
}

// Init measures the mode tabs and starts every example.
func (p *page) Init() tea.Cmd {
	cmds := []tea.Cmd{p.modeList.Observe(p.modeList.Measure(p.modeTabs, triggerLabel[docs.Mode]))}
	for _, x := range p.examples {
		cmds = append(cmds, x.Init())
	}
	return tea.Batch(cmds...)
}

// SetMode switches the page between the base and radix registries.
func (p *page) SetMode(mode docs.Mode) tea.Cmd {
	if mode == p.mode {
		return nil
	}
	p.mode = mode
	p.modes.SetValue(mode)
	p.install.SetProps(p.installProps())

	cmds := []tea.Cmd{p.modeList.Sync()}
	install := p.doc.Installation.Command(mode)
	for _, x := range p.examples {
		cmds = append(cmds, x.setInstall(install))
	}
	return tea.Batch(cmds...)
}

func (p *page) setReducedMotion(reduced bool) tea.Cmd {
	p.modeList.SetReducedMotion(reduced)
	cmds := make([]tea.Cmd, 0, len(p.examples))
	for _, x := range p.examples {
		cmds = append(cmds, x.setReducedMotion(reduced))
	}
	return tea.Batch(cmds...)
}

func (p *page) activeExample() *example {
	if len(p.examples) == 0 {
		return nil
	}
	return p.examples[p.active]
}

// HandleCommand applies a page command. Commands other than example
// navigation go to the active example, then to the install block.
func (p *page) HandleCommand(cmd keymap.Command) tea.Cmd {
	switch cmd {
	case keymap.CmdNextExample, keymap.CmdPrevExample:
		if n := len(p.examples); n > 0 {
			delta := 1
			if cmd == keymap.CmdPrevExample {
				delta = -1
			}
			p.active = (p.active + delta + n) % n
		}
		return nil
	}

	if x := p.activeExample(); x != nil {
		if c := x.HandleCommand(cmd); c != nil {
			return c
		}
	}
	if cmd == keymap.CmdCopy {
		return p.install.Copy()
	}
	return nil
}

// ActiveSection returns the id of the active example.
func (p *page) ActiveSection() string {
	if x := p.activeExample(); x != nil {
		return x.doc.ID
	}
	return "overview"
}

// Update routes messages to the page's components. A click on a mode tab
// is reported to the model with modeSelectedMsg.
func (p *page) Update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(tea.MouseMsg); ok && m.Action == tea.MouseActionRelease && m.Button == tea.MouseButtonLeft {
		for _, t := range p.modeTabs {
			if zone.Get(t.ID()).InBounds(m) {
				t.Click()
				if p.picked != nil {
					mode := *p.picked
					p.picked = nil
					return func() tea.Msg { return modeSelectedMsg{mode: mode} }
				}
				return nil
			}
		}
		for i, x := range p.examples {
			if cmd, hit := x.click(m); hit {
				p.active = i
				return cmd
			}
		}
	}

	cmds := []tea.Cmd{p.modeList.Update(msg), p.install.Update(msg)}
	for _, x := range p.examples {
		cmds = append(cmds, x.Update(msg))
	}
	return tea.Batch(cmds...)
}

// Close stops pending timers and unregisters the page's triggers.
func (p *page) Close() {
	p.install.Close()
	for _, x := range p.examples {
		x.Close()
	}
	for _, t := range p.modeTabs {
		t.Close()
	}
}

// View renders the whole page at width, recording section offsets.
func (p *page) View(width int) string {
	content := p.doc.Content(p.mode)
	clear(p.offsets)

	var lines []string
	add := func(id, s string) {
		if id != "" {
			p.offsets[id] = len(lines)
		}
		lines = append(lines, strings.Split(s, "\n")...)
	}
	text := lipgloss.NewStyle().Width(max(1, width))

	header := styles.Title.UnsetMarginBottom().Render(p.doc.Name)
	if p.doc.IsNew {
		header += " " + styles.NewBadge.Render("NEW")
	}
	add("", header)
	add("", p.modeList.View(p.modeTabs, markTrigger[docs.Mode], styles.Indicator))
	add("", styles.Subtitle.Width(max(1, width)).Render(content.Summary))
	add("", p.tocLine(width))

	add("overview", styles.Heading.Render("Overview"))
	add("", text.Render(content.Description))

	add("demo", styles.Heading.Render("Interactive demo"))
	for i, x := range p.examples {
		add("", "")
		add(x.doc.ID, x.View(width, i == p.active))
	}

	add("installation", styles.Heading.Render("Installation"))
	p.install.SetWidth(width)
	add("", p.install.View())

	add("api", styles.Heading.Render("API reference"))
	add("", apiTable(content.API, width))

	add("accessibility", styles.Heading.Render("Accessibility"))
	for _, note := range content.A11y {
		add("", text.Render("• "+note))
	}
	return strings.Join(lines, "\n")
}

func (p *page) tocLine(width int) string {
	items := p.doc.TOC()
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	return styles.Muted.Width(max(1, width)).Render("On this page: " + strings.Join(labels, " · "))
}

// apiTable renders the props table.
func apiTable(props []docs.APIProp, width int) string {
	if len(props) == 0 {
		return styles.Muted.Render("No props.")
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.BorderColor)).
		BorderColumn(false).
		Headers("Prop", "Type", "Default", "Description").
		Width(width).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.TableHeader
			case col == 0:
				return styles.TableName
			default:
				return styles.TableCell
			}
		})
	for _, prop := range props {
		def := prop.Default
		if def == "" {
			def = "-"
		}
		t.Row(prop.Name, prop.Type, def, prop.Description)
	}
	return t.String()
}
