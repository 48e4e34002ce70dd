package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/craftui/craftui/internal/codeblock"
	"github.com/craftui/craftui/internal/docs"
	"github.com/craftui/craftui/internal/matchcase"
	"github.com/craftui/craftui/internal/motion"
	"github.com/craftui/craftui/internal/tabs"
	"github.com/craftui/craftui/internal/tui/keymap"
	"github.com/craftui/craftui/internal/tui/styles"
)

// Example view tabs.
const (
	viewPreview = "preview"
	viewCode    = "code"
)

// longListingLines is how far past the large threshold the generated
// listing runs, so expanding it always goes through batched reveal.
const longListingLines = 80

// parseAnimation maps unknown names to the default animation.
func parseAnimation(s string) motion.Animation {
	a, err := motion.ParseAnimation(s)
	if err != nil {
		return motion.DefaultAnimation
	}
	return a
}

// example is one live preview on a component page: a Preview/Code toggle
// over a kind-specific preview.
type example struct {
	env *env
	doc docs.Example

	views    *tabs.Group[string]
	viewList *tabs.List[string]
	viewTabs []*tabs.Trigger[string]

	// states drives the preview for state and tab examples.
	states    *tabs.Group[string]
	stateList *tabs.List[string]
	stateTabs []*tabs.Trigger[string]
	switcher  *matchcase.Switcher[string]

	code    *codeblock.Model
	listing *codeblock.Model
	spinner spinner.Model
}

func newExample(e *env, ex docs.Example, install string) *example {
	x := &example{env: e, doc: ex}

	preview := viewPreview
	x.views = tabs.New(tabs.Config[string]{
		DefaultValue:   &preview,
		ActivationMode: tabs.Manual,
		BaseID:         "example-" + ex.ID + "-view",
	})
	x.viewTabs = append(x.viewTabs, tabs.NewTrigger(x.views, viewPreview, "Preview"))
	if code := ex.Code(); code != "" {
		x.viewTabs = append(x.viewTabs, tabs.NewTrigger(x.views, viewCode, "Code"))
		p := e.codeProps()
		p.Code = code
		p.Language = "go"
		p.Filename = ex.ID + ".go"
		p.Collapsible = false
		p.Wrap = true
		p.ShowLineNumbers = false
		p.CopyMode = codeblock.CopyIcon
		x.code = e.newCodeBlock(p)
	}
	x.viewList = tabs.NewList(x.views, listOptions[string](e)...)

	switch ex.Kind {
	case docs.KindStates, docs.KindTabs, docs.KindVerticalTabs:
		x.buildStates()
	case docs.KindInstallTabs:
		x.listing = e.newCodeBlock(x.installProps(install))
	case docs.KindLongListing:
		p := e.codeProps()
		p.Code = longListing(p.LargeThreshold + longListingLines)
		p.Language = "css"
		p.Filename = "tokens.css"
		x.listing = e.newCodeBlock(p)
	}

	for _, s := range ex.States {
		if s.Icon == "spinner" {
			x.spinner = spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Primary))
			break
		}
	}
	return x
}

func (x *example) buildStates() {
	if len(x.doc.States) == 0 {
		return
	}
	first := x.doc.States[0].ID
	orientation := tabs.Horizontal
	if x.doc.Kind == docs.KindVerticalTabs {
		orientation = tabs.Vertical
	}
	x.states = tabs.New(tabs.Config[string]{
		DefaultValue:   &first,
		Orientation:    orientation,
		ActivationMode: x.env.activationMode(),
		BaseID:         "example-" + x.doc.ID,
	})
	for _, s := range x.doc.States {
		x.stateTabs = append(x.stateTabs, tabs.NewTrigger(x.states, s.ID, s.Label))
	}
	x.states.Focus(first)
	x.stateList = tabs.NewList(x.states, listOptions[string](x.env)...)

	if x.doc.Kind != docs.KindVerticalTabs {
		x.switcher = matchcase.New(first, x.env.switcherConfig(x.doc.Animation, x.doc.DurationMs), x.env.switcherOptions()...)
	}
}

func (x *example) installProps(command string) codeblock.Props {
	p := x.env.codeProps()
	p.Language = "bash"
	p.Collapsible = false
	p.ShowLineNumbers = false
	for _, pm := range docs.PackageManagers(command) {
		p.Tabs = append(p.Tabs, codeblock.Tab{ID: pm.ID, Label: pm.Label, Code: pm.Code, Language: "bash"})
	}
	return p
}

// setInstall swaps the install command after a mode change. The active
// package manager is kept.
func (x *example) setInstall(command string) tea.Cmd {
	if x.listing == nil || x.doc.Kind != docs.KindInstallTabs {
		return nil
	}
	active := x.listing.ActiveTab()
	x.listing.SetProps(x.installProps(command))
	return x.listing.SelectTab(active)
}

// longListing generates a design token sheet of n lines.
func longListing(n int) string {
	hues := []string{"slate", "violet", "emerald", "amber", "rose", "sky"}
	lines := make([]string, 0, n)
	lines = append(lines, ":root {")
	for i := 1; len(lines) < n-1; i++ {
		hue := hues[i%len(hues)]
		lines = append(lines, fmt.Sprintf("  --%s-%03d: oklch(%.2f 0.12 %d);", hue, i, 0.3+float64(i%60)/100, (i*37)%360))
	}
	return strings.Join(append(lines, "}"), "\n")
}

// Init starts the relayout of every trigger list and the spinner.
func (x *example) Init() tea.Cmd {
	cmds := []tea.Cmd{x.relayout()}
	if x.switcher != nil {
		cmds = append(cmds, x.switcher.Init())
	}
	if x.spinner.Spinner.FPS > 0 {
		cmds = append(cmds, x.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (x *example) relayout() tea.Cmd {
	cmds := []tea.Cmd{x.viewList.Observe(x.viewList.Measure(x.viewTabs, triggerLabel[string]))}
	if x.stateList != nil {
		cmds = append(cmds, x.stateList.Observe(x.stateList.Measure(x.stateTabs, triggerLabel[string])))
	}
	return tea.Batch(cmds...)
}

// setReducedMotion applies the reduced motion toggle to the example's
// switcher and indicators.
func (x *example) setReducedMotion(reduced bool) tea.Cmd {
	x.viewList.SetReducedMotion(reduced)
	if x.stateList != nil {
		x.stateList.SetReducedMotion(reduced)
	}
	if x.switcher == nil {
		return nil
	}
	return x.switcher.SetConfig(x.env.switcherConfig(x.doc.Animation, x.doc.DurationMs))
}

func (x *example) view() string {
	v, _ := x.views.Selected()
	return v
}

// visibleCode returns the code block on screen, if any.
func (x *example) visibleCode() *codeblock.Model {
	if x.view() == viewCode {
		return x.code
	}
	return x.listing
}

// syncStates hands the group's selection to the switcher.
func (x *example) syncStates() tea.Cmd {
	if x.states == nil {
		return nil
	}
	cmds := []tea.Cmd{x.stateList.Sync()}
	if v, ok := x.states.Selected(); ok && x.switcher != nil {
		cmds = append(cmds, x.switcher.SetValue(v))
	}
	return tea.Batch(cmds...)
}

func (x *example) focusedState() string {
	if v, ok := x.states.Focused(); ok {
		return v
	}
	v, _ := x.states.Selected()
	return v
}

// HandleCommand applies a page command while this example is active.
func (x *example) HandleCommand(cmd keymap.Command) tea.Cmd {
	switch cmd {
	case keymap.CmdPrevState, keymap.CmdNextState:
		if x.states == nil || x.view() != viewPreview {
			return nil
		}
		k := tabs.KeyRight
		if cmd == keymap.CmdPrevState {
			k = tabs.KeyLeft
		}
		if x.states.Orientation() == tabs.Vertical {
			k = tabs.KeyDown
			if cmd == keymap.CmdPrevState {
				k = tabs.KeyUp
			}
		}
		x.states.MoveFocus(x.focusedState(), k)
		return x.syncStates()

	case keymap.CmdActivate:
		if x.states == nil || x.view() != viewPreview {
			return nil
		}
		x.states.HandleKey(x.focusedState(), tea.KeyMsg{Type: tea.KeyEnter})
		return x.syncStates()

	case keymap.CmdTogglePreview:
		if len(x.viewTabs) < 2 {
			return nil
		}
		next := viewCode
		if x.view() == viewCode {
			next = viewPreview
		}
		x.views.Select(next)
		x.views.Focus(next)
		return x.viewList.Sync()

	case keymap.CmdToggleExpand:
		if cb := x.visibleCode(); cb != nil {
			return cb.Toggle()
		}
	case keymap.CmdNextCodeTab:
		if cb := x.visibleCode(); cb != nil {
			return cb.CycleTab(1)
		}
	case keymap.CmdCopy:
		if cb := x.visibleCode(); cb != nil {
			return cb.Copy()
		}
	}
	return nil
}

// click handles a left click released over one of the example's triggers.
// It reports whether a trigger was hit.
func (x *example) click(msg tea.MouseMsg) (tea.Cmd, bool) {
	for _, t := range x.viewTabs {
		if zone.Get(t.ID()).InBounds(msg) {
			t.Click()
			return x.viewList.Sync(), true
		}
	}
	for _, t := range x.stateTabs {
		if zone.Get(t.ID()).InBounds(msg) {
			t.Click()
			return x.syncStates(), true
		}
	}
	return nil, false
}

// Update routes timer, frame and mouse messages to the example's parts.
// Each part ignores messages addressed to someone else.
func (x *example) Update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	if m, ok := msg.(tea.MouseMsg); ok && m.Action == tea.MouseActionRelease && m.Button == tea.MouseButtonLeft {
		if cmd, hit := x.click(m); hit {
			return cmd
		}
	}
	if m, ok := msg.(spinner.TickMsg); ok && x.spinner.Spinner.FPS > 0 {
		var cmd tea.Cmd
		x.spinner, cmd = x.spinner.Update(m)
		cmds = append(cmds, cmd)
	}

	cmds = append(cmds, x.viewList.Update(msg))
	if x.stateList != nil {
		cmds = append(cmds, x.stateList.Update(msg))
	}
	if x.switcher != nil {
		cmds = append(cmds, x.switcher.Update(msg))
	}
	if x.code != nil {
		cmds = append(cmds, x.code.Update(msg))
	}
	if x.listing != nil {
		cmds = append(cmds, x.listing.Update(msg))
	}
	return tea.Batch(cmds...)
}

// Close stops the example's pending timers.
func (x *example) Close() {
	if x.code != nil {
		x.code.Close()
	}
	if x.listing != nil {
		x.listing.Close()
	}
	for _, t := range append(x.viewTabs, x.stateTabs...) {
		t.Close()
	}
}

// triggerLabel renders a trigger without its click zone, for measuring.
func triggerLabel[V comparable](t *tabs.Trigger[V]) string {
	style := styles.TabInactive
	switch {
	case t.Disabled():
		style = styles.TabDisabled
	case t.Selected():
		style = styles.TabActive
	case t.Focused():
		style = styles.TabFocused
	}
	return style.Render(t.Label)
}

func markTrigger[V comparable](t *tabs.Trigger[V]) string {
	return zone.Mark(t.ID(), triggerLabel(t))
}

// View renders the example at width.
func (x *example) View(width int, active bool) string {
	marker := "  "
	if active {
		marker = styles.Primary.Render("▸ ")
	}
	title := marker + styles.Text.Bold(true).Render(x.doc.Title)

	var rows []string
	rows = append(rows, title)
	if x.doc.Description != "" {
		rows = append(rows, styles.Muted.Width(max(1, width)).Render(x.doc.Description))
	}
	rows = append(rows, x.viewList.View(x.viewTabs, markTrigger[string], styles.Indicator))

	inner := max(MinContentWidth, width-PreviewPadding)
	if x.view() == viewCode && x.code != nil {
		x.code.SetWidth(width)
		rows = append(rows, x.code.View())
	} else {
		rows = append(rows, styles.PreviewBox.Width(max(1, width-2)).Render(x.preview(inner)))
	}
	return strings.Join(rows, "\n")
}

func (x *example) preview(width int) string {
	switch x.doc.Kind {
	case docs.KindStates:
		return x.stateList.View(x.stateTabs, markTrigger[string], styles.Indicator) + "\n\n" + x.stage(width, x.stateCard)
	case docs.KindTabs:
		return x.stateList.View(x.stateTabs, markTrigger[string], styles.Indicator) + "\n\n" + x.stage(width, x.tabPanel)
	case docs.KindVerticalTabs:
		return x.verticalPreview(width)
	case docs.KindInstallTabs, docs.KindLongListing:
		x.listing.SetWidth(width)
		return x.listing.View()
	case docs.KindButtons:
		return buttons()
	}
	return styles.Muted.Render("No preview")
}

// stage overlays the active and exiting cases in one footprint.
func (x *example) stage(width int, render func(docs.ExampleState, int) string) string {
	if x.switcher == nil {
		return ""
	}
	slots := make([]matchcase.Slot, 0, len(x.doc.States))
	for _, s := range x.doc.States {
		if x.switcher.KindOf(s.ID) == matchcase.Hidden {
			continue
		}
		slots = append(slots, x.switcher.Render(s.ID, render(s, width)))
	}
	paint := func(s matchcase.Slot) string {
		return styles.Paint(s.Content, s.Visual, width)
	}
	return matchcase.Stack(paint, slots...)
}

func (x *example) icon(s docs.ExampleState) string {
	if s.Icon == "spinner" {
		return x.spinner.View()
	}
	return styles.Primary.Render(s.Icon)
}

func (x *example) stateCard(s docs.ExampleState, width int) string {
	head := x.icon(s) + "  " + styles.Text.Bold(true).Render(s.Title)
	body := styles.Muted.Width(max(1, width-3)).Render(s.Description)
	return lipgloss.JoinVertical(lipgloss.Left, head, "   "+strings.ReplaceAll(body, "\n", "\n   "))
}

func (x *example) tabPanel(s docs.ExampleState, width int) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Text.Bold(true).Render(s.Label),
		styles.Muted.Width(max(1, width)).Render(s.Description),
	)
}

// verticalPreview shows the trigger column beside the selected panel. Only
// the selected panel is mounted.
func (x *example) verticalPreview(width int) string {
	list := x.stateList.View(x.stateTabs, markTrigger[string], styles.Indicator)
	panelWidth := max(1, width-lipgloss.Width(list)-2)

	var panel string
	for _, s := range x.doc.States {
		ps := x.states.PanelState(s.ID, false)
		if !ps.Mounted || ps.Hidden {
			continue
		}
		panel = x.tabPanel(s, panelWidth)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", panel)
}

func buttons() string {
	btn := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
	primary := btn.BorderForeground(styles.PrimaryColor).Foreground(styles.PrimaryColor).Bold(true)
	outline := btn.BorderForeground(styles.BorderColor).Foreground(styles.TextColor)
	icon := btn.Padding(0, 1).BorderForeground(styles.BorderColor).Foreground(styles.TextColor)
	return lipgloss.JoinHorizontal(lipgloss.Center,
		primary.Render("Button"), " ",
		outline.Render("Outline"), " ",
		icon.Render("+"),
	)
}
