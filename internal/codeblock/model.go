package codeblock

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/craftui/craftui/internal/errors"
	"github.com/craftui/craftui/internal/logging"
	"github.com/craftui/craftui/internal/tui/styles"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

// CopiedResetDelay is how long the copy button shows its confirmation.
const CopiedResetDelay = 1200 * time.Millisecond

// CopyMode selects the copy button's face.
type CopyMode int

const (
	CopyText CopyMode = iota
	CopyIcon
)

// ParseCopyMode maps "icon" to CopyIcon and anything else to CopyText.
func ParseCopyMode(s string) CopyMode {
	if strings.EqualFold(s, "icon") {
		return CopyIcon
	}
	return CopyText
}

// Tab is one variant of a tabbed listing.
type Tab struct {
	ID       string
	Label    string
	Code     string
	Language string
	Filename string
}

// Props describe a listing. Start from DefaultProps.
type Props struct {
	Code     string
	Language string
	Filename string
	Tabs     []Tab

	Wrap              bool
	ShowLineNumbers   bool
	Collapsible       bool
	MaxCollapsedLines int
	LargeThreshold    int
	BatchSize         int
	CopyMode          CopyMode
}

// DefaultProps returns a collapsible, numbered listing with a text copy
// button.
func DefaultProps() Props {
	return Props{
		Language:          "text",
		ShowLineNumbers:   true,
		Collapsible:       true,
		MaxCollapsedLines: DefaultMaxCollapsedLines,
		LargeThreshold:    DefaultLargeThreshold,
		BatchSize:         DefaultBatchSize,
	}
}

type copyResultMsg struct {
	id  int
	err error
}

type copyResetMsg struct {
	id  int
	tag int
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithClipboard sets the copy target. The default is the system clipboard.
func WithClipboard(c Clipboard) ModelOption {
	return func(m *Model) { m.clip = c }
}

// WithLogger sets the logger used for copy failures.
func WithLogger(l *logging.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l.WithComponent("codeblock")
		}
	}
}

// WithScheduler replaces tea.Tick for reveal frames and the copy reset.
func WithScheduler(s Scheduler) ModelOption {
	return func(m *Model) { m.schedule = s }
}

// Model is a complete code block: header with tabs or filename, numbered
// body, copy button, and show more/less controls.
type Model struct {
	id       int
	props    Props
	block    *Block
	active   string
	copied   bool
	copyTag  int
	width    int
	clip     Clipboard
	logger   *logging.Logger
	schedule Scheduler
	spinner  spinner.Model
}

// NewModel builds a Model. The first tab, if any, is active.
func NewModel(props Props, opts ...ModelOption) *Model {
	m := &Model{
		id:       nextID(),
		props:    props,
		clip:     SystemClipboard{},
		logger:   logging.NopLogger(),
		schedule: tea.Tick,
		spinner:  spinner.New(spinner.WithSpinner(spinner.MiniDot)),
	}
	for _, opt := range opts {
		opt(m)
	}
	if len(props.Tabs) > 0 {
		m.active = props.Tabs[0].ID
	}
	m.block = New(m.Code(), m.blockOptions())
	return m
}

func (m *Model) blockOptions() Options {
	return Options{
		Collapsible:       m.props.Collapsible,
		MaxCollapsedLines: m.props.MaxCollapsedLines,
		LargeThreshold:    m.props.LargeThreshold,
		BatchSize:         m.props.BatchSize,
		Scheduler:         m.schedule,
	}
}

// Block exposes the line model.
func (m *Model) Block() *Block {
	return m.block
}

// Props returns the listing description.
func (m *Model) Props() Props {
	return m.props
}

// SetProps replaces the listing. The active tab is kept when it still
// exists, otherwise the first tab becomes active.
func (m *Model) SetProps(p Props) {
	m.props = p
	if !m.hasTab(m.active) {
		m.active = ""
		if len(p.Tabs) > 0 {
			m.active = p.Tabs[0].ID
		}
	}
	m.block.Close()
	m.block = New(m.Code(), m.blockOptions())
}

// SetWidth sets the outer width including the border. Zero disables
// wrapping and truncation.
func (m *Model) SetWidth(w int) {
	m.width = w
}

func (m *Model) hasTab(id string) bool {
	for _, t := range m.props.Tabs {
		if t.ID == id {
			return true
		}
	}
	return false
}

// activeTab returns the active tab, falling back to the first.
func (m *Model) activeTab() (Tab, bool) {
	for _, t := range m.props.Tabs {
		if t.ID == m.active {
			return t, true
		}
	}
	if len(m.props.Tabs) > 0 {
		return m.props.Tabs[0], true
	}
	return Tab{}, false
}

// ActiveTab returns the active tab id, or "" without tabs.
func (m *Model) ActiveTab() string {
	if t, ok := m.activeTab(); ok {
		return t.ID
	}
	return ""
}

// Code returns the listing of the active tab, or Props.Code.
func (m *Model) Code() string {
	if t, ok := m.activeTab(); ok {
		return t.Code
	}
	return m.props.Code
}

// Language returns the active tab's language, or Props.Language.
func (m *Model) Language() string {
	if t, ok := m.activeTab(); ok && t.Language != "" {
		return t.Language
	}
	if m.props.Language == "" {
		return "text"
	}
	return m.props.Language
}

// Filename returns the active tab's filename, or Props.Filename.
func (m *Model) Filename() string {
	if t, ok := m.activeTab(); ok && t.Filename != "" {
		return t.Filename
	}
	return m.props.Filename
}

// SelectTab activates a tab by id. The expanded state carries over to the
// new listing.
func (m *Model) SelectTab(id string) tea.Cmd {
	if !m.hasTab(id) || id == m.ActiveTab() {
		return nil
	}
	wasExpanded := m.block.Expanded()
	m.active = id
	m.block.SetText(m.Code())
	if wasExpanded {
		return m.expand()
	}
	return nil
}

// CycleTab moves to the next (delta > 0) or previous tab, wrapping.
func (m *Model) CycleTab(delta int) tea.Cmd {
	n := len(m.props.Tabs)
	if n == 0 {
		return nil
	}
	cur := 0
	for i, t := range m.props.Tabs {
		if t.ID == m.ActiveTab() {
			cur = i
		}
	}
	return m.SelectTab(m.props.Tabs[((cur+delta)%n+n)%n].ID)
}

// Toggle expands or collapses the listing.
func (m *Model) Toggle() tea.Cmd {
	if m.block.Expanded() {
		m.block.Collapse()
		return nil
	}
	return m.expand()
}

func (m *Model) expand() tea.Cmd {
	cmd := m.block.Expand()
	if cmd == nil {
		return nil
	}
	return tea.Batch(cmd, m.spinner.Tick)
}

// Copied reports whether the copy confirmation is showing.
func (m *Model) Copied() bool {
	return m.copied
}

// Copy writes the active listing to the clipboard off the event loop.
func (m *Model) Copy() tea.Cmd {
	id, clip, text := m.id, m.clip, m.Code()
	return func() tea.Msg {
		return copyResultMsg{id: id, err: clip.Copy(text)}
	}
}

// Close stops pending frames and the copy reset timer.
func (m *Model) Close() {
	m.block.Close()
	m.copyTag++
}

func (m *Model) zoneID(part string) string {
	return "codeblock-" + strconv.Itoa(m.id) + "-" + part
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles reveal frames, copy results, and clicks.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case revealMsg:
		return m.block.Update(msg)

	case spinner.TickMsg:
		if m.block.State() != Expanding {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case copyResultMsg:
		if msg.id != m.id {
			return nil
		}
		if msg.err != nil {
			m.copied = false
			if errors.IsTransient(msg.err) {
				m.logger.Warn("copy failed", "error", msg.err.Error())
			} else {
				m.logger.Error("copy failed", "error", msg.err.Error())
			}
			return nil
		}
		m.copied = true
		m.copyTag++
		id, tag := m.id, m.copyTag
		return m.schedule(CopiedResetDelay, func(time.Time) tea.Msg {
			return copyResetMsg{id: id, tag: tag}
		})

	case copyResetMsg:
		if msg.id == m.id && msg.tag == m.copyTag {
			m.copied = false
		}
		return nil

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return nil
		}
		switch {
		case zone.Get(m.zoneID("copy")).InBounds(msg):
			return m.Copy()
		case zone.Get(m.zoneID("toggle")).InBounds(msg):
			return m.Toggle()
		}
		for _, t := range m.props.Tabs {
			if zone.Get(m.zoneID("tab-" + t.ID)).InBounds(msg) {
				return m.SelectTab(t.ID)
			}
		}
	}
	return nil
}

func (m *Model) copyLabel() string {
	if m.props.CopyMode == CopyIcon {
		if m.copied {
			return "✓"
		}
		return "⧉"
	}
	if m.copied {
		return "COPIED"
	}
	return "COPY"
}

func (m *Model) header(inner int) string {
	var left string
	if len(m.props.Tabs) > 0 {
		parts := make([]string, 0, len(m.props.Tabs))
		for _, t := range m.props.Tabs {
			style := styles.CodeTab
			if t.ID == m.ActiveTab() {
				style = styles.CodeTabActive
			}
			parts = append(parts, zone.Mark(m.zoneID("tab-"+t.ID), style.Render(strings.ToLower(t.Label))))
		}
		left = lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	} else {
		if f := m.Filename(); f != "" {
			left = styles.CodeFilename.Render(f)
		}
		left += styles.CodeLanguage.Render(strings.ToUpper(m.Language()))
	}

	btnStyle := styles.CodeButton
	if m.copied {
		btnStyle = styles.CodeButtonActive
	}
	btn := zone.Mark(m.zoneID("copy"), btnStyle.Render(m.copyLabel()))

	gap := max(1, inner-lipgloss.Width(left)-lipgloss.Width(btn))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gap), btn)
}

func (m *Model) body(inner int) []string {
	visible := m.block.VisibleLines()
	gutterWidth := 0
	if m.props.ShowLineNumbers {
		gutterWidth = max(2, len(strconv.Itoa(len(m.block.Lines()))))
	}

	textWidth := 0
	if inner > 0 {
		textWidth = max(1, inner-2)
		if gutterWidth > 0 {
			textWidth = max(1, textWidth-gutterWidth-2)
		}
	}

	rows := make([]string, 0, len(visible))
	for i, line := range visible {
		if line == "" {
			line = " "
		}
		segments := []string{line}
		switch {
		case textWidth > 0 && m.props.Wrap:
			segments = strings.Split(ansi.Wrap(line, textWidth, ""), "\n")
		case textWidth > 0:
			segments = []string{ansi.Truncate(line, textWidth, "…")}
		}
		for j, seg := range segments {
			prefix := " "
			if gutterWidth > 0 {
				num := ""
				if j == 0 {
					num = strconv.Itoa(i + 1)
				}
				prefix += styles.CodeGutter.Render(fmt.Sprintf("%*s", gutterWidth, num)) + "  "
			}
			rows = append(rows, prefix+styles.CodeLine.Render(seg))
		}
	}
	return rows
}

// View renders the block.
func (m *Model) View() string {
	inner := 0
	if m.width > 2 {
		inner = m.width - 2
	}

	rows := []string{m.header(inner)}
	if inner > 0 {
		rows[0] = styles.CodeHeader.Width(inner).Render(rows[0])
	} else {
		rows[0] = styles.CodeHeader.Render(rows[0])
	}
	rows = append(rows, m.body(inner)...)

	notice := func(s string) string {
		if inner > 0 {
			return styles.CodeNotice.Width(inner).Render(s)
		}
		return styles.CodeNotice.Render(s)
	}

	switch m.block.State() {
	case Expanding:
		rows = append(rows, notice(fmt.Sprintf("%s Rendering %d more lines...", m.spinner.View(), m.block.PendingLineCount())))
	case Collapsed:
		rows = append(rows, notice(zone.Mark(m.zoneID("toggle"), styles.CodeButton.Render(fmt.Sprintf("Show more (%d lines)", m.block.HiddenLineCount())))))
	}
	if m.block.ShouldCollapse() && m.block.Expanded() {
		rows = append(rows, notice(zone.Mark(m.zoneID("toggle"), styles.CodeButton.Render("Show less"))))
	}

	frame := styles.CodeFrame
	if inner > 0 {
		frame = frame.Width(inner)
	}
	return frame.Render(strings.Join(rows, "\n"))
}
