// Package codeblock renders code listings that collapse to a few lines and
// reveal long listings progressively when expanded.
//
// Block holds the line-splitting and reveal state. Model wraps a Block with
// the header, tabs, copy button, and show more/less affordances.
package codeblock

import (
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Defaults for Options fields left at zero.
const (
	DefaultMaxCollapsedLines = 6
	DefaultLargeThreshold    = 240
	DefaultBatchSize         = 240
)

const frameInterval = time.Second / 60

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Scheduler delivers fn's message after d. Nil means tea.Tick.
type Scheduler func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// Options configure a Block. Use DefaultOptions for a collapsible block.
type Options struct {
	Collapsible       bool
	MaxCollapsedLines int
	// LargeThreshold is the line count above which expansion is batched.
	LargeThreshold int
	BatchSize      int
	Scheduler      Scheduler
}

// DefaultOptions returns a collapsible block showing six lines.
func DefaultOptions() Options {
	return Options{
		Collapsible:       true,
		MaxCollapsedLines: DefaultMaxCollapsedLines,
		LargeThreshold:    DefaultLargeThreshold,
		BatchSize:         DefaultBatchSize,
	}
}

func (o Options) normalized() Options {
	if o.MaxCollapsedLines <= 0 {
		o.MaxCollapsedLines = DefaultMaxCollapsedLines
	}
	if o.LargeThreshold <= 0 {
		o.LargeThreshold = DefaultLargeThreshold
	}
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.Scheduler == nil {
		o.Scheduler = tea.Tick
	}
	return o
}

// State is the reveal state of a Block.
type State int

const (
	Collapsed State = iota
	Expanding
	Expanded
)

func (s State) String() string {
	switch s {
	case Collapsed:
		return "collapsed"
	case Expanding:
		return "expanding"
	default:
		return "expanded"
	}
}

type revealMsg struct {
	id  int
	tag int
}

// Block is the line model of one listing. It is driven from a bubbletea
// Update and is not safe for concurrent use.
type Block struct {
	id       int
	opts     Options
	lines    []string
	expanded bool
	revealed int
	tag      int
	closed   bool
}

// New splits text into lines and starts collapsed when it is long enough.
func New(text string, opts Options) *Block {
	b := &Block{id: nextID(), opts: opts.normalized()}
	b.SetText(text)
	return b
}

// SplitLines normalises CRLF to LF and splits on LF. Empty lines are kept,
// so "" yields one empty line.
func SplitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// SetText replaces the listing and resets to the collapsed state. Any reveal
// in flight is abandoned.
func (b *Block) SetText(text string) {
	b.lines = SplitLines(text)
	b.expanded = false
	b.tag++
	b.revealed = len(b.collapsedWindow())
}

// Options returns the normalised options.
func (b *Block) Options() Options {
	return b.opts
}

// Lines returns every line of the listing.
func (b *Block) Lines() []string {
	return b.lines
}

// Text returns the normalised listing.
func (b *Block) Text() string {
	return strings.Join(b.lines, "\n")
}

// ShouldCollapse reports whether the listing is truncated when collapsed.
func (b *Block) ShouldCollapse() bool {
	return b.opts.Collapsible && len(b.lines) > b.opts.MaxCollapsedLines
}

// Expanded reports whether the block was expanded.
func (b *Block) Expanded() bool {
	return b.expanded
}

// HiddenLineCount is the number of lines the collapsed view leaves out.
func (b *Block) HiddenLineCount() int {
	return max(0, len(b.lines)-b.opts.MaxCollapsedLines)
}

func (b *Block) collapsedWindow() []string {
	if b.ShouldCollapse() && !b.expanded {
		return b.lines[:b.opts.MaxCollapsedLines]
	}
	return b.lines
}

// large reports whether expanding reveals lines in batches.
func (b *Block) large() bool {
	return b.ShouldCollapse() && len(b.lines) > b.opts.LargeThreshold
}

// VisibleLines returns the lines to draw: the truncated window while
// collapsed, otherwise the lines revealed so far.
func (b *Block) VisibleLines() []string {
	if b.ShouldCollapse() && !b.expanded {
		return b.lines[:b.opts.MaxCollapsedLines]
	}
	return b.lines[:b.revealed]
}

// RevealedCount is the number of lines currently drawn.
func (b *Block) RevealedCount() int {
	return b.revealed
}

// PendingLineCount is the number of lines an in-progress reveal has yet to
// draw.
func (b *Block) PendingLineCount() int {
	if b.State() != Expanding {
		return 0
	}
	return len(b.lines) - b.revealed
}

// State returns the current reveal state.
func (b *Block) State() State {
	switch {
	case b.ShouldCollapse() && !b.expanded:
		return Collapsed
	case b.revealed < len(b.lines):
		return Expanding
	default:
		return Expanded
	}
}

// Expand shows the whole listing. Large listings reveal the first batch now
// and one more batch per frame; the returned command drives those frames.
// Expanding an expanded block does nothing.
func (b *Block) Expand() tea.Cmd {
	if b.expanded || b.closed {
		return nil
	}
	b.expanded = true
	b.tag++

	if !b.large() {
		b.revealed = len(b.lines)
		return nil
	}
	b.revealed = min(b.opts.BatchSize, len(b.lines))
	if b.revealed >= len(b.lines) {
		return nil
	}
	return b.frame()
}

// Collapse reverts to the truncated window and cancels any reveal in flight.
func (b *Block) Collapse() {
	if !b.expanded {
		return
	}
	b.expanded = false
	b.tag++
	b.revealed = len(b.collapsedWindow())
}

// Toggle expands a collapsed block and collapses an expanded one.
func (b *Block) Toggle() tea.Cmd {
	if b.expanded {
		b.Collapse()
		return nil
	}
	return b.Expand()
}

// Close stops the block from reacting to frames still in flight.
func (b *Block) Close() {
	b.closed = true
	b.tag++
}

func (b *Block) frame() tea.Cmd {
	id, tag := b.id, b.tag
	return b.opts.Scheduler(frameInterval, func(time.Time) tea.Msg {
		return revealMsg{id: id, tag: tag}
	})
}

// Update advances a reveal by one batch per frame message. Frames from a
// superseded expand, another block, or after Close are ignored.
func (b *Block) Update(msg tea.Msg) tea.Cmd {
	m, ok := msg.(revealMsg)
	if !ok || m.id != b.id || m.tag != b.tag || b.closed {
		return nil
	}
	b.revealed = min(b.revealed+b.opts.BatchSize, len(b.lines))
	if b.revealed < len(b.lines) {
		return b.frame()
	}
	return nil
}
