package tabs

import (
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/craftui/craftui/internal/motion"

	tea "github.com/charmbracelet/bubbletea"
)

// Indicator timing.
const (
	IndicatorDuration = 250 * time.Millisecond
	IndicatorEasing   = "ease-out"
	// IndicatorExtra widens the indicator past its trigger, split evenly
	// between both sides.
	IndicatorExtra = 2
)

// Box is a trigger's position within its list, in cells.
type Box struct {
	X, Y, Width, Height int
}

var lastListID int64

type indicatorMsg struct {
	id   int
	tag  int
	time time.Time
}

// Scheduler delivers fn's message after d.
type Scheduler func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// ListOption configures a List.
type ListOption[V comparable] func(*List[V])

// WithListScheduler replaces tea.Tick for indicator frames.
func WithListScheduler[V comparable](s Scheduler) ListOption[V] {
	return func(l *List[V]) { l.schedule = s }
}

// WithReducedMotion makes the indicator jump instead of slide.
func WithReducedMotion[V comparable](reduced bool) ListOption[V] {
	return func(l *List[V]) { l.reduced = reduced }
}

// List lays out a group's triggers and tracks the selection indicator.
// Geometry is re-measured whenever the host reports a layout change with
// Observe, and the indicator slides to the selected trigger's new box.
type List[V comparable] struct {
	group    *Group[V]
	id       int
	schedule Scheduler
	reduced  bool

	boxes map[V]Box

	from, to  Box
	shown     bool
	animating bool
	started   bool
	start     time.Time
	now       time.Time
	tag       int
}

// NewList creates the list for g.
func NewList[V comparable](g *Group[V], opts ...ListOption[V]) *List[V] {
	if g == nil {
		panic("tabs: List must be used within a Group")
	}
	l := &List[V]{
		group:    g,
		id:       int(atomic.AddInt64(&lastListID, 1)),
		schedule: tea.Tick,
		boxes:    make(map[V]Box),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetReducedMotion switches sliding on or off.
func (l *List[V]) SetReducedMotion(reduced bool) {
	l.reduced = reduced
}

// Measure computes each trigger's box from its rendered form. Horizontal
// lists place triggers side by side, vertical lists stack them.
func (l *List[V]) Measure(triggers []*Trigger[V], render func(*Trigger[V]) string) map[V]Box {
	boxes := make(map[V]Box, len(triggers))
	x, y := 0, 0
	for _, t := range triggers {
		s := render(t)
		w, h := lipgloss.Width(s), lipgloss.Height(s)
		boxes[t.value] = Box{X: x, Y: y, Width: w, Height: h}
		if l.group.orientation == Vertical {
			y += h
		} else {
			x += w
		}
	}
	return boxes
}

// Observe records new trigger geometry and retargets the indicator when the
// selected trigger's box changed.
func (l *List[V]) Observe(boxes map[V]Box) tea.Cmd {
	l.boxes = boxes
	return l.Sync()
}

// Sync retargets the indicator at the selected trigger. Call it after the
// selection changes.
func (l *List[V]) Sync() tea.Cmd {
	v, ok := l.group.Selected()
	if !ok {
		l.hide()
		return nil
	}
	box, ok := l.boxes[v]
	if !ok {
		l.hide()
		return nil
	}

	target := Box{
		X:      box.X - IndicatorExtra/2,
		Y:      box.Y,
		Width:  box.Width + IndicatorExtra,
		Height: box.Height,
	}
	if l.shown && target == l.to {
		return nil
	}

	if !l.shown || l.reduced {
		l.from, l.to, l.shown = target, target, true
		l.animating = false
		l.tag++
		return nil
	}

	l.from, _ = l.Indicator()
	l.to = target
	l.started = false
	l.animating = true
	l.tag++
	return l.frame()
}

func (l *List[V]) hide() {
	l.shown = false
	l.animating = false
	l.tag++
}

func (l *List[V]) frame() tea.Cmd {
	id, tag := l.id, l.tag
	return l.schedule(time.Second/60, func(t time.Time) tea.Msg {
		return indicatorMsg{id: id, tag: tag, time: t}
	})
}

// Update advances the indicator animation.
func (l *List[V]) Update(msg tea.Msg) tea.Cmd {
	m, ok := msg.(indicatorMsg)
	if !ok || m.id != l.id || m.tag != l.tag || !l.animating {
		return nil
	}
	if !l.started {
		l.started = true
		l.start = m.time
	}
	l.now = m.time
	if l.now.Sub(l.start) >= IndicatorDuration {
		l.animating = false
		return nil
	}
	return l.frame()
}

// Animating reports whether the indicator is sliding.
func (l *List[V]) Animating() bool {
	return l.animating
}

// Indicator returns the indicator's current box.
func (l *List[V]) Indicator() (Box, bool) {
	if !l.shown {
		return Box{}, false
	}
	if !l.animating {
		return l.to, true
	}
	if !l.started {
		return l.from, true
	}
	p := motion.Progress(l.now.Sub(l.start), IndicatorDuration, IndicatorEasing)
	lerp := func(a, b int) int { return a + int(math.Round(float64(b-a)*p)) }
	return Box{
		X:      lerp(l.from.X, l.to.X),
		Y:      lerp(l.from.Y, l.to.Y),
		Width:  lerp(l.from.Width, l.to.Width),
		Height: lerp(l.from.Height, l.to.Height),
	}, true
}

// View joins the rendered triggers and draws the indicator: an underline
// row for horizontal lists, a bar column for vertical ones.
func (l *List[V]) View(triggers []*Trigger[V], render func(*Trigger[V]) string, indicator lipgloss.Style) string {
	parts := make([]string, len(triggers))
	for i, t := range triggers {
		parts[i] = render(t)
	}
	box, shown := l.Indicator()

	if l.group.orientation == Vertical {
		body := lipgloss.JoinVertical(lipgloss.Left, parts...)
		rows := strings.Split(body, "\n")
		for i := range rows {
			bar := " "
			if shown && i >= box.Y && i < box.Y+box.Height {
				bar = indicator.Render("▌")
			}
			rows[i] = bar + rows[i]
		}
		return strings.Join(rows, "\n")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if !shown {
		return body + "\n"
	}
	x := max(0, box.X)
	w := box.Width - (x - box.X)
	if total := lipgloss.Width(body); x+w > total {
		w = total - x
	}
	if w <= 0 {
		return body + "\n"
	}
	return body + "\n" + strings.Repeat(" ", x) + indicator.Render(strings.Repeat("─", w))
}
