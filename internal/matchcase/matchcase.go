// Package matchcase renders one branch of a value-keyed set of views and
// cross-animates between branches when the value changes.
//
// The host calls Render once per possible case key from its View. Render
// returns a Slot that is Hidden for keys that are neither current nor
// exiting, Active for the current key, and Exiting for the key that was
// current immediately before the last change. The exiting slot stays
// mounted until its exit duration elapses, then disappears.
//
// Timers and animation frames are bubbletea commands. Each Switcher stamps
// its messages with an id and a generation tag so that a tick scheduled
// before a later SetValue is recognised and ignored when it arrives.
package matchcase

import (
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/craftui/craftui/internal/motion"

	tea "github.com/charmbracelet/bubbletea"
)

// ContainerClass marks the wrapping element as a stacking context so the
// active and exiting slots overlap instead of flowing one after the other.
const ContainerClass = "relative grid"

// DefaultFrameRate is the animation tick rate.
const DefaultFrameRate = 60

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Config controls the switcher-level transition.
type Config struct {
	Animation     motion.Animation
	Duration      time.Duration
	Easing        string
	ReducedMotion bool
	FrameRate     int
	Class         string
}

// DefaultConfig returns the fade-up, 220ms configuration.
func DefaultConfig() Config {
	return Config{
		Animation: motion.DefaultAnimation,
		Duration:  motion.DefaultDuration,
		Easing:    motion.DefaultEasing,
		FrameRate: DefaultFrameRate,
	}
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.Animation == "" {
		c.Animation = d.Animation
	}
	if c.Duration <= 0 {
		c.Duration = d.Duration
	}
	if c.Easing == "" {
		c.Easing = d.Easing
	}
	if c.FrameRate <= 0 {
		c.FrameRate = d.FrameRate
	}
	return c
}

// Scheduler delivers fn's message after d. The default is tea.Tick; tests
// substitute one that records the request instead of sleeping.
type Scheduler func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// Option configures a Switcher.
type Option func(*settings)

type settings struct {
	schedule Scheduler
}

// WithScheduler replaces tea.Tick for exit timers and frames.
func WithScheduler(s Scheduler) Option {
	return func(st *settings) {
		st.schedule = s
	}
}

// Kind is the render decision for one case key.
type Kind int

const (
	Hidden Kind = iota
	Active
	Exiting
)

func (k Kind) String() string {
	switch k {
	case Active:
		return "active"
	case Exiting:
		return "exiting"
	default:
		return "hidden"
	}
}

// Slot is the render decision for one case. Hidden slots carry no content.
type Slot struct {
	Kind       Kind
	Content    string
	Transition motion.Transition
	Visual     motion.Visual
	Class      string
	// Z orders overlapping slots; the active slot sits above the exiting one.
	Z int
	// Interactive is false for exiting slots, which must not take input.
	Interactive bool
}

// Visible reports whether the slot renders anything.
func (s Slot) Visible() bool {
	return s.Kind != Hidden
}

// RenderOptions override the switcher configuration for a single case.
type RenderOptions struct {
	Animation motion.Animation
	Duration  time.Duration
	Easing    string
	Class     string
}

// RenderOption sets one field of RenderOptions.
type RenderOption func(*RenderOptions)

func WithAnimation(a motion.Animation) RenderOption {
	return func(o *RenderOptions) { o.Animation = a }
}

func WithDuration(d time.Duration) RenderOption {
	return func(o *RenderOptions) { o.Duration = d }
}

func WithEasing(e string) RenderOption {
	return func(o *RenderOptions) { o.Easing = e }
}

func WithClass(c string) RenderOption {
	return func(o *RenderOptions) { o.Class = c }
}

// ContainerProps are the attributes a host applies, unmodified, to the
// element wrapping every Render call.
type ContainerProps struct {
	Class string
}

type mount struct {
	settled   bool
	settledAt time.Time
}

type expireMsg[V comparable] struct {
	id    int
	tag   int
	value V
}

type frameMsg struct {
	id   int
	tag  int
	time time.Time
}

// Switcher holds the current and exiting values for one view group.
// It is not safe for concurrent use; drive it from a bubbletea Update.
type Switcher[V comparable] struct {
	id       int
	cfg      Config
	schedule Scheduler

	current    V
	exiting    V
	hasExiting bool
	exitTag    int

	active    mount
	leaving   mount
	frameTag  int
	animating bool
	now       time.Time

	caseOpts map[V]RenderOptions
}

// New creates a Switcher showing initial.
func New[V comparable](initial V, cfg Config, opts ...Option) *Switcher[V] {
	st := settings{schedule: tea.Tick}
	for _, opt := range opts {
		opt(&st)
	}
	return &Switcher[V]{
		id:       nextID(),
		cfg:      cfg.normalized(),
		schedule: st.schedule,
		current:  initial,
		caseOpts: make(map[V]RenderOptions),
	}
}

// ID identifies the switcher's messages.
func (s *Switcher[V]) ID() int {
	return s.id
}

// Config returns the active configuration.
func (s *Switcher[V]) Config() Config {
	return s.cfg
}

// Init starts the entrance transition of the initial case.
func (s *Switcher[V]) Init() tea.Cmd {
	return s.startFrames()
}

// Value returns the current discriminant.
func (s *Switcher[V]) Value() V {
	return s.current
}

// Exiting returns the value whose exit is still in flight.
func (s *Switcher[V]) Exiting() (V, bool) {
	return s.exiting, s.hasExiting
}

// Is reports whether the current value is one of cases.
func (s *Switcher[V]) Is(cases ...V) bool {
	return slices.Contains(cases, s.current)
}

// Animating reports whether frame ticks are running.
func (s *Switcher[V]) Animating() bool {
	return s.animating
}

// ContainerProps returns the stacking-context attributes for the wrapper.
func (s *Switcher[V]) ContainerProps() ContainerProps {
	class := ContainerClass
	if s.cfg.Class != "" {
		class += " " + s.cfg.Class
	}
	return ContainerProps{Class: class}
}

// SetCaseOptions registers per-case overrides. Unlike options passed to
// Render, these are known when the case starts exiting, so its exit timer
// uses the overridden duration.
func (s *Switcher[V]) SetCaseOptions(key V, opts ...RenderOption) {
	var ro RenderOptions
	for _, opt := range opts {
		opt(&ro)
	}
	s.caseOpts[key] = ro
}

// SetConfig swaps the configuration. Switching reduced motion on drops any
// exiting slot at once.
func (s *Switcher[V]) SetConfig(cfg Config) tea.Cmd {
	s.cfg = cfg.normalized()
	if s.cfg.ReducedMotion {
		s.dropExiting()
		s.animating = false
		s.frameTag++
		return nil
	}
	return nil
}

// SetValue commits next as the current case. The previous case becomes the
// exiting slot and a one-shot timer is scheduled to clear it; any earlier
// timer is superseded. Setting the current value again does nothing.
func (s *Switcher[V]) SetValue(next V) tea.Cmd {
	if next == s.current {
		return nil
	}

	previous := s.current
	s.current = next
	s.active = mount{}
	s.exitTag++

	if s.cfg.ReducedMotion {
		s.dropExiting()
		return nil
	}

	s.exiting = previous
	s.hasExiting = true
	s.leaving = mount{}

	id, tag := s.id, s.exitTag
	expire := s.schedule(s.exitDuration(previous), func(time.Time) tea.Msg {
		return expireMsg[V]{id: id, tag: tag, value: previous}
	})
	return tea.Batch(expire, s.startFrames())
}

func (s *Switcher[V]) dropExiting() {
	var zero V
	s.exiting = zero
	s.hasExiting = false
	s.leaving = mount{}
}

func (s *Switcher[V]) exitDuration(key V) time.Duration {
	if ro, ok := s.caseOpts[key]; ok && ro.Duration > 0 {
		return ro.Duration
	}
	return s.cfg.Duration
}

// Update consumes the switcher's own timer and frame messages. Messages
// from other switchers and superseded generations are ignored.
func (s *Switcher[V]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case expireMsg[V]:
		if msg.id != s.id || msg.tag != s.exitTag {
			return nil
		}
		if s.hasExiting && s.exiting == msg.value {
			s.dropExiting()
		}
		return nil

	case frameMsg:
		if msg.id != s.id || msg.tag != s.frameTag {
			return nil
		}
		s.now = msg.time
		for _, m := range []*mount{&s.active, &s.leaving} {
			if !m.settled {
				m.settled = true
				m.settledAt = msg.time
			}
		}
		if s.running() {
			return s.frame()
		}
		s.animating = false
		return nil
	}
	return nil
}

// startFrames begins a new frame chain, abandoning any chain in flight.
func (s *Switcher[V]) startFrames() tea.Cmd {
	s.frameTag++
	if !s.anyAnimates() {
		s.animating = false
		return nil
	}
	s.animating = true
	return s.frame()
}

func (s *Switcher[V]) frame() tea.Cmd {
	id, tag := s.id, s.frameTag
	return s.schedule(time.Second/time.Duration(s.cfg.FrameRate), func(t time.Time) tea.Msg {
		return frameMsg{id: id, tag: tag, time: t}
	})
}

func (s *Switcher[V]) anyAnimates() bool {
	if motion.Animates(s.resolve(s.current, nil).Animation, s.cfg.ReducedMotion) {
		return true
	}
	return s.hasExiting && motion.Animates(s.resolve(s.exiting, nil).Animation, s.cfg.ReducedMotion)
}

// running reports whether any mounted slot is still mid-transition.
func (s *Switcher[V]) running() bool {
	if !s.transition(s.current, nil).Done(s.cfg.ReducedMotion, s.active.settled, s.now.Sub(s.active.settledAt)) {
		return true
	}
	if s.hasExiting {
		return !s.transition(s.exiting, nil).Done(s.cfg.ReducedMotion, s.leaving.settled, s.now.Sub(s.leaving.settledAt))
	}
	return false
}

func (s *Switcher[V]) resolve(key V, opts []RenderOption) RenderOptions {
	ro := RenderOptions{
		Animation: s.cfg.Animation,
		Duration:  s.cfg.Duration,
		Easing:    s.cfg.Easing,
	}
	if c, ok := s.caseOpts[key]; ok {
		ro = merge(ro, c)
	}
	if len(opts) > 0 {
		var call RenderOptions
		for _, opt := range opts {
			opt(&call)
		}
		ro = merge(ro, call)
	}
	return ro
}

func merge(base, over RenderOptions) RenderOptions {
	if over.Animation != "" {
		base.Animation = over.Animation
	}
	if over.Duration > 0 {
		base.Duration = over.Duration
	}
	if over.Easing != "" {
		base.Easing = over.Easing
	}
	if over.Class != "" {
		base.Class = over.Class
	}
	return base
}

func (s *Switcher[V]) transition(key V, opts []RenderOption) motion.Transition {
	ro := s.resolve(key, opts)
	return motion.Transition{Animation: ro.Animation, Duration: ro.Duration, Easing: ro.Easing}
}

// KindOf returns the render decision for key without building a slot.
func (s *Switcher[V]) KindOf(key V) Kind {
	switch {
	case key == s.current:
		return Active
	case s.hasExiting && key == s.exiting:
		return Exiting
	default:
		return Hidden
	}
}

// Render returns the slot for one case. Options override the switcher
// configuration for this slot only.
func (s *Switcher[V]) Render(key V, content string, opts ...RenderOption) Slot {
	kind := s.KindOf(key)
	if kind == Hidden {
		return Slot{Kind: Hidden}
	}

	ro := s.resolve(key, opts)
	tr := motion.Transition{Animation: ro.Animation, Duration: ro.Duration, Easing: ro.Easing}

	role, m := motion.Entering, s.active
	slot := Slot{Kind: kind, Content: content, Transition: tr, Class: ro.Class, Z: 10, Interactive: true}
	if kind == Exiting {
		role, m = motion.Exiting, s.leaving
		slot.Z = 0
		slot.Interactive = false
	}

	if m.settled && !s.animating {
		// The frame chain ended; nothing is left mid-flight.
		slot.Visual = motion.Pair(tr.Animation, role).To
	} else {
		slot.Visual = tr.At(role, s.cfg.ReducedMotion, m.settled, s.now.Sub(m.settledAt))
	}
	return slot
}

// Stack overlays visible slots in the same cells, lowest Z first. For each
// row the highest slot with non-blank content wins.
func Stack(paint func(Slot) string, slots ...Slot) string {
	visible := make([]Slot, 0, len(slots))
	for _, sl := range slots {
		if sl.Visible() {
			visible = append(visible, sl)
		}
	}
	slices.SortStableFunc(visible, func(a, b Slot) int { return a.Z - b.Z })

	var rows []string
	for _, sl := range visible {
		for i, line := range strings.Split(paint(sl), "\n") {
			if i >= len(rows) {
				rows = append(rows, line)
				continue
			}
			if strings.TrimSpace(ansi.Strip(line)) != "" {
				rows[i] = line
			}
		}
	}
	return strings.Join(rows, "\n")
}
