// Package tabs implements a tab group with controlled or uncontrolled
// selection, roving keyboard focus, and automatic or manual activation.
//
// A Group owns selection and an ordered registry of triggers. Triggers are
// created with NewTrigger and held by the host; the registry keeps only weak
// references, so a trigger the host drops simply stops taking part in focus
// movement. The group draws nothing; List renders triggers and the sliding
// selection indicator.
package tabs

import (
	"fmt"
	"strings"
	"sync"
	"weak"

	"github.com/craftui/craftui/internal/errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Orientation decides which arrow keys move focus.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ParseOrientation accepts "horizontal" and "vertical".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	}
	return Horizontal, errors.NewValidationError("must be horizontal or vertical").WithField("orientation").WithValue(s)
}

// ActivationMode decides whether moving focus also selects.
type ActivationMode int

const (
	Automatic ActivationMode = iota
	Manual
)

func (m ActivationMode) String() string {
	if m == Manual {
		return "manual"
	}
	return "automatic"
}

// ParseActivationMode accepts "automatic" and "manual".
func ParseActivationMode(s string) (ActivationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "automatic":
		return Automatic, nil
	case "manual":
		return Manual, nil
	}
	return Automatic, errors.NewValidationError("must be automatic or manual").WithField("activation_mode").WithValue(s)
}

// Key is a focus navigation key.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
)

// Config configures a Group. The group is controlled when Value is set;
// otherwise it owns its selection, seeded from DefaultValue.
type Config[V comparable] struct {
	Value          *V
	DefaultValue   *V
	OnValueChange  func(V)
	Orientation    Orientation
	ActivationMode ActivationMode
	// BaseID prefixes trigger and panel ids. Defaults to "tabs-<n>".
	BaseID string
}

type entry[V comparable] struct {
	value V
	ref   weak.Pointer[Trigger[V]]
}

var (
	idMu   sync.Mutex
	nextID int
)

func newBaseID() string {
	idMu.Lock()
	defer idMu.Unlock()
	nextID++
	return fmt.Sprintf("tabs-%d", nextID)
}

// Group is the selection and focus state of one tab set.
type Group[V comparable] struct {
	orientation Orientation
	mode        ActivationMode
	baseID      string
	onChange    func(V)
	controlled  bool

	selected    V
	hasSelected bool
	focused     V
	hasFocus    bool

	mu       sync.Mutex
	registry []entry[V]
}

// New creates a Group.
func New[V comparable](cfg Config[V]) *Group[V] {
	g := &Group[V]{
		orientation: cfg.Orientation,
		mode:        cfg.ActivationMode,
		baseID:      cfg.BaseID,
		onChange:    cfg.OnValueChange,
		controlled:  cfg.Value != nil,
	}
	if g.baseID == "" {
		g.baseID = newBaseID()
	}
	switch {
	case cfg.Value != nil:
		g.selected, g.hasSelected = *cfg.Value, true
	case cfg.DefaultValue != nil:
		g.selected, g.hasSelected = *cfg.DefaultValue, true
	}
	return g
}

// Orientation returns the group's orientation.
func (g *Group[V]) Orientation() Orientation { return g.orientation }

// ActivationMode returns the group's activation mode.
func (g *Group[V]) ActivationMode() ActivationMode { return g.mode }

// Controlled reports whether the host owns the selection.
func (g *Group[V]) Controlled() bool { return g.controlled }

// BaseID returns the id prefix of the group's triggers and panels.
func (g *Group[V]) BaseID() string { return g.baseID }

// Selected returns the selected value.
func (g *Group[V]) Selected() (V, bool) {
	return g.selected, g.hasSelected
}

// IsSelected reports whether v is selected.
func (g *Group[V]) IsSelected(v V) bool {
	return g.hasSelected && g.selected == v
}

// Select requests v. An uncontrolled group adopts it; a controlled group
// leaves its selection alone and only notifies the host, which feeds the
// value back with SetValue.
func (g *Group[V]) Select(v V) {
	if !g.controlled {
		g.selected, g.hasSelected = v, true
	}
	if g.onChange != nil {
		g.onChange(v)
	}
}

// SetValue sets the selection without notifying. Controlled hosts call it
// with the value they own.
func (g *Group[V]) SetValue(v V) {
	g.selected, g.hasSelected = v, true
}

// Focused returns the trigger value holding keyboard focus.
func (g *Group[V]) Focused() (V, bool) {
	return g.focused, g.hasFocus
}

// Focus moves keyboard focus to v without selecting it.
func (g *Group[V]) Focus(v V) {
	g.focused, g.hasFocus = v, true
}

// Blur clears keyboard focus.
func (g *Group[V]) Blur() {
	var zero V
	g.focused, g.hasFocus = zero, false
}

// RegisterTrigger adds t under v and returns a function that removes it.
// Registering a value again replaces its trigger in place, keeping its
// position. A nil trigger removes v. The returned function may be called
// any number of times; it removes the entry only while it still holds t.
func (g *Group[V]) RegisterTrigger(v V, t *Trigger[V]) func() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if t == nil {
		g.removeLocked(v, nil)
		return func() {}
	}

	ref := weak.Make(t)
	replaced := false
	for i := range g.registry {
		if g.registry[i].value == v {
			g.registry[i].ref = ref
			replaced = true
			break
		}
	}
	if !replaced {
		g.registry = append(g.registry, entry[V]{value: v, ref: ref})
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			g.removeLocked(v, t)
		})
	}
}

// removeLocked deletes v's entry; when t is non-nil only if it still maps
// to t.
func (g *Group[V]) removeLocked(v V, t *Trigger[V]) {
	for i, e := range g.registry {
		if e.value != v {
			continue
		}
		if t != nil && e.ref.Value() != t {
			return
		}
		g.registry = append(g.registry[:i], g.registry[i+1:]...)
		return
	}
}

// Trigger returns the live trigger registered under v.
func (g *Group[V]) Trigger(v V) (*Trigger[V], bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, e := range g.registry {
		if e.value == v {
			t := e.ref.Value()
			return t, t != nil
		}
	}
	return nil, false
}

// Triggers returns the live triggers in registration order, disabled ones
// included.
func (g *Group[V]) Triggers() []*Trigger[V] {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*Trigger[V], 0, len(g.registry))
	for _, e := range g.registry {
		if t := e.ref.Value(); t != nil {
			out = append(out, t)
		}
	}
	return out
}

func (g *Group[V]) enabled() []*Trigger[V] {
	all := g.Triggers()
	out := all[:0]
	for _, t := range all {
		if !t.Disabled() {
			out = append(out, t)
		}
	}
	return out
}

func (g *Group[V]) direction(k Key) int {
	switch k {
	case KeyUp:
		return -1
	case KeyDown:
		return 1
	case KeyLeft:
		if g.orientation == Horizontal {
			return -1
		}
	case KeyRight:
		if g.orientation == Horizontal {
			return 1
		}
	}
	return 0
}

// MoveFocus moves focus from the trigger for from according to key and
// returns the newly focused value. Only enabled triggers take part; an
// unknown from counts as the first of them. In automatic mode the target is
// also selected. Keys that do not apply to the orientation do nothing.
func (g *Group[V]) MoveFocus(from V, key Key) (V, bool) {
	var zero V
	items := g.enabled()
	if len(items) == 0 {
		return zero, false
	}

	current := 0
	for i, t := range items {
		if t.value == from {
			current = i
			break
		}
	}

	next := current
	switch {
	case key == KeyHome:
		next = 0
	case key == KeyEnd:
		next = len(items) - 1
	case g.direction(key) != 0:
		next = (current + g.direction(key) + len(items)) % len(items)
	default:
		return zero, false
	}

	target := items[next]
	target.Focus()
	if g.mode == Automatic {
		g.Select(target.value)
	}
	return target.value, true
}

// KeyFromMsg maps navigation keys to a Key.
func KeyFromMsg(msg tea.KeyMsg) (Key, bool) {
	switch msg.String() {
	case "left":
		return KeyLeft, true
	case "right":
		return KeyRight, true
	case "up":
		return KeyUp, true
	case "down":
		return KeyDown, true
	case "home":
		return KeyHome, true
	case "end":
		return KeyEnd, true
	}
	return 0, false
}

// HandleKey routes a key pressed on the trigger for from. Navigation keys
// move focus; Enter and Space select from. It reports whether the key was
// consumed.
func (g *Group[V]) HandleKey(from V, msg tea.KeyMsg) bool {
	if k, ok := KeyFromMsg(msg); ok {
		g.MoveFocus(from, k)
		return true
	}
	switch msg.String() {
	case "enter", " ":
		if t, ok := g.Trigger(from); ok && t.Disabled() {
			return true
		}
		g.Select(from)
		return true
	}
	return false
}

// Trigger is one tab button.
type Trigger[V comparable] struct {
	group      *Group[V]
	value      V
	Label      string
	disabled   bool
	unregister func()
}

// NewTrigger creates a trigger and registers it with g. It panics when g is
// nil: a trigger outside a group is a programming error.
func NewTrigger[V comparable](g *Group[V], v V, label string) *Trigger[V] {
	if g == nil {
		panic("tabs: Trigger must be used within a Group")
	}
	t := &Trigger[V]{group: g, value: v, Label: label}
	t.unregister = g.RegisterTrigger(v, t)
	return t
}

// Value returns the trigger's value.
func (t *Trigger[V]) Value() V { return t.value }

// Disabled reports whether the trigger is skipped by focus movement.
func (t *Trigger[V]) Disabled() bool {
	t.group.mu.Lock()
	defer t.group.mu.Unlock()
	return t.disabled
}

// SetDisabled enables or disables the trigger.
func (t *Trigger[V]) SetDisabled(d bool) {
	t.group.mu.Lock()
	defer t.group.mu.Unlock()
	t.disabled = d
}

// Focus gives the trigger keyboard focus.
func (t *Trigger[V]) Focus() {
	t.group.Focus(t.value)
}

// Focused reports whether the trigger has keyboard focus.
func (t *Trigger[V]) Focused() bool {
	f, ok := t.group.Focused()
	return ok && f == t.value
}

// Selected reports whether the trigger's value is selected.
func (t *Trigger[V]) Selected() bool {
	return t.group.IsSelected(t.value)
}

// Click selects the trigger unless it is disabled.
func (t *Trigger[V]) Click() {
	if t.Disabled() {
		return
	}
	t.Focus()
	t.group.Select(t.value)
}

// State is "active" for the selected trigger and "inactive" otherwise.
func (t *Trigger[V]) State() string {
	if t.Selected() {
		return "active"
	}
	return "inactive"
}

// TabIndex is 0 for the selected trigger and -1 for the rest, so only the
// selected tab is reachable with Tab.
func (t *Trigger[V]) TabIndex() int {
	if t.Selected() {
		return 0
	}
	return -1
}

// ID is the trigger's element id.
func (t *Trigger[V]) ID() string {
	return fmt.Sprintf("%s-trigger-%v", t.group.baseID, t.value)
}

// ControlsID is the id of the panel the trigger controls.
func (t *Trigger[V]) ControlsID() string {
	return fmt.Sprintf("%s-content-%v", t.group.baseID, t.value)
}

// Close unregisters the trigger. It is safe to call more than once.
func (t *Trigger[V]) Close() {
	t.unregister()
}

// Panel describes how the content for one value renders.
type Panel struct {
	// Mounted is false when the panel renders nothing at all.
	Mounted bool
	// Hidden is true for a force-mounted panel that is not selected.
	Hidden     bool
	State      string
	ID         string
	LabelledBy string
}

// PanelState reports how the content for v renders. Unselected panels are
// not mounted unless forceMount is set, in which case they mount hidden.
func (g *Group[V]) PanelState(v V, forceMount bool) Panel {
	selected := g.IsSelected(v)
	if !selected && !forceMount {
		return Panel{}
	}
	p := Panel{
		Mounted:    true,
		Hidden:     !selected,
		State:      "inactive",
		ID:         fmt.Sprintf("%s-content-%v", g.baseID, v),
		LabelledBy: fmt.Sprintf("%s-trigger-%v", g.baseID, v),
	}
	if selected {
		p.State = "active"
	}
	return p
}
