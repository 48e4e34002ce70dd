package tabs

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/craftui/craftui/internal/errors"

	tea "github.com/charmbracelet/bubbletea"
)

func ptr[V any](v V) *V { return &v }

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// newGroup registers one trigger per value and keeps them alive for the
// test's duration.
func newGroup(t *testing.T, cfg Config[string], values ...string) (*Group[string], []*Trigger[string]) {
	t.Helper()
	g := New(cfg)
	triggers := make([]*Trigger[string], len(values))
	for i, v := range values {
		triggers[i] = NewTrigger(g, v, strings.ToUpper(v))
	}
	t.Cleanup(func() { runtime.KeepAlive(triggers) })
	return g, triggers
}

func TestGroup_Uncontrolled(t *testing.T) {
	var changes []string
	g, _ := newGroup(t, Config[string]{
		DefaultValue:  ptr("account"),
		OnValueChange: func(v string) { changes = append(changes, v) },
	}, "account", "password")

	if v, ok := g.Selected(); !ok || v != "account" {
		t.Fatalf("Selected() = %q, %v", v, ok)
	}
	g.Select("password")
	if !g.IsSelected("password") {
		t.Error("uncontrolled groups adopt the selection")
	}
	if len(changes) != 1 || changes[0] != "password" {
		t.Errorf("changes = %v", changes)
	}
}

func TestGroup_NoDefault(t *testing.T) {
	g := New(Config[string]{})
	if _, ok := g.Selected(); ok {
		t.Error("no selection without a value or default")
	}
	if g.Controlled() {
		t.Error("groups without Value are uncontrolled")
	}
}

func TestGroup_Controlled(t *testing.T) {
	var changes []string
	g, _ := newGroup(t, Config[string]{
		Value:         ptr("a"),
		OnValueChange: func(v string) { changes = append(changes, v) },
	}, "a", "b")

	g.Select("b")
	if !g.IsSelected("a") {
		t.Error("controlled groups only notify")
	}
	if len(changes) != 1 || changes[0] != "b" {
		t.Errorf("changes = %v", changes)
	}

	g.SetValue("b")
	if !g.IsSelected("b") {
		t.Error("SetValue feeds the host's value back")
	}
}

func TestGroup_MoveFocusHorizontal(t *testing.T) {
	g, _ := newGroup(t, Config[string]{DefaultValue: ptr("a")}, "a", "b", "c")

	tests := []struct {
		from string
		key  Key
		want string
	}{
		{"a", KeyRight, "b"},
		{"c", KeyRight, "a"},
		{"a", KeyLeft, "c"},
		{"b", KeyUp, "a"},
		{"b", KeyDown, "c"},
		{"b", KeyHome, "a"},
		{"a", KeyEnd, "c"},
		{"missing", KeyRight, "b"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.from, tt.key), func(t *testing.T) {
			got, ok := g.MoveFocus(tt.from, tt.key)
			if !ok || got != tt.want {
				t.Errorf("MoveFocus(%q, %d) = %q, %v, want %q", tt.from, tt.key, got, ok, tt.want)
			}
			if f, _ := g.Focused(); f != tt.want {
				t.Errorf("focus = %q, want %q", f, tt.want)
			}
			if !g.IsSelected(tt.want) {
				t.Error("automatic mode selects the focused trigger")
			}
		})
	}
}

func TestGroup_MoveFocusVertical(t *testing.T) {
	g, _ := newGroup(t, Config[string]{Orientation: Vertical}, "a", "b", "c")

	if got, _ := g.MoveFocus("a", KeyDown); got != "b" {
		t.Errorf("down = %q", got)
	}
	if got, _ := g.MoveFocus("a", KeyUp); got != "c" {
		t.Errorf("up wraps to %q", got)
	}
	for _, k := range []Key{KeyLeft, KeyRight} {
		if _, ok := g.MoveFocus("a", k); ok {
			t.Errorf("key %d should do nothing in a vertical group", k)
		}
	}
}

func TestGroup_MoveFocusSkipsDisabled(t *testing.T) {
	g, triggers := newGroup(t, Config[string]{}, "a", "b", "c")
	triggers[1].SetDisabled(true)

	if got, _ := g.MoveFocus("a", KeyRight); got != "c" {
		t.Errorf("disabled trigger not skipped: %q", got)
	}
	if got, _ := g.MoveFocus("c", KeyRight); got != "a" {
		t.Errorf("wrap = %q", got)
	}
}

func TestGroup_MoveFocusEmpty(t *testing.T) {
	g := New(Config[string]{})
	if _, ok := g.MoveFocus("a", KeyRight); ok {
		t.Error("no triggers means no movement")
	}
	if _, ok := g.Focused(); ok {
		t.Error("focus must stay unset")
	}
}

func TestGroup_ManualActivation(t *testing.T) {
	g, _ := newGroup(t, Config[string]{DefaultValue: ptr("a"), ActivationMode: Manual}, "a", "b", "c")

	if !g.HandleKey("a", keyMsg("right")) {
		t.Fatal("arrow keys are consumed")
	}
	if f, _ := g.Focused(); f != "b" {
		t.Errorf("focus = %q, want b", f)
	}
	if !g.IsSelected("a") {
		t.Error("manual mode must not select on focus movement")
	}

	for _, k := range []string{"enter", " "} {
		g.SetValue("a")
		if !g.HandleKey("b", keyMsg(k)) {
			t.Errorf("%q should be consumed", k)
		}
		if !g.IsSelected("b") {
			t.Errorf("%q should activate the focused trigger", k)
		}
	}

	if g.HandleKey("b", keyMsg("x")) {
		t.Error("other keys pass through")
	}
}

func TestGroup_DisabledTriggerIgnoresActivation(t *testing.T) {
	g, triggers := newGroup(t, Config[string]{DefaultValue: ptr("a"), ActivationMode: Manual}, "a", "b")
	triggers[1].SetDisabled(true)

	g.HandleKey("b", keyMsg("enter"))
	triggers[1].Click()
	if !g.IsSelected("a") {
		t.Error("disabled triggers cannot be activated")
	}
}

func TestGroup_Registry(t *testing.T) {
	g := New(Config[string]{})
	a := NewTrigger(g, "a", "A")
	b := NewTrigger(g, "b", "B")
	c := NewTrigger(g, "c", "C")

	// Re-registering keeps the original position.
	a2 := &Trigger[string]{group: g, value: "a", Label: "A2"}
	unregisterA2 := g.RegisterTrigger("a", a2)

	got := g.Triggers()
	if len(got) != 3 || got[0] != a2 || got[1] != b || got[2] != c {
		t.Fatalf("Triggers() order wrong: %v", got)
	}

	// The first registration no longer owns "a", so its unregister is a no-op.
	a.Close()
	if tr, ok := g.Trigger("a"); !ok || tr != a2 {
		t.Error("a stale unregister removed the replacement")
	}

	unregisterA2()
	unregisterA2()
	if _, ok := g.Trigger("a"); ok {
		t.Error("a should be gone")
	}
	if len(g.Triggers()) != 2 {
		t.Errorf("idempotent unregister removed too much: %d left", len(g.Triggers()))
	}

	g.RegisterTrigger("b", nil)
	if _, ok := g.Trigger("b"); ok {
		t.Error("a nil trigger removes the value")
	}
	runtime.KeepAlive(c)
}

func TestGroup_RegistryHoldsWeakReferences(t *testing.T) {
	g := New(Config[string]{})
	keep := NewTrigger(g, "keep", "Keep")
	func() {
		NewTrigger(g, "drop", "Drop")
	}()

	for range 5 {
		runtime.GC()
		if len(g.Triggers()) == 1 {
			break
		}
	}
	if got := g.Triggers(); len(got) != 1 || got[0] != keep {
		t.Errorf("registry should not keep dropped triggers alive, got %d", len(got))
	}
	runtime.KeepAlive(keep)
}

func TestGroup_ConcurrentRegistration(t *testing.T) {
	g := New(Config[int]{})
	triggers := make([]*Trigger[int], 50)

	var wg sync.WaitGroup
	for i := range triggers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			triggers[i] = NewTrigger(g, i, fmt.Sprint(i))
			if i%2 == 1 {
				triggers[i].Close()
			}
		}(i)
	}
	wg.Wait()

	got := g.Triggers()
	if len(got) != 25 {
		t.Fatalf("expected 25 triggers, got %d", len(got))
	}
	seen := make(map[int]bool)
	for _, tr := range got {
		if tr.Value()%2 != 0 || seen[tr.Value()] {
			t.Errorf("unexpected trigger %d", tr.Value())
		}
		seen[tr.Value()] = true
	}
	runtime.KeepAlive(triggers)
}

func TestNewTriggerWithoutGroupPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	NewTrigger[string](nil, "a", "A")
}

func TestTrigger_Attributes(t *testing.T) {
	g, triggers := newGroup(t, Config[string]{DefaultValue: ptr("a"), BaseID: "settings"}, "a", "b")
	a, b := triggers[0], triggers[1]

	if a.State() != "active" || b.State() != "inactive" {
		t.Errorf("states = %q, %q", a.State(), b.State())
	}
	if a.TabIndex() != 0 || b.TabIndex() != -1 {
		t.Error("only the selected trigger is tabbable")
	}
	if a.ID() != "settings-trigger-a" || a.ControlsID() != "settings-content-a" {
		t.Errorf("ids = %q, %q", a.ID(), a.ControlsID())
	}

	b.Click()
	if !b.Selected() || !b.Focused() {
		t.Error("click focuses and selects")
	}
	if g.BaseID() != "settings" {
		t.Errorf("BaseID() = %q", g.BaseID())
	}
}

func TestGroup_GeneratedBaseIDsDiffer(t *testing.T) {
	if New(Config[string]{}).BaseID() == New(Config[string]{}).BaseID() {
		t.Error("generated base ids must be unique")
	}
}

func TestGroup_PanelState(t *testing.T) {
	g := New(Config[string]{DefaultValue: ptr("a"), BaseID: "x"})

	if p := g.PanelState("b", false); p.Mounted {
		t.Error("unselected panels are not mounted")
	}
	p := g.PanelState("b", true)
	if !p.Mounted || !p.Hidden || p.State != "inactive" {
		t.Errorf("force-mounted panel = %+v", p)
	}
	p = g.PanelState("a", false)
	if !p.Mounted || p.Hidden || p.State != "active" {
		t.Errorf("selected panel = %+v", p)
	}
	if p.ID != "x-content-a" || p.LabelledBy != "x-trigger-a" {
		t.Errorf("ids = %q, %q", p.ID, p.LabelledBy)
	}
}

func TestParseOrientationAndMode(t *testing.T) {
	if o, err := ParseOrientation("Vertical"); err != nil || o != Vertical {
		t.Errorf("ParseOrientation = %v, %v", o, err)
	}
	if _, err := ParseOrientation("diagonal"); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("expected a validation error, got %v", err)
	}
	if m, err := ParseActivationMode("manual"); err != nil || m != Manual {
		t.Errorf("ParseActivationMode = %v, %v", m, err)
	}
	if _, err := ParseActivationMode("eager"); err == nil {
		t.Error("expected an error")
	}
	if Vertical.String() != "vertical" || Manual.String() != "manual" {
		t.Error("String() mismatch")
	}
}

type frames struct {
	calls []func(time.Time) tea.Msg
}

func (f *frames) schedule(_ time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	f.calls = append(f.calls, fn)
	return func() tea.Msg { return fn(time.Now()) }
}

func (f *frames) fire(l *List[string], at time.Time) {
	l.Update(f.calls[len(f.calls)-1](at))
}

func label(t *Trigger[string]) string {
	return lipgloss.NewStyle().Padding(0, 1).Render(t.Label)
}

func TestList_Indicator(t *testing.T) {
	g, triggers := newGroup(t, Config[string]{DefaultValue: ptr("one")}, "one", "three")
	f := &frames{}
	l := NewList(g, WithListScheduler[string](f.schedule))

	boxes := l.Measure(triggers, label)
	if boxes["one"] != (Box{X: 0, Y: 0, Width: 5, Height: 1}) || boxes["three"] != (Box{X: 5, Y: 0, Width: 7, Height: 1}) {
		t.Fatalf("Measure() = %+v", boxes)
	}

	if cmd := l.Observe(boxes); cmd != nil {
		t.Error("the first placement jumps into position")
	}
	if box, ok := l.Indicator(); !ok || box != (Box{X: -1, Width: 7, Height: 1}) {
		t.Errorf("Indicator() = %+v, %v", box, ok)
	}

	g.Select("three")
	if l.Sync() == nil {
		t.Fatal("a selection change should slide the indicator")
	}
	t0 := time.Unix(0, 0)
	f.fire(l, t0)
	if box, _ := l.Indicator(); box.X != -1 {
		t.Errorf("slide should start from the old box, got %+v", box)
	}
	f.fire(l, t0.Add(125*time.Millisecond))
	if box, _ := l.Indicator(); box.X <= -1 || box.X >= 4 {
		t.Errorf("mid-slide box = %+v", box)
	}
	f.fire(l, t0.Add(300*time.Millisecond))
	if l.Animating() {
		t.Error("the slide should finish after 250ms")
	}
	if box, _ := l.Indicator(); box != (Box{X: 4, Width: 9, Height: 1}) {
		t.Errorf("final box = %+v", box)
	}

	// A resize re-measures and retargets.
	boxes["three"] = Box{X: 6, Width: 7, Height: 1}
	if l.Observe(boxes) == nil {
		t.Error("geometry changes should retarget the indicator")
	}
}

func TestList_ReducedMotionAndHide(t *testing.T) {
	g, triggers := newGroup(t, Config[string]{DefaultValue: ptr("a")}, "a", "b")
	f := &frames{}
	l := NewList(g, WithListScheduler[string](f.schedule), WithReducedMotion[string](true))
	l.Observe(l.Measure(triggers, label))

	g.Select("b")
	if l.Sync() != nil {
		t.Error("reduced motion jumps")
	}
	if box, _ := l.Indicator(); box.X != 2 {
		t.Errorf("Indicator() = %+v", box)
	}

	g.SetValue("zzz")
	l.Sync()
	if _, ok := l.Indicator(); ok {
		t.Error("no indicator without a measured selected trigger")
	}
}

func TestList_View(t *testing.T) {
	g, triggers := newGroup(t, Config[string]{DefaultValue: ptr("a")}, "a", "b")
	l := NewList(g)
	l.Observe(l.Measure(triggers, label))

	out := l.View(triggers, label, lipgloss.NewStyle())
	lines := strings.Split(out, "\n")
	if len(lines) != 2 || lines[0] != " A  B " {
		t.Fatalf("View() = %q", out)
	}
	if lines[1] != "────" {
		t.Errorf("indicator row = %q", lines[1])
	}

	vg, vtriggers := newGroup(t, Config[string]{DefaultValue: ptr("b"), Orientation: Vertical}, "a", "b")
	vl := NewList(vg)
	vl.Observe(vl.Measure(vtriggers, label))
	out = vl.View(vtriggers, label, lipgloss.NewStyle())
	if out != "  A \n▌ B " {
		t.Errorf("vertical View() = %q", out)
	}
}
