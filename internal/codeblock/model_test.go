package codeblock

import (
	"bytes"
	"encoding/base64"
	"os"
	"strings"
	"testing"

	"github.com/craftui/craftui/internal/errors"
	"github.com/craftui/craftui/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

type fakeClipboard struct {
	got []string
	err error
}

func (f *fakeClipboard) Copy(text string) error {
	f.got = append(f.got, text)
	return f.err
}

func newTestModel(p Props, clip Clipboard) (*Model, *recorder) {
	r := &recorder{}
	return NewModel(p, WithClipboard(clip), WithScheduler(r.schedule)), r
}

func view(m *Model) string {
	return zone.Scan(m.View())
}

func tabbedProps() Props {
	p := DefaultProps()
	p.Tabs = []Tab{
		{ID: "npm", Label: "NPM", Code: "npm install craftui", Language: "bash"},
		{ID: "pnpm", Label: "PNPM", Code: "pnpm add craftui", Language: "bash"},
	}
	return p
}

func TestModel_Header(t *testing.T) {
	t.Run("filename and language", func(t *testing.T) {
		p := DefaultProps()
		p.Code = "fmt.Println(1)"
		p.Language = "go"
		p.Filename = "main.go"
		m, _ := newTestModel(p, &fakeClipboard{})

		out := view(m)
		for _, want := range []string{"main.go", "GO", "COPY", "fmt.Println(1)"} {
			if !strings.Contains(out, want) {
				t.Errorf("view missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("language defaults to text", func(t *testing.T) {
		m, _ := newTestModel(Props{Code: "x"}, &fakeClipboard{})
		if m.Language() != "text" {
			t.Errorf("Language() = %q", m.Language())
		}
	})

	t.Run("tabs replace the filename", func(t *testing.T) {
		m, _ := newTestModel(tabbedProps(), &fakeClipboard{})
		out := view(m)
		if !strings.Contains(out, "npm") || !strings.Contains(out, "pnpm") {
			t.Errorf("tab labels missing:\n%s", out)
		}
		if strings.Contains(out, "BASH") {
			t.Error("language is not shown when tabs are present")
		}
	})
}

func TestModel_Tabs(t *testing.T) {
	m, _ := newTestModel(tabbedProps(), &fakeClipboard{})

	if m.ActiveTab() != "npm" || m.Code() != "npm install craftui" {
		t.Fatalf("first tab should be active, got %q", m.ActiveTab())
	}

	m.SelectTab("pnpm")
	if m.Code() != "pnpm add craftui" {
		t.Errorf("Code() = %q", m.Code())
	}
	if m.SelectTab("yarn") != nil || m.ActiveTab() != "pnpm" {
		t.Error("unknown tab ids are ignored")
	}

	m.CycleTab(1)
	if m.ActiveTab() != "npm" {
		t.Errorf("CycleTab should wrap, got %q", m.ActiveTab())
	}
	m.CycleTab(-1)
	if m.ActiveTab() != "pnpm" {
		t.Errorf("CycleTab(-1) = %q", m.ActiveTab())
	}

	// Removing the active tab falls back to the first.
	p := tabbedProps()
	p.Tabs = p.Tabs[:1]
	m.SetProps(p)
	if m.ActiveTab() != "npm" || m.Block().Text() != "npm install craftui" {
		t.Errorf("active = %q, text = %q", m.ActiveTab(), m.Block().Text())
	}
}

func TestModel_TabSwitchKeepsExpansion(t *testing.T) {
	p := DefaultProps()
	p.Tabs = []Tab{
		{ID: "a", Label: "A", Code: listing(20)},
		{ID: "b", Label: "B", Code: listing(30)},
	}
	m, _ := newTestModel(p, &fakeClipboard{})

	m.Toggle()
	m.SelectTab("b")
	if !m.Block().Expanded() || len(m.Block().VisibleLines()) != 30 {
		t.Error("expansion should carry over to the new tab")
	}
}

func TestModel_Affordances(t *testing.T) {
	m, r := newTestModel(func() Props {
		p := DefaultProps()
		p.Code = listing(500)
		return p
	}(), &fakeClipboard{})

	if out := view(m); !strings.Contains(out, "Show more (494 lines)") {
		t.Errorf("collapsed view should offer show more:\n%s", out)
	}

	m.Toggle()
	out := view(m)
	if !strings.Contains(out, "Rendering 260 more lines...") {
		t.Errorf("expanding view should report pending lines:\n%s", out)
	}
	if !strings.Contains(out, "Show less") {
		t.Error("expanded view should offer show less")
	}

	for m.Block().State() == Expanding {
		m.Update(r.last(t))
	}
	out = view(m)
	if strings.Contains(out, "Rendering") || strings.Contains(out, "Show more") {
		t.Errorf("finished view still shows progress:\n%s", out)
	}
	if !strings.Contains(out, "line 500") {
		t.Error("last line should render once revealed")
	}
}

func TestModel_LineNumbersAndWrap(t *testing.T) {
	p := DefaultProps()
	p.Code = "short\n" + strings.Repeat("x", 60)
	p.Wrap = true
	p.ShowLineNumbers = false
	m, _ := newTestModel(p, &fakeClipboard{})
	m.SetWidth(30)

	out := view(m)
	if strings.Contains(out, strings.Repeat("x", 60)) {
		t.Error("long lines should wrap at the block width")
	}
	if strings.Count(out, "x") != 60 {
		t.Errorf("wrapping lost characters: %d", strings.Count(out, "x"))
	}

	p.Wrap = false
	p.ShowLineNumbers = true
	m.SetProps(p)
	out = view(m)
	if !strings.Contains(out, "…") {
		t.Error("unwrapped lines should truncate")
	}
	if !strings.Contains(out, " 1  short") {
		t.Errorf("line numbers missing:\n%s", out)
	}
}

func TestModel_Copy(t *testing.T) {
	t.Run("success shows confirmation then resets", func(t *testing.T) {
		clip := &fakeClipboard{}
		m, r := newTestModel(tabbedProps(), clip)

		reset := m.Update(m.Copy()())
		if reset == nil {
			t.Fatal("a reset timer should be scheduled")
		}
		if len(clip.got) != 1 || clip.got[0] != "npm install craftui" {
			t.Errorf("copied %q", clip.got)
		}
		if !m.Copied() || !strings.Contains(view(m), "COPIED") {
			t.Error("copy confirmation should show")
		}

		m.Update(r.last(t))
		if m.Copied() {
			t.Error("confirmation should reset")
		}
	})

	t.Run("second copy restarts the timer", func(t *testing.T) {
		m, r := newTestModel(tabbedProps(), &fakeClipboard{})

		m.Update(m.Copy()())
		first := r.last(t)
		m.Update(m.Copy()())

		m.Update(first)
		if !m.Copied() {
			t.Error("the first reset must not clear the second confirmation")
		}
		m.Update(r.last(t))
		if m.Copied() {
			t.Error("the second reset clears it")
		}
	})

	t.Run("failure reverts and logs", func(t *testing.T) {
		var buf bytes.Buffer
		clip := &fakeClipboard{err: errors.NewClipboardError("system", errors.ErrClipboardUnavailable)}
		r := &recorder{}
		m := NewModel(tabbedProps(), WithClipboard(clip), WithScheduler(r.schedule), WithLogger(logging.NewWriterLogger(&buf, logging.LevelDebug)))

		if cmd := m.Update(m.Copy()()); cmd != nil {
			t.Error("failures schedule nothing")
		}
		if m.Copied() {
			t.Error("failed copy must not confirm")
		}
		if !strings.Contains(buf.String(), "copy failed") || !strings.Contains(buf.String(), `"component":"codeblock"`) {
			t.Errorf("expected a warning, got %s", buf.String())
		}
	})

	t.Run("icon mode", func(t *testing.T) {
		p := tabbedProps()
		p.CopyMode = CopyIcon
		m, _ := newTestModel(p, &fakeClipboard{})
		if strings.Contains(view(m), "COPY") || !strings.Contains(view(m), "⧉") {
			t.Error("icon mode shows an icon")
		}
		m.Update(m.Copy()())
		if !strings.Contains(view(m), "✓") {
			t.Error("icon mode confirms with a check")
		}
	})

	t.Run("messages for other blocks are ignored", func(t *testing.T) {
		a, _ := newTestModel(tabbedProps(), &fakeClipboard{})
		b, _ := newTestModel(tabbedProps(), &fakeClipboard{})
		b.Update(a.Copy()())
		if b.Copied() {
			t.Error("copy result routed to the wrong block")
		}
	})
}

func TestModel_CloseStopsReset(t *testing.T) {
	m, r := newTestModel(tabbedProps(), &fakeClipboard{})
	m.Update(m.Copy()())
	reset := r.last(t)

	m.Close()
	m.Update(reset)
	if !m.Copied() {
		t.Error("after Close the reset is ignored")
	}
}

func TestParseCopyMode(t *testing.T) {
	if ParseCopyMode("ICON") != CopyIcon || ParseCopyMode("text") != CopyText || ParseCopyMode("") != CopyText {
		t.Error("ParseCopyMode mismatch")
	}
}

func TestOSC52Clipboard(t *testing.T) {
	var buf bytes.Buffer
	if err := (OSC52Clipboard{W: &buf}).Copy("hello"); err != nil {
		t.Fatalf("Copy() error: %v", err)
	}
	if !strings.Contains(buf.String(), base64.StdEncoding.EncodeToString([]byte("hello"))) {
		t.Errorf("sequence %q does not carry the payload", buf.String())
	}
	if !strings.HasPrefix(buf.String(), "\x1b]52;") {
		t.Errorf("not an OSC 52 sequence: %q", buf.String())
	}

	err := OSC52Clipboard{}.Copy("x")
	if !errors.Is(err, errors.ErrClipboardUnavailable) {
		t.Errorf("nil writer should be unavailable, got %v", err)
	}
}

func TestFallbackClipboard(t *testing.T) {
	failing := &fakeClipboard{err: errors.NewClipboardError("system", errors.ErrClipboardUnavailable)}
	working := &fakeClipboard{}

	if err := (FallbackClipboard{failing, working}).Copy("x"); err != nil {
		t.Fatalf("Copy() error: %v", err)
	}
	if len(working.got) != 1 {
		t.Error("fallback should reach the second clipboard")
	}

	err := FallbackClipboard{failing}.Copy("x")
	if !errors.Is(err, errors.ErrClipboardUnavailable) {
		t.Errorf("all failing = %v", err)
	}
	if err := (FallbackClipboard{}).Copy("x"); !errors.Is(err, errors.ErrClipboardUnavailable) {
		t.Errorf("empty fallback = %v", err)
	}
}

func TestModel_IgnoresUnrelatedMouse(t *testing.T) {
	m, _ := newTestModel(tabbedProps(), &fakeClipboard{})
	if cmd := m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}); cmd != nil {
		t.Error("presses are ignored; clicks act on release")
	}
}
