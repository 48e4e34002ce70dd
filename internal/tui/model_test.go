package tui

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/craftui/craftui/internal/config"
	"github.com/craftui/craftui/internal/docs"
	"github.com/craftui/craftui/internal/errors"
	"github.com/craftui/craftui/internal/tui/keymap"
	"github.com/craftui/craftui/internal/tui/styles"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

type fakeClipboard struct {
	copied []string
}

func (f *fakeClipboard) Copy(text string) error {
	f.copied = append(f.copied, text)
	return nil
}

// noSchedule drops every timer so transitions never advance.
func noSchedule(time.Duration, func(time.Time) tea.Msg) tea.Cmd {
	return nil
}

func newTestModel(t *testing.T, mutate func(*config.Config), opts ...ModelOption) (*Model, *fakeClipboard) {
	t.Helper()
	cat, err := docs.Default()
	if err != nil {
		t.Fatalf("docs.Default() error: %v", err)
	}
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	clip := &fakeClipboard{}
	opts = append([]ModelOption{WithModelClipboard(clip), WithModelScheduler(noSchedule)}, opts...)
	m, err := NewModel(cat, cfg, opts...)
	if err != nil {
		t.Fatalf("NewModel() error: %v", err)
	}
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, clip
}

func press(m *Model, keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(k)
	}
	return cmd
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewModel(t *testing.T) {
	t.Run("starts on the first published page", func(t *testing.T) {
		m, _ := newTestModel(t, nil)
		if m.Slug() != "button" {
			t.Errorf("Slug() = %q, want button", m.Slug())
		}
		if m.Focus() != keymap.ModeSidebar {
			t.Errorf("Focus() = %q, want sidebar", m.Focus())
		}
		if m.Mode() != docs.ModeBase {
			t.Errorf("Mode() = %q, want base", m.Mode())
		}
	})

	t.Run("initial slug opens its page", func(t *testing.T) {
		m, _ := newTestModel(t, nil, WithInitialSlug("Tabs"))
		if m.Slug() != "tabs" || m.Focus() != keymap.ModePage {
			t.Errorf("Slug() = %q, Focus() = %q", m.Slug(), m.Focus())
		}
	})

	t.Run("components redirects", func(t *testing.T) {
		m, _ := newTestModel(t, nil, WithInitialSlug("components"))
		if m.Slug() != "button" {
			t.Errorf("Slug() = %q, want button", m.Slug())
		}
	})

	t.Run("unpublished slug", func(t *testing.T) {
		cat, _ := docs.Default()
		_, err := NewModel(cat, config.Default(), WithInitialSlug("tooltip"))
		if !errors.Is(err, errors.ErrDocNotFound) {
			t.Errorf("error = %v, want ErrDocNotFound", err)
		}
	})

	t.Run("empty catalog", func(t *testing.T) {
		cat, err := docs.Parse([]byte("components:\n  - {slug: x, name: X, status: Planned}"))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := NewModel(cat, nil); !errors.Is(err, errors.ErrCatalogEmpty) {
			t.Errorf("error = %v, want ErrCatalogEmpty", err)
		}
	})
}

func TestModel_SidebarNavigation(t *testing.T) {
	t.Run("automatic activation follows focus", func(t *testing.T) {
		m, _ := newTestModel(t, nil)
		press(m, tea.KeyMsg{Type: tea.KeyDown})
		if m.Slug() != "code-block" {
			t.Errorf("Slug() = %q, want code-block", m.Slug())
		}
		press(m, key('j'))
		if m.Slug() != "match-case" {
			t.Errorf("Slug() = %q, want match-case", m.Slug())
		}
		press(m, tea.KeyMsg{Type: tea.KeyEnd})
		if m.Slug() != "tabs" {
			t.Errorf("Slug() = %q, want tabs", m.Slug())
		}
		if len(m.pages) != 4 {
			t.Errorf("pages built = %d, want one per visited slug", len(m.pages))
		}
	})

	t.Run("manual activation waits for enter", func(t *testing.T) {
		m, _ := newTestModel(t, func(c *config.Config) { c.Tabs.ActivationMode = "manual" })
		press(m, tea.KeyMsg{Type: tea.KeyDown})
		if m.Slug() != "button" {
			t.Errorf("Slug() = %q; focus alone must not open a page", m.Slug())
		}
		press(m, tea.KeyMsg{Type: tea.KeyEnter})
		if m.Slug() != "code-block" {
			t.Errorf("Slug() = %q, want code-block", m.Slug())
		}
	})

	t.Run("open page moves focus", func(t *testing.T) {
		m, _ := newTestModel(t, nil)
		press(m, key('l'))
		if m.Focus() != keymap.ModePage {
			t.Errorf("Focus() = %q, want page", m.Focus())
		}
		press(m, tea.KeyMsg{Type: tea.KeyEsc})
		if m.Focus() != keymap.ModeSidebar {
			t.Errorf("Focus() = %q, want sidebar", m.Focus())
		}
		press(m, tea.KeyMsg{Type: tea.KeyTab})
		if m.Focus() != keymap.ModePage {
			t.Errorf("tab should move focus to the page")
		}
	})

	t.Run("page switch is animated", func(t *testing.T) {
		m, _ := newTestModel(t, nil)
		press(m, tea.KeyMsg{Type: tea.KeyDown})
		if prev, ok := m.switcher.Exiting(); !ok || prev != "button" {
			t.Errorf("Exiting() = %q, %v; want button", prev, ok)
		}
	})
}

func TestModel_GlobalCommands(t *testing.T) {
	t.Run("doc mode", func(t *testing.T) {
		m, _ := newTestModel(t, nil)
		press(m, key('m'))
		if m.Mode() != docs.ModeRadix {
			t.Fatalf("Mode() = %q, want radix", m.Mode())
		}
		if code := m.pages["button"].install.Code(); !strings.Contains(code, "/r/radix") {
			t.Errorf("install command = %q, want the radix registry", code)
		}
		press(m, key('m'))
		if m.Mode() != docs.ModeBase {
			t.Errorf("Mode() = %q, want base", m.Mode())
		}
	})

	t.Run("reduced motion", func(t *testing.T) {
		m, _ := newTestModel(t, nil)
		press(m, key('R'))
		if !m.ReducedMotion() || !m.switcher.Config().ReducedMotion {
			t.Error("reduced motion should reach the page switcher")
		}
		press(m, tea.KeyMsg{Type: tea.KeyDown})
		if _, ok := m.switcher.Exiting(); ok {
			t.Error("no exit should be pending under reduced motion")
		}
	})

	t.Run("theme", func(t *testing.T) {
		t.Cleanup(func() { styles.SetActiveTheme(styles.ThemeDefault) })
		m, _ := newTestModel(t, nil)
		press(m, key('T'))
		if m.theme != "nord" {
			t.Errorf("theme = %q, want nord", m.theme)
		}
		if !strings.Contains(m.status, "nord") {
			t.Errorf("status = %q", m.status)
		}
	})

	t.Run("help", func(t *testing.T) {
		m, _ := newTestModel(t, nil)
		press(m, key('?'))
		if !m.help.ShowAll {
			t.Error("help should expand")
		}
	})

	t.Run("quit", func(t *testing.T) {
		m, _ := newTestModel(t, nil)
		cmd := press(m, key('q'))
		if cmd == nil {
			t.Fatal("quit should return a command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("quit should return tea.Quit")
		}
	})
}

func TestModel_PageCommands(t *testing.T) {
	t.Run("states follow the arrow keys", func(t *testing.T) {
		m, _ := newTestModel(t, nil, WithInitialSlug("match-case"))
		x := m.currentPage().examples[0]

		press(m, key('l'))
		if v, _ := x.states.Selected(); v != "weather" {
			t.Errorf("selected = %q, want weather", v)
		}
		if x.switcher.Value() != "weather" {
			t.Errorf("switcher = %q, want weather", x.switcher.Value())
		}
		press(m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
		if x.switcher.Value() != "offline" {
			t.Errorf("left should wrap to the last state, got %q", x.switcher.Value())
		}
	})

	t.Run("examples cycle", func(t *testing.T) {
		m, _ := newTestModel(t, nil, WithInitialSlug("match-case"))
		p := m.currentPage()
		press(m, key(']'))
		if p.active != 1 {
			t.Errorf("active = %d, want 1", p.active)
		}
		press(m, key('['), key('['))
		if p.active != len(p.examples)-1 {
			t.Errorf("active = %d, want wrap to last", p.active)
		}
		if p.ActiveSection() != p.examples[len(p.examples)-1].doc.ID {
			t.Errorf("ActiveSection() = %q", p.ActiveSection())
		}
	})

	t.Run("copy from the code view", func(t *testing.T) {
		m, clip := newTestModel(t, nil, WithInitialSlug("match-case"))
		press(m, key('v'))
		cmd := press(m, key('y'))
		if cmd == nil {
			t.Fatal("copy should return a command")
		}
		cmd()
		if len(clip.copied) != 1 || !strings.Contains(clip.copied[0], `matchcase.New("notify", cfg)`) {
			t.Errorf("copied = %q", clip.copied)
		}
	})

	t.Run("copy falls back to the install command", func(t *testing.T) {
		m, clip := newTestModel(t, nil, WithInitialSlug("button"))
		cmd := press(m, key('y'))
		if cmd == nil {
			t.Fatal("copy should return a command")
		}
		cmd()
		if len(clip.copied) != 1 || !strings.Contains(clip.copied[0], "add button") {
			t.Errorf("copied = %q", clip.copied)
		}
	})

	t.Run("package manager tabs", func(t *testing.T) {
		m, _ := newTestModel(t, nil, WithInitialSlug("code-block"))
		x := m.currentPage().examples[0]
		press(m, key('n'))
		if got := x.listing.ActiveTab(); got != "npm" {
			t.Errorf("ActiveTab() = %q, want npm", got)
		}
		press(m, key('m'))
		if got := x.listing.ActiveTab(); got != "npm" {
			t.Errorf("mode change should keep the package manager, got %q", got)
		}
		if !strings.Contains(x.listing.Code(), "npx") || !strings.Contains(x.listing.Code(), "/r/radix") {
			t.Errorf("listing = %q", x.listing.Code())
		}
	})

	t.Run("long listing expands", func(t *testing.T) {
		m, _ := newTestModel(t, nil, WithInitialSlug("code-block"))
		press(m, key(']'))
		x := m.currentPage().examples[1]
		if x.listing.Block().Expanded() {
			t.Fatal("listing should start collapsed")
		}
		press(m, key('e'))
		if !x.listing.Block().Expanded() {
			t.Error("e should expand the active example's listing")
		}
	})

	t.Run("vertical tabs mount only the selected panel", func(t *testing.T) {
		m, _ := newTestModel(t, nil, WithInitialSlug("tabs"))
		press(m, key(']'))
		x := m.currentPage().examples[1]
		press(m, key('l'))
		if v, _ := x.states.Selected(); v != "activity" {
			t.Errorf("selected = %q, want activity", v)
		}
		view := zone.Scan(x.View(80, true))
		if !strings.Contains(view, "Recent events") || strings.Contains(view, "Account metadata") {
			t.Errorf("view:\n%s", view)
		}
	})
}

func TestModel_ConfigChanged(t *testing.T) {
	t.Cleanup(func() { styles.SetActiveTheme(styles.ThemeDefault) })
	m, _ := newTestModel(t, nil)
	before := m.pages["button"]

	cfg := config.Default()
	cfg.TUI.Theme = "dracula"
	cfg.Motion.ReducedMotion = true
	cfg.TUI.DefaultMode = "radix"
	m.Update(ConfigChangedMsg{Config: cfg})

	if m.theme != "dracula" {
		t.Errorf("theme = %q, want dracula", m.theme)
	}
	if !m.ReducedMotion() {
		t.Error("reduced motion should be applied")
	}
	if m.Mode() != docs.ModeRadix {
		t.Errorf("Mode() = %q, want radix", m.Mode())
	}
	if m.pages["button"] == before {
		t.Error("the current page should be rebuilt")
	}
	if m.status != "Configuration reloaded" {
		t.Errorf("status = %q", m.status)
	}
}

func TestModel_View(t *testing.T) {
	m, _ := newTestModel(t, nil)
	view := m.View()
	for _, want := range []string{"CraftUI", "Components", "Button", "Code Block", "Upcoming", "Tooltip", "In progress"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	page := zone.Scan(m.currentPage().View(80))
	for _, want := range []string{"NEW", "On this page", "Overview", "Interactive demo", "Variants", "Installation", "API reference", "asChild", "Accessibility"} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if off := m.currentPage().offsets["installation"]; off <= m.currentPage().offsets["demo"] {
		t.Errorf("installation offset %d should follow the demo", off)
	}
}

func TestNextTheme(t *testing.T) {
	if got := nextTheme("default"); got != "nord" {
		t.Errorf("nextTheme(default) = %q", got)
	}
	if got := nextTheme("catppuccin"); got != "default" {
		t.Errorf("nextTheme(catppuccin) = %q, want wrap", got)
	}
	if got := nextTheme("missing"); got != "default" {
		t.Errorf("nextTheme(missing) = %q", got)
	}
}

func TestLongListing(t *testing.T) {
	lines := strings.Split(longListing(300), "\n")
	if len(lines) != 300 {
		t.Errorf("longListing(300) has %d lines", len(lines))
	}
	if lines[0] != ":root {" || lines[len(lines)-1] != "}" {
		t.Errorf("listing should be one rule block")
	}
}

func TestRenderPage(t *testing.T) {
	cat, err := docs.Default()
	if err != nil {
		t.Fatal(err)
	}
	doc, err := cat.Resolve("tabs")
	if err != nil {
		t.Fatal(err)
	}

	out := RenderPage(doc, nil, docs.ModeRadix, 120, true)
	for _, want := range []string{doc.Name, "Installation", "/r/radix", "API reference"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderPage() missing %q", want)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("plain output contains escape sequences")
	}
}
