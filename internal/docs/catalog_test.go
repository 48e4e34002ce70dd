package docs

import (
	"slices"
	"strings"
	"testing"

	"github.com/craftui/craftui/internal/errors"
)

func mustDefault(t *testing.T) *Catalog {
	t.Helper()
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	return c
}

func slugs(docs []ComponentDoc) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Slug
	}
	return out
}

func TestDefault(t *testing.T) {
	c := mustDefault(t)

	want := []string{"button", "code-block", "match-case", "tabs"}
	if got := slugs(c.Published()); !slices.Equal(got, want) {
		t.Errorf("Published() = %v, want %v", got, want)
	}
	if len(c.All()) != 7 {
		t.Errorf("All() has %d docs, want 7", len(c.All()))
	}
	for _, d := range c.All() {
		if d.Installation.Command(ModeRadix) == "" {
			t.Errorf("%s has no install command", d.Slug)
		}
	}
}

func TestParse_Sorting(t *testing.T) {
	c, err := Parse([]byte(`
components:
  - {slug: b, name: Beta, status: Available, order: 2}
  - {slug: a2, name: Zeta, status: Available, order: 1}
  - {slug: a1, name: Alpha, status: Available, order: 1}
`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got := slugs(c.All()); !slices.Equal(got, []string{"a1", "a2", "b"}) {
		t.Errorf("order = %v, want by order then name", got)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "components: [unterminated"},
		{"missing name", "components:\n  - {slug: x}"},
		{"duplicate", "components:\n  - {slug: x, name: X}\n  - {slug: X, name: Y}"},
		{"reserved", "components:\n  - {slug: components, name: C}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, errors.ErrCatalogCorrupted) {
				t.Errorf("Parse() error = %v, want ErrCatalogCorrupted", err)
			}
			var catErr *errors.CatalogError
			if !errors.As(err, &catErr) {
				t.Errorf("error should be a CatalogError: %T", err)
			}
		})
	}
}

func TestCatalog_Resolve(t *testing.T) {
	c := mustDefault(t)

	t.Run("case insensitive", func(t *testing.T) {
		d, err := c.Resolve("Match-Case")
		if err != nil || d.Slug != "match-case" {
			t.Errorf("Resolve() = %q, %v", d.Slug, err)
		}
	})

	t.Run("components redirects to the first published doc", func(t *testing.T) {
		d, err := c.Resolve("components")
		if err != nil || d.Slug != "button" {
			t.Errorf("Resolve(components) = %q, %v", d.Slug, err)
		}
	})

	t.Run("unpublished docs are not found", func(t *testing.T) {
		_, err := c.Resolve("popover")
		if !errors.Is(err, errors.ErrDocNotFound) {
			t.Errorf("Resolve(popover) error = %v", err)
		}
		var nf *errors.NotFoundError
		if !errors.As(err, &nf) || nf.ResourceID != "popover" {
			t.Errorf("want NotFoundError for popover, got %v", err)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := c.Resolve("nope"); !errors.Is(err, errors.ErrDocNotFound) {
			t.Errorf("Resolve(nope) error = %v", err)
		}
	})

	t.Run("empty catalog cannot redirect", func(t *testing.T) {
		empty, err := Parse([]byte("components:\n  - {slug: x, name: X, status: Planned}"))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := empty.Resolve("components"); !errors.Is(err, errors.ErrCatalogEmpty) {
			t.Errorf("error = %v, want ErrCatalogEmpty", err)
		}
	})
}

func TestCatalog_Get(t *testing.T) {
	c := mustDefault(t)
	d, ok := c.Get(" Tooltip ")
	if !ok || d.Status != StatusInProgress {
		t.Errorf("Get(tooltip) = %+v, %v", d.Status, ok)
	}
	if d.Published() {
		t.Error("in-progress docs are not published")
	}
}

func TestComponentDoc_Content(t *testing.T) {
	c := mustDefault(t)
	d, _ := c.Get("button")

	base := d.Content(ModeBase)
	radix := d.Content(ModeRadix)
	if len(base.API) != 4 || len(radix.API) != 3 {
		t.Errorf("API rows base=%d radix=%d", len(base.API), len(radix.API))
	}
	if radix.Summary != base.Summary {
		t.Error("modes without an override keep the default summary")
	}
	if !slices.Equal(radix.A11y, base.A11y) {
		t.Error("a11y should fall back to the defaults")
	}
}

func TestComponentDoc_TOC(t *testing.T) {
	c := mustDefault(t)
	d, _ := c.Get("tabs")

	var ids []string
	for _, item := range d.TOC() {
		ids = append(ids, item.ID)
	}
	want := []string{
		"overview", "demo",
		"animated-tab-panels-with-match-case", "vertical-orientation-for-dense-layouts",
		"installation", "api", "accessibility",
	}
	if !slices.Equal(ids, want) {
		t.Errorf("TOC() = %v, want %v", ids, want)
	}
	if got := c.TOCBySlug()["tabs"]; len(got) != len(want) {
		t.Errorf("TOCBySlug()[tabs] has %d items", len(got))
	}
}

func TestNormalizeMode(t *testing.T) {
	for in, want := range map[string]Mode{"radix": ModeRadix, "RADIX": ModeRadix, "base": ModeBase, "": ModeBase, "vue": ModeBase} {
		if got := NormalizeMode(in); got != want {
			t.Errorf("NormalizeMode(%q) = %q, want %q", in, got, want)
		}
	}
	if ModeRadix.Label() != "Radix" || ModeBase.Label() != "Base" {
		t.Error("mode labels")
	}
}

func TestInstallation_Command(t *testing.T) {
	i := Installation{Radix: "radix-cmd"}
	if i.Command(ModeBase) != "radix-cmd" {
		t.Error("a missing base command falls back to radix")
	}
	i.Base = "base-cmd"
	if i.Command(ModeBase) != "base-cmd" || i.Command(ModeRadix) != "radix-cmd" {
		t.Error("each mode uses its own command")
	}
}

func TestPackageManagers(t *testing.T) {
	tabs := PackageManagers("bunx shadcn@latest add tabs")
	got := make([]string, len(tabs))
	for i, tab := range tabs {
		got[i] = tab.Code
	}
	want := []string{
		"bunx shadcn@latest add tabs",
		"npx shadcn@latest add tabs",
		"pnpm dlx shadcn@latest add tabs",
		"yarn dlx shadcn@latest add tabs",
	}
	if !slices.Equal(got, want) {
		t.Errorf("PackageManagers() = %v", got)
	}
}

func TestExample_Code(t *testing.T) {
	c := mustDefault(t)
	d, _ := c.Get("match-case")

	code := d.Examples[0].Code()
	for _, want := range []string{`cfg.Animation = "blur"`, "240 * time.Millisecond", `matchcase.New("notify", cfg)`, `sw.Render("offline", "Connection Lost")`} {
		if !strings.Contains(code, want) {
			t.Errorf("code missing %q:\n%s", want, code)
		}
	}

	tabsDoc, _ := c.Get("tabs")
	if code := tabsDoc.Examples[1].Code(); !strings.Contains(code, "tabs.Vertical") {
		t.Errorf("vertical example code:\n%s", code)
	}

	button, _ := c.Get("button")
	if button.Examples[0].Code() != "" {
		t.Error("button examples have no code tab")
	}
}
