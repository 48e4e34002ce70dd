package tui

import (
	"os"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/craftui/craftui/internal/codeblock"
	"github.com/craftui/craftui/internal/config"
	"github.com/craftui/craftui/internal/docs"
	"github.com/craftui/craftui/internal/errors"
	"github.com/craftui/craftui/internal/logging"
	"github.com/craftui/craftui/internal/matchcase"
	"github.com/craftui/craftui/internal/tabs"
	"github.com/craftui/craftui/internal/tui/keymap"
	"github.com/craftui/craftui/internal/tui/styles"
)

// Model is the browser state: a component list in the sidebar and the
// selected component's page, switched with a match-case transition.
type Model struct {
	env     *env
	catalog *docs.Catalog
	keymap  *keymap.Keymap
	help    help.Model

	// Component list
	nav      *tabs.Group[string]
	navList  *tabs.List[string]
	navTabs  []*tabs.Trigger[string]
	upcoming []docs.ComponentDoc

	// Pages are built on first visit and cached by slug.
	pages    map[string]*page
	switcher *matchcase.Switcher[string]
	viewport viewport.Model

	mode  docs.Mode
	focus keymap.Mode
	theme string

	width, height int
	ready         bool
	showHelp      bool
	quitting      bool
	initial       string
	customClip    bool
	// status is a one-line notice shown in the header, such as a copy
	// confirmation or a config reload.
	status string
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithModelLogger sets the browser's logger.
func WithModelLogger(l *logging.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.env.logger = l.WithComponent("tui")
		}
	}
}

// WithModelClipboard sets the copy target for every code block.
func WithModelClipboard(c codeblock.Clipboard) ModelOption {
	return func(m *Model) {
		if c != nil {
			m.env.clip = c
			m.customClip = true
		}
	}
}

// WithModelScheduler replaces tea.Tick for all timers and frames.
func WithModelScheduler(s scheduler) ModelOption {
	return func(m *Model) { m.env.schedule = s }
}

// WithInitialSlug opens the browser on a component page. The slug goes
// through the catalog's routing rules.
func WithInitialSlug(slug string) ModelOption {
	return func(m *Model) { m.initial = slug }
}

// NewModel builds the browser for a catalog. It fails when the catalog has
// no published component or the initial slug does not resolve.
func NewModel(cat *docs.Catalog, cfg *config.Config, opts ...ModelOption) (*Model, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	published := cat.Published()
	if len(published) == 0 {
		return nil, errors.ErrCatalogEmpty
	}

	m := &Model{
		env: &env{
			cfg:     cfg,
			clip:    codeblock.NewClipboard(cfg.CodeBlock.Clipboard, os.Stdout, os.Getenv("TMUX") != ""),
			logger:  logging.NopLogger(),
			reduced: cfg.Motion.ReducedMotion,
		},
		catalog: cat,
		keymap:  keymap.DefaultKeymap(),
		help:    help.New(),
		pages:   make(map[string]*page),
		mode:    docs.NormalizeMode(cfg.TUI.DefaultMode),
		focus:   keymap.ModeSidebar,
		theme:   cfg.TUI.Theme,
	}
	for _, opt := range opts {
		opt(m)
	}

	start := published[0]
	if m.initial != "" {
		doc, err := cat.Resolve(m.initial)
		if err != nil {
			return nil, err
		}
		start = doc
		m.focus = keymap.ModePage
	}

	m.nav = tabs.New(tabs.Config[string]{
		DefaultValue:   &start.Slug,
		Orientation:    tabs.Vertical,
		ActivationMode: m.env.activationMode(),
		BaseID:         "nav",
	})
	for _, d := range published {
		m.navTabs = append(m.navTabs, tabs.NewTrigger(m.nav, d.Slug, d.Name))
	}
	m.nav.Focus(start.Slug)
	m.navList = tabs.NewList(m.nav, listOptions[string](m.env)...)

	for _, d := range cat.All() {
		if !d.Published() {
			m.upcoming = append(m.upcoming, d)
		}
	}

	m.switcher = matchcase.New(start.Slug, m.env.switcherConfig("", 0), m.env.switcherOptions()...)
	m.pageFor(start.Slug)
	m.viewport = viewport.New(MinContentWidth, MinContentHeight)
	return m, nil
}

// pageFor returns the cached page for slug, building it on first use. A
// new page comes with the command that starts it.
func (m *Model) pageFor(slug string) (*page, tea.Cmd) {
	if p, ok := m.pages[slug]; ok {
		return p, nil
	}
	doc, err := m.catalog.Resolve(slug)
	if err != nil {
		m.env.logger.Warn("page not found", "slug", slug, "error", err)
		return nil, nil
	}
	p := newPage(m.env, doc, m.mode)
	m.pages[doc.Slug] = p
	m.env.logger.WithSlug(doc.Slug).Debug("page built", "examples", len(doc.Examples))
	return p, p.Init()
}

// Slug returns the slug of the page on screen.
func (m *Model) Slug() string {
	return m.switcher.Value()
}

// Focus returns the focused region.
func (m *Model) Focus() keymap.Mode {
	return m.focus
}

// Mode returns the documented registry.
func (m *Model) Mode() docs.Mode {
	return m.mode
}

// ReducedMotion reports whether transitions are disabled.
func (m *Model) ReducedMotion() bool {
	return m.env.reduced
}

// nextTheme returns the theme after the active one, wrapping.
func nextTheme(current string) string {
	themes := styles.ValidThemes()
	i := slices.Index(themes, current)
	return themes[(i+1)%len(themes)]
}

func (m *Model) contentWidth() int {
	w, _ := CalculateContentDimensions(m.width, m.height, m.env.cfg.TUI.SidebarWidth)
	return w
}
