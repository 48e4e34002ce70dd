package tui

import (
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/craftui/craftui/internal/config"
	"github.com/craftui/craftui/internal/docs"
	"github.com/craftui/craftui/internal/logging"
)

// RenderPage renders a component page once, at rest, for printing outside
// the browser. Plain output drops all styling.
func RenderPage(doc docs.ComponentDoc, cfg *config.Config, mode docs.Mode, width int, plain bool) string {
	if cfg == nil {
		cfg = config.Default()
	}
	if zone.DefaultManager == nil {
		zone.NewGlobal()
	}
	e := &env{
		cfg:     cfg,
		logger:  logging.NopLogger(),
		reduced: true,
	}
	p := newPage(e, doc, mode)
	defer p.Close()

	out := zone.Scan(p.View(max(width, MinContentWidth)))
	if plain {
		return ansi.Strip(out)
	}
	return out
}
