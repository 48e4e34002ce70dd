package tui

import (
	"time"

	"github.com/craftui/craftui/internal/codeblock"
	"github.com/craftui/craftui/internal/config"
	"github.com/craftui/craftui/internal/docs"
	"github.com/craftui/craftui/internal/logging"
	"github.com/craftui/craftui/internal/matchcase"
	"github.com/craftui/craftui/internal/tabs"

	tea "github.com/charmbracelet/bubbletea"
)

// ConfigChangedMsg carries a reloaded configuration into the running
// browser.
type ConfigChangedMsg struct {
	Config *config.Config
}

// modeSelectedMsg is sent when a page's Base/Radix tabs are clicked. The
// mode is global, so the model applies it to every page.
type modeSelectedMsg struct {
	mode docs.Mode
}

// scheduler is the shape shared by every component's timer hook.
type scheduler = func(time.Duration, func(time.Time) tea.Msg) tea.Cmd

// env is what pages and examples need from the model to build their
// components.
type env struct {
	cfg      *config.Config
	clip     codeblock.Clipboard
	logger   *logging.Logger
	schedule scheduler
	reduced  bool
}

func (e *env) activationMode() tabs.ActivationMode {
	mode, err := tabs.ParseActivationMode(e.cfg.Tabs.ActivationMode)
	if err != nil {
		return tabs.Automatic
	}
	return mode
}

// switcherConfig builds a switcher config from the motion settings,
// overridden by an example's own animation and duration.
func (e *env) switcherConfig(animation string, durationMs int) matchcase.Config {
	cfg := matchcase.Config{
		Duration:      e.cfg.Motion.Duration(),
		Easing:        e.cfg.Motion.Easing,
		ReducedMotion: e.reduced,
		FrameRate:     e.cfg.Motion.FrameRate,
	}
	cfg.Animation = parseAnimation(e.cfg.Motion.Animation)
	if animation != "" {
		cfg.Animation = parseAnimation(animation)
	}
	if durationMs > 0 {
		cfg.Duration = time.Duration(durationMs) * time.Millisecond
	}
	return cfg
}

func (e *env) switcherOptions() []matchcase.Option {
	if e.schedule == nil {
		return nil
	}
	return []matchcase.Option{matchcase.WithScheduler(e.schedule)}
}

func listOptions[V comparable](e *env) []tabs.ListOption[V] {
	opts := []tabs.ListOption[V]{tabs.WithReducedMotion[V](e.reduced)}
	if e.schedule != nil {
		opts = append(opts, tabs.WithListScheduler[V](e.schedule))
	}
	return opts
}

// codeProps returns listing defaults from the code block settings.
func (e *env) codeProps() codeblock.Props {
	p := codeblock.DefaultProps()
	p.MaxCollapsedLines = e.cfg.CodeBlock.MaxCollapsedLines
	p.LargeThreshold = e.cfg.CodeBlock.LargeThreshold
	p.BatchSize = e.cfg.CodeBlock.BatchSize
	p.CopyMode = codeblock.ParseCopyMode(e.cfg.CodeBlock.CopyMode)
	return p
}

func (e *env) newCodeBlock(p codeblock.Props) *codeblock.Model {
	opts := []codeblock.ModelOption{
		codeblock.WithClipboard(e.clip),
		codeblock.WithLogger(e.logger),
	}
	if e.schedule != nil {
		opts = append(opts, codeblock.WithScheduler(e.schedule))
	}
	return codeblock.NewModel(p, opts...)
}
