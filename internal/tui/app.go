package tui

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/craftui/craftui/internal/config"
	"github.com/craftui/craftui/internal/docs"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   *Model
	mouse   bool
}

// New creates the browser application for a catalog.
func New(cat *docs.Catalog, cfg *config.Config, opts ...ModelOption) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	model, err := NewModel(cat, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &App{model: model, mouse: cfg.TUI.Mouse}, nil
}

// Run starts the browser and blocks until it exits.
func (a *App) Run() error {
	zone.NewGlobal()
	defer zone.Close()

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if a.mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	a.program = tea.NewProgram(a.model, opts...)

	// Quit cleanly on termination so the terminal is restored
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		<-sigChan
		if a.program != nil {
			a.program.Send(tea.Quit())
		}
	}()

	_, err := a.program.Run()

	signal.Stop(sigChan)

	return err
}

// Reload hands a new configuration to the running browser. It is safe to
// call from any goroutine, such as a config file watcher.
func (a *App) Reload(cfg *config.Config) {
	if a.program != nil {
		a.program.Send(ConfigChangedMsg{Config: cfg})
	}
}
