package cmd

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/craftui/craftui/internal/config"
	"github.com/craftui/craftui/internal/errors"
	"github.com/craftui/craftui/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:     "browse [component]",
	Aliases: []string{"ui"},
	Short:   "Open the interactive component browser",
	Long: `Open the interactive component browser.

With a component slug, the browser starts on that page. Edits to the config
file are picked up while the browser is open.

Examples:
  craftui browse
  craftui browse tabs
  craftui browse components   # redirects to the first component`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdout) {
		return fmt.Errorf("browse needs an interactive terminal, try 'craftui show': %w", errors.ErrNotTerminal)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	for _, err := range themeErrs {
		logger.Warn("custom theme skipped", "error", err.Error())
	}

	opts := []tui.ModelOption{tui.WithModelLogger(logger)}
	if len(args) == 1 {
		opts = append(opts, tui.WithInitialSlug(args[0]))
	}
	app, err := tui.New(cat, cfg, opts...)
	if err != nil {
		return err
	}

	if viper.ConfigFileUsed() != "" {
		viper.OnConfigChange(func(e fsnotify.Event) {
			next, err := config.Load()
			if err != nil {
				logger.Warn("ignoring invalid config change", "file", e.Name, "error", err.Error())
				return
			}
			app.Reload(next)
		})
		viper.WatchConfig()
	}

	logger.Info("browser started", "components", len(cat.Published()))
	return app.Run()
}
