package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	configcmd "github.com/craftui/craftui/internal/cmd/config"
	"github.com/craftui/craftui/internal/config"
	"github.com/craftui/craftui/internal/docs"
	"github.com/craftui/craftui/internal/errors"
	"github.com/craftui/craftui/internal/logging"
	"github.com/craftui/craftui/internal/tui/styles"
)

var rootCmd = &cobra.Command{
	Use:   "craftui",
	Short: "Browse the CraftUI component catalog in your terminal",
	Long: `CraftUI is a catalog of animated interface components. The browser
shows every published component with live previews of its view switcher,
tab groups and progressive code listings.

Run 'craftui browse' to open the interactive browser, or 'craftui show'
to print a single page.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command, reporting any failure on stderr.
func Execute() error {
	c, err := rootCmd.ExecuteC()
	if err != nil {
		reportError(rootCmd.ErrOrStderr(), c, err)
	}
	return err
}

// reportError prints err labelled with its severity. Errors that are not
// ours (bad flags, wrong arg counts) get a pointer to the usage text.
func reportError(w io.Writer, c *cobra.Command, err error) {
	fmt.Fprintf(w, "%s: %v\n", errors.GetSeverity(err), err)
	if !errors.IsUserFacing(err) && c != nil {
		fmt.Fprintf(w, "Run '%s --help' for usage.\n", c.CommandPath())
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.config/craftui/config.yaml)")
	flags.String("catalog", "", "catalog YAML file (default is the built-in catalog)")
	flags.String("log-dir", "", "write debug.log to this directory")
	flags.String("log-level", "", "log level (debug/info/warn/error)")
	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("catalog", flags.Lookup("catalog"))
	_ = viper.BindPFlag("logging.dir", flags.Lookup("log-dir"))
	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))

	configcmd.Register(rootCmd)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	// e.g. CRAFTUI_MOTION_REDUCED_MOTION for motion.reduced_motion
	config.BindEnv(viper.GetViper())

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()

	// Custom themes must be registered before the config names one.
	styles.ClearCustomThemes()
	_, themeErrs = styles.DiscoverCustomThemes(config.ThemesDir())
}

// themeErrs holds custom theme files that failed to load during startup.
var themeErrs []error

func loadCatalog() (*docs.Catalog, error) {
	if path := viper.GetString("catalog"); path != "" {
		return docs.LoadFile(path)
	}
	return docs.Default()
}

// newLogger opens debug.log when a log directory is configured. Without
// one nothing is logged, since the browser owns the terminal.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if cfg.Logging.Dir == "" {
		return logging.NopLogger(), nil
	}
	return logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns w's width, or fallback when it has none.
func terminalWidth(w io.Writer, fallback int) int {
	f, ok := w.(*os.File)
	if !ok {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
