package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/craftui/craftui/internal/config"
	"github.com/craftui/craftui/internal/errors"
	"github.com/craftui/craftui/internal/logging"
	"github.com/craftui/craftui/internal/tui/styles"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View browser debug logs",
	Long: `View and filter the browser's debug log.

Logs are only written when logging.dir is set (or --log-dir is given to
'craftui browse'). Rotated files are read along with the current one.

Examples:
  # Show the last 50 entries
  craftui logs

  # Everything the tab groups logged at warn or above
  craftui logs --component tabs --level warn -n 0

  # Entries from the last ten minutes as JSON
  craftui logs --since 10m --json`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

var (
	logsDir       string
	logsTail      int
	logsLevel     string
	logsComponent string
	logsSlug      string
	logsGrep      string
	logsSince     time.Duration
	logsJSON      bool
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().StringVar(&logsDir, "dir", "", "Log directory (default: logging.dir)")
	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "Number of entries to show (0 for all)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "Filter by minimum level (debug/info/warn/error)")
	logsCmd.Flags().StringVar(&logsComponent, "component", "", "Filter by component (matchcase/codeblock/tabs/tui)")
	logsCmd.Flags().StringVar(&logsSlug, "slug", "", "Filter by component page")
	logsCmd.Flags().StringVar(&logsGrep, "grep", "", "Filter by message substring")
	logsCmd.Flags().DurationVar(&logsSince, "since", 0, "Show entries newer than this (e.g. 30m)")
	logsCmd.Flags().BoolVar(&logsJSON, "json", false, "Print entries as JSON lines")
}

func runLogs(cmd *cobra.Command, args []string) error {
	dir := logsDir
	if dir == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		dir = cfg.Logging.Dir
	}
	if dir == "" {
		return errors.NewValidationError("no log directory configured, set logging.dir or pass --dir").WithField("dir")
	}

	entries, err := logging.ReadEntries(dir)
	if err != nil {
		return err
	}
	filter := logging.Filter{
		Level:     logsLevel,
		Component: logsComponent,
		Slug:      logsSlug,
		Contains:  logsGrep,
	}
	entries = filter.Apply(entries)
	if logsSince > 0 {
		cutoff := time.Now().Add(-logsSince)
		kept := entries[:0]
		for _, e := range entries {
			if !e.Time.Before(cutoff) {
				kept = append(kept, e)
			}
		}
		entries = kept
	}
	if logsTail > 0 && len(entries) > logsTail {
		entries = entries[len(entries)-logsTail:]
	}

	w := cmd.OutOrStdout()
	if logsJSON {
		enc := json.NewEncoder(w)
		for _, e := range entries {
			if err := enc.Encode(e); err != nil {
				return err
			}
		}
		return nil
	}

	color := isTerminal(w)
	for _, e := range entries {
		line := e.String()
		if color {
			line = levelStyle(e.Level).Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func levelStyle(level string) lipgloss.Style {
	switch strings.ToUpper(level) {
	case logging.LevelDebug:
		return styles.Muted
	case logging.LevelWarn:
		return styles.Warning
	case logging.LevelError:
		return styles.ErrorMsg
	default:
		return styles.Text
	}
}
