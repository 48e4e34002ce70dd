package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/craftui/craftui/internal/codeblock"
	"github.com/craftui/craftui/internal/config"
	"github.com/craftui/craftui/internal/docs"
	"github.com/craftui/craftui/internal/errors"
	"github.com/craftui/craftui/internal/tui"
	"github.com/craftui/craftui/internal/tui/styles"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List catalog components",
	Long: `List the components in the catalog.

Only published components are shown unless --all is given, which adds the
ones that are still in progress or planned.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var showCmd = &cobra.Command{
	Use:   "show <component>",
	Short: "Print a component page",
	Long: `Print a component's documentation page without opening the browser.

Output is plain text when stdout is not a terminal.

Examples:
  craftui show tabs
  craftui show match-case --mode radix
  craftui show code-block --plain | less`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var installCmd = &cobra.Command{
	Use:   "install <component>",
	Short: "Print the install command for a component",
	Long: `Print the registry install command for a component.

Examples:
  craftui install tabs
  craftui install tabs --mode radix --pm pnpm
  craftui install button --copy`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

var (
	listAll bool

	showMode  string
	showWidth int
	showPlain bool

	installMode string
	installPM   string
	installCopy bool
)

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(installCmd)

	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Include upcoming components")

	showCmd.Flags().StringVarP(&showMode, "mode", "m", "", "Documentation mode (base/radix, default from config)")
	showCmd.Flags().IntVarP(&showWidth, "width", "w", 0, "Render width (default: terminal width or 100)")
	showCmd.Flags().BoolVar(&showPlain, "plain", false, "Disable colors and styling")

	installCmd.Flags().StringVarP(&installMode, "mode", "m", "", "Registry mode (base/radix, default from config)")
	installCmd.Flags().StringVar(&installPM, "pm", "bun", "Package manager (bun/npm/pnpm/yarn)")
	installCmd.Flags().BoolVar(&installCopy, "copy", false, "Copy the command to the clipboard")
}

func runList(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	entries := cat.Published()
	if listAll {
		entries = cat.All()
	}

	plain := !isTerminal(cmd.OutOrStdout())
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Muted).
		Headers("SLUG", "NAME", "STATUS", "CATEGORY").
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Bold(true)
			}
			if col == 2 {
				return s.Foreground(styles.StatusColor(string(entries[row].Status)))
			}
			return s
		})
	for _, d := range entries {
		name := d.Name
		if d.IsNew {
			name += " (new)"
		}
		t.Row(d.Slug, name, string(d.Status), d.Category)
	}

	out := t.String()
	if plain {
		out = ansi.Strip(out)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	doc, err := cat.Resolve(args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	width := showWidth
	if width <= 0 {
		width = terminalWidth(w, 100)
	}
	plain := showPlain || !isTerminal(w)
	if !plain {
		styles.SetActiveTheme(styles.ThemeName(cfg.TUI.Theme))
	}

	_, err = fmt.Fprintln(w, tui.RenderPage(doc, cfg, pickMode(showMode, cfg), width, plain))
	return err
}

func runInstall(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	doc, err := cat.Resolve(args[0])
	if err != nil {
		return err
	}

	command, err := packageManagerCommand(doc.Installation.Command(pickMode(installMode, cfg)), installPM)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), command); err != nil {
		return err
	}

	if installCopy {
		clip := codeblock.NewClipboard(cfg.CodeBlock.Clipboard, os.Stdout, os.Getenv("TMUX") != "")
		if err := clip.Copy(command); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard")
	}
	return nil
}

// pickMode prefers an explicit flag over the configured default mode.
func pickMode(flag string, cfg *config.Config) docs.Mode {
	if flag != "" {
		return docs.NormalizeMode(flag)
	}
	return docs.NormalizeMode(cfg.TUI.DefaultMode)
}

func packageManagerCommand(command, pm string) (string, error) {
	var ids []string
	for _, tab := range docs.PackageManagers(command) {
		if tab.ID == strings.ToLower(pm) {
			return tab.Code, nil
		}
		ids = append(ids, tab.ID)
	}
	return "", errors.NewValidationError("must be one of "+strings.Join(ids, ", ")).
		WithField("pm").
		WithValue(pm)
}
