package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	appconfig "github.com/craftui/craftui/internal/config"
	"github.com/craftui/craftui/internal/tui/styles"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage color themes",
	Long: `Manage color themes for the CraftUI browser.

CraftUI supports both built-in themes and custom user-defined themes.
Custom themes are stored in ~/.config/craftui/themes/ as YAML files.

Use 'theme list' to see all available themes.
Use 'theme export' to create a template for custom themes.
Use 'theme info' to view details about a specific theme.`,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available themes",
	RunE:  runThemeList,
}

var themeExportCmd = &cobra.Command{
	Use:   "export <theme-name> [output-file]",
	Short: "Export a theme to YAML",
	Long: `Export a theme to YAML format for customization or sharing.

If no output file is specified, the YAML is printed to stdout.

Examples:
  craftui config theme export default
  craftui config theme export dracula my-theme.yaml`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runThemeExport,
}

var themeInfoCmd = &cobra.Command{
	Use:   "info <theme-name>",
	Short: "Show information about a theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemeInfo,
}

var themePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the custom themes directory path",
	RunE:  runThemePath,
}

var themeCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new custom theme from the default palette",
	Long: `Create a new custom theme file in your themes directory.

The file starts as a copy of the default palette. A running browser only
sees new themes after a restart.

Example:
  craftui config theme create paper
  # Creates ~/.config/craftui/themes/paper.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runThemeCreate,
}

func init() {
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeExportCmd)
	themeCmd.AddCommand(themeInfoCmd)
	themeCmd.AddCommand(themePathCmd)
	themeCmd.AddCommand(themeCreateCmd)
	configCmd.AddCommand(themeCmd)
}

// discoverThemes reloads the themes directory and returns the files that
// failed to load.
func discoverThemes() []error {
	styles.ClearCustomThemes()
	_, errs := styles.DiscoverCustomThemes(appconfig.ThemesDir())
	return errs
}

// lookupTheme fails with a helpful message when name is not loadable.
func lookupTheme(name string, loadErrs []error) error {
	if styles.IsValidTheme(name) {
		return nil
	}
	for _, err := range loadErrs {
		msg := err.Error()
		if strings.HasPrefix(msg, name+".yaml:") || strings.HasPrefix(msg, name+".yml:") {
			return fmt.Errorf("theme '%s' exists but failed to load: %v\n\nFix the errors in your theme file and try again", name, err)
		}
	}
	return fmt.Errorf("unknown theme: %s\n\nRun 'craftui config theme list' to see available themes.\nCustom themes should be placed in: %s", name, appconfig.ThemesDir())
}

func runThemeList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if loadErrs := discoverThemes(); len(loadErrs) > 0 {
		errOut := cmd.ErrOrStderr()
		fmt.Fprintln(errOut, "Warning: Some themes failed to load:")
		for _, err := range loadErrs {
			fmt.Fprintf(errOut, "  - %v\n", err)
		}
		fmt.Fprintln(errOut)
	}

	fmt.Fprintln(out, "Built-in themes:")
	for _, name := range styles.BuiltinThemes() {
		fmt.Fprintf(out, "  - %s\n", name)
	}

	if custom := styles.CustomThemeNames(); len(custom) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Custom themes:")
		for _, name := range custom {
			theme := styles.GetCustomTheme(styles.ThemeName(name))
			if theme.Author != "" {
				fmt.Fprintf(out, "  - %s (by %s)\n", name, theme.Author)
			} else {
				fmt.Fprintf(out, "  - %s\n", name)
			}
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Custom themes directory: %s\n", appconfig.ThemesDir())
	return nil
}

func runThemeExport(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := lookupTheme(name, discoverThemes()); err != nil {
		return err
	}

	data, err := styles.ExportTheme(styles.ThemeName(name))
	if err != nil {
		return fmt.Errorf("exporting theme: %w", err)
	}

	if len(args) > 1 {
		outputPath := args[1]
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return fmt.Errorf("writing to %s: %w", outputPath, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Theme exported to: %s\n", outputPath)
		return nil
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runThemeInfo(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := lookupTheme(name, discoverThemes()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Theme: %s\n\n", name)

	if styles.IsBuiltinTheme(name) {
		fmt.Fprintln(out, "Type: Built-in")
	} else {
		fmt.Fprintln(out, "Type: Custom")
		theme := styles.GetCustomTheme(styles.ThemeName(name))
		if theme.Author != "" {
			fmt.Fprintf(out, "Author: %s\n", theme.Author)
		}
		if theme.Description != "" {
			fmt.Fprintf(out, "Description: %s\n", theme.Description)
		}
	}

	p := styles.GetPalette(styles.ThemeName(name))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Colors:")
	for _, c := range []struct {
		label string
		color lipgloss.Color
	}{
		{"Primary", p.Primary},
		{"Secondary", p.Secondary},
		{"Warning", p.Warning},
		{"Error", p.Error},
		{"Muted", p.Muted},
		{"Surface", p.Surface},
		{"Background", p.Background},
		{"Text", p.Text},
		{"Border", p.Border},
		{"Accent", p.Accent},
	} {
		swatch := lipgloss.NewStyle().Background(c.color).Render("  ")
		fmt.Fprintf(out, "  %s %-11s %s\n", swatch, c.label+":", c.color)
	}
	return nil
}

func runThemePath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	themesDir := appconfig.ThemesDir()
	fmt.Fprintln(out, themesDir)

	if _, err := os.Stat(themesDir); os.IsNotExist(err) {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Note: This directory does not exist yet.")
		fmt.Fprintln(out, "Create it with 'craftui config theme create <name>'.")
	}
	return nil
}

func runThemeCreate(cmd *cobra.Command, args []string) error {
	name := args[0]

	if name == "" || strings.ContainsAny(name, "/\\:*?\"<>| ") {
		return fmt.Errorf("invalid theme name: %q", name)
	}
	if styles.IsBuiltinTheme(name) {
		return fmt.Errorf("cannot create custom theme with built-in name '%s'", name)
	}

	themesDir := appconfig.ThemesDir()
	themePath := filepath.Join(themesDir, name+".yaml")
	if _, err := os.Stat(themePath); err == nil {
		return fmt.Errorf("theme '%s' already exists at %s", name, themePath)
	}

	theme := styles.ThemeFromPalette(capitalizeFirst(name), styles.DefaultPalette())
	theme.Description = "A custom CraftUI theme"
	data, err := yaml.Marshal(theme)
	if err != nil {
		return fmt.Errorf("encoding theme: %w", err)
	}

	if err := os.MkdirAll(themesDir, 0o755); err != nil {
		return fmt.Errorf("creating themes directory: %w", err)
	}
	if err := os.WriteFile(themePath, data, 0o644); err != nil {
		return fmt.Errorf("creating theme: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created new theme: %s\n\n", themePath)
	fmt.Fprintln(out, "To use your new theme, run:")
	fmt.Fprintf(out, "  craftui config set tui.theme %s\n", name)
	return nil
}

// capitalizeFirst capitalizes the first character of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
