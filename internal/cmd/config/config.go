// Package config provides CLI commands for managing CraftUI configuration.
package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	appconfig "github.com/craftui/craftui/internal/config"
	"github.com/craftui/craftui/internal/tui/styles"
)

// Wrapper functions for exec to allow testing
var execLookPath = exec.LookPath
var execCommand = exec.Command

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify CraftUI configuration",
	Long: `View or modify CraftUI configuration.

Use 'config show' to display the effective configuration.
Use subcommands to modify settings or create a config file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  craftui config set motion.animation blur-up
  craftui config set motion.reduced_motion true
  craftui config set tabs.activation_mode manual

Valid keys:
  motion.animation              - Default transition preset
                                  Options: none, fade, fade-up, fade-down, scale, blur, blur-up
  motion.duration_ms            - Transition length in milliseconds
  motion.easing                 - CSS timing function, e.g. ease-out or cubic-bezier(...)
  motion.reduced_motion         - Disable all transitions (true/false)
  motion.frame_rate             - Animation frames per second
  code_block.max_collapsed_lines - Lines shown while a listing is collapsed
  code_block.large_threshold    - Line count above which expansion is progressive
  code_block.batch_size         - Lines revealed per frame when expanding
  code_block.copy_mode          - Copy button style: text or icon
  code_block.clipboard          - Copy backend: auto, system or osc52
  tabs.activation_mode          - automatic (focus selects) or manual
  tui.theme                     - Color theme
  tui.mouse                     - Enable mouse clicks (true/false)
  tui.sidebar_width             - Component list width in columns
  tui.default_mode              - Documentation mode opened first: base or radix
  logging.dir                   - Directory for debug.log (empty disables)
  logging.level                 - debug, info, warn or error`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/craftui/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open config file in your editor",
	Long: `Open the config file in your preferred editor.

Uses $EDITOR environment variable, or falls back to common editors (vim, nano, vi).
If no config file exists, creates one with default values first. A running
browser picks up the saved changes.`,
	RunE: runConfigEdit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
}

// Register adds all config-related commands to the given parent command.
func Register(parent *cobra.Command) {
	parent.AddCommand(configCmd)
}

// keyKinds maps every settable key to how its value is parsed.
var keyKinds = map[string]string{
	"motion.animation":               "string",
	"motion.duration_ms":             "int",
	"motion.easing":                  "string",
	"motion.reduced_motion":          "bool",
	"motion.frame_rate":              "int",
	"code_block.max_collapsed_lines": "int",
	"code_block.large_threshold":     "int",
	"code_block.batch_size":          "int",
	"code_block.copy_mode":           "string",
	"code_block.clipboard":           "string",
	"tabs.activation_mode":           "string",
	"tui.theme":                      "theme",
	"tui.mouse":                      "bool",
	"tui.sidebar_width":              "int",
	"tui.default_mode":               "string",
	"logging.dir":                    "string",
	"logging.level":                  "string",
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "# Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}

	settings := make(map[string]map[string]any)
	for key := range keyKinds {
		section, name, _ := strings.Cut(key, ".")
		if settings[section] == nil {
			settings[section] = make(map[string]any)
		}
		settings[section][name] = viper.Get(key)
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

// parseValue converts a command-line value to the type stored for key.
func parseValue(key, value string) (any, error) {
	kind, ok := keyKinds[key]
	if !ok {
		return nil, fmt.Errorf("unknown configuration key: %s\nRun 'craftui config set --help' to see valid keys", key)
	}

	switch kind {
	case "bool":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		return b, nil
	case "int":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected integer", key)
		}
		return n, nil
	case "theme":
		_, _ = styles.DiscoverCustomThemes(appconfig.ThemesDir())
		if !styles.IsValidTheme(value) {
			return nil, fmt.Errorf("invalid theme: %s\nValid options: %s",
				value, strings.Join(styles.ValidThemes(), ", "))
		}
	}
	return value, nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	typed, err := parseValue(key, value)
	if err != nil {
		return err
	}

	configFile := appconfig.ConfigFile()
	file := viper.New()
	file.SetConfigFile(configFile)
	if _, err := os.Stat(configFile); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	file.Set(key, typed)

	// Validate the result with defaults filled in before touching the file.
	check := viper.New()
	appconfig.SetDefaultsOn(check)
	if err := check.MergeConfigMap(file.AllSettings()); err != nil {
		return err
	}
	if _, err := appconfig.LoadFrom(check); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := file.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Set %s = %v\n", key, typed)
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}

// defaultConfig is written by 'config init'.
const defaultConfig = `# CraftUI Configuration

# View switcher transitions
motion:
  # Options: none, fade, fade-up, fade-down, scale, blur, blur-up
  animation: fade-up
  # Transition length in milliseconds
  duration_ms: 220
  # CSS timing function (ease, ease-in, ease-out, ease-in-out, linear, cubic-bezier(...))
  easing: cubic-bezier(0.2, 0.8, 0.2, 1)
  # Swap views instantly
  reduced_motion: false
  frame_rate: 60

# Code listings
code_block:
  # Lines shown while collapsed
  max_collapsed_lines: 6
  # Listings longer than this expand a batch per frame
  large_threshold: 240
  batch_size: 240
  # Copy button style: text or icon
  copy_mode: text
  # Copy backend: auto, system or osc52
  clipboard: auto

# Tab groups
tabs:
  # automatic: moving focus selects; manual: Enter or Space selects
  activation_mode: automatic

# Terminal browser
tui:
  theme: default
  mouse: true
  sidebar_width: 28
  # Documentation mode opened first: base or radix
  default_mode: base

# Debug logging
logging:
  # Directory for debug.log; empty disables logging
  dir: ""
  level: info
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'craftui config set' to modify values", configFile)
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(configFile, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "Active config: %s\n", used)
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", appconfig.ConfigFile())
	}
	fmt.Fprintf(out, "Themes directory: %s\n", appconfig.ThemesDir())
	fmt.Fprintf(out, "Environment variables: %s_* (e.g., %s_MOTION_REDUCED_MOTION)\n", appconfig.EnvPrefix, appconfig.EnvPrefix)
	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := runConfigInit(cmd, args); err != nil {
			return err
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"vim", "nano", "vi"} {
			if _, err := execLookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set $EDITOR environment variable")
	}

	// $EDITOR may carry flags, e.g. "code --wait"
	parts := strings.Fields(editor)
	editorCmd := execCommand(parts[0], append(slices.Clone(parts[1:]), configFile)...)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr
	return editorCmd.Run()
}
