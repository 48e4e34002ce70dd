package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete CraftUI configuration
type Config struct {
	Motion    MotionConfig    `mapstructure:"motion"`
	CodeBlock CodeBlockConfig `mapstructure:"code_block"`
	Tabs      TabsConfig      `mapstructure:"tabs"`
	TUI       TUIConfig       `mapstructure:"tui"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// MotionConfig controls view-switcher transitions
type MotionConfig struct {
	// Animation is the default transition preset (default: "fade-up")
	// Options: "none", "fade", "fade-up", "fade-down", "scale", "blur", "blur-up"
	Animation string `mapstructure:"animation"`
	// DurationMs is the transition length in milliseconds (default: 220)
	DurationMs int `mapstructure:"duration_ms"`
	// Easing is a CSS timing function such as "ease-out" or "cubic-bezier(...)"
	Easing string `mapstructure:"easing"`
	// ReducedMotion disables all transitions (default: false)
	ReducedMotion bool `mapstructure:"reduced_motion"`
	// FrameRate is the number of animation frames per second (default: 60)
	FrameRate int `mapstructure:"frame_rate"`
}

// Duration returns the transition length as a time.Duration
func (c *MotionConfig) Duration() time.Duration {
	return time.Duration(c.DurationMs) * time.Millisecond
}

// CodeBlockConfig controls code listings
type CodeBlockConfig struct {
	// MaxCollapsedLines is how many lines a collapsed listing shows (default: 6)
	MaxCollapsedLines int `mapstructure:"max_collapsed_lines"`
	// LargeThreshold is the line count above which expansion is progressive (default: 240)
	LargeThreshold int `mapstructure:"large_threshold"`
	// BatchSize is how many lines each frame reveals (default: 240)
	BatchSize int `mapstructure:"batch_size"`
	// CopyMode selects the copy button style: "text" or "icon" (default: "text")
	CopyMode string `mapstructure:"copy_mode"`
	// Clipboard selects the copy backend: "auto", "system" or "osc52" (default: "auto")
	Clipboard string `mapstructure:"clipboard"`
}

// TabsConfig controls tab groups in the browser
type TabsConfig struct {
	// ActivationMode is "automatic" (focus selects) or "manual" (default: "automatic")
	ActivationMode string `mapstructure:"activation_mode"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// Theme is the color theme (default: "default")
	Theme string `mapstructure:"theme"`
	// Mouse enables click handling for tabs and buttons (default: true)
	Mouse bool `mapstructure:"mouse"`
	// SidebarWidth is the width of the component list in columns (default: 28, min: 16, max: 48)
	SidebarWidth int `mapstructure:"sidebar_width"`
	// DefaultMode is the documentation mode opened first: "base" or "radix" (default: "base")
	DefaultMode string `mapstructure:"default_mode"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Dir is where debug.log is written. Empty disables file logging.
	Dir string `mapstructure:"dir"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Motion: MotionConfig{
			Animation:     "fade-up",
			DurationMs:    220,
			Easing:        "cubic-bezier(0.2, 0.8, 0.2, 1)",
			ReducedMotion: false,
			FrameRate:     60,
		},
		CodeBlock: CodeBlockConfig{
			MaxCollapsedLines: 6,
			LargeThreshold:    240,
			BatchSize:         240,
			CopyMode:          "text",
			Clipboard:         "auto",
		},
		Tabs: TabsConfig{
			ActivationMode: "automatic",
		},
		TUI: TUIConfig{
			Theme:        "default",
			Mouse:        true,
			SidebarWidth: 28,
			DefaultMode:  "base",
		},
		Logging: LoggingConfig{
			Dir:   "",
			Level: "info",
		},
	}
}

// EnvPrefix prefixes environment overrides, e.g. CRAFTUI_MOTION_REDUCED_MOTION.
const EnvPrefix = "CRAFTUI"

// SetDefaults registers default values with viper
func SetDefaults() {
	SetDefaultsOn(viper.GetViper())
}

// BindEnv makes v read CRAFTUI_* environment overrides for every key.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// SetDefaultsOn registers default values with a specific viper instance
func SetDefaultsOn(v *viper.Viper) {
	defaults := Default()

	// Motion defaults
	v.SetDefault("motion.animation", defaults.Motion.Animation)
	v.SetDefault("motion.duration_ms", defaults.Motion.DurationMs)
	v.SetDefault("motion.easing", defaults.Motion.Easing)
	v.SetDefault("motion.reduced_motion", defaults.Motion.ReducedMotion)
	v.SetDefault("motion.frame_rate", defaults.Motion.FrameRate)

	// Code block defaults
	v.SetDefault("code_block.max_collapsed_lines", defaults.CodeBlock.MaxCollapsedLines)
	v.SetDefault("code_block.large_threshold", defaults.CodeBlock.LargeThreshold)
	v.SetDefault("code_block.batch_size", defaults.CodeBlock.BatchSize)
	v.SetDefault("code_block.copy_mode", defaults.CodeBlock.CopyMode)
	v.SetDefault("code_block.clipboard", defaults.CodeBlock.Clipboard)

	v.SetDefault("tabs.activation_mode", defaults.Tabs.ActivationMode)

	// TUI defaults
	v.SetDefault("tui.theme", defaults.TUI.Theme)
	v.SetDefault("tui.mouse", defaults.TUI.Mouse)
	v.SetDefault("tui.sidebar_width", defaults.TUI.SidebarWidth)
	v.SetDefault("tui.default_mode", defaults.TUI.DefaultMode)

	// Logging defaults
	v.SetDefault("logging.dir", defaults.Logging.Dir)
	v.SetDefault("logging.level", defaults.Logging.Level)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom is Load for a specific viper instance.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "craftui")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".craftui"
	}
	return filepath.Join(home, ".config", "craftui")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ThemesDir returns the directory scanned for custom theme files
func ThemesDir() string {
	return filepath.Join(ConfigDir(), "themes")
}
