package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/craftui/craftui/internal/logging"
	"github.com/craftui/craftui/internal/motion"
	"github.com/craftui/craftui/internal/tui/styles"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "motion.duration_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	levels := logging.ValidLevels()
	for i, l := range levels {
		levels[i] = strings.ToLower(l)
	}
	return levels
}

// ValidCopyModes returns the copy button styles
func ValidCopyModes() []string {
	return []string{"text", "icon"}
}

// ValidClipboards returns the copy backends
func ValidClipboards() []string {
	return []string{"auto", "system", "osc52"}
}

// ValidActivationModes returns the tab activation modes
func ValidActivationModes() []string {
	return []string{"automatic", "manual"}
}

// ValidDocModes returns the documentation modes
func ValidDocModes() []string {
	return []string{"base", "radix"}
}

// ValidAnimations returns the transition presets
func ValidAnimations() []string {
	names := make([]string, 0, len(motion.Animations()))
	for _, a := range motion.Animations() {
		names = append(names, string(a))
	}
	return names
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateMotion()...)
	errors = append(errors, c.validateCodeBlock()...)
	errors = append(errors, c.validateTabs()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func oneOf(field, value string, valid []string) []ValidationError {
	if value == "" || slices.Contains(valid, value) {
		return nil
	}
	return []ValidationError{{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(valid, ", ")),
	}}
}

// validateMotion validates the MotionConfig
func (c *Config) validateMotion() []ValidationError {
	var errors []ValidationError

	if c.Motion.Animation != "" {
		if _, err := motion.ParseAnimation(c.Motion.Animation); err != nil {
			errors = append(errors, ValidationError{
				Field:   "motion.animation",
				Value:   c.Motion.Animation,
				Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidAnimations(), ", ")),
			})
		}
	}

	if c.Motion.DurationMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "motion.duration_ms",
			Value:   c.Motion.DurationMs,
			Message: "must be non-negative",
		})
	}

	// Anything longer reads as a stall rather than a transition
	const maxDurationMs = 5000
	if c.Motion.DurationMs > maxDurationMs {
		errors = append(errors, ValidationError{
			Field:   "motion.duration_ms",
			Value:   c.Motion.DurationMs,
			Message: fmt.Sprintf("exceeds maximum of %dms", maxDurationMs),
		})
	}

	if _, err := motion.ParseEasing(c.Motion.Easing); err != nil {
		errors = append(errors, ValidationError{
			Field:   "motion.easing",
			Value:   c.Motion.Easing,
			Message: "must be linear, ease, ease-in, ease-out, ease-in-out or cubic-bezier(x1, y1, x2, y2)",
		})
	}

	// 0 means use the default
	if c.Motion.FrameRate < 0 || c.Motion.FrameRate > 240 {
		errors = append(errors, ValidationError{
			Field:   "motion.frame_rate",
			Value:   c.Motion.FrameRate,
			Message: "must be between 1 and 240",
		})
	}

	return errors
}

// validateCodeBlock validates the CodeBlockConfig
func (c *Config) validateCodeBlock() []ValidationError {
	var errors []ValidationError

	positive := []struct {
		field string
		value int
	}{
		{"code_block.max_collapsed_lines", c.CodeBlock.MaxCollapsedLines},
		{"code_block.large_threshold", c.CodeBlock.LargeThreshold},
		{"code_block.batch_size", c.CodeBlock.BatchSize},
	}
	for _, p := range positive {
		if p.value <= 0 {
			errors = append(errors, ValidationError{
				Field:   p.field,
				Value:   p.value,
				Message: "must be positive",
			})
		}
	}

	errors = append(errors, oneOf("code_block.copy_mode", c.CodeBlock.CopyMode, ValidCopyModes())...)
	errors = append(errors, oneOf("code_block.clipboard", c.CodeBlock.Clipboard, ValidClipboards())...)

	return errors
}

func (c *Config) validateTabs() []ValidationError {
	return oneOf("tabs.activation_mode", c.Tabs.ActivationMode, ValidActivationModes())
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.Theme != "" && !styles.IsValidTheme(c.TUI.Theme) {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(styles.ValidThemes(), ", ")),
		})
	}

	// 0 means use the default
	const minSidebarWidth = 16
	const maxSidebarWidth = 48
	if c.TUI.SidebarWidth != 0 {
		if c.TUI.SidebarWidth < minSidebarWidth {
			errors = append(errors, ValidationError{
				Field:   "tui.sidebar_width",
				Value:   c.TUI.SidebarWidth,
				Message: fmt.Sprintf("must be at least %d columns", minSidebarWidth),
			})
		}
		if c.TUI.SidebarWidth > maxSidebarWidth {
			errors = append(errors, ValidationError{
				Field:   "tui.sidebar_width",
				Value:   c.TUI.SidebarWidth,
				Message: fmt.Sprintf("exceeds maximum of %d columns", maxSidebarWidth),
			})
		}
	}

	errors = append(errors, oneOf("tui.default_mode", c.TUI.DefaultMode, ValidDocModes())...)

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	// Levels are matched case-insensitively by the logger.
	return oneOf("logging.level", strings.ToLower(c.Logging.Level), ValidLogLevels())
}
