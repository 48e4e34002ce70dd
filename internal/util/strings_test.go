package util

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"short string unchanged", "tabs", 10, "tabs"},
		{"exact width unchanged", "tabs", 4, "tabs"},
		{"long string truncated", "code-block", 6, "code-…"},
		{"width one", "tooltip", 1, "…"},
		{"zero width", "tooltip", 0, ""},
		{"wide characters", "日本語テキスト", 5, "日本…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.width); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}

func TestTruncate_Styled(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("In progress")
	got := Truncate(styled, 6)
	if w := lipgloss.Width(got); w > 6 {
		t.Errorf("width = %d, want <= 6", w)
	}
}
