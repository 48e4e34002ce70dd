package styles

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/craftui/craftui/internal/motion"
	"github.com/lucasb-eyer/go-colorful"
)

// PixelsPerRow converts CSS pixel offsets into terminal rows.
const PixelsPerRow = 8.0

// Blend mixes fg toward bg by t in [0, 1] in Lab space. Colors that are not
// hex values are returned unchanged.
func Blend(fg, bg lipgloss.Color, t float64) lipgloss.Color {
	if t <= 0 {
		return fg
	}
	a, err := colorful.Hex(string(fg))
	if err != nil {
		return fg
	}
	b, err := colorful.Hex(string(bg))
	if err != nil {
		return fg
	}
	if t >= 1 {
		return bg
	}
	return lipgloss.Color(a.BlendLab(b, t).Clamped().Hex())
}

// Paint draws content with a motion visual applied, keeping the block's
// height. Opacity blends the text toward the background color, vertical
// translation shifts rows, scale insets the block horizontally, and blur
// renders faint.
func Paint(content string, v motion.Visual, width int) string {
	lines := strings.Split(content, "\n")
	height := len(lines)

	if v.Opacity <= 0.02 {
		return blank(height)
	}

	if v.Opacity < 0.98 || v.Blur > 0.5 {
		style := lipgloss.NewStyle().Foreground(Blend(TextColor, BackgroundColor, 1-v.Opacity))
		if v.Blur > 0.5 {
			style = style.Faint(true)
		}
		for i, line := range lines {
			lines[i] = style.Render(ansi.Strip(line))
		}
	}

	if inset := scaleInset(v.Scale, width); inset > 0 {
		pad := strings.Repeat(" ", inset)
		for i, line := range lines {
			lines[i] = pad + line
		}
	}

	lines = shift(lines, int(math.Round(v.TranslateY/PixelsPerRow)))
	return strings.Join(lines, "\n")
}

func blank(height int) string {
	return strings.Repeat("\n", max(0, height-1))
}

func scaleInset(scale float64, width int) int {
	if scale >= 0.999 || width <= 0 {
		return 0
	}
	return max(1, int(math.Round((1-scale)*float64(width)/2)))
}

// shift moves rows down (n > 0) or up (n < 0) without changing the count.
func shift(lines []string, n int) []string {
	h := len(lines)
	if n == 0 || h == 0 {
		return lines
	}
	if n >= h || -n >= h {
		return make([]string, h)
	}
	out := make([]string, h)
	if n > 0 {
		copy(out[n:], lines[:h-n])
	} else {
		copy(out, lines[-n:])
	}
	return out
}
