package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors of the active palette. Reassigned by SetActiveTheme.
	PrimaryColor    lipgloss.Color
	SecondaryColor  lipgloss.Color
	WarningColor    lipgloss.Color
	ErrorColor      lipgloss.Color
	MutedColor      lipgloss.Color
	SurfaceColor    lipgloss.Color
	BackgroundColor lipgloss.Color
	TextColor       lipgloss.Color
	BorderColor     lipgloss.Color
	AccentColor     lipgloss.Color

	// Convenience styles for colors
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	Text      lipgloss.Style

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Heading  lipgloss.Style

	// Tab triggers
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	TabFocused  lipgloss.Style
	TabDisabled lipgloss.Style
	// Indicator is the underline that slides under the selected tab.
	Indicator lipgloss.Style

	Sidebar             lipgloss.Style
	SidebarItem         lipgloss.Style
	SidebarTitle        lipgloss.Style
	SidebarSectionTitle lipgloss.Style

	ContentBox lipgloss.Style
	PreviewBox lipgloss.Style

	// Code listings
	CodeFrame        lipgloss.Style
	CodeHeader       lipgloss.Style
	CodeTab          lipgloss.Style
	CodeTabActive    lipgloss.Style
	CodeFilename     lipgloss.Style
	CodeLanguage     lipgloss.Style
	CodeGutter       lipgloss.Style
	CodeLine         lipgloss.Style
	CodeButton       lipgloss.Style
	CodeButtonActive lipgloss.Style
	CodeNotice       lipgloss.Style

	// API table
	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
	TableName   lipgloss.Style

	Badge    lipgloss.Style
	NewBadge lipgloss.Style

	HelpBar lipgloss.Style
	HelpKey lipgloss.Style

	ErrorMsg   lipgloss.Style
	SuccessMsg lipgloss.Style
)

var activePalette *ColorPalette

func init() {
	apply(DefaultPalette())
}

// SetActiveTheme rebuilds every package-level style from the named theme.
// Call it from the event loop or before the program starts.
func SetActiveTheme(name ThemeName) {
	apply(GetPalette(name))
}

// ActivePalette returns the palette the styles were last built from.
func ActivePalette() *ColorPalette {
	return activePalette
}

func apply(p *ColorPalette) {
	activePalette = p

	PrimaryColor = p.Primary
	SecondaryColor = p.Secondary
	WarningColor = p.Warning
	ErrorColor = p.Error
	MutedColor = p.Muted
	SurfaceColor = p.Surface
	BackgroundColor = p.Background
	TextColor = p.Text
	BorderColor = p.Border
	AccentColor = p.Accent

	Primary = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning = lipgloss.NewStyle().Foreground(WarningColor)
	Error = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted = lipgloss.NewStyle().Foreground(MutedColor)
	Text = lipgloss.NewStyle().Foreground(TextColor)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true)

	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextColor).
		MarginTop(1)

	TabActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextColor).
		Padding(0, 2)

	TabInactive = lipgloss.NewStyle().
		Foreground(MutedColor).
		Padding(0, 2)

	TabFocused = lipgloss.NewStyle().
		Foreground(TextColor).
		Underline(true).
		Padding(0, 2)

	TabDisabled = lipgloss.NewStyle().
		Foreground(BorderColor).
		Strikethrough(true).
		Padding(0, 2)

	Indicator = lipgloss.NewStyle().
		Foreground(AccentColor)

	Sidebar = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 1)

	SidebarItem = lipgloss.NewStyle().
		Foreground(TextColor).
		Padding(0, 1)

	SidebarTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		MarginBottom(1)

	SidebarSectionTitle = lipgloss.NewStyle().
		Foreground(MutedColor)

	ContentBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 2)

	PreviewBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(1, 2)

	CodeFrame = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor)

	CodeHeader = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(BorderColor)

	CodeTab = lipgloss.NewStyle().
		Foreground(MutedColor).
		Padding(0, 1)

	CodeTabActive = lipgloss.NewStyle().
		Foreground(TextColor).
		Background(SurfaceColor).
		Padding(0, 1)

	CodeFilename = lipgloss.NewStyle().
		Foreground(TextColor).
		PaddingLeft(1)

	CodeLanguage = lipgloss.NewStyle().
		Foreground(MutedColor).
		PaddingLeft(1)

	CodeGutter = lipgloss.NewStyle().
		Foreground(MutedColor).
		Faint(true)

	CodeLine = lipgloss.NewStyle().
		Foreground(TextColor)

	CodeButton = lipgloss.NewStyle().
		Foreground(MutedColor).
		Border(lipgloss.NormalBorder(), false, true).
		BorderForeground(BorderColor).
		Padding(0, 1)

	CodeButtonActive = CodeButton.
		Foreground(SecondaryColor)

	CodeNotice = lipgloss.NewStyle().
		Foreground(MutedColor).
		Align(lipgloss.Center)

	TableHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(MutedColor).
		PaddingRight(2)

	TableCell = lipgloss.NewStyle().
		Foreground(TextColor).
		PaddingRight(2)

	TableName = lipgloss.NewStyle().
		Foreground(PrimaryColor).
		PaddingRight(2)

	Badge = lipgloss.NewStyle().
		Padding(0, 1).
		MarginRight(1)

	NewBadge = lipgloss.NewStyle().
		Bold(true).
		Foreground(BackgroundColor).
		Background(AccentColor).
		Padding(0, 1)

	HelpBar = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginTop(1)

	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(SecondaryColor)

	ErrorMsg = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true)

	SuccessMsg = lipgloss.NewStyle().
		Foreground(SecondaryColor).
		Bold(true)
}

// StatusColor returns the color for a component's publication status.
func StatusColor(status string) lipgloss.Color {
	switch status {
	case "Available":
		return SecondaryColor
	case "In progress":
		return WarningColor
	default:
		return MutedColor
	}
}

// StatusBadge renders a status label in its color.
func StatusBadge(status string) string {
	return Badge.Foreground(StatusColor(status)).Render(status)
}
