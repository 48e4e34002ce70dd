// Package tui provides the terminal component browser for CraftUI.
// This file contains layout-related constants and dimension calculation functions.
package tui

// Sidebar dimensions
const (
	// SidebarMinWidth is the sidebar width used on narrow terminals (< 80 cols).
	SidebarMinWidth = 20

	// NarrowTerminalThreshold is the terminal width below which the sidebar uses minimum width.
	NarrowTerminalThreshold = 80
)

// Layout offsets - these represent the space taken by fixed UI elements
const (
	// PanelGap is the gap between sidebar and content panels.
	PanelGap = 1

	// ContentBoxPadding is the horizontal border and padding of the content box.
	ContentBoxPadding = 6

	// MainAreaHeightOffset accounts for the header, help bar and borders.
	MainAreaHeightOffset = 5

	// SidebarPadding is the horizontal border and padding of the sidebar.
	SidebarPadding = 4

	// PreviewPadding is the horizontal border and padding of an example preview.
	PreviewPadding = 6
)

// Minimum usable dimensions
const (
	MinContentWidth  = 24
	MinContentHeight = 4
)

// sidebarWidth returns the configured sidebar width, shrunk on narrow
// terminals.
func sidebarWidth(configured, termWidth int) int {
	if termWidth < NarrowTerminalThreshold {
		return SidebarMinWidth
	}
	return configured
}

// CalculateContentDimensions returns the page area inside the content box
// for a terminal of the given size.
func CalculateContentDimensions(termWidth, termHeight, sidebar int) (contentWidth, contentHeight int) {
	contentWidth = termWidth - sidebarWidth(sidebar, termWidth) - PanelGap - ContentBoxPadding
	contentHeight = termHeight - MainAreaHeightOffset
	return max(contentWidth, MinContentWidth), max(contentHeight, MinContentHeight)
}
