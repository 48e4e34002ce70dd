package tui

import "testing"

func TestCalculateContentDimensions(t *testing.T) {
	tests := []struct {
		name                  string
		termWidth, termHeight int
		sidebar               int
		wantWidth, wantHeight int
	}{
		{
			name:      "standard terminal uses configured sidebar",
			termWidth: 120, termHeight: 40, sidebar: 28,
			wantWidth:  120 - 28 - PanelGap - ContentBoxPadding, // 85
			wantHeight: 40 - MainAreaHeightOffset,               // 35
		},
		{
			name:      "narrow terminal uses minimum sidebar width",
			termWidth: 60, termHeight: 20, sidebar: 28,
			wantWidth:  60 - SidebarMinWidth - PanelGap - ContentBoxPadding, // 33
			wantHeight: 20 - MainAreaHeightOffset,                           // 15
		},
		{
			name:      "tiny terminal clamps to minimums",
			termWidth: 30, termHeight: 5, sidebar: 28,
			wantWidth: MinContentWidth, wantHeight: MinContentHeight,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := CalculateContentDimensions(tt.termWidth, tt.termHeight, tt.sidebar)
			if w != tt.wantWidth || h != tt.wantHeight {
				t.Errorf("CalculateContentDimensions() = %d, %d; want %d, %d", w, h, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestSidebarWidth(t *testing.T) {
	tests := []struct {
		termWidth int
		want      int
	}{
		{NarrowTerminalThreshold - 1, SidebarMinWidth},
		{NarrowTerminalThreshold, 32},
		{200, 32},
	}
	for _, tt := range tests {
		if got := sidebarWidth(32, tt.termWidth); got != tt.want {
			t.Errorf("sidebarWidth(32, %d) = %d, want %d", tt.termWidth, got, tt.want)
		}
	}
}
