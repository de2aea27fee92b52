// Package ui holds layout constants shared by the TUI components.
package ui

const (
	// ScrollMargin is the number of rows kept visible above and below the
	// song list cursor.
	ScrollMargin = 3

	// BorderHeight is the vertical space consumed by a panel border.
	BorderHeight = 2

	// HeaderHeight is the logo line plus the search bar.
	HeaderHeight = 2

	// StatusHeight is the single status/help line at the bottom.
	StatusHeight = 1

	// MinProgressBarWidth is the narrowest usable progress bar.
	MinProgressBarWidth = 5
)
