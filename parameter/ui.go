package parameter

// Layout & Margins
const (
	// TopMargin holds the HUD line
	TopMargin = 1

	// BottomMargin holds the key help line
	BottomMargin = 1

	// CellAspect is the height/width ratio of a terminal cell
	CellAspect = 2.0

	// MinPlayfieldRows below which the playfield is not drawn
	MinPlayfieldRows = 8
)

// Bursts
const (
	// BurstSteps is how long a burst stays on screen, in fixed steps (250 ms)
	BurstSteps = 30

	// BurstMax caps live bursts; older ones are replaced
	BurstMax = 32

	// BannerSteps is how long a clear or drain banner stays in the HUD (1.5 s)
	BannerSteps = 180
)

// Overlay Configuration
const (
	// OverlayWidthPercent is the percentage of screen width the overlay covers
	OverlayWidthPercent = 0.6

	// OverlayPaddingX is the horizontal padding inside the overlay
	OverlayPaddingX = 2

	// OverlayPaddingY is the vertical padding inside the overlay
	OverlayPaddingY = 1

	// OverlayBoardRows is the number of leaderboard rows shown on overlays
	OverlayBoardRows = 10

	// ChargeBarWidth is the HUD launch charge gauge width in cells
	ChargeBarWidth = 10
)
