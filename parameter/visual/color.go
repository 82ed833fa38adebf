package visual

import "github.com/gdamore/tcell/v2"

// Playfield colors, Tokyo Night base
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)
	RgbRail       = tcell.NewRGBColor(86, 95, 137)
	RgbWall       = tcell.NewRGBColor(65, 72, 104)
	RgbFloorDot   = tcell.NewRGBColor(41, 46, 66)
	RgbDrainZone  = tcell.NewRGBColor(90, 30, 40)

	RgbBall = tcell.NewRGBColor(230, 230, 240)

	RgbBumper      = tcell.NewRGBColor(255, 120, 200)
	RgbSling       = tcell.NewRGBColor(255, 165, 0)
	RgbTargetDark  = tcell.NewRGBColor(60, 100, 200)
	RgbTargetLit   = tcell.NewRGBColor(140, 190, 255)
	RgbDropUp      = tcell.NewRGBColor(255, 80, 80)
	RgbDropDown    = tcell.NewRGBColor(90, 40, 40)
	RgbSpinner     = tcell.NewRGBColor(0, 220, 220)
	RgbKickout     = tcell.NewRGBColor(180, 120, 255)
	RgbKickoutLock = tcell.NewRGBColor(255, 255, 0)
	RgbInlane      = tcell.NewRGBColor(50, 200, 50)
	RgbOutlane     = tcell.NewRGBColor(200, 50, 50)
	RgbShooter     = tcell.NewRGBColor(180, 180, 180)
	RgbFlipper     = tcell.NewRGBColor(255, 255, 255)
	RgbPlunger     = tcell.NewRGBColor(200, 200, 200)

	// Bursts
	RgbBurstHot  = tcell.NewRGBColor(255, 255, 200)
	RgbBurstWarm = tcell.NewRGBColor(255, 200, 80)
	RgbBurstCold = tcell.NewRGBColor(120, 200, 255)
	RgbBurstLoss = tcell.NewRGBColor(255, 60, 60)

	// HUD
	RgbHudText      = tcell.NewRGBColor(0, 0, 0)
	RgbHudScoreBg   = tcell.NewRGBColor(135, 206, 250)
	RgbHudMultBg    = tcell.NewRGBColor(255, 192, 203)
	RgbHudBallsBg   = tcell.NewRGBColor(144, 238, 144)
	RgbHudBonusBg   = tcell.NewRGBColor(255, 255, 255)
	RgbHudChargeBar = tcell.NewRGBColor(255, 165, 0)
	RgbHudChargeOff = tcell.NewRGBColor(65, 72, 104)
	RgbHudTitle     = tcell.NewRGBColor(180, 180, 180)

	// Overlay and debug
	RgbOverlayBorder = tcell.NewRGBColor(135, 206, 250)
	RgbOverlayBg     = tcell.NewRGBColor(20, 20, 30)
	RgbOverlayText   = tcell.NewRGBColor(230, 230, 240)
	RgbOverlayAccent = tcell.NewRGBColor(255, 255, 0)
	RgbDebugText     = tcell.NewRGBColor(0, 200, 200)
)
