package visual

// Element glyphs
const (
	BallChar        = '●'
	BumperChar      = '◉'
	SlingChar       = '▲'
	TargetChar      = '▮'
	TargetLitChar   = '█'
	DropUpChar      = '▀'
	DropDownChar    = '_'
	SpinnerChar     = '╪'
	KickoutChar     = '◌'
	KickoutLockChar = '◎'
	InlaneChar      = '┊'
	OutlaneChar     = '╎'
	ShooterChar     = '⁞'
	PlungerChar     = '═'
	FlipperChar     = '▬'
	DrainChar       = '▁'
	FloorDotChar    = '·'
	WallFillChar    = '▒'
	RailVertChar    = '│'
	RailHorizChar   = '─'
	RailCornerTL    = '╭'
	RailCornerTR    = '╮'
	RailCornerBL    = '╰'
	RailCornerBR    = '╯'
	ChargeFullChar  = '█'
	ChargeOffChar   = '░'
)

// Burst glyph rings, brightest first
var (
	BurstStar  = []rune{'✶', '✦', '·'}
	BurstRing  = []rune{'◎', '○', '·'}
	BurstSpark = []rune{'*', '+', '.'}
)

// SpinnerChars shows the flag at yaw quarter-turns (mod π)
var SpinnerChars = [4]rune{'─', '╲', '│', '╱'}
