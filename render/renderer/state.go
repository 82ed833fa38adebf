package renderer

// TableState is the mechanism state the playfield shows
// Implemented by game.Session
type TableState interface {
	TargetLit(group, i int) bool
	DropDown(i int) bool
	KickoutLocked() bool
	PlungerPosition() (float64, bool)
}
