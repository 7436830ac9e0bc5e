package core

// Color is a semantic foreground colour for a screen cell.
// The platform layer maps each value to a terminal colour.
type Color uint8

// Arena palette.
const (
	ColorDefault Color = iota
	ColorPlayer
	ColorWeapon
	ColorBullet
	ColorDemon
	ColorFlyer
	ColorBoss
	ColorGround
	ColorAnvil
	ColorGate
	ColorHUD
	ColorGood
	ColorBad
	ColorWarn
	ColorMuted
)
