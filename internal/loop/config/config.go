// Package config centralizes the loop's tunable parameters.
package config

import "time"

// Field resolution in logical units. Rendering scales to fit the terminal.
const (
	FieldWidth  = 600
	FieldHeight = 600
)

// Max render area in terminal cells. Larger terminals get a centred,
// bordered area.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 80
)

// Frame pacing
const (
	DefaultFPS = 60
)

// Message font sizes. Lines are laid out at fontSize logical units apart.
const (
	DefaultFontSize = 50
	StartFontSize   = 35
	SummaryFontSize = 25
	MessageTop      = 100 // Logical y of the first message line
)

// HUD
const (
	HUDBaseline  = 30 // Logical y of the HUD text
	HUDMargin    = 15
	LifeIconSize = 20
)

// Animation
const (
	EnemyAnimation = 500 * time.Millisecond
	EnemyFrames    = 2
	BonusAnimation = 400 * time.Millisecond
	BonusFrames    = 4
)
