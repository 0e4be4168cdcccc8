package render

// Tokyo Night base
var (
	RgbBackground = RGB{26, 27, 38}
	RgbGround     = RGB{36, 40, 59}
	RgbHorizon    = RGB{52, 59, 88}
	RgbText       = RGB{192, 202, 245}
	RgbTextDim    = RGB{86, 95, 137}
	RgbStatusText = RGB{0, 0, 0}
)

// Sword and trail
var (
	RgbBlade      = RGB{230, 240, 255}
	RgbBladeGlow  = RGB{122, 162, 247}
	RgbTrail      = RGB{125, 207, 255}
	RgbShockwave  = RGB{255, 255, 255}
	RgbHilt       = RGB{224, 175, 104}
	RgbBladeArray = RGB{187, 154, 247}
)

// Enemies
var (
	RgbWolf      = RGB{169, 177, 214}
	RgbEagle     = RGB{224, 175, 104}
	RgbEnemyEye  = RGB{247, 118, 142}
	RgbEnemyDead = RGB{255, 158, 100}
)

// Formation and rain
var (
	RgbFormationCalm    = RGB{122, 162, 247}
	RgbFormationCharged = RGB{255, 215, 0}
	RgbRing             = RGB{65, 72, 104}
	RgbRingCharged      = RGB{255, 158, 100}
	RgbRain             = RGB{180, 220, 255}
	RgbRainCharged      = RGB{255, 230, 150}
)

// Status bar backgrounds
var (
	RgbModeSingleBg = RGB{135, 206, 250}
	RgbModeArrayBg  = RGB{187, 154, 247}
	RgbLockedBg     = RGB{200, 50, 50}
	RgbPausedBg     = RGB{255, 165, 0}
)

// MeterColor returns the gradient color at fill fraction t (0-1)
// Cool blue through violet to gold at full charge
func MeterColor(t float64) RGB {
	if t < 0.5 {
		return Lerp(RGB{65, 110, 200}, RGB{187, 154, 247}, t*2)
	}
	return Lerp(RGB{187, 154, 247}, RgbFormationCharged, (t-0.5)*2)
}
