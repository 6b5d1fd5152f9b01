package render

import "github.com/gdamore/tcell/v2"

var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38) // Tokyo Night background
	RgbRoad       = tcell.NewRGBColor(40, 42, 54)
	RgbLaneMark   = tcell.NewRGBColor(120, 120, 120)
	RgbShoulder   = tcell.NewRGBColor(60, 60, 70)

	RgbPlayer       = tcell.NewRGBColor(255, 165, 0) // Orange
	RgbPlayerFallen = tcell.NewRGBColor(255, 0, 0)
	RgbPlayerRocket = tcell.NewRGBColor(255, 255, 200)

	RgbTruck    = tcell.NewRGBColor(180, 50, 50)
	RgbOncoming = tcell.NewRGBColor(255, 80, 80)
	RgbBarrier  = tcell.NewRGBColor(230, 230, 230)
	RgbCoin     = tcell.NewRGBColor(255, 255, 0)
	RgbSpeedUp  = tcell.NewRGBColor(50, 255, 50)
	RgbSlowDown = tcell.NewRGBColor(100, 150, 255)
	RgbRocket   = tcell.NewRGBColor(255, 192, 203)
	RgbSign     = tcell.NewRGBColor(0, 200, 200)

	RgbStatusText = tcell.NewRGBColor(0, 0, 0)
	RgbRacingBg   = tcell.NewRGBColor(144, 238, 144) // Light grass green
	RgbFallenBg   = tcell.NewRGBColor(200, 50, 50)
	RgbPausedBg   = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbMeterOK    = tcell.NewRGBColor(0, 200, 0)
	RgbMeterBad   = tcell.NewRGBColor(255, 80, 80)
	RgbMeterEmpty = tcell.NewRGBColor(60, 60, 60)
	RgbDebugText  = tcell.NewRGBColor(180, 180, 180)
)
