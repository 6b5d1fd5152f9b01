// Package render draws a top-down view of the run and its HUD with tcell
package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/wheelie/game"
	"github.com/lixenwraith/wheelie/motion"
	"github.com/lixenwraith/wheelie/rider"
	"github.com/lixenwraith/wheelie/spline"
	"github.com/lixenwraith/wheelie/status"
)

const (
	laneCells   = 7   // columns per lane
	unitsPerRow = 2.0 // path units per screen row
	playerRow   = 4   // rows between the player and the status bar
	hudRows     = 2   // status bar and wheelie meter
	debugWidth  = 34
)

// View is what a frame needs beyond the session snapshot
type View struct {
	Paused bool
	Muted  bool

	// Debug lists telemetry beside the road when non-nil
	Debug []status.Entry

	// Survivable wheelie range in degrees; BandHigh 0 hides it
	BandLow    float64
	BandHigh   float64
	MaxWheelie float64
}

// NewView derives the wheelie meter range from a controller config
func NewView(cfg motion.Config) View {
	v := View{MaxWheelie: cfg.MaxWheelieAngle}
	if cfg.WheelieMandatory {
		v.BandLow = cfg.WheelieErrorTolerance
		v.BandHigh = cfg.MaxWheelieAngle - cfg.WheelieErrorTolerance
	}
	return v
}

// TerminalRenderer handles all terminal rendering
type TerminalRenderer struct {
	screen tcell.Screen
	base   tcell.Style
}

func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	return &TerminalRenderer{
		screen: screen,
		base:   tcell.StyleDefault.Background(RgbBackground),
	}
}

// RenderFrame draws one frame and shows it
func (r *TerminalRenderer) RenderFrame(f game.Frame, v View) {
	r.screen.Clear()
	w, h := r.screen.Size()
	r.fill(0, 0, w, h, ' ', r.base)

	roadW := f.Lanes.Count * laneCells
	roadX := max((w-roadW)/2, 1)
	if v.Debug != nil && roadX+roadW+debugWidth > w {
		roadX = max(w-roadW-debugWidth-1, 1)
	}
	bottom := h - hudRows - 1
	py := bottom - playerRow

	r.drawRoad(roadX, roadW, bottom, f.Lanes.Count)
	for _, p := range f.Props {
		r.drawProp(p, roadX, py, bottom, f.Lanes)
	}
	r.drawPlayer(f, roadX, py, f.Lanes)
	r.drawStatusBar(f, v, h-hudRows, w)
	r.drawMeter(f, v, h-1, w)
	if v.Debug != nil {
		r.drawDebug(v.Debug, roadX+roadW+2, 0, bottom)
	}
	r.screen.Show()
}

// column maps a lateral offset to a screen column
func column(lateral float64, roadX int, lanes rider.Lanes) int {
	lane := lateral/lanes.Width + lanes.Center()
	return roadX + int(math.Round(lane*laneCells)) + laneCells/2
}

// row maps a distance ahead of the player to a screen row
func row(ahead float64, py int) int {
	return py - int(math.Round(ahead/unitsPerRow))
}

func (r *TerminalRenderer) drawRoad(x, width, bottom, lanes int) {
	road := r.base.Background(RgbRoad)
	mark := road.Foreground(RgbLaneMark)
	shoulder := r.base.Foreground(RgbShoulder)
	for y := 0; y <= bottom; y++ {
		r.fill(x, y, width, 1, ' ', road)
		r.screen.SetContent(x-1, y, '▌', nil, shoulder)
		r.screen.SetContent(x+width, y, '▐', nil, shoulder)
		if y%2 == 0 {
			continue
		}
		for l := 1; l < lanes; l++ {
			r.screen.SetContent(x+l*laneCells, y, '┊', nil, mark)
		}
	}
}

func (r *TerminalRenderer) drawProp(p game.Prop, roadX, py, bottom int, lanes rider.Lanes) {
	y := row(p.Ahead, py)
	if y < 0 || y > bottom {
		return
	}
	x := column(p.Lateral, roadX, lanes)
	style := r.base.Background(RgbRoad)
	switch p.Kind {
	case rider.KindTruck:
		color, body := RgbTruck, "▀█▀"
		if p.Dir == spline.Reverse {
			color, body = RgbOncoming, "▄█▄"
		}
		r.text(x-1, y, body, style.Foreground(color))
	case rider.KindBarrier:
		r.text(x-2, y, "▬▬▬▬▬", style.Foreground(RgbBarrier))
	case rider.KindCoin:
		r.screen.SetContent(x, y, '●', nil, style.Foreground(RgbCoin))
	case rider.KindSpeedUp:
		r.screen.SetContent(x, y, '▲', nil, style.Foreground(RgbSpeedUp))
	case rider.KindSlowDown:
		r.screen.SetContent(x, y, '▼', nil, style.Foreground(RgbSlowDown))
	case rider.KindRocket:
		r.screen.SetContent(x, y, '♦', nil, style.Foreground(RgbRocket))
	case rider.KindSign:
		r.text(x-1, y, "[=]", style.Foreground(RgbSign))
	}
}

// Player glyph leans with the tilt; a shadow marks the road under a rocket
func (r *TerminalRenderer) drawPlayer(f game.Frame, roadX, py int, lanes rider.Lanes) {
	x := column(f.Player.Lateral, roadX, lanes)
	style := r.base.Background(RgbRoad).Foreground(RgbPlayer)
	glyph := '║'
	switch {
	case !f.Racing:
		style, glyph = style.Foreground(RgbPlayerFallen), '✖'
	case f.Tilt > 5:
		glyph = '╱'
	case f.Tilt < -5:
		glyph = '╲'
	}

	y := py
	if f.Lift > 0.5 {
		r.screen.SetContent(x, py, '░', nil, style.Foreground(RgbShoulder))
		y = py - int(math.Ceil(f.Lift/unitsPerRow))
		style = style.Foreground(RgbPlayerRocket)
	}
	r.screen.SetContent(x, y, glyph, nil, style.Bold(true))
	if f.Racing && f.Wheelie > 0 {
		r.screen.SetContent(x, y-1, '˄', nil, style)
	}
}

func (r *TerminalRenderer) drawStatusBar(f game.Frame, v View, y, w int) {
	r.fill(0, y, w, 1, ' ', r.base)

	mode, bg := " RACING ", RgbRacingBg
	switch {
	case v.Paused:
		mode, bg = " PAUSED ", RgbPausedBg
	case f.RunEnded:
		mode, bg = " GAME OVER ", RgbFallenBg
	case !f.Racing:
		mode, bg = " CRASH ", RgbFallenBg
	}
	x := r.text(0, y, mode, r.base.Foreground(RgbStatusText).Background(bg))

	s := f.Summary
	info := fmt.Sprintf(" run %d  speed %5.1f  score %d  coins %d  best %d", f.Run, f.Speed, s.Score, s.Coins, s.Best)
	if v.Muted {
		info += "  [muted]"
	}
	if f.RunEnded {
		info += "  (r to restart)"
	}
	r.text(x, y, info, r.base.Foreground(tcell.ColorWhite))
}

// drawMeter shows the wheelie angle against the survivable band
func (r *TerminalRenderer) drawMeter(f game.Frame, v View, y, w int) {
	r.fill(0, y, w, 1, ' ', r.base)
	x := r.text(0, y, " wheelie ", r.base.Foreground(RgbDebugText))
	width := min(w-x-1, 40)
	if width <= 0 || v.MaxWheelie <= 0 {
		return
	}
	filled := int(math.Round(math.Max(f.Wheelie, 0) / v.MaxWheelie * float64(width)))
	for i := 0; i < width; i++ {
		angle := (float64(i) + 0.5) / float64(width) * v.MaxWheelie
		color := RgbMeterEmpty
		if i < filled {
			color = RgbMeterOK
			if v.BandHigh > 0 && (angle <= v.BandLow || angle > v.BandHigh) {
				color = RgbMeterBad
			}
		}
		r.screen.SetContent(x+i, y, '█', nil, r.base.Foreground(color))
	}
}

func (r *TerminalRenderer) drawDebug(entries []status.Entry, x, y, bottom int) {
	style := r.base.Foreground(RgbDebugText)
	for i, e := range entries {
		if y+i > bottom {
			return
		}
		r.text(x, y+i, fmt.Sprintf("%-18s %s", e.Key, e.Value), style)
	}
}

// text writes s from (x, y) and returns the column after it
func (r *TerminalRenderer) text(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}

func (r *TerminalRenderer) fill(x, y, w, h int, ch rune, style tcell.Style) {
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			r.screen.SetContent(i, j, ch, nil, style)
		}
	}
}
