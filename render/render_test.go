package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/wheelie/game"
	"github.com/lixenwraith/wheelie/motion"
	"github.com/lixenwraith/wheelie/rider"
	"github.com/lixenwraith/wheelie/score"
	"github.com/lixenwraith/wheelie/spline"
	"github.com/lixenwraith/wheelie/status"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

// line reads one screen row as text
func line(s tcell.SimulationScreen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func findRune(s tcell.SimulationScreen, want rune) (int, int, bool) {
	w, h := s.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if r, _, _, _ := s.GetContent(x, y); r == want {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

func racingFrame() game.Frame {
	return game.Frame{
		Run:     2,
		Lanes:   rider.Lanes{Count: 3, Width: 3},
		Lane:    1,
		Speed:   12.5,
		Racing:  true,
		Wheelie: 20,
		Summary: score.Summary{Points: 40, Coins: 3, Score: 70, Best: 90},
	}
}

func TestRenderPlayerAndHUD(t *testing.T) {
	s := newScreen(t, 80, 24)
	r := NewTerminalRenderer(s)
	r.RenderFrame(racingFrame(), NewView(motion.DefaultConfig()))

	x, y, ok := findRune(s, '║')
	require.True(t, ok, "player glyph drawn")
	assert.Equal(t, 24-hudRows-1-playerRow, y)
	assert.Equal(t, (80-3*laneCells)/2+laneCells+laneCells/2, x, "middle lane is centered")

	bar := line(s, 24-hudRows)
	assert.Contains(t, bar, "RACING")
	assert.Contains(t, bar, "score 70")
	assert.Contains(t, bar, "best 90")
	assert.Contains(t, line(s, 23), "wheelie")
}

func TestRenderPropsByLaneAndDistance(t *testing.T) {
	s := newScreen(t, 80, 24)
	r := NewTerminalRenderer(s)

	f := racingFrame()
	f.Props = []game.Prop{
		{Kind: rider.KindCoin, Lane: 0, Ahead: 8, Lateral: -3},
		{Kind: rider.KindRocket, Lane: 2, Ahead: 100, Lateral: 3}, // off screen
	}
	r.RenderFrame(f, View{})

	px, py, _ := findRune(s, '║')
	cx, cy, ok := findRune(s, '●')
	require.True(t, ok)
	assert.Equal(t, px-laneCells, cx)
	assert.Equal(t, py-4, cy)

	_, _, ok = findRune(s, '♦')
	assert.False(t, ok, "props beyond the top row are clipped")
}

func TestRenderOncomingTruck(t *testing.T) {
	s := newScreen(t, 80, 24)
	r := NewTerminalRenderer(s)
	f := racingFrame()
	f.Props = []game.Prop{{Kind: rider.KindTruck, Ahead: 6, Dir: spline.Reverse}}
	r.RenderFrame(f, View{})

	_, y, ok := findRune(s, '▄')
	require.True(t, ok)
	assert.Contains(t, line(s, y), "▄█▄")
}

func TestRenderModes(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(f *game.Frame, v *View)
		wants []string
	}{
		{"paused", func(_ *game.Frame, v *View) { v.Paused = true }, []string{"PAUSED"}},
		{"crash", func(f *game.Frame, _ *View) { f.Racing = false }, []string{"CRASH"}},
		{"over", func(f *game.Frame, _ *View) { f.Racing, f.RunEnded = false, true }, []string{"GAME OVER", "restart"}},
		{"muted", func(_ *game.Frame, v *View) { v.Muted = true }, []string{"RACING", "[muted]"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newScreen(t, 100, 20)
			f, v := racingFrame(), View{}
			tt.edit(&f, &v)
			NewTerminalRenderer(s).RenderFrame(f, v)
			bar := line(s, 20-hudRows)
			for _, want := range tt.wants {
				assert.Contains(t, bar, want)
			}
		})
	}
}

func TestRenderFallenGlyph(t *testing.T) {
	s := newScreen(t, 80, 24)
	f := racingFrame()
	f.Racing = false
	NewTerminalRenderer(s).RenderFrame(f, View{})
	_, _, ok := findRune(s, '✖')
	assert.True(t, ok)
}

func TestRenderDebugPanel(t *testing.T) {
	s := newScreen(t, 100, 24)
	reg := status.NewRegistry()
	reg.Floats.Get(status.KeySpeed).Set(7.25)

	v := View{Debug: reg.Snapshot()}
	NewTerminalRenderer(s).RenderFrame(racingFrame(), v)

	found := false
	for y := 0; y < 24; y++ {
		if strings.Contains(line(s, y), status.KeySpeed) {
			assert.Contains(t, line(s, y), "7.25")
			found = true
		}
	}
	assert.True(t, found)
}

func TestNewViewBand(t *testing.T) {
	cfg := motion.DefaultConfig()
	cfg.WheelieMandatory = true
	v := NewView(cfg)
	assert.Equal(t, cfg.WheelieErrorTolerance, v.BandLow)
	assert.Equal(t, cfg.MaxWheelieAngle-cfg.WheelieErrorTolerance, v.BandHigh)

	cfg.WheelieMandatory = false
	assert.Zero(t, NewView(cfg).BandHigh)
}
