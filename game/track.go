package game

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/wheelie/config"
	"github.com/lixenwraith/wheelie/motion"
	"github.com/lixenwraith/wheelie/spline"
)

// ErrTrackTooShort is returned when a looped track cannot hold the spawn window
var ErrTrackTooShort = errors.New("track too short for spawn window")

// BuildTrack creates the path described by the track section
// Both kinds are closed: an elliptical loop or a straight treadmill
func BuildTrack(t config.TrackSection) (spline.Path, error) {
	switch t.Kind {
	case config.TrackOval:
		pts := spline.EllipsePoints(t.RadiusX, t.RadiusZ, t.Points)
		return spline.NewCatmullRom(pts, true, mgl64.Ident4())
	case config.TrackLine:
		return spline.NewLine(mgl64.Vec3{}, mgl64.Vec3{0, 0, t.Length}, true)
	}
	return nil, fmt.Errorf("%w: unknown track kind %q", motion.ErrConfiguration, t.Kind)
}

// checkWindow makes sure props ahead and behind never alias across the loop seam
func checkWindow(path spline.Path, ahead, behind float64) error {
	if !path.Closed() {
		return nil
	}
	if half := path.Length() / 2; ahead >= half || behind >= half {
		return fmt.Errorf("%w: length %.1f, ahead %.1f, behind %.1f", ErrTrackTooShort, path.Length(), ahead, behind)
	}
	return nil
}
