// Package audio synthesizes short cues for controller events with beep
package audio

// Cue is one synthesized sound
type Cue int

const (
	CueLane     Cue = iota // Lane change whoosh
	CueSpeedUp             // Rising sweep
	CueSlowDown            // Falling sweep
	CueRocket              // Long noisy rise
	CueCoin                // Two-note chime
	CueCrash               // Noise burst with rumble
	CueRunEnd              // Low bell
	cueCount
)

var cueNames = [...]string{
	CueLane:     "lane",
	CueSpeedUp:  "speed_up",
	CueSlowDown: "slow_down",
	CueRocket:   "rocket",
	CueCoin:     "coin",
	CueCrash:    "crash",
	CueRunEnd:   "run_end",
}

func (c Cue) String() string {
	if c >= 0 && c < cueCount {
		return cueNames[c]
	}
	return "unknown"
}

// ParseCue maps a name back to a Cue
func ParseCue(s string) (Cue, bool) {
	for i, n := range cueNames {
		if n == s {
			return Cue(i), true
		}
	}
	return 0, false
}
