package game

import (
	"log"

	"github.com/lixenwraith/wheelie/motion"
)

// Fanout forwards every event to each sink in order
type Fanout []motion.EventSink

func (f Fanout) OnMotionEvent(e motion.Event) {
	for _, s := range f {
		s.OnMotionEvent(e)
	}
}

// logSink writes run lifecycle events to the debug log
type logSink struct {
	run *int
}

func (l logSink) OnMotionEvent(e motion.Event) {
	switch e.Kind {
	case motion.EventFellOver:
		log.Printf("run %d: fell over (%s) at distance %.1f lane %d", *l.run, e.Reason, e.Distance, e.Lane)
	case motion.EventRunEnded:
		log.Printf("run %d: ended with %d points", *l.run, e.Value)
	case motion.EventRocketStarted:
		log.Printf("run %d: rocket at distance %.1f", *l.run, e.Distance)
	}
}
