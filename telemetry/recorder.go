// Package telemetry provides tick statistics, performance tracking and CSV output.
package telemetry

import (
	"github.com/pthm-cable/wavefx/effect"
	"github.com/pthm-cable/wavefx/particle"
)

// Recorder counts display requests per kind before forwarding them.
// It implements effect.Display.
type Recorder struct {
	next   effect.Display
	counts map[particle.Kind]int
	total  int
	all    int64
}

// NewRecorder wraps next. A nil next only counts.
func NewRecorder(next effect.Display) *Recorder {
	return &Recorder{
		next:   next,
		counts: make(map[particle.Kind]int),
	}
}

// Display implements effect.Display.
func (r *Recorder) Display(p effect.Particle) {
	r.counts[p.Kind]++
	r.total++
	r.all++
	if r.next != nil {
		r.next.Display(p)
	}
}

// Count returns the requests for kind since the last Reset.
func (r *Recorder) Count(kind particle.Kind) int {
	return r.counts[kind]
}

// Total returns all requests since the last Reset.
func (r *Recorder) Total() int {
	return r.total
}

// AllTime returns all requests ever recorded.
func (r *Recorder) AllTime() int64 {
	return r.all
}

// Reset clears the per-tick counts.
func (r *Recorder) Reset() {
	clear(r.counts)
	r.total = 0
}
