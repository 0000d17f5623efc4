package effect

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"
)

// Status is the lifecycle state of a scheduled effect.
type Status uint8

const (
	StatusRunning Status = iota
	StatusDone
	StatusCancelled
)

// String returns a short name for logs.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusDone:
		return "done"
	case StatusCancelled:
		return "cancelled"
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// Handle tracks one scheduled effect. It is also the Host passed to the runner.
type Handle struct {
	id      uint32
	name    string
	runner  Runner
	sched   Schedule
	anchor  Anchor
	manager *Manager

	wait        int // ticks until the next run
	runs        int // runs in the current sequence
	totalRuns   int
	repeatsLeft int
	status      Status
	cancelReq   bool
	onDone      func(*Handle)
}

// ID returns the manager-assigned identifier.
func (h *Handle) ID() uint32 { return h.id }

// Name returns the name given at Start.
func (h *Handle) Name() string { return h.name }

// Runner returns the scheduled effect.
func (h *Handle) Runner() Runner { return h.runner }

// Status returns the lifecycle state.
func (h *Handle) Status() Status { return h.status }

// TotalRuns returns how many times the runner has been invoked.
func (h *Handle) TotalRuns() int { return h.totalRuns }

// OnDone registers fn to be called once when the effect finishes or is cancelled.
func (h *Handle) OnDone(fn func(*Handle)) { h.onDone = fn }

// Anchor implements Host.
func (h *Handle) Anchor() (Location, bool) {
	if h.anchor == nil {
		return Location{}, false
	}
	return h.anchor.Location()
}

// Move implements Host.
func (h *Handle) Move(d r3.Vec) {
	if h.anchor != nil {
		h.anchor.Translate(d)
	}
}

// Display implements Host.
func (h *Handle) Display(p Particle) {
	h.manager.display.Display(p)
}

// Cancel implements Host. It may also be called from outside a run.
func (h *Handle) Cancel() {
	h.cancelReq = true
}

// Manager drives scheduled effects, one Tick per game tick.
type Manager struct {
	display Display
	logger  *slog.Logger
	handles []*Handle
	nextID  uint32
	tick    int64

	lastRuns int
}

// NewManager creates a manager forwarding particles to display.
// A nil logger uses slog.Default().
func NewManager(display Display, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		display: display,
		logger:  logger,
	}
}

// Start schedules r relative to anchor.
func (m *Manager) Start(name string, r Runner, s Schedule, anchor Anchor) (*Handle, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", name, err)
	}
	m.nextID++
	h := &Handle{
		id:          m.nextID,
		name:        name,
		runner:      r,
		sched:       s,
		anchor:      anchor,
		manager:     m,
		wait:        s.firstDelay(),
		repeatsLeft: s.Repeats,
	}
	m.handles = append(m.handles, h)
	m.logger.Debug("effect started",
		"id", h.id,
		"name", name,
		"type", s.Type.String(),
		"period", s.Period,
		"iterations", s.Iterations,
	)
	return h, nil
}

// Tick advances every effect by one game tick.
func (m *Manager) Tick() {
	m.tick++
	m.lastRuns = 0

	for _, h := range m.handles {
		if h.status != StatusRunning {
			continue
		}
		if h.cancelReq {
			m.finish(h, StatusCancelled)
			continue
		}
		if h.wait > 0 {
			h.wait--
			continue
		}

		h.runner.Run(h)
		h.totalRuns++
		m.lastRuns++

		if h.cancelReq {
			m.finish(h, StatusCancelled)
			continue
		}
		m.advance(h)
	}

	m.compact()
}

// advance moves h to its next run after a completed one.
func (m *Manager) advance(h *Handle) {
	h.runs++
	h.wait = h.sched.Period - 1
	if h.wait < 0 {
		h.wait = 0
	}

	per := h.sched.runsPerSequence()
	if per < 0 || h.runs < per {
		return
	}
	if h.repeatsLeft == 0 {
		m.finish(h, StatusDone)
		return
	}
	if h.repeatsLeft > 0 {
		h.repeatsLeft--
	}
	h.runs = 0
	h.runner.Reset()
	m.logger.Debug("effect sequence restarted", "id", h.id, "name", h.name, "repeats_left", h.repeatsLeft)
}

func (m *Manager) finish(h *Handle, status Status) {
	h.status = status
	m.logger.Debug("effect finished",
		"id", h.id,
		"name", h.name,
		"status", status.String(),
		"runs", h.totalRuns,
		"tick", m.tick,
	)
	if h.onDone != nil {
		h.onDone(h)
	}
}

// compact drops finished handles, preserving start order.
func (m *Manager) compact() {
	alive := 0
	for _, h := range m.handles {
		if h.status == StatusRunning {
			m.handles[alive] = h
			alive++
		}
	}
	for i := alive; i < len(m.handles); i++ {
		m.handles[i] = nil
	}
	m.handles = m.handles[:alive]
}

// Active returns the number of effects still scheduled.
func (m *Manager) Active() int {
	return len(m.handles)
}

// Handles returns the effects still scheduled, in start order.
func (m *Manager) Handles() []*Handle {
	return m.handles
}

// LastRuns returns how many runners were invoked during the last Tick.
func (m *Manager) LastRuns() int {
	return m.lastRuns
}

// CurrentTick returns the number of Tick calls so far.
func (m *Manager) CurrentTick() int64 {
	return m.tick
}

// CancelAll cancels every scheduled effect. They are dropped on the next Tick.
func (m *Manager) CancelAll() {
	for _, h := range m.handles {
		h.Cancel()
	}
}
