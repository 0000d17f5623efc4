package effect

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSchedule is returned by Schedule.Validate.
var ErrInvalidSchedule = errors.New("invalid schedule")

// Type selects how an effect is scheduled.
type Type uint8

const (
	TypeInstant   Type = iota // runs once on the first tick
	TypeDelayed               // runs once after Delay ticks
	TypeRepeating             // runs every Period ticks for Iterations runs
)

// String returns the configuration name of the type.
func (t Type) String() string {
	switch t {
	case TypeInstant:
		return "instant"
	case TypeDelayed:
		return "delayed"
	case TypeRepeating:
		return "repeating"
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// ParseType resolves a configuration name.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "instant":
		return TypeInstant, nil
	case "delayed":
		return TypeDelayed, nil
	case "repeating", "":
		return TypeRepeating, nil
	}
	return 0, fmt.Errorf("%w: unknown type %q", ErrInvalidSchedule, name)
}

// Schedule controls when an effect runs.
type Schedule struct {
	Type       Type
	Delay      int // ticks before the first run
	Period     int // ticks between runs (repeating)
	Iterations int // runs per sequence (repeating), -1 = forever
	Repeats    int // extra sequences after the first, -1 = forever
}

// DefaultSchedule is the wave's repeating schedule.
func DefaultSchedule() Schedule {
	return Schedule{
		Type:       TypeRepeating,
		Period:     5,
		Iterations: 50,
	}
}

// Validate checks the schedule for values the manager cannot run.
func (s Schedule) Validate() error {
	if s.Delay < 0 {
		return fmt.Errorf("%w: negative delay %d", ErrInvalidSchedule, s.Delay)
	}
	if s.Type == TypeRepeating {
		if s.Period < 1 {
			return fmt.Errorf("%w: period must be >= 1, got %d", ErrInvalidSchedule, s.Period)
		}
		if s.Iterations == 0 || s.Iterations < -1 {
			return fmt.Errorf("%w: iterations must be >= 1 or -1, got %d", ErrInvalidSchedule, s.Iterations)
		}
	}
	if s.Repeats < -1 {
		return fmt.Errorf("%w: repeats must be >= 0 or -1, got %d", ErrInvalidSchedule, s.Repeats)
	}
	return nil
}

// runsPerSequence returns how many runs make up one sequence, -1 = unbounded.
func (s Schedule) runsPerSequence() int {
	if s.Type == TypeRepeating {
		return s.Iterations
	}
	return 1
}

// firstDelay returns the ticks to wait before the first run.
func (s Schedule) firstDelay() int {
	if s.Type == TypeInstant {
		return 0
	}
	return s.Delay
}
