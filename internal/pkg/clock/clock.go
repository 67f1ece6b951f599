package clock

import "time"

// Clock is a small abstraction for obtaining the current time.
// The catalog stamps its domain events with it.
type Clock interface {
	Now() time.Time
}

// RealClock returns the real current time.
type RealClock struct{}

// Now returns the current time in UTC.
func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// Stepper is a controllable clock for tests. Every call to Now returns the
// current instant and then moves it forward by Step, so consecutive events
// carry distinct, ordered timestamps.
type Stepper struct {
	now  time.Time
	Step time.Duration
}

// NewStepper creates a Stepper starting at start (expected in UTC).
func NewStepper(start time.Time, step time.Duration) *Stepper {
	return &Stepper{now: start, Step: step}
}

// Now returns the current fake instant and advances it by Step.
func (s *Stepper) Now() time.Time {
	t := s.now
	s.now = s.now.Add(s.Step)
	return t
}
