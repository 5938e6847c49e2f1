// Package clock abstracts the millisecond clock the engine stamps trigger
// times with, so tests can drive time by hand.
package clock

import "time"

// Clock reports milliseconds elapsed since some fixed start point.
// Implementations must be monotonic.
type Clock interface {
	Milliseconds() uint32
}

// Wall measures real elapsed time from its creation.
type Wall struct {
	start time.Time
}

func NewWall() *Wall {
	return &Wall{start: time.Now()}
}

func (w *Wall) Milliseconds() uint32 {
	return uint32(time.Since(w.start).Milliseconds())
}

// Manual is a hand-advanced clock for tests and offline rendering.
type Manual struct {
	now uint32
}

func (m *Manual) Milliseconds() uint32 {
	return m.now
}

// Advance moves the clock forward by ms milliseconds.
func (m *Manual) Advance(ms uint32) {
	m.now += ms
}
