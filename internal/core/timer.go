package core

import "time"

// FixedStep paces simulation steps independently of the frame rate. It
// accumulates elapsed time and reports how many whole steps are due.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	maxBurst    int
}

// NewFixedStep constructs a FixedStep targeting the given steps per second.
// The first call to Due always yields one step.
func NewFixedStep(rate int) *FixedStep {
	fs := &FixedStep{maxBurst: 8}
	fs.SetRate(rate)
	fs.accumulator = fs.step
	return fs
}

// SetRate changes the step rate. Non-positive rates fall back to 60.
func (f *FixedStep) SetRate(rate int) {
	if rate <= 0 {
		rate = 60
	}
	f.step = time.Second / time.Duration(rate)
}

// Rate returns the configured steps per second.
func (f *FixedStep) Rate() int {
	return int(time.Second / f.step)
}

// Due reports how many steps should run at now. Long stalls are capped so a
// paused window does not trigger a flood of catch-up steps.
func (f *FixedStep) Due(now time.Time) int {
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now

	n := int(f.accumulator / f.step)
	f.accumulator -= time.Duration(n) * f.step
	if n > f.maxBurst {
		n = f.maxBurst
		f.accumulator = 0
	}
	return n
}
