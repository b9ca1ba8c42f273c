package loop

import "time"

// Clock is the time source for an Interval.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Interval is a repeating task on its own schedule, independent of frames.
// It is polled from the host event pump and fires at most once per Poll, so a
// long host stall yields one late tick rather than a burst. There is no way
// to cancel it.
type Interval struct {
	clock  Clock
	period time.Duration
	next   time.Time
	fn     func()
	fired  int
}

// Every schedules fn to run each period, starting one period from now.
func Every(clock Clock, period time.Duration, fn func()) *Interval {
	return &Interval{
		clock:  clock,
		period: period,
		next:   clock.Now().Add(period),
		fn:     fn,
	}
}

// Poll runs the task if it is due and reports whether it ran.
func (iv *Interval) Poll() bool {
	now := iv.clock.Now()
	if now.Before(iv.next) {
		return false
	}
	iv.next = iv.next.Add(iv.period)
	if !now.Before(iv.next) {
		// Fell more than a period behind: re-anchor on now.
		iv.next = now.Add(iv.period)
	}
	iv.fired++
	iv.fn()
	return true
}

// Fired is the number of times the task has run.
func (iv *Interval) Fired() int { return iv.fired }
