package chart

import "time"

// DefaultResizeDelay is the quiet period a chart waits after the last resize
// notification before re-rendering.
const DefaultResizeDelay = 100 * time.Millisecond

// Debouncer coalesces bursts of triggers into one firing, Delay after the
// last trigger. It is polled from the frame loop rather than backed by a
// timer, so a firing always happens on the caller's goroutine.
type Debouncer struct {
	Delay    time.Duration
	deadline time.Time
	armed    bool
}

// Trigger (re)arms the debouncer; it fires Delay after now unless triggered
// again first.
func (d *Debouncer) Trigger(now time.Time) {
	d.deadline = now.Add(d.Delay)
	d.armed = true
}

// Poll reports whether the debouncer fires at now. A firing disarms it.
func (d *Debouncer) Poll(now time.Time) bool {
	if !d.armed || now.Before(d.deadline) {
		return false
	}
	d.armed = false
	return true
}

// Pending reports whether a firing is scheduled.
func (d *Debouncer) Pending() bool { return d.armed }

// Stop cancels any scheduled firing.
func (d *Debouncer) Stop() { d.armed = false }
