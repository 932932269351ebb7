package chart

import (
	"testing"
	"time"
)

func TestDebouncerBurstFiresOnce(t *testing.T) {
	d := Debouncer{Delay: 100 * time.Millisecond}
	start := time.Unix(0, 0)

	// Ten triggers within 50ms.
	var last time.Time
	for i := 0; i < 10; i++ {
		last = start.Add(time.Duration(i) * 5 * time.Millisecond)
		d.Trigger(last)
	}

	fired := 0
	for ms := 0; ms <= 300; ms++ {
		now := start.Add(time.Duration(ms) * time.Millisecond)
		if d.Poll(now) {
			fired++
			if now.Sub(last) < d.Delay {
				t.Errorf("fired %v after the last trigger, want >= %v", now.Sub(last), d.Delay)
			}
		}
	}
	if fired != 1 {
		t.Errorf("fired %d times, want 1", fired)
	}
}

func TestDebouncerRetriggerPostpones(t *testing.T) {
	d := Debouncer{Delay: 100 * time.Millisecond}
	t0 := time.Unix(0, 0)
	d.Trigger(t0)
	d.Trigger(t0.Add(90 * time.Millisecond))
	if d.Poll(t0.Add(100 * time.Millisecond)) {
		t.Error("retrigger should push the deadline out")
	}
	if !d.Poll(t0.Add(190 * time.Millisecond)) {
		t.Error("should fire Delay after the last trigger")
	}
}

func TestDebouncerStop(t *testing.T) {
	d := Debouncer{Delay: time.Millisecond}
	t0 := time.Unix(0, 0)
	d.Trigger(t0)
	if !d.Pending() {
		t.Fatal("Pending should be true after Trigger")
	}
	d.Stop()
	if d.Pending() || d.Poll(t0.Add(time.Hour)) {
		t.Error("stopped debouncer should never fire")
	}
}

func TestDebouncerIdle(t *testing.T) {
	var d Debouncer
	if d.Poll(time.Now()) {
		t.Error("untriggered debouncer should not fire")
	}
}
