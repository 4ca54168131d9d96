// Package input turns raw button edges into page-advance events.
//
// Edge producers only post to a Wake. All debounce timing happens on the
// consumer side, in the render task.
package input

import "time"

// Wake is a one-slot coalescing notification. Any number of Notify calls
// before the consumer receives collapse into a single pending wake.
type Wake struct {
	c chan struct{}
}

// NewWake returns an empty Wake.
func NewWake() *Wake {
	return &Wake{c: make(chan struct{}, 1)}
}

// Notify marks a wake pending. It never blocks.
func (w *Wake) Notify() {
	select {
	case w.c <- struct{}{}:
	default:
	}
}

// C is received from by the consumer.
func (w *Wake) C() <-chan struct{} {
	return w.c
}

// Drain discards a pending wake and reports whether there was one.
func (w *Wake) Drain() bool {
	select {
	case <-w.c:
		return true
	default:
		return false
	}
}

// Debounce holds the consumer for a quiet window after an accepted edge.
type Debounce struct {
	Quiet time.Duration
	Sleep func(time.Duration)
}

// NewDebounce returns a Debounce that sleeps for quiet.
func NewDebounce(quiet time.Duration) *Debounce {
	return &Debounce{Quiet: quiet, Sleep: time.Sleep}
}

// Settle blocks for the quiet window, then discards whatever edges arrived
// during it. It reports whether any were discarded.
func (d *Debounce) Settle(w *Wake) bool {
	d.Sleep(d.Quiet)
	return w.Drain()
}
