// Package watch re-runs document validation when project markdown changes,
// with debouncing so editor save bursts trigger a single run.
package watch

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid change events into a single callback carrying
// the most recent event.
type Debouncer struct {
	window   time.Duration
	callback func(ChangeEvent)

	mu    sync.Mutex
	timer *time.Timer
	last  ChangeEvent
}

// NewDebouncer creates a debouncer with the given window duration.
func NewDebouncer(window time.Duration, callback func(ChangeEvent)) *Debouncer {
	return &Debouncer{
		window:   window,
		callback: callback,
	}
}

// Trigger records the event and resets the timer. The callback fires with
// the last recorded event after the window elapses with no further triggers.
func (d *Debouncer) Trigger(event ChangeEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.last = event
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		last := d.last
		d.mu.Unlock()
		d.callback(last)
	})
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
}
