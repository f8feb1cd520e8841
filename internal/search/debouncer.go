package search

import (
	"sync"
	"time"
)

// Debouncer collapses bursts of text input into a single trailing trigger.
// A non-empty Notify arms (or re-arms) a timer for the quiet interval; only
// a timer that survives the full interval fires with the latest text. An
// empty Notify cancels any pending timer and fires the clear callback
// synchronously, without a fetch trigger.
type Debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	timer    *time.Timer
	stopped  bool
	onFire   func(text string)
	onClear  func()
}

// NewDebouncer creates a debouncer. onFire receives the trailing text after a
// quiet period; onClear is invoked when input is cleared. Either callback may
// be nil.
func NewDebouncer(interval time.Duration, onFire func(string), onClear func()) *Debouncer {
	return &Debouncer{
		interval: interval,
		onFire:   onFire,
		onClear:  onClear,
	}
}

// Notify records a new input value, superseding any pending trigger.
func (d *Debouncer) Notify(text string) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	if text == "" {
		d.mu.Unlock()
		if d.onClear != nil {
			d.onClear()
		}
		return
	}

	var timer *time.Timer
	timer = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		// A later Notify or Stop invalidates this expiry.
		if d.stopped || d.timer != timer {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()

		if d.onFire != nil {
			d.onFire(text)
		}
	})
	d.timer = timer
	d.mu.Unlock()
}

// Cancel drops any pending trigger without firing either callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Stop tears the debouncer down; a stopped debouncer never fires again.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
