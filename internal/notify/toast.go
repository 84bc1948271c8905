package notify

import (
	"sync"
	"time"

	"github.com/coder/quartz"
)

// Toast keeps the latest message until its display time runs out. The
// expiry runs on the clock's timer goroutine and never calls back into the
// game; OnChange only tells the host to redraw.
type Toast struct {
	clock    quartz.Clock
	onChange func()

	mu      sync.Mutex
	message string
	visible bool
	gen     uint64
	timer   *quartz.Timer
}

// NewToast creates a toast driven by clock. onChange may be nil.
func NewToast(clock quartz.Clock, onChange func()) *Toast {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Toast{clock: clock, onChange: onChange}
}

// Show replaces the current message and schedules its removal after d. A
// superseded message's timer cannot remove the newer one.
func (t *Toast) Show(message string, d time.Duration) {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.gen++
	gen := t.gen
	t.message = message
	t.visible = true
	t.timer = t.clock.AfterFunc(d, func() { t.expire(gen) }, "toast", "expire")
	t.mu.Unlock()

	t.changed()
}

// Current returns the visible message, if any
func (t *Toast) Current() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.message, t.visible
}

// Dismiss hides the current message immediately
func (t *Toast) Dismiss() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	wasVisible := t.visible
	t.gen++
	t.message = ""
	t.visible = false
	t.mu.Unlock()

	if wasVisible {
		t.changed()
	}
}

func (t *Toast) expire(gen uint64) {
	t.mu.Lock()
	if gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.message = ""
	t.visible = false
	t.timer = nil
	t.mu.Unlock()

	t.changed()
}

func (t *Toast) changed() {
	if t.onChange != nil {
		t.onChange()
	}
}
