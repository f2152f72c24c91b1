package hud

import (
	"time"

	"github.com/vovakirdan/tui-towerdefense/internal/timer"
)

// Banner is a text line shown for a fixed wall-clock duration.
//
// Each Banner owns at most one pending hide. Showing a new message cancels
// the previous hide and restarts the full duration for the new text.
type Banner struct {
	queue    *timer.Queue
	duration time.Duration
	text     string
	visible  bool
	token    timer.Token
}

// NewBanner creates a hidden banner whose hides are scheduled on queue.
func NewBanner(queue *timer.Queue, duration time.Duration) *Banner {
	return &Banner{queue: queue, duration: duration}
}

// Show displays text starting at now.
func (b *Banner) Show(now time.Time, text string) {
	b.cancelPending()
	b.text = text
	b.visible = true
	b.token = b.queue.After(now, b.duration, b.expire)
}

// Hide removes the banner immediately and cancels its pending hide.
func (b *Banner) Hide() {
	b.cancelPending()
	b.visible = false
}

// Visible reports whether the banner is showing.
func (b *Banner) Visible() bool {
	return b.visible
}

// Text returns the current (or last) message.
func (b *Banner) Text() string {
	return b.text
}

func (b *Banner) expire() {
	b.token = 0
	b.visible = false
}

func (b *Banner) cancelPending() {
	if b.token != 0 {
		b.queue.Cancel(b.token)
		b.token = 0
	}
}
