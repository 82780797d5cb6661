package ui

import (
	"sync/atomic"

	"github.com/appengine-ltd/last-shelter/internal/game"
)

const DefaultNotifierBuffer = 256

// Notifier buffers session notifications for the program loop. Notify never
// blocks: when the buffer is full the notification is counted and dropped.
type Notifier struct {
	ch      chan game.Notification
	dropped atomic.Int64
}

func NewNotifier(buffer int) *Notifier {
	if buffer <= 0 {
		buffer = DefaultNotifierBuffer
	}
	return &Notifier{ch: make(chan game.Notification, buffer)}
}

func (n *Notifier) Notify(note game.Notification) {
	select {
	case n.ch <- note:
	default:
		n.dropped.Add(1)
	}
}

func (n *Notifier) C() <-chan game.Notification { return n.ch }

// Dropped reports how many notifications were lost to a full buffer.
func (n *Notifier) Dropped() int64 { return n.dropped.Load() }
