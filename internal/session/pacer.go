package session

import (
	"context"
	"time"
)

// Pacer spaces out narration. A zero Beat narrates without delay.
type Pacer struct {
	Beat time.Duration
}

// wait blocks for beats multiples of Beat or until ctx is done.
func (p Pacer) wait(ctx context.Context, beats float64) error {
	d := time.Duration(float64(p.Beat) * beats)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
