package game

import (
	"context"
	"time"
)

// HazardTimer delivers the id of an attached-hazard encounter on every
// interval until it is stopped or its parent context ends.
type HazardTimer struct {
	encounterID string
	ticks       chan string
	cancel      context.CancelFunc
	done        chan struct{}
}

// StartHazard launches the timer goroutine for encounterID.
func StartHazard(parent context.Context, encounterID string, interval time.Duration) *HazardTimer {
	ctx, cancel := context.WithCancel(parent)
	h := &HazardTimer{
		encounterID: encounterID,
		ticks:       make(chan string),
		cancel:      cancel,
		done:        make(chan struct{}),
	}
	go h.run(ctx, interval)
	return h
}

func (h *HazardTimer) run(ctx context.Context, interval time.Duration) {
	defer close(h.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			select {
			case h.ticks <- h.encounterID:
			case <-ctx.Done():
				return
			}
		}
	}
}

// C delivers encounter ids. It is never closed; select on Done as well.
func (h *HazardTimer) C() <-chan string { return h.ticks }

// Done is closed once the timer goroutine has exited.
func (h *HazardTimer) Done() <-chan struct{} { return h.done }

func (h *HazardTimer) EncounterID() string { return h.encounterID }

// Stop cancels the timer and waits for its goroutine to exit. After Stop
// returns no further ticks are delivered. Safe to call more than once.
func (h *HazardTimer) Stop() {
	h.cancel()
	<-h.done
}
