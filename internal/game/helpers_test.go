package game

import (
	"testing"
	"time"
)

var testNow = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

// scriptedRand replays fixed draws and fails the test when it runs dry.
type scriptedRand struct {
	t      *testing.T
	ints   []int
	floats []float64
}

func (r *scriptedRand) IntN(n int) int {
	r.t.Helper()
	if len(r.ints) == 0 {
		r.t.Fatalf("scripted rand: unexpected IntN(%d)", n)
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v < 0 || v >= n {
		r.t.Fatalf("scripted rand: value %d outside [0,%d)", v, n)
	}
	return v
}

func (r *scriptedRand) Float64() float64 {
	r.t.Helper()
	if len(r.floats) == 0 {
		r.t.Fatalf("scripted rand: unexpected Float64()")
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func newTestEngine(t *testing.T, seed int64) *Engine {
	t.Helper()
	return NewEngine(
		WithRand(NewRand(seed)),
		WithClock(FixedClock(testNow)),
		WithIDs(&SequentialIDs{}),
	)
}

func newTestSnapshot(t *testing.T) Snapshot {
	t.Helper()
	return InitialSnapshot(testNow)
}

func testItem(id string, typ ItemType, qty int, props *ItemProperties) InventoryItem {
	return InventoryItem{ID: id, Name: id, Type: typ, Quantity: qty, Properties: props}
}

func quantities(items []InventoryItem) map[string]int {
	out := make(map[string]int, len(items))
	for _, item := range items {
		out[item.ID] += item.Quantity
	}
	return out
}

func assertStatsInRange(t *testing.T, p PlayerState) {
	t.Helper()
	for name, v := range map[string]int{"hunger": p.Hunger, "comfort": p.Comfort, "health": p.Health, "energy": p.Energy} {
		if v < StatMin || v > StatMax {
			t.Fatalf("expected %s in [0,100], got %d", name, v)
		}
	}
}

func countSeverity(entries []LogEntry, severities ...Severity) int {
	n := 0
	for _, e := range entries {
		for _, s := range severities {
			if e.Severity == s {
				n++
			}
		}
	}
	return n
}
