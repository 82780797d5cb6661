package game

import "errors"

// ErrNoCandidates is returned when a weighted pick is asked to choose from nothing.
var ErrNoCandidates = errors.New("game: no candidates to select from")

// PickWeighted draws an index with probability proportional to its weight.
// Non-positive weights are never picked; when every weight is non-positive
// the first index is returned.
func PickWeighted(rng Rand, weights []float64) (int, error) {
	if len(weights) == 0 {
		return 0, ErrNoCandidates
	}
	total := 0.0
	last := 0
	for i, w := range weights {
		if w > 0 {
			total += w
			last = i
		}
	}
	if total <= 0 {
		return 0, nil
	}

	draw := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cumulative += w
		if draw < cumulative {
			return i, nil
		}
	}
	return last, nil
}

// Pick chooses one element of items using weight.
func Pick[T any](rng Rand, items []T, weight func(T) float64) (T, error) {
	weights := make([]float64, len(items))
	for i, item := range items {
		weights[i] = weight(item)
	}
	idx, err := PickWeighted(rng, weights)
	if err != nil {
		var zero T
		return zero, err
	}
	return items[idx], nil
}

// SelectEvent draws one exploration event by probability weight.
func SelectEvent(rng Rand, events []Event) (Event, error) {
	return Pick(rng, events, func(ev Event) float64 { return ev.Probability })
}

// LootDrop is one successful loot roll.
type LootDrop struct {
	ItemID   string
	Quantity int
}

// RollLoot runs one independent trial per entry; entries may all drop or
// none may.
func RollLoot(rng Rand, table []LootEntry) []LootDrop {
	var drops []LootDrop
	for _, entry := range table {
		if rng.Float64() < entry.Probability {
			drops = append(drops, LootDrop{ItemID: entry.ItemID, Quantity: entry.Quantity})
		}
	}
	return drops
}

// Chance reports whether a single trial with probability p succeeds.
func Chance(rng Rand, p float64) bool {
	return rng.Float64() < p
}
