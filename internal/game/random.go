package game

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Rand is the randomness the engine and the combat rules draw from.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Clock supplies wall time for snapshot and log timestamps.
type Clock interface {
	Now() time.Time
}

// IDSource mints unique log entry ids.
type IDSource interface {
	NewID() string
}

// NewRand returns a deterministic PCG source for the given seed.
func NewRand(seed int64) *rand.Rand {
	return seededRNG(seed)
}

func seededRNG(seed int64) *rand.Rand {
	// Non-cryptographic PRNG is intentional for deterministic simulation behavior.
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// UUIDSource mints random UUIDv4 strings.
type UUIDSource struct{}

func (UUIDSource) NewID() string { return uuid.NewString() }

// SequentialIDs mints "log-1", "log-2", ... and is safe for concurrent use.
type SequentialIDs struct {
	next atomic.Uint64
}

func (s *SequentialIDs) NewID() string {
	return "log-" + strconv.FormatUint(s.next.Add(1), 10)
}
