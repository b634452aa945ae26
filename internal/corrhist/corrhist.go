// Package corrhist implements correction history: three small signed-offset
// tables (keyed by position hash, material signature, and terrain
// signature) that learn how far a quick static eval tends to miss the
// search's actual verdict, and are blended back into the static eval on
// the next visit. Modeled on the engine's blunder-filter cache
// (internal/engine/blunder.go's per-side packed-bucket-array idiom), but
// guarded by a plain mutex instead of lock-free atomics: correction
// history is updated far less often than the blunder filter is probed, so
// the simpler scheme costs nothing noticeable.
package corrhist

import "sync"

const (
	hashBuckets     = 16384
	materialBuckets = 512
	terrainBuckets  = 2048

	// maxCorrection caps the magnitude of any single bucket's stored
	// offset so one outlier search can't let a bucket swamp the static
	// eval it's meant to merely nudge.
	maxCorrection = 256

	// maxWeight is the depth ceiling on a single update's learning rate:
	// a result from a depth-20 search shouldn't move a bucket any faster
	// than one from depth 16.
	maxWeight = 16

	// correctionCap is the hard ceiling (in centipawns) on the blended
	// correction Correct may add to a static eval.
	correctionCap = 180
)

// Tables holds one side's three correction banks. A *Tables is not safe
// to share between the two sides of a position — Banks owns one Tables
// per side instead.
type Tables struct {
	mu       sync.Mutex
	hash     [hashBuckets]int16
	material [materialBuckets]int16
	terrain  [terrainBuckets]int16
}

// Banks owns the per-side correction tables for a running engine. It
// outlives any single search, the way the transposition table does.
type Banks struct {
	sides [2]Tables
}

func NewBanks() *Banks {
	return &Banks{}
}

// Correct blends the three bucket offsets for side into a raw static eval,
// weighting hash 0.5, material 0.3, terrain 0.2 and dividing by 256 (the
// bucket values are accumulated at that scale by Update), then clamps the
// blended correction to ±180 before adding it to staticEval.
func (b *Banks) Correct(side int, hashKey, materialKey, terrainKey uint64, staticEval int) int {
	t := &b.sides[side&1]
	t.mu.Lock()
	h := int(t.hash[hashKey%hashBuckets])
	m := int(t.material[materialKey%materialBuckets])
	r := int(t.terrain[terrainKey%terrainBuckets])
	t.mu.Unlock()

	corr := (5*h + 3*m + 2*r) / 2560
	if corr > correctionCap {
		corr = correctionCap
	} else if corr < -correctionCap {
		corr = -correctionCap
	}
	return staticEval + corr
}

// Update folds the observed error (searchScore - staticEval) into all three
// buckets for the position that produced hashKey/materialKey/terrainKey,
// weighted by min(depth, 16)/256 — a deeper search's verdict moves a
// bucket further per update than a shallow one's.
func (b *Banks) Update(side int, hashKey, materialKey, terrainKey uint64, staticEval, searchScore, depth int) {
	delta := searchScore - staticEval
	weight := depth
	if weight > maxWeight {
		weight = maxWeight
	}
	if weight < 0 {
		weight = 0
	}

	t := &b.sides[side&1]
	t.mu.Lock()
	defer t.mu.Unlock()
	nudge(&t.hash[hashKey%hashBuckets], delta, weight)
	nudge(&t.material[materialKey%materialBuckets], delta, weight)
	nudge(&t.terrain[terrainKey%terrainBuckets], delta, weight)
}

func nudge(bucket *int16, delta, weight int) {
	next := int(*bucket) + delta*weight/256
	if next > maxCorrection {
		next = maxCorrection
	}
	if next < -maxCorrection {
		next = -maxCorrection
	}
	*bucket = int16(next)
}

// SoftReset halves every bucket rather than zeroing them outright: a fresh
// search still benefits from the previous one's rough calibration without
// carrying forward a now-stale exact value.
func (b *Banks) SoftReset() {
	for s := range b.sides {
		t := &b.sides[s]
		t.mu.Lock()
		for i := range t.hash {
			t.hash[i] /= 2
		}
		for i := range t.material {
			t.material[i] /= 2
		}
		for i := range t.terrain {
			t.terrain[i] /= 2
		}
		t.mu.Unlock()
	}
}
