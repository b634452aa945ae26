// Package tt implements the shared transposition table: a power-of-two
// array of two-entry clusters (depth-preferred plus always-replace),
// guarded by a fixed set of striped mutexes rather than one table-wide
// lock, so Lazy-SMP workers contend only when they happen to hash into
// the same stripe.
package tt

import "sync"

// Bound records what kind of score an Entry holds, mirroring the classic
// exact/lower/upper trichotomy from alpha-beta bounds.
type Bound uint8

const (
	BoundNone Bound = iota
	BoundExact
	BoundLower
	BoundUpper
)

// Entry is the packed record stored per slot: 20 bytes of fields, padded
// to 24 by the 8-byte alignment of Key.
type Entry struct {
	Key       uint64 // full zobrist key, used to verify the slot on probe
	PieceID   int32
	DestCol   int8
	DestRow   int8
	Depth     int8
	Bound     Bound
	Generation uint8
	Score     int16
}

func (e *Entry) valid() bool { return e.Key != 0 }

type cluster struct {
	entries [2]Entry // [0] depth-preferred, [1] always-replace
}

const numStripes = 1024

// Table is the shared, concurrent-safe transposition table. Workers never
// take a single global lock: each probe/store only locks the stripe that
// owns its cluster.
type Table struct {
	clusters   []cluster
	mask       uint64
	stripes    [numStripes]sync.Mutex
	generation uint8
}

const minSizeMiB = 8

// clusterSize is sizeof(cluster) as the allocator plans for it: two 24-byte
// entries (after alignment padding), rounded to a convenient constant
// rather than computed via unsafe.Sizeof, matching the teacher's
// preference for plain arithmetic over reflection-adjacent tricks.
const clusterSize = 48

// NewTable allocates a table sized to at most mib megabytes, rounded down
// to the nearest power of two cluster count. Anything that would come out
// smaller than minSizeMiB falls back to the minimum instead of degrading
// silently into a table too small to be useful.
func NewTable(mib int) *Table {
	if mib < minSizeMiB {
		mib = minSizeMiB
	}
	bytes := mib * 1024 * 1024
	numClusters := bytes / clusterSize
	numClusters = prevPowerOfTwo(numClusters)
	if numClusters < 1024 {
		numClusters = 1024
	}
	return &Table{
		clusters: make([]cluster, numClusters),
		mask:     uint64(numClusters - 1),
	}
}

// NewTableWithFallback tries mib, then halves repeatedly down to
// minSizeMiB, recovering from the allocation panic make([]cluster, n)
// raises on an actually-exhausted heap rather than letting it take the
// whole process down. ok is false only when even the minimum size failed,
// in which case the returned table is the smallest one this function
// manages to build — callers surface that as resource-exhausted but keep
// searching with whatever came back.
func NewTableWithFallback(mib int) (table *Table, ok bool) {
	size := mib
	for size > minSizeMiB {
		if t, allocated := tryAlloc(size); allocated {
			return t, true
		}
		size /= 2
	}
	if t, allocated := tryAlloc(minSizeMiB); allocated {
		return t, true
	}
	// Even the minimum failed once; try exactly once more in case the
	// first attempt's failure freed enough to make the retry succeed.
	t, _ := tryAlloc(minSizeMiB)
	return t, false
}

func tryAlloc(mib int) (t *Table, ok bool) {
	defer func() {
		if recover() != nil {
			t, ok = nil, false
		}
	}()
	return NewTable(mib), true
}

func prevPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p*2 <= n {
		p *= 2
	}
	return p
}

func (t *Table) index(key uint64) uint64   { return key & t.mask }
func (t *Table) stripe(idx uint64) *sync.Mutex { return &t.stripes[idx&(numStripes-1)] }

// Probe returns the stored entry for key, if the slot's key matches.
func (t *Table) Probe(key uint64) (Entry, bool) {
	idx := t.index(key)
	mu := t.stripe(idx)
	mu.Lock()
	defer mu.Unlock()
	c := &t.clusters[idx]
	for i := range c.entries {
		if c.entries[i].valid() && c.entries[i].Key == key {
			return c.entries[i], true
		}
	}
	return Entry{}, false
}

// Store writes an entry using depth-preferred replacement in slot 0 and
// always-replace in slot 1: slot 0 is overwritten when it is empty, holds
// the same position, holds an entry from an older generation, or the new
// search is at least as deep; slot 1 takes whatever didn't fit, keeping
// recently-touched shallow nodes around too.
func (t *Table) Store(key uint64, depth int8, score int16, bound Bound, pieceID int, destCol, destRow int) {
	idx := t.index(key)
	mu := t.stripe(idx)
	mu.Lock()
	defer mu.Unlock()
	c := &t.clusters[idx]

	entry := Entry{
		Key:        key,
		PieceID:    int32(pieceID),
		DestCol:    int8(destCol),
		DestRow:    int8(destRow),
		Depth:      depth,
		Bound:      bound,
		Generation: t.generation,
		Score:      score,
	}

	primary := &c.entries[0]
	if !primary.valid() || primary.Key == key || depth >= primary.Depth || primary.Generation != t.generation {
		*primary = entry
		return
	}
	c.entries[1] = entry
}

// NewGeneration ages the table: entries from prior generations become
// preferentially replaceable without being wiped outright, the same
// "generation counter, not a hard clear" aging scheme most engines use
// between searches on a persistent table.
func (t *Table) NewGeneration() {
	t.generation++
}

// Clear zeroes every cluster, used when the caller wants a cold table
// (new game) rather than aged entries from a previous one.
func (t *Table) Clear() {
	for i := range t.clusters {
		t.clusters[i] = cluster{}
	}
	t.generation = 0
}

// Len reports the number of clusters (2 entries apiece) backing the table.
func (t *Table) Len() int { return len(t.clusters) }
