// Package smp implements the Lazy-SMP driver: N workers, each running its
// own iterative-deepening loop with private ordering tables, sharing one
// transposition table and one stop/deadline pair. Grounded on the
// teacher's alphaBetaRoot goroutine-plus-channel fan-out
// (internal/engine/search.go), generalized into golang.org/x/sync/errgroup
// for bounded join and error propagation, per SPEC_FULL's domain-stack
// wiring for that dependency.
package smp

import (
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"commanderchess/internal/corrhist"
	"commanderchess/internal/rules"
	"commanderchess/internal/search"
	"commanderchess/internal/tt"
)

// Config configures the whole worker pool. Workers share Table, Contempt,
// and the deadline; MaxDepth bounds every worker's iterative deepening.
type Config struct {
	Workers      int
	MaxDepth     int
	HardDeadline time.Duration
	Contempt     int
	UseBook      bool
}

// Driver owns the shared state a Lazy-SMP pool needs across searches: the
// transposition table (aged, never rebuilt between moves) and the
// correction-history banks (soft-reset, never rebuilt either).
type Driver struct {
	Table    *tt.Table
	CorrHist *corrhist.Banks

	// Degraded is set when tt.NewTableWithFallback reports that even the
	// minimum-size allocation failed (resource-exhausted, per §7's
	// allocation ladder). A fallback to a smaller size that succeeds
	// does not set it.
	Degraded bool
}

// NewDriver allocates a table sized ttMiB megabytes (falling back to
// smaller sizes on allocation failure, see tt.NewTableWithFallback) and
// fresh correction-history banks, the persistent state an Engine owns
// across a whole game (Design Notes §9).
func NewDriver(ttMiB int) *Driver {
	table, ok := tt.NewTableWithFallback(ttMiB)
	return &Driver{Table: table, CorrHist: corrhist.NewBanks(), Degraded: !ok}
}

// NewSearch ages the table's generation and halves the correction-history
// banks before a new move's search begins, the "generation counter, not a
// hard clear" / "halving, not zeroing" aging scheme both components use.
func (d *Driver) NewSearch() {
	d.Table.NewGeneration()
	d.CorrHist.SoftReset()
}

// Search runs cfg.Workers Lazy-SMP workers against pos and returns the
// shared best result: worker 0's canonical move order against the full
// root move list, worker i>0 shuffling the first 4+i root moves
// deterministically by worker id, odd workers skipping depth 1 to
// desynchronize their search trees from worker 0's.
func (d *Driver) Search(pos *rules.Position, cfg Config) search.Result {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Workers == 1 {
		return search.Root(pos, d.Table, d.CorrHist, search.Config{
			MaxDepth: cfg.MaxDepth, HardDeadline: cfg.HardDeadline, Contempt: cfg.Contempt, UseBook: cfg.UseBook,
		})
	}

	var (
		mu   sync.Mutex
		best search.Result
		set  bool
	)

	g := new(errgroup.Group)
	for w := 0; w < cfg.Workers; w++ {
		w := w
		g.Go(func() error {
			startDepth := 1
			maxDepth := cfg.MaxDepth
			if w%2 == 1 {
				startDepth = 2 // odd workers skip depth 1
			}
			res := runWorker(pos, d.Table, d.CorrHist, w, startDepth, maxDepth, cfg)

			mu.Lock()
			defer mu.Unlock()
			if !set || res.Depth > best.Depth || (res.Depth == best.Depth && betterScore(res, best, pos.SideToMove)) {
				best = res
				set = true
			}
			return nil
		})
	}
	g.Wait()
	return best
}

// runWorker runs one worker's search.Root call, seeding the root move
// order by worker id (for workers after the first) via search.Config's
// WorkerSeed/ShuffleCount fields.
func runWorker(pos *rules.Position, table *tt.Table, banks *corrhist.Banks, workerID, startDepth, maxDepth int, cfg Config) search.Result {
	rootCfg := search.Config{
		MaxDepth: maxDepth, HardDeadline: cfg.HardDeadline, Contempt: cfg.Contempt, UseBook: cfg.UseBook,
		StartDepth: startDepth,
	}
	if workerID > 0 {
		rootCfg.WorkerSeed = uint64(workerID)*0x9E3779B97F4A7C15 + 1
		rootCfg.ShuffleCount = 4 + workerID
	}
	return search.Root(pos, table, banks, rootCfg)
}

func betterScore(a, b search.Result, side rules.Side) bool {
	if side == rules.Red {
		return a.Score > b.Score
	}
	return a.Score < b.Score
}

// Workers resolves a requested worker count: a non-positive request means
// the hardware thread count, and the result is capped at 8, so Workers(0)
// gives the min(hardware_threads, 8) scheduling policy of §5. A positive
// request is not capped to the hardware thread count.
func Workers(requested int) int {
	if requested <= 0 {
		requested = runtime.NumCPU()
	}
	if requested > 8 {
		requested = 8
	}
	return requested
}
