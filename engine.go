package commanderchess

import (
	"strings"
	"sync"

	"commanderchess/internal/eval"
	"commanderchess/internal/search"
	"commanderchess/internal/smp"
)

// Engine owns the state a game shares with every other game on this
// process: the transposition table arena, the correction-history banks,
// and the resolved config — the same shared-across-sessions role the
// teacher's package-level aiEngine played, but held explicitly and
// passed into GameState rather than living in a package var (mobile.go's
// h.Engine() accessor is the one place the teacher does this
// explicitly too).
type Engine struct {
	driver  *smp.Driver
	cfg     Config
	backend eval.Backend

	spritesMu sync.RWMutex
	sprites   map[string]string
}

// NewEngine builds an Engine from cfg, clamping tt_size_mb and resolving
// eval_backend. Zobrist key tables are package-level in internal/rules
// and initialize themselves on first use (sync.Once inside that
// package), so there is nothing to do here beyond allocating the table
// and banks.
func NewEngine(cfg Config) *Engine {
	if cfg.MCTSABDepth <= 0 {
		cfg.MCTSABDepth = 3
	}
	ttSize := normalizeTTSize(cfg.TTSizeMB)
	return &Engine{
		driver:  smp.NewDriver(ttSize),
		cfg:     cfg,
		backend: parseBackend(cfg.EvalBackend),
		sprites: make(map[string]string),
	}
}

func parseBackend(s string) eval.Backend {
	switch strings.ToLower(s) {
	case "webgpu":
		return eval.BackendWebGPU
	default:
		return eval.BackendCPU
	}
}

// Degraded reports whether the shared transposition table allocation
// failed at every fallback size down to the minimum (§7
// resource-exhausted).
func (e *Engine) Degraded() bool { return e.driver.Degraded }

// SetPieceSprites registers the sprite mapping PieceSprites later
// returns, "supplied by the collaborator that loaded them" per §6 — this
// package never loads image assets itself.
func (e *Engine) SetPieceSprites(sprites map[string]string) {
	e.spritesMu.Lock()
	defer e.spritesMu.Unlock()
	e.sprites = make(map[string]string, len(sprites))
	for k, v := range sprites {
		e.sprites[k] = v
	}
}

// PieceSprites returns the registered sprite mapping, an empty (never
// nil) map when none was registered.
func (e *Engine) PieceSprites() map[string]string {
	e.spritesMu.RLock()
	defer e.spritesMu.RUnlock()
	out := make(map[string]string, len(e.sprites))
	for k, v := range e.sprites {
		out[k] = v
	}
	return out
}

// workers returns the Lazy-SMP worker count this engine should use,
// honoring force_single_thread.
func (e *Engine) workers() int {
	if e.cfg.ForceSingleThread {
		return 1
	}
	return smp.Workers(0)
}

func (e *Engine) searchConfig(b budget) search.Config {
	depth := b.depth
	if e.cfg.MaxDepth > 0 {
		depth = e.cfg.MaxDepth
	}
	timeLimit := b.time
	if e.cfg.TimeLimitMs > 0 {
		timeLimit = msToDuration(e.cfg.TimeLimitMs)
	}
	return search.Config{
		MaxDepth:     depth,
		HardDeadline: timeLimit,
		UseBook:      e.cfg.UseOpeningBook,
	}
}
