package commanderchess

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"commanderchess/internal/apierr"
	"commanderchess/internal/mctsab"
	"commanderchess/internal/rules"
	"commanderchess/internal/smp"
)

// Move is the external move payload: a piece id plus an intended
// destination (§6). It is the engine's own rules.Move — the tagged
// JSON keys ("pid", "dest_col", "dest_row") are what a JSON adapter
// collaborator serializes directly, no separate DTO needed.
type Move = rules.Move

// GameMode re-exports the rule engine's variant selector so callers
// never need to import internal/rules directly.
type GameMode = rules.GameMode

const (
	ModeFull   = rules.ModeFull
	ModeMarine = rules.ModeMarine
	ModeAir    = rules.ModeAir
	ModeLand   = rules.ModeLand
)

// ParseGameMode forwards to the rule engine's parser (case-insensitive,
// unknown input defaults to full).
func ParseGameMode(s string) GameMode { return rules.ParseGameMode(s) }

// LastMoveRecord is the from/to/capture/side record Serialize reports,
// §6's "last-move record (from/to/capture/side)".
type LastMoveRecord struct {
	PieceID  int
	FromCol  int
	FromRow  int
	DestCol  int
	DestRow  int
	Capture  bool
	Side     rules.Side
}

// GameState is one in-progress (or finished) game: the position, the
// owning Engine, and the bookkeeping Serialize/ApplyMove need.
type GameState struct {
	ID         string
	Mode       GameMode
	Difficulty Difficulty
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Pos      *rules.Position
	Terminal bool
	Result   rules.Result
	Winner   rules.Side
	LastMove *LastMoveRecord

	engine *Engine
}

var defaultEngineOnce = sync.OnceValue(func() *Engine { return NewEngine(Config{}) })

func defaultEngine() *Engine { return defaultEngineOnce() }

// NewGame starts a fresh game under the package's shared default Engine
// (lazily built on first use, analogous to the teacher's package-level
// aiEngine). Use NewGameWithEngine to supply one explicitly — the HTTP/
// CLI adapters that own an Engine across many games should do that
// instead of relying on the package default.
func NewGame(mode GameMode, difficulty Difficulty) *GameState {
	return NewGameWithEngine(mode, difficulty, defaultEngine())
}

// NewGameWithEngine starts a fresh game against a caller-supplied Engine,
// letting a server hold one Engine (one TT arena, one set of
// correction-history banks) across many concurrent games.
func NewGameWithEngine(mode GameMode, difficulty Difficulty, engine *Engine) *GameState {
	pos := rules.NewInitialPosition(mode)
	now := time.Now()
	return &GameState{
		ID:         uuid.NewString(),
		Mode:       mode,
		Difficulty: difficulty,
		CreatedAt:  now,
		UpdatedAt:  now,
		Pos:        pos,
		Winner:     rules.NoSide,
		engine:     engine,
	}
}

// ApplyMove validates and plays move, updating side-to-move, terminal
// state, and position history (§6). It never panics: every failure mode
// returns a tagged *apierr.Error.
func (g *GameState) ApplyMove(move Move) error {
	if g.Terminal {
		return apierr.AlreadyOver()
	}
	mover := g.Pos.Board.ByID(move.PieceID)
	if mover == nil {
		return apierr.PieceNotFound()
	}
	if mover.Side != g.Pos.SideToMove {
		return apierr.WrongSide()
	}

	legal := rules.LegalMoves(g.Pos, g.Pos.SideToMove)
	found := false
	for _, mv := range legal {
		if mv.PieceID == move.PieceID && mv.DestCol == move.DestCol && mv.DestRow == move.DestRow {
			found = true
			break
		}
	}
	if !found {
		return apierr.Illegal()
	}

	capture := g.Pos.Board.PieceAt(move.DestCol, move.DestRow) != nil
	fromCol, fromRow, side := mover.Col, mover.Row, mover.Side

	newPos, ok := rules.Apply(g.Pos, move)
	if !ok {
		return apierr.Illegal()
	}

	g.Pos = newPos
	g.LastMove = &LastMoveRecord{
		PieceID: move.PieceID, FromCol: fromCol, FromRow: fromRow,
		DestCol: move.DestCol, DestRow: move.DestRow, Capture: capture, Side: side,
	}
	g.UpdatedAt = time.Now()

	if winner, result, terminal := rules.CheckTerminal(newPos); terminal {
		g.Terminal, g.Result, g.Winner = true, result, winner
	}
	return nil
}

// BotMove runs the configured search under the difficulty's time/depth
// budget and applies the result (§6). It returns apierr.NoLegalMove when
// the search cannot find one (terminal or stalemated) and
// apierr.AlreadyOver if the game is already over.
func (g *GameState) BotMove() (Move, error) {
	if g.Terminal {
		return Move{}, apierr.AlreadyOver()
	}
	if g.engine == nil {
		g.engine = defaultEngine()
	}
	e := g.engine

	b := g.Difficulty.budget()
	useMCTS := b.useMCTS || e.cfg.UseMCTS
	e.driver.NewSearch()

	var best rules.Move
	if useMCTS {
		res := mctsab.Search(g.Pos, e.driver.Table, e.driver.CorrHist, mctsab.Config{
			HardDeadline: durationOrDefault(e.cfg.TimeLimitMs, b.time),
			Workers:      e.workers(),
			ABDepth:      e.cfg.MCTSABDepth,
			Backend:      e.backend,
		})
		best = res.BestMove
	} else {
		cfg := e.searchConfig(b)
		res := e.driver.Search(g.Pos, smp.Config{
			Workers:      e.workers(),
			MaxDepth:     cfg.MaxDepth,
			HardDeadline: cfg.HardDeadline,
			UseBook:      cfg.UseBook,
		})
		best = res.BestMove
	}

	if best.PieceID == 0 {
		return Move{}, apierr.BotNoMove()
	}
	if err := g.ApplyMove(best); err != nil {
		return Move{}, err
	}
	return best, nil
}

func durationOrDefault(ms int, fallback time.Duration) time.Duration {
	if ms > 0 {
		return msToDuration(ms)
	}
	return fallback
}
