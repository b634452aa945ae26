// Package mctsab implements the two-level PUCT search of §4.14: level-1
// children are legal root moves, expanded eagerly with hand-crafted
// policy priors (policy.go); a level-1 child's own children (level 2)
// expand lazily once visited twice. Leaf values come from a shallow
// alpha-beta probe (internal/search) blended with a batched static eval
// instead of a neural network value head. Grounded on the teacher's
// internal/mcts/{node,search}.go PUCT-plus-virtual-loss playout loop,
// re-targeted from NN policy/value onto these two substitutes and from a
// raw goroutine-plus-WaitGroup pool onto golang.org/x/sync/errgroup.
package mctsab

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"commanderchess/internal/corrhist"
	"commanderchess/internal/eval"
	"commanderchess/internal/rules"
	"commanderchess/internal/search"
	"commanderchess/internal/tt"
)

// Tunables from §4.14.
const (
	puctC           = 1.8
	virtualLoss     = 0.35
	expandAfter     = 2 // level-1 visits before its children expand
	maxWorkers      = 8
	singleThreadMs  = 100
	singleThreadMax = 2 // child count at or below which the pool always runs single-threaded
)

// Config configures one MCTS-AB search.
type Config struct {
	Playouts     int
	HardDeadline time.Duration
	Workers      int
	ABDepth      int // shallow alpha-beta probe depth at leaves, default 3
	Backend      eval.Backend
	Contempt     int
}

// Result is the move MCTS-AB settled on plus the visit/value stats that
// produced it, enough for a caller to log or display a confidence read.
type Result struct {
	BestMove rules.Move
	Visits   int64
	Q        float64
	Playouts int
}

// Search runs the two-level PUCT tree against pos and returns the
// most-visited root move, breaking ties by Q. table/corrHist are the
// same shared objects a Lazy-SMP driver owns, reused here for the leaf
// alpha-beta probes so MCTS-AB benefits from whatever the rest of the
// engine has already learned about this game.
func Search(pos *rules.Position, table *tt.Table, corrHist *corrhist.Banks, cfg Config) Result {
	if cfg.ABDepth <= 0 {
		cfg.ABDepth = 3
	}
	if cfg.Playouts <= 0 {
		cfg.Playouts = 800
	}

	root := newNode(rules.Move{}, pos.SideToMove, 1)
	moves := rules.GenerateMoves(pos.Board, pos.SideToMove)
	if len(moves) == 0 {
		return Result{}
	}
	expandChildren(root, pos, moves, nil)

	if len(root.Children) == 1 {
		for mv := range root.Children {
			return Result{BestMove: mv, Visits: 1, Playouts: 1}
		}
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = maxWorkers
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}
	deadlineShort := cfg.HardDeadline > 0 && cfg.HardDeadline < singleThreadMs*time.Millisecond
	if deadlineShort || len(root.Children) <= singleThreadMax {
		workers = 1
	}

	ctx := context.Background()
	var cancel context.CancelFunc
	if cfg.HardDeadline > 0 {
		ctx, cancel = context.WithTimeout(ctx, cfg.HardDeadline)
		defer cancel()
	}

	playoutsPerWorker := cfg.Playouts / workers
	if playoutsPerWorker < 1 {
		playoutsPerWorker = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := 0; i < playoutsPerWorker; i++ {
				select {
				case <-gctx.Done():
					return nil
				default:
				}
				playout(root, pos, table, corrHist, cfg)
			}
			return nil
		})
	}
	_ = g.Wait()

	best, bestChild := selectBest(root)
	return Result{
		BestMove: best,
		Visits:   bestChild.Visits,
		Q:        bestChild.Q(),
		Playouts: workers * playoutsPerWorker,
	}
}

// selectBest picks the most-visited root child, breaking ties by Q from
// the root's own side-to-move perspective. A child's Q is stored from the
// child's side to move (the root's opponent), so the lower Q wins the tie.
func selectBest(root *Node) (rules.Move, *Node) {
	var bestMove rules.Move
	var bestChild *Node
	for mv, child := range root.Children {
		if bestChild == nil {
			bestMove, bestChild = mv, child
			continue
		}
		cv, _, _ := child.snapshot()
		bv, _, _ := bestChild.snapshot()
		if cv > bv {
			bestMove, bestChild = mv, child
			continue
		}
		if cv == bv && child.Q() < bestChild.Q() {
			bestMove, bestChild = mv, child
		}
	}
	return bestMove, bestChild
}

func betterQ(side rules.Side, a, b float64) bool {
	if side == rules.Red {
		return a > b
	}
	return a < b
}

// expandChildren populates parent's Children from moves, scoring each
// with the hand-crafted policy and normalizing via softmax. history, if
// non-nil, nudges the prior the way butterfly history nudges move
// ordering elsewhere in the engine.
func expandChildren(parent *Node, pos *rules.Position, moves []rules.Move, history map[historyKey]int32) {
	scores := make([]float64, len(moves))
	for i, mv := range moves {
		scores[i] = policyScore(pos, mv, history)
	}
	priors := softmaxPriors(scores)

	parent.Children = make(map[rules.Move]*Node, len(moves))
	for i, mv := range moves {
		parent.Children[mv] = newNode(mv, rules.Opposite(parent.NextPla), priors[i])
	}
	parent.Expanded = true
}

// playout runs one selection/expansion/evaluation/backprop cycle from
// root, mirroring the teacher's playout shape (internal/mcts/search.go)
// but bounded to two tree levels.
func playout(root *Node, rootPos *rules.Position, table *tt.Table, corrHist *corrhist.Banks, cfg Config) {
	l1Move, l1 := selectPUCT(root, rootPos)
	if l1 == nil {
		return
	}
	l1.addVirtualLoss(1)
	pos1, ok := rules.Apply(rootPos, l1Move)
	if !ok {
		l1.addVirtualLoss(-1)
		return
	}

	l1Visits, _, _ := l1.snapshot()
	if l1Visits >= expandAfter && !l1.Expanded {
		moves := rules.GenerateMoves(pos1.Board, pos1.SideToMove)
		if len(moves) > 0 {
			expandChildren(l1, pos1, moves, nil)
		} else {
			l1.Expanded = true
		}
	}

	var leafPos *rules.Position
	if l1.Expanded && len(l1.Children) > 0 {
		l2Move, l2 := selectPUCT(l1, pos1)
		if l2 == nil {
			leafPos = pos1
		} else {
			l2.addVirtualLoss(1)
			pos2, ok := rules.Apply(pos1, l2Move)
			if !ok {
				l2.addVirtualLoss(-1)
				leafPos = pos1
			} else {
				value := leafValue(pos2, table, corrHist, cfg)
				l2.record(perspectiveValue(value, l2.NextPla))
				l2.addVirtualLoss(-1)
				l1.record(perspectiveValue(value, l1.NextPla))
				root.record(perspectiveValue(value, root.NextPla))
				l1.addVirtualLoss(-1)
				return
			}
		}
	} else {
		leafPos = pos1
	}

	value := leafValue(leafPos, table, corrHist, cfg)
	l1.record(perspectiveValue(value, l1.NextPla))
	root.record(perspectiveValue(value, root.NextPla))
	l1.addVirtualLoss(-1)
}

// perspectiveValue converts a Red-perspective centipawn value into the
// [-1, 1]-ish signed value a node of side `side` should accumulate:
// positive means good for `side`.
func perspectiveValue(redCp int, side rules.Side) float64 {
	v := float64(redCp) / 1000
	if side == rules.Blue {
		v = -v
	}
	if v > 1 {
		v = 1
	}
	if v < -1 {
		v = -1
	}
	return v
}

// leafValue is the substitute for the teacher's NN value head: a shallow
// alpha-beta probe at cfg.ABDepth, blended with a batched static eval.
// The blend weighs the AB probe against the static eval at 3:1 on the
// nominal GPU backend, where cheap GPU-batched evals can be trusted with
// a larger share of the blend, and 7:1 on CPU, where the static eval is
// comparatively less reliable on its own and the AB probe carries most
// of the weight.
func leafValue(pos *rules.Position, table *tt.Table, corrHist *corrhist.Banks, cfg Config) int {
	td := search.NewThreadData(table, corrHist, pos.Mode, cfg.Contempt)
	abScore := td.Search(pos, cfg.ABDepth, -1_000_000_000, 1_000_000_000, 0, true, rules.Move{}, 0)

	batch := eval.BatchEvaluate(cfg.Backend, []*rules.Position{pos}, cfg.Contempt)
	staticScore := batch[0]

	abWeight, evalWeight := 3, 1
	if cfg.Backend == eval.BackendCPU {
		abWeight, evalWeight = 7, 1
	}
	return (abScore*abWeight + staticScore*evalWeight) / (abWeight + evalWeight)
}

// selectPUCT walks one PUCT choice among node's children, applying the
// virtual-loss penalty so concurrent workers spread across siblings
// instead of colliding on the same leaf, and a first-play-urgency value
// for children with zero real visits.
func selectPUCT(node *Node, pos *rules.Position) (rules.Move, *Node) {
	if !node.Expanded || len(node.Children) == 0 {
		return rules.Move{}, nil
	}
	parentVisits, _, _ := node.snapshot()
	sqrtParent := sqrt(float64(parentVisits) + 1)

	var bestMove rules.Move
	var bestChild *Node
	bestScore := -1e18
	for mv, child := range node.Children {
		visits, valueSum, vloss := child.snapshot()
		effVisits := float64(visits) + float64(vloss)
		q := fpu()
		if visits > 0 {
			// valueSum is from the child's side to move, the opponent of
			// the side choosing here, so it is negated.
			q = -valueSum/float64(visits) - float64(vloss)*virtualLoss/effVisits
		}
		u := puctC * child.Prior * sqrtParent / (1 + effVisits)
		score := q + u
		if score > bestScore {
			bestScore, bestMove, bestChild = score, mv, child
		}
	}
	return bestMove, bestChild
}

// fpu is the first-play-urgency value assigned to an unvisited child:
// mildly pessimistic relative to the parent so PUCT still prefers a
// visited, decent child over blindly trying every sibling once.
func fpu() float64 { return -0.1 }

func sqrt(v float64) float64 {
	if v <= 0 {
		return 0
	}
	x := v
	for i := 0; i < 20; i++ {
		x = 0.5 * (x + v/x)
	}
	return x
}
