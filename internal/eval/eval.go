package eval

import "commanderchess/internal/rules"

// Backend selects which routine computes the batched static eval used by
// the MCTS-AB leaf blend. Both values currently route through the same
// CPU function — there is no NN path to diverge into (a Non-goal) — but
// the type stays, mirroring the teacher's backend-selection-plus-notice
// pattern in nneval.go, with a one-time log.Printf notice on first use
// of the webgpu backend rather than any actual GPU dispatch.
type Backend uint8

const (
	BackendCPU Backend = iota
	BackendWebGPU
)

// TempoBonus rewards the side to move, the way the teacher's evaluator
// does (tempoBonus), scaled for this engine's wider material range.
const TempoBonus = 8

// phaseWeight is the non-commander, non-headquarters material a side
// fields at full strength, used to interpolate between an opening-minded
// and endgame-minded positional read.
const phaseWeight = 2*100 + 2*100 + 2*200 + 2*100 + 2*300 + 2*100 + 200 + 400 + 2*800

// Evaluate returns a centipawn score from Red's perspective: positive
// favors Red, negative favors Blue. contempt nudges the score away from
// dead-even values toward whichever side is to move, so the search
// prefers keeping tension over steering into an early draw.
func Evaluate(pos *rules.Position, contempt int) int {
	c := Build(pos.Board)
	score := 0

	remaining := 0
	for _, p := range pos.Board.Pieces {
		remaining += nonCommandMaterial(p.Kind)
	}
	phase := clampPhase(remaining)

	for _, p := range pos.Board.Pieces {
		val := p.Kind.Value()
		if p.Hero {
			val += heroBonus(p.Kind)
		}
		val += scalePositional(perKindBonus(p), phase)
		val += synergy(pos.Board, p)
		val -= hangingPenalty(c, p)
		val += navyAirSafety(c, p)
		val += antiAirCoverage(pos.Board, p)
		val += missileProximity(c, p)
		val += objectiveProximity(p)

		if p.Side == rules.Red {
			score += val
		} else {
			score -= val
		}
	}

	score -= commanderSafety(c, rules.Red, phase)
	score += commanderSafety(c, rules.Blue, phase)
	score += commanderPressure(c, pos.Board, rules.Red, phase)
	score -= commanderPressure(c, pos.Board, rules.Blue, phase)

	mobWeight := 5
	if phase > 128 {
		mobWeight = 3
	}
	score += (mobilityProxy(c, rules.Red) - mobilityProxy(c, rules.Blue)) * mobWeight
	score += pairSynergy(pos)
	score += strategicObjectives(pos)

	if pos.SideToMove == rules.Red {
		score += TempoBonus
	} else {
		score -= TempoBonus
	}

	score += tradeConversion(pos)
	score += contemptAdjustment(pos, contempt)

	return score
}

func nonCommandMaterial(k rules.Kind) int {
	if k == rules.Commander || k == rules.Headquarters {
		return 0
	}
	return k.Value()
}

// clampPhase maps remaining non-commander material to [0,256]: 256 at the
// full starting count (opening), trending to 0 as material disappears
// (endgame), same direction convention most tapered evaluators use.
func clampPhase(remaining int) int {
	p := remaining * 256 / phaseWeight
	if p > 256 {
		p = 256
	}
	if p < 0 {
		p = 0
	}
	return p
}

// scalePositional damps positional bonuses in the endgame, where raw
// material and commander safety matter far more than square control.
func scalePositional(bonus, phase int) int {
	return bonus * (128 + phase) / 256
}

// tradeConversion gives the side already ahead on piece count a bonus for
// each trade that thins the opponent's fleet further — converting a
// material lead by simplifying beats gambling it away in a murky
// continuation with pieces still on the board.
func tradeConversion(pos *rules.Position) int {
	var count [2]int
	for _, p := range pos.Board.Pieces {
		if p.Kind == rules.Commander || p.Kind == rules.Headquarters {
			continue
		}
		count[int(p.Side)]++
	}
	red, blue := count[int(rules.Red)], count[int(rules.Blue)]
	diff := red - blue
	switch {
	case diff > 0:
		if bonus := diff * (20 - blue) * 3; bonus > 0 {
			return bonus
		}
	case diff < 0:
		if bonus := -diff * (20 - red) * 3; bonus > 0 {
			return -bonus
		}
	}
	return 0
}

// contemptAdjustment nudges the score toward the side to move, scaled by
// the configured contempt, so the search treats an equal-looking quiet
// position as a reason to keep playing rather than drift toward
// repetition.
func contemptAdjustment(pos *rules.Position, contempt int) int {
	if contempt == 0 {
		return 0
	}
	if pos.SideToMove == rules.Red {
		return contempt
	}
	return -contempt
}
