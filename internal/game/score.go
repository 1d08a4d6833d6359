package game

import (
	"github.com/lox/barbu/internal/contract"
)

// ComputeScores turns a completed selection into the per-player point
// deltas for the round. Every player appears in the result, defaulting to
// zero. The computation is pure and deterministic: resubmitting the same
// selection in edit mode reproduces the same scores exactly.
func ComputeScores(sel *Selection) Scores {
	scores := make(Scores, len(sel.players))
	for _, p := range sel.players {
		scores[p] = 0
	}

	switch {
	case contract.IsNumericPool(sel.Contract):
		value := contract.UnitValue(sel.Contract)
		for _, p := range sel.players {
			scores[p] = sel.Pool.Get(p) * value
		}

	case sel.Contract == contract.KingOfSpades:
		if sel.King.Chosen != "" {
			scores[sel.King.Chosen] = contract.KingPenalty
		}

	case sel.Contract == contract.LastTwoTricks:
		for _, p := range sel.players {
			scores[p] = contract.OutcomeValue(sel.LastTwo.Get(p))
		}

	case sel.Contract == contract.Domino:
		for _, p := range sel.players {
			switch p {
			case sel.Domino.First:
				scores[p] = contract.DominoFirstBonus
			case sel.Domino.Second:
				scores[p] = contract.DominoSecondBonus
			default:
				scores[p] = contract.DominoPointsPerCard * sel.Domino.CardsLeft[p]
			}
		}

	case sel.Contract == contract.Barbu:
		for _, p := range sel.players {
			scores[p] = floorDiv(barbuRawTotal(sel, p), 2)
		}
	}

	return scores
}

// barbuRawTotal sums a player's contributions across the enabled
// sub-contracts, using the same unit values as the standalone contracts.
// Sub-selections for disabled contracts don't exist, so they contribute
// nothing rather than counting as an empty pool.
func barbuRawTotal(sel *Selection, p PlayerID) int {
	total := 0
	for sub, pool := range sel.SubPools {
		total += pool.Get(p) * contract.UnitValue(sub)
	}
	if sel.SubKing != nil && sel.SubKing.Chosen == p {
		total += contract.KingPenalty
	}
	if sel.SubLastTwo != nil {
		total += contract.OutcomeValue(sel.SubLastTwo.Get(p))
	}
	return total
}

// floorDiv divides toward negative infinity. Barbu sub-totals are
// non-negative under the current rule table, but the halving rule is
// defined as mathematical floor and we keep it that way rather than rely
// on Go's truncating division.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
