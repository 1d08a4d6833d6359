package game

import (
	"github.com/lox/barbu/internal/contract"
)

// Submittable reports whether the selection is complete and consistent
// enough to record as a round. It is a gating condition re-evaluated on
// every input change, never an error: an incomplete selection just keeps
// the submit action disabled.
func (s *Selection) Submittable() bool {
	switch {
	case contract.IsNumericPool(s.Contract):
		return s.Pool.Complete()

	case s.Contract == contract.KingOfSpades:
		return s.King.Chosen != ""

	case s.Contract == contract.LastTwoTricks:
		return outcomesSubmittable(s.LastTwo)

	case s.Contract == contract.Domino:
		return s.dominoSubmittable()

	case s.Contract == contract.Barbu:
		for _, pool := range s.SubPools {
			if !pool.Complete() {
				return false
			}
		}
		if s.SubKing != nil && s.SubKing.Chosen == "" {
			return false
		}
		if s.SubLastTwo != nil && !outcomesSubmittable(s.SubLastTwo) {
			return false
		}
		return true
	}
	return false
}

// outcomesSubmittable checks the Last Two Tricks invariant: exactly 120
// points assigned, at most one Both, and when nobody holds Both, exactly
// one Pre-last and exactly one Last.
func outcomesSubmittable(s *OutcomeSelection) bool {
	pre, last, both := s.counts()
	if s.Total() != contract.LastTwoTricksPool || both > 1 {
		return false
	}
	if both == 0 && (pre != 1 || last != 1) {
		return false
	}
	return true
}

// dominoSubmittable requires a first and a second finisher, two distinct
// players, and at least one card left for everyone else. A zero count for
// a non-eliminated player reads as not-yet-entered and blocks submission.
func (s *Selection) dominoSubmittable() bool {
	d := s.Domino
	if d.First == "" || d.Second == "" || d.First == d.Second {
		return false
	}
	for _, p := range s.players {
		if p == d.First || p == d.Second {
			continue
		}
		if d.CardsLeft[p] < 1 {
			return false
		}
	}
	return true
}
