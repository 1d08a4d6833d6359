// Selection types for the round being entered. A Selection is transient
// state owned by the UI for exactly one round; nothing here is persisted.
//
// The pool-shared contracts narrow each player's legal choices as other
// players are assigned. The recomputation is always a full pass over the
// current values, never incremental, so a single pass converges: only the
// changed player's surplus can have freed or consumed capacity, and every
// other player's maximum is a function of the aggregate sum alone.
package game

import (
	"github.com/lox/barbu/internal/contract"
)

// PoolSelection distributes a fixed pool of counted units (hearts, queens,
// tricks) across all players. The invariant maintained by every mutation is
// units[p] <= MaxFor(p) for all p.
type PoolSelection struct {
	Pool  int
	order []PlayerID
	units map[PlayerID]int
}

// NewPoolSelection creates an empty pool selection over the given players.
func NewPoolSelection(pool int, players []PlayerID) *PoolSelection {
	order := make([]PlayerID, len(players))
	copy(order, players)
	return &PoolSelection{
		Pool:  pool,
		order: order,
		units: make(map[PlayerID]int, len(players)),
	}
}

// Get returns the units currently assigned to p.
func (s *PoolSelection) Get(p PlayerID) int {
	return s.units[p]
}

// Sum returns the total units assigned across all players.
func (s *PoolSelection) Sum() int {
	total := 0
	for _, n := range s.units {
		total += n
	}
	return total
}

// MaxFor returns the largest value p may currently hold: the pool minus
// everything assigned to other players.
func (s *PoolSelection) MaxFor(p PlayerID) int {
	return s.Pool - (s.Sum() - s.units[p])
}

// Set assigns n units to p and re-clamps every player against their
// recomputed maximum. Values below zero or above p's own maximum are
// clamped before the pass.
func (s *PoolSelection) Set(p PlayerID, n int) {
	if n < 0 {
		n = 0
	}
	if max := s.MaxFor(p); n > max {
		n = max
	}
	s.units[p] = n
	s.clamp()
}

// clamp pulls any player whose value now exceeds their maximum down to it.
func (s *PoolSelection) clamp() {
	for _, p := range s.order {
		if max := s.MaxFor(p); s.units[p] > max {
			s.units[p] = max
		}
	}
}

// FillRemainder assigns p whatever capacity the other players have left.
func (s *PoolSelection) FillRemainder(p PlayerID) {
	used := s.Sum() - s.units[p]
	s.units[p] = s.Pool - used
}

// Complete reports whether the whole pool has been distributed.
func (s *PoolSelection) Complete() bool {
	return s.Sum() == s.Pool
}

// OutcomeSelection assigns each player a Last Two Tricks outcome. Both is a
// singleton that excludes Pre-last and Last; Pre-last and Last are each
// singletons independently.
type OutcomeSelection struct {
	order  []PlayerID
	values map[PlayerID]contract.Outcome
}

// NewOutcomeSelection creates a selection with every player at None.
func NewOutcomeSelection(players []PlayerID) *OutcomeSelection {
	order := make([]PlayerID, len(players))
	copy(order, players)
	values := make(map[PlayerID]contract.Outcome, len(players))
	for _, p := range players {
		values[p] = contract.None
	}
	return &OutcomeSelection{order: order, values: values}
}

// Get returns p's current outcome.
func (s *OutcomeSelection) Get(p PlayerID) contract.Outcome {
	return s.values[p]
}

// Options returns the outcomes p may legally select given every other
// player's current choice. None is always available.
func (s *OutcomeSelection) Options(p PlayerID) []contract.Outcome {
	var othersBoth, othersPreOrLast, othersPre, othersLast bool
	for _, q := range s.order {
		if q == p {
			continue
		}
		switch s.values[q] {
		case contract.Both:
			othersBoth = true
		case contract.PreLast:
			othersPreOrLast = true
			othersPre = true
		case contract.Last:
			othersPreOrLast = true
			othersLast = true
		}
	}

	opts := []contract.Outcome{contract.None}
	if !othersPreOrLast && !othersBoth {
		opts = append(opts, contract.Both)
	}
	if !othersBoth && !othersPre {
		opts = append(opts, contract.PreLast)
	}
	if !othersBoth && !othersLast {
		opts = append(opts, contract.Last)
	}
	return opts
}

// Set assigns an outcome to p. A value that is illegal given the other
// players' choices auto-corrects to None, the same way a narrowed input
// widget would reset it. Legal assignments can never invalidate another
// player's existing choice, so no cross-player pass is needed.
func (s *OutcomeSelection) Set(p PlayerID, o contract.Outcome) {
	if !outcomeIn(s.Options(p), o) {
		o = contract.None
	}
	s.values[p] = o
}

// FillRemainder gives p the single outcome worth exactly the points the
// other players have left unclaimed, defaulting to None when no outcome
// matches exactly.
func (s *OutcomeSelection) FillRemainder(p PlayerID) {
	used := 0
	for _, q := range s.order {
		if q != p {
			used += contract.OutcomeValue(s.values[q])
		}
	}
	o, ok := contract.OutcomeForValue(contract.LastTwoTricksPool - used)
	if !ok {
		o = contract.None
	}
	s.Set(p, o)
}

// Total returns the points assigned across all players.
func (s *OutcomeSelection) Total() int {
	total := 0
	for _, o := range s.values {
		total += contract.OutcomeValue(o)
	}
	return total
}

// counts returns how many players hold each non-None outcome.
func (s *OutcomeSelection) counts() (pre, last, both int) {
	for _, o := range s.values {
		switch o {
		case contract.PreLast:
			pre++
		case contract.Last:
			last++
		case contract.Both:
			both++
		}
	}
	return
}

func outcomeIn(opts []contract.Outcome, o contract.Outcome) bool {
	for _, x := range opts {
		if x == o {
			return true
		}
	}
	return false
}

// KingSelection designates the single player who took the king of spades.
type KingSelection struct {
	Chosen PlayerID // empty until a player is picked
}

// Choose marks p as the king holder.
func (s *KingSelection) Choose(p PlayerID) {
	s.Chosen = p
}

// DominoSelection records the Domino finishing order: who went out first
// and second, and how many cards everyone else still held.
type DominoSelection struct {
	First     PlayerID
	Second    PlayerID
	CardsLeft map[PlayerID]int
}

// NewDominoSelection creates an empty Domino selection.
func NewDominoSelection() *DominoSelection {
	return &DominoSelection{CardsLeft: make(map[PlayerID]int)}
}

// SetFirst designates p as first out. If p was second, that slot clears.
func (s *DominoSelection) SetFirst(p PlayerID) {
	if s.Second == p {
		s.Second = ""
	}
	s.First = p
	delete(s.CardsLeft, p)
}

// SetSecond designates p as second out. If p was first, that slot clears.
func (s *DominoSelection) SetSecond(p PlayerID) {
	if s.First == p {
		s.First = ""
	}
	s.Second = p
	delete(s.CardsLeft, p)
}

// SetCardsLeft records the cards p still held. Negative counts clamp to 0.
func (s *DominoSelection) SetCardsLeft(p PlayerID, n int) {
	if n < 0 {
		n = 0
	}
	s.CardsLeft[p] = n
}

// Selection is the complete per-round input state for one contract. Only
// the fields relevant to the contract are populated; for Barbu each enabled
// sub-contract gets its own scoped sub-selection (disabled sub-contracts
// are absent entirely, not zero-valued).
type Selection struct {
	Contract contract.Contract
	players  []PlayerID

	Pool    *PoolSelection    // Hearts, Queens, Tricks
	King    *KingSelection    // King of Spades
	LastTwo *OutcomeSelection // Last Two Tricks
	Domino  *DominoSelection  // Domino

	// Barbu sub-selections, keyed by sub-contract.
	SubPools   map[contract.Contract]*PoolSelection
	SubKing    *KingSelection
	SubLastTwo *OutcomeSelection
}

// NewSelection builds an empty selection for the given contract. The
// enabled list only matters for Barbu, where it decides which
// sub-selections exist.
func NewSelection(c contract.Contract, players []PlayerID, enabled []contract.Contract) *Selection {
	order := make([]PlayerID, len(players))
	copy(order, players)
	sel := &Selection{Contract: c, players: order}
	n := len(players)

	switch {
	case contract.IsNumericPool(c):
		sel.Pool = NewPoolSelection(contract.PoolSize(c, n), order)
	case c == contract.KingOfSpades:
		sel.King = &KingSelection{}
	case c == contract.LastTwoTricks:
		sel.LastTwo = NewOutcomeSelection(order)
	case c == contract.Domino:
		sel.Domino = NewDominoSelection()
	case c == contract.Barbu:
		sel.SubPools = make(map[contract.Contract]*PoolSelection)
		for _, sub := range contract.BarbuSubContracts {
			if !contractIn(enabled, sub) {
				continue
			}
			switch {
			case contract.IsNumericPool(sub):
				sel.SubPools[sub] = NewPoolSelection(contract.PoolSize(sub, n), order)
			case sub == contract.KingOfSpades:
				sel.SubKing = &KingSelection{}
			case sub == contract.LastTwoTricks:
				sel.SubLastTwo = NewOutcomeSelection(order)
			}
		}
	}
	return sel
}

// Players returns the seating order the selection was built over.
func (s *Selection) Players() []PlayerID {
	return s.players
}

func contractIn(list []contract.Contract, c contract.Contract) bool {
	for _, x := range list {
		if x == c {
			return true
		}
	}
	return false
}
