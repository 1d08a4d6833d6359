package game

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/barbu/internal/contract"
)

const (
	// MinPlayers and MaxPlayers bound the table size.
	MinPlayers = 3
	MaxPlayers = 6
)

var (
	// ErrPlayerCount is returned when the table is outside 3-6 players.
	ErrPlayerCount = errors.New("between 3 and 6 players required")
	// ErrDuplicateName is returned when two players share a display name.
	ErrDuplicateName = errors.New("player names must be unique")
	// ErrNoContracts is returned when no contract is enabled.
	ErrNoContracts = errors.New("at least one contract must be enabled")
	// ErrNotSubmittable is returned when a selection fails validation.
	ErrNotSubmittable = errors.New("selection is not submittable")
	// ErrGameComplete is returned when appending to a finished game.
	ErrGameComplete = errors.New("game is complete")
)

// Session owns all mutable state for one game: the seated players, the
// enabled contracts, the append-only round history, and the dealer
// rotation. All mutation is synchronous and run-to-completion; there are
// no concurrent writers.
type Session struct {
	players   []Player
	enabled   []contract.Contract
	rounds    []Round
	dealerIdx int
	editing   int // round index being edited, -1 when appending

	logger *log.Logger
	bus    *EventBus
}

// NewSession seats the named players in order and starts a fresh game.
func NewSession(names []string, enabled []contract.Contract, logger *log.Logger) (*Session, error) {
	players := make([]Player, 0, len(names))
	for _, name := range names {
		players = append(players, Player{ID: NewPlayerID(), Name: name})
	}
	return Restore(players, enabled, nil, 0, logger)
}

// Restore rebuilds a session from previously recorded state, validating
// the same invariants as a fresh game.
func Restore(players []Player, enabled []contract.Contract, rounds []Round, dealerIdx int, logger *log.Logger) (*Session, error) {
	if len(players) < MinPlayers || len(players) > MaxPlayers {
		return nil, ErrPlayerCount
	}
	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if seen[p.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, p.Name)
		}
		seen[p.Name] = true
	}
	if len(enabled) == 0 {
		return nil, ErrNoContracts
	}
	for _, c := range enabled {
		if !c.Valid() {
			return nil, fmt.Errorf("unknown contract %q", c)
		}
	}
	if dealerIdx < 0 || dealerIdx >= len(players) {
		return nil, fmt.Errorf("dealer index %d out of range", dealerIdx)
	}

	return &Session{
		players:   players,
		enabled:   append([]contract.Contract(nil), enabled...),
		rounds:    append([]Round(nil), rounds...),
		dealerIdx: dealerIdx,
		editing:   -1,
		logger:    logger.WithPrefix("session"),
		bus:       NewEventBus(),
	}, nil
}

// Bus returns the event bus observers subscribe to.
func (s *Session) Bus() *EventBus {
	return s.bus
}

// Players returns the seating order.
func (s *Session) Players() []Player {
	out := make([]Player, len(s.players))
	copy(out, s.players)
	return out
}

// PlayerIDs returns the player IDs in seating order.
func (s *Session) PlayerIDs() []PlayerID {
	ids := make([]PlayerID, len(s.players))
	for i, p := range s.players {
		ids[i] = p.ID
	}
	return ids
}

// PlayerByID looks a player up by stable ID.
func (s *Session) PlayerByID(id PlayerID) (Player, bool) {
	for _, p := range s.players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// PlayerByName looks a player up by current display name.
func (s *Session) PlayerByName(name string) (Player, bool) {
	for _, p := range s.players {
		if p.Name == name {
			return p, true
		}
	}
	return Player{}, false
}

// RenamePlayer changes a player's display name. History needs no rewrite
// because rounds reference the stable ID, not the name.
func (s *Session) RenamePlayer(id PlayerID, name string) error {
	for _, p := range s.players {
		if p.ID != id && p.Name == name {
			return fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
	}
	for i := range s.players {
		if s.players[i].ID == id {
			s.logger.Info("Renamed player", "from", s.players[i].Name, "to", name)
			s.players[i].Name = name
			return nil
		}
	}
	return fmt.Errorf("no player with id %s", id)
}

// EnabledContracts returns the enabled contracts in order.
func (s *Session) EnabledContracts() []contract.Contract {
	out := make([]contract.Contract, len(s.enabled))
	copy(out, s.enabled)
	return out
}

// Rounds returns the recorded round history in order.
func (s *Session) Rounds() []Round {
	out := make([]Round, len(s.rounds))
	copy(out, s.rounds)
	return out
}

// DealerIndex returns the index of the next dealer.
func (s *Session) DealerIndex() int {
	return s.dealerIdx
}

// CurrentDealer returns the player due to deal the next round.
func (s *Session) CurrentDealer() Player {
	return s.players[s.dealerIdx]
}

// AvailableContracts returns the enabled contracts the current dealer has
// not yet dealt. This per-dealer filter, not a global check, is what
// prevents repeats.
func (s *Session) AvailableContracts() []contract.Contract {
	dealer := s.CurrentDealer().ID
	taken := make(map[contract.Contract]bool)
	for _, r := range s.rounds {
		if r.Dealer == dealer {
			taken[r.Contract] = true
		}
	}
	var avail []contract.Contract
	for _, c := range s.enabled {
		if !taken[c] {
			avail = append(avail, c)
		}
	}
	return avail
}

// NewRoundSelection builds an empty selection for entering the next round.
func (s *Session) NewRoundSelection(c contract.Contract) *Selection {
	return NewSelection(c, s.PlayerIDs(), s.enabled)
}

// Submit records a completed selection. In append mode the round is pushed
// with the current dealer and the rotation advances; in edit mode the
// round at the editing index is overwritten in place, keeping its original
// dealer and leaving the rotation untouched. Identical input always yields
// identical scores, so re-submitting an edit is idempotent.
func (s *Session) Submit(sel *Selection) (Round, error) {
	if !sel.Submittable() {
		return Round{}, ErrNotSubmittable
	}
	scores := ComputeScores(sel)

	if s.editing >= 0 {
		idx := s.editing
		round := Round{Dealer: s.rounds[idx].Dealer, Contract: sel.Contract, Scores: scores}
		s.rounds[idx] = round
		s.editing = -1
		s.logger.Info("Edited round", "index", idx, "contract", sel.Contract)
		s.bus.Publish(RoundEditedEvent{Index: idx, Round: round, timestamp: now()})
		return round, nil
	}

	if s.Complete() {
		return Round{}, ErrGameComplete
	}

	round := Round{Dealer: s.CurrentDealer().ID, Contract: sel.Contract, Scores: scores}
	s.rounds = append(s.rounds, round)
	s.dealerIdx = (s.dealerIdx + 1) % len(s.players)
	s.logger.Info("Recorded round", "index", len(s.rounds)-1, "contract", sel.Contract, "dealer", round.Dealer)
	s.bus.Publish(RoundAppendedEvent{Index: len(s.rounds) - 1, Round: round, timestamp: now()})

	if s.Complete() {
		s.logger.Info("Game complete", "rounds", len(s.rounds))
		s.bus.Publish(GameCompleteEvent{Standings: s.Standings(), timestamp: now()})
	}
	return round, nil
}

// StartEdit enters edit mode for a historical round and returns a
// selection pre-populated from its recorded scores. Edit mode is exclusive
// with append mode until Submit or CancelEdit.
func (s *Session) StartEdit(idx int) (*Selection, error) {
	if idx < 0 || idx >= len(s.rounds) {
		return nil, fmt.Errorf("round index %d out of range", idx)
	}
	s.editing = idx
	return s.selectionFromRound(s.rounds[idx]), nil
}

// CancelEdit leaves edit mode without touching the round.
func (s *Session) CancelEdit() {
	s.editing = -1
}

// EditingIndex returns the round being edited, if any.
func (s *Session) EditingIndex() (int, bool) {
	return s.editing, s.editing >= 0
}

// selectionFromRound inverts the score computation so the edit form starts
// from the recorded values. Barbu rounds come back empty: the halved
// composite total doesn't decompose uniquely into sub-contract inputs, so
// they are re-entered from scratch.
func (s *Session) selectionFromRound(r Round) *Selection {
	sel := NewSelection(r.Contract, s.PlayerIDs(), s.enabled)
	switch {
	case contract.IsNumericPool(r.Contract):
		value := contract.UnitValue(r.Contract)
		for _, p := range s.PlayerIDs() {
			sel.Pool.Set(p, r.Scores[p]/value)
		}
	case r.Contract == contract.KingOfSpades:
		for _, p := range s.PlayerIDs() {
			if r.Scores[p] == contract.KingPenalty {
				sel.King.Choose(p)
			}
		}
	case r.Contract == contract.LastTwoTricks:
		for _, p := range s.PlayerIDs() {
			if o, ok := contract.OutcomeForValue(r.Scores[p]); ok {
				sel.LastTwo.Set(p, o)
			}
		}
	case r.Contract == contract.Domino:
		for _, p := range s.PlayerIDs() {
			switch pts := r.Scores[p]; {
			case pts == contract.DominoFirstBonus:
				sel.Domino.SetFirst(p)
			case pts == contract.DominoSecondBonus:
				sel.Domino.SetSecond(p)
			default:
				sel.Domino.SetCardsLeft(p, pts/contract.DominoPointsPerCard)
			}
		}
	}
	return sel
}

// Complete reports whether every player has dealt every enabled contract.
func (s *Session) Complete() bool {
	return len(s.rounds) >= len(s.players)*len(s.enabled)
}

// Done reports whether player p has already dealt contract c. Drives the
// per-player-per-contract progress grid.
func (s *Session) Done(p PlayerID, c contract.Contract) bool {
	for _, r := range s.rounds {
		if r.Dealer == p && r.Contract == c {
			return true
		}
	}
	return false
}

// Standings computes the current totals and ranks.
func (s *Session) Standings() []Standing {
	return ComputeStandings(s.players, s.rounds)
}
