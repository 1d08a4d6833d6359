package game

import (
	"github.com/charmbracelet/log"

	"github.com/lox/barbu/internal/contract"
)

// TriggerKind names a commentary-worthy condition.
type TriggerKind string

const (
	TriggerLargeLead       TriggerKind = "large-lead"        // leader ahead by a configured margin
	TriggerLastPlaceStreak TriggerKind = "last-place-streak" // sole last place for 4/8/16 rounds
	TriggerKingStreak      TriggerKind = "king-streak"       // 3 consecutive kings of spades
	TriggerDominoStreak    TriggerKind = "domino-streak"     // 3 consecutive domino penalties
	TriggerLastTrickStreak TriggerKind = "last-trick-streak" // 2 consecutive last/pre-last captures
	TriggerBigHaul         TriggerKind = "big-haul"          // more than 10 hearts or tricks in one round
	TriggerQueensSweep     TriggerKind = "queens-sweep"      // all four queens in one round
	TriggerBarbuBlowout    TriggerKind = "barbu-blowout"     // barbu score above 90% of the possible max
)

const (
	lastPlaceFirstThreshold = 4 // doubles at each tier: 4, 8, 16
	lastPlaceMaxThreshold   = 16
	kingStreakThreshold     = 3
	dominoStreakThreshold   = 3
	lastTrickThreshold      = 2
	bigHaulUnits            = 10 // strictly more units than this
	barbuBlowoutPercent     = 90
)

// TriggerEvent is one surfaced commentary condition. Threshold carries the
// tier that fired for parameterized kinds (streak length, lead margin).
type TriggerEvent struct {
	Kind      TriggerKind
	Player    Player
	Threshold int
}

// TrackerConfig tunes the configurable trigger thresholds.
type TrackerConfig struct {
	// LeadMargins are the point gaps between leader and runner-up that
	// fire a large-lead event, checked largest first.
	LeadMargins []int
}

// DefaultTrackerConfig returns the stock thresholds.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{LeadMargins: []int{100, 200, 300}}
}

type firedKey struct {
	kind      TriggerKind
	player    PlayerID
	threshold int
}

// Tracker observes newly appended rounds and maintains the per-player
// streak counters and one-shot fired flags. It is a pure observer: it
// never influences scoring, and it deliberately ignores edits — a
// corrected round neither rewinds counters nor re-fires commentary,
// matching the behavior the scoring history was modeled on. A new game
// gets a new Tracker, which is what resets everything.
type Tracker struct {
	session *Session
	cfg     TrackerConfig
	logger  *log.Logger
	notify  func(TriggerEvent)

	lastPlaceStreak map[PlayerID]int
	kingStreak      map[PlayerID]int
	dominoStreak    map[PlayerID]int
	lastTrickStreak map[PlayerID]int
	fired           map[firedKey]bool
}

// NewTracker creates a tracker bound to a session and subscribes it to the
// session's event bus. Surfaced events are delivered to notify, which may
// be nil.
func NewTracker(session *Session, cfg TrackerConfig, logger *log.Logger, notify func(TriggerEvent)) *Tracker {
	t := &Tracker{
		session:         session,
		cfg:             cfg,
		logger:          logger.WithPrefix("triggers"),
		notify:          notify,
		lastPlaceStreak: make(map[PlayerID]int),
		kingStreak:      make(map[PlayerID]int),
		dominoStreak:    make(map[PlayerID]int),
		lastTrickStreak: make(map[PlayerID]int),
		fired:           make(map[firedKey]bool),
	}
	session.Bus().Subscribe(t)
	return t
}

// HandleEvent implements Observer. Only appended rounds advance state.
func (t *Tracker) HandleEvent(e Event) {
	appended, ok := e.(RoundAppendedEvent)
	if !ok {
		return
	}
	t.advance(appended.Round)
	if ev, ok := t.pick(appended.Round); ok {
		t.logger.Debug("Trigger fired", "kind", ev.Kind, "player", ev.Player.Name, "threshold", ev.Threshold)
		if t.notify != nil {
			t.notify(ev)
		}
	}
}

// advance updates every streak counter for the newly appended round.
func (t *Tracker) advance(r Round) {
	standings := t.session.Standings()

	// Sole last place: unique highest total. Any tie clears everyone.
	worst := standings[len(standings)-1]
	soleLast := len(standings) < 2 || standings[len(standings)-2].Total != worst.Total
	for _, p := range t.session.Players() {
		if soleLast && p.ID == worst.Player.ID {
			t.lastPlaceStreak[p.ID]++
		} else {
			t.lastPlaceStreak[p.ID] = 0
		}
	}

	// Contract-specific streaks only move on rounds of their contract, so
	// "consecutive" means consecutive among that contract's rounds.
	switch r.Contract {
	case contract.KingOfSpades:
		for _, p := range t.session.Players() {
			if r.Scores[p.ID] == contract.KingPenalty {
				t.kingStreak[p.ID]++
			} else {
				t.kingStreak[p.ID] = 0
			}
		}
	case contract.Domino:
		for _, p := range t.session.Players() {
			if r.Scores[p.ID] > 0 {
				t.dominoStreak[p.ID]++
			} else {
				t.dominoStreak[p.ID] = 0
			}
		}
	case contract.LastTwoTricks:
		for _, p := range t.session.Players() {
			if r.Scores[p.ID] > 0 {
				t.lastTrickStreak[p.ID]++
			} else {
				t.lastTrickStreak[p.ID] = 0
			}
		}
	}
}

// pick returns at most one newly-true, not-yet-fired event for the round.
// Single-round extremes are checked first, then streaks, then the lead
// gap; the first hit wins and is marked spent for the session.
func (t *Tracker) pick(r Round) (TriggerEvent, bool) {
	players := t.session.Players()

	if r.Contract == contract.Hearts || r.Contract == contract.Tricks {
		limit := bigHaulUnits * contract.UnitValue(r.Contract)
		for _, p := range players {
			if r.Scores[p.ID] > limit {
				if ev, ok := t.fire(TriggerBigHaul, p, 0); ok {
					return ev, true
				}
			}
		}
	}
	if r.Contract == contract.Queens {
		sweep := contract.PoolSize(contract.Queens, len(players)) * contract.UnitValue(contract.Queens)
		for _, p := range players {
			if r.Scores[p.ID] == sweep {
				if ev, ok := t.fire(TriggerQueensSweep, p, 0); ok {
					return ev, true
				}
			}
		}
	}
	if r.Contract == contract.Barbu {
		limit := contract.MaxBarbuTotal(len(players)) * barbuBlowoutPercent / 100
		for _, p := range players {
			if r.Scores[p.ID] > limit {
				if ev, ok := t.fire(TriggerBarbuBlowout, p, 0); ok {
					return ev, true
				}
			}
		}
	}

	for _, p := range players {
		for tier := lastPlaceMaxThreshold; tier >= lastPlaceFirstThreshold; tier /= 2 {
			if t.lastPlaceStreak[p.ID] >= tier {
				if ev, ok := t.fire(TriggerLastPlaceStreak, p, tier); ok {
					return ev, true
				}
			}
		}
		if t.kingStreak[p.ID] >= kingStreakThreshold {
			if ev, ok := t.fire(TriggerKingStreak, p, kingStreakThreshold); ok {
				return ev, true
			}
		}
		if t.dominoStreak[p.ID] >= dominoStreakThreshold {
			if ev, ok := t.fire(TriggerDominoStreak, p, dominoStreakThreshold); ok {
				return ev, true
			}
		}
		if t.lastTrickStreak[p.ID] >= lastTrickThreshold {
			if ev, ok := t.fire(TriggerLastTrickStreak, p, lastTrickThreshold); ok {
				return ev, true
			}
		}
	}

	standings := t.session.Standings()
	if len(standings) >= 2 {
		leader := standings[0]
		gap := standings[1].Total - leader.Total
		for i := len(t.cfg.LeadMargins) - 1; i >= 0; i-- {
			margin := t.cfg.LeadMargins[i]
			if margin > 0 && gap >= margin {
				if ev, ok := t.fire(TriggerLargeLead, leader.Player, margin); ok {
					return ev, true
				}
			}
		}
	}

	return TriggerEvent{}, false
}

// fire marks the (kind, player, tier) pair spent and returns the event,
// unless it already fired this session.
func (t *Tracker) fire(kind TriggerKind, p Player, threshold int) (TriggerEvent, bool) {
	key := firedKey{kind: kind, player: p.ID, threshold: threshold}
	if t.fired[key] {
		return TriggerEvent{}, false
	}
	t.fired[key] = true
	return TriggerEvent{Kind: kind, Player: p, Threshold: threshold}, true
}
