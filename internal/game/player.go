package game

import (
	"github.com/google/uuid"

	"github.com/lox/barbu/internal/contract"
)

// PlayerID is a stable internal identifier assigned at creation. Round
// records reference the ID, so renaming a player never rewrites history.
type PlayerID string

// NewPlayerID returns a fresh unique player ID.
func NewPlayerID() PlayerID {
	return PlayerID(uuid.NewString())
}

// Player is one participant, in seating (= dealing rotation) order.
// The display name is mutable; the ID is not.
type Player struct {
	ID   PlayerID
	Name string
}

// Scores maps player IDs to point deltas for a single round. Absent keys
// read as zero throughout.
type Scores map[PlayerID]int

// Round is one recorded contract result. Immutable once appended, except
// for explicit in-place edits which preserve the dealer.
type Round struct {
	Dealer   PlayerID
	Contract contract.Contract
	Scores   Scores
}
