// Package contract defines the seven Barbu contracts and their scoring
// parameters. String forms match the saved-game file format, so they double
// as the on-disk names.
package contract

// Contract identifies one of the seven deals.
type Contract string

const (
	Hearts        Contract = "Hearts"
	Queens        Contract = "Queens"
	KingOfSpades  Contract = "King of Spades"
	Tricks        Contract = "Tricks"
	LastTwoTricks Contract = "Last Two Tricks"
	Domino        Contract = "Domino"
	Barbu         Contract = "Barbu"
)

// All lists every contract in canonical play order.
var All = []Contract{Hearts, Queens, KingOfSpades, Tricks, LastTwoTricks, Domino, Barbu}

// BarbuSubContracts are the contracts scored together inside a Barbu deal.
// Domino is excluded: it has no place in a combined trick-taking hand.
var BarbuSubContracts = []Contract{Hearts, Queens, KingOfSpades, Tricks, LastTwoTricks}

// Scoring constants shared by the engine.
const (
	KingPenalty         = 80
	DominoFirstBonus    = -100
	DominoSecondBonus   = -50
	DominoPointsPerCard = 5
	LastTwoTricksPool   = 120
)

func (c Contract) String() string {
	return string(c)
}

// Valid reports whether c names a known contract.
func (c Contract) Valid() bool {
	for _, known := range All {
		if c == known {
			return true
		}
	}
	return false
}

// IsNumericPool reports whether c is scored by counting items out of a
// fixed pool.
func IsNumericPool(c Contract) bool {
	return c == Hearts || c == Queens || c == Tricks
}

// PoolSize returns the number of countable points in a contract for the
// given player count. Hearts excludes low hearts in the stripped decks used
// for 3 and 6 players; the trick count follows directly from hand size.
// Last Two Tricks reports its point pool; contracts without a shared pool
// report zero.
func PoolSize(c Contract, playerCount int) int {
	switch c {
	case Hearts:
		if playerCount == 4 || playerCount == 5 {
			return 13
		}
		return 12
	case Queens:
		return 4
	case Tricks:
		switch playerCount {
		case 3:
			return 16
		case 4:
			return 13
		case 5:
			return 10
		default:
			return 8
		}
	case LastTwoTricks:
		return LastTwoTricksPool
	}
	return 0
}

// UnitValue returns the points per counted item for numeric-pool contracts.
func UnitValue(c Contract) int {
	switch c {
	case Hearts, Tricks:
		return 10
	case Queens:
		return 30
	}
	return 0
}

// MaxBarbuTotal returns the highest score a single player can take in a
// Barbu deal with every sub-contract enabled: the full pools plus the king
// and both last tricks, halved.
func MaxBarbuTotal(playerCount int) int {
	raw := PoolSize(Hearts, playerCount)*UnitValue(Hearts) +
		PoolSize(Queens, playerCount)*UnitValue(Queens) +
		PoolSize(Tricks, playerCount)*UnitValue(Tricks) +
		KingPenalty +
		LastTwoTricksPool
	return raw / 2
}

// Outcome records which of the last two tricks a player took.
type Outcome string

const (
	None    Outcome = "None"
	PreLast Outcome = "Pre-last"
	Last    Outcome = "Last"
	Both    Outcome = "Both"
)

// Outcomes lists every outcome, worst for the player last.
var Outcomes = []Outcome{None, PreLast, Last, Both}

// OutcomeValue returns the points an outcome is worth.
func OutcomeValue(o Outcome) int {
	switch o {
	case PreLast:
		return 40
	case Last:
		return 80
	case Both:
		return LastTwoTricksPool
	}
	return 0
}

// OutcomeForValue inverts OutcomeValue, for rebuilding a selection from
// recorded scores.
func OutcomeForValue(v int) (Outcome, bool) {
	for _, o := range Outcomes {
		if OutcomeValue(o) == v {
			return o, true
		}
	}
	return None, false
}
