package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/barbu/internal/contract"
)

func TestComputeStandingsCompetitionRanking(t *testing.T) {
	players := []Player{
		{ID: NewPlayerID(), Name: "A"},
		{ID: NewPlayerID(), Name: "B"},
		{ID: NewPlayerID(), Name: "C"},
		{ID: NewPlayerID(), Name: "D"},
	}
	rounds := []Round{
		{Dealer: players[0].ID, Contract: contract.Hearts, Scores: Scores{
			players[0].ID: 100,
			players[1].ID: 100,
			players[2].ID: 80,
			players[3].ID: 120,
		}},
	}

	standings := ComputeStandings(players, rounds)

	// ascending by total, ties share the lower rank, next rank skips
	assert.Equal(t, "C", standings[0].Player.Name)
	assert.Equal(t, []int{1, 2, 2, 4}, []int{
		standings[0].Rank, standings[1].Rank, standings[2].Rank, standings[3].Rank,
	})
}

func TestComputeStandingsAbsentScoresReadAsZero(t *testing.T) {
	players := []Player{
		{ID: NewPlayerID(), Name: "A"},
		{ID: NewPlayerID(), Name: "B"},
		{ID: NewPlayerID(), Name: "C"},
	}
	rounds := []Round{
		{Dealer: players[0].ID, Contract: contract.Queens, Scores: Scores{
			players[0].ID: 120,
		}},
	}

	standings := ComputeStandings(players, rounds)
	assert.Equal(t, 0, standings[0].Total)
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, 1, standings[1].Rank, "tie at zero shares rank 1")
	assert.Equal(t, 120, standings[2].Total)
	assert.Equal(t, 3, standings[2].Rank)
}

func TestComputeStandingsStableForEqualTotals(t *testing.T) {
	players := []Player{
		{ID: NewPlayerID(), Name: "A"},
		{ID: NewPlayerID(), Name: "B"},
		{ID: NewPlayerID(), Name: "C"},
	}

	standings := ComputeStandings(players, nil)
	// with no rounds everyone ties on zero in seating order
	assert.Equal(t, []string{"A", "B", "C"}, []string{
		standings[0].Player.Name, standings[1].Player.Name, standings[2].Player.Name,
	})
	for _, s := range standings {
		assert.Equal(t, 1, s.Rank)
	}
}
