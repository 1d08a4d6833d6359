package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolSize(t *testing.T) {
	tests := []struct {
		contract Contract
		players  int
		expected int
	}{
		{Hearts, 3, 12},
		{Hearts, 4, 13},
		{Hearts, 5, 13},
		{Hearts, 6, 12},
		{Queens, 3, 4},
		{Queens, 6, 4},
		{Tricks, 3, 16},
		{Tricks, 4, 13},
		{Tricks, 5, 10},
		{Tricks, 6, 8},
		{LastTwoTricks, 4, 120},
		{KingOfSpades, 4, 0},
		{Domino, 4, 0},
		{Barbu, 4, 0},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, PoolSize(test.contract, test.players),
			"%s with %d players", test.contract, test.players)
	}
}

func TestUnitValue(t *testing.T) {
	assert.Equal(t, 10, UnitValue(Hearts))
	assert.Equal(t, 30, UnitValue(Queens))
	assert.Equal(t, 10, UnitValue(Tricks))
	assert.Equal(t, 0, UnitValue(KingOfSpades))
	assert.Equal(t, 0, UnitValue(Domino))
}

func TestOutcomeValues(t *testing.T) {
	assert.Equal(t, 0, OutcomeValue(None))
	assert.Equal(t, 40, OutcomeValue(PreLast))
	assert.Equal(t, 80, OutcomeValue(Last))
	assert.Equal(t, 120, OutcomeValue(Both))
}

func TestOutcomeForValue(t *testing.T) {
	t.Run("exact matches", func(t *testing.T) {
		for _, o := range Outcomes {
			got, ok := OutcomeForValue(OutcomeValue(o))
			assert.True(t, ok)
			assert.Equal(t, o, got)
		}
	})

	t.Run("no match", func(t *testing.T) {
		_, ok := OutcomeForValue(60)
		assert.False(t, ok)
	})
}

func TestValid(t *testing.T) {
	for _, c := range All {
		assert.True(t, c.Valid(), "%s should be valid", c)
	}
	assert.False(t, Contract("Spades").Valid())
	assert.False(t, Contract("").Valid())
}

func TestBarbuSubContracts(t *testing.T) {
	assert.NotContains(t, BarbuSubContracts, Domino)
	assert.NotContains(t, BarbuSubContracts, Barbu)
	assert.Len(t, BarbuSubContracts, 5)
}

func TestMaxBarbuTotal(t *testing.T) {
	// 4 players: (13*10 + 4*30 + 13*10 + 80 + 120) / 2 = 290
	assert.Equal(t, 290, MaxBarbuTotal(4))
	// 3 players: (12*10 + 4*30 + 16*10 + 80 + 120) / 2 = 300
	assert.Equal(t, 300, MaxBarbuTotal(3))
}
