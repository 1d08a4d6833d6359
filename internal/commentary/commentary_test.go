package commentary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/barbu/internal/game"
)

func TestLineNamesThePlayer(t *testing.T) {
	player := game.Player{ID: game.NewPlayerID(), Name: "Margaret"}
	kinds := []game.TriggerKind{
		game.TriggerLargeLead,
		game.TriggerLastPlaceStreak,
		game.TriggerKingStreak,
		game.TriggerDominoStreak,
		game.TriggerLastTrickStreak,
		game.TriggerBigHaul,
		game.TriggerQueensSweep,
		game.TriggerBarbuBlowout,
	}

	seen := make(map[string]bool)
	for _, kind := range kinds {
		line := Line(game.TriggerEvent{Kind: kind, Player: player, Threshold: 100})
		assert.True(t, strings.Contains(line, "Margaret"), "kind %s: %q", kind, line)
		assert.False(t, seen[line], "kind %s repeats a line", kind)
		seen[line] = true
	}
}
