package game

import "sort"

// Standing is one player's aggregate position: total points over all
// recorded rounds (lower is better) and a standard competition rank.
type Standing struct {
	Player Player
	Total  int
	Rank   int
}

// ComputeStandings aggregates the full round history into per-player
// totals and ranks. Ties share the lower rank number and the next distinct
// rank jumps to the 1-based sorted position, so totals of 80/100/100/120
// rank 1/2/2/4.
func ComputeStandings(players []Player, rounds []Round) []Standing {
	totals := make(map[PlayerID]int, len(players))
	for _, r := range rounds {
		for _, p := range players {
			totals[p.ID] += r.Scores[p.ID]
		}
	}

	standings := make([]Standing, 0, len(players))
	for _, p := range players {
		standings = append(standings, Standing{Player: p, Total: totals[p.ID]})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Total < standings[j].Total
	})

	for i := range standings {
		if i > 0 && standings[i].Total == standings[i-1].Total {
			standings[i].Rank = standings[i-1].Rank
		} else {
			standings[i].Rank = i + 1
		}
	}
	return standings
}
