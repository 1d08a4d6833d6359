// Package commentary turns trigger events into table-talk lines. It is a
// cosmetic observer over the scoring engine: nothing here feeds back into
// scores or state.
package commentary

import (
	"fmt"

	"github.com/lox/barbu/internal/game"
)

// Line renders a single remark for a trigger event. The wording is
// deliberately unkind; Barbu tables expect nothing less.
func Line(ev game.TriggerEvent) string {
	name := ev.Player.Name
	switch ev.Kind {
	case game.TriggerLargeLead:
		return fmt.Sprintf("%s is %d points clear. The rest of you are playing for silver.", name, ev.Threshold)
	case game.TriggerLastPlaceStreak:
		return fmt.Sprintf("%s has now been dead last for %d rounds straight. Impressive consistency.", name, ev.Threshold)
	case game.TriggerKingStreak:
		return fmt.Sprintf("Three kings of spades in a row for %s. The king clearly lives in their hand.", name)
	case game.TriggerDominoStreak:
		return fmt.Sprintf("%s got stuck with cards three dominos running. Maybe try playing them?", name)
	case game.TriggerLastTrickStreak:
		return fmt.Sprintf("%s keeps collecting the last tricks. Someone explain the objective to them.", name)
	case game.TriggerBigHaul:
		return fmt.Sprintf("%s hoovered up more than ten of those. Bold strategy.", name)
	case game.TriggerQueensSweep:
		return fmt.Sprintf("All four queens to %s. A full royal court of bad decisions.", name)
	case game.TriggerBarbuBlowout:
		return fmt.Sprintf("%s basically took the entire Barbu. That round will be remembered.", name)
	}
	return fmt.Sprintf("%s did something noteworthy.", name)
}
