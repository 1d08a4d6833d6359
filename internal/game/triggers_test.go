package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/barbu/internal/contract"
)

// trackedSession builds a session with a tracker recording surfaced events.
func trackedSession(t *testing.T, enabled []contract.Contract) (*Session, *[]TriggerEvent) {
	t.Helper()
	sess := testSession(t, []string{"Alice", "Bob", "Carol", "Dave"}, enabled)
	var events []TriggerEvent
	NewTracker(sess, DefaultTrackerConfig(), testLogger(), func(ev TriggerEvent) {
		events = append(events, ev)
	})
	return sess, &events
}

func TestQueensSweepFiresOnce(t *testing.T) {
	sess, events := trackedSession(t, []contract.Contract{contract.Queens, contract.Hearts})
	ids := sess.PlayerIDs()

	sel := sess.NewRoundSelection(contract.Queens)
	sel.Pool.Set(ids[1], 4)
	_, err := sess.Submit(sel)
	require.NoError(t, err)

	require.Len(t, *events, 1)
	assert.Equal(t, TriggerQueensSweep, (*events)[0].Kind)
	assert.Equal(t, "Bob", (*events)[0].Player.Name)

	// the same feat by the same player stays silent for the session
	sel = sess.NewRoundSelection(contract.Queens)
	sel.Pool.Set(ids[1], 4)
	_, err = sess.Submit(sel)
	require.NoError(t, err)
	assert.Len(t, *events, 1)
}

func TestBigHaulThreshold(t *testing.T) {
	sess, events := trackedSession(t, []contract.Contract{contract.Hearts})
	ids := sess.PlayerIDs()

	// exactly 10 hearts is not a haul
	sel := sess.NewRoundSelection(contract.Hearts)
	sel.Pool.Set(ids[0], 10)
	sel.Pool.Set(ids[1], 3)
	_, err := sess.Submit(sel)
	require.NoError(t, err)
	assert.Empty(t, *events)

	// 11 is
	sel = sess.NewRoundSelection(contract.Hearts)
	sel.Pool.Set(ids[1], 11)
	sel.Pool.Set(ids[2], 2)
	_, err = sess.Submit(sel)
	require.NoError(t, err)
	require.Len(t, *events, 1)
	assert.Equal(t, TriggerBigHaul, (*events)[0].Kind)
}

func TestLastPlaceStreak(t *testing.T) {
	sess, events := trackedSession(t, []contract.Contract{contract.Queens})
	ids := sess.PlayerIDs()

	// Dave takes one queen every round, the rest rotate to stay even-ish
	for i := 0; i < 4; i++ {
		sel := sess.NewRoundSelection(contract.Queens)
		sel.Pool.Set(ids[3], 3)
		sel.Pool.Set(ids[i%3], 1)
		_, err := sess.Submit(sel)
		require.NoError(t, err)
	}

	require.NotEmpty(t, *events)
	last := (*events)[len(*events)-1]
	assert.Equal(t, TriggerLastPlaceStreak, last.Kind)
	assert.Equal(t, "Dave", last.Player.Name)
	assert.Equal(t, 4, last.Threshold)
}

func TestAtMostOneEventPerRound(t *testing.T) {
	sess, events := trackedSession(t, []contract.Contract{contract.Queens})
	ids := sess.PlayerIDs()

	// Dave stays sole last for three rounds, then sweeps on the fourth.
	// That round qualifies both the sweep and the 4-round last-place
	// streak, but only one event may surface.
	for i := 0; i < 3; i++ {
		sel := sess.NewRoundSelection(contract.Queens)
		sel.Pool.Set(ids[3], 3)
		sel.Pool.Set(ids[i], 1)
		_, err := sess.Submit(sel)
		require.NoError(t, err)
	}
	sel := sess.NewRoundSelection(contract.Queens)
	sel.Pool.Set(ids[3], 4)
	_, err := sess.Submit(sel)
	require.NoError(t, err)

	require.Len(t, *events, 1)
	assert.Equal(t, TriggerQueensSweep, (*events)[0].Kind)
}

func TestEditsDoNotTouchTriggers(t *testing.T) {
	sess, events := trackedSession(t, []contract.Contract{contract.Queens})
	ids := sess.PlayerIDs()

	sel := sess.NewRoundSelection(contract.Queens)
	sel.Pool.Set(ids[0], 2)
	sel.Pool.Set(ids[1], 2)
	_, err := sess.Submit(sel)
	require.NoError(t, err)
	fired := len(*events)

	// rewriting the round into a sweep must not fire anything
	edit, err := sess.StartEdit(0)
	require.NoError(t, err)
	edit.Pool.Set(ids[1], 0)
	edit.Pool.Set(ids[0], 4)
	_, err = sess.Submit(edit)
	require.NoError(t, err)

	assert.Len(t, *events, fired)
}

func TestLargeLeadUsesConfiguredMargins(t *testing.T) {
	sess := testSession(t, []string{"Alice", "Bob", "Carol", "Dave"},
		[]contract.Contract{contract.Hearts})
	var events []TriggerEvent
	NewTracker(sess, TrackerConfig{LeadMargins: []int{50}}, testLogger(), func(ev TriggerEvent) {
		events = append(events, ev)
	})
	ids := sess.PlayerIDs()

	// the gap that matters is leader to runner-up; with Alice and Dave
	// both on zero it stays at zero no matter how far Bob falls behind
	sel := sess.NewRoundSelection(contract.Hearts)
	sel.Pool.Set(ids[1], 7)
	sel.Pool.Set(ids[2], 6)
	_, err := sess.Submit(sel)
	require.NoError(t, err)
	assert.Empty(t, events, "two players still tied at the top")

	// Dave picks up hearts too; Alice alone stays clean, 60 clear
	sel = sess.NewRoundSelection(contract.Hearts)
	sel.Pool.Set(ids[1], 7)
	sel.Pool.Set(ids[3], 6)
	_, err = sess.Submit(sel)
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, TriggerLargeLead, events[0].Kind)
	assert.Equal(t, "Alice", events[0].Player.Name)
	assert.Equal(t, 50, events[0].Threshold)
}
