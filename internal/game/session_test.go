package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/barbu/internal/contract"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func testSession(t *testing.T, names []string, enabled []contract.Contract) *Session {
	t.Helper()
	sess, err := NewSession(names, enabled, testLogger())
	require.NoError(t, err)
	return sess
}

func fourPlayerSession(t *testing.T) *Session {
	return testSession(t,
		[]string{"Alice", "Bob", "Carol", "Dave"},
		[]contract.Contract{contract.Hearts, contract.Queens, contract.KingOfSpades})
}

// submitKing records a King of Spades round giving the penalty to the
// player at the given seat.
func submitKing(t *testing.T, sess *Session, seat int) Round {
	t.Helper()
	sel := sess.NewRoundSelection(contract.KingOfSpades)
	sel.King.Choose(sess.PlayerIDs()[seat])
	round, err := sess.Submit(sel)
	require.NoError(t, err)
	return round
}

func TestNewSessionValidation(t *testing.T) {
	hearts := []contract.Contract{contract.Hearts}

	t.Run("player count bounds", func(t *testing.T) {
		_, err := NewSession([]string{"A", "B"}, hearts, testLogger())
		assert.ErrorIs(t, err, ErrPlayerCount)

		_, err = NewSession([]string{"A", "B", "C", "D", "E", "F", "G"}, hearts, testLogger())
		assert.ErrorIs(t, err, ErrPlayerCount)
	})

	t.Run("duplicate names rejected", func(t *testing.T) {
		_, err := NewSession([]string{"A", "B", "A"}, hearts, testLogger())
		assert.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("at least one contract", func(t *testing.T) {
		_, err := NewSession([]string{"A", "B", "C"}, nil, testLogger())
		assert.ErrorIs(t, err, ErrNoContracts)
	})
}

func TestDealerRotation(t *testing.T) {
	sess := fourPlayerSession(t)
	require.Equal(t, 0, sess.DealerIndex())

	dealers := make([]PlayerID, 0, 4)
	for i := 0; i < 4; i++ {
		round := submitKing(t, sess, 0)
		dealers = append(dealers, round.Dealer)
	}

	// after 4 appends with 4 players the rotation is back at seat 0
	assert.Equal(t, 0, sess.DealerIndex())
	assert.Equal(t, sess.PlayerIDs(), dealers, "each seat dealt exactly once, in order")
}

func TestAvailableContracts(t *testing.T) {
	sess := fourPlayerSession(t)

	// seat 0 deals King of Spades, rotation moves on
	submitKing(t, sess, 1)
	for seat := 1; seat < 4; seat++ {
		submitKing(t, sess, 0)
	}

	// back at seat 0, King of Spades is used up for them
	require.Equal(t, 0, sess.DealerIndex())
	avail := sess.AvailableContracts()
	assert.NotContains(t, avail, contract.KingOfSpades)
	assert.Contains(t, avail, contract.Hearts)
	assert.Contains(t, avail, contract.Queens)
}

func TestSubmitRejectsIncomplete(t *testing.T) {
	sess := fourPlayerSession(t)
	sel := sess.NewRoundSelection(contract.Hearts)
	_, err := sess.Submit(sel)
	assert.ErrorIs(t, err, ErrNotSubmittable)
	assert.Empty(t, sess.Rounds())
	assert.Equal(t, 0, sess.DealerIndex())
}

func TestEditRound(t *testing.T) {
	sess := fourPlayerSession(t)
	first := submitKing(t, sess, 0)
	submitKing(t, sess, 1)
	require.Equal(t, 2, sess.DealerIndex())

	edit := func() {
		sel, err := sess.StartEdit(0)
		require.NoError(t, err)
		require.Equal(t, contract.KingOfSpades, sel.Contract)
		sel.King.Choose(sess.PlayerIDs()[3])
		_, err = sess.Submit(sel)
		require.NoError(t, err)
	}

	edit()
	rounds := sess.Rounds()
	assert.Equal(t, first.Dealer, rounds[0].Dealer, "edit preserves the original dealer")
	assert.Equal(t, 80, rounds[0].Scores[sess.PlayerIDs()[3]])
	assert.Equal(t, 2, sess.DealerIndex(), "edit does not advance the rotation")

	// editing again with identical input changes nothing
	before := sess.Standings()
	edit()
	assert.Equal(t, before, sess.Standings(), "edit is idempotent")
	assert.Equal(t, 2, sess.DealerIndex())

	_, editing := sess.EditingIndex()
	assert.False(t, editing, "submit leaves edit mode")
}

func TestStartEditPopulatesSelection(t *testing.T) {
	sess := testSession(t,
		[]string{"Alice", "Bob", "Carol", "Dave"},
		[]contract.Contract{contract.Hearts, contract.Domino})
	ids := sess.PlayerIDs()

	sel := sess.NewRoundSelection(contract.Domino)
	sel.Domino.SetFirst(ids[0])
	sel.Domino.SetSecond(ids[1])
	sel.Domino.SetCardsLeft(ids[2], 3)
	sel.Domino.SetCardsLeft(ids[3], 2)
	_, err := sess.Submit(sel)
	require.NoError(t, err)

	edit, err := sess.StartEdit(0)
	require.NoError(t, err)
	assert.Equal(t, ids[0], edit.Domino.First)
	assert.Equal(t, ids[1], edit.Domino.Second)
	assert.Equal(t, 3, edit.Domino.CardsLeft[ids[2]])
	assert.True(t, edit.Submittable())
	sess.CancelEdit()
}

func TestCompletion(t *testing.T) {
	// 4 players x 3 contracts completes at exactly 12 rounds
	sess := fourPlayerSession(t)

	var completed bool
	sess.Bus().Subscribe(observerFunc(func(e Event) {
		if e.EventType() == EventTypeGameComplete {
			completed = true
		}
	}))

	for round := 0; round < 12; round++ {
		require.False(t, sess.Complete(), "round %d", round)
		contracts := sess.AvailableContracts()
		require.NotEmpty(t, contracts)
		sel := sess.NewRoundSelection(contracts[0])
		switch contracts[0] {
		case contract.KingOfSpades:
			sel.King.Choose(sess.PlayerIDs()[0])
		default:
			sel.Pool.FillRemainder(sess.PlayerIDs()[0])
		}
		_, err := sess.Submit(sel)
		require.NoError(t, err)
	}

	assert.True(t, sess.Complete())
	assert.True(t, completed, "completion event published")

	sel := NewSelection(contract.Hearts, sess.PlayerIDs(), sess.EnabledContracts())
	sel.Pool.FillRemainder(sess.PlayerIDs()[0])
	_, err := sess.Submit(sel)
	assert.ErrorIs(t, err, ErrGameComplete)
}

type observerFunc func(Event)

func (f observerFunc) HandleEvent(e Event) { f(e) }

func TestRenamePlayer(t *testing.T) {
	sess := fourPlayerSession(t)
	ids := sess.PlayerIDs()
	submitKing(t, sess, 0)

	t.Run("history keeps scores through a rename", func(t *testing.T) {
		require.NoError(t, sess.RenamePlayer(ids[0], "Alicia"))
		p, ok := sess.PlayerByID(ids[0])
		require.True(t, ok)
		assert.Equal(t, "Alicia", p.Name)
		assert.Equal(t, 80, sess.Rounds()[0].Scores[ids[0]])
	})

	t.Run("collisions rejected", func(t *testing.T) {
		err := sess.RenamePlayer(ids[1], "Alicia")
		assert.ErrorIs(t, err, ErrDuplicateName)
	})
}

func TestRestoreValidation(t *testing.T) {
	players := []Player{
		{ID: NewPlayerID(), Name: "A"},
		{ID: NewPlayerID(), Name: "B"},
		{ID: NewPlayerID(), Name: "C"},
	}
	hearts := []contract.Contract{contract.Hearts}

	t.Run("dealer index out of range", func(t *testing.T) {
		_, err := Restore(players, hearts, nil, 3, testLogger())
		assert.Error(t, err)
	})

	t.Run("unknown contract", func(t *testing.T) {
		_, err := Restore(players, []contract.Contract{"Mystery"}, nil, 0, testLogger())
		assert.Error(t, err)
	})
}
