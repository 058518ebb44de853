package room

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/crownfall/crownfall-server/internal/deck"
	"github.com/crownfall/crownfall-server/internal/game"
)

func newTestManager() *Manager {
	return NewManager(game.DefaultRules(), zap.NewNop())
}

func TestCreateRejectsDuplicates(t *testing.T) {
	m := newTestManager()

	require.NoError(t, m.Create("r1"))
	assert.ErrorIs(t, m.Create("r1"), ErrRoomExists)
	assert.Equal(t, 1, m.Count())
}

func TestNamesKeepCreationOrder(t *testing.T) {
	m := newTestManager()

	for _, name := range []string{"alpha", "beta", "gamma"} {
		require.NoError(t, m.Create(name))
	}
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, m.Names())
}

func TestJoinUnknownRoom(t *testing.T) {
	m := newTestManager()

	_, err := m.Join("nowhere", "p1")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestJoinCapacityBoundary(t *testing.T) {
	m := newTestManager()
	require.NoError(t, m.Create("r1"))

	for i := 1; i <= 6; i++ {
		roster, err := m.Join("r1", fmt.Sprintf("p%d", i))
		require.NoError(t, err, "join %d must succeed", i)
		assert.Len(t, roster, i)
	}

	_, err := m.Join("r1", "p7")
	assert.ErrorIs(t, err, ErrRoomFull)
}

func TestJoinStartedGame(t *testing.T) {
	m := newTestManager()
	require.NoError(t, m.Create("r1"))
	_, err := m.Join("r1", "p1")
	require.NoError(t, err)
	_, err = m.Join("r1", "p2")
	require.NoError(t, err)

	_, err = m.StartGame("r1")
	require.NoError(t, err)

	_, err = m.Join("r1", "p3")
	assert.ErrorIs(t, err, game.ErrGameStarted)
}

func TestStartGameUnknownRoom(t *testing.T) {
	m := newTestManager()

	_, err := m.StartGame("nowhere")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestStartGameScenario(t *testing.T) {
	m := newTestManager()
	require.NoError(t, m.Create("r1"))
	_, err := m.Join("r1", "p1")
	require.NoError(t, err)
	_, err = m.Join("r1", "p2")
	require.NoError(t, err)

	events, err := m.StartGame("r1")
	require.NoError(t, err)
	require.Len(t, events, 3)

	hands := make(map[string]int)
	for _, ev := range events {
		switch ev := ev.(type) {
		case game.HandUpdate:
			hands[ev.PlayerID] = len(ev.Hand)
		case game.BoardUpdate:
			assert.Equal(t, "p1", ev.Board.PlayerTurn)
			assert.NotZero(t, ev.Board.CurrentBoss.Health)
			assert.NotZero(t, ev.Board.CurrentBoss.Damage)
			assert.NotEmpty(t, ev.Board.CurrentBoss.Effects)
		}
	}
	assert.Equal(t, map[string]int{"p1": 5, "p2": 5}, hands)
}

func TestPlayTurnUnknownRoomAndPlayer(t *testing.T) {
	m := newTestManager()

	_, err := m.PlayTurn("nowhere", "p1", nil)
	assert.ErrorIs(t, err, ErrRoomNotFound)

	require.NoError(t, m.Create("r1"))
	_, err = m.Join("r1", "p1")
	require.NoError(t, err)
	_, err = m.Join("r1", "p2")
	require.NoError(t, err)
	_, err = m.StartGame("r1")
	require.NoError(t, err)

	_, err = m.PlayTurn("r1", "stranger", []deck.Card{})
	assert.ErrorIs(t, err, game.ErrNotYourTurn)
}

func TestRemovePlayerDeletesEmptyRoom(t *testing.T) {
	m := newTestManager()
	require.NoError(t, m.Create("r1"))
	require.NoError(t, m.Create("r2"))
	_, err := m.Join("r1", "p1")
	require.NoError(t, err)
	_, err = m.Join("r1", "p2")
	require.NoError(t, err)

	deps := m.RemovePlayer("p1")
	require.Len(t, deps, 1)
	assert.Equal(t, "r1", deps[0].Room)
	assert.Equal(t, []string{"p2"}, deps[0].Players)
	assert.False(t, deps[0].Deleted)

	deps = m.RemovePlayer("p2")
	require.Len(t, deps, 1)
	assert.True(t, deps[0].Deleted)
	assert.Equal(t, []string{"r2"}, m.Names(), "empty room is dropped from the listing")

	assert.Empty(t, m.RemovePlayer("p2"), "removal is idempotent")
}
