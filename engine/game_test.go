package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdwd40/sorstar-cli-sub000/repository/models"
)

func TestStartGame(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a fresh session at the home planet", func(t *testing.T) {
		store := newTestStore()
		store.users[2] = models.User{ID: 2, Username: "pilot"}
		e := newTestEngine(store)

		state, engineErr := e.StartGame(ctx, 2, shipSparrow)
		require.Nil(t, engineErr)

		assert.Equal(t, StartingCredits, state.Credits)
		assert.Equal(t, 100, state.Fuel)
		assert.Equal(t, 100, state.MaxFuel)
		assert.Equal(t, planetTerraNova, state.Planet.ID)
		assert.Equal(t, 1, state.CurrentTurn)
		assert.Equal(t, 0, state.TurnsUsed)
		assert.Equal(t, 50, state.CargoCapacity)
		assert.Empty(t, state.Cargo)
	})

	t.Run("one game per user", func(t *testing.T) {
		e := newTestEngine(newTestStore())

		_, engineErr := e.StartGame(ctx, userDemo, shipSparrow)
		require.NotNil(t, engineErr)
		assert.Equal(t, ErrCodeGameExists, engineErr.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		e := newTestEngine(newTestStore())

		_, engineErr := e.StartGame(ctx, 42, shipSparrow)
		require.NotNil(t, engineErr)
		assert.Equal(t, ErrCodeNotFound, engineErr.Code)
	})

	t.Run("unknown ship", func(t *testing.T) {
		store := newTestStore()
		store.users[2] = models.User{ID: 2, Username: "pilot"}
		e := newTestEngine(store)

		_, engineErr := e.StartGame(ctx, 2, 42)
		require.NotNil(t, engineErr)
		assert.Equal(t, ErrCodeNotFound, engineErr.Code)
	})
}

func TestGameState(t *testing.T) {
	ctx := context.Background()

	t.Run("reflects cargo contents", func(t *testing.T) {
		store := newTestStore()
		store.cargo = append(store.cargo,
			models.Cargo{ID: 50, GameID: 1, CommodityID: commodityFood, Quantity: 8},
			models.Cargo{ID: 51, GameID: 1, CommodityID: commodityOre, Quantity: 3},
		)
		e := newTestEngine(store)

		state, engineErr := e.GameState(ctx, 1)
		require.Nil(t, engineErr)
		assert.Equal(t, 11, state.CargoUsed)
		assert.Len(t, state.Cargo, 2)
		assert.Equal(t, "Terra Nova", state.Planet.Name)
	})

	t.Run("unknown game", func(t *testing.T) {
		e := newTestEngine(newTestStore())

		_, engineErr := e.GameState(ctx, 99)
		require.NotNil(t, engineErr)
		assert.Equal(t, ErrCodeNotFound, engineErr.Code)
	})
}

func TestListPlanets(t *testing.T) {
	e := newTestEngine(newTestStore())

	listings, engineErr := e.ListPlanets(context.Background())
	require.Nil(t, engineErr)
	require.Len(t, listings, 4)
	assert.Equal(t, "Terra Nova", listings[0].Name)
	assert.Equal(t, 4, listings[0].FuelPrice)
	assert.True(t, listings[3].Distant)
	assert.Equal(t, 4, listings[3].FuelPrice, "distant mining world sells discounted fuel")
}

func TestListShips(t *testing.T) {
	e := newTestEngine(newTestStore())

	listings, engineErr := e.ListShips(context.Background())
	require.Nil(t, engineErr)
	require.Len(t, listings, 1)
	assert.Equal(t, "Sparrow", listings[0].Name)
	assert.Equal(t, 50, listings[0].CargoCapacity)
}

func TestHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("merges trades and fuel purchases newest first", func(t *testing.T) {
		store := newTestStore()
		game := store.games[1]
		game.Fuel = 50
		store.games[1] = game
		e := newTestEngine(store)

		_, engineErr := e.Buy(ctx, 1, commodityFood, 5)
		require.Nil(t, engineErr)
		_, engineErr = e.PurchaseFuel(ctx, 1, 0, 10)
		require.Nil(t, engineErr)
		_, engineErr = e.Sell(ctx, 1, commodityFood, 5)
		require.Nil(t, engineErr)

		entries, engineErr := e.History(ctx, 1)
		require.Nil(t, engineErr)
		require.Len(t, entries, 3)

		types := make([]string, 0, len(entries))
		for _, entry := range entries {
			types = append(types, entry.Type)
		}
		assert.ElementsMatch(t, []string{"buy", "sell", "fuel"}, types)

		for i := 1; i < len(entries); i++ {
			assert.GreaterOrEqual(t, entries[i-1].Timestamp, entries[i].Timestamp)
		}
	})

	t.Run("empty log for a fresh game", func(t *testing.T) {
		e := newTestEngine(newTestStore())

		entries, engineErr := e.History(ctx, 1)
		require.Nil(t, engineErr)
		assert.Empty(t, entries)
	})

	t.Run("unknown game", func(t *testing.T) {
		e := newTestEngine(newTestStore())

		_, engineErr := e.History(ctx, 99)
		require.NotNil(t, engineErr)
		assert.Equal(t, ErrCodeNotFound, engineErr.Code)
	})
}
