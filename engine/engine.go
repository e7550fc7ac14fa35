// Package engine implements the transactional game-economy engine: market
// pricing, commodity trade, fuel purchase and interplanetary travel. Each
// mutating operation runs as one atomic read-validate-write unit against the
// Store and appends an audit row in the same unit.
package engine

import (
	"context"
	"errors"
	"fmt"

	cmtlog "github.com/cometbft/cometbft/libs/log"

	"github.com/jdwd40/sorstar-cli-sub000/repository/models"
)

// Engine executes game operations against a Store. It performs no background
// work; every operation is invoked synchronously per request.
type Engine struct {
	store  Store
	logger cmtlog.Logger
}

// New creates an engine backed by the given store.
func New(store Store, logger cmtlog.Logger) *Engine {
	return &Engine{store: store, logger: logger}
}

// PlanetInfo is the serialized view of a planet.
type PlanetInfo struct {
	ID      uint   `json:"planetId"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Distant bool   `json:"distant"`
}

// CargoItem is one line of a game's cargo manifest.
type CargoItem struct {
	CommodityID uint   `json:"commodityId"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
}

// GameState is the full session view returned alongside every mutation.
type GameState struct {
	GameID        uint        `json:"gameId"`
	Credits       int         `json:"credits"`
	Fuel          int         `json:"fuel"`
	MaxFuel       int         `json:"maxFuel"`
	Planet        PlanetInfo  `json:"planet"`
	TurnsUsed     int         `json:"turnsUsed"`
	CurrentTurn   int         `json:"currentTurn"`
	CargoCapacity int         `json:"cargoCapacity"`
	CargoUsed     int         `json:"cargoUsed"`
	Cargo         []CargoItem `json:"cargo"`
}

// GameState returns the current session view.
func (e *Engine) GameState(ctx context.Context, gameID uint) (*GameState, *Error) {
	game, err := e.store.Game(ctx, gameID)
	if err != nil {
		return nil, gameLookupError(err, gameID)
	}
	state, err := e.buildState(ctx, e.store, game)
	if err != nil {
		return nil, asEngineError(err)
	}
	return state, nil
}

// buildState assembles the session view from the freshly mutated game row.
// The planet is re-read from the store because travel changes the location
// after the preloaded association was fetched.
func (e *Engine) buildState(ctx context.Context, s Store, game *models.Game) (*GameState, error) {
	planet, err := s.Planet(ctx, game.CurrentPlanetID)
	if err != nil {
		return nil, err
	}
	cargo, err := s.Cargo(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	items := make([]CargoItem, 0, len(cargo))
	used := 0
	for _, c := range cargo {
		name := ""
		if c.Commodity != nil {
			name = c.Commodity.Name
		}
		items = append(items, CargoItem{CommodityID: c.CommodityID, Name: name, Quantity: c.Quantity})
		used += c.Quantity
	}

	capacity := 0
	if game.Ship != nil {
		capacity = game.Ship.CargoCapacity
	}

	return &GameState{
		GameID:  game.ID,
		Credits: game.Credits,
		Fuel:    game.Fuel,
		MaxFuel: game.MaxFuel,
		Planet: PlanetInfo{
			ID:      planet.ID,
			Name:    planet.Name,
			Type:    planet.Type,
			X:       planet.X,
			Y:       planet.Y,
			Distant: planet.Distant,
		},
		TurnsUsed:     game.TurnsUsed,
		CurrentTurn:   game.CurrentTurn,
		CargoCapacity: capacity,
		CargoUsed:     used,
		Cargo:         items,
	}, nil
}

func cargoTotal(cargo []models.Cargo) int {
	total := 0
	for _, c := range cargo {
		total += c.Quantity
	}
	return total
}

func gameLookupError(err error, gameID uint) *Error {
	if errors.Is(err, ErrNotFound) {
		return notFoundError("Game does not exist", fmt.Sprintf("no game with id %d", gameID))
	}
	return databaseError(err)
}
