package engine

import (
	"context"
	"errors"
	"fmt"
)

// TravelResult is the outcome of a successful interplanetary move.
type TravelResult struct {
	Message      string     `json:"message"`
	FuelConsumed int        `json:"fuelConsumed"`
	TurnsElapsed int        `json:"turnsElapsed"`
	NewLocation  string     `json:"newLocation"`
	GameState    *GameState `json:"gameState"`
}

// Travel moves the game to another planet, burning fuel and advancing both
// turn counters by the travel time. Fuel consumption is recorded implicitly in
// the game row; no separate transaction row is written.
func (e *Engine) Travel(ctx context.Context, gameID, destinationID uint) (*TravelResult, *Error) {
	var result *TravelResult
	err := e.store.Atomic(ctx, func(tx Store) error {
		game, err := tx.GameForUpdate(ctx, gameID)
		if err != nil {
			return gameLookupError(err, gameID)
		}
		if destinationID == game.CurrentPlanetID {
			return &Error{
				Code:    ErrCodeAlreadyThere,
				Message: "Ship is already at that planet",
			}
		}
		if game.CurrentPlanet == nil {
			return databaseError(fmt.Errorf("game %d has no current planet loaded", gameID))
		}

		destination, err := tx.Planet(ctx, destinationID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return notFoundError("Planet does not exist", fmt.Sprintf("no planet with id %d", destinationID))
			}
			return err
		}

		cost := FuelCost(game.CurrentPlanet, destination)
		turns := TravelTime(game.CurrentPlanet, destination)
		if !hasEnoughFuel(game, cost) {
			return &Error{
				Code:    ErrCodeInsufficientFuel,
				Message: "Not enough fuel for this trip",
				Detail:  fmt.Sprintf("trip needs %d fuel, tank has %d", cost, game.Fuel),
			}
		}

		game.CurrentPlanetID = destination.ID
		consumeFuel(game, cost)
		game.CurrentTurn += turns
		game.TurnsUsed += turns
		if err := tx.SaveGame(ctx, game); err != nil {
			return err
		}

		state, err := e.buildState(ctx, tx, game)
		if err != nil {
			return err
		}
		result = &TravelResult{
			Message:      fmt.Sprintf("Arrived at %s after %d turns", destination.Name, turns),
			FuelConsumed: cost,
			TurnsElapsed: turns,
			NewLocation:  destination.Name,
			GameState:    state,
		}
		return nil
	})
	if err != nil {
		return nil, asEngineError(err)
	}

	e.logger.Info("travel completed", "game_id", gameID, "destination_id", destinationID, "fuel_consumed", result.FuelConsumed, "turns", result.TurnsElapsed)
	return result, nil
}

// TravelQuote prices a trip without performing it.
type TravelQuote struct {
	FuelCost                 int  `json:"fuelCost"`
	TimeCost                 int  `json:"timeCost"`
	CanTravel                bool `json:"canTravel"`
	RemainingFuelAfterTravel int  `json:"remainingFuelAfterTravel"`
}

// TravelCost quotes the fuel and turn cost of travelling to a planet. Quoting
// the current location returns a zero-cost quote with CanTravel false.
func (e *Engine) TravelCost(ctx context.Context, gameID, destinationID uint) (*TravelQuote, *Error) {
	game, err := e.store.Game(ctx, gameID)
	if err != nil {
		return nil, gameLookupError(err, gameID)
	}
	if destinationID == game.CurrentPlanetID {
		return &TravelQuote{CanTravel: false, RemainingFuelAfterTravel: game.Fuel}, nil
	}
	if game.CurrentPlanet == nil {
		return nil, databaseError(fmt.Errorf("game %d has no current planet loaded", gameID))
	}

	destination, err := e.store.Planet(ctx, destinationID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFoundError("Planet does not exist", fmt.Sprintf("no planet with id %d", destinationID))
		}
		return nil, databaseError(err)
	}

	cost := FuelCost(game.CurrentPlanet, destination)
	remaining := game.Fuel - cost
	if remaining < 0 {
		remaining = 0
	}
	return &TravelQuote{
		FuelCost:                 cost,
		TimeCost:                 TravelTime(game.CurrentPlanet, destination),
		CanTravel:                hasEnoughFuel(game, cost),
		RemainingFuelAfterTravel: remaining,
	}, nil
}
