package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/jdwd40/sorstar-cli-sub000/repository/models"
)

// FuelReceipt is the outcome of a successful fuel purchase.
type FuelReceipt struct {
	FuelPurchased    int        `json:"fuelPurchased"`
	PricePerUnit     int        `json:"pricePerUnit"`
	TotalCost        int        `json:"totalCost"`
	RemainingCredits int        `json:"remainingCredits"`
	NewFuelLevel     int        `json:"newFuelLevel"`
	GameState        *GameState `json:"gameState"`
}

// PurchaseFuel buys quantity fuel units at the game's current planet. Unlike
// commodity trades, refuelling is a free action and consumes no turn. The
// planetID argument, when non-zero, must match the game's location; callers
// pass it through from the request body.
func (e *Engine) PurchaseFuel(ctx context.Context, gameID, planetID uint, quantity int) (*FuelReceipt, *Error) {
	if quantity <= 0 {
		return nil, validationError("quantity must be a positive integer")
	}

	var receipt *FuelReceipt
	err := e.store.Atomic(ctx, func(tx Store) error {
		game, err := tx.GameForUpdate(ctx, gameID)
		if err != nil {
			return gameLookupError(err, gameID)
		}
		if planetID != 0 && planetID != game.CurrentPlanetID {
			return validationError("fuel can only be bought at the ship's current planet")
		}
		if game.CurrentPlanet == nil {
			return databaseError(fmt.Errorf("game %d has no current planet loaded", gameID))
		}

		// Compared as headroom so an absurd quantity cannot overflow the sum.
		if quantity > game.MaxFuel-game.Fuel {
			return &Error{
				Code:    ErrCodeFuelCapacity,
				Message: "Fuel tank capacity exceeded",
				Detail:  fmt.Sprintf("tank holds %d of %d units, tried to add %d", game.Fuel, game.MaxFuel, quantity),
			}
		}

		pricePerUnit := FuelPriceAt(game.CurrentPlanet)
		totalCost := pricePerUnit * quantity
		if totalCost > game.Credits {
			return &Error{
				Code:    ErrCodeInsufficientFunds,
				Message: "Not enough credits",
				Detail:  fmt.Sprintf("fuel costs %d, game has %d credits", totalCost, game.Credits),
			}
		}

		game.Credits -= totalCost
		addFuel(game, quantity)
		if err := tx.SaveGame(ctx, game); err != nil {
			return err
		}
		if err := tx.AppendFuelTransaction(ctx, &models.FuelTransaction{
			GameID:       gameID,
			PlanetID:     game.CurrentPlanetID,
			Quantity:     quantity,
			PricePerUnit: pricePerUnit,
			TotalCost:    totalCost,
		}); err != nil {
			return err
		}

		state, err := e.buildState(ctx, tx, game)
		if err != nil {
			return err
		}
		receipt = &FuelReceipt{
			FuelPurchased:    quantity,
			PricePerUnit:     pricePerUnit,
			TotalCost:        totalCost,
			RemainingCredits: game.Credits,
			NewFuelLevel:     game.Fuel,
			GameState:        state,
		}
		return nil
	})
	if err != nil {
		return nil, asEngineError(err)
	}

	e.logger.Info("fuel purchased", "game_id", gameID, "quantity", quantity, "total_cost", receipt.TotalCost)
	return receipt, nil
}

// addFuel and consumeFuel clamp the tank to [0, MaxFuel]; they never fail.
// Validation happens before either is called.
func addFuel(game *models.Game, amount int) {
	game.Fuel += amount
	if game.Fuel > game.MaxFuel {
		game.Fuel = game.MaxFuel
	}
}

func consumeFuel(game *models.Game, amount int) {
	game.Fuel -= amount
	if game.Fuel < 0 {
		game.Fuel = 0
	}
}

func hasEnoughFuel(game *models.Game, amount int) bool {
	return game.Fuel >= amount
}

// FuelReport is the gauge view of a game's tank.
type FuelReport struct {
	CurrentFuel    int     `json:"currentFuel"`
	MaxFuel        int     `json:"maxFuel"`
	FuelPercentage float64 `json:"fuelPercentage"`
	FuelStatus     string  `json:"fuelStatus"`
	Efficiency     int     `json:"efficiency"`
	Range          int     `json:"range"`
}

// FuelStatus reports the tank level, a coarse status word, the burn rate per
// turn and the distance still reachable on the current tank.
func (e *Engine) FuelStatus(ctx context.Context, gameID uint) (*FuelReport, *Error) {
	game, err := e.store.Game(ctx, gameID)
	if err != nil {
		return nil, gameLookupError(err, gameID)
	}

	percentage := 0.0
	if game.MaxFuel > 0 {
		percentage = math.Round(float64(game.Fuel)/float64(game.MaxFuel)*1000) / 10
	}

	return &FuelReport{
		CurrentFuel:    game.Fuel,
		MaxFuel:        game.MaxFuel,
		FuelPercentage: percentage,
		FuelStatus:     fuelStatusWord(percentage),
		Efficiency:     FuelPerTurn,
		Range:          game.Fuel / FuelPerTurn * DistancePerTurn,
	}, nil
}

func fuelStatusWord(percentage float64) string {
	switch {
	case percentage >= 75:
		return "Full"
	case percentage >= 50:
		return "Good"
	case percentage >= 25:
		return "Low"
	case percentage > 0:
		return "Critical"
	default:
		return "Empty"
	}
}
