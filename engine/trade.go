package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/jdwd40/sorstar-cli-sub000/repository/models"
)

// TradeResult is the outcome of a successful buy or sell.
type TradeResult struct {
	Message   string     `json:"message"`
	Total     int        `json:"total"`
	GameState *GameState `json:"gameState"`
}

// Buy purchases quantity units of a commodity at the game's current planet,
// paying the planet's buy price per unit. The credit deduction, cargo upsert,
// turn increment and transaction row are committed as one unit; any failed
// precondition leaves the game untouched. Market stock is checked for listing
// only and is not decremented.
func (e *Engine) Buy(ctx context.Context, gameID, commodityID uint, quantity int) (*TradeResult, *Error) {
	if quantity <= 0 {
		return nil, validationError("quantity must be a positive integer")
	}

	var result *TradeResult
	err := e.store.Atomic(ctx, func(tx Store) error {
		game, err := tx.GameForUpdate(ctx, gameID)
		if err != nil {
			return gameLookupError(err, gameID)
		}

		entry, err := tx.MarketEntry(ctx, game.CurrentPlanetID, commodityID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return notFoundError("Commodity is not traded here", fmt.Sprintf("commodity %d has no market entry at planet %d", commodityID, game.CurrentPlanetID))
			}
			return err
		}

		totalCost := entry.BuyPrice * quantity
		if totalCost > game.Credits {
			return &Error{
				Code:    ErrCodeInsufficientFunds,
				Message: "Not enough credits",
				Detail:  fmt.Sprintf("purchase costs %d, game has %d credits", totalCost, game.Credits),
			}
		}

		cargo, err := tx.Cargo(ctx, gameID)
		if err != nil {
			return err
		}
		capacity := 0
		if game.Ship != nil {
			capacity = game.Ship.CargoCapacity
		}
		// Compared as headroom so an absurd quantity cannot overflow the sum.
		if quantity > capacity-cargoTotal(cargo) {
			return &Error{
				Code:    ErrCodeInsufficientSpace,
				Message: "Not enough cargo space",
				Detail:  fmt.Sprintf("hold has %d of %d units used", cargoTotal(cargo), capacity),
			}
		}

		game.Credits -= totalCost
		game.TurnsUsed++
		if err := tx.SaveGame(ctx, game); err != nil {
			return err
		}
		if err := tx.AdjustCargo(ctx, gameID, commodityID, quantity); err != nil {
			return err
		}
		if err := tx.AppendTransaction(ctx, &models.Transaction{
			GameID:       gameID,
			PlanetID:     game.CurrentPlanetID,
			CommodityID:  commodityID,
			Type:         models.TransactionBuy,
			Quantity:     quantity,
			PricePerUnit: entry.BuyPrice,
			TotalCost:    totalCost,
			TurnNumber:   game.CurrentTurn,
		}); err != nil {
			return err
		}

		state, err := e.buildState(ctx, tx, game)
		if err != nil {
			return err
		}
		result = &TradeResult{
			Message:   fmt.Sprintf("Bought %d units for %d credits", quantity, totalCost),
			Total:     totalCost,
			GameState: state,
		}
		return nil
	})
	if err != nil {
		return nil, asEngineError(err)
	}

	e.logger.Info("commodity purchased", "game_id", gameID, "commodity_id", commodityID, "quantity", quantity, "total_cost", result.Total)
	return result, nil
}

// Sell sells quantity units of a commodity from the game's cargo at the
// current planet's sell price. The cargo row is deleted when its quantity
// reaches zero.
func (e *Engine) Sell(ctx context.Context, gameID, commodityID uint, quantity int) (*TradeResult, *Error) {
	if quantity <= 0 {
		return nil, validationError("quantity must be a positive integer")
	}

	var result *TradeResult
	err := e.store.Atomic(ctx, func(tx Store) error {
		game, err := tx.GameForUpdate(ctx, gameID)
		if err != nil {
			return gameLookupError(err, gameID)
		}

		held, err := tx.CargoQuantity(ctx, gameID, commodityID)
		if err != nil {
			return err
		}
		if held < quantity {
			return &Error{
				Code:    ErrCodeInsufficientCargo,
				Message: "Not enough cargo to sell",
				Detail:  fmt.Sprintf("hold has %d units, tried to sell %d", held, quantity),
			}
		}

		entry, err := tx.MarketEntry(ctx, game.CurrentPlanetID, commodityID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return notFoundError("Commodity is not traded here", fmt.Sprintf("commodity %d has no market entry at planet %d", commodityID, game.CurrentPlanetID))
			}
			return err
		}

		totalEarned := entry.SellPrice * quantity
		game.Credits += totalEarned
		game.TurnsUsed++
		if err := tx.SaveGame(ctx, game); err != nil {
			return err
		}
		if err := tx.AdjustCargo(ctx, gameID, commodityID, -quantity); err != nil {
			return err
		}
		if err := tx.AppendTransaction(ctx, &models.Transaction{
			GameID:       gameID,
			PlanetID:     game.CurrentPlanetID,
			CommodityID:  commodityID,
			Type:         models.TransactionSell,
			Quantity:     quantity,
			PricePerUnit: entry.SellPrice,
			TotalCost:    totalEarned,
			TurnNumber:   game.CurrentTurn,
		}); err != nil {
			return err
		}

		state, err := e.buildState(ctx, tx, game)
		if err != nil {
			return err
		}
		result = &TradeResult{
			Message:   fmt.Sprintf("Sold %d units for %d credits", quantity, totalEarned),
			Total:     totalEarned,
			GameState: state,
		}
		return nil
	})
	if err != nil {
		return nil, asEngineError(err)
	}

	e.logger.Info("commodity sold", "game_id", gameID, "commodity_id", commodityID, "quantity", quantity, "total_earned", result.Total)
	return result, nil
}
