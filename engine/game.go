package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jdwd40/sorstar-cli-sub000/repository/models"
)

// StartingCredits is the bankroll every new game begins with.
const StartingCredits = 1000

// StartGame creates the session for a user from a chosen ship: full tank,
// starting credits, docked at the home planet. A user has at most one game.
func (e *Engine) StartGame(ctx context.Context, userID, shipID uint) (*GameState, *Error) {
	var state *GameState
	err := e.store.Atomic(ctx, func(tx Store) error {
		if _, err := tx.User(ctx, userID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return notFoundError("User does not exist", fmt.Sprintf("no user with id %d", userID))
			}
			return err
		}

		if existing, err := tx.GameByUser(ctx, userID); err == nil {
			return &Error{
				Code:    ErrCodeGameExists,
				Message: "User already has an active game",
				Detail:  fmt.Sprintf("game %d is in progress", existing.ID),
			}
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}

		ship, err := tx.Ship(ctx, shipID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return notFoundError("Ship does not exist", fmt.Sprintf("no ship with id %d", shipID))
			}
			return err
		}

		planets, err := tx.Planets(ctx)
		if err != nil {
			return err
		}
		if len(planets) == 0 {
			return databaseError(errors.New("universe has no planets seeded"))
		}
		home := planets[0]

		game := &models.Game{
			UserID:          userID,
			ShipID:          ship.ID,
			Ship:            ship,
			Credits:         StartingCredits,
			Fuel:            ship.MaxFuel,
			MaxFuel:         ship.MaxFuel,
			CurrentPlanetID: home.ID,
			CurrentTurn:     1,
		}
		if err := tx.CreateGame(ctx, game); err != nil {
			return err
		}

		state, err = e.buildState(ctx, tx, game)
		return err
	})
	if err != nil {
		return nil, asEngineError(err)
	}

	e.logger.Info("game started", "game_id", state.GameID, "user_id", userID, "ship_id", shipID)
	return state, nil
}

// PlanetListing is one row of the planet directory, including the local fuel
// price.
type PlanetListing struct {
	PlanetInfo
	FuelPrice int `json:"fuelPrice"`
}

// ListPlanets returns the full planet directory.
func (e *Engine) ListPlanets(ctx context.Context) ([]PlanetListing, *Error) {
	planets, err := e.store.Planets(ctx)
	if err != nil {
		return nil, databaseError(err)
	}
	listings := make([]PlanetListing, 0, len(planets))
	for _, p := range planets {
		listings = append(listings, PlanetListing{
			PlanetInfo: PlanetInfo{ID: p.ID, Name: p.Name, Type: p.Type, X: p.X, Y: p.Y, Distant: p.Distant},
			FuelPrice:  FuelPriceAt(&p),
		})
	}
	return listings, nil
}

// ShipListing is one row of the ship catalog.
type ShipListing struct {
	ShipID        uint   `json:"shipId"`
	Name          string `json:"name"`
	CargoCapacity int    `json:"cargoCapacity"`
	MaxFuel       int    `json:"maxFuel"`
	Cost          int    `json:"cost"`
	Description   string `json:"description"`
}

// ListShips returns the ship catalog for the start-game screen.
func (e *Engine) ListShips(ctx context.Context) ([]ShipListing, *Error) {
	ships, err := e.store.Ships(ctx)
	if err != nil {
		return nil, databaseError(err)
	}
	listings := make([]ShipListing, 0, len(ships))
	for _, s := range ships {
		listings = append(listings, ShipListing{
			ShipID:        s.ID,
			Name:          s.Name,
			CargoCapacity: s.CargoCapacity,
			MaxFuel:       s.MaxFuel,
			Cost:          s.Cost,
			Description:   s.Description,
		})
	}
	return listings, nil
}

// HistoryEntry is one row of the merged economic audit trail. Fuel purchases
// carry no commodity or turn number.
type HistoryEntry struct {
	Type          string `json:"type"`
	PlanetID      uint   `json:"planetId"`
	CommodityID   uint   `json:"commodityId,omitempty"`
	CommodityName string `json:"commodityName,omitempty"`
	Quantity      int    `json:"quantity"`
	PricePerUnit  int    `json:"pricePerUnit"`
	TotalCost     int    `json:"totalCost"`
	TurnNumber    int    `json:"turnNumber,omitempty"`
	Timestamp     int64  `json:"timestamp"`
}

// History returns the game's trade and fuel transaction log merged, newest
// first.
func (e *Engine) History(ctx context.Context, gameID uint) ([]HistoryEntry, *Error) {
	if _, err := e.store.Game(ctx, gameID); err != nil {
		return nil, gameLookupError(err, gameID)
	}

	trades, err := e.store.Transactions(ctx, gameID)
	if err != nil {
		return nil, databaseError(err)
	}
	fuel, err := e.store.FuelTransactions(ctx, gameID)
	if err != nil {
		return nil, databaseError(err)
	}

	entries := make([]HistoryEntry, 0, len(trades)+len(fuel))
	for _, t := range trades {
		name := ""
		if t.Commodity != nil {
			name = t.Commodity.Name
		}
		entries = append(entries, HistoryEntry{
			Type:          t.Type,
			PlanetID:      t.PlanetID,
			CommodityID:   t.CommodityID,
			CommodityName: name,
			Quantity:      t.Quantity,
			PricePerUnit:  t.PricePerUnit,
			TotalCost:     t.TotalCost,
			TurnNumber:    t.TurnNumber,
			Timestamp:     t.CreatedAt.Unix(),
		})
	}
	for _, f := range fuel {
		entries = append(entries, HistoryEntry{
			Type:         "fuel",
			PlanetID:     f.PlanetID,
			Quantity:     f.Quantity,
			PricePerUnit: f.PricePerUnit,
			TotalCost:    f.TotalCost,
			Timestamp:    f.CreatedAt.Unix(),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
	return entries, nil
}
