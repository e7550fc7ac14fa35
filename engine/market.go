package engine

import (
	"context"
	"errors"

	"github.com/jdwd40/sorstar-cli-sub000/repository/models"
)

// Fuel prices per planet type, credits per unit. Trade hubs sell cheap fuel;
// mining worlds gouge.
var typeFuelPrices = map[string]int{
	models.PlanetTypeTradeHub:     4,
	models.PlanetTypeAgricultural: 5,
	models.PlanetTypeIndustrial:   6,
	models.PlanetTypeMining:       7,
	models.PlanetTypeFrontier:     6,
}

const defaultFuelPrice = 5

// FuelPriceAt returns the per-unit fuel price at a planet. Distant planets
// sell at half the type price, rounded up, as an incentive to range out; that
// keeps every distant quote at least 20% below the non-distant type average.
func FuelPriceAt(planet *models.Planet) int {
	price, ok := typeFuelPrices[planet.Type]
	if !ok {
		price = defaultFuelPrice
	}
	if planet.Distant {
		price = (price + 1) / 2
	}
	return price
}

// Quote is one market row as shown to callers.
type Quote struct {
	CommodityID   uint   `json:"commodity_id"`
	CommodityName string `json:"commodity_name"`
	BuyPrice      int    `json:"buy_price"`
	SellPrice     int    `json:"sell_price"`
	Stock         int    `json:"stock"`
}

// Prices returns a planet's market quotes ordered by commodity name. A planet
// with no market rows yields an empty list; an unknown planet is an error.
func (e *Engine) Prices(ctx context.Context, planetID uint) ([]Quote, *Error) {
	if _, err := e.store.Planet(ctx, planetID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFoundError("Planet does not exist", "no planet with the given id")
		}
		return nil, databaseError(err)
	}

	entries, err := e.store.MarketEntries(ctx, planetID)
	if err != nil {
		return nil, databaseError(err)
	}

	quotes := make([]Quote, 0, len(entries))
	for _, entry := range entries {
		name := ""
		if entry.Commodity != nil {
			name = entry.Commodity.Name
		}
		quotes = append(quotes, Quote{
			CommodityID:   entry.CommodityID,
			CommodityName: name,
			BuyPrice:      entry.BuyPrice,
			SellPrice:     entry.SellPrice,
			Stock:         entry.Stock,
		})
	}
	return quotes, nil
}

// FuelQuote is a planet's fuel price as shown to callers.
type FuelQuote struct {
	PlanetID  uint   `json:"planetId"`
	Planet    string `json:"planet"`
	FuelPrice int    `json:"fuelPrice"`
}

// FuelPrice returns the fuel quote for a planet.
func (e *Engine) FuelPrice(ctx context.Context, planetID uint) (*FuelQuote, *Error) {
	planet, err := e.store.Planet(ctx, planetID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFoundError("Planet does not exist", "no planet with the given id")
		}
		return nil, databaseError(err)
	}
	return &FuelQuote{PlanetID: planet.ID, Planet: planet.Name, FuelPrice: FuelPriceAt(planet)}, nil
}
