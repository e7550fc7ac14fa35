package engine

import (
	"context"
	"errors"

	"github.com/jdwd40/sorstar-cli-sub000/repository/models"
)

// ErrNotFound is returned by store lookups for rows that do not exist. The
// engine translates it into an ENTITY_NOT_FOUND error for callers.
var ErrNotFound = errors.New("record not found")

// Store is the persistence boundary the engine operates through. Mutating
// operations run their whole read-validate-write sequence inside Atomic so a
// failure at any step leaves nothing behind.
//
// Game and GameForUpdate return the session with its Ship and CurrentPlanet
// populated; GameForUpdate additionally holds a row lock on the game for the
// rest of the enclosing transaction, serializing concurrent operations against
// the same session.
type Store interface {
	Atomic(ctx context.Context, fn func(tx Store) error) error

	Game(ctx context.Context, gameID uint) (*models.Game, error)
	GameForUpdate(ctx context.Context, gameID uint) (*models.Game, error)
	GameByUser(ctx context.Context, userID uint) (*models.Game, error)
	CreateGame(ctx context.Context, game *models.Game) error
	SaveGame(ctx context.Context, game *models.Game) error

	User(ctx context.Context, userID uint) (*models.User, error)
	Ship(ctx context.Context, shipID uint) (*models.Ship, error)
	Ships(ctx context.Context) ([]models.Ship, error)
	Planet(ctx context.Context, planetID uint) (*models.Planet, error)
	Planets(ctx context.Context) ([]models.Planet, error)
	Commodity(ctx context.Context, commodityID uint) (*models.Commodity, error)

	// MarketEntries returns a planet's quotes ordered by commodity name, each
	// with its Commodity populated.
	MarketEntry(ctx context.Context, planetID, commodityID uint) (*models.Market, error)
	MarketEntries(ctx context.Context, planetID uint) ([]models.Market, error)

	// Cargo returns a game's hold contents with Commodity populated.
	// AdjustCargo upserts the row for delta > 0 and deletes it when the
	// resulting quantity drops to zero or below.
	Cargo(ctx context.Context, gameID uint) ([]models.Cargo, error)
	CargoQuantity(ctx context.Context, gameID, commodityID uint) (int, error)
	AdjustCargo(ctx context.Context, gameID, commodityID uint, delta int) error

	AppendTransaction(ctx context.Context, tx *models.Transaction) error
	AppendFuelTransaction(ctx context.Context, tx *models.FuelTransaction) error
	Transactions(ctx context.Context, gameID uint) ([]models.Transaction, error)
	FuelTransactions(ctx context.Context, gameID uint) ([]models.FuelTransaction, error)
}
