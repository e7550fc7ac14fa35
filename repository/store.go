package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jdwd40/sorstar-cli-sub000/engine"
	"github.com/jdwd40/sorstar-cli-sub000/repository/models"
)

var _ engine.Store = (*Repository)(nil)

// Atomic runs fn inside one database transaction. The store passed to fn is
// bound to that transaction; any error rolls the whole unit back.
func (r *Repository) Atomic(ctx context.Context, fn func(tx engine.Store) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx, logger: r.logger})
	})
}

func (r *Repository) Game(ctx context.Context, gameID uint) (*models.Game, error) {
	var game models.Game
	err := r.db.WithContext(ctx).
		Preload("Ship").Preload("CurrentPlanet").
		First(&game, "game_id = ?", gameID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &game, nil
}

// GameForUpdate reads the game row with SELECT ... FOR UPDATE so concurrent
// operations against the same session serialize for the rest of the enclosing
// transaction.
func (r *Repository) GameForUpdate(ctx context.Context, gameID uint) (*models.Game, error) {
	var game models.Game
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Ship").Preload("CurrentPlanet").
		First(&game, "game_id = ?", gameID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &game, nil
}

func (r *Repository) GameByUser(ctx context.Context, userID uint) (*models.Game, error) {
	var game models.Game
	err := r.db.WithContext(ctx).
		Preload("Ship").Preload("CurrentPlanet").
		First(&game, "user_id = ?", userID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &game, nil
}

func (r *Repository) CreateGame(ctx context.Context, game *models.Game) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(game).Error)
}

func (r *Repository) SaveGame(ctx context.Context, game *models.Game) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(game).Error)
}

func (r *Repository) User(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *Repository) Ship(ctx context.Context, shipID uint) (*models.Ship, error) {
	var ship models.Ship
	if err := r.db.WithContext(ctx).First(&ship, "ship_id = ?", shipID).Error; err != nil {
		return nil, translate(err)
	}
	return &ship, nil
}

func (r *Repository) Ships(ctx context.Context) ([]models.Ship, error) {
	var ships []models.Ship
	if err := r.db.WithContext(ctx).Order("ship_id").Find(&ships).Error; err != nil {
		return nil, translate(err)
	}
	return ships, nil
}

func (r *Repository) Planet(ctx context.Context, planetID uint) (*models.Planet, error) {
	var planet models.Planet
	if err := r.db.WithContext(ctx).First(&planet, "planet_id = ?", planetID).Error; err != nil {
		return nil, translate(err)
	}
	return &planet, nil
}

func (r *Repository) Planets(ctx context.Context) ([]models.Planet, error) {
	var planets []models.Planet
	if err := r.db.WithContext(ctx).Order("planet_id").Find(&planets).Error; err != nil {
		return nil, translate(err)
	}
	return planets, nil
}

func (r *Repository) Commodity(ctx context.Context, commodityID uint) (*models.Commodity, error) {
	var commodity models.Commodity
	if err := r.db.WithContext(ctx).First(&commodity, "commodity_id = ?", commodityID).Error; err != nil {
		return nil, translate(err)
	}
	return &commodity, nil
}

func (r *Repository) MarketEntry(ctx context.Context, planetID, commodityID uint) (*models.Market, error) {
	var entry models.Market
	err := r.db.WithContext(ctx).
		Preload("Commodity").
		Where("planet_id = ? AND commodity_id = ?", planetID, commodityID).
		First(&entry).Error
	if err != nil {
		return nil, translate(err)
	}
	return &entry, nil
}

func (r *Repository) MarketEntries(ctx context.Context, planetID uint) ([]models.Market, error) {
	var entries []models.Market
	err := r.db.WithContext(ctx).
		Joins("JOIN commodities ON commodities.commodity_id = markets.commodity_id").
		Where("markets.planet_id = ?", planetID).
		Order("commodities.name").
		Preload("Commodity").
		Find(&entries).Error
	if err != nil {
		return nil, translate(err)
	}
	return entries, nil
}

func (r *Repository) Cargo(ctx context.Context, gameID uint) ([]models.Cargo, error) {
	var cargo []models.Cargo
	err := r.db.WithContext(ctx).
		Preload("Commodity").
		Where("game_id = ?", gameID).
		Order("commodity_id").
		Find(&cargo).Error
	if err != nil {
		return nil, translate(err)
	}
	return cargo, nil
}

func (r *Repository) CargoQuantity(ctx context.Context, gameID, commodityID uint) (int, error) {
	var row models.Cargo
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND commodity_id = ?", gameID, commodityID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, translate(err)
	}
	return row.Quantity, nil
}

// AdjustCargo applies a signed quantity delta to one hold line: it creates the
// row on first purchase, and deletes it when the quantity drops to zero or
// below.
func (r *Repository) AdjustCargo(ctx context.Context, gameID, commodityID uint, delta int) error {
	var row models.Cargo
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("game_id = ? AND commodity_id = ?", gameID, commodityID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if delta <= 0 {
			return engine.ErrNotFound
		}
		return translate(r.db.WithContext(ctx).Create(&models.Cargo{
			GameID:      gameID,
			CommodityID: commodityID,
			Quantity:    delta,
		}).Error)
	}
	if err != nil {
		return translate(err)
	}

	row.Quantity += delta
	if row.Quantity <= 0 {
		return translate(r.db.WithContext(ctx).Delete(&models.Cargo{}, "cargo_id = ?", row.ID).Error)
	}
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(&row).Error)
}

func (r *Repository) AppendTransaction(ctx context.Context, tx *models.Transaction) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(tx).Error)
}

func (r *Repository) AppendFuelTransaction(ctx context.Context, tx *models.FuelTransaction) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(tx).Error)
}

func (r *Repository) Transactions(ctx context.Context, gameID uint) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Commodity").
		Where("game_id = ?", gameID).
		Order("created_at DESC").
		Find(&txs).Error
	if err != nil {
		return nil, translate(err)
	}
	return txs, nil
}

func (r *Repository) FuelTransactions(ctx context.Context, gameID uint) ([]models.FuelTransaction, error) {
	var txs []models.FuelTransaction
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("created_at DESC").
		Find(&txs).Error
	if err != nil {
		return nil, translate(err)
	}
	return txs, nil
}
