package models

import "time"

// FuelTransaction is the append-only audit row for one fuel purchase.
type FuelTransaction struct {
	ID           uint      `gorm:"column:fuel_transaction_id;primaryKey"`
	GameID       uint      `gorm:"column:game_id;index;not null"`
	Game         *Game     `gorm:"foreignKey:GameID"`
	PlanetID     uint      `gorm:"column:planet_id;not null"`
	Planet       *Planet   `gorm:"foreignKey:PlanetID"`
	Quantity     int       `gorm:"column:quantity;not null"`
	PricePerUnit int       `gorm:"column:price_per_unit;not null"`
	TotalCost    int       `gorm:"column:total_cost;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
