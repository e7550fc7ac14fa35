package models

import "time"

// Game is the mutable session aggregate: credits, fuel, location and turn
// counters. Every economic operation reads and writes this row inside one
// database transaction.
type Game struct {
	ID              uint      `gorm:"column:game_id;primaryKey"`
	UserID          uint      `gorm:"column:user_id;index;not null"`
	User            *User     `gorm:"foreignKey:UserID"`
	ShipID          uint      `gorm:"column:ship_id;not null"`
	Ship            *Ship     `gorm:"foreignKey:ShipID"`
	Credits         int       `gorm:"column:credits;not null;check:credits >= 0"`
	Fuel            int       `gorm:"column:fuel;not null;check:fuel >= 0"`
	MaxFuel         int       `gorm:"column:max_fuel;not null"`
	CurrentPlanetID uint      `gorm:"column:current_planet_id;not null"`
	CurrentPlanet   *Planet   `gorm:"foreignKey:CurrentPlanetID"`
	TurnsUsed       int       `gorm:"column:turns_used;not null;default:0"`
	CurrentTurn     int       `gorm:"column:current_turn;not null;default:1"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Cargo            []Cargo           `gorm:"foreignKey:GameID"`
	Transactions     []Transaction     `gorm:"foreignKey:GameID"`
	FuelTransactions []FuelTransaction `gorm:"foreignKey:GameID"`
}
