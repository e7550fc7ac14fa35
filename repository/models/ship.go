package models

// Ship is a hull the player picks when starting a game; it fixes the
// session's cargo capacity and fuel tank size.
type Ship struct {
	ID            uint   `gorm:"column:ship_id;primaryKey"`
	Name          string `gorm:"column:name;type:varchar(100);not null;uniqueIndex"`
	CargoCapacity int    `gorm:"column:cargo_capacity;not null"`
	MaxFuel       int    `gorm:"column:max_fuel;not null"`
	Cost          int    `gorm:"column:cost;not null;default:0"`
	Description   string `gorm:"column:description;type:text"`
}
