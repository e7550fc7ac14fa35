package models

// Cargo holds the quantity of one commodity in one game's hold. Rows with
// quantity at or below zero are deleted rather than kept around.
type Cargo struct {
	ID          uint       `gorm:"column:cargo_id;primaryKey"`
	GameID      uint       `gorm:"column:game_id;index;uniqueIndex:idx_cargo_game_commodity;not null"`
	Game        *Game      `gorm:"foreignKey:GameID"`
	CommodityID uint       `gorm:"column:commodity_id;uniqueIndex:idx_cargo_game_commodity;not null"`
	Commodity   *Commodity `gorm:"foreignKey:CommodityID"`
	Quantity    int        `gorm:"column:quantity;not null;check:quantity > 0"`
}

// TableName keeps the table singular to match the persisted layout.
func (Cargo) TableName() string { return "cargo" }
