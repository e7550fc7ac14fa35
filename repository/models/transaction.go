package models

import "time"

// Trade transaction types.
const (
	TransactionBuy  = "buy"
	TransactionSell = "sell"
)

// Transaction is the append-only audit row for one commodity trade. Rows are
// never updated or deleted.
type Transaction struct {
	ID           uint       `gorm:"column:transaction_id;primaryKey"`
	GameID       uint       `gorm:"column:game_id;index;not null"`
	Game         *Game      `gorm:"foreignKey:GameID"`
	PlanetID     uint       `gorm:"column:planet_id;not null"`
	Planet       *Planet    `gorm:"foreignKey:PlanetID"`
	CommodityID  uint       `gorm:"column:commodity_id;not null"`
	Commodity    *Commodity `gorm:"foreignKey:CommodityID"`
	Type         string     `gorm:"column:type;type:varchar(10);not null"`
	Quantity     int        `gorm:"column:quantity;not null"`
	PricePerUnit int        `gorm:"column:price_per_unit;not null"`
	TotalCost    int        `gorm:"column:total_cost;not null"`
	TurnNumber   int        `gorm:"column:turn_number;not null"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
}
