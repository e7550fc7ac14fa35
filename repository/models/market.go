package models

// Market is a per-planet, per-commodity price quote. Stock is informational
// and is not decremented by purchases.
type Market struct {
	ID          uint       `gorm:"column:market_id;primaryKey"`
	PlanetID    uint       `gorm:"column:planet_id;index;uniqueIndex:idx_market_planet_commodity;not null"`
	Planet      *Planet    `gorm:"foreignKey:PlanetID"`
	CommodityID uint       `gorm:"column:commodity_id;uniqueIndex:idx_market_planet_commodity;not null"`
	Commodity   *Commodity `gorm:"foreignKey:CommodityID"`
	BuyPrice    int        `gorm:"column:buy_price;not null"`
	SellPrice   int        `gorm:"column:sell_price;not null"`
	Stock       int        `gorm:"column:stock;not null;default:0"`
}
