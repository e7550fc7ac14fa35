package models

// Commodity is reference data for a tradeable good.
type Commodity struct {
	ID        uint   `gorm:"column:commodity_id;primaryKey"`
	Name      string `gorm:"column:name;type:varchar(100);not null;uniqueIndex"`
	BasePrice int    `gorm:"column:base_price;not null"`

	// Relationships
	Markets []Market `gorm:"foreignKey:CommodityID"`
}
