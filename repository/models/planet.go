package models

// Planet classifications. The type drives fuel pricing.
const (
	PlanetTypeTradeHub     = "Trade Hub"
	PlanetTypeAgricultural = "Agricultural"
	PlanetTypeIndustrial   = "Industrial"
	PlanetTypeMining       = "Mining"
	PlanetTypeFrontier     = "Frontier"
)

// Planet is immutable world data: a location on the 2-D map with a
// classification that drives fuel pricing.
type Planet struct {
	ID          uint   `gorm:"column:planet_id;primaryKey"`
	Name        string `gorm:"column:name;type:varchar(100);not null;uniqueIndex"`
	X           int    `gorm:"column:x;not null"`
	Y           int    `gorm:"column:y;not null"`
	Type        string `gorm:"column:type;type:varchar(50);not null"`
	Distant     bool   `gorm:"column:distant;default:false"`
	Description string `gorm:"column:description;type:text"`

	// Relationships
	Markets []Market `gorm:"foreignKey:PlanetID"`
}
