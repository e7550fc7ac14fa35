package engine

import (
	"math"

	"github.com/jdwd40/sorstar-cli-sub000/repository/models"
)

// Travel constants: a ship covers 10 distance units per turn and burns 5 fuel
// units per turn of travel.
const (
	DistancePerTurn = 10.0
	FuelPerTurn     = 5
)

// Distance returns the Euclidean distance between two planets' coordinates.
// It is symmetric and zero for identical planets.
func Distance(a, b *models.Planet) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

// TravelTime returns the number of turns a trip between two planets takes.
func TravelTime(a, b *models.Planet) int {
	return int(math.Ceil(Distance(a, b) / DistancePerTurn))
}

// FuelCost returns the fuel units a trip between two planets consumes.
func FuelCost(a, b *models.Planet) int {
	return TravelTime(a, b) * FuelPerTurn
}
