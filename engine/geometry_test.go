package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jdwd40/sorstar-cli-sub000/repository/models"
)

func TestDistance(t *testing.T) {
	origin := &models.Planet{X: 0, Y: 0}
	kessler := &models.Planet{X: 100, Y: 50}

	assert.InDelta(t, 111.803, Distance(origin, kessler), 0.001)
	assert.Equal(t, Distance(origin, kessler), Distance(kessler, origin))
	assert.Equal(t, 0.0, Distance(origin, origin))
}

func TestTravelTimeRoundsUp(t *testing.T) {
	tests := []struct {
		name  string
		from  *models.Planet
		to    *models.Planet
		turns int
		fuel  int
	}{
		{
			name:  "partial turn rounds up",
			from:  &models.Planet{X: 0, Y: 0},
			to:    &models.Planet{X: 100, Y: 50},
			turns: 12,
			fuel:  60,
		},
		{
			name:  "exact multiple does not round",
			from:  &models.Planet{X: 0, Y: 0},
			to:    &models.Planet{X: 30, Y: 40},
			turns: 5,
			fuel:  25,
		},
		{
			name:  "short hop costs one turn",
			from:  &models.Planet{X: 0, Y: 0},
			to:    &models.Planet{X: 3, Y: 4},
			turns: 1,
			fuel:  5,
		},
		{
			name:  "same location is free",
			from:  &models.Planet{X: 7, Y: -2},
			to:    &models.Planet{X: 7, Y: -2},
			turns: 0,
			fuel:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.turns, TravelTime(tt.from, tt.to))
			assert.Equal(t, tt.fuel, FuelCost(tt.from, tt.to))
		})
	}
}
