package utils

import (
	"testing"
	"ticketpro/src/types"

	"github.com/stretchr/testify/assert"
)

func TestCalculateFare(t *testing.T) {
	cases := []struct {
		class    types.TravelClass
		count    int
		tripType types.TripType
		want     int
	}{
		{types.ECONOMY, 1, types.ONE_WAY, 5000},
		{types.BUSINESS, 1, types.ONE_WAY, 9000},
		{types.FIRST, 1, types.ONE_WAY, 12500},
		{types.ECONOMY, 3, types.ONE_WAY, 15000},
		{types.ECONOMY, 1, types.ROUND_TRIP, 9000},
		{types.BUSINESS, 2, types.ONE_WAY, 18000},
		{types.FIRST, 2, types.ROUND_TRIP, 45000},
		{types.BUSINESS, 1, types.ROUND_TRIP, 16200},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CalculateFare(c.class, c.count, c.tripType), "%s x%d %s", c.class, c.count, c.tripType)
	}
}

func TestCalculateFareDeterministic(t *testing.T) {
	first := CalculateFare(types.BUSINESS, 4, types.ROUND_TRIP)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, CalculateFare(types.BUSINESS, 4, types.ROUND_TRIP))
	}
}

func TestCalculateFareMonotonic(t *testing.T) {
	for _, class := range []types.TravelClass{types.ECONOMY, types.BUSINESS, types.FIRST} {
		for _, trip := range []types.TripType{types.ONE_WAY, types.ROUND_TRIP} {
			prev := 0
			for n := 1; n <= 6; n++ {
				fare := CalculateFare(class, n, trip)
				assert.Greater(t, fare, prev)
				prev = fare
			}
		}
	}
	assert.Less(t, CalculateFare(types.ECONOMY, 2, types.ONE_WAY), CalculateFare(types.BUSINESS, 2, types.ONE_WAY))
	assert.Less(t, CalculateFare(types.BUSINESS, 2, types.ONE_WAY), CalculateFare(types.FIRST, 2, types.ONE_WAY))
	assert.Less(t, CalculateFare(types.FIRST, 2, types.ONE_WAY), CalculateFare(types.FIRST, 2, types.ROUND_TRIP))
}

func TestTravelClasses(t *testing.T) {
	classes := TravelClasses()
	assert.Len(t, classes, 3)
	assert.Equal(t, types.ECONOMY, classes[0].Class)
	assert.Equal(t, "First Class", classes[2].Name)

	classes[0].Multiplier = 99
	assert.Equal(t, float64(1), ClassMultiplier(types.ECONOMY))
}
