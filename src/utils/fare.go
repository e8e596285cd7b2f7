package utils

import (
	"math"
	"ticketpro/src/types"
)

const BASE_FARE = 5000

const ROUND_TRIP_MULTIPLIER = 1.8

type TravelClassInfo struct {
	Class       types.TravelClass `json:"class"`
	Name        string            `json:"name"`
	Multiplier  float64           `json:"multiplier"`
	Description string            `json:"description"`
}

var travelClasses = []TravelClassInfo{
	{Class: types.ECONOMY, Name: "Economy", Multiplier: 1, Description: "Standard seating with basic amenities"},
	{Class: types.BUSINESS, Name: "Business", Multiplier: 1.8, Description: "Premium seating with enhanced comfort"},
	{Class: types.FIRST, Name: "First Class", Multiplier: 2.5, Description: "Luxury seating with full service"},
}

// TravelClasses returns the class catalogue ordered from cheapest to dearest.
func TravelClasses() []TravelClassInfo {
	out := make([]TravelClassInfo, len(travelClasses))
	copy(out, travelClasses)
	return out
}

func ClassMultiplier(class types.TravelClass) float64 {
	for _, c := range travelClasses {
		if c.Class == class {
			return c.Multiplier
		}
	}
	return 1
}

func TripMultiplier(tripType types.TripType) float64 {
	if tripType == types.ROUND_TRIP {
		return ROUND_TRIP_MULTIPLIER
	}
	return 1
}

// CalculateFare prices a booking in whole currency units. passengerCount
// includes the primary passenger and must be at least 1.
func CalculateFare(class types.TravelClass, passengerCount int, tripType types.TripType) int {
	fare := BASE_FARE * ClassMultiplier(class) * float64(passengerCount) * TripMultiplier(tripType)
	return int(math.Round(fare))
}
