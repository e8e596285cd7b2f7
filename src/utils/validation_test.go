package utils

import (
	"testing"
	"ticketpro/src/types"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	assert.True(t, ValidateName("John Doe"))
	assert.True(t, ValidateName("  Al  "))
	assert.False(t, ValidateName("J"))
	assert.False(t, ValidateName("John3"))
	assert.False(t, ValidateName("O'Brien"))
	assert.False(t, ValidateName(""))
}

func TestValidateAge(t *testing.T) {
	assert.True(t, ValidateAge(1))
	assert.True(t, ValidateAge(120))
	assert.False(t, ValidateAge(0))
	assert.False(t, ValidateAge(121))
	assert.False(t, ValidateAge(-5))
}

func TestValidatePassportNumber(t *testing.T) {
	assert.True(t, ValidatePassportNumber("P123456789"))
	assert.True(t, ValidatePassportNumber("ab1234"))
	assert.False(t, ValidatePassportNumber("AB12"))
	assert.False(t, ValidatePassportNumber("AB-123456"))
	assert.False(t, ValidatePassportNumber("A1234567890123"))
}

func validBookingBody(now time.Time) *types.CreateBookingRequestBody {
	return &types.CreateBookingRequestBody{
		PassengerName:  "John Doe",
		PassportNumber: "P123456789",
		Age:            35,
		From:           "Mumbai",
		To:             "Delhi",
		Date:           now.AddDate(0, 0, 7).Format(DATE_FORMAT),
		Time:           "10:00",
		TripType:       types.ONE_WAY,
		Class:          types.ECONOMY,
	}
}

func TestValidateBookingFormValid(t *testing.T) {
	now := time.Now()
	body := validBookingBody(now)
	body.Passengers = []types.PassengerRequestBody{
		{Name: "Jane Doe", Age: 32, Gender: types.GENDER_FEMALE, IDType: types.ID_PASSPORT, IDNumber: "P987654321"},
	}
	assert.Empty(t, validateBookingFormAt(body, now))
	assert.Empty(t, ValidateBookingForm(validBookingBody(time.Now())))
}

func TestValidateBookingFormFieldErrors(t *testing.T) {
	now := time.Now()
	body := validBookingBody(now)
	body.PassengerName = "J"
	body.PassportNumber = "AB12"
	body.Age = 0
	body.Class = "COACH"

	errs := validateBookingFormAt(body, now)
	assert.Contains(t, errs, "passenger_name")
	assert.Contains(t, errs, "passport_number")
	assert.Equal(t, "Valid age is required (1-120)", errs["age"])
	assert.Contains(t, errs, "class")
	assert.NotContains(t, errs, "to")
}

func TestValidateBookingFormSameCity(t *testing.T) {
	now := time.Now()
	body := validBookingBody(now)
	body.To = body.From

	errs := validateBookingFormAt(body, now)
	assert.Equal(t, "Destination must be different from departure", errs["to"])
}

func TestValidateBookingFormUnknownCity(t *testing.T) {
	now := time.Now()
	body := validBookingBody(now)
	body.From = "Zürich"
	body.To = "mumbai"

	errs := validateBookingFormAt(body, now)
	assert.Equal(t, "Departure city must be a city from the catalogue", errs["from"])
	assert.Equal(t, "Destination city must be a city from the catalogue", errs["to"])

	body.From = "   "
	assert.Equal(t, "Departure city is required", validateBookingFormAt(body, now)["from"])
}

func TestIsCity(t *testing.T) {
	for _, c := range Cities() {
		assert.True(t, IsCity(c), c)
	}
	assert.False(t, IsCity("Atlantis"))
	assert.False(t, IsCity(""))
}

func TestValidateBookingFormRoundTrip(t *testing.T) {
	now := time.Now()
	body := validBookingBody(now)
	body.TripType = types.ROUND_TRIP

	errs := validateBookingFormAt(body, now)
	assert.Equal(t, "Return date is required", errs["return_date"])
	assert.Equal(t, "Return time is required", errs["return_time"])

	body.ReturnDate = now.AddDate(0, 0, 3).Format(DATE_FORMAT)
	body.ReturnTime = "18:30"
	errs = validateBookingFormAt(body, now)
	assert.Equal(t, "Return date must be after departure date", errs["return_date"])

	body.ReturnDate = body.Date
	assert.Empty(t, validateBookingFormAt(body, now))
}

func TestValidateBookingFormDateWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	body := validBookingBody(now)

	body.Date = "2026-03-09"
	assert.Equal(t, "Travel date cannot be in the past", validateBookingFormAt(body, now)["date"])

	body.Date = "2027-03-11"
	assert.Equal(t, "Travel date must be within the next 12 months", validateBookingFormAt(body, now)["date"])

	body.Date = "2026-03-10"
	assert.Empty(t, validateBookingFormAt(body, now))

	body.Date = "10/03/2026"
	assert.Equal(t, "Travel date must be a date in YYYY-MM-DD format", validateBookingFormAt(body, now)["date"])
}

func TestValidateBookingFormPassengers(t *testing.T) {
	now := time.Now()
	body := validBookingBody(now)
	body.Passengers = []types.PassengerRequestBody{
		{Name: "Jane Doe", Age: 32, Gender: types.GENDER_FEMALE, IDType: types.ID_PASSPORT, IDNumber: "P987654321"},
		{Name: " ", Age: 200, Gender: types.GENDER_MALE, IDType: types.ID_NATIONAL_ID, IDNumber: ""},
	}

	errs := validateBookingFormAt(body, now)
	assert.Len(t, errs, 3)
	assert.Equal(t, "Passenger name is required", errs["passenger_1_name"])
	assert.Equal(t, "Valid age is required (1-120)", errs["passenger_1_age"])
	assert.Equal(t, "ID number is required", errs["passenger_1_id"])
}

func TestValidateBookingFormNil(t *testing.T) {
	assert.Contains(t, ValidateBookingForm(nil), "form")
}
