package types

import (
	"time"
)

type Timestamps struct {
	CreatedAt time.Time `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
}

type TripType string

const (
	ONE_WAY    TripType = "ONE_WAY"
	ROUND_TRIP TripType = "ROUND_TRIP"
)

func (t TripType) IsValid() bool {
	return t == ONE_WAY || t == ROUND_TRIP
}

type TravelClass string

const (
	ECONOMY  TravelClass = "ECONOMY"
	BUSINESS TravelClass = "BUSINESS"
	FIRST    TravelClass = "FIRST"
)

func (c TravelClass) IsValid() bool {
	switch c {
	case ECONOMY, BUSINESS, FIRST:
		return true
	}
	return false
}

type TicketStatus string

const (
	TICKET_CONFIRMED TicketStatus = "CONFIRMED"
	TICKET_PENDING   TicketStatus = "PENDING"
	TICKET_CANCELLED TicketStatus = "CANCELLED"
)

func (s TicketStatus) IsValid() bool {
	switch s {
	case TICKET_CONFIRMED, TICKET_PENDING, TICKET_CANCELLED:
		return true
	}
	return false
}

type Gender string

const (
	GENDER_MALE   Gender = "Male"
	GENDER_FEMALE Gender = "Female"
	GENDER_OTHER  Gender = "Other"
)

func (g Gender) IsValid() bool {
	switch g {
	case GENDER_MALE, GENDER_FEMALE, GENDER_OTHER:
		return true
	}
	return false
}

type IDType string

const (
	ID_PASSPORT        IDType = "Passport"
	ID_NATIONAL_ID     IDType = "National ID"
	ID_DRIVING_LICENSE IDType = "Driving License"
)

func (i IDType) IsValid() bool {
	switch i {
	case ID_PASSPORT, ID_NATIONAL_ID, ID_DRIVING_LICENSE:
		return true
	}
	return false
}

type Role string

const (
	ROLE_ADMIN Role = "admin"
	ROLE_USER  Role = "user"
)

type Environment string

const (
	Local      Environment = "local"
	Test       Environment = "test"
	Production Environment = "production"
)

type PassengerRequestBody struct {
	Name     string `json:"name" validate:"notblank"`
	Age      int    `json:"age" validate:"age"`
	Gender   Gender `json:"gender" validate:"enum"`
	IDType   IDType `json:"id_type" validate:"enum"`
	IDNumber string `json:"id_number" validate:"notblank"`
}

// CreateBookingRequestBody is the booking form. Field checks live in the
// validate tags; cross-field rules are applied by utils.ValidateBookingForm.
type CreateBookingRequestBody struct {
	PassengerName  string                 `json:"passenger_name" validate:"required,personname"`
	PassportNumber string                 `json:"passport_number" validate:"required,passport"`
	Age            int                    `json:"age" validate:"age"`
	From           string                 `json:"from" validate:"notblank,city"`
	To             string                 `json:"to" validate:"notblank,city,nefield=From"`
	Date           string                 `json:"date" validate:"required,isodate"`
	Time           string                 `json:"time" validate:"required,clock"`
	ReturnDate     string                 `json:"return_date,omitempty" validate:"omitempty,isodate"`
	ReturnTime     string                 `json:"return_time,omitempty" validate:"omitempty,clock"`
	TripType       TripType               `json:"trip_type" validate:"enum"`
	Class          TravelClass            `json:"class" validate:"enum"`
	Passengers     []PassengerRequestBody `json:"passengers" validate:"dive"`
}

type UpdateTicketRequestBody struct {
	Status     *TicketStatus `json:"status,omitempty"`
	SeatNumber *string       `json:"seat_number,omitempty"`
	Date       *string       `json:"date,omitempty"`
	Time       *string       `json:"time,omitempty"`
	ReturnDate *string       `json:"return_date,omitempty"`
	ReturnTime *string       `json:"return_time,omitempty"`
	Fare       *int          `json:"fare,omitempty" binding:"omitempty,min=0"`
}

type LoginRequestBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ScanRequestBody struct {
	Code string `json:"code"`
}

type FareQuery struct {
	Class      TravelClass `form:"class" binding:"required"`
	Passengers int         `form:"passengers" binding:"required,min=1"`
	TripType   TripType    `form:"trip_type"`
}

type SimpleRequestParams struct {
	ID string `uri:"id" binding:"required"`
}

type BarcodeQuery struct {
	Format    string `form:"format"`
	ShareLink bool   `form:"share_link"`
}

type TicketEventType string

const (
	EVENT_TICKET_BOOKED    TicketEventType = "ticket.booked"
	EVENT_TICKET_UPDATED   TicketEventType = "ticket.updated"
	EVENT_TICKET_CANCELLED TicketEventType = "ticket.cancelled"
	EVENT_TICKET_REMINDER  TicketEventType = "ticket.departure_reminder"
)

type TicketEvent struct {
	Type       TicketEventType `json:"type"`
	TicketID   string          `json:"ticket_id"`
	Serial     string          `json:"serial"`
	Status     TicketStatus    `json:"status"`
	OccurredAt time.Time       `json:"occurred_at"`
	Ticket     any             `json:"ticket,omitempty"`
}
