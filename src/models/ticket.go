package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"ticketpro/src/types"
	"time"
)

type Passenger struct {
	Name     string       `json:"name"`
	Age      int          `json:"age"`
	Gender   types.Gender `json:"gender"`
	IDType   types.IDType `json:"id_type"`
	IDNumber string       `json:"id_number"`
}

// Passengers is stored as a single JSON column; order is significant.
type Passengers []Passenger

func (p Passengers) Value() (driver.Value, error) {
	if p == nil {
		p = Passengers{}
	}
	valueString, err := json.Marshal(p)
	return string(valueString), err
}

func (p *Passengers) Scan(value any) error {
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	case nil:
		*p = Passengers{}
		return nil
	default:
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, p)
}

type Ticket struct {
	ID             string             `gorm:"primarykey" json:"id"`
	SerialNumber   string             `gorm:"uniqueIndex;not null" json:"serial_number"`
	PassengerName  string             `json:"passenger_name"`
	PassportNumber string             `json:"passport_number"`
	Age            int                `json:"age"`
	From           string             `json:"from"`
	To             string             `json:"to"`
	Date           string             `json:"date"`
	Time           string             `json:"time"`
	ReturnDate     string             `json:"return_date"`
	ReturnTime     string             `json:"return_time"`
	TripType       types.TripType     `gorm:"default:'ONE_WAY'" json:"trip_type"`
	Class          types.TravelClass  `json:"class"`
	Status         types.TicketStatus `gorm:"default:'CONFIRMED'" json:"status"`
	SeatNumber     string             `json:"seat_number,omitempty"`
	Fare           int                `json:"fare"`
	BookingDate    time.Time          `json:"booking_date"`
	BookedBy       string             `gorm:"index" json:"booked_by,omitempty"`
	Passengers     Passengers         `gorm:"type:json" json:"passengers"`

	types.Timestamps
}

// PassengerCount is the primary passenger plus the additional ones.
func (t *Ticket) PassengerCount() int {
	return 1 + len(t.Passengers)
}

// TicketUpdate carries the mutable fields of a ticket. Nil fields are left
// untouched. Identity fields (id, serial, booking date) have no entry here.
type TicketUpdate struct {
	Status     *types.TicketStatus
	SeatNumber *string
	Date       *string
	Time       *string
	ReturnDate *string
	ReturnTime *string
	Fare       *int
}

func (u TicketUpdate) IsEmpty() bool {
	return u.Status == nil && u.SeatNumber == nil && u.Date == nil && u.Time == nil &&
		u.ReturnDate == nil && u.ReturnTime == nil && u.Fare == nil
}

// Apply merges the non-nil fields into t.
func (u TicketUpdate) Apply(t *Ticket) {
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.SeatNumber != nil {
		t.SeatNumber = *u.SeatNumber
	}
	if u.Date != nil {
		t.Date = *u.Date
	}
	if u.Time != nil {
		t.Time = *u.Time
	}
	if u.ReturnDate != nil {
		t.ReturnDate = *u.ReturnDate
	}
	if u.ReturnTime != nil {
		t.ReturnTime = *u.ReturnTime
	}
	if u.Fare != nil {
		t.Fare = *u.Fare
	}
}

// Columns lists the database columns touched by Apply, for partial updates.
func (u TicketUpdate) Columns() map[string]any {
	cols := map[string]any{}
	if u.Status != nil {
		cols["status"] = *u.Status
	}
	if u.SeatNumber != nil {
		cols["seat_number"] = *u.SeatNumber
	}
	if u.Date != nil {
		cols["date"] = *u.Date
	}
	if u.Time != nil {
		cols["time"] = *u.Time
	}
	if u.ReturnDate != nil {
		cols["return_date"] = *u.ReturnDate
	}
	if u.ReturnTime != nil {
		cols["return_time"] = *u.ReturnTime
	}
	if u.Fare != nil {
		cols["fare"] = *u.Fare
	}
	return cols
}

func NewTicketUpdate(body *types.UpdateTicketRequestBody) TicketUpdate {
	return TicketUpdate{
		Status:     body.Status,
		SeatNumber: body.SeatNumber,
		Date:       body.Date,
		Time:       body.Time,
		ReturnDate: body.ReturnDate,
		ReturnTime: body.ReturnTime,
		Fare:       body.Fare,
	}
}
