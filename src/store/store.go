package store

import (
	"context"
	"errors"
	"ticketpro/src/models"
	"ticketpro/src/types"
	"time"
)

var ErrTicketNotFound = errors.New("ticket not found")

// TicketStore owns the booked tickets. Create assigns id, serial number and
// booking date; they are never changed afterwards.
type TicketStore interface {
	Create(ctx context.Context, ticket *models.Ticket) (string, error)
	Get(ctx context.Context, id string) (*models.Ticket, error)
	Update(ctx context.Context, id string, update models.TicketUpdate) (*models.Ticket, error)
	List(ctx context.Context) ([]models.Ticket, error)
}

const maxSerialAttempts = 10

// SeedTickets is the demo ticket loaded when seeding is enabled.
func SeedTickets() []models.Ticket {
	return []models.Ticket{
		{
			ID:             "test-123",
			SerialNumber:   "TKT123456",
			PassengerName:  "John Doe",
			PassportNumber: "P123456789",
			Age:            35,
			From:           "Mumbai",
			To:             "Delhi",
			Date:           "2024-12-01",
			Time:           "10:00",
			TripType:       types.ONE_WAY,
			Class:          types.ECONOMY,
			Status:         types.TICKET_CONFIRMED,
			Fare:           5000,
			BookingDate:    time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
			BookedBy:       "demo",
			Passengers: models.Passengers{
				{Name: "Jane Doe", Age: 32, Gender: types.GENDER_FEMALE, IDType: types.ID_PASSPORT, IDNumber: "P987654321"},
				{Name: "Bob Smith", Age: 28, Gender: types.GENDER_MALE, IDType: types.ID_NATIONAL_ID, IDNumber: "N123456789"},
			},
		},
	}
}

func clone(t *models.Ticket) *models.Ticket {
	c := *t
	if t.Passengers != nil {
		c.Passengers = make(models.Passengers, len(t.Passengers))
		copy(c.Passengers, t.Passengers)
	} else {
		c.Passengers = models.Passengers{}
	}
	return &c
}
