package store

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"ticketpro/src/models"
	"ticketpro/src/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var serialPattern = regexp.MustCompile(`^TKT\d{6}[A-Z0-9]{3}$`)

func newTicket() *models.Ticket {
	return &models.Ticket{
		PassengerName:  "John Doe",
		PassportNumber: "P123456789",
		Age:            35,
		From:           "Mumbai",
		To:             "Delhi",
		Date:           "2026-12-01",
		Time:           "10:00",
		TripType:       types.ONE_WAY,
		Class:          types.BUSINESS,
		Status:         types.TICKET_CONFIRMED,
		Fare:           18000,
		BookedBy:       "user",
		Passengers: models.Passengers{
			{Name: "Jane Doe", Age: 32, Gender: types.GENDER_FEMALE, IDType: types.ID_PASSPORT, IDNumber: "P987654321"},
		},
	}
}

// runStoreContract exercises the behavior every TicketStore shares.
func runStoreContract(t *testing.T, s TicketStore) {
	ctx := context.Background()

	t.Run("create assigns identity", func(t *testing.T) {
		in := newTicket()
		in.ID = "caller-chosen"
		id, err := s.Create(ctx, in)
		require.NoError(t, err)
		assert.NotEqual(t, "caller-chosen", id)
		assert.Equal(t, id, in.ID)
		assert.Regexp(t, serialPattern, in.SerialNumber)
		assert.False(t, in.BookingDate.IsZero())

		got, err := s.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, in.SerialNumber, got.SerialNumber)
		assert.Equal(t, "John Doe", got.PassengerName)
		assert.Equal(t, 18000, got.Fare)
		assert.Len(t, got.Passengers, 1)
		assert.Equal(t, types.ID_PASSPORT, got.Passengers[0].IDType)
	})

	t.Run("ids and serials are unique", func(t *testing.T) {
		ids := map[string]bool{}
		serials := map[string]bool{}
		for i := 0; i < 50; i++ {
			in := newTicket()
			id, err := s.Create(ctx, in)
			require.NoError(t, err)
			assert.False(t, ids[id])
			assert.False(t, serials[in.SerialNumber])
			ids[id] = true
			serials[in.SerialNumber] = true
		}
	})

	t.Run("get unknown", func(t *testing.T) {
		_, err := s.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrTicketNotFound)
	})

	t.Run("update merges fields", func(t *testing.T) {
		in := newTicket()
		id, err := s.Create(ctx, in)
		require.NoError(t, err)

		cancelled := types.TICKET_CANCELLED
		seat := "12A"
		got, err := s.Update(ctx, id, models.TicketUpdate{Status: &cancelled, SeatNumber: &seat})
		require.NoError(t, err)
		assert.Equal(t, types.TICKET_CANCELLED, got.Status)
		assert.Equal(t, "12A", got.SeatNumber)
		assert.Equal(t, 18000, got.Fare)
		assert.Equal(t, in.SerialNumber, got.SerialNumber)
		assert.Equal(t, "2026-12-01", got.Date)

		again, err := s.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, types.TICKET_CANCELLED, again.Status)
	})

	t.Run("update unknown", func(t *testing.T) {
		cancelled := types.TICKET_CANCELLED
		_, err := s.Update(ctx, "missing", models.TicketUpdate{Status: &cancelled})
		assert.ErrorIs(t, err, ErrTicketNotFound)
	})

	t.Run("list keeps creation order", func(t *testing.T) {
		before, err := s.List(ctx)
		require.NoError(t, err)

		last := newTicket()
		id, err := s.Create(ctx, last)
		require.NoError(t, err)

		after, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, after, len(before)+1)
		assert.Equal(t, id, after[len(after)-1].ID)
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestMemoryStoreSeed(t *testing.T) {
	s := NewMemoryStore(SeedTickets()...)
	got, err := s.Get(context.Background(), "test-123")
	require.NoError(t, err)
	assert.Equal(t, "TKT123456", got.SerialNumber)
	assert.Len(t, got.Passengers, 2)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	id, err := s.Create(ctx, newTicket())
	require.NoError(t, err)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	got.Status = types.TICKET_CANCELLED
	got.Passengers[0].Name = "Changed"

	again, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, types.TICKET_CONFIRMED, again.Status)
	assert.Equal(t, "Jane Doe", again.Passengers[0].Name)
}

func TestMemoryStoreConcurrentCreate(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Create(ctx, newTicket())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	tickets, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tickets, 20)
}
