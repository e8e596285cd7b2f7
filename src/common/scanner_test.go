package common

import (
	"context"
	"testing"
	"ticketpro/src/barcode"
	"ticketpro/src/store"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanLegacySerial(t *testing.T) {
	s := &Scanner{Store: store.NewMemoryStore(store.SeedTickets()...)}

	res, err := s.Scan(context.Background(), "tkt123456")
	require.NoError(t, err)
	assert.Equal(t, barcode.SourceLegacy, res.Source)
	assert.Equal(t, "test-123", res.Ticket.ID)
}

func TestScanPayload(t *testing.T) {
	svc, _, _, _ := newBookingService()
	ticket, err := svc.Book(context.Background(), bookingBody(), bookingUser)
	require.NoError(t, err)
	payload, err := barcode.Encode(ticket)
	require.NoError(t, err)

	s := &Scanner{Store: store.NewMemoryStore()}
	res, err := s.Scan(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, barcode.SourcePayload, res.Source)
	assert.Equal(t, ticket.SerialNumber, res.Ticket.ID)
}

func TestScanNotFound(t *testing.T) {
	s := &Scanner{Store: store.NewMemoryStore(store.SeedTickets()...)}

	res, err := s.Scan(context.Background(), "TKT000000")
	require.NoError(t, err)
	assert.Equal(t, barcode.SourceNotFound, res.Source)
	assert.Equal(t, "No ticket found with barcode: TKT000000. Available tickets: 1.", res.Message())
}

func TestScanEmpty(t *testing.T) {
	s := &Scanner{Store: store.NewMemoryStore(), Delay: time.Hour}

	start := time.Now()
	_, err := s.Scan(context.Background(), "  ")
	assert.ErrorIs(t, err, barcode.ErrEmptyInput)
	assert.Less(t, time.Since(start), time.Second)
}

func TestScanCancelledDuringDelay(t *testing.T) {
	s := &Scanner{Store: store.NewMemoryStore(), Delay: time.Hour}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.Scan(ctx, "TKT123456")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
