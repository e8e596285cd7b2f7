package boot

import (
	"context"
	"testing"
	"ticketpro/src/config"
	"ticketpro/src/types"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Env:           types.Test,
		JWTSecret:     []byte("test-secret"),
		TokenTTL:      time.Hour,
		StoreDriver:   "memory",
		SessionDriver: "memory",
		EventsDriver:  "log",
		TempDir:       t.TempDir(),
	}
}

func TestInitServicesMemory(t *testing.T) {
	cfg := testConfig(t)
	cfg.StoreSeed = true
	svc, err := InitServices(cfg)
	require.NoError(t, err)
	defer svc.Close()

	ticket, err := svc.Store.Get(context.Background(), "test-123")
	require.NoError(t, err)
	assert.Equal(t, "TKT123456", ticket.SerialNumber)
	assert.Nil(t, svc.Booking.Mailer)
	assert.Nil(t, svc.Assets.Assets)
	assert.NotNil(t, svc.Booking.Reminders)
	assert.Same(t, svc.Store, svc.Scanner.Store)
}

func TestInitServicesSqlite(t *testing.T) {
	cfg := testConfig(t)
	cfg.StoreDriver = "sqlite"
	cfg.DatabaseDSN = "file:boot_sqlite?mode=memory&cache=shared"
	svc, err := InitServices(cfg)
	require.NoError(t, err)
	defer svc.Close()

	tickets, err := svc.Store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tickets)
}

func TestInitServicesUnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.StoreDriver = "mongo"
	_, err := InitServices(cfg)
	assert.Error(t, err)

	cfg = testConfig(t)
	cfg.EventsDriver = "carrier-pigeon"
	_, err = InitServices(cfg)
	assert.Error(t, err)
}

func TestInitMailerDisabled(t *testing.T) {
	cfg := testConfig(t)
	assert.Nil(t, initMailer(cfg))
	cfg.MailDriver = "fax"
	assert.Nil(t, initMailer(cfg))
}
