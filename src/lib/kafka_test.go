package lib

import (
	"context"
	"testing"
	"ticketpro/src/types"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaProducerConfig(t *testing.T) {
	cfg := GetKafkaProducerConfig("localhost:9092")
	assert.Equal(t, "localhost:9092", cfg["bootstrap.servers"])
	assert.Equal(t, 5000, cfg["message.timeout.ms"])
}

func TestKafkaPublishUnreachableBroker(t *testing.T) {
	p, err := NewKafkaPublisher("127.0.0.1:1", "ticket-events")
	require.NoError(t, err)
	defer p.Close()
	p.timeout = 100 * time.Millisecond

	start := time.Now()
	err = p.Publish(context.Background(), types.TicketEvent{Type: types.EVENT_TICKET_BOOKED, TicketID: "t-1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}
