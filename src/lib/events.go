package lib

import (
	"context"
	"encoding/json"
	"log"
	"ticketpro/src/types"
)

// LogPublisher writes ticket events to the log. It is used when no broker
// is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, event types.TicketEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	log.Printf("[events] %s: %s\n", event.Type, string(value))
	return nil
}
