package common

import (
	"context"
	"strings"
	"ticketpro/src/barcode"
	"ticketpro/src/store"
	"time"
)

// Scanner resolves scanned barcodes against the ticket store.
type Scanner struct {
	Store store.TicketStore
	// Delay simulates the latency of a hardware scanner.
	Delay time.Duration
}

func (s *Scanner) Scan(ctx context.Context, raw string) (barcode.Result, error) {
	if strings.TrimSpace(raw) == "" {
		return barcode.Result{}, barcode.ErrEmptyInput
	}
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return barcode.Result{}, ctx.Err()
		case <-timer.C:
		}
	}
	known, err := s.Store.List(ctx)
	if err != nil {
		return barcode.Result{}, err
	}
	return barcode.Decode(raw, known)
}
