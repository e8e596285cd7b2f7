package store

import (
	"context"
	"errors"
	"sync"
	"ticketpro/src/models"
	"ticketpro/src/utils"
	"time"
)

// MemoryStore keeps tickets in creation order for the life of the process.
type MemoryStore struct {
	mu      sync.RWMutex
	tickets []*models.Ticket
	now     func() time.Time
}

func NewMemoryStore(seed ...models.Ticket) *MemoryStore {
	s := &MemoryStore{now: time.Now}
	for i := range seed {
		s.tickets = append(s.tickets, clone(&seed[i]))
	}
	return s
}

func (s *MemoryStore) serialTaken(serial string) bool {
	for _, t := range s.tickets {
		if t.SerialNumber == serial {
			return true
		}
	}
	return false
}

func (s *MemoryStore) idTaken(id string) bool {
	for _, t := range s.tickets {
		if t.ID == id {
			return true
		}
	}
	return false
}

func (s *MemoryStore) Create(ctx context.Context, ticket *models.Ticket) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	t := clone(ticket)
	t.ID = utils.GenerateTicketId()
	for s.idTaken(t.ID) {
		t.ID = utils.GenerateTicketId()
	}
	t.SerialNumber = ""
	for i := 0; i < maxSerialAttempts; i++ {
		serial := utils.GenerateSerialNumber(now)
		if !s.serialTaken(serial) {
			t.SerialNumber = serial
			break
		}
	}
	if t.SerialNumber == "" {
		return "", errors.New("could not allocate a unique serial number")
	}
	t.BookingDate = now
	t.CreatedAt = now
	t.UpdatedAt = now
	s.tickets = append(s.tickets, t)

	ticket.ID = t.ID
	ticket.SerialNumber = t.SerialNumber
	ticket.BookingDate = t.BookingDate
	return t.ID, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tickets {
		if t.ID == id {
			return clone(t), nil
		}
	}
	return nil, ErrTicketNotFound
}

func (s *MemoryStore) Update(ctx context.Context, id string, update models.TicketUpdate) (*models.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tickets {
		if t.ID == id {
			update.Apply(t)
			t.UpdatedAt = s.now()
			return clone(t), nil
		}
	}
	return nil, ErrTicketNotFound
}

func (s *MemoryStore) List(ctx context.Context) ([]models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		out = append(out, *clone(t))
	}
	return out, nil
}
