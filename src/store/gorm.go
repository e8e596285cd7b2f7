package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"ticketpro/src/models"
	"ticketpro/src/utils"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps tickets in a gorm database, normally the in-memory SQLite
// opened by db.Open.
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormStore(db *gorm.DB, seed ...models.Ticket) (*GormStore, error) {
	if err := db.AutoMigrate(&models.Ticket{}); err != nil {
		return nil, fmt.Errorf("migrating tickets: %w", err)
	}
	for i := range seed {
		t := clone(&seed[i])
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(t).Error; err != nil {
			log.Printf("Error seeding ticket [%s]: %s\n", t.ID, err.Error())
			return nil, err
		}
	}
	return &GormStore{db: db, now: time.Now}, nil
}

func (s *GormStore) Create(ctx context.Context, ticket *models.Ticket) (string, error) {
	t := clone(ticket)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := s.now()
		t.ID = utils.GenerateTicketId()
		t.SerialNumber = ""
		for i := 0; i < maxSerialAttempts; i++ {
			serial := utils.GenerateSerialNumber(now)
			var count int64
			if err := tx.Model(&models.Ticket{}).Where("serial_number = ?", serial).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				t.SerialNumber = serial
				break
			}
		}
		if t.SerialNumber == "" {
			return errors.New("could not allocate a unique serial number")
		}
		t.BookingDate = now
		t.CreatedAt = now
		t.UpdatedAt = now
		return tx.Create(t).Error
	})
	if err != nil {
		log.Printf("Error creating ticket: %s\n", err.Error())
		return "", err
	}
	ticket.ID = t.ID
	ticket.SerialNumber = t.SerialNumber
	ticket.BookingDate = t.BookingDate
	return t.ID, nil
}

func (s *GormStore) Get(ctx context.Context, id string) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	if ticket.Passengers == nil {
		ticket.Passengers = models.Passengers{}
	}
	return &ticket, nil
}

func (s *GormStore) Update(ctx context.Context, id string, update models.TicketUpdate) (*models.Ticket, error) {
	var ticket models.Ticket
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&ticket).Error; err != nil {
			return err
		}
		if update.IsEmpty() {
			return nil
		}
		cols := update.Columns()
		cols["updated_at"] = s.now()
		if err := tx.Model(&models.Ticket{}).Where("id = ?", id).Updates(cols).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&ticket).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		log.Printf("Error updating ticket [%s]: %s\n", id, err.Error())
		return nil, err
	}
	if ticket.Passengers == nil {
		ticket.Passengers = models.Passengers{}
	}
	return &ticket, nil
}

func (s *GormStore) List(ctx context.Context) ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := s.db.WithContext(ctx).Order("created_at ASC").Order("rowid ASC").Find(&tickets).Error; err != nil {
		return nil, err
	}
	for i := range tickets {
		if tickets[i].Passengers == nil {
			tickets[i].Passengers = models.Passengers{}
		}
	}
	return tickets, nil
}
