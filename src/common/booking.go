package common

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"ticketpro/src/barcode"
	"ticketpro/src/lib"
	"ticketpro/src/models"
	"ticketpro/src/store"
	"ticketpro/src/types"
	"ticketpro/src/utils"
	"time"
)

type EventPublisher interface {
	Publish(ctx context.Context, event types.TicketEvent) error
}

type ReminderScheduler interface {
	Schedule(ticketID string, runsAt time.Time) error
	Cancel(ticketID string) error
}

type Mailer interface {
	Send(ctx context.Context, in *lib.SendMailInput) error
}

// ValidationError carries field-keyed messages for a rejected request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("invalid fields: %s", strings.Join(keys, ", "))
}

const DEFAULT_SIDE_EFFECT_TIMEOUT = 5 * time.Second

// BookingService turns validated booking forms into stored tickets.
// Events, Reminders and Mailer are optional. Publishing and mailing are
// each bounded by SideEffectTimeout.
type BookingService struct {
	Store             store.TicketStore
	Events            EventPublisher
	Reminders         ReminderScheduler
	Mailer            Mailer
	MailFrom          string
	Location          *time.Location
	SideEffectTimeout time.Duration
}

func (b *BookingService) sideEffectContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := b.SideEffectTimeout
	if timeout <= 0 {
		timeout = DEFAULT_SIDE_EFFECT_TIMEOUT
	}
	return context.WithTimeout(ctx, timeout)
}

func (b *BookingService) location() *time.Location {
	if b.Location != nil {
		return b.Location
	}
	return time.Local
}

// Book validates body, prices it and stores the ticket for user. Nothing is
// stored when validation fails.
func (b *BookingService) Book(ctx context.Context, body *types.CreateBookingRequestBody, user *models.User) (*models.Ticket, error) {
	if body != nil && body.TripType == "" {
		body.TripType = types.ONE_WAY
	}
	if errs := utils.ValidateBookingForm(body); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	ticket := newTicket(body)
	if user != nil {
		ticket.BookedBy = user.Username
	}
	if _, err := b.Store.Create(ctx, ticket); err != nil {
		return nil, err
	}
	log.Printf("Booked ticket [%s] %s for %s\n", ticket.ID, ticket.SerialNumber, ticket.BookedBy)

	b.publish(ctx, types.EVENT_TICKET_BOOKED, ticket)
	b.scheduleReminder(ticket)
	if user != nil && user.Email != "" {
		if err := b.sendConfirmation(ctx, user, ticket); err != nil {
			log.Printf("Error sending confirmation for ticket [%s]: %s\n", ticket.ID, err.Error())
		}
	}
	return ticket, nil
}

func newTicket(body *types.CreateBookingRequestBody) *models.Ticket {
	passengers := make(models.Passengers, 0, len(body.Passengers))
	for _, p := range body.Passengers {
		passengers = append(passengers, models.Passenger{
			Name:     strings.TrimSpace(p.Name),
			Age:      p.Age,
			Gender:   p.Gender,
			IDType:   p.IDType,
			IDNumber: strings.TrimSpace(p.IDNumber),
		})
	}
	ticket := &models.Ticket{
		PassengerName:  strings.TrimSpace(body.PassengerName),
		PassportNumber: strings.ToUpper(body.PassportNumber),
		Age:            body.Age,
		From:           body.From,
		To:             body.To,
		Date:           body.Date,
		Time:           body.Time,
		TripType:       body.TripType,
		Class:          body.Class,
		Status:         types.TICKET_CONFIRMED,
		Passengers:     passengers,
	}
	if body.TripType == types.ROUND_TRIP {
		ticket.ReturnDate = body.ReturnDate
		ticket.ReturnTime = body.ReturnTime
	}
	ticket.Fare = utils.CalculateFare(ticket.Class, ticket.PassengerCount(), ticket.TripType)
	return ticket
}

// UpdateTicket applies a partial update. The fare is never recomputed.
func (b *BookingService) UpdateTicket(ctx context.Context, id string, update models.TicketUpdate) (*models.Ticket, error) {
	if errs := validateUpdate(update); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	ticket, err := b.Store.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	if ticket.Status == types.TICKET_CANCELLED {
		if b.Reminders != nil {
			if err := b.Reminders.Cancel(ticket.ID); err != nil {
				log.Printf("Error cancelling reminder for ticket [%s]: %s\n", ticket.ID, err.Error())
			}
		}
		if update.Status != nil {
			b.publish(ctx, types.EVENT_TICKET_CANCELLED, ticket)
			return ticket, nil
		}
	} else if update.Date != nil || update.Time != nil || update.Status != nil {
		b.scheduleReminder(ticket)
	}
	b.publish(ctx, types.EVENT_TICKET_UPDATED, ticket)
	return ticket, nil
}

func validateUpdate(update models.TicketUpdate) map[string]string {
	errs := map[string]string{}
	if update.IsEmpty() {
		errs["form"] = "No fields to update"
		return errs
	}
	if update.Status != nil && !update.Status.IsValid() {
		errs["status"] = "Status is not a valid option"
	}
	if update.Date != nil && !utils.ValidateDate(*update.Date) {
		errs["date"] = "Travel date must be a date in YYYY-MM-DD format"
	}
	if update.Time != nil && !utils.ValidateClock(*update.Time) {
		errs["time"] = "Travel time must be a time in HH:MM format"
	}
	if update.ReturnDate != nil && *update.ReturnDate != "" && !utils.ValidateDate(*update.ReturnDate) {
		errs["return_date"] = "Return date must be a date in YYYY-MM-DD format"
	}
	if update.ReturnTime != nil && *update.ReturnTime != "" && !utils.ValidateClock(*update.ReturnTime) {
		errs["return_time"] = "Return time must be a time in HH:MM format"
	}
	if update.Fare != nil && *update.Fare < 0 {
		errs["fare"] = "Fare cannot be negative"
	}
	return errs
}

// SendReminder publishes the departure reminder for a ticket that is
// still live.
func (b *BookingService) SendReminder(ctx context.Context, ticketID string) {
	ticket, err := b.Store.Get(ctx, ticketID)
	if err != nil {
		log.Printf("Error loading ticket [%s] for reminder: %s\n", ticketID, err.Error())
		return
	}
	if ticket.Status == types.TICKET_CANCELLED {
		return
	}
	b.publish(ctx, types.EVENT_TICKET_REMINDER, ticket)
}

func (b *BookingService) publish(ctx context.Context, eventType types.TicketEventType, ticket *models.Ticket) {
	if b.Events == nil {
		return
	}
	event := types.TicketEvent{
		Type:       eventType,
		TicketID:   ticket.ID,
		Serial:     ticket.SerialNumber,
		Status:     ticket.Status,
		OccurredAt: time.Now().UTC(),
		Ticket:     ticket,
	}
	ctx, cancel := b.sideEffectContext(ctx)
	defer cancel()
	if err := b.Events.Publish(ctx, event); err != nil {
		log.Printf("Error publishing %s for ticket [%s]: %s\n", eventType, ticket.ID, err.Error())
	}
}

func (b *BookingService) scheduleReminder(ticket *models.Ticket) {
	if b.Reminders == nil {
		return
	}
	departure, err := lib.DepartureTime(ticket.Date, ticket.Time, b.location())
	if err != nil {
		log.Printf("Error reading departure of ticket [%s]: %s\n", ticket.ID, err.Error())
		return
	}
	if err := b.Reminders.Schedule(ticket.ID, departure.Add(-lib.REMINDER_LEAD_TIME)); err != nil {
		log.Printf("Error scheduling reminder for ticket [%s]: %s\n", ticket.ID, err.Error())
	}
}

func (b *BookingService) sendConfirmation(ctx context.Context, user *models.User, ticket *models.Ticket) error {
	if b.Mailer == nil {
		return nil
	}
	payload, err := barcode.Encode(ticket)
	if err != nil {
		return err
	}
	image, err := barcode.RenderCode128(payload, barcode.DEFAULT_BAR_HEIGHT)
	if err != nil {
		return err
	}
	ctx, cancel := b.sideEffectContext(ctx)
	defer cancel()
	return b.Mailer.Send(ctx, &lib.SendMailInput{
		From:     b.MailFrom,
		FromName: "TicketPro",
		To:       []string{user.Email},
		Subject:  fmt.Sprintf("Your ticket %s", ticket.SerialNumber),
		Body:     confirmationBody(ticket),
		Attachments: []lib.Attachment{
			{Name: fmt.Sprintf("%s.png", ticket.SerialNumber), Data: image},
		},
	})
}

func confirmationBody(ticket *models.Ticket) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Booking confirmed: %s\n\n", ticket.SerialNumber)
	fmt.Fprintf(&sb, "Passenger: %s\n", ticket.PassengerName)
	fmt.Fprintf(&sb, "Journey: %s to %s\n", ticket.From, ticket.To)
	fmt.Fprintf(&sb, "Departure: %s %s\n", utils.FormatDate(ticket.Date), utils.FormatTime(ticket.Time))
	if ticket.TripType == types.ROUND_TRIP {
		fmt.Fprintf(&sb, "Return: %s %s\n", utils.FormatDate(ticket.ReturnDate), utils.FormatTime(ticket.ReturnTime))
	}
	fmt.Fprintf(&sb, "Class: %s\n", ticket.Class)
	fmt.Fprintf(&sb, "Passengers: %d\n", ticket.PassengerCount())
	fmt.Fprintf(&sb, "Total fare: %s\n", utils.FormatCurrency(ticket.Fare))
	return sb.String()
}
