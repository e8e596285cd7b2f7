package lib

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

const REMINDER_LEAD_TIME = 2 * time.Hour

// ReminderHandler runs when a departure reminder fires.
type ReminderHandler func(ctx context.Context, ticketID string)

// ReminderScheduler keeps at most one one-time job per ticket, tagged with
// the ticket id.
type ReminderScheduler struct {
	sched   gocron.Scheduler
	handler ReminderHandler
	now     func() time.Time
}

func NewReminderScheduler(sched gocron.Scheduler, handler ReminderHandler) *ReminderScheduler {
	return &ReminderScheduler{sched: sched, handler: handler, now: time.Now}
}

// Schedule replaces any reminder for ticketID with one at runsAt. Times in
// the past are skipped.
func (r *ReminderScheduler) Schedule(ticketID string, runsAt time.Time) error {
	r.sched.RemoveByTags(ticketID)
	if !runsAt.After(r.now()) {
		log.Printf("[scheduler] Reminder for ticket [%s] is in the past, skipping\n", ticketID)
		return nil
	}
	j, err := r.sched.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(runsAt)),
		gocron.NewTask(func(id string) {
			log.Printf("[scheduler] Running departure reminder for ticket [%s]\n", id)
			r.handler(context.Background(), id)
		}, ticketID),
		gocron.WithName(fmt.Sprintf("Ticket_%s_Reminder", ticketID)),
		gocron.WithTags(ticketID),
	)
	if err != nil {
		log.Printf("Error creating job: %s\n", err.Error())
		return err
	}
	log.Printf("[scheduler] New Job scheduled on: %s %s\n", j.ID().String(), runsAt.Format(time.RFC3339))
	return nil
}

func (r *ReminderScheduler) Cancel(ticketID string) error {
	r.sched.RemoveByTags(ticketID)
	return nil
}

// Pending reports whether a reminder is queued for ticketID.
func (r *ReminderScheduler) Pending(ticketID string) bool {
	for _, j := range r.sched.Jobs() {
		for _, tag := range j.Tags() {
			if tag == ticketID {
				return true
			}
		}
	}
	return false
}

// DepartureTime combines a YYYY-MM-DD date and HH:MM time in loc.
func DepartureTime(date, clock string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
}
