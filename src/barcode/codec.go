package barcode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"ticketpro/src/models"
	"ticketpro/src/types"
	"time"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

var ErrEmptyInput = errors.New("scanned code is empty")

type PrimaryPayload struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Passport string `json:"passport"`
}

type JourneyPayload struct {
	From       string            `json:"from"`
	To         string            `json:"to"`
	Date       string            `json:"date"`
	Time       string            `json:"time"`
	Class      types.TravelClass `json:"class"`
	TripType   types.TripType    `json:"tripType"`
	ReturnDate string            `json:"returnDate,omitempty"`
	ReturnTime string            `json:"returnTime,omitempty"`
}

type PassengerPayload struct {
	Name     string       `json:"name"`
	Age      int          `json:"age"`
	Gender   types.Gender `json:"gender"`
	IDType   types.IDType `json:"idType"`
	IDNumber string       `json:"idNumber"`
}

// Payload is the self-contained ticket record carried in the barcode.
// Field order is the wire order.
type Payload struct {
	Serial     string             `json:"serial"`
	Primary    PrimaryPayload     `json:"primary"`
	Journey    JourneyPayload     `json:"journey"`
	Passengers []PassengerPayload `json:"passengers"`
	Fare       int                `json:"fare"`
	Status     types.TicketStatus `json:"status"`
}

func NewPayload(ticket *models.Ticket) Payload {
	passengers := make([]PassengerPayload, 0, len(ticket.Passengers))
	for _, p := range ticket.Passengers {
		passengers = append(passengers, PassengerPayload{
			Name:     p.Name,
			Age:      p.Age,
			Gender:   p.Gender,
			IDType:   p.IDType,
			IDNumber: p.IDNumber,
		})
	}
	return Payload{
		Serial: ticket.SerialNumber,
		Primary: PrimaryPayload{
			Name:     ticket.PassengerName,
			Age:      ticket.Age,
			Passport: ticket.PassportNumber,
		},
		Journey: JourneyPayload{
			From:       ticket.From,
			To:         ticket.To,
			Date:       ticket.Date,
			Time:       ticket.Time,
			Class:      ticket.Class,
			TripType:   ticket.TripType,
			ReturnDate: ticket.ReturnDate,
			ReturnTime: ticket.ReturnTime,
		},
		Passengers: passengers,
		Fare:       ticket.Fare,
		Status:     ticket.Status,
	}
}

// Ticket builds a ticket from a scanned payload. The booking date is not
// carried in the barcode, so bookingDate is used instead.
func (p Payload) Ticket(bookingDate time.Time) *models.Ticket {
	tripType := p.Journey.TripType
	if tripType == "" {
		tripType = types.ONE_WAY
	}
	passengers := make(models.Passengers, 0, len(p.Passengers))
	for _, pp := range p.Passengers {
		passengers = append(passengers, models.Passenger{
			Name:     pp.Name,
			Age:      pp.Age,
			Gender:   pp.Gender,
			IDType:   pp.IDType,
			IDNumber: pp.IDNumber,
		})
	}
	return &models.Ticket{
		ID:             p.Serial,
		SerialNumber:   p.Serial,
		PassengerName:  p.Primary.Name,
		PassportNumber: p.Primary.Passport,
		Age:            p.Primary.Age,
		From:           p.Journey.From,
		To:             p.Journey.To,
		Date:           p.Journey.Date,
		Time:           p.Journey.Time,
		ReturnDate:     p.Journey.ReturnDate,
		ReturnTime:     p.Journey.ReturnTime,
		TripType:       tripType,
		Class:          p.Journey.Class,
		Status:         p.Status,
		Fare:           p.Fare,
		BookingDate:    bookingDate,
		Passengers:     passengers,
	}
}

// Encode renders the ticket as compact JSON for the barcode symbol. Runes
// outside ASCII are written as \u escapes so the text fits Code 128.
func Encode(ticket *models.Ticket) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(NewPayload(ticket)); err != nil {
		return "", fmt.Errorf("encoding barcode payload: %w", err)
	}
	return asciiJSON(strings.TrimSuffix(buf.String(), "\n")), nil
}

func asciiJSON(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r < utf8.RuneSelf {
			sb.WriteRune(r)
			continue
		}
		for _, u := range utf16.Encode([]rune{r}) {
			fmt.Fprintf(&sb, "\\u%04x", u)
		}
	}
	return sb.String()
}

type Source string

const (
	SourcePayload  Source = "payload"
	SourceLegacy   Source = "legacy"
	SourceNotFound Source = "not_found"
)

// Result is the outcome of a scan. Ticket is nil when Source is SourceNotFound.
type Result struct {
	Source Source
	Ticket *models.Ticket
	Input  string
	Known  int
}

func (r Result) Found() bool {
	return r.Source != SourceNotFound && r.Ticket != nil
}

func (r Result) Message() string {
	if r.Found() {
		return fmt.Sprintf("Ticket %s found", r.Ticket.SerialNumber)
	}
	return fmt.Sprintf("No ticket found with barcode: %s. Available tickets: %d.", r.Input, r.Known)
}

// isPayload reports whether raw has the minimum structure of a ticket
// payload: a JSON object with a non-empty serial and a primary object.
func isPayload(raw string) bool {
	if !gjson.Valid(raw) {
		return false
	}
	doc := gjson.Parse(raw)
	if !doc.IsObject() {
		return false
	}
	serial := doc.Get("serial")
	if serial.Type != gjson.String || serial.String() == "" {
		return false
	}
	if !doc.Get("primary").IsObject() {
		return false
	}
	passengers := doc.Get("passengers")
	return !passengers.Exists() || passengers.IsArray() || passengers.Type == gjson.Null
}

// payloadFromJSON reads a payload field by field. Numbers may be written as
// integers, floats or numeric strings.
func payloadFromJSON(doc gjson.Result) Payload {
	primary := doc.Get("primary")
	journey := doc.Get("journey")
	p := Payload{
		Serial: doc.Get("serial").String(),
		Primary: PrimaryPayload{
			Name:     primary.Get("name").String(),
			Age:      jsonInt(primary.Get("age")),
			Passport: primary.Get("passport").String(),
		},
		Journey: JourneyPayload{
			From:       journey.Get("from").String(),
			To:         journey.Get("to").String(),
			Date:       journey.Get("date").String(),
			Time:       journey.Get("time").String(),
			Class:      types.TravelClass(journey.Get("class").String()),
			TripType:   types.TripType(journey.Get("tripType").String()),
			ReturnDate: journey.Get("returnDate").String(),
			ReturnTime: journey.Get("returnTime").String(),
		},
		Passengers: []PassengerPayload{},
		Fare:       jsonInt(doc.Get("fare")),
		Status:     types.TicketStatus(doc.Get("status").String()),
	}
	doc.Get("passengers").ForEach(func(_, v gjson.Result) bool {
		p.Passengers = append(p.Passengers, PassengerPayload{
			Name:     v.Get("name").String(),
			Age:      jsonInt(v.Get("age")),
			Gender:   types.Gender(v.Get("gender").String()),
			IDType:   types.IDType(v.Get("idType").String()),
			IDNumber: v.Get("idNumber").String(),
		})
		return true
	})
	return p
}

func jsonInt(v gjson.Result) int {
	return int(math.Round(v.Float()))
}

// Decode resolves a scanned string. Structured payloads are trusted and
// never looked up; anything else is matched case-insensitively against the
// serial or id of the known tickets.
func Decode(raw string, known []models.Ticket) (Result, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return Result{}, ErrEmptyInput
	}

	if isPayload(input) {
		p := payloadFromJSON(gjson.Parse(input))
		return Result{Source: SourcePayload, Ticket: p.Ticket(time.Now()), Input: input, Known: len(known)}, nil
	}

	code := strings.ToUpper(input)
	for i := range known {
		if strings.ToUpper(known[i].SerialNumber) == code || strings.ToUpper(known[i].ID) == code {
			t := known[i]
			return Result{Source: SourceLegacy, Ticket: &t, Input: input, Known: len(known)}, nil
		}
	}

	return Result{Source: SourceNotFound, Input: input, Known: len(known)}, nil
}
