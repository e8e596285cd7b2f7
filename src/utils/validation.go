package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"ticketpro/src/types"
	"time"

	"github.com/go-playground/validator/v10"
)

const DATE_FORMAT = "2006-01-02"

var (
	nameRegex     = regexp.MustCompile(`^[a-zA-Z\s]{2,50}$`)
	passportRegex = regexp.MustCompile(`^[A-Z0-9]{6,12}$`)
	dateRegex     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockRegex    = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	passengerNs   = regexp.MustCompile(`passengers\[(\d+)\]\.(\w+)$`)
)

func ValidateName(name string) bool {
	return nameRegex.MatchString(strings.TrimSpace(name))
}

func ValidateAge(age int) bool {
	return age >= 1 && age <= 120
}

func ValidatePassportNumber(passport string) bool {
	return passportRegex.MatchString(strings.ToUpper(passport))
}

func ValidateDate(date string) bool {
	if !dateRegex.MatchString(date) {
		return false
	}
	_, err := time.Parse(DATE_FORMAT, date)
	return err == nil
}

func ValidateClock(clock string) bool {
	return clockRegex.MatchString(clock)
}

var personNameValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	return ValidateName(fl.Field().String())
}

var passportValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	return ValidatePassportNumber(fl.Field().String())
}

var ageValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	return ValidateAge(int(fl.Field().Int()))
}

var notBlankValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

var cityValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	return IsCity(fl.Field().String())
}

var isoDateValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	return ValidateDate(fl.Field().String())
}

var clockValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	return ValidateClock(fl.Field().String())
}

var enumValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	e, ok := fl.Field().Interface().(interface{ IsValid() bool })
	return ok && e.IsValid()
}

// RegisterValidations installs the booking validators on v. It is used for
// the form validator below and for gin's binding engine.
func RegisterValidations(v *validator.Validate) {
	v.RegisterValidation("personname", personNameValidatorFunc)
	v.RegisterValidation("passport", passportValidatorFunc)
	v.RegisterValidation("age", ageValidatorFunc)
	v.RegisterValidation("notblank", notBlankValidatorFunc)
	v.RegisterValidation("city", cityValidatorFunc)
	v.RegisterValidation("isodate", isoDateValidatorFunc)
	v.RegisterValidation("clock", clockValidatorFunc)
	v.RegisterValidation("enum", enumValidatorFunc)
}

var (
	formValidator     *validator.Validate
	formValidatorOnce sync.Once
)

func getFormValidator() *validator.Validate {
	formValidatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		RegisterValidations(v)
		formValidator = v
	})
	return formValidator
}

var fieldLabels = map[string]string{
	"passenger_name":  "Passenger name",
	"passport_number": "Passport number",
	"age":             "Age",
	"from":            "Departure city",
	"to":              "Destination city",
	"date":            "Travel date",
	"time":            "Travel time",
	"return_date":     "Return date",
	"return_time":     "Return time",
	"trip_type":       "Trip type",
	"class":           "Travel class",
	"name":            "Passenger name",
	"gender":          "Gender",
	"id_type":         "ID type",
	"id_number":       "ID number",
}

func fieldKey(fe validator.FieldError) string {
	if m := passengerNs.FindStringSubmatch(fe.Namespace()); m != nil {
		field := m[2]
		if field == "id_number" {
			field = "id"
		}
		return fmt.Sprintf("passenger_%s_%s", m[1], field)
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required", "notblank":
		return label + " is required"
	case "personname":
		return label + " must be 2-50 letters and spaces"
	case "passport":
		return "Passport number must be 6-12 letters or digits"
	case "age":
		return "Valid age is required (1-120)"
	case "city":
		return label + " must be a city from the catalogue"
	case "nefield":
		return "Destination must be different from departure"
	case "isodate":
		return label + " must be a date in YYYY-MM-DD format"
	case "clock":
		return label + " must be a time in HH:MM format"
	case "enum":
		return label + " is not a valid option"
	}
	return label + " is invalid"
}

// ValidateBookingForm checks a booking form and returns field-keyed error
// messages. The booking may proceed only when the result is empty.
func ValidateBookingForm(body *types.CreateBookingRequestBody) map[string]string {
	return validateBookingFormAt(body, time.Now())
}

func validateBookingFormAt(body *types.CreateBookingRequestBody, now time.Time) map[string]string {
	errs := map[string]string{}
	if body == nil {
		errs["form"] = "Booking details are required"
		return errs
	}
	if err := getFormValidator().Struct(body); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			errs["form"] = err.Error()
			return errs
		}
		for _, fe := range verrs {
			key := fieldKey(fe)
			if _, exists := errs[key]; !exists {
				errs[key] = fieldMessage(fe)
			}
		}
	}

	setOnce := func(key, msg string) {
		if _, exists := errs[key]; !exists {
			errs[key] = msg
		}
	}

	_, dateInvalid := errs["date"]
	if !dateInvalid {
		today := now.Format(DATE_FORMAT)
		latest := now.AddDate(1, 0, 0).Format(DATE_FORMAT)
		if body.Date < today {
			setOnce("date", "Travel date cannot be in the past")
		} else if body.Date > latest {
			setOnce("date", "Travel date must be within the next 12 months")
		}
	}

	if body.TripType == types.ROUND_TRIP {
		if body.ReturnDate == "" {
			setOnce("return_date", "Return date is required")
		}
		if body.ReturnTime == "" {
			setOnce("return_time", "Return time is required")
		}
		if ValidateDate(body.ReturnDate) && ValidateDate(body.Date) && body.ReturnDate < body.Date {
			setOnce("return_date", "Return date must be after departure date")
		}
	}

	return errs
}
