package event

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Input is the single declarative schema for an event payload. It carries two
// tag sets: `store` is the contract applied to request bodies before anything
// reaches the repository, `form` is the stricter variant applied to the form
// fields before submission. Both contracts are compiled from this one
// definition so they cannot drift apart.
type Input struct {
	ID           string       `json:"_id,omitempty" store:"-" form:"-"`
	Name         string       `json:"name" store:"required" form:"required"`
	Description  string       `json:"description,omitempty" store:"-" form:"-"`
	Date         string       `json:"date" store:"required" form:"required,event_date"`
	Time         string       `json:"time" store:"required" form:"required,event_time"`
	Duration     DurationIn   `json:"duration"`
	Location     *string      `json:"location" store:"-" form:"required,min=1"`
	MeetingRoom  string       `json:"meetingRoom,omitempty" store:"omitempty,meeting_room" form:"omitempty,meeting_room"`
	CurrentGuest string       `json:"currentGuest,omitempty" store:"-" form:"-"`
	Guest        []string     `json:"guest" store:"-" form:"-"`
	Attachment   []Attachment `json:"attachment" store:"-" form:"-"`
	Notification string       `json:"notification" store:"required,oneof=email slack" form:"required,oneof=email slack"`
	Reminder     string       `json:"reminder" store:"required,numeric" form:"required,numeric"`
}

type DurationIn struct {
	Hr string `json:"hr" store:"required,numeric" form:"required,numeric"`
	M  string `json:"m" store:"required,numeric" form:"required,numeric"`
}

// FieldError is a single contract violation, keyed by the json path of the
// offending field (nested paths use dots, e.g. "duration.hr").
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is the structured result of a failed contract check.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Get returns the message for a field path, or "" when the field passed.
func (e FieldErrors) Get(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// Contract validates Input payloads against one of the two tag sets.
type Contract struct {
	validate *validator.Validate
}

// NewStoreContract compiles the server-side contract: location may be null,
// date and time only need to be present.
func NewStoreContract() *Contract {
	return newContract("store")
}

// NewFormContract compiles the form contract: location must be a non-empty
// string and date/time must parse to valid values.
func NewFormContract() *Contract {
	return newContract("form")
}

func newContract(tagName string) *Contract {
	v := validator.New()
	v.SetTagName(tagName)
	v.RegisterTagNameFunc(jsonFieldName)
	// Registration only fails for blank tags; these are constants.
	_ = v.RegisterValidation("event_date", validDate)
	_ = v.RegisterValidation("event_time", validTime)
	_ = v.RegisterValidation("meeting_room", validMeetingRoom)
	return &Contract{validate: v}
}

// Validate checks the payload and returns nil on success or the field-level
// error list on failure. The payload is never mutated.
func (c *Contract) Validate(in Input) FieldErrors {
	err := c.validate.Struct(in)
	if err == nil {
		return nil
	}
	violations, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{{Field: "", Message: err.Error()}}
	}
	result := make(FieldErrors, 0, len(violations))
	for _, violation := range violations {
		result = append(result, FieldError{
			Field:   fieldPath(violation.Namespace()),
			Message: messageFor(violation.Tag()),
		})
	}
	return result
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// fieldPath strips the root struct name from a validator namespace, turning
// "Input.duration.hr" into "duration.hr".
func fieldPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

func messageFor(tag string) string {
	switch tag {
	case "required", "min":
		return "Required"
	case "event_date":
		return "Invalid Date Format"
	case "event_time":
		return "Invalid Time Format"
	case "numeric":
		return "Invalid Number"
	case "oneof", "meeting_room":
		return "Invalid Value"
	default:
		return "Invalid"
	}
}

// Layouts accepted for the form's date and time fields. The form submits
// RFC3339 timestamps from its pickers, but plain dates and clock times are
// accepted too.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02",
	"2006/01/02",
}

var timeLayouts = []string{
	time.RFC3339,
	"15:04:05",
	"15:04",
	"3:04 PM",
}

func parseAny(value string, layouts []string) bool {
	for _, layout := range layouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}

func validDate(fl validator.FieldLevel) bool {
	return parseAny(fl.Field().String(), dateLayouts)
}

func validTime(fl validator.FieldLevel) bool {
	return parseAny(fl.Field().String(), timeLayouts)
}

func validMeetingRoom(fl validator.FieldLevel) bool {
	return slices.Contains(MeetingRooms, fl.Field().String())
}

var emailValidator = validator.New()

// IsEmail reports whether the candidate is a well-formed email address. The
// form applies this per guest at add-time rather than at submit-time.
func IsEmail(candidate string) bool {
	return emailValidator.Var(candidate, "required,email") == nil
}
