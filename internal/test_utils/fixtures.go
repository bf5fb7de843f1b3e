package test_utils

import "github.com/schedly/schedly/pkg/event"

// StringPtr returns a pointer to s, for nullable fields in test payloads.
func StringPtr(s string) *string {
	return &s
}

// ValidEventInput returns a payload passing both contracts.
func ValidEventInput() event.Input {
	return event.Input{
		Name:         "Standup",
		Description:  "Daily sync",
		Date:         "2024-01-10",
		Time:         "2024-01-10T09:00:00Z",
		Duration:     event.DurationIn{Hr: "0", M: "15"},
		Location:     StringPtr("HQ"),
		MeetingRoom:  "Conference Room 1",
		Guest:        []string{},
		Attachment:   []event.Attachment{},
		Notification: event.NotificationEmail,
		Reminder:     "1",
	}
}
