package models

import "time"

// Fixed alert text shown to the user
const (
	SuccessTitle = "Your ideal bedtime is:"
	ErrorTitle   = "Error"
	ErrorMessage = "Sorry, there was a problem calculating your bedtime."
)

// Alert is the title/message pair surfaced through the notification
type Alert struct {
	Title   string
	Message string
	Show    bool
	Bedtime time.Time // Zero when the prediction failed
}

// NewBedtimeAlert creates a success alert for the formatted bedtime
func NewBedtimeAlert(bedtime time.Time, formatted string) Alert {
	return Alert{
		Title:   SuccessTitle,
		Message: formatted,
		Show:    true,
		Bedtime: bedtime,
	}
}

// NewErrorAlert creates the generic failure alert
func NewErrorAlert() Alert {
	return Alert{
		Title:   ErrorTitle,
		Message: ErrorMessage,
		Show:    true,
	}
}

// IsError returns true if the alert reports a failed prediction
func (a Alert) IsError() bool {
	return a.Title == ErrorTitle
}
