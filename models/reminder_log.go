package models

import (
	"time"

	"github.com/google/uuid"
)

// ReminderLog records one reminder delivery attempt for a booking.
type ReminderLog struct {
	ID           uuid.UUID `json:"id"`
	BookingID    int       `json:"bookingId"`
	Client       string    `json:"client"`
	Phone        string    `json:"phone"`
	Message      string    `json:"message"`
	Status       string    `json:"status"` // sent, failed, skipped
	ErrorMessage string    `json:"errorMessage,omitempty"`
	Channel      string    `json:"channel"` // whatsapp, sms, none
	SentAt       time.Time `json:"sentAt"`
}
