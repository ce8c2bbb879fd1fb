package models

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// UnknownClient is the sentinel written in place of a missing client name.
// It is never accepted as input on a new booking.
const UnknownClient = "Unknown Client"

const UnknownService = "Unknown Service"

type Booking struct {
	ID             int           `json:"id"`
	Client         string        `json:"client"`
	ClientInitials string        `json:"clientInitials"`
	Phone          string        `json:"phone"`
	Service        string        `json:"service"`
	Date           string        `json:"date"` // YYYY-MM-DD
	Time           string        `json:"time"`
	Price          int           `json:"price"` // minor currency units
	Status         BookingStatus `json:"status"`
	Notes          string        `json:"notes"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// Normalize back-fills every missing field with its safe default. It runs
// once over each booking at load time, so readers never see a partial record.
func (b *Booking) Normalize(today string) {
	if strings.TrimSpace(b.Client) == "" {
		b.Client = UnknownClient
	}
	if b.ClientInitials == "" || b.ClientInitials == "??" {
		b.ClientInitials = Initials(b.Client)
	}
	if b.Service == "" {
		b.Service = UnknownService
	}
	if b.Phone == "" {
		b.Phone = "No phone"
	}
	if b.Time == "" {
		b.Time = "No time"
	}
	if b.Price < 0 {
		b.Price = 0
	}
	if b.Status == "" {
		b.Status = StatusPending
	}
	if b.Date == "" {
		b.Date = today
	}
}

// Initials derives a two-letter avatar label from a client name: first
// letters of the first two words, or the first two letters of a single word.
// Missing or sentinel names come back as "??".
func Initials(name string) string {
	if name == "" || name == UnknownClient {
		return "??"
	}
	words := strings.Fields(name)
	if len(words) == 0 {
		return "??"
	}
	if len(words) == 1 {
		r := []rune(words[0])
		if len(r) > 2 {
			r = r[:2]
		}
		return strings.ToUpper(string(r))
	}
	first := []rune(words[0])
	second := []rune(words[1])
	return strings.ToUpper(string(first[0]) + string(second[0]))
}
