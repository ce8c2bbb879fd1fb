package models

import "encoding/json"

type NotificationType string

const (
	NotificationBooking   NotificationType = "booking"
	NotificationReminder  NotificationType = "reminder"
	NotificationPayment   NotificationType = "payment"
	NotificationStatus    NotificationType = "status"
	NotificationMessage   NotificationType = "message"
	NotificationPromotion NotificationType = "promotion"
)

type Notification struct {
	ID      int64                  `json:"id"`
	Type    NotificationType       `json:"type"`
	Title   string                 `json:"title"`
	Message string                 `json:"message"`
	Link    string                 `json:"link,omitempty"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
	Read    bool                   `json:"read"`

	// Time is the creation instant in unix milliseconds. Timestamp and Date
	// are display strings captured at creation; they are never recomputed.
	Time      int64  `json:"time"`
	Timestamp string `json:"timestamp"`
	Date      string `json:"date"`
}

// NotificationSettings maps notification categories to enablement. Payment
// and status updates are always shown regardless of these flags.
type NotificationSettings struct {
	BookingConfirm  bool `json:"bookingConfirm"`
	BookingReminder bool `json:"bookingReminder"`
	Promotions      bool `json:"promotions"`
	Messages        bool `json:"messages"`
	Payments        bool `json:"payments"`
}

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		BookingConfirm:  true,
		BookingReminder: true,
		Promotions:      true,
		Messages:        true,
		Payments:        true,
	}
}

// UnmarshalJSON treats categories absent from the persisted blob as enabled.
func (s *NotificationSettings) UnmarshalJSON(data []byte) error {
	type alias NotificationSettings
	a := alias(DefaultNotificationSettings())
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*s = NotificationSettings(a)
	return nil
}

func (s NotificationSettings) Enabled(t NotificationType) bool {
	switch t {
	case NotificationBooking:
		return s.BookingConfirm
	case NotificationReminder:
		return s.BookingReminder
	case NotificationPromotion:
		return s.Promotions
	case NotificationMessage:
		return s.Messages
	case NotificationPayment, NotificationStatus:
		return true
	default:
		return true
	}
}
