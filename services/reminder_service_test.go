package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trimly-backend/models"
	"trimly-backend/storage"
)

func TestSendDailyReminders(t *testing.T) {
	t.Setenv("TWILIO_ACCOUNT_SID", "")
	t.Setenv("TWILIO_AUTH_TOKEN", "")

	store := storage.Open(t.TempDir())
	bookings := NewBookingService(store)
	require.NoError(t, bookings.Load())
	notifications := NewNotificationService(store, nil)
	require.NoError(t, notifications.Init())

	svc := NewReminderService(bookings, notifications, store)
	before := len(notifications.All())

	svc.SendDailyReminders()

	// The seed has one confirmed booking dated today; the pending one on
	// the same date is skipped.
	logs := svc.Logs()
	require.Len(t, logs, 1)
	entry := logs[0]
	assert.Equal(t, 1, entry.BookingID)
	assert.Equal(t, "John Doe", entry.Client)
	assert.Equal(t, "skipped", entry.Status, "no Twilio client configured")
	assert.Equal(t, "none", entry.Channel)
	assert.Contains(t, entry.Message, "Haircut & Beard Trim")
	assert.NotEqual(t, entry.ID.String(), "00000000-0000-0000-0000-000000000000")

	all := notifications.All()
	require.Len(t, all, before+1)
	assert.Equal(t, models.NotificationReminder, all[0].Type)
	assert.Equal(t, "⏰ Upcoming Booking", all[0].Title)
}

func TestReminderLogsAccumulate(t *testing.T) {
	store := storage.Open(t.TempDir())
	svc := NewReminderService(nil, nil, store)

	svc.appendLog(models.ReminderLog{BookingID: 1, Status: "skipped", Channel: "none"})
	svc.appendLog(models.ReminderLog{BookingID: 2, Status: "skipped", Channel: "none"})

	logs := svc.Logs()
	require.Len(t, logs, 2)
	assert.Equal(t, 1, logs[0].BookingID)
	assert.Equal(t, 2, logs[1].BookingID)
}
