package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationSettings_UnmarshalDefaultsAbsentToEnabled(t *testing.T) {
	var s NotificationSettings
	require.NoError(t, json.Unmarshal([]byte(`{"promotions":false}`), &s))

	assert.False(t, s.Promotions)
	assert.True(t, s.BookingConfirm)
	assert.True(t, s.BookingReminder)
	assert.True(t, s.Messages)
	assert.True(t, s.Payments)
}

func TestNotificationSettings_Enabled(t *testing.T) {
	s := NotificationSettings{} // everything off

	assert.False(t, s.Enabled(NotificationBooking))
	assert.False(t, s.Enabled(NotificationReminder))
	assert.False(t, s.Enabled(NotificationPromotion))
	assert.False(t, s.Enabled(NotificationMessage))

	// Payment and status updates always show.
	assert.True(t, s.Enabled(NotificationPayment))
	assert.True(t, s.Enabled(NotificationStatus))
}
