package services

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"trimly-backend/models"
	"trimly-backend/storage"
	"trimly-backend/utils"
)

const (
	notificationsKey        = "trimly_notifications"
	allNotificationsKey     = "trimly_all_notifications"
	notificationSettingsKey = "trimly_notification_settings"

	// The "all" list keeps at most this many entries; the oldest is
	// evicted when a new one arrives.
	maxStoredNotifications = 100
)

// NotificationService owns the unread and all-notification lists, both
// newest-first, gated by the per-category settings. The in-memory lists are
// authoritative; persistence is best-effort.
type NotificationService struct {
	mu           sync.Mutex
	store        *storage.Store
	presenter    *Presenter
	all          []models.Notification
	unread       []models.Notification
	settings     models.NotificationSettings
	activeThread string
	lastID       int64
	now          func() time.Time
}

func NewNotificationService(store *storage.Store, presenter *Presenter) *NotificationService {
	return &NotificationService{
		store:     store,
		presenter: presenter,
		settings:  models.DefaultNotificationSettings(),
		now:       time.Now,
	}
}

// Init loads persisted settings and lists, writing defaults and a sample
// set when nothing has been stored yet.
func (s *NotificationService) Init() error {
	s.mu.Lock()

	if !s.store.Get(notificationSettingsKey, &s.settings) {
		s.settings = models.DefaultNotificationSettings()
		if err := s.store.Set(notificationSettingsKey, s.settings); err != nil {
			s.mu.Unlock()
			return notPersisted(err)
		}
	}

	hasAll := s.store.Get(allNotificationsKey, &s.all)
	hasUnread := s.store.Get(notificationsKey, &s.unread)

	var saveErr error
	if !hasAll || !hasUnread {
		s.all = sampleNotifications(s.now())
		s.unread = []models.Notification{s.all[0]}
		saveErr = s.persistLocked()
	}
	for _, n := range s.all {
		if n.ID > s.lastID {
			s.lastID = n.ID
		}
	}
	count := s.unreadCountLocked()
	s.mu.Unlock()

	s.presenter.RefreshBadge(count)
	return notPersisted(saveErr)
}

type NotificationInput struct {
	Type    models.NotificationType
	Title   string
	Message string
	Link    string
	Meta    map[string]interface{}
}

// Create builds a notification and prepends it to both lists, unless the
// category is disabled in settings, in which case nothing is created. The
// returned notification is nil when suppressed.
func (s *NotificationService) Create(in NotificationInput) (*models.Notification, error) {
	s.mu.Lock()
	if !s.settings.Enabled(in.Type) {
		s.mu.Unlock()
		return nil, nil
	}

	now := s.now()
	n := models.Notification{
		ID:        s.nextIDLocked(now),
		Type:      in.Type,
		Title:     in.Title,
		Message:   in.Message,
		Link:      in.Link,
		Meta:      in.Meta,
		Read:      false,
		Time:      now.UnixMilli(),
		Timestamp: now.Format("03:04 PM"),
		Date:      now.Format("1/2/2006"),
	}

	s.all = append([]models.Notification{n}, s.all...)
	if len(s.all) > maxStoredNotifications {
		s.all = s.all[:maxStoredNotifications]
	}
	s.unread = append([]models.Notification{n}, s.unread...)

	saveErr := s.persistLocked()
	count := s.unreadCountLocked()
	s.mu.Unlock()

	s.presenter.RefreshBadge(count)
	s.presenter.ShowToast(n.Title, n.Message, NotificationToastDuration)

	return &n, notPersisted(saveErr)
}

// MarkRead flags the entry in the all-list and drops it from unread. Both
// halves are no-ops for an unknown id, so the call is idempotent.
func (s *NotificationService) MarkRead(id int64) error {
	s.mu.Lock()
	for i := range s.all {
		if s.all[i].ID == id {
			s.all[i].Read = true
			break
		}
	}
	kept := s.unread[:0]
	for _, n := range s.unread {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	s.unread = kept

	saveErr := s.persistLocked()
	count := s.unreadCountLocked()
	s.mu.Unlock()

	s.presenter.RefreshBadge(count)
	return notPersisted(saveErr)
}

func (s *NotificationService) MarkAllRead() error {
	s.mu.Lock()
	for i := range s.all {
		s.all[i].Read = true
	}
	s.unread = []models.Notification{}

	saveErr := s.persistLocked()
	s.mu.Unlock()

	s.presenter.RefreshBadge(0)
	return notPersisted(saveErr)
}

func (s *NotificationService) ClearAll() error {
	s.mu.Lock()
	s.all = []models.Notification{}
	s.unread = []models.Notification{}

	saveErr := s.persistLocked()
	s.mu.Unlock()

	s.presenter.RefreshBadge(0)
	return notPersisted(saveErr)
}

// UnreadCount re-filters the unread list by read state rather than trusting
// its length. Every member should already be unread; the filter stays as a
// guard against a drifted persisted copy.
func (s *NotificationService) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unreadCountLocked()
}

func (s *NotificationService) All() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Notification, len(s.all))
	copy(out, s.all)
	return out
}

func (s *NotificationService) Unread() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Notification, len(s.unread))
	copy(out, s.unread)
	return out
}

func (s *NotificationService) Settings() models.NotificationSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *NotificationService) UpdateSettings(settings models.NotificationSettings) error {
	s.mu.Lock()
	s.settings = settings
	err := s.store.Set(notificationSettingsKey, settings)
	s.mu.Unlock()
	return notPersisted(err)
}

// SetActiveThread records which message conversation the user is currently
// viewing; NotifyNewMessage suppresses notifications for that thread.
func (s *NotificationService) SetActiveThread(barberID string) {
	s.mu.Lock()
	s.activeThread = barberID
	s.mu.Unlock()
}

func (s *NotificationService) NotifyBookingConfirmed(bookingID int, barberName string) (*models.Notification, error) {
	return s.Create(NotificationInput{
		Type:    models.NotificationBooking,
		Title:   "🎉 Booking Confirmed",
		Message: fmt.Sprintf("Your booking with %s has been confirmed.", barberName),
		Meta:    map[string]interface{}{"bookingId": bookingID, "barberName": barberName},
		Link:    "booking.html",
	})
}

func (s *NotificationService) NotifyBookingReminder(barberName, at string) (*models.Notification, error) {
	return s.Create(NotificationInput{
		Type:    models.NotificationReminder,
		Title:   "⏰ Upcoming Booking",
		Message: fmt.Sprintf("Your appointment with %s is at %s.", barberName, at),
		Meta:    map[string]interface{}{"barberName": barberName, "time": at},
		Link:    "booking.html",
	})
}

func (s *NotificationService) NotifyPaymentSuccess(amount int, barberName string) (*models.Notification, error) {
	return s.Create(NotificationInput{
		Type:    models.NotificationPayment,
		Title:   "✅ Payment Successful",
		Message: fmt.Sprintf("₦%s paid to %s.", groupDigits(amount), barberName),
		Meta:    map[string]interface{}{"amount": amount, "barberName": barberName},
		Link:    "booking.html",
	})
}

func (s *NotificationService) NotifyBookingStatusChange(status string, bookingID int) (*models.Notification, error) {
	return s.Create(NotificationInput{
		Type:    models.NotificationStatus,
		Title:   "📋 Booking Update",
		Message: fmt.Sprintf("Booking #%d is now %s.", bookingID, status),
		Meta:    map[string]interface{}{"bookingId": bookingID, "status": status},
		Link:    "booking.html",
	})
}

// NotifyNewMessage skips creation while the user is already viewing the
// same conversation.
func (s *NotificationService) NotifyNewMessage(barberName, barberID string) (*models.Notification, error) {
	s.mu.Lock()
	viewing := s.activeThread == barberID
	s.mu.Unlock()
	if viewing {
		return nil, nil
	}
	return s.Create(NotificationInput{
		Type:    models.NotificationMessage,
		Title:   "💬 New Message",
		Message: fmt.Sprintf("%s sent you a message.", barberName),
		Meta:    map[string]interface{}{"barberId": barberID, "barberName": barberName},
		Link:    "message.html?barberId=" + barberID,
	})
}

func (s *NotificationService) NotifyPromotion(offer, barberName string) (*models.Notification, error) {
	return s.Create(NotificationInput{
		Type:    models.NotificationPromotion,
		Title:   "🎁 Special Offer",
		Message: fmt.Sprintf("%s at %s!", offer, barberName),
		Meta:    map[string]interface{}{"offer": offer, "barberName": barberName},
		Link:    "Home.html",
	})
}

func (s *NotificationService) unreadCountLocked() int {
	count := 0
	for _, n := range s.unread {
		if !n.Read {
			count++
		}
	}
	return count
}

// nextIDLocked derives an id from the creation instant, bumping past the
// previous one when two notifications land in the same millisecond.
func (s *NotificationService) nextIDLocked(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *NotificationService) persistLocked() error {
	if err := s.store.Set(allNotificationsKey, s.all); err != nil {
		return err
	}
	return s.store.Set(notificationsKey, s.unread)
}

// groupDigits inserts thousands separators into a non-negative amount.
func groupDigits(n int) string {
	raw := strconv.Itoa(n)
	if n < 0 || len(raw) <= 3 {
		return raw
	}
	var out []byte
	lead := len(raw) % 3
	if lead > 0 {
		out = append(out, raw[:lead]...)
	}
	for i := lead; i < len(raw); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, raw[i:i+3]...)
	}
	return string(out)
}

// relativeDate labels an instant the way the notification list renders
// history entries.
func relativeDate(now, t time.Time) string {
	switch d := utils.DaysBetween(t, now); {
	case d <= 0:
		return "Today"
	case d == 1:
		return "Yesterday"
	default:
		return fmt.Sprintf("%d days ago", d)
	}
}

func sampleNotifications(now time.Time) []models.Notification {
	return []models.Notification{
		{
			ID:        1,
			Type:      models.NotificationBooking,
			Title:     "🎉 Booking Confirmed",
			Message:   "Your booking with Ariyo Barbing Services has been confirmed.",
			Time:      now.Add(-time.Hour).UnixMilli(),
			Read:      false,
			Timestamp: "10:30 AM",
			Date:      relativeDate(now, now.Add(-time.Hour)),
			Link:      "booking.html",
		},
		{
			ID:        2,
			Type:      models.NotificationPromotion,
			Title:     "🎁 Special Offer",
			Message:   "Get 20% off on your next booking!",
			Time:      now.Add(-24 * time.Hour).UnixMilli(),
			Read:      true,
			Timestamp: "2:20 PM",
			Date:      relativeDate(now, now.Add(-24*time.Hour)),
			Link:      "Home.html",
		},
		{
			ID:        3,
			Type:      models.NotificationMessage,
			Title:     "💬 New Message",
			Message:   "John sent you a message.",
			Time:      now.Add(-48 * time.Hour).UnixMilli(),
			Read:      true,
			Timestamp: "11:15 AM",
			Date:      relativeDate(now, now.Add(-48*time.Hour)),
			Link:      "message.html",
		},
		{
			ID:        4,
			Type:      models.NotificationPayment,
			Title:     "✅ Payment Successful",
			Message:   "₦5,000 paid to Elite Barbers.",
			Time:      now.Add(-72 * time.Hour).UnixMilli(),
			Read:      true,
			Timestamp: "4:45 PM",
			Date:      relativeDate(now, now.Add(-72*time.Hour)),
			Link:      "booking.html",
		},
	}
}
