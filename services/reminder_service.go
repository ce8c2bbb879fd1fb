package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"trimly-backend/models"
	"trimly-backend/storage"
	"trimly-backend/utils"
)

const reminderLogsKey = "trimly_reminder_logs"

// ReminderService scans for today's confirmed bookings each morning,
// creates a reminder notification per booking, and optionally delivers an
// SMS/WhatsApp message through Twilio when credentials are configured.
type ReminderService struct {
	bookings      *BookingService
	notifications *NotificationService
	store         *storage.Store
	client        *twilio.RestClient
	shopName      string
	cron          *cron.Cron
}

func NewReminderService(bookings *BookingService, notifications *NotificationService, store *storage.Store) *ReminderService {
	shopName := os.Getenv("TRIMLY_SHOP_NAME")
	if shopName == "" {
		shopName = "Trimly"
	}

	var client *twilio.RestClient
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	if accountSid != "" && authToken != "" {
		client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		})
	}

	return &ReminderService{
		bookings:      bookings,
		notifications: notifications,
		store:         store,
		client:        client,
		shopName:      shopName,
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendDailyReminders)

	c.Start()
	s.cron = c
	log.Println("Reminder scheduler started")
}

func (s *ReminderService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// SendDailyReminders processes every confirmed booking scheduled for today.
func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily reminder processing...")

	today := utils.DateKey(time.Now())
	count := 0
	for _, b := range s.bookings.All() {
		if b.Date != today || b.Status != models.StatusConfirmed {
			continue
		}
		s.remind(b)
		count++
	}

	log.Printf("Daily reminder processing completed (%d bookings)", count)
}

func (s *ReminderService) remind(b models.Booking) {
	if _, err := s.notifications.NotifyBookingReminder(s.shopName, b.Time); err != nil {
		log.Printf("Failed to persist reminder notification for booking %d: %v", b.ID, err)
	}

	message := fmt.Sprintf("Reminder: your %s appointment at %s is today at %s.", b.Service, s.shopName, b.Time)

	entry := models.ReminderLog{
		ID:        uuid.New(),
		BookingID: b.ID,
		Client:    b.Client,
		Phone:     b.Phone,
		Message:   message,
		Status:    "skipped",
		Channel:   "none",
		SentAt:    time.Now(),
	}

	if s.client != nil {
		to := b.Phone
		entry.Channel = "sms"
		from := os.Getenv("TWILIO_PHONE_NUMBER")

		// WhatsApp when the phone is in E.164 form
		if strings.HasPrefix(b.Phone, "+") {
			to = "whatsapp:" + b.Phone
			from = "whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER")
			entry.Channel = "whatsapp"
		}

		params := &twilioApi.CreateMessageParams{}
		params.SetTo(to)
		params.SetFrom(from)
		params.SetBody(message)

		resp, err := s.client.Api.CreateMessage(params)
		switch {
		case err != nil:
			log.Printf("Failed to send reminder to %s: %v", b.Phone, err)
			entry.Status = "failed"
			entry.ErrorMessage = err.Error()
		case resp.Sid != nil:
			log.Printf("Reminder sent to %s, SID: %s", b.Phone, *resp.Sid)
			entry.Status = "sent"
		default:
			log.Printf("Reminder sent to %s, but no SID returned", b.Phone)
			entry.Status = "sent"
		}
	}

	s.appendLog(entry)
}

func (s *ReminderService) appendLog(entry models.ReminderLog) {
	var logs []models.ReminderLog
	s.store.Get(reminderLogsKey, &logs)
	logs = append(logs, entry)
	if err := s.store.Set(reminderLogsKey, logs); err != nil {
		log.Printf("Failed to log reminder for booking %d: %v", entry.BookingID, err)
	}
}

// Logs returns the recorded reminder attempts, oldest first.
func (s *ReminderService) Logs() []models.ReminderLog {
	var logs []models.ReminderLog
	s.store.Get(reminderLogsKey, &logs)
	return logs
}
