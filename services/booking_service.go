package services

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"trimly-backend/models"
	"trimly-backend/storage"
	"trimly-backend/utils"
)

const (
	bookingsKey   = "bookings"
	onboardingKey = "onboardingData"

	// Fallback price when a booking names a service with no definition.
	defaultServicePrice = 5000

	slotInterval = 30 * time.Minute
)

type TabFilter string

const (
	TabAll       TabFilter = "all"
	TabToday     TabFilter = "today"
	TabUpcoming  TabFilter = "upcoming"
	TabPending   TabFilter = "pending"
	TabConfirmed TabFilter = "confirmed"
	TabCompleted TabFilter = "completed"
	TabCancelled TabFilter = "cancelled"
)

type SortOrder string

const (
	SortDateDesc  SortOrder = "date-desc"
	SortDateAsc   SortOrder = "date-asc"
	SortPriceDesc SortOrder = "price-desc"
	SortPriceAsc  SortOrder = "price-asc"
)

// FilterState is the full set of knobs the booking table view depends on.
type FilterState struct {
	Tab       TabFilter `json:"tab"`
	DateRange string    `json:"dateRange"` // all, today, week, month
	Service   string    `json:"service"`   // "all" or a service name
	Status    string    `json:"status"`    // "all" or a booking status
	Sort      SortOrder `json:"sort"`
}

func DefaultFilterState() FilterState {
	return FilterState{
		Tab:       TabAll,
		DateRange: "all",
		Service:   "all",
		Status:    "all",
		Sort:      SortDateDesc,
	}
}

type TimeSlot struct {
	Value   string `json:"value"`   // 24h HH:MM
	Display string `json:"display"` // 12h clock
}

type CalendarDay struct {
	Day      int              `json:"day"`
	Bookings []models.Booking `json:"bookings"` // at most the first two
	More     int              `json:"more"`
}

type BookingStats struct {
	Total     int `json:"totalBookings"`
	Today     int `json:"todayBookings"`
	Confirmed int `json:"confirmedBookings"`
	Revenue   int `json:"totalRevenue"`
}

// BookingService owns the authoritative booking list plus the view state
// (filters, calendar month). All access goes through the mutex; the
// in-memory slice stays the source of truth even when a persist fails.
type BookingService struct {
	mu           sync.Mutex
	store        *storage.Store
	bookings     []models.Booking
	services     []models.ServiceDefinition
	availability models.Availability
	filters      FilterState
	calMonth     time.Month
	calYear      int
	now          func() time.Time
}

func NewBookingService(store *storage.Store) *BookingService {
	now := time.Now()
	return &BookingService{
		store:    store,
		filters:  DefaultFilterState(),
		calMonth: now.Month(),
		calYear:  now.Year(),
		now:      time.Now,
	}
}

// Load reads the persisted booking list, seeding the sample set when the
// key is absent or does not hold a well-formed array, then runs the
// normalization pass so every booking has all fields populated. Service
// definitions load alongside, with the defaults written on first run.
func (s *BookingService) Load() error {
	s.mu.Lock()
	today := utils.DateKey(s.now())

	var loaded []models.Booking
	seeded := false
	if !s.store.Get(bookingsKey, &loaded) || loaded == nil {
		loaded = sampleBookings(s.now())
		seeded = true
	}
	for i := range loaded {
		loaded[i].Normalize(today)
	}
	s.bookings = loaded

	var saveErr error
	if seeded {
		saveErr = s.store.Set(bookingsKey, s.bookings)
	}

	var onboarding models.OnboardingData
	if !s.store.Get(onboardingKey, &onboarding) || len(onboarding.Services) == 0 {
		onboarding = models.DefaultOnboardingData()
		if err := s.store.Set(onboardingKey, onboarding); err != nil && saveErr == nil {
			saveErr = err
		}
	}
	s.services = onboarding.Services
	s.availability = onboarding.Availability
	s.mu.Unlock()

	return notPersisted(saveErr)
}

type CreateBookingInput struct {
	Client  string `json:"client"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Notes   string `json:"notes"`
	Status  string `json:"status"`
}

// Create validates presence of the required fields, assigns the next id and
// the service's price, and appends the booking. The new id is always
// strictly greater than every existing one.
func (s *BookingService) Create(in CreateBookingInput) (*models.Booking, error) {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"client", in.Client},
		{"phone", in.Phone},
		{"service", in.Service},
		{"date", in.Date},
		{"time", in.Time},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}
	if strings.TrimSpace(in.Client) == models.UnknownClient {
		return nil, &ValidationError{Fields: []string{"client"}}
	}

	s.mu.Lock()

	price := defaultServicePrice
	for _, def := range s.services {
		if def.Name == in.Service {
			price = def.Price
			break
		}
	}

	id := 1
	for _, b := range s.bookings {
		if b.ID >= id {
			id = b.ID + 1
		}
	}

	client := strings.TrimSpace(in.Client)
	status := models.BookingStatus(in.Status)
	if status == "" {
		status = models.StatusPending
	}

	booking := models.Booking{
		ID:             id,
		Client:         client,
		ClientInitials: models.Initials(client),
		Phone:          strings.TrimSpace(in.Phone),
		Service:        in.Service,
		Date:           in.Date,
		Time:           displayClock(in.Time),
		Price:          price,
		Status:         status,
		Notes:          strings.TrimSpace(in.Notes),
		CreatedAt:      s.now(),
	}
	s.bookings = append(s.bookings, booking)
	saveErr := s.store.Set(bookingsKey, s.bookings)
	s.mu.Unlock()

	return &booking, notPersisted(saveErr)
}

// UpdateStatus mutates the booking's status in place. An unknown id is a
// silent no-op, reported through the changed flag.
func (s *BookingService) UpdateStatus(id int, status models.BookingStatus) (bool, error) {
	s.mu.Lock()
	changed := false
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			s.bookings[i].Status = status
			changed = true
			break
		}
	}
	var saveErr error
	if changed {
		saveErr = s.store.Set(bookingsKey, s.bookings)
	}
	s.mu.Unlock()
	return changed, notPersisted(saveErr)
}

func (s *BookingService) Delete(id int) (bool, error) {
	s.mu.Lock()
	kept := make([]models.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	changed := len(kept) != len(s.bookings)
	s.bookings = kept
	var saveErr error
	if changed {
		saveErr = s.store.Set(bookingsKey, s.bookings)
	}
	s.mu.Unlock()
	return changed, notPersisted(saveErr)
}

func (s *BookingService) Get(id int) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.ID == id {
			out := b
			return &out, nil
		}
	}
	return nil, ErrBookingNotFound
}

func (s *BookingService) All() []models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out
}

func (s *BookingService) Services() []models.ServiceDefinition {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ServiceDefinition, len(s.services))
	copy(out, s.services)
	return out
}

func (s *BookingService) SetFilters(f FilterState) {
	s.mu.Lock()
	s.filters = f
	s.mu.Unlock()
}

func (s *BookingService) Filters() FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// DerivedView applies the current filter state to the booking list. The
// projection itself is pure; two calls with unchanged state return
// identical output.
func (s *BookingService) DerivedView() []models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deriveView(s.bookings, s.filters, s.now())
}

// deriveView filters and sorts in a fixed order: tab, date range, service,
// status, then a stable sort so ties keep their input order.
func deriveView(bookings []models.Booking, f FilterState, now time.Time) []models.Booking {
	today := utils.DateKey(now)

	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		switch f.Tab {
		case TabToday:
			if b.Date != today {
				continue
			}
		case TabUpcoming:
			if b.Date <= today {
				continue
			}
		case TabPending, TabConfirmed, TabCompleted, TabCancelled:
			if string(b.Status) != string(f.Tab) {
				continue
			}
		}
		out = append(out, b)
	}

	if f.DateRange != "" && f.DateRange != "all" {
		weekStart := utils.DateKey(utils.StartOfWeek(now))
		monthStart := utils.DateKey(utils.StartOfMonth(now))
		kept := out[:0]
		for _, b := range out {
			switch f.DateRange {
			case "today":
				if b.Date != today {
					continue
				}
			case "week":
				if b.Date < weekStart {
					continue
				}
			case "month":
				if b.Date < monthStart {
					continue
				}
			}
			kept = append(kept, b)
		}
		out = kept
	}

	if f.Service != "" && f.Service != "all" {
		kept := out[:0]
		for _, b := range out {
			if b.Service == f.Service {
				kept = append(kept, b)
			}
		}
		out = kept
	}

	if f.Status != "" && f.Status != "all" {
		kept := out[:0]
		for _, b := range out {
			if string(b.Status) == f.Status {
				kept = append(kept, b)
			}
		}
		out = kept
	}

	sort.SliceStable(out, func(i, j int) bool {
		switch f.Sort {
		case SortDateAsc:
			return out[i].Date < out[j].Date
		case SortPriceDesc:
			return out[i].Price > out[j].Price
		case SortPriceAsc:
			return out[i].Price < out[j].Price
		default: // date-desc
			return out[i].Date > out[j].Date
		}
	})

	return out
}

// SetCalendar moves the calendar view to the given month.
func (s *BookingService) SetCalendar(year int, month time.Month) {
	s.mu.Lock()
	s.calYear = year
	s.calMonth = month
	s.mu.Unlock()
}

func (s *BookingService) Calendar() (int, time.Month) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calYear, s.calMonth
}

// CalendarProjection groups the month's bookings by day. Each day carries
// at most its first two bookings plus a count of the overflow; it is a
// rendering projection only.
func (s *BookingService) CalendarProjection(year int, month time.Month) map[int]CalendarDay {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	byDay := make(map[int][]models.Booking)
	for _, b := range s.bookings {
		if !strings.HasPrefix(b.Date, prefix) || len(b.Date) != len(prefix)+2 {
			continue
		}
		day, err := strconv.Atoi(b.Date[len(prefix):])
		if err != nil || day < 1 || day > 31 {
			continue
		}
		byDay[day] = append(byDay[day], b)
	}

	out := make(map[int]CalendarDay, len(byDay))
	for day, list := range byDay {
		visible := list
		more := 0
		if len(list) > 2 {
			visible = list[:2]
			more = len(list) - 2
		}
		out[day] = CalendarDay{Day: day, Bookings: visible, More: more}
	}
	return out
}

// AvailableTimeSlots generates the open 30-minute slots for a date within
// the shop's working hours, skipping any slot an existing booking already
// occupies. Stored times in either "HH:MM" or "H:MM AM/PM" form are
// normalized before comparison.
func (s *BookingService) AvailableTimeSlots(date string) []TimeSlot {
	s.mu.Lock()
	defer s.mu.Unlock()

	booked := make(map[string]bool)
	for _, b := range s.bookings {
		if b.Date != date {
			continue
		}
		if key, ok := normalizeClock(b.Time); ok {
			booked[key] = true
		}
	}

	start := s.availability.StartTime
	end := s.availability.EndTime
	if start == "" || end == "" {
		start, end = "09:00", "18:00"
	}

	slots := []TimeSlot{}
	cur, err1 := time.Parse("15:04", start)
	limit, err2 := time.Parse("15:04", end)
	if err1 != nil || err2 != nil {
		return slots
	}
	for cur.Before(limit) {
		value := cur.Format("15:04")
		if !booked[value] {
			slots = append(slots, TimeSlot{Value: value, Display: displayClock(value)})
		}
		cur = cur.Add(slotInterval)
	}
	return slots
}

// Stats summarizes the list for the dashboard cards.
func (s *BookingService) Stats() BookingStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := utils.DateKey(s.now())
	stats := BookingStats{Total: len(s.bookings)}
	for _, b := range s.bookings {
		if b.Date == today {
			stats.Today++
		}
		if b.Status == models.StatusConfirmed {
			stats.Confirmed++
		}
		stats.Revenue += b.Price
	}
	return stats
}

var clockPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})`)

// normalizeClock reduces a stored time to 24-hour HH:MM, handling both
// "14:30" and "2:30 PM".
func normalizeClock(raw string) (string, bool) {
	m := clockPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	hour, _ := strconv.Atoi(m[1])
	minute := m[2]
	upper := strings.ToUpper(raw)
	if strings.Contains(upper, "PM") && hour < 12 {
		hour += 12
	}
	if strings.Contains(upper, "AM") && hour == 12 {
		hour = 0
	}
	if hour > 23 {
		return "", false
	}
	return fmt.Sprintf("%02d:%s", hour, minute), true
}

// displayClock renders a 24-hour HH:MM as a 12-hour clock; anything else
// passes through untouched.
func displayClock(raw string) string {
	t, err := time.Parse("15:04", raw)
	if err != nil {
		return raw
	}
	return t.Format("3:04 PM")
}

func sampleBookings(now time.Time) []models.Booking {
	today := utils.DateKey(now)
	tomorrow := utils.DateKey(now.AddDate(0, 0, 1))
	nextWeek := utils.DateKey(now.AddDate(0, 0, 7))

	list := []models.Booking{
		{
			ID:      1,
			Client:  "John Doe",
			Phone:   "+1 (555) 123-4567",
			Service: "Haircut & Beard Trim",
			Date:    today,
			Time:    "10:00 AM",
			Price:   8000,
			Status:  models.StatusConfirmed,
			Notes:   "Regular customer, prefers fade on sides",
		},
		{
			ID:      2,
			Client:  "Michael Smith",
			Phone:   "+1 (555) 987-6543",
			Service: "Beard Trim Only",
			Date:    today,
			Time:    "2:30 PM",
			Price:   3000,
			Status:  models.StatusPending,
			Notes:   "First time customer",
		},
		{
			ID:      3,
			Client:  "Robert Johnson",
			Phone:   "+1 (555) 456-7890",
			Service: "Full Service (Haircut, Beard, Shave)",
			Date:    tomorrow,
			Time:    "11:00 AM",
			Price:   12000,
			Status:  models.StatusConfirmed,
			Notes:   "Special occasion - wedding",
		},
		{
			ID:      4,
			Client:  "James Wilson",
			Phone:   "+1 (555) 234-5678",
			Service: "Haircut",
			Date:    nextWeek,
			Time:    "3:00 PM",
			Price:   5000,
			Status:  models.StatusCompleted,
			Notes:   "Completed successfully",
		},
		{
			ID:      5,
			Client:  "David Brown",
			Phone:   "+1 (555) 876-5432",
			Service: "Kids Haircut",
			Date:    nextWeek,
			Time:    "4:30 PM",
			Price:   4000,
			Status:  models.StatusCancelled,
			Notes:   "Client rescheduled",
		},
	}
	for i := range list {
		list[i].ClientInitials = models.Initials(list[i].Client)
		list[i].CreatedAt = now
	}
	return list
}
