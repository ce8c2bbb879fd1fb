package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"trimly-backend/models"
	"trimly-backend/services"
	"trimly-backend/utils"
)

type BookingController struct {
	bookings      *services.BookingService
	notifications *services.NotificationService
	presenter     *services.Presenter
}

func NewBookingController(bookings *services.BookingService, notifications *services.NotificationService, presenter *services.Presenter) *BookingController {
	return &BookingController{
		bookings:      bookings,
		notifications: notifications,
		presenter:     presenter,
	}
}

// UpdateStatusInput defines the expected JSON structure for a status change
type UpdateStatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed completed cancelled"`
}

// CreateBooking creates a new booking from the submitted form fields
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var input services.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking, err := bc.bookings.Create(input)
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		utils.RespondWithError(c, http.StatusBadRequest, vErr.Error())
		return
	}

	bc.presenter.ShowToast("Booking created", fmt.Sprintf("Booking created for %s", booking.Client), services.BookingToastDuration)

	payload := gin.H{"booking": booking}
	if errors.Is(err, services.ErrNotPersisted) {
		payload["warning"] = "Booking kept in memory but could not be saved; it may not survive a restart"
	}
	c.JSON(http.StatusCreated, payload)
}

// GetBookings applies the query-string filters and returns the derived view
func (bc *BookingController) GetBookings(c *gin.Context) {
	filters := services.FilterState{
		Tab:       services.TabFilter(c.DefaultQuery("tab", "all")),
		DateRange: c.DefaultQuery("date", "all"),
		Service:   c.DefaultQuery("service", "all"),
		Status:    c.DefaultQuery("status", "all"),
		Sort:      services.SortOrder(c.DefaultQuery("sort", "date-desc")),
	}
	bc.bookings.SetFilters(filters)

	c.JSON(http.StatusOK, bc.bookings.DerivedView())
}

// GetBooking retrieves a specific booking by ID
func (bc *BookingController) GetBooking(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	booking, err := bc.bookings.Get(id)
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		return
	}

	c.JSON(http.StatusOK, booking)
}

// UpdateBookingStatus transitions a booking to a new status. An unknown id
// is a no-op rather than an error.
func (bc *BookingController) UpdateBookingStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	var input UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	changed, err := bc.bookings.UpdateStatus(id, models.BookingStatus(input.Status))
	if !changed {
		c.JSON(http.StatusOK, gin.H{"message": "No booking changed"})
		return
	}

	bc.notifications.NotifyBookingStatusChange(input.Status, id)
	bc.presenter.ShowToast("Booking updated", fmt.Sprintf("Booking marked as %s", input.Status), services.BookingToastDuration)

	payload := gin.H{"message": "Booking status updated"}
	if errors.Is(err, services.ErrNotPersisted) {
		payload["warning"] = "Change kept in memory but could not be saved; it may not survive a restart"
	}
	c.JSON(http.StatusOK, payload)
}

// DeleteBooking removes a booking by id
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	changed, err := bc.bookings.Delete(id)
	if !changed {
		c.JSON(http.StatusOK, gin.H{"message": "No booking changed"})
		return
	}

	bc.presenter.ShowToast("Booking deleted", "Booking deleted", services.BookingToastDuration)

	payload := gin.H{"message": "Booking deleted"}
	if errors.Is(err, services.ErrNotPersisted) {
		payload["warning"] = "Change kept in memory but could not be saved; it may not survive a restart"
	}
	c.JSON(http.StatusOK, payload)
}

// GetCalendar returns the per-day booking projection for a month. Without
// query parameters it stays on the month the view last navigated to.
func (bc *BookingController) GetCalendar(c *gin.Context) {
	curYear, curMonth := bc.bookings.Calendar()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(curYear)))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid year")
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(curMonth))))
	if err != nil || month < 1 || month > 12 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid month")
		return
	}

	bc.bookings.SetCalendar(year, time.Month(month))
	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": month,
		"days":  bc.bookings.CalendarProjection(year, time.Month(month)),
	})
}

// GetTimeSlots lists the open 30-minute slots for a date
func (bc *BookingController) GetTimeSlots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "date query parameter is required")
		return
	}

	c.JSON(http.StatusOK, bc.bookings.AvailableTimeSlots(date))
}

// ExportBookings streams the booking list as a CSV download
func (bc *BookingController) ExportBookings(c *gin.Context) {
	data, filename := bc.bookings.ExportCSV()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// GetServices lists the configured service definitions
func (bc *BookingController) GetServices(c *gin.Context) {
	c.JSON(http.StatusOK, bc.bookings.Services())
}
