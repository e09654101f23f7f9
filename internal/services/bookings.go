package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bensefia-clinic/clinic-api/internal/models"
	"github.com/bensefia-clinic/clinic-api/internal/store"
)

// ErrValidation marks a user-correctable booking problem (missing required
// field, unparseable date).
var ErrValidation = errors.New("bookings: invalid request")

// BookingRequest carries the raw booking form fields. Name, Email and
// Service are mandatory; Date and Time are optional and their absence means
// "to be scheduled".
type BookingRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Service  string `json:"service"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Timezone string `json:"timezone"`
	Notes    string `json:"notes"`
}

// Receipt is the human-readable summary computed at intake and rendered for
// the patient on screen and in the confirmation email.
type Receipt struct {
	Number              string `json:"number"`
	Date                string `json:"date"`
	ServiceName         string `json:"serviceName"`
	ServicePrice        int    `json:"servicePrice"`
	ConsultationFee     int    `json:"consultationFee"`
	Total               int    `json:"total"`
	AppointmentDate     string `json:"appointmentDate"`
	OutsideWorkingHours bool   `json:"outsideWorkingHours,omitempty"`
}

// BookingService validates and records appointment requests.
type BookingService struct {
	store      store.Store
	clinicZone *time.Location
}

func NewBookingService(s store.Store, clinicZone *time.Location) *BookingService {
	if clinicZone == nil {
		clinicZone = time.Local
	}
	return &BookingService{store: s, clinicZone: clinicZone}
}

// receiptNumber derives a reference from the current time, e.g. RCP-55520133.
func receiptNumber(now time.Time) string {
	millis := strconv.FormatInt(now.UnixMilli(), 10)
	return "RCP-" + millis[len(millis)-8:]
}

// Submit validates the request, computes the receipt and persists the
// booking. An out-of-hours slot is advisory: the receipt carries the flag
// but the booking is stored regardless. Persistence failure is returned to
// the caller; a booking the store did not accept is not a booking.
func (b *BookingService) Submit(ctx context.Context, req BookingRequest) (models.Booking, Receipt, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Service = strings.TrimSpace(req.Service)
	if req.Name == "" || req.Email == "" || req.Service == "" {
		return models.Booking{}, Receipt{}, fmt.Errorf("%w: name, email and service are required", ErrValidation)
	}

	loc := ResolveZone(req.Timezone, b.clinicZone)
	if _, _, err := ParseAppointment(req.Date, req.Time, loc); err != nil {
		return models.Booking{}, Receipt{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	now := time.Now()
	booking := models.Booking{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     strings.ToLower(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Service:   req.Service,
		Date:      req.Date,
		Time:      req.Time,
		Timezone:  loc.String(),
		Notes:     strings.TrimSpace(req.Notes),
		CreatedAt: now,
	}
	if err := b.store.AddBooking(ctx, booking); err != nil {
		return models.Booking{}, Receipt{}, fmt.Errorf("persist booking: %w", err)
	}
	return booking, b.Summarize(booking), nil
}

// Summarize recomputes the receipt for a booking. Receipt fields derive
// entirely from the stored record, so the printable receipt endpoint can
// rebuild them at any time.
func (b *BookingService) Summarize(booking models.Booking) Receipt {
	loc := ResolveZone(booking.Timezone, b.clinicZone)
	at, timed, _ := ParseAppointment(booking.Date, booking.Time, loc)
	info := LookupService(booking.Service)
	receipt := Receipt{
		Number:          receiptNumber(booking.CreatedAt),
		Date:            FormatReceiptDate(booking.CreatedAt),
		ServiceName:     info.Name,
		ServicePrice:    info.Price,
		ConsultationFee: 0,
		Total:           info.Price,
		AppointmentDate: FormatAppointmentDate(at, timed),
	}
	if timed {
		receipt.OutsideWorkingHours = OutsideWorkingHours(at)
	}
	return receipt
}

// Invite builds the calendar event for a stored booking: a one-hour slot
// when a time was given, an all-day event when only a date was, nil when the
// booking is still unscheduled.
func (b *BookingService) Invite(booking models.Booking, receipt Receipt) *CalendarEvent {
	loc := ResolveZone(booking.Timezone, b.clinicZone)
	at, timed, err := ParseAppointment(booking.Date, booking.Time, loc)
	if err != nil || at.IsZero() {
		return nil
	}
	desc := fmt.Sprintf("Booking %s for %s", booking.ID, booking.Name)
	if booking.Notes != "" {
		desc += "\nNotes: " + booking.Notes
	}
	return &CalendarEvent{
		UID:         booking.ID,
		Summary:     receipt.ServiceName,
		Description: desc,
		Location:    "Dr. Bensefia Dental Clinic",
		Start:       at,
		End:         at.Add(AppointmentDuration),
		AllDay:      !timed,
	}
}
