package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/bensefia-clinic/clinic-api/internal/models"
	"github.com/bensefia-clinic/clinic-api/internal/store"
)

// NotificationService sends confirmation and admin emails. Every send is
// fire-and-forget: a goroutine per dispatch, failures only logged. Booking
// and registration success never depend on email success.
type NotificationService struct {
	mailer     Mailer
	store      store.Store
	adminEmail string
	verifyBase string
}

func NewNotificationService(mailer Mailer, s store.Store, adminEmail, verifyBase string) *NotificationService {
	return &NotificationService{
		mailer:     mailer,
		store:      s,
		adminEmail: adminEmail,
		verifyBase: verifyBase,
	}
}

// SendVerificationEmail emails a verification link and token without
// blocking the API response.
func (s *NotificationService) SendVerificationEmail(email, token string) {
	go func() {
		if err := s.SendVerificationEmailSync(email, token); err != nil {
			log.Printf("Failed to send verification email to %s: %v", email, err)
		}
	}()
}

// SendVerificationEmailSync is the blocking variant used by the resend
// endpoint, which reports send failures to the caller.
func (s *NotificationService) SendVerificationEmailSync(email, token string) error {
	verifyLink := fmt.Sprintf("%s?token=%s", s.verifyBase, url.QueryEscape(token))
	msg := Email{
		To:      email,
		Subject: "Verify your email for Dr. Bensefia Clinic",
		Text:    fmt.Sprintf("Please verify your email by visiting: %s", verifyLink),
		HTML: fmt.Sprintf(
			"<p>Please verify your email by clicking the link below:</p><p><a href=%q>Verify Email</a></p><p>If the link does not work, use this token: <strong>%s</strong></p>",
			verifyLink, token),
	}
	preview, err := s.mailer.Send(msg)
	if err != nil {
		return err
	}
	if preview != "" {
		log.Printf("Verification email preview for %s: %s", email, preview)
	}
	return nil
}

// SendBookingConfirmation emails the patient receipt and the admin notice
// for a persisted booking, attaching the calendar invite when the booking
// has a date. Captured preview links are written back onto the stored
// booking best-effort.
func (s *NotificationService) SendBookingConfirmation(booking models.Booking, receipt Receipt, event *CalendarEvent) {
	go func() {
		invite := ""
		if event != nil {
			invite = event.Encode()
		}

		html, err := RenderReceiptHTML(booking, receipt)
		if err != nil {
			log.Printf("Failed to render receipt for booking %s: %v", booking.ID, err)
		}
		patientPreview, err := s.mailer.Send(Email{
			To:       booking.Email,
			Subject:  fmt.Sprintf("Booking confirmed: %s (%s)", receipt.ServiceName, receipt.Number),
			Text:     RenderReceiptText(booking, receipt),
			HTML:     html,
			Calendar: invite,
		})
		if err != nil {
			log.Printf("Failed to send confirmation email for booking %s: %v", booking.ID, err)
		}

		adminPreview, err := s.mailer.Send(Email{
			To:      s.adminEmail,
			Subject: fmt.Sprintf("New booking: %s for %s", receipt.ServiceName, booking.Name),
			Text: fmt.Sprintf("Booking %s\nPatient: %s <%s>\nPhone: %s\nService: %s\nAppointment: %s\nNotes: %s\n",
				booking.ID, booking.Name, booking.Email, booking.Phone, receipt.ServiceName, receipt.AppointmentDate, booking.Notes),
			Calendar: invite,
		})
		if err != nil {
			log.Printf("Failed to send admin email for booking %s: %v", booking.ID, err)
		}

		if patientPreview == "" && adminPreview == "" {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.store.AttachPreviewLinks(ctx, booking.ID, patientPreview, adminPreview); err != nil {
			log.Printf("Failed to attach preview links to booking %s: %v", booking.ID, err)
		}
	}()
}
