package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bensefia-clinic/clinic-api/internal/models"
	"github.com/bensefia-clinic/clinic-api/internal/store"
)

// captureMailer records sent mail and hands back canned preview URLs, like a
// sandboxed provider would.
type captureMailer struct {
	mu      sync.Mutex
	sent    []Email
	preview string
	signal  chan struct{}
}

func newCaptureMailer(preview string) *captureMailer {
	return &captureMailer{preview: preview, signal: make(chan struct{}, 16)}
}

func (m *captureMailer) Send(email Email) (string, error) {
	m.mu.Lock()
	m.sent = append(m.sent, email)
	m.mu.Unlock()
	m.signal <- struct{}{}
	return m.preview, nil
}

func (m *captureMailer) wait(t *testing.T, n int) []Email {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for i := 0; i < n; i++ {
		select {
		case <-m.signal:
		case <-deadline:
			t.Fatalf("timed out waiting for %d emails", n)
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Email(nil), m.sent...)
}

func TestSendBookingConfirmation(t *testing.T) {
	st := store.NewMemoryStore()
	mailer := newCaptureMailer("https://preview.test/1")
	svc := NewNotificationService(mailer, st, "admin@clinic.test", "http://localhost/verify")

	booking := models.Booking{
		ID:        "bk-9",
		Name:      "J",
		Email:     "j@x.com",
		Service:   "crown",
		Date:      "2024-06-10",
		Time:      "10:00",
		Timezone:  "UTC",
		CreatedAt: time.Now(),
	}
	if err := st.AddBooking(context.Background(), booking); err != nil {
		t.Fatalf("AddBooking() error = %v", err)
	}
	bookings := NewBookingService(st, time.UTC)
	receipt := bookings.Summarize(booking)

	svc.SendBookingConfirmation(booking, receipt, bookings.Invite(booking, receipt))

	sent := mailer.wait(t, 2)
	var patient, admin *Email
	for i := range sent {
		switch sent[i].To {
		case "j@x.com":
			patient = &sent[i]
		case "admin@clinic.test":
			admin = &sent[i]
		}
	}
	if patient == nil || admin == nil {
		t.Fatalf("expected patient and admin emails, got %+v", sent)
	}
	if !strings.Contains(patient.Subject, "Ceramic Crown") {
		t.Errorf("patient subject = %q, want service name", patient.Subject)
	}
	if !strings.Contains(patient.Calendar, "UID:bk-9") {
		t.Errorf("patient calendar invite missing booking UID:\n%s", patient.Calendar)
	}
	if !strings.Contains(admin.Text, "bk-9") {
		t.Errorf("admin body missing booking id: %q", admin.Text)
	}

	// Preview links land back on the stored record, eventually.
	deadline := time.Now().Add(3 * time.Second)
	for {
		got, err := st.BookingByID(context.Background(), "bk-9")
		if err != nil {
			t.Fatalf("BookingByID() error = %v", err)
		}
		if got.PreviewURL == "https://preview.test/1" && got.AdminPreviewURL == "https://preview.test/1" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("preview links never attached: %+v", got)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestSendVerificationEmailSync(t *testing.T) {
	st := store.NewMemoryStore()
	mailer := newCaptureMailer("")
	svc := NewNotificationService(mailer, st, "admin@clinic.test", "http://localhost/verify.html")

	if err := svc.SendVerificationEmailSync("a@x.com", "TOK3N123"); err != nil {
		t.Fatalf("SendVerificationEmailSync() error = %v", err)
	}
	sent := mailer.wait(t, 1)
	if sent[0].To != "a@x.com" {
		t.Errorf("recipient = %q, want a@x.com", sent[0].To)
	}
	if !strings.Contains(sent[0].Text, "token=TOK3N123") {
		t.Errorf("body missing token link: %q", sent[0].Text)
	}
	if !strings.Contains(sent[0].HTML, "TOK3N123") {
		t.Errorf("html body missing typable token: %q", sent[0].HTML)
	}
}

func TestOutboxMailerCapturesPreview(t *testing.T) {
	mailer := NewOutboxMailer(t.TempDir(), "no-reply@dentalclinic.local")

	preview, err := mailer.Send(Email{
		To:      "j@x.com",
		Subject: "hello",
		Text:    "plain",
		HTML:    "<p>rich</p>",
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if !strings.HasPrefix(preview, "file://") || !strings.HasSuffix(preview, ".eml") {
		t.Errorf("Send() preview = %q, want file://...eml", preview)
	}
}
