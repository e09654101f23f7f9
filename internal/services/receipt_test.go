package services

import (
	"strings"
	"testing"
	"time"

	"github.com/bensefia-clinic/clinic-api/internal/models"
)

func sampleBookingAndReceipt(t *testing.T) (models.Booking, Receipt) {
	t.Helper()
	booking := models.Booking{
		ID:        "bk-1",
		Name:      "Jane Doe",
		Email:     "jane@x.com",
		Phone:     "+33 1 23 45",
		Service:   "crown",
		Date:      "2024-06-10",
		Time:      "10:00",
		Timezone:  "UTC",
		CreatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	return booking, NewBookingService(nil, time.UTC).Summarize(booking)
}

func TestRenderReceiptHTML(t *testing.T) {
	booking, receipt := sampleBookingAndReceipt(t)

	html, err := RenderReceiptHTML(booking, receipt)
	if err != nil {
		t.Fatalf("RenderReceiptHTML() error = %v", err)
	}

	for _, want := range []string{
		"Jane Doe",
		"Ceramic Crown",
		"USD 120",
		"Monday, June 10, 2024 at 10:00 AM",
		receipt.Number,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("RenderReceiptHTML() missing %q", want)
		}
	}
	if strings.Contains(html, "outside working hours") {
		t.Error("RenderReceiptHTML() shows notice for an in-hours booking")
	}
}

func TestRenderReceiptHTMLEscapes(t *testing.T) {
	booking, receipt := sampleBookingAndReceipt(t)
	booking.Name = "<script>alert(1)</script>"

	html, err := RenderReceiptHTML(booking, receipt)
	if err != nil {
		t.Fatalf("RenderReceiptHTML() error = %v", err)
	}
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Error("RenderReceiptHTML() did not escape patient input")
	}
}

func TestRenderReceiptTextNotice(t *testing.T) {
	booking, _ := sampleBookingAndReceipt(t)
	booking.Date = "2024-06-08" // Saturday
	booking.Time = "11:00"
	receipt := NewBookingService(nil, time.UTC).Summarize(booking)
	if !receipt.OutsideWorkingHours {
		t.Fatal("Summarize() Saturday booking not flagged")
	}

	text := RenderReceiptText(booking, receipt)
	if !strings.Contains(text, "outside working hours") {
		t.Errorf("RenderReceiptText() missing working-hours note:\n%s", text)
	}
	if !strings.Contains(text, receipt.Number) {
		t.Errorf("RenderReceiptText() missing receipt number:\n%s", text)
	}
}
