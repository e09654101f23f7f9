package services

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/bensefia-clinic/clinic-api/internal/models"
)

var receiptTmpl = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Arial, Helvetica, sans-serif; color: #222; background: #f5f7fb; }
.receipt { max-width: 560px; margin: 20px auto; background: #fff; border: 1px solid #e6eef6; border-radius: 8px; padding: 24px; }
.receipt-title { font-size: 22px; font-weight: bold; }
.receipt-subtitle { color: #666; margin-bottom: 12px; }
.receipt-item { display: flex; justify-content: space-between; padding: 6px 0; border-bottom: 1px solid #f0f0f0; }
.receipt-summary { margin-top: 16px; font-weight: bold; }
.notice { margin-top: 16px; padding: 10px; background: #fff6e5; border-radius: 6px; color: #8a5a00; }
@media print { body { background: #fff; } }
</style>
</head>
<body>
<div class="receipt">
  <div class="receipt-title">Booking Confirmed</div>
  <div class="receipt-subtitle">Dr. Bensefia Dental Clinic</div>
  <div class="receipt-item"><span>Receipt #</span><span>{{.Receipt.Number}}</span></div>
  <div class="receipt-item"><span>Date</span><span>{{.Receipt.Date}}</span></div>
  <div class="receipt-item"><span>Patient Name</span><span>{{.Booking.Name}}</span></div>
  <div class="receipt-item"><span>Email</span><span>{{.Booking.Email}}</span></div>
  {{if .Booking.Phone}}<div class="receipt-item"><span>Phone</span><span>{{.Booking.Phone}}</span></div>{{end}}
  <div class="receipt-item"><span>Service</span><span>{{.Receipt.ServiceName}}</span></div>
  <div class="receipt-item"><span>Appointment</span><span>{{.Receipt.AppointmentDate}}</span></div>
  <div class="receipt-summary">
    <div class="receipt-item"><span>Service Cost</span><span>USD {{.Receipt.ServicePrice}}</span></div>
    <div class="receipt-item"><span>Consultation Fee</span><span>USD {{.Receipt.ConsultationFee}}</span></div>
    <div class="receipt-item"><span>Total Amount</span><span>USD {{.Receipt.Total}}</span></div>
  </div>
  {{if .Receipt.OutsideWorkingHours}}<div class="notice">Requested slot is outside working hours (Mon&ndash;Fri 09:00&ndash;17:00). We will contact you to confirm.</div>{{end}}
</div>
</body>
</html>
`))

// RenderReceiptHTML renders the printable receipt used on screen and as the
// confirmation email body.
func RenderReceiptHTML(booking models.Booking, receipt Receipt) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Booking models.Booking
		Receipt Receipt
	}{booking, receipt}
	if err := receiptTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render receipt: %w", err)
	}
	return buf.String(), nil
}

// RenderReceiptText is the plain-text alternative for mail clients that do
// not render HTML.
func RenderReceiptText(booking models.Booking, receipt Receipt) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Booking Confirmed - Dr. Bensefia Dental Clinic\n\n")
	fmt.Fprintf(&buf, "Receipt #: %s\n", receipt.Number)
	fmt.Fprintf(&buf, "Date: %s\n", receipt.Date)
	fmt.Fprintf(&buf, "Patient: %s\n", booking.Name)
	fmt.Fprintf(&buf, "Service: %s\n", receipt.ServiceName)
	fmt.Fprintf(&buf, "Appointment: %s\n", receipt.AppointmentDate)
	fmt.Fprintf(&buf, "Total: USD %d\n", receipt.Total)
	if receipt.OutsideWorkingHours {
		fmt.Fprintf(&buf, "\nNote: the requested slot is outside working hours (Mon-Fri 09:00-17:00). We will contact you to confirm.\n")
	}
	return buf.String()
}
