package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bensefia-clinic/clinic-api/internal/services"
	"github.com/bensefia-clinic/clinic-api/internal/store"
)

// CreateBooking validates and records an appointment request. The response
// waits for persistence but never for the confirmation emails.
func (h *Handler) CreateBooking(c *gin.Context) {
	var req services.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "reason": "invalid"})
		return
	}

	booking, receipt, err := h.Bookings.Submit(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "reason": "invalid"})
			return
		}
		log.Printf("CreateBooking: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "reason": "store_failed"})
		return
	}

	h.NotificationSvc.SendBookingConfirmation(booking, receipt, h.Bookings.Invite(booking, receipt))

	resp := gin.H{"success": true, "booking": booking, "receipt": receipt}
	if receipt.OutsideWorkingHours {
		resp["notice"] = "outside_working_hours"
	}
	c.JSON(http.StatusCreated, resp)
}

// GetBookingReceipt serves the printable HTML receipt for a stored booking.
func (h *Handler) GetBookingReceipt(c *gin.Context) {
	booking, err := h.Store.BookingByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "reason": "not_found"})
			return
		}
		log.Printf("GetBookingReceipt: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "reason": "internal"})
		return
	}

	receipt := h.Bookings.Summarize(booking)
	html, err := services.RenderReceiptHTML(booking, receipt)
	if err != nil {
		log.Printf("GetBookingReceipt: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "reason": "internal"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
