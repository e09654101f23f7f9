package handlers

import (
	"github.com/bensefia-clinic/clinic-api/internal/services"
	"github.com/bensefia-clinic/clinic-api/internal/store"
)

// Handler bundles the services every route needs. The store is injected at
// process start and travels with the handler instead of living in a global.
type Handler struct {
	Store           store.Store
	Accounts        *services.AccountService
	Bookings        *services.BookingService
	Sessions        *services.SessionManager
	NotificationSvc *services.NotificationService
}

func NewHandler(s store.Store, accounts *services.AccountService, bookings *services.BookingService, sessions *services.SessionManager, notificationSvc *services.NotificationService) *Handler {
	return &Handler{
		Store:           s,
		Accounts:        accounts,
		Bookings:        bookings,
		Sessions:        sessions,
		NotificationSvc: notificationSvc,
	}
}
