package store

import (
	"context"
	"errors"

	"github.com/bensefia-clinic/clinic-api/internal/models"
)

var (
	ErrDuplicateEmail = errors.New("store: email already registered")
	ErrNotFound       = errors.New("store: record not found")
)

// Store persists users and bookings. Every implementation serializes its
// writes: callers never coordinate access themselves.
type Store interface {
	CreateUser(ctx context.Context, user models.User) error
	UserByEmail(ctx context.Context, email string) (models.User, error)
	UpdateUser(ctx context.Context, user models.User) error

	AddBooking(ctx context.Context, booking models.Booking) error
	BookingByID(ctx context.Context, id string) (models.Booking, error)
	AttachPreviewLinks(ctx context.Context, bookingID, previewURL, adminPreviewURL string) error

	Close(ctx context.Context) error
}
