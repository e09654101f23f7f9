package store

import (
	"context"
	"strings"
	"sync"

	"github.com/bensefia-clinic/clinic-api/internal/models"
)

// MemoryStore keeps everything in process memory. It is the default when no
// store backend is configured and the backing store for handler tests.
type MemoryStore struct {
	mu       sync.Mutex
	users    []models.User
	bookings []models.Booking
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) CreateUser(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(user.Email)
	for _, u := range s.users {
		if u.Email == email {
			return ErrDuplicateEmail
		}
	}
	user.Email = email
	s.users = append(s.users, user)
	return nil
}

func (s *MemoryStore) UserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(email)
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *MemoryStore) UpdateUser(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == user.ID {
			s.users[i] = user
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) AddBooking(_ context.Context, booking models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = append(s.bookings, booking)
	return nil
}

func (s *MemoryStore) BookingByID(_ context.Context, id string) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Booking{}, ErrNotFound
}

func (s *MemoryStore) AttachPreviewLinks(_ context.Context, bookingID, previewURL, adminPreviewURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.bookings {
		if b.ID == bookingID {
			if previewURL != "" {
				s.bookings[i].PreviewURL = previewURL
			}
			if adminPreviewURL != "" {
				s.bookings[i].AdminPreviewURL = adminPreviewURL
			}
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) Close(_ context.Context) error {
	return nil
}
