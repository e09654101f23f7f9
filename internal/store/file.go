package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/bensefia-clinic/clinic-api/internal/models"
)

// document is the on-disk shape: one JSON file holding both collections.
type document struct {
	Users    []models.User    `json:"users"`
	Bookings []models.Booking `json:"bookings"`
}

// FileStore persists the whole document to a single JSON file. All mutations
// run under one mutex and rewrite the file before returning, so two
// concurrent booking submissions cannot interleave a read-modify-write and
// lose an update.
type FileStore struct {
	mu   sync.Mutex
	path string
	doc  document
}

func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}
	if err := json.Unmarshal(data, &s.doc); err != nil {
		return nil, fmt.Errorf("parse store file %s: %w", path, err)
	}
	return s, nil
}

// flush writes the document atomically: to a temp file first, then rename.
// Callers must hold s.mu.
func (s *FileStore) flush() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) CreateUser(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(user.Email)
	for _, u := range s.doc.Users {
		if u.Email == email {
			return ErrDuplicateEmail
		}
	}
	user.Email = email
	s.doc.Users = append(s.doc.Users, user)
	return s.flush()
}

func (s *FileStore) UserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(email)
	for _, u := range s.doc.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *FileStore) UpdateUser(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.doc.Users {
		if u.ID == user.ID {
			s.doc.Users[i] = user
			return s.flush()
		}
	}
	return ErrNotFound
}

func (s *FileStore) AddBooking(_ context.Context, booking models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Bookings = append(s.doc.Bookings, booking)
	return s.flush()
}

func (s *FileStore) BookingByID(_ context.Context, id string) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.doc.Bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Booking{}, ErrNotFound
}

func (s *FileStore) AttachPreviewLinks(_ context.Context, bookingID, previewURL, adminPreviewURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.doc.Bookings {
		if b.ID == bookingID {
			if previewURL != "" {
				s.doc.Bookings[i].PreviewURL = previewURL
			}
			if adminPreviewURL != "" {
				s.doc.Bookings[i].AdminPreviewURL = adminPreviewURL
			}
			return s.flush()
		}
	}
	return ErrNotFound
}

func (s *FileStore) Close(_ context.Context) error {
	return nil
}
