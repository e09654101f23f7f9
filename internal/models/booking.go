package models

import "time"

// Booking is a patient's appointment request. Records are insert-only: once
// stored they are never mutated except for the late attachment of email
// preview links by the notification dispatcher.
type Booking struct {
	ID              string    `bson:"_id" json:"id"`
	Name            string    `bson:"name" json:"name"`
	Email           string    `bson:"email" json:"email"`
	Phone           string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Service         string    `bson:"service" json:"service"`
	Date            string    `bson:"date,omitempty" json:"date,omitempty"` // YYYY-MM-DD, empty = to be scheduled
	Time            string    `bson:"time,omitempty" json:"time,omitempty"` // HH:MM, empty = to be scheduled
	Timezone        string    `bson:"timezone,omitempty" json:"timezone,omitempty"`
	Notes           string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	PreviewURL      string    `bson:"previewUrl,omitempty" json:"previewUrl,omitempty"`
	AdminPreviewURL string    `bson:"adminPreviewUrl,omitempty" json:"adminPreviewUrl,omitempty"`
}
