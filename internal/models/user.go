package models

import "time"

type User struct {
	ID                string    `bson:"_id" json:"id"`
	Email             string    `bson:"email" json:"email"` // always stored lower-cased
	PasswordHash      string    `bson:"passwordHash" json:"-"`
	Verified          bool      `bson:"verified" json:"verified"`
	VerificationToken string    `bson:"verificationToken,omitempty" json:"-"` // cleared once redeemed
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
}
