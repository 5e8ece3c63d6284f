// Package models holds the gorm models of the user directory database.
package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"

	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/identity"
)

// User is an end-user account of the database directory.
type User struct {
	// ID is the unique identifier for the row.
	ID uint64 `gorm:"primaryKey"`
	// Subject is the identifier reported to the authorization engine.
	Subject string `gorm:"unique;size:255;not null"`
	// Active indicates whether the user can log in.
	Active bool
	// LoginID is the unique identifier typed into the login form.
	LoginID string `gorm:"column:login_id;unique;size:100;not null"`
	// Password is the Argon2id hashed password.
	Password string `gorm:"size:255;not null"`

	Name        string `gorm:"size:255"`
	Email       string `gorm:"size:255"`
	PhoneNumber string `gorm:"size:64"`

	Country       string `gorm:"size:100"`
	Formatted     string `gorm:"size:255"`
	StreetAddress string `gorm:"size:255"`
	Locality      string `gorm:"size:100"`
	Region        string `gorm:"size:100"`
	PostalCode    string `gorm:"size:32"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword verifies a plaintext password against the stored hash.
func (u *User) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Msgf("failed to verify password: %v", err)
		return false
	}

	return match
}

// NewUser builds an active row from an identity, hashing its password.
func NewUser(u identity.User) User {
	row := User{
		Subject:     u.Subject,
		Active:      true,
		LoginID:     u.LoginID,
		Password:    HashPassword(u.Password),
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
	}

	if u.Address != nil {
		row.Country = u.Address.Country
		row.Formatted = u.Address.Formatted
		row.StreetAddress = u.Address.StreetAddress
		row.Locality = u.Address.Locality
		row.Region = u.Address.Region
		row.PostalCode = u.Address.PostalCode
	}

	return row
}

// Identity converts the row to the identity handed to the authorization flow.
// The password hash is not copied.
func (u *User) Identity() *identity.User {
	out := &identity.User{
		Subject:     u.Subject,
		LoginID:     u.LoginID,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
	}

	addr := identity.Address{
		Country:       u.Country,
		Formatted:     u.Formatted,
		StreetAddress: u.StreetAddress,
		Locality:      u.Locality,
		Region:        u.Region,
		PostalCode:    u.PostalCode,
	}

	if addr != (identity.Address{}) {
		out.Address = &addr
	}

	return out
}
