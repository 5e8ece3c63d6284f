package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/db/models"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/identity"
)

// Database is a directory backed by the users table.
type Database struct {
	db *gorm.DB
}

var _ UserDirectory = (*Database)(nil)

// NewDatabase creates a database directory.
func NewDatabase(db *gorm.DB) *Database {
	return &Database{
		db: db,
	}
}

// Migrate creates or updates the users table.
func (d *Database) Migrate() error {
	if err := d.db.AutoMigrate(&models.User{}); err != nil {
		return fmt.Errorf("failed to migrate users: %w", err)
	}

	return nil
}

// Seed inserts users when the table is empty.
func (d *Database) Seed(ctx context.Context, users []identity.User) error {
	var count int64
	if err := d.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}

	if count > 0 {
		return nil
	}

	rows := make([]models.User, 0, len(users))
	for _, u := range users {
		rows = append(rows, models.NewUser(u))
	}

	if len(rows) == 0 {
		return nil
	}

	if err := d.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	log.Info().Int("users", len(rows)).Msg("seeded user directory")

	return nil
}

// FindByCredentials implements UserDirectory.
func (d *Database) FindByCredentials(ctx context.Context, loginID, password string) (*identity.User, error) {
	if loginID == "" || password == "" {
		return nil, ErrUserNotFound
	}

	var user models.User

	err := d.db.WithContext(ctx).
		Where("login_id = ? AND active = ?", loginID, true).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	// collations may compare case-insensitively
	if user.LoginID != loginID || !user.VerifyPassword(password) {
		return nil, ErrUserNotFound
	}

	return user.Identity(), nil
}
