package repositories

import (
	"time"

	"github.com/fatemaakther1/Social-Media-App/internal/models"
)

// UserUpdate lists the user columns that may change. Nil fields are left untouched.
type UserUpdate struct {
	Email        *string
	Username     *string
	PasswordHash *string
}

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Update(id uint, changes UserUpdate) (*models.User, error)
	TouchLastLogin(id uint, at time.Time) error
	Delete(id uint) error
}
