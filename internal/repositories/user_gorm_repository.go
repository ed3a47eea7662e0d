package repositories

import (
	"fmt"
	"time"

	"github.com/fatemaakther1/Social-Media-App/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create inserts a new user. The password field must already hold a hash.
func (r *GORMUserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return translate(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err, "failed to get user by ID %d", id)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, translate(err, "failed to get user by email")
	}
	return &user, nil
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		return nil, translate(err, "failed to get user by username %s", username)
	}
	return &user, nil
}

// Update applies the non-nil fields of changes and returns the stored row.
func (r *GORMUserRepository) Update(id uint, changes UserUpdate) (*models.User, error) {
	columns := map[string]interface{}{}
	if changes.Email != nil {
		columns["email"] = *changes.Email
	}
	if changes.Username != nil {
		columns["username"] = *changes.Username
	}
	if changes.PasswordHash != nil {
		columns["password_hash"] = *changes.PasswordHash
	}

	if len(columns) > 0 {
		res := r.db.Model(&models.User{}).Where("id = ?", id).Updates(columns)
		if res.Error != nil {
			return nil, translate(res.Error, "failed to update user %d", id)
		}
		if res.RowsAffected == 0 {
			return nil, fmt.Errorf("user with ID %d not found for update: %w", id, ErrNotFound)
		}
	}
	return r.GetByID(id)
}

// TouchLastLogin records a successful login time.
func (r *GORMUserRepository) TouchLastLogin(id uint, at time.Time) error {
	res := r.db.Model(&models.User{}).Where("id = ?", id).UpdateColumn("last_login_at", at)
	if res.Error != nil {
		return translate(res.Error, "failed to update last login for user %d", id)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %d not found: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes a user. Posts, likes and comments go with it through foreign keys.
func (r *GORMUserRepository) Delete(id uint) error {
	res := r.db.Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "failed to delete user")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
