package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fatemaakther1/Social-Media-App/internal/apperror"
	"github.com/fatemaakther1/Social-Media-App/internal/events"
	"github.com/fatemaakther1/Social-Media-App/internal/metrics"
	"github.com/fatemaakther1/Social-Media-App/internal/models"
	"github.com/fatemaakther1/Social-Media-App/internal/password"
	"github.com/fatemaakther1/Social-Media-App/internal/repositories"
)

// RegisterInput is a validated registration request.
type RegisterInput struct {
	Email    string
	Password string
	// Username is optional. It defaults to the local part of Email.
	Username string
}

// ProfileInput carries the profile fields to change. Nil fields are left untouched.
type ProfileInput struct {
	Email    *string
	Username *string
}

// AuthService handles registration, login and account management.
type AuthService struct {
	userRepo  repositories.UserRepository
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewAuthService creates a new AuthService. publisher may be nil.
func NewAuthService(userRepo repositories.UserRepository, publisher events.Publisher, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		userRepo:  userRepo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// MaxUsernameLength matches the width of the username column.
const MaxUsernameLength = 50

// DefaultUsername derives a username from the local part of an email address, cut to
// MaxUsernameLength characters.
func DefaultUsername(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if runes := []rune(local); len(runes) > MaxUsernameLength {
		local = string(runes[:MaxUsernameLength])
	}
	return local
}

// hashError maps a hashing failure to a field error when the password is too long.
func hashError(err error, field string) error {
	if errors.Is(err, password.ErrTooLong) {
		msg := fmt.Sprintf("Password cannot be longer than %d bytes", password.MaxBytes)
		return apperror.ValidationFailed(msg, map[string]string{field: msg})
	}
	return apperror.Internal(err)
}

// Register creates a new account.
func (s *AuthService) Register(in RegisterInput) (*models.User, error) {
	email := NormalizeEmail(in.Email)

	taken, err := s.emailTaken(email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.UserExists()
	}

	username := strings.TrimSpace(in.Username)
	if username == "" {
		username = DefaultUsername(email)
	}
	taken, err = s.usernameTaken(username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.UsernameExists()
	}

	hash, err := password.HashPassword(in.Password)
	if err != nil {
		return nil, hashError(err, "password")
	}

	user := &models.User{
		Email:    email,
		Username: username,
		Password: hash,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			// Lost a race with a concurrent registration, the unique index caught it.
			taken, err := s.emailTaken(email)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperror.UserExists()
			}
			return nil, apperror.UsernameExists()
		}
		return nil, apperror.Internal(err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	metrics.RecordRegister()
	events.Emit(s.publisher, s.logger, events.New(events.TypeUserRegistered, user.ID))
	return user, nil
}

// Login verifies credentials. Unknown email and wrong password fail identically.
func (s *AuthService) Login(email, plaintext string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			metrics.RecordLogin("failure")
			return nil, apperror.InvalidCredentials()
		}
		return nil, apperror.Internal(err)
	}
	if !password.CheckPassword(user.Password, plaintext) {
		metrics.RecordLogin("failure")
		return nil, apperror.InvalidCredentials()
	}

	at := s.now()
	if err := s.userRepo.TouchLastLogin(user.ID, at); err != nil {
		s.logger.Warn("failed to record last login", "user_id", user.ID, "error", err)
	} else {
		user.LastLoginAt = &at
	}

	metrics.RecordLogin("success")
	return user, nil
}

// GetProfile returns the account for id.
func (s *AuthService) GetProfile(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, userLookupError(err)
	}
	return user, nil
}

// UpdateProfile applies a partial profile update.
func (s *AuthService) UpdateProfile(id uint, in ProfileInput) (*models.User, error) {
	if in.Email == nil && in.Username == nil {
		return nil, apperror.ValidationFailed("At least one field must be provided", nil)
	}

	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, userLookupError(err)
	}

	var changes repositories.UserUpdate
	if in.Email != nil {
		email := NormalizeEmail(*in.Email)
		if email != user.Email {
			taken, err := s.emailTaken(email)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperror.EmailExists()
			}
			changes.Email = &email
		}
	}
	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if username != user.Username {
			taken, err := s.usernameTaken(username)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperror.UsernameExists()
			}
			changes.Username = &username
		}
	}

	if changes.Email == nil && changes.Username == nil {
		return user, nil
	}

	updated, err := s.userRepo.Update(id, changes)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicate) && changes.Email != nil:
			return nil, apperror.EmailExists()
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, apperror.UsernameExists()
		default:
			return nil, userLookupError(err)
		}
	}
	s.logger.Info("profile updated", "user_id", id)
	return updated, nil
}

// ChangePassword replaces the password after verifying the current one.
func (s *AuthService) ChangePassword(id uint, current, next string) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return userLookupError(err)
	}
	if !password.CheckPassword(user.Password, current) {
		return apperror.InvalidCurrentPassword()
	}
	if current == next {
		return apperror.ValidationFailed("New password must be different from current password", map[string]string{
			"newPassword": "New password must be different from current password",
		})
	}

	hash, err := password.HashPassword(next)
	if err != nil {
		return hashError(err, "newPassword")
	}
	if _, err := s.userRepo.Update(id, repositories.UserUpdate{PasswordHash: &hash}); err != nil {
		return userLookupError(err)
	}
	s.logger.Info("password changed", "user_id", id)
	return nil
}

// DeleteAccount removes the account and everything it owns.
func (s *AuthService) DeleteAccount(id uint) error {
	if err := s.userRepo.Delete(id); err != nil {
		return userLookupError(err)
	}
	s.logger.Info("account deleted", "user_id", id)
	return nil
}

func (s *AuthService) emailTaken(email string) (bool, error) {
	return exists(s.userRepo.GetByEmail(email))
}

func (s *AuthService) usernameTaken(username string) (bool, error) {
	return exists(s.userRepo.GetByUsername(username))
}

func exists(user *models.User, err error) (bool, error) {
	switch {
	case err == nil:
		return user != nil, nil
	case errors.Is(err, repositories.ErrNotFound):
		return false, nil
	default:
		return false, apperror.Internal(err)
	}
}

func userLookupError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperror.UserNotFound()
	}
	return apperror.Internal(err)
}
