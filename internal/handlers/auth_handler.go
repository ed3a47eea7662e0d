package handlers

import (
	"log/slog"
	"time"

	"github.com/fatemaakther1/Social-Media-App/internal/middleware"
	"github.com/fatemaakther1/Social-Media-App/internal/models"
	"github.com/fatemaakther1/Social-Media-App/internal/services"
	"github.com/fatemaakther1/Social-Media-App/internal/session"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	sessions    *session.Manager
	validate    *validator.Validate
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, sessions *session.Manager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		validate:    newValidator(),
		logger:      logger,
	}
}

// RegisterRoutes registers the authentication routes. loginGuards run before the login
// handler, typically a rate limiter.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, requireSession fiber.Handler, loginGuards ...fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", append(loginGuards, h.HandleLogin)...)
	authRoutes.Get("/check-session", h.HandleCheckSession)
	authRoutes.Post("/logout", h.HandleLogout)

	authRoutes.Get("/profile", requireSession, h.HandleGetProfile)
	authRoutes.Put("/profile", requireSession, h.HandleUpdateProfile)
	authRoutes.Delete("/profile", requireSession, h.HandleDeleteAccount)
	authRoutes.Post("/change-password", requireSession, h.HandleChangePassword)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Email                string `json:"email" validate:"required,email,max=255"`
	Password             string `json:"password" validate:"required,min=6,max=72,bcryptlen"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
	Username             string `json:"username" validate:"omitempty,min=3,max=50,username"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

// UpdateProfileRequest represents the request body for a profile update.
type UpdateProfileRequest struct {
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Username *string `json:"username" validate:"omitempty,min=3,max=50,username"`
}

// ChangePasswordRequest represents the request body for a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required,max=72"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72,bcryptlen"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

type userView struct {
	ID          uint       `json:"id"`
	Email       string     `json:"email"`
	Username    string     `json:"username"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func viewUser(u *models.User) userView {
	return userView{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// HandleRegister handles new user registration and starts a session.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := bind(c, h.validate, &req); err != nil {
		return writeError(c, h.logger, err)
	}

	user, err := h.authService.Register(services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
	})
	if err != nil {
		return writeError(c, h.logger, err)
	}
	if err := h.sessions.Start(c, user.ID, user.Email); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully",
		"user":    viewUser(user),
	})
}

// HandleLogin verifies credentials and starts a session.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := bind(c, h.validate, &req); err != nil {
		return writeError(c, h.logger, err)
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	if err := h.sessions.Start(c, user.ID, user.Email); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"user":    viewUser(user),
	})
}

// HandleCheckSession reports whether the request carries a valid session cookie.
func (h *AuthHandler) HandleCheckSession(c *fiber.Ctx) error {
	res := h.sessions.Read(c)
	if res.Status != session.StatusValid {
		return c.JSON(fiber.Map{
			"success":       true,
			"authenticated": false,
		})
	}
	return c.JSON(fiber.Map{
		"success":       true,
		"authenticated": true,
		"user": fiber.Map{
			"id":    res.UserID,
			"email": h.sessions.Email(c),
		},
	})
}

// HandleLogout clears the session cookies.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	h.sessions.Clear(c)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}

// HandleGetProfile returns the signed-in user.
func (h *AuthHandler) HandleGetProfile(c *fiber.Ctx) error {
	user, err := h.authService.GetProfile(middleware.UserID(c))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"user":    viewUser(user),
	})
}

// HandleUpdateProfile applies a partial profile update.
func (h *AuthHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := bind(c, h.validate, &req); err != nil {
		return writeError(c, h.logger, err)
	}

	user, err := h.authService.UpdateProfile(middleware.UserID(c), services.ProfileInput{
		Email:    req.Email,
		Username: req.Username,
	})
	if err != nil {
		return writeError(c, h.logger, err)
	}

	// Keep the informational email cookie in step with the account.
	if req.Email != nil {
		if err := h.sessions.Start(c, user.ID, user.Email); err != nil {
			return writeError(c, h.logger, err)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated successfully",
		"user":    viewUser(user),
	})
}

// HandleChangePassword replaces the signed-in user's password.
func (h *AuthHandler) HandleChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := bind(c, h.validate, &req); err != nil {
		return writeError(c, h.logger, err)
	}

	if err := h.authService.ChangePassword(middleware.UserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password changed successfully",
	})
}

// HandleDeleteAccount deletes the signed-in user and ends the session.
func (h *AuthHandler) HandleDeleteAccount(c *fiber.Ctx) error {
	if err := h.authService.DeleteAccount(middleware.UserID(c)); err != nil {
		return writeError(c, h.logger, err)
	}
	h.sessions.Clear(c)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Account deleted successfully",
	})
}
