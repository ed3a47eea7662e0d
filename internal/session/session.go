// Package session issues and verifies the signed session token carried in the user_id
// cookie, and writes or clears the session cookies.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
)

const (
	// CookieName carries the signed session token.
	CookieName = "user_id"
	// EmailCookieName carries the signed-in user's email. It is informational only.
	EmailCookieName = "user_email"
)

// Status is the outcome of verifying a session token.
type Status int

const (
	StatusInvalid Status = iota
	StatusValid
	StatusExpired
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusExpired:
		return "expired"
	default:
		return "invalid"
	}
}

// Result describes a verified token. UserID is set only when Status is StatusValid.
type Result struct {
	Status Status
	UserID uint
}

// Claims is the payload of a session token.
type Claims struct {
	UserID uint `json:"userId"`
	jwt.StandardClaims
}

// CookieOptions are the attributes written on both session cookies.
type CookieOptions struct {
	HTTPOnly bool
	Secure   bool
	// SameSite is one of fiber's CookieSameSite* values. "disabled" omits the attribute.
	SameSite string
}

// Manager signs session tokens and manages the session cookies.
type Manager struct {
	secret  []byte
	ttl     time.Duration
	cookies CookieOptions
	now     func() time.Time
}

// NewManager creates a Manager. ttl is both the token lifetime and the cookie max-age.
func NewManager(secret string, ttl time.Duration, cookies CookieOptions) *Manager {
	return &Manager{
		secret:  []byte(secret),
		ttl:     ttl,
		cookies: cookies,
		now:     time.Now,
	}
}

// TTL returns the session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token for userID valid for the session lifetime.
func (m *Manager) Issue(userID uint) (string, error) {
	now := m.now()
	claims := Claims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(m.ttl).Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, nil
}

// Verify checks a token's signature and lifetime.
func (m *Manager) Verify(token string) Result {
	if token == "" {
		return Result{Status: StatusInvalid}
	}

	claims := &Claims{}
	parser := jwt.Parser{}
	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		var verr *jwt.ValidationError
		if errors.As(err, &verr) && verr.Errors == jwt.ValidationErrorExpired {
			return Result{Status: StatusExpired}
		}
		return Result{Status: StatusInvalid}
	}
	if !parsed.Valid || claims.UserID == 0 {
		return Result{Status: StatusInvalid}
	}
	// jwt-go evaluates exp against the wall clock, recheck against the manager's clock.
	if claims.ExpiresAt == 0 || m.now().Unix() >= claims.ExpiresAt {
		return Result{Status: StatusExpired}
	}
	return Result{Status: StatusValid, UserID: claims.UserID}
}

// Start writes both session cookies for the user.
func (m *Manager) Start(c *fiber.Ctx, userID uint, email string) error {
	token, err := m.Issue(userID)
	if err != nil {
		return err
	}
	expires := m.now().Add(m.ttl)
	c.Cookie(m.cookie(CookieName, token, expires, int(m.ttl.Seconds())))
	c.Cookie(m.cookie(EmailCookieName, email, expires, int(m.ttl.Seconds())))
	return nil
}

// Clear expires both session cookies. The token itself stays valid until it expires.
func (m *Manager) Clear(c *fiber.Ctx) {
	c.Cookie(m.cookie(CookieName, "", time.Unix(0, 0), -1))
	c.Cookie(m.cookie(EmailCookieName, "", time.Unix(0, 0), -1))
}

// Read verifies the session cookie of the current request.
func (m *Manager) Read(c *fiber.Ctx) Result {
	return m.Verify(c.Cookies(CookieName))
}

// Email returns the email cookie of the current request.
func (m *Manager) Email(c *fiber.Ctx) string {
	return c.Cookies(EmailCookieName)
}

func (m *Manager) cookie(name, value string, expires time.Time, maxAge int) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HTTPOnly: m.cookies.HTTPOnly,
		Secure:   m.cookies.Secure,
		SameSite: m.cookies.SameSite,
	}
}
