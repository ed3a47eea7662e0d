package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_session_secret"

func newTestManager() *Manager {
	return NewManager(testSecret, 2*time.Hour, CookieOptions{SameSite: fiber.CookieSameSiteDisabled})
}

func TestIssueAndVerify(t *testing.T) {
	m := newTestManager()

	token, err := m.Issue(42)
	require.NoError(t, err)

	res := m.Verify(token)
	assert.Equal(t, StatusValid, res.Status)
	assert.Equal(t, uint(42), res.UserID)
}

func TestVerify_Expired(t *testing.T) {
	m := newTestManager()
	token, err := m.Issue(1)
	require.NoError(t, err)

	issued := time.Now()
	m.now = func() time.Time { return issued.Add(2*time.Hour + time.Second) }
	res := m.Verify(token)
	assert.Equal(t, StatusExpired, res.Status)
	assert.Zero(t, res.UserID)

	// A token issued three hours ago has expired by the wall clock too.
	m.now = func() time.Time { return issued.Add(-3 * time.Hour) }
	old, err := m.Issue(1)
	require.NoError(t, err)
	m.now = time.Now
	assert.Equal(t, StatusExpired, m.Verify(old).Status)
}

func TestVerify_Invalid(t *testing.T) {
	m := newTestManager()
	token, err := m.Issue(5)
	require.NoError(t, err)

	other := NewManager("another_secret", time.Hour, CookieOptions{})
	forged, err := other.Issue(5)
	require.NoError(t, err)

	noneToken := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID:         5,
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()},
	})
	unsigned, err := noneToken.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	other6, err := m.Issue(6)
	require.NoError(t, err)
	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + strings.Split(other6, ".")[1] + "." + parts[2]

	for name, tok := range map[string]string{
		"empty":        "",
		"garbage":      "not-a-token",
		"numeric id":   "5",
		"wrong secret": forged,
		"alg none":     unsigned,
		"tampered":     tampered,
	} {
		t.Run(name, func(t *testing.T) {
			res := m.Verify(tok)
			assert.Equal(t, StatusInvalid, res.Status)
			assert.Zero(t, res.UserID)
		})
	}
}

func TestStartAndClearCookies(t *testing.T) {
	m := newTestManager()
	app := fiber.New()
	app.Get("/start", func(c *fiber.Ctx) error {
		return m.Start(c, 9, "alice@example.com")
	})
	app.Get("/clear", func(c *fiber.Ctx) error {
		m.Clear(c)
		return nil
	})
	app.Get("/read", func(c *fiber.Ctx) error {
		res := m.Read(c)
		return c.JSON(fiber.Map{"status": res.Status.String(), "userId": res.UserID, "email": m.Email(c)})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/start", nil), -1)
	require.NoError(t, err)
	cookies := resp.Cookies()
	require.Len(t, cookies, 2)

	byName := map[string]*http.Cookie{}
	for _, ck := range cookies {
		byName[ck.Name] = ck
	}
	require.Contains(t, byName, CookieName)
	require.Contains(t, byName, EmailCookieName)
	assert.Equal(t, "/", byName[CookieName].Path)
	assert.Equal(t, 7200, byName[CookieName].MaxAge)
	assert.False(t, byName[CookieName].HttpOnly)
	assert.False(t, byName[CookieName].Secure)
	assert.Equal(t, "alice@example.com", byName[EmailCookieName].Value)
	assert.Equal(t, StatusValid, m.Verify(byName[CookieName].Value).Status)

	raw := resp.Header.Values(fiber.HeaderSetCookie)
	for _, line := range raw {
		assert.NotContains(t, strings.ToLower(line), "samesite")
	}

	req := httptest.NewRequest(http.MethodGet, "/clear", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	for _, ck := range resp.Cookies() {
		assert.Empty(t, ck.Value)
		assert.True(t, ck.Expires.Before(time.Now()))
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "valid", StatusValid.String())
	assert.Equal(t, "expired", StatusExpired.String())
	assert.Equal(t, "invalid", StatusInvalid.String())
}
