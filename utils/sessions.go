package utils

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"ecfrontend/models"

	"github.com/google/uuid"
)

const (
	SessionCookie = "session_token"
	SessionTTL    = 24 * time.Hour
)

// ErrSessionNotFound is returned by every store when the token is unknown
// or the session has expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps session records server-side, keyed by the opaque token
// that goes into the cookie.
type SessionStore interface {
	Save(ctx context.Context, session models.Session, ttl time.Duration) error
	Get(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
}

// NewSession builds a session record for a freshly logged-in user.
func NewSession(r *http.Request, accessToken string, user *models.User) models.Session {
	now := time.Now()
	return models.Session{
		Token:        uuid.NewString(),
		AccessToken:  accessToken,
		User:         user,
		CreatedAt:    now.Format(time.RFC3339),
		ExpiresAt:    now.Add(SessionTTL).Format(time.RFC3339),
		LastActivity: now.Format(time.RFC3339),
		UserAgent:    GetUserAgent(r),
		IPAddress:    GetIP(r),
	}
}

// SignToken produces the cookie value <token>.<hmac-sha256(token)>. The
// signature lets us drop forged cookies without a store round trip.
func SignToken(token string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(token))
	return token + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// VerifyToken splits and checks a signed cookie value, returning the bare
// session token. An empty string means the cookie was missing a signature or
// carried a bad one.
func VerifyToken(value string, secret []byte) string {
	i := strings.LastIndex(value, ".")
	if i <= 0 {
		return ""
	}
	token := value[:i]
	if hmac.Equal([]byte(SignToken(token, secret)), []byte(value)) {
		return token
	}
	return ""
}

func SetSessionCookie(w http.ResponseWriter, token string, secret []byte) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    SignToken(token, secret),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
	})
}

func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

// CurrentSession resolves the request's session from the signed cookie.
// Returns nil (no error) when there is no usable session.
func CurrentSession(r *http.Request, store SessionStore, secret []byte) *models.Session {
	c, err := r.Cookie(SessionCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	token := VerifyToken(c.Value, secret)
	if token == "" {
		return nil
	}
	sess, err := store.Get(r.Context(), token)
	if err != nil {
		return nil
	}
	return sess
}

// SetFlash stores a one-time notice on the session.
func SetFlash(ctx context.Context, store SessionStore, sess *models.Session, msg string) error {
	sess.Flash = msg
	return store.Save(ctx, *sess, SessionTTL)
}

// PopFlash returns the pending notice and clears it.
func PopFlash(ctx context.Context, store SessionStore, sess *models.Session) string {
	if sess.Flash == "" {
		return ""
	}
	msg := sess.Flash
	sess.Flash = ""
	if err := store.Save(ctx, *sess, SessionTTL); err != nil {
		return msg
	}
	return msg
}

// GetUserAgent returns the User-Agent string from the request
func GetUserAgent(r *http.Request) string {
	return r.Header.Get("User-Agent")
}

// GetIP returns the IP address of the client from the request
func GetIP(r *http.Request) string {
	ip := r.Header.Get("X-Forwarded-For")
	if ip == "" {
		ip = r.RemoteAddr
	}
	return ip
}
