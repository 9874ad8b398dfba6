package middleware

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// CSRFCookieName is the cookie carrying the signed anti-forgery token.
	CSRFCookieName = "board_csrf"

	// CSRFFieldName is the form field that must echo the cookie value.
	CSRFFieldName = "_csrf"
)

type csrfContextKey struct{}

func contextWithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, csrfContextKey{}, token)
}

// CSRF implements a signed double-submit pattern: the token is a JWT
// carried in a cookie, and every mutating request must echo it back in
// a form field.
type CSRF struct {
	secret []byte
	ttl    time.Duration
}

func NewCSRF(secret []byte, ttl time.Duration) *CSRF {
	return &CSRF{secret: secret, ttl: ttl}
}

// IssueToken mints a fresh signed token with a random nonce.
func (c *CSRF) IssueToken() (string, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"nonce": base64.RawURLEncoding.EncodeToString(nonce),
		"iat":   now.Unix(),
		"exp":   now.Add(c.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

func (c *CSRF) verify(token string) error {
	_, err := jwt.Parse(
		token,
		func(*jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	)
	return err
}

// CSRFToken returns the token handlers should embed in forms.
func CSRFToken(r *http.Request) string {
	token, _ := r.Context().Value(csrfContextKey{}).(string)
	return token
}

func (c *CSRF) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The diagnostic console is exempt, matching its exemption
		// from the session gate.
		if r.URL.Path == "/console" || strings.HasPrefix(r.URL.Path, "/console/") {
			next.ServeHTTP(w, r)
			return
		}

		var token string
		if cookie, err := r.Cookie(CSRFCookieName); err == nil {
			if c.verify(cookie.Value) == nil {
				token = cookie.Value
			}
		}
		if token == "" {
			fresh, err := c.IssueToken()
			if err != nil {
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			token = fresh
			http.SetCookie(w, &http.Cookie{
				Name:     CSRFCookieName,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := r.Context()
		ctx = contextWithCSRFToken(ctx, token)
		r = r.WithContext(ctx)

		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			submitted := r.PostFormValue(CSRFFieldName)
			if subtle.ConstantTimeCompare([]byte(submitted), []byte(token)) != 1 {
				http.Error(w, "Invalid anti-forgery token", http.StatusForbidden)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
