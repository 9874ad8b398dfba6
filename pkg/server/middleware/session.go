package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/kimyoungq/webboard/pkg/identity"
	"github.com/kimyoungq/webboard/pkg/server/store"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "board_session"

// publicPaths are reachable without a session.
var publicPaths = map[string]bool{
	"/":            true,
	"/join":        true,
	"/login":       true,
	"/console":     true,
	"/favicon.ico": true,
}

// publicPrefixes cover static assets and the diagnostic console.
var publicPrefixes = []string{
	"/console/",
	"/css/",
	"/img/",
}

// SessionGate resolves the session cookie to an identity and redirects
// anonymous requests away from protected paths.
type SessionGate struct {
	sessions store.SessionsStore
}

func NewSessionGate(sessions store.SessionsStore) *SessionGate {
	return &SessionGate{sessions: sessions}
}

func isPublic(path string) bool {
	if publicPaths[path] {
		return true
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func remoteIP(r *http.Request) net.IP {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return net.ParseIP(host)
}

func (g *SessionGate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
			session, err := g.sessions.FindSession(cookie.Value)
			switch {
			case err == nil && session.Expired():
				// Lazy expiry. The row is gone by the time the
				// client is asked to log in again.
				_ = g.sessions.DeleteSession(cookie.Value)
			case err == nil:
				id := identity.FromAccount(&session.Account)
				id = id.WithRemoteIP(remoteIP(r))
				id = id.WithSessionToken(session.Token)
				ctx = identity.Set(ctx, id)
			}
		}

		if _, ok := identity.Get(ctx); !ok && !isPublic(r.URL.Path) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
