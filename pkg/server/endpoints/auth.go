package endpoints

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/kimyoungq/webboard/pkg/audit"
	"github.com/kimyoungq/webboard/pkg/model"
	"github.com/kimyoungq/webboard/pkg/server"
	"github.com/kimyoungq/webboard/pkg/server/middleware"
	"github.com/kimyoungq/webboard/pkg/server/store"
)

type authFormData struct {
	CSRFToken string
	Error     string
}

// RegisterAuthEndpoints registers login, logout and join
func RegisterAuthEndpoints(srv *server.Server) {
	r := srv.Router
	r.HandleFunc("/login", handleLoginForm(srv)).Methods("GET")
	r.HandleFunc("/login", handleLogin(srv)).Methods("POST")
	r.HandleFunc("/logout", handleLogout(srv)).Methods("POST")
	r.HandleFunc("/join", handleJoinForm(srv)).Methods("GET")
	r.HandleFunc("/join", handleJoin(srv)).Methods("POST")
}

func handleLoginForm(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(srv, w, "login.html", authFormData{CSRFToken: csrfToken(r)})
	}
}

func handleLogin(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(r.PostFormValue("name"))
		password := r.PostFormValue("password")

		account, err := srv.AccountsStore.FindByName(name)
		if err == nil {
			err = bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password))
		}
		if err != nil {
			audit.Log(audit.LoginEvent{
				AccountName:  name,
				ClientIP:     requestIP(r),
				Action:       "login",
				Success:      false,
				ErrorMessage: "invalid credentials",
			})
			renderPage(srv, w, "login.html", authFormData{
				CSRFToken: csrfToken(r),
				Error:     "Invalid name or password",
			})
			return
		}

		session, err := srv.SessionsStore.CreateSession(account.ID, srv.Config.SessionLifetime())
		if err != nil {
			renderError(srv, w, http.StatusInternalServerError, "Failed to establish a session")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookieName,
			Value:    session.Token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   int(srv.Config.SessionLifetime().Seconds()),
		})

		audit.Log(audit.LoginEvent{
			AccountName: account.Name,
			ClientIP:    requestIP(r),
			Action:      "login",
			Success:     true,
		})

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func handleLogout(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id := requester(r); id != nil {
			_ = srv.SessionsStore.DeleteSession(id.SessionToken)
			audit.Log(audit.LoginEvent{
				AccountName: id.Name,
				ClientIP:    requestIP(r),
				Action:      "logout",
				Success:     true,
			})
		}

		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookieName,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			MaxAge:   -1,
		})

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func handleJoinForm(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(srv, w, "join.html", authFormData{CSRFToken: csrfToken(r)})
	}
}

func handleJoin(srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(r.PostFormValue("name"))
		password := r.PostFormValue("password")

		if name == "" || password == "" {
			renderPage(srv, w, "join.html", authFormData{
				CSRFToken: csrfToken(r),
				Error:     "Name and password are required",
			})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			renderError(srv, w, http.StatusInternalServerError, "Failed to create the account")
			return
		}

		_, err = srv.AccountsStore.CreateAccount(name, string(hash), model.RoleUser)
		switch {
		case err == nil:
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		case errors.Is(err, store.ErrAccountExists):
			renderPage(srv, w, "join.html", authFormData{
				CSRFToken: csrfToken(r),
				Error:     "That name is already taken",
			})
		default:
			renderError(srv, w, http.StatusInternalServerError, "Failed to create the account")
		}
	}
}

func requestIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
