package endpoints

import (
	"net/http"
	"strconv"

	"github.com/kimyoungq/webboard/pkg/identity"
	"github.com/kimyoungq/webboard/pkg/server"
	"github.com/kimyoungq/webboard/pkg/server/middleware"
)

type errorData struct {
	Status  int
	Message string
}

func renderError(srv *server.Server, w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = srv.Views.Render(w, "error.html", errorData{Status: status, Message: message})
}

func renderPage(srv *server.Server, w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := srv.Views.Render(w, name, data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// contentID parses the content_id query or form parameter.
func contentID(r *http.Request) (int64, bool) {
	raw := r.FormValue("content_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func requester(r *http.Request) *identity.Identity {
	id, _ := identity.Get(r.Context())
	return id
}

func csrfToken(r *http.Request) string {
	return middleware.CSRFToken(r)
}
