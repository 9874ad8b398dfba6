package endpoints

import (
	"net/http"

	"github.com/kimyoungq/webboard/pkg/config"
	"github.com/kimyoungq/webboard/pkg/server"
	"github.com/kimyoungq/webboard/pkg/server/store"
)

type consoleData struct {
	Healthy     bool
	HealthError string
	Accounts    int64
	Contents    int64
	Sessions    int64
	Attributes  []config.Attribute
}

// RegisterConsoleEndpoints registers the diagnostic console. It is
// exempt from the session gate and from anti-forgery checks, matching
// the development console it replaces.
func RegisterConsoleEndpoints(srv *server.Server) {
	srv.Router.HandleFunc("/console/status", handleConsoleStatus(srv.HealthStore, srv.Config, srv)).Methods("GET")
	srv.Router.HandleFunc("/console", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/console/status", http.StatusSeeOther)
	}).Methods("GET")
}

func handleConsoleStatus(healthStore store.HealthStore, cfg *config.BoardConfig, srv *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := consoleData{Attributes: cfg.Attributes()}

		if err := healthStore.CheckConnectivity(); err != nil {
			data.HealthError = err.Error()
		} else if accounts, contents, sessions, err := healthStore.Counts(); err != nil {
			data.HealthError = err.Error()
		} else {
			data.Healthy = true
			data.Accounts = accounts
			data.Contents = contents
			data.Sessions = sessions
		}

		renderPage(srv, w, "console.html", data)
	}
}
