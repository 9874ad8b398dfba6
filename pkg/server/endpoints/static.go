package endpoints

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/kimyoungq/webboard/pkg/server"
)

//go:embed static/css
var staticFiles embed.FS

// RegisterStaticFiles registers static file serving for CSS.
// Static files are embedded in the binary.
func RegisterStaticFiles(srv *server.Server) {
	cssFS, _ := fs.Sub(staticFiles, "static/css")
	srv.Router.PathPrefix("/css/").Handler(
		http.StripPrefix("/css/", http.FileServer(http.FS(cssFS))),
	)

	// Serve favicon.ico (return 404 if not present)
	srv.Router.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
}
