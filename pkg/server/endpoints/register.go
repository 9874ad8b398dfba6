package endpoints

import (
	"github.com/kimyoungq/webboard/pkg/server"
)

// RegisterAll registers all board endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterListingEndpoint(srv)
	RegisterPostEndpoints(srv)
	RegisterAuthEndpoints(srv)
	RegisterConsoleEndpoints(srv)

	// Static files
	RegisterStaticFiles(srv)
}
