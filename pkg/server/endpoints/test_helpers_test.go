package endpoints_test

import (
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/kimyoungq/webboard/pkg/board"
	"github.com/kimyoungq/webboard/pkg/config"
	"github.com/kimyoungq/webboard/pkg/identity"
	"github.com/kimyoungq/webboard/pkg/model"
	"github.com/kimyoungq/webboard/pkg/server"
	"github.com/kimyoungq/webboard/pkg/server/endpoints"
	"github.com/kimyoungq/webboard/pkg/view"
)

type testServer struct {
	srv      *server.Server
	accounts *MockAccountsStore
	contents *MockContentsStore
	sessions *MockSessionsStore
	health   *MockHealthStore
}

// newTestServer wires a Server over mock stores with routes registered
// but without the session and anti-forgery middleware, so tests can
// place an identity on the request directly.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	views, err := view.New()
	require.NoError(t, err)

	accounts := new(MockAccountsStore)
	contents := new(MockContentsStore)
	sessions := new(MockSessionsStore)
	health := new(MockHealthStore)

	cfg := &config.BoardConfig{
		ListingPageSize:    10,
		SessionTTL:         3600,
		CSRFTokenTTL:       3600,
		MaxAttachmentBytes: 1 << 20,
	}

	srv := &server.Server{
		Router:        mux.NewRouter(),
		Config:        cfg,
		AccountsStore: accounts,
		ContentsStore: contents,
		SessionsStore: sessions,
		HealthStore:   health,
		Lifecycle:     board.NewLifecycle(accounts, contents),
		Views:         views,
	}
	endpoints.RegisterAll(srv)

	return &testServer{
		srv:      srv,
		accounts: accounts,
		contents: contents,
		sessions: sessions,
		health:   health,
	}
}

func asUser(req *http.Request) *http.Request {
	id := &identity.Identity{AccountID: 7, Name: "tester", Role: model.RoleUser}
	return req.WithContext(identity.Set(req.Context(), id))
}

func asAdmin(req *http.Request) *http.Request {
	id := &identity.Identity{AccountID: 99, Name: "admin", Role: model.RoleAdmin}
	return req.WithContext(identity.Set(req.Context(), id))
}
