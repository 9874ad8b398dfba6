package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/kimyoungq/webboard/pkg/board"
	"github.com/kimyoungq/webboard/pkg/config"
	"github.com/kimyoungq/webboard/pkg/server/middleware"
	"github.com/kimyoungq/webboard/pkg/server/store"
	gormstore "github.com/kimyoungq/webboard/pkg/server/store/gorm"
	"github.com/kimyoungq/webboard/pkg/view"
)

type Server struct {
	Router *mux.Router
	DB     *gorm.DB
	Config *config.BoardConfig

	AccountsStore store.AccountsStore
	ContentsStore store.ContentsStore
	SessionsStore store.SessionsStore
	HealthStore   store.HealthStore

	Lifecycle *board.Lifecycle
	Views     *view.Renderer

	SessionGate *middleware.SessionGate
	CSRF        *middleware.CSRF

	srv *http.Server
}

func NewServer(
	db *gorm.DB,
	cfg *config.BoardConfig,
	csrfSecret []byte,
	host string,
	port string,
) (*Server, error) {

	accounts := gormstore.NewAccountsStore(db)
	contents := gormstore.NewContentsStore(db)
	sessions := gormstore.NewSessionsStore(db)
	health := gormstore.NewHealthStore(db)

	views, err := newRenderer(cfg)
	if err != nil {
		return nil, err
	}

	gate := middleware.NewSessionGate(sessions)
	csrf := middleware.NewCSRF(csrfSecret, cfg.CSRFLifetime())

	router := mux.NewRouter().UseEncodedPath()
	router.Use(
		bodyLimit(cfg.MaxAttachmentBytes),
		gate.Middleware,
		csrf.Middleware,
	)

	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Router:        router,
		DB:            db,
		Config:        cfg,
		AccountsStore: accounts,
		ContentsStore: contents,
		SessionsStore: sessions,
		HealthStore:   health,
		Lifecycle:     board.NewLifecycle(accounts, contents),
		Views:         views,
		SessionGate:   gate,
		CSRF:          csrf,
		srv:           srv,
	}, nil
}

func newRenderer(cfg *config.BoardConfig) (*view.Renderer, error) {
	if cfg.TemplateDir != "" {
		return view.NewFromDir(cfg.TemplateDir)
	}
	return view.New()
}

// bodyLimit caps request bodies. The limit leaves headroom over the
// attachment cap for the rest of the multipart payload.
func bodyLimit(maxAttachmentBytes int64) mux.MiddlewareFunc {
	limit := maxAttachmentBytes + 1<<20
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

func (s Server) Start() error {
	return s.srv.ListenAndServe()
}
