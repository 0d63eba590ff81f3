package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/schedulekeeper/internal/config"
	"github.com/klokku/schedulekeeper/internal/utils"
	"github.com/klokku/schedulekeeper/pkg/storage"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, storage, router, and server lifecycle.
type Application struct {
	cfg     config.Application
	router  *mux.Router
	srv     *http.Server
	storage io.Closer
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication(ctx context.Context, cfg config.Application) (*Application, error) {
	backend, closer, err := storage.Select(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	log.Infof("Using %q storage backend", cfg.Storage.Backend)

	deps := BuildDependencies(backend, cfg, utils.SystemClock{})
	return newApplication(cfg, deps, closer), nil
}

func newApplication(cfg config.Application, deps *Dependencies, closer io.Closer) *Application {
	r := mux.NewRouter()

	// Middleware chain
	SetupMiddleware(r)

	// Routes
	RegisterRoutes(r, deps)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Listen,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, router: r, srv: srv, storage: closer}
}

// Run starts the HTTP server and blocks until ctx is cancelled or the server fails.
func (a *Application) Run(ctx context.Context) error {
	defer func() {
		if err := a.storage.Close(); err != nil {
			log.Errorf("failed to close storage: %v", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", a.srv.Addr)
		errCh <- a.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (a *Application) Handler() http.Handler {
	return a.router
}
