// Package httpapi exposes the REST surface: registration and login, the
// current-user endpoints, and per-user impulse entry CRUD. Handlers decode
// and validate the request, call a service, and translate service errors
// into status codes with {"message": ...} bodies.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"impulselog/internal/logging"
	"impulselog/internal/server/services"
)

type Server struct {
	address   string
	logger    logging.Logger
	users     *services.UserService
	entries   *services.EntryService
	jwtSecret []byte
}

func NewServer(address string, l logging.Logger, us *services.UserService, es *services.EntryService, secretKey string) *Server {
	return &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		users:     us,
		entries:   es,
		jwtSecret: []byte(secretKey),
	}
}

// Handler builds the route table. Exposed so tests can drive the full stack
// through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)

	mux.HandleFunc("GET /users/me", s.withAuth(s.handleGetCurrentUser))
	mux.HandleFunc("PUT /users/me", s.withAuth(s.handleUpdateCurrentUser))

	mux.HandleFunc("GET /impulse-entries", s.withAuth(s.handleListEntries))
	mux.HandleFunc("POST /impulse-entries", s.withAuth(s.handleCreateEntry))
	mux.HandleFunc("GET /impulse-entries/{id}", s.withAuth(s.handleGetEntry))
	mux.HandleFunc("PUT /impulse-entries/{id}", s.withAuth(s.handleUpdateEntry))
	mux.HandleFunc("DELETE /impulse-entries/{id}", s.withAuth(s.handleDeleteEntry))

	mux.HandleFunc("GET /health", s.handleHealth)

	return s.withLogging(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
