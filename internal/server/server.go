package server

import (
	"context"
	"net/http"
	"time"

	"ecoscore/internal/generate"
	"ecoscore/internal/history"
	"ecoscore/internal/score"
	"ecoscore/internal/suggest"
)

// Server encapsulates the HTTP server of the application, providing controlled startup and shutdown.
// Uses a customizable router and ensures timeouts for security and stability.
type Server struct {
	// server — embedded HTTP server from net/http package, fully configured and ready to use.
	server *http.Server
}

// ListenAndServe starts the HTTP server and begins listening on the specified address.
// Blocks execution until the server is stopped or an error occurs.
// If server is stopped via Shutdown, method returns http.ErrServerClosed.
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server with the provided context.
// Stops listening, terminates accepting new connections, and allows active connections
// to complete within the timeout specified in the context.
// Should be called during graceful shutdown of the application.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// withCORS adds permissive CORS headers to every response and answers
// preflight requests. The scoring API is consumed by a browser dashboard
// that may be served from a different origin.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NewServer creates and configures a new server instance.
//
// Parameters:
// - address: address and port to listen on (e.g., ":8080").
// - static: path to directory with static files to be served.
// - calculator: composite-score calculator with configured ceilings.
// - defaults: default metric weights.
// - engine: rule-based suggestion engine.
// - generator: external suggestion generator.
// - historyRepo: scored-product history.
// - journal: durable history journal.
//
// Configures API v1 routes with CORS, including static file handling.
// Sets secure timeouts for reading and writing, and limits header size.
// The write timeout leaves room for the generator call budget.
//
// Returns pointer to a ready-to-run server.
func NewServer(
	address string,
	static string,
	calculator *score.Calculator,
	defaults score.Weights,
	engine *suggest.Engine,
	generator generate.Generator,
	historyRepo *history.Repository,
	journal history.Journal,
) *Server {
	router := NewApiV1Router(static, calculator, defaults, engine, generator, historyRepo, journal)
	s := Server{&http.Server{
		Addr:           address,
		Handler:        withCORS(router.Mux()),
		ReadTimeout:    time.Second * 3,
		WriteTimeout:   time.Second * 30,
		MaxHeaderBytes: 1024 * 10,
	}}

	return &s
}
