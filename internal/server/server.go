// Package server delivers draw results over HTTP.
//
// Each participant receives a one-time claim code; fetching
// GET /claim/{code} reveals their assignment exactly once and invalidates
// the code, so results stay anonymous even on a shared terminal.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/giftring/pkg/errors"
	"github.com/matzehuels/giftring/pkg/pairing"
)

// Server serves draw results from a ClaimStore.
type Server struct {
	logger *log.Logger
	store  ClaimStore
	router chi.Router
}

// New creates a server backed by the given claim store.
func New(logger *log.Logger, store ClaimStore) *Server {
	s := &Server{logger: logger, store: store}

	r := chi.NewRouter()
	r.Use(s.logRequests)
	r.Get("/healthz", s.handleHealth)
	r.Get("/claim/{code}", s.handleClaim)
	s.router = r

	return s
}

// Seed loads one claim per participant and returns the generated codes,
// keyed by participant name, for out-of-band distribution.
func (s *Server) Seed(ctx context.Context, pairs pairing.Pairing) (map[string]string, error) {
	codes := make(map[string]string, len(pairs))
	for name, pick := range pairs {
		code, err := GenerateCode()
		if err != nil {
			return nil, err
		}
		claim := Claim{Code: code, Name: name, Pick: pick, At: time.Now().UTC()}
		if err := s.store.Put(ctx, claim); err != nil {
			return nil, err
		}
		codes[name] = code
	}
	return codes, nil
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe() }()

	s.logger.Infof("Serving claims on %s", addr)
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-done:
		return err
	}
}

// =============================================================================
// Handlers
// =============================================================================

// claimResponse is the JSON body returned to a redeeming participant.
type claimResponse struct {
	Name string `json:"name"`
	Pick string `json:"pick"`
}

// errorResponse is the JSON body for failed requests.
type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	claim, err := s.store.Redeem(r.Context(), code)
	if err != nil {
		status := http.StatusInternalServerError
		switch errors.GetCode(err) {
		case errors.ErrCodeNotFound:
			status = http.StatusNotFound
		case errors.ErrCodeClaimed:
			status = http.StatusGone
		}
		writeJSON(w, status, errorResponse{Code: string(errors.GetCode(err)), Error: errors.UserMessage(err)})
		return
	}

	s.logger.Debugf("Claim redeemed for %s", claim.Name)
	writeJSON(w, http.StatusOK, claimResponse{Name: claim.Name, Pick: claim.Pick})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// logRequests logs method, path, and duration for every request. Claim codes
// appear in paths, so logging stays at debug level to avoid leaking them
// into shared logs.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debugf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}
