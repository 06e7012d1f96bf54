// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/okian/childcare/internal/domain/balance"
	"github.com/okian/childcare/internal/domain/eligibility"
	"github.com/okian/childcare/pkg/logger"
)

// Calculator is the business dependency of the calculation routes.
type Calculator interface {
	// Calculate returns the balance of a validated input as of today.
	Calculate(ctx context.Context, in balance.Input) balance.Result

	// Eligibility returns the eligibility window for a birth date as of today.
	Eligibility(ctx context.Context, birthDate time.Time) eligibility.Verdict

	// Today returns the civil date the service evaluates against.
	Today() time.Time

	// RecordFailure counts an input that could not be calculated.
	RecordFailure(ctx context.Context, kind string, err error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	calculateHandler   *CalculateHandler
	eligibilityHandler *EligibilityHandler
	logger             logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(calc Calculator, statsProvider StatsProvider, log logger.Logger) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		calculateHandler:   NewCalculateHandler(calc),
		eligibilityHandler: NewEligibilityHandler(calc),
		logger:             log,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/healthz", s.wrap(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/stats", s.wrap(s.statsHandler.HandleStats, "stats"))
	mux.Handle("/calculate", s.wrap(s.calculateHandler.HandleCalculate, "calculate"))
	mux.Handle("/eligibility", s.wrap(s.eligibilityHandler.HandleEligibility, "eligibility"))
}

// wrap applies the middleware chain shared by every API route.
func (s *Server) wrap(h http.HandlerFunc, endpoint string) http.Handler {
	return RequestIDMiddleware(MetricsMiddleware(RecoverMiddleware(h, s.logger), endpoint), s.logger)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeJSON encodes v before touching the response so an encoding failure
// still yields a complete 500 body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorResponse{Error: http.StatusText(status), Code: codeInternal})
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, err error) {
	msg := CalculationErrorMessage
	switch status {
	case http.StatusMethodNotAllowed, http.StatusInternalServerError:
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: msg, Code: errorCode(err)})
}
