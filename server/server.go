// Package server exposes the descriptor generator over HTTP: a
// configuration document in, a plan document out. It never talks to a
// cloud API; the generated plan is input to an external apply engine.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"wafstack/config"
	"wafstack/logging"
	"wafstack/outputs"
	"wafstack/stack"
)

// Server holds routing dependencies.
type Server struct {
	Logger     zerolog.Logger
	PlanLogger logging.PlanLogger
}

// NewServer creates an HTTP generation server.
func NewServer(logger zerolog.Logger) *Server {
	return &Server{
		Logger:     logger,
		PlanLogger: logging.NewZerologPlanLogger(logger),
	}
}

// Routes constructs the HTTP router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(httprate.LimitByIP(60, time.Minute))

	r.Get("/healthz", s.handleHealthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/definitions", s.handleDefinitions)
		r.Post("/validate", s.handleValidate)
		r.Post("/plan", s.handlePlan)
	})

	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDefinitions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Definitions())
}

type validateResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	cfg, err := decodeConfig(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := cfg.Validate(); err != nil {
		s.PlanLogger.ValidationFailed(err)
		writeJSON(w, http.StatusOK, validateResponse{Valid: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, validateResponse{Valid: true})
}

type planResponse struct {
	Plan    *stack.Plan     `json:"plan"`
	Outputs outputs.Outputs `json:"outputs"`
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	cfg, err := decodeConfig(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := cfg.Validate(); err != nil {
		s.PlanLogger.ValidationFailed(err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	plan := stack.Materialize(s.Logger, cfg)
	out := outputs.Aggregate(cfg, plan)
	s.PlanLogger.PlanGenerated(plan, out)

	writeJSON(w, http.StatusOK, planResponse{Plan: plan, Outputs: out})
}

func decodeConfig(r *http.Request) (*config.Main, error) {
	cfg := config.Default()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
