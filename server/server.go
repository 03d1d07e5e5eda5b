// Package server provides the coordinator's inbound HTTP surface: agent
// registration, discovery, and the plan-and-run orchestration endpoint. The
// package only wires registry, planner and executor together; all
// orchestration semantics live in those components.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/logging"
)

// Options configures a Server.
type Options struct {
	// Logger receives request-level diagnostics. Defaults to NoOp.
	Logger logging.Logger
	// Metrics collects coordinator metrics. Defaults to a fresh collector;
	// set nil-safe custom instances to share a registry across servers.
	Metrics *Metrics
}

// Server is the coordinator boundary. It owns no orchestration state beyond
// what the injected registry holds; each inbound orchestration request gets
// its own plan and result set.
type Server struct {
	registry core.Registry
	planner  core.Planner
	executor core.Executor
	router   *mux.Router
	logger   logging.Logger
	metrics  *Metrics
}

// New constructs the coordinator server over the given components.
func New(registry core.Registry, planner core.Planner, executor core.Executor, optFns ...func(o *Options)) *Server {
	opts := Options{
		Logger:  logging.NoOpLogger{},
		Metrics: NewMetrics(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	s := &Server{
		registry: registry,
		planner:  planner,
		executor: executor,
		router:   mux.NewRouter(),
		logger:   opts.Logger,
		metrics:  opts.Metrics,
	}

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	s.router.Use(c.Handler)
	s.registerRoutes()

	return s
}

// Handler returns the http.Handler for the coordinator surface.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) registerRoutes() {
	s.router.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	s.router.HandleFunc("/agents", s.handleAgents).Methods(http.MethodGet)
	s.router.HandleFunc("/plan-and-run", s.handlePlanAndRun).Methods(http.MethodPost)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}
}

// ---- Wire shapes --------------------------------------------------------

type registerResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Agent   core.AgentDescriptor `json:"agent"`
}

type agentsResponse struct {
	Count  int                    `json:"count"`
	Agents []core.AgentDescriptor `json:"agents"`
}

type planAndRunRequest struct {
	Request string `json:"request"`
	Data    any    `json:"data,omitempty"`
}

type planAndRunResponse struct {
	Request string          `json:"request"`
	Plan    core.Plan       `json:"plan"`
	Success bool            `json:"success"`
	Results *core.ResultSet `json:"results"`
	Trace   []string        `json:"executionTrace"`
}

type emptyPlanResponse struct {
	Message string          `json:"message"`
	Plan    core.Plan       `json:"plan"`
	Results *core.ResultSet `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- Handlers -----------------------------------------------------------

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var desc core.AgentDescriptor
	if err := json.NewDecoder(r.Body).Decode(&desc); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if desc.Name == "" || desc.URL == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name and url are required"})
		return
	}

	s.registry.Register(desc)
	s.metrics.RegistrationObserved(len(s.registry.List()))

	s.writeJSON(w, http.StatusOK, registerResponse{
		Success: true,
		Message: "agent " + desc.Name + " registered",
		Agent:   desc,
	})
}

func (s *Server) handleAgents(w http.ResponseWriter, _ *http.Request) {
	agents := s.registry.List()
	s.writeJSON(w, http.StatusOK, agentsResponse{Count: len(agents), Agents: agents})
}

func (s *Server) handlePlanAndRun(w http.ResponseWriter, r *http.Request) {
	var req planAndRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if req.Request == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "request field is required"})
		return
	}

	requestID := uuid.NewString()
	logger := s.logger
	logger.Info("orchestration request received", "request_id", requestID, "request", req.Request)

	plan := s.planner.Plan(req.Request)
	if plan.Empty() {
		logger.Info("no agents matched", "request_id", requestID)
		s.metrics.OrchestrationObserved(OutcomeNoMatch, 0)
		s.writeJSON(w, http.StatusOK, emptyPlanResponse{
			Message: "no agents matched the request",
			Plan:    core.Plan{},
			Results: core.NewResultSet(),
		})
		return
	}

	start := time.Now()
	result, err := s.executor.ExecutePlan(r.Context(), plan, req.Data)
	if err != nil {
		logger.Error("plan execution failed", "request_id", requestID, "steps", len(plan), "duration", time.Since(start), "error", err)
		s.metrics.OrchestrationObserved(OutcomeError, time.Since(start))
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	logger.Info("plan executed", "request_id", requestID, "steps", len(plan), "duration", time.Since(start))
	s.metrics.OrchestrationObserved(OutcomeSuccess, time.Since(start))

	s.writeJSON(w, http.StatusOK, planAndRunResponse{
		Request: req.Request,
		Plan:    plan,
		Success: result.Success,
		Results: result.Results,
		Trace:   result.Trace,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "orchestrator"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}
