package agent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/hupe1980/agentgrid/a2a"
	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/logging"
)

// DefaultRegisterDelay gives the coordinator time to come up before the
// agent announces itself.
const DefaultRegisterDelay = 2 * time.Second

// Handler processes one tool invocation: it receives the decoded "data"
// value and returns the raw response payload. Returning an error yields a
// {success: false, error} response with status 500.
type Handler func(ctx context.Context, data any) (core.Payload, error)

// Options configures a Server.
type Options struct {
	// CoordinatorURL is the registration target. Empty disables
	// self-registration; the agent remains reachable via direct calls.
	CoordinatorURL string
	// PeerURL is the fixed location of a downstream agent used for direct
	// agent-to-agent calls. Kept as configured state rather than re-resolved
	// through the registry at call time; see the package notes on this
	// known limitation.
	PeerURL string
	// RegisterDelay is the intentional startup pause before registering.
	RegisterDelay time.Duration
	// CallTimeout bounds registration and nested agent-to-agent calls made
	// by the default client. Ignored when Client is supplied.
	CallTimeout time.Duration
	// Client performs registration and nested agent-to-agent calls.
	Client *a2a.Client
	// Logger receives lifecycle and call diagnostics. Defaults to NoOp.
	Logger logging.Logger
}

// Server hosts one agent process: its tool endpoints, capability description
// and liveness surface, plus the self-registration loop. Construct it with
// a descriptor, attach tool handlers via HandleTool, then serve Handler() or
// call Run.
type Server struct {
	desc           core.AgentDescriptor
	router         *mux.Router
	coordinatorURL string
	peerURL        string
	registerDelay  time.Duration
	client         *a2a.Client
	logger         logging.Logger
}

// NewServer constructs an agent server for the given descriptor.
func NewServer(desc core.AgentDescriptor, optFns ...func(o *Options)) *Server {
	opts := Options{
		RegisterDelay: DefaultRegisterDelay,
		CallTimeout:   a2a.DefaultCallTimeout,
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Client == nil {
		opts.Client = a2a.NewClient(func(o *a2a.Options) {
			o.Timeout = opts.CallTimeout
			o.Logger = opts.Logger
		})
	}

	s := &Server{
		desc:           desc,
		router:         mux.NewRouter(),
		coordinatorURL: opts.CoordinatorURL,
		peerURL:        opts.PeerURL,
		registerDelay:  opts.RegisterDelay,
		client:         opts.Client,
		logger:         opts.Logger,
	}

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	s.router.Use(c.Handler)

	s.router.HandleFunc("/info", s.handleInfo).Methods(http.MethodGet)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	return s
}

// Name returns the agent's name.
func (s *Server) Name() string { return s.desc.Name }

// Descriptor returns the agent's capability descriptor.
func (s *Server) Descriptor() core.AgentDescriptor { return s.desc }

// Handler returns the http.Handler serving the agent surface.
func (s *Server) Handler() http.Handler { return s.router }

// HandleTool mounts a tool handler at the given POST path.
func (s *Server) HandleTool(path string, h Handler) {
	s.router.HandleFunc(path, s.toolHandler(path, h)).Methods(http.MethodPost)
}

func (s *Server) toolHandler(path string, h Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req core.ToolRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeJSON(w, http.StatusBadRequest, core.Payload{"success": false, "error": "invalid JSON body"})
			return
		}

		start := time.Now()
		payload, err := h(r.Context(), req.Data)
		if rec, ok := s.logger.(logging.ToolCallRecorder); ok {
			rec.LogToolCall(strings.TrimPrefix(path, "/"), time.Since(start), err == nil, err)
		}
		if err != nil {
			s.logger.Error("tool invocation failed", "agent", s.desc.Name, "path", path, "duration", time.Since(start), "error", err)
			s.writeJSON(w, http.StatusInternalServerError, core.Payload{"success": false, "error": err.Error()})
			return
		}

		s.logger.Debug("tool invocation completed", "agent", s.desc.Name, "path", path, "duration", time.Since(start))
		s.writeJSON(w, http.StatusOK, payload)
	}
}

// handleInfo returns the capability descriptor: name, location and tool list.
func (s *Server) handleInfo(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.desc)
}

// handleHealth returns a fixed ok status carrying the agent's own name.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "agent": s.desc.Name})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "agent", s.desc.Name, "error", err)
	}
}

// SelfRegister waits the configured delay, then announces the descriptor to
// the coordinator. Failure is logged and non-fatal: the agent keeps serving
// its tool endpoints, it is merely undiscoverable via the coordinator.
func (s *Server) SelfRegister(ctx context.Context) {
	if s.coordinatorURL == "" {
		return
	}

	select {
	case <-ctx.Done():
		return
	case <-time.After(s.registerDelay):
	}

	if err := s.client.Register(ctx, s.coordinatorURL, s.desc); err != nil {
		s.logger.Warn("registration failed, continuing unregistered", "agent", s.desc.Name, "coordinator", s.coordinatorURL, "error", err)
		return
	}

	s.logger.Info("registered with coordinator", "agent", s.desc.Name, "coordinator", s.coordinatorURL)
}

// Run serves the agent surface on addr, starts the background
// self-registration, and shuts the listener down when ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}

	go s.SelfRegister(ctx)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("shutdown error", "agent", s.desc.Name, "error", err)
		}
	}()

	s.logger.Info("agent listening", "agent", s.desc.Name, "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
