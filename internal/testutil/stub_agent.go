package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/hupe1980/agentgrid/core"
)

// StubAgentOptions configures a StubAgent.
type StubAgentOptions struct {
	// Status is the HTTP status returned by the tool endpoint.
	Status int
	// Response is the payload returned by the tool endpoint.
	Response core.Payload
	// Delay is applied before answering, to exercise timeout paths.
	Delay time.Duration
}

// StubAgent is a minimal in-process agent endpoint for wire-level tests. It
// serves a single tool path plus /health, records every received "data"
// value, and returns a canned payload.
type StubAgent struct {
	srv *httptest.Server

	mu    sync.Mutex
	calls []any
}

// NewStubAgent starts a stub agent serving the given tool path. The server
// is closed automatically via t.Cleanup.
func NewStubAgent(t *testing.T, path string, optFns ...func(o *StubAgentOptions)) *StubAgent {
	t.Helper()

	opts := StubAgentOptions{
		Status:   http.StatusOK,
		Response: core.Payload{"success": true},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	s := &StubAgent{}

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+path, func(w http.ResponseWriter, r *http.Request) {
		var req core.ToolRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		s.calls = append(s.calls, req.Data)
		s.mu.Unlock()

		if opts.Delay > 0 {
			time.Sleep(opts.Delay)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(opts.Status)
		_ = json.NewEncoder(w).Encode(opts.Response)
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	s.srv = httptest.NewServer(mux)
	t.Cleanup(s.srv.Close)

	return s
}

// URL returns the stub's base URL.
func (s *StubAgent) URL() string { return s.srv.URL }

// Calls returns the recorded "data" values in arrival order.
func (s *StubAgent) Calls() []any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]any, len(s.calls))
	copy(out, s.calls)
	return out
}

// Close shuts the stub down early (tests normally rely on t.Cleanup).
func (s *StubAgent) Close() { s.srv.Close() }
