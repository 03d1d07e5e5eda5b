// Package registry implements dynamic service discovery for AgentGrid: the
// process-wide mapping from agent name to its network location and declared
// tools. The store is the only writer-owned mutable shared state in the
// system; planner and executor only read through it.
package registry

import (
	"sync"

	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/logging"
)

// Options configures an InMemoryStore.
type Options struct {
	// Logger receives registration events. Defaults to NoOp.
	Logger logging.Logger
}

// InMemoryStore is a volatile core.Registry implementation storing agent
// descriptors in a process local map. It is safe for concurrent access: reads
// may proceed in parallel, writers are serialized. Entries are replaced
// wholesale on re-registration (last write wins, no version check), so no
// multi-step transaction is needed.
//
// There is intentionally no TTL, health eviction or removal: an agent that
// crashes remains listed until the process restarts.
type InMemoryStore struct {
	mu     sync.RWMutex
	agents map[string]core.AgentDescriptor
	order  []string // registration order, for deterministic List snapshots
	logger logging.Logger
}

// Interface compliance (compile-time assertion)
var _ core.Registry = (*InMemoryStore)(nil)

// NewInMemoryStore constructs an empty in-memory registry.
func NewInMemoryStore(optFns ...func(o *Options)) *InMemoryStore {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &InMemoryStore{
		agents: make(map[string]core.AgentDescriptor),
		logger: opts.Logger,
	}
}

// Register inserts or replaces the entry for desc.Name. It succeeds
// unconditionally: reachability of the advertised location is not checked.
// Registering identical input twice is idempotent.
func (s *InMemoryStore) Register(desc core.AgentDescriptor) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.agents[desc.Name]; !exists {
		s.order = append(s.order, desc.Name)
	}
	s.agents[desc.Name] = desc

	s.logger.Info("agent registered", "agent", desc.Name, "url", desc.URL, "tools", len(desc.Tools))
}

// Get returns the descriptor for name. Absence is a normal, expected outcome
// signaling "unknown agent", not an error.
func (s *InMemoryStore) Get(name string) (core.AgentDescriptor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	desc, ok := s.agents[name]
	return desc, ok
}

// List returns a snapshot of current registrations in registration order.
func (s *InMemoryStore) List() []core.AgentDescriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.AgentDescriptor, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.agents[name])
	}
	return out
}

// Len returns the number of registered agents.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.agents)
}
