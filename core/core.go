package core

import "context"

// Registry is the coordinator's live mapping from agent name to location and
// declared capabilities. It is the single source of truth for dispatch.
//
// Implementations MUST:
//   - Replace the whole entry on re-registration (last write wins, no merge)
//   - Allow concurrent readers while serializing writers
//   - Treat a lookup miss as a normal outcome, not an error
//
// There is no TTL, health eviction or removal operation: an agent that crashes
// remains listed until the process restarts. This is a stated limitation of
// the system, not something an implementation should silently fix.
type Registry interface {
	// Register inserts or replaces the entry for desc.Name.
	Register(desc AgentDescriptor)

	// Get returns the descriptor for name. The boolean reports whether the
	// agent is currently registered.
	Get(name string) (AgentDescriptor, bool)

	// List returns a snapshot of current registrations in registration order.
	List() []AgentDescriptor
}

// Planner maps a free-form request string to an ordered plan. Implementations
// must be pure: no I/O, no dependency on live registry state, identical output
// for identical input. An empty plan is a valid outcome meaning "no capability
// applies".
type Planner interface {
	Plan(request string) Plan
}

// Executor walks a plan against the live registry, threading results between
// steps. A fatal step failure aborts the remaining steps and is returned as a
// *StepError; there is no partial-plan continuation.
type Executor interface {
	ExecutePlan(ctx context.Context, plan Plan, initial any) (*ExecutionResult, error)
}

// ToolCaller performs a single synchronous tool invocation against an agent
// location. It is the one wire contract shared by the coordinator's executor
// and by agents invoking each other directly, so both call paths compose.
type ToolCaller interface {
	CallTool(ctx context.Context, baseURL, path string, data any) (Payload, error)
}
