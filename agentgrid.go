// Package agentgrid provides a high-level façade over the orchestration core
// (registry, planner & executor) enabling rapid construction of coordinator
// processes. Most applications interact with this package by:
//  1. Creating an Orchestrator via New() (optionally overriding components)
//  2. Registering agents (or letting them self-register through the HTTP boundary)
//  3. Submitting requests via PlanAndRun
//
// The façade delegates discovery to registry.InMemoryStore, planning to
// planner.KeywordPlanner and dispatch to executor.Executor while keeping
// setup and usage ergonomics concise. All defaults are safe for local
// development and testing; production deployments typically supply a
// structured logger and tuned timeouts.
package agentgrid

import (
	"context"
	"time"

	"github.com/hupe1980/agentgrid/a2a"
	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/executor"
	"github.com/hupe1980/agentgrid/logging"
	"github.com/hupe1980/agentgrid/planner"
	"github.com/hupe1980/agentgrid/registry"
)

// Options configures the Orchestrator instance.
type Options struct {
	// Registry overrides the default in-memory agent registry.
	Registry core.Registry
	// Planner overrides the default keyword planner.
	Planner core.Planner
	// Executor overrides the default sequential executor.
	Executor core.Executor
	// CallTimeout bounds each outbound agent call made by the default
	// executor. Ignored when Executor is supplied.
	CallTimeout time.Duration
	// Routes overrides the default executor's agent-to-path table.
	// Ignored when Executor is supplied.
	Routes map[string]string
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Orchestrator is the high-level façade aggregating registry, planner and
// executor.
type Orchestrator struct {
	registry core.Registry
	planner  core.Planner
	executor core.Executor
	logger   logging.Logger
}

// New creates a new Orchestrator with optional overrides. Any unset
// component is initialized with its in-memory/default implementation.
func New(optFns ...func(o *Options)) *Orchestrator {
	opts := Options{
		CallTimeout: a2a.DefaultCallTimeout,
		Logger:      logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Registry == nil {
		opts.Registry = registry.NewInMemoryStore(func(o *registry.Options) {
			o.Logger = opts.Logger
		})
	}
	if opts.Planner == nil {
		opts.Planner = planner.New()
	}
	if opts.Executor == nil {
		opts.Executor = executor.New(opts.Registry, func(o *executor.Options) {
			o.CallTimeout = opts.CallTimeout
			o.Logger = opts.Logger
			if opts.Routes != nil {
				o.Routes = opts.Routes
			}
		})
	}

	return &Orchestrator{
		registry: opts.Registry,
		planner:  opts.Planner,
		executor: opts.Executor,
		logger:   opts.Logger,
	}
}

// Registry returns the underlying agent registry.
func (o *Orchestrator) Registry() core.Registry { return o.registry }

// Register adds an agent descriptor to the registry.
func (o *Orchestrator) Register(desc core.AgentDescriptor) { o.registry.Register(desc) }

// Agents returns a snapshot of current registrations.
func (o *Orchestrator) Agents() []core.AgentDescriptor { return o.registry.List() }

// PlanAndRun plans the request and executes the resulting steps against the
// live registry, threading data as the plan dictates. An empty plan returns
// an empty successful result without dispatching anything.
func (o *Orchestrator) PlanAndRun(ctx context.Context, request string, data any) (core.Plan, *core.ExecutionResult, error) {
	plan := o.planner.Plan(request)
	if plan.Empty() {
		o.logger.Info("no agents matched the request", "request", request)
		return plan, &core.ExecutionResult{Success: true, Results: core.NewResultSet(), Trace: []string{}}, nil
	}

	result, err := o.executor.ExecutePlan(ctx, plan, data)
	if err != nil {
		return plan, nil, err
	}
	return plan, result, nil
}
