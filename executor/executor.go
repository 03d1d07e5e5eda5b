// Package executor walks a plan against the live registry: resolves each
// step's agent, performs the dispatch-and-wait, threads results between
// steps, and produces an aggregated outcome or a descriptive failure.
package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/agentgrid/a2a"
	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/logging"
)

// DefaultRoutes is the static agent-name-to-path lookup table. It is
// configuration data, not executable logic: deployments extend it via the
// Routes option without code changes. Agents outside the table fall back to
// "/" + step.Task.
var DefaultRoutes = map[string]string{
	core.AgentLogAnalyzer:     "/analyze",
	core.AgentReportGenerator: "/generate",
	core.AgentSanitizer:       "/sanitize",
}

// Options configures an Executor.
type Options struct {
	// Caller performs the wire dispatch. Defaults to an a2a.Client bounded by
	// CallTimeout.
	Caller core.ToolCaller
	// CallTimeout bounds each outbound call when the default caller is used.
	CallTimeout time.Duration
	// Routes overrides the static agent-to-path table.
	Routes map[string]string
	// Logger receives per-step diagnostics. Defaults to NoOp.
	Logger logging.Logger
}

// Executor implements core.Executor with strictly sequential, in-order
// dispatch: no two steps of the same plan run concurrently, and independent
// steps are not parallelized. Concurrent plans are fine; each carries its
// own result set and shares only the read-mostly registry.
type Executor struct {
	registry core.Registry
	caller   core.ToolCaller
	routes   map[string]string
	logger   logging.Logger
}

// Interface compliance (compile-time assertion)
var _ core.Executor = (*Executor)(nil)

// New constructs an Executor over the given registry with optional overrides.
func New(registry core.Registry, optFns ...func(o *Options)) *Executor {
	opts := Options{
		CallTimeout: a2a.DefaultCallTimeout,
		Routes:      DefaultRoutes,
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Caller == nil {
		opts.Caller = a2a.NewClient(func(o *a2a.Options) {
			o.Timeout = opts.CallTimeout
			o.Logger = opts.Logger
		})
	}
	return &Executor{
		registry: registry,
		caller:   opts.Caller,
		routes:   opts.Routes,
		logger:   opts.Logger,
	}
}

// ExecutePlan runs the plan steps strictly in order. For each step it
// resolves the target agent via the registry, resolves the input (the
// client payload for "user", a prior step's stored result otherwise),
// dispatches one synchronous call, and records the response payload plus a
// trace line.
//
// Any step failure (unknown agent, unmet dependency, network error, timeout
// or non-2xx status) aborts the remaining steps and is returned as a
// *core.StepError naming the step's agent and the underlying cause. There is
// no retry, no fallback agent and no partial-plan continuation.
func (e *Executor) ExecutePlan(ctx context.Context, plan core.Plan, initial any) (res *core.ExecutionResult, err error) {
	results := core.NewResultSet()
	trace := make([]string, 0, len(plan))
	start := time.Now()

	if rec, ok := e.logger.(logging.PlanRecorder); ok {
		defer func() { rec.LogPlanExecution(len(plan), time.Since(start), err == nil, err) }()
	}

	for i, step := range plan {
		desc, ok := e.registry.Get(step.Agent)
		if !ok {
			e.logger.Error("plan aborted: unknown agent", "agent", step.Agent, "step", i)
			return nil, &core.StepError{Agent: step.Agent, Step: i, Err: core.ErrUnknownAgent}
		}

		input := initial
		if step.InputSource != core.InputSourceUser {
			prev, ok := results.Get(step.InputSource)
			if !ok {
				// Only reachable with a hand-built plan that references a step
				// which never ran; planner output is always ordered.
				e.logger.Error("plan aborted: unmet dependency", "agent", step.Agent, "step", i, "source", step.InputSource)
				return nil, &core.StepError{Agent: step.Agent, Step: i, Err: fmt.Errorf("%w: %s", core.ErrUnmetDependency, step.InputSource)}
			}
			input = map[string]any(prev)
		}

		path := e.route(step)
		callStart := time.Now()
		payload, callErr := e.caller.CallTool(ctx, desc.URL, path, input)
		if rec, ok := e.logger.(logging.AgentCallRecorder); ok {
			rec.LogAgentCall(step.Agent, path, time.Since(callStart), callErr == nil, callErr)
		}
		if callErr != nil {
			e.logger.Error("plan aborted: agent call failed", "agent", step.Agent, "step", i, "path", path, "duration", time.Since(callStart), "error", callErr)
			return nil, &core.StepError{Agent: step.Agent, Step: i, Err: callErr}
		}

		results.Set(step.Agent, payload)
		trace = append(trace, traceLine(step.Agent, payload))

		e.logger.Info("step completed", "agent", step.Agent, "step", i, "path", path, "duration", time.Since(callStart))
	}

	e.logger.Info("plan completed", "steps", len(plan), "duration", time.Since(start))

	return &core.ExecutionResult{Success: true, Results: results, Trace: trace}, nil
}

// route maps a step to its network path: table hit first, "/"+task fallback
// for agents outside the table.
func (e *Executor) route(step core.Step) string {
	if path, ok := e.routes[step.Agent]; ok {
		return path
	}
	return "/" + step.Task
}

// traceLine derives a human-readable trace entry from the payload's own
// summary/message field when present, else a generic completion marker.
func traceLine(agent string, p core.Payload) string {
	if s, ok := p.Summary(); ok {
		return agent + ": " + s
	}
	return agent + ": completed"
}
