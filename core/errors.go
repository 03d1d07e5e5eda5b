package core

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAgent is returned when a plan step targets an agent that is
	// not currently registered. Fatal to the plan.
	ErrUnknownAgent = errors.New("agent not registered")

	// ErrUnmetDependency is returned when a step's input source has no stored
	// result. Given sequential execution and the planner's ordering invariant
	// this only occurs for hand-built plans; the executor fails fast rather
	// than skipping the step.
	ErrUnmetDependency = errors.New("dependency result not available")
)

// StepError describes a fatal failure of a single plan step. It names the
// step's agent and wraps the underlying cause so clients can report both.
type StepError struct {
	Agent string
	Step  int
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Step, e.Agent, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
