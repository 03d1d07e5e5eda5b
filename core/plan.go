package core

import "fmt"

// InputSourceUser marks a step whose input is the client-supplied payload
// rather than a previous step's result.
const InputSourceUser = "user"

// Step is one planned invocation of a specific agent's tool.
//
// InputSource is either InputSourceUser or the name of an agent targeted by
// an earlier step in the same plan. DependsOn, when set, names the agent this
// step's execution depends on; plan order already encodes dependency order,
// the field exists so clients can see the data flow without re-deriving it.
type Step struct {
	Agent       string `json:"agent"`
	Task        string `json:"task"`
	InputSource string `json:"inputSource"`
	DependsOn   string `json:"dependsOn,omitempty"`
}

// Plan is an ordered sequence of steps produced for one orchestration
// request. Order IS the dependency order: there is no separate DAG structure.
// A plan is owned by the single in-flight request that created it and is
// never mutated after creation.
type Plan []Step

// Empty reports whether the plan contains no steps, which is a valid,
// non-error planning outcome ("no capability applies").
func (p Plan) Empty() bool { return len(p) == 0 }

// Validate checks the intra-plan invariant that every step sourcing its input
// from an agent is preceded by a step targeting that agent. A violation is a
// planning bug, not a runtime-recoverable state; the executor re-checks the
// same condition during dispatch.
func (p Plan) Validate() error {
	seen := make(map[string]struct{}, len(p))
	for i, step := range p {
		if step.InputSource != InputSourceUser {
			if _, ok := seen[step.InputSource]; !ok {
				return fmt.Errorf("step %d (%s): input source %q does not precede it in the plan", i, step.Agent, step.InputSource)
			}
		}
		seen[step.Agent] = struct{}{}
	}
	return nil
}
