package testutil

import "github.com/hupe1980/agentgrid/core"

// Descriptor builds an agent descriptor with a single declared tool.
func Descriptor(name, url, tool string) core.AgentDescriptor {
	return core.AgentDescriptor{
		Name: name,
		URL:  url,
		Tools: []core.ToolDescriptor{
			{Name: tool, Description: "test tool", InputShape: "string"},
		},
	}
}

// UserStep builds a plan step fed from the user payload.
func UserStep(agent, task string) core.Step {
	return core.Step{Agent: agent, Task: task, InputSource: core.InputSourceUser}
}

// DependentStep builds a plan step fed from (and depending on) a prior
// step's agent.
func DependentStep(agent, task, source string) core.Step {
	return core.Step{Agent: agent, Task: task, InputSource: source, DependsOn: source}
}
