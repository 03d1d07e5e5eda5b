// Package core provides the foundational domain types and interfaces used by
// AgentGrid. It defines the core abstractions for:
//
//   - Agent descriptors (who can do what, and where)
//   - Plans and steps (ordered invocations with data-source annotations)
//   - Payloads and result sets (raw tool responses, insertion-ordered)
//   - The Registry, Planner, Executor and ToolCaller contracts
//
// The package intentionally keeps implementation concerns (HTTP transport,
// planning rules, dispatch) out of scope, exposing small interfaces so the
// coordinator boundary, tests and alternative backends can be wired freely.
package core
