// Package agent contains the agent-process scaffolding and the built-in
// capability providers shipped with AgentGrid. The package focuses on three
// concerns:
//
//  1. HTTP serving + lifecycle plumbing (Server): one POST endpoint per tool,
//     GET /info for the capability descriptor, GET /health for liveness, and
//     delayed, non-fatal self-registration against the coordinator.
//  2. Concrete capability providers (NewLogAnalyzer, NewSanitizer,
//     NewReportGenerator) implementing the reference tools.
//  3. The agent-to-agent call discipline: a nested downstream call made while
//     servicing an inbound invocation must be absorbed on failure, never
//     escalated: the calling agent degrades to its original input and
//     annotates its response.
//
// Design principles:
//   - No hidden global state: coordinator URL, peers and logger are wired
//     explicitly via Options
//   - An agent stays useful unregistered: registration failure is logged,
//     the tool endpoints keep serving
//   - Handlers are plain functions over payloads so business logic stays
//     testable without HTTP
package agent
