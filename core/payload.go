package core

// Payload is the raw JSON object exchanged with an agent tool endpoint. The
// orchestration core never interprets payloads beyond the contract fields
// (success, error, summary/message); everything else belongs to the agent.
type Payload map[string]any

// ToolRequest is the body of a tool invocation: a single well-known "data"
// key carrying either a string or a structured value, depending on the tool.
type ToolRequest struct {
	Data any `json:"data"`
}

// Success reports the payload's own success flag. Absent or non-boolean
// values count as false.
func (p Payload) Success() bool {
	ok, _ := p["success"].(bool)
	return ok
}

// Summary extracts a human-readable line from the payload, preferring the
// "summary" field and falling back to "message". Used to derive trace
// entries without knowing agent internals.
func (p Payload) Summary() (string, bool) {
	if s, ok := p["summary"].(string); ok && s != "" {
		return s, true
	}
	if s, ok := p["message"].(string); ok && s != "" {
		return s, true
	}
	return "", false
}
