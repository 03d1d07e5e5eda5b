package core

// Well-known agent names referenced by the built-in planning rules and the
// default route table. Deployments may register additional agents under any
// name; these three are the capabilities the reference system ships with.
const (
	// AgentLogAnalyzer classifies log lines into critical/warning buckets.
	AgentLogAnalyzer = "log-analyzer"
	// AgentReportGenerator renders a textual report over its input.
	AgentReportGenerator = "report-generator"
	// AgentSanitizer redacts sensitive fragments from text.
	AgentSanitizer = "sanitizer"
)

// ToolDescriptor describes a single named capability an agent exposes.
//
// InputShape is documentation only: it tells humans (and planners) what the
// tool expects, it is never validated at dispatch time.
type ToolDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputShape  string `json:"input,omitempty"`
}

// AgentDescriptor identifies an agent, its network location and its declared
// tools. Descriptors are immutable once stored in a Registry; re-registering
// the same name replaces the previous entry wholesale.
type AgentDescriptor struct {
	Name  string           `json:"name"`
	URL   string           `json:"url"`
	Tools []ToolDescriptor `json:"tools"`
}

// Tool returns the named tool descriptor, if declared.
func (d AgentDescriptor) Tool(name string) (ToolDescriptor, bool) {
	for _, t := range d.Tools {
		if t.Name == name {
			return t, true
		}
	}
	return ToolDescriptor{}, false
}
