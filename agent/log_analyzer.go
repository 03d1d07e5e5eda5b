package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/agentgrid/core"
)

// Classification vocabularies for log lines. A line matching both buckets
// counts as critical only.
var (
	criticalTerms = []string{"error", "critical", "fatal", "exception", "panic"}
	warningTerms  = []string{"warn"}
)

// NewLogAnalyzer constructs the log-analyzer agent: one /analyze tool that
// classifies log lines into critical and warning buckets.
func NewLogAnalyzer(selfURL string, optFns ...func(o *Options)) *Server {
	desc := core.AgentDescriptor{
		Name: core.AgentLogAnalyzer,
		URL:  selfURL,
		Tools: []core.ToolDescriptor{
			{
				Name:        "analyze",
				Description: "Classify log lines into critical and warning buckets",
				InputShape:  "string: raw log text, one entry per line",
			},
		},
	}

	s := NewServer(desc, optFns...)
	s.HandleTool("/analyze", analyzeLogs)
	return s
}

func analyzeLogs(_ context.Context, data any) (core.Payload, error) {
	lines := nonEmptyLines(asText(data))

	critical, warnings := 0, 0
	for _, line := range lines {
		lower := strings.ToLower(line)
		switch {
		case containsAny(lower, criticalTerms):
			critical++
		case containsAny(lower, warningTerms):
			warnings++
		}
	}

	return core.Payload{
		"success": true,
		"analysis": map[string]any{
			"lines":    len(lines),
			"critical": critical,
			"warnings": warnings,
		},
		"summary": fmt.Sprintf("analyzed %d lines: %d critical, %d warnings", len(lines), critical, warnings),
	}, nil
}
