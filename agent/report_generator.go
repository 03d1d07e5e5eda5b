package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/agentgrid/a2a"
	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/logging"
)

const maxReportLines = 10

// reportGenerator renders a plain-text report over its input. When a
// sanitizer peer is configured it first invokes the peer directly, bypassing
// the coordinator. That nested call is the one place in the system where
// partial failure is absorbed rather than escalated: on any peer failure the
// generator proceeds with its original, unmodified input and annotates its
// response, never propagating the failure to its own caller.
type reportGenerator struct {
	client       *a2a.Client
	sanitizerURL string
	logger       logging.Logger
}

// NewReportGenerator constructs the report-generator agent: one /generate
// tool. Configure Options.PeerURL with the sanitizer's location to enable
// the pre-sanitization pass.
func NewReportGenerator(selfURL string, optFns ...func(o *Options)) *Server {
	desc := core.AgentDescriptor{
		Name: core.AgentReportGenerator,
		URL:  selfURL,
		Tools: []core.ToolDescriptor{
			{
				Name:        "generate",
				Description: "Render a plain-text report over the supplied input, sanitizing it first when a sanitizer peer is configured",
				InputShape:  "string or object: content to report on",
			},
		},
	}

	s := NewServer(desc, optFns...)
	g := &reportGenerator{client: s.client, sanitizerURL: s.peerURL, logger: s.logger}
	s.HandleTool("/generate", g.generate)
	return s
}

func (g *reportGenerator) generate(ctx context.Context, data any) (core.Payload, error) {
	text := asText(data)

	sanitizerUsed := false
	var sanitizerErr string

	if g.sanitizerURL != "" {
		payload, err := g.client.CallTool(ctx, g.sanitizerURL, "/sanitize", text)
		switch {
		case err != nil:
			g.logger.Warn("sanitizer unreachable, proceeding with unsanitized input", "agent", core.AgentReportGenerator, "peer", g.sanitizerURL, "error", err)
			sanitizerErr = err.Error()
		case !payload.Success():
			g.logger.Warn("sanitizer reported failure, proceeding with unsanitized input", "agent", core.AgentReportGenerator, "peer", g.sanitizerURL)
			sanitizerErr = "sanitizer reported failure"
		default:
			if sanitized, ok := payload["sanitized"].(string); ok {
				text = sanitized
				sanitizerUsed = true
			} else {
				sanitizerErr = "sanitizer response missing sanitized field"
			}
		}
	}

	report := buildReport(text)

	out := core.Payload{
		"success":        true,
		"report":         report,
		"sanitizer_used": sanitizerUsed,
		"summary":        fmt.Sprintf("generated report over %d characters of input", len(text)),
	}
	if sanitizerErr != "" {
		out["sanitizer_error"] = sanitizerErr
	}
	return out, nil
}

func buildReport(input string) string {
	lines := nonEmptyLines(input)

	var b strings.Builder
	b.WriteString("=== Report ===\n")
	fmt.Fprintf(&b, "Input lines: %d\n", len(lines))
	for i, line := range lines {
		if i >= maxReportLines {
			fmt.Fprintf(&b, "... %d more lines\n", len(lines)-maxReportLines)
			break
		}
		b.WriteString("- " + line + "\n")
	}
	return b.String()
}
