package agent

import (
	"context"
	"fmt"
	"regexp"

	"github.com/hupe1980/agentgrid/core"
)

const redactedMarker = "[REDACTED]"

// Redaction patterns: email addresses, long digit runs (account or card
// numbers), and key=value style secrets.
var (
	emailPattern  = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	digitsPattern = regexp.MustCompile(`\b\d{6,}\b`)
	secretPattern = regexp.MustCompile(`(?i)(password|passwd|token|secret|api[_-]?key)\s*[=:]\s*\S+`)
)

// NewSanitizer constructs the sanitizer agent: one /sanitize tool that
// redacts sensitive fragments from text.
func NewSanitizer(selfURL string, optFns ...func(o *Options)) *Server {
	desc := core.AgentDescriptor{
		Name: core.AgentSanitizer,
		URL:  selfURL,
		Tools: []core.ToolDescriptor{
			{
				Name:        "sanitize",
				Description: "Redact emails, long digit runs and key=value secrets from text",
				InputShape:  "string: text to sanitize",
			},
		},
	}

	s := NewServer(desc, optFns...)
	s.HandleTool("/sanitize", sanitizeText)
	return s
}

func sanitizeText(_ context.Context, data any) (core.Payload, error) {
	text := asText(data)
	redactions := 0

	redact := func(re *regexp.Regexp, repl string) {
		redactions += len(re.FindAllString(text, -1))
		text = re.ReplaceAllString(text, repl)
	}

	redact(secretPattern, "$1="+redactedMarker)
	redact(emailPattern, redactedMarker)
	redact(digitsPattern, redactedMarker)

	return core.Payload{
		"success":    true,
		"sanitized":  text,
		"redactions": redactions,
		"summary":    fmt.Sprintf("redacted %d sensitive fragments", redactions),
	}, nil
}
