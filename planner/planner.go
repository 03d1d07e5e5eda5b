// Package planner turns a free-form request string into an ordered plan of
// agent invocations. Planning is a pure function: no I/O, no clock, no
// dependency on live registry state. A plan may therefore reference an agent
// that is not currently registered; that failure surfaces at execution time,
// not planning time.
package planner

import (
	"strings"

	"github.com/hupe1980/agentgrid/core"
)

// Task names emitted by the keyword rules.
const (
	TaskAnalyze  = "analyze"
	TaskGenerate = "generate"
	TaskSanitize = "sanitize"
)

// Vocabulary holds the keyword sets backing the three classification
// predicates. Matching is case-insensitive substring containment over the
// whole request string.
type Vocabulary struct {
	Analysis []string
	Report   []string
	Sanitize []string
}

// DefaultVocabulary is the reference vocabulary. The stems are deliberately
// short ("analy" covers analyze/analysis/analytics) to keep classification
// insensitive to inflection.
var DefaultVocabulary = Vocabulary{
	Analysis: []string{"log", "analy", "error", "warning", "failure"},
	Report:   []string{"summar", "report", "visual", "brief", "chart"},
	Sanitize: []string{"saniti", "sensitive", "pii", "redact"},
}

// Options configures a KeywordPlanner.
type Options struct {
	// Vocabulary overrides the default keyword sets.
	Vocabulary Vocabulary
}

// KeywordPlanner implements core.Planner with deterministic keyword
// classification. The three predicates are evaluated independently and are
// not mutually exclusive; rule order is the sole tie-break (analysis+report
// takes precedence over sanitizer-only).
type KeywordPlanner struct {
	vocab Vocabulary
}

// Interface compliance (compile-time assertion)
var _ core.Planner = (*KeywordPlanner)(nil)

// New constructs a KeywordPlanner with optional overrides.
func New(optFns ...func(o *Options)) *KeywordPlanner {
	opts := Options{Vocabulary: DefaultVocabulary}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &KeywordPlanner{vocab: opts.Vocabulary}
}

// Plan maps the request to an ordered step sequence:
//
//  1. Analysis vocabulary adds a log-analyzer step fed from the user payload.
//  2. Report vocabulary adds a report-generator step; when analysis also
//     matched, the report step sources its input from the analyzer and
//     depends on it, otherwise it is fed from the user payload directly.
//  3. Sanitize vocabulary adds a sanitizer step only when neither analysis
//     nor report matched.
//
// When no predicate matches, Plan returns an empty plan: a valid outcome
// meaning no registered capability applies.
func (p *KeywordPlanner) Plan(request string) core.Plan {
	req := strings.ToLower(request)

	needsAnalysis := containsAny(req, p.vocab.Analysis)
	needsReport := containsAny(req, p.vocab.Report)
	needsSanitize := containsAny(req, p.vocab.Sanitize)

	var plan core.Plan

	if needsAnalysis {
		plan = append(plan, core.Step{
			Agent:       core.AgentLogAnalyzer,
			Task:        TaskAnalyze,
			InputSource: core.InputSourceUser,
		})
	}

	if needsReport {
		step := core.Step{
			Agent:       core.AgentReportGenerator,
			Task:        TaskGenerate,
			InputSource: core.InputSourceUser,
		}
		if needsAnalysis {
			step.InputSource = core.AgentLogAnalyzer
			step.DependsOn = core.AgentLogAnalyzer
		}
		plan = append(plan, step)
	}

	if !needsAnalysis && !needsReport && needsSanitize {
		plan = append(plan, core.Step{
			Agent:       core.AgentSanitizer,
			Task:        TaskSanitize,
			InputSource: core.InputSourceUser,
		})
	}

	return plan
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
