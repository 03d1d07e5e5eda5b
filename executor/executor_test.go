package executor

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/internal/testutil"
	"github.com/hupe1980/agentgrid/logging"
	"github.com/hupe1980/agentgrid/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutor_SingleStep(t *testing.T) {
	stub := testutil.NewStubAgent(t, "/analyze", func(o *testutil.StubAgentOptions) {
		o.Response = core.Payload{"success": true, "summary": "analyzed 3 lines: 1 critical, 1 warnings"}
	})

	store := registry.NewInMemoryStore()
	store.Register(testutil.Descriptor(core.AgentLogAnalyzer, stub.URL(), "analyze"))

	exec := New(store)
	res, err := exec.ExecutePlan(context.Background(), core.Plan{
		testutil.UserStep(core.AgentLogAnalyzer, "analyze"),
	}, "ERROR: disk full\nWARN: slow\nall good")

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.Results.Len())
	require.Len(t, res.Trace, 1)
	assert.Equal(t, "log-analyzer: analyzed 3 lines: 1 critical, 1 warnings", res.Trace[0])

	calls := stub.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "ERROR: disk full\nWARN: slow\nall good", calls[0])
}

func TestExecutor_ChainsPriorResult(t *testing.T) {
	analyzer := testutil.NewStubAgent(t, "/analyze", func(o *testutil.StubAgentOptions) {
		o.Response = core.Payload{"success": true, "summary": "2 critical"}
	})
	reporter := testutil.NewStubAgent(t, "/generate", func(o *testutil.StubAgentOptions) {
		o.Response = core.Payload{"success": true, "summary": "report ready"}
	})

	store := registry.NewInMemoryStore()
	store.Register(testutil.Descriptor(core.AgentLogAnalyzer, analyzer.URL(), "analyze"))
	store.Register(testutil.Descriptor(core.AgentReportGenerator, reporter.URL(), "generate"))

	exec := New(store)
	res, err := exec.ExecutePlan(context.Background(), core.Plan{
		testutil.UserStep(core.AgentLogAnalyzer, "analyze"),
		testutil.DependentStep(core.AgentReportGenerator, "generate", core.AgentLogAnalyzer),
	}, "raw logs")

	require.NoError(t, err)
	assert.Equal(t, []string{"log-analyzer: 2 critical", "report-generator: report ready"}, res.Trace)

	// the second step must receive the analyzer's output, not the user input
	calls := reporter.Calls()
	require.Len(t, calls, 1)
	forwarded, ok := calls[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "2 critical", forwarded["summary"])
}

func TestExecutor_UnknownAgentFailsFast(t *testing.T) {
	reporter := testutil.NewStubAgent(t, "/generate")

	store := registry.NewInMemoryStore()
	store.Register(testutil.Descriptor(core.AgentReportGenerator, reporter.URL(), "generate"))

	exec := New(store)
	res, err := exec.ExecutePlan(context.Background(), core.Plan{
		testutil.UserStep(core.AgentLogAnalyzer, "analyze"),
		testutil.UserStep(core.AgentReportGenerator, "generate"),
	}, "input")

	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, core.ErrUnknownAgent))

	var stepErr *core.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, core.AgentLogAnalyzer, stepErr.Agent)
	assert.Equal(t, 0, stepErr.Step)

	// later steps must not have been dispatched
	assert.Empty(t, reporter.Calls())
}

func TestExecutor_UnmetDependency(t *testing.T) {
	reporter := testutil.NewStubAgent(t, "/generate")

	store := registry.NewInMemoryStore()
	store.Register(testutil.Descriptor(core.AgentReportGenerator, reporter.URL(), "generate"))

	exec := New(store)
	_, err := exec.ExecutePlan(context.Background(), core.Plan{
		testutil.DependentStep(core.AgentReportGenerator, "generate", core.AgentLogAnalyzer),
	}, "input")

	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrUnmetDependency))
	assert.Empty(t, reporter.Calls())
}

func TestExecutor_AgentErrorStatus(t *testing.T) {
	stub := testutil.NewStubAgent(t, "/analyze", func(o *testutil.StubAgentOptions) {
		o.Status = 500
		o.Response = core.Payload{"success": false, "error": "boom"}
	})

	store := registry.NewInMemoryStore()
	store.Register(testutil.Descriptor(core.AgentLogAnalyzer, stub.URL(), "analyze"))

	exec := New(store)
	_, err := exec.ExecutePlan(context.Background(), core.Plan{
		testutil.UserStep(core.AgentLogAnalyzer, "analyze"),
	}, "input")

	require.Error(t, err)

	var stepErr *core.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, core.AgentLogAnalyzer, stepErr.Agent)
	assert.Contains(t, err.Error(), "500")
}

func TestExecutor_CallTimeout(t *testing.T) {
	stub := testutil.NewStubAgent(t, "/analyze", func(o *testutil.StubAgentOptions) {
		o.Delay = 200 * time.Millisecond
	})

	store := registry.NewInMemoryStore()
	store.Register(testutil.Descriptor(core.AgentLogAnalyzer, stub.URL(), "analyze"))

	exec := New(store, func(o *Options) {
		o.CallTimeout = 20 * time.Millisecond
	})
	_, err := exec.ExecutePlan(context.Background(), core.Plan{
		testutil.UserStep(core.AgentLogAnalyzer, "analyze"),
	}, "input")

	require.Error(t, err)

	var stepErr *core.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, core.AgentLogAnalyzer, stepErr.Agent)
}

func TestExecutor_RouteFallback(t *testing.T) {
	stub := testutil.NewStubAgent(t, "/translate")

	store := registry.NewInMemoryStore()
	store.Register(testutil.Descriptor("translator", stub.URL(), "translate"))

	exec := New(store)
	res, err := exec.ExecutePlan(context.Background(), core.Plan{
		testutil.UserStep("translator", "translate"),
	}, "hola")

	require.NoError(t, err)
	assert.True(t, res.Success)
	require.Len(t, stub.Calls(), 1)
}

func TestExecutor_EmptyPlan(t *testing.T) {
	exec := New(registry.NewInMemoryStore())

	res, err := exec.ExecutePlan(context.Background(), core.Plan{}, "anything")

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 0, res.Results.Len())
	assert.Empty(t, res.Trace)
}

// recordingLogger captures the dispatch metrics the executor hands to
// recorder-capable loggers.
type recordingLogger struct {
	logging.NoOpLogger
	agentCalls []string
	planRuns   []bool
}

func (l *recordingLogger) LogAgentCall(agent, path string, _ time.Duration, success bool, _ error) {
	l.agentCalls = append(l.agentCalls, fmt.Sprintf("%s %s %t", agent, path, success))
}

func (l *recordingLogger) LogPlanExecution(_ int, _ time.Duration, success bool, _ error) {
	l.planRuns = append(l.planRuns, success)
}

func TestExecutor_RecordsDispatchMetrics(t *testing.T) {
	analyzer := testutil.NewStubAgent(t, "/analyze")
	reporter := testutil.NewStubAgent(t, "/generate")

	store := registry.NewInMemoryStore()
	store.Register(testutil.Descriptor(core.AgentLogAnalyzer, analyzer.URL(), "analyze"))
	store.Register(testutil.Descriptor(core.AgentReportGenerator, reporter.URL(), "generate"))

	rec := &recordingLogger{}
	exec := New(store, func(o *Options) {
		o.Logger = rec
	})

	_, err := exec.ExecutePlan(context.Background(), core.Plan{
		testutil.UserStep(core.AgentLogAnalyzer, "analyze"),
		testutil.UserStep(core.AgentReportGenerator, "generate"),
	}, "input")

	require.NoError(t, err)
	assert.Equal(t, []string{"log-analyzer /analyze true", "report-generator /generate true"}, rec.agentCalls)
	assert.Equal(t, []bool{true}, rec.planRuns)
}

func TestExecutor_RecordsFailedPlan(t *testing.T) {
	rec := &recordingLogger{}
	exec := New(registry.NewInMemoryStore(), func(o *Options) {
		o.Logger = rec
	})

	_, err := exec.ExecutePlan(context.Background(), core.Plan{
		testutil.UserStep(core.AgentLogAnalyzer, "analyze"),
	}, "input")

	require.Error(t, err)
	assert.Empty(t, rec.agentCalls)
	assert.Equal(t, []bool{false}, rec.planRuns)
}

func TestExecutor_TraceFallbackLine(t *testing.T) {
	stub := testutil.NewStubAgent(t, "/analyze", func(o *testutil.StubAgentOptions) {
		o.Response = core.Payload{"success": true}
	})

	store := registry.NewInMemoryStore()
	store.Register(testutil.Descriptor(core.AgentLogAnalyzer, stub.URL(), "analyze"))

	exec := New(store)
	res, err := exec.ExecutePlan(context.Background(), core.Plan{
		testutil.UserStep(core.AgentLogAnalyzer, "analyze"),
	}, "input")

	require.NoError(t, err)
	assert.Equal(t, []string{"log-analyzer: completed"}, res.Trace)
}
