package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Exposition(t *testing.T) {
	m := NewMetrics()
	m.OrchestrationObserved(OutcomeSuccess, 30*time.Millisecond)
	m.OrchestrationObserved(OutcomeNoMatch, 0)
	m.RegistrationObserved(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	out := string(body)
	assert.Contains(t, out, `agentgrid_orchestrations_total{outcome="success"} 1`)
	assert.Contains(t, out, `agentgrid_orchestrations_total{outcome="no_match"} 1`)
	assert.Contains(t, out, "agentgrid_registrations_total 1")
	assert.Contains(t, out, "agentgrid_registered_agents 3")
	assert.Contains(t, out, "agentgrid_plan_duration_seconds_count 1")
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.OrchestrationObserved(OutcomeError, time.Second)
	m.RegistrationObserved(1)
}
