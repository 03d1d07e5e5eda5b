package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "agentgrid", cfg.App.Name)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "0.0.0.0:8080", cfg.Coordinator.Addr())
	assert.Equal(t, 5*time.Second, cfg.Coordinator.CallTimeout)
	assert.Equal(t, "0.0.0.0:8081", cfg.Agent.Addr())
	assert.Equal(t, "http://localhost:8080", cfg.Agent.CoordinatorURL)
	assert.Equal(t, 2*time.Second, cfg.Agent.RegisterDelay)
	assert.Empty(t, cfg.Agent.PeerURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GRID_COORDINATOR_PORT", "9090")
	t.Setenv("GRID_CALL_TIMEOUT", "750ms")
	t.Setenv("AGENT_PORT", "9091")
	t.Setenv("AGENT_PEER_URL", "http://sanitizer:8083")
	t.Setenv("AGENT_REGISTER_DELAY", "0s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.Coordinator.Addr())
	assert.Equal(t, 750*time.Millisecond, cfg.Coordinator.CallTimeout)
	assert.Equal(t, "0.0.0.0:9091", cfg.Agent.Addr())
	assert.Equal(t, "http://sanitizer:8083", cfg.Agent.PeerURL)
	assert.Equal(t, time.Duration(0), cfg.Agent.RegisterDelay)
}

func TestAgentConfig_AdvertisedURL(t *testing.T) {
	cfg := AgentConfig{Port: 8082}
	assert.Equal(t, "http://localhost:8082", cfg.AdvertisedURL())

	cfg.URL = "http://report-generator.internal:8082"
	assert.Equal(t, "http://report-generator.internal:8082", cfg.AdvertisedURL())
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("AGENT_CALL_TIMEOUT", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
}
