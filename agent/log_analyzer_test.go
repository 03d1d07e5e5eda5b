package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeLogs(t *testing.T) {
	logs := "ERROR: disk full\nWARN: high latency\n\nINFO: started\n"

	payload, err := analyzeLogs(context.Background(), logs)
	require.NoError(t, err)

	assert.True(t, payload.Success())
	analysis := payload["analysis"].(map[string]any)
	assert.Equal(t, 3, analysis["lines"])
	assert.Equal(t, 1, analysis["critical"])
	assert.Equal(t, 1, analysis["warnings"])

	s, ok := payload.Summary()
	require.True(t, ok)
	assert.Equal(t, "analyzed 3 lines: 1 critical, 1 warnings", s)
}

func TestAnalyzeLogs_CriticalTakesPrecedence(t *testing.T) {
	// a line matching both buckets counts as critical only
	payload, err := analyzeLogs(context.Background(), "WARN: fatal error during retry")
	require.NoError(t, err)

	analysis := payload["analysis"].(map[string]any)
	assert.Equal(t, 1, analysis["critical"])
	assert.Equal(t, 0, analysis["warnings"])
}

func TestAnalyzeLogs_CaseInsensitive(t *testing.T) {
	payload, err := analyzeLogs(context.Background(), "Panic: nil deref\nWarning: disk at 90%")
	require.NoError(t, err)

	analysis := payload["analysis"].(map[string]any)
	assert.Equal(t, 1, analysis["critical"])
	assert.Equal(t, 1, analysis["warnings"])
}

func TestAnalyzeLogs_EmptyInput(t *testing.T) {
	payload, err := analyzeLogs(context.Background(), "")
	require.NoError(t, err)

	assert.True(t, payload.Success())
	analysis := payload["analysis"].(map[string]any)
	assert.Equal(t, 0, analysis["lines"])
}

func TestAnalyzeLogs_StructuredInput(t *testing.T) {
	// non-string input is rendered as JSON before analysis
	payload, err := analyzeLogs(context.Background(), map[string]any{"message": "error: timeout"})
	require.NoError(t, err)

	analysis := payload["analysis"].(map[string]any)
	assert.Equal(t, 1, analysis["critical"])
}
