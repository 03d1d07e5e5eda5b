package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultSet_InsertionOrder(t *testing.T) {
	rs := NewResultSet()
	rs.Set(AgentLogAnalyzer, Payload{"success": true})
	rs.Set(AgentReportGenerator, Payload{"success": true})

	assert.Equal(t, []string{AgentLogAnalyzer, AgentReportGenerator}, rs.Agents())
	assert.Equal(t, 2, rs.Len())

	got, ok := rs.Get(AgentLogAnalyzer)
	require.True(t, ok)
	assert.Equal(t, Payload{"success": true}, got)

	_, ok = rs.Get(AgentSanitizer)
	assert.False(t, ok)
}

func TestResultSet_MarshalPreservesOrder(t *testing.T) {
	rs := NewResultSet()
	rs.Set("zeta", Payload{"n": 1})
	rs.Set("alpha", Payload{"n": 2})

	data, err := json.Marshal(rs)
	require.NoError(t, err)

	// zeta was inserted first and must appear first despite sorting last.
	assert.Less(t, indexOf(string(data), "zeta"), indexOf(string(data), "alpha"))
}

func TestResultSet_EmptyMarshalsAsObject(t *testing.T) {
	data, err := json.Marshal(NewResultSet())
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(data))
}

func TestResultSet_NilSafe(t *testing.T) {
	var rs *ResultSet
	_, ok := rs.Get("anything")
	assert.False(t, ok)
	assert.Zero(t, rs.Len())
	assert.Nil(t, rs.Agents())
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
