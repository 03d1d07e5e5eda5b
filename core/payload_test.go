package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayload_Summary(t *testing.T) {
	s, ok := Payload{"summary": "two warnings"}.Summary()
	assert.True(t, ok)
	assert.Equal(t, "two warnings", s)

	s, ok = Payload{"message": "done"}.Summary()
	assert.True(t, ok)
	assert.Equal(t, "done", s)

	// summary wins over message
	s, _ = Payload{"summary": "a", "message": "b"}.Summary()
	assert.Equal(t, "a", s)

	_, ok = Payload{"other": 1}.Summary()
	assert.False(t, ok)

	_, ok = Payload{"summary": 42}.Summary()
	assert.False(t, ok)
}

func TestPayload_Success(t *testing.T) {
	assert.True(t, Payload{"success": true}.Success())
	assert.False(t, Payload{"success": false}.Success())
	assert.False(t, Payload{"success": "yes"}.Success())
	assert.False(t, Payload{}.Success())
}

func TestStepError(t *testing.T) {
	err := &StepError{Agent: AgentSanitizer, Step: 2, Err: ErrUnknownAgent}

	assert.Contains(t, err.Error(), AgentSanitizer)
	assert.Contains(t, err.Error(), "step 2")
	assert.True(t, errors.Is(err, ErrUnknownAgent))
}
