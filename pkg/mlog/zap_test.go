package mlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedact(t *testing.T) {
	in := []any{"username", "alice", "password", "hunter2", "csrf_token", "abc123", "count", 3}

	out := redact(in)

	assert.Equal(t, "alice", out[1])
	assert.Equal(t, redactedPlaceholder, out[3])
	assert.Equal(t, redactedPlaceholder, out[5])
	assert.Equal(t, 3, out[7])
}

func TestRedactOddLength(t *testing.T) {
	in := []any{"password"}

	assert.NotPanics(t, func() { redact(in) })
}
