package apperr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKnownCode(t *testing.T) {
	err := New(EUserNotFound)

	assert.Equal(t, 404, err.Status)
	assert.Equal(t, EUserNotFound, err.Code)
	assert.Equal(t, "Requested user does not exist", err.Message)
}

func TestNewWithParams(t *testing.T) {
	err := New(EEngineInUseBy, "libfuzzer")

	assert.Equal(t, "Engine is in use by: libfuzzer", err.Message)
}

func TestIs(t *testing.T) {
	err := New(EFuzzerDeleted)

	assert.True(t, Is(err, EFuzzerDeleted))
	assert.False(t, Is(err, EFuzzerExists))
	assert.False(t, Is(assert.AnError, EFuzzerDeleted))
}
