package revision

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanStart(t *testing.T) {
	assert.True(t, Revision{Status: Unverified}.CanStart())
	assert.True(t, Revision{Status: Stopped}.CanStart())
	assert.False(t, Revision{Status: Verifying}.CanStart())
	assert.False(t, Revision{Status: Running}.CanStart())
}

func TestStopTarget(t *testing.T) {
	assert.Equal(t, Unverified, Revision{Status: Verifying}.StopTarget())
	assert.Equal(t, Stopped, Revision{Status: Running}.StopTarget())
}

func TestRestartTarget(t *testing.T) {
	assert.Equal(t, Verifying, Revision{IsVerified: false}.RestartTarget())
	assert.Equal(t, Running, Revision{IsVerified: true}.RestartTarget())
}

func TestOnlyRestartable(t *testing.T) {
	assert.True(t, Revision{Health: HealthError, Status: Running}.OnlyRestartable())
	assert.False(t, Revision{Health: HealthError, Status: Unverified}.OnlyRestartable())
	assert.False(t, Revision{Health: HealthOk, Status: Running}.OnlyRestartable())
}

func TestComputeHealth(t *testing.T) {
	assert.Equal(t, HealthOk, ComputeHealth(
		UploadStatus{Uploaded: true},
		UploadStatus{},
		UploadStatus{},
	))

	assert.Equal(t, HealthError, ComputeHealth(
		UploadStatus{Uploaded: false},
		UploadStatus{},
		UploadStatus{},
	))

	assert.Equal(t, HealthError, ComputeHealth(
		UploadStatus{Uploaded: true},
		UploadStatus{Uploaded: false, LastError: &Error{Code: "E_UPLOAD_FAILURE"}},
		UploadStatus{},
	))
}
