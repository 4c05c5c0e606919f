package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFailedLoginCounterSlidingWindow(t *testing.T) {
	c := NewFailedLoginCounter(50 * time.Millisecond)

	assert.Equal(t, 1, c.RecordFailure("alice:nonce"))
	assert.Equal(t, 2, c.RecordFailure("alice:nonce"))
	assert.Equal(t, 1, c.RecordFailure("bob:nonce"))

	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, 1, c.RecordFailure("alice:nonce"))
}

func TestFailedLoginCounterReset(t *testing.T) {
	c := NewFailedLoginCounter(time.Minute)

	c.RecordFailure("alice:nonce")
	c.RecordFailure("alice:nonce")
	c.Reset("alice:nonce")

	assert.Equal(t, 1, c.RecordFailure("alice:nonce"))
}

func TestFailedLoginCounterSweep(t *testing.T) {
	c := NewFailedLoginCounter(10 * time.Millisecond)

	c.RecordFailure("alice:nonce")
	time.Sleep(20 * time.Millisecond)
	c.Sweep()

	c.mu.Lock()
	_, present := c.counts["alice:nonce"]
	c.mu.Unlock()

	assert.False(t, present)
}
