package integrationtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	assert.True(t, Valid(Jira))
	assert.True(t, Valid(Youtrack))
	assert.False(t, Valid("github"))
}
