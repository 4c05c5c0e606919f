package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bondifuzz/api-gateway/internal/domain/integrationtype"
)

func TestConfigValid(t *testing.T) {
	jira := Config{Type: integrationtype.Jira, Jira: &JiraConfig{URL: "https://jira.example.com"}}
	assert.True(t, jira.Valid())

	mismatched := Config{Type: integrationtype.Jira, Youtrack: &YoutrackConfig{}}
	assert.False(t, mismatched.Valid())

	empty := Config{Type: integrationtype.Youtrack}
	assert.False(t, empty.Valid())
}
