package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeletable(t *testing.T) {
	assert.True(t, User{}.Deletable())
	assert.False(t, User{IsSystem: true}.Deletable())
}
