package crash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotifyOnDuplicate(t *testing.T) {
	assert.True(t, NotifyOnDuplicate(1))
	assert.False(t, NotifyOnDuplicate(2))
	assert.False(t, NotifyOnDuplicate(9))
	assert.True(t, NotifyOnDuplicate(10))
	assert.True(t, NotifyOnDuplicate(20))
	assert.False(t, NotifyOnDuplicate(21))
}
