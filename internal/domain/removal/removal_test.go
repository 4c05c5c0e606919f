package removal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStateOf(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	assert.Equal(t, Present, StateOf(nil, now))
	assert.Equal(t, TrashBin, StateOf(&future, now))
	assert.Equal(t, Erasing, StateOf(&past, now))
	assert.Equal(t, Erasing, StateOf(&now, now))
}

func TestMatchesViewAllCoversEveryState(t *testing.T) {
	for _, s := range []State{Present, TrashBin, Erasing} {
		assert.True(t, Matches(s, ViewAll))
	}
}

func TestMatchesVisibleExcludesErasing(t *testing.T) {
	assert.True(t, Matches(Present, ViewVisible))
	assert.True(t, Matches(TrashBin, ViewVisible))
	assert.False(t, Matches(Erasing, ViewVisible))
}

func TestMutationLocked(t *testing.T) {
	assert.False(t, MutationLocked(Present))
	assert.True(t, MutationLocked(TrashBin))
	assert.True(t, MutationLocked(Erasing))
}
