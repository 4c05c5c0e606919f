package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bondifuzz/api-gateway/internal/domain/removal"
)

func TestNewPageClampsSize(t *testing.T) {
	assert.Equal(t, 10, NewPage(0, 1).Size)
	assert.Equal(t, 200, NewPage(0, 9999).Size)
	assert.Equal(t, 100, NewPage(0, 0).Size)
	assert.Equal(t, 50, NewPage(0, 50).Size)
}

func TestNewPageOffset(t *testing.T) {
	p := NewPage(2, 20)
	assert.Equal(t, 40, p.Offset())
	assert.Equal(t, 20, p.Limit())
}

func TestParseRemovalViewDefaultsToVisible(t *testing.T) {
	assert.Equal(t, removal.ViewVisible, ParseRemovalView(""))
	assert.Equal(t, removal.ViewVisible, ParseRemovalView("bogus"))
	assert.Equal(t, removal.ViewAll, ParseRemovalView("All"))
}
