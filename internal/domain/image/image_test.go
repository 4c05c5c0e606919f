package image

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bondifuzz/api-gateway/internal/domain/engine"
)

func TestImageSupportsEngine(t *testing.T) {
	img := Image{ID: "img-1", Engines: []engine.ID{engine.LibFuzzer, engine.Jazzer}}

	assert.True(t, img.SupportsEngine(engine.LibFuzzer))
	assert.False(t, img.SupportsEngine(engine.AFL))
}
