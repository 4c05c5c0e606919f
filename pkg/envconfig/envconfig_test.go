package envconfig

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inner struct {
	Region string `env:"AWS_REGION,default=us-east-1"`
}

type sample struct {
	Name     string        `env:"APP_NAME,required"`
	Debug    bool          `env:"APP_DEBUG,default=false"`
	Timeout  time.Duration `env:"APP_TIMEOUT,default=30s"`
	MaxSize  int64         `env:"APP_MAX_SIZE,default=100"`
	Tags     []string      `env:"APP_TAGS"`
	Inner    inner
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	t.Setenv("APP_NAME", "gateway")
	t.Setenv("APP_DEBUG", "true")
	t.Setenv("APP_TAGS", "a, b,c")

	var cfg sample
	require.NoError(t, Load(&cfg))

	assert.Equal(t, "gateway", cfg.Name)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, int64(100), cfg.MaxSize)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Tags)
	assert.Equal(t, "us-east-1", cfg.Inner.Region)
}

func TestLoadMissingRequired(t *testing.T) {
	var cfg sample
	assert.Error(t, Load(&cfg))
}
