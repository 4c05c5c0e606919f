package bootstrap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigDurationHelpers(t *testing.T) {
	cfg := &Config{
		CookieExpirationSeconds:       3600,
		DeviceCookieExpirationSeconds: 7200,
		CSRFProtectionTokenExpSec:     900,
		BFPLockoutPeriodSec:           600,
		SweepIntervalSeconds:          30,
		TrashBinExpirationSeconds:     120,
	}

	assert.Equal(t, time.Hour, cfg.CookieTTL())
	assert.Equal(t, 2*time.Hour, cfg.DeviceCookieTTL())
	assert.Equal(t, 15*time.Minute, cfg.CSRFTTL())
	assert.Equal(t, 10*time.Minute, cfg.LockoutPeriod())
	assert.Equal(t, 30*time.Second, cfg.SweepInterval())
	assert.Equal(t, 2*time.Minute, cfg.TrashBinRetention())
}

func TestMongoConnectionString(t *testing.T) {
	anon := MongoConfig{Host: "db", Port: "27017"}
	assert.Equal(t, "mongodb://db:27017", anon.connectionString())

	authed := MongoConfig{Host: "db", Port: "27017", User: "root", Password: "secret"}
	assert.Equal(t, "mongodb://root:secret@db:27017", authed.connectionString())
}

func TestRabbitMQConnectionString(t *testing.T) {
	r := RabbitMQConfig{Host: "mq", Port: "5672", User: "guest", Password: "guest"}
	assert.Equal(t, "amqp://guest:guest@mq:5672/", r.connectionString())
}
