// Package bootstrap loads configuration, wires every dependency the
// gateway's use cases need, and assembles the long-running apps (HTTP
// server, MQ consumer, background sweeper) a binary under cmd/ launches.
// Grounded on the teacher's pre-wire components/ledger/internal/service
// package: a flat Config struct with env tags, a Server/Service pair, and
// common.Launcher tying them together — adapted here onto
// pkg/envconfig.Load and internal/launcher instead of the teacher's
// lib-commons-backed common package (see DESIGN.md).
package bootstrap

import "time"

// Config is the gateway's complete runtime configuration, covering every
// option named in the configuration surface plus the cache/object-store
// additions.
type Config struct {
	Environment  string `env:"ENVIRONMENT,default=dev"`
	PlatformType string `env:"PLATFORM_TYPE,default=cloud"`
	ServerAddress string `env:"SERVER_ADDRESS,default=:8080"`
	PublicSelfURL string `env:"PUBLIC_SELF_URL"`

	CookieExpirationSeconds      int  `env:"COOKIE_EXPIRATION_SECONDS,default=86400"`
	CookieModeSecure             bool `env:"COOKIE_MODE_SECURE,default=true"`
	DeviceCookieExpirationSeconds int `env:"DEVICE_COOKIE_EXPIRATION_SECONDS,default=31536000"`

	CSRFProtectionEnabled      bool   `env:"CSRF_PROTECTION_ENABLED,default=true"`
	CSRFProtectionTokenExpSec  int    `env:"CSRF_PROTECTION_TOKEN_EXP_SECONDS,default=3600"`
	CSRFProtectionSecretKey    string `env:"CSRF_PROTECTION_SECRET_KEY,required"`

	BFPLockoutPeriodSec    int    `env:"BFP_LOCKOUT_PERIOD_SEC,default=900"`
	BFPMaxFailedLogins     int    `env:"BFP_MAX_FAILED_LOGINS,default=5"`
	BFPCleanupIntervalSec  int    `env:"BFP_CLEANUP_INTERVAL_SEC,default=300"`
	BFPSecretKey           string `env:"BFP_SECRET_KEY,required"`

	TrashBinExpirationSeconds int `env:"TRASHBIN_EXPIRATION_SECONDS,default=604800"`

	RevisionBinariesUploadLimit int64 `env:"REVISION_BINARIES_UPLOAD_LIMIT,default=536870912"`
	RevisionSeedsUploadLimit    int64 `env:"REVISION_SEEDS_UPLOAD_LIMIT,default=268435456"`
	RevisionConfigUploadLimit   int64 `env:"REVISION_CONFIG_UPLOAD_LIMIT,default=1048576"`

	FuzzerMinCPUUsage   int `env:"FUZZER_MIN_CPU_USAGE,default=1"`
	FuzzerMinRAMUsage   int `env:"FUZZER_MIN_RAM_USAGE,default=256"`
	FuzzerMinTmpfsUsage int `env:"FUZZER_MIN_TMPFS_USAGE,default=512"`

	RootUsername string `env:"ROOT_USERNAME,default=admin"`
	RootPassword string `env:"ROOT_PASSWORD"`
	RootEmail    string `env:"ROOT_EMAIL,default=admin@localhost"`

	SweepIntervalSeconds int `env:"SWEEP_INTERVAL_SECONDS,default=60"`

	Mongo      MongoConfig
	Redis      RedisConfig
	RabbitMQ   RabbitMQConfig
	S3         S3Config
	PoolMgr    PoolManagerConfig
	Reporters  ReportersConfig

	HashVerifyEnabled bool `env:"SFX_HASH_VERIFY_ENABLED,default=false"`
}

// MongoConfig is the document database connection.
type MongoConfig struct {
	Host     string `env:"MONGO_HOST,default=localhost"`
	Port     string `env:"MONGO_PORT,default=27017"`
	User     string `env:"MONGO_USER"`
	Password string `env:"MONGO_PASSWORD"`
	Name     string `env:"MONGO_NAME,default=apigateway"`
}

// RedisConfig is the cache backend used by the session lookup cache and,
// should a future replica deployment need it, a shared bruteforce counter.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST,default=localhost"`
	Port     string `env:"REDIS_PORT,default=6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,default=0"`
}

// RabbitMQConfig is the message broker connection plus the gateway's own
// queue/exchange names (§4.5: one own queue, four outbound exchanges).
type RabbitMQConfig struct {
	Host     string `env:"RABBITMQ_HOST,default=localhost"`
	Port     string `env:"RABBITMQ_PORT,default=5672"`
	User     string `env:"RABBITMQ_USER,default=guest"`
	Password string `env:"RABBITMQ_PASSWORD,default=guest"`

	OwnQueue string `env:"RABBITMQ_OWN_QUEUE,default=api-gateway"`
	DLQName  string `env:"RABBITMQ_DLQ_NAME,default=api-gateway.dlq"`

	SchedulerExchange        string `env:"RABBITMQ_SCHEDULER_EXCHANGE,default=scheduler"`
	JiraReporterExchange     string `env:"RABBITMQ_JIRA_REPORTER_EXCHANGE,default=jira-reporter"`
	YoutrackReporterExchange string `env:"RABBITMQ_YOUTRACK_REPORTER_EXCHANGE,default=youtrack-reporter"`
	PoolManagerExchange      string `env:"RABBITMQ_POOL_MANAGER_EXCHANGE,default=pool-manager"`
}

// S3Config is the object-storage façade's concrete transport.
type S3Config struct {
	Region      string `env:"S3_REGION,default=us-east-1"`
	AccessKey   string `env:"S3_ACCESS_KEY"`
	SecretKey   string `env:"S3_SECRET_KEY"`
	EndpointURL string `env:"S3_ENDPOINT_URL"`
	Bucket      string `env:"S3_BUCKET,default=fuzzing-artifacts"`
}

// PoolManagerConfig is the external pool-manager service's synchronous
// lookup API.
type PoolManagerConfig struct {
	BaseURL        string        `env:"POOL_MANAGER_URL"`
	APIKey         string        `env:"POOL_MANAGER_API_KEY"`
	RequestTimeout time.Duration `env:"POOL_MANAGER_TIMEOUT,default=10s"`
}

// ReportersConfig names the two bug-tracker integration services the
// reporter producers publish toward (informational only: the actual
// delivery happens on their own consumer side of the broker).
type ReportersConfig struct {
	JiraURL     string `env:"JIRA_REPORTER_URL"`
	YoutrackURL string `env:"YT_REPORTER_URL"`
}

func (c *Config) CookieTTL() time.Duration {
	return time.Duration(c.CookieExpirationSeconds) * time.Second
}

func (c *Config) DeviceCookieTTL() time.Duration {
	return time.Duration(c.DeviceCookieExpirationSeconds) * time.Second
}

func (c *Config) CSRFTTL() time.Duration {
	return time.Duration(c.CSRFProtectionTokenExpSec) * time.Second
}

func (c *Config) LockoutPeriod() time.Duration {
	return time.Duration(c.BFPLockoutPeriodSec) * time.Second
}

func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalSeconds) * time.Second
}

func (c *Config) TrashBinRetention() time.Duration {
	return time.Duration(c.TrashBinExpirationSeconds) * time.Second
}

func (m MongoConfig) connectionString() string {
	if m.User == "" {
		return "mongodb://" + m.Host + ":" + m.Port
	}

	return "mongodb://" + m.User + ":" + m.Password + "@" + m.Host + ":" + m.Port
}

func (r RabbitMQConfig) connectionString() string {
	return "amqp://" + r.User + ":" + r.Password + "@" + r.Host + ":" + r.Port + "/"
}
