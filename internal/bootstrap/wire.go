package bootstrap

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bondifuzz/api-gateway/internal/auth"
	apihttp "github.com/bondifuzz/api-gateway/internal/http"
	"github.com/bondifuzz/api-gateway/internal/http/handlers"
	"github.com/bondifuzz/api-gateway/internal/http/middleware"
	"github.com/bondifuzz/api-gateway/internal/mq"
	"github.com/bondifuzz/api-gateway/internal/objectstorage"
	"github.com/bondifuzz/api-gateway/internal/poolmanager"
	"github.com/bondifuzz/api-gateway/internal/services/command"
	"github.com/bondifuzz/api-gateway/internal/services/consumer"
	"github.com/bondifuzz/api-gateway/internal/services/query"
	"github.com/bondifuzz/api-gateway/internal/sessioncache"
	"github.com/bondifuzz/api-gateway/internal/store/mongostore"
	"github.com/bondifuzz/api-gateway/pkg/mlog"
	"github.com/bondifuzz/api-gateway/pkg/mmongo"
	"github.com/bondifuzz/api-gateway/pkg/mobjectstorage"
	"github.com/bondifuzz/api-gateway/pkg/mrabbitmq"
	"github.com/bondifuzz/api-gateway/pkg/mredis"
)

// buildVersion is overridden at link time in release builds
// (-ldflags "-X .../bootstrap.buildVersion=...").
var buildVersion = "dev"

// Dependencies is everything NewDependencies connects and constructs,
// handed to whichever cmd/ binary needs a subset of it.
type Dependencies struct {
	Config *Config
	Logger mlog.Logger

	Mongo    *mmongo.MongoConnection
	Redis    *mredis.Connection
	RabbitMQ *mrabbitmq.RabbitMQConnection
	S3       *mobjectstorage.S3Connection

	Commands *command.UseCase
	Queries  *query.UseCase
	Consumer *consumer.UseCase

	MQRuntime          *mq.Runtime
	PoolManagerChannel *mq.PoolManagerProducer

	SessionRepo *mongostore.SessionRepository
	LockoutRepo *mongostore.LockoutRepository

	App *fiber.App
}

// NewDependencies connects every external backend and wires the
// repositories, producers, and use cases on top of them, grounded on the
// teacher's service.NewConfig/NewServer assembly but expanded across the
// gateway's four backends (Mongo, Redis, RabbitMQ, S3) instead of the
// teacher's single primary/replica Postgres pair.
func NewDependencies(ctx context.Context, cfg *Config, logger mlog.Logger) (*Dependencies, error) {
	mongoConn := &mmongo.MongoConnection{
		ConnectionStringSource: cfg.Mongo.connectionString(),
		Database:               cfg.Mongo.Name,
		Logger:                 logger,
	}
	if err := mongoConn.Connect(ctx); err != nil {
		return nil, fmt.Errorf("bootstrap: mongo: %w", err)
	}

	db, err := mongoConn.GetDB(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: mongo db handle: %w", err)
	}

	redisConn := &mredis.Connection{
		Address:  cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Logger:   logger,
	}
	if err := redisConn.Connect(ctx); err != nil {
		return nil, fmt.Errorf("bootstrap: redis: %w", err)
	}

	rabbitConn := &mrabbitmq.RabbitMQConnection{
		ConnectionStringSource: cfg.RabbitMQ.connectionString(),
		Logger:                 logger,
	}
	if err := rabbitConn.Connect(ctx); err != nil {
		return nil, fmt.Errorf("bootstrap: rabbitmq: %w", err)
	}

	s3Conn := &mobjectstorage.S3Connection{
		Region:      cfg.S3.Region,
		AccessKey:   cfg.S3.AccessKey,
		SecretKey:   cfg.S3.SecretKey,
		EndpointURL: cfg.S3.EndpointURL,
		Bucket:      cfg.S3.Bucket,
		Logger:      logger,
	}
	if err := s3Conn.Connect(ctx); err != nil {
		return nil, fmt.Errorf("bootstrap: object storage: %w", err)
	}

	s3Client, err := s3Conn.GetClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: object storage client: %w", err)
	}

	rt := mq.NewRuntime(rabbitConn, logger)
	rt.SchedulerExchange = cfg.RabbitMQ.SchedulerExchange
	rt.JiraReporterExchange = cfg.RabbitMQ.JiraReporterExchange
	rt.YoutrackReporterExchange = cfg.RabbitMQ.YoutrackReporterExchange
	rt.PoolManagerExchange = cfg.RabbitMQ.PoolManagerExchange
	rt.OwnQueue = cfg.RabbitMQ.OwnQueue
	rt.DLQName = cfg.RabbitMQ.DLQName

	repos := newRepositories(db)

	objects := objectstorage.New(s3Client, cfg.S3.Bucket, logger, cfg.HashVerifyEnabled)
	pm := poolmanager.New(cfg.PoolMgr.BaseURL, cfg.PoolMgr.APIKey, cfg.PoolMgr.RequestTimeout)
	cache := sessioncache.New(redisConn, cfg.CookieTTL(), logger)

	commands := &command.UseCase{
		Logger: logger,

		Users:            repos.users,
		Projects:         repos.projects,
		Fuzzers:          repos.fuzzers,
		Revisions:        repos.revisions,
		Integrations:     repos.integrations,
		Engines:          repos.engines,
		Langs:            repos.langs,
		IntegrationTypes: repos.integrationTypes,
		Images:           repos.images,
		Crashes:          repos.crashes,
		Sessions:         repos.sessions,
		Lockouts:         repos.lockouts,
		UnsentMessages:   repos.unsentMessages,

		Mongo:       mongoConn,
		Objects:     objects,
		PoolManager: pm,

		SessionCache: cache,

		Scheduler:        mq.NewSchedulerProducer(rt),
		JiraReporter:     mq.NewJiraReporterProducer(rt),
		YoutrackReporter: mq.NewYoutrackReporterProducer(rt),

		CSRFSecret:   []byte(cfg.CSRFProtectionSecretKey),
		BFPSecret:    []byte(cfg.BFPSecretKey),
		FailedLogins: auth.NewFailedLoginCounter(cfg.LockoutPeriod()),

		SessionTTL:        cfg.CookieTTL(),
		CSRFTokenTTL:      cfg.CSRFTTL(),
		LockoutPeriod:     cfg.LockoutPeriod(),
		MaxFailedLogins:   cfg.BFPMaxFailedLogins,
		TrashBinRetention: cfg.TrashBinRetention(),

		PlatformType: cfg.PlatformType,

		Limits: command.Limits{
			BinariesUploadLimit: cfg.RevisionBinariesUploadLimit,
			SeedsUploadLimit:    cfg.RevisionSeedsUploadLimit,
			ConfigUploadLimit:   cfg.RevisionConfigUploadLimit,
			FuzzerMinCPU:        cfg.FuzzerMinCPUUsage,
			FuzzerMinRAM:        cfg.FuzzerMinRAMUsage,
			FuzzerMinTmpfs:      cfg.FuzzerMinTmpfsUsage,
		},
	}

	queries := &query.UseCase{
		Logger:     logger,
		Fuzzers:    repos.fuzzers,
		Revisions:  repos.revisions,
		Crashes:    repos.crashes,
		Statistics: repos.statistics,
	}

	consumerUC := &consumer.UseCase{
		Logger: logger,

		Projects:     repos.projects,
		Fuzzers:      repos.fuzzers,
		Revisions:    repos.revisions,
		Crashes:      repos.crashes,
		Integrations: repos.integrations,
		Statistics:   repos.statistics,

		Scheduler:        commands.Scheduler,
		JiraReporter:     commands.JiraReporter,
		YoutrackReporter: commands.YoutrackReporter,

		PublicSelfURL: cfg.PublicSelfURL,
	}

	app := buildRouter(logger, cfg, commands, queries)

	return &Dependencies{
		Config: cfg,
		Logger: logger,

		Mongo:    mongoConn,
		Redis:    redisConn,
		RabbitMQ: rabbitConn,
		S3:       s3Conn,

		Commands: commands,
		Queries:  queries,
		Consumer: consumerUC,

		MQRuntime:          rt,
		PoolManagerChannel: mq.NewPoolManagerProducer(rt),

		SessionRepo: repos.sessions,
		LockoutRepo: repos.lockouts,

		App: app,
	}, nil
}

// repositories groups every mongostore repository so NewDependencies can
// build and thread them through in one place.
type repositories struct {
	users            *mongostore.UserRepository
	projects         *mongostore.ProjectRepository
	fuzzers          *mongostore.FuzzerRepository
	revisions        *mongostore.RevisionRepository
	integrations     *mongostore.IntegrationRepository
	engines          *mongostore.EngineRepository
	langs            *mongostore.LangRepository
	integrationTypes *mongostore.IntegrationTypeRepository
	images           *mongostore.ImageRepository
	crashes          *mongostore.CrashRepository
	sessions         *mongostore.SessionRepository
	lockouts         *mongostore.LockoutRepository
	unsentMessages   *mongostore.UnsentMessageRepository
	statistics       *mongostore.StatisticsRepository
}

func newRepositories(db *mongo.Database) *repositories {
	return &repositories{
		users:            mongostore.NewUserRepository(db),
		projects:         mongostore.NewProjectRepository(db),
		fuzzers:          mongostore.NewFuzzerRepository(db),
		revisions:        mongostore.NewRevisionRepository(db),
		integrations:     mongostore.NewIntegrationRepository(db),
		engines:          mongostore.NewEngineRepository(db),
		langs:            mongostore.NewLangRepository(db),
		integrationTypes: mongostore.NewIntegrationTypeRepository(db),
		images:           mongostore.NewImageRepository(db),
		crashes:          mongostore.NewCrashRepository(db),
		sessions:         mongostore.NewSessionRepository(db),
		lockouts:         mongostore.NewLockoutRepository(db),
		unsentMessages:   mongostore.NewUnsentMessageRepository(db),
		statistics:       mongostore.NewStatisticsRepository(db),
	}
}

// buildRouter constructs every handler and middleware set and wires them
// onto the gateway's fiber.App, grounded on components/ledger/internal/
// bootstrap/http/routes.go's top-level assembly function.
func buildRouter(logger mlog.Logger, cfg *Config, commands *command.UseCase, queries *query.UseCase) *fiber.App {
	authMW := middleware.NewAuth(commands, cfg.CSRFProtectionEnabled)
	hierMW := middleware.NewHierarchy(commands)

	h := apihttp.Handlers{
		Auth:         handlers.NewAuthHandler(commands, cfg.CookieModeSecure, cfg.DeviceCookieTTL()),
		Users:        handlers.NewUserHandler(commands),
		Projects:     handlers.NewProjectHandler(commands),
		Pools:        handlers.NewPoolHandler(commands),
		Fuzzers:      handlers.NewFuzzerHandler(commands),
		Revisions:    handlers.NewRevisionHandler(commands),
		Uploads:      handlers.NewUploadHandler(commands),
		Catalog:      handlers.NewCatalogHandler(commands),
		Integrations: handlers.NewIntegrationHandler(commands),
		Stats:        handlers.NewStatsHandler(queries),
		Unsent:       handlers.NewUnsentHandler(commands),
	}

	return apihttp.NewRouter(logger, buildVersion, authMW, hierMW, h)
}
