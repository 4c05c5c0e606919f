// Package command implements the gateway's write-side use cases, one
// method per mutating HTTP operation, plus the entity lookups and listings
// the handlers and hierarchy resolvers need, orchestrating repositories, the
// object-storage façade, the pool-manager client and the MQ producers.
// Grounded on the teacher's services/command package (one UseCase struct
// aggregating every repository dependency); files here are one per resource.
package command

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/bondifuzz/api-gateway/internal/auth"
	"github.com/bondifuzz/api-gateway/internal/domain"
	"github.com/bondifuzz/api-gateway/internal/domain/unsentmessage"
	"github.com/bondifuzz/api-gateway/internal/mq"
	"github.com/bondifuzz/api-gateway/internal/objectstorage"
	"github.com/bondifuzz/api-gateway/internal/poolmanager"
	"github.com/bondifuzz/api-gateway/internal/sessioncache"
	"github.com/bondifuzz/api-gateway/internal/store/mongostore"
	"github.com/bondifuzz/api-gateway/pkg/mlog"
	"github.com/bondifuzz/api-gateway/pkg/mmongo"
)

// Pagination is the alias command handlers take for a parsed page request,
// avoiding a direct httpx import from the service layer.
type Pagination = domain.Page

// Limits carries the byte/size configuration options every upload and
// resource-bound check reads (§6 Configuration options).
type Limits struct {
	BinariesUploadLimit int64
	SeedsUploadLimit    int64
	ConfigUploadLimit   int64
	FuzzerMinCPU        int
	FuzzerMinRAM        int
	FuzzerMinTmpfs      int
}

// UseCase aggregates every dependency the command handlers need.
type UseCase struct {
	Logger mlog.Logger

	Users          *mongostore.UserRepository
	Projects       *mongostore.ProjectRepository
	Fuzzers        *mongostore.FuzzerRepository
	Revisions      *mongostore.RevisionRepository
	Integrations   *mongostore.IntegrationRepository
	Engines        *mongostore.EngineRepository
	Langs          *mongostore.LangRepository
	IntegrationTypes *mongostore.IntegrationTypeRepository
	Images         *mongostore.ImageRepository
	Crashes        *mongostore.CrashRepository
	Sessions       *mongostore.SessionRepository
	Lockouts       *mongostore.LockoutRepository
	UnsentMessages *mongostore.UnsentMessageRepository

	Mongo       *mmongo.MongoConnection
	Objects     *objectstorage.Store
	PoolManager *poolmanager.Client

	// SessionCache fronts ResolveSession lookups; nil disables caching
	// (e.g. in tests), in which case every call falls straight through to
	// the Sessions/Users repositories.
	SessionCache *sessioncache.Cache

	Scheduler        *mq.SchedulerProducer
	JiraReporter     *mq.ReporterProducer
	YoutrackReporter *mq.ReporterProducer

	CSRFSecret   []byte
	BFPSecret    []byte
	FailedLogins *auth.FailedLoginCounter

	SessionTTL        time.Duration
	CSRFTokenTTL      time.Duration
	LockoutPeriod     time.Duration
	MaxFailedLogins   int
	TrashBinRetention time.Duration

	// PlatformType gates node-group validation on pool creation
	// (§6 PLATFORM_TYPE: cloud|onprem|demo).
	PlatformType string

	Limits Limits
}

func now() string { return time.Now().UTC().Format(time.RFC3339) }

// recordUnsent persists a producer payload the broker publish could not
// deliver, for the operator-facing unsent-messages listing (SPEC_FULL.md §3
// supplement). Publish failures never block the caller's own mutation, so
// this is always the last step of an already-logged error path.
func (uc *UseCase) recordUnsent(ctx context.Context, queue string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		uc.Logger.Errorf("unsent message: marshal failed for queue %s: %v", queue, err)
		return
	}

	msg := &unsentmessage.UnsentMessage{
		ID:       uuid.NewString(),
		Queue:    queue,
		Payload:  string(body),
		FailedAt: now(),
	}

	if err := uc.UnsentMessages.Create(ctx, msg); err != nil {
		uc.Logger.Errorf("unsent message: persist failed for queue %s: %v", queue, err)
	}
}
