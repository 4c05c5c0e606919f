package mq

import "context"

// SchedulerProducer sends the four fuzzer-lifecycle commands the scheduler
// consumes (§4.5 "Producers (→ scheduler)").
type SchedulerProducer struct {
	rt *Runtime
}

// NewSchedulerProducer builds a producer bound to rt's scheduler exchange.
func NewSchedulerProducer(rt *Runtime) *SchedulerProducer { return &SchedulerProducer{rt: rt} }

func (p *SchedulerProducer) StartFuzzer(ctx context.Context, m StartFuzzer) error {
	return p.rt.Publish(ctx, p.rt.SchedulerExchange, "start_fuzzer", m)
}

func (p *SchedulerProducer) UpdateFuzzer(ctx context.Context, m UpdateFuzzer) error {
	return p.rt.Publish(ctx, p.rt.SchedulerExchange, "update_fuzzer", m)
}

func (p *SchedulerProducer) StopFuzzer(ctx context.Context, m StopFuzzer) error {
	return p.rt.Publish(ctx, p.rt.SchedulerExchange, "stop_fuzzer", m)
}

func (p *SchedulerProducer) StopFuzzersInPool(ctx context.Context, m StopFuzzersInPool) error {
	return p.rt.Publish(ctx, p.rt.SchedulerExchange, "stop_fuzzers_in_pool", m)
}

// ReporterProducer sends crash notifications to a single bug-tracker
// reporter (Jira or YouTrack); both share the CrashNotification shape and
// differ only in the exchange they're bound to.
type ReporterProducer struct {
	rt       *Runtime
	exchange string
}

// NewJiraReporterProducer builds a producer bound to rt's jira-reporter exchange.
func NewJiraReporterProducer(rt *Runtime) *ReporterProducer {
	return &ReporterProducer{rt: rt, exchange: rt.JiraReporterExchange}
}

// NewYoutrackReporterProducer builds a producer bound to rt's youtrack-reporter exchange.
func NewYoutrackReporterProducer(rt *Runtime) *ReporterProducer {
	return &ReporterProducer{rt: rt, exchange: rt.YoutrackReporterExchange}
}

func (p *ReporterProducer) UniqueCrashFound(ctx context.Context, m CrashNotification) error {
	return p.rt.Publish(ctx, p.exchange, "unique_crash_found", m)
}

func (p *ReporterProducer) DuplicateCrashFound(ctx context.Context, m CrashNotification) error {
	return p.rt.Publish(ctx, p.exchange, "duplicate_crash_found", m)
}

// PoolManagerProducer is reserved for commands issued to the pool-manager
// service over the broker rather than its synchronous REST API (§4.4);
// the gateway reaches the pool-manager only through that REST API
// (internal/poolmanager), so this producer has no send methods and exists
// to name the channel in the wiring layer (internal/bootstrap).
type PoolManagerProducer struct {
	rt *Runtime
}

// NewPoolManagerProducer builds a producer bound to rt's pool-manager exchange.
func NewPoolManagerProducer(rt *Runtime) *PoolManagerProducer { return &PoolManagerProducer{rt: rt} }
