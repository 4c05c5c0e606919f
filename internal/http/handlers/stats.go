package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bondifuzz/api-gateway/internal/domain"
	"github.com/bondifuzz/api-gateway/internal/domain/statistics"
	"github.com/bondifuzz/api-gateway/internal/http/middleware"
	"github.com/bondifuzz/api-gateway/internal/httpx"
	"github.com/bondifuzz/api-gateway/internal/services/query"
)

// StatsHandler implements the crashes and statistics reporting endpoints,
// all read-only against the query use case.
type StatsHandler struct {
	Queries *query.UseCase
}

// NewStatsHandler builds a StatsHandler bound to uc.
func NewStatsHandler(uc *query.UseCase) *StatsHandler {
	return &StatsHandler{Queries: uc}
}

func (h *StatsHandler) ListFuzzerCrashes(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.ListFuzzerCrashes")
	defer span.End()

	page := httpx.ParsePage(c)

	items, total, err := h.Queries.ListFuzzerCrashes(ctx, middleware.Fuzzer(c), page)
	if err != nil {
		return httpx.WithError(c, err)
	}

	listing := domain.NewListing(items, page)
	listing.Total = int(total)

	return httpx.OK(c, listing)
}

func (h *StatsHandler) ListRevisionCrashes(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.ListRevisionCrashes")
	defer span.End()

	page := httpx.ParsePage(c)

	items, total, err := h.Queries.ListRevisionCrashes(ctx, middleware.Revision(c), page)
	if err != nil {
		return httpx.WithError(c, err)
	}

	listing := domain.NewListing(items, page)
	listing.Total = int(total)

	return httpx.OK(c, listing)
}

func (h *StatsHandler) GetRevisionStatistics(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.GetRevisionStatistics")
	defer span.End()

	q := httpx.ParseStatGroupQuery(c)

	series, err := h.Queries.GetRevisionStatistics(ctx, middleware.Fuzzer(c), middleware.Revision(c), statistics.GroupBy(q.GroupBy), q.DateBegin, q.DateEnd)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, series)
}

func (h *StatsHandler) GetRevisionCrashStatistics(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.GetRevisionCrashStatistics")
	defer span.End()

	q := httpx.ParseStatGroupQuery(c)

	series, err := h.Queries.GetRevisionCrashStatistics(ctx, middleware.Revision(c), statistics.GroupBy(q.GroupBy), q.DateBegin, q.DateEnd)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, series)
}

func (h *StatsHandler) GetFuzzerStatistics(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.GetFuzzerStatistics")
	defer span.End()

	q := httpx.ParseStatGroupQuery(c)

	series, err := h.Queries.GetFuzzerStatistics(ctx, middleware.Fuzzer(c), statistics.GroupBy(q.GroupBy), q.DateBegin, q.DateEnd)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, series)
}

func (h *StatsHandler) GetFuzzerCrashStatistics(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.GetFuzzerCrashStatistics")
	defer span.End()

	q := httpx.ParseStatGroupQuery(c)

	series, err := h.Queries.GetFuzzerCrashStatistics(ctx, middleware.Fuzzer(c), statistics.GroupBy(q.GroupBy), q.DateBegin, q.DateEnd)
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.OK(c, series)
}
