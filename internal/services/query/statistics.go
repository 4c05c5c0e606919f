package query

import (
	"context"
	"sort"
	"time"

	"github.com/bondifuzz/api-gateway/internal/apperr"
	"github.com/bondifuzz/api-gateway/internal/domain/engine"
	"github.com/bondifuzz/api-gateway/internal/domain/fuzzer"
	"github.com/bondifuzz/api-gateway/internal/domain/removal"
	"github.com/bondifuzz/api-gateway/internal/domain/revision"
	"github.com/bondifuzz/api-gateway/internal/domain/statistics"
)

// LibFuzzerSeries is the grouped response shape for a libFuzzer-family
// revision's statistics (§4.6/§6: engine-family-discriminated payloads).
type LibFuzzerSeries struct {
	EdgeCoverage  []statistics.Grouped `json:"edge_coverage"`
	ExecSpeed     []statistics.Grouped `json:"exec_speed"`
	CorpusEntries []statistics.Grouped `json:"corpus_entries"`
}

// AFLSeries is the grouped response shape for an AFL-family revision's
// statistics.
type AFLSeries struct {
	EdgeCoverage []statistics.Grouped `json:"edge_coverage"`
	ExecSpeed    []statistics.Grouped `json:"exec_speed"`
	PathsTotal   []statistics.Grouped `json:"paths_total"`
}

// CrashSeries is the grouped response shape for a crash-count query, split
// into unique and duplicate occurrences.
type CrashSeries struct {
	Unique    []statistics.Grouped `json:"unique"`
	Duplicate []statistics.Grouped `json:"duplicate"`
}

// bucketKey truncates dateStr (RFC 3339) to the representative key for
// groupBy: a calendar day, the Monday of its week, or its calendar month.
func bucketKey(dateStr string, groupBy statistics.GroupBy) (string, error) {
	t, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		return "", err
	}

	t = t.UTC()

	switch groupBy {
	case statistics.GroupByDay:
		return t.Format("2006-01-02"), nil
	case statistics.GroupByWeek:
		weekday := int(t.Weekday())
		if weekday == 0 {
			weekday = 7
		}

		monday := t.AddDate(0, 0, -(weekday - 1))

		return monday.Format("2006-01-02"), nil
	case statistics.GroupByMonth:
		return t.Format("2006-01"), nil
	default:
		return "", apperr.New(apperr.EWrongRequest, "invalid group_by")
	}
}

// sumByBucket groups (date, value) pairs by groupBy and sums the values
// within each bucket, returning buckets sorted chronologically.
func sumByBucket(dates []string, values []float64, groupBy statistics.GroupBy) ([]statistics.Grouped, error) {
	sums := make(map[string]float64, len(dates))

	for i, d := range dates {
		key, err := bucketKey(d, groupBy)
		if err != nil {
			return nil, apperr.Internal(err)
		}

		sums[key] += values[i]
	}

	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	out := make([]statistics.Grouped, 0, len(keys))
	for _, k := range keys {
		out = append(out, statistics.Grouped{Date: k, Value: sums[k]})
	}

	return out, nil
}

// GetRevisionStatistics returns r's fuzzing-progress statistics, grouped by
// groupBy over [dateBegin, dateEnd], discriminated by f's engine family.
func (uc *UseCase) GetRevisionStatistics(ctx context.Context, f *fuzzer.Fuzzer, r *revision.Revision, groupBy statistics.GroupBy, dateBegin, dateEnd string) (any, error) {
	if !statistics.ValidGroupBy(groupBy) {
		return nil, apperr.New(apperr.EWrongRequest, "invalid group_by")
	}

	if engine.IsAFL(f.Engine) {
		rows, err := uc.Statistics.ListAFLRange(ctx, r.ID, dateBegin, dateEnd)
		if err != nil {
			return nil, apperr.Internal(err)
		}

		return aflSeries(rows, groupBy)
	}

	rows, err := uc.Statistics.ListLibFuzzerRange(ctx, r.ID, dateBegin, dateEnd)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return libFuzzerSeries(rows, groupBy)
}

func libFuzzerSeries(rows []statistics.LibFuzzer, groupBy statistics.GroupBy) (*LibFuzzerSeries, error) {
	dates := make([]string, len(rows))
	edges := make([]float64, len(rows))
	execs := make([]float64, len(rows))
	corpus := make([]float64, len(rows))

	for i, row := range rows {
		dates[i] = row.Date
		edges[i] = float64(row.Edges)
		execs[i] = row.ExecSpeed
		corpus[i] = float64(row.Corpus)
	}

	edgeSeries, err := sumByBucket(dates, edges, groupBy)
	if err != nil {
		return nil, err
	}

	execSeries, err := sumByBucket(dates, execs, groupBy)
	if err != nil {
		return nil, err
	}

	corpusSeries, err := sumByBucket(dates, corpus, groupBy)
	if err != nil {
		return nil, err
	}

	return &LibFuzzerSeries{EdgeCoverage: edgeSeries, ExecSpeed: execSeries, CorpusEntries: corpusSeries}, nil
}

func aflSeries(rows []statistics.AFL, groupBy statistics.GroupBy) (*AFLSeries, error) {
	dates := make([]string, len(rows))
	edges := make([]float64, len(rows))
	execs := make([]float64, len(rows))
	paths := make([]float64, len(rows))

	for i, row := range rows {
		dates[i] = row.Date
		edges[i] = float64(row.Edges)
		execs[i] = row.ExecSpeed
		paths[i] = float64(row.PathsTotal)
	}

	edgeSeries, err := sumByBucket(dates, edges, groupBy)
	if err != nil {
		return nil, err
	}

	execSeries, err := sumByBucket(dates, execs, groupBy)
	if err != nil {
		return nil, err
	}

	pathSeries, err := sumByBucket(dates, paths, groupBy)
	if err != nil {
		return nil, err
	}

	return &AFLSeries{EdgeCoverage: edgeSeries, ExecSpeed: execSeries, PathsTotal: pathSeries}, nil
}

// GetRevisionCrashStatistics returns r's unique/duplicate crash counters,
// grouped by groupBy over [dateBegin, dateEnd].
func (uc *UseCase) GetRevisionCrashStatistics(ctx context.Context, r *revision.Revision, groupBy statistics.GroupBy, dateBegin, dateEnd string) (*CrashSeries, error) {
	if !statistics.ValidGroupBy(groupBy) {
		return nil, apperr.New(apperr.EWrongRequest, "invalid group_by")
	}

	rows, err := uc.Statistics.ListCrashesRange(ctx, r.ID, dateBegin, dateEnd)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return crashSeries(rows, groupBy)
}

func crashSeries(rows []statistics.Crashes, groupBy statistics.GroupBy) (*CrashSeries, error) {
	dates := make([]string, len(rows))
	unique := make([]float64, len(rows))
	duplicate := make([]float64, len(rows))

	for i, row := range rows {
		dates[i] = row.Date
		unique[i] = float64(row.Unique)
		duplicate[i] = float64(row.Duplicate)
	}

	uniqueSeries, err := sumByBucket(dates, unique, groupBy)
	if err != nil {
		return nil, err
	}

	duplicateSeries, err := sumByBucket(dates, duplicate, groupBy)
	if err != nil {
		return nil, err
	}

	return &CrashSeries{Unique: uniqueSeries, Duplicate: duplicateSeries}, nil
}

// GetFuzzerStatistics aggregates statistics across every revision under f,
// summing matching buckets (§6 fuzzer-level statistics variant).
func (uc *UseCase) GetFuzzerStatistics(ctx context.Context, f *fuzzer.Fuzzer, groupBy statistics.GroupBy, dateBegin, dateEnd string) (any, error) {
	var revisions []revision.Revision
	for num := 0; ; num++ {
		batch, err := uc.Revisions.ListByFuzzer(ctx, f.ID, removal.ViewVisible, Pagination{Num: num, Size: 200})
		if err != nil {
			return nil, apperr.Internal(err)
		}

		revisions = append(revisions, batch...)

		if len(batch) < 200 {
			break
		}
	}

	if engine.IsAFL(f.Engine) {
		merged := map[string]statistics.AFL{}

		for i := range revisions {
			rows, err := uc.Statistics.ListAFLRange(ctx, revisions[i].ID, dateBegin, dateEnd)
			if err != nil {
				return nil, apperr.Internal(err)
			}

			for _, row := range rows {
				m := merged[row.Date]
				m.Date = row.Date
				m.Edges += row.Edges
				m.PathsTotal += row.PathsTotal
				m.ExecSpeed += row.ExecSpeed
				merged[row.Date] = m
			}
		}

		return aflSeries(flattenAFL(merged), groupBy)
	}

	merged := map[string]statistics.LibFuzzer{}

	for i := range revisions {
		rows, err := uc.Statistics.ListLibFuzzerRange(ctx, revisions[i].ID, dateBegin, dateEnd)
		if err != nil {
			return nil, apperr.Internal(err)
		}

		for _, row := range rows {
			m := merged[row.Date]
			m.Date = row.Date
			m.Edges += row.Edges
			m.Corpus += row.Corpus
			m.ExecSpeed += row.ExecSpeed
			merged[row.Date] = m
		}
	}

	return libFuzzerSeries(flattenLibFuzzer(merged), groupBy)
}

// GetFuzzerCrashStatistics aggregates crash counters across every revision
// under f.
func (uc *UseCase) GetFuzzerCrashStatistics(ctx context.Context, f *fuzzer.Fuzzer, groupBy statistics.GroupBy, dateBegin, dateEnd string) (*CrashSeries, error) {
	var revisions []revision.Revision
	for num := 0; ; num++ {
		batch, err := uc.Revisions.ListByFuzzer(ctx, f.ID, removal.ViewVisible, Pagination{Num: num, Size: 200})
		if err != nil {
			return nil, apperr.Internal(err)
		}

		revisions = append(revisions, batch...)

		if len(batch) < 200 {
			break
		}
	}

	merged := map[string]statistics.Crashes{}

	for i := range revisions {
		rows, err := uc.Statistics.ListCrashesRange(ctx, revisions[i].ID, dateBegin, dateEnd)
		if err != nil {
			return nil, apperr.Internal(err)
		}

		for _, row := range rows {
			m := merged[row.Date]
			m.Date = row.Date
			m.Unique += row.Unique
			m.Duplicate += row.Duplicate
			merged[row.Date] = m
		}
	}

	out := make([]statistics.Crashes, 0, len(merged))
	for _, v := range merged {
		out = append(out, v)
	}

	return crashSeries(out, groupBy)
}

func flattenAFL(m map[string]statistics.AFL) []statistics.AFL {
	out := make([]statistics.AFL, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}

	return out
}

func flattenLibFuzzer(m map[string]statistics.LibFuzzer) []statistics.LibFuzzer {
	out := make([]statistics.LibFuzzer, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}

	return out
}
