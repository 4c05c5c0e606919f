// Package query implements the gateway's read-side use cases: listing
// crashes and aggregating statistics, the two reporting surfaces that never
// mutate state and so are kept apart from the command package (§4.6).
// Grounded on the teacher's services/query package shape: one UseCase
// struct aggregating repository dependencies, one file per reporting surface
// (crashes, statistics).
package query

import (
	"github.com/bondifuzz/api-gateway/internal/domain"
	"github.com/bondifuzz/api-gateway/internal/store/mongostore"
	"github.com/bondifuzz/api-gateway/pkg/mlog"
)

// Pagination mirrors command.Pagination so handlers don't need to import
// both service packages' aliases.
type Pagination = domain.Page

// UseCase aggregates every dependency the read-only handlers need.
type UseCase struct {
	Logger mlog.Logger

	Fuzzers    *mongostore.FuzzerRepository
	Revisions  *mongostore.RevisionRepository
	Crashes    *mongostore.CrashRepository
	Statistics *mongostore.StatisticsRepository
}
