package httpx

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/bondifuzz/api-gateway/internal/apperr"
	"github.com/bondifuzz/api-gateway/internal/domain"
	"github.com/bondifuzz/api-gateway/internal/domain/removal"
)

// ParsePage reads pg_num/pg_size from the query string, clamping pg_size
// into [10, 200] per §6.
func ParsePage(c *fiber.Ctx) domain.Page {
	num, _ := strconv.Atoi(c.Query("pg_num", "0"))
	size, _ := strconv.Atoi(c.Query("pg_size", "0"))

	return domain.NewPage(num, size)
}

// ParseRemovalQuery reads removal_state from the query string.
func ParseRemovalQuery(c *fiber.Ctx) removal.View {
	return domain.ParseRemovalView(c.Query("removal_state"))
}

// RemovalActionInput is the body of a DELETE request against a
// soft-deletable resource (§6): action plus its optional parameters.
type RemovalActionInput struct {
	Action   removal.Action `json:"action" validate:"required"`
	NoBackup *bool          `json:"no_backup,omitempty"`
	NewName  *string        `json:"new_name,omitempty"`
}

// ParseRemovalAction reads the `action` query parameter, defaulting to
// Delete when absent (the plain DELETE verb with no body).
func ParseRemovalAction(c *fiber.Ctx) (removal.Action, error) {
	raw := c.Query("action", string(removal.ActionDelete))

	switch removal.Action(raw) {
	case removal.ActionDelete, removal.ActionRestore, removal.ActionErase:
		return removal.Action(raw), nil
	default:
		return "", apperr.New(apperr.EWrongRequest, "invalid action: "+raw)
	}
}

// StatGroupQuery carries the common group_by/date_begin/date_end query
// parameters every statistics/crashes endpoint accepts (§6).
type StatGroupQuery struct {
	GroupBy   string
	DateBegin string
	DateEnd   string
}

func ParseStatGroupQuery(c *fiber.Ctx) StatGroupQuery {
	return StatGroupQuery{
		GroupBy:   c.Query("group_by", "day"),
		DateBegin: c.Query("date_begin"),
		DateEnd:   c.Query("date_end"),
	}
}
