package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bondifuzz/api-gateway/internal/domain"
	"github.com/bondifuzz/api-gateway/internal/http/middleware"
	"github.com/bondifuzz/api-gateway/internal/httpx"
	"github.com/bondifuzz/api-gateway/internal/services/command"
)

// UnsentHandler implements the admin-only /admin/unsent-messages listing,
// the operator-facing view over producer publish failures.
type UnsentHandler struct {
	Commands *command.UseCase
}

// NewUnsentHandler builds an UnsentHandler bound to uc.
func NewUnsentHandler(uc *command.UseCase) *UnsentHandler {
	return &UnsentHandler{Commands: uc}
}

func (h *UnsentHandler) List(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.ListUnsentMessages")
	defer span.End()

	page := httpx.ParsePage(c)

	items, total, err := h.Commands.ListUnsentMessages(ctx, middleware.CurrentUser(c), c.Query("queue"), page)
	if err != nil {
		return httpx.WithError(c, err)
	}

	listing := domain.NewListing(items, page)
	listing.Total = int(total)

	return httpx.OK(c, listing)
}
