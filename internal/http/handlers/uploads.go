package handlers

import (
	"bytes"
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/bondifuzz/api-gateway/internal/apperr"
	"github.com/bondifuzz/api-gateway/internal/http/middleware"
	"github.com/bondifuzz/api-gateway/internal/httpx"
	"github.com/bondifuzz/api-gateway/internal/objectstorage"
	"github.com/bondifuzz/api-gateway/internal/services/command"
)

// mapDownloadErr translates the object store's not-found sentinel into the
// gateway's file-not-found error code; anything else is internal.
func mapDownloadErr(err error) error {
	if errors.Is(err, objectstorage.ErrObjectNotFound) {
		return apperr.New(apperr.EFileNotFound)
	}

	return apperr.Internal(err)
}

// UploadHandler implements the binaries/seeds/config/corpus upload and
// download endpoints under .../revisions/{revision_id}, streaming request
// and response bodies straight through to the object store rather than
// buffering full archives in memory.
type UploadHandler struct {
	Commands *command.UseCase
}

// NewUploadHandler builds an UploadHandler bound to uc.
func NewUploadHandler(uc *command.UseCase) *UploadHandler {
	return &UploadHandler{Commands: uc}
}

// requestStream returns a reader over c's body, preferring fasthttp's
// streamed body (set when the request exceeds the in-memory threshold) and
// falling back to the already-buffered body otherwise.
func requestStream(c *fiber.Ctx) io.Reader {
	if s := c.Context().RequestBodyStream(); s != nil {
		return s
	}

	return bytes.NewReader(c.Body())
}

func (h *UploadHandler) UploadBinaries(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.UploadBinaries")
	defer span.End()

	err := h.Commands.UploadBinaries(ctx, middleware.Fuzzer(c), middleware.Revision(c), requestStream(c))
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.NoContent(c)
}

func (h *UploadHandler) UploadSeeds(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.UploadSeeds")
	defer span.End()

	err := h.Commands.UploadSeeds(ctx, middleware.Fuzzer(c), middleware.Revision(c), requestStream(c))
	if err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.NoContent(c)
}

func (h *UploadHandler) UploadConfig(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.UploadConfig")
	defer span.End()

	if err := h.Commands.UploadConfig(ctx, middleware.Fuzzer(c), middleware.Revision(c), c.Body()); err != nil {
		return httpx.WithError(c, err)
	}

	return httpx.NoContent(c)
}

func (h *UploadHandler) DownloadBinaries(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.DownloadBinaries")
	defer span.End()

	f, r := middleware.Fuzzer(c), middleware.Revision(c)

	body, err := h.Commands.Objects.DownloadBinaries(ctx, f.ID, r.ID)
	if err != nil {
		return httpx.WithError(c, mapDownloadErr(err))
	}
	defer body.Close()

	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)

	return c.SendStream(body)
}

func (h *UploadHandler) DownloadSeeds(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.DownloadSeeds")
	defer span.End()

	f, r := middleware.Fuzzer(c), middleware.Revision(c)

	body, err := h.Commands.Objects.DownloadSeeds(ctx, f.ID, r.ID)
	if err != nil {
		return httpx.WithError(c, mapDownloadErr(err))
	}
	defer body.Close()

	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)

	return c.SendStream(body)
}

func (h *UploadHandler) DownloadConfig(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.DownloadConfig")
	defer span.End()

	f, r := middleware.Fuzzer(c), middleware.Revision(c)

	body, err := h.Commands.Objects.DownloadConfig(ctx, f.ID, r.ID)
	if err != nil {
		return httpx.WithError(c, mapDownloadErr(err))
	}
	defer body.Close()

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	return c.SendStream(body)
}

// DownloadActiveCorpus streams the fuzzer's active revision corpus, the
// .../fuzzers/{fuzzer_id}/files/corpus convenience route that doesn't name
// a revision explicitly.
func (h *UploadHandler) DownloadActiveCorpus(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.DownloadActiveCorpus")
	defer span.End()

	f := middleware.Fuzzer(c)

	if f.ActiveRevisionID == nil {
		return httpx.WithError(c, apperr.New(apperr.ERevisionNotFound))
	}

	body, err := h.Commands.Objects.DownloadCorpus(ctx, f.ID, *f.ActiveRevisionID)
	if err != nil {
		return httpx.WithError(c, mapDownloadErr(err))
	}
	defer body.Close()

	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)

	return c.SendStream(body)
}

// DownloadCorpus streams the corpus archive of the {revision_id} path
// revision, whether or not it is the fuzzer's active revision.
func (h *UploadHandler) DownloadCorpus(c *fiber.Ctx) error {
	ctx, span := httpx.StartSpan(c, "handler.DownloadCorpus")
	defer span.End()

	f, r := middleware.Fuzzer(c), middleware.Revision(c)

	body, err := h.Commands.Objects.DownloadCorpus(ctx, f.ID, r.ID)
	if err != nil {
		return httpx.WithError(c, mapDownloadErr(err))
	}
	defer body.Close()

	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)

	return c.SendStream(body)
}
