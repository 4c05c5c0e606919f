package command

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/bondifuzz/api-gateway/internal/apperr"
	"github.com/bondifuzz/api-gateway/internal/domain/fuzzer"
	"github.com/bondifuzz/api-gateway/internal/domain/revision"
	"github.com/bondifuzz/api-gateway/internal/objectstorage"
)

// sniffPeekSize is how many bytes are buffered before sniffing an
// archive/json upload, enough to cover a gzip header plus the first tar
// header block (§4.3 "the first chunk is peeked").
const sniffPeekSize = 4096

// peekReader buffers the first sniffPeekSize bytes of r so the archive/json
// sniff can run before streaming the rest to the object store.
func peekReader(r io.Reader) (peek []byte, rest io.Reader, err error) {
	buf := make([]byte, sniffPeekSize)

	n, readErr := io.ReadFull(r, buf)
	if readErr != nil && !errors.Is(readErr, io.ErrUnexpectedEOF) && !errors.Is(readErr, io.EOF) {
		return nil, nil, readErr
	}

	peek = buf[:n]

	return peek, io.MultiReader(bytes.NewReader(peek), r), nil
}

// uploadSlotResult is the {uploaded, last_error} pair persisted onto a
// revision's binaries/seeds/config slot after an upload attempt.
func uploadSlotResult(err error) revision.UploadStatus {
	if err == nil {
		return revision.UploadStatus{Uploaded: true}
	}

	var limitErr *objectstorage.UploadLimitError
	var appErr *apperr.AppError

	switch {
	case errors.As(err, &limitErr):
		return revision.UploadStatus{Uploaded: false, LastError: &revision.Error{Code: string(apperr.EFileTooLarge), Message: err.Error()}}
	case errors.As(err, &appErr):
		return revision.UploadStatus{Uploaded: false, LastError: &revision.Error{Code: string(appErr.Code), Message: appErr.Message}}
	default:
		return revision.UploadStatus{Uploaded: false, LastError: &revision.Error{Code: string(apperr.EUploadFailure), Message: err.Error()}}
	}
}

// recomputeHealthAndPersist recomputes r's health per §4.3 and writes it
// back alongside the upload slots.
func (uc *UseCase) recomputeHealthAndPersist(ctx context.Context, r *revision.Revision) error {
	r.Health = revision.ComputeHealth(r.Binaries, r.Seeds, r.Config)
	return uc.Revisions.Update(ctx, r)
}

// UploadBinaries streams body into r's binaries slot. Only permitted while
// r is Unverified (§4.3 "editing binaries/seeds/config permitted only in
// Unverified").
func (uc *UseCase) UploadBinaries(ctx context.Context, f *fuzzer.Fuzzer, r *revision.Revision, body io.Reader) error {
	if !r.EditableFiles() {
		return apperr.New(apperr.ERevisionCanNotBeChanged)
	}

	peek, stream, err := peekReader(body)
	if err != nil {
		return apperr.Internal(err)
	}

	if !objectstorage.LooksLikeGzipTar(peek) {
		r.Binaries = revision.UploadStatus{Uploaded: false, LastError: &revision.Error{Code: string(apperr.EFileNotArchive), Message: "not a gzip tar archive"}}

		if persistErr := uc.recomputeHealthAndPersist(ctx, r); persistErr != nil {
			return apperr.Internal(persistErr)
		}

		return apperr.New(apperr.EFileNotArchive)
	}

	uploadErr := uc.Objects.UploadBinaries(ctx, f.ID, r.ID, stream, uc.Limits.BinariesUploadLimit)
	r.Binaries = uploadSlotResult(uploadErr)

	if persistErr := uc.recomputeHealthAndPersist(ctx, r); persistErr != nil {
		return apperr.Internal(persistErr)
	}

	if uploadErr != nil {
		var limitErr *objectstorage.UploadLimitError
		if errors.As(uploadErr, &limitErr) {
			return apperr.New(apperr.EFileTooLarge)
		}

		return apperr.New(apperr.EUploadFailure)
	}

	return nil
}

// UploadSeeds streams body into r's seeds slot, identical shape to
// UploadBinaries.
func (uc *UseCase) UploadSeeds(ctx context.Context, f *fuzzer.Fuzzer, r *revision.Revision, body io.Reader) error {
	if !r.EditableFiles() {
		return apperr.New(apperr.ERevisionCanNotBeChanged)
	}

	peek, stream, err := peekReader(body)
	if err != nil {
		return apperr.Internal(err)
	}

	if !objectstorage.LooksLikeGzipTar(peek) {
		r.Seeds = revision.UploadStatus{Uploaded: false, LastError: &revision.Error{Code: string(apperr.EFileNotArchive), Message: "not a gzip tar archive"}}

		if persistErr := uc.recomputeHealthAndPersist(ctx, r); persistErr != nil {
			return apperr.Internal(persistErr)
		}

		return apperr.New(apperr.EFileNotArchive)
	}

	uploadErr := uc.Objects.UploadSeeds(ctx, f.ID, r.ID, stream, uc.Limits.SeedsUploadLimit)
	r.Seeds = uploadSlotResult(uploadErr)

	if persistErr := uc.recomputeHealthAndPersist(ctx, r); persistErr != nil {
		return apperr.Internal(persistErr)
	}

	if uploadErr != nil {
		var limitErr *objectstorage.UploadLimitError
		if errors.As(uploadErr, &limitErr) {
			return apperr.New(apperr.EFileTooLarge)
		}

		return apperr.New(apperr.EUploadFailure)
	}

	return nil
}

// UploadConfig stores a fixed-size JSON body into r's config slot.
func (uc *UseCase) UploadConfig(ctx context.Context, f *fuzzer.Fuzzer, r *revision.Revision, body []byte) error {
	if !r.EditableFiles() {
		return apperr.New(apperr.ERevisionCanNotBeChanged)
	}

	if int64(len(body)) > uc.Limits.ConfigUploadLimit {
		r.Config = revision.UploadStatus{Uploaded: false, LastError: &revision.Error{Code: string(apperr.EFileTooLarge), Message: "config exceeds upload limit"}}

		if persistErr := uc.recomputeHealthAndPersist(ctx, r); persistErr != nil {
			return apperr.Internal(persistErr)
		}

		return apperr.New(apperr.EFileTooLarge)
	}

	if !objectstorage.IsJSONObject(body) {
		r.Config = revision.UploadStatus{Uploaded: false, LastError: &revision.Error{Code: string(apperr.EJSONFileInvalid), Message: "not a json object"}}

		if persistErr := uc.recomputeHealthAndPersist(ctx, r); persistErr != nil {
			return apperr.Internal(persistErr)
		}

		return apperr.New(apperr.EJSONFileInvalid)
	}

	uploadErr := uc.Objects.UploadConfig(ctx, f.ID, r.ID, body)
	r.Config = uploadSlotResult(uploadErr)

	if persistErr := uc.recomputeHealthAndPersist(ctx, r); persistErr != nil {
		return apperr.Internal(persistErr)
	}

	if uploadErr != nil {
		return apperr.New(apperr.EUploadFailure)
	}

	return nil
}
