package command

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bondifuzz/api-gateway/internal/apperr"
	"github.com/bondifuzz/api-gateway/internal/domain/engine"
	"github.com/bondifuzz/api-gateway/internal/domain/image"
	"github.com/bondifuzz/api-gateway/internal/domain/integrationtype"
	"github.com/bondifuzz/api-gateway/internal/domain/lang"
	"github.com/bondifuzz/api-gateway/internal/store/mongostore"
)

// CreateEngine registers a new fuzzing engine. Admin-only, enforced by the
// caller's role gate before reaching this layer.
func (uc *UseCase) CreateEngine(ctx context.Context, in engine.CreateInput) (*engine.Engine, error) {
	e := &engine.Engine{ID: in.ID, DisplayName: in.DisplayName, Langs: in.Langs}

	if err := uc.Engines.Create(ctx, e); err != nil {
		if errors.Is(err, mongostore.ErrDuplicateKey) {
			return nil, apperr.New(apperr.EEngineExists)
		}

		return nil, apperr.Internal(err)
	}

	return e, nil
}

// GetEngine loads a single engine by id.
func (uc *UseCase) GetEngine(ctx context.Context, id engine.ID) (*engine.Engine, error) {
	e, err := uc.Engines.Get(ctx, id)
	if errors.Is(err, mongostore.ErrNotFound) {
		return nil, apperr.New(apperr.EEngineNotFound)
	}

	if err != nil {
		return nil, apperr.Internal(err)
	}

	return e, nil
}

// ListEngines returns the full engine catalog; it is small and unpaginated.
func (uc *UseCase) ListEngines(ctx context.Context) ([]engine.Engine, error) {
	items, err := uc.Engines.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return items, nil
}

// DeleteEngine removes id, refusing while any present fuzzer still targets
// it (E_ENGINE_IN_USE_BY).
func (uc *UseCase) DeleteEngine(ctx context.Context, id engine.ID) error {
	if _, err := uc.GetEngine(ctx, id); err != nil {
		return err
	}

	n, err := uc.Fuzzers.CountByEngine(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}

	if n > 0 {
		return apperr.New(apperr.EEngineInUseBy, "fuzzers")
	}

	n, err = uc.Images.CountByEngine(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}

	if n > 0 {
		return apperr.New(apperr.EEngineInUseBy, "images")
	}

	if err := uc.Engines.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}

	return nil
}

// CreateLang registers a new target language.
func (uc *UseCase) CreateLang(ctx context.Context, in lang.CreateInput) (*lang.Lang, error) {
	l := &lang.Lang{ID: in.ID, DisplayName: in.DisplayName}

	if err := uc.Langs.Create(ctx, l); err != nil {
		if errors.Is(err, mongostore.ErrDuplicateKey) {
			return nil, apperr.New(apperr.ELangExists)
		}

		return nil, apperr.Internal(err)
	}

	return l, nil
}

// GetLang loads a single language by id.
func (uc *UseCase) GetLang(ctx context.Context, id lang.ID) (*lang.Lang, error) {
	l, err := uc.Langs.Get(ctx, id)
	if errors.Is(err, mongostore.ErrNotFound) {
		return nil, apperr.New(apperr.ELangNotFound)
	}

	if err != nil {
		return nil, apperr.Internal(err)
	}

	return l, nil
}

// ListLangs returns the full language catalog.
func (uc *UseCase) ListLangs(ctx context.Context) ([]lang.Lang, error) {
	items, err := uc.Langs.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return items, nil
}

// DeleteLang removes id, refusing while any present fuzzer still targets it
// (E_LANG_IN_USE_BY).
func (uc *UseCase) DeleteLang(ctx context.Context, id lang.ID) error {
	if _, err := uc.GetLang(ctx, id); err != nil {
		return err
	}

	n, err := uc.Fuzzers.CountByLang(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}

	if n > 0 {
		return apperr.New(apperr.ELangInUseBy, "fuzzers")
	}

	if err := uc.Langs.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}

	return nil
}

// GetIntegrationType loads a bug-tracker kind; the catalog is fixed
// (jira/youtrack) and has no admin create/delete surface.
func (uc *UseCase) GetIntegrationType(ctx context.Context, id integrationtype.ID) (*integrationtype.IntegrationType, error) {
	it, err := uc.IntegrationTypes.Get(ctx, id)
	if errors.Is(err, mongostore.ErrNotFound) {
		return nil, apperr.New(apperr.EIntegrationTypeNotFound)
	}

	if err != nil {
		return nil, apperr.Internal(err)
	}

	return it, nil
}

// ListIntegrationTypes returns the full bug-tracker-kind catalog.
func (uc *UseCase) ListIntegrationTypes(ctx context.Context) ([]integrationtype.IntegrationType, error) {
	items, err := uc.IntegrationTypes.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return items, nil
}

// CreateImage registers a Custom image scoped to proj, or a BuiltIn image
// when projectID is empty (platform-wide, admin-only).
func (uc *UseCase) CreateImage(ctx context.Context, projectID string, in image.CreateInput) (*image.Image, error) {
	for _, e := range in.Engines {
		if _, err := uc.GetEngine(ctx, e); err != nil {
			return nil, err
		}
	}

	img := &image.Image{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Engines:     in.Engines,
		Status:      image.NotPushed,
	}

	if projectID != "" {
		img.ProjectID = &projectID
	}

	if err := uc.Images.Create(ctx, img); err != nil {
		if errors.Is(err, mongostore.ErrDuplicateKey) {
			return nil, apperr.New(apperr.EImageExists)
		}

		return nil, apperr.Internal(err)
	}

	return img, nil
}

// GetImage loads an image visible to projectID: it must either be BuiltIn
// or scoped to projectID.
func (uc *UseCase) GetImage(ctx context.Context, projectID, id string) (*image.Image, error) {
	img, err := uc.Images.Get(ctx, id)
	if errors.Is(err, mongostore.ErrNotFound) {
		return nil, apperr.New(apperr.EImageNotFound)
	}

	if err != nil {
		return nil, apperr.Internal(err)
	}

	if img.ProjectID != nil && *img.ProjectID != projectID {
		return nil, apperr.New(apperr.EImageNotFound)
	}

	return img, nil
}

// ListImages returns every image visible to projectID: BuiltIn plus the
// project's own Custom images.
func (uc *UseCase) ListImages(ctx context.Context, projectID string) ([]image.Image, error) {
	items, err := uc.Images.ListVisibleToProject(ctx, projectID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return items, nil
}

// DeleteImage removes a Custom image. BuiltIn images are immutable through
// this surface.
func (uc *UseCase) DeleteImage(ctx context.Context, projectID, id string) error {
	img, err := uc.GetImage(ctx, projectID, id)
	if err != nil {
		return err
	}

	if img.ProjectID == nil {
		return apperr.New(apperr.EWrongRequest, "built-in images cannot be deleted")
	}

	n, err := uc.Revisions.CountByImage(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}

	if n > 0 {
		return apperr.New(apperr.EWrongRequest, "image is in use by existing revisions")
	}

	if err := uc.Images.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}

	return nil
}
