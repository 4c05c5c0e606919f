package command

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bondifuzz/api-gateway/internal/apperr"
	"github.com/bondifuzz/api-gateway/internal/auth"
	"github.com/bondifuzz/api-gateway/internal/domain/removal"
	"github.com/bondifuzz/api-gateway/internal/domain/user"
	"github.com/bondifuzz/api-gateway/internal/store/mongostore"
)

// CreateUser applies the creation privilege matrix (§4.2): only an admin or
// system-admin may create a user at all, and only a system-admin may set
// IsAdmin on the new account.
func (uc *UseCase) CreateUser(ctx context.Context, actor *user.User, in user.CreateInput) (*user.User, error) {
	if !actor.IsAdmin {
		return nil, apperr.New(apperr.EAccessDenied)
	}

	if in.IsAdmin && !actor.IsSystem {
		return nil, apperr.New(apperr.EAccessDenied)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	u := &user.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		DisplayName:  in.DisplayName,
		PasswordHash: hash,
		Email:        in.Email,
		IsConfirmed:  true,
		IsAdmin:      in.IsAdmin,
	}

	if err := uc.Users.Create(ctx, u); err != nil {
		if errors.Is(err, mongostore.ErrDuplicateKey) {
			return nil, apperr.New(apperr.EUserExists)
		}

		return nil, apperr.Internal(err)
	}

	return u, nil
}

// GetUser loads target, enforcing check_user_access_permissions: non-admins
// may only read themselves.
func (uc *UseCase) GetUser(ctx context.Context, actor *user.User, targetID string) (*user.User, error) {
	if !actor.IsAdmin && actor.ID != targetID {
		return nil, apperr.New(apperr.EAccessDenied)
	}

	target, err := uc.Users.Get(ctx, targetID)
	if errors.Is(err, mongostore.ErrNotFound) {
		return nil, apperr.New(apperr.EUserNotFound)
	}

	if err != nil {
		return nil, apperr.Internal(err)
	}

	return target, nil
}

// ListUsers is an admin-only directory listing (§4.2: only admin/system-admin
// act on users other than themselves, and a listing necessarily spans
// other users).
func (uc *UseCase) ListUsers(ctx context.Context, actor *user.User, view removal.View, page Pagination) ([]user.User, int64, error) {
	if !actor.IsAdmin {
		return nil, 0, apperr.New(apperr.EAccessDenied)
	}

	items, err := uc.Users.List(ctx, view, page)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	total, err := uc.Users.Count(ctx, view)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	return items, total, nil
}

// LookupUser resolves a username to an account for the admin-facing
// directory search (§6 GET /users/lookup?name=).
func (uc *UseCase) LookupUser(ctx context.Context, actor *user.User, name string) (*user.User, error) {
	if !actor.IsAdmin {
		return nil, apperr.New(apperr.EAccessDenied)
	}

	target, err := uc.Users.GetByName(ctx, name)
	if errors.Is(err, mongostore.ErrNotFound) {
		return nil, apperr.New(apperr.EUserNotFound)
	}

	if err != nil {
		return nil, apperr.Internal(err)
	}

	return target, nil
}

// CountUsers reports the directory size for the given removal view (§6 GET
// /users/count), admin-only like every other cross-user listing.
func (uc *UseCase) CountUsers(ctx context.Context, actor *user.User, view removal.View) (int64, error) {
	if !actor.IsAdmin {
		return 0, apperr.New(apperr.EAccessDenied)
	}

	total, err := uc.Users.Count(ctx, view)
	if err != nil {
		return 0, apperr.Internal(err)
	}

	return total, nil
}

// UpdateUser applies the self/admin/system-admin edit matrix (§4.2): a
// non-admin may only edit a narrow subset of their own fields; admins may
// edit any client fully; only a system-admin may edit another admin.
func (uc *UseCase) UpdateUser(ctx context.Context, actor *user.User, targetID string, in user.UpdateInput) (*user.User, error) {
	target, err := uc.Users.Get(ctx, targetID)
	if errors.Is(err, mongostore.ErrNotFound) {
		return nil, apperr.New(apperr.EUserNotFound)
	}

	if err != nil {
		return nil, apperr.Internal(err)
	}

	if target.ErasureDate != nil {
		return nil, apperr.New(apperr.EUserDeleted)
	}

	self := actor.ID == target.ID

	switch {
	case target.IsAdmin && !self && !actor.IsSystem:
		return nil, apperr.New(apperr.EAccessDenied)
	case !actor.IsAdmin && !self:
		return nil, apperr.New(apperr.EAccessDenied)
	case !actor.IsAdmin && self:
		if in.IsDisabled != nil || in.IsConfirmed != nil {
			return nil, apperr.New(apperr.EAccessDenied)
		}
	}

	if in.DisplayName != nil {
		target.DisplayName = *in.DisplayName
	}

	if in.Email != nil {
		target.Email = *in.Email
	}

	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, apperr.Internal(err)
		}

		target.PasswordHash = hash
	}

	if in.IsDisabled != nil {
		target.IsDisabled = *in.IsDisabled
	}

	if in.IsConfirmed != nil {
		target.IsConfirmed = *in.IsConfirmed
	}

	if err := uc.Users.Update(ctx, target); err != nil {
		return nil, apperr.Internal(err)
	}

	return target, nil
}

// RemoveUser applies the requested removal.Action against target (§4.2: an
// admin may never delete self; system-admins may delete admins, admins may
// not; is_system accounts are never deletable, per the User entity
// invariant).
func (uc *UseCase) RemoveUser(ctx context.Context, actor *user.User, targetID string, action removal.Action, noBackup bool, newName *string) error {
	target, err := uc.Users.Get(ctx, targetID)
	if errors.Is(err, mongostore.ErrNotFound) {
		return apperr.New(apperr.EUserNotFound)
	}

	if err != nil {
		return apperr.Internal(err)
	}

	if !target.Deletable() {
		return apperr.New(apperr.EAccessDenied)
	}

	self := actor.ID == target.ID

	switch {
	case self && action == removal.ActionDelete:
		return apperr.New(apperr.EAccessDenied)
	case target.IsAdmin && !self && !actor.IsSystem:
		return apperr.New(apperr.EAccessDenied)
	case !actor.IsAdmin && !self:
		return apperr.New(apperr.EAccessDenied)
	}

	switch action {
	case removal.ActionDelete:
		if target.ErasureDate != nil {
			return apperr.New(apperr.EUserDeleted)
		}

		future := time.Now().Add(uc.TrashBinRetention).UTC().Format(time.RFC3339)
		target.ErasureDate = &future
		target.NoBackup = noBackup

		uc.cascadeStopUserRevisions(ctx, target.ID)
	case removal.ActionRestore:
		if target.ErasureDate == nil {
			return apperr.New(apperr.EUserNotDeleted)
		}

		if newName != nil {
			target.Name = *newName
		}

		target.ErasureDate = nil
	case removal.ActionErase:
		if target.ErasureDate == nil {
			return apperr.New(apperr.EUserNotDeleted)
		}

		now := time.Now().UTC().Format(time.RFC3339)
		target.ErasureDate = &now
	}

	if err := uc.Users.Update(ctx, target); err != nil {
		if errors.Is(err, mongostore.ErrDuplicateKey) {
			return apperr.New(apperr.EUserExists)
		}

		return apperr.Internal(err)
	}

	return nil
}
