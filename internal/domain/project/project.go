// Package project holds the Project entity, owned by a user and the parent
// of every Fuzzer in the ownership hierarchy.
package project

// Project is a client-owned workspace: fuzzers live under it, and it may be
// bound to an external compute Pool (by id) for its fuzzers to run on.
type Project struct {
	ID          string  `bson:"_id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Description string  `bson:"description" json:"description"`
	OwnerID     string  `bson:"owner_id" json:"owner_id"`
	Created     string  `bson:"created" json:"created"`
	PoolID      *string `bson:"pool_id,omitempty" json:"pool_id,omitempty"`
	ErasureDate *string `bson:"erasure_date,omitempty" json:"erasure_date,omitempty"`
	NoBackup    bool    `bson:"no_backup" json:"no_backup"`
}

// HasPool reports whether a pool is bound, the precondition every
// start/restart revision action checks first (§4.3 E_NO_POOL_TO_USE).
func (p Project) HasPool() bool {
	return p.PoolID != nil && *p.PoolID != ""
}

// CreateInput is the request payload for creating a project; OwnerID is
// taken from the path, never the body, since ownership can never change.
type CreateInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// UpdateInput is the request payload for PATCH; nil fields are unchanged.
type UpdateInput struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	PoolID      *string `json:"pool_id,omitempty"`
}
