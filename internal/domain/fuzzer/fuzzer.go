// Package fuzzer holds the Fuzzer entity, owned by a Project, whose
// lifecycle actions (start/stop/restart/corpus) target its ActiveRevision.
package fuzzer

import (
	"github.com/bondifuzz/api-gateway/internal/domain/engine"
	"github.com/bondifuzz/api-gateway/internal/domain/lang"
)

// Fuzzer is a named program under test; Engine and Lang are fixed at
// creation. ActiveRevisionID stores only the id of the active revision
// (Design Notes §9: the fuzzer→revision join is asymmetric, never a full
// embedded Revision, to avoid the source's latent cyclic reference).
type Fuzzer struct {
	ID               string    `bson:"_id" json:"id"`
	Name             string    `bson:"name" json:"name"`
	Description      string    `bson:"description" json:"description"`
	ProjectID        string    `bson:"project_id" json:"project_id"`
	Engine           engine.ID `bson:"engine" json:"engine"`
	Lang             lang.ID   `bson:"lang" json:"lang"`
	CIIntegration    bool      `bson:"ci_integration" json:"ci_integration"`
	Created          string    `bson:"created" json:"created"`
	ActiveRevisionID *string   `bson:"active_revision,omitempty" json:"active_revision,omitempty"`
	ErasureDate      *string   `bson:"erasure_date,omitempty" json:"erasure_date,omitempty"`
	NoBackup         bool      `bson:"no_backup" json:"no_backup"`
}

// CreateInput is the request payload for creating a fuzzer.
type CreateInput struct {
	Name          string    `json:"name" validate:"required,max=100"`
	Description   string    `json:"description" validate:"max=500"`
	Engine        engine.ID `json:"engine" validate:"required"`
	Lang          lang.ID   `json:"lang" validate:"required"`
	CIIntegration bool      `json:"ci_integration"`
}

// UpdateInput is the request payload for PATCH; nil fields are unchanged.
// Engine/Lang are immutable once the fuzzer exists.
type UpdateInput struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}
