// Package image holds the docker-image catalog a revision is built from.
package image

import "github.com/bondifuzz/api-gateway/internal/domain/engine"

// Status is the build/verification lifecycle of an image.
type Status string

const (
	NotPushed   Status = "NotPushed"
	Verifying   Status = "Verifying"
	VerifyError Status = "VerifyError"
	Ready       Status = "Ready"
)

// Kind distinguishes platform-provided images from user-supplied ones.
type Kind string

const (
	Custom  Kind = "Custom"
	BuiltIn Kind = "Built-in"
)

// Image is a buildable/runnable fuzzing environment, scoped to a project
// when user-supplied (Custom) or global when BuiltIn.
type Image struct {
	ID          string      `bson:"_id" json:"id"`
	Name        string      `bson:"name" json:"name"`
	Description string      `bson:"description" json:"description"`
	Engines     []engine.ID `bson:"engines" json:"engines"`
	Status      Status      `bson:"status" json:"status"`
	ProjectID   *string     `bson:"project_id,omitempty" json:"project_id,omitempty"`
}

// SupportsEngine reports whether e is in the image's accepted engine list.
func (i Image) SupportsEngine(e engine.ID) bool {
	for _, accepted := range i.Engines {
		if accepted == e {
			return true
		}
	}

	return false
}

// CreateInput is the request payload for registering a custom image.
type CreateInput struct {
	Name        string      `json:"name" validate:"required,max=100"`
	Description string      `json:"description" validate:"max=500"`
	Engines     []engine.ID `json:"engines"`
}
