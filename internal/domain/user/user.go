// Package user holds the User entity, the top of the ownership hierarchy
// (user → project → fuzzer → revision), and its role/lifecycle invariants.
package user

// User is an account in the gateway: either a client (owns projects) or an
// admin/system-admin (manages other users, engines, langs, images, pools).
// IsSystem accounts are seeded at bootstrap and can never be deleted.
type User struct {
	ID           string  `bson:"_id" json:"id"`
	Name         string  `bson:"name" json:"name"`
	DisplayName  string  `bson:"display_name" json:"display_name"`
	PasswordHash string  `bson:"password_hash" json:"-"`
	Email        string  `bson:"email" json:"email"`
	IsConfirmed  bool    `bson:"is_confirmed" json:"is_confirmed"`
	IsDisabled   bool    `bson:"is_disabled" json:"is_disabled"`
	IsAdmin      bool    `bson:"is_admin" json:"is_admin"`
	IsSystem     bool    `bson:"is_system" json:"is_system"`
	ErasureDate  *string `bson:"erasure_date,omitempty" json:"erasure_date,omitempty"`
	NoBackup     bool    `bson:"no_backup" json:"no_backup"`
}

// Deletable reports whether this user may ever transition to the trash bin;
// system accounts are permanently pinned (§3 invariant: is_system ⇒ cannot
// be deleted).
func (u User) Deletable() bool {
	return !u.IsSystem
}

// CreateInput is the request payload for registering a new user. Only a
// system-admin may submit IsAdmin=true (§4.2 creation privilege matrix);
// command.UseCase.CreateUser enforces that, not this type.
type CreateInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	DisplayName string `json:"display_name" validate:"max=100"`
	Password    string `json:"password" validate:"required,min=8,max=256"`
	Email       string `json:"email" validate:"required,email"`
	IsAdmin     bool   `json:"is_admin"`
}

// UpdateInput is the request payload for PATCH; nil fields are left
// unchanged. Self-service callers may only populate the subset of fields
// the handler permits for non-admin self-edits.
type UpdateInput struct {
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,max=100"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Password    *string `json:"password,omitempty" validate:"omitempty,min=8,max=256"`
	IsDisabled  *bool   `json:"is_disabled,omitempty"`
	IsConfirmed *bool   `json:"is_confirmed,omitempty"`
}

// LoginInput is the credential triple submitted to the login endpoint.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	// SessionMetadata is opaque client-supplied context (user agent, device
	// label, ...) stored alongside the session cookie record for audit.
	SessionMetadata string `json:"session_metadata"`
}
