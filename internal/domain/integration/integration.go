// Package integration holds per-project bug-tracker integrations and the
// closed-sum config each tracker kind requires.
package integration

import "github.com/bondifuzz/api-gateway/internal/domain/integrationtype"

// Status tracks whether the last config push/verification against the
// external tracker succeeded.
type Status string

const (
	StatusInProgress Status = "InProgress"
	StatusSucceeded  Status = "Succeeded"
	StatusFailed     Status = "Failed"
)

// JiraConfig is the Jira-specific half of a closed Config sum; Priority is
// optional because not every Jira project enables a priority field.
type JiraConfig struct {
	URL       string  `bson:"url" json:"url"`
	Project   string  `bson:"project" json:"project"`
	Username  string  `bson:"username" json:"username"`
	Password  string  `bson:"password" json:"password"`
	IssueType string  `bson:"issue_type" json:"issue_type"`
	Priority  *string `bson:"priority,omitempty" json:"priority,omitempty"`
}

// YoutrackConfig is the Youtrack-specific half of the closed Config sum.
type YoutrackConfig struct {
	URL     string `bson:"url" json:"url"`
	Token   string `bson:"token" json:"token"`
	Project string `bson:"project" json:"project"`
}

// Config is a closed sum over the tracker kinds in integrationtype: exactly
// one of Jira/Youtrack is populated, selected by Type. It is a tagged struct
// rather than an interface so it marshals to/from BSON and JSON directly
// without a custom codec.
type Config struct {
	Type     integrationtype.ID `bson:"type" json:"type"`
	Jira     *JiraConfig        `bson:"jira,omitempty" json:"jira,omitempty"`
	Youtrack *YoutrackConfig    `bson:"youtrack,omitempty" json:"youtrack,omitempty"`
}

// Valid reports whether the Config has exactly the variant its Type names
// populated, and no other.
func (c Config) Valid() bool {
	switch c.Type {
	case integrationtype.Jira:
		return c.Jira != nil && c.Youtrack == nil
	case integrationtype.Youtrack:
		return c.Youtrack != nil && c.Jira == nil
	default:
		return false
	}
}

// Integration is a project's binding to an external bug tracker: crashes
// found by a fuzzer are reported there when Enabled. ConfigID is the
// reporter-side identifier handed back on every outbound notification;
// UpdateRev guards against a reporter callback that targets credentials
// the user has since overwritten (§4.5 IntegrationResult reconciliation).
type Integration struct {
	ID             string             `bson:"_id" json:"id"`
	Name           string             `bson:"name" json:"name"`
	ProjectID      string             `bson:"project_id" json:"project_id"`
	ConfigID       string             `bson:"config_id" json:"config_id"`
	Type           integrationtype.ID `bson:"type" json:"type"`
	Config         Config             `bson:"config" json:"config"`
	Enabled        bool               `bson:"enabled" json:"enabled"`
	Status         Status             `bson:"status" json:"status"`
	LastError      string             `bson:"last_error,omitempty" json:"last_error,omitempty"`
	UpdateRev      string             `bson:"update_rev" json:"update_rev"`
	NumUndelivered int                `bson:"num_undelivered" json:"num_undelivered"`
}

// Reportable reports whether a crash event on an enabled integration should
// fan out immediately (status Succeeded) or instead bump the undelivered
// counter for later manual follow-up.
func (i Integration) Reportable() bool {
	return i.Enabled && i.Status == StatusSucceeded
}

// CreateInput is the request payload for registering an integration.
type CreateInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Type    integrationtype.ID `json:"type" validate:"required"`
	Config  Config `json:"config" validate:"required"`
	Enabled bool   `json:"enabled"`
}
