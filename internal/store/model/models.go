package model

import (
	"database/sql"
	"time"
)

// Agent is the head row of an agent; its configuration history lives
// in agent_versions.
type Agent struct {
	ID               string         `db:"id" json:"id"`
	AccountID        string         `db:"account_id" json:"account_id"`
	Name             string         `db:"name" json:"name"`
	Description      string         `db:"description" json:"description"`
	IconName         string         `db:"icon_name" json:"icon_name"`
	IconColor        string         `db:"icon_color" json:"icon_color"`
	IconBackground   string         `db:"icon_background" json:"icon_background"`
	IsDefault        bool           `db:"is_default" json:"is_default"`
	TagsJSON         string         `db:"tags_json" json:"-"` // JSON array
	CurrentVersionID sql.NullString `db:"current_version_id" json:"current_version_id,omitempty"`
	VersionCount     int            `db:"version_count" json:"version_count"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

// AgentVersion is one immutable snapshot of an agent's configuration.
// The model column always holds the platform-mandated model id in
// force when the version was written.
type AgentVersion struct {
	ID            string    `db:"id" json:"id"`
	AgentID       string    `db:"agent_id" json:"agent_id"`
	VersionNumber int       `db:"version_number" json:"version_number"`
	VersionName   string    `db:"version_name" json:"version_name"`
	Model         string    `db:"model" json:"model"`
	SystemPrompt  string    `db:"system_prompt" json:"system_prompt"`
	ConfigJSON    string    `db:"config_json" json:"-"` // full agent.Config snapshot
	IsActive      bool      `db:"is_active" json:"is_active"`
	CreatedBy     string    `db:"created_by" json:"created_by"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
