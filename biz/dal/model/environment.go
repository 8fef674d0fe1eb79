package model

import (
	"time"
)

// Environment represents a deployment scope that features can be
// independently toggled within. The name doubles as the primary key and is
// immutable after creation.
type Environment struct {
	Name        string    `gorm:"column:name;primaryKey" json:"name"`
	DisplayName string    `gorm:"column:display_name" json:"display_name"`
	Type        string    `gorm:"column:type" json:"type"`
	SortOrder   int       `gorm:"column:sort_order" json:"sort_order"`
	Enabled     bool      `gorm:"column:enabled" json:"enabled"`
	Protected   bool      `gorm:"column:protected" json:"protected"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName overrides gorm to use the environments table.
func (Environment) TableName() string {
	return "environments"
}

// ProjectEnvironment is the join row recording that a project has opted
// into an environment. The composite primary key enforces pair uniqueness.
type ProjectEnvironment struct {
	EnvironmentName string `gorm:"column:environment_name;primaryKey" json:"environment_name"`
	ProjectID       string `gorm:"column:project_id;primaryKey" json:"project_id"`
}

// TableName overrides gorm to use the project_environments table.
func (ProjectEnvironment) TableName() string {
	return "project_environments"
}

// FeatureEnvironment stores whether a feature is toggled on within an
// environment. Enabled here is independent of the environment's own flag.
type FeatureEnvironment struct {
	Environment string `gorm:"column:environment;primaryKey" json:"environment"`
	FeatureName string `gorm:"column:feature_name;primaryKey" json:"feature_name"`
	Enabled     bool   `gorm:"column:enabled" json:"enabled"`
}

// TableName overrides gorm to use the feature_environments table.
func (FeatureEnvironment) TableName() string {
	return "feature_environments"
}
