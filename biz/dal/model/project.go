package model

import (
	"time"
)

// Project groups features; connecting a project to an environment cascades
// into feature_environments rows for every feature it owns.
type Project struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	Name      string    `gorm:"column:name" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName overrides gorm to use the projects table.
func (Project) TableName() string {
	return "projects"
}

// Feature is a flag definition owned by a project.
type Feature struct {
	Name      string    `gorm:"column:name;primaryKey" json:"name"`
	Project   string    `gorm:"column:project;index" json:"project"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName overrides gorm to use the features table.
func (Feature) TableName() string {
	return "features"
}
