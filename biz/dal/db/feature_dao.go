package db

import (
	"context"
	"errors"

	"github.com/yi-nology/flagscope/biz/dal/model"
	"github.com/yi-nology/flagscope/pkg/metrics"
	"gorm.io/gorm"
)

// FeatureDAO covers the project and feature lookups the association
// cascades read from.
type FeatureDAO struct{}

func NewFeatureDAO() *FeatureDAO { return &FeatureDAO{} }

// CreateProject persists a new project.
func (dao *FeatureDAO) CreateProject(ctx context.Context, db *gorm.DB, project *model.Project) error {
	defer metrics.Time("feature", "create_project")()
	if project == nil || project.ID == "" {
		return errors.New("project id is required")
	}
	return db.WithContext(ctx).Create(project).Error
}

// CreateFeature persists a new feature owned by a project.
func (dao *FeatureDAO) CreateFeature(ctx context.Context, db *gorm.DB, feature *model.Feature) error {
	defer metrics.Time("feature", "create_feature")()
	if feature == nil || feature.Name == "" {
		return errors.New("feature name is required")
	}
	return db.WithContext(ctx).Create(feature).Error
}

// ListNamesByProject returns the names of all features the project owns.
func (dao *FeatureDAO) ListNamesByProject(ctx context.Context, db *gorm.DB, projectID string) ([]string, error) {
	defer metrics.Time("feature", "list_names_by_project")()
	names := make([]string, 0)
	if err := db.WithContext(ctx).
		Model(&model.Feature{}).
		Where("project = ?", projectID).
		Order("name ASC").
		Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

// ProjectExists checks presence of a project id.
func (dao *FeatureDAO) ProjectExists(ctx context.Context, db *gorm.DB, projectID string) (bool, error) {
	defer metrics.Time("feature", "project_exists")()
	var count int64
	if err := db.WithContext(ctx).
		Model(&model.Project{}).
		Where("id = ?", projectID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
