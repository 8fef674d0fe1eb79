package db

import (
	"context"

	"github.com/yi-nology/flagscope/biz/dal/model"
	"github.com/yi-nology/flagscope/pkg/metrics"
	"gorm.io/gorm"
)

// FeatureEnvironmentDAO manages the per-(environment, feature) enabled
// state that connecting a project fans out.
type FeatureEnvironmentDAO struct{}

func NewFeatureEnvironmentDAO() *FeatureEnvironmentDAO { return &FeatureEnvironmentDAO{} }

// DisconnectProjectFeatures deletes the feature rows of one project within
// one environment. Runs before the project link itself is removed so a
// failure cannot orphan feature rows.
func (dao *FeatureEnvironmentDAO) DisconnectProjectFeatures(ctx context.Context, db *gorm.DB, environment, projectID string) error {
	defer metrics.Time("feature_environment", "disconnect_project_features")()
	return db.WithContext(ctx).
		Where("environment = ? AND feature_name IN (?)",
			environment,
			db.Model(&model.Feature{}).Select("name").Where("project = ?", projectID),
		).
		Delete(&model.FeatureEnvironment{}).
		Error
}

// DeleteAllForEnvironment removes every feature row of an environment.
// Part of the environment delete cascade.
func (dao *FeatureEnvironmentDAO) DeleteAllForEnvironment(ctx context.Context, db *gorm.DB, environment string) error {
	defer metrics.Time("feature_environment", "delete_all_for_environment")()
	return db.WithContext(ctx).
		Where("environment = ?", environment).
		Delete(&model.FeatureEnvironment{}).
		Error
}

// SetFeatureEnabled flips the enabled flag of a feature within an
// environment. Absent pairs are a no-op.
func (dao *FeatureEnvironmentDAO) SetFeatureEnabled(ctx context.Context, db *gorm.DB, environment, featureName string, enabled bool) error {
	defer metrics.Time("feature_environment", "set_feature_enabled")()
	return db.WithContext(ctx).
		Model(&model.FeatureEnvironment{}).
		Where("environment = ? AND feature_name = ?", environment, featureName).
		Update("enabled", enabled).
		Error
}

// IsFeatureEnabled reports whether the feature is toggled on within the
// environment, failing with gorm.ErrRecordNotFound when the pair is absent.
func (dao *FeatureEnvironmentDAO) IsFeatureEnabled(ctx context.Context, db *gorm.DB, environment, featureName string) (bool, error) {
	defer metrics.Time("feature_environment", "is_feature_enabled")()
	var row model.FeatureEnvironment
	if err := db.WithContext(ctx).
		Where("environment = ? AND feature_name = ?", environment, featureName).
		First(&row).Error; err != nil {
		return false, err
	}
	return row.Enabled, nil
}

// ListForEnvironment returns every feature row recorded in an environment.
func (dao *FeatureEnvironmentDAO) ListForEnvironment(ctx context.Context, db *gorm.DB, environment string) ([]model.FeatureEnvironment, error) {
	defer metrics.Time("feature_environment", "list_for_environment")()
	rows := make([]model.FeatureEnvironment, 0)
	if err := db.WithContext(ctx).
		Where("environment = ?", environment).
		Order("feature_name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
