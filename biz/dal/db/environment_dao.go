package db

import (
	"context"
	"errors"

	"github.com/yi-nology/flagscope/biz/dal/model"
	"github.com/yi-nology/flagscope/pkg/metrics"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnvironmentDAO wraps persistence for environments and their project and
// feature associations. It enforces no business rules beyond the SQL
// predicates themselves; the protected guard lives in the mutation
// predicates, not in application code.
type EnvironmentDAO struct{}

func NewEnvironmentDAO() *EnvironmentDAO { return &EnvironmentDAO{} }

// EnvironmentUpdate carries the mutable fields of an environment update.
// Nil fields are left untouched. Protected is always written as false; the
// only protected row is the seeded default and it never changes hands.
type EnvironmentUpdate struct {
	DisplayName *string
	Type        *string
}

// Create persists a new environment. A name collision surfaces as
// gorm.ErrDuplicatedKey and is translated one layer up.
func (dao *EnvironmentDAO) Create(ctx context.Context, db *gorm.DB, entity *model.Environment) error {
	defer metrics.Time("environment", "create")()
	if entity == nil {
		return errors.New("environment must not be nil")
	}
	if entity.Name == "" {
		return errors.New("environment name is required")
	}
	return db.WithContext(ctx).Create(entity).Error
}

// Update patches display_name and type for the named environment, always
// forcing protected to false. Protected rows never match the predicate.
// Returns the post-update row, or nil when no row matched.
func (dao *EnvironmentDAO) Update(ctx context.Context, db *gorm.DB, name string, fields EnvironmentUpdate) (*model.Environment, error) {
	defer metrics.Time("environment", "update")()

	updates := map[string]any{"protected": false}
	if fields.DisplayName != nil {
		updates["display_name"] = *fields.DisplayName
	}
	if fields.Type != nil {
		updates["type"] = *fields.Type
	}

	tx := db.WithContext(ctx).
		Model(&model.Environment{}).
		Where("name = ? AND protected = ?", name, false).
		Updates(updates)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, nil
	}
	return dao.GetByName(ctx, db, name)
}

// SetEnabled toggles the environment's enabled flag. Protected environments
// are filtered out by the predicate, so toggling one is a silent no-op.
func (dao *EnvironmentDAO) SetEnabled(ctx context.Context, db *gorm.DB, name string, enabled bool) error {
	defer metrics.Time("environment", "set_enabled")()
	return db.WithContext(ctx).
		Model(&model.Environment{}).
		Where("name = ? AND protected = ?", name, false).
		Update("enabled", enabled).
		Error
}

// SetSortOrder updates the sort order unconditionally; protected
// environments may still be reordered.
func (dao *EnvironmentDAO) SetSortOrder(ctx context.Context, db *gorm.DB, name string, sortOrder int) error {
	defer metrics.Time("environment", "set_sort_order")()
	return db.WithContext(ctx).
		Model(&model.Environment{}).
		Where("name = ?", name).
		Update("sort_order", sortOrder).
		Error
}

// Delete removes the named environment unless it is protected and reports
// how many rows went away. Deleting a protected or nonexistent name removes
// nothing; the caller decides whether its association rows need cleaning.
func (dao *EnvironmentDAO) Delete(ctx context.Context, db *gorm.DB, name string) (int64, error) {
	defer metrics.Time("environment", "delete")()
	tx := db.WithContext(ctx).
		Where("name = ? AND protected = ?", name, false).
		Delete(&model.Environment{})
	return tx.RowsAffected, tx.Error
}

// GetByName fetches a single environment, failing with
// gorm.ErrRecordNotFound when absent.
func (dao *EnvironmentDAO) GetByName(ctx context.Context, db *gorm.DB, name string) (*model.Environment, error) {
	defer metrics.Time("environment", "get_by_name")()
	var entity model.Environment
	if err := db.WithContext(ctx).
		Where("name = ?", name).
		First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// List returns all environments ordered by sort order, ties broken by
// creation time. An empty database yields an empty slice, never an error.
func (dao *EnvironmentDAO) List(ctx context.Context, db *gorm.DB) ([]model.Environment, error) {
	defer metrics.Time("environment", "list")()
	entities := make([]model.Environment, 0)
	if err := db.WithContext(ctx).
		Order("sort_order ASC, created_at ASC").
		Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Exists checks presence without raising on a miss.
func (dao *EnvironmentDAO) Exists(ctx context.Context, db *gorm.DB, name string) (bool, error) {
	defer metrics.Time("environment", "exists")()
	var count int64
	if err := db.WithContext(ctx).
		Model(&model.Environment{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ConnectProject inserts the (environment, project) join row. A duplicate
// pair surfaces as gorm.ErrDuplicatedKey.
func (dao *EnvironmentDAO) ConnectProject(ctx context.Context, db *gorm.DB, environment, projectID string) error {
	defer metrics.Time("environment", "connect_project")()
	return db.WithContext(ctx).Create(&model.ProjectEnvironment{
		EnvironmentName: environment,
		ProjectID:       projectID,
	}).Error
}

// ConnectFeatures inserts one disabled feature_environments row per feature
// of the project. Existing pairs are left untouched so a repeated connect
// never resets a toggled flag. A zero-feature project inserts nothing.
func (dao *EnvironmentDAO) ConnectFeatures(ctx context.Context, db *gorm.DB, environment, projectID string) error {
	defer metrics.Time("environment", "connect_features")()

	names, err := NewFeatureDAO().ListNamesByProject(ctx, db, projectID)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return nil
	}

	rows := make([]model.FeatureEnvironment, 0, len(names))
	for _, name := range names {
		rows = append(rows, model.FeatureEnvironment{
			Environment: environment,
			FeatureName: name,
			Enabled:     false,
		})
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "environment"}, {Name: "feature_name"}},
			DoNothing: true,
		}).
		Create(&rows).Error
}

// ConnectFeatureToEnvironmentsForProject links a single feature into every
// environment its project is connected to. The per-environment inserts run
// concurrently and are all joined before returning, so the caller observes
// completion or the first failure.
func (dao *EnvironmentDAO) ConnectFeatureToEnvironmentsForProject(ctx context.Context, db *gorm.DB, featureName, projectID string) error {
	defer metrics.Time("environment", "connect_feature_to_environments")()

	var environments []string
	if err := db.WithContext(ctx).
		Model(&model.ProjectEnvironment{}).
		Where("project_id = ?", projectID).
		Pluck("environment_name", &environments).Error; err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, env := range environments {
		env := env
		g.Go(func() error {
			return db.WithContext(gctx).
				Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "environment"}, {Name: "feature_name"}},
					DoNothing: true,
				}).
				Create(&model.FeatureEnvironment{
					Environment: env,
					FeatureName: featureName,
					Enabled:     false,
				}).Error
		})
	}
	return g.Wait()
}

// DisconnectAllProjects removes every project link of an environment. Part
// of the environment delete cascade; without it a deleted and recreated
// name would inherit the old connections.
func (dao *EnvironmentDAO) DisconnectAllProjects(ctx context.Context, db *gorm.DB, environment string) error {
	defer metrics.Time("environment", "disconnect_all_projects")()
	return db.WithContext(ctx).
		Where("environment_name = ?", environment).
		Delete(&model.ProjectEnvironment{}).
		Error
}

// DisconnectProjectFromEnv deletes the join row for the exact pair; absent
// pairs are a no-op.
func (dao *EnvironmentDAO) DisconnectProjectFromEnv(ctx context.Context, db *gorm.DB, environment, projectID string) error {
	defer metrics.Time("environment", "disconnect_project")()
	return db.WithContext(ctx).
		Where("environment_name = ? AND project_id = ?", environment, projectID).
		Delete(&model.ProjectEnvironment{}).
		Error
}
