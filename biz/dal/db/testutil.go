package db

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/yi-nology/flagscope/biz/dal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent), // Reduce log noise in tests
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Each sqlite :memory: connection gets its own database, so the pool
	// must be pinned to a single connection. Concurrent callers queue on it.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.Environment{},
		&model.Project{},
		&model.Feature{},
		&model.ProjectEnvironment{},
		&model.FeatureEnvironment{},
	); err != nil {
		t.Fatalf("Failed to migrate tables: %v", err)
	}

	return db
}

// CleanupTestDB closes the database connection.
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Logf("Warning: Failed to get underlying DB: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Logf("Warning: Failed to close DB: %v", err)
	}
}

// CreateTestEnvironment creates a test environment with default values.
func CreateTestEnvironment(t *testing.T, db *gorm.DB, name string) *model.Environment {
	t.Helper()
	dao := NewEnvironmentDAO()
	env := &model.Environment{
		Name:        name,
		DisplayName: "Test " + name,
		Type:        "development",
		SortOrder:   0,
		Enabled:     true,
	}
	if err := dao.Create(context.Background(), db, env); err != nil {
		t.Fatalf("Failed to create test environment: %v", err)
	}
	return env
}

// CreateTestProject creates a test project with the given features.
func CreateTestProject(t *testing.T, db *gorm.DB, projectID string, features ...string) *model.Project {
	t.Helper()
	dao := NewFeatureDAO()
	project := &model.Project{
		ID:   projectID,
		Name: "Test " + projectID,
	}
	if err := dao.CreateProject(context.Background(), db, project); err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	for _, name := range features {
		feature := &model.Feature{Name: name, Project: projectID}
		if err := dao.CreateFeature(context.Background(), db, feature); err != nil {
			t.Fatalf("Failed to create test feature %s: %v", name, err)
		}
	}
	return project
}
