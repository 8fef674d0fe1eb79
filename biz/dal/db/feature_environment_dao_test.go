package db

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"
)

func TestFeatureEnvironmentDAO_DisconnectProjectFeatures(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewEnvironmentDAO()
	feDAO := NewFeatureEnvironmentDAO()
	ctx := context.Background()

	CreateTestEnvironment(t, db, "staging")
	CreateTestProject(t, db, "p1", "f1", "f2")
	CreateTestProject(t, db, "p2", "other")

	if err := dao.ConnectFeatures(ctx, db, "staging", "p1"); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if err := dao.ConnectFeatures(ctx, db, "staging", "p2"); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	t.Run("RemovesOnlyProjectFeatures", func(t *testing.T) {
		if err := feDAO.DisconnectProjectFeatures(ctx, db, "staging", "p1"); err != nil {
			t.Fatalf("DisconnectProjectFeatures failed: %v", err)
		}

		rows, err := feDAO.ListForEnvironment(ctx, db, "staging")
		if err != nil {
			t.Fatalf("ListForEnvironment failed: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("Expected 1 remaining row, got %d", len(rows))
		}
		if rows[0].FeatureName != "other" {
			t.Errorf("Wrong row survived: %s", rows[0].FeatureName)
		}
	})

	t.Run("RepeatIsNoOp", func(t *testing.T) {
		if err := feDAO.DisconnectProjectFeatures(ctx, db, "staging", "p1"); err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
	})
}

func TestFeatureEnvironmentDAO_SetFeatureEnabled(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)
	dao := NewEnvironmentDAO()
	feDAO := NewFeatureEnvironmentDAO()
	ctx := context.Background()

	CreateTestEnvironment(t, db, "staging")
	CreateTestProject(t, db, "p1", "f1")
	if err := dao.ConnectFeatures(ctx, db, "staging", "p1"); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	t.Run("Toggle", func(t *testing.T) {
		if err := feDAO.SetFeatureEnabled(ctx, db, "staging", "f1", true); err != nil {
			t.Fatalf("SetFeatureEnabled failed: %v", err)
		}
		enabled, err := feDAO.IsFeatureEnabled(ctx, db, "staging", "f1")
		if err != nil {
			t.Fatalf("IsFeatureEnabled failed: %v", err)
		}
		if !enabled {
			t.Error("Expected feature to be enabled")
		}
	})

	t.Run("AbsentPair", func(t *testing.T) {
		_, err := feDAO.IsFeatureEnabled(ctx, db, "staging", "ghost")
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Errorf("Expected ErrRecordNotFound, got: %v", err)
		}
	})
}
