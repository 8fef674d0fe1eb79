package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/yi-nology/flagscope/biz/dal/db"
	"github.com/yi-nology/flagscope/biz/model/api"
	"github.com/yi-nology/flagscope/biz/service"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*service.Service, *gorm.DB) {
	t.Helper()
	conn := db.SetupTestDB(t)
	t.Cleanup(func() { db.CleanupTestDB(t, conn) })
	return service.NewService(conn), conn
}

func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func TestCreateEnvironment(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	t.Run("Success", func(t *testing.T) {
		env, err := svc.CreateEnvironment(ctx, &api.CreateEnvironmentRequest{
			Name:        "staging",
			DisplayName: "Staging",
			Type:        "production",
		})
		if err != nil {
			t.Fatalf("CreateEnvironment failed: %v", err)
		}
		if env.Name != "staging" || env.DisplayName != "Staging" || env.Type != "production" {
			t.Errorf("Unexpected environment: %+v", env)
		}
		if !env.Enabled {
			t.Error("Expected enabled to default to true")
		}
		if env.Protected {
			t.Error("Expected protected to be false")
		}

		got, err := svc.GetEnvironment(ctx, "staging")
		if err != nil {
			t.Fatalf("GetEnvironment failed: %v", err)
		}
		if *got != *env {
			t.Errorf("Round trip mismatch: created %+v, fetched %+v", env, got)
		}
	})

	t.Run("ExplicitDisabled", func(t *testing.T) {
		env, err := svc.CreateEnvironment(ctx, &api.CreateEnvironmentRequest{
			Name:    "dark-launch",
			Type:    "development",
			Enabled: boolPtr(false),
		})
		if err != nil {
			t.Fatalf("CreateEnvironment failed: %v", err)
		}
		if env.Enabled {
			t.Error("Expected enabled false to be honored")
		}
	})

	t.Run("MissingName", func(t *testing.T) {
		_, err := svc.CreateEnvironment(ctx, &api.CreateEnvironmentRequest{Type: "production"})
		if !errors.Is(err, service.ErrValidation) {
			t.Errorf("Expected validation error, got: %v", err)
		}
	})

	t.Run("MissingType", func(t *testing.T) {
		_, err := svc.CreateEnvironment(ctx, &api.CreateEnvironmentRequest{Name: "x"})
		if !errors.Is(err, service.ErrValidation) {
			t.Errorf("Expected validation error, got: %v", err)
		}
	})

	t.Run("NameNotURLSafe", func(t *testing.T) {
		_, err := svc.CreateEnvironment(ctx, &api.CreateEnvironmentRequest{
			Name: "Something not url safe **/ */21312",
			Type: "production",
		})
		if !errors.Is(err, service.ErrValidation) {
			t.Errorf("Expected validation error, got: %v", err)
		}
	})

	t.Run("DuplicateName", func(t *testing.T) {
		_, err := svc.CreateEnvironment(ctx, &api.CreateEnvironmentRequest{
			Name: "staging",
			Type: "production",
		})
		if !errors.Is(err, service.ErrEnvironmentNameExists) {
			t.Errorf("Expected ErrEnvironmentNameExists, got: %v", err)
		}
	})
}

func TestValidateUniqueName(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if _, err := svc.CreateEnvironment(ctx, &api.CreateEnvironmentRequest{Name: "taken", Type: "production"}); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	t.Run("Available", func(t *testing.T) {
		if err := svc.ValidateUniqueName(ctx, "free"); err != nil {
			t.Errorf("Expected name to be available, got: %v", err)
		}
	})

	t.Run("Taken", func(t *testing.T) {
		err := svc.ValidateUniqueName(ctx, "taken")
		if !errors.Is(err, service.ErrEnvironmentNameExists) {
			t.Errorf("Expected ErrEnvironmentNameExists, got: %v", err)
		}
	})
}

func TestGetEnvironment(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.GetEnvironment(ctx, "nope")
	if !errors.Is(err, service.ErrEnvironmentNotFound) {
		t.Errorf("Expected ErrEnvironmentNotFound, got: %v", err)
	}
}

func TestUpdateEnvironment(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if err := svc.EnsureDefaultEnvironment(ctx); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if _, err := svc.CreateEnvironment(ctx, &api.CreateEnvironmentRequest{
		Name:        "update-env",
		DisplayName: "Before",
		Type:        "production",
	}); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	t.Run("PartialPatch", func(t *testing.T) {
		env, err := svc.UpdateEnvironment(ctx, "update-env", &api.UpdateEnvironmentRequest{
			DisplayName: strPtr("After"),
		})
		if err != nil {
			t.Fatalf("UpdateEnvironment failed: %v", err)
		}
		if env.DisplayName != "After" {
			t.Errorf("Expected display name 'After', got '%s'", env.DisplayName)
		}
		if env.Type != "production" {
			t.Errorf("Expected type preserved, got '%s'", env.Type)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := svc.UpdateEnvironment(ctx, "non-existing-env", &api.UpdateEnvironmentRequest{
			DisplayName: strPtr("Update this"),
		})
		if !errors.Is(err, service.ErrEnvironmentNotFound) {
			t.Errorf("Expected ErrEnvironmentNotFound, got: %v", err)
		}
	})

	t.Run("ProtectedSurfacesNotFound", func(t *testing.T) {
		_, err := svc.UpdateEnvironment(ctx, service.DefaultEnvironment, &api.UpdateEnvironmentRequest{
			DisplayName: strPtr("Rename the world"),
		})
		if !errors.Is(err, service.ErrEnvironmentNotFound) {
			t.Errorf("Expected ErrEnvironmentNotFound for protected env, got: %v", err)
		}

		env, err := svc.GetEnvironment(ctx, service.DefaultEnvironment)
		if err != nil {
			t.Fatalf("GetEnvironment failed: %v", err)
		}
		if env.DisplayName != service.DefaultEnvironmentDisplayName {
			t.Errorf("Protected row changed: %s", env.DisplayName)
		}
	})
}

func TestToggleEnvironment(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if err := svc.EnsureDefaultEnvironment(ctx); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if _, err := svc.CreateEnvironment(ctx, &api.CreateEnvironmentRequest{Name: "toggle-env", Type: "production"}); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	t.Run("NotFound", func(t *testing.T) {
		err := svc.ToggleEnvironment(ctx, "ghost", true)
		if !errors.Is(err, service.ErrEnvironmentNotFound) {
			t.Errorf("Expected ErrEnvironmentNotFound, got: %v", err)
		}
	})

	t.Run("FlipsOnlyEnabled", func(t *testing.T) {
		before, err := svc.GetEnvironment(ctx, "toggle-env")
		if err != nil {
			t.Fatalf("GetEnvironment failed: %v", err)
		}

		if err := svc.ToggleEnvironment(ctx, "toggle-env", false); err != nil {
			t.Fatalf("ToggleEnvironment failed: %v", err)
		}

		after, err := svc.GetEnvironment(ctx, "toggle-env")
		if err != nil {
			t.Fatalf("GetEnvironment failed: %v", err)
		}
		if after.Enabled {
			t.Error("Expected enabled false")
		}
		after.Enabled = before.Enabled
		if *after != *before {
			t.Errorf("Toggle changed unrelated fields: before %+v, after %+v", before, after)
		}
	})

	t.Run("ProtectedSilentNoOp", func(t *testing.T) {
		if err := svc.ToggleEnvironment(ctx, service.DefaultEnvironment, false); err != nil {
			t.Fatalf("Expected silent success for protected env, got: %v", err)
		}

		env, err := svc.GetEnvironment(ctx, service.DefaultEnvironment)
		if err != nil {
			t.Fatalf("GetEnvironment failed: %v", err)
		}
		if !env.Enabled {
			t.Error("Protected environment was toggled")
		}
	})
}

func TestDeleteEnvironment(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if err := svc.EnsureDefaultEnvironment(ctx); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if _, err := svc.CreateEnvironment(ctx, &api.CreateEnvironmentRequest{Name: "deletable", Type: "production"}); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	t.Run("Success", func(t *testing.T) {
		if err := svc.DeleteEnvironment(ctx, "deletable"); err != nil {
			t.Fatalf("DeleteEnvironment failed: %v", err)
		}
		_, err := svc.GetEnvironment(ctx, "deletable")
		if !errors.Is(err, service.ErrEnvironmentNotFound) {
			t.Errorf("Expected ErrEnvironmentNotFound after delete, got: %v", err)
		}
	})

	t.Run("ProtectedSilentNoOp", func(t *testing.T) {
		if err := svc.DeleteEnvironment(ctx, service.DefaultEnvironment); err != nil {
			t.Fatalf("Expected silent success for protected env, got: %v", err)
		}
		if _, err := svc.GetEnvironment(ctx, service.DefaultEnvironment); err != nil {
			t.Errorf("Protected environment was deleted: %v", err)
		}
	})
}

func TestUpdateSortOrder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if err := svc.EnsureDefaultEnvironment(ctx); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if _, err := svc.CreateEnvironment(ctx, &api.CreateEnvironmentRequest{Name: "staging", Type: "production"}); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	t.Run("ReordersListing", func(t *testing.T) {
		err := svc.UpdateSortOrder(ctx, api.SortOrderMap{
			"staging":                  1,
			service.DefaultEnvironment: 2,
		})
		if err != nil {
			t.Fatalf("UpdateSortOrder failed: %v", err)
		}

		envs, err := svc.ListEnvironments(ctx)
		if err != nil {
			t.Fatalf("ListEnvironments failed: %v", err)
		}
		if len(envs) != 2 {
			t.Fatalf("Expected 2 environments, got %d", len(envs))
		}
		if envs[0].Name != "staging" || envs[0].SortOrder != 1 {
			t.Errorf("Expected staging first with sortOrder 1, got %+v", envs[0])
		}
		if envs[1].Name != service.DefaultEnvironment || envs[1].SortOrder != 2 {
			t.Errorf("Expected %s second with sortOrder 2, got %+v", service.DefaultEnvironment, envs[1])
		}
	})

	t.Run("UnknownNamesAreNoOps", func(t *testing.T) {
		if err := svc.UpdateSortOrder(ctx, api.SortOrderMap{"ghost": 7}); err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
	})

	t.Run("NilMap", func(t *testing.T) {
		err := svc.UpdateSortOrder(ctx, nil)
		if !errors.Is(err, service.ErrValidation) {
			t.Errorf("Expected validation error, got: %v", err)
		}
	})
}

func TestEnsureDefaultEnvironment(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if err := svc.EnsureDefaultEnvironment(ctx); err != nil {
		t.Fatalf("EnsureDefaultEnvironment failed: %v", err)
	}
	// Idempotent on restart.
	if err := svc.EnsureDefaultEnvironment(ctx); err != nil {
		t.Fatalf("Second EnsureDefaultEnvironment failed: %v", err)
	}

	env, err := svc.GetEnvironment(ctx, service.DefaultEnvironment)
	if err != nil {
		t.Fatalf("GetEnvironment failed: %v", err)
	}
	if !env.Protected || !env.Enabled {
		t.Errorf("Unexpected default environment: %+v", env)
	}
	if env.DisplayName != service.DefaultEnvironmentDisplayName {
		t.Errorf("Expected display name %q, got %q", service.DefaultEnvironmentDisplayName, env.DisplayName)
	}
	if env.SortOrder != service.DefaultEnvironmentSortOrder {
		t.Errorf("Expected sort order %d, got %d", service.DefaultEnvironmentSortOrder, env.SortOrder)
	}

	// The reserved name can never be recreated through the API.
	_, err = svc.CreateEnvironment(ctx, &api.CreateEnvironmentRequest{Name: service.DefaultEnvironment, Type: "production"})
	if !errors.Is(err, service.ErrValidation) {
		t.Errorf("Expected validation error for reserved name, got: %v", err)
	}
}
