package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/yi-nology/flagscope/biz/dal/db"
	"github.com/yi-nology/flagscope/biz/dal/model"
	"github.com/yi-nology/flagscope/biz/model/api"
	"github.com/yi-nology/flagscope/pkg/validator"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ListEnvironments returns all environments ordered for display.
func (s *Service) ListEnvironments(ctx context.Context) ([]*api.Environment, error) {
	entities, err := s.logic.environmentDAO.List(ctx, s.logic.db)
	if err != nil {
		return nil, err
	}
	return environmentSliceToAPI(entities), nil
}

// GetEnvironment returns an environment by name.
func (s *Service) GetEnvironment(ctx context.Context, name string) (*api.Environment, error) {
	entity, err := s.logic.environmentDAO.GetByName(ctx, s.logic.db, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnvironmentNotFound
		}
		return nil, err
	}
	return modelEnvironmentToAPI(entity), nil
}

// CreateEnvironment validates the payload shape and persists a new
// environment. Enabled defaults to true when the caller omits it; protected
// is never settable here.
func (s *Service) CreateEnvironment(ctx context.Context, req *api.CreateEnvironmentRequest) (*api.Environment, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request body is required", ErrValidation)
	}
	name, ok := validator.SanitizeEnvironmentName(req.Name)
	if !ok {
		if name == "" {
			return nil, fmt.Errorf("%w: environment name is required", ErrValidation)
		}
		return nil, fmt.Errorf("%w: environment name must be URL safe", ErrValidation)
	}
	if req.Type == "" {
		return nil, fmt.Errorf("%w: environment type is required", ErrValidation)
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	entity := &model.Environment{
		Name:        name,
		DisplayName: req.DisplayName,
		Type:        req.Type,
		SortOrder:   req.SortOrder,
		Enabled:     enabled,
	}
	if err := s.logic.environmentDAO.Create(ctx, s.logic.db, entity); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEnvironmentNameExists
		}
		return nil, err
	}
	return modelEnvironmentToAPI(entity), nil
}

// ValidateUniqueName reports whether the name is still available. Only a
// not-found lookup counts as available; any other lookup failure propagates
// instead of silently treating the name as free.
func (s *Service) ValidateUniqueName(ctx context.Context, name string) error {
	_, err := s.logic.environmentDAO.GetByName(ctx, s.logic.db, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return ErrEnvironmentNameExists
}

// UpdateSortOrder applies one sort-order update per entry. The updates run
// concurrently and are all joined before returning so the response never
// races ahead of persistence. Names without a matching row are no-ops.
func (s *Service) UpdateSortOrder(ctx context.Context, order api.SortOrderMap) error {
	if order == nil {
		return fmt.Errorf("%w: sort order map is required", ErrValidation)
	}
	g, gctx := errgroup.WithContext(ctx)
	for name, value := range order {
		name, value := name, value
		g.Go(func() error {
			return s.logic.environmentDAO.SetSortOrder(gctx, s.logic.db, name, value)
		})
	}
	return g.Wait()
}

// ToggleEnvironment flips the enabled flag. A missing name fails with
// not-found; a protected environment is a silent no-op because the store
// predicate filters it out while the existence check passes.
func (s *Service) ToggleEnvironment(ctx context.Context, name string, enabled bool) error {
	exists, err := s.logic.environmentDAO.Exists(ctx, s.logic.db, name)
	if err != nil {
		return err
	}
	if !exists {
		return ErrEnvironmentNotFound
	}
	return s.logic.environmentDAO.SetEnabled(ctx, s.logic.db, name, enabled)
}

// UpdateEnvironment patches display name and type. Protected is forced to
// false in the write; a protected environment matches no row and surfaces
// as not-found.
func (s *Service) UpdateEnvironment(ctx context.Context, name string, req *api.UpdateEnvironmentRequest) (*api.Environment, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request body is required", ErrValidation)
	}
	exists, err := s.logic.environmentDAO.Exists(ctx, s.logic.db, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrEnvironmentNotFound
	}

	fields := db.EnvironmentUpdate{DisplayName: req.DisplayName, Type: req.Type}
	entity, err := s.logic.environmentDAO.Update(ctx, s.logic.db, name, fields)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, ErrEnvironmentNotFound
	}
	return modelEnvironmentToAPI(entity), nil
}

// DeleteEnvironment removes an environment and, in the same transaction,
// its project and feature association rows, so a recreated name starts
// clean. Deleting a protected or nonexistent name succeeds with no effect
// and leaves its associations untouched.
func (s *Service) DeleteEnvironment(ctx context.Context, name string) error {
	return s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := s.logic.environmentDAO.Delete(ctx, tx, name)
		if err != nil {
			return err
		}
		if affected == 0 {
			return nil
		}
		if err := s.logic.featureEnvironmentDAO.DeleteAllForEnvironment(ctx, tx, name); err != nil {
			return err
		}
		return s.logic.environmentDAO.DisconnectAllProjects(ctx, tx, name)
	})
}
