package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/yi-nology/flagscope/biz/dal/model"
	"github.com/yi-nology/flagscope/biz/model/api"
	"gorm.io/gorm"
)

// ConnectProjectToEnvironment opts a project into an environment and
// cascades into one disabled feature row per feature the project owns.
// Both writes share a transaction so a partial cascade rolls back.
func (s *Service) ConnectProjectToEnvironment(ctx context.Context, environment, projectID string) error {
	exists, err := s.logic.environmentDAO.Exists(ctx, s.logic.db, environment)
	if err != nil {
		return err
	}
	if !exists {
		return ErrEnvironmentNotFound
	}

	err = s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.logic.environmentDAO.ConnectProject(ctx, tx, environment, projectID); err != nil {
			return err
		}
		return s.logic.environmentDAO.ConnectFeatures(ctx, tx, environment, projectID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrProjectEnvironmentExists
		}
		return err
	}
	return nil
}

// RemoveEnvironmentFromProject disconnects the feature rows first and then
// the project link, in one transaction. The reverse order could leave
// orphaned feature rows if the second delete failed.
func (s *Service) RemoveEnvironmentFromProject(ctx context.Context, environment, projectID string) error {
	return s.logic.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.logic.featureEnvironmentDAO.DisconnectProjectFeatures(ctx, tx, environment, projectID); err != nil {
			return err
		}
		return s.logic.environmentDAO.DisconnectProjectFromEnv(ctx, tx, environment, projectID)
	})
}

// AddProject registers a new project.
func (s *Service) AddProject(ctx context.Context, req *api.CreateProjectRequest) error {
	if req == nil || req.ID == "" {
		return fmt.Errorf("%w: project id is required", ErrValidation)
	}
	err := s.logic.featureDAO.CreateProject(ctx, s.logic.db, &model.Project{
		ID:   req.ID,
		Name: req.Name,
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrProjectIDExists
	}
	return err
}

// AddFeature creates a feature inside a project and links it into every
// environment the project is already connected to, disabled by default.
func (s *Service) AddFeature(ctx context.Context, projectID, featureName string) error {
	if featureName == "" {
		return fmt.Errorf("%w: feature name is required", ErrValidation)
	}
	exists, err := s.logic.featureDAO.ProjectExists(ctx, s.logic.db, projectID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrProjectNotFound
	}

	err = s.logic.featureDAO.CreateFeature(ctx, s.logic.db, &model.Feature{
		Name:    featureName,
		Project: projectID,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrFeatureNameExists
		}
		return err
	}
	return s.logic.environmentDAO.ConnectFeatureToEnvironmentsForProject(ctx, s.logic.db, featureName, projectID)
}
