package service

import (
	"context"
	"log"

	"github.com/yi-nology/flagscope/biz/dal/model"
)

const (
	// DefaultEnvironment is the implicit global scope. Its name is
	// deliberately not URL safe so it can never be recreated or shadowed
	// through the API.
	DefaultEnvironment            = ":global:"
	DefaultEnvironmentDisplayName = "Across all environments"
	DefaultEnvironmentType        = "production"
	DefaultEnvironmentSortOrder   = 1
)

// EnsureDefaultEnvironment seeds the protected global environment if it
// doesn't exist. It goes through the DAO directly because the create
// validation rejects the reserved name.
func (s *Service) EnsureDefaultEnvironment(ctx context.Context) error {
	exists, err := s.logic.environmentDAO.Exists(ctx, s.logic.db, DefaultEnvironment)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	env := &model.Environment{
		Name:        DefaultEnvironment,
		DisplayName: DefaultEnvironmentDisplayName,
		Type:        DefaultEnvironmentType,
		SortOrder:   DefaultEnvironmentSortOrder,
		Enabled:     true,
		Protected:   true,
	}
	if err := s.logic.environmentDAO.Create(ctx, s.logic.db, env); err != nil {
		return err
	}
	log.Printf("[Init] Created default environment: %s", DefaultEnvironment)
	return nil
}
