package service

import (
	"github.com/yi-nology/flagscope/biz/dal/model"
	"github.com/yi-nology/flagscope/biz/model/api"
	"gorm.io/gorm"
)

// Service orchestrates environment and association operations using Logic.
// It is the only place business invariants are checked before the store is
// touched.
type Service struct {
	logic *Logic
}

func NewService(db *gorm.DB) *Service {
	return &Service{logic: NewLogic(db)}
}

// --------------------- Model conversion helpers ---------------------

func modelEnvironmentToAPI(env *model.Environment) *api.Environment {
	if env == nil {
		return nil
	}
	return &api.Environment{
		Name:        env.Name,
		DisplayName: env.DisplayName,
		Type:        env.Type,
		SortOrder:   env.SortOrder,
		Enabled:     env.Enabled,
		Protected:   env.Protected,
	}
}

func environmentSliceToAPI(envs []model.Environment) []*api.Environment {
	list := make([]*api.Environment, 0, len(envs))
	for i := range envs {
		list = append(list, modelEnvironmentToAPI(&envs[i]))
	}
	return list
}
