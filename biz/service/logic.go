package service

import (
	"errors"

	"github.com/yi-nology/flagscope/biz/dal/db"
	"gorm.io/gorm"
)

var (
	ErrEnvironmentNotFound      = errors.New("environment not found")
	ErrEnvironmentNameExists    = errors.New("environment name already exists")
	ErrProjectEnvironmentExists = errors.New("project already has this environment connected")
	ErrProjectNotFound          = errors.New("project not found")
	ErrProjectIDExists          = errors.New("project id already exists")
	ErrFeatureNameExists        = errors.New("feature name already exists")

	// ErrValidation is the base of all shape failures; callers wrap it with
	// a human-readable message and handlers match it with errors.Is.
	ErrValidation = errors.New("validation failed")
)

// Logic contains business rules on top of data persistence.
type Logic struct {
	db                    *gorm.DB
	environmentDAO        *db.EnvironmentDAO
	featureEnvironmentDAO *db.FeatureEnvironmentDAO
	featureDAO            *db.FeatureDAO
}

func NewLogic(dbConn *gorm.DB) *Logic {
	return &Logic{
		db:                    dbConn,
		environmentDAO:        db.NewEnvironmentDAO(),
		featureEnvironmentDAO: db.NewFeatureEnvironmentDAO(),
		featureDAO:            db.NewFeatureDAO(),
	}
}
