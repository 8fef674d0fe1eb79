package handler

import (
	"context"
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/yi-nology/flagscope/biz/model/api"
	"github.com/yi-nology/flagscope/biz/service"
)

// ProjectHandler exposes the project side of environment associations.
type ProjectHandler struct {
	service *service.Service
}

func NewProjectHandler(service *service.Service) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// Create registers a new project.
func (h *ProjectHandler) Create(ctx context.Context, c *app.RequestContext) {
	var req api.CreateProjectRequest
	if err := c.BindJSON(&req); err != nil {
		respondError(c, consts.StatusBadRequest, err)
		return
	}
	if err := h.service.AddProject(ctx, &req); err != nil {
		handleServiceError(ctx, c, err)
		return
	}
	c.Status(consts.StatusCreated)
}

// ConnectEnvironment opts the project into an environment, cascading into
// its features.
func (h *ProjectHandler) ConnectEnvironment(ctx context.Context, c *app.RequestContext) {
	var req api.ConnectEnvironmentRequest
	if err := c.BindJSON(&req); err != nil {
		respondError(c, consts.StatusBadRequest, err)
		return
	}
	if req.Environment == "" {
		respondError(c, consts.StatusBadRequest, errors.New("environment is required"))
		return
	}
	if err := h.service.ConnectProjectToEnvironment(ctx, req.Environment, c.Param("projectId")); err != nil {
		handleServiceError(ctx, c, err)
		return
	}
	respondOK(c)
}

// DisconnectEnvironment opts the project out of an environment.
func (h *ProjectHandler) DisconnectEnvironment(ctx context.Context, c *app.RequestContext) {
	if err := h.service.RemoveEnvironmentFromProject(ctx, c.Param("name"), c.Param("projectId")); err != nil {
		handleServiceError(ctx, c, err)
		return
	}
	respondOK(c)
}

// CreateFeature adds a feature to the project and links it into every
// connected environment.
func (h *ProjectHandler) CreateFeature(ctx context.Context, c *app.RequestContext) {
	var req api.CreateFeatureRequest
	if err := c.BindJSON(&req); err != nil {
		respondError(c, consts.StatusBadRequest, err)
		return
	}
	if err := h.service.AddFeature(ctx, c.Param("projectId"), req.Name); err != nil {
		handleServiceError(ctx, c, err)
		return
	}
	c.Status(consts.StatusCreated)
}
