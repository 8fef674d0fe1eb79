package handler

import (
	"context"
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/yi-nology/flagscope/biz/model/api"
	"github.com/yi-nology/flagscope/biz/service"
)

// EnvironmentHandler maps the admin environments API onto the service layer.
type EnvironmentHandler struct {
	service *service.Service
}

func NewEnvironmentHandler(service *service.Service) *EnvironmentHandler {
	return &EnvironmentHandler{service: service}
}

// GetAll lists every environment in display order.
func (h *EnvironmentHandler) GetAll(ctx context.Context, c *app.RequestContext) {
	environments, err := h.service.ListEnvironments(ctx)
	if err != nil {
		handleServiceError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, api.EnvironmentsResponse{
		Version:      1,
		Environments: environments,
	})
}

// Create validates name uniqueness and shape, then persists the environment.
func (h *EnvironmentHandler) Create(ctx context.Context, c *app.RequestContext) {
	var req api.CreateEnvironmentRequest
	if err := c.BindJSON(&req); err != nil {
		respondError(c, consts.StatusBadRequest, err)
		return
	}
	if err := h.service.ValidateUniqueName(ctx, req.Name); err != nil {
		handleServiceError(ctx, c, err)
		return
	}
	environment, err := h.service.CreateEnvironment(ctx, &req)
	if err != nil {
		handleServiceError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusCreated, environment)
}

// ValidateName answers whether a name is still available.
func (h *EnvironmentHandler) ValidateName(ctx context.Context, c *app.RequestContext) {
	var req api.ValidateEnvironmentNameRequest
	if err := c.BindJSON(&req); err != nil {
		respondError(c, consts.StatusBadRequest, err)
		return
	}
	if req.Name == "" {
		respondError(c, consts.StatusBadRequest, errors.New("name is required"))
		return
	}
	if err := h.service.ValidateUniqueName(ctx, req.Name); err != nil {
		handleServiceError(ctx, c, err)
		return
	}
	respondOK(c)
}

// UpdateSortOrder applies a name-to-position map.
func (h *EnvironmentHandler) UpdateSortOrder(ctx context.Context, c *app.RequestContext) {
	var order api.SortOrderMap
	if err := c.BindJSON(&order); err != nil {
		respondError(c, consts.StatusBadRequest, err)
		return
	}
	if err := h.service.UpdateSortOrder(ctx, order); err != nil {
		handleServiceError(ctx, c, err)
		return
	}
	respondOK(c)
}

// Get fetches a single environment by name.
func (h *EnvironmentHandler) Get(ctx context.Context, c *app.RequestContext) {
	environment, err := h.service.GetEnvironment(ctx, c.Param("name"))
	if err != nil {
		handleServiceError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, environment)
}

// Update patches display name and type of an existing environment.
func (h *EnvironmentHandler) Update(ctx context.Context, c *app.RequestContext) {
	var req api.UpdateEnvironmentRequest
	if err := c.BindJSON(&req); err != nil {
		respondError(c, consts.StatusBadRequest, err)
		return
	}
	environment, err := h.service.UpdateEnvironment(ctx, c.Param("name"), &req)
	if err != nil {
		handleServiceError(ctx, c, err)
		return
	}
	c.JSON(consts.StatusOK, environment)
}

// Delete removes an environment. Protected environments are a silent no-op.
func (h *EnvironmentHandler) Delete(ctx context.Context, c *app.RequestContext) {
	if err := h.service.DeleteEnvironment(ctx, c.Param("name")); err != nil {
		handleServiceError(ctx, c, err)
		return
	}
	respondOK(c)
}

// ToggleOn enables an environment.
func (h *EnvironmentHandler) ToggleOn(ctx context.Context, c *app.RequestContext) {
	h.toggle(ctx, c, true)
}

// ToggleOff disables an environment.
func (h *EnvironmentHandler) ToggleOff(ctx context.Context, c *app.RequestContext) {
	h.toggle(ctx, c, false)
}

func (h *EnvironmentHandler) toggle(ctx context.Context, c *app.RequestContext, enabled bool) {
	if err := h.service.ToggleEnvironment(ctx, c.Param("name"), enabled); err != nil {
		handleServiceError(ctx, c, err)
		return
	}
	c.Status(consts.StatusNoContent)
}
