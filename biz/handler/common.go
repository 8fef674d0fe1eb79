package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/yi-nology/flagscope/biz/service"
	"github.com/yi-nology/flagscope/pkg/common"
)

// Ping is a trivial liveness endpoint.
func Ping(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, common.CommonResponse{Code: consts.StatusOK, Msg: "pong"})
}

func respondOK(c *app.RequestContext) {
	c.JSON(consts.StatusOK, common.CommonResponse{
		Code: consts.StatusOK,
		Msg:  http.StatusText(consts.StatusOK),
	})
}

func respondError(c *app.RequestContext, status int, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, common.CommonResponse{
		Code:  status,
		Msg:   msg,
		Error: msg,
	})
}

// handleServiceError translates the service error taxonomy into HTTP status
// codes. Unclassified errors are logged and answered with a generic 500
// body; internal error text never reaches the client.
func handleServiceError(ctx context.Context, c *app.RequestContext, err error) {
	switch {
	case errors.Is(err, service.ErrEnvironmentNotFound),
		errors.Is(err, service.ErrProjectNotFound):
		respondError(c, consts.StatusNotFound, err)
	case errors.Is(err, service.ErrEnvironmentNameExists),
		errors.Is(err, service.ErrProjectEnvironmentExists),
		errors.Is(err, service.ErrProjectIDExists),
		errors.Is(err, service.ErrFeatureNameExists):
		respondError(c, consts.StatusConflict, err)
	case errors.Is(err, service.ErrValidation):
		respondError(c, consts.StatusBadRequest, err)
	default:
		hlog.CtxErrorf(ctx, "internal error: %v", err)
		c.JSON(consts.StatusInternalServerError, common.CommonResponse{
			Code: consts.StatusInternalServerError,
			Msg:  "internal error",
		})
	}
}
