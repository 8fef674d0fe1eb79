package middleware

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/yi-nology/flagscope/pkg/common"
)

// Auth returns a middleware that extracts user information from request
// headers and adds it to the context. This middleware does NOT enforce
// authentication, it only enriches the context with user info if present.
func Auth() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if userHeader := c.GetHeader("X-User-Id"); len(userHeader) > 0 {
			if id, err := strconv.Atoi(string(userHeader)); err == nil && id > 0 {
				ctx = common.ContextWithUserID(ctx, id)
			}
		}
		c.Next(ctx)
	}
}

// RequireAdmin returns a middleware gating mutating admin endpoints.
// Requests without a valid X-User-Id header are rejected with 401. When
// enabled is false every request passes, which is only meant for local
// development.
func RequireAdmin(enabled bool) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if !enabled {
			c.Next(ctx)
			return
		}

		userHeader := c.GetHeader("X-User-Id")
		if len(userHeader) == 0 {
			c.JSON(401, map[string]any{
				"code":  401,
				"error": "authentication required",
				"msg":   "missing X-User-Id header",
			})
			c.Abort()
			return
		}

		id, err := strconv.Atoi(string(userHeader))
		if err != nil || id <= 0 {
			c.JSON(401, map[string]any{
				"code":  401,
				"error": "authentication required",
				"msg":   "invalid X-User-Id header",
			})
			c.Abort()
			return
		}

		ctx = common.ContextWithUserID(ctx, id)
		c.Next(ctx)
	}
}
