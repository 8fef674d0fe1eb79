package middleware

import (
	"context"
	"runtime/debug"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// Recovery returns a middleware that recovers from panics and logs the
// error. The response body stays generic; the panic value never leaves the
// process.
func Recovery() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				stack := debug.Stack()
				hlog.CtxErrorf(ctx, "panic recovered: %v\n%s", err, string(stack))

				c.JSON(consts.StatusInternalServerError, map[string]any{
					"code": consts.StatusInternalServerError,
					"msg":  "internal error",
				})
				c.Abort()
			}
		}()

		c.Next(ctx)
	}
}
