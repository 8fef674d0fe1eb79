package middleware

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"
	"github.com/yi-nology/flagscope/pkg/common"
)

const requestIDHeader = "X-Request-Id"

// RequestID returns a middleware that assigns each request a correlation
// ID, honoring one supplied by the caller, and echoes it on the response.
func RequestID() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		id := string(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		ctx = common.ContextWithRequestID(ctx, id)
		c.Response.Header.Set(requestIDHeader, id)
		c.Next(ctx)
	}
}
