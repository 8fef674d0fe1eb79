package middleware

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/yi-nology/flagscope/pkg/config"
)

const (
	defaultAllowMethods = "GET,POST,PUT,DELETE,OPTIONS"
	// The admin gate authenticates via X-User-Id, so browsers must be
	// allowed to send it on cross-origin requests.
	defaultAllowHeaders = "Content-Type,X-User-Id,X-Request-Id"
)

// CORS returns a middleware that handles Cross-Origin Resource Sharing for
// the admin API. It answers preflight requests directly and exposes the
// request correlation header on every response.
func CORS(cfg *config.CORSConfig) app.HandlerFunc {
	policy := corsPolicy{
		origin:  "*",
		methods: defaultAllowMethods,
		headers: defaultAllowHeaders,
	}
	if cfg != nil {
		if cfg.AllowOrigin != "" {
			policy.origin = cfg.AllowOrigin
		}
		if cfg.AllowMethods != "" {
			policy.methods = cfg.AllowMethods
		}
		if cfg.AllowHeaders != "" {
			policy.headers = cfg.AllowHeaders
		}
		policy.credentials = cfg.AllowCredentials
	}

	return func(ctx context.Context, c *app.RequestContext) {
		policy.apply(c)
		if string(c.Request.Method()) == consts.MethodOptions {
			c.AbortWithStatus(consts.StatusNoContent)
			return
		}
		c.Next(ctx)
	}
}

type corsPolicy struct {
	origin      string
	methods     string
	headers     string
	credentials bool
}

func (p corsPolicy) apply(c *app.RequestContext) {
	h := &c.Response.Header
	h.Set("Access-Control-Allow-Origin", p.origin)
	h.Set("Access-Control-Allow-Methods", p.methods)
	h.Set("Access-Control-Allow-Headers", p.headers)
	h.Set("Access-Control-Expose-Headers", "X-Request-Id")
	if p.credentials {
		h.Set("Access-Control-Allow-Credentials", "true")
	}
	if p.origin != "*" {
		h.Set("Vary", "Origin")
	}
}
