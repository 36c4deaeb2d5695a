package middleware

import (
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/eduverse/backend/usecase/session"
)

// RequireSession refuses identity-scoped routes while no user is
// authenticated. There is no token or permission model: presence of the
// current session record is the entire check.
func RequireSession(sessions *session.Manager, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			user := sessions.CurrentUser()
			if user == nil {
				logger.Debug("unauthenticated request refused",
					zap.String("path", string(ctx.Path())))
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}
			ctx.Request.Header.Set("X-User-ID", user.ID)
			next(ctx)
		}
	}
}
