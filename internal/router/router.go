package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/eduverse/backend/api/handler"
)

type Handlers struct {
	Auth          *apiHandler.AuthHandler
	Onboarding    *apiHandler.OnboardingHandler
	Notifications *apiHandler.NotificationHandler
	Health        *apiHandler.HealthHandler
}

func New(handlers Handlers, sessionGuard func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/register", handlers.Auth.Register)
	r.POST("/api/v1/auth/logout", handlers.Auth.Logout)
	r.GET("/api/v1/auth/session", handlers.Auth.Session)

	// Onboarding flow (pre-authentication, unguarded)
	r.GET("/api/v1/onboarding", handlers.Onboarding.GetState)
	r.POST("/api/v1/onboarding/register-mode", handlers.Onboarding.RegisterMode)
	r.POST("/api/v1/onboarding/role", handlers.Onboarding.SelectRole)
	r.POST("/api/v1/onboarding/draft", handlers.Onboarding.UpdateDraft)
	r.POST("/api/v1/onboarding/back", handlers.Onboarding.Back)
	r.POST("/api/v1/onboarding/submit", handlers.Onboarding.Submit)

	// Mailbox routes require an authenticated identity
	r.POST("/api/v1/notifications", sessionGuard(handlers.Notifications.Send))
	r.GET("/api/v1/notifications", sessionGuard(handlers.Notifications.Inbox))
	r.POST("/api/v1/notifications/read", sessionGuard(handlers.Notifications.MarkAsRead))

	return r
}
