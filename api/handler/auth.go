package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/eduverse/backend/api/transport"
	"github.com/eduverse/backend/domain"
	"github.com/eduverse/backend/pkg/httpcontext"
	"github.com/eduverse/backend/usecase/onboarding"
	sessionUC "github.com/eduverse/backend/usecase/session"
)

type AuthHandler struct {
	baseHandler
	sessions *sessionUC.Manager
	flow     *onboarding.Flow
}

func NewAuthHandler(sessions *sessionUC.Manager, flow *onboarding.Flow, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		sessions:    sessions,
		flow:        flow,
	}
}

// @Summary Sign in with email, password and role
// @Tags auth
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Email == "" {
		h.respondBadRequest(ctx, "invalid payload")
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.sessions.Login(stdCtx, domain.Credentials{
		Email:      req.Email,
		Password:   req.Password,
		Role:       role,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}

// @Summary Register a new account
// @Tags auth
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	var req transport.RegisterRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondBadRequest(ctx, "invalid payload")
		return
	}
	draft, err := draftFromRequest(req)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.sessions.Register(stdCtx, draft)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, user)
}

// @Summary End the current session
// @Tags auth
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.sessions.Logout(stdCtx); err != nil {
		h.respondError(ctx, err)
		return
	}
	if h.flow != nil {
		h.flow.Reset()
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Report the current session state
// @Tags auth
// @Router /api/v1/auth/session [get]
func (h *AuthHandler) Session(ctx *fasthttp.RequestCtx) {
	resp := transport.SessionResponse{
		Authenticated: h.sessions.IsAuthenticated(),
		Loading:       h.sessions.IsLoading(),
	}
	if user := h.sessions.CurrentUser(); user != nil {
		resp.User = user
	}
	h.respondSuccess(ctx, http.StatusOK, resp)
}

// draftFromRequest builds a registration draft, decoding the profile
// payload against the requested role.
func draftFromRequest(req transport.RegisterRequest) (*domain.RegistrationDraft, error) {
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	draft := &domain.RegistrationDraft{
		FullName:        req.FullName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            role,
	}
	if len(req.Profile) > 0 {
		profile, err := domain.UnmarshalProfile(role, req.Profile)
		if err != nil {
			return nil, err
		}
		draft.Profile = profile
	}
	return draft, nil
}
