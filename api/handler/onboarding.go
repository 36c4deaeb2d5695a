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
)

// OnboardingHandler exposes the pre-authentication screen sequencer.
type OnboardingHandler struct {
	baseHandler
	flow *onboarding.Flow
}

func NewOnboardingHandler(flow *onboarding.Flow, adapter *httpcontext.Adapter, logger *zap.Logger) *OnboardingHandler {
	return &OnboardingHandler{
		baseHandler: newBaseHandler(adapter, logger),
		flow:        flow,
	}
}

// @Summary Current onboarding step
// @Tags onboarding
// @Router /api/v1/onboarding [get]
func (h *OnboardingHandler) GetState(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.flow.State())
}

// @Summary Switch from login to registration
// @Tags onboarding
// @Router /api/v1/onboarding/register-mode [post]
func (h *OnboardingHandler) RegisterMode(ctx *fasthttp.RequestCtx) {
	if err := h.flow.SwitchToRegister(); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, h.flow.State())
}

// @Summary Choose a role and open registration
// @Tags onboarding
// @Router /api/v1/onboarding/role [post]
func (h *OnboardingHandler) SelectRole(ctx *fasthttp.RequestCtx) {
	var req transport.SelectRoleRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondBadRequest(ctx, "invalid payload")
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if err := h.flow.SelectRole(role); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, h.flow.State())
}

// @Summary Update the registration draft
// @Tags onboarding
// @Router /api/v1/onboarding/draft [post]
func (h *OnboardingHandler) UpdateDraft(ctx *fasthttp.RequestCtx) {
	var req transport.DraftRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondBadRequest(ctx, "invalid payload")
		return
	}

	draft := domain.RegistrationDraft{
		FullName:        req.FullName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	}
	// Decode the profile only once a role has been pinned; before that
	// the flow rejects the update as an invalid transition.
	if state := h.flow.State(); len(req.Profile) > 0 && state.Role != "" {
		profile, err := domain.UnmarshalProfile(state.Role, req.Profile)
		if err != nil {
			h.respondError(ctx, err)
			return
		}
		draft.Profile = profile
	}

	if err := h.flow.UpdateDraft(draft); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, h.flow.State())
}

// @Summary Go back from registration
// @Tags onboarding
// @Router /api/v1/onboarding/back [post]
func (h *OnboardingHandler) Back(ctx *fasthttp.RequestCtx) {
	var req transport.BackRequest
	// An empty body means the default back target.
	_ = json.Unmarshal(ctx.PostBody(), &req)

	var err error
	if req.Target == "login" {
		err = h.flow.BackToLogin()
	} else {
		err = h.flow.Back()
	}
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, h.flow.State())
}

// @Summary Submit the registration draft
// @Tags onboarding
// @Router /api/v1/onboarding/submit [post]
func (h *OnboardingHandler) Submit(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.flow.Submit(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, user)
}
