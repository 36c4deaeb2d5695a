package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/eduverse/backend/api/transport"
	"github.com/eduverse/backend/domain"
	"github.com/eduverse/backend/pkg/httpcontext"
	mailboxUC "github.com/eduverse/backend/usecase/mailbox"
	sessionUC "github.com/eduverse/backend/usecase/session"
)

// NotificationHandler exposes the contact-message mailbox for the current
// session's identity.
type NotificationHandler struct {
	baseHandler
	mailbox  *mailboxUC.UseCase
	sessions *sessionUC.Manager
}

func NewNotificationHandler(mailbox *mailboxUC.UseCase, sessions *sessionUC.Manager, adapter *httpcontext.Adapter, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		baseHandler: newBaseHandler(adapter, logger),
		mailbox:     mailbox,
		sessions:    sessions,
	}
}

// @Summary Send a contact message to another identity
// @Tags notifications
// @Router /api/v1/notifications [post]
func (h *NotificationHandler) Send(ctx *fasthttp.RequestCtx) {
	sender := h.sessions.CurrentUser()
	if sender == nil {
		h.respondError(ctx, domain.ErrNoSession)
		return
	}

	var req transport.SendNotificationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondBadRequest(ctx, "invalid payload")
		return
	}
	toRole, err := domain.ParseRole(req.ToRole)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	msg, err := h.mailbox.Send(stdCtx, domain.NotificationMessage{
		To:      domain.Identity{Name: req.ToName, Role: toRole},
		From:    domain.Identity{Name: sender.FullName, Role: sender.Role},
		Subject: req.Subject,
		Body:    req.Body,
		Channel: domain.Channel(req.Channel),
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, msg)
}

// @Summary Read the current identity's inbox
// @Tags notifications
// @Router /api/v1/notifications [get]
func (h *NotificationHandler) Inbox(ctx *fasthttp.RequestCtx) {
	view, ok := h.openView(ctx)
	if !ok {
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.InboxResponse{
		Messages: view.Messages,
		Unread:   view.Unread(),
	})
}

// @Summary Mark the inbox as read
// @Tags notifications
// @Router /api/v1/notifications/read [post]
func (h *NotificationHandler) MarkAsRead(ctx *fasthttp.RequestCtx) {
	view, ok := h.openView(ctx)
	if !ok {
		return
	}
	view.MarkAsRead()
	h.respondSuccess(ctx, http.StatusOK, transport.InboxResponse{
		Messages: view.Messages,
		Unread:   view.Unread(),
	})
}

func (h *NotificationHandler) openView(ctx *fasthttp.RequestCtx) (*mailboxUC.View, bool) {
	user := h.sessions.CurrentUser()
	if user == nil {
		h.respondError(ctx, domain.ErrNoSession)
		return nil, false
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.mailbox.Open(stdCtx, domain.Identity{Name: user.FullName, Role: user.Role})
	if err != nil {
		h.respondError(ctx, err)
		return nil, false
	}
	return view, true
}
