package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homeservices/booking-app/internal/api/metrics"
	"github.com/homeservices/booking-app/internal/core/domain"
	"github.com/homeservices/booking-app/internal/core/navigation"
	"github.com/homeservices/booking-app/internal/core/ports"
	"github.com/homeservices/booking-app/internal/infrastructure/device"
)

// ChatHandler serves the chat screen. Attachments picked by the view are
// handed to the device shims through the request context.
type ChatHandler struct {
	chat ports.ChatService
	home ports.HomeService
	nav  *Navigator
}

func NewChatHandler(chat ports.ChatService, home ports.HomeService, nav *Navigator) *ChatHandler {
	return &ChatHandler{chat: chat, home: home, nav: nav}
}

// Open starts a conversation with the provider of a service.
func (h *ChatHandler) Open(c echo.Context) error {
	var req openChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	name := ""
	if req.ServiceID != "" {
		svc, ok := h.home.Service(req.ServiceID)
		if !ok {
			return domain.ErrServiceNotFound
		}
		name = svc.Name
	}

	conv := h.chat.Open(name)
	entry, err := h.nav.Go(navigation.RouteChat, navigation.Params{
		"conversationId": conv.ID,
		"serviceName":    conv.ServiceName,
	})
	if err != nil {
		return err
	}
	return h.nav.respond(c, http.StatusCreated, entry, conv)
}

func (h *ChatHandler) Messages(c echo.Context) error {
	msgs, err := h.chat.Messages(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}

func (h *ChatHandler) Send(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	msg, err := h.chat.SendMessage(c.Request().Context(), c.Param("id"), req.Text)
	return h.appended(c, msg, err)
}

func (h *ChatHandler) Media(c echo.Context) error {
	var req mediaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	if req.URI != "" {
		ctx = device.WithMediaAsset(ctx, ports.MediaAsset{URI: req.URI, Kind: ports.MediaKind(req.Kind)})
	}
	msg, err := h.chat.PickMedia(ctx, c.Param("id"))
	return h.appended(c, msg, err)
}

func (h *ChatHandler) Document(c echo.Context) error {
	var req documentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	if req.URI != "" {
		ctx = device.WithDocumentAsset(ctx, ports.DocumentAsset{URI: req.URI, Name: req.Name})
	}
	msg, err := h.chat.PickDocument(ctx, c.Param("id"))
	return h.appended(c, msg, err)
}

func (h *ChatHandler) StartRecording(c echo.Context) error {
	if err := h.chat.StartRecording(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ChatHandler) StopRecording(c echo.Context) error {
	var req stopRecordingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	if req.URI != "" {
		ctx = device.WithRecordingURI(ctx, req.URI)
	}
	msg, err := h.chat.StopRecording(ctx, c.Param("id"))
	return h.appended(c, msg, err)
}

// appended renders the outcome of an append action. A nil message means
// the input was ignored.
func (h *ChatHandler) appended(c echo.Context, msg *domain.ChatMessage, err error) error {
	if err != nil {
		return err
	}
	if msg == nil {
		return c.NoContent(http.StatusNoContent)
	}
	metrics.ChatMessagesTotal.WithLabelValues(string(msg.Type)).Inc()
	return c.JSON(http.StatusCreated, msg)
}
