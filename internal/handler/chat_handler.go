package handler

import (
	"net/http"

	"github.com/Eursukkul/nexo-service/internal/dto"
	"github.com/Eursukkul/nexo-service/internal/service"
	"github.com/labstack/echo/v4"
)

type ChatHandler struct {
	svc service.ChatService
}

func NewChatHandler(svc service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

func (h *ChatHandler) RegisterRoutes(e *echo.Echo, mw Middlewares) {
	e.POST("/chat/message", h.SendMessage, mw.Auth...)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req dto.ChatRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	reply, err := h.svc.Send(c.Request().Context(), req.Message, req.Model)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ChatResponse{Response: reply.Response, Model: reply.Model})
}
