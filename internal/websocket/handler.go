package websocket

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/suaralabs/suara/domain"
	"github.com/suaralabs/suara/usecase"
)

// Handler upgrades chat connections and runs each incoming prompt through
// the chat pipeline: one prompt frame in, one response frame out.
type Handler struct {
	chatService *usecase.ChatService
	upgrader    websocket.Upgrader
	logger      *zap.Logger
}

// promptFrame is what the browser sends per utterance.
type promptFrame struct {
	Prompt string `json:"prompt"`
}

// errorFrame mirrors the HTTP error body shape.
type errorFrame struct {
	Error string `json:"error"`
}

// NewHandler creates a websocket chat handler
func NewHandler(chatService *usecase.ChatService, logger *zap.Logger) *Handler {
	return &Handler{
		chatService: chatService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The browser front end is served from arbitrary origins
			// during development.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Serve handles one connection until the peer closes it. Pipeline errors
// are reported in-band as error frames; the connection stays open.
func (h *Handler) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", zap.Error(err))
		return err
	}
	defer conn.Close()

	sessionID := uuid.New().String()
	h.logger.Info("WebSocket chat session started", zap.String("sessionID", sessionID))

	for {
		var frame promptFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("WebSocket read failed",
					zap.String("sessionID", sessionID),
					zap.Error(err))
			}
			h.logger.Info("WebSocket chat session ended", zap.String("sessionID", sessionID))
			return nil
		}

		response, err := h.chatService.Handle(c.Request().Context(), frame.Prompt)
		if err != nil {
			message := "upstream service failure"
			if errors.Is(err, domain.ErrEmptyPrompt) {
				message = "prompt is required"
			} else {
				h.logger.Error("Chat pipeline failed",
					zap.String("sessionID", sessionID),
					zap.Error(err))
			}
			if err := conn.WriteJSON(errorFrame{Error: message}); err != nil {
				return nil
			}
			continue
		}

		if err := conn.WriteJSON(response); err != nil {
			h.logger.Warn("WebSocket write failed",
				zap.String("sessionID", sessionID),
				zap.Error(err))
			return nil
		}
	}
}
