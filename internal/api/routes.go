package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/suaralabs/suara/domain"
	"github.com/suaralabs/suara/usecase"
)

// InitRoutes wires the HTTP surface: the chat pipeline, the cached audio
// files, availability lookups and a health probe. availabilityService may
// be nil when the planningboard upstream is not configured.
func InitRoutes(
	e *echo.Echo,
	chatService *usecase.ChatService,
	availabilityService *usecase.AvailabilityService,
	audioDir string,
	logger *zap.Logger,
) {
	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "suara-server",
		})
	})

	e.GET("/chat", func(c echo.Context) error {
		return handleChat(c, chatService, logger)
	})

	// Cached artifacts are plain files under the cache directory.
	e.Static("/audio", audioDir)

	e.GET("/availability", func(c echo.Context) error {
		return handleAvailability(c, availabilityService, logger)
	})
}

func handleChat(c echo.Context, chatService *usecase.ChatService, logger *zap.Logger) error {
	prompt := c.QueryParam("prompt")

	response, err := chatService.Handle(c.Request().Context(), prompt)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyPrompt) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "prompt is required"})
		}
		if domain.IsUpstream(err) {
			logger.Error("Chat pipeline failed", zap.Error(err))
			return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "upstream service failure"})
		}
		logger.Error("Unexpected chat error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusOK, response)
}

func handleAvailability(c echo.Context, availabilityService *usecase.AvailabilityService, logger *zap.Logger) error {
	if availabilityService == nil {
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "availability is not configured"})
	}

	practice := c.QueryParam("practice")
	fromDate := c.QueryParam("from_date")
	toDate := c.QueryParam("to_date")

	if practice == "" || fromDate == "" || toDate == "" {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "Parameters practice, from_date, and to_date are mandatory.",
		})
	}

	allocations, err := availabilityService.Check(c.Request().Context(), practice, fromDate, toDate)
	if err != nil {
		logger.Error("Availability lookup failed", zap.Error(err))
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "upstream service failure"})
	}

	return c.JSON(http.StatusOK, allocations)
}
