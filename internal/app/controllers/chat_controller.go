package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/uniadvisor/internal/app/models/dto"
	"github.com/yigit/uniadvisor/internal/app/services"
	"github.com/yigit/uniadvisor/internal/middleware"
	"github.com/yigit/uniadvisor/internal/pkg/websocket"
)

// ChatController handles advising chat turns
type ChatController struct {
	chatService services.ChatService
	logger      zerolog.Logger
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService, logger zerolog.Logger) *ChatController {
	return &ChatController{
		chatService: chatService,
		logger:      logger,
	}
}

// Chat godoc
// @Summary Send a chat message
// @Description Answers one message with the advisor. Course and plan requests may carry a visualization payload.
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChatRequest true "Chat message"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 503 {object} dto.ErrorResponse "No LLM provider configured"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /chat [post]
func (c *ChatController) Chat(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.ChatRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.chatService.Chat(ctx.Request.Context(), userID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("userID", userID).Msg("Chat turn failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Onboard godoc
// @Summary Continue onboarding
// @Description Answers with the onboarding template. The first message may be empty.
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.OnboardRequest false "Onboarding answer"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 503 {object} dto.ErrorResponse "No LLM provider configured"
// @Router /onboard [post]
func (c *ChatController) Onboard(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.OnboardRequest
	if ctx.Request.ContentLength != 0 {
		if !middleware.BindJSON(ctx, &req) {
			return
		}
	}

	resp, err := c.chatService.Onboard(ctx.Request.Context(), userID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("userID", userID).Msg("Onboarding turn failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Responder answers websocket frames. The reply reaches the socket through
// the service's notifier.
func (c *ChatController) Responder() websocket.Responder {
	return func(ctx context.Context, userID string, frame *websocket.Frame) error {
		_, err := c.chatService.Chat(ctx, userID, &dto.ChatRequest{
			Message: frame.Message,
			ChatID:  frame.ChatID,
		})
		return err
	}
}

// requireUserID reads the authenticated identity or aborts with 401
func requireUserID(ctx *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		))
		return "", false
	}
	return userID, true
}
