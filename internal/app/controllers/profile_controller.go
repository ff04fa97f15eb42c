package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/uniadvisor/internal/app/models/dto"
	"github.com/yigit/uniadvisor/internal/app/services"
	"github.com/yigit/uniadvisor/internal/middleware"
	"github.com/yigit/uniadvisor/internal/pkg/helpers"
)

// ProfileController handles profile and transcript requests
type ProfileController struct {
	profileService *services.ProfileService
	logger         zerolog.Logger
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService *services.ProfileService, logger zerolog.Logger) *ProfileController {
	return &ProfileController{
		profileService: profileService,
		logger:         logger,
	}
}

// GetProfile godoc
// @Summary Get the current profile
// @Description Returns the caller's profile (null when none exists yet) and one page of the chat transcript, oldest first.
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	resp, err := c.profileService.GetProfile(ctx.Request.Context(), userID, page, size)
	if err != nil {
		c.logger.Error().Err(err).Str("userID", userID).Msg("Failed to load profile")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetChat godoc
// @Summary Get one chat session
// @Description Returns one page of a single chat session of the caller, oldest first.
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param chat_id path string true "Chat session id"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.ChatTranscriptResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Chat not found"
// @Router /chat/{chat_id} [get]
func (c *ProfileController) GetChat(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	chatID := ctx.Param("chat_id")
	page, size := helpers.ParsePaginationParams(ctx)
	resp, err := c.profileService.GetChat(ctx.Request.Context(), userID, chatID, page, size)
	if err != nil {
		c.logger.Warn().Err(err).Str("userID", userID).Str("chatID", chatID).Msg("Failed to load chat")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// UpdateProfile godoc
// @Summary Update the current profile
// @Description Partially updates the caller's profile. Omitted fields are kept. University accepts a code or a display name.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.UserProfile}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /profile [patch]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	profile, err := c.profileService.UpdateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("userID", userID).Msg("Profile update failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: profile})
}
