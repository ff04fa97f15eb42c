package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/uniadvisor/internal/app/catalog"
	"github.com/yigit/uniadvisor/internal/app/models"
	"github.com/yigit/uniadvisor/internal/app/models/dto"
	"github.com/yigit/uniadvisor/internal/app/repositories"
	"github.com/yigit/uniadvisor/internal/pkg/apperrors"
	"github.com/yigit/uniadvisor/internal/pkg/helpers"
	"github.com/yigit/uniadvisor/internal/pkg/websocket"
)

// ProfileService reads and edits a user's profile and transcript
type ProfileService struct {
	profileRepo    repositories.ProfileRepository
	transcriptRepo repositories.TranscriptRepository
	notifier       Notifier
	logger         zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	profileRepo repositories.ProfileRepository,
	transcriptRepo repositories.TranscriptRepository,
	notifier Notifier,
	logger zerolog.Logger,
) *ProfileService {
	return &ProfileService{
		profileRepo:    profileRepo,
		transcriptRepo: transcriptRepo,
		notifier:       notifierOrNop(notifier),
		logger:         logger,
	}
}

// GetProfile returns the profile, if any, and one page of the transcript
func (s *ProfileService) GetProfile(ctx context.Context, userID string, page, size int) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	total, err := s.transcriptRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count chat turns: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	chats, err := s.transcriptRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat turns: %w", err)
	}
	if chats == nil {
		chats = []*models.ChatTurn{}
	}

	return &dto.ProfileResponse{
		UserID:     userID,
		Data:       profile,
		Chats:      chats,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// GetChat returns one page of a single chat session
func (s *ProfileService) GetChat(ctx context.Context, userID, chatID string, page, size int) (*dto.ChatTranscriptResponse, error) {
	total, err := s.transcriptRepo.CountByChat(ctx, userID, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to count chat turns: %w", err)
	}
	if total == 0 {
		return nil, apperrors.NewResourceNotFoundError("Chat not found")
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	chats, err := s.transcriptRepo.ListByChat(ctx, userID, chatID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat turns: %w", err)
	}

	return &dto.ChatTranscriptResponse{
		ChatID:     chatID,
		Chats:      chats,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// UpdateProfile applies a manual partial update. University names are
// normalized to catalog codes.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*models.UserProfile, error) {
	patch := req.ToPatch()
	if patch.IsZero() {
		return nil, apperrors.NewBadRequestError("No profile fields supplied")
	}

	if patch.University != nil {
		code, ok := catalog.Resolve(*patch.University)
		if !ok {
			return nil, apperrors.NewValidationError("Unknown university", map[string]interface{}{
				"university": fmt.Sprintf("must be one of %v", catalog.Universities),
			})
		}
		patch.University = &code
	}

	profile, err := s.profileRepo.Upsert(ctx, userID, patch)
	if err != nil {
		s.logger.Error().Err(err).Str("userID", userID).Msg("Failed to update profile")
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.notifier.SendToUser(websocket.NewMessage(userID, websocket.TypeProfileUpdated, profile))
	s.logger.Info().Str("userID", userID).Msg("Profile updated")
	return profile, nil
}
