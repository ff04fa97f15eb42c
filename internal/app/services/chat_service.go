package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/uniadvisor/internal/app/catalog"
	"github.com/yigit/uniadvisor/internal/app/models"
	"github.com/yigit/uniadvisor/internal/app/models/dto"
	"github.com/yigit/uniadvisor/internal/app/repositories"
	"github.com/yigit/uniadvisor/internal/app/visualization"
	"github.com/yigit/uniadvisor/internal/llm"
	"github.com/yigit/uniadvisor/internal/pkg/apperrors"
	"github.com/yigit/uniadvisor/internal/pkg/validation"
	"github.com/yigit/uniadvisor/internal/pkg/websocket"
)

// ErrProviderUnavailable is returned when a turn needs the model but none is configured
var ErrProviderUnavailable = fmt.Errorf("llm provider unavailable: %w", apperrors.ErrServiceUnavailable)

const (
	// DefaultHistoryLimit is the number of prior turns sent to the model
	DefaultHistoryLimit = 50
	// degradedCourseLimit caps the course path built without a model
	degradedCourseLimit = 6
)

// ChatService defines the interface for chat operations
type ChatService interface {
	Chat(ctx context.Context, userID string, req *dto.ChatRequest) (*dto.ChatResponse, error)
	Onboard(ctx context.Context, userID string, req *dto.OnboardRequest) (*dto.ChatResponse, error)
}

// ChatConfig tunes the orchestrator
type ChatConfig struct {
	HistoryLimit int
	MaxTokens    int
}

// chatServiceImpl implements ChatService
type chatServiceImpl struct {
	profileRepo    repositories.ProfileRepository
	transcriptRepo repositories.TranscriptRepository
	catalogs       *catalog.Registry
	provider       llm.Provider
	notifier       Notifier
	config         ChatConfig
	logger         zerolog.Logger
}

// NewChatService creates a new ChatService. A nil provider runs the service
// in degraded mode: course questions are answered from the catalog and every
// other turn fails with ErrProviderUnavailable.
func NewChatService(
	profileRepo repositories.ProfileRepository,
	transcriptRepo repositories.TranscriptRepository,
	catalogs *catalog.Registry,
	provider llm.Provider,
	notifier Notifier,
	config ChatConfig,
	logger zerolog.Logger,
) ChatService {
	if config.HistoryLimit <= 0 {
		config.HistoryLimit = DefaultHistoryLimit
	}
	return &chatServiceImpl{
		profileRepo:    profileRepo,
		transcriptRepo: transcriptRepo,
		catalogs:       catalogs,
		provider:       provider,
		notifier:       notifierOrNop(notifier),
		config:         config,
		logger:         logger,
	}
}

// chatTurn is the per-request state of one exchange
type chatTurn struct {
	userID  string
	message string
	chatID  string
	intent  Intent
	profile *models.UserProfile
	history []*models.ChatTurn
	catalog *catalog.Catalog

	// set while answering
	tool           string
	courses        []catalog.Course
	updatedProfile *models.UserProfile
}

// toolOutcome is the result of running one tool call
type toolOutcome struct {
	result   string
	reprompt string
}

// Chat answers one message
func (s *chatServiceImpl) Chat(ctx context.Context, userID string, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, apperrors.NewValidationError("Message is required", map[string]interface{}{
			"message": "message is required",
		})
	}
	if err := checkMessageLength(req.Message); err != nil {
		return nil, err
	}
	return s.respond(ctx, userID, req.Message, req.ChatID, false)
}

// Onboard answers one onboarding message. The first message may be empty.
func (s *chatServiceImpl) Onboard(ctx context.Context, userID string, req *dto.OnboardRequest) (*dto.ChatResponse, error) {
	if err := checkMessageLength(req.Message); err != nil {
		return nil, err
	}
	return s.respond(ctx, userID, req.Message, "", true)
}

func checkMessageLength(message string) error {
	if utf8.RuneCountInString(message) > validation.MessageMaxLength {
		return apperrors.NewValidationError("Message is too long", map[string]interface{}{
			"message": fmt.Sprintf("message must be at most %d characters", validation.MessageMaxLength),
		})
	}
	return nil
}

func (s *chatServiceImpl) respond(ctx context.Context, userID, message, chatID string, onboarding bool) (*dto.ChatResponse, error) {
	t, err := s.buildTurn(ctx, userID, message, chatID, onboarding)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("userID", userID).
		Str("chatID", t.chatID).
		Str("intent", t.intent.String()).
		Int("history", len(t.history)).
		Msg("Handling chat turn")

	var resp *dto.ChatResponse
	switch {
	case t.intent == IntentDegreePlan:
		resp = s.degreePlan(t)
	case s.provider == nil:
		resp, err = s.degraded(t)
	default:
		resp, err = s.converse(ctx, t)
	}
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(resp.Reply) == "" {
		resp.Reply = emptyReplyFallback
	}
	resp.ChatID = t.chatID

	if err := s.appendTranscript(ctx, t, resp.Reply); err != nil {
		return nil, err
	}

	if t.updatedProfile != nil {
		s.notifier.SendToUser(websocket.NewMessage(userID, websocket.TypeProfileUpdated, t.updatedProfile))
	}
	s.notifier.SendToUser(websocket.NewMessage(userID, websocket.TypeChatReply, resp))

	return resp, nil
}

// buildTurn loads the profile, picks the chat id and loads that session's history
func (s *chatServiceImpl) buildTurn(ctx context.Context, userID, message, chatID string, onboarding bool) (*chatTurn, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	latest, err := s.transcriptRepo.LatestChatID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat id: %w", err)
	}
	firstContact := latest == ""

	if chatID == "" {
		chatID = latest
	}
	if chatID == "" {
		chatID = uuid.New().String()
	}

	history, err := s.transcriptRepo.RecentByChat(ctx, userID, chatID, s.config.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}

	intent := IntentOnboarding
	if !onboarding {
		intent = ClassifyIntent(message, firstContact && profile.IsEmpty())
	}

	return &chatTurn{
		userID:  userID,
		message: message,
		chatID:  chatID,
		intent:  intent,
		profile: profile,
		history: history,
		catalog: s.catalogFor(profile),
	}, nil
}

func (s *chatServiceImpl) catalogFor(profile *models.UserProfile) *catalog.Catalog {
	university := ""
	if profile != nil {
		university = profile.University
	}
	c, err := s.catalogs.ForUniversity(university)
	if err != nil {
		s.logger.Warn().Err(err).Str("university", university).Msg("No catalog available")
		return nil
	}
	return c
}

// degreePlan answers without the model
func (s *chatServiceImpl) degreePlan(t *chatTurn) *dto.ChatResponse {
	plan := visualization.BuildDegreePlan(t.catalog)
	return &dto.ChatResponse{
		Reply:             visualization.DegreePlanReply,
		VisualizationType: plan.Type,
		Data:              plan,
	}
}

// degraded answers course questions straight from the catalog
func (s *chatServiceImpl) degraded(t *chatTurn) (*dto.ChatResponse, error) {
	if t.intent != IntentVisualization && !IsCourseRequest(t.message) {
		return nil, ErrProviderUnavailable
	}

	courses := t.catalog.Lookup(MajorPrefix(ExtractDepartment(t.message)))
	resp := &dto.ChatResponse{Reply: catalog.Summary(courses)}
	if resp.Reply == "" {
		resp.Reply = coursesReplyFallback
	}

	if t.intent == IntentVisualization && len(courses) > 0 {
		if len(courses) > degradedCourseLimit {
			courses = courses[:degradedCourseLimit]
		}
		path := visualization.NewCoursePath(visualization.FromCatalog(courses, ""))
		resp.VisualizationType = path.Type
		resp.Data = path
	}
	return resp, nil
}

// converse queries the model, runs at most one tool and re-queries once
func (s *chatServiceImpl) converse(ctx context.Context, t *chatTurn) (*dto.ChatResponse, error) {
	messages := make([]llm.Message, 0, len(t.history)+3)
	for _, h := range t.history {
		if h.Role == models.RoleSystem {
			continue
		}
		messages = append(messages, llm.Message{Role: string(h.Role), Content: h.Message})
	}
	messages = append(messages,
		llm.Message{Role: llm.RoleSystem, Content: SystemPrompt(t.intent.Template(), t.profile, catalog.Universities)},
		llm.Message{Role: llm.RoleUser, Content: t.message},
	)

	first, err := s.provider.Complete(ctx, llm.Request{
		Messages:  messages,
		Tools:     ToolSpecs,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("provider completion failed: %w", err)
	}

	reply := first.Content
	if first.HasToolCalls() {
		call := first.ToolCalls[0]
		outcome, err := s.runTool(ctx, t, call)
		if err != nil {
			return nil, err
		}

		if outcome != nil {
			t.tool = call.Name
			messages = append(messages,
				llm.Message{Role: llm.RoleAssistant, Content: first.Content, ToolCalls: []llm.ToolCall{call}},
				llm.Message{Role: llm.RoleTool, ToolCallID: call.ID, ToolName: call.Name, Content: outcome.result},
				llm.Message{Role: llm.RoleSystem, Content: outcome.reprompt + t.message},
			)

			second, err := s.provider.Complete(ctx, llm.Request{
				Messages:  messages,
				MaxTokens: s.config.MaxTokens,
			})
			if err != nil {
				return nil, fmt.Errorf("provider follow-up completion failed: %w", err)
			}
			reply = second.Content
		}
	}

	resp := &dto.ChatResponse{Reply: reply, Tool: t.tool}
	s.attachVisualization(t, resp)
	return resp, nil
}

// runTool executes a tool call. A nil outcome means the call was unusable and
// is treated as if the model had answered in text.
func (s *chatServiceImpl) runTool(ctx context.Context, t *chatTurn, call llm.ToolCall) (*toolOutcome, error) {
	action := ParseToolAction(call.Name)
	log := s.logger.With().
		Str("userID", t.userID).
		Str("tool", call.Name).
		Logger()

	switch action {
	case ToolUpdateProfile:
		var args UpdateProfileArgs
		if err := decodeToolArgs(call.Arguments, &args); err != nil {
			log.Warn().Err(err).Str("arguments", call.Arguments).Msg("Ignoring invalid tool call")
			return nil, nil
		}
		patch, err := s.profilePatch(args)
		if err != nil {
			log.Warn().Err(err).Str("arguments", call.Arguments).Msg("Ignoring invalid tool call")
			return nil, nil
		}

		profile, err := s.profileRepo.Upsert(ctx, t.userID, patch)
		if err != nil {
			return nil, fmt.Errorf("failed to save profile from tool call: %w", err)
		}
		t.updatedProfile = profile
		log.Info().Msg("Profile updated from tool call")

		return &toolOutcome{
			result:   "Saved. " + profile.Summary(),
			reprompt: savedProfileReprompt,
		}, nil

	case ToolLookupCourses:
		var args LookupCoursesArgs
		if err := decodeToolArgs(call.Arguments, &args); err != nil {
			log.Warn().Err(err).Str("arguments", call.Arguments).Msg("Ignoring invalid tool call")
			return nil, nil
		}

		c := t.catalog
		if args.UniversityID != nil {
			code, err := s.catalogs.ByIndex(*args.UniversityID)
			if err != nil {
				log.Warn().Err(err).Msg("Ignoring invalid tool call")
				return nil, nil
			}
			if c, err = s.catalogs.Get(code); err != nil {
				log.Warn().Err(err).Str("university", code).Msg("Catalog requested by tool is not loaded")
				c = nil
			}
		}

		prefix := MajorPrefix(args.Major)
		courses := c.Lookup(prefix)
		t.courses = courses
		log.Debug().Str("prefix", prefix).Int("courses", len(courses)).Msg("Courses looked up")

		result := catalog.Summary(courses)
		if result == "" {
			result = fmt.Sprintf("No courses found with id prefix %s.", prefix)
		}
		return &toolOutcome{
			result:   result,
			reprompt: coursesReprompt,
		}, nil

	default:
		log.Warn().Msg("Ignoring unknown tool call")
		return nil, nil
	}
}

// profilePatch converts tool arguments into a profile patch
func (s *chatServiceImpl) profilePatch(args UpdateProfileArgs) (models.ProfilePatch, error) {
	patch := models.ProfilePatch{
		Major:     args.Major,
		IsStudent: args.IsStudent,
		Interests: args.Interests,
	}

	if args.UniversityID != nil {
		code, err := s.catalogs.ByIndex(*args.UniversityID)
		if err != nil {
			return patch, err
		}
		patch.University = &code
	}

	if args.Year != nil {
		year := int(*args.Year)
		patch.Year = &year
	} else if args.IsStudent != nil && !*args.IsStudent {
		year := models.YearFreshman
		patch.Year = &year
	}

	if patch.IsZero() {
		return patch, apperrors.NewBadRequestError("tool call carries no profile fields")
	}
	return patch, nil
}

// attachVisualization extracts an inline payload from the reply, or builds a
// course path for visualization turns
func (s *chatServiceImpl) attachVisualization(t *chatTurn, resp *dto.ChatResponse) {
	if payload, rest, ok := visualization.ParseMarker(resp.Reply); ok {
		resp.Reply = rest
		if resp.Reply == "" {
			resp.Reply = courseListHeading
		}
		resp.VisualizationType = visualization.PayloadType(payload)
		resp.Data = payload
		return
	}

	if t.intent != IntentVisualization {
		return
	}

	courses := t.courses
	if t.tool == "" {
		courses = t.catalog.Lookup(MajorPrefix(ExtractDepartment(t.message)))
	}
	if len(courses) == 0 {
		return
	}

	path := visualization.NewCoursePath(visualization.FromCatalog(courses, ""))
	resp.VisualizationType = path.Type
	resp.Data = path
}

// appendTranscript stores the exchange when the identity has a profile
func (s *chatServiceImpl) appendTranscript(ctx context.Context, t *chatTurn, reply string) error {
	if t.profile == nil && t.updatedProfile == nil {
		s.logger.Debug().Str("userID", t.userID).Msg("No profile, transcript not stored")
		return nil
	}

	turns := make([]*models.ChatTurn, 0, 2)
	if strings.TrimSpace(t.message) != "" {
		turns = append(turns, &models.ChatTurn{ChatID: t.chatID, UserID: t.userID, Role: models.RoleUser, Message: t.message})
	}
	turns = append(turns, &models.ChatTurn{ChatID: t.chatID, UserID: t.userID, Role: models.RoleAssistant, Message: reply})

	for _, turn := range turns {
		if err := s.transcriptRepo.Append(ctx, turn); err != nil {
			return fmt.Errorf("failed to append %s turn: %w", turn.Role, err)
		}
	}
	return nil
}
