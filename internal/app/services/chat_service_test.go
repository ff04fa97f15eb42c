package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/uniadvisor/internal/app/models"
	"github.com/yigit/uniadvisor/internal/app/models/dto"
	"github.com/yigit/uniadvisor/internal/app/repositories"
	"github.com/yigit/uniadvisor/internal/app/visualization"
	"github.com/yigit/uniadvisor/internal/llm"
	"github.com/yigit/uniadvisor/internal/pkg/apperrors"
	"github.com/yigit/uniadvisor/internal/pkg/websocket"
)

type chatFixture struct {
	service  ChatService
	repos    *repositories.Repositories
	notifier *recordingNotifier
}

func newChatFixture(t *testing.T, provider llm.Provider) *chatFixture {
	t.Helper()
	repos := newTestRepos(t)
	notifier := &recordingNotifier{}
	service := NewChatService(
		repos.Profiles,
		repos.Transcripts,
		newTestRegistry(),
		provider,
		notifier,
		ChatConfig{MaxTokens: 256},
		testLogger(),
	)
	return &chatFixture{service: service, repos: repos, notifier: notifier}
}

func (f *chatFixture) seedProfile(t *testing.T, userID string) {
	t.Helper()
	_, err := f.repos.Profiles.Upsert(context.Background(), userID, models.ProfilePatch{
		Major: strPtr("Computer Science"),
	})
	require.NoError(t, err)
}

func (f *chatFixture) transcript(t *testing.T, userID string) []*models.ChatTurn {
	t.Helper()
	turns, err := f.repos.Transcripts.ListByUser(context.Background(), userID, 100, 0)
	require.NoError(t, err)
	return turns
}

// assertCourseIDsHavePrefix checks the payload as clients decode it
func assertCourseIDsHavePrefix(t *testing.T, resp *dto.ChatResponse, prefix string) {
	t.Helper()
	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var body struct {
		Data struct {
			Courses []struct {
				ID string `json:"id"`
			} `json:"courses"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	require.NotEmpty(t, body.Data.Courses)
	for _, c := range body.Data.Courses {
		assert.True(t, strings.HasPrefix(c.ID, prefix), c.ID)
	}
}

func withTools(req llm.Request) bool    { return len(req.Tools) > 0 }
func withoutTools(req llm.Request) bool { return len(req.Tools) == 0 }

func TestChat_DegreePlanSkipsProvider(t *testing.T) {
	provider := &mockProvider{}
	f := newChatFixture(t, provider)
	f.seedProfile(t, "u1")

	resp, err := f.service.Chat(context.Background(), "u1", &dto.ChatRequest{Message: "Can you map my CS degree plan?"})
	require.NoError(t, err)

	assert.Equal(t, visualization.DegreePlanReply, resp.Reply)
	assert.Equal(t, visualization.TypeDegreePlan, resp.VisualizationType)
	plan, ok := resp.Data.(visualization.DegreePlan)
	require.True(t, ok)
	assert.Len(t, plan.Semesters, 8)
	assert.NotEmpty(t, resp.ChatID)

	provider.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	assert.Len(t, f.transcript(t, "u1"), 2)
}

func TestChat_RejectsInvalidMessages(t *testing.T) {
	f := newChatFixture(t, &mockProvider{})

	_, err := f.service.Chat(context.Background(), "u1", &dto.ChatRequest{Message: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = f.service.Chat(context.Background(), "u1", &dto.ChatRequest{Message: strings.Repeat("a", 4001)})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestChat_DegradedCourseLookup(t *testing.T) {
	f := newChatFixture(t, nil)
	f.seedProfile(t, "u1")

	resp, err := f.service.Chat(context.Background(), "u1", &dto.ChatRequest{Message: "show me cs courses"})
	require.NoError(t, err)

	assert.Contains(t, resp.Reply, "CS110 — Introduction to Computing")
	assert.Contains(t, resp.Reply, "CS210 — Intermediate Computing")
	assert.NotContains(t, resp.Reply, "MATH140")

	assert.Equal(t, visualization.TypeCoursePath, resp.VisualizationType)
	path, ok := resp.Data.(*visualization.CoursePath)
	require.True(t, ok)
	require.Len(t, path.Courses, 2)
	assert.Equal(t, "CS110", path.Courses[0].ID)
	assertCourseIDsHavePrefix(t, resp, "CS")
}

func TestChat_DegradedNoMatchUsesFallback(t *testing.T) {
	f := newChatFixture(t, nil)
	f.seedProfile(t, "u1")

	resp, err := f.service.Chat(context.Background(), "u1", &dto.ChatRequest{Message: "any zzz classes?"})
	require.NoError(t, err)
	assert.Equal(t, coursesReplyFallback, resp.Reply)
	assert.Empty(t, resp.VisualizationType)
}

func TestChat_DegradedGeneralIsUnavailable(t *testing.T) {
	f := newChatFixture(t, nil)
	f.seedProfile(t, "u1")

	_, err := f.service.Chat(context.Background(), "u1", &dto.ChatRequest{Message: "is it hard to double major?"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavailable)
	assert.Empty(t, f.transcript(t, "u1"))
}

func TestChat_TextReply(t *testing.T) {
	provider := &mockProvider{}
	var captured llm.Request
	provider.On("Complete", mock.Anything, mock.MatchedBy(withTools)).
		Run(func(args mock.Arguments) { captured = args.Get(1).(llm.Request) }).
		Return(&llm.Response{Content: "Double majors are manageable with planning."}, nil).
		Once()

	f := newChatFixture(t, provider)
	f.seedProfile(t, "u1")

	resp, err := f.service.Chat(context.Background(), "u1", &dto.ChatRequest{Message: "is it hard to double major?"})
	require.NoError(t, err)
	provider.AssertExpectations(t)

	assert.Equal(t, "Double majors are manageable with planning.", resp.Reply)
	assert.Empty(t, resp.Tool)
	assert.Empty(t, resp.VisualizationType)

	require.Len(t, captured.Messages, 2)
	assert.Equal(t, llm.RoleSystem, captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[0].Content, "major: Computer Science")
	assert.Contains(t, captured.Messages[0].Content, "2: UMASS_BOSTON")
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "is it hard to double major?"}, captured.Messages[1])
	assert.Len(t, captured.Tools, 2)
	assert.Equal(t, 256, captured.MaxTokens)

	turns := f.transcript(t, "u1")
	require.Len(t, turns, 2)
	assert.Equal(t, models.RoleUser, turns[0].Role)
	assert.Equal(t, models.RoleAssistant, turns[1].Role)
	assert.Equal(t, resp.ChatID, turns[1].ChatID)

	assert.Equal(t, []string{websocket.TypeChatReply}, f.notifier.types())
}

func TestChat_ReusesChatIDAndSendsHistory(t *testing.T) {
	provider := &mockProvider{}
	var requests []llm.Request
	provider.On("Complete", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { requests = append(requests, args.Get(1).(llm.Request)) }).
		Return(&llm.Response{Content: "Sure."}, nil)

	f := newChatFixture(t, provider)
	f.seedProfile(t, "u1")
	ctx := context.Background()

	first, err := f.service.Chat(ctx, "u1", &dto.ChatRequest{Message: "hello"})
	require.NoError(t, err)
	second, err := f.service.Chat(ctx, "u1", &dto.ChatRequest{Message: "and then?"})
	require.NoError(t, err)
	assert.Equal(t, first.ChatID, second.ChatID)

	third, err := f.service.Chat(ctx, "u1", &dto.ChatRequest{Message: "new topic", ChatID: "chat-2"})
	require.NoError(t, err)
	assert.Equal(t, "chat-2", third.ChatID)

	require.Len(t, requests, 3)
	history := requests[1].Messages
	require.Len(t, history, 4)
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "hello"}, history[0])
	assert.Equal(t, llm.Message{Role: llm.RoleAssistant, Content: "Sure."}, history[1])
	assert.Equal(t, llm.RoleSystem, history[2].Role)

	// A new chat id starts without the earlier session's turns
	require.Len(t, requests[2].Messages, 2)
	assert.Equal(t, llm.RoleSystem, requests[2].Messages[0].Role)
}

func TestChat_HistoryIsScopedToChatID(t *testing.T) {
	provider := &mockProvider{}
	var requests []llm.Request
	provider.On("Complete", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { requests = append(requests, args.Get(1).(llm.Request)) }).
		Return(&llm.Response{Content: "ok"}, nil)

	f := newChatFixture(t, provider)
	f.seedProfile(t, "u1")
	ctx := context.Background()

	_, err := f.service.Chat(ctx, "u1", &dto.ChatRequest{Message: "secret from chat A", ChatID: "chat-A"})
	require.NoError(t, err)
	_, err = f.service.Chat(ctx, "u1", &dto.ChatRequest{Message: "hello", ChatID: "chat-B"})
	require.NoError(t, err)
	_, err = f.service.Chat(ctx, "u1", &dto.ChatRequest{Message: "back again", ChatID: "chat-A"})
	require.NoError(t, err)

	require.Len(t, requests, 3)
	for _, m := range requests[1].Messages {
		assert.NotEqual(t, "secret from chat A", m.Content)
		assert.NotEqual(t, llm.RoleAssistant, m.Role)
	}
	require.Len(t, requests[1].Messages, 2)

	resumed := requests[2].Messages
	require.Len(t, resumed, 4)
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "secret from chat A"}, resumed[0])
	assert.Equal(t, llm.Message{Role: llm.RoleAssistant, Content: "ok"}, resumed[1])

	turns, err := f.repos.Transcripts.ListByChat(ctx, "u1", "chat-B", 0, 0)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "hello", turns[0].Message)
}

func TestChat_ProviderError(t *testing.T) {
	provider := &mockProvider{}
	provider.On("Complete", mock.Anything, mock.Anything).Return(nil, errors.New("upstream 500"))

	f := newChatFixture(t, provider)
	f.seedProfile(t, "u1")

	_, err := f.service.Chat(context.Background(), "u1", &dto.ChatRequest{Message: "hello"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream 500")
	assert.Empty(t, f.transcript(t, "u1"))
	assert.Empty(t, f.notifier.types())
}

func TestChat_UpdateProfileTool(t *testing.T) {
	provider := &mockProvider{}
	var followUp llm.Request
	provider.On("Complete", mock.Anything, mock.MatchedBy(withTools)).
		Return(&llm.Response{ToolCalls: []llm.ToolCall{{
			ID:        "call_1",
			Name:      ToolNameUpdateProfile,
			Arguments: `{"university_id":2,"major":"Computer Science","year":"junior","interests":["AI"]}`,
		}}}, nil).
		Once()
	provider.On("Complete", mock.Anything, mock.MatchedBy(withoutTools)).
		Run(func(args mock.Arguments) { followUp = args.Get(1).(llm.Request) }).
		Return(&llm.Response{Content: "Got it, a junior in CS at UMass Boston."}, nil).
		Once()

	// No profile yet. The tool creates it and the transcript is stored.
	f := newChatFixture(t, provider)
	ctx := context.Background()

	resp, err := f.service.Chat(ctx, "u1", &dto.ChatRequest{Message: "I'm a junior studying computer science at umass boston"})
	require.NoError(t, err)
	provider.AssertExpectations(t)

	assert.Equal(t, "Got it, a junior in CS at UMass Boston.", resp.Reply)
	assert.Equal(t, ToolNameUpdateProfile, resp.Tool)

	profile, err := f.repos.Profiles.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "UMASS_BOSTON", profile.University)
	assert.Equal(t, "Computer Science", profile.Major)
	require.NotNil(t, profile.Year)
	assert.Equal(t, models.YearJunior, *profile.Year)
	assert.Equal(t, []string{"AI"}, profile.Interests)

	n := len(followUp.Messages)
	require.GreaterOrEqual(t, n, 3)
	assert.Equal(t, llm.RoleAssistant, followUp.Messages[n-3].Role)
	require.Len(t, followUp.Messages[n-3].ToolCalls, 1)
	assert.Equal(t, llm.RoleTool, followUp.Messages[n-2].Role)
	assert.Equal(t, "call_1", followUp.Messages[n-2].ToolCallID)
	assert.Contains(t, followUp.Messages[n-2].Content, "university: UMASS_BOSTON")
	assert.Equal(t, llm.RoleSystem, followUp.Messages[n-1].Role)
	assert.True(t, strings.HasPrefix(followUp.Messages[n-1].Content, savedProfileReprompt))
	assert.True(t, strings.HasSuffix(followUp.Messages[n-1].Content, "at umass boston"))

	assert.Len(t, f.transcript(t, "u1"), 2)
	assert.Equal(t, []string{websocket.TypeProfileUpdated, websocket.TypeChatReply}, f.notifier.types())
}

func TestChat_NotStudentDefaultsToFreshman(t *testing.T) {
	provider := &mockProvider{}
	provider.On("Complete", mock.Anything, mock.MatchedBy(withTools)).
		Return(&llm.Response{ToolCalls: []llm.ToolCall{{
			ID:        "call_1",
			Name:      ToolNameUpdateProfile,
			Arguments: `{"isstudent":false}`,
		}}}, nil).
		Once()
	provider.On("Complete", mock.Anything, mock.MatchedBy(withoutTools)).
		Return(&llm.Response{Content: "Welcome!"}, nil).
		Once()

	f := newChatFixture(t, provider)
	f.seedProfile(t, "u1")

	_, err := f.service.Chat(context.Background(), "u1", &dto.ChatRequest{Message: "I'm not enrolled yet"})
	require.NoError(t, err)

	profile, err := f.repos.Profiles.GetByUserID(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, profile.Year)
	assert.Equal(t, models.YearFreshman, *profile.Year)
	require.NotNil(t, profile.IsStudent)
	assert.False(t, *profile.IsStudent)
}

func TestChat_LookupCoursesTool(t *testing.T) {
	provider := &mockProvider{}
	var followUp llm.Request
	provider.On("Complete", mock.Anything, mock.MatchedBy(withTools)).
		Return(&llm.Response{ToolCalls: []llm.ToolCall{{
			ID:        "call_7",
			Name:      ToolNameLookupCourses,
			Arguments: `{"major":"computer science"}`,
		}}}, nil).
		Once()
	provider.On("Complete", mock.Anything, mock.MatchedBy(withoutTools)).
		Run(func(args mock.Arguments) { followUp = args.Get(1).(llm.Request) }).
		Return(&llm.Response{Content: "Start with CS110, then CS210."}, nil).
		Once()

	f := newChatFixture(t, provider)
	f.seedProfile(t, "u1")

	resp, err := f.service.Chat(context.Background(), "u1", &dto.ChatRequest{Message: "which cs courses can I take?"})
	require.NoError(t, err)
	provider.AssertExpectations(t)

	assert.Equal(t, "Start with CS110, then CS210.", resp.Reply)
	assert.Equal(t, ToolNameLookupCourses, resp.Tool)

	toolTurn := followUp.Messages[len(followUp.Messages)-2]
	assert.Equal(t, llm.RoleTool, toolTurn.Role)
	assert.Contains(t, toolTurn.Content, "CS110 — Introduction to Computing")
	assert.NotContains(t, toolTurn.Content, "MATH140")

	// Visualization turn: the looked up courses become the course path
	assert.Equal(t, visualization.TypeCoursePath, resp.VisualizationType)
	path, ok := resp.Data.(*visualization.CoursePath)
	require.True(t, ok)
	assert.Len(t, path.Courses, 2)
	assertCourseIDsHavePrefix(t, resp, "CS")
}

func TestChat_LookupCoursesOtherUniversity(t *testing.T) {
	provider := &mockProvider{}
	var followUp llm.Request
	provider.On("Complete", mock.Anything, mock.MatchedBy(withTools)).
		Return(&llm.Response{ToolCalls: []llm.ToolCall{{
			ID:        "call_1",
			Name:      "getCoursesByMajor",
			Arguments: `{"major":"CS","university_id":0}`,
		}}}, nil).
		Once()
	provider.On("Complete", mock.Anything, mock.MatchedBy(withoutTools)).
		Run(func(args mock.Arguments) { followUp = args.Get(1).(llm.Request) }).
		Return(&llm.Response{Content: "MIT offers CS100."}, nil).
		Once()

	f := newChatFixture(t, provider)
	f.seedProfile(t, "u1")

	resp, err := f.service.Chat(context.Background(), "u1", &dto.ChatRequest{Message: "what does MIT offer?"})
	require.NoError(t, err)
	assert.Equal(t, "getCoursesByMajor", resp.Tool)
	assert.Contains(t, followUp.Messages[len(followUp.Messages)-2].Content, "CS100 — Computing at MIT")
}

func TestChat_InvalidToolCallFallsBackToText(t *testing.T) {
	tests := []struct {
		name     string
		call     llm.ToolCall
		content  string
		expected string
	}{
		{
			name:     "malformed arguments",
			call:     llm.ToolCall{ID: "c1", Name: ToolNameUpdateProfile, Arguments: `{"major":`},
			content:  "Noted.",
			expected: "Noted.",
		},
		{
			name:     "arguments fail validation",
			call:     llm.ToolCall{ID: "c1", Name: ToolNameUpdateProfile, Arguments: `{"year":42}`},
			content:  "Which year are you in?",
			expected: "Which year are you in?",
		},
		{
			name:     "unknown university index",
			call:     llm.ToolCall{ID: "c1", Name: ToolNameUpdateProfile, Arguments: `{"university_id":99}`},
			content:  "Which university?",
			expected: "Which university?",
		},
		{
			name:     "unknown tool with empty content",
			call:     llm.ToolCall{ID: "c1", Name: "bookFlight", Arguments: `{}`},
			content:  "",
			expected: emptyReplyFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &mockProvider{}
			provider.On("Complete", mock.Anything, mock.MatchedBy(withTools)).
				Return(&llm.Response{Content: tt.content, ToolCalls: []llm.ToolCall{tt.call}}, nil).
				Once()

			f := newChatFixture(t, provider)
			f.seedProfile(t, "u1")

			resp, err := f.service.Chat(context.Background(), "u1", &dto.ChatRequest{Message: "hello there"})
			require.NoError(t, err)
			provider.AssertExpectations(t)
			provider.AssertNumberOfCalls(t, "Complete", 1)

			assert.Equal(t, tt.expected, resp.Reply)
			assert.Empty(t, resp.Tool)
			assert.Equal(t, []string{websocket.TypeChatReply}, f.notifier.types())
		})
	}
}

func TestChat_InlineVisualizationMarker(t *testing.T) {
	provider := &mockProvider{}
	provider.On("Complete", mock.Anything, mock.Anything).
		Return(&llm.Response{Content: "Here is your path.\nVISUALIZATION_DATA: ```json\n{\"type\":\"course_path\",\"courses\":[{\"id\":\"CS110\"}]}\n```"}, nil)

	f := newChatFixture(t, provider)
	f.seedProfile(t, "u1")

	resp, err := f.service.Chat(context.Background(), "u1", &dto.ChatRequest{Message: "hello"})
	require.NoError(t, err)

	assert.Equal(t, "Here is your path.", resp.Reply)
	assert.Equal(t, visualization.TypeCoursePath, resp.VisualizationType)
	payload, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Len(t, payload["courses"], 1)

	turns := f.transcript(t, "u1")
	require.Len(t, turns, 2)
	assert.Equal(t, "Here is your path.", turns[1].Message)
}

func TestChat_MarkerOnlyUsesHeading(t *testing.T) {
	provider := &mockProvider{}
	provider.On("Complete", mock.Anything, mock.Anything).
		Return(&llm.Response{Content: `VISUALIZATION_DATA: {"type":"course_path","courses":[]}`}, nil)

	f := newChatFixture(t, provider)
	f.seedProfile(t, "u1")

	resp, err := f.service.Chat(context.Background(), "u1", &dto.ChatRequest{Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, courseListHeading, resp.Reply)
	assert.Equal(t, visualization.TypeCoursePath, resp.VisualizationType)
}

func TestChat_VisualizationFallsBackToCatalog(t *testing.T) {
	provider := &mockProvider{}
	provider.On("Complete", mock.Anything, mock.Anything).
		Return(&llm.Response{Content: "These CS courses build on each other."}, nil)

	f := newChatFixture(t, provider)
	f.seedProfile(t, "u1")

	resp, err := f.service.Chat(context.Background(), "u1", &dto.ChatRequest{Message: "show me cs courses"})
	require.NoError(t, err)

	assert.Equal(t, "These CS courses build on each other.", resp.Reply)
	assert.Equal(t, visualization.TypeCoursePath, resp.VisualizationType)
	path, ok := resp.Data.(*visualization.CoursePath)
	require.True(t, ok)
	require.Len(t, path.Courses, 2)
	assert.Equal(t, []string{"CS110"}, path.Courses[1].Prerequisites)
	assertCourseIDsHavePrefix(t, resp, "CS")
}

func TestChat_NoProfileSkipsTranscript(t *testing.T) {
	provider := &mockProvider{}
	provider.On("Complete", mock.Anything, mock.Anything).
		Return(&llm.Response{Content: "Hi! What do you study?"}, nil)

	f := newChatFixture(t, provider)

	resp, err := f.service.Chat(context.Background(), "ghost", &dto.ChatRequest{Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "Hi! What do you study?", resp.Reply)
	assert.Empty(t, f.transcript(t, "ghost"))
}

func TestChat_FirstContactUsesOnboarding(t *testing.T) {
	provider := &mockProvider{}
	var captured llm.Request
	provider.On("Complete", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(1).(llm.Request) }).
		Return(&llm.Response{Content: "Are you currently a student?"}, nil)

	f := newChatFixture(t, provider)
	_, err := f.repos.Profiles.Upsert(context.Background(), "u1", models.ProfilePatch{})
	require.NoError(t, err)

	_, err = f.service.Chat(context.Background(), "u1", &dto.ChatRequest{Message: "hello"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(captured.Messages[0].Content, onboardingPrompt))
}

func TestOnboard_EmptyFirstMessage(t *testing.T) {
	provider := &mockProvider{}
	var captured llm.Request
	provider.On("Complete", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(1).(llm.Request) }).
		Return(&llm.Response{Content: "Welcome! Are you a student?"}, nil)

	f := newChatFixture(t, provider)
	f.seedProfile(t, "u1")

	resp, err := f.service.Onboard(context.Background(), "u1", &dto.OnboardRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Welcome! Are you a student?", resp.Reply)
	assert.True(t, strings.HasPrefix(captured.Messages[0].Content, onboardingPrompt))

	turns := f.transcript(t, "u1")
	require.Len(t, turns, 1)
	assert.Equal(t, models.RoleAssistant, turns[0].Role)
}

func TestOnboard_RejectsLongMessage(t *testing.T) {
	f := newChatFixture(t, &mockProvider{})

	_, err := f.service.Onboard(context.Background(), "u1", &dto.OnboardRequest{Message: strings.Repeat("a", 4001)})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
