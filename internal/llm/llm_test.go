package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/uniadvisor/internal/pkg/apperrors"
	"google.golang.org/genai"
)

var lookupTool = ToolSpec{
	Name:        "lookupCourses",
	Description: "Look up courses",
	Parameters: jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"major":         {Type: jsonschema.String},
			"university_id": {Type: jsonschema.Integer},
			"interests":     {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}},
		},
		Required: []string{"major"},
	},
}

func TestNewProvider(t *testing.T) {
	_, err := NewProvider(Config{Provider: "openai"})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.ErrorIs(t, err, apperrors.ErrNotConfigured)

	_, err = NewProvider(Config{APIKey: "k"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewProvider(Config{Provider: "claude", APIKey: "k"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotConfigured)

	p, err := NewProvider(Config{Provider: " OpenAI ", APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, p.Name())
	assert.Equal(t, DefaultOpenAIModel, p.(*OpenAIProvider).model)
	assert.Equal(t, DefaultTimeout, p.(*OpenAIProvider).timeout)
}

type capturedRequest struct {
	Model      string          `json:"model"`
	MaxTokens  int             `json:"max_tokens"`
	ToolChoice any             `json:"tool_choice"`
	Tools      json.RawMessage `json:"tools"`
	Messages   []struct {
		Role       string `json:"role"`
		Content    string `json:"content"`
		ToolCallID string `json:"tool_call_id"`
		ToolCalls  []struct {
			ID       string `json:"id"`
			Function struct {
				Name      string `json:"name"`
				Arguments string `json:"arguments"`
			} `json:"function"`
		} `json:"tool_calls"`
	} `json:"messages"`
}

func newOpenAIServer(t *testing.T, reply string, captured *capturedRequest) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestOpenAIProvider_Text(t *testing.T) {
	var captured capturedRequest
	server := newOpenAIServer(t, `{"id":"c1","object":"chat.completion","choices":[
		{"index":0,"message":{"role":"assistant","content":"Hello there"},"finish_reason":"stop"}]}`, &captured)

	p := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL + "/v1", Model: "gpt-test", MaxTokens: 100, Timeout: time.Second})
	resp, err := p.Complete(context.Background(), Request{Messages: []Message{
		{Role: RoleSystem, Content: "be helpful"},
		{Role: RoleUser, Content: "hi"},
	}})
	require.NoError(t, err)

	assert.Equal(t, "Hello there", resp.Content)
	assert.False(t, resp.HasToolCalls())
	assert.Equal(t, "gpt-test", captured.Model)
	assert.Equal(t, 100, captured.MaxTokens)
	assert.Nil(t, captured.ToolChoice)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "hi", captured.Messages[1].Content)
}

func TestOpenAIProvider_ToolCalls(t *testing.T) {
	var captured capturedRequest
	server := newOpenAIServer(t, `{"id":"c2","object":"chat.completion","choices":[
		{"index":0,"message":{"role":"assistant","content":"","tool_calls":[
			{"id":"call_1","type":"function","function":{"name":"lookupCourses","arguments":"{\"major\":\"CS\"}"}}
		]},"finish_reason":"tool_calls"}]}`, &captured)

	p := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL + "/v1", Timeout: time.Second})
	resp, err := p.Complete(context.Background(), Request{
		Messages: []Message{
			{Role: RoleUser, Content: "cs courses"},
			{Role: RoleAssistant, ToolCalls: []ToolCall{{ID: "call_0", Name: "updateUserProfile", Arguments: `{"major":"CS"}`}}},
			{Role: RoleTool, ToolCallID: "call_0", ToolName: "updateUserProfile", Content: "saved"},
		},
		Tools:     []ToolSpec{lookupTool},
		MaxTokens: 50,
	})
	require.NoError(t, err)

	require.True(t, resp.HasToolCalls())
	assert.Equal(t, ToolCall{ID: "call_1", Name: "lookupCourses", Arguments: `{"major":"CS"}`}, resp.ToolCalls[0])

	assert.Equal(t, "auto", captured.ToolChoice)
	assert.Equal(t, 50, captured.MaxTokens)
	assert.Contains(t, string(captured.Tools), `"name":"lookupCourses"`)
	require.Len(t, captured.Messages, 3)
	require.Len(t, captured.Messages[1].ToolCalls, 1)
	assert.Equal(t, "updateUserProfile", captured.Messages[1].ToolCalls[0].Function.Name)
	assert.Equal(t, "call_0", captured.Messages[2].ToolCallID)
}

func TestOpenAIProvider_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	p := NewOpenAIProvider(Config{APIKey: "k", BaseURL: server.URL + "/v1", Timeout: time.Second})
	_, err := p.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c3","choices":[]}`))
	}))
	defer empty.Close()

	p = NewOpenAIProvider(Config{APIKey: "k", BaseURL: empty.URL + "/v1", Timeout: time.Second})
	_, err = p.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	assert.ErrorContains(t, err, "no choices")
}

func TestToGeminiContents(t *testing.T) {
	system, contents := toGeminiContents([]Message{
		{Role: RoleSystem, Content: "rules"},
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "checking", ToolCalls: []ToolCall{{ID: "1", Name: "lookupCourses", Arguments: `{"major":"CS"}`}}},
		{Role: RoleTool, ToolCallID: "1", ToolName: "lookupCourses", Content: "CS 110"},
		{Role: RoleSystem, Content: "more rules"},
		{Role: RoleAssistant},
	})

	require.NotNil(t, system)
	assert.Equal(t, "rules\n\nmore rules", system.Parts[0].Text)

	require.Len(t, contents, 3)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "hi", contents[0].Parts[0].Text)

	assert.Equal(t, "model", contents[1].Role)
	require.Len(t, contents[1].Parts, 2)
	assert.Equal(t, "lookupCourses", contents[1].Parts[1].FunctionCall.Name)
	assert.Equal(t, map[string]any{"major": "CS"}, contents[1].Parts[1].FunctionCall.Args)

	resp := contents[2].Parts[0].FunctionResponse
	require.NotNil(t, resp)
	assert.Equal(t, "lookupCourses", resp.Name)
	assert.Equal(t, map[string]any{"output": "CS 110"}, resp.Response)
}

func TestToGeminiSchema(t *testing.T) {
	schema := toGeminiSchema(&lookupTool.Parameters)
	assert.Equal(t, genai.TypeObject, schema.Type)
	assert.Equal(t, []string{"major"}, schema.Required)
	assert.Equal(t, genai.TypeInteger, schema.Properties["university_id"].Type)
	require.NotNil(t, schema.Properties["interests"].Items)
	assert.Equal(t, genai.TypeString, schema.Properties["interests"].Items.Type)
}

func TestGeminiProvider_Complete(t *testing.T) {
	var (
		gotModel  string
		gotConfig *genai.GenerateContentConfig
	)
	p := &GeminiProvider{
		model:     "gemini-test",
		maxTokens: 64,
		timeout:   time.Second,
		generate: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			gotModel, gotConfig = model, config
			return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Role: "model", Parts: []*genai.Part{
					{Text: "thinking", Thought: true},
					{Text: "Sure. "},
					{FunctionCall: &genai.FunctionCall{Name: "lookupCourses", Args: map[string]any{"major": "CS"}}},
				}},
			}}}, nil
		},
	}

	resp, err := p.Complete(context.Background(), Request{
		Messages: []Message{{Role: RoleSystem, Content: "s"}, {Role: RoleUser, Content: "u"}},
		Tools:    []ToolSpec{lookupTool},
	})
	require.NoError(t, err)

	assert.Equal(t, "gemini-test", gotModel)
	assert.Equal(t, int32(64), gotConfig.MaxOutputTokens)
	require.Len(t, gotConfig.Tools, 1)
	assert.Equal(t, "lookupCourses", gotConfig.Tools[0].FunctionDeclarations[0].Name)
	assert.Equal(t, genai.FunctionCallingConfigModeAuto, gotConfig.ToolConfig.FunctionCallingConfig.Mode)

	assert.Equal(t, "Sure. ", resp.Content)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "lookupCourses", resp.ToolCalls[0].ID)
	assert.JSONEq(t, `{"major":"CS"}`, resp.ToolCalls[0].Arguments)
}

func TestGeminiProvider_Errors(t *testing.T) {
	p := &GeminiProvider{generate: func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return nil, errors.New("quota")
	}}
	_, err := p.Complete(context.Background(), Request{})
	assert.ErrorContains(t, err, "quota")

	p.generate = func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return &genai.GenerateContentResponse{}, nil
	}
	_, err = p.Complete(context.Background(), Request{})
	assert.ErrorContains(t, err, "no candidates")
}
