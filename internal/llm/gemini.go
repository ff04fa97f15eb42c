package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai/jsonschema"
	"google.golang.org/genai"
)

// DefaultGeminiModel is used when the config names no model
const DefaultGeminiModel = "gemini-2.0-flash"

type generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// GeminiProvider talks to the Gemini API through the genai SDK
type GeminiProvider struct {
	generate  generateFunc
	model     string
	maxTokens int
	timeout   time.Duration
}

// NewGeminiProvider creates a Gemini provider
func NewGeminiProvider(ctx context.Context, cfg Config) (*GeminiProvider, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" || strings.HasPrefix(model, "gpt-") {
		model = DefaultGeminiModel
	}

	return &GeminiProvider{
		generate:  client.Models.GenerateContent,
		model:     model,
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.Timeout,
	}, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return ProviderGemini
}

// Complete sends one generateContent request
func (p *GeminiProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()

	system, contents := toGeminiContents(req.Messages)

	config := &genai.GenerateContentConfig{SystemInstruction: system}
	maxTokens := p.maxTokens
	if req.MaxTokens > 0 {
		maxTokens = req.MaxTokens
	}
	if maxTokens > 0 {
		config.MaxOutputTokens = int32(maxTokens)
	}
	if len(req.Tools) > 0 {
		config.Tools = []*genai.Tool{{FunctionDeclarations: toGeminiDeclarations(req.Tools)}}
		config.ToolConfig = &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{Mode: genai.FunctionCallingConfigModeAuto},
		}
	}

	resp, err := p.generate(ctx, p.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}
	return fromGeminiResponse(resp)
}

// toGeminiContents splits system turns into the system instruction and maps
// the rest onto user and model contents
func toGeminiContents(messages []Message) (*genai.Content, []*genai.Content) {
	var (
		system   []string
		contents []*genai.Content
	)

	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			if m.Content != "" {
				system = append(system, m.Content)
			}
		case RoleAssistant:
			content := &genai.Content{Role: string(genai.RoleModel)}
			if m.Content != "" {
				content.Parts = append(content.Parts, &genai.Part{Text: m.Content})
			}
			for _, call := range m.ToolCalls {
				content.Parts = append(content.Parts, &genai.Part{FunctionCall: &genai.FunctionCall{
					ID:   call.ID,
					Name: call.Name,
					Args: decodeArgs(call.Arguments),
				}})
			}
			if len(content.Parts) > 0 {
				contents = append(contents, content)
			}
		case RoleTool:
			contents = append(contents, &genai.Content{
				Role:  string(genai.RoleUser),
				Parts: []*genai.Part{{FunctionResponse: &genai.FunctionResponse{
					ID:       m.ToolCallID,
					Name:     m.ToolName,
					Response: map[string]any{"output": m.Content},
				}}},
			})
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	if len(system) == 0 {
		return nil, contents
	}
	return genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser), contents
}

func decodeArgs(raw string) map[string]any {
	args := map[string]any{}
	if raw == "" {
		return args
	}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return map[string]any{}
	}
	return args
}

func fromGeminiResponse(resp *genai.GenerateContentResponse) (*Response, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("gemini returned no candidates")
	}

	out := &Response{}
	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil {
			continue
		}
		if part.FunctionCall != nil {
			args, err := json.Marshal(part.FunctionCall.Args)
			if err != nil {
				return nil, fmt.Errorf("failed to encode gemini function args: %w", err)
			}
			id := part.FunctionCall.ID
			if id == "" {
				id = part.FunctionCall.Name
			}
			out.ToolCalls = append(out.ToolCalls, ToolCall{
				ID:        id,
				Name:      part.FunctionCall.Name,
				Arguments: string(args),
			})
			continue
		}
		if part.Text != "" && !part.Thought {
			text.WriteString(part.Text)
		}
	}
	out.Content = text.String()
	return out, nil
}

func toGeminiDeclarations(tools []ToolSpec) []*genai.FunctionDeclaration {
	out := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		params := t.Parameters
		out = append(out, &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  toGeminiSchema(&params),
		})
	}
	return out
}

func toGeminiSchema(def *jsonschema.Definition) *genai.Schema {
	if def == nil {
		return nil
	}

	schema := &genai.Schema{
		Type:        geminiType(def.Type),
		Description: def.Description,
		Enum:        def.Enum,
		Required:    def.Required,
	}
	if len(def.Properties) > 0 {
		schema.Properties = make(map[string]*genai.Schema, len(def.Properties))
		for name, prop := range def.Properties {
			prop := prop
			schema.Properties[name] = toGeminiSchema(&prop)
		}
	}
	if def.Items != nil {
		schema.Items = toGeminiSchema(def.Items)
	}
	return schema
}

func geminiType(t jsonschema.DataType) genai.Type {
	switch t {
	case jsonschema.Object:
		return genai.TypeObject
	case jsonschema.Array:
		return genai.TypeArray
	case jsonschema.String:
		return genai.TypeString
	case jsonschema.Integer:
		return genai.TypeInteger
	case jsonschema.Number:
		return genai.TypeNumber
	case jsonschema.Boolean:
		return genai.TypeBoolean
	default:
		return genai.TypeUnspecified
	}
}
