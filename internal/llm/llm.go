// Package llm abstracts the chat-completion providers the advisor talks to.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/yigit/uniadvisor/internal/pkg/apperrors"
)

// Message roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Provider names accepted by NewProvider
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// DefaultTimeout bounds a single completion when the config sets none
const DefaultTimeout = 60 * time.Second

// ErrNotConfigured is returned by NewProvider when no provider can be built
var ErrNotConfigured = fmt.Errorf("llm provider: %w", apperrors.ErrNotConfigured)

// Provider completes a conversation, optionally requesting tool calls
type Provider interface {
	Complete(ctx context.Context, req Request) (*Response, error)
	Name() string
}

// Message is one conversation entry sent to the model
type Message struct {
	Role       string
	Content    string
	ToolCallID string
	ToolName   string
	ToolCalls  []ToolCall
}

// ToolSpec declares a function the model may call
type ToolSpec struct {
	Name        string
	Description string
	Parameters  jsonschema.Definition
}

// ToolCall is a function invocation requested by the model. Arguments is raw JSON.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Request is a single completion request
type Request struct {
	Messages  []Message
	Tools     []ToolSpec
	MaxTokens int
}

// Response is the model's answer
type Response struct {
	Content   string
	ToolCalls []ToolCall
}

// HasToolCalls reports whether the model asked for at least one tool
func (r *Response) HasToolCalls() bool {
	return r != nil && len(r.ToolCalls) > 0
}

// Config selects and configures a provider
type Config struct {
	Provider  string
	APIKey    string
	BaseURL   string
	Model     string
	Timeout   time.Duration
	MaxTokens int
}

// NewProvider builds the configured provider. Without a provider name or an
// API key it returns ErrNotConfigured.
func NewProvider(cfg Config) (Provider, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if name == "" || cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	switch name {
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg), nil
	case ProviderGemini:
		return NewGeminiProvider(context.Background(), cfg)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}

// withTimeout applies the provider timeout unless the caller already set a deadline
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
