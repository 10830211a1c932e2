package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/vaidya/internal/domain"
	"github.com/kailas-cloud/vaidya/internal/domain/completion"
	"github.com/kailas-cloud/vaidya/internal/metrics"
)

// DefaultSystemPrompt frames every consultation.
const DefaultSystemPrompt = "You are a knowledgeable and compassionate Ayurvedic wellness guide. " +
	"Answer with practical, gentle guidance grounded in classical Ayurveda, " +
	"keep answers concise and suggest consulting a qualified practitioner for persistent or serious symptoms. " +
	"Never diagnose or prescribe medication."

// Assistant is a chat completion provider using the OpenAI-compatible API.
type Assistant struct {
	client       *openai.Client
	configured   bool
	model        string
	maxTokens    int
	temperature  float32
	systemPrompt string
	provider     string
	logger       *zap.Logger
}

// Config holds the assistant provider settings.
type Config struct {
	APIKey       string
	BaseURL      string
	Model        string
	MaxTokens    int
	Temperature  float32
	SystemPrompt string
	Provider     string
	Logger       *zap.Logger
}

// NewAssistant creates an OpenAI-compatible assistant. An empty APIKey yields an unconfigured assistant.
func NewAssistant(cfg *Config) *Assistant {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	prompt := cfg.SystemPrompt
	if prompt == "" {
		prompt = DefaultSystemPrompt
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Assistant{
		client:       openai.NewClientWithConfig(clientCfg),
		configured:   cfg.APIKey != "",
		model:        cfg.Model,
		maxTokens:    cfg.MaxTokens,
		temperature:  cfg.Temperature,
		systemPrompt: prompt,
		provider:     cfg.Provider,
		logger:       logger,
	}
}

// IsConfigured implements domain.Assistant.
func (a *Assistant) IsConfigured() bool { return a.configured }

// Complete implements domain.Assistant. Every failure wraps domain.ErrRemoteCallFailed.
func (a *Assistant) Complete(ctx context.Context, req completion.Request) (string, error) {
	if !a.configured {
		return "", domain.ErrRemoteUnavailable
	}

	start := time.Now()

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    a.buildMessages(&req),
		MaxTokens:   a.maxTokens,
		Temperature: a.temperature,
	})

	duration := time.Since(start)

	if err != nil {
		metrics.CompletionRequestsTotal.WithLabelValues(a.provider, a.model, "error").Inc()
		metrics.CompletionErrorsTotal.WithLabelValues(a.provider, a.model, "api_error").Inc()
		return "", parseAPIError(err)
	}

	// токены потрачены даже если ответ пустой
	completion.UsageFromContext(ctx).Add(resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		metrics.CompletionRequestsTotal.WithLabelValues(a.provider, a.model, "error").Inc()
		metrics.CompletionErrorsTotal.WithLabelValues(a.provider, a.model, "empty_response").Inc()
		return "", fmt.Errorf("empty completion response: %w", domain.ErrRemoteCallFailed)
	}

	metrics.CompletionRequestsTotal.WithLabelValues(a.provider, a.model, "success").Inc()
	metrics.CompletionRequestDuration.WithLabelValues(a.provider, a.model).Observe(duration.Seconds())
	if resp.Usage.TotalTokens > 0 {
		metrics.CompletionTokensTotal.WithLabelValues(a.provider, a.model, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.CompletionTokensTotal.WithLabelValues(a.provider, a.model, "completion").Add(float64(resp.Usage.CompletionTokens))
	}

	a.logger.Debug("Completion request completed",
		zap.String("provider", a.provider),
		zap.String("model", a.model),
		zap.Duration("duration", duration),
		zap.Int("history", len(req.History)),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)

	return resp.Choices[0].Message.Content, nil
}

// buildMessages lays out system prompt, profile hint, prior turns and the query.
func (a *Assistant) buildMessages(req *completion.Request) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, len(req.History)+3)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: a.systemPrompt,
	})
	if req.ProfileHint != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: "The user's dominant dosha is " + req.ProfileHint + ".",
		})
	}
	for _, t := range req.History {
		role := openai.ChatMessageRoleUser
		if t.Role == completion.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: t.Text})
	}
	return append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Query,
	})
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (a *Assistant) HealthCheck(ctx context.Context) error {
	if _, err := a.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a human-readable error from the API response.
func parseAPIError(err error) error {
	wrap := domain.ErrRemoteCallFailed

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if detail := extractDetail(reqErr.Body); detail != "" {
			return fmt.Errorf("completion API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("completion API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("completion API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("completion request failed: %v: %w", err, wrap)
}

// extractDetail extracts the "detail" field from a JSON error body (Nebius error format).
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
