package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/azure"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

// Supported providers
const (
	ProviderAzure  = "azure"
	ProviderOpenAI = "openai"
)

// Config describes how to reach the chat-completions endpoint
type Config struct {
	Provider      string
	Endpoint      string
	APIKey        string
	APIVersion    string
	ChatModel     string
	AnalysisModel string
	MaxAttempts   int
}

// Client talks to Azure OpenAI or any OpenAI-compatible endpoint with retry logic and logging
type Client struct {
	client        openai.Client
	chatModel     string
	analysisModel string
	maxAttempts   int
	baseDelay     time.Duration
	logger        *zap.Logger
}

// NewClient creates a new Client for cfg
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" || cfg.ChatModel == "" {
		return nil, fmt.Errorf("apiKey and chatModel are required")
	}

	opts := []option.RequestOption{option.WithMaxRetries(0)}
	switch cfg.Provider {
	case ProviderAzure:
		if cfg.Endpoint == "" {
			return nil, fmt.Errorf("endpoint is required for the azure provider")
		}
		apiVersion := cfg.APIVersion
		if apiVersion == "" {
			apiVersion = "2024-08-01-preview"
		}
		opts = append(opts, azure.WithEndpoint(cfg.Endpoint, apiVersion), azure.WithAPIKey(cfg.APIKey))
	case ProviderOpenAI, "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
		if cfg.Endpoint != "" {
			opts = append(opts, option.WithBaseURL(cfg.Endpoint))
		}
	default:
		return nil, fmt.Errorf("unsupported provider: %q", cfg.Provider)
	}

	analysisModel := cfg.AnalysisModel
	if analysisModel == "" {
		analysisModel = cfg.ChatModel
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	return &Client{
		client:        openai.NewClient(opts...),
		chatModel:     cfg.ChatModel,
		analysisModel: analysisModel,
		maxAttempts:   maxAttempts,
		baseDelay:     time.Second,
		logger:        logger,
	}, nil
}

// complete sends a chat completion request, retrying transient failures
func (c *Client) complete(ctx context.Context, params openai.ChatCompletionNewParams) (string, error) {
	startTime := time.Now()
	var lastErr error

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			delay := c.baseDelay * time.Duration(1<<uint(attempt-1))
			c.logger.Info("retrying chat completion request",
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", delay),
			)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", fmt.Errorf("chat completion request abandoned: %w", ctx.Err())
			}
		}

		result, err := c.completeOnce(ctx, params)
		if err == nil {
			c.logger.Info("chat completion request completed",
				zap.String("model", string(params.Model)),
				zap.Duration("processing_time", time.Since(startTime)),
				zap.Int("attempts", attempt+1),
			)
			return result, nil
		}

		lastErr = err
		if !isRetryable(err) {
			c.logger.Error("non-retryable chat completion error",
				zap.Error(err),
				zap.Int("attempt", attempt+1),
			)
			break
		}

		c.logger.Warn("chat completion request failed",
			zap.Error(err),
			zap.Int("attempt", attempt+1),
		)
	}

	c.logger.Error("chat completion request failed",
		zap.Error(lastErr),
		zap.Duration("total_time", time.Since(startTime)),
		zap.Int("max_attempts", c.maxAttempts),
	)
	return "", fmt.Errorf("chat completion failed: %w", lastErr)
}

// completeOnce performs a single chat completion request
func (c *Client) completeOnce(ctx context.Context, params openai.ChatCompletionNewParams) (string, error) {
	requestStart := time.Now()

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty content in response")
	}

	c.logger.Info("chat completion token usage",
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
		zap.Int64("total_tokens", resp.Usage.TotalTokens),
		zap.Duration("request_time", time.Since(requestStart)),
	)
	return content, nil
}

// isRetryable reports whether a failed request may succeed on a later attempt.
// Rate limits, server errors and transport errors are retried; other API errors are not.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}
