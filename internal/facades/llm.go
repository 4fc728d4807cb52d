package facades

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sbilibin2017/gw-chat-assistant/internal/apperrors"
	"github.com/sbilibin2017/gw-chat-assistant/internal/logger"
	"github.com/sbilibin2017/gw-chat-assistant/internal/metrics"
	"github.com/sbilibin2017/gw-chat-assistant/internal/models"
	"resty.dev/v3"
)

// NewLLMClient creates a resty client for an OpenAI-compatible completions API.
func NewLLMClient(baseURL, apiKey string, timeout time.Duration) *resty.Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	if strings.TrimSpace(apiKey) != "" {
		client.SetAuthToken(apiKey)
	}
	return client
}

// LLMFacade generates assistant replies through a chat completions endpoint.
type LLMFacade struct {
	client       *resty.Client
	model        string
	temperature  float32
	systemPrompt string
}

// NewLLMFacade creates a new facade over the given client.
func NewLLMFacade(client *resty.Client, model string, temperature float32, systemPrompt string) *LLMFacade {
	return &LLMFacade{
		client:       client,
		model:        model,
		temperature:  temperature,
		systemPrompt: systemPrompt,
	}
}

// BuildPrompt returns the system instruction, the history oldest first and the
// current message. History entries with an unknown role are skipped.
func BuildPrompt(systemPrompt, message string, history []models.Turn) []openai.ChatCompletionMessage {
	prompt := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	prompt = append(prompt, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: systemPrompt})
	for _, turn := range history {
		switch turn.Role {
		case models.RoleUser:
			prompt = append(prompt, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: turn.Content})
		case models.RoleAssistant:
			prompt = append(prompt, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: turn.Content})
		}
	}
	return append(prompt, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: message})
}

// Reply asks the model for the next assistant message. Every failure is
// reported as an upstream error wrapping the cause.
func (f *LLMFacade) Reply(ctx context.Context, message string, history []models.Turn) (string, error) {
	request := openai.ChatCompletionRequest{
		Model:       f.model,
		Messages:    BuildPrompt(f.systemPrompt, message, history),
		Temperature: f.temperature,
	}

	start := time.Now()
	var completion openai.ChatCompletionResponse
	resp, err := f.client.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&completion).
		Post("/chat/completions")
	metrics.LLMRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		reason := "transport"
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) ||
			(errors.As(err, &netErr) && netErr.Timeout()) {
			reason = "timeout"
		}
		return "", f.fail(reason, err)
	}
	if resp.IsError() {
		return "", f.fail("status", fmt.Errorf("llm api error: %d %s", resp.StatusCode(), strings.TrimSpace(resp.String())))
	}
	if len(completion.Choices) == 0 {
		return "", f.fail("empty", errors.New("llm api returned no choices"))
	}

	logger.Log.Debugw("llm reply received",
		"model", f.model,
		"history", len(history),
		"prompt_tokens", completion.Usage.PromptTokens,
		"completion_tokens", completion.Usage.CompletionTokens,
		"duration", time.Since(start),
	)
	return completion.Choices[0].Message.Content, nil
}

func (f *LLMFacade) fail(reason string, cause error) error {
	metrics.LLMErrorsTotal.WithLabelValues(reason).Inc()
	logger.Log.Errorw("failed to fetch llm reply", "model", f.model, "reason", reason, "error", cause)
	return apperrors.Wrap(apperrors.Upstream, models.ErrLLMUnavailable.Message, cause)
}
