package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/cardcompass/backend/internal/domain"
)

const systemPrompt = `You are a helpful credit card recommendation assistant for Indian consumers. Guide the user through a short conversation about their income, spending categories, preferred benefits and credit score range. Ask one question at a time, keep responses to 2-3 sentences, use Indian context and terminology, and once you have enough information say you are ready to provide recommendations.`

// Client talks to an OpenAI-compatible chat completions endpoint. Calls are
// paced by a rate limiter and never retried: a single failure is reported to
// the caller, which degrades to rule-based text.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	rateLimiter *rate.Limiter
	logger      *zap.SugaredLogger
}

// NewClient creates an LLM client. requestsPerHour bounds outbound traffic.
func NewClient(apiKey, baseURL, model string, timeout time.Duration, requestsPerHour int, logger *zap.SugaredLogger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if requestsPerHour <= 0 {
		requestsPerHour = 1000
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	limiter := rate.NewLimiter(rate.Limit(float64(requestsPerHour)/3600), 10)

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		apiKey:      apiKey,
		baseURL:     baseURL,
		model:       model,
		rateLimiter: limiter,
		logger:      logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the conversation and returns the assistant's reply text.
func (c *Client) Complete(ctx context.Context, messages []domain.Message) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrLLMUnavailable, err)
	}

	payload := chatRequest{
		Model:       c.model,
		MaxTokens:   300,
		Temperature: 0.7,
		Messages:    make([]chatMessage, 0, len(messages)+1),
	}
	payload.Messages = append(payload.Messages, chatMessage{Role: "system", Content: systemPrompt})
	for _, msg := range messages {
		payload.Messages = append(payload.Messages, chatMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/chat/completions", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrLLMUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrLLMUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warnw("llm request failed", "status", resp.StatusCode)
		return "", fmt.Errorf("%w: status %d", domain.ErrLLMUnavailable, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", domain.ErrLLMUnavailable)
	}

	return parsed.Choices[0].Message.Content, nil
}
