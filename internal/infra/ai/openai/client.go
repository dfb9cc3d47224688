package openai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/bryanwahyu/ugc-analyzer/internal/domain/analysis"
)

// DefaultModel is used when neither the request nor the client names one.
const DefaultModel = "gpt-4o-mini"

type Client struct {
	*openai.Client
	Model     string
	MaxTokens int
}

// NewClient builds a streaming client. baseURL may point at any
// OpenAI-compatible endpoint; empty keeps the public API.
func NewClient(apiKey, baseURL, model string, maxTokens int) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{Client: openai.NewClientWithConfig(cfg), Model: model, MaxTokens: maxTokens}
}

// Stream opens one chat completion stream for req.
func (c *Client) Stream(ctx context.Context, req analysis.Request) (analysis.Stream, error) {
	model := req.Model
	if model == "" {
		model = c.Model
	}
	if model == "" {
		model = DefaultModel
	}
	ccr := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens and leave temperature at its default
	if isReasoningModel(model) {
		if c.MaxTokens > 0 {
			ccr.MaxCompletionTokens = c.MaxTokens
		}
	} else {
		ccr.Temperature = req.Temperature
		// Temperature is omitempty upstream; a bare 0 would fall back to the server default.
		if ccr.Temperature == 0 {
			ccr.Temperature = math.SmallestNonzeroFloat32
		}
		if c.MaxTokens > 0 {
			ccr.MaxTokens = c.MaxTokens
		}
	}

	stream, err := c.CreateChatCompletionStream(ctx, ccr)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion stream: %w", classify(err))
	}
	return &chatStream{stream: stream}, nil
}

type chatStream struct {
	stream *openai.ChatCompletionStream
}

func (s *chatStream) Recv() (string, error) {
	resp, err := s.stream.Recv()
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Delta.Content, nil
}

func (s *chatStream) Close() error {
	return s.stream.Close()
}

func isReasoningModel(model string) bool {
	m := strings.ToLower(strings.TrimSpace(model))
	for _, p := range []string{"o1", "o3", "o4", "gpt-5"} {
		if strings.HasPrefix(m, p) {
			return true
		}
	}
	return false
}

// classify tags provider quota errors so callers can match analysis.ErrQuotaExceeded.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %w", analysis.ErrQuotaExceeded, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %w", analysis.ErrQuotaExceeded, err)
	}
	return err
}

// Message extracts the provider's human-readable message from err, if any.
func Message(err error) (string, bool) {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if body := strings.TrimSpace(string(reqErr.Body)); body != "" {
			return fmt.Sprintf("%s: %s", reqErr.HTTPStatus, body), true
		}
		if reqErr.Err != nil {
			return reqErr.Err.Error(), true
		}
	}
	return "", false
}

var _ analysis.Streamer = (*Client)(nil)
