// Package openai implements llm.LanguageModel for the OpenAI chat
// completions API, both single-shot and streamed.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/user/textgen/pkg/llm"
)

const (
	// APIKeyEnv names the environment variable consulted when no key is given.
	APIKeyEnv = "OPENAI_API_KEY"

	DefaultBaseURL = "https://api.openai.com/v1"
	defaultTimeout = 60 * time.Second
)

// Client implements the llm.LanguageModel interface for OpenAI-compatible
// APIs. It is immutable after construction and safe for concurrent use.
type Client struct {
	apiKey  string
	model   llm.Model
	baseURL string

	httpClient   *http.Client // bounded by Config.Timeout
	streamClient *http.Client // no overall timeout; bounded by ctx
}

var _ llm.LanguageModel = (*Client)(nil)

// Option customizes a Client at construction.
type Option func(*options)

type options struct {
	httpClient *http.Client
	lookupEnv  func(string) (string, bool)
}

// WithHTTPClient sets the transport used for all requests. Its Timeout is
// applied to GenerateText only.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithLookupEnv replaces os.LookupEnv for the API key fallback.
func WithLookupEnv(fn func(string) (string, bool)) Option {
	return func(o *options) { o.lookupEnv = fn }
}

// New creates a client for config.Model. An empty config.APIKey is resolved
// from OPENAI_API_KEY; if neither is set New fails with
// llm.ErrMissingCredential.
func New(config *llm.Config, opts ...Option) (*Client, error) {
	o := options{lookupEnv: os.LookupEnv}
	for _, opt := range opts {
		opt(&o)
	}

	if !config.Model.Valid() {
		return nil, fmt.Errorf("%w: %q", llm.ErrUnknownModel, config.Model)
	}

	apiKey, err := resolveAPIKey(config.APIKey, o.lookupEnv)
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := o.httpClient
	if httpClient == nil {
		timeout := config.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	streamClient := *httpClient
	streamClient.Timeout = 0

	return &Client{
		apiKey:       apiKey,
		model:        config.Model,
		baseURL:      baseURL,
		httpClient:   httpClient,
		streamClient: &streamClient,
	}, nil
}

// GPT4o creates a client for ModelGPT4o. Pass "" to read the key from the
// environment.
func GPT4o(apiKey string, opts ...Option) (*Client, error) {
	return New(&llm.Config{APIKey: apiKey, Model: llm.ModelGPT4o}, opts...)
}

// O1 creates a client for ModelO1.
func O1(apiKey string, opts ...Option) (*Client, error) {
	return New(&llm.Config{APIKey: apiKey, Model: llm.ModelO1}, opts...)
}

// O1Mini creates a client for ModelO1Mini.
func O1Mini(apiKey string, opts ...Option) (*Client, error) {
	return New(&llm.Config{APIKey: apiKey, Model: llm.ModelO1Mini}, opts...)
}

// O3Mini creates a client for ModelO3Mini.
func O3Mini(apiKey string, opts ...Option) (*Client, error) {
	return New(&llm.Config{APIKey: apiKey, Model: llm.ModelO3Mini}, opts...)
}

func resolveAPIKey(explicit string, lookupEnv func(string) (string, bool)) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if key, ok := lookupEnv(APIKeyEnv); ok && key != "" {
		return key, nil
	}
	return "", fmt.Errorf("%w: no API key given and %s is not set", llm.ErrMissingCredential, APIKeyEnv)
}

// Model returns the model the client targets.
func (c *Client) Model() llm.Model { return c.model }

// GenerateText sends prompt and returns the first choice's message content
// verbatim.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	requestID := uuid.NewString()
	resp, err := c.send(ctx, c.httpClient, requestID, buildRequest(c.model, prompt, false))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &llm.TransportError{Op: "read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &llm.DependencyError{
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
			Message:    "API error",
		}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", &llm.DecodeError{Raw: string(respBody), Err: err}
	}

	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == nil {
		return "", &llm.DependencyError{
			Body:    string(respBody),
			Message: "could not obtain message from response",
		}
	}

	text := *chatResp.Choices[0].Message.Content
	slog.Debug("openai completion finished", "request_id", requestID, "model", c.model, "chars", len(text))
	return text, nil
}

// StreamText sends prompt with streaming enabled and returns a stream over
// the response's delta contents. Failing to open the stream is returned
// here; everything after is reported by the stream's Next.
func (c *Client) StreamText(ctx context.Context, prompt string) (llm.TextStream, error) {
	requestID := uuid.NewString()
	resp, err := c.send(ctx, c.streamClient, requestID, buildRequest(c.model, prompt, true))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &llm.TransportError{Op: "read error response", Err: err}
		}
		return nil, &llm.DependencyError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Message:    "API error",
		}
	}

	return newTextStream(resp.Body, requestID), nil
}

func (c *Client) send(ctx context.Context, httpClient *http.Client, requestID string, reqBody chatRequest) (*http.Response, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Client-Request-Id", requestID)
	if reqBody.Stream {
		req.Header.Set("Accept", "text/event-stream")
	}

	slog.Debug("openai request", "request_id", requestID, "model", c.model, "stream", reqBody.Stream)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, &llm.TransportError{Op: "send request", Err: err}
	}
	return resp, nil
}
