package openai

import "github.com/user/textgen/pkg/llm"

// chatRequest is the OpenAI chat completions request body.
type chatRequest struct {
	Model    llm.Model     `json:"model"`
	Messages []llm.Message `json:"messages"`
	Stream   bool          `json:"stream"`
}

// buildRequest maps a prompt to a single user turn. There is no system
// prompt and no history.
func buildRequest(model llm.Model, prompt string, stream bool) chatRequest {
	return chatRequest{
		Model: model,
		Messages: []llm.Message{
			{Role: "user", Content: prompt},
		},
		Stream: stream,
	}
}

// chatResponse is the OpenAI chat completions response body.
type chatResponse struct {
	Choices []choice `json:"choices"`
}

// choice represents a single completion choice.
type choice struct {
	Message responseMessage `json:"message"`
}

// responseMessage holds the message of a choice. Content is nil when the
// field is absent or null.
type responseMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
}

// streamChunk is one decoded SSE payload of a streamed completion. Choices
// and Delta are pointers so that absent or null fields can be told apart
// from empty ones.
type streamChunk struct {
	Choices *[]chunkChoice `json:"choices"`
	Error   *apiError      `json:"error,omitempty"`
}

type chunkChoice struct {
	Delta *chunkDelta `json:"delta"`
}

type chunkDelta struct {
	Content string `json:"content,omitempty"`
}

// apiError is the error object the API sends in place of a result.
type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    any    `json:"code"`
}
