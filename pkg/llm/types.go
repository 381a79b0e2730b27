package llm

import (
	"fmt"
	"strings"
	"time"
)

// TextFragment is one unit of generated text. Streams yield them in the order
// the backend produced them.
type TextFragment struct {
	Text string `json:"text"`
}

// Message represents a chat message sent to the backend.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Model identifies the backend model variant a client targets.
type Model string

const (
	ModelGPT4o  Model = "chatgpt-4o-latest"
	ModelO1     Model = "o1"
	ModelO1Mini Model = "o1-mini"
	ModelO3Mini Model = "o3-mini"
)

var modelAliases = map[string]Model{
	"gpt-4o":  ModelGPT4o,
	"gpt4o":   ModelGPT4o,
	"o1":      ModelO1,
	"o1-mini": ModelO1Mini,
	"o3-mini": ModelO3Mini,
}

// Models returns the supported model identifiers.
func Models() []Model {
	return []Model{ModelGPT4o, ModelO1, ModelO1Mini, ModelO3Mini}
}

// Valid reports whether m is one of the supported models.
func (m Model) Valid() bool {
	for _, known := range Models() {
		if m == known {
			return true
		}
	}
	return false
}

// ParseModel accepts a wire identifier ("chatgpt-4o-latest") or a short
// alias ("gpt-4o").
func ParseModel(s string) (Model, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if m := Model(s); m.Valid() {
		return m, nil
	}
	if m, ok := modelAliases[s]; ok {
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownModel, s)
}

// Config holds common configuration for LLM clients.
type Config struct {
	BaseURL string
	APIKey  string
	Model   Model
	Timeout time.Duration
}
