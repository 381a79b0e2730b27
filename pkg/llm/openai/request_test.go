package openai

import (
	"encoding/json"
	"testing"

	"github.com/user/textgen/pkg/llm"
)

func TestBuildRequest(t *testing.T) {
	req := buildRequest(llm.ModelO1, "  raw prompt\n", true)

	if req.Model != llm.ModelO1 {
		t.Errorf("expected model o1, got %q", req.Model)
	}
	if !req.Stream {
		t.Error("expected stream=true")
	}
	if len(req.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(req.Messages))
	}
	if req.Messages[0].Role != "user" {
		t.Errorf("expected role user, got %q", req.Messages[0].Role)
	}
	if req.Messages[0].Content != "  raw prompt\n" {
		t.Errorf("expected prompt verbatim, got %q", req.Messages[0].Content)
	}
}

func TestBuildRequestWireFormat(t *testing.T) {
	data, err := json.Marshal(buildRequest(llm.ModelGPT4o, "hi", false))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"model":"chatgpt-4o-latest","messages":[{"role":"user","content":"hi"}],"stream":false}`
	if string(data) != want {
		t.Errorf("wire format:\n got %s\nwant %s", data, want)
	}
}

func TestBuildRequestFreshPerCall(t *testing.T) {
	a := buildRequest(llm.ModelGPT4o, "a", false)
	b := buildRequest(llm.ModelGPT4o, "b", false)
	a.Messages[0].Content = "changed"
	if b.Messages[0].Content != "b" {
		t.Error("requests must not share state")
	}
}
