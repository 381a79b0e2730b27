package llm

import (
	"context"
	"errors"
	"io"
	"testing"
)

// MockModel is a test double that satisfies the LanguageModel interface.
type MockModel struct {
	GenerateFunc func(ctx context.Context, prompt string) (string, error)
	StreamFunc   func(ctx context.Context, prompt string) (TextStream, error)
}

func (m *MockModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	return "mock response", nil
}

func (m *MockModel) StreamText(ctx context.Context, prompt string) (TextStream, error) {
	if m.StreamFunc != nil {
		return m.StreamFunc(ctx, prompt)
	}
	return &sliceStream{fragments: []string{"mock stream"}}, nil
}

// sliceStream yields fixed fragments, then err (or io.EOF).
type sliceStream struct {
	fragments []string
	err       error
	pos       int
	done      bool
	closed    int
}

func (s *sliceStream) Next() (TextFragment, error) {
	if s.done {
		return TextFragment{}, io.EOF
	}
	if s.pos < len(s.fragments) {
		s.pos++
		return TextFragment{Text: s.fragments[s.pos-1]}, nil
	}
	s.done = true
	if s.err != nil {
		return TextFragment{}, s.err
	}
	return TextFragment{}, io.EOF
}

func (s *sliceStream) Close() error {
	s.closed++
	return nil
}

func TestLanguageModelInterface(t *testing.T) {
	var model LanguageModel = &MockModel{}
	ctx := context.Background()

	text, err := model.GenerateText(ctx, "test")
	if err != nil {
		t.Fatal(err)
	}
	if text == "" {
		t.Error("expected non-empty response")
	}

	stream, err := model.StreamText(ctx, "test")
	if err != nil {
		t.Fatal(err)
	}
	frag, err := stream.Next()
	if err != nil {
		t.Fatal(err)
	}
	if frag.Text == "" {
		t.Error("expected non-empty fragment")
	}
}

func TestCollect(t *testing.T) {
	stream := &sliceStream{fragments: []string{"hello ", "world", "!"}}

	text, err := Collect(stream)
	if err != nil {
		t.Fatal(err)
	}
	if text != "hello world!" {
		t.Errorf("expected 'hello world!', got %q", text)
	}
	if stream.closed == 0 {
		t.Error("expected stream to be closed")
	}
}

func TestCollectKeepsPartialTextOnError(t *testing.T) {
	boom := errors.New("boom")
	stream := &sliceStream{fragments: []string{"A", "B"}, err: boom}

	text, err := Collect(stream)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if text != "AB" {
		t.Errorf("expected partial text 'AB', got %q", text)
	}
}

func TestFragmentsYieldsErrorOnce(t *testing.T) {
	boom := errors.New("boom")
	stream := &sliceStream{fragments: []string{"A"}, err: boom}

	var texts []string
	var errs []error
	for frag, err := range Fragments(stream) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		texts = append(texts, frag.Text)
	}
	if len(texts) != 1 || texts[0] != "A" {
		t.Errorf("expected [A], got %v", texts)
	}
	if len(errs) != 1 || !errors.Is(errs[0], boom) {
		t.Errorf("expected exactly one boom error, got %v", errs)
	}
}

func TestFragmentsClosesOnBreak(t *testing.T) {
	stream := &sliceStream{fragments: []string{"one", "two", "three"}}

	for frag, err := range Fragments(stream) {
		if err != nil {
			t.Fatal(err)
		}
		if frag.Text == "one" {
			break
		}
	}
	if stream.closed != 1 {
		t.Errorf("expected stream closed once, got %d", stream.closed)
	}
	if stream.pos != 1 {
		t.Errorf("expected one fragment pulled, got %d", stream.pos)
	}
}
