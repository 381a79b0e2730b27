package llm

import (
	"context"
	"errors"
	"io"
	"iter"
	"strings"
)

// LanguageModel defines the interface for text generating backends.
// Implementations handle protocol-specific details such as request formatting,
// authentication, and response parsing.
type LanguageModel interface {
	// GenerateText sends prompt and blocks until the complete response is
	// available.
	GenerateText(ctx context.Context, prompt string) (string, error)

	// StreamText sends prompt and returns a lazy stream of fragments. Errors
	// returned here are setup failures; failures after that are reported by
	// the stream itself.
	StreamText(ctx context.Context, prompt string) (TextStream, error)
}

// TextStream is a single-pass, pull-based sequence of fragments.
//
// Next blocks until the next fragment is available. It returns io.EOF once
// the stream ended normally. An abnormal end is reported once as a non-EOF
// error; every call after a terminal result returns io.EOF. Fragments
// returned before an error remain valid.
//
// Close releases the underlying connection. It is safe to call more than once
// and after the stream has ended.
type TextStream interface {
	Next() (TextFragment, error)
	Close() error
}

// Fragments adapts s to a range-over-func iterator. The stream is closed when
// the loop finishes, including when the consumer breaks out early. A terminal
// error is yielded once with a zero fragment.
func Fragments(s TextStream) iter.Seq2[TextFragment, error] {
	return func(yield func(TextFragment, error) bool) {
		defer s.Close()
		for {
			frag, err := s.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(TextFragment{}, err)
				return
			}
			if !yield(frag, nil) {
				return
			}
		}
	}
}

// Collect drains s and returns the concatenated text. On abnormal end it
// returns the text received so far together with the error.
func Collect(s TextStream) (string, error) {
	var sb strings.Builder
	for frag, err := range Fragments(s) {
		if err != nil {
			return sb.String(), err
		}
		sb.WriteString(frag.Text)
	}
	return sb.String(), nil
}
