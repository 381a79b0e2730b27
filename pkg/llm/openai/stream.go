package openai

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/user/textgen/pkg/llm"
	"github.com/user/textgen/pkg/llm/sse"
)

// doneSentinel is the data payload that ends a streamed completion.
const doneSentinel = "[DONE]"

var errMissingChoices = errors.New("missing choices")

// textStream turns an SSE response body into text fragments. It is pull
// driven: every Next reads events only until it has one fragment or a
// terminal state. Not safe for concurrent use, except that Close may be
// called from another goroutine to abort a blocked Next.
type textStream struct {
	body      io.ReadCloser
	events    *sse.Reader
	requestID string

	done      bool
	fragments int
	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

var _ llm.TextStream = (*textStream)(nil)

func newTextStream(body io.ReadCloser, requestID string) *textStream {
	return &textStream{
		body:      body,
		events:    sse.NewReader(body),
		requestID: requestID,
	}
}

// Next returns the next non-empty delta content. After Close it reports
// io.EOF, including for a read that Close interrupted.
func (s *textStream) Next() (llm.TextFragment, error) {
	if s.done || s.closed.Load() {
		return llm.TextFragment{}, io.EOF
	}

	for {
		ev, err := s.events.Next()
		if errors.Is(err, io.EOF) {
			return s.finish(nil)
		}
		if errors.Is(err, bufio.ErrTooLong) {
			return s.finish(&llm.DecodeError{Err: err})
		}
		if err != nil {
			if s.closed.Load() {
				return s.finish(nil)
			}
			return s.finish(&llm.TransportError{Op: "read stream", Err: err})
		}

		// Compare before decoding: the sentinel is not JSON.
		if ev.Data == doneSentinel {
			return s.finish(nil)
		}
		if ev.Data == "" {
			continue
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(ev.Data), &chunk); err != nil {
			return s.finish(&llm.DecodeError{Raw: ev.Data, Err: err})
		}
		if chunk.Error != nil {
			return s.finish(&llm.DependencyError{Body: ev.Data, Message: chunk.Error.Message})
		}
		if err := chunk.validate(); err != nil {
			return s.finish(&llm.DecodeError{Raw: ev.Data, Err: err})
		}

		// Only the first choice is meaningful.
		choices := *chunk.Choices
		if len(choices) == 0 || choices[0].Delta.Content == "" {
			continue
		}

		s.fragments++
		return llm.TextFragment{Text: choices[0].Delta.Content}, nil
	}
}

// validate reports a chunk that decoded without error but lacks the fields
// every completion chunk carries.
func (c *streamChunk) validate() error {
	if c.Choices == nil {
		return errMissingChoices
	}
	for i, ch := range *c.Choices {
		if ch.Delta == nil {
			return fmt.Errorf("choice %d: missing delta", i)
		}
	}
	return nil
}

// finish moves the stream to its terminal state and releases the body. err
// is reported to the caller once; nil means normal end.
func (s *textStream) finish(err error) (llm.TextFragment, error) {
	s.done = true
	s.Close()
	if err != nil {
		slog.Debug("openai stream failed", "request_id", s.requestID, "fragments", s.fragments, "error", err)
		return llm.TextFragment{}, err
	}
	slog.Debug("openai stream finished", "request_id", s.requestID, "fragments", s.fragments)
	return llm.TextFragment{}, io.EOF
}

// Close releases the HTTP response body.
func (s *textStream) Close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.closeErr = s.body.Close()
	})
	return s.closeErr
}
