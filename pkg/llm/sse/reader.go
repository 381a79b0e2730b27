// Package sse reads Server-Sent Events from a byte stream.
// It only frames events; interpreting payloads is left to the caller.
package sse

import (
	"bufio"
	"io"
	"strings"
)

// maxLineSize bounds a single SSE line.
const maxLineSize = 1 << 20

// Event is a single SSE event with an optional type and data payload.
type Event struct {
	Type string // value of the "event:" field (may be empty)
	ID   string // value of the "id:" field (may be empty)
	Data string // "data:" field(s), joined with "\n"
}

// Reader reads SSE events from an io.Reader. It reads only as far as needed
// to complete the next event.
type Reader struct {
	scanner *bufio.Scanner
}

func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Reader{scanner: sc}
}

// Next returns the next event. Returns (Event{}, io.EOF) at end of stream.
// An event still pending when the stream ends is returned before io.EOF.
func (r *Reader) Next() (Event, error) {
	var ev Event
	var dataLines []string
	pending := false

	for r.scanner.Scan() {
		line := r.scanner.Text()

		if line == "" {
			if pending {
				ev.Data = strings.Join(dataLines, "\n")
				return ev, nil
			}
			continue
		}

		// Comment / keep-alive
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")

		switch field {
		case "event":
			ev.Type = value
			pending = true
		case "data":
			dataLines = append(dataLines, value)
			pending = true
		case "id":
			ev.ID = value
			pending = true
		}
		// retry: and unknown fields are ignored
	}

	if err := r.scanner.Err(); err != nil {
		return Event{}, err
	}
	if pending {
		ev.Data = strings.Join(dataLines, "\n")
		return ev, nil
	}
	return Event{}, io.EOF
}
