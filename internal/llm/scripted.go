// scripted.go implements a canned backend client.
//
// Each Stream call plays the next scripted response: its text is emitted
// in small fragments (exercising chunk-boundary handling downstream),
// followed by any tool calls. Scripts can be loaded from a YAML file for
// demo sessions, or constructed directly in tests.

package llm

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// ScriptedResponse is one canned model response.
type ScriptedResponse struct {
	Text  string     `yaml:"text"`
	Calls []ToolCall `yaml:"calls,omitempty"`
	Fail  string     `yaml:"fail,omitempty"` // non-empty: simulate a transport failure
}

// Scripted is a backend client that replays canned responses in order.
// Safe for the single cooperative conversation flow; the mutex guards
// test inspection of recorded requests.
type Scripted struct {
	Responses []ScriptedResponse
	ChunkSize int // text fragment size (default 16 bytes)

	mu       sync.Mutex
	next     int
	requests []Request
}

// LoadScript reads scripted responses from a YAML file.
func LoadScript(path string) (*Scripted, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script %s: %w", path, err)
	}
	var responses []ScriptedResponse
	if err := yaml.Unmarshal(data, &responses); err != nil {
		return nil, fmt.Errorf("malformed script %s: %w", path, err)
	}
	return &Scripted{Responses: responses}, nil
}

// Stream plays the next scripted response.
func (s *Scripted) Stream(_ context.Context, req Request) (<-chan Chunk, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	if s.next >= len(s.Responses) {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: script exhausted after %d responses", ErrTransport, len(s.Responses))
	}
	resp := s.Responses[s.next]
	s.next++
	size := s.ChunkSize
	s.mu.Unlock()

	if size <= 0 {
		size = 16
	}

	ch := make(chan Chunk)
	go func() {
		defer close(ch)
		if resp.Fail != "" {
			ch <- Chunk{Err: fmt.Errorf("%w: %s", ErrTransport, resp.Fail)}
			return
		}
		for text := resp.Text; text != ""; {
			n := size
			if n > len(text) {
				n = len(text)
			}
			ch <- Chunk{Text: text[:n]}
			text = text[n:]
		}
		for i := range resp.Calls {
			call := resp.Calls[i]
			if call.ID == "" {
				call.ID = fmt.Sprintf("call_%d", i+1)
			}
			ch <- Chunk{Call: &call}
		}
	}()
	return ch, nil
}

// Requests returns the requests received so far (for tests).
func (s *Scripted) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}
