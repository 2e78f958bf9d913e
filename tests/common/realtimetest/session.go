package realtimetest

import (
	"encoding/json"
	"sync"

	"ghar-ko-sathi/internal/realtime"
)

// Session records every envelope sent to it.
type Session struct {
	id string

	mu     sync.Mutex
	sent   []realtime.Envelope
	closed bool
	err    error
}

func NewSession(id string) *Session {
	return &Session{id: id}
}

func (s *Session) ID() string { return s.id }

func (s *Session) Send(env realtime.Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if s.closed {
		return realtime.ErrSessionClosed
	}
	s.sent = append(s.sent, env)
	return nil
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// FailWith makes every later Send return err.
func (s *Session) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *Session) Sent() []realtime.Envelope {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]realtime.Envelope, len(s.sent))
	copy(out, s.sent)
	return out
}

func (s *Session) Events() []string {
	sent := s.Sent()
	out := make([]string, 0, len(sent))
	for _, env := range sent {
		out = append(out, env.Event)
	}
	return out
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Decode unmarshals the data of the i-th envelope into v.
func (s *Session) Decode(i int, v any) error {
	sent := s.Sent()
	return json.Unmarshal(sent[i].Data, v)
}
