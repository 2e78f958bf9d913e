package realtime

import (
	"encoding/json"

	"ghar-ko-sathi/internal/pkg/errs"
)

var (
	ErrSessionClosed  = errs.New("session closed")
	ErrSendBufferFull = errs.New("session send buffer full")
)

// Envelope is one event on the duplex channel, in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func NewEnvelope(event string, payload any) (Envelope, error) {
	if payload == nil {
		return Envelope{Event: event}, nil
	}
	if raw, ok := payload.(json.RawMessage); ok {
		return Envelope{Event: event, Data: raw}, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, errs.Wrapf(err, "encode %s payload", event)
	}
	return Envelope{Event: event, Data: data}, nil
}

// Session is one live client connection. Send must not block on the network;
// envelopes handed to one session are written in the order Send was called.
type Session interface {
	ID() string
	Send(env Envelope) error
	Close() error
}
