package ws

import (
	"log/slog"
	"sync"
	"time"

	"ghar-ko-sathi/internal/pkg/config"
	"ghar-ko-sathi/internal/realtime"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// session owns one websocket. A single writer goroutine drains the send
// queue, so envelopes reach the peer in the order Send accepted them.
type session struct {
	id     string
	conn   *websocket.Conn
	cfg    config.RealtimeConfig
	logger *slog.Logger

	send      chan realtime.Envelope
	done      chan struct{}
	closeOnce sync.Once
}

func newSession(conn *websocket.Conn, cfg config.RealtimeConfig, logger *slog.Logger) *session {
	id := uuid.NewString()
	return &session{
		id:     id,
		conn:   conn,
		cfg:    cfg,
		logger: logger.With(slog.String("conn_id", id)),
		send:   make(chan realtime.Envelope, cfg.SendBuffer),
		done:   make(chan struct{}),
	}
}

func (s *session) ID() string { return s.id }

// Send queues env without blocking on the network.
func (s *session) Send(env realtime.Envelope) error {
	select {
	case <-s.done:
		return realtime.ErrSessionClosed
	default:
	}
	select {
	case s.send <- env:
		return nil
	case <-s.done:
		return realtime.ErrSessionClosed
	default:
		return realtime.ErrSendBufferFull
	}
}

func (s *session) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	return nil
}

func (s *session) writeLoop() {
	ticker := time.NewTicker(s.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case env := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if err := s.conn.WriteJSON(env); err != nil {
				s.logger.Debug("websocket write failed", slog.Any("error", err))
				_ = s.Close()
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(s.cfg.WriteTimeout)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				_ = s.Close()
				return
			}
		case <-s.done:
			s.drain()
			deadline := time.Now().Add(s.cfg.WriteTimeout)
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
			return
		}
	}
}

// drain flushes what was queued before close so a final actionRejected is not lost.
func (s *session) drain() {
	for {
		select {
		case env := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if err := s.conn.WriteJSON(env); err != nil {
				return
			}
		default:
			return
		}
	}
}
