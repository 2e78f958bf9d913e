package client

import (
	"context"
	"net/http"
	"sync"
	"time"

	"ghar-ko-sathi/internal/pkg/errs"
	"ghar-ko-sathi/internal/realtime"

	"github.com/gorilla/websocket"
)

// WSConn is a reconnectable websocket Conn. Send fails fast with
// ErrTransportUnavailable while no socket is open.
type WSConn struct {
	url          string
	header       http.Header
	dialer       *websocket.Dialer
	writeTimeout time.Duration

	mu   sync.Mutex
	conn *websocket.Conn
}

func NewWSConn(url, token string) *WSConn {
	return &WSConn{
		url:          url,
		header:       http.Header{"Authorization": []string{"Bearer " + token}},
		dialer:       websocket.DefaultDialer,
		writeTimeout: 10 * time.Second,
	}
}

func (w *WSConn) Connect(ctx context.Context) error {
	conn, _, err := w.dialer.DialContext(ctx, w.url, w.header)
	if err != nil {
		return errs.Mark(errs.Wrap(err, "dial"), ErrTransportUnavailable)
	}
	w.mu.Lock()
	if w.conn != nil {
		_ = w.conn.Close()
	}
	w.conn = conn
	w.mu.Unlock()
	return nil
}

func (w *WSConn) Connected() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn != nil
}

func (w *WSConn) Send(ctx context.Context, env realtime.Envelope) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn == nil {
		return ErrTransportUnavailable
	}

	deadline := time.Now().Add(w.writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = w.conn.SetWriteDeadline(deadline)
	if err := w.conn.WriteJSON(env); err != nil {
		_ = w.conn.Close()
		w.conn = nil
		return errs.Mark(errs.Wrap(err, "write"), ErrTransportUnavailable)
	}
	return nil
}

// Run reads pushes until the socket fails, handing each to handle. The
// caller reconnects and calls Resync afterwards.
func (w *WSConn) Run(ctx context.Context, handle func(realtime.Envelope)) error {
	w.mu.Lock()
	conn := w.conn
	w.mu.Unlock()
	if conn == nil {
		return ErrTransportUnavailable
	}

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	for {
		var env realtime.Envelope
		if err := conn.ReadJSON(&env); err != nil {
			w.mu.Lock()
			if w.conn == conn {
				w.conn = nil
			}
			w.mu.Unlock()
			_ = conn.Close()
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errs.Mark(errs.Wrap(err, "read"), ErrTransportUnavailable)
		}
		handle(env)
	}
}

func (w *WSConn) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn == nil {
		return nil
	}
	_ = w.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	err := w.conn.Close()
	w.conn = nil
	return err
}
