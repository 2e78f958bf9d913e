//go:build e2e

package helper

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"ghar-ko-sathi/internal/domain/user"
	"ghar-ko-sathi/internal/realtime"
	"ghar-ko-sathi/tests/common/authtest"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

const defaultWait = 5 * time.Second

// WSClient is one authenticated socket with a buffered view of inbound events.
type WSClient struct {
	t     *testing.T
	conn  *websocket.Conn
	inbox chan realtime.Envelope
	Actor user.Actor
}

func Dial(t *testing.T, url, token string, actor user.Actor) *WSClient {
	t.Helper()

	header := http.Header{}
	header.Set("Authorization", authtest.BearerHeader(token))
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	c := &WSClient{t: t, conn: conn, inbox: make(chan realtime.Envelope, 64), Actor: actor}
	go c.readLoop()
	t.Cleanup(c.Close)
	return c
}

func (c *WSClient) readLoop() {
	defer close(c.inbox)
	for {
		var env realtime.Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			return
		}
		c.inbox <- env
	}
}

func (c *WSClient) Close() {
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	_ = c.conn.Close()
}

func (c *WSClient) Send(event string, data any) {
	c.t.Helper()

	env, err := realtime.NewEnvelope(event, data)
	require.NoError(c.t, err)
	require.NoError(c.t, c.conn.WriteJSON(env))
}

// Register binds the socket and waits for the acknowledgement.
func (c *WSClient) Register() {
	c.t.Helper()

	c.Send("register", map[string]any{"userId": c.Actor.ID, "role": c.Actor.Role.String()})
	c.Expect("registered")
}

// Expect skips unrelated events until event arrives and returns it. An
// unexpected actionRejected fails the test.
func (c *WSClient) Expect(event string) realtime.Envelope {
	c.t.Helper()

	deadline := time.After(defaultWait)
	for {
		select {
		case env, ok := <-c.inbox:
			require.True(c.t, ok, "socket closed while waiting for %s", event)
			if env.Event == event {
				return env
			}
			if env.Event == "actionRejected" {
				require.Failf(c.t, "action rejected", "waiting for %s: %s", event, string(env.Data))
			}
		case <-deadline:
			require.Failf(c.t, "timeout", "no %s within %s", event, defaultWait)
			return realtime.Envelope{}
		}
	}
}

// ExpectNone fails if event shows up within wait.
func (c *WSClient) ExpectNone(event string, wait time.Duration) {
	c.t.Helper()

	deadline := time.After(wait)
	for {
		select {
		case env, ok := <-c.inbox:
			if !ok {
				return
			}
			require.NotEqual(c.t, event, env.Event, "unexpected %s: %s", event, string(env.Data))
		case <-deadline:
			return
		}
	}
}

// Decode unmarshals the event payload into a fresh T.
func Decode[T any](t *testing.T, env realtime.Envelope) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v), string(env.Data))
	return v
}

// NewActor returns a fresh identity with a signed token.
func NewActor(t *testing.T, jwt *authtest.JWTHelper, role user.Role) (user.Actor, string) {
	t.Helper()

	actor := user.Actor{ID: uuid.New(), Role: role}
	return actor, jwt.GenerateToken(t, actor.ID, role)
}
