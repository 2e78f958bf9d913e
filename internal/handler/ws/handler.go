package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"ghar-ko-sathi/internal/domain/booking"
	"ghar-ko-sathi/internal/domain/user"
	"ghar-ko-sathi/internal/handler/httperr"
	"ghar-ko-sathi/internal/handler/middleware"
	"ghar-ko-sathi/internal/pkg/config"
	"ghar-ko-sathi/internal/realtime"
	"ghar-ko-sathi/internal/realtime/presence"
	"ghar-ko-sathi/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Events sent by the server that are not booking transitions.
const (
	EventRegistered          = "registered"
	EventActionRejected      = "actionRejected"
	EventAvailabilityUpdated = "availabilityUpdated"
)

type LocationBroadcaster interface {
	UpdateLocation(ctx context.Context, connID string, loc booking.Location) (*presence.LocationUpdate, error)
	Disconnect(connID string) (presence.Record, bool)
}

type Handler struct {
	commands    commands.BookingCommands
	registry    *presence.Registry
	broadcaster LocationBroadcaster
	cfg         config.RealtimeConfig
	upgrader    websocket.Upgrader
	logger      *slog.Logger
	routes      map[string]eventHandler
}

func NewHandler(
	cmds commands.BookingCommands,
	registry *presence.Registry,
	broadcaster LocationBroadcaster,
	cfg config.Config,
	logger *slog.Logger,
) *Handler {
	h := &Handler{
		commands:    cmds,
		registry:    registry,
		broadcaster: broadcaster,
		cfg:         cfg.Realtime,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     middleware.OriginChecker(cfg.CORS),
		},
		logger: logger,
	}
	h.routes = h.eventRoutes()
	return h
}

// @Summary Live booking channel
// @Description Upgrades to a websocket carrying {event, data} envelopes in both directions
// @Tags realtime
// @Security BearerAuth
// @Param token query string false "Access token when headers cannot be set"
// @Success 101
// @Failure 401 {object} httperr.Response
// @Router /ws [get]
func (h *Handler) Serve(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader has already answered the request
		h.logger.Debug("websocket upgrade failed", slog.Any("error", err))
		return
	}

	s := newSession(conn, h.cfg, h.logger)
	s.logger.Info("websocket connected",
		slog.String("user_id", actor.ID.String()),
		slog.String("role", actor.Role.String()))

	go s.writeLoop()
	h.readLoop(c.Request.Context(), s, actor)
}

func (h *Handler) readLoop(ctx context.Context, s *session, actor user.Actor) {
	defer func() {
		h.broadcaster.Disconnect(s.ID())
		_ = s.Close()
		s.logger.Info("websocket disconnected", slog.String("user_id", actor.ID.String()))
	}()

	s.conn.SetReadLimit(h.cfg.ReadLimitBytes)
	_ = s.conn.SetReadDeadline(time.Now().Add(h.cfg.PongTimeout))
	s.conn.SetPongHandler(func(string) error {
		h.registry.Touch(s.ID())
		return s.conn.SetReadDeadline(time.Now().Add(h.cfg.PongTimeout))
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("websocket read failed", slog.Any("error", err))
			}
			return
		}
		_ = s.conn.SetReadDeadline(time.Now().Add(h.cfg.PongTimeout))

		var env realtime.Envelope
		if err := json.Unmarshal(raw, &env); err != nil || env.Event == "" {
			h.reject(s, "", nil, errMalformed(err))
			continue
		}
		h.handle(ctx, s, actor, env)
	}
}

// handle runs one inbound event. Failures become actionRejected envelopes;
// nothing here ends the connection.
func (h *Handler) handle(ctx context.Context, s realtime.Session, actor user.Actor, env realtime.Envelope) {
	route, ok := h.routes[env.Event]
	if !ok {
		h.reject(s, env.Event, env.Data, &eventError{code: httperr.CodeUnknownEvent, msg: "unknown event " + env.Event})
		return
	}
	if env.Event != "register" {
		if _, registered := h.registry.ByConnection(s.ID()); !registered {
			h.reject(s, env.Event, env.Data, presence.ErrNotRegistered)
			return
		}
		h.registry.Touch(s.ID())
	}

	if err := route(ctx, s, actor, env.Data); err != nil {
		h.reject(s, env.Event, env.Data, err)
	}
}

// ActionRejected is the payload sent back for a failed inbound event.
type ActionRejected struct {
	RequestEvent string `json:"requestEvent"`
	BookingID    string `json:"bookingId,omitempty"`
	Code         string `json:"code"`
	Message      string `json:"message"`
}

func (h *Handler) reject(s realtime.Session, requestEvent string, data json.RawMessage, err error) {
	rej := ActionRejected{RequestEvent: requestEvent, BookingID: peekBookingID(data)}

	var ee *eventError
	if asEventError(err, &ee) {
		rej.Code, rej.Message = ee.code, ee.msg
	} else {
		cl := httperr.Classify(err)
		rej.Code, rej.Message = cl.Code, cl.Message
		if cl.Code == httperr.CodeInternal {
			h.logger.Error("event handling failed",
				slog.String("event", requestEvent),
				slog.String("conn_id", s.ID()),
				slog.Any("error", err))
		}
	}

	env, encErr := realtime.NewEnvelope(EventActionRejected, rej)
	if encErr != nil {
		return
	}
	if sendErr := s.Send(env); sendErr != nil {
		h.logger.Debug("could not deliver actionRejected", slog.String("conn_id", s.ID()), slog.Any("error", sendErr))
	}
}

func peekBookingID(data json.RawMessage) string {
	if len(data) == 0 {
		return ""
	}
	var ref struct {
		BookingID string `json:"bookingId"`
	}
	if err := json.Unmarshal(data, &ref); err != nil {
		return ""
	}
	return ref.BookingID
}
