package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"wayfarer/internal/api/realtime"
	"wayfarer/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// browser clients are served from another origin; CORS rules apply upstream
	CheckOrigin: func(r *http.Request) bool { return true },
}

type RealtimeController struct {
	sessions services.SessionServiceInterface
	hub      *realtime.Hub
	log      *zap.Logger
}

func NewRealtimeController(sessions services.SessionServiceInterface, hub *realtime.Hub, log *zap.Logger) *RealtimeController {
	return &RealtimeController{sessions: sessions, hub: hub, log: log}
}

// Connect upgrades to a websocket carrying map, chat and locate frames for
// one session.
func (rc *RealtimeController) Connect(c *gin.Context) {
	sess, ok := loadSession(c, rc.sessions)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		rc.log.Warn("websocket upgrade failed", zap.String("session_id", sess.ID()), zap.Error(err))
		return
	}
	client := realtime.NewClient(conn, sess.ID())
	if !rc.hub.Register(client) {
		conn.Close()
		return
	}
	go client.WritePump()
	client.ReadPump(rc.hub, func(in realtime.Inbound) *realtime.Frame {
		return rc.dispatch(sess, client, in)
	})
}

// dispatch handles one inbound frame. Every frame counts as activity and
// slides the session's idle TTL.
func (rc *RealtimeController) dispatch(sess *services.PlannerSession, client *realtime.Client, in realtime.Inbound) *realtime.Frame {
	if _, err := rc.sessions.Get(sess.ID()); err != nil {
		return &realtime.Frame{Type: "error", Data: err.Error()}
	}
	switch in.Type {
	case "ready":
		rc.hub.MarkReady(client)
		sess.MapReady()
		return nil
	case "position", "position_error":
		rc.hub.ResolveLocation(sess.ID(), in)
		return nil
	case "tap":
		detail, err := sess.TapMarker(in.ID)
		if err != nil {
			return &realtime.Frame{Type: "error", Data: err.Error()}
		}
		return &realtime.Frame{Type: "detail", Data: detail}
	case "click":
		_, _ = sess.ClickMap()
		return nil
	case "day":
		if _, err := sess.SetDayView(in.Day); err != nil {
			return &realtime.Frame{Type: "error", Data: err.Error()}
		}
		return nil
	default:
		return &realtime.Frame{Type: "error", Data: "unknown message type " + in.Type}
	}
}
