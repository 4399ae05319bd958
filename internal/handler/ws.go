package handler

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"spinwheel/internal/hub"
)

const sendTimeout = 5 * time.Second

// WSHandler upgrades display connections on /ws and hands them to the hub.
type WSHandler struct {
	Hub    *hub.Hub
	Logger *zap.Logger
}

func (h *WSHandler) Register(r *gin.Engine) {
	r.GET("/ws", h.serve)
}

func (h *WSHandler) serve(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("websocket accept failed", zap.Error(err))
		}
		return
	}

	sess := newWSSession(conn)
	h.Hub.Register(sess)
	defer h.Hub.Unregister(sess.ID())

	// Displays never send application messages; the read loop exists to run
	// the protocol (pings, close frames) and detect disconnects.
	ctx := c.Request.Context()
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			break
		}
	}
	sess.Close("connection gone")
}

// wsSession adapts a websocket connection to hub.Session. Writes are
// serialized and bounded so one slow display cannot wedge a broadcast.
type wsSession struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func newWSSession(conn *websocket.Conn) *wsSession {
	return &wsSession{id: uuid.NewString(), conn: conn}
}

func (s *wsSession) ID() string {
	return s.id
}

func (s *wsSession) Send(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	return s.conn.Write(ctx, websocket.MessageText, data)
}

func (s *wsSession) Close(reason string) {
	_ = s.conn.Close(websocket.StatusNormalClosure, reason)
}
