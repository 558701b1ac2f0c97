package handler

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/orchid-haven/orchid-backend/internal/events"
	"github.com/orchid-haven/orchid-backend/internal/middleware"
	"github.com/orchid-haven/orchid-backend/internal/service"
	"github.com/orchid-haven/orchid-backend/pkg/logger"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second // Time allowed to write a message to the peer
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10 // 54 seconds
	maxMessageSize = 512                 // the feed is one-way; clients only send control frames
	initialEvents  = 50
)

// Feed message types
const (
	FeedSnapshot       = "snapshot"
	FeedEvent          = "event"
	FeedSessionExpired = "session_expired"
	FeedShutdown       = "shutdown"
)

// FeedMessage is what the live admin feed writes to the socket.
type FeedMessage struct {
	Type   string         `json:"type"`
	Event  *events.Event  `json:"event,omitempty"`
	Events []events.Event `json:"events,omitempty"` // snapshot, oldest first
	Error  string         `json:"error,omitempty"`
}

// EventsHandler streams activity to admin dashboards over a websocket.
// A session ends when the token it was opened with expires.
type EventsHandler struct {
	hub      *events.Hub
	history  EventHistory
	upgrader websocket.Upgrader
	clients  map[*websocket.Conn]*feedClient
	mu       sync.Mutex
}

type feedClient struct {
	conn        *websocket.Conn
	username    string
	connectedAt time.Time
	expiresAt   time.Time
}

func NewEventsHandler(hub *events.Hub, history EventHistory, allowedOrigins []string) *EventsHandler {
	return &EventsHandler{
		hub:     hub,
		history: history,
		upgrader: websocket.Upgrader{
			CheckOrigin: checkOrigin(allowedOrigins),
		},
		clients: make(map[*websocket.Conn]*feedClient),
	}
}

// checkOrigin accepts requests without an Origin header (non-browser
// clients) and browser requests from the configured front-end origins.
func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(allowed, origin)
	}
}

// GET /api/events
func (h *EventsHandler) Stream(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Access token required",
		})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Warn("Failed to upgrade connection",
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		return
	}

	client := &feedClient{
		conn:        conn,
		username:    claims.Username,
		connectedAt: time.Now(),
		expiresAt:   time.Now().Add(service.TokenLifetime),
	}
	if claims.ExpiresAt != nil {
		client.expiresAt = claims.ExpiresAt.Time
	}

	h.addClient(client)
	defer h.removeClient(conn)

	// Subscribe before reading history so nothing falls between the two
	feed, cancel := h.hub.Subscribe()
	defer cancel()

	if err := h.sendSnapshot(client); err != nil {
		logger.Log.Warn("Failed to send activity snapshot",
			zap.String("username", client.username),
			zap.Error(err),
		)
		return
	}

	closed := make(chan struct{})
	go h.readClient(client, closed)

	h.writeClient(client, feed, closed)
}

// readClient consumes control frames until the peer goes away.
// The socket has a single writer: writeClient.
func (h *EventsHandler) readClient(client *feedClient, closed chan<- struct{}) {
	defer close(closed)

	client.conn.SetReadLimit(maxMessageSize)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Log.Debug("Feed connection closed",
					zap.String("username", client.username),
					zap.Error(err),
				)
			}
			return
		}
	}
}

func (h *EventsHandler) writeClient(client *feedClient, feed <-chan events.Event, closed <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	sessionTimer := time.NewTimer(time.Until(client.expiresAt))
	defer sessionTimer.Stop()

	for {
		select {
		case e, ok := <-feed:
			if !ok {
				h.closeClientGracefully(client, FeedShutdown, "server shutting down")
				return
			}
			if err := h.write(client, FeedMessage{Type: FeedEvent, Event: &e}); err != nil {
				logger.Log.Debug("Failed to send event",
					zap.String("username", client.username),
					zap.Error(err),
				)
				return
			}

		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.Debug("Ping failed",
					zap.String("username", client.username),
					zap.Error(err),
				)
				return
			}

		case <-sessionTimer.C:
			logger.Log.Info("Feed session expired",
				zap.String("username", client.username),
			)
			h.closeClientGracefully(client, FeedSessionExpired, "token expired")
			return

		case <-closed:
			return
		}
	}
}

func (h *EventsHandler) sendSnapshot(client *feedClient) error {
	recent, err := h.history.Recent(initialEvents)
	if err != nil {
		return err
	}
	// Recent is newest first; the snapshot reads in time order
	slices.Reverse(recent)

	return h.write(client, FeedMessage{Type: FeedSnapshot, Events: recent})
}

func (h *EventsHandler) write(client *feedClient, msg FeedMessage) error {
	client.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return client.conn.WriteJSON(msg)
}

func (h *EventsHandler) closeClientGracefully(client *feedClient, msgType, reason string) {
	if err := h.write(client, FeedMessage{Type: msgType, Error: reason}); err != nil {
		logger.Log.Debug("Failed to send close notice",
			zap.String("username", client.username),
			zap.Error(err),
		)
	}

	client.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := client.conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason),
	); err != nil {
		logger.Log.Debug("Failed to send close frame",
			zap.String("username", client.username),
			zap.Error(err),
		)
	}
}

func (h *EventsHandler) addClient(client *feedClient) {
	h.mu.Lock()
	h.clients[client.conn] = client
	total := len(h.clients)
	h.mu.Unlock()

	logger.Log.Info("Feed client connected",
		zap.String("username", client.username),
		zap.Int("total", total),
	)
}

func (h *EventsHandler) removeClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, exists := h.clients[conn]
	if exists {
		delete(h.clients, conn)
		conn.Close()

		logger.Log.Info("Feed client disconnected",
			zap.String("username", client.username),
			zap.Duration("session_duration", time.Since(client.connectedAt).Round(time.Second)),
			zap.Int("remaining", len(h.clients)),
		)
	}
}

