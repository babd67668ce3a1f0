package notify

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ShikhaMathur02/Visitor-System/internal/model"
	"github.com/ShikhaMathur02/Visitor-System/pkg/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	// per-client outbound buffer; a client that falls this far behind
	// starts dropping messages instead of stalling the hub
	sendBufferSize = 32
)

// envelope is the wire format pushed to clients.
type envelope struct {
	Event     string      `json:"event"`
	Message   string      `json:"message"`
	Severity  Severity    `json:"severity,omitempty"`
	Record    interface{} `json:"record,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// target selects the recipients of one message: either every client
// holding a role, or the single user identified by userID.
type target struct {
	role   string
	userID string
}

type outbound struct {
	target  target
	payload []byte
}

// client is one connected dashboard session.
type client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID string
	role   string
}

// Hub keeps the set of connected clients and routes messages to them.
// It implements Dispatcher.
type Hub struct {
	register   chan *client
	unregister chan *client
	messages   chan outbound
	clients    map[*client]struct{}
	upgrader   websocket.Upgrader
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewHub builds a Hub. Run must be started on its own goroutine before
// any client connects. m may be nil.
func NewHub(allowOrigins []string, m *metrics.Metrics, logger *zap.Logger) *Hub {
	origins := make(map[string]struct{}, len(allowOrigins))
	for _, o := range allowOrigins {
		origins[o] = struct{}{}
	}

	return &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		messages:   make(chan outbound, 256),
		clients:    make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true // non-browser client
				}
				_, ok := origins[origin]
				return ok
			},
		},
		metrics: m,
		logger:  logger,
	}
}

// Run processes registrations and message routing until the process
// exits.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.logger.Info("notification client connected",
				zap.String("user_id", c.userID),
				zap.String("role", c.role),
			)

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.logger.Info("notification client disconnected",
					zap.String("user_id", c.userID),
				)
			}

		case msg := <-h.messages:
			for c := range h.clients {
				if !msg.target.matches(c) {
					continue
				}
				select {
				case c.send <- msg.payload:
				default:
					// slow client: drop the message, keep the workflow
					h.metrics.IncrementNotificationsDropped("slow_client")
					h.logger.Warn("dropping notification for slow client",
						zap.String("user_id", c.userID),
						zap.String("role", c.role),
					)
				}
			}
		}
	}
}

func (t target) matches(c *client) bool {
	if t.userID != "" {
		return c.userID == t.userID
	}
	return c.role == t.role
}

// ── Dispatcher implementation ──

// NotifyDirector broadcasts to connected directors.
func (h *Hub) NotifyDirector(message string, severity Severity) {
	h.emit(target{role: model.RoleDirector}, envelope{
		Event:    EventDirectorNotification,
		Message:  message,
		Severity: severity,
	})
}

// NotifyGuard broadcasts to connected guards.
func (h *Hub) NotifyGuard(message string, severity Severity) {
	h.emit(target{role: model.RoleGuard}, envelope{
		Event:    EventGuardNotification,
		Message:  message,
		Severity: severity,
	})
}

// NotifyFaculty delivers to one faculty member's room.
func (h *Hub) NotifyFaculty(facultyID, event, message string, record interface{}) {
	h.emit(target{userID: facultyID}, envelope{
		Event:   event,
		Message: message,
		Record:  record,
	})
}

func (h *Hub) emit(t target, env envelope) {
	env.Timestamp = time.Now().Format(time.RFC3339)

	payload, err := json.Marshal(env)
	if err != nil {
		h.logger.Error("marshal notification", zap.Error(err))
		return
	}

	select {
	case h.messages <- outbound{target: t, payload: payload}:
	default:
		h.metrics.IncrementNotificationsDropped("queue_full")
		h.logger.Warn("notification queue full, dropping event",
			zap.String("event", env.Event),
		)
	}
}

// ── connection handling ──

// ServeWS upgrades an authenticated request to a websocket session.
// Authentication happens in the HTTP shell; userID and role come from
// the verified token.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID, role string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		userID: userID,
		role:   role,
	}
	h.register <- c

	go c.writePump()
	go c.readPump()
}

// readPump drains the connection so control frames are processed; the
// dashboards never send application messages.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump forwards queued payloads and keeps the connection alive
// with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
