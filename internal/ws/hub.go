package ws

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/logger"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096

	// Outbound messages buffered per client before it is dropped.
	sendBuffer = 64
)

// Client represents a single WebSocket connection attached to a session.
type Client struct {
	Hub       *Hub
	Conn      *websocket.Conn
	Send      chan []byte
	SessionID string
}

// Hub tracks the connections of every live session and fans state
// messages out to them. Several tabs may share one session.
type Hub struct {
	Sessions   map[string]map[*Client]bool // sessionID -> set of clients
	Unregister chan *Client
	Broadcast  chan *SessionMessage
	mu         sync.RWMutex
	stopped    bool
	done       chan struct{}
}

// SessionMessage carries a message destined for every client of a session.
type SessionMessage struct {
	SessionID string
	Message   []byte
}

// NewHub creates and returns a new Hub instance.
func NewHub() *Hub {
	return &Hub{
		Sessions:   make(map[string]map[*Client]bool),
		Unregister: make(chan *Client),
		Broadcast:  make(chan *SessionMessage),
		done:       make(chan struct{}),
	}
}

// Add registers client with its session. It returns false once the hub
// has stopped.
func (h *Hub) Add(client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return false
	}
	if h.Sessions[client.SessionID] == nil {
		h.Sessions[client.SessionID] = make(map[*Client]bool)
	}
	h.Sessions[client.SessionID][client] = true

	logger.Get().Info("live client registered", zap.String("session_id", client.SessionID))
	return true
}

// Publish queues msg for every client of sessionID. It returns false once
// the hub has stopped.
func (h *Hub) Publish(sessionID string, msg []byte) bool {
	select {
	case h.Broadcast <- &SessionMessage{SessionID: sessionID, Message: msg}:
		return true
	case <-h.done:
		return false
	}
}

// SendTo queues msg for a single registered client without blocking. It
// returns false if the client is gone or its buffer is full.
func (h *Hub) SendTo(client *Client, msg []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if !h.Sessions[client.SessionID][client] {
		return false
	}
	select {
	case client.Send <- msg:
		return true
	default:
		return false
	}
}

// Run handles unregister and broadcast events until ctx is done.
// It should be launched as a goroutine.
func (h *Hub) Run(ctx context.Context) error {
	log := logger.Get()

	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			return nil

		case client := <-h.Unregister:
			h.mu.Lock()
			h.removeLocked(client)
			h.mu.Unlock()

			log.Info("live client unregistered", zap.String("session_id", client.SessionID))

		case msg := <-h.Broadcast:
			h.mu.Lock()
			for client := range h.Sessions[msg.SessionID] {
				select {
				case client.Send <- msg.Message:
				default:
					// Client's send buffer is full; disconnect it.
					log.Warn("dropping slow live client", zap.String("session_id", client.SessionID))
					h.removeLocked(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// ClientCount returns the number of clients attached to sessionID.
func (h *Hub) ClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.Sessions[sessionID])
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.Sessions[client.SessionID]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}
	delete(clients, client)
	close(client.Send)
	if len(clients) == 0 {
		delete(h.Sessions, client.SessionID)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopped = true
	for _, clients := range h.Sessions {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}

// ReadPump reads messages from the WebSocket connection. It is intended to be
// run in a per-client goroutine. The provided handler is called for each
// incoming message.
func (c *Client) ReadPump(handler func(*Client, []byte)) {
	defer func() {
		select {
		case c.Hub.Unregister <- c:
		case <-c.Hub.done:
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
			) {
				logger.Get().Warn("unexpected websocket close",
					zap.String("session_id", c.SessionID),
					zap.Error(err),
				)
			}
			break
		}
		handler(c, message)
	}
}

// WritePump sends messages from the Send channel to the WebSocket connection.
// It also sends periodic pings to keep the connection alive. It is intended to
// be run in a per-client goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
