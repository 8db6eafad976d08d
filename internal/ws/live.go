package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/config"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/logger"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/models"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/render"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/view"
	"go.uber.org/zap"
)

// WebSocket message types for the live search protocol.
const (
	MsgTypeSetIngredient = "set_ingredient" // Ingredient field edited
	MsgTypeSetDiet       = "set_diet"       // Diet select changed
	MsgTypeSetTime       = "set_time"       // Time select changed
	MsgTypeToggleTheme   = "toggle_theme"   // Theme button pressed
	MsgTypeSearch        = "search"         // Search button pressed
	MsgTypeKeyDown       = "key_down"       // Key pressed in the ingredient field
	MsgTypeState         = "state"          // Rendered page state
	MsgTypeError         = "error"          // Error message
	MsgTypeConnected     = "connected"      // Connection confirmed
)

// WSMessage is the envelope for all messages sent over the live socket.
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ValuePayload carries the new value of an input control.
type ValuePayload struct {
	Value string `json:"value"`
}

// KeyPayload carries a key name as reported by the browser.
type KeyPayload struct {
	Key string `json:"key"`
}

// ErrorPayload carries an error message to the client.
type ErrorPayload struct {
	Message string `json:"message"`
}

// ConnectedPayload confirms a successful connection and names the session
// so the page can reattach to it.
type ConnectedPayload struct {
	SessionID string `json:"session_id"`
}

// LiveHandler drives per-session SearchViews over WebSocket connections.
type LiveHandler struct {
	Hub      *Hub
	Sessions *view.Registry
	Palettes *config.Palettes

	upgrader websocket.Upgrader
	// spawn runs searches off the read loop so overlapping searches
	// proceed independently.
	spawn func(func())
}

// NewLiveHandler returns a new LiveHandler. allowedOrigins lists the page
// origins allowed to open a socket; localhost is always allowed.
func NewLiveHandler(hub *Hub, sessions *view.Registry, palettes *config.Palettes, allowedOrigins []string) *LiveHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimRight(strings.TrimSpace(o), "/")] = true
	}

	return &LiveHandler{
		Hub:      hub,
		Sessions: sessions,
		Palettes: palettes,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return originAllowed(r.Header.Get("Origin"), allowed)
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		spawn: func(f func()) { go f() },
	}
}

// originAllowed reports whether a socket may be opened from origin.
// Requests without an Origin header do not come from a browser page.
func originAllowed(origin string, allowed map[string]bool) bool {
	if origin == "" || allowed[origin] {
		return true
	}
	// Allow localhost for development
	return strings.HasPrefix(origin, "http://localhost:") || origin == "http://localhost"
}

// HandleLiveSearch upgrades GET /v1/ws/search to a WebSocket bound to a
// search session. An existing session is resumed via the "session" query
// parameter; otherwise a new one is created.
func (h *LiveHandler) HandleLiveSearch(c *gin.Context) {
	log := logger.Get()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	requested := c.Query("session")
	sessionID, v := h.Sessions.GetOrCreate(requested)

	client := &Client{
		Hub:       h.Hub,
		Conn:      conn,
		Send:      make(chan []byte, sendBuffer),
		SessionID: sessionID,
	}
	if !h.Hub.Add(client) {
		if sessionID != requested {
			h.Sessions.Remove(sessionID)
		}
		conn.Close()
		return
	}
	h.attach(sessionID, v)

	h.Hub.SendTo(client, encode(MsgTypeConnected, ConnectedPayload{SessionID: sessionID}))
	h.Hub.SendTo(client, encode(MsgTypeState, render.Build(v.Snapshot(), h.Palettes)))

	log.Info("live search session started",
		zap.String("session_id", sessionID),
		zap.Bool("resumed", sessionID == requested),
	)

	go client.WritePump()
	go client.ReadPump(func(cl *Client, data []byte) {
		h.handleMessage(cl, v, data)
	})
}

// attach publishes every state change of v to the session's clients.
func (h *LiveHandler) attach(sessionID string, v *view.SearchView) {
	v.OnChange(func(snap view.Snapshot) {
		h.Hub.Publish(sessionID, encode(MsgTypeState, render.Build(snap, h.Palettes)))
	})
}

// handleMessage dispatches one client message to the session's view.
func (h *LiveHandler) handleMessage(client *Client, v *view.SearchView, data []byte) {
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		h.sendError(client, "invalid message format")
		return
	}

	logger.Get().Debug("received ws message",
		zap.String("type", msg.Type),
		zap.String("session_id", client.SessionID),
	)

	switch msg.Type {
	case MsgTypeSetIngredient, MsgTypeSetDiet, MsgTypeSetTime:
		var p ValuePayload
		if err := decodePayload(msg.Payload, &p); err != nil {
			h.sendError(client, "invalid "+msg.Type+" payload")
			return
		}
		switch msg.Type {
		case MsgTypeSetIngredient:
			v.SetIngredient(p.Value)
		case MsgTypeSetDiet:
			v.SetDiet(models.ParseDietFilter(p.Value))
		case MsgTypeSetTime:
			v.SetTime(models.ParseTimeFilter(p.Value))
		}

	case MsgTypeToggleTheme:
		v.ToggleTheme()

	case MsgTypeSearch:
		h.spawn(func() { v.Search(context.Background()) })

	case MsgTypeKeyDown:
		var p KeyPayload
		if err := decodePayload(msg.Payload, &p); err != nil {
			h.sendError(client, "invalid key_down payload")
			return
		}
		if p.Key != view.CommitKey {
			return
		}
		h.spawn(func() { v.HandleKey(context.Background(), p.Key) })

	default:
		h.sendError(client, "unknown message type: "+msg.Type)
	}
}

// sendError sends an error message to a single client.
func (h *LiveHandler) sendError(client *Client, message string) {
	h.Hub.SendTo(client, encode(MsgTypeError, ErrorPayload{Message: message}))
}

// decodePayload unmarshals an optional payload; a missing payload leaves
// v at its zero value.
func decodePayload(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

// encode builds a WSMessage. Payload types are plain structs, so marshaling
// cannot fail.
func encode(msgType string, payload interface{}) []byte {
	raw, _ := json.Marshal(payload)
	data, _ := json.Marshal(WSMessage{Type: msgType, Payload: raw})
	return data
}
