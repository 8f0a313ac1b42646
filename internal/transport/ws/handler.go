package ws

import (
	"context"
	"dialectgame/internal/model"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // local screens only
	},
}

// RoomService is the part of the game service the socket layer needs
type RoomService interface {
	Room(ctx context.Context, roomID string) (*model.GameRoom, error)
	SendChat(ctx context.Context, roomID, playerID, text, kind string) (model.ChatMessage, error)
}

// Handler handles WebSocket connections
type Handler struct {
	hub *Hub
	svc RoomService
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, svc RoomService) *Handler {
	return &Handler{
		hub: hub,
		svc: svc,
	}
}

type chatPayload struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

// RoomWS handles GET /v1/ws/rooms/{code}?playerId=...
// Without a playerId the connection is a read-only spectator screen.
func (h *Handler) RoomWS(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	playerID := r.URL.Query().Get("playerId")

	room, err := h.svc.Room(r.Context(), code)
	if err != nil {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	if playerID != "" && room.PlayerIndex(playerID) < 0 {
		http.Error(w, "player not in room", http.StatusForbidden)
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	conn := &Connection{
		RoomID:   code,
		PlayerID: playerID,
		Send:     make(chan []byte, 256),
		Hub:      h.hub,
	}

	h.hub.Register(conn)
	h.hub.sendTo(conn, "room_state", map[string]any{"room": room.PublicView()})

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn)
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection) {
	defer func() {
		h.hub.Unregister(conn)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("room", conn.RoomID).Msg("websocket error")
			}
			break
		}
		h.handleInbound(conn, data)
	}
}

// handleInbound accepts chat from player connections; everything else is ignored
func (h *Handler) handleInbound(conn *Connection, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil || msg.Type != MsgChat || conn.PlayerID == "" {
		return
	}

	var chat chatPayload
	if err := json.Unmarshal(msg.Payload, &chat); err != nil {
		h.hub.sendTo(conn, MsgError, map[string]string{"error": "invalid chat payload"})
		return
	}
	if _, err := h.svc.SendChat(context.Background(), conn.RoomID, conn.PlayerID, chat.Message, chat.Kind); err != nil {
		h.hub.sendTo(conn, MsgError, map[string]string{"error": err.Error()})
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := wsConn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
