package ws

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Client message types; room events reuse the event type names
const (
	MsgChat  MessageType = "chat"
	MsgError MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans room updates out to every screen watching a room
type Hub struct {
	// Room -> connections
	rooms map[string]map[*Connection]struct{}

	mu sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
	disconnect chan string
}

// Connection represents a WebSocket connection
type Connection struct {
	RoomID   string
	PlayerID string // Empty for spectator screens
	Send     chan []byte
	Hub      *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	RoomID  string
	To      *Connection // nil means the whole room
	Message *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		rooms:      make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		disconnect: make(chan string, 16),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.rooms[conn.RoomID] == nil {
				h.rooms[conn.RoomID] = make(map[*Connection]struct{})
			}
			h.rooms[conn.RoomID][conn] = struct{}{}
			h.mu.Unlock()
			log.Debug().Str("room", conn.RoomID).Str("player", conn.PlayerID).Msg("websocket connected")

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.rooms[conn.RoomID]; ok {
				if _, ok := conns[conn]; ok {
					delete(conns, conn)
					close(conn.Send)
					if len(conns) == 0 {
						delete(h.rooms, conn.RoomID)
					}
					log.Debug().Str("room", conn.RoomID).Str("player", conn.PlayerID).Msg("websocket disconnected")
				}
			}
			h.mu.Unlock()

		case roomID := <-h.disconnect:
			h.mu.Lock()
			for conn := range h.rooms[roomID] {
				close(conn.Send)
			}
			delete(h.rooms, roomID)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.rooms[msg.RoomID] {
				if msg.To != nil && msg.To != conn {
					continue
				}
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToRoom sends a message to every connection of a room (implements service.Broadcaster)
func (h *Hub) BroadcastToRoom(roomID string, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("room", roomID).Str("type", msgType).Msg("failed to encode broadcast")
		return
	}
	h.broadcast <- &BroadcastMessage{
		RoomID: roomID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// DisconnectRoom closes every connection of a disposed room (implements service.Broadcaster)
func (h *Hub) DisconnectRoom(roomID string) {
	h.disconnect <- roomID
}

// Connections counts the open connections of a room
func (h *Hub) Connections(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

// sendTo queues a message for a single connection if it is still registered
func (h *Hub) sendTo(conn *Connection, msgType MessageType, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		RoomID: conn.RoomID,
		To:     conn,
		Message: &Message{
			Type:    msgType,
			Payload: data,
		},
	}
}
