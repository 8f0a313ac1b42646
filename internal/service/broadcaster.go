package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToRoom(roomID string, msgType string, payload interface{})
	DisconnectRoom(roomID string)
}

type noopBroadcaster struct{}

func (noopBroadcaster) BroadcastToRoom(string, string, interface{}) {}
func (noopBroadcaster) DisconnectRoom(string)                       {}
