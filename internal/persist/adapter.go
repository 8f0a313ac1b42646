package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"dialectgame/internal/model"
)

const (
	roomKeyPrefix = "multiplayer-room-"

	// HistoryKey holds the list of completed games, oldest first
	HistoryKey = "multiplayer-game-history"

	DefaultHistoryCap = 50
)

// RoomKey is the store key of a room snapshot
func RoomKey(roomID string) string {
	return roomKeyPrefix + roomID
}

// IsRoomKey reports whether key holds a room snapshot
func IsRoomKey(key string) bool {
	return strings.HasPrefix(key, roomKeyPrefix)
}

// Adapter serializes rooms and finished-game history to a Store.
// Unreadable stored data is logged and treated as absent.
type Adapter struct {
	store      Store
	historyCap int
	historyMu  sync.Mutex
}

// NewAdapter wraps store. A historyCap below 1 uses DefaultHistoryCap.
func NewAdapter(store Store, historyCap int) *Adapter {
	if historyCap < 1 {
		historyCap = DefaultHistoryCap
	}
	return &Adapter{store: store, historyCap: historyCap}
}

// HistoryCap is the most finished games the local history keeps
func (a *Adapter) HistoryCap() int {
	return a.historyCap
}

func (a *Adapter) SaveRoom(ctx context.Context, room *model.GameRoom) error {
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("encode room %s: %w", room.ID, err)
	}
	if err := a.store.Set(ctx, RoomKey(room.ID), data); err != nil {
		return fmt.Errorf("save room %s: %w", room.ID, err)
	}
	return nil
}

// LoadRoom returns nil, nil when the room is absent or its snapshot is corrupt
func (a *Adapter) LoadRoom(ctx context.Context, roomID string) (*model.GameRoom, error) {
	data, err := a.store.Get(ctx, RoomKey(roomID))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load room %s: %w", roomID, err)
	}

	var room model.GameRoom
	if err := json.Unmarshal(data, &room); err != nil {
		log.Warn().Err(err).Str("room", roomID).Msg("discarding corrupt room snapshot")
		return nil, nil
	}
	if room.ID != roomID {
		log.Warn().Str("room", roomID).Str("stored", room.ID).Msg("discarding room snapshot with mismatched id")
		return nil, nil
	}
	return &room, nil
}

func (a *Adapter) DeleteRoom(ctx context.Context, roomID string) error {
	if err := a.store.Delete(ctx, RoomKey(roomID)); err != nil {
		return fmt.Errorf("delete room %s: %w", roomID, err)
	}
	return nil
}

// LoadHistory returns completed games oldest first. Corrupt history reads as empty.
func (a *Adapter) LoadHistory(ctx context.Context) ([]model.GameResults, error) {
	data, err := a.store.Get(ctx, HistoryKey)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	var history []model.GameResults
	if err := json.Unmarshal(data, &history); err != nil {
		log.Warn().Err(err).Msg("discarding corrupt game history")
		return nil, nil
	}
	return history, nil
}

// AppendHistory adds a finished game, dropping the oldest entries past the cap
func (a *Adapter) AppendHistory(ctx context.Context, results model.GameResults) error {
	a.historyMu.Lock()
	defer a.historyMu.Unlock()

	history, err := a.LoadHistory(ctx)
	if err != nil {
		return err
	}
	history = append(history, results)
	if over := len(history) - a.historyCap; over > 0 {
		history = history[over:]
	}

	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := a.store.Set(ctx, HistoryKey, data); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

func (a *Adapter) ClearHistory(ctx context.Context) error {
	return a.store.Delete(ctx, HistoryKey)
}
