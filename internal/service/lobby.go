package service

import (
	"context"
	"dialectgame/internal/game"
	"dialectgame/internal/model"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// RoomSummary is the lobby listing view of a room
type RoomSummary struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	State      model.GameState `json:"state"`
	Players    int             `json:"players"`
	MaxPlayers int             `json:"maxPlayers"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// CreateRoom opens a WAITING room hosted by a new player. A nil config uses
// model.DefaultGameConfig.
func (s *GameService) CreateRoom(ctx context.Context, name, hostName string, cfg *model.GameConfig) (*model.GameRoom, error) {
	config := model.DefaultGameConfig()
	if cfg != nil {
		config = *cfg
	}
	if strings.TrimSpace(name) == "" {
		name = strings.TrimSpace(hostName) + "'s room"
	}

	code, err := s.generateRoomCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate room code: %w", err)
	}

	now := s.now()
	host := model.Player{ID: newPlayerID(), Name: strings.TrimSpace(hostName)}
	room, err := game.CreateRoom(code, name, host, config, now)
	if err != nil {
		return nil, err
	}
	s.emit(room, model.EventRoomCreated, host.ID, map[string]any{"name": name}, now)
	game.AppendSystemMessage(room, fmt.Sprintf("%s created the room", host.Name), now)

	s.mu.Lock()
	s.rooms[code] = &roomEntry{room: room, limiters: make(map[string]*rate.Limiter)}
	s.mu.Unlock()

	s.persist(ctx, room)
	log.Info().Str("room", code).Str("player", host.ID).Msg("room created")
	return room.Clone(), nil
}

// JoinRoom adds a new player to a WAITING room
func (s *GameService) JoinRoom(ctx context.Context, roomID, playerName string) (*model.GameRoom, model.Player, error) {
	player := model.Player{ID: newPlayerID(), Name: strings.TrimSpace(playerName)}

	room, err := s.update(ctx, roomID, func(room *model.GameRoom, now time.Time) error {
		if err := game.AddPlayer(room, player, now); err != nil {
			return err
		}
		s.emit(room, model.EventPlayerJoined, player.ID, map[string]any{"name": player.Name}, now)
		game.AppendSystemMessage(room, fmt.Sprintf("%s joined", player.Name), now)
		return nil
	})
	if err != nil {
		return nil, model.Player{}, err
	}

	joined, _ := room.Player(player.ID)
	log.Info().Str("room", roomID).Str("player", player.ID).Int("players", len(room.Players)).Msg("player joined")
	s.broadcast(room, string(model.EventPlayerJoined), map[string]any{"player": joined})
	return room, *joined, nil
}

// LeaveRoom removes a player. The last player out disposes of the room.
func (s *GameService) LeaveRoom(ctx context.Context, roomID, playerID string) (*model.GameRoom, error) {
	var hostChanged bool
	room, err := s.update(ctx, roomID, func(room *model.GameRoom, now time.Time) error {
		p, ok := room.Player(playerID)
		if !ok {
			return fmt.Errorf("%w: %s", game.ErrPlayerNotFound, playerID)
		}
		name := p.Name
		prevHost := room.HostID

		if err := game.RemovePlayer(room, playerID); err != nil {
			return err
		}
		s.emit(room, model.EventPlayerLeft, playerID, map[string]any{"name": name}, now)
		game.AppendSystemMessage(room, fmt.Sprintf("%s left", name), now)

		if room.HostID != prevHost && room.HostID != "" {
			hostChanged = true
			s.emit(room, model.EventHostChanged, room.HostID, map[string]any{"previous": prevHost}, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("room", roomID).Str("player", playerID).Int("players", len(room.Players)).Msg("player left")
	if room.IsEmpty() {
		return room, nil
	}
	if s.leaderboard != nil {
		if err := s.leaderboard.Remove(ctx, roomID, playerID); err != nil {
			log.Warn().Err(err).Str("room", roomID).Msg("failed to update leaderboard")
		}
	}
	s.broadcast(room, string(model.EventPlayerLeft), map[string]any{"playerId": playerID})
	if hostChanged {
		s.broadcast(room, string(model.EventHostChanged), map[string]any{"hostId": room.HostID})
	}
	return room, nil
}

// SetReady toggles a player's readiness
func (s *GameService) SetReady(ctx context.Context, roomID, playerID string, ready bool) (*model.GameRoom, error) {
	room, err := s.update(ctx, roomID, func(room *model.GameRoom, now time.Time) error {
		if err := game.SetReady(room, playerID, ready); err != nil {
			return err
		}
		s.emit(room, model.EventPlayerReady, playerID, map[string]any{"ready": ready}, now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.broadcast(room, string(model.EventPlayerReady), map[string]any{"playerId": playerID, "ready": ready})
	return room, nil
}

// SetAllReady toggles everyone's readiness; host only
func (s *GameService) SetAllReady(ctx context.Context, roomID, requesterID string, ready bool) (*model.GameRoom, error) {
	room, err := s.update(ctx, roomID, func(room *model.GameRoom, now time.Time) error {
		if err := requireHost(room, requesterID); err != nil {
			return err
		}
		game.SetAllReady(room, ready)
		s.emit(room, model.EventPlayerReady, "", map[string]any{"ready": ready, "all": true}, now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.broadcast(room, string(model.EventPlayerReady), map[string]any{"all": true, "ready": ready})
	return room, nil
}

// TransferHost hands the host role to another player; host only
func (s *GameService) TransferHost(ctx context.Context, roomID, requesterID, newHostID string) (*model.GameRoom, error) {
	room, err := s.update(ctx, roomID, func(room *model.GameRoom, now time.Time) error {
		if err := requireHost(room, requesterID); err != nil {
			return err
		}
		if err := game.TransferHost(room, newHostID); err != nil {
			return err
		}
		s.emit(room, model.EventHostChanged, newHostID, map[string]any{"previous": requesterID}, now)
		if p, ok := room.Player(newHostID); ok {
			game.AppendSystemMessage(room, fmt.Sprintf("%s is now the host", p.Name), now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.broadcast(room, string(model.EventHostChanged), map[string]any{"hostId": newHostID})
	return room, nil
}

// Room returns a snapshot of a live room
func (s *GameService) Room(ctx context.Context, roomID string) (*model.GameRoom, error) {
	e, err := s.entry(ctx, roomID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.room == nil {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}
	return e.room.Clone(), nil
}

// ListRooms summarises live rooms, newest first
func (s *GameService) ListRooms() []RoomSummary {
	s.mu.Lock()
	entries := make([]*roomEntry, 0, len(s.rooms))
	for _, e := range s.rooms {
		entries = append(entries, e)
	}
	s.mu.Unlock()

	summaries := make([]RoomSummary, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		if r := e.room; r != nil {
			summaries = append(summaries, RoomSummary{
				ID:         r.ID,
				Name:       r.Name,
				State:      r.State,
				Players:    len(r.Players),
				MaxPlayers: r.Config.MaxPlayers,
				CreatedAt:  r.CreatedAt,
			})
		}
		e.mu.Unlock()
	}
	slices.SortFunc(summaries, func(a, b RoomSummary) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return summaries
}

func requireHost(room *model.GameRoom, playerID string) error {
	if room.PlayerIndex(playerID) < 0 {
		return fmt.Errorf("%w: %s", game.ErrPlayerNotFound, playerID)
	}
	if room.HostID != playerID {
		return ErrNotHost
	}
	return nil
}
