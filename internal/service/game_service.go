package service

import (
	"context"
	"crypto/rand"
	"dialectgame/internal/cache"
	"dialectgame/internal/game"
	"dialectgame/internal/model"
	"dialectgame/internal/persist"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrNotHost         = errors.New("only the host can do that")
	ErrChatRateLimited = errors.New("sending messages too fast")
	ErrEmptyMessage    = errors.New("message is empty")
)

// QuestionSource produces the question sequence for a room
type QuestionSource interface {
	Generate(cfg model.GameConfig) ([]model.Question, error)
}

// Archive keeps finished games beyond the local history list. GetLatest
// returns nil when the room was never archived.
type Archive interface {
	Save(ctx context.Context, results *model.GameResults) error
	GetLatest(ctx context.Context, roomID string) (*model.GameResults, error)
	ListRecent(ctx context.Context, limit int) ([]*model.GameResults, error)
}

// Options tunes a GameService
type Options struct {
	ChatRate    rate.Limit // messages per second per player
	ChatBurst   int
	AutoAdvance bool // advance as soon as every player has answered
	Now         func() time.Time
}

// GameService owns every live room. Calls on one room are serialized; each
// call works on a copy of the room that replaces it only on success.
type GameService struct {
	store     *persist.Adapter
	questions QuestionSource
	opts      Options

	mu    sync.Mutex
	rooms map[string]*roomEntry

	broadcaster Broadcaster
	leaderboard cache.LeaderboardCache
	archive     Archive
}

type roomEntry struct {
	mu       sync.Mutex
	room     *model.GameRoom
	limiters map[string]*rate.Limiter
}

// NewGameService creates a new game service
func NewGameService(store *persist.Adapter, questions QuestionSource, opts Options) *GameService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ChatRate <= 0 {
		opts.ChatRate = rate.Limit(1)
	}
	if opts.ChatBurst < 1 {
		opts.ChatBurst = 5
	}
	return &GameService{
		store:       store,
		questions:   questions,
		opts:        opts,
		rooms:       make(map[string]*roomEntry),
		broadcaster: noopBroadcaster{},
	}
}

// SetBroadcaster sets the broadcaster (called after hub is created)
func (s *GameService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SetLeaderboard mirrors scores into a leaderboard cache
func (s *GameService) SetLeaderboard(lb cache.LeaderboardCache) {
	s.leaderboard = lb
}

// SetArchive stores finished games in a long-term archive
func (s *GameService) SetArchive(a Archive) {
	s.archive = a
}

func (s *GameService) now() time.Time {
	return s.opts.Now()
}

// entry finds a live room, reloading it from the store if this process
// has not seen it yet.
func (s *GameService) entry(ctx context.Context, roomID string) (*roomEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.rooms[roomID]; ok {
		return e, nil
	}
	room, err := s.store.LoadRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil || room.IsEmpty() {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}
	log.Info().Str("room", roomID).Str("state", string(room.State)).Msg("room restored from store")
	e := &roomEntry{room: room, limiters: make(map[string]*rate.Limiter)}
	s.rooms[roomID] = e
	return e, nil
}

// update runs fn on a copy of the room under the room lock. The copy
// replaces the live room and is persisted only when fn succeeds.
func (s *GameService) update(ctx context.Context, roomID string, fn func(room *model.GameRoom, now time.Time) error) (*model.GameRoom, error) {
	e, err := s.entry(ctx, roomID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.room == nil {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}
	work := e.room.Clone()
	if err := fn(work, s.now()); err != nil {
		return nil, err
	}
	e.room = work

	if work.IsEmpty() {
		s.dispose(ctx, e, roomID)
		return work.Clone(), nil
	}
	s.persist(ctx, work)
	return work.Clone(), nil
}

func (s *GameService) persist(ctx context.Context, room *model.GameRoom) {
	if err := s.store.SaveRoom(ctx, room); err != nil {
		log.Warn().Err(err).Str("room", room.ID).Msg("failed to persist room")
	}
}

// dispose drops an emptied room everywhere. Caller holds e.mu.
func (s *GameService) dispose(ctx context.Context, e *roomEntry, roomID string) {
	e.room = nil
	s.mu.Lock()
	delete(s.rooms, roomID)
	s.mu.Unlock()

	if err := s.store.DeleteRoom(ctx, roomID); err != nil {
		log.Warn().Err(err).Str("room", roomID).Msg("failed to delete room")
	}
	if s.leaderboard != nil {
		if err := s.leaderboard.Clear(ctx, roomID); err != nil {
			log.Warn().Err(err).Str("room", roomID).Msg("failed to clear leaderboard")
		}
	}
	s.broadcaster.DisconnectRoom(roomID)
	log.Info().Str("room", roomID).Msg("room disposed")
}

func (s *GameService) emit(room *model.GameRoom, typ model.GameEventType, playerID string, data map[string]any, now time.Time) model.GameEvent {
	return game.AppendEvent(room, game.NewEvent(typ, playerID, data, now))
}

func (s *GameService) broadcast(room *model.GameRoom, msgType string, payload map[string]any) {
	if payload == nil {
		payload = map[string]any{}
	}
	payload["room"] = room.PublicView()
	s.broadcaster.BroadcastToRoom(room.ID, msgType, payload)
}

func newPlayerID() string {
	return "p_" + uuid.New().String()[:8]
}

// generateRoomCode creates a 6-char alphanumeric code
func (s *GameService) generateRoomCode(ctx context.Context) (string, error) {
	const chars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	const codeLen = 6

	for attempts := 0; attempts < 10; attempts++ {
		b := make([]byte, codeLen)
		if _, err := rand.Read(b); err != nil {
			return "", err
		}

		code := make([]byte, codeLen)
		for i := range code {
			code[i] = chars[int(b[i])%len(chars)]
		}
		codeStr := string(code)

		// Check uniqueness
		s.mu.Lock()
		_, live := s.rooms[codeStr]
		s.mu.Unlock()
		if live {
			continue
		}
		stored, err := s.store.LoadRoom(ctx, codeStr)
		if err != nil {
			return "", err
		}
		if stored == nil {
			return codeStr, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique room code")
}
