package service

import (
	"cmp"
	"context"
	"dialectgame/internal/cache"
	"dialectgame/internal/game"
	"dialectgame/internal/model"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
)

// Results summarises a finished room. Once the room is gone the archive
// answers with its last recorded game.
func (s *GameService) Results(ctx context.Context, roomID string) (model.GameResults, error) {
	room, err := s.Room(ctx, roomID)
	if errors.Is(err, ErrRoomNotFound) && s.archive != nil {
		archived, aerr := s.archive.GetLatest(ctx, roomID)
		if aerr != nil {
			log.Warn().Err(aerr).Str("room", roomID).Msg("archive lookup failed")
			return model.GameResults{}, err
		}
		if archived == nil {
			return model.GameResults{}, err
		}
		return *archived, nil
	}
	if err != nil {
		return model.GameResults{}, err
	}
	return game.ComputeResults(room)
}

// History lists finished games newest first. The archive is read when
// configured; the local history list is the fallback.
func (s *GameService) History(ctx context.Context) ([]model.GameResults, error) {
	if s.archive != nil {
		archived, err := s.archive.ListRecent(ctx, s.store.HistoryCap())
		if err == nil {
			history := make([]model.GameResults, 0, len(archived))
			for _, res := range archived {
				history = append(history, *res)
			}
			return history, nil
		}
		log.Warn().Err(err).Msg("archive read failed, using local history")
	}

	history, err := s.store.LoadHistory(ctx)
	if err != nil {
		return nil, err
	}
	slices.Reverse(history)
	return history, nil
}

// Leaderboard ranks the players of a room. The Redis mirror is read when
// configured; the room's own scores are the fallback.
func (s *GameService) Leaderboard(ctx context.Context, roomID string) ([]cache.LeaderboardEntry, error) {
	room, err := s.Room(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if s.leaderboard != nil && room.State != model.StateWaiting {
		entries, err := s.leaderboard.GetTop(ctx, roomID, 0)
		if err == nil && len(entries) > 0 {
			for i := range entries {
				if p, ok := room.Player(entries[i].PlayerID); ok {
					entries[i].Name = p.Name
				}
			}
			return entries, nil
		}
		if err != nil {
			log.Warn().Err(err).Str("room", roomID).Msg("leaderboard cache read failed, using room scores")
		}
	}

	entries := make([]cache.LeaderboardEntry, 0, len(room.Scores))
	for id, score := range room.Scores {
		e := cache.LeaderboardEntry{PlayerID: id, Points: score.TotalPoints, Rank: score.Rank}
		if p, ok := room.Player(id); ok {
			e.Name = p.Name
		}
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b cache.LeaderboardEntry) int {
		return cmp.Compare(a.Rank, b.Rank)
	})
	return entries, nil
}

// PlayerRank is one player's standing in a room, 1 being the leader
func (s *GameService) PlayerRank(ctx context.Context, roomID, playerID string) (cache.LeaderboardEntry, error) {
	room, err := s.Room(ctx, roomID)
	if err != nil {
		return cache.LeaderboardEntry{}, err
	}
	p, ok := room.Player(playerID)
	if !ok {
		return cache.LeaderboardEntry{}, fmt.Errorf("%w: %s", game.ErrPlayerNotFound, playerID)
	}
	score := room.Scores[playerID]
	entry := cache.LeaderboardEntry{PlayerID: playerID, Name: p.Name, Points: score.TotalPoints, Rank: score.Rank}

	if s.leaderboard != nil && room.State != model.StateWaiting {
		rank, err := s.leaderboard.GetRank(ctx, roomID, playerID)
		if err != nil {
			log.Warn().Err(err).Str("room", roomID).Msg("leaderboard cache read failed, using room scores")
		} else if rank > 0 {
			entry.Rank = int(rank)
		}
	}
	return entry, nil
}
