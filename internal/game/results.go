package game

import (
	"cmp"
	"slices"

	"dialectgame/internal/model"
)

// ComputeResults summarises a FINISHED room. Winner is the rank 1 standing;
// it is nil only when nobody was scored.
func ComputeResults(room *model.GameRoom) (model.GameResults, error) {
	if room.State != model.StateFinished {
		return model.GameResults{}, ErrRoomNotFinished
	}

	ranked := RecomputeRankings(room.Scores, room.RosterOrder())
	standings := make([]model.Standing, 0, len(ranked))
	for id, s := range ranked {
		st := model.Standing{PlayerScore: s}
		if p, ok := room.Player(id); ok {
			st.Name = p.Name
			st.Color = p.Color
		}
		standings = append(standings, st)
	}
	slices.SortFunc(standings, func(a, b model.Standing) int {
		return cmp.Compare(a.Rank, b.Rank)
	})

	res := model.GameResults{
		GameID:        room.ID,
		RoomName:      room.Name,
		Mode:          room.Config.Mode,
		Difficulty:    room.Config.Difficulty,
		QuestionCount: len(room.Questions),
		Duration:      room.FinishedAt.Sub(room.StartedAt),
		FinalScores:   standings,
		StartedAt:     room.StartedAt,
		FinishedAt:    room.FinishedAt,
	}
	if len(standings) > 0 {
		winner := standings[0]
		res.Winner = &winner
	}
	return res, nil
}
