package game

import (
	"fmt"
	"slices"
	"time"

	"dialectgame/internal/model"
)

// MinPlayers is the smallest roster a game can start with
const MinPlayers = 2

// CreateRoom builds a WAITING room holding only the host
func CreateRoom(id, name string, host model.Player, cfg model.GameConfig, now time.Time) (*model.GameRoom, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	host.IsHost = true
	host.Color = assignColor(nil)
	if host.JoinedAt.IsZero() {
		host.JoinedAt = now
	}

	return &model.GameRoom{
		ID:        id,
		Name:      name,
		HostID:    host.ID,
		Players:   []model.Player{host},
		State:     model.StateWaiting,
		Config:    cfg,
		Scores:    make(map[string]model.PlayerScore),
		CreatedAt: now,
	}, nil
}

// AddPlayer appends a player to the roster with the next free palette color
func AddPlayer(room *model.GameRoom, player model.Player, now time.Time) error {
	if room.State != model.StateWaiting {
		return ErrGameInProgress
	}
	if len(room.Players) >= room.Config.MaxPlayers {
		return fmt.Errorf("%w: %d/%d players", ErrRoomFull, len(room.Players), room.Config.MaxPlayers)
	}
	if room.PlayerIndex(player.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicatePlayer, player.ID)
	}

	player.IsHost = false
	player.Color = assignColor(room.Players)
	if player.JoinedAt.IsZero() {
		player.JoinedAt = now
	}
	room.Players = append(room.Players, player)
	return nil
}

// RemovePlayer drops a player. When the host leaves, the first remaining
// player in roster order is promoted. An emptied room has no host.
func RemovePlayer(room *model.GameRoom, playerID string) error {
	i := room.PlayerIndex(playerID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}

	wasHost := room.Players[i].IsHost
	room.Players = slices.Delete(slices.Clone(room.Players), i, i+1)

	if len(room.Players) == 0 {
		room.HostID = ""
		return nil
	}
	if wasHost {
		promote(room, 0)
	}
	return nil
}

// TransferHost hands the host role to another rostered player
func TransferHost(room *model.GameRoom, playerID string) error {
	i := room.PlayerIndex(playerID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	promote(room, i)
	return nil
}

func promote(room *model.GameRoom, idx int) {
	for i := range room.Players {
		room.Players[i].IsHost = i == idx
	}
	room.HostID = room.Players[idx].ID
}

// SetReady toggles one player's readiness
func SetReady(room *model.GameRoom, playerID string, ready bool) error {
	p, ok := room.Player(playerID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	p.IsReady = ready
	return nil
}

// SetAllReady toggles every player's readiness
func SetAllReady(room *model.GameRoom, ready bool) {
	for i := range room.Players {
		room.Players[i].IsReady = ready
	}
}

// IsReadyToStart is true iff at least two players are present and all are ready
func IsReadyToStart(room *model.GameRoom) bool {
	return len(room.Players) >= MinPlayers && len(blockingPlayers(room)) == 0
}

func blockingPlayers(room *model.GameRoom) []string {
	var ids []string
	for _, p := range room.Players {
		if !p.IsReady {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// StartGame moves a ready room to ACTIVE with the given questions.
// On error the room is left untouched.
func StartGame(room *model.GameRoom, questions []model.Question, now time.Time) error {
	if room.State != model.StateWaiting {
		return ErrGameInProgress
	}
	if !IsReadyToStart(room) {
		return &NotReadyError{Blocking: blockingPlayers(room)}
	}
	if err := validateQuestions(questions); err != nil {
		return err
	}

	room.State = model.StateActive
	room.Questions = slices.Clone(questions)
	room.CurrentQuestionIndex = 0
	room.Answers = nil
	room.StartedAt = now

	scores := make(map[string]model.PlayerScore, len(room.Players))
	for _, p := range room.Players {
		scores[p.ID] = model.PlayerScore{PlayerID: p.ID}
	}
	room.Scores = RecomputeRankings(scores, room.RosterOrder())

	startQuestionClock(room, now)
	return nil
}

// AdvanceQuestion moves to the next question, or finishes the game when the
// last one has been played. The index never leaves the questions slice.
func AdvanceQuestion(room *model.GameRoom, now time.Time) error {
	if room.State != model.StateActive {
		return ErrGameNotActive
	}

	if room.CurrentQuestionIndex+1 >= len(room.Questions) {
		room.State = model.StateFinished
		room.FinishedAt = now
		room.QuestionDeadline = time.Time{}
		room.TimeFrozen = false
		return nil
	}

	room.CurrentQuestionIndex++
	startQuestionClock(room, now)
	return nil
}

// startQuestionClock opens the current question. A freeze still running
// carries over, so the new clock starts when it ends.
func startQuestionClock(room *model.GameRoom, now time.Time) {
	room.QuestionStartedAt = now
	room.QuestionDeadline = now.Add(room.Questions[room.CurrentQuestionIndex].TimeLimit)
	if until := frozenUntil(room, now); until.After(now) {
		room.QuestionDeadline = room.QuestionDeadline.Add(until.Sub(now))
	}
}

// SubmitAnswer scores an answer to the current question and folds it into
// the player's score. The scored answer is returned.
func SubmitAnswer(room *model.GameRoom, answer model.PlayerAnswer, now time.Time) (model.PlayerAnswer, error) {
	q := room.CurrentQuestion()
	if q == nil {
		return model.PlayerAnswer{}, ErrGameNotActive
	}
	if room.PlayerIndex(answer.PlayerID) < 0 {
		return model.PlayerAnswer{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, answer.PlayerID)
	}
	if answer.QuestionID == "" {
		answer.QuestionID = q.ID
	}
	if answer.QuestionID != q.ID {
		return model.PlayerAnswer{}, fmt.Errorf("%w: got %s, current is %s", ErrQuestionMismatch, answer.QuestionID, q.ID)
	}
	if hasAnswered(room, answer.PlayerID, q.ID) {
		return model.PlayerAnswer{}, ErrAlreadyAnswered
	}

	score, ok := room.Scores[answer.PlayerID]
	if !ok {
		score = model.PlayerScore{PlayerID: answer.PlayerID}
	}
	answer.Streak = score.CurrentStreak
	if answer.Timestamp.IsZero() {
		answer.Timestamp = now
	}

	scored := ScoreAnswer(answer, *q)
	scored.PointsEarned = ApplyPowerUps(room, scored, now)

	room.Answers = append(room.Answers, scored)
	scores := make(map[string]model.PlayerScore, len(room.Scores)+1)
	for id, s := range room.Scores {
		scores[id] = s
	}
	scores[answer.PlayerID] = FoldAnswerIntoScore(score, scored)
	room.Scores = RecomputeRankings(scores, room.RosterOrder())

	return scored, nil
}

// AllAnswered reports whether every rostered player answered the current question
func AllAnswered(room *model.GameRoom) bool {
	q := room.CurrentQuestion()
	if q == nil || len(room.Players) == 0 {
		return false
	}
	for _, p := range room.Players {
		if !hasAnswered(room, p.ID, q.ID) {
			return false
		}
	}
	return true
}

func hasAnswered(room *model.GameRoom, playerID, questionID string) bool {
	return slices.ContainsFunc(room.Answers, func(a model.PlayerAnswer) bool {
		return a.PlayerID == playerID && a.QuestionID == questionID
	})
}

func assignColor(players []model.Player) string {
	used := make(map[string]bool, len(players))
	for _, p := range players {
		used[p.Color] = true
	}
	for _, c := range model.PlayerColors {
		if !used[c] {
			return c
		}
	}
	return model.PlayerColors[len(players)%len(model.PlayerColors)]
}
