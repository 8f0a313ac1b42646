package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dialectgame/internal/model"
)

func TestComputeResultsRequiresFinished(t *testing.T) {
	_, err := ComputeResults(newRoom(t, 4))
	assert.ErrorIs(t, err, ErrRoomNotFinished)

	_, err = ComputeResults(activeRoom(t, 1))
	assert.ErrorIs(t, err, ErrRoomNotFinished)
}

func TestTwoPlayerGameToResults(t *testing.T) {
	room := newRoom(t, 4)
	require.NoError(t, AddPlayer(room, model.Player{ID: "p2", Name: "Ben"}, t0))
	require.NoError(t, SetReady(room, "p1", true))
	require.NoError(t, SetReady(room, "p2", true))
	require.NoError(t, StartGame(room, testQuestions(3), t0))

	now := t0
	for range 3 {
		now = now.Add(4 * time.Second)
		_, err := SubmitAnswer(room, model.PlayerAnswer{PlayerID: "p1", Answer: "chien", TimeToAnswer: 4 * time.Second}, now)
		require.NoError(t, err)
		_, err = SubmitAnswer(room, model.PlayerAnswer{PlayerID: "p2", Answer: "chat", TimeToAnswer: 4 * time.Second}, now)
		require.NoError(t, err)
		require.NoError(t, AdvanceQuestion(room, now))
	}
	require.Equal(t, model.StateFinished, room.State)

	res, err := ComputeResults(room)
	require.NoError(t, err)

	require.NotNil(t, res.Winner)
	assert.Equal(t, "p2", res.Winner.PlayerID)
	assert.Equal(t, "Ben", res.Winner.Name)
	assert.Greater(t, room.Scores["p2"].TotalPoints, room.Scores["p1"].TotalPoints)
	assert.Equal(t, 12*time.Second, res.Duration)
	assert.Equal(t, "ROOM01", res.GameID)
	assert.Equal(t, 3, res.QuestionCount)
	require.Len(t, res.FinalScores, 2)
	assert.Equal(t, 1, res.FinalScores[0].Rank)
	assert.Equal(t, "p1", res.FinalScores[1].PlayerID)
	assert.Equal(t, 2, res.FinalScores[1].Rank)
	assert.Equal(t, model.PlayerColors[0], res.FinalScores[1].Color)
}

func TestComputeResultsTieGoesToEarlierJoin(t *testing.T) {
	room := activeRoom(t, 1)
	require.NoError(t, AdvanceQuestion(room, t0.Add(time.Minute)))

	res, err := ComputeResults(room)
	require.NoError(t, err)
	assert.Equal(t, "p1", res.Winner.PlayerID)
	assert.Equal(t, time.Minute, res.Duration)
}

func TestComputeResultsKeepsDepartedPlayers(t *testing.T) {
	room := activeRoom(t, 1)
	_, err := SubmitAnswer(room, model.PlayerAnswer{PlayerID: "p2", Answer: "chat"}, t0)
	require.NoError(t, err)
	require.NoError(t, RemovePlayer(room, "p2"))
	require.NoError(t, AdvanceQuestion(room, t0))

	res, err := ComputeResults(room)
	require.NoError(t, err)
	require.Len(t, res.FinalScores, 2)
	assert.Equal(t, "p2", res.Winner.PlayerID)
	assert.Empty(t, res.Winner.Name)
}
