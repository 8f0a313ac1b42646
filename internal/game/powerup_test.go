package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dialectgame/internal/model"
)

func TestFreezeTimeExpiry(t *testing.T) {
	room := activeRoom(t, 3)
	at := t0.Add(time.Second)
	require.NoError(t, ActivatePowerUp(room, model.ActivePowerUp{
		Type:        model.PowerUpFreezeTime,
		PlayerID:    "p1",
		ActivatedAt: at,
		Duration:    10000 * time.Millisecond,
	}, at))
	assert.True(t, room.TimeFrozen)
	assert.Equal(t, t0.Add(20*time.Second), room.QuestionDeadline)

	assert.Empty(t, ExpireStale(room, at.Add(9999*time.Millisecond)))
	assert.Len(t, room.ActivePowerUps, 1)
	assert.True(t, room.TimeFrozen)

	expired := ExpireStale(room, at.Add(10000*time.Millisecond))
	require.Len(t, expired, 1)
	assert.Equal(t, model.PowerUpFreezeTime, expired[0].Type)
	assert.Empty(t, room.ActivePowerUps)
	assert.False(t, room.TimeFrozen)
}

func TestOverlappingFreezesKeepRoomFrozen(t *testing.T) {
	room := activeRoom(t, 1)
	require.NoError(t, ActivatePowerUp(room, model.ActivePowerUp{Type: model.PowerUpFreezeTime, PlayerID: "p1", Duration: 2 * time.Second}, t0))
	require.NoError(t, ActivatePowerUp(room, model.ActivePowerUp{Type: model.PowerUpFreezeTime, PlayerID: "p2", Duration: 5 * time.Second}, t0))

	ExpireStale(room, t0.Add(3*time.Second))
	assert.Len(t, room.ActivePowerUps, 1)
	assert.True(t, room.TimeFrozen)

	ExpireStale(room, t0.Add(5*time.Second))
	assert.False(t, room.TimeFrozen)
	assert.Equal(t, t0.Add(15*time.Second), room.QuestionDeadline)
}

func TestOverlappingFreezesStopClockOnce(t *testing.T) {
	room := activeRoom(t, 2)
	at := t0.Add(time.Second)
	freeze := model.ActivePowerUp{Type: model.PowerUpFreezeTime, Duration: 10 * time.Second}

	freeze.PlayerID = "p1"
	require.NoError(t, ActivatePowerUp(room, freeze, at))
	freeze.PlayerID = "p2"
	require.NoError(t, ActivatePowerUp(room, freeze, at))
	assert.Equal(t, t0.Add(20*time.Second), room.QuestionDeadline)

	// covered until t0+11s, so only the 5s past that count
	freeze.PlayerID = "p1"
	require.NoError(t, ActivatePowerUp(room, freeze, t0.Add(6*time.Second)))
	assert.Equal(t, t0.Add(25*time.Second), room.QuestionDeadline)

	unfrozen := t0.Add(16 * time.Second)
	ExpireStale(room, unfrozen)
	assert.False(t, room.TimeFrozen)
	assert.Equal(t, 9*time.Second, room.QuestionDeadline.Sub(unfrozen))
	assert.False(t, Tick(room, unfrozen.Add(8*time.Second)).TimedOut)
	assert.True(t, Tick(room, unfrozen.Add(9*time.Second)).TimedOut)
}

func TestFreezeCarriesIntoNextQuestion(t *testing.T) {
	room := activeRoom(t, 2)
	require.NoError(t, ActivatePowerUp(room, model.ActivePowerUp{
		Type:     model.PowerUpFreezeTime,
		PlayerID: "p1",
		Duration: 30 * time.Second,
	}, t0.Add(9*time.Second)))

	require.NoError(t, AdvanceQuestion(room, t0.Add(12*time.Second)))
	assert.Equal(t, 1, room.CurrentQuestionIndex)
	assert.True(t, room.TimeFrozen)
	// freeze runs out at t0+39s, the second question gets its full 10s after that
	assert.Equal(t, t0.Add(49*time.Second), room.QuestionDeadline)

	res := Tick(room, t0.Add(39*time.Second))
	require.Len(t, res.Expired, 1)
	assert.False(t, res.TimedOut)
	assert.False(t, room.TimeFrozen)

	assert.False(t, Tick(room, t0.Add(48*time.Second)).TimedOut)
	res = Tick(room, t0.Add(49*time.Second))
	assert.True(t, res.TimedOut)
	assert.True(t, res.Finished)
}

func TestActivatePowerUpDefaultsActivation(t *testing.T) {
	room := activeRoom(t, 1)
	require.NoError(t, ActivatePowerUp(room, model.ActivePowerUp{Type: model.PowerUpDoublePoints, PlayerID: "p2", Duration: time.Second}, t0))
	assert.Equal(t, t0, room.ActivePowerUps[0].ActivatedAt)
}

func TestActivatePowerUpErrors(t *testing.T) {
	waiting := newRoom(t, 4)
	err := ActivatePowerUp(waiting, model.ActivePowerUp{Type: model.PowerUpDoublePoints, PlayerID: "p1", Duration: time.Second}, t0)
	assert.ErrorIs(t, err, ErrGameNotActive)

	room := activeRoom(t, 1)
	tests := []struct {
		name string
		p    model.ActivePowerUp
		want error
	}{
		{name: "unknown type", p: model.ActivePowerUp{Type: "teleport", PlayerID: "p1", Duration: time.Second}, want: ErrUnknownPowerUp},
		{name: "no duration", p: model.ActivePowerUp{Type: model.PowerUpExtraTime, PlayerID: "p1"}, want: ErrUnknownPowerUp},
		{name: "not in room", p: model.ActivePowerUp{Type: model.PowerUpExtraTime, PlayerID: "ghost", Duration: time.Second}, want: ErrPlayerNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, ActivatePowerUp(room, tc.p, t0), tc.want)
		})
	}
	assert.Empty(t, room.ActivePowerUps)

	room.Config.PowerUps = false
	err = ActivatePowerUp(room, model.ActivePowerUp{Type: model.PowerUpExtraTime, PlayerID: "p1", Duration: time.Second}, t0)
	assert.ErrorIs(t, err, ErrPowerUpsDisabled)
}

func TestDoublePointsAppliesToOwnerOnly(t *testing.T) {
	room := activeRoom(t, 2)
	require.NoError(t, ActivatePowerUp(room, model.ActivePowerUp{Type: model.PowerUpDoublePoints, PlayerID: "p1", Duration: 30 * time.Second}, t0))

	a1, err := SubmitAnswer(room, model.PlayerAnswer{PlayerID: "p1", Answer: "chat", TimeToAnswer: 5 * time.Second}, t0.Add(5*time.Second))
	require.NoError(t, err)
	a2, err := SubmitAnswer(room, model.PlayerAnswer{PlayerID: "p2", Answer: "chat", TimeToAnswer: 5 * time.Second}, t0.Add(5*time.Second))
	require.NoError(t, err)

	assert.Equal(t, 250, a1.PointsEarned)
	assert.Equal(t, 125, a2.PointsEarned)
	assert.Equal(t, 1, room.Scores["p1"].Rank)
}

func TestPointsMultiplier(t *testing.T) {
	room := activeRoom(t, 1)
	assert.Equal(t, 1, PointsMultiplier(room, "p1", t0))

	for range 2 {
		require.NoError(t, ActivatePowerUp(room, model.ActivePowerUp{Type: model.PowerUpDoublePoints, PlayerID: "p1", Duration: 10 * time.Second}, t0))
	}
	assert.Equal(t, DoublePointsFactor, PointsMultiplier(room, "p1", t0.Add(time.Second)))
	assert.Equal(t, 1, PointsMultiplier(room, "p2", t0.Add(time.Second)))
	assert.Equal(t, 1, PointsMultiplier(room, "p1", t0.Add(10*time.Second)))

	wrong := model.PlayerAnswer{PlayerID: "p1", IsCorrect: false, PointsEarned: 0}
	assert.Zero(t, ApplyPowerUps(room, wrong, t0))
}

func TestExtraTimeExtendsDeadline(t *testing.T) {
	room := activeRoom(t, 1)
	require.NoError(t, ActivatePowerUp(room, model.ActivePowerUp{Type: model.PowerUpExtraTime, PlayerID: "p2", Duration: time.Second}, t0))

	assert.Equal(t, t0.Add(10*time.Second+ExtraTimeBonus), room.QuestionDeadline)
	assert.False(t, room.TimeFrozen)
}

func TestTickTimesOutQuestion(t *testing.T) {
	room := activeRoom(t, 2)

	res := Tick(room, t0.Add(9*time.Second))
	assert.False(t, res.Changed())
	assert.Equal(t, 0, room.CurrentQuestionIndex)

	res = Tick(room, t0.Add(10*time.Second))
	assert.True(t, res.TimedOut)
	assert.False(t, res.Finished)
	assert.Equal(t, 1, room.CurrentQuestionIndex)
	assert.Equal(t, t0.Add(20*time.Second), room.QuestionDeadline)

	// same instant again is a no-op
	res = Tick(room, t0.Add(10*time.Second))
	assert.False(t, res.Changed())
	assert.Equal(t, 1, room.CurrentQuestionIndex)

	res = Tick(room, t0.Add(20*time.Second))
	assert.True(t, res.TimedOut)
	assert.True(t, res.Finished)
	assert.Equal(t, model.StateFinished, room.State)
	assert.Equal(t, t0.Add(20*time.Second), room.FinishedAt)

	assert.False(t, Tick(room, t0.Add(time.Hour)).Changed())
}

func TestTickHoldsWhileFrozen(t *testing.T) {
	room := activeRoom(t, 2)
	require.NoError(t, ActivatePowerUp(room, model.ActivePowerUp{Type: model.PowerUpFreezeTime, PlayerID: "p1", Duration: 5 * time.Second}, t0.Add(time.Second)))
	require.Equal(t, t0.Add(15*time.Second), room.QuestionDeadline)

	res := Tick(room, t0.Add(5*time.Second))
	assert.False(t, res.Changed())
	assert.True(t, room.TimeFrozen)

	res = Tick(room, t0.Add(6*time.Second))
	require.Len(t, res.Expired, 1)
	assert.False(t, res.TimedOut)
	assert.False(t, room.TimeFrozen)

	res = Tick(room, t0.Add(15*time.Second))
	assert.True(t, res.TimedOut)
	assert.Equal(t, 1, room.CurrentQuestionIndex)
}

func TestTickWhileWaiting(t *testing.T) {
	room := newRoom(t, 4)
	res := Tick(room, t0.Add(time.Hour))
	assert.False(t, res.Changed())
	assert.Equal(t, model.StateWaiting, room.State)
}
