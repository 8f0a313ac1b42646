package game

import (
	"errors"
	"strings"
)

var (
	ErrInvalidConfig    = errors.New("invalid game config")
	ErrRoomFull         = errors.New("room is full")
	ErrNotAllReady      = errors.New("not all players are ready")
	ErrRoomNotFinished  = errors.New("room is not finished")
	ErrInvalidQuestion  = errors.New("invalid question")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrDuplicatePlayer  = errors.New("player already in room")
	ErrGameInProgress   = errors.New("game already started")
	ErrGameNotActive    = errors.New("game is not active")
	ErrAlreadyAnswered  = errors.New("question already answered")
	ErrQuestionMismatch = errors.New("answer is not for the current question")
	ErrUnknownPowerUp   = errors.New("unknown power-up")
	ErrPowerUpsDisabled = errors.New("power-ups are disabled for this room")
)

// NotReadyError lists the players blocking a game start.
// An empty Blocking list means the room is short of players.
type NotReadyError struct {
	Blocking []string
}

func (e *NotReadyError) Error() string {
	if len(e.Blocking) == 0 {
		return ErrNotAllReady.Error() + ": at least 2 players are required"
	}
	return ErrNotAllReady.Error() + ": waiting on " + strings.Join(e.Blocking, ", ")
}

func (e *NotReadyError) Is(target error) bool {
	return target == ErrNotAllReady
}
