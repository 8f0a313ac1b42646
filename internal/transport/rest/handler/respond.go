package handler

import (
	"dialectgame/internal/game"
	"dialectgame/internal/service"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// statusFor maps service and game errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrRoomNotFound),
		errors.Is(err, game.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotHost):
		return http.StatusForbidden
	case errors.Is(err, service.ErrChatRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, game.ErrInvalidConfig),
		errors.Is(err, game.ErrInvalidQuestion),
		errors.Is(err, game.ErrUnknownPowerUp),
		errors.Is(err, service.ErrEmptyMessage):
		return http.StatusUnprocessableEntity
	case errors.Is(err, game.ErrRoomFull),
		errors.Is(err, game.ErrNotAllReady),
		errors.Is(err, game.ErrRoomNotFinished),
		errors.Is(err, game.ErrDuplicatePlayer),
		errors.Is(err, game.ErrGameInProgress),
		errors.Is(err, game.ErrGameNotActive),
		errors.Is(err, game.ErrAlreadyAnswered),
		errors.Is(err, game.ErrQuestionMismatch),
		errors.Is(err, game.ErrPowerUpsDisabled):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeServiceError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}

	var notReady *game.NotReadyError
	if errors.As(err, &notReady) {
		writeJSON(w, status, map[string]interface{}{
			"error":    err.Error(),
			"blocking": notReady.Blocking,
		})
		return
	}
	writeError(w, status, err.Error())
}
