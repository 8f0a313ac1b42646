package handler

import (
	"dialectgame/internal/model"
	"dialectgame/internal/service"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// GameHandler handles gameplay endpoints
type GameHandler struct {
	svc *service.GameService
}

// NewGameHandler creates a new game handler
func NewGameHandler(svc *service.GameService) *GameHandler {
	return &GameHandler{svc: svc}
}

// Start handles POST /v1/rooms/{code}/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req PlayerRequest
	if !decode(w, r, &req) {
		return
	}

	room, err := h.svc.StartGame(r.Context(), code, req.PlayerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, room.PublicView())
}

// Advance handles POST /v1/rooms/{code}/advance
func (h *GameHandler) Advance(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req PlayerRequest
	if !decode(w, r, &req) {
		return
	}

	room, err := h.svc.AdvanceQuestion(r.Context(), code, req.PlayerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, room.PublicView())
}

// AnswerRequest is the request body for submitting an answer
type AnswerRequest struct {
	PlayerID       string `json:"playerId"`
	QuestionID     string `json:"questionId"`
	Answer         string `json:"answer"`
	TimeToAnswerMs int64  `json:"timeToAnswerMs,omitempty"`
}

// Answer handles POST /v1/rooms/{code}/answers
func (h *GameHandler) Answer(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req AnswerRequest
	if !decode(w, r, &req) {
		return
	}
	if req.PlayerID == "" || req.QuestionID == "" {
		writeError(w, http.StatusBadRequest, "playerId and questionId are required")
		return
	}

	scored, err := h.svc.SubmitAnswer(r.Context(), code, model.PlayerAnswer{
		PlayerID:     req.PlayerID,
		QuestionID:   req.QuestionID,
		Answer:       req.Answer,
		TimeToAnswer: time.Duration(req.TimeToAnswerMs) * time.Millisecond,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, scored)
}

// PowerUpRequest is the request body for activating a power-up
type PowerUpRequest struct {
	PlayerID   string            `json:"playerId"`
	Type       model.PowerUpType `json:"type"`
	DurationMs int64             `json:"durationMs"`
}

// PowerUp handles POST /v1/rooms/{code}/powerups
func (h *GameHandler) PowerUp(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req PowerUpRequest
	if !decode(w, r, &req) {
		return
	}

	room, err := h.svc.ActivatePowerUp(r.Context(), code, req.PlayerID, req.Type, time.Duration(req.DurationMs)*time.Millisecond)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"activePowerUps": room.ActivePowerUps})
}

// ChatRequest is the request body for a chat message
type ChatRequest struct {
	PlayerID string `json:"playerId"`
	Text     string `json:"text"`
	Kind     string `json:"kind,omitempty"`
}

// Chat handles POST /v1/rooms/{code}/chat
func (h *GameHandler) Chat(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req ChatRequest
	if !decode(w, r, &req) {
		return
	}

	msg, err := h.svc.SendChat(r.Context(), code, req.PlayerID, req.Text, req.Kind)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

// Results handles GET /v1/rooms/{code}/results
func (h *GameHandler) Results(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	res, err := h.svc.Results(r.Context(), code)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// History handles GET /v1/history
func (h *GameHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.svc.History(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"games": history})
}
