package handler

import (
	"dialectgame/internal/model"
	"dialectgame/internal/service"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
)

// RoomHandler handles room endpoints
type RoomHandler struct {
	svc *service.GameService
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(svc *service.GameService) *RoomHandler {
	return &RoomHandler{svc: svc}
}

// ConfigRequest overrides the default game config; zero fields keep the default
type ConfigRequest struct {
	Mode             model.GameMode   `json:"mode,omitempty"`
	Difficulty       model.Difficulty `json:"difficulty,omitempty"`
	QuestionCount    int              `json:"questionCount,omitempty"`
	TimeLimitSeconds int              `json:"timeLimitSeconds,omitempty"`
	MaxPlayers       int              `json:"maxPlayers,omitempty"`
	Language         string           `json:"language,omitempty"`
	TargetLanguage   string           `json:"targetLanguage,omitempty"`
	PowerUps         *bool            `json:"powerUps,omitempty"`
}

func (c *ConfigRequest) apply(cfg model.GameConfig) model.GameConfig {
	if c.Mode != "" {
		cfg.Mode = c.Mode
	}
	if c.Difficulty != "" {
		cfg.Difficulty = c.Difficulty
	}
	if c.QuestionCount != 0 {
		cfg.QuestionCount = c.QuestionCount
	}
	if c.TimeLimitSeconds != 0 {
		cfg.TimeLimit = time.Duration(c.TimeLimitSeconds) * time.Second
	}
	if c.MaxPlayers != 0 {
		cfg.MaxPlayers = c.MaxPlayers
	}
	if c.Language != "" {
		cfg.Language = c.Language
	}
	if c.TargetLanguage != "" {
		cfg.TargetLanguage = c.TargetLanguage
	}
	if c.PowerUps != nil {
		cfg.PowerUps = *c.PowerUps
	}
	return cfg
}

// CreateRoomRequest is the request body for creating a room
type CreateRoomRequest struct {
	Name     string         `json:"name"`
	HostName string         `json:"hostName"`
	Config   *ConfigRequest `json:"config,omitempty"`
}

// Create handles POST /v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.HostName) == "" {
		writeError(w, http.StatusBadRequest, "hostName is required")
		return
	}

	var cfg *model.GameConfig
	if req.Config != nil {
		c := req.Config.apply(model.DefaultGameConfig())
		cfg = &c
	}

	room, err := h.svc.CreateRoom(r.Context(), req.Name, req.HostName, cfg)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"roomCode": room.ID,
		"playerId": room.HostID,
		"room":     room.PublicView(),
	})
}

// List handles GET /v1/rooms
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"rooms": h.svc.ListRooms()})
}

// Get handles GET /v1/rooms/{code}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	room, err := h.svc.Room(r.Context(), code)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, room.PublicView())
}

// JoinRequest is the request body for joining a room
type JoinRequest struct {
	Name string `json:"name"`
}

// Join handles POST /v1/rooms/{code}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req JoinRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	room, player, err := h.svc.JoinRoom(r.Context(), code, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"playerId": player.ID,
		"player":   player,
		"room":     room.PublicView(),
	})
}

// PlayerRequest identifies the acting player
type PlayerRequest struct {
	PlayerID string `json:"playerId"`
}

// Leave handles POST /v1/rooms/{code}/leave
func (h *RoomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req PlayerRequest
	if !decode(w, r, &req) {
		return
	}

	room, err := h.svc.LeaveRoom(r.Context(), code, req.PlayerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"room": room.PublicView(), "disposed": room.IsEmpty()})
}

// ReadyRequest is the request body for readiness toggles
type ReadyRequest struct {
	PlayerID string `json:"playerId"`
	Ready    bool   `json:"ready"`
}

// Ready handles POST /v1/rooms/{code}/ready
func (h *RoomHandler) Ready(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req ReadyRequest
	if !decode(w, r, &req) {
		return
	}

	room, err := h.svc.SetReady(r.Context(), code, req.PlayerID, req.Ready)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, room.PublicView())
}

// ReadyAll handles POST /v1/rooms/{code}/ready-all
func (h *RoomHandler) ReadyAll(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req ReadyRequest
	if !decode(w, r, &req) {
		return
	}

	room, err := h.svc.SetAllReady(r.Context(), code, req.PlayerID, req.Ready)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, room.PublicView())
}

// TransferHostRequest is the request body for handing over the host role
type TransferHostRequest struct {
	PlayerID  string `json:"playerId"`
	NewHostID string `json:"newHostId"`
}

// TransferHost handles POST /v1/rooms/{code}/host
func (h *RoomHandler) TransferHost(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req TransferHostRequest
	if !decode(w, r, &req) {
		return
	}

	room, err := h.svc.TransferHost(r.Context(), code, req.PlayerID, req.NewHostID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, room.PublicView())
}

// Leaderboard handles GET /v1/rooms/{code}/leaderboard
func (h *RoomHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	entries, err := h.svc.Leaderboard(r.Context(), code)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"leaderboard": entries})
}

// Rank handles GET /v1/rooms/{code}/leaderboard/{playerId}
func (h *RoomHandler) Rank(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	entry, err := h.svc.PlayerRank(r.Context(), vars["code"], vars["playerId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}
