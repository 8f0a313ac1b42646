package rest

import (
	"dialectgame/internal/service"
	"dialectgame/internal/transport/rest/handler"
	"dialectgame/internal/transport/rest/middleware"
	"dialectgame/internal/transport/ws"
	"net/http"

	"github.com/gorilla/mux"
)

// Container holds all dependencies for the router
type Container struct {
	GameService *service.GameService
	WSHub       *ws.Hub
	CORS        middleware.CORSConfig
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	roomHandler := handler.NewRoomHandler(c.GameService)
	gameHandler := handler.NewGameHandler(c.GameService)
	wsHandler := ws.NewHandler(c.WSHub, c.GameService)

	// CORS middleware (apply first)
	r.Use(middleware.CORS(c.CORS))
	r.Use(middleware.RequestLogger)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Lobby
	v1.HandleFunc("/rooms", roomHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/rooms", roomHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/rooms/{code}", roomHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/rooms/{code}/join", roomHandler.Join).Methods("POST", "OPTIONS")
	v1.HandleFunc("/rooms/{code}/leave", roomHandler.Leave).Methods("POST", "OPTIONS")
	v1.HandleFunc("/rooms/{code}/ready", roomHandler.Ready).Methods("POST", "OPTIONS")
	v1.HandleFunc("/rooms/{code}/ready-all", roomHandler.ReadyAll).Methods("POST", "OPTIONS")
	v1.HandleFunc("/rooms/{code}/host", roomHandler.TransferHost).Methods("POST", "OPTIONS")
	v1.HandleFunc("/rooms/{code}/leaderboard", roomHandler.Leaderboard).Methods("GET", "OPTIONS")
	v1.HandleFunc("/rooms/{code}/leaderboard/{playerId}", roomHandler.Rank).Methods("GET", "OPTIONS")

	// Gameplay
	v1.HandleFunc("/rooms/{code}/start", gameHandler.Start).Methods("POST", "OPTIONS")
	v1.HandleFunc("/rooms/{code}/answers", gameHandler.Answer).Methods("POST", "OPTIONS")
	v1.HandleFunc("/rooms/{code}/advance", gameHandler.Advance).Methods("POST", "OPTIONS")
	v1.HandleFunc("/rooms/{code}/powerups", gameHandler.PowerUp).Methods("POST", "OPTIONS")
	v1.HandleFunc("/rooms/{code}/chat", gameHandler.Chat).Methods("POST", "OPTIONS")
	v1.HandleFunc("/rooms/{code}/results", gameHandler.Results).Methods("GET", "OPTIONS")
	v1.HandleFunc("/history", gameHandler.History).Methods("GET", "OPTIONS")

	// WebSocket route (player id in query param)
	v1.HandleFunc("/ws/rooms/{code}", wsHandler.RoomWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}
