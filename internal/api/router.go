package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jfraser/whosaid/internal/api/handler"
	"github.com/jfraser/whosaid/internal/api/middleware"
	"github.com/jfraser/whosaid/internal/notify/sse"
	"github.com/jfraser/whosaid/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	SessionController session.ControllerInterface
	HubManager        *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	sessionHandler := handler.NewSessionHandler(cfg.SessionController, cfg.HubManager, cfg.Logger)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Session lifecycle
	api.HandleFunc("/sessions", sessionHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{code}", sessionHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{code}", sessionHandler.End).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{code}/join", sessionHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{code}/leave", sessionHandler.Leave).Methods(http.MethodPost)

	// Round play
	api.HandleFunc("/sessions/{code}/rounds", sessionHandler.StartRound).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{code}/responses", sessionHandler.SubmitResponse).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{code}/guesses", sessionHandler.SubmitGuesses).Methods(http.MethodPost)

	// Event stream and join QR code
	api.HandleFunc("/sessions/{code}/events", sessionHandler.Events).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{code}/qr", sessionHandler.QR).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
