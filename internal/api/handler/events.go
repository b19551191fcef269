package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jfraser/whosaid/internal/model"
	"github.com/jfraser/whosaid/internal/notify/sse"
)

// Events handles GET /api/v1/sessions/{code}/events
// The stream stays open until the client disconnects or the session ends.
func (h *SessionHandler) Events(w http.ResponseWriter, r *http.Request) {
	code := model.SessionCode(mux.Vars(r)["code"])
	playerID := model.PlayerID(r.URL.Query().Get("player_id"))

	if playerID == "" {
		WriteError(w, NewInvalidRequestError("player_id query parameter is required"))
		return
	}

	sess, err := h.controller.GetSession(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}
	if sess.GetPlayer(playerID) == nil {
		WriteError(w, model.ErrPlayerNotFound)
		return
	}

	hub := h.hubManager.GetOrCreateHub(code)
	sse.ServeSSE(w, r, hub, playerID)
}
