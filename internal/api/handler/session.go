package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jfraser/whosaid/internal/api/request"
	"github.com/jfraser/whosaid/internal/api/response"
	"github.com/jfraser/whosaid/internal/model"
	"github.com/jfraser/whosaid/internal/notify/sse"
	"github.com/jfraser/whosaid/internal/services/session"
)

// SessionHandler handles session-related endpoints
type SessionHandler struct {
	controller  session.ControllerInterface
	hubManager  *sse.HubManager
	broadcaster *sse.Broadcaster
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(controller session.ControllerInterface, hubManager *sse.HubManager, logger *slog.Logger) *SessionHandler {
	var broadcaster *sse.Broadcaster
	if hubManager != nil {
		broadcaster = sse.NewBroadcaster(hubManager, logger)
	}
	return &SessionHandler{
		controller:  controller,
		hubManager:  hubManager,
		broadcaster: broadcaster,
	}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	sess, host, err := h.controller.CreateSession(r.Context(), req.Nickname)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.JoinResponse{
		Session: response.SessionFromModel(sess),
		Player:  response.PlayerFromModel(host),
	})
}

// Get handles GET /api/v1/sessions/{code}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := model.SessionCode(mux.Vars(r)["code"])

	sess, err := h.controller.GetSession(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(sess))
}

// Join handles POST /api/v1/sessions/{code}/join
func (h *SessionHandler) Join(w http.ResponseWriter, r *http.Request) {
	code := model.SessionCode(mux.Vars(r)["code"])

	var req request.JoinSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	result, err := h.controller.JoinSession(r.Context(), code, req.Nickname)
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.Publish(code, model.EventPlayerJoined, response.PlayerJoinedEvent{
			PlayerID:    string(result.Player.ID),
			Nickname:    result.Player.Nickname,
			PlayerCount: len(result.Session.Players),
		})
	}

	response.JSON(w, http.StatusOK, response.JoinResponse{
		Session: response.SessionFromModel(result.Session),
		Player:  response.PlayerFromModel(&result.Player),
	})
}

// StartRound handles POST /api/v1/sessions/{code}/rounds
func (h *SessionHandler) StartRound(w http.ResponseWriter, r *http.Request) {
	code := model.SessionCode(mux.Vars(r)["code"])

	var req request.StartRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	sess, err := h.controller.StartRound(r.Context(), code, model.PlayerID(req.PlayerID), req.Prompt)
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		round := sess.Round()
		h.broadcaster.Publish(code, model.EventRoundStarted, response.RoundStartedEvent{
			RoundNumber: round.RoundNumber,
			Prompt:      round.Prompt,
		})
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(sess))
}

// SubmitResponse handles POST /api/v1/sessions/{code}/responses
func (h *SessionHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	code := model.SessionCode(mux.Vars(r)["code"])

	var req request.SubmitResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	result, err := h.controller.SubmitResponse(r.Context(), code, model.PlayerID(req.PlayerID), req.Text)
	if err != nil {
		WriteError(w, err)
		return
	}

	shuffled := response.AnonymousResponsesFromModel(result.ShuffledResponses)
	if result.PhaseChanged && h.broadcaster != nil {
		h.broadcaster.Publish(code, model.EventGuessingStarted, response.GuessingStartedEvent{
			RoundNumber: result.Session.CurrentRound,
			Responses:   shuffled,
		})
	}

	response.JSON(w, http.StatusOK, response.SubmitResponseResponse{
		Session:      response.SessionFromModel(result.Session),
		PhaseChanged: result.PhaseChanged,
		Responses:    shuffled,
	})
}

// SubmitGuesses handles POST /api/v1/sessions/{code}/guesses
func (h *SessionHandler) SubmitGuesses(w http.ResponseWriter, r *http.Request) {
	code := model.SessionCode(mux.Vars(r)["code"])

	var req request.SubmitGuessesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	guesses := make(map[model.ResponseID]model.PlayerID, len(req.Guesses))
	for responseID, playerID := range req.Guesses {
		guesses[model.ResponseID(responseID)] = model.PlayerID(playerID)
	}

	result, err := h.controller.SubmitGuesses(r.Context(), code, model.PlayerID(req.PlayerID), guesses)
	if err != nil {
		WriteError(w, err)
		return
	}

	results := response.RoundResultsFromModel(result.Results)
	if result.PhaseChanged && h.broadcaster != nil {
		h.broadcaster.Publish(code, model.EventResultsReady, response.ResultsReadyEvent{
			RoundNumber: result.Session.CurrentRound,
			Results:     results,
		})
	}

	response.JSON(w, http.StatusOK, response.SubmitGuessesResponse{
		Session:      response.SessionFromModel(result.Session),
		PhaseChanged: result.PhaseChanged,
		Results:      results,
	})
}

// Leave handles POST /api/v1/sessions/{code}/leave
func (h *SessionHandler) Leave(w http.ResponseWriter, r *http.Request) {
	code := model.SessionCode(mux.Vars(r)["code"])

	var req request.LeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	result, err := h.controller.HandleDisconnect(r.Context(), code, model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastDisconnect(code, result)

	var newHost *response.Player
	if result.NewHost != nil {
		p := response.PlayerFromModel(result.NewHost)
		newHost = &p
	}

	response.JSON(w, http.StatusOK, response.LeaveResponse{
		Session: response.SessionFromModel(result.Session),
		NewHost: newHost,
	})
}

// broadcastDisconnect publishes the events a disconnect can produce: the
// departure itself, a host change, and any phase completion it triggered
func (h *SessionHandler) broadcastDisconnect(code model.SessionCode, result *session.DisconnectResult) {
	if h.broadcaster == nil {
		return
	}

	h.broadcaster.Publish(code, model.EventPlayerDisconnected, response.PlayerDisconnectedEvent{
		PlayerID: string(result.Player.ID),
		Nickname: result.Player.Nickname,
	})

	if result.NewHost != nil {
		h.broadcaster.Publish(code, model.EventHostChanged, response.HostChangedEvent{
			OldHostID: string(result.Player.ID),
			NewHostID: string(result.NewHost.ID),
		})
	}

	if !result.PhaseChanged {
		return
	}
	switch result.Session.Phase {
	case model.PhaseGuessing:
		h.broadcaster.Publish(code, model.EventGuessingStarted, response.GuessingStartedEvent{
			RoundNumber: result.Session.CurrentRound,
			Responses:   response.AnonymousResponsesFromModel(result.ShuffledResponses),
		})
	case model.PhaseReveal:
		h.broadcaster.Publish(code, model.EventResultsReady, response.ResultsReadyEvent{
			RoundNumber: result.Session.CurrentRound,
			Results:     response.RoundResultsFromModel(result.Results),
		})
	}
}

// End handles DELETE /api/v1/sessions/{code}
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	code := model.SessionCode(mux.Vars(r)["code"])

	var req request.EndGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	snapshot, err := h.controller.EndGame(r.Context(), code, model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.CloseSession(code, response.SessionEndedEvent{
			RoundsPlayed: len(snapshot.Rounds),
		})
	}

	response.JSON(w, http.StatusOK, response.EndGameResponse{
		Code:         string(snapshot.Code),
		RoundsPlayed: len(snapshot.Rounds),
	})
}
