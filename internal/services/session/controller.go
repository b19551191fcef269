package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jfraser/whosaid/internal/dependencies/clock"
	"github.com/jfraser/whosaid/internal/model"
	"github.com/jfraser/whosaid/internal/services/identity"
	"github.com/jfraser/whosaid/internal/services/prompts"
	"github.com/jfraser/whosaid/internal/services/scoring"
	"github.com/jfraser/whosaid/internal/storage"
)

const (
	// SessionTTL is how long a session record lives after creation
	SessionTTL = 24 * time.Hour

	// maxCodeAttempts caps unique-code generation retries
	maxCodeAttempts = 10
)

// Controller owns the session state machine: it validates action legality
// against the current phase, applies the mutation, and returns the data the
// caller should broadcast. Every operation is a single read-modify-write
// over one session record, serialized per code; either it completes or it
// fails with no partial mutation.
type Controller struct {
	storage  storage.Storage
	identity *identity.Service
	prompts  *prompts.Service
	scoring  *scoring.Service
	clock    clock.Clock
	logger   *slog.Logger
	locks    *locker
}

// NewController creates a new session controller
func NewController(
	store storage.Storage,
	identitySvc *identity.Service,
	promptSvc *prompts.Service,
	scoringSvc *scoring.Service,
	clk clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:  store,
		identity: identitySvc,
		prompts:  promptSvc,
		scoring:  scoringSvc,
		clock:    clk,
		logger:   logger,
		locks:    newLocker(),
	}
}

// JoinResult carries the updated session and the player that joined
type JoinResult struct {
	Session *model.Session
	Player  model.Player
}

// SubmitResult carries the updated session after a response or guess
// submission. When the submission completed the phase, PhaseChanged is set
// and exactly one of ShuffledResponses (responding -> guessing) or Results
// (guessing -> reveal) is populated.
type SubmitResult struct {
	Session           *model.Session
	PhaseChanged      bool
	ShuffledResponses []model.AnonymousResponse
	Results           *model.RoundResults
}

// DisconnectResult carries the outcome of a disconnect so the caller can
// broadcast the right combination of events
type DisconnectResult struct {
	Session           *model.Session
	Player            model.Player
	NewHost           *model.Player
	PhaseChanged      bool
	ShuffledResponses []model.AnonymousResponse
	Results           *model.RoundResults
}

// CreateSession creates a new session hosted by a player with the given
// nickname
func (c *Controller) CreateSession(ctx context.Context, hostNickname string) (*model.Session, *model.Player, error) {
	nickname, err := identity.SanitizeNickname(hostNickname)
	if err != nil {
		return nil, nil, err
	}

	now := c.clock.Now()
	host := model.Player{
		ID:          c.identity.NewPlayerID(),
		Nickname:    nickname,
		IsHost:      true,
		IsConnected: true,
		JoinedAt:    now,
	}

	session := &model.Session{
		HostID:      host.ID,
		Phase:       model.PhaseLobby,
		Rounds:      []model.Round{},
		Players:     []model.Player{host},
		UsedPrompts: []string{},
		CreatedAt:   now,
		ExpiresAt:   now.Add(SessionTTL),
	}

	// The code is claimed atomically at create time, so two concurrent
	// creates can never share one
	for attempt := 0; ; attempt++ {
		if attempt >= maxCodeAttempts {
			return nil, nil, model.ErrCodeGenerationExhausted
		}
		session.Code = c.identity.NewSessionCode()
		err := c.storage.CreateSession(ctx, session)
		if errors.Is(err, model.ErrSessionExists) {
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		break
	}

	c.logger.Info("session created",
		slog.String("code", string(session.Code)),
		slog.String("host_id", string(host.ID)),
	)

	return session, &host, nil
}

// GetSession retrieves a session by code
func (c *Controller) GetSession(ctx context.Context, code model.SessionCode) (*model.Session, error) {
	return c.storage.GetSession(ctx, code)
}

// JoinSession adds a player to a session that is still in the lobby
func (c *Controller) JoinSession(ctx context.Context, code model.SessionCode, nickname string) (*JoinResult, error) {
	unlock := c.locks.Lock(code)
	defer unlock()

	session, err := c.storage.GetSession(ctx, code)
	if err != nil {
		return nil, err
	}

	sanitized, err := identity.SanitizeNickname(nickname)
	if err != nil {
		return nil, err
	}

	if session.Phase != model.PhaseLobby {
		return nil, model.ErrSessionInProgress
	}
	if len(session.Players) >= model.MaxPlayers {
		return nil, model.ErrSessionFull
	}
	if session.HasNickname(sanitized) {
		return nil, model.ErrNicknameTaken
	}

	player := model.Player{
		ID:          c.identity.NewPlayerID(),
		Nickname:    sanitized,
		IsHost:      false,
		IsConnected: true,
		JoinedAt:    c.clock.Now(),
	}
	session.Players = append(session.Players, player)

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("player joined",
		slog.String("code", string(code)),
		slog.String("player_id", string(player.ID)),
		slog.Int("player_count", len(session.Players)),
	)

	return &JoinResult{Session: session, Player: player}, nil
}

// StartRound begins a new round. Only the host may start one, and only
// from the lobby or after a reveal. An empty prompt selects one from the
// pool, skipping prompts this session has already seen.
func (c *Controller) StartRound(ctx context.Context, code model.SessionCode, hostID model.PlayerID, prompt string) (*model.Session, error) {
	unlock := c.locks.Lock(code)
	defer unlock()

	session, err := c.storage.GetSession(ctx, code)
	if err != nil {
		return nil, err
	}

	if hostID != session.HostID {
		return nil, model.ErrNotHost
	}
	if session.Phase != model.PhaseLobby && session.Phase != model.PhaseReveal {
		return nil, model.ErrWrongPhase
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		prompt = c.prompts.Select(session.UsedPrompts)
	}

	roundNumber := len(session.Rounds)
	session.Rounds = append(session.Rounds, model.NewRound(roundNumber, prompt))
	session.CurrentRound = roundNumber
	session.Phase = model.PhaseResponding
	session.UsedPrompts = append(session.UsedPrompts, prompt)

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("round started",
		slog.String("code", string(code)),
		slog.Int("round", roundNumber),
	)

	return session, nil
}

// SubmitResponse records a player's anonymous response for the current
// round, advancing to guessing once every connected player has responded
func (c *Controller) SubmitResponse(ctx context.Context, code model.SessionCode, playerID model.PlayerID, text string) (*SubmitResult, error) {
	unlock := c.locks.Lock(code)
	defer unlock()

	session, err := c.storage.GetSession(ctx, code)
	if err != nil {
		return nil, err
	}

	if session.GetPlayer(playerID) == nil {
		return nil, model.ErrPlayerNotFound
	}
	if session.Phase != model.PhaseResponding {
		return nil, model.ErrWrongPhase
	}

	round := session.Round()
	if round.ResponseBy(playerID) != nil {
		return nil, model.ErrAlreadySubmitted
	}

	sanitized, err := identity.SanitizeResponseText(text)
	if err != nil {
		return nil, err
	}

	response := &model.Response{
		ID:          c.identity.NewResponseID(),
		PlayerID:    playerID,
		Text:        sanitized,
		SubmittedAt: c.clock.Now(),
	}
	round.Responses[response.ID] = response

	result := &SubmitResult{Session: session}
	if c.respondingComplete(session) {
		session.Phase = model.PhaseGuessing
		result.PhaseChanged = true
		result.ShuffledResponses = c.scoring.Shuffle(round)
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("response submitted",
		slog.String("code", string(code)),
		slog.String("player_id", string(playerID)),
		slog.Bool("phase_changed", result.PhaseChanged),
	)

	return result, nil
}

// SubmitGuesses records a player's complete authorship guesses, sealing
// the round once every connected player has guessed
func (c *Controller) SubmitGuesses(ctx context.Context, code model.SessionCode, playerID model.PlayerID, guesses map[model.ResponseID]model.PlayerID) (*SubmitResult, error) {
	unlock := c.locks.Lock(code)
	defer unlock()

	session, err := c.storage.GetSession(ctx, code)
	if err != nil {
		return nil, err
	}

	if session.GetPlayer(playerID) == nil {
		return nil, model.ErrPlayerNotFound
	}
	if session.Phase != model.PhaseGuessing {
		return nil, model.ErrWrongPhase
	}

	round := session.Round()
	if round.HasGuessed(playerID) {
		return nil, model.ErrAlreadySubmitted
	}
	if len(guesses) != len(round.Responses) {
		return nil, model.ErrIncompleteGuesses
	}
	for responseID, guessedID := range guesses {
		if _, ok := round.Responses[responseID]; !ok {
			return nil, model.ErrUnknownResponseID
		}
		if session.GetPlayer(guessedID) == nil {
			return nil, model.ErrUnknownPlayerID
		}
	}

	copied := make(map[model.ResponseID]model.PlayerID, len(guesses))
	for responseID, guessedID := range guesses {
		copied[responseID] = guessedID
	}
	round.Guesses[playerID] = &model.PlayerGuesses{
		PlayerID:    playerID,
		Guesses:     copied,
		SubmittedAt: c.clock.Now(),
	}

	result := &SubmitResult{Session: session}
	if c.guessingComplete(session) {
		round.Results = c.scoring.ComputeResults(round)
		session.Phase = model.PhaseReveal
		result.PhaseChanged = true
		result.Results = round.Results
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("guesses submitted",
		slog.String("code", string(code)),
		slog.String("player_id", string(playerID)),
		slog.Bool("phase_changed", result.PhaseChanged),
	)

	return result, nil
}

// EndGame returns the final session snapshot and deletes the record.
// Only the host may end the game; it is legal from any phase.
func (c *Controller) EndGame(ctx context.Context, code model.SessionCode, hostID model.PlayerID) (*model.Session, error) {
	unlock := c.locks.Lock(code)
	defer unlock()

	session, err := c.storage.GetSession(ctx, code)
	if err != nil {
		return nil, err
	}

	if hostID != session.HostID {
		return nil, model.ErrNotHost
	}

	if err := c.storage.DeleteSession(ctx, code); err != nil {
		return nil, err
	}

	c.logger.Info("session ended",
		slog.String("code", string(code)),
		slog.Int("rounds_played", len(session.Rounds)),
	)

	return session, nil
}

// HandleDisconnect marks a player disconnected, reassigns the host role if
// needed, and re-evaluates round completion against the remaining
// connected players. Disconnection never removes a player: their responses
// and guesses stay attributable.
func (c *Controller) HandleDisconnect(ctx context.Context, code model.SessionCode, playerID model.PlayerID) (*DisconnectResult, error) {
	unlock := c.locks.Lock(code)
	defer unlock()

	session, err := c.storage.GetSession(ctx, code)
	if err != nil {
		return nil, err
	}

	player := session.GetPlayer(playerID)
	if player == nil {
		return nil, model.ErrPlayerNotFound
	}

	player.IsConnected = false

	result := &DisconnectResult{Session: session, Player: *player}

	// Host failover: earliest-joined connected player takes over. If no
	// one is left connected the host id stays as-is for expiry to reap.
	if player.IsHost {
		if successor := earliestConnected(session, playerID); successor != nil {
			player.IsHost = false
			successor.IsHost = true
			session.HostID = successor.ID
			result.NewHost = successor
		}
	}

	// A departure can complete a round that was waiting on the departed
	// player. Transitions only fire from their own phase, so this cannot
	// re-seal an already-complete round.
	switch session.Phase {
	case model.PhaseResponding:
		if c.respondingComplete(session) {
			round := session.Round()
			session.Phase = model.PhaseGuessing
			result.PhaseChanged = true
			result.ShuffledResponses = c.scoring.Shuffle(round)
		}
	case model.PhaseGuessing:
		if c.guessingComplete(session) {
			round := session.Round()
			round.Results = c.scoring.ComputeResults(round)
			session.Phase = model.PhaseReveal
			result.PhaseChanged = true
			result.Results = round.Results
		}
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("player disconnected",
		slog.String("code", string(code)),
		slog.String("player_id", string(playerID)),
		slog.Bool("host_changed", result.NewHost != nil),
		slog.Bool("phase_changed", result.PhaseChanged),
	)

	return result, nil
}

// respondingComplete reports whether every connected player has a response
// in the current round. Completion is gated on connected players only so a
// departed player can never strand a round.
func (c *Controller) respondingComplete(session *model.Session) bool {
	round := session.Round()
	if round == nil {
		return false
	}
	connected := session.ConnectedPlayers()
	if len(connected) == 0 {
		return false
	}
	for _, p := range connected {
		if round.ResponseBy(p.ID) == nil {
			return false
		}
	}
	return true
}

// guessingComplete reports whether every connected player has submitted
// guesses for the current round
func (c *Controller) guessingComplete(session *model.Session) bool {
	round := session.Round()
	if round == nil {
		return false
	}
	connected := session.ConnectedPlayers()
	if len(connected) == 0 {
		return false
	}
	for _, p := range connected {
		if !round.HasGuessed(p.ID) {
			return false
		}
	}
	return true
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateSession(ctx context.Context, hostNickname string) (*model.Session, *model.Player, error)
	GetSession(ctx context.Context, code model.SessionCode) (*model.Session, error)
	JoinSession(ctx context.Context, code model.SessionCode, nickname string) (*JoinResult, error)
	StartRound(ctx context.Context, code model.SessionCode, hostID model.PlayerID, prompt string) (*model.Session, error)
	SubmitResponse(ctx context.Context, code model.SessionCode, playerID model.PlayerID, text string) (*SubmitResult, error)
	SubmitGuesses(ctx context.Context, code model.SessionCode, playerID model.PlayerID, guesses map[model.ResponseID]model.PlayerID) (*SubmitResult, error)
	EndGame(ctx context.Context, code model.SessionCode, hostID model.PlayerID) (*model.Session, error)
	HandleDisconnect(ctx context.Context, code model.SessionCode, playerID model.PlayerID) (*DisconnectResult, error)
}

var _ ControllerInterface = (*Controller)(nil)

// earliestConnected finds the connected player with the earliest join
// time, excluding the given player. Join order breaks ties since Players
// is kept in join order.
func earliestConnected(session *model.Session, exclude model.PlayerID) *model.Player {
	var successor *model.Player
	for i := range session.Players {
		p := &session.Players[i]
		if p.ID == exclude || !p.IsConnected {
			continue
		}
		if successor == nil || p.JoinedAt.Before(successor.JoinedAt) {
			successor = p
		}
	}
	return successor
}
