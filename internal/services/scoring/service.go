package scoring

import (
	"sort"

	"github.com/jfraser/whosaid/internal/dependencies/random"
	"github.com/jfraser/whosaid/internal/model"
)

// Service computes anonymized response orderings and sealed round results
type Service struct {
	random random.Random
}

// New creates a new scoring service
func New(rnd random.Random) *Service {
	return &Service{random: rnd}
}

// Shuffle returns the round's responses in a uniformly random order,
// stripped of authorship. It is re-invoked on every guessing transition
// rather than cached, so no ordering ever becomes canonical.
func (s *Service) Shuffle(round *model.Round) []model.AnonymousResponse {
	responses := sortedResponses(round)

	shuffled := make([]model.AnonymousResponse, len(responses))
	for i, resp := range responses {
		shuffled[i] = model.AnonymousResponse{ID: resp.ID, Text: resp.Text}
	}

	// Fisher-Yates
	for i := len(shuffled) - 1; i > 0; i-- {
		j := s.random.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// ComputeResults seals a round: one entry per response with its true author
// and every guess made against it, plus each player's wrong-guess penalty
// count. Called exactly once, at the moment the round completes.
func (s *Service) ComputeResults(round *model.Round) *model.RoundResults {
	responses := sortedResponses(round)

	results := &model.RoundResults{
		Responses: make([]model.ResponseResult, 0, len(responses)),
		Penalties: make(map[model.PlayerID]int),
	}

	// Everyone who authored a response appears in the tally, even with no
	// wrong guesses
	for _, resp := range responses {
		results.Penalties[resp.PlayerID] = 0
	}

	for _, resp := range responses {
		entry := model.ResponseResult{
			ResponseID:   resp.ID,
			Text:         resp.Text,
			ActualAuthor: resp.PlayerID,
			GuessedBy:    make(map[model.PlayerID]model.PlayerID),
		}

		for guesserID, playerGuesses := range round.Guesses {
			guessed, ok := playerGuesses.Guesses[resp.ID]
			if !ok {
				continue
			}
			entry.GuessedBy[guesserID] = guessed
			if guessed != resp.PlayerID {
				results.Penalties[guesserID]++
			} else if _, tallied := results.Penalties[guesserID]; !tallied {
				results.Penalties[guesserID] = 0
			}
		}

		results.Responses = append(results.Responses, entry)
	}

	return results
}

// sortedResponses returns the round's responses ordered by id, so callers
// never depend on map iteration order
func sortedResponses(round *model.Round) []*model.Response {
	responses := make([]*model.Response, 0, len(round.Responses))
	for _, resp := range round.Responses {
		responses = append(responses, resp)
	}
	sort.Slice(responses, func(i, j int) bool {
		return responses[i].ID < responses[j].ID
	})
	return responses
}
