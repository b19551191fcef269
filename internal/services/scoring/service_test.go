package scoring

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jfraser/whosaid/internal/dependencies/mocks"
	"github.com/jfraser/whosaid/internal/dependencies/random"
	"github.com/jfraser/whosaid/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	random  *mocks.MockRandom
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	s.service = New(s.random)
}

// buildRound creates a round where player p<i> authored response r<i>
func buildRound(playerCount int) *model.Round {
	round := model.NewRound(0, "test prompt")
	for i := 1; i <= playerCount; i++ {
		id := model.ResponseID(fmt.Sprintf("r%d", i))
		round.Responses[id] = &model.Response{
			ID:          id,
			PlayerID:    model.PlayerID(fmt.Sprintf("p%d", i)),
			Text:        fmt.Sprintf("response %d", i),
			SubmittedAt: time.Date(2024, 6, 1, 12, i, 0, 0, time.UTC),
		}
	}
	return &round
}

// Shuffle tests

func (s *ServiceSuite) TestShufflePreservesIDSet() {
	round := buildRound(4)

	shuffled := s.service.Shuffle(round)

	s.Len(shuffled, 4)
	seen := make(map[model.ResponseID]bool)
	for _, r := range shuffled {
		seen[r.ID] = true
	}
	for id := range round.Responses {
		s.True(seen[id], "response %s missing from shuffle", id)
	}
}

func (s *ServiceSuite) TestShuffleCarriesNoAuthorship() {
	round := buildRound(3)

	shuffled := s.service.Shuffle(round)

	data, err := json.Marshal(shuffled)
	s.Require().NoError(err)
	for _, resp := range round.Responses {
		s.NotContains(string(data), string(resp.PlayerID))
	}
}

func (s *ServiceSuite) TestShuffleIsDeterministicWithMockedRandom() {
	round := buildRound(3)

	// Identity permutation: each swap targets the current index
	s.random.QueueIntn(2, 1)
	first := s.service.Shuffle(round)

	s.random.Reset()
	s.random.QueueIntn(2, 1)
	second := s.service.Shuffle(round)

	s.Equal(first, second)
}

func (s *ServiceSuite) TestShuffleSingleResponse() {
	round := buildRound(1)
	shuffled := s.service.Shuffle(round)
	s.Len(shuffled, 1)
}

func (s *ServiceSuite) TestShuffleEmptyRound() {
	round := model.NewRound(0, "empty")
	s.Empty(s.service.Shuffle(&round))
}

// Statistical fairness check with a real random source: all 24 orderings
// of 4 responses should appear with roughly equal frequency.
func TestShuffleFairness(t *testing.T) {
	svc := New(random.New())
	round := buildRound(4)

	const trials = 12000
	counts := make(map[string]int)
	for i := 0; i < trials; i++ {
		shuffled := svc.Shuffle(round)
		key := ""
		for _, r := range shuffled {
			key += string(r.ID)
		}
		counts[key] = counts[key] + 1
	}

	if len(counts) != 24 {
		t.Fatalf("expected all 24 permutations, saw %d", len(counts))
	}
	// Expected 500 per permutation; bounds are ~6 standard deviations out
	for perm, n := range counts {
		if n < 350 || n > 650 {
			t.Errorf("permutation %s occurred %d times, outside fair range", perm, n)
		}
	}
}

// ComputeResults tests

func (s *ServiceSuite) TestComputeResultsPenalties() {
	// Three players, P1 guesses r1->p2 (wrong), r2->p1 (wrong), r3->p3 (right)
	round := buildRound(3)
	round.Guesses["p1"] = &model.PlayerGuesses{
		PlayerID: "p1",
		Guesses: map[model.ResponseID]model.PlayerID{
			"r1": "p2",
			"r2": "p1",
			"r3": "p3",
		},
	}

	results := s.service.ComputeResults(round)

	s.Equal(2, results.Penalties["p1"])
	s.Equal(0, results.Penalties["p2"])
	s.Equal(0, results.Penalties["p3"])
}

func (s *ServiceSuite) TestComputeResultsEnumeratesAllGuesses() {
	round := buildRound(2)
	round.Guesses["p1"] = &model.PlayerGuesses{
		PlayerID: "p1",
		Guesses:  map[model.ResponseID]model.PlayerID{"r1": "p2", "r2": "p1"},
	}
	round.Guesses["p2"] = &model.PlayerGuesses{
		PlayerID: "p2",
		Guesses:  map[model.ResponseID]model.PlayerID{"r1": "p1", "r2": "p2"},
	}

	results := s.service.ComputeResults(round)

	s.Require().Len(results.Responses, 2)
	// Responses come back ordered by id
	s.Equal(model.ResponseID("r1"), results.Responses[0].ResponseID)
	s.Equal(model.PlayerID("p1"), results.Responses[0].ActualAuthor)
	s.Equal(model.PlayerID("p2"), results.Responses[0].GuessedBy["p1"])
	s.Equal(model.PlayerID("p1"), results.Responses[0].GuessedBy["p2"])
	// Wrong and right guesses both appear in the reveal material
	s.Equal(model.PlayerID("p1"), results.Responses[1].GuessedBy["p1"])
}

func (s *ServiceSuite) TestComputeResultsNonGuessersScoreZero() {
	round := buildRound(3)
	round.Guesses["p2"] = &model.PlayerGuesses{
		PlayerID: "p2",
		Guesses: map[model.ResponseID]model.PlayerID{
			"r1": "p3",
			"r2": "p2",
			"r3": "p1",
		},
	}

	results := s.service.ComputeResults(round)

	// p2 got r1 and r3 wrong; p1 and p3 never guessed
	s.Equal(2, results.Penalties["p2"])
	s.Equal(0, results.Penalties["p1"])
	s.Equal(0, results.Penalties["p3"])
}

func (s *ServiceSuite) TestComputeResultsAllCorrect() {
	round := buildRound(2)
	round.Guesses["p1"] = &model.PlayerGuesses{
		PlayerID: "p1",
		Guesses:  map[model.ResponseID]model.PlayerID{"r1": "p1", "r2": "p2"},
	}

	results := s.service.ComputeResults(round)

	s.Equal(0, results.Penalties["p1"])
}
