package prompts

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"github.com/jfraser/whosaid/internal/dependencies/random"
)

// Service owns the prompt pool and the no-repeat selection policy
type Service struct {
	random random.Random

	mu      sync.RWMutex
	prompts []string
}

// New creates a prompt service backed by the built-in pool
func New(rnd random.Random) *Service {
	return &Service{
		random:  rnd,
		prompts: defaultPrompts(),
	}
}

// LoadFromFile replaces the pool with prompts from a file (one per line).
// Blank lines and lines starting with '#' are skipped.
func (s *Service) LoadFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var prompts []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		prompts = append(prompts, line)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(prompts) > 0 {
		s.prompts = prompts
	}
	return nil
}

// LoadPrompts directly replaces the pool (useful for testing)
func (s *Service) LoadPrompts(prompts []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = make([]string, len(prompts))
	copy(s.prompts, prompts)
}

// Select picks a prompt uniformly at random, excluding prompts already
// used. Once every prompt has been shown, selection falls back to the
// full pool and repeats become possible.
func (s *Service) Select(used []string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.prompts) == 0 {
		return ""
	}

	usedSet := make(map[string]struct{}, len(used))
	for _, p := range used {
		usedSet[p] = struct{}{}
	}

	var unused []string
	for _, p := range s.prompts {
		if _, ok := usedSet[p]; !ok {
			unused = append(unused, p)
		}
	}

	pool := unused
	if len(pool) == 0 {
		pool = s.prompts
	}
	return pool[s.random.Intn(len(pool))]
}

// Count returns the size of the prompt pool
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.prompts)
}
