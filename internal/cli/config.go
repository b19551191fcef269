package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL   string
	SessionFile string
	Output      string
	Verbose     bool
}

// Identity is the saved player identity for the current session, written
// after create/join so later commands don't need --code/--player flags
type Identity struct {
	Code     string `json:"code"`
	PlayerID string `json:"player_id"`
	Nickname string `json:"nickname"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:   getEnvOrDefault("WHOSAID_SERVER", "http://localhost:8080"),
		SessionFile: getEnvOrDefault("WHOSAID_SESSION_FILE", defaultSessionFile()),
		Output:      "text",
		Verbose:     false,
	}
}

// LoadIdentity reads the saved identity, returning nil if none exists
func (c *Config) LoadIdentity() (*Identity, error) {
	data, err := os.ReadFile(c.SessionFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

// SaveIdentity persists the identity to the session file
func (c *Config) SaveIdentity(id Identity) error {
	dir := filepath.Dir(c.SessionFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.Marshal(id)
	if err != nil {
		return err
	}
	return os.WriteFile(c.SessionFile, data, 0600)
}

// ClearIdentity removes the saved identity
func (c *Config) ClearIdentity() error {
	err := os.Remove(c.SessionFile)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".whosaid/session.json"
	}
	return filepath.Join(home, ".whosaid", "session.json")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
