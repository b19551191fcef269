package redis

import (
	"fmt"

	"github.com/jfraser/whosaid/internal/model"
)

// Key prefix for all session data
const keyPrefix = "whosaid"

// sessionKey returns the Redis key for a Session
func sessionKey(code model.SessionCode) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, code)
}
