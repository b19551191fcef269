package identity

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/jfraser/whosaid/internal/dependencies/random"
	"github.com/jfraser/whosaid/internal/model"
)

const (
	// SessionCodeLength is the length of generated session codes
	SessionCodeLength = 6
	// SessionCodeAlphabet is the characters used in session codes
	SessionCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// NicknameMinLength and NicknameMaxLength bound trimmed nicknames
	NicknameMinLength = 3
	NicknameMaxLength = 20

	// ResponseMaxLength bounds sanitized response text
	ResponseMaxLength = 500
)

// Specific validation failures, all matching model.ErrInvalidNickname or
// model.ErrEmptyResponse so the transport layer can map them coarsely while
// the UI shows the precise reason.
var (
	ErrNicknameEmpty    = fmt.Errorf("%w: empty after sanitizing", model.ErrInvalidNickname)
	ErrNicknameTooShort = fmt.Errorf("%w: must be at least %d characters", model.ErrInvalidNickname, NicknameMinLength)
	ErrNicknameBadChars = fmt.Errorf("%w: only letters, digits and spaces allowed", model.ErrInvalidNickname)
)

var (
	nicknamePattern = regexp.MustCompile(`^[A-Za-z0-9 ]+$`)
	codePattern     = regexp.MustCompile(`^[A-Z0-9]{6}$`)
	tagPattern      = regexp.MustCompile(`<[^>]*>`)
)

// Service generates session codes and opaque ids
type Service struct {
	random random.Random
}

// New creates a new identity service
func New(rnd random.Random) *Service {
	return &Service{random: rnd}
}

// NewSessionCode generates a candidate session code. Uniqueness against
// live sessions is the caller's responsibility.
func (s *Service) NewSessionCode() model.SessionCode {
	return model.SessionCode(s.random.String(SessionCodeLength, SessionCodeAlphabet))
}

// NewPlayerID generates a fresh opaque player id
func (s *Service) NewPlayerID() model.PlayerID {
	return model.PlayerID(uuid.NewString())
}

// NewResponseID generates a fresh opaque response id
func (s *Service) NewResponseID() model.ResponseID {
	return model.ResponseID(uuid.NewString())
}

// ValidateNickname reports whether a raw nickname is acceptable as-is:
// the untrimmed string matches the nickname pattern and the trimmed length
// is within bounds.
func ValidateNickname(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < NicknameMinLength || len(trimmed) > NicknameMaxLength {
		return false
	}
	return nicknamePattern.MatchString(raw)
}

// SanitizeNickname strips tag-like substrings and NUL bytes, trims,
// truncates to the maximum length and re-validates. The returned error
// names the remaining problem, or is nil if the result is usable.
func SanitizeNickname(raw string) (string, error) {
	sanitized := stripUnsafe(raw)
	sanitized = strings.TrimSpace(sanitized)
	sanitized = truncate(sanitized, NicknameMaxLength)
	sanitized = strings.TrimSpace(sanitized)

	switch {
	case sanitized == "":
		return "", ErrNicknameEmpty
	case len(sanitized) < NicknameMinLength:
		return "", ErrNicknameTooShort
	case !nicknamePattern.MatchString(sanitized):
		return "", ErrNicknameBadChars
	}
	return sanitized, nil
}

// SanitizeResponseText strips tag-like substrings and NUL bytes, trims and
// truncates response text, rejecting text that is empty once sanitized
func SanitizeResponseText(raw string) (string, error) {
	sanitized := stripUnsafe(raw)
	sanitized = strings.TrimSpace(sanitized)
	sanitized = truncate(sanitized, ResponseMaxLength)
	sanitized = strings.TrimSpace(sanitized)

	if sanitized == "" {
		return "", model.ErrEmptyResponse
	}
	return sanitized, nil
}

// ValidateSessionCode reports whether a code has the exact generated shape
func ValidateSessionCode(code string) bool {
	return codePattern.MatchString(code)
}

// ValidateID reports whether an opaque id is a well-formed v4 UUID
func ValidateID(id string) bool {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return false
	}
	return parsed.Version() == 4
}

func stripUnsafe(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	return strings.ReplaceAll(s, "\x00", "")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
