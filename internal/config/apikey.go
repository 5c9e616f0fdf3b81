package config

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

const (
	// DefaultAPIKeyEnv is the environment variable holding the Gemini API key.
	DefaultAPIKeyEnv = "GOOGLE_API_KEY"

	// MinAPIKeyLength is the shortest value accepted as an API key.
	MinAPIKeyLength = 30
)

var (
	ErrMissingAPIKey  = errors.New("no API key found")
	ErrAPIKeyTooShort = errors.New("API key is too short")
)

// LoadAPIKey reads the API key from the environment variable name via getenv.
// The value is returned unchanged; it is only checked for presence and
// minimum length in characters.
func LoadAPIKey(getenv func(string) string, name string) (string, error) {
	if name == "" {
		name = DefaultAPIKeyEnv
	}
	key := getenv(name)
	if key == "" {
		return "", fmt.Errorf("%w: please set the %s environment variable", ErrMissingAPIKey, name)
	}
	if utf8.RuneCountInString(key) < MinAPIKeyLength {
		return "", fmt.Errorf("%w (less than %d characters): please check the value of %s", ErrAPIKeyTooShort, MinAPIKeyLength, name)
	}
	return key, nil
}
