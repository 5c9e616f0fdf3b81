package generate

import (
	"errors"
	"net"
	"net/http"

	"google.golang.org/genai"
)

var (
	// ErrServiceUnavailable marks a failure of the remote service itself.
	// Errors wrapping it are retried.
	ErrServiceUnavailable = errors.New("generative AI service unavailable")

	// ErrGenerationFailed is returned by Generator.Generate when no text
	// could be produced.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrEmptyResponse is returned when the model answers with no text.
	ErrEmptyResponse = errors.New("model returned no text")
)

// IsServiceFailure reports whether err means the service could not be
// reached or could not serve the request right now: transport errors,
// timeouts, rate limiting, and 5xx responses. Request errors such as an
// invalid argument or a rejected API key are not service failures.
func IsServiceFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrServiceUnavailable) {
		return true
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.Code)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return retryableStatus(apiErrPtr.Code)
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

func retryableStatus(code int) bool {
	return code == http.StatusRequestTimeout ||
		code == http.StatusTooManyRequests ||
		code >= http.StatusInternalServerError
}
