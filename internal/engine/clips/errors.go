package clips

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"github.com/anatolykoptev/go_clipverb/internal/engine"
)

// Error classes surfaced by a generation or synthesis call.
// Typed errors below unwrap to one of these so callers can use errors.Is.
var (
	ErrConfiguration     = errors.New("clips: invalid configuration")
	ErrOversizedInput    = errors.New("clips: input too large")
	ErrUpstream          = errors.New("clips: upstream rejected request")
	ErrStreamInterrupted = errors.New("clips: stream interrupted")
	ErrSynthesis         = errors.New("clips: audio synthesis failed")
	ErrTimeout           = errors.New("clips: generation timed out")
	ErrAlreadyInProgress = errors.New("clips: generation already in progress")
)

// OversizedInputError reports an upload above the size ceiling.
type OversizedInputError struct {
	Size  int64
	Limit int64
}

func (e *OversizedInputError) Error() string {
	return fmt.Sprintf("clips: upload is %d bytes, limit is %d", e.Size, e.Limit)
}

func (e *OversizedInputError) Unwrap() error { return ErrOversizedInput }

// UpstreamError carries the provider's rejection of a request that never
// started streaming (auth, quota, bad model name).
type UpstreamError struct {
	Message   string
	Status    string
	Code      int
	Retryable bool
	Err       error
}

func (e *UpstreamError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("clips: upstream %d %s: %s", e.Code, e.Status, e.Message)
	}
	return "clips: upstream: " + e.Message
}

func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUpstream}
	}
	return []error{ErrUpstream, e.Err}
}

// StreamInterruptedError is returned when the fragment sequence fails after
// it began. Partial holds everything aggregated up to the failure.
type StreamInterruptedError struct {
	Partial Result
	Err     error
}

func (e *StreamInterruptedError) Error() string {
	return fmt.Sprintf("clips: stream interrupted after %d chars: %v", len(e.Partial.Text), e.Err)
}

func (e *StreamInterruptedError) Unwrap() []error {
	return []error{ErrStreamInterrupted, e.Err}
}

// newUpstreamError classifies a provider error. genai reports HTTP failures
// as APIError; anything else keeps its message and is not retryable.
func newUpstreamError(err error) *UpstreamError {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return upstreamFromAPI(apiErr, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return upstreamFromAPI(*apiErrPtr, err)
	}
	return &UpstreamError{Message: err.Error(), Err: err}
}

func upstreamFromAPI(apiErr genai.APIError, err error) *UpstreamError {
	status := apiErr.Status
	if status == "" {
		status = http.StatusText(apiErr.Code)
	}
	return &UpstreamError{
		Message:   apiErr.Message,
		Status:    status,
		Code:      apiErr.Code,
		Retryable: engine.IsRetryableStatus(apiErr.Code),
		Err:       err,
	}
}
