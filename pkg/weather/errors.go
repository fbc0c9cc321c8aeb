package weather

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies why a fetch did not produce a reading.
type Kind int

const (
	// KindUnknown is returned by KindOf for errors not produced by this package.
	KindUnknown Kind = iota
	// NetworkFailure covers DNS, connection, timeout and body read errors.
	NetworkFailure
	// MalformedResponse covers undecodable JSON, schema violations and
	// provider error responses.
	MalformedResponse
)

func (k Kind) String() string {
	switch k {
	case NetworkFailure:
		return "network_failure"
	case MalformedResponse:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// ErrEmptyCity is what callers return when a user submits a blank city name.
// The client itself never returns it.
var ErrEmptyCity = errors.New("city name is empty")

// Error is the single terminal failure of a fetch.
type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newNetworkFailure(cause error) *Error {
	return &Error{Kind: NetworkFailure, Cause: cause}
}

func newMalformedResponse(cause error) *Error {
	return &Error{Kind: MalformedResponse, Cause: cause}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var werr *Error
	if errors.As(err, &werr) {
		return werr.Kind
	}
	return KindUnknown
}

// IsNetworkFailure reports whether err is a NetworkFailure.
func IsNetworkFailure(err error) bool {
	return KindOf(err) == NetworkFailure
}

// IsMalformedResponse reports whether err is a MalformedResponse.
func IsMalformedResponse(err error) bool {
	return KindOf(err) == MalformedResponse
}

// ProviderError is the cause of a MalformedResponse when the provider answered
// with a non-200 status. Code and Message come from the provider's error body
// when it has one.
type ProviderError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("provider returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Message)
}

// ProviderStatus returns the HTTP status of a provider error in err's chain,
// or 0 if there is none.
func ProviderStatus(err error) int {
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr.StatusCode
	}
	return 0
}
