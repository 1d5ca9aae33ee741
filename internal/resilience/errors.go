// Package resilience classifies errors returned by external service calls.
package resilience

import (
	"errors"
	"net"
	"strings"
	"syscall"
)

// Class is the handling category of an error from the inference service.
type Class int

const (
	// ClassNone means there was no error.
	ClassNone Class = iota
	// ClassQuota means the credential hit its rate or quota limit.
	ClassQuota
	// ClassTransient means a network or server hiccup worth retrying elsewhere.
	ClassTransient
	// ClassPermanent covers everything else (bad request, unknown model, ...).
	ClassPermanent
)

func (c Class) String() string {
	switch c {
	case ClassNone:
		return "none"
	case ClassQuota:
		return "quota"
	case ClassTransient:
		return "transient"
	case ClassPermanent:
		return "permanent"
	default:
		return "unknown"
	}
}

// TransientError wraps an error that is safe to retry (e.g., 429, 5xx, network timeout).
type TransientError struct {
	Err        error
	StatusCode int
}

func (e *TransientError) Error() string {
	return e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// NewTransientError wraps an error as transient with an optional HTTP status code.
func NewTransientError(err error, statusCode int) *TransientError {
	return &TransientError{Err: err, StatusCode: statusCode}
}

// quotaPatterns are matched case-insensitively against the error text. The
// Gemini API reports exhaustion as gRPC status RESOURCE_EXHAUSTED or HTTP 429,
// and client libraries flatten either into the message.
var quotaPatterns = []string{
	"resource_exhausted",
	"429",
	"too many requests",
	"quota exceeded",
}

// Classify maps err onto a Class. Quota exhaustion is checked before the
// transient patterns because a 429 is also transient.
func Classify(err error) Class {
	if err == nil {
		return ClassNone
	}
	if IsQuotaExhausted(err) {
		return ClassQuota
	}
	if IsTransient(err) {
		return ClassTransient
	}
	return ClassPermanent
}

// IsQuotaExhausted returns true if err signals that the credential used for
// the call is out of quota or being rate limited.
func IsQuotaExhausted(err error) bool {
	if err == nil {
		return false
	}

	var te *TransientError
	if errors.As(err, &te) && te.StatusCode == 429 {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, p := range quotaPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// IsTransient returns true if the error (or any error in its chain) is a
// TransientError, or if it matches common transient error patterns (network
// timeouts, connection resets, DNS failures).
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var te *TransientError
	if errors.As(err, &te) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return true
	}

	// String-based heuristics for wrapped errors from HTTP clients.
	msg := strings.ToLower(err.Error())
	transientPatterns := []string{
		"connection reset by peer",
		"broken pipe",
		"temporary failure in name resolution",
		"no such host",
		"tls handshake timeout",
		"i/o timeout",
		"deadline exceeded",
		"server closed idle connection",
		"transport connection broken",
		"unavailable",
	}
	for _, p := range transientPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}

	return false
}

// IsTransientHTTPStatus returns true if the HTTP status code indicates a
// transient server-side issue that is safe to retry.
func IsTransientHTTPStatus(statusCode int) bool {
	switch statusCode {
	case 408, // Request Timeout
		429, // Too Many Requests
		500, // Internal Server Error
		502, // Bad Gateway
		503, // Service Unavailable
		504: // Gateway Timeout
		return true
	default:
		return false
	}
}
