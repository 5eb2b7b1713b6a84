package httpclient

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dailyhustle/hustle/internal/common"
)

// Kind separates failures with no response from failures with one.
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindHTTP
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "NETWORK"
	case KindHTTP:
		return "HTTP"
	default:
		return "UNKNOWN"
	}
}

// RequestError is returned by Do and Upload for every failed request.
type RequestError struct {
	Kind    Kind
	Method  string
	Path    string
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Kind == KindNetwork {
		return fmt.Sprintf("%s %s: network error: %v", e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.Status, e.Message)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Is lets callers match transport outcomes with the common sentinels.
func (e *RequestError) Is(target error) bool {
	switch target {
	case common.ErrUnauthorized:
		return e.Kind == KindHTTP && (e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
	case common.ErrUnavailable:
		return e.Kind == KindNetwork
	}
	return false
}

// Message returns the user-facing message carried by err, or fallback when
// err is not a RequestError with a message.
func Message(err error, fallback string) string {
	var re *RequestError
	if errors.As(err, &re) && re.Kind == KindHTTP && re.Message != "" {
		return re.Message
	}
	return fallback
}

// StatusOf returns the HTTP status of err, or 0.
func StatusOf(err error) int {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Status
	}
	return 0
}
