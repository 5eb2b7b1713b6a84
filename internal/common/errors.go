// Package common defines shared constants and sentinel errors used across
// the client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Transport-level errors.
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")

	// Session errors.
	ErrNotLoggedIn   = errors.New("not logged in")
	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenExpired  = errors.New("token expired")
	ErrStoreClosed   = errors.New("store closed")
	ErrStaleResponse = errors.New("response arrived after session changed")

	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
)
