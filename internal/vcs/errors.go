package vcs

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
)

// Typed fetch errors so callers can classify failures without string parsing.
type AuthError struct{ Op, URL string; Err error }

func (e *AuthError) Error() string { return fmt.Sprintf("%s auth error for %s: %v", e.Op, e.URL, e.Err) }
func (e *AuthError) Unwrap() error { return e.Err }

type NotFoundError struct{ Op, URL string; Err error }

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s not found %s: %v", e.Op, e.URL, e.Err) }
func (e *NotFoundError) Unwrap() error { return e.Err }

type TimeoutError struct{ Op, URL string; Err error }

func (e *TimeoutError) Error() string { return fmt.Sprintf("%s timed out for %s: %v", e.Op, e.URL, e.Err) }
func (e *TimeoutError) Unwrap() error { return e.Err }

type NetworkError struct{ Op, URL string; Err error }

func (e *NetworkError) Error() string { return fmt.Sprintf("%s network error for %s: %v", e.Op, e.URL, e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// classify wraps go-git failures into typed variants where recognizable.
func classify(op, url string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, transport.ErrAuthenticationRequired), errors.Is(err, transport.ErrAuthorizationFailed):
		return &AuthError{Op: op, URL: url, Err: err}
	case errors.Is(err, transport.ErrRepositoryNotFound):
		return &NotFoundError{Op: op, URL: url, Err: err}
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return &TimeoutError{Op: op, URL: url, Err: err}
	}
	l := strings.ToLower(err.Error())
	switch {
	case strings.Contains(l, "authentication") || strings.Contains(l, "auth fail") || strings.Contains(l, "invalid username or password"):
		return &AuthError{Op: op, URL: url, Err: err}
	case strings.Contains(l, "not found") || strings.Contains(l, "repository does not exist") || strings.Contains(l, "reference not found"):
		return &NotFoundError{Op: op, URL: url, Err: err}
	case strings.Contains(l, "timeout") || strings.Contains(l, "i/o timeout") || strings.Contains(l, "deadline exceeded"):
		return &TimeoutError{Op: op, URL: url, Err: err}
	case strings.Contains(l, "connection refused") || strings.Contains(l, "connection reset") || strings.Contains(l, "no route to host") || strings.Contains(l, "temporary failure"):
		return &NetworkError{Op: op, URL: url, Err: err}
	}
	return fmt.Errorf("%s %s: %w", op, url, err)
}

// IsPermanent reports whether retrying err could never succeed. Auth and
// not-found failures are permanent; network conditions and anything
// unrecognized get retried.
func IsPermanent(err error) bool {
	return errors.As(err, new(*AuthError)) || errors.As(err, new(*NotFoundError))
}
