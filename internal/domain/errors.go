package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrEmptyQuery signals a blank consultation or search query.
	ErrEmptyQuery = errors.New("query is empty")
	// ErrInvalidCorpus signals malformed bundled reference data.
	ErrInvalidCorpus = errors.New("invalid corpus")

	// ErrRemoteUnavailable signals that no remote assistant is configured.
	ErrRemoteUnavailable = errors.New("remote assistant not configured")
	// ErrRemoteCallFailed signals a network, HTTP or payload failure of the remote assistant.
	ErrRemoteCallFailed = errors.New("remote assistant call failed")

	// ErrSessionNotFound signals an unknown consultation session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionBusy signals a submission while another turn of the session is in flight.
	ErrSessionBusy = errors.New("session busy")
	// ErrProfileStoreDisabled signals that no profile store is configured.
	ErrProfileStoreDisabled = errors.New("profile store disabled")
	// ErrInvalidProfile signals a profile write without user or dosha.
	ErrInvalidProfile = errors.New("invalid profile")
	// ErrBudgetExceeded signals that the assistant token budget is spent.
	ErrBudgetExceeded = errors.New("assistant token budget exceeded")
	ErrInvalidPeriod  = errors.New("invalid usage period")
)

// CorpusError wraps ErrInvalidCorpus with the offending record.
type CorpusError struct {
	Kind   string
	ID     string
	Reason string
}

func (e *CorpusError) Error() string {
	return fmt.Sprintf("%s: %s %q: %s", ErrInvalidCorpus.Error(), e.Kind, e.ID, e.Reason)
}

func (e *CorpusError) Unwrap() error { return ErrInvalidCorpus }

// NewCorpusError creates a corpus validation error.
func NewCorpusError(kind, id, reason string) error {
	return &CorpusError{Kind: kind, ID: id, Reason: reason}
}
