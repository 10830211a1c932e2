package vaidya

import "github.com/kailas-cloud/vaidya/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound             = domain.ErrNotFound
	ErrEmptyQuery           = domain.ErrEmptyQuery
	ErrInvalidCorpus        = domain.ErrInvalidCorpus
	ErrRemoteUnavailable    = domain.ErrRemoteUnavailable
	ErrRemoteCallFailed     = domain.ErrRemoteCallFailed
	ErrSessionNotFound      = domain.ErrSessionNotFound
	ErrSessionBusy          = domain.ErrSessionBusy
	ErrProfileStoreDisabled = domain.ErrProfileStoreDisabled
	ErrInvalidProfile       = domain.ErrInvalidProfile
	ErrBudgetExceeded       = domain.ErrBudgetExceeded
	ErrInvalidPeriod        = domain.ErrInvalidPeriod
)
