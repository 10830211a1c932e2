package chi

import (
	"time"

	"github.com/kailas-cloud/vaidya/internal/domain/message"
	"github.com/kailas-cloud/vaidya/internal/domain/search/result"
	domusage "github.com/kailas-cloud/vaidya/internal/domain/usage"
)

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes returned in ErrorResponse.Code.
const (
	ErrorCodeBadRequest           ErrorCode = "bad_request"
	ErrorCodeValidationFailed     ErrorCode = "validation_failed"
	ErrorCodeUnauthorized         ErrorCode = "unauthorized"
	ErrorCodeSessionNotFound      ErrorCode = "session_not_found"
	ErrorCodeSessionBusy          ErrorCode = "session_busy"
	ErrorCodeProfileNotFound      ErrorCode = "profile_not_found"
	ErrorCodeProfileStoreDisabled ErrorCode = "profile_store_disabled"
	ErrorCodeInternalError        ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// SearchResultItem is one citation.
type SearchResultItem struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Score    int    `json:"score"`
	Citation string `json:"citation,omitempty"`
}

// SearchResponse is returned by GET /search.
type SearchResponse struct {
	Items []SearchResultItem `json:"items"`
	Total int                `json:"total"`
}

// MessageResponse is one message of a session log.
type MessageResponse struct {
	ID        string             `json:"id"`
	Role      string             `json:"role"`
	Text      string             `json:"text"`
	Sources   []SearchResultItem `json:"sources,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

// MessageListResponse is returned by GET /sessions/{id}/messages.
type MessageListResponse struct {
	Items []MessageResponse `json:"items"`
}

// CreateSessionRequest is the body of POST /sessions.
type CreateSessionRequest struct {
	UserID string `json:"user_id,omitempty"`
}

// CreateSessionResponse is returned by POST /sessions.
type CreateSessionResponse struct {
	ID       string          `json:"id"`
	UserID   string          `json:"user_id,omitempty"`
	Greeting MessageResponse `json:"greeting"`
}

// SubmitMessageRequest is the body of POST /sessions/{id}/messages.
type SubmitMessageRequest struct {
	Text        string `json:"text"`
	ProfileHint string `json:"profile_hint,omitempty"`
}

// SubmitMessageResponse carries the assistant reply and how it was produced.
type SubmitMessageResponse struct {
	Message MessageResponse `json:"message"`
	Path    string          `json:"path"`
}

// SetDoshaRequest is the body of PUT /profiles/{user}/dosha.
type SetDoshaRequest struct {
	Dosha string `json:"dosha"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func resultToDTO(r *result.Result) SearchResultItem {
	return SearchResultItem{
		ID:       r.ID(),
		Kind:     string(r.Kind()),
		Title:    r.Title(),
		Excerpt:  r.Excerpt(),
		Score:    r.Score(),
		Citation: r.Citation(),
	}
}

func resultsToDTO(rs []result.Result) []SearchResultItem {
	items := make([]SearchResultItem, len(rs))
	for i := range rs {
		items[i] = resultToDTO(&rs[i])
	}
	return items
}

func messageToDTO(m *message.Message) MessageResponse {
	resp := MessageResponse{
		ID:        m.ID(),
		Role:      string(m.Role()),
		Text:      m.Text(),
		Timestamp: m.Timestamp().UTC(),
	}
	if len(m.Sources()) > 0 {
		resp.Sources = resultsToDTO(m.Sources())
	}
	return resp
}

// UsageResponse is the body of GET /usage.
type UsageResponse struct {
	Period          string    `json:"period"`
	PeriodStart     time.Time `json:"period_start"`
	PeriodEnd       time.Time `json:"period_end"`
	TokensUsed      int64     `json:"tokens_used"`
	TokensLimit     int64     `json:"tokens_limit"`
	TokensRemaining int64     `json:"tokens_remaining"`
	Exhausted       bool      `json:"exhausted"`
}

func usageToDTO(r domusage.Report) UsageResponse {
	return UsageResponse{
		Period:          string(r.Period()),
		PeriodStart:     r.Start(),
		PeriodEnd:       r.End(),
		TokensUsed:      r.TokensUsed(),
		TokensLimit:     r.TokensLimit(),
		TokensRemaining: r.TokensRemaining(),
		Exhausted:       r.Exhausted(),
	}
}
