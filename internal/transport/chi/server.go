package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	gochi "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/vaidya/internal/domain"
	domusage "github.com/kailas-cloud/vaidya/internal/domain/usage"
	healthuc "github.com/kailas-cloud/vaidya/internal/usecase/health"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the consultation HTTP API.
type Server struct {
	search        Searcher
	sessions      Sessions
	profiles      Profiles
	health        HealthChecker
	usage         UsageReporter
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. profiles can be nil: profile
// endpoints then answer 501.
func NewServer(
	search Searcher,
	sessions Sessions,
	profiles Profiles,
	health HealthChecker,
	usage UsageReporter,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:   search,
		sessions: sessions,
		profiles: profiles,
		health:   health,
		usage:    usage,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrSessionNotFound, http.StatusNotFound, ErrorCodeSessionNotFound),
		sentinelHandler(domain.ErrSessionBusy, http.StatusConflict, ErrorCodeSessionBusy),
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrInvalidProfile, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrProfileStoreDisabled,
			http.StatusNotImplemented, ErrorCodeProfileStoreDisabled),
		sentinelHandler(domain.ErrInvalidPeriod, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeProfileNotFound),
	}
	return s
}

// Mount registers the API routes on r.
func (s *Server) Mount(r gochi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Get("/search", s.Search)
	r.Get("/usage", s.GetUsage)

	r.Post("/sessions", s.CreateSession)
	r.Delete("/sessions/{id}", s.DeleteSession)
	r.Get("/sessions/{id}/messages", s.ListMessages)
	r.Post("/sessions/{id}/messages", s.SubmitMessage)

	r.Get("/profiles/{user}/dosha", s.GetDosha)
	r.Put("/profiles/{user}/dosha", s.SetDosha)
}

// Search handles GET /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var (
		q     string
		limit *int
	)
	if err := runtime.BindQueryParameter("form", true, true, "q", r.URL.Query(), &q); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid parameter q: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid parameter limit: "+err.Error())
		return
	}
	if limit != nil && *limit < 1 {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "limit must be positive")
		return
	}

	results := s.search.Search(r.Context(), q)
	if limit != nil && len(results) > *limit {
		results = results[:*limit]
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Items: resultsToDTO(results),
		Total: len(results),
	})
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	// Пустое тело допустимо: сессия без пользователя.
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}

	info := s.sessions.Create(r.Context(), req.UserID)

	w.Header().Set("Location", "/sessions/"+info.ID)
	writeJSON(w, http.StatusCreated, CreateSessionResponse{
		ID:       info.ID,
		UserID:   info.UserID,
		Greeting: messageToDTO(&info.Greeting),
	})
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(gochi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMessages handles GET /sessions/{id}/messages.
func (s *Server) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.sessions.Messages(gochi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]MessageResponse, len(msgs))
	for i := range msgs {
		items[i] = messageToDTO(&msgs[i])
	}
	writeJSON(w, http.StatusOK, MessageListResponse{Items: items})
}

// SubmitMessage handles POST /sessions/{id}/messages.
func (s *Server) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	var req SubmitMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.handleDomainError(w, domain.ErrEmptyQuery)
		return
	}

	turn, err := s.sessions.Submit(r.Context(), gochi.URLParam(r, "id"), req.Text, req.ProfileHint)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SubmitMessageResponse{
		Message: messageToDTO(&turn.Message),
		Path:    string(turn.Path),
	})
}

// GetDosha handles GET /profiles/{user}/dosha.
func (s *Server) GetDosha(w http.ResponseWriter, r *http.Request) {
	if s.profiles == nil {
		s.handleDomainError(w, domain.ErrProfileStoreDisabled)
		return
	}

	dosha, err := s.profiles.GetDosha(r.Context(), gochi.URLParam(r, "user"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SetDoshaRequest{Dosha: dosha})
}

// SetDosha handles PUT /profiles/{user}/dosha.
func (s *Server) SetDosha(w http.ResponseWriter, r *http.Request) {
	if s.profiles == nil {
		s.handleDomainError(w, domain.ErrProfileStoreDisabled)
		return
	}

	var req SetDoshaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.profiles.SetDosha(r.Context(), gochi.URLParam(r, "user"), req.Dosha); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetUsage handles GET /usage.
func (s *Server) GetUsage(w http.ResponseWriter, r *http.Request) {
	var raw string
	if err := runtime.BindQueryParameter("form", true, false, "period", r.URL.Query(), &raw); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid parameter period: "+err.Error())
		return
	}

	period, err := domusage.ParsePeriod(raw)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, usageToDTO(s.usage.GetReport(r.Context(), period)))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrSessionNotFound,
		domain.ErrSessionBusy,
		domain.ErrEmptyQuery,
		domain.ErrInvalidProfile,
		domain.ErrProfileStoreDisabled,
		domain.ErrInvalidPeriod,
		domain.ErrNotFound,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
