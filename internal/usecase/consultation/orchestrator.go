// Package consultation runs one user turn: local retrieval always, remote prose when possible.
package consultation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/vaidya/internal/domain"
	"github.com/kailas-cloud/vaidya/internal/domain/completion"
	"github.com/kailas-cloud/vaidya/internal/domain/message"
	"github.com/kailas-cloud/vaidya/internal/domain/search/result"
	domsession "github.com/kailas-cloud/vaidya/internal/domain/session"
	"github.com/kailas-cloud/vaidya/internal/logger"
	"github.com/kailas-cloud/vaidya/internal/metrics"
)

// Turn is the outcome of one submission.
type Turn struct {
	Message message.Message
	Path    Path
	// Reason is nil on the remote path, otherwise why the local path was taken.
	Reason error
	Trace  []State
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithHistoryLimit caps how many prior messages are sent to the assistant. 0 sends all.
func WithHistoryLimit(n int) Option {
	return func(o *Orchestrator) {
		if n >= 0 {
			o.historyLimit = n
		}
	}
}

// WithClock overrides the message timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithIDGenerator overrides the message ID source.
func WithIDGenerator(gen func() string) Option {
	return func(o *Orchestrator) { o.newID = gen }
}

// Orchestrator drives the per-turn state machine.
type Orchestrator struct {
	searcher     Searcher
	composer     Composer
	assistant    domain.Assistant
	historyLimit int
	logger       *zap.Logger
	now          func() time.Time
	newID        func() string
}

// New creates an orchestrator. assistant can be nil (local path only).
func New(searcher Searcher, composer Composer, assistant domain.Assistant, logger *zap.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		searcher:  searcher,
		composer:  composer,
		assistant: assistant,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Submit runs one turn against the session log and always returns an assistant message.
// The user message and the answer are both appended to h.
func (o *Orchestrator) Submit(ctx context.Context, h *domsession.History, text, profileHint string) Turn {
	log := logger.FromContextOr(ctx, o.logger)
	trace := []State{StateIdle}
	enter := func(s State) {
		trace = append(trace, s)
		log.Debug("Consultation state", zap.String("state", string(s)))
	}

	// контекст снимается до добавления текущего сообщения
	prior := h.Context(o.historyLimit)
	h.Append(message.New(o.newID(), message.RoleUser, text, nil, o.now()))
	enter(StateDispatching)

	sources := o.searcher.Search(ctx, text)

	var (
		prose  string
		path   = PathLocal
		reason error
	)

	if o.assistant != nil && o.assistant.IsConfigured() {
		enter(StateRemoteAttempt)
		out := o.callRemote(ctx, completion.Request{
			Query:       text,
			History:     prior,
			ProfileHint: profileHint,
		})
		if out.OK() {
			enter(StateRemoteSuccess)
			prose, path = out.Text(), PathRemote
		} else {
			enter(StateRemoteFailure)
			reason = out.Err()
			log.Warn("Remote assistant failed, using local answer",
				zap.Int("history", len(prior)),
				zap.Error(reason),
			)
		}
	} else {
		reason = domain.ErrRemoteUnavailable
	}

	if path == PathLocal {
		enter(StateLocalFallback)
		prose = o.composer.Compose(sources)
	}

	answer := message.New(o.newID(), message.RoleAssistant, prose, sources, o.now())
	h.Append(answer)
	enter(StateCompleted)

	metrics.ConsultationTurnsTotal.WithLabelValues(string(path), reasonLabel(reason)).Inc()
	log.Debug("Consultation turn completed",
		zap.String("path", string(path)),
		zap.Int("sources", len(sources)),
	)

	return Turn{Message: answer, Path: path, Reason: reason, Trace: trace}
}

// callRemote converts every failure mode of the assistant, panics included, into an Outcome.
func (o *Orchestrator) callRemote(ctx context.Context, req completion.Request) (out completion.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = completion.Failed(fmt.Errorf("%w: panic: %v", domain.ErrRemoteCallFailed, r))
		}
	}()

	text, err := o.assistant.Complete(ctx, req)
	if err != nil {
		if !errors.Is(err, domain.ErrRemoteCallFailed) {
			err = fmt.Errorf("%w: %w", domain.ErrRemoteCallFailed, err)
		}
		return completion.Failed(err)
	}
	if strings.TrimSpace(text) == "" {
		return completion.Failed(fmt.Errorf("%w: empty completion", domain.ErrRemoteCallFailed))
	}
	return completion.Succeeded(text)
}

func reasonLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrRemoteUnavailable):
		return "remote_unavailable"
	case errors.Is(err, domain.ErrBudgetExceeded):
		return "budget_exceeded"
	default:
		return "remote_call_failed"
	}
}

// Sources is a convenience for callers that only need the citations of a turn.
func (t *Turn) Sources() []result.Result { return t.Message.Sources() }
