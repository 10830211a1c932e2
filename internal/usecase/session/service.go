// Package session keeps the in-memory registry of consultation sessions.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/vaidya/internal/domain"
	"github.com/kailas-cloud/vaidya/internal/domain/message"
	domsession "github.com/kailas-cloud/vaidya/internal/domain/session"
	"github.com/kailas-cloud/vaidya/internal/logger"
	"github.com/kailas-cloud/vaidya/internal/usecase/consultation"
)

// DefaultGreeting seeds every new session.
const DefaultGreeting = "Namaste! I'm your Ayurvedic wellness guide. " +
	"Tell me what's troubling you, and I'll share guidance from classical texts and remedies."

// Info describes a created session.
type Info struct {
	ID       string
	UserID   string
	Greeting message.Message
}

type entry struct {
	userID  string
	history *domsession.History
	busy    atomic.Bool
}

// Service owns sessions and serializes turns within each of them.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*entry

	consulter Consulter
	profiles  ProfileReader
	greeting  string
	logger    *zap.Logger
	now       func() time.Time
}

// New creates a session registry. profiles can be nil.
func New(consulter Consulter, profiles ProfileReader, greeting string, logger *zap.Logger) *Service {
	if greeting == "" {
		greeting = DefaultGreeting
	}
	return &Service{
		sessions:  make(map[string]*entry),
		consulter: consulter,
		profiles:  profiles,
		greeting:  greeting,
		logger:    logger,
		now:       time.Now,
	}
}

// Create starts a session seeded with the greeting.
func (s *Service) Create(_ context.Context, userID string) Info {
	id := uuid.NewString()
	greet := message.New(domsession.GreetingID, message.RoleAssistant, s.greeting, nil, s.now())

	s.mu.Lock()
	s.sessions[id] = &entry{userID: userID, history: domsession.NewHistory(greet)}
	s.mu.Unlock()

	logger.WithSession(s.logger, id).Debug("Session created", zap.String("user_id", userID))
	return Info{ID: id, UserID: userID, Greeting: greet}
}

// Messages returns a copy of the session log.
func (s *Service) Messages(id string) ([]message.Message, error) {
	e, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return e.history.Messages(), nil
}

// Submit runs one turn. A second submission while a turn is in flight fails with ErrSessionBusy.
// profileHint overrides the cached profile of the session's user.
// Blank text is a regular turn: nothing matches and the reply is the apology.
func (s *Service) Submit(ctx context.Context, id, text, profileHint string) (consultation.Turn, error) {
	e, err := s.get(id)
	if err != nil {
		return consultation.Turn{}, err
	}
	if !e.busy.CompareAndSwap(false, true) {
		return consultation.Turn{}, fmt.Errorf("session %s: %w", id, domain.ErrSessionBusy)
	}
	defer e.busy.Store(false)

	ctx, log := logger.SessionContext(ctx, s.logger, id)
	if profileHint == "" {
		profileHint = s.lookupProfile(ctx, e.userID)
	}

	turn := s.consulter.Submit(ctx, e.history, text, profileHint)
	log.Info("Consultation turn",
		zap.String("path", string(turn.Path)),
		zap.Int("sources", len(turn.Message.Sources())),
	)
	return turn, nil
}

// Delete drops a session.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *Service) get(id string) (*entry, error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return e, nil
}

// lookupProfile is best effort: a missing or failing store yields no hint.
func (s *Service) lookupProfile(ctx context.Context, userID string) string {
	if s.profiles == nil || userID == "" {
		return ""
	}
	dosha, err := s.profiles.GetDosha(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.FromContextOr(ctx, s.logger).Warn("Profile lookup failed", zap.String("user_id", userID), zap.Error(err))
		}
		return ""
	}
	return dosha
}
