package vaidya

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/vaidya/internal/db"
	dbRedis "github.com/kailas-cloud/vaidya/internal/db/redis"
	"github.com/kailas-cloud/vaidya/internal/domain"
	domusage "github.com/kailas-cloud/vaidya/internal/domain/usage"
	budgetrepo "github.com/kailas-cloud/vaidya/internal/repository/budget"
	corpusrepo "github.com/kailas-cloud/vaidya/internal/repository/corpus"
	profilerepo "github.com/kailas-cloud/vaidya/internal/repository/profile"
	openaiAsst "github.com/kailas-cloud/vaidya/internal/transport/openai"
	"github.com/kailas-cloud/vaidya/internal/usecase/budget"
	"github.com/kailas-cloud/vaidya/internal/usecase/consultation"
	searchuc "github.com/kailas-cloud/vaidya/internal/usecase/search"
	sessionuc "github.com/kailas-cloud/vaidya/internal/usecase/session"
	"github.com/kailas-cloud/vaidya/internal/usecase/synthesis"
	usageuc "github.com/kailas-cloud/vaidya/internal/usecase/usage"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultProfileTTL       = 30 * 24 * time.Hour
	defaultOpenAIModel      = "gpt-4o-mini"
	defaultOpenAIMaxTokens  = 512
)

// Engine is the vaidya entry point. It is safe for concurrent use.
type Engine struct {
	store    db.Store
	profiles *profilerepo.Repo
	search   *searchuc.Service
	sessions *sessionuc.Service
	usage    *usageuc.Service
	obs      *observer
}

// New loads the corpus and wires the engine. Without WithOpenAI or
// WithAssistant every answer is composed locally.
func New(opts ...Option) (*Engine, error) {
	cfg := &engineConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	corpus, err := loadCorpus(cfg)
	if err != nil {
		return nil, fmt.Errorf("vaidya: load corpus: %w", err)
	}

	var (
		store    db.Store
		profiles *profilerepo.Repo
		reader   sessionuc.ProfileReader
	)
	if cfg.driver != "" {
		store, err = openStore(cfg)
		if err != nil {
			return nil, err
		}
		profiles = profilerepo.New(store, defaultProfileTTL)
		reader = profiles
	}

	assistant := buildAssistant(cfg, obs)
	// usage stays unmetered (nil reader) without a budget
	var br usageuc.BudgetReader
	if assistant != nil && (cfg.dailyTokens > 0 || cfg.monthlyTokens > 0) {
		tracker := budget.NewTracker(assistantProvider(cfg),
			cfg.dailyTokens, cfg.monthlyTokens, budget.ActionReject, obs.logger)
		if store != nil {
			tracker.WithStore(context.Background(),
				budgetrepo.New(store, budgetrepo.DefaultDailyTTL, budgetrepo.DefaultMonthlyTTL))
		}
		assistant = budget.NewAssistant(assistant, tracker, assistantProvider(cfg), obs.logger)
		br = tracker
	}

	search := searchuc.New(corpus, obs.logger).WithTopK(cfg.topK)
	orch := consultation.New(search, synthesis.New(), assistant, obs.logger,
		consultation.WithHistoryLimit(cfg.historyLimit),
	)

	return &Engine{
		store:    store,
		profiles: profiles,
		search:   search,
		sessions: sessionuc.New(orch, reader, cfg.greeting, obs.logger),
		usage:    usageuc.New(br),
		obs:      obs,
	}, nil
}

func loadCorpus(cfg *engineConfig) (*corpusrepo.Repo, error) {
	if cfg.corpusFS != nil {
		return corpusrepo.Load(cfg.corpusFS)
	}
	return corpusrepo.LoadEmbedded()
}

func openStore(cfg *engineConfig) (db.Store, error) {
	s, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("vaidya: create %s store: %w", cfg.driver, err)
	}

	if err := s.WaitForReady(context.Background(), defaultReadinessTimeout); err != nil {
		s.Close()
		return nil, fmt.Errorf("vaidya: %s not ready: %w", cfg.driver, err)
	}
	return s, nil
}

func assistantProvider(cfg *engineConfig) string {
	if cfg.assistant != nil {
		return "custom"
	}
	return "openai"
}

// buildAssistant returns nil when no remote path is configured.
func buildAssistant(cfg *engineConfig, obs *observer) domain.Assistant {
	if cfg.assistant != nil {
		return &assistantAdapter{inner: cfg.assistant}
	}
	if cfg.openai == nil {
		return nil
	}

	oc := *cfg.openai
	if oc.Model == "" {
		oc.Model = defaultOpenAIModel
	}
	if oc.MaxTokens == 0 {
		oc.MaxTokens = defaultOpenAIMaxTokens
	}
	return openaiAsst.NewAssistant(&openaiAsst.Config{
		APIKey:       oc.APIKey,
		BaseURL:      oc.BaseURL,
		Model:        oc.Model,
		MaxTokens:    oc.MaxTokens,
		Temperature:  oc.Temperature,
		SystemPrompt: oc.SystemPrompt,
		Provider:     "openai",
		Logger:       obs.logger,
	})
}

// Close releases the profile store connection, if any.
func (e *Engine) Close() {
	if e.store != nil {
		e.store.Close()
	}
}

// Search ranks citations for query without producing an answer.
// An unmatched or blank query yields nil.
func (e *Engine) Search(ctx context.Context, query string) []Result {
	start := time.Now()
	results := fromResults(e.search.Search(ctx, query))
	e.obs.observe("search", "ok", start, nil)
	return results
}

// NewSession starts a consultation seeded with the greeting.
// userID is optional and selects the stored dosha profile.
func (e *Engine) NewSession(ctx context.Context, userID string) *Session {
	start := time.Now()
	info := e.sessions.Create(ctx, userID)
	e.obs.observe("new_session", "ok", start, nil)
	return &Session{id: info.ID, userID: info.UserID, engine: e}
}

// SetDosha stores the dominant dosha of a user.
func (e *Engine) SetDosha(ctx context.Context, userID, dosha string) error {
	if e.profiles == nil {
		return ErrProfileStoreDisabled
	}
	start := time.Now()
	err := e.profiles.SetDosha(ctx, userID, dosha)
	e.obs.observe("set_dosha", "ok", start, err)
	if err != nil {
		return fmt.Errorf("set dosha: %w", err)
	}
	return nil
}

// Dosha returns the stored dominant dosha of a user (ErrNotFound when unset).
func (e *Engine) Dosha(ctx context.Context, userID string) (string, error) {
	if e.profiles == nil {
		return "", ErrProfileStoreDisabled
	}
	dosha, err := e.profiles.GetDosha(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("get dosha: %w", err)
	}
	return dosha, nil
}

// Usage reports the assistant tokens spent in the current UTC "day" or
// "month" (empty means day).
func (e *Engine) Usage(ctx context.Context, period string) (Usage, error) {
	p, err := domusage.ParsePeriod(period)
	if err != nil {
		return Usage{}, err
	}
	return fromReport(e.usage.GetReport(ctx, p)), nil
}
