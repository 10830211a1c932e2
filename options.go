package vaidya

import (
	"io/fs"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the Engine.
type Option interface {
	apply(*engineConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*engineConfig)

func (f optionFunc) apply(c *engineConfig) { f(c) }

type engineConfig struct {
	assistant Assistant
	openai    *OpenAIConfig

	corpusFS     fs.FS
	topK         int
	greeting     string
	historyLimit int

	dailyTokens   int64
	monthlyTokens int64

	driver   string // "valkey" or "redis", empty = no profile store
	addrs    []string
	password string

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// OpenAIConfig configures the built-in OpenAI-compatible assistant.
type OpenAIConfig struct {
	APIKey       string
	BaseURL      string // empty = api.openai.com
	Model        string // default gpt-4o-mini
	MaxTokens    int    // default 512
	Temperature  float32
	SystemPrompt string // empty = built-in wellness guide prompt
}

// WithOpenAI enables the remote path through an OpenAI-compatible chat API.
// An empty APIKey keeps the engine on the local path.
func WithOpenAI(cfg OpenAIConfig) Option {
	return optionFunc(func(c *engineConfig) {
		c.openai = &cfg
	})
}

// WithAssistant plugs a custom remote assistant. Takes precedence over WithOpenAI.
func WithAssistant(a Assistant) Option {
	return optionFunc(func(c *engineConfig) {
		c.assistant = a
	})
}

// WithCorpusFS replaces the bundled reference data. fsys must hold
// articles.yaml, remedies.yaml, texts.yaml and doshas.yaml at its root.
func WithCorpusFS(fsys fs.FS) Option {
	return optionFunc(func(c *engineConfig) {
		c.corpusFS = fsys
	})
}

// WithTopK sets how many citations a search returns. Default: 5.
func WithTopK(k int) Option {
	return optionFunc(func(c *engineConfig) {
		c.topK = k
	})
}

// WithGreeting replaces the message every new session starts with.
func WithGreeting(text string) Option {
	return optionFunc(func(c *engineConfig) {
		c.greeting = text
	})
}

// WithHistoryLimit caps how many prior messages reach the assistant.
// Default 0 sends the whole session.
func WithHistoryLimit(n int) Option {
	return optionFunc(func(c *engineConfig) {
		c.historyLimit = n
	})
}

// WithTokenBudget caps the tokens the remote assistant may spend per UTC
// day and month (0 = unlimited). Once spent, answers are composed locally.
// With WithValkey or WithRedis the counters survive restarts.
func WithTokenBudget(daily, monthly int64) Option {
	return optionFunc(func(c *engineConfig) {
		c.dailyTokens = daily
		c.monthlyTokens = monthly
	})
}

// WithValkey stores user dosha profiles in a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *engineConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis stores user dosha profiles in a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *engineConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithLogger enables structured logging. Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *engineConfig) {
		c.logger = l
	})
}

// WithPrometheus registers engine metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *engineConfig) {
		c.metricsReg = reg
	})
}
