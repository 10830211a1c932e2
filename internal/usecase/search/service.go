package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/vaidya/internal/domain/search/kind"
	"github.com/kailas-cloud/vaidya/internal/domain/search/result"
	"github.com/kailas-cloud/vaidya/internal/metrics"
)

// Service ranks guidance across the four reference corpora.
type Service struct {
	corpus  CorpusReader
	weights Weights
	topK    int
	logger  *zap.Logger
}

// New creates a search service with the contract weights and top-K.
func New(c CorpusReader, logger *zap.Logger) *Service {
	return &Service{corpus: c, weights: DefaultWeights(), topK: DefaultTopK, logger: logger}
}

// WithWeights overrides the scoring weights.
func (s *Service) WithWeights(w Weights) *Service {
	s.weights = w
	return s
}

// WithTopK overrides the result cap. Non-positive values are ignored.
func (s *Service) WithTopK(k int) *Service {
	if k > 0 {
		s.topK = k
	}
	return s
}

// Search returns the fused, capped citation list for raw.
// It has no failure mode: an unmatched or blank query yields an empty list.
func (s *Service) Search(_ context.Context, raw string) []result.Result {
	q := Expand(raw)
	if q.Text == "" {
		return nil
	}
	extra := q.extraTerms()

	// One slot per kind keeps concatenation order fixed regardless of scheduling.
	kinds := kind.All()
	groups := make([][]result.Result, len(kinds))

	var g errgroup.Group
	for i, k := range kinds {
		g.Go(func() error {
			groups[i] = s.scoreKind(&q, extra, k)
			return nil
		})
	}
	_ = g.Wait() // scorers never fail

	results := fuse(groups, s.topK)

	metrics.SearchResults.Observe(float64(len(results)))
	s.logger.Debug("Search completed",
		zap.String("query", q.Text),
		zap.Strings("words", q.Words),
		zap.Int("expanded_terms", len(q.Expanded)),
		zap.Int("candidates", countAll(groups)),
		zap.Int("results", len(results)),
	)

	return results
}

func (s *Service) scoreKind(q *Query, extra []string, k kind.Kind) []result.Result {
	switch k {
	case kind.Article:
		return s.scoreArticles(q, extra)
	case kind.Remedy:
		return s.scoreRemedies(q, extra)
	case kind.TextExcerpt:
		return s.scoreTextExcerpts(q, extra)
	case kind.DoshaIssue:
		return s.scoreDoshaIssues(q)
	default:
		return nil
	}
}

func (s *Service) scoreArticles(q *Query, extra []string) []result.Result {
	w := s.weights.Article
	var out []result.Result
	for _, a := range s.corpus.Articles() {
		score := scoreArticle(q, extra, &a, w)
		if score >= w.Threshold {
			out = append(out, result.New(kind.Article, a.ID, a.Title, a.Excerpt, score, ""))
		}
	}
	return out
}

func (s *Service) scoreRemedies(q *Query, extra []string) []result.Result {
	w := s.weights.Remedy
	var out []result.Result
	for _, r := range s.corpus.Remedies() {
		score := scoreRemedy(q, extra, &r, w)
		if score >= w.Threshold {
			out = append(out, result.New(kind.Remedy, r.ID, r.Problem, r.Remedy, score, r.Citation))
		}
	}
	return out
}

func (s *Service) scoreTextExcerpts(q *Query, extra []string) []result.Result {
	w := s.weights.TextExcerpt
	var out []result.Result
	for _, t := range s.corpus.TextExcerpts() {
		score := scoreTextExcerpt(q, extra, &t, w)
		if score >= w.Threshold {
			out = append(out, result.New(kind.TextExcerpt, t.ID, t.Title, t.Body, score, t.Source))
		}
	}
	return out
}

func (s *Service) scoreDoshaIssues(q *Query) []result.Result {
	w := s.weights.DoshaIssue
	var out []result.Result
	for _, g := range s.corpus.DoshaGuides() {
		issues := g.Issues()
		for i := range g.ModernImbalances {
			score, matched := scoreDoshaIssue(q, &g, &g.ModernImbalances[i], w)
			if !matched || score < w.Threshold {
				continue
			}
			di := issues[i]
			title := fmt.Sprintf("%s Dosha - %s", di.Dosha, di.Issue)
			out = append(out, result.New(kind.DoshaIssue, di.ID, title, di.Solution, score, ""))
		}
	}
	return out
}

func countAll(groups [][]result.Result) int {
	n := 0
	for _, g := range groups {
		n += len(g)
	}
	return n
}
