package search

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Weights are the per-field match scores and per-kind inclusion thresholds.
// DefaultWeights are the reference values; overrides change rankings.
type Weights struct {
	Article     ArticleWeights     `yaml:"article"`
	Remedy      RemedyWeights      `yaml:"remedy"`
	TextExcerpt TextExcerptWeights `yaml:"text_excerpt"`
	DoshaIssue  DoshaIssueWeights  `yaml:"dosha_issue"`
}

// ArticleWeights score an article.
type ArticleWeights struct {
	TitlePhrase  int `yaml:"title_phrase"`
	TitleWord    int `yaml:"title_word"`
	ExcerptWord  int `yaml:"excerpt_word"`
	TagWord      int `yaml:"tag_word"`
	TitleExtra   int `yaml:"title_extra"`
	ExcerptExtra int `yaml:"excerpt_extra"`
	Threshold    int `yaml:"threshold"`
}

// RemedyWeights score a remedy.
type RemedyWeights struct {
	ProblemPhrase int `yaml:"problem_phrase"`
	ProblemWord   int `yaml:"problem_word"`
	RemedyWord    int `yaml:"remedy_word"`
	RationaleWord int `yaml:"rationale_word"`
	ProblemExtra  int `yaml:"problem_extra"`
	RemedyExtra   int `yaml:"remedy_extra"`
	Threshold     int `yaml:"threshold"`
}

// TextExcerptWeights score a classical text excerpt.
type TextExcerptWeights struct {
	KeywordInQuery int `yaml:"keyword_in_query"`
	KeywordWord    int `yaml:"keyword_word"`
	BodyWord       int `yaml:"body_word"`
	KeywordExtra   int `yaml:"keyword_extra"`
	Threshold      int `yaml:"threshold"`
}

// DoshaIssueWeights score a (dosha, modern imbalance) pair.
type DoshaIssueWeights struct {
	IssueWord   int `yaml:"issue_word"`
	CauseWord   int `yaml:"cause_word"`
	SymptomWord int `yaml:"symptom_word"`
	Threshold   int `yaml:"threshold"`
}

// DefaultWeights returns the contract weights.
func DefaultWeights() Weights {
	return Weights{
		Article: ArticleWeights{
			TitlePhrase: 100, TitleWord: 30, ExcerptWord: 15, TagWord: 20,
			TitleExtra: 10, ExcerptExtra: 5, Threshold: 15,
		},
		Remedy: RemedyWeights{
			ProblemPhrase: 120, ProblemWord: 40, RemedyWord: 20, RationaleWord: 10,
			ProblemExtra: 15, RemedyExtra: 8, Threshold: 20,
		},
		TextExcerpt: TextExcerptWeights{
			KeywordInQuery: 50, KeywordWord: 25, BodyWord: 15,
			KeywordExtra: 10, Threshold: 25,
		},
		DoshaIssue: DoshaIssueWeights{
			IssueWord: 35, CauseWord: 20, SymptomWord: 15, Threshold: 30,
		},
	}
}

// DecodeWeights overlays a YAML weights section onto the defaults.
// Keys absent from node keep their default value.
func DecodeWeights(node *yaml.Node) (Weights, error) {
	w := DefaultWeights()
	if node == nil || node.Kind == 0 {
		return w, nil
	}
	if err := node.Decode(&w); err != nil {
		return Weights{}, fmt.Errorf("decode weights: %w", err)
	}
	if w.Article.Threshold < 0 || w.Remedy.Threshold < 0 ||
		w.TextExcerpt.Threshold < 0 || w.DoshaIssue.Threshold < 0 {
		return Weights{}, fmt.Errorf("weights: thresholds must not be negative")
	}
	return w, nil
}
