package result

import "github.com/kailas-cloud/vaidya/internal/domain/search/kind"

// Result is a single ranked citation.
type Result struct {
	kind     kind.Kind
	id       string
	title    string
	excerpt  string
	score    int
	citation string
}

// New creates a search result.
func New(k kind.Kind, id, title, excerpt string, score int, citation string) Result {
	return Result{
		kind: k, id: id, title: title,
		excerpt: excerpt, score: score, citation: citation,
	}
}

// Kind returns the corpus the result came from.
func (r *Result) Kind() kind.Kind { return r.kind }

// ID returns the record identifier.
func (r *Result) ID() string { return r.id }

// Title returns the display title.
func (r *Result) Title() string { return r.title }

// Excerpt returns the display body.
func (r *Result) Excerpt() string { return r.excerpt }

// Score returns the relevance score for the query that produced the result.
func (r *Result) Score() int { return r.score }

// Citation returns the source reference, empty when the record has none.
func (r *Result) Citation() string { return r.citation }
