package search

import "github.com/kailas-cloud/vaidya/internal/domain/corpus"

// CorpusReader exposes the immutable reference collections.
type CorpusReader interface {
	Articles() []corpus.Article
	Remedies() []corpus.Remedy
	TextExcerpts() []corpus.TextExcerpt
	DoshaGuides() []corpus.DoshaGuide
}
