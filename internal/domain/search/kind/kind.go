package kind

// Kind identifies which corpus a search result came from.
type Kind string

// Corpus kinds, in fusion order.
const (
	Article     Kind = "article"
	Remedy      Kind = "remedy"
	TextExcerpt Kind = "text_excerpt"
	// DoshaIssue is a (dosha, modern imbalance) projection of a dosha guide.
	DoshaIssue Kind = "dosha_issue"
)

// All lists every kind in the order candidates are concatenated before ranking.
func All() []Kind {
	return []Kind{Article, Remedy, TextExcerpt, DoshaIssue}
}

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	return k == Article || k == Remedy || k == TextExcerpt || k == DoshaIssue
}
