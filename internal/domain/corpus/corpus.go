// Package corpus holds the immutable reference records the consultation engine searches.
package corpus

import (
	"fmt"
	"strings"
)

// Article is a long-form educational piece.
type Article struct {
	ID       string
	Title    string
	Excerpt  string
	Tags     []string
	Category string
}

// Remedy is a home remedy for a named problem.
type Remedy struct {
	ID        string
	Problem   string
	Remedy    string
	Rationale string
	Citation  string
}

// TextExcerpt is a passage from a classical text.
type TextExcerpt struct {
	ID       string
	Title    string
	Body     string
	Keywords []string
	Source   string
}

// Imbalance is a modern presentation of a dosha imbalance.
type Imbalance struct {
	Issue    string
	Cause    string
	Solution string
}

// DoshaGuide is the aggregate describing one dosha.
type DoshaGuide struct {
	Name              string
	ModernImbalances  []Imbalance
	ImbalanceSymptoms []string
}

// DoshaIssue is the projection of one (dosha, modern imbalance) pair.
type DoshaIssue struct {
	ID       string
	Dosha    string
	Issue    string
	Cause    string
	Solution string
}

// Issues projects the guide into one DoshaIssue per modern imbalance.
func (g DoshaGuide) Issues() []DoshaIssue {
	out := make([]DoshaIssue, len(g.ModernImbalances))
	prefix := strings.ToLower(g.Name)
	for i, m := range g.ModernImbalances {
		out[i] = DoshaIssue{
			ID:       fmt.Sprintf("%s-%d", prefix, i),
			Dosha:    g.Name,
			Issue:    m.Issue,
			Cause:    m.Cause,
			Solution: m.Solution,
		}
	}
	return out
}

// Clone returns a deep copy so callers cannot mutate shared slices.
func (a Article) Clone() Article {
	a.Tags = append([]string(nil), a.Tags...)
	return a
}

// Clone returns a deep copy so callers cannot mutate shared slices.
func (t TextExcerpt) Clone() TextExcerpt {
	t.Keywords = append([]string(nil), t.Keywords...)
	return t
}

// Clone returns a deep copy so callers cannot mutate shared slices.
func (g DoshaGuide) Clone() DoshaGuide {
	g.ModernImbalances = append([]Imbalance(nil), g.ModernImbalances...)
	g.ImbalanceSymptoms = append([]string(nil), g.ImbalanceSymptoms...)
	return g
}
