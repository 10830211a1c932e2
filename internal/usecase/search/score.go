package search

import (
	"strings"

	"github.com/kailas-cloud/vaidya/internal/domain/corpus"
)

// scoreArticle scores an article against q.
func scoreArticle(q *Query, extra []string, a *corpus.Article, w ArticleWeights) int {
	title := strings.ToLower(a.Title)
	excerpt := strings.ToLower(a.Excerpt)
	tags := strings.ToLower(strings.Join(a.Tags, " "))

	score := 0
	if title != "" && strings.Contains(q.Text, title) {
		score += w.TitlePhrase
	}
	for _, word := range q.Words {
		if strings.Contains(title, word) {
			score += w.TitleWord
		}
		if strings.Contains(excerpt, word) {
			score += w.ExcerptWord
		}
		if strings.Contains(tags, word) {
			score += w.TagWord
		}
	}
	for _, term := range extra {
		if strings.Contains(title, term) {
			score += w.TitleExtra
		}
		if strings.Contains(excerpt, term) {
			score += w.ExcerptExtra
		}
	}
	return score
}

// scoreRemedy scores a remedy against q.
func scoreRemedy(q *Query, extra []string, r *corpus.Remedy, w RemedyWeights) int {
	problem := strings.ToLower(r.Problem)
	remedy := strings.ToLower(r.Remedy)
	rationale := strings.ToLower(r.Rationale)

	score := 0
	if problem != "" && strings.Contains(q.Text, problem) {
		score += w.ProblemPhrase
	}
	for _, word := range q.Words {
		if strings.Contains(problem, word) {
			score += w.ProblemWord
		}
		if strings.Contains(remedy, word) {
			score += w.RemedyWord
		}
		if strings.Contains(rationale, word) {
			score += w.RationaleWord
		}
	}
	for _, term := range extra {
		if strings.Contains(problem, term) {
			score += w.ProblemExtra
		}
		if strings.Contains(remedy, term) {
			score += w.RemedyExtra
		}
	}
	return score
}

// scoreTextExcerpt scores a classical text excerpt against q.
func scoreTextExcerpt(q *Query, extra []string, t *corpus.TextExcerpt, w TextExcerptWeights) int {
	body := strings.ToLower(t.Body)
	keywords := make([]string, len(t.Keywords))
	for i, k := range t.Keywords {
		keywords[i] = strings.ToLower(k)
	}
	joined := strings.Join(keywords, " ")

	score := 0
	for _, k := range keywords {
		if strings.Contains(q.Text, k) {
			score += w.KeywordInQuery
		}
		for _, word := range q.Words {
			if strings.Contains(k, word) || strings.Contains(word, k) {
				score += w.KeywordWord
			}
		}
	}
	for _, word := range q.Words {
		if strings.Contains(body, word) {
			score += w.BodyWord
		}
	}
	for _, term := range extra {
		if strings.Contains(joined, term) {
			score += w.KeywordExtra
		}
	}
	return score
}

// scoreDoshaIssue scores one imbalance of guide g against q.
// matched is false when only the symptom list hit; such pairs are never emitted.
func scoreDoshaIssue(q *Query, g *corpus.DoshaGuide, m *corpus.Imbalance, w DoshaIssueWeights) (int, bool) {
	issue := strings.ToLower(m.Issue)
	cause := strings.ToLower(m.Cause)

	score := 0
	matched := false
	for _, word := range q.Words {
		if strings.Contains(issue, word) {
			score += w.IssueWord
			matched = true
		}
		if strings.Contains(cause, word) {
			score += w.CauseWord
			matched = true
		}
		for _, s := range g.ImbalanceSymptoms {
			if strings.Contains(strings.ToLower(s), word) {
				score += w.SymptomWord
			}
		}
	}
	return score, matched
}
