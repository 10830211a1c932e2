package search

import (
	"sort"
	"strings"
)

// minWordLen is the shortest token kept; shorter tokens are stop-word noise.
const minWordLen = 3

// synonyms maps symptom vocabulary to related terms. Expansion is one level deep.
var synonyms = map[string][]string{
	"anxious":      {"anxiety", "worried", "nervous"},
	"anxiety":      {"anxious", "stress", "worry"},
	"stress":       {"stressed", "tension", "pressure", "anxiety"},
	"worried":      {"anxiety", "worry", "nervous"},
	"sleep":        {"insomnia", "sleeplessness", "rest"},
	"insomnia":     {"sleep", "sleeplessness", "wakeful"},
	"tired":        {"fatigue", "exhaustion", "lethargy"},
	"fatigue":      {"tired", "exhaustion", "lethargy", "energy"},
	"headache":     {"migraine", "head", "tension"},
	"migraine":     {"headache", "head"},
	"digestion":    {"digestive", "indigestion", "stomach", "agni"},
	"stomach":      {"digestion", "gut", "abdomen"},
	"bloating":     {"gas", "bloated", "digestion"},
	"constipation": {"bowel", "elimination", "digestion"},
	"acidity":      {"acid", "heartburn", "reflux"},
	"heartburn":    {"acidity", "reflux", "burning"},
	"cold":         {"congestion", "cough", "mucus"},
	"cough":        {"cold", "congestion", "throat"},
	"skin":         {"rash", "acne", "eczema"},
	"acne":         {"skin", "pimples", "breakouts"},
	"joint":        {"joints", "arthritis", "stiffness"},
	"pain":         {"ache", "sore", "discomfort"},
	"weight":       {"obesity", "heaviness", "metabolism"},
	"angry":        {"anger", "irritability", "frustration"},
	"irritable":    {"irritability", "anger", "heat"},
	"sad":          {"depression", "low", "melancholy"},
	"restless":     {"restlessness", "agitation", "anxiety"},
	"focus":        {"concentration", "memory", "clarity"},
	"cramps":       {"menstrual", "period", "pain"},
}

// Query is a tokenized and expanded user complaint.
type Query struct {
	// Text is the full lower-cased query.
	Text string
	// Words are the whitespace tokens longer than two characters, in query order.
	Words []string
	// Expanded is the sorted set of Words plus their synonyms.
	Expanded []string
}

// Expand tokenizes raw and adds one level of synonyms. Pure: same input, same output.
func Expand(raw string) Query {
	text := strings.ToLower(strings.TrimSpace(raw))

	var words []string
	for _, tok := range strings.Fields(text) {
		if len(tok) >= minWordLen {
			words = append(words, tok)
		}
	}

	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
		for _, syn := range synonyms[w] {
			set[syn] = struct{}{}
		}
	}

	expanded := make([]string, 0, len(set))
	for term := range set {
		expanded = append(expanded, term)
	}
	sort.Strings(expanded)

	return Query{Text: text, Words: words, Expanded: expanded}
}

// extraTerms returns the expanded terms that are not query words.
func (q *Query) extraTerms() []string {
	words := make(map[string]struct{}, len(q.Words))
	for _, w := range q.Words {
		words[w] = struct{}{}
	}
	out := make([]string, 0, len(q.Expanded))
	for _, term := range q.Expanded {
		if _, ok := words[term]; !ok {
			out = append(out, term)
		}
	}
	return out
}
