// Package synthesis renders the local answer when the remote assistant is unavailable.
package synthesis

import (
	"strings"

	"github.com/kailas-cloud/vaidya/internal/domain/search/kind"
	"github.com/kailas-cloud/vaidya/internal/domain/search/result"
)

// secondaryMinScore is the exclusive lower bound for the secondary callout.
const secondaryMinScore = 20

const (
	noMatchText = "I'm sorry, I couldn't find specific guidance for that in my knowledge base. " +
		"For personalized advice, please consult a qualified Ayurvedic practitioner."
	noMatchNextSteps = "In the meantime, you could:\n" +
		"- Take the dosha assessment to learn about your constitution\n" +
		"- Browse the remedies library for common concerns\n" +
		"- Ask about common symptoms such as sleep, digestion, stress or skin"
	doshaNudge   = "Take the dosha assessment to see how this applies to your constitution."
	learnPointer = "Read the full article in the Learn section."
	disclaimer   = "This guidance is educational. Please consult a qualified practitioner " +
		"if your symptoms persist or worsen."
)

// Composer assembles template answers from a ranked citation list.
type Composer struct{}

// New creates a composer.
func New() *Composer { return &Composer{} }

// Compose renders prose for the ranked list. Output depends only on the input.
func (c *Composer) Compose(results []result.Result) string {
	if len(results) == 0 {
		return noMatchText + "\n\n" + noMatchNextSteps
	}

	top := &results[0]
	var b strings.Builder
	writePrimary(&b, top)

	if sec := secondary(results); sec != nil {
		b.WriteString("\n\n")
		b.WriteString(callout(sec))
	}

	b.WriteString("\n\n")
	b.WriteString(disclaimer)
	return b.String()
}

func writePrimary(b *strings.Builder, r *result.Result) {
	switch r.Kind() {
	case kind.Remedy:
		b.WriteString("For " + r.Title() + ":\n")
		b.WriteString(r.Excerpt())
		if r.Citation() != "" {
			b.WriteString("\nSource: " + r.Citation())
		}
	case kind.TextExcerpt:
		b.WriteString("Ancient wisdom on this topic:\n")
		b.WriteString(r.Excerpt())
		b.WriteString("\nSource: " + r.Citation())
	case kind.DoshaIssue:
		b.WriteString(r.Title() + ":\n")
		b.WriteString(r.Excerpt())
		b.WriteString("\n" + doshaNudge)
	default:
		b.WriteString("Understanding " + r.Title() + ":\n")
		b.WriteString(r.Excerpt())
		b.WriteString("\n" + learnPointer)
	}
}

// secondary picks the first later result of a different kind than the top one.
func secondary(results []result.Result) *result.Result {
	topKind := results[0].Kind()
	for i := 1; i < len(results); i++ {
		r := &results[i]
		if r.Kind() != topKind && r.Score() > secondaryMinScore {
			return r
		}
	}
	return nil
}

func callout(r *result.Result) string {
	switch r.Kind() {
	case kind.Remedy:
		return "Also helpful - " + r.Title() + ": " + r.Excerpt()
	case kind.TextExcerpt:
		return "Classical reference: " + r.Title() + " (" + r.Citation() + ")"
	case kind.DoshaIssue:
		return "Constitutional view: " + r.Title()
	default:
		return "Related reading: " + r.Title()
	}
}
