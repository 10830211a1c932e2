package corpus

import (
	"strings"

	"github.com/kailas-cloud/vaidya/internal/domain"
)

func (r *Repo) validate() error {
	if len(r.articles)+len(r.remedies)+len(r.texts)+len(r.doshas) == 0 {
		return domain.NewCorpusError("corpus", "", "all collections are empty")
	}

	seen := make(map[string]string)
	unique := func(kind, id string) error {
		if strings.TrimSpace(id) == "" {
			return domain.NewCorpusError(kind, id, "missing id")
		}
		if prev, ok := seen[id]; ok {
			return domain.NewCorpusError(kind, id, "id already used by "+prev)
		}
		seen[id] = kind
		return nil
	}

	for i := range r.articles {
		a := &r.articles[i]
		if err := unique("article", a.ID); err != nil {
			return err
		}
		if strings.TrimSpace(a.Title) == "" {
			return domain.NewCorpusError("article", a.ID, "missing title")
		}
	}
	for i := range r.remedies {
		rm := &r.remedies[i]
		if err := unique("remedy", rm.ID); err != nil {
			return err
		}
		if strings.TrimSpace(rm.Problem) == "" || strings.TrimSpace(rm.Remedy) == "" {
			return domain.NewCorpusError("remedy", rm.ID, "missing problem or remedy")
		}
	}
	for i := range r.texts {
		t := &r.texts[i]
		if err := unique("text_excerpt", t.ID); err != nil {
			return err
		}
		if t.Body == "" || t.Source == "" {
			return domain.NewCorpusError("text_excerpt", t.ID, "missing body or source")
		}
		// пустое ключевое слово совпало бы с любым запросом
		for _, k := range t.Keywords {
			if strings.TrimSpace(k) == "" {
				return domain.NewCorpusError("text_excerpt", t.ID, "blank keyword")
			}
		}
	}
	for i := range r.doshas {
		g := &r.doshas[i]
		if g.Name == "" {
			return domain.NewCorpusError("dosha_guide", g.Name, "missing name")
		}
		if len(g.ModernImbalances) == 0 {
			return domain.NewCorpusError("dosha_guide", g.Name, "no modern imbalances")
		}
		for _, issue := range g.Issues() {
			if err := unique("dosha_issue", issue.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
