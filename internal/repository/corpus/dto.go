package corpus

import domcorpus "github.com/kailas-cloud/vaidya/internal/domain/corpus"

type articleDTO struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Excerpt  string   `yaml:"excerpt"`
	Tags     []string `yaml:"tags"`
	Category string   `yaml:"category"`
}

type remedyDTO struct {
	ID        string `yaml:"id"`
	Problem   string `yaml:"problem"`
	Remedy    string `yaml:"remedy"`
	Rationale string `yaml:"rationale"`
	Citation  string `yaml:"citation"`
}

type textDTO struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Body     string   `yaml:"body"`
	Keywords []string `yaml:"keywords"`
	Source   string   `yaml:"source"`
}

type imbalanceDTO struct {
	Issue    string `yaml:"issue"`
	Cause    string `yaml:"cause"`
	Solution string `yaml:"solution"`
}

type doshaDTO struct {
	Name              string         `yaml:"name"`
	ModernImbalances  []imbalanceDTO `yaml:"modern_imbalances"`
	ImbalanceSymptoms []string       `yaml:"imbalance_symptoms"`
}

func (d *articleDTO) toDomain() domcorpus.Article {
	return domcorpus.Article{ID: d.ID, Title: d.Title, Excerpt: d.Excerpt, Tags: d.Tags, Category: d.Category}
}

func (d *remedyDTO) toDomain() domcorpus.Remedy {
	return domcorpus.Remedy{ID: d.ID, Problem: d.Problem, Remedy: d.Remedy, Rationale: d.Rationale, Citation: d.Citation}
}

func (d *textDTO) toDomain() domcorpus.TextExcerpt {
	return domcorpus.TextExcerpt{ID: d.ID, Title: d.Title, Body: d.Body, Keywords: d.Keywords, Source: d.Source}
}

func (d *doshaDTO) toDomain() domcorpus.DoshaGuide {
	imbalances := make([]domcorpus.Imbalance, len(d.ModernImbalances))
	for i, m := range d.ModernImbalances {
		imbalances[i] = domcorpus.Imbalance{Issue: m.Issue, Cause: m.Cause, Solution: m.Solution}
	}
	return domcorpus.DoshaGuide{Name: d.Name, ModernImbalances: imbalances, ImbalanceSymptoms: d.ImbalanceSymptoms}
}
