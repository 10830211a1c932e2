// Package corpus loads the bundled reference collections.
package corpus

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/vaidya/internal/domain"
	domcorpus "github.com/kailas-cloud/vaidya/internal/domain/corpus"
)

// File names expected at the root of a corpus directory.
const (
	ArticlesFile = "articles.yaml"
	RemediesFile = "remedies.yaml"
	TextsFile    = "texts.yaml"
	DoshasFile   = "doshas.yaml"
)

//go:embed data/*.yaml
var embedded embed.FS

// Repo is the read-only corpus store. Safe for concurrent reads.
type Repo struct {
	articles []domcorpus.Article
	remedies []domcorpus.Remedy
	texts    []domcorpus.TextExcerpt
	doshas   []domcorpus.DoshaGuide
}

// LoadEmbedded loads the corpus compiled into the binary.
func LoadEmbedded() (*Repo, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("embedded corpus: %w", err)
	}
	return Load(sub)
}

// LoadDir loads a corpus from a directory on disk.
func LoadDir(dir string) (*Repo, error) {
	return Load(os.DirFS(dir))
}

// Load reads and validates the four collections from fsys.
func Load(fsys fs.FS) (*Repo, error) {
	var (
		articles []articleDTO
		remedies []remedyDTO
		texts    []textDTO
		doshas   []doshaDTO
	)
	if err := decode(fsys, ArticlesFile, &articles); err != nil {
		return nil, err
	}
	if err := decode(fsys, RemediesFile, &remedies); err != nil {
		return nil, err
	}
	if err := decode(fsys, TextsFile, &texts); err != nil {
		return nil, err
	}
	if err := decode(fsys, DoshasFile, &doshas); err != nil {
		return nil, err
	}

	r := &Repo{
		articles: make([]domcorpus.Article, len(articles)),
		remedies: make([]domcorpus.Remedy, len(remedies)),
		texts:    make([]domcorpus.TextExcerpt, len(texts)),
		doshas:   make([]domcorpus.DoshaGuide, len(doshas)),
	}
	for i := range articles {
		r.articles[i] = articles[i].toDomain()
	}
	for i := range remedies {
		r.remedies[i] = remedies[i].toDomain()
	}
	for i := range texts {
		r.texts[i] = texts[i].toDomain()
	}
	for i := range doshas {
		r.doshas[i] = doshas[i].toDomain()
	}

	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func decode(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w: %w", name, domain.ErrInvalidCorpus, err)
	}
	return nil
}

// Articles returns a copy of all articles.
func (r *Repo) Articles() []domcorpus.Article {
	out := make([]domcorpus.Article, len(r.articles))
	for i := range r.articles {
		out[i] = r.articles[i].Clone()
	}
	return out
}

// Remedies returns a copy of all remedies.
func (r *Repo) Remedies() []domcorpus.Remedy {
	return append([]domcorpus.Remedy(nil), r.remedies...)
}

// TextExcerpts returns a copy of all classical text excerpts.
func (r *Repo) TextExcerpts() []domcorpus.TextExcerpt {
	out := make([]domcorpus.TextExcerpt, len(r.texts))
	for i := range r.texts {
		out[i] = r.texts[i].Clone()
	}
	return out
}

// DoshaGuides returns a copy of all dosha guides.
func (r *Repo) DoshaGuides() []domcorpus.DoshaGuide {
	out := make([]domcorpus.DoshaGuide, len(r.doshas))
	for i := range r.doshas {
		out[i] = r.doshas[i].Clone()
	}
	return out
}

// Counts reports collection sizes for startup logging.
func (r *Repo) Counts() map[string]int {
	return map[string]int{
		"articles":      len(r.articles),
		"remedies":      len(r.remedies),
		"text_excerpts": len(r.texts),
		"dosha_guides":  len(r.doshas),
	}
}
