package consultation

import (
	"context"

	"github.com/kailas-cloud/vaidya/internal/domain/search/result"
)

// Searcher produces the fused ranked citation list for a raw query.
type Searcher interface {
	Search(ctx context.Context, raw string) []result.Result
}

// Composer renders local prose from a ranked list.
type Composer interface {
	Compose(results []result.Result) string
}
