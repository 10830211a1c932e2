package search

import (
	"sort"

	"github.com/kailas-cloud/vaidya/internal/domain/search/result"
)

// DefaultTopK is the number of citations attached to every answer.
const DefaultTopK = 5

// fuse merges per-kind candidates into one ranked list.
// Groups are concatenated in the given order; the sort is stable so equal
// scores keep that order. The list is truncated to topK.
func fuse(groups [][]result.Result, topK int) []result.Result {
	n := 0
	for _, g := range groups {
		n += len(g)
	}

	merged := make([]result.Result, 0, n)
	for _, g := range groups {
		merged = append(merged, g...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score() > merged[j].Score()
	})

	if len(merged) > topK {
		merged = merged[:topK]
	}

	return merged
}
