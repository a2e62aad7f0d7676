package mql

import (
	"sort"
	"strings"
)

// Ranking directives understood by PRIORITIZE.
const (
	RankRecency   = "RECENCY"
	RankRelevance = "RELEVANCE"
)

// Result is a single entry in a query result list.
type Result map[string]interface{}

// Rank reorders results according to the PRIORITIZE directives, applied
// in order. RECENCY sorts descending by updated_at, and only when every
// entry exposes one. RELEVANCE is reserved for embedding-based ranking
// and currently passes results through unchanged. Unknown directives
// are ignored.
func Rank(results []Result, directives []string) []Result {
	for _, d := range directives {
		switch strings.ToUpper(d) {
		case RankRecency:
			results = rankRecency(results)
		case RankRelevance:
			// Reserved; pass-through.
		}
	}
	return results
}

func rankRecency(results []Result) []Result {
	// updated_at is an RFC3339 UTC string everywhere magpie emits it,
	// so lexicographic order is chronological order.
	for _, r := range results {
		if _, ok := r["updated_at"].(string); !ok {
			return results
		}
	}
	sorted := append([]Result(nil), results...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, _ := sorted[i]["updated_at"].(string)
		b, _ := sorted[j]["updated_at"].(string)
		return a > b
	})
	return sorted
}
