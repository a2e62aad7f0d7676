package mql

import (
	"sort"
	"strconv"
	"strings"
)

// maxSearchDepth bounds recursion over nested context payloads. Well
// formed payloads never get near this.
const maxSearchDepth = 64

// Match is a single substring hit inside a context payload. Path is a
// dotted, bracket-indexed accessor like "notes.decisions[2].text".
type Match struct {
	Path  string `json:"path"`
	Value string `json:"value"`
}

// SearchValues walks a JSON-like payload (nested maps, lists and
// leaves) depth-first and returns every string leaf containing target
// as a substring. Map keys are visited in sorted order so results are
// deterministic.
func SearchValues(target string, payload interface{}) []Match {
	var hits []Match
	searchValue(target, payload, "", 0, &hits)
	return hits
}

func searchValue(target string, node interface{}, path string, depth int, hits *[]Match) {
	if depth > maxSearchDepth {
		return
	}
	switch n := node.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			child := k
			if path != "" {
				child = path + "." + k
			}
			searchValue(target, n[k], child, depth+1, hits)
		}
	case []interface{}:
		for i, el := range n {
			searchValue(target, el, path+"["+strconv.Itoa(i)+"]", depth+1, hits)
		}
	case string:
		if strings.Contains(n, target) {
			*hits = append(*hits, Match{Path: path, Value: n})
		}
	}
}
