package mql

import (
	"reflect"
	"testing"
)

func TestSearchValues(t *testing.T) {
	payload := map[string]interface{}{
		"a": map[string]interface{}{
			"b": []interface{}{float64(1), "findme", float64(3)},
		},
	}

	hits := SearchValues("findme", payload)
	want := []Match{{Path: "a.b[1]", Value: "findme"}}
	if !reflect.DeepEqual(hits, want) {
		t.Errorf("SearchValues = %#v, want %#v", hits, want)
	}
}

func TestSearchValuesSubstringAndOrder(t *testing.T) {
	payload := map[string]interface{}{
		"notes":    "working on auth flow",
		"blockers": []interface{}{"auth token refresh", "flaky CI"},
		"nested": map[string]interface{}{
			"auth": "oauth2 migration", // value matches, key does not count
		},
		"count": float64(7),
	}

	hits := SearchValues("auth", payload)
	want := []Match{
		{Path: "blockers[0]", Value: "auth token refresh"},
		{Path: "nested.auth", Value: "oauth2 migration"},
		{Path: "notes", Value: "working on auth flow"},
	}
	if !reflect.DeepEqual(hits, want) {
		t.Errorf("SearchValues = %#v, want %#v", hits, want)
	}
}

func TestSearchValuesNoHits(t *testing.T) {
	if hits := SearchValues("nothing", map[string]interface{}{"a": "b"}); hits != nil {
		t.Errorf("expected no hits, got %#v", hits)
	}
}

func TestSearchValuesDepthCap(t *testing.T) {
	// Build a payload deeper than the recursion cap; the walk must
	// terminate without finding the buried leaf.
	leaf := interface{}("buried target")
	for i := 0; i < maxSearchDepth+10; i++ {
		leaf = map[string]interface{}{"d": leaf}
	}
	if hits := SearchValues("target", leaf); hits != nil {
		t.Errorf("expected traversal to stop at depth cap, got %#v", hits)
	}
}
