package mql

import (
	"strings"
	"time"

	"github.com/magpiehq/magpie/internal/model"
)

// Evaluate applies a condition to a single project record. It always
// returns a boolean: comparisons between incomparable types are false,
// never an error. Both sides of a logical node are evaluated
// unconditionally (no short-circuiting).
func Evaluate(cond Condition, p *model.Project) bool {
	switch c := cond.(type) {
	case *Logical:
		left := Evaluate(c.Left, p)
		right := Evaluate(c.Right, p)
		if c.Op == LogicalAnd {
			return left && right
		}
		return left || right
	case *Comparison:
		fv, ok := fieldValue(p, c.Field)
		if !ok {
			return false
		}
		return compare(fv, c.Op, c.Value)
	default:
		return false
	}
}

// fieldValue resolves a condition field against a project. Reserved
// uppercase names map to project attributes; a field containing '.'
// is resolved as a dotted path through nested maps; anything else is
// a direct key lookup (top-level, then metadata).
func fieldValue(p *model.Project, field string) (interface{}, bool) {
	switch field {
	case "NAME":
		return p.Name, true
	case "DESCRIPTION":
		return p.Description, true
	case "STATUS":
		return p.Status, true
	case "CREATED_AT":
		return p.CreatedAt.UTC().Format(time.RFC3339), true
	case "UPDATED_AT":
		return p.UpdatedAt.UTC().Format(time.RFC3339), true
	}

	root := projectFields(p)
	if strings.Contains(field, ".") {
		return lookupPath(root, strings.Split(field, "."))
	}
	return lookupKey(root, field)
}

// projectFields builds the generic map view used for non-reserved
// field lookups.
func projectFields(p *model.Project) map[string]interface{} {
	return map[string]interface{}{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"status":      p.Status,
		"created_at":  p.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at":  p.UpdatedAt.UTC().Format(time.RFC3339),
		"metadata":    p.Metadata,
		"context":     p.Context,
	}
}

// lookupKey finds a direct key, trying the exact spelling first and
// the lowercase spelling second, at the top level and then inside
// metadata. Queries conventionally uppercase field names (PRIORITY),
// while stored keys are lowercase.
func lookupKey(root map[string]interface{}, key string) (interface{}, bool) {
	candidates := []string{key, strings.ToLower(key)}
	for _, k := range candidates {
		if v, ok := root[k]; ok {
			return v, true
		}
	}
	meta, ok := root["metadata"].(map[string]interface{})
	if !ok || meta == nil {
		return nil, false
	}
	for _, k := range candidates {
		if v, ok := meta[k]; ok {
			return v, true
		}
	}
	return nil, false
}

// lookupPath walks a dotted path through nested maps. A missing
// segment means the field value is absent.
func lookupPath(root map[string]interface{}, segs []string) (interface{}, bool) {
	cur, ok := lookupKey(root, segs[0])
	if !ok {
		return nil, false
	}
	for _, seg := range segs[1:] {
		m, isMap := cur.(map[string]interface{})
		if !isMap {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// compare applies a comparison operator to a resolved field value and
// a query literal.
func compare(fv interface{}, op CompareOp, v Value) bool {
	switch op {
	case OpEq:
		return equalValue(fv, v)
	case OpContains:
		if s, ok := fv.(string); ok && v.Kind == KindString {
			return strings.Contains(s, v.Str)
		}
		if list, ok := fv.([]interface{}); ok {
			for _, el := range list {
				if equalValue(el, v) {
					return true
				}
			}
		}
		return false
	case OpIn:
		if v.Kind != KindList {
			return false
		}
		for _, el := range v.List {
			if equalValue(fv, el) {
				return true
			}
		}
		return false
	default:
		cmp, ok := orderValue(fv, v)
		if !ok {
			return false
		}
		switch op {
		case OpGt:
			return cmp > 0
		case OpLt:
			return cmp < 0
		case OpGte:
			return cmp >= 0
		case OpLte:
			return cmp <= 0
		}
		return false
	}
}

// equalValue tests structural equality between a field value and a
// query literal. Numerics compare across int/float representations,
// since JSON round-trips store numbers as float64.
func equalValue(fv interface{}, v Value) bool {
	switch v.Kind {
	case KindString:
		s, ok := fv.(string)
		return ok && s == v.Str
	case KindInt, KindFloat:
		f, ok := toFloat(fv)
		if !ok {
			return false
		}
		want, _ := v.asFloat()
		return f == want
	case KindBool:
		b, ok := fv.(bool)
		return ok && b == v.Bool
	case KindList:
		list, ok := fv.([]interface{})
		if !ok || len(list) != len(v.List) {
			return false
		}
		for i, el := range list {
			if !equalValue(el, v.List[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// orderValue compares a field value against a literal for ordering
// operators. Numbers order numerically, strings lexicographically;
// everything else is incomparable.
func orderValue(fv interface{}, v Value) (int, bool) {
	if f, ok := toFloat(fv); ok {
		want, wok := v.asFloat()
		if !wok {
			return 0, false
		}
		switch {
		case f < want:
			return -1, true
		case f > want:
			return 1, true
		default:
			return 0, true
		}
	}
	if s, ok := fv.(string); ok && v.Kind == KindString {
		return strings.Compare(s, v.Str), true
	}
	return 0, false
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
