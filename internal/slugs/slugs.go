// Package slugs provides canonical slugification for identifiers derived
// from user-supplied names, so project IDs stay stable across commands.
package slugs

import (
	"strings"

	goslug "github.com/gosimple/slug"
)

// ProjectID converts a project name to its canonical ID.
//
// Built on gosimple/slug (lowercase, ASCII transliteration, dashes for
// separators), with a conservative fallback for names the transliterator
// cannot handle at all.
func ProjectID(name string) string {
	id := goslug.Make(name)
	if id == "" {
		id = strings.ToLower(strings.Join(strings.Fields(name), "-"))
	}
	return id
}

// Valid reports whether s is already in canonical ID form.
func Valid(s string) bool {
	return s != "" && s == ProjectID(s)
}
