// Package buildinfo carries release metadata stamped into the mgp binary.
package buildinfo

// These values are injected via ldflags for release builds and default
// to empty for local/dev builds.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
