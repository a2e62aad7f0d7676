// Package gitctx reads commit history from a local git repository by
// shelling out to the git binary. It backs the LAST_<N>_COMMITS
// context spec.
package gitctx

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/magpiehq/magpie/internal/model"
)

// fieldSep separates the pretty-format fields; unit separator is safe
// against anything that appears in commit subjects.
const fieldSep = "\x1f"

// Log returns up to limit commits from the repository at path, newest
// first.
func Log(path string, limit int) ([]model.Commit, error) {
	if limit <= 0 {
		limit = 20
	}
	cmd := exec.Command("git", "-C", path, "log",
		fmt.Sprintf("--max-count=%d", limit),
		"--pretty=format:%H"+fieldSep+"%an"+fieldSep+"%aI"+fieldSep+"%s")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git log in %s: %w", path, err)
	}
	return parseLog(string(out))
}

// parseLog parses the output of the pretty-format above.
func parseLog(out string) ([]model.Commit, error) {
	var commits []model.Commit
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, fieldSep, 4)
		if len(parts) != 4 {
			return nil, fmt.Errorf("unexpected git log line: %q", line)
		}
		date, err := time.Parse(time.RFC3339, parts[2])
		if err != nil {
			return nil, fmt.Errorf("failed to parse commit date %q: %w", parts[2], err)
		}
		commits = append(commits, model.Commit{
			Hash:    parts[0],
			Author:  parts[1],
			Date:    date,
			Message: parts[3],
		})
	}
	return commits, nil
}
