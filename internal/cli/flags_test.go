package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

// Global flags are part of the agent-facing contract: scripts and MCP
// client configs reference them by name.
func TestGlobalFlagsRegistered(t *testing.T) {
	want := map[string]string{
		"workspace":      "w",
		"workspace-path": "",
		"config":         "",
		"state":          "",
		"json":           "",
	}

	got := make(map[string]string)
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		got[f.Name] = f.Shorthand
	})

	for name, shorthand := range want {
		gotShorthand, ok := got[name]
		if !ok {
			t.Errorf("global flag --%s is not registered", name)
			continue
		}
		if gotShorthand != shorthand {
			t.Errorf("flag --%s shorthand = %q, want %q", name, gotShorthand, shorthand)
		}
	}
}

func TestWorkspaceBypassingCommands(t *testing.T) {
	// These commands must work before any workspace exists.
	for _, name := range []string{"init", "workspace", "version", "guide", "mcp"} {
		found := false
		for _, cmd := range rootCmd.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("command %q missing from CLI tree", name)
		}
	}
}
