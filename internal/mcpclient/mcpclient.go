// Package mcpclient manages MCP server entries in client config files
// (Claude Code, Claude Desktop, Cursor).
package mcpclient

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/magpiehq/magpie/internal/atomicfile"
)

// serverKey is the name of the magpie entry in client mcpServers maps.
const serverKey = "magpie"

// Client identifies an MCP client application.
type Client string

const (
	ClaudeCode    Client = "claude-code"
	ClaudeDesktop Client = "claude-desktop"
	Cursor        Client = "cursor"
)

// clientDef describes where a client keeps its MCP config. Adding a
// client means adding a row here.
type clientDef struct {
	name       Client
	configPath func(homeDir string) string
}

var clientDefs = []clientDef{
	{ClaudeCode, func(home string) string {
		return filepath.Join(home, ".claude.json")
	}},
	{ClaudeDesktop, func(home string) string {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, "Library", "Application Support", "Claude", "claude_desktop_config.json")
		}
		// Windows / Linux best effort.
		return filepath.Join(home, ".config", "Claude", "claude_desktop_config.json")
	}},
	{Cursor, func(home string) string {
		return filepath.Join(home, ".cursor", "mcp.json")
	}},
}

func lookupClient(c Client) (clientDef, bool) {
	for _, def := range clientDefs {
		if def.name == c {
			return def, true
		}
	}
	return clientDef{}, false
}

// AllClients returns all supported MCP clients.
func AllClients() []Client {
	names := make([]Client, len(clientDefs))
	for i, def := range clientDefs {
		names[i] = def.name
	}
	return names
}

// ValidClient returns true if c is a recognized client name.
func ValidClient(c string) bool {
	_, ok := lookupClient(Client(c))
	return ok
}

// ServerEntry describes an MCP server configuration.
type ServerEntry struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

// ClientStatus reports whether magpie is configured for a given client.
type ClientStatus struct {
	Client     Client       `json:"client"`
	ConfigPath string       `json:"config_path"`
	Exists     bool         `json:"exists"`
	Installed  bool         `json:"installed"`
	Entry      *ServerEntry `json:"entry,omitempty"`
}

// ConfigPath returns the config file path for the given client.
// homeDir can be overridden for testing; pass "" to use os.UserHomeDir.
func ConfigPath(client Client, homeDir string) (string, error) {
	if homeDir == "" {
		var err error
		homeDir, err = os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
	}

	def, ok := lookupClient(client)
	if !ok {
		return "", fmt.Errorf("unknown client: %s", client)
	}
	return def.configPath(homeDir), nil
}

// ResolveCommand returns the absolute path to the running mgp binary.
// Falls back to "mgp" if the path cannot be determined.
func ResolveCommand() string {
	exe, err := os.Executable()
	if err != nil {
		return "mgp"
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return exe
	}
	return resolved
}

// BuildServerEntry creates a ServerEntry for the magpie MCP server.
// workspaceName and workspacePath are optional workspace pinning args;
// path wins when both are set.
func BuildServerEntry(workspaceName, workspacePath string) ServerEntry {
	args := []string{"serve"}
	if workspacePath != "" {
		args = append(args, "--workspace-path", workspacePath)
	} else if workspaceName != "" {
		args = append(args, "--workspace", workspaceName)
	}
	return ServerEntry{
		Command: ResolveCommand(),
		Args:    args,
	}
}

// InstallResult describes what happened during an install.
type InstallResult int

const (
	Installed InstallResult = iota
	Updated
	AlreadyInstalled
)

func (r InstallResult) String() string {
	switch r {
	case Installed:
		return "installed"
	case Updated:
		return "updated"
	case AlreadyInstalled:
		return "already_installed"
	default:
		return "unknown"
	}
}

// Install adds or updates the magpie MCP server entry in the client config.
func Install(configPath string, entry ServerEntry) (InstallResult, error) {
	data, err := readOrCreateConfig(configPath)
	if err != nil {
		return 0, err
	}

	mcpServers := ensureMCPServers(data)

	existing, present := mcpServers[serverKey]
	if present && entriesEqual(existing, entry) {
		return AlreadyInstalled, nil
	}

	result := Installed
	if present {
		result = Updated
	}

	mcpServers[serverKey] = map[string]interface{}{
		"command": entry.Command,
		"args":    entry.Args,
	}

	return result, writeConfig(configPath, data)
}

// Remove deletes the magpie MCP server entry from the client config.
// Returns true if magpie was present and removed.
func Remove(configPath string) (bool, error) {
	raw, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read config: %w", err)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return false, fmt.Errorf("parse config: %w", err)
	}

	mcpServers, ok := serversIn(data)
	if !ok {
		return false, nil
	}
	if _, present := mcpServers[serverKey]; !present {
		return false, nil
	}

	delete(mcpServers, serverKey)

	// Remove mcpServers key if empty
	if len(mcpServers) == 0 {
		delete(data, "mcpServers")
	}

	return true, writeConfig(configPath, data)
}

// Status checks whether magpie is configured in the given client config.
func Status(client Client, configPath string) (*ClientStatus, error) {
	cs := &ClientStatus{
		Client:     client,
		ConfigPath: configPath,
	}

	raw, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cs, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	cs.Exists = true

	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	mcpServers, ok := serversIn(data)
	if !ok {
		return cs, nil
	}
	entry, ok := decodeEntry(mcpServers[serverKey])
	if !ok {
		return cs, nil
	}

	cs.Installed = true
	cs.Entry = entry
	return cs, nil
}

// decodeEntry converts a raw mcpServers value into a ServerEntry.
// Non-string args are skipped rather than failing the whole entry.
func decodeEntry(raw interface{}) (*ServerEntry, bool) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil, false
	}

	entry := &ServerEntry{}
	if cmd, ok := m["command"].(string); ok {
		entry.Command = cmd
	}
	if argsRaw, ok := m["args"].([]interface{}); ok {
		for _, a := range argsRaw {
			if s, ok := a.(string); ok {
				entry.Args = append(entry.Args, s)
			}
		}
	}
	return entry, true
}

// readOrCreateConfig reads an existing JSON config or returns an empty map.
func readOrCreateConfig(path string) (map[string]interface{}, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]interface{}{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return data, nil
}

// serversIn extracts the mcpServers map if present and well-formed.
func serversIn(data map[string]interface{}) (map[string]interface{}, bool) {
	raw, ok := data["mcpServers"]
	if !ok {
		return nil, false
	}
	m, ok := raw.(map[string]interface{})
	return m, ok
}

func ensureMCPServers(data map[string]interface{}) map[string]interface{} {
	if m, ok := serversIn(data); ok {
		return m
	}
	m := map[string]interface{}{}
	data["mcpServers"] = m
	return m
}

func entriesEqual(existing interface{}, want ServerEntry) bool {
	got, ok := decodeEntry(existing)
	if !ok {
		return false
	}
	if got.Command != want.Command || len(got.Args) != len(want.Args) {
		return false
	}
	for i, a := range got.Args {
		if a != want.Args[i] {
			return false
		}
	}
	return true
}

func writeConfig(path string, data map[string]interface{}) error {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	out = append(out, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	return atomicfile.WriteFile(path, out, 0)
}
