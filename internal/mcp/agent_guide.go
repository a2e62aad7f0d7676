package mcp

import "github.com/magpiehq/magpie/docs"

// AgentGuide is the embedded MQL reference served as the magpie://guide
// resource and rendered by 'mgp guide'. It is written for coding agents
// deciding which query form to use.
var AgentGuide = loadAgentGuide()

func loadAgentGuide() string {
	data, err := docs.FS.ReadFile("guide/mql.md")
	if err != nil {
		// The guide ships inside the binary; a missing file is a build defect.
		panic("embedded MQL guide missing: " + err.Error())
	}
	return string(data)
}
