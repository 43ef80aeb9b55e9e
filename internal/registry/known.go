// known.go holds the static catalog of well-known providers that
// "llmsh mcp search" and "llmsh mcp install" draw from.

package registry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotInCatalog is returned when installing an unknown catalog entry.
var ErrNotInCatalog = errors.New("provider not in catalog")

// KnownProvider is one installable catalog entry. RequiredEnv names
// environment variables the provider needs; install records them with
// empty values for the user to fill in.
type KnownProvider struct {
	ID          string
	Description string
	Command     string
	Args        []string
	RequiredEnv []string
}

var knownProviders = []KnownProvider{
	{
		ID:          "filesystem",
		Description: "File access rooted at a directory",
		Command:     "npx",
		Args:        []string{"-y", "@modelcontextprotocol/server-filesystem", "."},
	},
	{
		ID:          "fetch",
		Description: "Web content fetching and conversion",
		Command:     "npx",
		Args:        []string{"-y", "@modelcontextprotocol/server-fetch"},
	},
	{
		ID:          "memory",
		Description: "Knowledge-graph based persistent memory",
		Command:     "npx",
		Args:        []string{"-y", "@modelcontextprotocol/server-memory"},
	},
	{
		ID:          "github",
		Description: "GitHub repositories, issues, and pull requests",
		Command:     "npx",
		Args:        []string{"-y", "@modelcontextprotocol/server-github"},
		RequiredEnv: []string{"GITHUB_PERSONAL_ACCESS_TOKEN"},
	},
	{
		ID:          "sqlite",
		Description: "Query and inspect SQLite databases",
		Command:     "npx",
		Args:        []string{"-y", "@modelcontextprotocol/server-sqlite"},
	},
	{
		ID:          "puppeteer",
		Description: "Browser automation via headless Chrome",
		Command:     "npx",
		Args:        []string{"-y", "@modelcontextprotocol/server-puppeteer"},
	},
}

// SearchKnown returns catalog entries whose id or description contains
// the query (case-insensitive). An empty query returns the full catalog.
func SearchKnown(query string) []KnownProvider {
	if query == "" {
		return append([]KnownProvider(nil), knownProviders...)
	}
	q := strings.ToLower(query)
	var out []KnownProvider
	for _, p := range knownProviders {
		if strings.Contains(strings.ToLower(p.ID), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}

// Install adds a catalog entry to the provider config at path.
func Install(path, id string) (KnownProvider, error) {
	for _, p := range knownProviders {
		if p.ID != id {
			continue
		}
		cfg := LoadConfig(path)
		spec := ServerSpec{Command: p.Command, Args: p.Args}
		if len(p.RequiredEnv) > 0 {
			spec.Env = make(map[string]string, len(p.RequiredEnv))
			for _, name := range p.RequiredEnv {
				spec.Env[name] = ""
			}
		}
		cfg.Servers[id] = spec
		if err := SaveConfig(path, cfg); err != nil {
			return p, err
		}
		return p, nil
	}
	return KnownProvider{}, fmt.Errorf("%w: %s", ErrNotInCatalog, id)
}
