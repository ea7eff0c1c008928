// Package mcptools exposes the navigation to MCP clients: route
// classification, allowed keys, menu rendering and reference search.
package mcptools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mchmarny/sidenav/pkg/level"
	"github.com/mchmarny/sidenav/pkg/menu"
	"github.com/mchmarny/sidenav/pkg/search"
	"github.com/mchmarny/sidenav/pkg/sidenav"
)

// ServerName identifies the MCP server to clients.
const ServerName = "sidenav"

// Tools serves the navigation tool calls for one site.
type Tools struct {
	site  *sidenav.Site
	index *search.Index
}

// New indexes the site's reference lists for search_reference.
func New(site *sidenav.Site) (*Tools, error) {
	index, err := search.Build(site.Assembler.Lists())
	if err != nil {
		return nil, err
	}
	return &Tools{site: site, index: index}, nil
}

// Close releases the search index.
func (t *Tools) Close() error {
	return t.index.Close()
}

// NewServer creates an MCP server with every tool registered.
func (t *Tools) NewServer(version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: version}, nil)
	t.Register(server)
	return server
}

// Register adds the tools to server.
func (t *Tools) Register(server *mcp.Server) {
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "classify_path",
			Description: "Return the side navigation menu level of a documentation URL path.",
		},
		t.ClassifyPath,
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "allowed_keys",
			Description: "List the catalog entry IDs a versioned reference surface shows, in catalog order.",
		},
		t.AllowedKeys,
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "render_menu",
			Description: "Render the side navigation for a documentation URL path as entries or HTML.",
		},
		t.RenderMenu,
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "search_reference",
			Description: "Full-text search over the entry titles of one reference surface.",
		},
		t.SearchReference,
	)

	slog.Debug("registered MCP tools", "count", 4)
}

// ClassifyPathInput defines input for classify_path.
type ClassifyPathInput struct {
	Path string `json:"path" jsonschema:"Absolute documentation URL path, e.g. /docs/reference/javascript/select"`
}

// ClassifyPathOutput defines output for classify_path.
type ClassifyPathOutput struct {
	Path    string      `json:"path"`
	Level   level.Level `json:"level"`
	Matched bool        `json:"matched"`
}

// ClassifyPath classifies a URL path. Unmatched paths report matched=false.
func (t *Tools) ClassifyPath(_ context.Context, _ *mcp.CallToolRequest, in ClassifyPathInput) (*mcp.CallToolResult, ClassifyPathOutput, error) {
	if in.Path == "" {
		return nil, ClassifyPathOutput{}, errors.New("path is required")
	}

	l, ok := t.site.Classifier.Classify(in.Path)
	return nil, ClassifyPathOutput{Path: in.Path, Level: l, Matched: ok}, nil
}

// AllowedKeysInput defines input for allowed_keys.
type AllowedKeysInput struct {
	Surface string `json:"surface" jsonschema:"Surface ID, e.g. reference_javascript_v2"`
}

// AllowedKeysOutput defines output for allowed_keys.
type AllowedKeysOutput struct {
	Surface     level.Level `json:"surface"`
	Versioned   bool        `json:"versioned"`
	AllowedKeys []string    `json:"allowed_keys,omitempty"`
}

// AllowedKeys returns the allowed-key set of a surface. Non-versioned
// surfaces report versioned=false and no keys.
func (t *Tools) AllowedKeys(_ context.Context, _ *mcp.CallToolRequest, in AllowedKeysInput) (*mcp.CallToolResult, AllowedKeysOutput, error) {
	id := level.Level(in.Surface)

	keys, err := t.site.Assembler.AllowedKeys(id)
	if err != nil {
		return nil, AllowedKeysOutput{}, err
	}
	return nil, AllowedKeysOutput{Surface: id, Versioned: keys != nil, AllowedKeys: keys}, nil
}

// RenderMenuInput defines input for render_menu.
type RenderMenuInput struct {
	Path   string `json:"path" jsonschema:"Absolute documentation URL path"`
	Format string `json:"format,omitempty" jsonschema:"Output format: entries (default) or html"`
}

// Entry is one flattened menu item.
type Entry struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title"`
	Href  string `json:"href,omitempty"`
	Depth int    `json:"depth"`
}

// RenderMenuOutput defines output for render_menu.
type RenderMenuOutput struct {
	Level   level.Level `json:"level"`
	Surface string      `json:"surface,omitempty"`
	Entries []Entry     `json:"entries,omitempty"`
	HTML    string      `json:"html,omitempty"`
}

// RenderMenu assembles the menu of a path. The entries format lists the
// active list only; html renders the whole nav element.
func (t *Tools) RenderMenu(_ context.Context, _ *mcp.CallToolRequest, in RenderMenuInput) (*mcp.CallToolResult, RenderMenuOutput, error) {
	if in.Path == "" {
		return nil, RenderMenuOutput{}, errors.New("path is required")
	}

	m := t.site.MenuFor(in.Path)
	out := RenderMenuOutput{Level: m.Level}
	if l, ok := m.ActiveList(); ok {
		out.Surface = l.Title
	}

	switch strings.ToLower(in.Format) {
	case "", "entries":
		if l, ok := m.ActiveList(); ok {
			out.Entries = flatten(l.Items, 0, nil)
		}
	case "html":
		h, err := m.HTML()
		if err != nil {
			return nil, RenderMenuOutput{}, err
		}
		out.HTML = string(h)
	default:
		return nil, RenderMenuOutput{}, fmt.Errorf("unsupported format %q", in.Format)
	}

	return nil, out, nil
}

func flatten(items []menu.Item, depth int, out []Entry) []Entry {
	for _, it := range items {
		out = append(out, Entry{ID: it.ID, Title: it.Title, Href: it.Href, Depth: depth})
		out = flatten(it.Items, depth+1, out)
	}
	return out
}

// SearchReferenceInput defines input for search_reference.
type SearchReferenceInput struct {
	Surface    string `json:"surface" jsonschema:"Reference surface ID, e.g. reference_cli"`
	Query      string `json:"query" jsonschema:"Search query"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Maximum number of results (optional, defaults to 10)"`
}

// SearchReferenceOutput defines output for search_reference.
type SearchReferenceOutput struct {
	Surface level.Level  `json:"surface"`
	Query   string       `json:"query"`
	Hits    []search.Hit `json:"hits"`
}

// SearchReference searches the entry titles of a reference surface.
func (t *Tools) SearchReference(ctx context.Context, _ *mcp.CallToolRequest, in SearchReferenceInput) (*mcp.CallToolResult, SearchReferenceOutput, error) {
	id := level.Level(in.Surface)
	if _, err := t.site.Assembler.Surface(id); err != nil {
		return nil, SearchReferenceOutput{}, err
	}

	if strings.TrimSpace(in.Query) == "" {
		return nil, SearchReferenceOutput{}, errors.New("query is required")
	}

	hits, err := t.index.Search(ctx, id, in.Query, in.MaxResults)
	if err != nil {
		return nil, SearchReferenceOutput{}, err
	}
	return nil, SearchReferenceOutput{Surface: id, Query: in.Query, Hits: hits}, nil
}
