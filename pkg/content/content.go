// Package content loads the static documentation content the navigation is
// built from: client library specification documents (YAML), reference
// section catalogs (JSON) and guide menus (JSON).
//
// Every document is validated against an embedded JSON Schema while loading,
// so the rest of the program can treat the content as well formed.
package content

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mchmarny/sidenav/pkg/catalog"
	"github.com/mchmarny/sidenav/pkg/level"
)

const (
	// SpecDir is the directory holding all content files.
	SpecDir = "spec"

	// GuidesFile holds the guide menus keyed by menu level.
	GuidesFile = SpecDir + "/guides.json"

	sectionsSuffix = "-sections.json"

	// maxParallel bounds concurrent file parsing.
	maxParallel = 8
)

// ErrInvalidContent is returned when a content file cannot be parsed or
// does not satisfy its schema.
var ErrInvalidContent = errors.New("invalid content")

//go:embed defaults
var defaults embed.FS

// Default returns the embedded sample content rooted so that spec files
// live under SpecDir.
func Default() fs.FS {
	sub, err := fs.Sub(defaults, "defaults")
	if err != nil {
		// embedded tree is fixed at build time
		panic(err)
	}
	return sub
}

// Bundle is the immutable content set loaded at startup.
type Bundle struct {
	// Specs are keyed by file stem, e.g. "supabase_js_v2".
	Specs map[string]*catalog.Spec

	// Catalogs are keyed by file stem, e.g. "common-cli-sections".
	Catalogs map[string]catalog.Catalog

	// Guides are keyed by the menu level they render under.
	Guides map[level.Level]catalog.Catalog
}

// Spec returns the specification document stored under name.
func (b *Bundle) Spec(name string) (*catalog.Spec, bool) {
	s, ok := b.Specs[name]
	return s, ok
}

// Catalog returns the section catalog stored under name.
func (b *Bundle) Catalog(name string) (catalog.Catalog, bool) {
	c, ok := b.Catalogs[name]
	return c, ok
}

// Names lists spec and catalog names in sorted order.
func (b *Bundle) Names() (specs, catalogs []string) {
	for k := range b.Specs {
		specs = append(specs, k)
	}
	for k := range b.Catalogs {
		catalogs = append(catalogs, k)
	}
	sort.Strings(specs)
	sort.Strings(catalogs)
	return specs, catalogs
}

// Load reads and validates all content files in fsys.
func Load(ctx context.Context, fsys fs.FS) (*Bundle, error) {
	v, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to compile content schemas: %w", err)
	}

	specFiles, err := globAll(fsys, SpecDir+"/*.yml", SpecDir+"/*.yaml")
	if err != nil {
		return nil, err
	}

	catalogFiles, err := globAll(fsys, SpecDir+"/*"+sectionsSuffix)
	if err != nil {
		return nil, err
	}

	b := &Bundle{
		Specs:    make(map[string]*catalog.Spec, len(specFiles)),
		Catalogs: make(map[string]catalog.Catalog, len(catalogFiles)),
		Guides:   make(map[level.Level]catalog.Catalog),
	}

	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)

	for _, name := range specFiles {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			spec, err := v.parseSpec(fsys, name)
			if err != nil {
				return err
			}

			mu.Lock()
			b.Specs[stem(name)] = spec
			mu.Unlock()
			return nil
		})
	}

	for _, name := range catalogFiles {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			cat, err := v.parseCatalog(fsys, name)
			if err != nil {
				return err
			}

			mu.Lock()
			b.Catalogs[stem(name)] = cat
			mu.Unlock()
			return nil
		})
	}

	g.Go(func() error {
		guides, err := v.parseGuides(fsys, GuidesFile)
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("no guide menus found", "file", GuidesFile)
			return nil
		}
		if err != nil {
			return err
		}

		mu.Lock()
		b.Guides = guides
		mu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("content loaded",
		"specs", len(b.Specs),
		"catalogs", len(b.Catalogs),
		"guides", len(b.Guides))

	return b, nil
}

func globAll(fsys fs.FS, patterns ...string) ([]string, error) {
	var out []string
	for _, p := range patterns {
		matches, err := fs.Glob(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("failed to list content files %s: %w", p, err)
		}
		out = append(out, matches...)
	}
	sort.Strings(out)
	return out, nil
}

func stem(name string) string {
	base := path.Base(name)
	return strings.TrimSuffix(base, path.Ext(base))
}
