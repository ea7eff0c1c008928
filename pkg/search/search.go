// Package search provides full-text search over the reference menus.
//
// Each reference list gets its own in-memory index holding only the items
// that list renders, so a versioned client library is searched over its
// allowed keys and nothing else.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/blevesearch/bleve/v2"

	"github.com/mchmarny/sidenav/pkg/level"
	"github.com/mchmarny/sidenav/pkg/menu"
)

const (
	// DefaultMaxResults is used when a search does not ask for a size.
	DefaultMaxResults = 10

	// MaxResults caps the result size of one search.
	MaxResults = 50
)

// ErrNotIndexed is returned when searching a surface without an index.
var ErrNotIndexed = errors.New("surface not indexed")

// Doc is the indexed form of a menu item.
type Doc struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Href  string `json:"href"`
}

// Hit is one search result.
type Hit struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Href  string  `json:"href"`
	Score float64 `json:"score"`
}

// Index holds one bleve index per reference surface.
type Index struct {
	indexes map[level.Level]bleve.Index
}

// Build indexes every reference list.
func Build(lists []menu.List) (*Index, error) {
	idx := &Index{indexes: make(map[level.Level]bleve.Index)}

	for _, l := range lists {
		if l.Kind != menu.KindReference {
			continue
		}

		bi, err := bleve.NewMemOnly(bleve.NewIndexMapping())
		if err != nil {
			_ = idx.Close()
			return nil, fmt.Errorf("failed to create index for %s: %w", l.ID, err)
		}
		idx.indexes[l.ID] = bi

		batch := bi.NewBatch()
		for _, d := range docs(l.Items) {
			if err := batch.Index(d.ID, d); err != nil {
				_ = idx.Close()
				return nil, fmt.Errorf("failed to index %s/%s: %w", l.ID, d.ID, err)
			}
		}
		if err := bi.Batch(batch); err != nil {
			_ = idx.Close()
			return nil, fmt.Errorf("failed to index %s: %w", l.ID, err)
		}

		slog.Debug("reference indexed", "surface", l.ID, "docs", batch.Size())
	}

	return idx, nil
}

func docs(items []menu.Item) []Doc {
	var out []Doc
	for _, it := range items {
		if it.ID != "" {
			out = append(out, Doc{ID: it.ID, Title: it.Title, Href: it.Href})
		}
		out = append(out, docs(it.Items)...)
	}
	return out
}

// Surfaces returns the number of indexed surfaces.
func (i *Index) Surfaces() int {
	return len(i.indexes)
}

// Search runs a match query against one surface.
func (i *Index) Search(ctx context.Context, surface level.Level, query string, max int) ([]Hit, error) {
	bi, ok := i.indexes[surface]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotIndexed, surface)
	}

	if max <= 0 {
		max = DefaultMaxResults
	}
	if max > MaxResults {
		max = MaxResults
	}

	req := bleve.NewSearchRequest(bleve.NewMatchQuery(query))
	req.Size = max
	req.Fields = []string{"title", "href"}

	res, err := bi.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hit := Hit{ID: h.ID, Score: h.Score}
		if title, ok := h.Fields["title"].(string); ok {
			hit.Title = title
		}
		if href, ok := h.Fields["href"].(string); ok {
			hit.Href = href
		}
		hits = append(hits, hit)
	}

	return hits, nil
}

// Close releases every index.
func (i *Index) Close() error {
	var errs []error
	for id, bi := range i.indexes {
		if err := bi.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}
