package menu

import (
	"github.com/mchmarny/sidenav/pkg/catalog"
)

// Item represents an individual entry in a menu list, which may contain sub-items.
type Item struct {
	// ID is the section identifier. Categories have no ID.
	ID string `json:"id,omitempty"`

	// Title is the label shown in the navigation.
	Title string `json:"title"`

	// Href links to the page of the entry. Categories have no link.
	Href string `json:"href,omitempty"`

	// Items are the sub-items of this entry.
	Items []Item `json:"items,omitempty"`
}

// Count returns the number of items with an ID in the tree rooted at items.
func Count(items []Item) int {
	n := 0
	for _, it := range items {
		if it.ID != "" {
			n++
		}
		n += Count(it.Items)
	}
	return n
}

// buildItems converts sections to items. When allowed is nil every section
// is kept. Otherwise a section is linked only when its ID is allowed; a
// section with kept descendants but no allowed ID stays as a category
// without ID or link.
func buildItems(sections []catalog.Section, allowed map[string]struct{}, base string) []Item {
	var out []Item
	for _, s := range sections {
		children := buildItems(s.Items, allowed, base)

		if allowed == nil {
			out = append(out, Item{ID: s.ID, Title: s.Title, Href: href(base, s), Items: children})
			continue
		}

		_, ok := allowed[s.ID]
		switch {
		case ok && s.ID != "":
			out = append(out, Item{ID: s.ID, Title: s.Title, Href: href(base, s), Items: children})
		case len(children) > 0:
			out = append(out, Item{Title: s.Title, Items: children})
		}
	}
	return out
}

func href(base string, s catalog.Section) string {
	slug := s.Slug
	if slug == "" {
		slug = s.ID
	}
	if slug == "" {
		return ""
	}
	return base + "/" + slug
}
