// Package catalog defines reference section catalogs and client library
// specification documents, and intersects the two.
package catalog

// Section is one entry of a reference catalog. Sections without an ID are
// grouping categories that only carry nested items.
type Section struct {
	ID    string    `json:"id,omitempty" yaml:"id,omitempty"`
	Title string    `json:"title" yaml:"title"`
	Slug  string    `json:"slug,omitempty" yaml:"slug,omitempty"`
	Type  string    `json:"type,omitempty" yaml:"type,omitempty"`
	Items []Section `json:"items,omitempty" yaml:"items,omitempty"`
}

// Catalog is the ordered section list of one product surface.
type Catalog []Section

// Flatten returns every section that has an ID in depth-first order,
// parents before their children. Categories are skipped, their items are not.
func Flatten(sections []Section) []Section {
	var out []Section
	for _, s := range sections {
		if s.ID != "" {
			out = append(out, s)
		}
		if len(s.Items) > 0 {
			out = append(out, Flatten(s.Items)...)
		}
	}
	return out
}

// IDs returns the flattened section identifiers.
func (c Catalog) IDs() []string {
	flat := Flatten(c)
	ids := make([]string, 0, len(flat))
	for _, s := range flat {
		ids = append(ids, s.ID)
	}
	return ids
}

// Info describes the library a specification belongs to.
type Info struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Function is one public function of a client library.
type Function struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Spec is the specification document of one client library version.
type Spec struct {
	OpenRef   string     `json:"openref,omitempty" yaml:"openref,omitempty"`
	Info      Info       `json:"info" yaml:"info"`
	Functions []Function `json:"functions" yaml:"functions"`
}

// FunctionIDs returns the function identifiers in document order.
func (s *Spec) FunctionIDs() []string {
	ids := make([]string, 0, len(s.Functions))
	for _, f := range s.Functions {
		ids = append(ids, f.ID)
	}
	return ids
}

// AllowedKeys returns the IDs of the flattened sections that also appear
// among the spec's function IDs. Order follows the catalog, not the spec.
// The result is never nil; an empty intersection yields an empty slice.
func AllowedKeys(sections []Section, spec *Spec) []string {
	specIDs := make(map[string]struct{}, len(spec.Functions))
	for _, id := range spec.FunctionIDs() {
		specIDs[id] = struct{}{}
	}

	keys := []string{}
	for _, s := range Flatten(sections) {
		if _, ok := specIDs[s.ID]; ok {
			keys = append(keys, s.ID)
		}
	}
	return keys
}
