package menu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/mchmarny/sidenav/pkg/catalog"
	"github.com/mchmarny/sidenav/pkg/level"
)

// ErrUnknownSurface is returned when a surface ID is not configured.
var ErrUnknownSurface = errors.New("unknown surface")

// maxSuggestDistance bounds how far a suggestion may be from the input.
const maxSuggestDistance = 6

// Surface configures one menu list.
type Surface struct {
	// ID is the menu level under which the list expands.
	ID level.Level

	// Title labels the list.
	Title string

	// Lib names the library or service the list documents.
	Lib string

	Kind Kind

	// Base is the href prefix of the list's entries.
	Base string

	// Sections is the surface's catalog.
	Sections catalog.Catalog

	// Spec restricts the list to its function IDs. Nil for non-versioned surfaces.
	Spec *catalog.Spec
}

// Versioned reports whether the surface is filtered by a specification document.
func (s Surface) Versioned() bool {
	return s.Spec != nil
}

// Assembler builds menus from a fixed surface table. The inputs never change
// after construction, so the lists are computed once.
type Assembler struct {
	surfaces []Surface
	lists    []List
	index    map[level.Level]int
}

// NewAssembler precomputes one list per surface. Surface IDs must be unique.
func NewAssembler(surfaces []Surface) (*Assembler, error) {
	a := &Assembler{
		surfaces: make([]Surface, len(surfaces)),
		lists:    make([]List, 0, len(surfaces)),
		index:    make(map[level.Level]int, len(surfaces)),
	}
	copy(a.surfaces, surfaces)

	for i, s := range surfaces {
		if s.ID == level.None {
			return nil, fmt.Errorf("surface %d: empty id", i)
		}
		if _, dup := a.index[s.ID]; dup {
			return nil, fmt.Errorf("surface %s: duplicate id", s.ID)
		}
		a.index[s.ID] = i
		a.lists = append(a.lists, buildList(s))
	}

	return a, nil
}

func buildList(s Surface) List {
	l := List{
		ID:        s.ID,
		Title:     s.Title,
		Lib:       s.Lib,
		Kind:      s.Kind,
		Versioned: s.Versioned(),
	}

	var allowed map[string]struct{}
	if s.Versioned() {
		l.AllowedKeys = catalog.AllowedKeys(s.Sections, s.Spec)
		allowed = make(map[string]struct{}, len(l.AllowedKeys))
		for _, k := range l.AllowedKeys {
			allowed[k] = struct{}{}
		}
	}

	l.Items = buildItems(s.Sections, allowed, strings.TrimSuffix(s.Base, "/"))
	return l
}

// Assemble returns the menu for the given level. The list whose ID equals
// the level is marked active; an unknown or empty level activates none.
func (a *Assembler) Assemble(l level.Level) *Menu {
	m := &Menu{
		Level: l,
		Lists: make([]List, len(a.lists)),
	}
	copy(m.Lists, a.lists)

	for i := range m.Lists {
		m.Lists[i].Active = m.Lists[i].ID == l
	}
	return m
}

// Lists returns the precomputed lists with no list active.
func (a *Assembler) Lists() []List {
	return a.Assemble(level.None).Lists
}

// Surfaces returns the configured surfaces in order.
func (a *Assembler) Surfaces() []Surface {
	out := make([]Surface, len(a.surfaces))
	copy(out, a.surfaces)
	return out
}

// Surface returns the surface with the given ID.
func (a *Assembler) Surface(id level.Level) (Surface, error) {
	i, ok := a.index[id]
	if !ok {
		return Surface{}, a.unknown(id)
	}
	return a.surfaces[i], nil
}

// List returns the precomputed list of a surface.
func (a *Assembler) List(id level.Level) (List, error) {
	i, ok := a.index[id]
	if !ok {
		return List{}, a.unknown(id)
	}
	return a.lists[i], nil
}

// AllowedKeys returns the allowed-key set of a surface, or nil when the
// surface is not versioned.
func (a *Assembler) AllowedKeys(id level.Level) ([]string, error) {
	l, err := a.List(id)
	if err != nil {
		return nil, err
	}
	if !l.Versioned {
		return nil, nil
	}
	out := make([]string, len(l.AllowedKeys))
	copy(out, l.AllowedKeys)
	return out, nil
}

// Suggest returns the configured surface ID closest to id.
func (a *Assembler) Suggest(id string) (level.Level, bool) {
	best, bestDist := level.None, maxSuggestDistance+1
	for _, s := range a.surfaces {
		d := levenshtein.ComputeDistance(id, s.ID.String())
		if d < bestDist {
			best, bestDist = s.ID, d
		}
	}
	return best, best != level.None
}

func (a *Assembler) unknown(id level.Level) error {
	if s, ok := a.Suggest(id.String()); ok {
		return fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownSurface, id, s)
	}
	return fmt.Errorf("%w %q", ErrUnknownSurface, id)
}

// Mismatch describes a surface whose library does not correspond to its ID.
type Mismatch struct {
	ID  level.Level
	Lib string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s uses lib %q", m.ID, m.Lib)
}

// CheckSurfaces reports reference surfaces whose Lib is not a substring of
// their ID once dashes are normalized, such as a realtime list wired to the
// auth library.
func CheckSurfaces(surfaces []Surface) []Mismatch {
	var out []Mismatch
	for _, s := range surfaces {
		if s.Kind != KindReference || s.Lib == "" {
			continue
		}
		lib := strings.ReplaceAll(s.Lib, "-", "_")
		if !strings.Contains(s.ID.String(), lib) {
			out = append(out, Mismatch{ID: s.ID, Lib: s.Lib})
		}
	}
	return out
}
