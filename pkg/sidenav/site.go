package sidenav

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/mchmarny/sidenav/pkg/content"
	"github.com/mchmarny/sidenav/pkg/level"
	"github.com/mchmarny/sidenav/pkg/menu"
	"github.com/mchmarny/sidenav/pkg/navigation"
	"github.com/mchmarny/sidenav/pkg/state"
)

// Site holds the immutable pieces shared by every navigation session.
type Site struct {
	BasePath   string
	Classifier *level.Classifier
	Assembler  *menu.Assembler
}

// Build loads content from fsys and prepares the classifier and assembler
// for a site mounted under basePath.
func Build(ctx context.Context, fsys fs.FS, basePath string) (*Site, error) {
	bundle, err := content.Load(ctx, fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}

	specs, catalogs := bundle.Names()
	slog.Info("content loaded", "specs", specs, "catalogs", catalogs, "guides", len(bundle.Guides))

	return NewSite(bundle, basePath)
}

// NewSite prepares a site from already loaded content.
func NewSite(bundle *content.Bundle, basePath string) (*Site, error) {
	classifier, err := level.NewClassifier(level.DefaultRules(basePath))
	if err != nil {
		return nil, fmt.Errorf("invalid route rules: %w", err)
	}

	surfaces, err := Surfaces(bundle, basePath)
	if err != nil {
		return nil, err
	}

	for _, m := range menu.CheckSurfaces(surfaces) {
		slog.Warn("surface library does not match its menu level", "surface", m.ID, "lib", m.Lib)
	}

	assembler, err := menu.NewAssembler(surfaces)
	if err != nil {
		return nil, fmt.Errorf("invalid surfaces: %w", err)
	}

	return &Site{
		BasePath:   strings.TrimSuffix(basePath, "/"),
		Classifier: classifier,
		Assembler:  assembler,
	}, nil
}

// NewSession returns a side navigation for a visitor positioned at asPath,
// along with its router and store. The caller mounts it.
func (s *Site) NewSession(asPath string) (*SideNav, *navigation.Router, *state.Store) {
	router := navigation.NewRouter(s.BasePath, asPath)
	store := state.New(level.None)
	return New(router, store, s.Classifier, s.Assembler), router, store
}

// MenuFor classifies url without session state and assembles its menu.
// An unmatched URL yields a menu with no active list.
func (s *Site) MenuFor(url string) *menu.Menu {
	l, _ := s.Classifier.Classify(url)
	return s.Assembler.Assemble(l)
}
