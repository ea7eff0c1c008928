// Package sidenav wires the route classifier and the menu assembler to a
// navigation session: it classifies the current URL on mount and on every
// completed route change, and renders the menu for the stored level.
package sidenav

import (
	"log/slog"

	"github.com/mchmarny/sidenav/pkg/level"
	"github.com/mchmarny/sidenav/pkg/menu"
	"github.com/mchmarny/sidenav/pkg/navigation"
	"github.com/mchmarny/sidenav/pkg/state"
)

// SideNav is the side navigation of one navigation session.
type SideNav struct {
	router     *navigation.Router
	store      *state.Store
	classifier *level.Classifier
	assembler  *menu.Assembler
}

// New returns an unmounted side navigation.
func New(router *navigation.Router, store *state.Store, classifier *level.Classifier, assembler *menu.Assembler) *SideNav {
	return &SideNav{
		router:     router,
		store:      store,
		classifier: classifier,
		assembler:  assembler,
	}
}

// Mount classifies the router's current URL and subscribes to route changes.
// The returned function unsubscribes and must be called on teardown.
func (n *SideNav) Mount() (unmount func()) {
	n.HandleRouteChange(n.router.URL())
	return n.router.OnRouteChangeComplete(n.HandleRouteChange)
}

// HandleRouteChange writes the level of url into the store.
// A URL no rule matches leaves the store unchanged.
func (n *SideNav) HandleRouteChange(url string) {
	l, ok := n.classifier.Classify(url)
	if !ok {
		slog.Debug("no menu level for url", "url", url, "level", n.store.MenuLevel())
		return
	}
	n.store.SetMenuLevel(l)
}

// Level returns the stored menu level.
func (n *SideNav) Level() level.Level {
	return n.store.MenuLevel()
}

// Render assembles the menu for the stored level.
func (n *SideNav) Render() *menu.Menu {
	return n.assembler.Assemble(n.store.MenuLevel())
}
