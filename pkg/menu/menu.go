// Package menu assembles the side navigation: one list per product surface,
// with versioned client library lists restricted to the functions their
// specification documents declare.
package menu

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mchmarny/sidenav/pkg/level"
)

// Kind separates guide menus from reference menus.
type Kind string

const (
	KindGuide     Kind = "guide"
	KindReference Kind = "reference"
)

// Menu is the assembled side navigation for one menu level.
type Menu struct {
	// Level is the active menu level. Empty when nothing matched yet.
	Level level.Level `json:"level"`

	// Lists holds one list per surface, in surface order.
	Lists []List `json:"lists"`
}

// List is the rendered menu of one surface.
type List struct {
	ID        level.Level `json:"id"`
	Title     string      `json:"title,omitempty"`
	Lib       string      `json:"lib,omitempty"`
	Kind      Kind        `json:"kind"`
	Active    bool        `json:"active"`
	Versioned bool        `json:"versioned"`

	// AllowedKeys is set for versioned lists only.
	AllowedKeys []string `json:"allowed_keys,omitempty"`

	Items []Item `json:"items,omitempty"`
}

// ActiveList returns the list whose ID equals the menu level.
func (m *Menu) ActiveList() (List, bool) {
	for _, l := range m.Lists {
		if l.Active {
			return l, true
		}
	}
	return List{}, false
}

// Handler returns an HTTP handler that responds with the menu as JSON.
func (m *Menu) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("handling menu request",
			"method", r.Method,
			"url", r.URL.Path,
			"level", m.Level,
		)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(m); err != nil {
			slog.Error("failed to encode menu", "error", err)
			return
		}
	})
}
