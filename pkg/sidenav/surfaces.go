package sidenav

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mchmarny/sidenav/pkg/catalog"
	"github.com/mchmarny/sidenav/pkg/content"
	"github.com/mchmarny/sidenav/pkg/level"
	"github.com/mchmarny/sidenav/pkg/menu"
)

// ErrMissingContent is returned when a surface refers to a spec or catalog
// the content bundle does not contain.
var ErrMissingContent = errors.New("missing content")

// Content names used by the reference surfaces.
const (
	ClientLibsSections          = "common-client-libs-sections"
	CLISections                 = "common-cli-sections"
	APISections                 = "common-api-sections"
	SelfHostingAuthSections     = "common-self-hosting-auth-sections"
	SelfHostingStorageSections  = "common-self-hosting-storage-sections"
	SelfHostingRealtimeSections = "common-self-hosting-realtime-sections"

	SpecJavaScriptV1 = "supabase_js_v1"
	SpecJavaScriptV2 = "supabase_js_v2"
	SpecDartV0       = "supabase_dart_v0"
	SpecDartV1       = "supabase_dart_v1"
)

var guides = []struct {
	id    level.Level
	title string
}{
	{level.Home, "Home"},
	{level.GettingStarted, "Getting started"},
	{level.Database, "Database"},
	{level.Auth, "Auth"},
	{level.Functions, "Edge Functions"},
	{level.Realtime, "Realtime"},
	{level.Storage, "Storage"},
	{level.Platform, "Platform"},
	{level.Resources, "Resources"},
	{level.Integrations, "Integrations"},
	{level.SelfHosting, "Self-Hosting"},
	{level.Reference, "Reference"},
}

type reference struct {
	id       level.Level
	title    string
	lib      string
	path     string
	sections string
	spec     string
}

var references = []reference{
	// client libraries
	{level.ReferenceJavaScriptV1, "JavaScript v1", "javascript", "javascript/v1", ClientLibsSections, SpecJavaScriptV1},
	{level.ReferenceJavaScriptV2, "JavaScript", "javascript", "javascript", ClientLibsSections, SpecJavaScriptV2},
	{level.ReferenceDartV0, "Dart v0", "dart", "dart/v0", ClientLibsSections, SpecDartV0},
	{level.ReferenceDartV1, "Dart", "dart", "dart", ClientLibsSections, SpecDartV1},
	// tools
	{level.ReferenceCLI, "CLI", "cli", "cli", CLISections, ""},
	{level.ReferenceAPI, "Management API", "api", "api", APISections, ""},
	// self-hosting servers
	{level.ReferenceSelfHostingAuth, "Auth Server", "self-hosting-auth", "self-hosting-auth", SelfHostingAuthSections, ""},
	{level.ReferenceSelfHostingStorage, "Storage Server", "self-hosting-storage", "self-hosting-storage", SelfHostingStorageSections, ""},
	{level.ReferenceSelfHostingRealtime, "Realtime Server", "self-hosting-realtime", "self-hosting-realtime", SelfHostingRealtimeSections, ""},
}

// Surfaces builds the documentation site's surface table from b: the guide
// menus followed by the reference menus. Guide levels missing from the
// bundle render as empty lists; missing reference content is an error.
func Surfaces(b *content.Bundle, basePath string) ([]menu.Surface, error) {
	base := strings.TrimSuffix(basePath, "/")
	out := make([]menu.Surface, 0, len(guides)+len(references))

	for _, g := range guides {
		out = append(out, menu.Surface{
			ID:       g.id,
			Title:    g.title,
			Kind:     menu.KindGuide,
			Base:     base,
			Sections: b.Guides[g.id],
		})
	}

	for _, r := range references {
		sections, ok := b.Catalog(r.sections)
		if !ok {
			return nil, fmt.Errorf("%w: catalog %s for %s", ErrMissingContent, r.sections, r.id)
		}

		var spec *catalog.Spec
		if r.spec != "" {
			if spec, ok = b.Spec(r.spec); !ok {
				return nil, fmt.Errorf("%w: spec %s for %s", ErrMissingContent, r.spec, r.id)
			}
		}

		out = append(out, menu.Surface{
			ID:       r.id,
			Title:    r.title,
			Lib:      r.lib,
			Kind:     menu.KindReference,
			Base:     base + "/reference/" + r.path,
			Sections: sections,
			Spec:     spec,
		})
	}

	return out, nil
}
