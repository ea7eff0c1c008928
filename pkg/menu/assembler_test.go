package menu

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/sidenav/pkg/catalog"
	"github.com/mchmarny/sidenav/pkg/level"
)

func sections() catalog.Catalog {
	return catalog.Catalog{
		{ID: "A", Title: "Alpha", Slug: "alpha"},
		{ID: "B", Title: "Beta", Items: []catalog.Section{
			{ID: "C", Title: "Gamma"},
		}},
		{Title: "Group", Items: []catalog.Section{
			{ID: "D", Title: "Delta"},
		}},
	}
}

func surfaces() []Surface {
	return []Surface{
		{ID: level.Home, Title: "Home", Kind: KindGuide, Base: "/docs", Sections: catalog.Catalog{
			{ID: "database", Title: "Database", Slug: "guides/database"},
		}},
		{
			ID:       level.ReferenceJavaScriptV2,
			Lib:      "javascript",
			Kind:     KindReference,
			Base:     "/docs/reference/javascript/",
			Sections: sections(),
			Spec:     &catalog.Spec{Functions: []catalog.Function{{ID: "C"}, {ID: "A"}}},
		},
		{
			ID:       level.ReferenceCLI,
			Lib:      "cli",
			Kind:     KindReference,
			Base:     "/docs/reference/cli",
			Sections: sections(),
		},
	}
}

func newAssembler(t *testing.T) *Assembler {
	t.Helper()

	a, err := NewAssembler(surfaces())
	require.NoError(t, err)
	return a
}

func TestVersionedSurfaceAllowedKeys(t *testing.T) {
	t.Parallel()

	a := newAssembler(t)

	keys, err := a.AllowedKeys(level.ReferenceJavaScriptV2)
	require.NoError(t, err)
	require.Equal(t, []string{"A", "C"}, keys)

	again, err := a.AllowedKeys(level.ReferenceJavaScriptV2)
	require.NoError(t, err)
	require.Equal(t, keys, again)
}

func TestVersionedSurfaceItems(t *testing.T) {
	t.Parallel()

	l, err := newAssembler(t).List(level.ReferenceJavaScriptV2)
	require.NoError(t, err)
	require.True(t, l.Versioned)

	require.Equal(t, []Item{
		{ID: "A", Title: "Alpha", Href: "/docs/reference/javascript/alpha"},
		{Title: "Beta", Items: []Item{
			{ID: "C", Title: "Gamma", Href: "/docs/reference/javascript/C"},
		}},
	}, l.Items)
}

func TestVersionedSurfaceDemotesParentsOutsideAllowedKeys(t *testing.T) {
	t.Parallel()

	l, err := newAssembler(t).List(level.ReferenceJavaScriptV2)
	require.NoError(t, err)

	// B is not a spec function but keeps its allowed child C
	beta := l.Items[1]
	require.Empty(t, beta.ID)
	require.Empty(t, beta.Href)
	require.Equal(t, len(l.AllowedKeys), Count(l.Items))

	var b strings.Builder
	require.NoError(t, newAssembler(t).Assemble(level.ReferenceJavaScriptV2).RenderHTML(&b))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(b.String()))
	require.NoError(t, err)

	active := doc.Find("div.menu-list.active")
	require.Equal(t, 0, active.Find(`li[data-id="B"]`).Length())
	require.Equal(t, "Beta", active.Find("span.category").First().Text())
}

func TestNonVersionedSurfaceIsUnfiltered(t *testing.T) {
	t.Parallel()

	a := newAssembler(t)

	keys, err := a.AllowedKeys(level.ReferenceCLI)
	require.NoError(t, err)
	require.Nil(t, keys)

	l, err := a.List(level.ReferenceCLI)
	require.NoError(t, err)
	require.False(t, l.Versioned)
	require.Equal(t, len(sections().IDs()), Count(l.Items))
	require.Equal(t, "Group", l.Items[2].Title)
	require.Empty(t, l.Items[2].Href)
}

func TestAssembleMarksOneActiveList(t *testing.T) {
	t.Parallel()

	a := newAssembler(t)

	m := a.Assemble(level.ReferenceCLI)
	require.Equal(t, level.ReferenceCLI, m.Level)

	active := 0
	for _, l := range m.Lists {
		if l.Active {
			active++
			require.Equal(t, level.ReferenceCLI, l.ID)
		}
	}
	require.Equal(t, 1, active)

	// precomputed lists stay inactive
	for _, l := range a.Lists() {
		require.False(t, l.Active)
	}
}

func TestAssembleWithoutLevel(t *testing.T) {
	t.Parallel()

	m := newAssembler(t).Assemble(level.None)
	_, ok := m.ActiveList()
	require.False(t, ok)
	require.Len(t, m.Lists, 3)
}

func TestNewAssemblerRejectsBadSurfaces(t *testing.T) {
	t.Parallel()

	_, err := NewAssembler([]Surface{{Lib: "x"}})
	require.Error(t, err)

	_, err = NewAssembler([]Surface{{ID: level.Home}, {ID: level.Home}})
	require.Error(t, err)
}

func TestUnknownSurfaceSuggests(t *testing.T) {
	t.Parallel()

	a := newAssembler(t)

	_, err := a.Surface("reference_javascrpt_v2")
	require.ErrorIs(t, err, ErrUnknownSurface)
	require.Contains(t, err.Error(), `did you mean "reference_javascript_v2"`)

	_, err = a.AllowedKeys("something-entirely-different")
	require.ErrorIs(t, err, ErrUnknownSurface)
	require.NotContains(t, err.Error(), "did you mean")
}

func TestCheckSurfaces(t *testing.T) {
	t.Parallel()

	got := CheckSurfaces([]Surface{
		{ID: level.ReferenceSelfHostingAuth, Lib: "self-hosting-auth", Kind: KindReference},
		{ID: level.ReferenceSelfHostingRealtime, Lib: "self-hosting-auth", Kind: KindReference},
		{ID: level.ReferenceDartV0, Lib: "dart", Kind: KindReference},
		{ID: level.Home, Lib: "anything", Kind: KindGuide},
	})

	require.Equal(t, []Mismatch{{ID: level.ReferenceSelfHostingRealtime, Lib: "self-hosting-auth"}}, got)
	require.Equal(t, `reference_self_hosting_realtime uses lib "self-hosting-auth"`, got[0].String())
}

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	m := newAssembler(t).Assemble(level.ReferenceJavaScriptV2)

	var b strings.Builder
	require.NoError(t, m.RenderHTML(&b))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(b.String()))
	require.NoError(t, err)

	require.Equal(t, "reference_javascript_v2", doc.Find("nav.sidenav").AttrOr("data-level", ""))
	require.Equal(t, 3, doc.Find("div.menu-list").Length())

	active := doc.Find("div.menu-list.active")
	require.Equal(t, 1, active.Length())
	require.Equal(t, "reference_javascript_v2", active.AttrOr("id", ""))
	require.Equal(t, "false", active.AttrOr("aria-hidden", ""))

	var ids []string
	active.Find("li[data-id]").Each(func(_ int, s *goquery.Selection) {
		ids = append(ids, s.AttrOr("data-id", ""))
	})
	require.Equal(t, []string{"A", "C"}, ids)
	require.Equal(t, "/docs/reference/javascript/alpha", active.Find(`li[data-id="A"] > a`).AttrOr("href", ""))

	cli := doc.Find("#reference_cli")
	require.Equal(t, "true", cli.AttrOr("aria-hidden", ""))
	require.Equal(t, "Group", cli.Find("span.category").First().Text())
}

func TestHTMLEscapesTitles(t *testing.T) {
	t.Parallel()

	a, err := NewAssembler([]Surface{{ID: level.Home, Kind: KindGuide, Base: "/docs", Sections: catalog.Catalog{
		{ID: "x", Title: "<script>alert(1)</script>"},
	}}})
	require.NoError(t, err)

	h, err := a.Assemble(level.Home).HTML()
	require.NoError(t, err)
	require.NotContains(t, string(h), "<script>")
	require.Contains(t, string(h), "&lt;script&gt;")
}

func TestMenuHandler(t *testing.T) {
	t.Parallel()

	m := newAssembler(t).Assemble(level.Home)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nav", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got Menu
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, level.Home, got.Level)

	l, ok := got.ActiveList()
	require.True(t, ok)
	require.Equal(t, KindGuide, l.Kind)
	require.Equal(t, "/docs/guides/database", l.Items[0].Href)
}
