package sidenav

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mchmarny/sidenav/pkg/content"
	"github.com/mchmarny/sidenav/pkg/level"
	"github.com/mchmarny/sidenav/pkg/menu"
)

func newSite(t *testing.T) *Site {
	t.Helper()

	s, err := Build(context.Background(), content.Default(), "/docs")
	require.NoError(t, err)
	return s
}

func TestMountClassifiesInitialURL(t *testing.T) {
	t.Parallel()

	nav, _, store := newSite(t).NewSession("/reference/javascript/v1/insert")
	unmount := nav.Mount()
	defer unmount()

	require.Equal(t, level.ReferenceJavaScriptV1, store.MenuLevel())
	require.Equal(t, level.ReferenceJavaScriptV1, nav.Level())
}

func TestRouteChangesUpdateLevel(t *testing.T) {
	t.Parallel()

	nav, router, store := newSite(t).NewSession("")
	unmount := nav.Mount()
	defer unmount()
	require.Equal(t, level.Home, store.MenuLevel())

	router.Push("/reference/javascript/insert")
	require.Equal(t, level.ReferenceJavaScriptV2, store.MenuLevel())

	router.Push("/reference/dart/v0/foo")
	require.Equal(t, level.ReferenceDartV0, store.MenuLevel())

	// unmatched paths keep the previous level
	router.Push("/reference")
	require.Equal(t, level.ReferenceDartV0, store.MenuLevel())
	router.Push("/blog")
	require.Equal(t, level.ReferenceDartV0, store.MenuLevel())
}

func TestUnmountStopsListening(t *testing.T) {
	t.Parallel()

	nav, router, store := newSite(t).NewSession("/guides/auth")
	unmount := nav.Mount()
	require.Equal(t, level.Auth, store.MenuLevel())
	require.Equal(t, 1, router.Subscribers())

	unmount()
	require.Equal(t, 0, router.Subscribers())

	router.Push("/guides/storage")
	require.Equal(t, level.Auth, store.MenuLevel())
}

func TestRenderFollowsStore(t *testing.T) {
	t.Parallel()

	nav, router, _ := newSite(t).NewSession("/guides/database/tables")
	unmount := nav.Mount()
	defer unmount()

	l, ok := nav.Render().ActiveList()
	require.True(t, ok)
	require.Equal(t, level.Database, l.ID)
	require.Equal(t, menu.KindGuide, l.Kind)

	router.Push("/reference/cli/supabase-init")
	l, ok = nav.Render().ActiveList()
	require.True(t, ok)
	require.Equal(t, level.ReferenceCLI, l.ID)
	require.False(t, l.Versioned)
}

func TestSurfacesTable(t *testing.T) {
	t.Parallel()

	b, err := content.Load(context.Background(), content.Default())
	require.NoError(t, err)

	surfaces, err := Surfaces(b, "/docs/")
	require.NoError(t, err)
	require.Len(t, surfaces, 21)
	require.Empty(t, menu.CheckSurfaces(surfaces))

	versioned := map[level.Level]bool{}
	for _, s := range surfaces {
		if s.Versioned() {
			versioned[s.ID] = true
		}
	}
	require.Equal(t, map[level.Level]bool{
		level.ReferenceJavaScriptV1: true,
		level.ReferenceJavaScriptV2: true,
		level.ReferenceDartV0:       true,
		level.ReferenceDartV1:       true,
	}, versioned)

	last := surfaces[len(surfaces)-1]
	require.Equal(t, level.ReferenceSelfHostingRealtime, last.ID)
	require.Equal(t, "self-hosting-realtime", last.Lib)
	require.Equal(t, "/docs/reference/self-hosting-realtime", last.Base)
}

func TestSurfacesMissingContent(t *testing.T) {
	t.Parallel()

	b, err := content.Load(context.Background(), content.Default())
	require.NoError(t, err)
	delete(b.Specs, SpecDartV0)

	_, err = Surfaces(b, "/docs")
	require.ErrorIs(t, err, ErrMissingContent)
	require.Contains(t, err.Error(), SpecDartV0)
}

func TestVersionedMenusOnlyListSpecFunctions(t *testing.T) {
	t.Parallel()

	s := newSite(t)

	v1, err := s.Assembler.AllowedKeys(level.ReferenceJavaScriptV1)
	require.NoError(t, err)
	require.Contains(t, v1, "auth-signin")
	require.NotContains(t, v1, "auth-signinwithpassword")
	require.NotContains(t, v1, "introduction")

	v2, err := s.Assembler.AllowedKeys(level.ReferenceJavaScriptV2)
	require.NoError(t, err)
	require.Contains(t, v2, "auth-signinwithpassword")
	require.NotContains(t, v2, "auth-signin")

	// catalog order, not spec order
	require.Equal(t, "initializing", v2[0])
}

func TestMenuForIsStateless(t *testing.T) {
	t.Parallel()

	s := newSite(t)

	m := s.MenuFor("/docs/reference/dart/v0/foo")
	require.Equal(t, level.ReferenceDartV0, m.Level)

	m = s.MenuFor("/pricing")
	require.Equal(t, level.None, m.Level)
	_, ok := m.ActiveList()
	require.False(t, ok)
}
