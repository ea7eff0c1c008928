package content

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/mchmarny/sidenav/pkg/catalog"
	"github.com/mchmarny/sidenav/pkg/level"
)

const validSpec = `openref: 0.1
info:
  id: reference/supabase-js
  title: Supabase Javascript Client
  version: 2.0.0
functions:
  - id: A
    title: a()
  - id: C
    title: c()
`

const validSections = `[
  {"id": "A", "title": "A"},
  {"id": "B", "title": "B", "items": [{"id": "C", "title": "C"}]}
]`

func TestLoadDefault(t *testing.T) {
	t.Parallel()

	b, err := Load(context.Background(), Default())
	require.NoError(t, err)

	specs, catalogs := b.Names()
	require.Equal(t, []string{"supabase_dart_v0", "supabase_dart_v1", "supabase_js_v1", "supabase_js_v2"}, specs)
	require.Equal(t, []string{
		"common-api-sections",
		"common-cli-sections",
		"common-client-libs-sections",
		"common-self-hosting-auth-sections",
		"common-self-hosting-realtime-sections",
		"common-self-hosting-storage-sections",
	}, catalogs)

	js, ok := b.Spec("supabase_js_v2")
	require.True(t, ok)
	require.Equal(t, "0.1", js.OpenRef)
	require.Equal(t, "2.0.0", js.Info.Version)
	require.Contains(t, js.FunctionIDs(), "select")

	libs, ok := b.Catalog("common-client-libs-sections")
	require.True(t, ok)
	require.Contains(t, libs.IDs(), "eq")

	require.Contains(t, b.Guides, level.Home)
	require.Contains(t, b.Guides, level.SelfHosting)
}

func TestLoadParsesNestedSections(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"spec/lib_v1.yml":               {Data: []byte(validSpec)},
		"spec/common-lib-sections.json": {Data: []byte(validSections)},
	}

	b, err := Load(context.Background(), fsys)
	require.NoError(t, err)
	require.Empty(t, b.Guides)

	cat, ok := b.Catalog("common-lib-sections")
	require.True(t, ok)
	require.Equal(t, []string{"A", "B", "C"}, cat.IDs())

	spec, ok := b.Spec("lib_v1")
	require.True(t, ok)
	require.Equal(t, []string{"A", "C"}, catalog.AllowedKeys(cat, spec))
}

func TestLoadRejectsInvalidContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file string
		data string
	}{
		{"spec without functions", "spec/lib.yml", "info:\n  id: x\n  title: X\n"},
		{"function without id", "spec/lib.yml", "info:\n  id: x\n  title: X\nfunctions:\n  - title: nope\n"},
		{"spec not yaml", "spec/lib.yaml", "info: [unterminated"},
		{"section without title", "spec/x-sections.json", `[{"id": "A"}]`},
		{"sections not array", "spec/x-sections.json", `{"id": "A", "title": "A"}`},
		{"nested section invalid", "spec/x-sections.json", `[{"title": "A", "items": [{"id": 3, "title": "B"}]}]`},
		{"guides not object", GuidesFile, `[]`},
		{"guide list invalid", GuidesFile, `{"home": [{"id": "x"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(context.Background(), fstest.MapFS{
				tt.file: {Data: []byte(tt.data)},
			})
			require.ErrorIs(t, err, ErrInvalidContent)
			require.Contains(t, err.Error(), tt.file)
		})
	}
}

func TestLoadHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, fstest.MapFS{
		"spec/lib.yml": {Data: []byte(validSpec)},
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, context.Canceled))
}

func TestDefaultIsRootedAtSpecDir(t *testing.T) {
	t.Parallel()

	entries, err := fs.ReadDir(Default(), SpecDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
}
