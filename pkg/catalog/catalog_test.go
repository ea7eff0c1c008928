package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func nested() Catalog {
	return Catalog{
		{ID: "A", Title: "A"},
		{ID: "B", Title: "B", Items: []Section{
			{ID: "C", Title: "C"},
		}},
	}
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	sections := []Section{
		{Title: "Database", Items: []Section{
			{ID: "select", Title: "Fetch data"},
			{ID: "insert", Title: "Create data"},
			{ID: "using-filters", Title: "Using filters", Items: []Section{
				{ID: "eq", Title: "Column is equal to a value"},
			}},
		}},
		{ID: "initializing", Title: "Initializing"},
	}

	var ids []string
	for _, s := range Flatten(sections) {
		ids = append(ids, s.ID)
	}

	require.Equal(t, []string{"select", "insert", "using-filters", "eq", "initializing"}, ids)
}

func TestFlattenEmpty(t *testing.T) {
	t.Parallel()

	require.Empty(t, Flatten(nil))
	require.Empty(t, Catalog{}.IDs())
}

func TestAllowedKeysFollowsCatalogOrder(t *testing.T) {
	t.Parallel()

	spec := &Spec{Functions: []Function{{ID: "C"}, {ID: "A"}}}

	require.Equal(t, []string{"A", "C"}, AllowedKeys(nested(), spec))
}

func TestAllowedKeysIdempotent(t *testing.T) {
	t.Parallel()

	cat := nested()
	spec := &Spec{Functions: []Function{{ID: "A"}, {ID: "C"}}}

	first := AllowedKeys(cat, spec)
	second := AllowedKeys(cat, spec)
	require.Equal(t, first, second)
	require.Equal(t, Catalog{
		{ID: "A", Title: "A"},
		{ID: "B", Title: "B", Items: []Section{{ID: "C", Title: "C"}}},
	}, cat)
}

func TestAllowedKeysOnlyReturnsSharedIDs(t *testing.T) {
	t.Parallel()

	spec := &Spec{Functions: []Function{{ID: "A"}, {ID: "not-in-catalog"}}}
	keys := AllowedKeys(nested(), spec)

	require.Equal(t, []string{"A"}, keys)
	for _, k := range keys {
		require.Contains(t, nested().IDs(), k)
		require.Contains(t, spec.FunctionIDs(), k)
	}
}

func TestAllowedKeysEmptyIntersection(t *testing.T) {
	t.Parallel()

	keys := AllowedKeys(nested(), &Spec{})
	require.NotNil(t, keys)
	require.Empty(t, keys)
}
