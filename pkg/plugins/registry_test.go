package plugins

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcahoon3/mbr-shapefile-generator/pkg/metadata"
)

func testPlugin(name, category string, deprecated, experimental bool) *Plugin {
	d := &metadata.Descriptor{
		Name:               name,
		QGISMinimumVersion: "3.0",
		Description:        "d",
		Version:            "1.0",
		Author:             "a",
		Email:              "a@b.co",
		Category:           category,
		Deprecated:         deprecated,
		Experimental:       experimental,
	}
	return &Plugin{
		Descriptor: d,
		Validation: metadata.Validate(d),
		Dir:        "/plugins/" + name,
		LoadedAt:   time.Now().UTC(),
	}
}

// TestRegistry_RegisterAndGet tests basic registration and retrieval
func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(testPlugin("alpha", "Vector", false, false)))
	assert.True(t, r.Has("alpha"))
	assert.Equal(t, 1, r.Count())

	got, err := r.Get("alpha")
	require.NoError(t, err)
	assert.Equal(t, "alpha", got.Name())

	_, err = r.Get("missing")
	assert.Error(t, err)
}

// TestRegistry_RegisterReplaces tests that re-registration replaces the entry
func TestRegistry_RegisterReplaces(t *testing.T) {
	r := NewRegistry()

	first := testPlugin("alpha", "Vector", false, false)
	require.NoError(t, r.Register(first))

	second := testPlugin("alpha", "Raster", false, false)
	require.NoError(t, r.Register(second))

	got, err := r.Get("alpha")
	require.NoError(t, err)
	assert.Equal(t, "Raster", got.Descriptor.Category)
	assert.Equal(t, 1, r.Count())
}

// TestRegistry_RegisterInvalid tests nil and nameless plugins
func TestRegistry_RegisterInvalid(t *testing.T) {
	r := NewRegistry()

	assert.Error(t, r.Register(nil))
	assert.Error(t, r.Register(&Plugin{Descriptor: &metadata.Descriptor{}}))
}

// TestRegistry_Unregister tests removal
func TestRegistry_Unregister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(testPlugin("alpha", "", false, false)))

	require.NoError(t, r.Unregister("alpha"))
	assert.False(t, r.Has("alpha"))
	assert.Error(t, r.Unregister("alpha"))
}

// TestRegistry_ListFilters tests category and flag filtering with sorted output
func TestRegistry_ListFilters(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(testPlugin("charlie", "Vector", false, false)))
	require.NoError(t, r.Register(testPlugin("alpha", "Vector", true, false)))
	require.NoError(t, r.Register(testPlugin("bravo", "Raster", false, true)))

	all := r.List(ListFilter{})
	require.Len(t, all, 3)
	assert.Equal(t, "alpha", all[0].Name())
	assert.Equal(t, "bravo", all[1].Name())
	assert.Equal(t, "charlie", all[2].Name())

	vector := r.List(ListFilter{Category: "vector"})
	require.Len(t, vector, 2)

	stable := r.List(ListFilter{ExcludeDeprecated: true, ExcludeExperimental: true})
	require.Len(t, stable, 1)
	assert.Equal(t, "charlie", stable[0].Name())
}
