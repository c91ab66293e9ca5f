package depgraph_test

import (
	"testing"

	"github.com/fcanata061/lfsd/pkg/depgraph"
	"github.com/fcanata061/lfsd/pkg/lfsderrors"
	"github.com/fcanata061/lfsd/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func store() map[string]*types.Recipe {
	return map[string]*types.Recipe{
		"glibc": {Name: "glibc"},
		"zlib":  {Name: "zlib", Depends: []string{"glibc"}},
		"bash":  {Name: "bash", Depends: []string{"glibc", "zlib"}},
	}
}

func TestClosureIncludesTransitiveDeps(t *testing.T) {
	c := depgraph.Closure([]string{"bash"}, store())
	assert.Len(t, c, 3)
	assert.Contains(t, c, "glibc")
}

func TestClosureIncludesUnknownTargetsAsNilEntries(t *testing.T) {
	c := depgraph.Closure([]string{"nonexistent"}, store())
	require.Contains(t, c, "nonexistent")
	assert.Nil(t, c["nonexistent"])
}

func TestClosureIncludesTransitiveMissingDependency(t *testing.T) {
	withMissing := map[string]*types.Recipe{
		"app": {Name: "app", Depends: []string{"ghost"}},
	}
	c := depgraph.Closure([]string{"app"}, withMissing)
	require.Contains(t, c, "ghost")
	assert.Nil(t, c["ghost"])

	order, err := depgraph.TopoSort(c)
	require.NoError(t, err)
	assert.Equal(t, []string{"ghost", "app"}, order)
}

func TestTopoSortOrdersDependenciesFirst(t *testing.T) {
	c := depgraph.Closure([]string{"bash"}, store())
	order, err := depgraph.TopoSort(c)
	require.NoError(t, err)
	require.Equal(t, []string{"glibc", "zlib", "bash"}, order)
}

func TestTopoSortIsDeterministicAcrossTies(t *testing.T) {
	c := map[string]*types.Recipe{
		"c": {Name: "c"},
		"b": {Name: "b"},
		"a": {Name: "a"},
	}
	order, err := depgraph.TopoSort(c)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestTopoSortDetectsCycle(t *testing.T) {
	c := map[string]*types.Recipe{
		"a": {Name: "a", Depends: []string{"b"}},
		"b": {Name: "b", Depends: []string{"a"}},
	}
	_, err := depgraph.TopoSort(c)
	require.Error(t, err)
	assert.True(t, lfsderrors.Is(err, lfsderrors.ErrResolutionCycle))
}
