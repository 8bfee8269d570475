package legalrights_test

import (
	"testing"

	"github.com/natmusissunny/legalrights"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionTree_Add(t *testing.T) {
	t.Parallel()

	t.Run("adds roots and children in order", func(t *testing.T) {
		t.Parallel()

		tree := legalrights.NewSectionTree()
		a := tree.Add(legalrights.NoSection, "A", 1, "")
		b := tree.Add(legalrights.NoSection, "B", 1, "")
		a1 := tree.Add(a, "A1", 2, "")

		assert.Equal(t, []legalrights.SectionID{a, b}, tree.Roots)
		assert.Equal(t, []legalrights.SectionID{a1}, tree.Node(a).Children)
		assert.Equal(t, 3, tree.Len())
	})

	t.Run("returns nil for unknown ids", func(t *testing.T) {
		t.Parallel()

		tree := legalrights.NewSectionTree()

		assert.Nil(t, tree.Node(0))
		assert.Nil(t, tree.Node(legalrights.NoSection))
	})
}

func TestSectionTree_Walk(t *testing.T) {
	t.Parallel()

	t.Run("visits sections in pre-order with title paths", func(t *testing.T) {
		t.Parallel()

		tree := legalrights.NewSectionTree()
		a := tree.Add(legalrights.NoSection, "A", 1, "")
		a1 := tree.Add(a, "A1", 2, "")
		tree.Add(a1, "A1a", 3, "")
		tree.Add(a, "A2", 2, "")
		tree.Add(legalrights.NoSection, "B", 1, "")

		var paths [][]string
		tree.WalkAll(func(v legalrights.SectionVisit) {
			paths = append(paths, v.Path)
		})

		assert.Equal(t, [][]string{
			{"A"},
			{"A", "A1"},
			{"A", "A1", "A1a"},
			{"A", "A2"},
			{"B"},
		}, paths)
	})

	t.Run("visits shared children once", func(t *testing.T) {
		t.Parallel()

		tree := legalrights.NewSectionTree()
		a := tree.Add(legalrights.NoSection, "A", 1, "")
		b := tree.Add(legalrights.NoSection, "B", 1, "")
		shared := tree.Add(a, "S", 2, "")
		tree.Nodes[b].Children = append(tree.Nodes[b].Children, shared)

		var titles []string
		tree.WalkAll(func(v legalrights.SectionVisit) {
			titles = append(titles, v.Node.Title)
		})

		assert.Equal(t, []string{"A", "S", "B"}, titles)
	})

	t.Run("skips dangling child references", func(t *testing.T) {
		t.Parallel()

		tree := legalrights.NewSectionTree()
		a := tree.Add(legalrights.NoSection, "A", 1, "")
		tree.Nodes[a].Children = append(tree.Nodes[a].Children, 42)

		var count int
		tree.WalkAll(func(v legalrights.SectionVisit) {
			count++
		})

		assert.Equal(t, 1, count)
	})

	t.Run("walks a nil tree without visiting anything", func(t *testing.T) {
		t.Parallel()

		var tree *legalrights.SectionTree
		called := false

		tree.WalkAll(func(v legalrights.SectionVisit) { called = true })

		require.False(t, called)
	})
}
