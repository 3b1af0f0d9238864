package menufig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func items(ids ...string) []ParamItem {
	out := make([]ParamItem, len(ids))
	for i, id := range ids {
		out[i] = ParamItem{ElemID: id, Type: TypeInput}
	}
	return out
}

func flatten(cols [][]ParamItem) []string {
	var out []string
	for _, col := range cols {
		for _, item := range col {
			out = append(out, item.ElemID)
		}
	}
	return out
}

func TestSplitColumns(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, SplitColumns(nil, 2))
	})

	t.Run("single item", func(t *testing.T) {
		cols := SplitColumns(items("a"), 3)
		assert.Len(t, cols, 1)
		assert.Equal(t, []string{"a"}, flatten(cols))
	})

	t.Run("one column", func(t *testing.T) {
		cols := SplitColumns(items("a", "b", "c"), 1)
		assert.Len(t, cols, 1)
	})

	t.Run("even split", func(t *testing.T) {
		cols := SplitColumns(items("a", "b", "c", "d"), 2)
		assert.Len(t, cols, 2)
		assert.Equal(t, []string{"a", "b"}, flatten(cols[:1]))
		assert.Equal(t, []string{"c", "d"}, flatten(cols[1:]))
	})

	t.Run("three columns", func(t *testing.T) {
		cols := SplitColumns(items("a", "b", "c", "d", "e", "f"), 3)
		assert.Len(t, cols, 3)
		assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, flatten(cols))
	})

	t.Run("keep with previous extends search", func(t *testing.T) {
		list := items("a", "b", "c", "d")
		list[2].KeepWithPrevious = true
		cols := SplitColumns(list, 2)
		// c may not be split from b, so the split lands at d.
		assert.Equal(t, []string{"a", "b", "c"}, flatten(cols[:1]))
	})

	t.Run("unbroken run never split", func(t *testing.T) {
		list := items("a", "b", "c", "d")
		list[1].KeepWithPrevious = true
		list[2].KeepWithPrevious = true
		list[3].KeepWithPrevious = true
		cols := SplitColumns(list, 4)
		assert.Len(t, cols, 1)
	})

	t.Run("concatenation preserves order", func(t *testing.T) {
		for ncols := 1; ncols <= 5; ncols++ {
			list := items("a", "b", "c", "d", "e", "f", "g")
			list[3].KeepWithPrevious = true
			got := flatten(SplitColumns(list, ncols))
			assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g"}, got, "ncols=%d", ncols)
		}
	})

	t.Run("adjacent keep pairs stay together", func(t *testing.T) {
		list := items("a", "b", "c", "d", "e", "f")
		list[1].KeepWithPrevious = true
		list[4].KeepWithPrevious = true
		for ncols := 1; ncols <= 4; ncols++ {
			for _, col := range SplitColumns(list, ncols) {
				// No column may start with a keep_with_previous item.
				assert.False(t, col[0].KeepWithPrevious, "ncols=%d", ncols)
			}
		}
	})
}
