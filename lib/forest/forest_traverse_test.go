package forest

import (
	"testing"

	"github.com/benz9527/xforest/lib/infra"
	"github.com/stretchr/testify/require"
)

func TestViewForeach(t *testing.T) {
	f, _ := buildSample(t)

	got := make([]int, 0, 4)
	err := f.Preorder().Foreach(func(idx int64, c *Cursor[int]) error {
		require.Equal(t, int64(len(got)), idx)
		v, verr := c.Value()
		require.NoError(t, verr)
		got = append(got, v)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3, 4}, got)
}

func TestViewForeachEarlyStop(t *testing.T) {
	f, _ := buildSample(t)
	stop := infra.NewErrorStack("stop here")

	visited := 0
	err := f.Preorder().Foreach(func(idx int64, c *Cursor[int]) error {
		visited++
		if v, _ := c.Value(); v == 2 {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, 2, visited)
}

func TestViewReverseForeach(t *testing.T) {
	f, _ := buildSample(t)

	got := make([]int, 0, 4)
	f.Preorder().ReverseForeach(func(idx int64, c *Cursor[int]) {
		v, err := c.Value()
		require.NoError(t, err)
		got = append(got, v)
	})
	require.Equal(t, []int{4, 3, 2, 1}, got)

	flat := make([]int, 0, 1)
	f.Flat().ReverseForeach(func(idx int64, c *Cursor[int]) {
		v, err := c.Value()
		require.NoError(t, err)
		flat = append(flat, v)
	})
	require.Equal(t, []int{1}, flat)
}

func TestViewReverseForeachRemoveWhileIterating(t *testing.T) {
	f, _ := buildSample(t)

	// reverse preorder hands out leaves first, each removal is safe
	f.Preorder().ReverseForeach(func(idx int64, c *Cursor[int]) {
		_, err := f.Remove(c)
		require.NoError(t, err)
	})
	require.True(t, f.Empty())
	require.NoError(t, SizeViolationValidate(f))
}

func TestViewRemove(t *testing.T) {
	f, _ := buildSample(t)
	n := f.Preorder().Remove(3)
	require.Equal(t, int64(2), n)
	require.Equal(t, []int{1, 2}, f.Preorder().Values())
}

func TestViewRemoveIfScoped(t *testing.T) {
	f, cs := buildSample(t)
	donor := NewForestFromValues(2)
	_, err := f.Join(f.Flat().End(), donor)
	require.NoError(t, err)

	// the subtree view only sees its own scope, the top-level 2 stays
	sub, err := cs[1].Preorder()
	require.NoError(t, err)
	n := sub.RemoveIf(func(v int) bool { return v%2 == 0 })
	require.Equal(t, int64(2), n)
	require.Equal(t, []int{1, 3, 2}, f.Preorder().Values())

	require.Equal(t, int64(0), sub.RemoveIf(nil))
}

func TestViewCopyTo(t *testing.T) {
	f, cs := buildSample(t)
	sub, err := cs[3].Flat()
	require.NoError(t, err)

	c, err := sub.CopyTo(f.Flat().End())
	require.NoError(t, err)
	v, err := c.Value()
	require.NoError(t, err)
	require.Equal(t, 4, v)
	require.Equal(t, []int{1, 4}, f.Flat().Values())
	require.Equal(t, int64(5), f.Size())

	// a preorder view copies flattened
	whole, err := cs[1].Preorder()
	require.NoError(t, err)
	_, err = whole.CopyTo(f.Flat().End())
	require.NoError(t, err)
	require.Equal(t, []int{1, 4, 2, 3, 4}, f.Flat().Values())
	require.NoError(t, SizeViolationValidate(f))
}

func TestViewValuesEmpty(t *testing.T) {
	f := NewForest[int]()
	require.Empty(t, f.Flat().Values())
	require.Empty(t, f.Preorder().Values())
	require.NoError(t, f.Flat().Foreach(func(int64, *Cursor[int]) error {
		t.Fatal("must not be called")
		return nil
	}))
}

func TestViewDeadOwner(t *testing.T) {
	f, cs := buildSample(t)
	sub, err := cs[3].Preorder()
	require.NoError(t, err)
	_, err = f.Remove(cs[3])
	require.NoError(t, err)

	require.Equal(t, int64(0), sub.Size())
	require.Empty(t, sub.Values())
	require.Equal(t, int64(0), sub.RemoveIf(func(int) bool { return true }))
	_, err = sub.CopyTo(f.Flat().End())
	require.ErrorIs(t, err, ErrForestInvalidSource)
}
