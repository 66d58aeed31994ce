package forest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForestInsertValues(t *testing.T) {
	f := NewForestFromValues(1)
	first, err := f.InsertValues(f.Flat().End(), 7, 8, 9)
	require.NoError(t, err)
	v, err := first.Value()
	require.NoError(t, err)
	require.Equal(t, 7, v)
	require.Equal(t, []int{1, 7, 8, 9}, f.Flat().Values())

	// no values, the destination position comes back unchanged
	same, err := f.InsertValues(f.Flat().End())
	require.NoError(t, err)
	require.True(t, same.IsBoundary())
}

func TestForestInsertBefore(t *testing.T) {
	f, cs := buildSample(t)
	c, err := f.Insert(cs[3], 25)
	require.NoError(t, err)
	v, err := c.Value()
	require.NoError(t, err)
	require.Equal(t, 25, v)
	require.Equal(t, []int{1, 2, 25, 3, 4}, f.Preorder().Values())
	require.Equal(t, int64(5), cs[1].Size())
	require.NoError(t, SizeViolationValidate(f))
}

func TestForestEmplace(t *testing.T) {
	f := NewForest[int]()
	calls := 0
	c, err := f.Emplace(f.Flat().End(), func() int { calls++; return 42 })
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	v, err := c.Value()
	require.NoError(t, err)
	require.Equal(t, 42, v)

	// not constructed when the destination fails validation
	other := NewForest[int]()
	_, err = f.Emplace(other.Flat().End(), func() int { calls++; return 0 })
	require.True(t, errors.Is(err, ErrForestInvalidDestination))
	require.Equal(t, 1, calls)

	_, err = f.Emplace(f.Flat().End(), nil)
	require.True(t, errors.Is(err, ErrForestInvalidSource))
}

func TestForestCopyShallowAndDeep(t *testing.T) {
	f, cs := buildSample(t)

	c, err := f.Copy(f.Flat().End(), cs[3])
	require.NoError(t, err)
	require.False(t, c.HasChildren())
	require.Equal(t, []int{1, 3}, f.Flat().Values())
	require.Equal(t, int64(5), f.Size())

	d, err := f.DeepCopy(f.Flat().End(), cs[3])
	require.NoError(t, err)
	require.Equal(t, int64(2), d.Size())
	require.Equal(t, []int{1, 2, 3, 4, 3, 3, 4}, f.Preorder().Values())
	require.NoError(t, SizeViolationValidate(f))
	require.NoError(t, LinkViolationValidate(f))

	eq, err := f.DeepCompare(cs[3], d)
	require.NoError(t, err)
	require.True(t, eq)
}

func TestForestCopyRange(t *testing.T) {
	f := NewForestFromValues(1, 2, 3)
	view := f.Flat()
	c, err := f.CopyRange(view.Begin(), view.Begin(), view.End())
	require.NoError(t, err)
	v, err := c.Value()
	require.NoError(t, err)
	require.Equal(t, 1, v)
	require.Equal(t, []int{1, 2, 3, 1, 2, 3}, f.Flat().Values())
}

func TestForestDeepCopyRange(t *testing.T) {
	f, _ := buildSample(t)
	view := f.Flat()
	c, err := f.DeepCopyRange(view.End(), view.Begin(), view.End())
	require.NoError(t, err)
	require.Equal(t, int64(4), c.Size())
	require.Equal(t, []int{1, 2, 3, 4, 1, 2, 3, 4}, f.Preorder().Values())
	require.NoError(t, SizeViolationValidate(f))

	// preorder endpoints are rejected, only whole subtrees are copied
	pre := f.Preorder()
	_, err = f.DeepCopyRange(view.End(), pre.Begin(), pre.End())
	require.True(t, errors.Is(err, ErrForestFlatRangeRequired))
}

func TestForestMove(t *testing.T) {
	f, cs := buildSample(t)

	// 3's subtree rides along
	c, err := f.Move(cs[2], cs[3])
	require.NoError(t, err)
	require.True(t, c.Same(cs[3]))
	require.Equal(t, []int{1, 3, 4, 2}, f.Preorder().Values())
	require.Equal(t, int64(4), cs[1].Size())
	require.NoError(t, SizeViolationValidate(f))

	// to top level
	_, err = f.Move(f.Flat().End(), cs[3])
	require.NoError(t, err)
	require.Equal(t, []int{1, 3}, f.Flat().Values())
	require.Equal(t, int64(2), cs[1].Size())
	require.NoError(t, SizeViolationValidate(f))
}

func TestForestMoveCircular(t *testing.T) {
	f, cs := buildSample(t)

	sub, err := cs[3].Flat()
	require.NoError(t, err)
	_, err = f.Move(sub.End(), cs[1])
	require.True(t, errors.Is(err, ErrForestCircularDependency))

	// before itself counts as inside its own subtree
	_, err = f.Move(cs[3], cs[3])
	require.True(t, errors.Is(err, ErrForestCircularDependency))

	require.Equal(t, []int{1, 2, 3, 4}, f.Preorder().Values())
}

func TestForestMoveRange(t *testing.T) {
	f := NewForestFromValues(1, 2, 3, 4)
	view := f.Flat()
	second, err := view.Begin().Next()
	require.NoError(t, err)

	// [2, 3, 4) before 1
	fourth := view.RBegin()
	c, err := f.MoveRange(view.Begin(), second, fourth)
	require.NoError(t, err)
	v, err := c.Value()
	require.NoError(t, err)
	require.Equal(t, 2, v)
	require.Equal(t, []int{2, 3, 1, 4}, f.Flat().Values())
	require.NoError(t, LinkViolationValidate(f))
}

func TestForestMoveRangeCircular(t *testing.T) {
	f, cs := buildSample(t)
	view := f.Flat()
	sub, err := cs[3].Flat()
	require.NoError(t, err)
	_, err = f.MoveRange(sub.End(), view.Begin(), view.End())
	require.True(t, errors.Is(err, ErrForestCircularDependency))
}

func TestForestRemove(t *testing.T) {
	f, cs := buildSample(t)

	following, err := f.Remove(cs[3])
	require.NoError(t, err)
	require.True(t, following.IsBoundary())
	require.Equal(t, []int{1, 2}, f.Preorder().Values())
	require.Equal(t, int64(2), f.Size())
	require.False(t, cs[3].Valid())
	require.False(t, cs[4].Valid())
	require.True(t, cs[2].Valid())
	require.NoError(t, SizeViolationValidate(f))

	// removing a stale cursor fails
	_, err = f.Remove(cs[4])
	require.True(t, errors.Is(err, ErrForestInvalidSource))
}

func TestForestRemoveValue(t *testing.T) {
	f := NewForestFromValues(5, 6, 5, 7, 5)
	view := f.Flat()
	n, err := f.RemoveValue(view.Begin(), view.End(), 5)
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
	require.Equal(t, []int{6, 7}, f.Flat().Values())
}

func TestForestRemoveIf(t *testing.T) {
	f, _ := buildSample(t)
	pre := f.Preorder()

	// removing 3 takes its subtree with it
	n, err := f.RemoveIf(pre.Begin(), pre.End(), func(v int) bool { return v == 3 })
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
	require.Equal(t, []int{1, 2}, f.Preorder().Values())

	_, err = f.RemoveIf(pre.Begin(), pre.End(), nil)
	require.True(t, errors.Is(err, ErrForestInvalidSource))
}

func TestForestCompare(t *testing.T) {
	f1, cs1 := buildSample(t)
	_, cs2 := buildSample(t)

	// shallow compare ignores the subtrees
	eq, err := f1.Compare(cs1[3], cs2[3])
	require.NoError(t, err)
	require.True(t, eq)

	eq, err = f1.Compare(cs1[3], cs2[4], func(a, b int) bool { return a+1 == b })
	require.NoError(t, err)
	require.True(t, eq)

	_, err = f1.Compare(cs1[3], f1.Flat().End())
	require.True(t, errors.Is(err, ErrForestInvalidSource))
}

func TestForestDeepCompare(t *testing.T) {
	f1, cs1 := buildSample(t)
	f2, cs2 := buildSample(t)

	eq, err := f1.DeepCompare(cs1[1], cs2[1])
	require.NoError(t, err)
	require.True(t, eq)

	require.NoError(t, cs2[4].SetValue(40))
	eq, err = f1.DeepCompare(cs1[1], cs2[1])
	require.NoError(t, err)
	require.False(t, eq)

	// a shape mismatch is conclusive before any value comparison
	_, err = f2.Remove(cs2[4])
	require.NoError(t, err)
	calls := 0
	eq, err = f1.DeepCompare(cs1[1], cs2[1], func(a, b int) bool { calls++; return a == b })
	require.NoError(t, err)
	require.False(t, eq)
	require.Equal(t, 0, calls)
}

func TestForestCompareRange(t *testing.T) {
	f1, _ := buildSample(t)
	f2 := NewForestFromValues(1)

	// equal top-level values, different subtrees
	v1, v2 := f1.Flat(), f2.Flat()
	eq, err := f1.CompareRange(v1.Begin(), v1.End(), v2.Begin(), v2.End())
	require.NoError(t, err)
	require.True(t, eq)

	eq, err = f1.DeepCompareRange(v1.Begin(), v1.End(), v2.Begin(), v2.End())
	require.NoError(t, err)
	require.False(t, eq)

	// length mismatch
	f3 := NewForestFromValues(1, 9)
	v3 := f3.Flat()
	eq, err = f1.CompareRange(v1.Begin(), v1.End(), v3.Begin(), v3.End())
	require.NoError(t, err)
	require.False(t, eq)
}

func TestForestSwap(t *testing.T) {
	f := NewTree(1, NewForestOf(2)).Append(NewForestOf(9))
	// shape: {1: [2: [9]]}; lift 9 next to the root tree first
	view := f.Flat()
	nine := f.Preorder().RBegin()
	_, err := f.Move(view.End(), nine)
	require.NoError(t, err)
	require.Equal(t, []int{1, 9}, f.Flat().Values())

	// children follow their parents
	one := view.Begin()
	require.NoError(t, f.Swap(one, nine))
	require.Equal(t, []int{9, 1}, f.Flat().Values())
	require.Equal(t, []int{9, 1, 2}, f.Preorder().Values())
	require.NoError(t, SizeViolationValidate(f))
	require.NoError(t, LinkViolationValidate(f))
}

func TestForestSwapAcrossLevels(t *testing.T) {
	f, cs := buildSample(t)
	donor := NewForestFromValues(10)
	_, err := f.Join(f.Flat().End(), donor)
	require.NoError(t, err)

	ten := f.Flat().RBegin()
	require.NoError(t, f.Swap(cs[4], ten))
	require.Equal(t, []int{1, 2, 3, 10, 4}, f.Preorder().Values())
	require.Equal(t, []int{1, 4}, f.Flat().Values())
	require.NoError(t, SizeViolationValidate(f))

	// same element is a no-op
	require.NoError(t, f.Swap(cs[4], cs[4]))
}

func TestForestSwapNested(t *testing.T) {
	f, cs := buildSample(t)
	err := f.Swap(cs[1], cs[4])
	require.True(t, errors.Is(err, ErrForestCircularDependency))
	require.Equal(t, []int{1, 2, 3, 4}, f.Preorder().Values())
}

func TestForestSwapAdjacent(t *testing.T) {
	f := NewForestFromValues(1, 2, 3)
	view := f.Flat()
	second, err := view.Begin().Next()
	require.NoError(t, err)
	require.NoError(t, f.Swap(view.Begin(), second))
	require.Equal(t, []int{2, 1, 3}, f.Flat().Values())
	require.NoError(t, LinkViolationValidate(f))
}

func TestForestCrossForestRejection(t *testing.T) {
	f1, cs1 := buildSample(t)
	f2, cs2 := buildSample(t)

	_, err := f1.Move(cs2[2], cs1[3])
	require.True(t, errors.Is(err, ErrForestInvalidDestination))

	_, err = f1.Move(cs1[2], cs2[3])
	require.True(t, errors.Is(err, ErrForestInvalidSource))

	err = f2.Swap(cs2[2], cs1[2])
	require.True(t, errors.Is(err, ErrForestInvalidSource))
}
