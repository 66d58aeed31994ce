package forest

import (
	"github.com/benz9527/xforest/lib/infra"
	"github.com/samber/lo"
)

var _ Forest[int] = (*forest[int])(nil)

// forest anchors every top-level tree under one hidden root slot.
// Standalone forests split off by Unjoin share the donor's arena, so
// a later Join back is a pure splice.
type forest[T comparable] struct {
	arena *arena[T]
	root  nodeID
}

func NewForest[T comparable]() Forest[T] {
	a := newArena[T]()
	return &forest[T]{arena: a, root: a.allocateRoot()}
}

// NewForestOf creates a forest holding a single-element tree.
func NewForestOf[T comparable](v T) Forest[T] {
	f := NewForest[T]().(*forest[T])
	f.arena.link(f.arena.end(f.root), f.arena.allocate(v))
	return f
}

// NewForestFromValues creates a forest with one single-element tree
// per value, in order.
func NewForestFromValues[T comparable](vs ...T) Forest[T] {
	f := NewForest[T]().(*forest[T])
	for _, v := range vs {
		f.arena.link(f.arena.end(f.root), f.arena.allocate(v))
	}
	return f
}

// NewTree creates a forest holding one tree rooted at v with the
// given forests joined underneath as its children, in order.
func NewTree[T comparable](v T, subtrees ...Forest[T]) Forest[T] {
	f := NewForestOf(v).(*forest[T])
	node := f.arena.at(f.root).head
	where := f.arena.end(node)
	for _, sub := range subtrees {
		if of, ok := sub.(*forest[T]); ok && of != f {
			f.adoptOther(where, of)
		}
	}
	return f
}

func (f *forest[T]) Size() int64 {
	return f.arena.sizeOf(f.root) - 1
}

func (f *forest[T]) ChildCount() int64 {
	return f.arena.childCountOf(f.root)
}

func (f *forest[T]) Empty() bool {
	return !f.arena.hasChildren(f.root)
}

func (f *forest[T]) Clear() {
	a := f.arena
	a.removeIf(Preorder, a.begin(f.root), a.end(f.root), func(T) bool { return true })
}

func (f *forest[T]) Flat() View[T] {
	return &policyView[T]{f: f, owner: f.root, order: Flat}
}

func (f *forest[T]) Preorder() View[T] {
	return &policyView[T]{f: f, owner: f.root, order: Preorder}
}

func (f *forest[T]) Insert(at *Cursor[T], v T) (*Cursor[T], error) {
	if err := f.validDestination(at); err != nil {
		return nil, err
	}
	id := f.arena.allocate(v)
	f.arena.link(at.at, id)
	return f.cursorAt(nodeRef(id), at.order), nil
}

func (f *forest[T]) InsertValues(at *Cursor[T], vs ...T) (*Cursor[T], error) {
	if err := f.validDestination(at); err != nil {
		return nil, err
	}
	where := at.at
	for _, v := range lo.Reverse(append(make([]T, 0, len(vs)), vs...)) {
		id := f.arena.allocate(v)
		f.arena.link(where, id)
		where = nodeRef(id)
	}
	return f.cursorAt(where, at.order), nil
}

func (f *forest[T]) Emplace(at *Cursor[T], construct func() T) (*Cursor[T], error) {
	if construct == nil {
		return nil, infra.WrapErrorStack(ErrForestInvalidSource)
	}
	if err := f.validDestination(at); err != nil {
		return nil, err
	}
	id := f.arena.allocate(construct())
	f.arena.link(at.at, id)
	return f.cursorAt(nodeRef(id), at.order), nil
}

func (f *forest[T]) Copy(at, src *Cursor[T]) (*Cursor[T], error) {
	if err := f.validDestination(at); err != nil {
		return nil, err
	}
	if err := f.validSource(src); err != nil {
		return nil, err
	}
	id := f.arena.shallowCopyNode(at.at, src.at.node)
	return f.cursorAt(nodeRef(id), at.order), nil
}

func (f *forest[T]) CopyRange(at, begin, end *Cursor[T]) (*Cursor[T], error) {
	if err := f.validDestination(at); err != nil {
		return nil, err
	}
	if err := f.validRange(begin, end); err != nil {
		return nil, err
	}
	r := f.arena.shallowCopyRange(begin.order, at.at, begin.at, end.at)
	return f.cursorAt(r, at.order), nil
}

func (f *forest[T]) DeepCopy(at, src *Cursor[T]) (*Cursor[T], error) {
	if err := f.validDestination(at); err != nil {
		return nil, err
	}
	if err := f.validSource(src); err != nil {
		return nil, err
	}
	id := f.arena.deepCopyNode(at.at, src.at.node)
	return f.cursorAt(nodeRef(id), at.order), nil
}

func (f *forest[T]) DeepCopyRange(at, begin, end *Cursor[T]) (*Cursor[T], error) {
	if err := f.validDestination(at); err != nil {
		return nil, err
	}
	if err := f.validRange(begin, end); err != nil {
		return nil, err
	}
	if begin.order != Flat {
		return nil, infra.WrapErrorStack(ErrForestFlatRangeRequired)
	}
	r := f.arena.deepCopyRange(Flat, at.at, begin.at, end.at)
	return f.cursorAt(r, at.order), nil
}

func (f *forest[T]) Move(at, src *Cursor[T]) (*Cursor[T], error) {
	if err := f.validDestination(at); err != nil {
		return nil, err
	}
	if err := f.validSource(src); err != nil {
		return nil, err
	}
	if err := f.validDependency(at, src.at.node); err != nil {
		return nil, err
	}
	id := f.arena.moveNode(at.at, src.at.node)
	return f.cursorAt(nodeRef(id), at.order), nil
}

func (f *forest[T]) MoveRange(at, begin, end *Cursor[T]) (*Cursor[T], error) {
	if err := f.validDestination(at); err != nil {
		return nil, err
	}
	if err := f.validRange(begin, end); err != nil {
		return nil, err
	}
	if begin.order != Flat {
		return nil, infra.WrapErrorStack(ErrForestFlatRangeRequired)
	}
	for it := begin.at; it != end.at; it = f.arena.flatNext(it) {
		if err := f.validDependency(at, it.node); err != nil {
			return nil, err
		}
	}
	r := f.arena.moveRange(Flat, at.at, begin.at, end.at)
	return f.cursorAt(r, at.order), nil
}

func (f *forest[T]) Join(at *Cursor[T], other Forest[T]) (*Cursor[T], error) {
	if err := f.validDestination(at); err != nil {
		return nil, err
	}
	of, ok := other.(*forest[T])
	if !ok {
		return nil, infra.WrapErrorStack(ErrForestInvalidSource)
	}
	if of == f {
		return f.cursorAt(at.at, at.order), nil
	}
	r := f.adoptOther(at.at, of)
	return f.cursorAt(r, at.order), nil
}

func (f *forest[T]) Unjoin(src *Cursor[T]) (Forest[T], error) {
	if err := f.validSource(src); err != nil {
		return nil, err
	}
	id := src.at.node
	f.arena.unlink(id)
	nf := &forest[T]{arena: f.arena, root: f.arena.allocateRoot()}
	f.arena.link(f.arena.end(nf.root), id)
	return nf, nil
}

func (f *forest[T]) Append(subtrees ...Forest[T]) Forest[T] {
	where := f.arena.end(f.root)
	if !f.Empty() {
		where = f.arena.end(f.arena.deepestRightmost(f.root))
	}
	for _, sub := range subtrees {
		if of, ok := sub.(*forest[T]); ok && of != f {
			f.adoptOther(where, of)
		}
	}
	return f
}

func (f *forest[T]) Remove(src *Cursor[T]) (*Cursor[T], error) {
	if err := f.validSource(src); err != nil {
		return nil, err
	}
	r := f.arena.removeNode(src.at.node)
	return f.cursorAt(r, src.order), nil
}

func (f *forest[T]) RemoveValue(begin, end *Cursor[T], v T) (int64, error) {
	if err := f.validRange(begin, end); err != nil {
		return 0, err
	}
	return f.arena.removeIf(begin.order, begin.at, end.at, func(x T) bool { return x == v }), nil
}

func (f *forest[T]) RemoveIf(begin, end *Cursor[T], pred func(v T) bool) (int64, error) {
	if pred == nil {
		return 0, infra.WrapErrorStack(ErrForestInvalidSource)
	}
	if err := f.validRange(begin, end); err != nil {
		return 0, err
	}
	return f.arena.removeIf(begin.order, begin.at, end.at, pred), nil
}

func (f *forest[T]) Compare(first, second *Cursor[T], eqFn ...func(a, b T) bool) (bool, error) {
	if err := validCursorSource(first); err != nil {
		return false, err
	}
	if err := validCursorSource(second); err != nil {
		return false, err
	}
	eq := pickEq(eqFn)
	return eq(first.f.arena.at(first.at.node).value, second.f.arena.at(second.at.node).value), nil
}

func (f *forest[T]) CompareRange(firstBegin, firstEnd, secondBegin, secondEnd *Cursor[T], eqFn ...func(a, b T) bool) (bool, error) {
	if err := validCursorRange(firstBegin, firstEnd); err != nil {
		return false, err
	}
	if err := validCursorRange(secondBegin, secondEnd); err != nil {
		return false, err
	}
	return compareRanges(
		firstBegin.f.arena, firstBegin.at, firstEnd.at,
		secondBegin.f.arena, secondBegin.at, secondEnd.at,
		firstBegin.order, false, pickEq(eqFn),
	), nil
}

func (f *forest[T]) DeepCompare(first, second *Cursor[T], eqFn ...func(a, b T) bool) (bool, error) {
	if err := validCursorSource(first); err != nil {
		return false, err
	}
	if err := validCursorSource(second); err != nil {
		return false, err
	}
	return compareSubtrees(first.f.arena, second.f.arena, first.at.node, second.at.node, pickEq(eqFn)), nil
}

func (f *forest[T]) DeepCompareRange(firstBegin, firstEnd, secondBegin, secondEnd *Cursor[T], eqFn ...func(a, b T) bool) (bool, error) {
	if err := validCursorRange(firstBegin, firstEnd); err != nil {
		return false, err
	}
	if err := validCursorRange(secondBegin, secondEnd); err != nil {
		return false, err
	}
	if firstBegin.order != Flat || secondBegin.order != Flat {
		return false, infra.WrapErrorStack(ErrForestFlatRangeRequired)
	}
	return compareRanges(
		firstBegin.f.arena, firstBegin.at, firstEnd.at,
		secondBegin.f.arena, secondBegin.at, secondEnd.at,
		Flat, true, pickEq(eqFn),
	), nil
}

func (f *forest[T]) Swap(first, second *Cursor[T]) error {
	if err := f.validSource(first); err != nil {
		return err
	}
	if err := f.validSource(second); err != nil {
		return err
	}
	x, y := first.at.node, second.at.node
	if x == y {
		return nil
	}
	// swapping an element with one of its own descendants would have
	// to relink the chains through each other
	if f.arena.isDescendant(x, y) || f.arena.isDescendant(y, x) {
		return infra.WrapErrorStack(ErrForestCircularDependency)
	}
	f.arena.swapNodes(x, y)
	return nil
}

func (f *forest[T]) Equal(other Forest[T]) bool {
	of, ok := other.(*forest[T])
	if !ok {
		return false
	}
	if of == f {
		return true
	}
	return compareRanges(
		f.arena, f.arena.begin(f.root), f.arena.end(f.root),
		of.arena, of.arena.begin(of.root), of.arena.end(of.root),
		Flat, true, func(a, b T) bool { return a == b },
	)
}

func (f *forest[T]) Clone() Forest[T] {
	nf := NewForest[T]().(*forest[T])
	where := nf.arena.end(nf.root)
	copied := int64(0)
	f.arena.forEachReverse(Flat, f.arena.end(f.root), f.arena.begin(f.root), func(r ref) bool {
		c := adoptSubtree(nf.arena, f.arena, r.node)
		nf.arena.linkRaw(where, c)
		copied += nf.arena.sizeOf(c)
		where = nodeRef(c)
		return true
	})
	if copied > 0 {
		nf.arena.increaseSizes(where.node, copied)
	}
	return nf
}

func (f *forest[T]) String() string {
	return dumpSubtree(f.arena, f.root)
}

// adoptOther transplants every top-level tree of other before where.
// When the donor shares the arena the transplant is a splice; a
// foreign arena forces copying each subtree over and clearing the
// donor afterwards.
func (f *forest[T]) adoptOther(where ref, other *forest[T]) ref {
	if other.Empty() {
		return where
	}
	oa := other.arena
	if oa == f.arena {
		return f.arena.moveRange(Flat, where, oa.begin(other.root), oa.end(other.root))
	}
	adopted := int64(0)
	oa.forEachReverse(Flat, oa.end(other.root), oa.begin(other.root), func(r ref) bool {
		c := adoptSubtree(f.arena, oa, r.node)
		f.arena.linkRaw(where, c)
		adopted += f.arena.sizeOf(c)
		where = nodeRef(c)
		return true
	})
	if adopted > 0 {
		f.arena.increaseSizes(where.node, adopted)
	}
	other.Clear()
	return where
}

func pickEq[T comparable](eqFn []func(a, b T) bool) func(a, b T) bool {
	if len(eqFn) > 0 && eqFn[0] != nil {
		return eqFn[0]
	}
	return func(a, b T) bool { return a == b }
}
