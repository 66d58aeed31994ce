package forest

import (
	"github.com/benz9527/xforest/lib/infra"
)

var _ View[int] = (*policyView[int])(nil)

// policyView binds one scope owner to one traversal order. The
// whole-forest views own the hidden root; subtree views own a live
// element and die with it.
type policyView[T comparable] struct {
	f     *forest[T]
	owner nodeID
	order Order
}

func (v *policyView[T]) Begin() *Cursor[T] {
	return v.f.cursorWithOrigin(v.f.arena.begin(v.owner), v.owner, v.order)
}

func (v *policyView[T]) End() *Cursor[T] {
	return v.f.cursorWithOrigin(v.f.arena.end(v.owner), v.owner, v.order)
}

func (v *policyView[T]) RBegin() *Cursor[T] {
	a := v.f.arena
	r := a.rbegin(v.owner)
	if v.order == Preorder && r.kind == refNode {
		r = nodeRef(a.deepestRightmost(r.node))
	}
	return v.f.cursorWithOrigin(r, v.owner, v.order)
}

func (v *policyView[T]) REnd() *Cursor[T] {
	return v.f.cursorWithOrigin(v.f.arena.rend(v.owner), v.owner, v.order)
}

func (v *policyView[T]) Size() int64 {
	if !v.f.arena.alive(v.owner) {
		return 0
	}
	return v.f.arena.sizeOf(v.owner) - 1
}

func (v *policyView[T]) ChildCount() int64 {
	return v.f.arena.childCountOf(v.owner)
}

func (v *policyView[T]) HasChildren() bool {
	return v.f.arena.hasChildren(v.owner)
}

func (v *policyView[T]) Empty() bool {
	return !v.HasChildren()
}

func (v *policyView[T]) Foreach(fn func(idx int64, c *Cursor[T]) error) error {
	if fn == nil || !v.f.arena.alive(v.owner) {
		return nil
	}
	a := v.f.arena
	var ferr error
	idx := int64(0)
	a.forEach(v.order, a.begin(v.owner), a.end(v.owner), func(r ref) bool {
		if err := fn(idx, v.f.cursorWithOrigin(r, v.owner, v.order)); err != nil {
			ferr = err
			return false
		}
		idx++
		return true
	})
	return ferr
}

func (v *policyView[T]) ReverseForeach(fn func(idx int64, c *Cursor[T])) {
	if fn == nil || !v.f.arena.hasChildren(v.owner) {
		return
	}
	a := v.f.arena
	idx := int64(0)
	a.forEachReverse(v.order, a.end(v.owner), a.begin(v.owner), func(r ref) bool {
		fn(idx, v.f.cursorWithOrigin(r, v.owner, v.order))
		idx++
		return true
	})
}

func (v *policyView[T]) Values() []T {
	vs := make([]T, 0, v.Size())
	a := v.f.arena
	if !a.alive(v.owner) {
		return vs
	}
	a.forEach(v.order, a.begin(v.owner), a.end(v.owner), func(r ref) bool {
		vs = append(vs, a.at(r.node).value)
		return true
	})
	return vs
}

func (v *policyView[T]) Remove(val T) int64 {
	return v.RemoveIf(func(x T) bool { return x == val })
}

func (v *policyView[T]) RemoveIf(pred func(v T) bool) int64 {
	if pred == nil || !v.f.arena.alive(v.owner) {
		return 0
	}
	a := v.f.arena
	return a.removeIf(v.order, a.begin(v.owner), a.end(v.owner), pred)
}

func (v *policyView[T]) CopyTo(at *Cursor[T]) (*Cursor[T], error) {
	if err := v.f.validDestination(at); err != nil {
		return nil, err
	}
	a := v.f.arena
	if !a.alive(v.owner) {
		return nil, infra.WrapErrorStack(ErrForestInvalidSource)
	}
	r := a.shallowCopyRange(v.order, at.at, a.begin(v.owner), a.end(v.owner))
	return v.f.cursorAt(r, at.order), nil
}
